package fetcher

import (
	"context"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		deny    bool
		wantErr error
	}{
		{name: "https passes without resolution", url: "https://shop.example.com/beers.json", deny: false},
		{name: "http passes", url: "http://shop.example.com/beers.json", deny: false},
		{name: "file scheme", url: "file:///etc/passwd", deny: false, wantErr: ErrInvalidURL},
		{name: "unparsable", url: "http://[::1", deny: false, wantErr: ErrInvalidURL},
		{name: "empty host", url: "https:///x", deny: false, wantErr: ErrInvalidURL},
		{name: "ipv4 loopback", url: "http://127.0.0.1/beers.json", deny: true, wantErr: ErrPrivateIP},
		{name: "rfc1918", url: "http://10.1.2.3/beers.json", deny: true, wantErr: ErrPrivateIP},
		{name: "metadata endpoint", url: "http://169.254.169.254/latest", deny: true, wantErr: ErrPrivateIP},
		{name: "ipv6 loopback", url: "http://[::1]:8080/", deny: true, wantErr: ErrPrivateIP},
		{name: "public literal", url: "http://93.184.216.34/beers.json", deny: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateURL(context.Background(), tt.url, tt.deny)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestIsPrivateIP(t *testing.T) {
	tests := []struct {
		ip   string
		want bool
	}{
		{ip: "127.0.0.1", want: true},
		{ip: "10.0.0.1", want: true},
		{ip: "172.16.5.4", want: true},
		{ip: "192.168.1.1", want: true},
		{ip: "169.254.1.1", want: true},
		{ip: "0.0.0.0", want: true},
		{ip: "::1", want: true},
		{ip: "fd00::1", want: true},
		{ip: "fe80::1", want: true},
		{ip: "8.8.8.8", want: false},
		{ip: "2606:4700:4700::1111", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.ip, func(t *testing.T) {
			assert.Equal(t, tt.want, isPrivateIP(net.ParseIP(tt.ip)))
		})
	}
}

func TestGuardDial(t *testing.T) {
	assert.NoError(t, guardDial("tcp", "93.184.216.34:443", nil))
	assert.ErrorIs(t, guardDial("tcp", "127.0.0.1:80", nil), ErrPrivateIP)
	assert.ErrorIs(t, guardDial("tcp6", "[fe80::1]:80", nil), ErrPrivateIP)
	assert.ErrorIs(t, guardDial("tcp", "no-port", nil), ErrInvalidURL)
}
