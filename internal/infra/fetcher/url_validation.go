package fetcher

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"syscall"
)

// validateURL checks scheme and host of a source URL and, when denyPrivateIPs
// is set, resolves the host and rejects any private address.
//
// Blocked ranges:
//   - Loopback: 127.0.0.0/8, ::1
//   - Private: 10.0.0.0/8, 172.16.0.0/12, 192.168.0.0/16, fc00::/7
//   - Link-local: 169.254.0.0/16, fe80::/10
//   - Unspecified: 0.0.0.0, ::
func validateURL(ctx context.Context, rawURL string, denyPrivateIPs bool) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("%w: parse error: %v", ErrInvalidURL, err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: scheme '%s' not allowed (only http/https)", ErrInvalidURL, u.Scheme)
	}

	hostname := u.Hostname()
	if hostname == "" {
		return fmt.Errorf("%w: empty hostname", ErrInvalidURL)
	}

	if !denyPrivateIPs {
		return nil
	}

	addrs, err := net.DefaultResolver.LookupIPAddr(ctx, hostname)
	if err != nil {
		return fmt.Errorf("%w: DNS lookup failed for %s: %v", ErrInvalidURL, hostname, err)
	}

	for _, addr := range addrs {
		if isPrivateIP(addr.IP) {
			return fmt.Errorf("%w: hostname '%s' resolves to %s", ErrPrivateIP, hostname, addr.IP)
		}
	}

	return nil
}

// isPrivateIP reports whether ip is loopback, private, link-local or unspecified.
func isPrivateIP(ip net.IP) bool {
	return ip.IsLoopback() ||
		ip.IsPrivate() ||
		ip.IsLinkLocalUnicast() ||
		ip.IsLinkLocalMulticast() ||
		ip.IsUnspecified()
}

// guardDial is a net.Dialer Control hook that refuses connections to private
// addresses. It closes the gap where DNS answers change between validateURL
// and the actual connect.
func guardDial(_, address string, _ syscall.RawConn) error {
	host, _, err := net.SplitHostPort(address)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	ip := net.ParseIP(host)
	if ip == nil {
		return fmt.Errorf("%w: dial address %q is not an IP", ErrInvalidURL, host)
	}
	if isPrivateIP(ip) {
		return fmt.Errorf("%w: dial to %s refused", ErrPrivateIP, ip)
	}
	return nil
}
