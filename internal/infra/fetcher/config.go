package fetcher

import (
	"fmt"
	"time"
)

// Config controls outbound fetching.
type Config struct {
	// Timeout bounds one fetch, including redirects and body read.
	Timeout time.Duration

	// MaxBodySize is enforced while reading, not from Content-Length alone.
	MaxBodySize int64

	// MaxRedirects is the number of redirects followed; 0 disables them.
	MaxRedirects int

	// DenyPrivateIPs rejects hosts resolving to loopback, private or
	// link-local addresses, both before the request and at dial time.
	DenyPrivateIPs bool

	// UserAgent is sent on every request.
	UserAgent string
}

// DefaultConfig returns production defaults: 10s timeout, 10MB body, 5 redirects,
// private addresses denied.
func DefaultConfig() Config {
	return Config{
		Timeout:        10 * time.Second,
		MaxBodySize:    10 * 1024 * 1024,
		MaxRedirects:   5,
		DenyPrivateIPs: true,
		UserAgent:      "BeerCatalogBot/1.0",
	}
}

// Validate checks the configuration is usable.
func (c Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %v", c.Timeout)
	}

	minBodySize := int64(1024)
	maxBodySize := int64(100 * 1024 * 1024)
	if c.MaxBodySize < minBodySize || c.MaxBodySize > maxBodySize {
		return fmt.Errorf("max body size must be between %d and %d bytes, got %d", minBodySize, maxBodySize, c.MaxBodySize)
	}

	if c.MaxRedirects < 0 || c.MaxRedirects > 10 {
		return fmt.Errorf("max redirects must be between 0 and 10, got %d", c.MaxRedirects)
	}

	return nil
}
