// Package fetcher provides catalog.ProductSource implementations that load the
// raw product payload over HTTP or from the local filesystem.
package fetcher

import "errors"

var (
	// ErrInvalidURL is returned for malformed or non-http(s) locations.
	ErrInvalidURL = errors.New("invalid url")
	// ErrPrivateIP is returned when a host resolves to a loopback, private or link-local address.
	ErrPrivateIP = errors.New("url resolves to private address")
	// ErrTooManyRedirects is returned when the redirect limit is exceeded.
	ErrTooManyRedirects = errors.New("too many redirects")
	// ErrBodyTooLarge is returned when the payload exceeds the configured size.
	ErrBodyTooLarge = errors.New("response body too large")
	// ErrUpstreamStatus is returned for non-2xx responses.
	ErrUpstreamStatus = errors.New("unexpected upstream status")
	// ErrTimeout is returned when the fetch deadline passes. The underlying
	// context.DeadlineExceeded stays in the chain.
	ErrTimeout = errors.New("fetch timed out")
)
