package fetcher

import (
	"context"
	"strings"
)

// ProductSource matches catalog.ProductSource.
type ProductSource interface {
	Fetch(ctx context.Context, location string) ([]byte, error)
}

// LocationSource dispatches http:// and https:// locations to HTTP and anything
// else to File.
type LocationSource struct {
	HTTP ProductSource
	File ProductSource
}

// Fetch implements catalog.ProductSource.
func (s LocationSource) Fetch(ctx context.Context, location string) ([]byte, error) {
	if IsRemote(location) {
		return s.HTTP.Fetch(ctx, location)
	}
	return s.File.Fetch(ctx, location)
}

// IsRemote reports whether location names an http(s) URL.
func IsRemote(location string) bool {
	lower := strings.ToLower(location)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}
