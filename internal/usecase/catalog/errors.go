// Package catalog implements the beer catalog queries: free-text normalization of
// article fields, the aggregation algorithms over a product list, and the service
// that runs Fetch → Decode → Normalize → Aggregate for every request.
package catalog

import (
	"errors"
	"fmt"
)

// Sentinel errors for catalog query operations.
var (
	// ErrProductsUnavailable is matched by every failure that prevents the
	// service from obtaining a product list. Fetch and decode failures collapse
	// into it at the HTTP boundary.
	ErrProductsUnavailable = errors.New("unable to fetch products")

	// ErrFetchFailed indicates the remote source was unreachable or answered
	// with a non-success status.
	ErrFetchFailed = fmt.Errorf("%w: fetch failed", ErrProductsUnavailable)

	// ErrDecodeFailed indicates the payload did not match the product schema.
	ErrDecodeFailed = fmt.Errorf("%w: decode failed", ErrProductsUnavailable)
)

// QueryError records the stage at which a query failed.
type QueryError struct {
	Stage Stage
	Err   error
}

// Error implements the error interface.
func (e *QueryError) Error() string {
	return fmt.Sprintf("catalog query failed while %s: %v", e.Stage, e.Err)
}

// Unwrap returns the underlying error.
func (e *QueryError) Unwrap() error {
	return e.Err
}
