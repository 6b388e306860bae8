package fetcher

import (
	"context"
	"fmt"
	"io"
	"os"
)

// FileSource reads the product payload from a local file. It backs the CLI
// for offline or fixture-driven runs.
type FileSource struct {
	// MaxBodySize caps the bytes read; zero means DefaultConfig().MaxBodySize.
	MaxBodySize int64
}

// Fetch implements catalog.ProductSource. location is a filesystem path.
func (s FileSource) Fetch(ctx context.Context, location string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if location == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidURL)
	}

	limit := s.MaxBodySize
	if limit <= 0 {
		limit = DefaultConfig().MaxBodySize
	}

	// #nosec G304 -- path is chosen by the operator running the CLI
	f, err := os.Open(location)
	if err != nil {
		return nil, fmt.Errorf("open catalog file: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	body, err := io.ReadAll(io.LimitReader(f, limit+1))
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	if int64(len(body)) > limit {
		return nil, fmt.Errorf("%w: %s exceeds limit %d bytes", ErrBodyTooLarge, location, limit)
	}
	return body, nil
}
