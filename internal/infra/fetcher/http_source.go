package fetcher

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"beer-catalog/internal/resilience/circuitbreaker"
)

// HTTPSource fetches the product payload with a single GET.
//
// There are no retries. Each upstream host has its own circuit; repeated
// failures of one host make fetches from that host fail fast with
// circuitbreaker.ErrOpen while other hosts are unaffected.
type HTTPSource struct {
	client   *http.Client
	breakers *circuitbreaker.Group
	config   Config
	logger   *slog.Logger
}

// NewHTTPSource builds an HTTPSource. A nil breakers group gets
// circuitbreaker.CatalogSourceConfig; a nil logger uses slog.Default.
func NewHTTPSource(cfg Config, breakers *circuitbreaker.Group, logger *slog.Logger) *HTTPSource {
	if breakers == nil {
		breakers = circuitbreaker.NewGroup(circuitbreaker.CatalogSourceConfig(), 0)
	}
	if logger == nil {
		logger = slog.Default()
	}

	s := &HTTPSource{breakers: breakers, config: cfg, logger: logger}

	dialer := &net.Dialer{
		Timeout:   5 * time.Second,
		KeepAlive: 30 * time.Second,
	}
	if cfg.DenyPrivateIPs {
		dialer.Control = guardDial
	}

	s.client = &http.Client{
		Transport: &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			DialContext:         dialer.DialContext,
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
			TLSHandshakeTimeout: 5 * time.Second,
			TLSClientConfig: &tls.Config{
				MinVersion: tls.VersionTLS12,
			},
		},
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) > s.config.MaxRedirects {
				return fmt.Errorf("%w: %d redirects", ErrTooManyRedirects, len(via))
			}
			if err := validateURL(req.Context(), req.URL.String(), s.config.DenyPrivateIPs); err != nil {
				return fmt.Errorf("redirect target validation failed: %w", err)
			}
			return nil
		},
	}

	return s
}

// Fetch implements catalog.ProductSource.
func (s *HTTPSource) Fetch(ctx context.Context, location string) ([]byte, error) {
	if err := validateURL(ctx, location, s.config.DenyPrivateIPs); err != nil {
		return nil, err
	}

	return circuitbreaker.Do(s.breakers.Get(breakerKey(location)), func() ([]byte, error) {
		return s.doFetch(ctx, location)
	})
}

func (s *HTTPSource) doFetch(ctx context.Context, location string) ([]byte, error) {
	reqCtx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, location, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInvalidURL, err)
	}
	req.Header.Set("Accept", "application/json")
	if s.config.UserAgent != "" {
		req.Header.Set("User-Agent", s.config.UserAgent)
	}

	start := time.Now()
	resp, err := s.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w after %v: %w", ErrTimeout, time.Since(start).Round(time.Millisecond), err)
		}
		var urlErr *url.Error
		if errors.As(err, &urlErr) && isPolicyError(urlErr.Err) {
			return nil, urlErr.Err
		}
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("%w: %s", ErrUpstreamStatus, resp.Status)
	}

	if resp.ContentLength > s.config.MaxBodySize {
		return nil, fmt.Errorf("%w: content length %d exceeds limit %d",
			ErrBodyTooLarge, resp.ContentLength, s.config.MaxBodySize)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, s.config.MaxBodySize+1))
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w while reading body: %w", ErrTimeout, err)
		}
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if int64(len(body)) > s.config.MaxBodySize {
		return nil, fmt.Errorf("%w: response exceeds limit %d bytes", ErrBodyTooLarge, s.config.MaxBodySize)
	}

	s.logger.Debug("catalog payload fetched",
		slog.String("host", req.URL.Host),
		slog.Int("status", resp.StatusCode),
		slog.Int("bytes", len(body)),
		slog.Duration("duration", time.Since(start)))

	return body, nil
}

// breakerKey is the lower-cased host[:port] of an already validated location.
func breakerKey(location string) string {
	u, err := url.Parse(location)
	if err != nil {
		return location
	}
	return strings.ToLower(u.Host)
}

// isPolicyError reports errors raised by our own redirect or dial checks.
func isPolicyError(err error) bool {
	return errors.Is(err, ErrTooManyRedirects) ||
		errors.Is(err, ErrPrivateIP) ||
		errors.Is(err, ErrInvalidURL)
}
