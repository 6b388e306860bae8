package http

import (
	"fmt"
	"log/slog"
	"math"
	"net"
	"net/http"
	"runtime/debug"
	"strconv"
	"strings"
	"sync"
	"time"

	"beer-catalog/internal/handler/http/requestid"
	"beer-catalog/internal/handler/http/respond"
	"beer-catalog/internal/handler/http/responsewriter"
	"beer-catalog/internal/observability/metrics"

	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"
)

// Middleware decorates a handler.
type Middleware func(http.Handler) http.Handler

// Chain applies middleware so that the first argument is the outermost.
func Chain(h http.Handler, mws ...Middleware) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

// Logging returns middleware that logs each completed request with its
// request ID and trace ID.
func Logging(logger *slog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapped := responsewriter.Wrap(w)

			next.ServeHTTP(wrapped, r)

			duration := time.Since(start)
			status := wrapped.StatusCode()
			level := slog.LevelInfo
			if status >= 500 {
				level = slog.LevelError
			}

			logger.LogAttrs(r.Context(), level, "request completed",
				slog.String("request_id", requestid.FromContext(r.Context())),
				slog.String("trace_id", trace.SpanFromContext(r.Context()).SpanContext().TraceID().String()),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("source_url", respond.SanitizeText(r.URL.Query().Get("url"))),
				slog.String("remote_addr", r.RemoteAddr),
				slog.String("user_agent", r.Header.Get("User-Agent")),
				slog.Int("status", status),
				slog.Int("bytes", wrapped.BytesWritten()),
				slog.Duration("duration", duration),
				slog.String("duration_ms", fmt.Sprintf("%.2f", duration.Seconds()*1000)),
			)
		})
	}
}

// Recover returns middleware that turns panics into 500 responses.
func Recover(logger *slog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			wrapped := responsewriter.Wrap(w)
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				logger.Error("panic recovered",
					slog.String("request_id", requestid.FromContext(r.Context())),
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.Any("panic", rec),
					slog.String("stack", string(debug.Stack())),
				)
				if !wrapped.HeaderWritten() {
					respond.Error(wrapped, http.StatusInternalServerError, "internal server error")
				}
			}()
			next.ServeHTTP(wrapped, r)
		})
	}
}

// RateLimiterConfig configures RateLimiter.
type RateLimiterConfig struct {
	// RPS is the sustained request rate allowed per client.
	RPS float64
	// Burst is the bucket size.
	Burst int
	// IdleTTL evicts clients not seen for this long. Default 10m.
	IdleTTL time.Duration
	// TrustProxyHeaders uses X-Forwarded-For / X-Real-IP for the client key.
	// Enable only behind a proxy that overwrites them.
	TrustProxyHeaders bool
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter limits requests per client IP with a token bucket.
type RateLimiter struct {
	cfg       RateLimiterConfig
	mu        sync.Mutex
	clients   map[string]*clientLimiter
	lastClean time.Time
	now       func() time.Time
}

// NewRateLimiter creates a per-IP token bucket limiter.
func NewRateLimiter(cfg RateLimiterConfig) *RateLimiter {
	if cfg.IdleTTL <= 0 {
		cfg.IdleTTL = 10 * time.Minute
	}
	if cfg.Burst < 1 {
		cfg.Burst = 1
	}
	return &RateLimiter{
		cfg:       cfg,
		clients:   make(map[string]*clientLimiter),
		lastClean: time.Now(),
		now:       time.Now,
	}
}

// Limit answers 429 with Retry-After once a client's bucket is empty.
func (rl *RateLimiter) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := extractIP(r, rl.cfg.TrustProxyHeaders)
		lim := rl.limiter(ip)

		res := lim.ReserveN(rl.now(), 1)
		if delay := res.DelayFrom(rl.now()); delay > 0 {
			res.CancelAt(rl.now())
			metrics.RecordRateLimited()
			w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(delay.Seconds()))))
			respond.Error(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// ActiveClients returns the number of tracked client buckets.
func (rl *RateLimiter) ActiveClients() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.clients)
}

func (rl *RateLimiter) limiter(ip string) *rate.Limiter {
	now := rl.now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	if now.Sub(rl.lastClean) >= rl.cfg.IdleTTL {
		for key, c := range rl.clients {
			if now.Sub(c.lastSeen) >= rl.cfg.IdleTTL {
				delete(rl.clients, key)
			}
		}
		rl.lastClean = now
	}

	c, ok := rl.clients[ip]
	if !ok {
		c = &clientLimiter{limiter: rate.NewLimiter(rate.Limit(rl.cfg.RPS), rl.cfg.Burst)}
		rl.clients[ip] = c
	}
	c.lastSeen = now
	return c.limiter
}

// extractIP returns the client address. Forwarding headers are consulted
// only when trustProxy is set.
func extractIP(r *http.Request, trustProxy bool) string {
	if trustProxy {
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			first, _, _ := strings.Cut(xff, ",")
			if ip := net.ParseIP(strings.TrimSpace(first)); ip != nil {
				return ip.String()
			}
		}
		if xri := r.Header.Get("X-Real-IP"); xri != "" {
			if ip := net.ParseIP(strings.TrimSpace(xri)); ip != nil {
				return ip.String()
			}
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
