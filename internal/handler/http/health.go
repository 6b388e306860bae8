package http

import (
	"log/slog"
	"net/http"
	"time"

	"beer-catalog/internal/handler/http/respond"
)

// HealthResponse represents the JSON response for the health endpoint.
type HealthResponse struct {
	Status    string                 `json:"status"`    // always "healthy" while serving
	Timestamp string                 `json:"timestamp"` // RFC 3339
	Checks    map[string]CheckStatus `json:"checks"`
	Version   string                 `json:"version"`
}

// CheckStatus represents the status of a single health check.
type CheckStatus struct {
	Status  string         `json:"status"`
	Message string         `json:"message,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

// BreakerGroup reports the per-host circuits of the catalog source.
type BreakerGroup interface {
	Name() string
	Len() int
	OpenCount() int
}

// HealthHandler reports process health. The service holds no stateful
// dependencies, so it always answers 200. Open circuits belong to single
// upstream hosts and are reported without degrading the service.
type HealthHandler struct {
	Version     string
	Breakers    BreakerGroup
	RateLimiter *RateLimiter
	now         func() time.Time
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	now := time.Now
	if h.now != nil {
		now = h.now
	}

	checks := make(map[string]CheckStatus)

	if h.Breakers != nil {
		checks["catalog_source"] = CheckStatus{
			Status: "healthy",
			Details: map[string]any{
				"name":          h.Breakers.Name(),
				"circuits":      h.Breakers.Len(),
				"open_circuits": h.Breakers.OpenCount(),
			},
		}
	}

	if h.RateLimiter != nil {
		checks["rate_limiter"] = CheckStatus{
			Status:  "healthy",
			Details: map[string]any{"active_clients": h.RateLimiter.ActiveClients()},
		}
	}

	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	respond.JSON(w, http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: now().UTC().Format(time.RFC3339),
		Checks:    checks,
		Version:   h.Version,
	})
}

// LiveHandler handles liveness probes.
type LiveHandler struct{}

func (LiveHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("ok")); err != nil {
		slog.Default().Debug("live: failed to write response", slog.Any("error", err))
	}
}
