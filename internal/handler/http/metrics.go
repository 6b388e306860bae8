package http

import (
	"net/http"
	"time"

	"beer-catalog/internal/handler/http/responsewriter"
	"beer-catalog/internal/observability/metrics"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// knownRoutes bounds the path label; anything else is recorded as "other".
var knownRoutes = map[string]struct{}{
	"/priceRange":   {},
	"/priceExactly": {},
	"/mostBottles":  {},
	"/all":          {},
	"/health":       {},
	"/live":         {},
	"/metrics":      {},
}

// routeLabel maps a request path to a bounded metric label.
func routeLabel(path string) string {
	if _, ok := knownRoutes[path]; ok {
		return path
	}
	return "other"
}

// MetricsMiddleware records request count, latency, in-flight gauge and
// response size.
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		metrics.HTTPRequestsInFlight.Inc()
		defer metrics.HTTPRequestsInFlight.Dec()

		rw := responsewriter.Wrap(w)
		start := time.Now()
		next.ServeHTTP(rw, r)

		metrics.RecordHTTPRequest(r.Method, routeLabel(r.URL.Path), rw.StatusCode(), time.Since(start), rw.BytesWritten())
	})
}

// MetricsHandler returns an HTTP handler for the Prometheus metrics endpoint.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
