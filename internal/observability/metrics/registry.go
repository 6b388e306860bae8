package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics track inbound request patterns and latency.
var (
	// HTTPRequestsTotal counts HTTP requests by method, path, and status.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration buckets cover fast aggregations up to slow remote catalogs.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestsInFlight tracks requests currently being served.
	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Current number of HTTP requests being served",
		},
	)

	// HTTPResponseSize measures response body size in bytes.
	HTTPResponseSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_response_size_bytes",
			Help:    "HTTP response size in bytes",
			Buckets: prometheus.ExponentialBuckets(100, 10, 8),
		},
		[]string{"method", "path"},
	)

	// HTTPRateLimitedTotal counts requests rejected by the rate limiter.
	HTTPRateLimitedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "http_rate_limited_total",
			Help: "Total number of requests rejected by the rate limiter",
		},
	)
)

// Catalog metrics track query outcomes and the remote catalog source.
var (
	// CatalogQueriesTotal counts queries by type and result (success, failure).
	CatalogQueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_queries_total",
			Help: "Total number of catalog queries",
		},
		[]string{"query", "result"},
	)

	// CatalogQueryDuration measures the full pipeline time of a query.
	CatalogQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "catalog_query_duration_seconds",
			Help:    "Time taken to answer a catalog query",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"query"},
	)

	// SourceFetchTotal counts catalog fetch attempts by result.
	SourceFetchTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_source_fetch_total",
			Help: "Total number of catalog source fetch attempts",
		},
		[]string{"result"},
	)

	// SourceFetchDuration measures time to fetch a catalog payload.
	SourceFetchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "catalog_source_fetch_duration_seconds",
			Help:    "Time taken to fetch a catalog payload",
			Buckets: []float64{0.05, 0.1, 0.2, 0.4, 0.8, 1.6, 3.2, 6.4, 12.8},
		},
	)

	// SourceFetchSize measures fetched payload size in bytes.
	SourceFetchSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "catalog_source_fetch_size_bytes",
			Help:    "Fetched catalog payload size in bytes",
			Buckets: prometheus.ExponentialBuckets(1024, 4, 8),
		},
	)

	// ArticlesNormalizedTotal counts articles passed through normalization.
	ArticlesNormalizedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "catalog_articles_normalized_total",
			Help: "Total number of normalized articles",
		},
	)

	// ArticlesWithoutUnitPriceTotal counts articles whose text carried no
	// parsable per-liter price.
	ArticlesWithoutUnitPriceTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "catalog_articles_without_unit_price_total",
			Help: "Total number of normalized articles without a stated unit price",
		},
	)

	// CircuitBreakerState reports breaker state per circuit
	// (0 = closed, 1 = half-open, 2 = open).
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Current circuit breaker state (0 closed, 1 half-open, 2 open)",
		},
		[]string{"circuit"},
	)

	// CircuitBreakersOpen counts open circuits within a keyed breaker group.
	CircuitBreakersOpen = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breakers_open",
			Help: "Number of open circuits in a per-key breaker group",
		},
		[]string{"group"},
	)
)
