package metrics

import (
	"strconv"
	"time"
)

func result(success bool) string {
	if success {
		return "success"
	}
	return "failure"
}

// RecordHTTPRequest records a completed HTTP request. path must already be
// normalized to keep label cardinality bounded.
func RecordHTTPRequest(method, path string, status int, duration time.Duration, responseSize int) {
	code := strconv.Itoa(status)
	HTTPRequestsTotal.WithLabelValues(method, path, code).Inc()
	HTTPRequestDuration.WithLabelValues(method, path, code).Observe(duration.Seconds())
	HTTPResponseSize.WithLabelValues(method, path).Observe(float64(responseSize))
}

// RecordRateLimited records a request rejected by the rate limiter.
func RecordRateLimited() {
	HTTPRateLimitedTotal.Inc()
}

// RecordQuery records the outcome and duration of a catalog query.
func RecordQuery(query string, success bool, duration time.Duration) {
	CatalogQueriesTotal.WithLabelValues(query, result(success)).Inc()
	CatalogQueryDuration.WithLabelValues(query).Observe(duration.Seconds())
}

// RecordSourceFetch records a catalog fetch attempt. size is only observed for
// successful fetches.
func RecordSourceFetch(success bool, duration time.Duration, size int) {
	SourceFetchTotal.WithLabelValues(result(success)).Inc()
	SourceFetchDuration.Observe(duration.Seconds())
	if success {
		SourceFetchSize.Observe(float64(size))
	}
}

// RecordNormalized records how many articles were normalized and how many of
// them carried no per-liter price.
func RecordNormalized(articles, withoutUnitPrice int) {
	ArticlesNormalizedTotal.Add(float64(articles))
	ArticlesWithoutUnitPriceTotal.Add(float64(withoutUnitPrice))
}

// RecordBreakerState sets the state gauge of a named circuit breaker.
func RecordBreakerState(circuit string, state int) {
	CircuitBreakerState.WithLabelValues(circuit).Set(float64(state))
}

// RecordBreakerOpened counts a circuit of group entering the open state.
func RecordBreakerOpened(group string) {
	CircuitBreakersOpen.WithLabelValues(group).Inc()
}

// RecordBreakerClosed counts a circuit of group leaving the open state.
func RecordBreakerClosed(group string) {
	CircuitBreakersOpen.WithLabelValues(group).Dec()
}
