package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordQuery(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		success bool
		result  string
	}{
		{name: "success", query: "priceRange", success: true, result: "success"},
		{name: "failure", query: "all", success: false, result: "failure"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			counter := CatalogQueriesTotal.WithLabelValues(tt.query, tt.result)
			before := testutil.ToFloat64(counter)

			RecordQuery(tt.query, tt.success, 150*time.Millisecond)

			assert.Equal(t, before+1, testutil.ToFloat64(counter))
		})
	}
}

func TestRecordSourceFetch(t *testing.T) {
	success := SourceFetchTotal.WithLabelValues("success")
	failure := SourceFetchTotal.WithLabelValues("failure")
	beforeSuccess := testutil.ToFloat64(success)
	beforeFailure := testutil.ToFloat64(failure)

	sizeBefore := sampleCount(t)
	RecordSourceFetch(true, time.Second, 4096)
	RecordSourceFetch(false, time.Second, 0)

	assert.Equal(t, beforeSuccess+1, testutil.ToFloat64(success))
	assert.Equal(t, beforeFailure+1, testutil.ToFloat64(failure))
	assert.Equal(t, sizeBefore+1, sampleCount(t), "size is observed for successful fetches only")
}

func TestRecordNormalized(t *testing.T) {
	beforeArticles := testutil.ToFloat64(ArticlesNormalizedTotal)
	beforeMissing := testutil.ToFloat64(ArticlesWithoutUnitPriceTotal)

	RecordNormalized(10, 3)

	assert.Equal(t, beforeArticles+10, testutil.ToFloat64(ArticlesNormalizedTotal))
	assert.Equal(t, beforeMissing+3, testutil.ToFloat64(ArticlesWithoutUnitPriceTotal))
}

func TestRecordHTTPRequest(t *testing.T) {
	counter := HTTPRequestsTotal.WithLabelValues("GET", "/priceRange", "200")
	before := testutil.ToFloat64(counter)

	assert.NotPanics(t, func() {
		RecordHTTPRequest("GET", "/priceRange", 200, 20*time.Millisecond, 512)
	})
	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}

func TestRecordRateLimited(t *testing.T) {
	before := testutil.ToFloat64(HTTPRateLimitedTotal)
	RecordRateLimited()
	assert.Equal(t, before+1, testutil.ToFloat64(HTTPRateLimitedTotal))
}

func sampleCount(t *testing.T) uint64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, SourceFetchSize.Write(&m))
	return m.GetHistogram().GetSampleCount()
}

func TestRecordBreakerState(t *testing.T) {
	RecordBreakerState("catalog-source", 2)
	assert.Equal(t, float64(2), testutil.ToFloat64(CircuitBreakerState.WithLabelValues("catalog-source")))

	RecordBreakerState("catalog-source", 0)
	assert.Equal(t, float64(0), testutil.ToFloat64(CircuitBreakerState.WithLabelValues("catalog-source")))
}

func TestRecordBreakerOpenedClosed(t *testing.T) {
	gauge := CircuitBreakersOpen.WithLabelValues("test-group")
	before := testutil.ToFloat64(gauge)

	RecordBreakerOpened("test-group")
	RecordBreakerOpened("test-group")
	RecordBreakerClosed("test-group")

	assert.Equal(t, before+1, testutil.ToFloat64(gauge))
}
