package metrics_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sagarc03/stowfront/metrics"
)

func TestMetrics_Middleware(t *testing.T) {
	m := metrics.New()

	h := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	for range 3 {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	}

	expected := `
# HELP stowfront_http_requests_total Total number of HTTP requests processed, partitioned by status code and method.
# TYPE stowfront_http_requests_total counter
stowfront_http_requests_total{code="404",method="GET"} 3
`
	err := testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected), "stowfront_http_requests_total")
	assert.NoError(t, err)
}

func TestMetrics_Middleware_KeepsFlusher(t *testing.T) {
	m := metrics.New()

	var flushErr error
	h := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "chunk")
		flushErr = http.NewResponseController(w).Flush()
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))

	assert.NoError(t, flushErr)
	assert.True(t, rec.Flushed)
}

func TestMetrics_OutcomesAndBytes(t *testing.T) {
	m := metrics.New()

	m.ObserveOutcome("found")
	m.ObserveOutcome("found")
	m.ObserveOutcome("not_found")
	m.AddStreamedBytes(1024)
	m.AddStreamedBytes(0)

	expected := `
# HELP stowfront_proxy_outcomes_total Object reads partitioned by outcome (found, not_modified, not_found, upstream_error).
# TYPE stowfront_proxy_outcomes_total counter
stowfront_proxy_outcomes_total{outcome="found"} 2
stowfront_proxy_outcomes_total{outcome="not_found"} 1
# HELP stowfront_proxy_streamed_bytes_total Total number of object body bytes written to clients.
# TYPE stowfront_proxy_streamed_bytes_total counter
stowfront_proxy_streamed_bytes_total 1024
`
	err := testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected),
		"stowfront_proxy_outcomes_total", "stowfront_proxy_streamed_bytes_total")
	assert.NoError(t, err)
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *metrics.Metrics

	assert.NotPanics(t, func() {
		m.ObserveOutcome("found")
		m.AddStreamedBytes(10)
	})

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
	h := m.Middleware(next)
	require.NotNil(t, h)
}

func TestMetrics_Handler(t *testing.T) {
	m := metrics.New()
	m.ObserveOutcome("found")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `stowfront_proxy_outcomes_total{outcome="found"} 1`)
}
