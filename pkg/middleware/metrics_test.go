package middleware

import (
	"bufio"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// findMetric pulls the first metric out of a collector whose labels contain
// every given pair.
func findMetric(c prometheus.Collector, labels map[string]string) *dto.Metric {
	ch := make(chan prometheus.Metric, 100)
	c.Collect(ch)
	close(ch)

	for m := range ch {
		d := &dto.Metric{}
		if err := m.Write(d); err != nil {
			continue
		}

		matched := 0
		for _, lp := range d.GetLabel() {
			if want, ok := labels[lp.GetName()]; ok && lp.GetValue() == want {
				matched++
			}
		}
		if matched == len(labels) {
			return d
		}
	}
	return nil
}

// statusRouter mounts the metrics middleware in front of a fake status
// endpoint, the way the indexer's router does.
func statusRouter(service string, handler http.HandlerFunc) *chi.Mux {
	r := chi.NewRouter()
	r.Use(PrometheusMetrics(service))
	r.Get("/api/v1/index/status", handler)
	return r
}

func getStatus(r http.Handler) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/index/status", nil))
	return rec
}

func TestPrometheusMetrics_CountsRequestsByRoute(t *testing.T) {
	r := statusRouter("indexer-count", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	for range 3 {
		assert.Equal(t, http.StatusOK, getStatus(r).Code)
	}

	m := findMetric(httpRequestsTotal, map[string]string{
		"service": "indexer-count",
		"method":  "GET",
		"path":    "/api/v1/index/status",
		"status":  "200",
	})
	require.NotNil(t, m)
	assert.GreaterOrEqual(t, m.GetCounter().GetValue(), float64(3))
}

func TestPrometheusMetrics_ObservesDuration(t *testing.T) {
	r := statusRouter("indexer-duration", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	})

	require.Equal(t, http.StatusAccepted, getStatus(r).Code)

	m := findMetric(httpRequestDuration, map[string]string{
		"service": "indexer-duration",
		"status":  "202",
	})
	require.NotNil(t, m)
	assert.GreaterOrEqual(t, m.GetHistogram().GetSampleCount(), uint64(1))
}

func TestPrometheusMetrics_TracksInFlight(t *testing.T) {
	seen := float64(-1)
	r := statusRouter("indexer-inflight", func(w http.ResponseWriter, _ *http.Request) {
		if m := findMetric(httpRequestsInFlight, map[string]string{"service": "indexer-inflight"}); m != nil {
			seen = m.GetGauge().GetValue()
		}
		w.WriteHeader(http.StatusOK)
	})

	getStatus(r)
	assert.GreaterOrEqual(t, seen, float64(1), "gauge must be raised while the handler runs")
}

func TestPrometheusMetrics_ImplicitStatusIs200(t *testing.T) {
	r := statusRouter("indexer-implicit", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"running":false}`))
	})

	getStatus(r)

	m := findMetric(httpRequestsTotal, map[string]string{
		"service": "indexer-implicit",
		"status":  "200",
	})
	require.NotNil(t, m, "a handler that never calls WriteHeader counts as 200")
}

// bareWriter is an http.ResponseWriter with neither Flush nor Hijack.
type bareWriter struct {
	header http.Header
}

func (w *bareWriter) Header() http.Header {
	if w.header == nil {
		w.header = make(http.Header)
	}
	return w.header
}

func (w *bareWriter) Write(b []byte) (int, error) { return len(b), nil }
func (w *bareWriter) WriteHeader(int)             {}

type flushRecorder struct {
	http.ResponseWriter
	flushed bool
}

func (w *flushRecorder) Flush() { w.flushed = true }

type hijackRecorder struct {
	http.ResponseWriter
	hijacked bool
}

func (w *hijackRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	w.hijacked = true
	return nil, nil, nil
}

func TestMetricsResponseWriter_FlushDelegates(t *testing.T) {
	inner := &flushRecorder{ResponseWriter: httptest.NewRecorder()}
	rw := &metricsResponseWriter{ResponseWriter: inner, statusCode: http.StatusOK}

	rw.Flush()
	assert.True(t, inner.flushed)

	// A writer without Flush support must not panic.
	(&metricsResponseWriter{ResponseWriter: &bareWriter{}, statusCode: http.StatusOK}).Flush()
}

func TestMetricsResponseWriter_HijackDelegates(t *testing.T) {
	inner := &hijackRecorder{ResponseWriter: httptest.NewRecorder()}
	rw := &metricsResponseWriter{ResponseWriter: inner, statusCode: http.StatusOK}

	_, _, err := rw.Hijack()
	require.NoError(t, err)
	assert.True(t, inner.hijacked)

	_, _, err = (&metricsResponseWriter{ResponseWriter: &bareWriter{}, statusCode: http.StatusOK}).Hijack()
	assert.ErrorIs(t, err, http.ErrNotSupported)
}

func TestMetricsResponseWriter_InterfaceSurface(t *testing.T) {
	rw := &metricsResponseWriter{ResponseWriter: httptest.NewRecorder()}

	_, isFlusher := any(rw).(http.Flusher)
	_, isHijacker := any(rw).(http.Hijacker)
	assert.True(t, isFlusher)
	assert.True(t, isHijacker)
}
