package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"

	"github.com/utafrali/catalog-indexer/pkg/logger"
)

// requestLoggerLine runs one request through RequestLogger, has the handler
// log a line via the context logger, and returns the decoded line.
func requestLoggerLine(t *testing.T, prepare func(r *http.Request) *http.Request) map[string]any {
	t.Helper()

	var buf bytes.Buffer
	base := logger.NewWithWriter("catalog-indexer", "info", &buf)

	handler := RequestLogger(base)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.FromContext(r.Context()).Info("reindex requested")
		w.WriteHeader(http.StatusAccepted)
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/index/reindex", nil)
	if prepare != nil {
		req = prepare(req)
	}
	handler.ServeHTTP(httptest.NewRecorder(), req)

	require.NotZero(t, buf.Len(), "handler must have a usable context logger")

	var out map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	return out
}

func TestRequestLogger_BareRequest(t *testing.T) {
	out := requestLoggerLine(t, nil)

	assert.Equal(t, "reindex requested", out["msg"])
	assert.NotContains(t, out, "user_id")
	assert.NotContains(t, out, "correlation_id")
}

func TestRequestLogger_CarriesCorrelationID(t *testing.T) {
	out := requestLoggerLine(t, func(r *http.Request) *http.Request {
		ctx := logger.WithCorrelationID(r.Context(), "reindex-7f3a")
		return r.WithContext(ctx)
	})

	assert.Equal(t, "reindex-7f3a", out["correlation_id"])
}

func TestRequestLogger_UserIDSources(t *testing.T) {
	t.Run("from auth context", func(t *testing.T) {
		out := requestLoggerLine(t, func(r *http.Request) *http.Request {
			ctx := context.WithValue(r.Context(), userIDKey, "admin")
			return r.WithContext(ctx)
		})
		assert.Equal(t, "admin", out["user_id"])
	})

	t.Run("from X-User-ID header", func(t *testing.T) {
		out := requestLoggerLine(t, func(r *http.Request) *http.Request {
			r.Header.Set("X-User-ID", "ops-bot")
			return r
		})
		assert.Equal(t, "ops-bot", out["user_id"])
	})

	t.Run("auth context wins over the header", func(t *testing.T) {
		out := requestLoggerLine(t, func(r *http.Request) *http.Request {
			r.Header.Set("X-User-ID", "ops-bot")
			ctx := context.WithValue(r.Context(), userIDKey, "admin")
			return r.WithContext(ctx)
		})
		assert.Equal(t, "admin", out["user_id"])
	})
}

func TestRequestLogger_CarriesTraceFields(t *testing.T) {
	out := requestLoggerLine(t, func(r *http.Request) *http.Request {
		traceID, err := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
		require.NoError(t, err)
		spanID, err := trace.SpanIDFromHex("00f067aa0ba902b7")
		require.NoError(t, err)

		sc := trace.NewSpanContext(trace.SpanContextConfig{
			TraceID:    traceID,
			SpanID:     spanID,
			TraceFlags: trace.FlagsSampled,
		})
		return r.WithContext(trace.ContextWithSpanContext(r.Context(), sc))
	})

	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", out["trace_id"])
	assert.Equal(t, "00f067aa0ba902b7", out["span_id"])
}
