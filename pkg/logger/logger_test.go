package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/ghuser/gardenhub/pkg/config"
)

func newTestLogger(buf *bytes.Buffer) Logger {
	return newLogger(buf, &config.Config{
		LogLevel:       "debug",
		ServiceName:    "gardenhub",
		ServiceVersion: "test",
		Environment:    config.EnvTesting,
	})
}

func setupTracer(t *testing.T) {
	t.Helper()
	tp := sdktrace.NewTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
}

func lastEntry(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.NotEmpty(t, lines)
	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[len(lines)-1]), &m))
	return m
}

func TestNew_AddsServiceIdentity(t *testing.T) {
	var buf bytes.Buffer
	newTestLogger(&buf).Info("started")

	entry := lastEntry(t, &buf)
	assert.Equal(t, "gardenhub", entry["service"])
	assert.Equal(t, "test", entry["version"])
	assert.Equal(t, config.EnvTesting, entry["env"])
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := newLogger(&buf, &config.Config{LogLevel: "warn"})

	log.Info("dropped")
	assert.Empty(t, buf.String())

	log.Warn("kept")
	assert.Equal(t, "kept", lastEntry(t, &buf)["msg"])
}

func TestContextHandler_TraceIDs(t *testing.T) {
	setupTracer(t)

	t.Run("with span", func(t *testing.T) {
		var buf bytes.Buffer
		ctx, span := otel.Tracer("test").Start(context.Background(), "projection")
		defer span.End()

		newTestLogger(&buf).ErrorContext(ctx, "projection failed", "error", errors.New("boom"), "growing_unit_id", "123")

		entry := lastEntry(t, &buf)
		assert.Equal(t, span.SpanContext().TraceID().String(), entry["trace_id"])
		assert.Equal(t, span.SpanContext().SpanID().String(), entry["span_id"])
		assert.Equal(t, "123", entry["growing_unit_id"])
		assert.Equal(t, "boom", entry["error"])
	})

	t.Run("without span", func(t *testing.T) {
		var buf bytes.Buffer
		newTestLogger(&buf).InfoContext(context.Background(), "idle")

		entry := lastEntry(t, &buf)
		assert.NotContains(t, entry, "trace_id")
		assert.NotContains(t, entry, "span_id")
	})

	t.Run("nested spans share the trace", func(t *testing.T) {
		var buf bytes.Buffer
		log := newTestLogger(&buf)

		ctx, parent := otel.Tracer("test").Start(context.Background(), "parent")
		defer parent.End()
		log.InfoContext(ctx, "parent")
		parentEntry := lastEntry(t, &buf)

		ctx, child := otel.Tracer("test").Start(ctx, "child")
		defer child.End()
		log.InfoContext(ctx, "child")
		childEntry := lastEntry(t, &buf)

		assert.Equal(t, parentEntry["trace_id"], childEntry["trace_id"])
		assert.NotEqual(t, parentEntry["span_id"], childEntry["span_id"])
	})
}

func TestWithAttrs(t *testing.T) {
	var buf bytes.Buffer
	ctx := WithAttrs(context.Background(), slog.String("gardener_id", "g-1"))
	ctx = WithAttrs(ctx, slog.String("location_id", "l-1"))

	newTestLogger(&buf).InfoContext(ctx, "location deleted")

	entry := lastEntry(t, &buf)
	assert.Equal(t, "g-1", entry["gardener_id"])
	assert.Equal(t, "l-1", entry["location_id"])
}

func TestMiddleware(t *testing.T) {
	var buf bytes.Buffer
	log := newTestLogger(&buf)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(Middleware(log))
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Get("/growing-units/{id}", func(w http.ResponseWriter, req *http.Request) {
		if chi.URLParam(req, "id") == "missing" {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(`{"id":"1"}`))
	})

	t.Run("logs route pattern and size", func(t *testing.T) {
		buf.Reset()
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/growing-units/1", http.NoBody))

		entry := lastEntry(t, &buf)
		assert.Equal(t, "INFO", entry["level"])
		assert.Equal(t, "/growing-units/{id}", entry["route"])
		assert.EqualValues(t, len(`{"id":"1"}`), entry["bytes"])
		assert.Contains(t, entry, "request_id")
	})

	t.Run("client errors log at warn", func(t *testing.T) {
		buf.Reset()
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/growing-units/missing", http.NoBody))

		assert.Equal(t, "WARN", lastEntry(t, &buf)["level"])
	})

	t.Run("health probes are not logged", func(t *testing.T) {
		buf.Reset()
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", http.NoBody))

		assert.Empty(t, buf.String())
	})
}

func TestRecovery(t *testing.T) {
	var buf bytes.Buffer
	h := Recovery(newTestLogger(&buf))(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("capacity table corrupted")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", http.NoBody))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, rec.Body.String())
	assert.Equal(t, "panic recovered", lastEntry(t, &buf)["msg"])
}
