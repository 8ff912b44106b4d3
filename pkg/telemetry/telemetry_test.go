package telemetry

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/ghuser/gardenhub/pkg/config"
)

func baseConfig() *config.Config {
	return &config.Config{
		ServiceName:    "gardenhub-test",
		ServiceVersion: "test",
		Environment:    config.EnvTesting,
	}
}

func setup(t *testing.T) http.Handler {
	t.Helper()
	shutdown, handler, err := Setup(context.Background(), baseConfig())
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, shutdown(context.Background())) })
	return handler
}

func TestSetup_ServesMetrics(t *testing.T) {
	handler := setup(t)

	Counter("garden.test.transplants", "test counter").Add(context.Background(), 1)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", http.NoBody))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "text/plain")
	assert.Contains(t, rr.Body.String(), "go_goroutines")
}

func TestSetup_CanRunTwice(t *testing.T) {
	setup(t)
	setup(t)
}

func TestSetup_InstallsTracePropagation(t *testing.T) {
	setup(t)

	ctx, span := Tracer().Start(context.Background(), "publish")
	defer span.End()
	require.True(t, span.SpanContext().IsValid())

	carrier := propagation.MapCarrier{}
	otel.GetTextMapPropagator().Inject(ctx, carrier)
	assert.NotEmpty(t, carrier.Get("traceparent"))
}

func TestSampler(t *testing.T) {
	assert.Equal(t, sdktrace.ParentBased(sdktrace.AlwaysSample()).Description(), sampler(0).Description())
	assert.Equal(t, sdktrace.ParentBased(sdktrace.AlwaysSample()).Description(), sampler(1).Description())
	assert.Contains(t, sampler(0.25).Description(), "TraceIDRatioBased{0.25}")
}

func TestSentry_DisabledWithoutDSN(t *testing.T) {
	require.NoError(t, SetupSentry(baseConfig()))
	ReportError(errors.New("projection failed"), map[string]string{"topic": "growing_unit.created"})
}
