package telemetry

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
)

// InstrumentationName scopes every tracer and meter created by application code.
const InstrumentationName = "github.com/ghuser/gardenhub"

// Tracer returns the application tracer from the global provider.
func Tracer() trace.Tracer {
	return otel.Tracer(InstrumentationName)
}

// Meter returns the application meter from the global provider.
func Meter() metric.Meter {
	return otel.Meter(InstrumentationName)
}

// Counter creates an Int64 counter on the application meter. An invalid name
// yields a no-op counter so callers never need a nil check.
func Counter(name, description string) metric.Int64Counter {
	c, err := Meter().Int64Counter(name, metric.WithDescription(description))
	if err != nil {
		otel.Handle(err)
		return noop.Int64Counter{}
	}
	return c
}
