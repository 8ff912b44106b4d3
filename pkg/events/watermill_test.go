package events

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/ghuser/gardenhub/pkg/config"
	"github.com/ghuser/gardenhub/pkg/kernel"
	"github.com/ghuser/gardenhub/pkg/logger"
)

func nopLogger() logger.Logger {
	return logger.New(&config.Config{LogLevel: "error"})
}

var fastRetry = retryPolicy{attempts: 3, baseDelay: time.Millisecond}

func countingHandler(failures int, calls *int) func(context.Context, *message.Message) error {
	return func(context.Context, *message.Message) error {
		*calls++
		if *calls <= failures {
			return errors.New("projection store unavailable")
		}
		return nil
	}
}

func TestRetryWithBackoff(t *testing.T) {
	tests := []struct {
		name      string
		failures  int
		wantErr   bool
		wantCalls int
	}{
		{name: "succeeds first time", failures: 0, wantCalls: 1},
		{name: "succeeds after transient failures", failures: 2, wantCalls: 3},
		{name: "gives up after all attempts", failures: 10, wantErr: true, wantCalls: 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			msg := message.NewMessage("id", nil)
			err := retryWithBackoff(context.Background(), msg, countingHandler(tt.failures, &calls), fastRetry, nopLogger())
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.wantCalls, calls)
		})
	}
}

func TestRetryWithBackoff_StopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err := retryWithBackoff(ctx, message.NewMessage("id", nil), countingHandler(10, &calls),
		retryPolicy{attempts: 3, baseDelay: time.Second}, nopLogger())

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestRetryWithBackoff_PermanentFailureIsNotRetried(t *testing.T) {
	calls := 0
	gone := fmt.Errorf("growing unit 42: %w", kernel.ErrNotFound)
	handler := func(context.Context, *message.Message) error {
		calls++
		return gone
	}

	err := retryWithBackoff(context.Background(), message.NewMessage("id", nil), handler, fastRetry, nopLogger())

	assert.ErrorIs(t, err, kernel.ErrNotFound)
	assert.Equal(t, 1, calls)
}

func TestSettle(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantAck bool
	}{
		{name: "success is acked", err: nil, wantAck: true},
		{name: "missing aggregate is acked", err: fmt.Errorf("project: %w", kernel.ErrNotFound), wantAck: true},
		{name: "invalid payload is acked", err: fmt.Errorf("decode: %w", kernel.ErrValidation), wantAck: true},
		{name: "transient failure is nacked", err: errors.New("mongo: connection refused"), wantAck: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := message.NewMessage("id", nil)
			settle(msg, tt.err)

			done := msg.Nacked()
			if tt.wantAck {
				done = msg.Acked()
			}
			select {
			case <-done:
			default:
				t.Fatalf("message not settled as expected (ack=%v)", tt.wantAck)
			}
		})
	}
}

func TestRetryPolicyFrom(t *testing.T) {
	p := retryPolicyFrom(&config.Config{EventMaxRetries: 5, EventRetryDelay: 2 * time.Second})
	assert.Equal(t, retryPolicy{attempts: 5, baseDelay: 2 * time.Second}, p)

	p = retryPolicyFrom(&config.Config{})
	assert.Equal(t, 1, p.attempts)
	assert.Equal(t, time.Second, p.baseDelay)
}

func TestStartForwarder_RequiresForwarderBus(t *testing.T) {
	bus := &EventBus{useForwarder: false}
	assert.ErrorIs(t, bus.StartForwarder(context.Background()), errNotForwarder)
}

func TestDeliver_ContinuesPublisherTrace(t *testing.T) {
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	defer tp.Shutdown(context.Background()) //nolint:errcheck
	otel.SetTextMapPropagator(propagation.TraceContext{})

	pubCtx, pubSpan := tp.Tracer("test").Start(context.Background(), "publish")
	wantTrace := pubSpan.SpanContext().TraceID()
	pubSpan.End()

	msg := message.NewMessage("id", nil)
	carrier := propagation.MapCarrier{}
	otel.GetTextMapPropagator().Inject(pubCtx, carrier)
	for k, v := range carrier {
		msg.Metadata.Set(k, v)
	}
	msg.Metadata.Set(MetaAggregateType, "growing_unit")

	bus := &EventBus{log: nopLogger(), retry: fastRetry, tracer: tp.Tracer("events")}
	calls := 0
	require.NoError(t, bus.deliver(context.Background(), "growing_unit.created", msg, countingHandler(0, &calls)))

	var handled sdktrace.ReadOnlySpan
	for _, s := range rec.Ended() {
		if s.Name() == "events.handle growing_unit.created" {
			handled = s
		}
	}
	require.NotNil(t, handled)
	assert.Equal(t, wantTrace, handled.SpanContext().TraceID())
}
