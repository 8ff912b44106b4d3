// Package workflows connects to Temporal and hosts workers. Workflow
// definitions live with the bounded context that owns them.
package workflows

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	"go.temporal.io/sdk/interceptor"
	temporallog "go.temporal.io/sdk/log"
	"go.temporal.io/sdk/worker"

	"github.com/ghuser/gardenhub/pkg/logger"
)

// TemporalClient is a connected Temporal client whose workflow starts and
// activity executions join the caller's OTel trace.
type TemporalClient struct {
	Client    client.Client
	Namespace string

	tracing interceptor.Interceptor
	log     logger.Logger
}

// NewTemporalClient dials hostPort. Call Close on shutdown.
func NewTemporalClient(ctx context.Context, hostPort, namespace string, log logger.Logger) (*TemporalClient, error) {
	tracing, err := temporalotel.NewTracingInterceptor(temporalotel.TracerOptions{
		Tracer: otel.Tracer("gardenhub/temporal"),
	})
	if err != nil {
		return nil, fmt.Errorf("create temporal otel interceptor: %w", err)
	}

	c, err := client.DialContext(ctx, client.Options{
		HostPort:     hostPort,
		Namespace:    namespace,
		Logger:       newTemporalLogger(log),
		Interceptors: []interceptor.ClientInterceptor{tracing},
	})
	if err != nil {
		return nil, fmt.Errorf("dial temporal server at %s: %w", hostPort, err)
	}

	log.Info("temporal client connected", "host_port", hostPort, "namespace", namespace)
	return &TemporalClient{Client: c, Namespace: namespace, tracing: tracing, log: log}, nil
}

// NewWorker returns a worker polling taskQueue with tracing enabled.
// Register workflows and activities on it before calling Run.
func (tc *TemporalClient) NewWorker(taskQueue string) worker.Worker {
	opts := worker.Options{}
	if tc.tracing != nil {
		opts.Interceptors = []interceptor.WorkerInterceptor{tc.tracing}
	}
	return worker.New(tc.Client, taskQueue, opts)
}

// Run runs w until ctx is cancelled.
func (tc *TemporalClient) Run(ctx context.Context, w worker.Worker) error {
	interrupt := make(chan interface{})
	go func() {
		<-ctx.Done()
		close(interrupt)
	}()
	if err := w.Run(interrupt); err != nil {
		return fmt.Errorf("temporal worker: %w", err)
	}
	return nil
}

func (tc *TemporalClient) Close() {
	tc.Client.Close()
	tc.log.Info("temporal client closed")
}

// temporalLogger adapts logger.Logger to Temporal's log.Logger.
type temporalLogger struct {
	log logger.Logger
}

func newTemporalLogger(log logger.Logger) temporallog.Logger {
	return &temporalLogger{log: log.With("component", "temporal")}
}

func (l *temporalLogger) Debug(msg string, keyvals ...interface{}) { l.log.Debug(msg, keyvals...) }
func (l *temporalLogger) Info(msg string, keyvals ...interface{})  { l.log.Info(msg, keyvals...) }
func (l *temporalLogger) Warn(msg string, keyvals ...interface{})  { l.log.Warn(msg, keyvals...) }
func (l *temporalLogger) Error(msg string, keyvals ...interface{}) { l.log.Error(msg, keyvals...) }

// With satisfies temporallog.WithLogger so workflow loggers keep their fields.
func (l *temporalLogger) With(keyvals ...interface{}) temporallog.Logger {
	return &temporalLogger{log: l.log.With(keyvals...)}
}
