// Package events carries garden domain events between the API and the worker
// over Watermill's PostgreSQL transport.
//
// The API publishes through the forwarder so events land in the outbox table
// first; the forwarder daemon relays them to their topics. The worker
// subscribes with one consumer group per service name, so each event is
// projected by exactly one worker instance.
//
// Handlers must be idempotent. A failing handler is retried with exponential
// backoff and the message is Nacked once retries run out. Permanent failures
// (not found, invalid payload) skip retries and are Acked after reporting.
package events

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	watermillsql "github.com/ThreeDotsLabs/watermill-sql/v3/pkg/sql"
	"github.com/ThreeDotsLabs/watermill/components/forwarder"
	"github.com/ThreeDotsLabs/watermill/message"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/ghuser/gardenhub/pkg/config"
	"github.com/ghuser/gardenhub/pkg/kernel"
	"github.com/ghuser/gardenhub/pkg/logger"
)

const (
	outboxTopic         = "garden_outbox"
	outboxConsumerGroup = "garden-outbox-relay"
	errChanSize         = 100
	shutdownTimeout     = 30 * time.Second
)

var errNotForwarder = errors.New("events: bus was not created with a forwarder")

// retryPolicy bounds how often a subscriber handler is retried.
type retryPolicy struct {
	attempts  int
	baseDelay time.Duration
}

func retryPolicyFrom(cfg *config.Config) retryPolicy {
	p := retryPolicy{attempts: cfg.EventMaxRetries, baseDelay: cfg.EventRetryDelay}
	if p.attempts < 1 {
		p.attempts = 1
	}
	if p.baseDelay <= 0 {
		p.baseDelay = time.Second
	}
	return p
}

// EventBus publishes and subscribes garden domain events.
type EventBus struct {
	db         *sql.DB
	wlog       watermill.LoggerAdapter
	log        logger.Logger
	publisher  message.Publisher
	subscriber *watermillsql.Subscriber
	fwd        *forwarder.Forwarder
	retry      retryPolicy
	tracer     trace.Tracer
	wg         sync.WaitGroup

	useForwarder bool
}

// NewEventBus builds a bus that publishes straight to topic tables. The
// worker uses it for subscribing.
func NewEventBus(cfg *config.Config, log logger.Logger) (*EventBus, error) {
	return newEventBus(cfg, log, false)
}

// NewEventBusWithForwarder builds a bus whose Publish writes to the outbox
// topic. Call StartForwarder to relay outbox messages to their topics.
func NewEventBusWithForwarder(cfg *config.Config, log logger.Logger) (*EventBus, error) {
	return newEventBus(cfg, log, true)
}

func newEventBus(cfg *config.Config, log logger.Logger, useForwarder bool) (*EventBus, error) {
	db, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("events: open db: %w", err)
	}

	bus := &EventBus{
		db:           db,
		wlog:         &slogAdapter{log: log},
		log:          log,
		retry:        retryPolicyFrom(cfg),
		tracer:       otel.Tracer("gardenhub/events"),
		useForwarder: useForwarder,
	}

	pub, err := bus.sqlPublisher()
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	bus.publisher = bus.wrapOutbox(pub)

	bus.subscriber, err = bus.sqlSubscriber(cfg.ServiceName + "-projections")
	if err != nil {
		_ = pub.Close()
		_ = db.Close()
		return nil, err
	}
	return bus, nil
}

func (q *EventBus) sqlPublisher() (*watermillsql.Publisher, error) {
	pub, err := watermillsql.NewPublisher(q.db, watermillsql.PublisherConfig{
		SchemaAdapter:        watermillsql.DefaultPostgreSQLSchema{},
		AutoInitializeSchema: true,
	}, q.wlog)
	if err != nil {
		return nil, fmt.Errorf("events: new publisher: %w", err)
	}
	return pub, nil
}

func (q *EventBus) sqlSubscriber(group string) (*watermillsql.Subscriber, error) {
	sub, err := watermillsql.NewSubscriber(q.db, watermillsql.SubscriberConfig{
		SchemaAdapter:    watermillsql.DefaultPostgreSQLSchema{},
		OffsetsAdapter:   watermillsql.DefaultPostgreSQLOffsetsAdapter{},
		InitializeSchema: true,
		ConsumerGroup:    group,
	}, q.wlog)
	if err != nil {
		return nil, fmt.Errorf("events: new subscriber for %s: %w", group, err)
	}
	return sub, nil
}

// wrapOutbox routes pub through the outbox topic when the bus runs a forwarder.
func (q *EventBus) wrapOutbox(pub message.Publisher) message.Publisher {
	if !q.useForwarder {
		return pub
	}
	return forwarder.NewPublisher(pub, forwarder.PublisherConfig{ForwarderTopic: outboxTopic})
}

// StartForwarder runs the outbox relay in the background and returns once
// it is accepting messages. It may be called once per forwarder bus.
func (q *EventBus) StartForwarder(ctx context.Context) error {
	if !q.useForwarder {
		return errNotForwarder
	}
	if q.fwd != nil {
		return errors.New("events: forwarder already started")
	}

	outbox, err := q.sqlSubscriber(outboxConsumerGroup)
	if err != nil {
		return err
	}
	target, err := q.sqlPublisher()
	if err != nil {
		_ = outbox.Close()
		return err
	}

	fwd, err := forwarder.NewForwarder(outbox, target, q.wlog, forwarder.Config{ForwarderTopic: outboxTopic})
	if err != nil {
		_ = target.Close()
		_ = outbox.Close()
		return fmt.Errorf("events: create forwarder: %w", err)
	}
	q.fwd = fwd

	q.wg.Add(1)
	go func() {
		defer q.wg.Done()
		q.log.InfoContext(ctx, "events: outbox relay started", "topic", outboxTopic)
		if err := fwd.Run(ctx); err != nil {
			q.log.ErrorContext(ctx, "events: outbox relay stopped with error", "error", err)
			return
		}
		q.log.InfoContext(ctx, "events: outbox relay stopped")
	}()

	select {
	case <-fwd.Running():
		return nil
	case <-ctx.Done():
		return fmt.Errorf("events: waiting for outbox relay: %w", ctx.Err())
	}
}

// txPublisher returns a publisher that writes inside tx, through the outbox
// when the bus runs a forwarder. Tables already exist by then.
func (q *EventBus) txPublisher(tx *sql.Tx) (message.Publisher, error) {
	pub, err := watermillsql.NewPublisher(tx, watermillsql.PublisherConfig{
		SchemaAdapter: watermillsql.DefaultPostgreSQLSchema{},
	}, q.wlog)
	if err != nil {
		return nil, fmt.Errorf("events: new tx publisher: %w", err)
	}
	return q.wrapOutbox(pub), nil
}

// Publish sends msgs to topic with the caller's trace context in their metadata.
func (q *EventBus) Publish(ctx context.Context, topic string, msgs ...*message.Message) error {
	injectTrace(ctx, msgs)
	if err := q.publisher.Publish(topic, msgs...); err != nil { //nolint:contextcheck
		return fmt.Errorf("events: publish to %s: %w", topic, err)
	}
	return nil
}

// PublishTx writes msgs inside tx. They become visible to subscribers only
// when tx commits.
func (q *EventBus) PublishTx(ctx context.Context, tx *sql.Tx, topic string, msgs ...*message.Message) error {
	pub, err := q.txPublisher(tx)
	if err != nil {
		return err
	}
	injectTrace(ctx, msgs)
	if err := pub.Publish(topic, msgs...); err != nil { //nolint:contextcheck
		return fmt.Errorf("events: publish to %s in tx: %w", topic, err)
	}
	return nil
}

func injectTrace(ctx context.Context, msgs []*message.Message) {
	carrier := propagation.MapCarrier{}
	otel.GetTextMapPropagator().Inject(ctx, carrier)
	for _, msg := range msgs {
		for k, v := range carrier {
			msg.Metadata.Set(k, v)
		}
	}
}

// Subscribe consumes topic in the background. Each message runs in a span
// that continues the publisher's trace. Every handler error is sent on the
// returned channel, which callers must drain; see settle for which failures
// are redelivered. The channel closes when ctx is cancelled or the bus is
// closed.
func (q *EventBus) Subscribe(ctx context.Context, topic string, handler func(context.Context, *message.Message) error) (<-chan error, error) {
	ch, err := q.subscriber.Subscribe(ctx, topic)
	if err != nil {
		return nil, fmt.Errorf("events: subscribe to %s: %w", topic, err)
	}

	errCh := make(chan error, errChanSize)

	q.wg.Add(1)
	go func() {
		defer q.wg.Done()
		defer close(errCh)

		for msg := range ch {
			err := q.deliver(ctx, topic, msg, handler)
			settle(msg, err)
			if err == nil {
				continue
			}
			select {
			case errCh <- err:
			default:
				q.log.ErrorContext(ctx, "events: error channel full, dropping error", "topic", topic, "error", err)
			}
		}
	}()

	return errCh, nil
}

// settle Acks msg unless err may succeed on redelivery. The SQL subscriber
// redelivers a Nacked message before anything behind it on the topic, so
// permanent failures must be Acked or they stall the topic.
func settle(msg *message.Message, err error) {
	if err != nil && !IsPermanent(err) {
		msg.Nack()
		return
	}
	msg.Ack()
}

// IsPermanent reports whether err cannot be fixed by running the handler
// again: the aggregate is gone or the payload is invalid.
func IsPermanent(err error) bool {
	return errors.Is(err, kernel.ErrNotFound) || errors.Is(err, kernel.ErrValidation)
}

func (q *EventBus) deliver(ctx context.Context, topic string, msg *message.Message, handler func(context.Context, *message.Message) error) error {
	carrier := propagation.MapCarrier{}
	for k, v := range msg.Metadata {
		carrier[k] = v
	}
	ctx = otel.GetTextMapPropagator().Extract(ctx, carrier)

	ctx, span := q.tracer.Start(ctx, "events.handle "+topic,
		trace.WithSpanKind(trace.SpanKindConsumer),
		trace.WithAttributes(
			attribute.String("messaging.destination.name", topic),
			attribute.String("garden.aggregate_type", msg.Metadata.Get(MetaAggregateType)),
			attribute.String("garden.aggregate_id", msg.Metadata.Get(MetaAggregateID)),
		),
	)
	defer span.End()

	err := retryWithBackoff(ctx, msg, handler, q.retry, q.log)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

// retryWithBackoff runs handler until it succeeds or p.attempts is used up,
// doubling the delay after each failure.
func retryWithBackoff(ctx context.Context, msg *message.Message, handler func(context.Context, *message.Message) error, p retryPolicy, log logger.Logger) error {
	delay := p.baseDelay
	var err error
	for attempt := 1; attempt <= p.attempts; attempt++ {
		if err = handler(ctx, msg); err == nil {
			return nil
		}
		if IsPermanent(err) {
			return fmt.Errorf("events: handler failed permanently: %w", err)
		}
		if attempt == p.attempts {
			break
		}
		log.WarnContext(ctx, "events: handler failed, retrying",
			"event_id", msg.Metadata.Get(MetaEventID),
			"attempt", attempt,
			"next_delay", delay,
			"error", err,
		)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}
	return fmt.Errorf("events: handler failed after %d attempts: %w", p.attempts, err)
}

// Ping checks the bus database connection.
func (q *EventBus) Ping(ctx context.Context) error {
	if err := q.db.PingContext(ctx); err != nil {
		return fmt.Errorf("events: ping db: %w", err)
	}
	return nil
}

// Close stops subscriptions and the outbox relay, waits for in-flight
// handlers and releases the connection.
func (q *EventBus) Close() error {
	if err := q.subscriber.Close(); err != nil {
		return fmt.Errorf("events: close subscriber: %w", err)
	}
	if q.fwd != nil {
		if err := q.fwd.Close(); err != nil {
			return fmt.Errorf("events: close forwarder: %w", err)
		}
	}

	done := make(chan struct{})
	go func() {
		q.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(shutdownTimeout):
		q.log.Error("events: timed out waiting for in-flight handlers")
	}

	if err := q.publisher.Close(); err != nil {
		return fmt.Errorf("events: close publisher: %w", err)
	}
	return q.db.Close()
}

// slogAdapter routes Watermill's logs through logger.Logger.
type slogAdapter struct{ log logger.Logger }

func (a *slogAdapter) Error(msg string, err error, fields watermill.LogFields) {
	a.log.Error(msg, append(fieldsToArgs(fields), "error", err)...)
}
func (a *slogAdapter) Info(msg string, fields watermill.LogFields)  { a.log.Info(msg, fieldsToArgs(fields)...) }
func (a *slogAdapter) Debug(msg string, fields watermill.LogFields) { a.log.Debug(msg, fieldsToArgs(fields)...) }
func (a *slogAdapter) Trace(msg string, fields watermill.LogFields) { a.log.Debug(msg, fieldsToArgs(fields)...) }
func (a *slogAdapter) With(fields watermill.LogFields) watermill.LoggerAdapter {
	return &slogAdapter{log: a.log.With(fieldsToArgs(fields)...)}
}

func fieldsToArgs(fields watermill.LogFields) []any {
	args := make([]any, 0, len(fields)*2)
	for k, v := range fields {
		args = append(args, k, v)
	}
	return args
}
