package events

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/ghuser/gardenhub/pkg/kernel"
)

// Metadata keys set on every domain event message.
const (
	MetaEventID       = "event_id"
	MetaEventVersion  = "event_version"
	MetaAggregateID   = "aggregate_id"
	MetaAggregateType = "aggregate_type"
)

// MessagePublisher is the subset of EventBus used to publish domain events.
type MessagePublisher interface {
	Publish(ctx context.Context, topic string, msgs ...*message.Message) error
}

// MessageSubscriber is the subset of EventBus used by projectors.
type MessageSubscriber interface {
	Subscribe(ctx context.Context, topic string, handler func(context.Context, *message.Message) error) (<-chan error, error)
}

// TxMessagePublisher is the subset of EventBus used to publish inside a
// repository transaction.
type TxMessagePublisher interface {
	PublishTx(ctx context.Context, tx *sql.Tx, topic string, msgs ...*message.Message) error
}

// TxEventWriter writes domain events inside a repository transaction.
type TxEventWriter interface {
	WriteTx(ctx context.Context, tx *sql.Tx, events []kernel.Event) error
}

// Outbox writes an aggregate's events in the transaction that saves it, so
// the rows and their events commit or roll back together.
type Outbox struct {
	bus TxMessagePublisher
}

// NewOutbox returns an outbox writing through bus.
func NewOutbox(bus TxMessagePublisher) *Outbox {
	return &Outbox{bus: bus}
}

// WriteTx publishes events in order inside tx and stops at the first failure.
func (o *Outbox) WriteTx(ctx context.Context, tx *sql.Tx, events []kernel.Event) error {
	for _, e := range events {
		msg, err := EncodeEvent(e)
		if err != nil {
			return err
		}
		if err := o.bus.PublishTx(ctx, tx, e.Type, msg); err != nil {
			return err
		}
	}
	return nil
}

// DomainPublisher implements kernel.EventPublisher on top of the bus.
// The event type is the topic.
type DomainPublisher struct {
	bus MessagePublisher
}

// NewDomainPublisher returns a publisher writing to bus.
func NewDomainPublisher(bus MessagePublisher) *DomainPublisher {
	return &DomainPublisher{bus: bus}
}

// Publish marshals e and sends it to the topic named by e.Type.
func (p *DomainPublisher) Publish(ctx context.Context, e kernel.Event) error {
	msg, err := EncodeEvent(e)
	if err != nil {
		return err
	}
	return p.bus.Publish(ctx, e.Type, msg)
}

// PublishAll publishes events in order and stops at the first failure.
func (p *DomainPublisher) PublishAll(ctx context.Context, events []kernel.Event) error {
	for _, e := range events {
		if err := p.Publish(ctx, e); err != nil {
			return err
		}
	}
	return nil
}

// EncodeEvent wraps e in a Watermill message.
func EncodeEvent(e kernel.Event) (*message.Message, error) {
	payload, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("events: marshal %s: %w", e.Type, err)
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set(MetaEventID, e.ID.String())
	msg.Metadata.Set(MetaEventVersion, strconv.Itoa(e.Version))
	msg.Metadata.Set(MetaAggregateID, e.AggregateID)
	msg.Metadata.Set(MetaAggregateType, e.AggregateType)
	return msg, nil
}

// DecodeEvent reads a domain event back out of a message.
func DecodeEvent(msg *message.Message) (kernel.Event, error) {
	var e kernel.Event
	if err := json.Unmarshal(msg.Payload, &e); err != nil {
		return kernel.Event{}, fmt.Errorf("events: unmarshal message %s: %w: %w", msg.UUID, kernel.ErrValidation, err)
	}
	return e, nil
}

// EventHandler handles one decoded domain event.
type EventHandler interface {
	Handle(ctx context.Context, e kernel.Event) error
}

// HandleEvents adapts an EventHandler to the bus handler signature.
func HandleEvents(h EventHandler) func(context.Context, *message.Message) error {
	return func(ctx context.Context, msg *message.Message) error {
		e, err := DecodeEvent(msg)
		if err != nil {
			return err
		}
		return h.Handle(ctx, e)
	}
}
