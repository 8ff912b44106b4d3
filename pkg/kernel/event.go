package kernel

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// EventSchemaVersion is bumped on breaking changes to event payloads.
const EventSchemaVersion = 1

// Event is a domain event recorded by an aggregate and published after the
// aggregate has been saved. Type doubles as the event bus topic.
//
// Data holds a snapshot of the aggregate's primitive state at emission time.
// After a round trip through the bus it is a generic JSON value; use DecodeData
// to read it into a concrete type.
type Event struct {
	ID            uuid.UUID `json:"event_id"`
	Version       int       `json:"version"`
	AggregateID   string    `json:"aggregate_id"`
	AggregateType string    `json:"aggregate_type"`
	Type          string    `json:"event_type"`
	Data          any       `json:"data"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// NewEvent stamps a new event for the given aggregate.
func NewEvent(aggregateType, aggregateID, eventType string, data any) Event {
	return Event{
		ID:            uuid.New(),
		Version:       EventSchemaVersion,
		AggregateID:   aggregateID,
		AggregateType: aggregateType,
		Type:          eventType,
		Data:          data,
		OccurredAt:    time.Now().UTC(),
	}
}

// DecodeData copies the event payload into v.
func (e Event) DecodeData(v any) error {
	raw, err := json.Marshal(e.Data)
	if err != nil {
		return fmt.Errorf("marshal event data: %w", err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decode %s data: %w", e.Type, err)
	}
	return nil
}

// EventPublisher hands domain events to the event bus. Delivery to subscribers
// is asynchronous; a nil error only means the bus accepted the events.
type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
	PublishAll(ctx context.Context, events []Event) error
}
