// Package readmodel projects location events into query-side documents.
package readmodel

import (
	"context"
	"fmt"
	"time"

	"github.com/ghuser/gardenhub/pkg/kernel"
	"github.com/ghuser/gardenhub/pkg/logger"
	"github.com/ghuser/gardenhub/services/location/domain/events"
	"github.com/ghuser/gardenhub/services/location/domain/models"
)

type LocationViewModel struct {
	ID          string    `bson:"_id"         json:"id"`
	Name        string    `bson:"name"        json:"name"`
	Type        string    `bson:"type"        json:"type"`
	Description *string   `bson:"description" json:"description"`
	CreatedAt   time.Time `bson:"createdAt"   json:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt"   json:"updatedAt"`
}

func FromPrimitives(p models.LocationPrimitives) LocationViewModel {
	return LocationViewModel{
		ID:          p.ID,
		Name:        p.Name,
		Type:        p.Type,
		Description: p.Description,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// LocationViewRepository persists location views. FindByID returns (nil, nil) when absent.
type LocationViewRepository interface {
	FindByID(ctx context.Context, id string) (*LocationViewModel, error)
	FindByCriteria(ctx context.Context, criteria kernel.Criteria) (kernel.PaginatedResult[LocationViewModel], error)
	Save(ctx context.Context, vm LocationViewModel) error
	Delete(ctx context.Context, id string) error
}

// LocationLoader reloads a location from the write side, failing with a
// not-found error once it is gone.
type LocationLoader interface {
	Execute(ctx context.Context, id kernel.LocationID) (*models.Location, error)
}

// LocationProjector keeps the view store in step with location events.
// Created and updated events reload the location instead of trusting the
// payload, so a late or redelivered event cannot restore a stale or deleted view.
type LocationProjector struct {
	loader LocationLoader
	views  LocationViewRepository
	log    logger.Logger
}

func NewLocationProjector(loader LocationLoader, views LocationViewRepository, log logger.Logger) *LocationProjector {
	return &LocationProjector{loader: loader, views: views, log: log}
}

func (p *LocationProjector) Handle(ctx context.Context, e kernel.Event) error {
	switch e.Type {
	case events.TopicLocationCreated, events.TopicLocationUpdated:
		id, err := kernel.ParseLocationID(e.AggregateID)
		if err != nil {
			return err
		}
		l, err := p.loader.Execute(ctx, id)
		if err != nil {
			return err
		}
		if err := p.views.Save(ctx, FromPrimitives(l.Primitives())); err != nil {
			return fmt.Errorf("save location view: %w", err)
		}
	case events.TopicLocationDeleted:
		if err := p.views.Delete(ctx, e.AggregateID); err != nil {
			return fmt.Errorf("delete location view: %w", err)
		}
	default:
		return nil
	}
	p.log.DebugContext(ctx, "location view projected", "event_type", e.Type, "location_id", e.AggregateID)
	return nil
}
