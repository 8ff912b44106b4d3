// Package readmodel projects container-based plant events into the view store.
package readmodel

import (
	"context"
	"fmt"
	"time"

	"github.com/ghuser/gardenhub/pkg/kernel"
	"github.com/ghuser/gardenhub/pkg/logger"
	"github.com/ghuser/gardenhub/services/plant/domain/events"
	"github.com/ghuser/gardenhub/services/plant/domain/models"
)

type PlantViewModel struct {
	ID          string     `bson:"_id"         json:"id"`
	ContainerID string     `bson:"containerId" json:"containerId"`
	Name        string     `bson:"name"        json:"name"`
	Species     string     `bson:"species"     json:"species"`
	PlantedDate *time.Time `bson:"plantedDate" json:"plantedDate"`
	Notes       *string    `bson:"notes"       json:"notes"`
	Status      string     `bson:"status"      json:"status"`
	CreatedAt   time.Time  `bson:"createdAt"   json:"createdAt"`
	UpdatedAt   time.Time  `bson:"updatedAt"   json:"updatedAt"`
}

func FromPrimitives(p models.PlantPrimitives) PlantViewModel {
	return PlantViewModel{
		ID:          p.ID,
		ContainerID: p.ContainerID,
		Name:        p.Name,
		Species:     p.Species,
		PlantedDate: p.PlantedDate,
		Notes:       p.Notes,
		Status:      p.Status,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

type PlantViewRepository interface {
	FindByID(ctx context.Context, id string) (*PlantViewModel, error)
	FindByCriteria(ctx context.Context, criteria kernel.Criteria) (kernel.PaginatedResult[PlantViewModel], error)
	Save(ctx context.Context, vm PlantViewModel) error
	Delete(ctx context.Context, id string) error
}

// PlantLoader is implemented by services.PlantAssertExists.
type PlantLoader interface {
	Execute(ctx context.Context, id kernel.PlantID) (*models.PlantAggregate, error)
}

// PlantProjector rebuilds a plant's view from the write side on every
// created, updated or status change event.
type PlantProjector struct {
	loader PlantLoader
	views  PlantViewRepository
	log    logger.Logger
}

func NewPlantProjector(loader PlantLoader, views PlantViewRepository, log logger.Logger) *PlantProjector {
	return &PlantProjector{loader: loader, views: views, log: log}
}

func (p *PlantProjector) Handle(ctx context.Context, e kernel.Event) error {
	switch e.Type {
	case events.TopicPlantCreated, events.TopicPlantUpdated, events.TopicPlantStatusChanged:
		id, err := kernel.ParsePlantID(e.AggregateID)
		if err != nil {
			return err
		}
		plant, err := p.loader.Execute(ctx, id)
		if err != nil {
			return err
		}
		if err := p.views.Save(ctx, FromPrimitives(plant.Primitives())); err != nil {
			return fmt.Errorf("save plant view: %w", err)
		}
	case events.TopicPlantDeleted:
		if err := p.views.Delete(ctx, e.AggregateID); err != nil {
			return fmt.Errorf("delete plant view: %w", err)
		}
	default:
		return nil
	}
	p.log.DebugContext(ctx, "plant view projected", "event_type", e.Type, "plant_id", e.AggregateID)
	return nil
}
