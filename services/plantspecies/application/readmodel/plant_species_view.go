package readmodel

import (
	"context"
	"fmt"
	"time"

	"github.com/ghuser/gardenhub/pkg/kernel"
	"github.com/ghuser/gardenhub/pkg/logger"
	"github.com/ghuser/gardenhub/services/plantspecies/domain/events"
	"github.com/ghuser/gardenhub/services/plantspecies/domain/models"
)

type PlantSpeciesViewModel struct {
	ID             string    `bson:"_id"            json:"id"`
	CommonName     string    `bson:"commonName"     json:"commonName"`
	ScientificName string    `bson:"scientificName" json:"scientificName"`
	Family         *string   `bson:"family"         json:"family"`
	Description    *string   `bson:"description"    json:"description"`
	CreatedAt      time.Time `bson:"createdAt"      json:"createdAt"`
	UpdatedAt      time.Time `bson:"updatedAt"      json:"updatedAt"`
}

func FromPrimitives(p models.PlantSpeciesPrimitives) PlantSpeciesViewModel {
	return PlantSpeciesViewModel{
		ID:             p.ID,
		CommonName:     p.CommonName,
		ScientificName: p.ScientificName,
		Family:         p.Family,
		Description:    p.Description,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

type PlantSpeciesViewRepository interface {
	FindByID(ctx context.Context, id string) (*PlantSpeciesViewModel, error)
	FindByCriteria(ctx context.Context, criteria kernel.Criteria) (kernel.PaginatedResult[PlantSpeciesViewModel], error)
	Save(ctx context.Context, vm PlantSpeciesViewModel) error
	Delete(ctx context.Context, id string) error
}

type SpeciesLoader interface {
	Execute(ctx context.Context, id kernel.PlantSpeciesID) (*models.PlantSpecies, error)
}

type PlantSpeciesProjector struct {
	loader SpeciesLoader
	views  PlantSpeciesViewRepository
	log    logger.Logger
}

func NewPlantSpeciesProjector(loader SpeciesLoader, views PlantSpeciesViewRepository, log logger.Logger) *PlantSpeciesProjector {
	return &PlantSpeciesProjector{loader: loader, views: views, log: log}
}

// Handle reloads the species for created and updated events; a species
// deleted in the meantime fails with its not-found error.
func (p *PlantSpeciesProjector) Handle(ctx context.Context, e kernel.Event) error {
	switch e.Type {
	case events.TopicPlantSpeciesCreated, events.TopicPlantSpeciesUpdated:
		id, err := kernel.ParsePlantSpeciesID(e.AggregateID)
		if err != nil {
			return err
		}
		s, err := p.loader.Execute(ctx, id)
		if err != nil {
			return err
		}
		if err := p.views.Save(ctx, FromPrimitives(s.Primitives())); err != nil {
			return fmt.Errorf("save plant species view: %w", err)
		}
	case events.TopicPlantSpeciesDeleted:
		if err := p.views.Delete(ctx, e.AggregateID); err != nil {
			return fmt.Errorf("delete plant species view: %w", err)
		}
	}
	return nil
}
