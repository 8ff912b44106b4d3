package repositories

import (
	"context"

	"github.com/ghuser/gardenhub/pkg/kernel"
	"github.com/ghuser/gardenhub/services/plantspecies/domain/models"
)

// PlantSpeciesRepository is the write-side store. Both finders return
// (nil, nil) when nothing matches; scientific names compare case-insensitively.
// Save and Delete drain the events they wrote transactionally, if any.
type PlantSpeciesRepository interface {
	FindByID(ctx context.Context, id kernel.PlantSpeciesID) (*models.PlantSpecies, error)
	FindByScientificName(ctx context.Context, name string) (*models.PlantSpecies, error)
	Save(ctx context.Context, species *models.PlantSpecies) error
	Delete(ctx context.Context, species *models.PlantSpecies) error
}
