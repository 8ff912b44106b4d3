package repositories

import (
	"context"

	"github.com/ghuser/gardenhub/pkg/kernel"
	"github.com/ghuser/gardenhub/services/plant/domain/models"
)

// PlantRepository stores container-based plants. FindByID returns (nil, nil) when absent.
// Save and Delete drain the events they wrote transactionally, if any.
type PlantRepository interface {
	FindByID(ctx context.Context, id kernel.PlantID) (*models.PlantAggregate, error)
	Save(ctx context.Context, plant *models.PlantAggregate) error
	Delete(ctx context.Context, plant *models.PlantAggregate) error
}
