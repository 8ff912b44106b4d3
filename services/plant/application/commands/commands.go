// Package commands holds the container-based plant use cases.
package commands

import (
	"context"
	"fmt"

	"github.com/ghuser/gardenhub/pkg/kernel"
	"github.com/ghuser/gardenhub/services/plant/domain/models"
	"github.com/ghuser/gardenhub/services/plant/domain/repositories"
)

type PlantLoader interface {
	Execute(ctx context.Context, id kernel.PlantID) (*models.PlantAggregate, error)
}

// saveAndPublish is the tail every mutating handler shares.
func saveAndPublish(ctx context.Context, repo repositories.PlantRepository, publisher kernel.EventPublisher, p *models.PlantAggregate) error {
	if err := repo.Save(ctx, p); err != nil {
		return fmt.Errorf("save plant: %w", err)
	}
	if err := publisher.PublishAll(ctx, p.PullEvents()); err != nil {
		return fmt.Errorf("publish plant events: %w", err)
	}
	return nil
}
