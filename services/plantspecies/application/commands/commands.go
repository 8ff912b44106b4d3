// Package commands holds the plant species use cases.
package commands

import (
	"context"

	"github.com/ghuser/gardenhub/pkg/kernel"
	"github.com/ghuser/gardenhub/services/plantspecies/domain/models"
)

type SpeciesLoader interface {
	Execute(ctx context.Context, id kernel.PlantSpeciesID) (*models.PlantSpecies, error)
}

// NameGuard is satisfied by services.ScientificNameUniqueness.
type NameGuard interface {
	Execute(ctx context.Context, scientificName string, self kernel.PlantSpeciesID) error
}
