// Package services holds growing unit domain services: lookups that turn a
// missing aggregate into a domain error, and the transplant operation that
// coordinates two units.
package services

import (
	"context"
	"fmt"

	"github.com/ghuser/gardenhub/pkg/kernel"
	"github.com/ghuser/gardenhub/services/growingunit/domain"
	"github.com/ghuser/gardenhub/services/growingunit/domain/models"
	"github.com/ghuser/gardenhub/services/growingunit/domain/repositories"
)

// GrowingUnitAssertExists loads a unit or fails with GrowingUnitNotFoundError.
type GrowingUnitAssertExists struct {
	repo repositories.GrowingUnitRepository
}

func NewGrowingUnitAssertExists(repo repositories.GrowingUnitRepository) *GrowingUnitAssertExists {
	return &GrowingUnitAssertExists{repo: repo}
}

func (s *GrowingUnitAssertExists) Execute(ctx context.Context, id kernel.GrowingUnitID) (*models.GrowingUnit, error) {
	unit, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find growing unit: %w", err)
	}
	if unit == nil {
		return nil, &domain.GrowingUnitNotFoundError{GrowingUnitID: id}
	}
	return unit, nil
}

// PlantAssertInGrowingUnit returns the plant held by unit or fails with
// GrowingUnitPlantNotFoundError.
type PlantAssertInGrowingUnit struct{}

func (PlantAssertInGrowingUnit) Execute(unit *models.GrowingUnit, plantID kernel.PlantID) (*models.Plant, error) {
	plant := unit.PlantByID(plantID)
	if plant == nil {
		return nil, &domain.GrowingUnitPlantNotFoundError{GrowingUnitID: unit.ID(), PlantID: plantID}
	}
	return plant, nil
}
