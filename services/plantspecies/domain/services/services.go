package services

import (
	"context"
	"fmt"

	"github.com/ghuser/gardenhub/pkg/kernel"
	"github.com/ghuser/gardenhub/services/plantspecies/domain"
	"github.com/ghuser/gardenhub/services/plantspecies/domain/models"
	"github.com/ghuser/gardenhub/services/plantspecies/domain/repositories"
)

type PlantSpeciesAssertExists struct {
	repo repositories.PlantSpeciesRepository
}

func NewPlantSpeciesAssertExists(repo repositories.PlantSpeciesRepository) *PlantSpeciesAssertExists {
	return &PlantSpeciesAssertExists{repo: repo}
}

func (s *PlantSpeciesAssertExists) Execute(ctx context.Context, id kernel.PlantSpeciesID) (*models.PlantSpecies, error) {
	sp, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find plant species: %w", err)
	}
	if sp == nil {
		return nil, &domain.PlantSpeciesNotFoundError{PlantSpeciesID: id}
	}
	return sp, nil
}

// ScientificNameUniqueness rejects a scientific name held by a different
// species. self is the species being updated, or the zero id on create.
type ScientificNameUniqueness struct {
	repo repositories.PlantSpeciesRepository
}

func NewScientificNameUniqueness(repo repositories.PlantSpeciesRepository) *ScientificNameUniqueness {
	return &ScientificNameUniqueness{repo: repo}
}

func (s *ScientificNameUniqueness) Execute(ctx context.Context, name string, self kernel.PlantSpeciesID) error {
	existing, err := s.repo.FindByScientificName(ctx, name)
	if err != nil {
		return fmt.Errorf("find plant species by scientific name: %w", err)
	}
	if existing != nil && !existing.ID().Equals(self) {
		return &domain.ScientificNameAlreadyInUseError{ScientificName: name}
	}
	return nil
}
