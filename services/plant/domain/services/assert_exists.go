package services

import (
	"context"
	"fmt"

	"github.com/ghuser/gardenhub/pkg/kernel"
	"github.com/ghuser/gardenhub/services/plant/domain"
	"github.com/ghuser/gardenhub/services/plant/domain/models"
	"github.com/ghuser/gardenhub/services/plant/domain/repositories"
)

type PlantAssertExists struct {
	repo repositories.PlantRepository
}

func NewPlantAssertExists(repo repositories.PlantRepository) *PlantAssertExists {
	return &PlantAssertExists{repo: repo}
}

func (s *PlantAssertExists) Execute(ctx context.Context, id kernel.PlantID) (*models.PlantAggregate, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find plant: %w", err)
	}
	if p == nil {
		return nil, &domain.PlantNotFoundError{PlantID: id}
	}
	return p, nil
}
