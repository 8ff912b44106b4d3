package services

import (
	"context"
	"fmt"

	"github.com/ghuser/gardenhub/pkg/kernel"
	"github.com/ghuser/gardenhub/services/location/domain"
	"github.com/ghuser/gardenhub/services/location/domain/models"
	"github.com/ghuser/gardenhub/services/location/domain/repositories"
)

// LocationAssertExists loads a location or fails with LocationNotFoundError.
type LocationAssertExists struct {
	repo repositories.LocationRepository
}

func NewLocationAssertExists(repo repositories.LocationRepository) *LocationAssertExists {
	return &LocationAssertExists{repo: repo}
}

func (s *LocationAssertExists) Execute(ctx context.Context, id kernel.LocationID) (*models.Location, error) {
	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find location: %w", err)
	}
	if l == nil {
		return nil, &domain.LocationNotFoundError{LocationID: id}
	}
	return l, nil
}

// AssertLocationExists lets other contexts check a reference without
// depending on the Location aggregate.
func (s *LocationAssertExists) AssertLocationExists(ctx context.Context, id kernel.LocationID) error {
	_, err := s.Execute(ctx, id)
	return err
}
