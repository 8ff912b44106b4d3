package repositories

import (
	"context"

	"github.com/ghuser/gardenhub/pkg/kernel"
	"github.com/ghuser/gardenhub/services/location/domain/models"
)

// LocationRepository is the write-side store. FindByID returns (nil, nil)
// when absent; Save fails with kernel.ErrConcurrentModification on a stale version.
// Save and Delete drain the events they wrote transactionally, if any.
type LocationRepository interface {
	FindByID(ctx context.Context, id kernel.LocationID) (*models.Location, error)
	Save(ctx context.Context, location *models.Location) error
	Delete(ctx context.Context, location *models.Location) error
}
