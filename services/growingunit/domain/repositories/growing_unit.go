package repositories

import (
	"context"

	"github.com/ghuser/gardenhub/pkg/kernel"
	"github.com/ghuser/gardenhub/services/growingunit/domain/models"
)

// GrowingUnitRepository is the write-side persistence interface for the
// GrowingUnit aggregate. Plants are stored as part of their unit.
//
// Implementations may write the aggregate's pending events in the same
// transaction as its rows. Such implementations drain the events on commit,
// leaving nothing for the caller to publish.
type GrowingUnitRepository interface {
	// FindByID returns (nil, nil) when no unit has the given id.
	FindByID(ctx context.Context, id kernel.GrowingUnitID) (*models.GrowingUnit, error)

	// Save inserts or updates the unit. The stored version must equal the
	// aggregate's Version(); on mismatch kernel.ErrConcurrentModification is
	// returned and nothing is written.
	Save(ctx context.Context, unit *models.GrowingUnit) error

	// SaveAll saves every unit in one transaction: all or none are written.
	SaveAll(ctx context.Context, units ...*models.GrowingUnit) error

	// Delete removes the unit and its plants.
	Delete(ctx context.Context, unit *models.GrowingUnit) error
}
