// Package commands holds the location write-side use cases.
package commands

import (
	"context"

	"github.com/ghuser/gardenhub/pkg/kernel"
	"github.com/ghuser/gardenhub/services/location/domain/models"
)

// LocationLoader is satisfied by services.LocationAssertExists.
type LocationLoader interface {
	Execute(ctx context.Context, id kernel.LocationID) (*models.Location, error)
}

// DependentGrowingUnitCounter reports how many growing units reference a location.
type DependentGrowingUnitCounter interface {
	CountByLocation(ctx context.Context, id kernel.LocationID) (int, error)
}
