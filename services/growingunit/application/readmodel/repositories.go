package readmodel

import (
	"context"

	"github.com/ghuser/gardenhub/pkg/kernel"
	"github.com/ghuser/gardenhub/services/growingunit/domain/models"
)

// GrowingUnitViewRepository persists growing unit views. FindByID returns
// (nil, nil) when absent.
type GrowingUnitViewRepository interface {
	FindByID(ctx context.Context, id string) (*GrowingUnitViewModel, error)
	FindByCriteria(ctx context.Context, criteria kernel.Criteria) (kernel.PaginatedResult[GrowingUnitViewModel], error)
	CountByLocation(ctx context.Context, locationID kernel.LocationID) (int, error)
	Save(ctx context.Context, vm GrowingUnitViewModel) error
	Delete(ctx context.Context, id string) error
}

// OverviewRepository stores the single overview document. Find returns
// (nil, nil) before the first refresh.
type OverviewRepository interface {
	Find(ctx context.Context) (*OverviewViewModel, error)
	Save(ctx context.Context, vm OverviewViewModel) error
}

// ViewCache is the write half of the growing unit view cache.
type ViewCache interface {
	Set(ctx context.Context, id string, vm GrowingUnitViewModel) error
	Delete(ctx context.Context, id string) error
}

// GrowingUnitLoader reloads the authoritative aggregate before projecting.
type GrowingUnitLoader interface {
	Execute(ctx context.Context, id kernel.GrowingUnitID) (*models.GrowingUnit, error)
}
