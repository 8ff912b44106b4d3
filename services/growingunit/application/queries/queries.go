// Package queries serves growing unit reads from the view store. Reads are
// eventually consistent with the write side.
package queries

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/ghuser/gardenhub/pkg/kernel"
	"github.com/ghuser/gardenhub/pkg/logger"
	"github.com/ghuser/gardenhub/services/growingunit/application/readmodel"
	"github.com/ghuser/gardenhub/services/growingunit/domain"
)

// ViewCache is the read-through cache in front of the view store.
type ViewCache interface {
	Get(ctx context.Context, id string) (*readmodel.GrowingUnitViewModel, error)
	Set(ctx context.Context, id string, vm readmodel.GrowingUnitViewModel) error
}

// FindGrowingUnitByID returns one growing unit view. The cache is consulted
// first; a miss or cache error falls through to the view store and warms the
// cache.
type FindGrowingUnitByID struct {
	views readmodel.GrowingUnitViewRepository
	cache ViewCache
	log   logger.Logger
}

func NewFindGrowingUnitByID(views readmodel.GrowingUnitViewRepository, cache ViewCache, log logger.Logger) *FindGrowingUnitByID {
	return &FindGrowingUnitByID{views: views, cache: cache, log: log}
}

func (q *FindGrowingUnitByID) Execute(ctx context.Context, id kernel.GrowingUnitID) (*readmodel.GrowingUnitViewModel, error) {
	key := id.String()
	if q.cache != nil {
		vm, err := q.cache.Get(ctx, key)
		if err == nil {
			return vm, nil
		}
		if !errors.Is(err, redis.Nil) {
			q.log.WarnContext(ctx, "growing unit view cache read failed", "growing_unit_id", key, "error", err)
		}
	}

	vm, err := q.views.FindByID(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("find growing unit view: %w", err)
	}
	if vm == nil {
		return nil, &domain.GrowingUnitNotFoundError{GrowingUnitID: id}
	}

	if q.cache != nil {
		if err := q.cache.Set(ctx, key, *vm); err != nil {
			q.log.WarnContext(ctx, "growing unit view cache warm failed", "growing_unit_id", key, "error", err)
		}
	}
	return vm, nil
}

// FindGrowingUnitsByCriteria returns one page of growing unit views.
type FindGrowingUnitsByCriteria struct {
	views readmodel.GrowingUnitViewRepository
}

func NewFindGrowingUnitsByCriteria(views readmodel.GrowingUnitViewRepository) *FindGrowingUnitsByCriteria {
	return &FindGrowingUnitsByCriteria{views: views}
}

func (q *FindGrowingUnitsByCriteria) Execute(ctx context.Context, criteria kernel.Criteria) (kernel.PaginatedResult[readmodel.GrowingUnitViewModel], error) {
	criteria, err := criteria.Normalize()
	if err != nil {
		return kernel.PaginatedResult[readmodel.GrowingUnitViewModel]{}, err
	}
	return q.views.FindByCriteria(ctx, criteria)
}

// CountGrowingUnitsByLocation counts the units placed at a location. The
// location context uses it to guard deletes.
type CountGrowingUnitsByLocation struct {
	views readmodel.GrowingUnitViewRepository
}

func NewCountGrowingUnitsByLocation(views readmodel.GrowingUnitViewRepository) *CountGrowingUnitsByLocation {
	return &CountGrowingUnitsByLocation{views: views}
}

func (q *CountGrowingUnitsByLocation) CountByLocation(ctx context.Context, id kernel.LocationID) (int, error) {
	n, err := q.views.CountByLocation(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("count growing units by location: %w", err)
	}
	return n, nil
}

// FindOverview returns the stored overview, or a zeroed one before the first
// refresh.
type FindOverview struct {
	overviews readmodel.OverviewRepository
}

func NewFindOverview(overviews readmodel.OverviewRepository) *FindOverview {
	return &FindOverview{overviews: overviews}
}

func (q *FindOverview) Execute(ctx context.Context) (readmodel.OverviewViewModel, error) {
	vm, err := q.overviews.Find(ctx)
	if err != nil {
		return readmodel.OverviewViewModel{}, fmt.Errorf("find overview: %w", err)
	}
	if vm == nil {
		return readmodel.OverviewViewModel{
			ID:                 readmodel.OverviewID,
			GrowingUnitsByType: map[string]int{},
			PlantsByStatus:     map[string]int{},
		}, nil
	}
	return *vm, nil
}
