// Package mongo stores growing unit read models in MongoDB.
package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ghuser/gardenhub/pkg/kernel"
	"github.com/ghuser/gardenhub/pkg/mongostore"
	"github.com/ghuser/gardenhub/services/growingunit/application/readmodel"
)

const (
	GrowingUnitViewCollection = "growing_unit_views"
	OverviewCollection        = "overviews"
)

// GrowingUnitViewRepository implements readmodel.GrowingUnitViewRepository.
type GrowingUnitViewRepository struct {
	coll *mongostore.Collection[readmodel.GrowingUnitViewModel]
}

func NewGrowingUnitViewRepository(db *mongo.Database) *GrowingUnitViewRepository {
	return &GrowingUnitViewRepository{coll: mongostore.NewCollection[readmodel.GrowingUnitViewModel](db, GrowingUnitViewCollection)}
}

func (r *GrowingUnitViewRepository) FindByID(ctx context.Context, id string) (*readmodel.GrowingUnitViewModel, error) {
	return r.coll.FindByID(ctx, id)
}

func (r *GrowingUnitViewRepository) FindByCriteria(ctx context.Context, criteria kernel.Criteria) (kernel.PaginatedResult[readmodel.GrowingUnitViewModel], error) {
	return r.coll.FindByCriteria(ctx, criteria)
}

func (r *GrowingUnitViewRepository) CountByLocation(ctx context.Context, id kernel.LocationID) (int, error) {
	return r.coll.Count(ctx, kernel.Filter{Field: "locationId", Operator: kernel.OpEquals, Value: id.String()})
}

func (r *GrowingUnitViewRepository) Save(ctx context.Context, vm readmodel.GrowingUnitViewModel) error {
	return r.coll.Save(ctx, vm.ID, vm)
}

func (r *GrowingUnitViewRepository) Delete(ctx context.Context, id string) error {
	return r.coll.Delete(ctx, id)
}

// OverviewRepository implements readmodel.OverviewRepository.
type OverviewRepository struct {
	coll *mongostore.Collection[readmodel.OverviewViewModel]
}

func NewOverviewRepository(db *mongo.Database) *OverviewRepository {
	return &OverviewRepository{coll: mongostore.NewCollection[readmodel.OverviewViewModel](db, OverviewCollection)}
}

func (r *OverviewRepository) Find(ctx context.Context) (*readmodel.OverviewViewModel, error) {
	return r.coll.FindByID(ctx, readmodel.OverviewID)
}

func (r *OverviewRepository) Save(ctx context.Context, vm readmodel.OverviewViewModel) error {
	vm.ID = readmodel.OverviewID
	return r.coll.Save(ctx, vm.ID, vm)
}
