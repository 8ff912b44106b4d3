package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ghuser/gardenhub/pkg/kernel"
	"github.com/ghuser/gardenhub/pkg/mongostore"
	"github.com/ghuser/gardenhub/services/location/application/readmodel"
)

const LocationViewCollection = "location_views"

type LocationViewRepository struct {
	coll *mongostore.Collection[readmodel.LocationViewModel]
}

func NewLocationViewRepository(db *mongo.Database) *LocationViewRepository {
	return &LocationViewRepository{coll: mongostore.NewCollection[readmodel.LocationViewModel](db, LocationViewCollection)}
}

func (r *LocationViewRepository) FindByID(ctx context.Context, id string) (*readmodel.LocationViewModel, error) {
	return r.coll.FindByID(ctx, id)
}

func (r *LocationViewRepository) FindByCriteria(ctx context.Context, criteria kernel.Criteria) (kernel.PaginatedResult[readmodel.LocationViewModel], error) {
	return r.coll.FindByCriteria(ctx, criteria)
}

func (r *LocationViewRepository) Save(ctx context.Context, vm readmodel.LocationViewModel) error {
	return r.coll.Save(ctx, vm.ID, vm)
}

func (r *LocationViewRepository) Delete(ctx context.Context, id string) error {
	return r.coll.Delete(ctx, id)
}
