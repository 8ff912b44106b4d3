package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ghuser/gardenhub/pkg/kernel"
	"github.com/ghuser/gardenhub/pkg/mongostore"
	"github.com/ghuser/gardenhub/services/plant/application/readmodel"
)

const PlantViewCollection = "plant_views"

type PlantViewRepository struct {
	coll *mongostore.Collection[readmodel.PlantViewModel]
}

func NewPlantViewRepository(db *mongo.Database) *PlantViewRepository {
	return &PlantViewRepository{coll: mongostore.NewCollection[readmodel.PlantViewModel](db, PlantViewCollection)}
}

func (r *PlantViewRepository) FindByID(ctx context.Context, id string) (*readmodel.PlantViewModel, error) {
	return r.coll.FindByID(ctx, id)
}

func (r *PlantViewRepository) FindByCriteria(ctx context.Context, criteria kernel.Criteria) (kernel.PaginatedResult[readmodel.PlantViewModel], error) {
	return r.coll.FindByCriteria(ctx, criteria)
}

func (r *PlantViewRepository) Save(ctx context.Context, vm readmodel.PlantViewModel) error {
	return r.coll.Save(ctx, vm.ID, vm)
}

func (r *PlantViewRepository) Delete(ctx context.Context, id string) error {
	return r.coll.Delete(ctx, id)
}
