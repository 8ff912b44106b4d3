package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ghuser/gardenhub/pkg/kernel"
	"github.com/ghuser/gardenhub/pkg/mongostore"
	"github.com/ghuser/gardenhub/services/plantspecies/application/readmodel"
)

const PlantSpeciesViewCollection = "plant_species_views"

type PlantSpeciesViewRepository struct {
	coll *mongostore.Collection[readmodel.PlantSpeciesViewModel]
}

func NewPlantSpeciesViewRepository(db *mongo.Database) *PlantSpeciesViewRepository {
	return &PlantSpeciesViewRepository{coll: mongostore.NewCollection[readmodel.PlantSpeciesViewModel](db, PlantSpeciesViewCollection)}
}

func (r *PlantSpeciesViewRepository) FindByID(ctx context.Context, id string) (*readmodel.PlantSpeciesViewModel, error) {
	return r.coll.FindByID(ctx, id)
}

func (r *PlantSpeciesViewRepository) FindByCriteria(ctx context.Context, criteria kernel.Criteria) (kernel.PaginatedResult[readmodel.PlantSpeciesViewModel], error) {
	return r.coll.FindByCriteria(ctx, criteria)
}

func (r *PlantSpeciesViewRepository) Save(ctx context.Context, vm readmodel.PlantSpeciesViewModel) error {
	return r.coll.Save(ctx, vm.ID, vm)
}

func (r *PlantSpeciesViewRepository) Delete(ctx context.Context, id string) error {
	return r.coll.Delete(ctx, id)
}
