package queries

import (
	"context"
	"fmt"

	"github.com/ghuser/gardenhub/pkg/kernel"
	"github.com/ghuser/gardenhub/services/plantspecies/application/readmodel"
	"github.com/ghuser/gardenhub/services/plantspecies/domain"
)

type FindPlantSpeciesByID struct {
	views readmodel.PlantSpeciesViewRepository
}

func NewFindPlantSpeciesByID(views readmodel.PlantSpeciesViewRepository) *FindPlantSpeciesByID {
	return &FindPlantSpeciesByID{views: views}
}

func (q *FindPlantSpeciesByID) Execute(ctx context.Context, id kernel.PlantSpeciesID) (*readmodel.PlantSpeciesViewModel, error) {
	vm, err := q.views.FindByID(ctx, id.String())
	if err != nil {
		return nil, fmt.Errorf("find plant species view: %w", err)
	}
	if vm == nil {
		return nil, &domain.PlantSpeciesNotFoundError{PlantSpeciesID: id}
	}
	return vm, nil
}

type FindPlantSpeciesByCriteria struct {
	views readmodel.PlantSpeciesViewRepository
}

func NewFindPlantSpeciesByCriteria(views readmodel.PlantSpeciesViewRepository) *FindPlantSpeciesByCriteria {
	return &FindPlantSpeciesByCriteria{views: views}
}

func (q *FindPlantSpeciesByCriteria) Execute(ctx context.Context, criteria kernel.Criteria) (kernel.PaginatedResult[readmodel.PlantSpeciesViewModel], error) {
	criteria, err := criteria.Normalize()
	if err != nil {
		return kernel.PaginatedResult[readmodel.PlantSpeciesViewModel]{}, err
	}
	return q.views.FindByCriteria(ctx, criteria)
}
