package queries

import (
	"context"
	"fmt"

	"github.com/ghuser/gardenhub/pkg/kernel"
	"github.com/ghuser/gardenhub/services/plant/application/readmodel"
	"github.com/ghuser/gardenhub/services/plant/domain"
)

type FindPlantByID struct {
	views readmodel.PlantViewRepository
}

func NewFindPlantByID(views readmodel.PlantViewRepository) *FindPlantByID {
	return &FindPlantByID{views: views}
}

func (q *FindPlantByID) Execute(ctx context.Context, id kernel.PlantID) (*readmodel.PlantViewModel, error) {
	vm, err := q.views.FindByID(ctx, id.String())
	if err != nil {
		return nil, fmt.Errorf("find plant view: %w", err)
	}
	if vm == nil {
		return nil, &domain.PlantNotFoundError{PlantID: id}
	}
	return vm, nil
}

type FindPlantsByCriteria struct {
	views readmodel.PlantViewRepository
}

func NewFindPlantsByCriteria(views readmodel.PlantViewRepository) *FindPlantsByCriteria {
	return &FindPlantsByCriteria{views: views}
}

func (q *FindPlantsByCriteria) Execute(ctx context.Context, criteria kernel.Criteria) (kernel.PaginatedResult[readmodel.PlantViewModel], error) {
	criteria, err := criteria.Normalize()
	if err != nil {
		return kernel.PaginatedResult[readmodel.PlantViewModel]{}, err
	}
	return q.views.FindByCriteria(ctx, criteria)
}
