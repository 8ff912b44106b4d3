package queries

import (
	"context"
	"fmt"

	"github.com/ghuser/gardenhub/pkg/kernel"
	"github.com/ghuser/gardenhub/services/location/application/readmodel"
	"github.com/ghuser/gardenhub/services/location/domain"
)

type FindLocationByID struct {
	views readmodel.LocationViewRepository
}

func NewFindLocationByID(views readmodel.LocationViewRepository) *FindLocationByID {
	return &FindLocationByID{views: views}
}

func (q *FindLocationByID) Execute(ctx context.Context, id kernel.LocationID) (*readmodel.LocationViewModel, error) {
	vm, err := q.views.FindByID(ctx, id.String())
	if err != nil {
		return nil, fmt.Errorf("find location view: %w", err)
	}
	if vm == nil {
		return nil, &domain.LocationNotFoundError{LocationID: id}
	}
	return vm, nil
}

type FindLocationsByCriteria struct {
	views readmodel.LocationViewRepository
}

func NewFindLocationsByCriteria(views readmodel.LocationViewRepository) *FindLocationsByCriteria {
	return &FindLocationsByCriteria{views: views}
}

func (q *FindLocationsByCriteria) Execute(ctx context.Context, criteria kernel.Criteria) (kernel.PaginatedResult[readmodel.LocationViewModel], error) {
	criteria, err := criteria.Normalize()
	if err != nil {
		return kernel.PaginatedResult[readmodel.LocationViewModel]{}, err
	}
	return q.views.FindByCriteria(ctx, criteria)
}
