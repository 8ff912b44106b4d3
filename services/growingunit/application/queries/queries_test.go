package queries

import (
	"context"
	"errors"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ghuser/gardenhub/pkg/config"
	"github.com/ghuser/gardenhub/pkg/kernel"
	"github.com/ghuser/gardenhub/pkg/logger"
	"github.com/ghuser/gardenhub/services/growingunit/application/readmodel"
	"github.com/ghuser/gardenhub/services/growingunit/domain"
)

type stubViews struct {
	docs      map[string]readmodel.GrowingUnitViewModel
	finds     int
	criteria  kernel.Criteria
	locations map[kernel.LocationID]int
}

func (s *stubViews) FindByID(_ context.Context, id string) (*readmodel.GrowingUnitViewModel, error) {
	s.finds++
	vm, ok := s.docs[id]
	if !ok {
		return nil, nil
	}
	return &vm, nil
}

func (s *stubViews) FindByCriteria(_ context.Context, c kernel.Criteria) (kernel.PaginatedResult[readmodel.GrowingUnitViewModel], error) {
	s.criteria = c
	return kernel.NewPaginatedResult[readmodel.GrowingUnitViewModel](nil, 0, c.Pagination), nil
}

func (s *stubViews) CountByLocation(_ context.Context, id kernel.LocationID) (int, error) {
	return s.locations[id], nil
}

func (s *stubViews) Save(context.Context, readmodel.GrowingUnitViewModel) error { return nil }
func (s *stubViews) Delete(context.Context, string) error                       { return nil }

type stubCache struct {
	docs   map[string]readmodel.GrowingUnitViewModel
	getErr error
}

func (c *stubCache) Get(_ context.Context, id string) (*readmodel.GrowingUnitViewModel, error) {
	if c.getErr != nil {
		return nil, c.getErr
	}
	vm, ok := c.docs[id]
	if !ok {
		return nil, redis.Nil
	}
	return &vm, nil
}

func (c *stubCache) Set(_ context.Context, id string, vm readmodel.GrowingUnitViewModel) error {
	c.docs[id] = vm
	return nil
}

type stubOverviews struct{ vm *readmodel.OverviewViewModel }

func (s *stubOverviews) Find(context.Context) (*readmodel.OverviewViewModel, error) { return s.vm, nil }
func (s *stubOverviews) Save(context.Context, readmodel.OverviewViewModel) error    { return nil }

func testLogger() logger.Logger {
	return logger.New(&config.Config{LogLevel: "error"})
}

func TestFindGrowingUnitByID(t *testing.T) {
	id := kernel.NewGrowingUnitID()

	t.Run("cache hit skips store", func(t *testing.T) {
		views := &stubViews{}
		cache := &stubCache{docs: map[string]readmodel.GrowingUnitViewModel{id.String(): {ID: id.String(), Name: "Cached"}}}

		vm, err := NewFindGrowingUnitByID(views, cache, testLogger()).Execute(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, "Cached", vm.Name)
		assert.Zero(t, views.finds)
	})

	t.Run("miss reads store and warms cache", func(t *testing.T) {
		views := &stubViews{docs: map[string]readmodel.GrowingUnitViewModel{id.String(): {ID: id.String(), Name: "Stored"}}}
		cache := &stubCache{docs: map[string]readmodel.GrowingUnitViewModel{}}

		vm, err := NewFindGrowingUnitByID(views, cache, testLogger()).Execute(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, "Stored", vm.Name)
		assert.Equal(t, 1, views.finds)
		assert.Contains(t, cache.docs, id.String())
	})

	t.Run("cache error falls through", func(t *testing.T) {
		views := &stubViews{docs: map[string]readmodel.GrowingUnitViewModel{id.String(): {ID: id.String()}}}
		cache := &stubCache{docs: map[string]readmodel.GrowingUnitViewModel{}, getErr: errors.New("connection refused")}

		_, err := NewFindGrowingUnitByID(views, cache, testLogger()).Execute(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, 1, views.finds)
	})

	t.Run("absent is not found", func(t *testing.T) {
		_, err := NewFindGrowingUnitByID(&stubViews{}, nil, testLogger()).Execute(context.Background(), id)
		assert.ErrorIs(t, err, domain.ErrGrowingUnitNotFound)
		assert.ErrorIs(t, err, kernel.ErrNotFound)
	})
}

func TestFindGrowingUnitsByCriteria_Normalizes(t *testing.T) {
	views := &stubViews{}
	_, err := NewFindGrowingUnitsByCriteria(views).Execute(context.Background(), kernel.Criteria{})
	require.NoError(t, err)
	assert.Equal(t, kernel.Pagination{Page: kernel.DefaultPage, PerPage: kernel.DefaultPerPage}, views.criteria.Pagination)

	_, err = NewFindGrowingUnitsByCriteria(views).Execute(context.Background(), kernel.Criteria{
		Filters: []kernel.Filter{{Field: "name", Operator: "MATCHES", Value: "x"}},
	})
	assert.ErrorIs(t, err, kernel.ErrValidation)
}

func TestCountGrowingUnitsByLocation(t *testing.T) {
	loc := kernel.NewLocationID()
	n, err := NewCountGrowingUnitsByLocation(&stubViews{locations: map[kernel.LocationID]int{loc: 3}}).CountByLocation(context.Background(), loc)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestFindOverview_ZeroBeforeFirstRefresh(t *testing.T) {
	vm, err := NewFindOverview(&stubOverviews{}).Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, readmodel.OverviewID, vm.ID)
	assert.Zero(t, vm.TotalGrowingUnits)
	assert.NotNil(t, vm.PlantsByStatus)
}
