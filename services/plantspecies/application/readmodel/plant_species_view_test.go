package readmodel

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ghuser/gardenhub/pkg/config"
	"github.com/ghuser/gardenhub/pkg/kernel"
	"github.com/ghuser/gardenhub/pkg/logger"
	"github.com/ghuser/gardenhub/services/plantspecies/domain"
	"github.com/ghuser/gardenhub/services/plantspecies/domain/models"
)

type memViews map[string]PlantSpeciesViewModel

func (m memViews) FindByID(_ context.Context, id string) (*PlantSpeciesViewModel, error) {
	if vm, ok := m[id]; ok {
		return &vm, nil
	}
	return nil, nil
}

func (m memViews) FindByCriteria(context.Context, kernel.Criteria) (kernel.PaginatedResult[PlantSpeciesViewModel], error) {
	return kernel.PaginatedResult[PlantSpeciesViewModel]{}, nil
}

func (m memViews) Save(_ context.Context, vm PlantSpeciesViewModel) error {
	m[vm.ID] = vm
	return nil
}

func (m memViews) Delete(_ context.Context, id string) error {
	delete(m, id)
	return nil
}

type memSpecies map[kernel.PlantSpeciesID]models.PlantSpeciesPrimitives

func (m memSpecies) Execute(_ context.Context, id kernel.PlantSpeciesID) (*models.PlantSpecies, error) {
	p, ok := m[id]
	if !ok {
		return nil, &domain.PlantSpeciesNotFoundError{PlantSpeciesID: id}
	}
	return models.RehydratePlantSpecies(p)
}

func TestPlantSpeciesProjector(t *testing.T) {
	views := memViews{}
	store := memSpecies{}
	p := NewPlantSpeciesProjector(store, views, logger.New(&config.Config{LogLevel: "error"}))
	ctx := context.Background()

	s := models.NewPlantSpecies(models.NewPlantSpeciesParams{CommonName: "Lavender", ScientificName: "Lavandula angustifolia"}, true)
	created := s.PullEvents()[0]
	require.NoError(t, s.Update(models.PlantSpeciesPatch{CommonName: kernel.Some("English lavender")}, true))
	updated := s.PullEvents()[0]
	store[s.ID()] = s.Primitives()

	require.NoError(t, p.Handle(ctx, updated))
	require.NoError(t, p.Handle(ctx, created))
	assert.Equal(t, "English lavender", views[s.ID().String()].CommonName)
	assert.Equal(t, "Lavandula angustifolia", views[s.ID().String()].ScientificName)

	s.Delete(true)
	delete(store, s.ID())
	require.NoError(t, p.Handle(ctx, s.PullEvents()[0]))
	assert.Empty(t, views)

	assert.ErrorIs(t, p.Handle(ctx, updated), kernel.ErrNotFound)
	assert.Empty(t, views)
}
