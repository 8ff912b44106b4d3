package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ghuser/gardenhub/pkg/kernel"
	"github.com/ghuser/gardenhub/services/plant/domain/events"
)

func newPlant(emit bool) *PlantAggregate {
	return NewPlantAggregate(NewPlantParams{
		ContainerID: kernel.NewContainerID(),
		Name:        "Cherry tomato",
		Species:     "Solanum lycopersicum",
	}, emit)
}

func TestNewPlantAggregate_Defaults(t *testing.T) {
	p := newPlant(true)
	assert.False(t, p.ID().IsZero())
	assert.Equal(t, kernel.PlantStatusPlanted, p.Status())

	evts := p.PullEvents()
	require.Len(t, evts, 1)
	assert.Equal(t, events.TopicPlantCreated, evts[0].Type)
	assert.Equal(t, p.ID().String(), evts[0].AggregateID)
}

func TestPlantAggregate_Update(t *testing.T) {
	p := newPlant(false)
	planted := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	target := kernel.NewContainerID()

	require.NoError(t, p.Update(PlantPatch{
		ContainerID: kernel.Some(target),
		PlantedDate: kernel.Some(planted),
		Notes:       kernel.Some("stake at 30cm"),
	}, true))
	assert.True(t, p.ContainerID().Equals(target))
	require.NotNil(t, p.PlantedDate())
	assert.True(t, p.PlantedDate().Equal(planted))
	assert.Equal(t, "Cherry tomato", p.Name())

	require.NoError(t, p.Update(PlantPatch{Notes: kernel.Null[string]()}, true))
	assert.Nil(t, p.Notes())
	assert.Len(t, p.PullEvents(), 2)

	err := p.Update(PlantPatch{Species: kernel.Null[string]()}, true)
	assert.ErrorIs(t, err, kernel.ErrValidation)
	assert.Empty(t, p.PullEvents())
}

func TestPlantAggregate_ChangeStatus(t *testing.T) {
	p := newPlant(false)

	p.ChangeStatus(kernel.PlantStatusGrowing, true)
	assert.Equal(t, kernel.PlantStatusGrowing, p.Status())
	evts := p.PullEvents()
	require.Len(t, evts, 1)
	assert.Equal(t, events.TopicPlantStatusChanged, evts[0].Type)

	p.ChangeStatus(kernel.PlantStatusGrowing, true)
	assert.Empty(t, p.PullEvents())
}

func TestRehydratePlantAggregate(t *testing.T) {
	src := newPlant(false)
	prim := src.Primitives()
	prim.Version = 2

	p, err := RehydratePlantAggregate(prim)
	require.NoError(t, err)
	assert.Equal(t, 2, p.Version())
	assert.Equal(t, src.Species(), p.Species())

	prim.Status = "WILTING"
	_, err = RehydratePlantAggregate(prim)
	assert.Error(t, err)
}

func TestValidateSpecies(t *testing.T) {
	got, err := ValidateSpecies("  Mentha spicata ")
	require.NoError(t, err)
	assert.Equal(t, "Mentha spicata", got)

	_, err = ValidateSpecies("")
	assert.ErrorIs(t, err, kernel.ErrValidation)
}
