package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ghuser/gardenhub/pkg/kernel"
	"github.com/ghuser/gardenhub/services/growingunit/domain"
	"github.com/ghuser/gardenhub/services/growingunit/domain/events"
)

func newUnit(t *testing.T, capacity int) *GrowingUnit {
	t.Helper()
	c, err := NewCapacity(capacity)
	require.NoError(t, err)
	name, err := NewName("Raised bed")
	require.NoError(t, err)
	u := NewGrowingUnit(NewGrowingUnitParams{Name: name, Type: TypeGardenBed, Capacity: c}, false)
	return u
}

func newTestPlant(t *testing.T, name string) *Plant {
	t.Helper()
	n, err := NewName(name)
	require.NoError(t, err)
	return NewPlant(NewPlantParams{Name: n, Species: "Ocimum basilicum"})
}

func TestNewGrowingUnit(t *testing.T) {
	name, _ := NewName("Kitchen pot")
	c, _ := NewCapacity(3)

	t.Run("records created event when emit is set", func(t *testing.T) {
		u := NewGrowingUnit(NewGrowingUnitParams{Name: name, Type: TypePot, Capacity: c}, true)
		evs := u.PullEvents()
		require.Len(t, evs, 1)
		assert.Equal(t, events.TopicGrowingUnitCreated, evs[0].Type)
		assert.Equal(t, events.AggregateType, evs[0].AggregateType)
		assert.Equal(t, u.ID().String(), evs[0].AggregateID)

		snap, ok := evs[0].Data.(GrowingUnitPrimitives)
		require.True(t, ok)
		assert.Equal(t, "Kitchen pot", snap.Name)
		assert.Empty(t, snap.Plants)
	})

	t.Run("records nothing when emit is unset", func(t *testing.T) {
		u := NewGrowingUnit(NewGrowingUnitParams{Name: name, Type: TypePot, Capacity: c}, false)
		assert.Empty(t, u.UncommittedEvents())
		assert.False(t, u.ID().IsZero())
		assert.Equal(t, 0, u.Version())
	})
}

func TestGrowingUnitAddPlant(t *testing.T) {
	t.Run("appends in insertion order and sets back-reference", func(t *testing.T) {
		u := newUnit(t, 3)
		a, b := newTestPlant(t, "Basil"), newTestPlant(t, "Thyme")
		require.NoError(t, u.AddPlant(a, true))
		require.NoError(t, u.AddPlant(b, true))

		plants := u.Plants()
		require.Len(t, plants, 2)
		assert.Equal(t, a.ID(), plants[0].ID())
		assert.Equal(t, b.ID(), plants[1].ID())
		require.NotNil(t, b.GrowingUnitID())
		assert.Equal(t, u.ID(), *b.GrowingUnitID())
		assert.Equal(t, 1, u.RemainingCapacity())
		assert.Len(t, u.PullEvents(), 2)
	})

	t.Run("rejects a plant beyond capacity without mutating", func(t *testing.T) {
		u := newUnit(t, 2)
		require.NoError(t, u.AddPlant(newTestPlant(t, "A"), false))
		require.NoError(t, u.AddPlant(newTestPlant(t, "B"), false))

		err := u.AddPlant(newTestPlant(t, "C"), true)
		require.ErrorIs(t, err, domain.ErrGrowingUnitFullCapacity)
		assert.ErrorIs(t, err, kernel.ErrRuleViolation)
		assert.EqualError(t, err, "Growing unit "+u.ID().String()+" is at full capacity")
		assert.Equal(t, 2, u.NumberOfPlants())
		assert.Empty(t, u.UncommittedEvents())
	})

	t.Run("rejects a duplicate plant id", func(t *testing.T) {
		u := newUnit(t, 5)
		p := newTestPlant(t, "Mint")
		require.NoError(t, u.AddPlant(p, false))
		err := u.AddPlant(p, false)
		assert.ErrorIs(t, err, domain.ErrPlantAlreadyInGrowingUnit)
		assert.Equal(t, 1, u.NumberOfPlants())
	})

	t.Run("never exceeds capacity", func(t *testing.T) {
		for capacity := 1; capacity <= 6; capacity++ {
			u := newUnit(t, capacity)
			for i := 0; i < capacity+3; i++ {
				_ = u.AddPlant(newTestPlant(t, "P"), false)
				assert.LessOrEqual(t, u.NumberOfPlants(), capacity)
			}
			assert.Equal(t, 0, u.RemainingCapacity())
		}
	})
}

func TestGrowingUnitRemovePlant(t *testing.T) {
	t.Run("preserves order of remaining plants", func(t *testing.T) {
		u := newUnit(t, 5)
		a, b, c := newTestPlant(t, "A"), newTestPlant(t, "B"), newTestPlant(t, "C")
		for _, p := range []*Plant{a, b, c} {
			require.NoError(t, u.AddPlant(p, false))
		}

		removed, err := u.RemovePlant(b.ID(), true)
		require.NoError(t, err)
		assert.Equal(t, b.ID(), removed.ID())
		assert.Nil(t, removed.GrowingUnitID())

		plants := u.Plants()
		require.Len(t, plants, 2)
		assert.Equal(t, a.ID(), plants[0].ID())
		assert.Equal(t, c.ID(), plants[1].ID())

		evs := u.PullEvents()
		require.Len(t, evs, 1)
		assert.Equal(t, events.TopicGrowingUnitUpdated, evs[0].Type)
	})

	t.Run("unknown plant is an error and nothing changes", func(t *testing.T) {
		u := newUnit(t, 5)
		require.NoError(t, u.AddPlant(newTestPlant(t, "A"), false))
		missing := kernel.NewPlantID()

		_, err := u.RemovePlant(missing, true)
		require.ErrorIs(t, err, domain.ErrGrowingUnitPlantNotFound)
		assert.EqualError(t, err, "Plant "+missing.String()+" not found in growing unit "+u.ID().String())
		assert.Equal(t, 1, u.NumberOfPlants())
		assert.Empty(t, u.UncommittedEvents())
	})
}

func TestGrowingUnitPlantByID(t *testing.T) {
	u := newUnit(t, 2)
	p := newTestPlant(t, "Sage")
	require.NoError(t, u.AddPlant(p, false))

	assert.Same(t, p, u.PlantByID(p.ID()))
	assert.Nil(t, u.PlantByID(kernel.NewPlantID()))
}

func TestGrowingUnitUpdate(t *testing.T) {
	locID := kernel.NewLocationID()
	dims, err := NewDimensions(DimensionsPrimitives{Length: 2, Width: 1, Height: 0.5, Unit: "METERS"})
	require.NoError(t, err)

	base := func(t *testing.T) *GrowingUnit {
		u := newUnit(t, 4)
		require.NoError(t, u.Update(GrowingUnitPatch{
			LocationID: kernel.Some(locID),
			Dimensions: kernel.Some(dims),
		}, false))
		require.NoError(t, u.AddPlant(newTestPlant(t, "A"), false))
		require.NoError(t, u.AddPlant(newTestPlant(t, "B"), false))
		return u
	}

	t.Run("partial update leaves other fields untouched", func(t *testing.T) {
		u := base(t)
		before := u.Primitives()
		newName, _ := NewName("Herb bed")

		require.NoError(t, u.Update(GrowingUnitPatch{Name: kernel.Some(newName)}, true))
		after := u.Primitives()

		assert.Equal(t, "Herb bed", after.Name)
		assert.Equal(t, before.Type, after.Type)
		assert.Equal(t, before.Capacity, after.Capacity)
		assert.Equal(t, before.LocationID, after.LocationID)
		assert.Equal(t, before.Dimensions, after.Dimensions)
		assert.Equal(t, before.Plants, after.Plants)
		assert.Len(t, u.PullEvents(), 1)
	})

	t.Run("null clears optional fields", func(t *testing.T) {
		u := base(t)
		require.NoError(t, u.Update(GrowingUnitPatch{
			LocationID: kernel.Null[kernel.LocationID](),
			Dimensions: kernel.Null[Dimensions](),
		}, false))
		assert.Nil(t, u.LocationID())
		assert.Nil(t, u.Dimensions())
		assert.Zero(t, u.Volume())
	})

	t.Run("capacity below plant count is rejected", func(t *testing.T) {
		u := base(t)
		one, _ := NewCapacity(1)
		err := u.Update(GrowingUnitPatch{Capacity: kernel.Some(one)}, true)
		assert.ErrorIs(t, err, domain.ErrCapacityBelowPlantCount)
		assert.Equal(t, 4, u.Capacity().Int())
		assert.Empty(t, u.UncommittedEvents())
	})

	t.Run("capacity equal to plant count is allowed", func(t *testing.T) {
		u := base(t)
		two, _ := NewCapacity(2)
		require.NoError(t, u.Update(GrowingUnitPatch{Capacity: kernel.Some(two)}, false))
		assert.Equal(t, 0, u.RemainingCapacity())
	})

	t.Run("required fields cannot be cleared", func(t *testing.T) {
		u := base(t)
		err := u.Update(GrowingUnitPatch{Name: kernel.Null[Name]()}, false)
		assert.ErrorIs(t, err, kernel.ErrValidation)
		assert.Equal(t, "Raised bed", u.Name().String())
	})
}

func TestGrowingUnitUpdatePlant(t *testing.T) {
	u := newUnit(t, 2)
	planted := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	notes := "south facing"
	p := NewPlant(NewPlantParams{Name: "Tomato", Species: "Solanum lycopersicum", PlantedDate: &planted, Notes: &notes})
	require.NoError(t, u.AddPlant(p, false))

	updated, err := u.UpdatePlant(p.ID(), PlantPatch{
		Status: kernel.Some(kernel.PlantStatusGrowing),
		Notes:  kernel.Null[string](),
	}, true)
	require.NoError(t, err)

	assert.Equal(t, kernel.PlantStatusGrowing, updated.Status())
	assert.Nil(t, updated.Notes())
	assert.Equal(t, "Tomato", updated.Name().String())
	assert.Equal(t, planted, *updated.PlantedDate())
	assert.Len(t, u.PullEvents(), 1)

	_, err = u.UpdatePlant(kernel.NewPlantID(), PlantPatch{}, true)
	assert.ErrorIs(t, err, domain.ErrGrowingUnitPlantNotFound)
}

func TestGrowingUnitVolume(t *testing.T) {
	u := newUnit(t, 1)
	assert.Zero(t, u.Volume())

	dims, err := NewDimensions(DimensionsPrimitives{Length: 2, Width: 3, Height: 4, Unit: "CENTIMETERS"})
	require.NoError(t, err)
	require.NoError(t, u.Update(GrowingUnitPatch{Dimensions: kernel.Some(dims)}, false))
	assert.InDelta(t, 24.0, u.Volume(), 1e-9)
}

func TestGrowingUnitDelete(t *testing.T) {
	u := newUnit(t, 1)
	u.Delete(true)
	evs := u.PullEvents()
	require.Len(t, evs, 1)
	assert.Equal(t, events.TopicGrowingUnitDeleted, evs[0].Type)

	u.Delete(false)
	assert.Empty(t, u.UncommittedEvents())
}

func TestRehydrateGrowingUnit(t *testing.T) {
	u := newUnit(t, 3)
	require.NoError(t, u.AddPlant(newTestPlant(t, "Chives"), false))
	u.MarkPersisted(7)

	snap := u.Primitives()
	restored, err := RehydrateGrowingUnit(snap)
	require.NoError(t, err)

	assert.Equal(t, snap, restored.Primitives())
	assert.Equal(t, 7, restored.Version())
	assert.Empty(t, restored.UncommittedEvents())
	require.NotNil(t, restored.Plants()[0].GrowingUnitID())
	assert.Equal(t, u.ID(), *restored.Plants()[0].GrowingUnitID())

	t.Run("rejects invalid primitives", func(t *testing.T) {
		bad := snap
		bad.Capacity = 0
		_, err := RehydrateGrowingUnit(bad)
		assert.ErrorIs(t, err, kernel.ErrValidation)
	})
}
