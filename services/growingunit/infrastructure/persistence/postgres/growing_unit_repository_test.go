package postgres

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ghuser/gardenhub/migrations/garden"
	"github.com/ghuser/gardenhub/pkg/config"
	"github.com/ghuser/gardenhub/pkg/database"
	"github.com/ghuser/gardenhub/pkg/events"
	"github.com/ghuser/gardenhub/pkg/kernel"
	"github.com/ghuser/gardenhub/pkg/logger"
	"github.com/ghuser/gardenhub/pkg/migrator"
	"github.com/ghuser/gardenhub/services/growingunit/domain"
	"github.com/ghuser/gardenhub/services/growingunit/domain/models"
	"github.com/ghuser/gardenhub/services/growingunit/domain/services"
)

type recordingOutbox struct {
	written []kernel.Event
	fail    error
}

func (o *recordingOutbox) WriteTx(_ context.Context, tx *sql.Tx, evs []kernel.Event) error {
	if tx == nil {
		return errors.New("no transaction")
	}
	if o.fail != nil {
		return o.fail
	}
	o.written = append(o.written, evs...)
	return nil
}

func newTestRepository(t *testing.T) *GrowingUnitRepository {
	return newTestRepositoryWithOutbox(t, nil)
}

// newTestRepositoryWithOutbox connects to DATABASE_URL and applies migrations.
// Skips when DATABASE_URL is unset.
func newTestRepositoryWithOutbox(t *testing.T, outbox events.TxEventWriter) *GrowingUnitRepository {
	t.Helper()
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		t.Skip("DATABASE_URL not set")
	}
	db, err := sql.Open("pgx", url)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, migrator.Up(db, garden.FS))
	return NewGrowingUnitRepository(database.New(db, logger.New(&config.Config{LogLevel: "error"})), outbox)
}

func newUnit(t *testing.T, capacity, plants int) *models.GrowingUnit {
	t.Helper()
	c, err := models.NewCapacity(capacity)
	require.NoError(t, err)
	d, err := models.NewDimensions(models.DimensionsPrimitives{Length: 120, Width: 60, Height: 30, Unit: "CENTIMETERS"})
	require.NoError(t, err)
	u := models.NewGrowingUnit(models.NewGrowingUnitParams{Name: "Raised bed", Type: models.TypeGardenBed, Capacity: c, Dimensions: &d}, false)
	for i := 0; i < plants; i++ {
		notes := "north side"
		require.NoError(t, u.AddPlant(models.NewPlant(models.NewPlantParams{Name: "Kale", Species: "Brassica oleracea", Notes: &notes}), false))
	}
	return u
}

func TestGrowingUnitRepository_RoundTrip(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	u := newUnit(t, 4, 3)
	require.NoError(t, repo.Save(ctx, u))
	t.Cleanup(func() { _ = repo.Delete(ctx, u) })
	assert.Equal(t, 1, u.Version())

	got, err := repo.FindByID(ctx, u.ID())
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, u.Name(), got.Name())
	assert.Equal(t, 3, got.NumberOfPlants())
	assert.InDelta(t, u.Volume(), got.Volume(), 1e-9)
	for i, p := range u.Plants() {
		assert.Equal(t, p.ID(), got.Plants()[i].ID())
	}
}

func TestGrowingUnitRepository_FindMissing(t *testing.T) {
	repo := newTestRepository(t)
	got, err := repo.FindByID(context.Background(), kernel.NewGrowingUnitID())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestGrowingUnitRepository_StaleVersionRejected(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	u := newUnit(t, 4, 0)
	require.NoError(t, repo.Save(ctx, u))
	t.Cleanup(func() { _ = repo.Delete(ctx, u) })

	first, err := repo.FindByID(ctx, u.ID())
	require.NoError(t, err)
	second, err := repo.FindByID(ctx, u.ID())
	require.NoError(t, err)

	require.NoError(t, first.Update(models.GrowingUnitPatch{Name: kernel.Some(models.Name("First"))}, false))
	require.NoError(t, repo.Save(ctx, first))

	require.NoError(t, second.Update(models.GrowingUnitPatch{Name: kernel.Some(models.Name("Second"))}, false))
	assert.ErrorIs(t, repo.Save(ctx, second), kernel.ErrConcurrentModification)
}

func TestGrowingUnitRepository_SaveAllMovesPlant(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	source := newUnit(t, 3, 2)
	target := newUnit(t, 3, 0)
	require.NoError(t, repo.SaveAll(ctx, source, target))
	t.Cleanup(func() {
		_ = repo.Delete(ctx, source)
		_ = repo.Delete(ctx, target)
	})

	plantID := source.Plants()[0].ID()
	_, err := services.NewPlantTransplantService().Execute(services.TransplantParams{Source: source, Target: target, PlantID: plantID})
	require.NoError(t, err)
	require.NoError(t, repo.SaveAll(ctx, source, target))

	gotSource, err := repo.FindByID(ctx, source.ID())
	require.NoError(t, err)
	gotTarget, err := repo.FindByID(ctx, target.ID())
	require.NoError(t, err)
	assert.Nil(t, gotSource.PlantByID(plantID))
	require.NotNil(t, gotTarget.PlantByID(plantID))
	assert.Equal(t, target.ID(), *gotTarget.PlantByID(plantID).GrowingUnitID())
}

func TestGrowingUnitRepository_PlantHeldByAnotherUnit(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	holder := newUnit(t, 2, 1)
	require.NoError(t, repo.Save(ctx, holder))
	t.Cleanup(func() { _ = repo.Delete(ctx, holder) })

	other := newUnit(t, 2, 0)
	taken := holder.Plants()[0].ID()
	require.NoError(t, other.AddPlant(models.NewPlant(models.NewPlantParams{ID: taken, Name: "Kale", Species: "Brassica oleracea"}), false))

	err := repo.Save(ctx, other)
	assert.ErrorIs(t, err, domain.ErrPlantHeldByAnotherGrowingUnit)
	assert.ErrorIs(t, err, kernel.ErrConflict)
	assert.NotErrorIs(t, err, kernel.ErrConcurrentModification)

	got, err := repo.FindByID(ctx, other.ID())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestGrowingUnitRepository_OutboxWritesEventsInTransaction(t *testing.T) {
	ctx := context.Background()

	t.Run("events are written and drained on commit", func(t *testing.T) {
		outbox := &recordingOutbox{}
		repo := newTestRepositoryWithOutbox(t, outbox)

		u := models.NewGrowingUnit(models.NewGrowingUnitParams{Name: "Herb pot", Type: models.TypePot, Capacity: 2}, true)
		require.NoError(t, repo.Save(ctx, u))
		t.Cleanup(func() { _ = repo.Delete(ctx, u) })

		require.Len(t, outbox.written, 1)
		assert.Equal(t, u.ID().String(), outbox.written[0].AggregateID)
		assert.Empty(t, u.UncommittedEvents())
	})

	t.Run("a failed write rolls the save back and keeps the events", func(t *testing.T) {
		outbox := &recordingOutbox{fail: errors.New("outbox unavailable")}
		repo := newTestRepositoryWithOutbox(t, outbox)

		u := models.NewGrowingUnit(models.NewGrowingUnitParams{Name: "Herb pot", Type: models.TypePot, Capacity: 2}, true)
		err := repo.Save(ctx, u)
		require.ErrorIs(t, err, outbox.fail)

		got, err := repo.FindByID(ctx, u.ID())
		require.NoError(t, err)
		assert.Nil(t, got)
		assert.Zero(t, u.Version())
		assert.Len(t, u.UncommittedEvents(), 1)
	})

	t.Run("delete writes the deleted event", func(t *testing.T) {
		outbox := &recordingOutbox{}
		repo := newTestRepositoryWithOutbox(t, outbox)

		u := newUnit(t, 2, 0)
		require.NoError(t, repo.Save(ctx, u))
		u.Delete(true)
		require.NoError(t, repo.Delete(ctx, u))

		require.Len(t, outbox.written, 1)
		assert.Empty(t, u.UncommittedEvents())
		got, err := repo.FindByID(ctx, u.ID())
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}
