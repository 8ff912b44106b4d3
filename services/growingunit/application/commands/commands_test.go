package commands

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/ghuser/gardenhub/pkg/kernel"
	"github.com/ghuser/gardenhub/services/growingunit/domain"
	"github.com/ghuser/gardenhub/services/growingunit/domain/events"
	"github.com/ghuser/gardenhub/services/growingunit/domain/models"
	"github.com/ghuser/gardenhub/services/growingunit/domain/services"
)

// callLog records the order collaborators are invoked in.
type callLog struct {
	calls []string
}

func (l *callLog) add(c string) { l.calls = append(l.calls, c) }

type fakeRepo struct {
	log     *callLog
	units   map[kernel.GrowingUnitID]models.GrowingUnitPrimitives
	saveErr error
	saved   [][]kernel.GrowingUnitID

	// transactional mimics a store that writes pending events with the rows.
	transactional bool
	written       []kernel.Event
}

func newFakeRepo(log *callLog, units ...*models.GrowingUnit) *fakeRepo {
	r := &fakeRepo{log: log, units: map[kernel.GrowingUnitID]models.GrowingUnitPrimitives{}}
	for _, u := range units {
		r.units[u.ID()] = u.Primitives()
	}
	return r
}

// FindByID rehydrates a fresh aggregate on every call like a real store.
func (r *fakeRepo) FindByID(_ context.Context, id kernel.GrowingUnitID) (*models.GrowingUnit, error) {
	r.log.add("find")
	p, ok := r.units[id]
	if !ok {
		return nil, nil
	}
	return models.RehydrateGrowingUnit(p)
}

func (r *fakeRepo) Save(ctx context.Context, u *models.GrowingUnit) error {
	r.log.add("save")
	return r.store(u)
}

func (r *fakeRepo) SaveAll(_ context.Context, units ...*models.GrowingUnit) error {
	r.log.add("saveAll")
	if r.saveErr != nil {
		return r.saveErr
	}
	ids := make([]kernel.GrowingUnitID, 0, len(units))
	for _, u := range units {
		r.units[u.ID()] = u.Primitives()
		ids = append(ids, u.ID())
	}
	for _, u := range units {
		r.drain(u)
	}
	r.saved = append(r.saved, ids)
	return nil
}

func (r *fakeRepo) drain(u *models.GrowingUnit) {
	if r.transactional {
		r.written = append(r.written, u.PullEvents()...)
	}
}

func (r *fakeRepo) Delete(_ context.Context, u *models.GrowingUnit) error {
	r.log.add("delete")
	delete(r.units, u.ID())
	return nil
}

func (r *fakeRepo) store(u *models.GrowingUnit) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.units[u.ID()] = u.Primitives()
	r.saved = append(r.saved, []kernel.GrowingUnitID{u.ID()})
	r.drain(u)
	return nil
}

type fakePublisher struct {
	log       *callLog
	published []kernel.Event
}

func (p *fakePublisher) Publish(ctx context.Context, e kernel.Event) error {
	return p.PublishAll(ctx, []kernel.Event{e})
}

func (p *fakePublisher) PublishAll(_ context.Context, evs []kernel.Event) error {
	p.log.add("publish")
	p.published = append(p.published, evs...)
	return nil
}

func (p *fakePublisher) types() []string {
	out := make([]string, 0, len(p.published))
	for _, e := range p.published {
		out = append(out, e.Type)
	}
	return out
}

type fakeLocations struct {
	err     error
	checked []kernel.LocationID
}

func (f *fakeLocations) AssertLocationExists(_ context.Context, id kernel.LocationID) error {
	f.checked = append(f.checked, id)
	return f.err
}

func newUnit(t *testing.T, capacity, plants int) *models.GrowingUnit {
	t.Helper()
	c, err := models.NewCapacity(capacity)
	require.NoError(t, err)
	u := models.NewGrowingUnit(models.NewGrowingUnitParams{Name: "Bed", Type: models.TypeGardenBed, Capacity: c}, false)
	for i := 0; i < plants; i++ {
		require.NoError(t, u.AddPlant(models.NewPlant(models.NewPlantParams{Name: "Basil", Species: "Ocimum basilicum"}), false))
	}
	return u
}

func TestNewGrowingUnitCreateCommand_Validates(t *testing.T) {
	tests := []struct {
		name string
		in   GrowingUnitCreateInput
	}{
		{"empty name", GrowingUnitCreateInput{Name: " ", Type: "POT", Capacity: 1}},
		{"bad type", GrowingUnitCreateInput{Name: "Pot", Type: "BUCKET", Capacity: 1}},
		{"zero capacity", GrowingUnitCreateInput{Name: "Pot", Type: "POT", Capacity: 0}},
		{"bad location", GrowingUnitCreateInput{Name: "Pot", Type: "POT", Capacity: 1, LocationID: strPtr("nope")}},
		{"bad dimensions", GrowingUnitCreateInput{Name: "Pot", Type: "POT", Capacity: 1,
			Dimensions: &models.DimensionsPrimitives{Length: 0, Width: 1, Height: 1, Unit: "CENTIMETERS"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewGrowingUnitCreateCommand(tt.in)
			require.Error(t, err)
			assert.ErrorIs(t, err, kernel.ErrValidation)
		})
	}
}

func TestGrowingUnitCreateHandler_SavesThenPublishes(t *testing.T) {
	log := &callLog{}
	repo := newFakeRepo(log)
	pub := &fakePublisher{log: log}
	locs := &fakeLocations{}
	locID := kernel.NewLocationID().String()

	cmd, err := NewGrowingUnitCreateCommand(GrowingUnitCreateInput{
		LocationID: &locID, Name: "Balcony box", Type: "WINDOW_BOX", Capacity: 4,
		Dimensions: &models.DimensionsPrimitives{Length: 80, Width: 20, Height: 15, Unit: "CENTIMETERS"},
	})
	require.NoError(t, err)

	id, err := NewGrowingUnitCreateHandler(repo, pub, locs).Handle(context.Background(), cmd)
	require.NoError(t, err)

	assert.Equal(t, []string{"save", "publish"}, log.calls)
	assert.Equal(t, []string{events.TopicGrowingUnitCreated}, pub.types())
	assert.Len(t, locs.checked, 1)
	assert.Contains(t, repo.units, id)
}

func TestGrowingUnitCreateHandler_UnknownLocation(t *testing.T) {
	log := &callLog{}
	repo := newFakeRepo(log)
	pub := &fakePublisher{log: log}
	locs := &fakeLocations{err: kernel.NewSentinel("location not found", kernel.ErrNotFound)}
	locID := kernel.NewLocationID().String()

	cmd, err := NewGrowingUnitCreateCommand(GrowingUnitCreateInput{LocationID: &locID, Name: "Pot", Type: "POT", Capacity: 1})
	require.NoError(t, err)

	_, err = NewGrowingUnitCreateHandler(repo, pub, locs).Handle(context.Background(), cmd)
	assert.ErrorIs(t, err, kernel.ErrNotFound)
	assert.Empty(t, log.calls)
}

func TestGrowingUnitUpdateHandler_PartialUpdate(t *testing.T) {
	log := &callLog{}
	unit := newUnit(t, 5, 2)
	repo := newFakeRepo(log, unit)
	pub := &fakePublisher{log: log}

	cmd, err := NewGrowingUnitUpdateCommand(GrowingUnitUpdateInput{
		ID:   unit.ID().String(),
		Name: kernel.Some("Renamed"),
	})
	require.NoError(t, err)

	h := NewGrowingUnitUpdateHandler(services.NewGrowingUnitAssertExists(repo), repo, pub, nil)
	require.NoError(t, h.Handle(context.Background(), cmd))

	assert.Equal(t, []string{"find", "save", "publish"}, log.calls)
	stored := repo.units[unit.ID()]
	assert.Equal(t, "Renamed", stored.Name)
	assert.Equal(t, 5, stored.Capacity)
	assert.Len(t, stored.Plants, 2)
}

func TestGrowingUnitUpdateHandler_CapacityBelowPlantCount(t *testing.T) {
	log := &callLog{}
	unit := newUnit(t, 5, 3)
	repo := newFakeRepo(log, unit)
	pub := &fakePublisher{log: log}

	cmd, err := NewGrowingUnitUpdateCommand(GrowingUnitUpdateInput{ID: unit.ID().String(), Capacity: kernel.Some(2)})
	require.NoError(t, err)

	err = NewGrowingUnitUpdateHandler(services.NewGrowingUnitAssertExists(repo), repo, pub, nil).Handle(context.Background(), cmd)
	assert.ErrorIs(t, err, domain.ErrCapacityBelowPlantCount)
	assert.Equal(t, []string{"find"}, log.calls)
}

func TestGrowingUnitUpdateHandler_NotFound(t *testing.T) {
	log := &callLog{}
	repo := newFakeRepo(log)
	pub := &fakePublisher{log: log}

	cmd, err := NewGrowingUnitUpdateCommand(GrowingUnitUpdateInput{ID: kernel.NewGrowingUnitID().String()})
	require.NoError(t, err)

	err = NewGrowingUnitUpdateHandler(services.NewGrowingUnitAssertExists(repo), repo, pub, nil).Handle(context.Background(), cmd)
	var nf *domain.GrowingUnitNotFoundError
	assert.True(t, errors.As(err, &nf))
	assert.Empty(t, pub.published)
}

func TestGrowingUnitDeleteHandler(t *testing.T) {
	log := &callLog{}
	unit := newUnit(t, 3, 1)
	repo := newFakeRepo(log, unit)
	pub := &fakePublisher{log: log}

	cmd, err := NewGrowingUnitDeleteCommand(unit.ID().String())
	require.NoError(t, err)

	require.NoError(t, NewGrowingUnitDeleteHandler(services.NewGrowingUnitAssertExists(repo), repo, pub).Handle(context.Background(), cmd))
	assert.Equal(t, []string{"find", "delete", "publish"}, log.calls)
	assert.Equal(t, []string{events.TopicGrowingUnitDeleted}, pub.types())
	assert.NotContains(t, repo.units, unit.ID())
}

func TestPlantAddHandler(t *testing.T) {
	t.Run("adds and publishes", func(t *testing.T) {
		log := &callLog{}
		unit := newUnit(t, 2, 1)
		repo := newFakeRepo(log, unit)
		pub := &fakePublisher{log: log}

		cmd, err := NewPlantAddCommand(unit.ID().String(), PlantInput{Name: "Mint", Species: "Mentha"})
		require.NoError(t, err)

		plantID, err := NewPlantAddHandler(services.NewGrowingUnitAssertExists(repo), repo, pub).Handle(context.Background(), cmd)
		require.NoError(t, err)

		assert.Equal(t, []string{"find", "save", "publish"}, log.calls)
		stored := repo.units[unit.ID()]
		require.Len(t, stored.Plants, 2)
		assert.Equal(t, plantID.String(), stored.Plants[1].ID)
		require.NotNil(t, stored.Plants[1].GrowingUnitID)
		assert.Equal(t, unit.ID().String(), *stored.Plants[1].GrowingUnitID)
	})

	t.Run("full unit saves nothing", func(t *testing.T) {
		log := &callLog{}
		unit := newUnit(t, 1, 1)
		repo := newFakeRepo(log, unit)
		pub := &fakePublisher{log: log}

		cmd, err := NewPlantAddCommand(unit.ID().String(), PlantInput{Name: "Mint", Species: "Mentha"})
		require.NoError(t, err)

		_, err = NewPlantAddHandler(services.NewGrowingUnitAssertExists(repo), repo, pub).Handle(context.Background(), cmd)
		require.ErrorIs(t, err, domain.ErrGrowingUnitFullCapacity)
		assert.Equal(t, "Growing unit "+unit.ID().String()+" is at full capacity", err.Error())
		assert.Equal(t, []string{"find"}, log.calls)
		assert.Len(t, repo.units[unit.ID()].Plants, 1)
	})

	t.Run("invalid status rejected before handling", func(t *testing.T) {
		_, err := NewPlantAddCommand(kernel.NewGrowingUnitID().String(), PlantInput{Name: "Mint", Species: "Mentha", Status: "WILTED"})
		assert.ErrorIs(t, err, kernel.ErrValidation)
	})
}

func TestPlantUpdateHandler(t *testing.T) {
	log := &callLog{}
	unit := newUnit(t, 2, 1)
	plantID := unit.Plants()[0].ID()
	repo := newFakeRepo(log, unit)
	pub := &fakePublisher{log: log}

	cmd, err := NewPlantUpdateCommand(unit.ID().String(), plantID.String(), PlantPatchInput{
		Status: kernel.Some("GROWING"),
		Notes:  kernel.Some("repotted"),
	})
	require.NoError(t, err)

	require.NoError(t, NewPlantUpdateHandler(services.NewGrowingUnitAssertExists(repo), repo, pub).Handle(context.Background(), cmd))
	stored := repo.units[unit.ID()].Plants[0]
	assert.Equal(t, "GROWING", stored.Status)
	require.NotNil(t, stored.Notes)
	assert.Equal(t, "repotted", *stored.Notes)
	assert.Equal(t, "Basil", stored.Name)
}

func TestPlantRemoveHandler(t *testing.T) {
	t.Run("removes", func(t *testing.T) {
		log := &callLog{}
		unit := newUnit(t, 3, 2)
		first := unit.Plants()[0].ID()
		repo := newFakeRepo(log, unit)
		pub := &fakePublisher{log: log}

		cmd, err := NewPlantRemoveCommand(unit.ID().String(), first.String())
		require.NoError(t, err)
		require.NoError(t, NewPlantRemoveHandler(services.NewGrowingUnitAssertExists(repo), repo, pub).Handle(context.Background(), cmd))

		assert.Len(t, repo.units[unit.ID()].Plants, 1)
		assert.Equal(t, []string{events.TopicGrowingUnitUpdated}, pub.types())
	})

	t.Run("missing plant", func(t *testing.T) {
		log := &callLog{}
		unit := newUnit(t, 3, 1)
		repo := newFakeRepo(log, unit)
		pub := &fakePublisher{log: log}

		cmd, err := NewPlantRemoveCommand(unit.ID().String(), kernel.NewPlantID().String())
		require.NoError(t, err)
		err = NewPlantRemoveHandler(services.NewGrowingUnitAssertExists(repo), repo, pub).Handle(context.Background(), cmd)
		assert.ErrorIs(t, err, domain.ErrGrowingUnitPlantNotFound)
		assert.Empty(t, pub.published)
	})
}

func newTransplantHandler(repo *fakeRepo, pub *fakePublisher) *PlantTransplantHandler {
	return NewPlantTransplantHandler(services.NewGrowingUnitAssertExists(repo), services.NewPlantTransplantService(), repo, pub)
}

func TestPlantTransplantHandler_MovesPlant(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	prev := otel.GetMeterProvider()
	otel.SetMeterProvider(sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)))
	t.Cleanup(func() { otel.SetMeterProvider(prev) })

	log := &callLog{}
	source := newUnit(t, 3, 2)
	target := newUnit(t, 3, 0)
	plantID := source.Plants()[1].ID()
	repo := newFakeRepo(log, source, target)
	pub := &fakePublisher{log: log}

	cmd, err := NewPlantTransplantCommand(PlantTransplantInput{
		SourceGrowingUnitID: source.ID().String(),
		TargetGrowingUnitID: target.ID().String(),
		PlantID:             plantID.String(),
	})
	require.NoError(t, err)

	require.NoError(t, newTransplantHandler(repo, pub).Handle(context.Background(), cmd))

	assert.Equal(t, []string{"find", "find", "saveAll", "publish", "publish"}, log.calls)
	assert.Equal(t, [][]kernel.GrowingUnitID{{source.ID(), target.ID()}}, repo.saved)
	assert.Equal(t, []string{events.TopicPlantTransplantedOut, events.TopicPlantTransplantedIn}, pub.types())

	assert.Len(t, repo.units[source.ID()].Plants, 1)
	moved := repo.units[target.ID()].Plants
	require.Len(t, moved, 1)
	assert.Equal(t, plantID.String(), moved[0].ID)
	assert.Equal(t, target.ID().String(), *moved[0].GrowingUnitID)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	assert.Equal(t, int64(1), counterValue(rm, "garden.plants.transplanted"))
}

func TestPlantTransplantHandler_TransactionalStorePublishesOnce(t *testing.T) {
	log := &callLog{}
	source := newUnit(t, 3, 1)
	target := newUnit(t, 3, 0)
	repo := newFakeRepo(log, source, target)
	repo.transactional = true
	pub := &fakePublisher{log: log}

	cmd, err := NewPlantTransplantCommand(PlantTransplantInput{
		SourceGrowingUnitID: source.ID().String(),
		TargetGrowingUnitID: target.ID().String(),
		PlantID:             source.Plants()[0].ID().String(),
	})
	require.NoError(t, err)
	require.NoError(t, newTransplantHandler(repo, pub).Handle(context.Background(), cmd))

	written := make([]string, 0, len(repo.written))
	for _, e := range repo.written {
		written = append(written, e.Type)
	}
	assert.Equal(t, []string{events.TopicPlantTransplantedOut, events.TopicPlantTransplantedIn}, written)
	assert.Empty(t, pub.published)
}

func TestPlantTransplantHandler_Failures(t *testing.T) {
	t.Run("target full", func(t *testing.T) {
		log := &callLog{}
		source := newUnit(t, 3, 1)
		target := newUnit(t, 1, 1)
		plantID := source.Plants()[0].ID()
		repo := newFakeRepo(log, source, target)
		pub := &fakePublisher{log: log}

		cmd, err := NewPlantTransplantCommand(PlantTransplantInput{
			SourceGrowingUnitID: source.ID().String(),
			TargetGrowingUnitID: target.ID().String(),
			PlantID:             plantID.String(),
		})
		require.NoError(t, err)

		err = newTransplantHandler(repo, pub).Handle(context.Background(), cmd)
		require.ErrorIs(t, err, domain.ErrGrowingUnitFullCapacity)
		assert.Equal(t, []string{"find", "find"}, log.calls)
		assert.Len(t, repo.units[source.ID()].Plants, 1)
		assert.Len(t, repo.units[target.ID()].Plants, 1)
	})

	t.Run("missing source", func(t *testing.T) {
		log := &callLog{}
		target := newUnit(t, 1, 0)
		repo := newFakeRepo(log, target)
		pub := &fakePublisher{log: log}

		cmd, err := NewPlantTransplantCommand(PlantTransplantInput{
			SourceGrowingUnitID: kernel.NewGrowingUnitID().String(),
			TargetGrowingUnitID: target.ID().String(),
			PlantID:             kernel.NewPlantID().String(),
		})
		require.NoError(t, err)

		err = newTransplantHandler(repo, pub).Handle(context.Background(), cmd)
		assert.ErrorIs(t, err, domain.ErrGrowingUnitNotFound)
		assert.Equal(t, []string{"find"}, log.calls)
	})

	t.Run("save failure publishes nothing", func(t *testing.T) {
		log := &callLog{}
		source := newUnit(t, 3, 1)
		target := newUnit(t, 3, 0)
		repo := newFakeRepo(log, source, target)
		repo.saveErr = kernel.ErrConcurrentModification
		pub := &fakePublisher{log: log}

		cmd, err := NewPlantTransplantCommand(PlantTransplantInput{
			SourceGrowingUnitID: source.ID().String(),
			TargetGrowingUnitID: target.ID().String(),
			PlantID:             source.Plants()[0].ID().String(),
		})
		require.NoError(t, err)

		err = newTransplantHandler(repo, pub).Handle(context.Background(), cmd)
		assert.ErrorIs(t, err, kernel.ErrConcurrentModification)
		assert.Empty(t, pub.published)
	})
}

func counterValue(rm metricdata.ResourceMetrics, name string) int64 {
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != name {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				return 0
			}
			var total int64
			for _, dp := range sum.DataPoints {
				total += dp.Value
			}
			return total
		}
	}
	return 0
}

func strPtr(s string) *string { return &s }
