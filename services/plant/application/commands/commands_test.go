package commands

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ghuser/gardenhub/pkg/kernel"
	"github.com/ghuser/gardenhub/services/plant/domain/events"
	"github.com/ghuser/gardenhub/services/plant/domain/models"
	"github.com/ghuser/gardenhub/services/plant/domain/services"
)

type callLog struct{ calls []string }

func (l *callLog) add(c string) { l.calls = append(l.calls, c) }

type fakeRepo struct {
	log     *callLog
	plants  map[kernel.PlantID]models.PlantPrimitives
	saveErr error
}

func newFakeRepo(log *callLog, plants ...*models.PlantAggregate) *fakeRepo {
	r := &fakeRepo{log: log, plants: map[kernel.PlantID]models.PlantPrimitives{}}
	for _, p := range plants {
		r.plants[p.ID()] = p.Primitives()
	}
	return r
}

func (r *fakeRepo) FindByID(_ context.Context, id kernel.PlantID) (*models.PlantAggregate, error) {
	r.log.add("find")
	p, ok := r.plants[id]
	if !ok {
		return nil, nil
	}
	return models.RehydratePlantAggregate(p)
}

func (r *fakeRepo) Save(_ context.Context, p *models.PlantAggregate) error {
	r.log.add("save")
	if r.saveErr != nil {
		return r.saveErr
	}
	r.plants[p.ID()] = p.Primitives()
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, p *models.PlantAggregate) error {
	r.log.add("delete")
	delete(r.plants, p.ID())
	return nil
}

type fakePublisher struct {
	log    *callLog
	events []kernel.Event
}

func (p *fakePublisher) Publish(_ context.Context, e kernel.Event) error {
	p.events = append(p.events, e)
	return nil
}

func (p *fakePublisher) PublishAll(_ context.Context, evts []kernel.Event) error {
	p.log.add("publish")
	p.events = append(p.events, evts...)
	return nil
}

func seeded() *models.PlantAggregate {
	return models.NewPlantAggregate(models.NewPlantParams{
		ContainerID: kernel.NewContainerID(),
		Name:        "Mint",
		Species:     "Mentha spicata",
	}, false)
}

func TestNewPlantCreateCommand(t *testing.T) {
	_, err := NewPlantCreateCommand(PlantCreateInput{ContainerID: "x", Name: "Mint", Species: "Mentha"})
	assert.ErrorIs(t, err, kernel.ErrValidation)

	_, err = NewPlantCreateCommand(PlantCreateInput{ContainerID: kernel.NewContainerID().String(), Name: "Mint", Species: "Mentha", Status: "ASLEEP"})
	assert.ErrorIs(t, err, kernel.ErrValidation)

	cmd, err := NewPlantCreateCommand(PlantCreateInput{ContainerID: kernel.NewContainerID().String(), Name: " Mint ", Species: "Mentha"})
	require.NoError(t, err)
	assert.Equal(t, "Mint", cmd.Params.Name)
}

func TestPlantCreateHandler(t *testing.T) {
	log := &callLog{}
	repo := newFakeRepo(log)
	pub := &fakePublisher{log: log}

	cmd, err := NewPlantCreateCommand(PlantCreateInput{ContainerID: kernel.NewContainerID().String(), Name: "Chive", Species: "Allium schoenoprasum"})
	require.NoError(t, err)
	id, err := NewPlantCreateHandler(repo, pub).Handle(context.Background(), cmd)
	require.NoError(t, err)

	assert.Equal(t, []string{"save", "publish"}, log.calls)
	assert.Equal(t, "PLANTED", repo.plants[id].Status)
	require.Len(t, pub.events, 1)
	assert.Equal(t, events.TopicPlantCreated, pub.events[0].Type)
}

func TestPlantUpdateHandler(t *testing.T) {
	p := seeded()
	log := &callLog{}
	repo := newFakeRepo(log, p)
	pub := &fakePublisher{log: log}
	h := NewPlantUpdateHandler(services.NewPlantAssertExists(repo), repo, pub)

	cmd, err := NewPlantUpdateCommand(PlantUpdateInput{ID: p.ID().String(), Notes: kernel.Some("water daily")})
	require.NoError(t, err)
	require.NoError(t, h.Handle(context.Background(), cmd))

	assert.Equal(t, []string{"find", "save", "publish"}, log.calls)
	require.NotNil(t, repo.plants[p.ID()].Notes)
	assert.Equal(t, "water daily", *repo.plants[p.ID()].Notes)

	t.Run("save failure publishes nothing", func(t *testing.T) {
		repo.saveErr = errors.New("db down")
		pub.events = nil
		assert.Error(t, h.Handle(context.Background(), cmd))
		assert.Empty(t, pub.events)
	})
}

func TestPlantChangeStatusHandler(t *testing.T) {
	p := seeded()
	log := &callLog{}
	repo := newFakeRepo(log, p)
	pub := &fakePublisher{log: log}
	h := NewPlantChangeStatusHandler(services.NewPlantAssertExists(repo), repo, pub)

	cmd, err := NewPlantChangeStatusCommand(p.ID().String(), "HARVESTED")
	require.NoError(t, err)
	require.NoError(t, h.Handle(context.Background(), cmd))
	assert.Equal(t, "HARVESTED", repo.plants[p.ID()].Status)
	require.Len(t, pub.events, 1)
	assert.Equal(t, events.TopicPlantStatusChanged, pub.events[0].Type)

	t.Run("same status", func(t *testing.T) {
		log.calls = nil
		require.NoError(t, h.Handle(context.Background(), cmd))
		assert.Equal(t, []string{"find"}, log.calls)
	})

	t.Run("unknown plant", func(t *testing.T) {
		cmd, _ := NewPlantChangeStatusCommand(kernel.NewPlantID().String(), "DEAD")
		assert.ErrorIs(t, h.Handle(context.Background(), cmd), kernel.ErrNotFound)
	})
}

func TestPlantDeleteHandler(t *testing.T) {
	p := seeded()
	log := &callLog{}
	repo := newFakeRepo(log, p)
	pub := &fakePublisher{log: log}

	cmd, err := NewPlantDeleteCommand(p.ID().String())
	require.NoError(t, err)
	require.NoError(t, NewPlantDeleteHandler(services.NewPlantAssertExists(repo), repo, pub).Handle(context.Background(), cmd))

	assert.Equal(t, []string{"find", "delete", "publish"}, log.calls)
	assert.Empty(t, repo.plants)
	require.Len(t, pub.events, 1)
	assert.Equal(t, events.TopicPlantDeleted, pub.events[0].Type)
}
