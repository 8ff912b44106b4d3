package commands

import (
	"context"
	"fmt"

	"github.com/ghuser/gardenhub/pkg/kernel"
	"github.com/ghuser/gardenhub/services/plantspecies/domain/repositories"
)

type PlantSpeciesDeleteCommand struct {
	ID kernel.PlantSpeciesID
}

func NewPlantSpeciesDeleteCommand(id string) (PlantSpeciesDeleteCommand, error) {
	sid, err := kernel.ParsePlantSpeciesID(id)
	if err != nil {
		return PlantSpeciesDeleteCommand{}, err
	}
	return PlantSpeciesDeleteCommand{ID: sid}, nil
}

type PlantSpeciesDeleteHandler struct {
	assertExists SpeciesLoader
	repo         repositories.PlantSpeciesRepository
	publisher    kernel.EventPublisher
}

func NewPlantSpeciesDeleteHandler(assertExists SpeciesLoader, repo repositories.PlantSpeciesRepository, publisher kernel.EventPublisher) *PlantSpeciesDeleteHandler {
	return &PlantSpeciesDeleteHandler{assertExists: assertExists, repo: repo, publisher: publisher}
}

func (h *PlantSpeciesDeleteHandler) Handle(ctx context.Context, cmd PlantSpeciesDeleteCommand) error {
	s, err := h.assertExists.Execute(ctx, cmd.ID)
	if err != nil {
		return err
	}
	s.Delete(true)
	if err := h.repo.Delete(ctx, s); err != nil {
		return fmt.Errorf("delete plant species: %w", err)
	}
	if err := h.publisher.PublishAll(ctx, s.PullEvents()); err != nil {
		return fmt.Errorf("publish plant species events: %w", err)
	}
	return nil
}
