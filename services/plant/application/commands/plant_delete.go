package commands

import (
	"context"
	"fmt"

	"github.com/ghuser/gardenhub/pkg/kernel"
	"github.com/ghuser/gardenhub/services/plant/domain/repositories"
)

type PlantDeleteCommand struct {
	ID kernel.PlantID
}

func NewPlantDeleteCommand(id string) (PlantDeleteCommand, error) {
	plantID, err := kernel.ParsePlantID(id)
	if err != nil {
		return PlantDeleteCommand{}, err
	}
	return PlantDeleteCommand{ID: plantID}, nil
}

type PlantDeleteHandler struct {
	assertExists PlantLoader
	repo         repositories.PlantRepository
	publisher    kernel.EventPublisher
}

func NewPlantDeleteHandler(assertExists PlantLoader, repo repositories.PlantRepository, publisher kernel.EventPublisher) *PlantDeleteHandler {
	return &PlantDeleteHandler{assertExists: assertExists, repo: repo, publisher: publisher}
}

func (h *PlantDeleteHandler) Handle(ctx context.Context, cmd PlantDeleteCommand) error {
	p, err := h.assertExists.Execute(ctx, cmd.ID)
	if err != nil {
		return err
	}
	p.Delete(true)
	if err := h.repo.Delete(ctx, p); err != nil {
		return fmt.Errorf("delete plant: %w", err)
	}
	if err := h.publisher.PublishAll(ctx, p.PullEvents()); err != nil {
		return fmt.Errorf("publish plant events: %w", err)
	}
	return nil
}
