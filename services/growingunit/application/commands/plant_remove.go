package commands

import (
	"context"
	"fmt"

	"github.com/ghuser/gardenhub/pkg/kernel"
	"github.com/ghuser/gardenhub/services/growingunit/domain/repositories"
)

type PlantRemoveCommand struct {
	GrowingUnitID kernel.GrowingUnitID
	PlantID       kernel.PlantID
}

func NewPlantRemoveCommand(growingUnitID, plantID string) (PlantRemoveCommand, error) {
	guID, err := kernel.ParseGrowingUnitID(growingUnitID)
	if err != nil {
		return PlantRemoveCommand{}, err
	}
	pID, err := kernel.ParsePlantID(plantID)
	if err != nil {
		return PlantRemoveCommand{}, err
	}
	return PlantRemoveCommand{GrowingUnitID: guID, PlantID: pID}, nil
}

type PlantRemoveHandler struct {
	assertExists UnitLoader
	repo         repositories.GrowingUnitRepository
	publisher    kernel.EventPublisher
}

func NewPlantRemoveHandler(assertExists UnitLoader, repo repositories.GrowingUnitRepository, publisher kernel.EventPublisher) *PlantRemoveHandler {
	return &PlantRemoveHandler{assertExists: assertExists, repo: repo, publisher: publisher}
}

func (h *PlantRemoveHandler) Handle(ctx context.Context, cmd PlantRemoveCommand) error {
	unit, err := h.assertExists.Execute(ctx, cmd.GrowingUnitID)
	if err != nil {
		return err
	}
	if _, err := unit.RemovePlant(cmd.PlantID, true); err != nil {
		return err
	}
	if err := h.repo.Save(ctx, unit); err != nil {
		return fmt.Errorf("save growing unit: %w", err)
	}
	if err := h.publisher.PublishAll(ctx, unit.PullEvents()); err != nil {
		return fmt.Errorf("publish growing unit events: %w", err)
	}
	return nil
}
