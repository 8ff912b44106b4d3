package commands

import (
	"context"
	"fmt"

	"github.com/ghuser/gardenhub/pkg/kernel"
	"github.com/ghuser/gardenhub/services/growingunit/domain/models"
	"github.com/ghuser/gardenhub/services/growingunit/domain/repositories"
)

type PlantUpdateCommand struct {
	GrowingUnitID kernel.GrowingUnitID
	PlantID       kernel.PlantID
	Patch         models.PlantPatch
}

func NewPlantUpdateCommand(growingUnitID, plantID string, in PlantPatchInput) (PlantUpdateCommand, error) {
	guID, err := kernel.ParseGrowingUnitID(growingUnitID)
	if err != nil {
		return PlantUpdateCommand{}, err
	}
	pID, err := kernel.ParsePlantID(plantID)
	if err != nil {
		return PlantUpdateCommand{}, err
	}
	patch, err := in.patch()
	if err != nil {
		return PlantUpdateCommand{}, err
	}
	return PlantUpdateCommand{GrowingUnitID: guID, PlantID: pID, Patch: patch}, nil
}

type PlantUpdateHandler struct {
	assertExists UnitLoader
	repo         repositories.GrowingUnitRepository
	publisher    kernel.EventPublisher
}

func NewPlantUpdateHandler(assertExists UnitLoader, repo repositories.GrowingUnitRepository, publisher kernel.EventPublisher) *PlantUpdateHandler {
	return &PlantUpdateHandler{assertExists: assertExists, repo: repo, publisher: publisher}
}

func (h *PlantUpdateHandler) Handle(ctx context.Context, cmd PlantUpdateCommand) error {
	unit, err := h.assertExists.Execute(ctx, cmd.GrowingUnitID)
	if err != nil {
		return err
	}
	if _, err := unit.UpdatePlant(cmd.PlantID, cmd.Patch, true); err != nil {
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
