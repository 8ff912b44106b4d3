package commands

import (
	"context"
	"fmt"

	"github.com/ghuser/gardenhub/pkg/kernel"
	"github.com/ghuser/gardenhub/services/growingunit/domain/models"
	"github.com/ghuser/gardenhub/services/growingunit/domain/repositories"
)

type PlantAddCommand struct {
	GrowingUnitID kernel.GrowingUnitID
	Plant         models.NewPlantParams
}

func NewPlantAddCommand(growingUnitID string, in PlantInput) (PlantAddCommand, error) {
	guID, err := kernel.ParseGrowingUnitID(growingUnitID)
	if err != nil {
		return PlantAddCommand{}, err
	}
	params, err := in.params()
	if err != nil {
		return PlantAddCommand{}, err
	}
	return PlantAddCommand{GrowingUnitID: guID, Plant: params}, nil
}

type PlantAddHandler struct {
	assertExists UnitLoader
	repo         repositories.GrowingUnitRepository
	publisher    kernel.EventPublisher
}

func NewPlantAddHandler(assertExists UnitLoader, repo repositories.GrowingUnitRepository, publisher kernel.EventPublisher) *PlantAddHandler {
	return &PlantAddHandler{assertExists: assertExists, repo: repo, publisher: publisher}
}

// Handle adds the plant and returns its id. A full unit is left untouched.
func (h *PlantAddHandler) Handle(ctx context.Context, cmd PlantAddCommand) (kernel.PlantID, error) {
	unit, err := h.assertExists.Execute(ctx, cmd.GrowingUnitID)
	if err != nil {
		return kernel.PlantID{}, err
	}
	plant := models.NewPlant(cmd.Plant)
	if err := unit.AddPlant(plant, true); err != nil {
		return kernel.PlantID{}, err
	}
	if err := h.repo.Save(ctx, unit); err != nil {
		return kernel.PlantID{}, fmt.Errorf("save growing unit: %w", err)
	}
	if err := h.publisher.PublishAll(ctx, unit.PullEvents()); err != nil {
		return kernel.PlantID{}, fmt.Errorf("publish growing unit events: %w", err)
	}
	return plant.ID(), nil
}
