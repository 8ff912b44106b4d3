package commands

import (
	"context"

	"github.com/ghuser/gardenhub/pkg/kernel"
	"github.com/ghuser/gardenhub/services/plant/domain/repositories"
)

type PlantChangeStatusCommand struct {
	ID     kernel.PlantID
	Status kernel.PlantStatus
}

func NewPlantChangeStatusCommand(id, status string) (PlantChangeStatusCommand, error) {
	plantID, err := kernel.ParsePlantID(id)
	if err != nil {
		return PlantChangeStatusCommand{}, err
	}
	s, err := kernel.ParsePlantStatus(status)
	if err != nil {
		return PlantChangeStatusCommand{}, err
	}
	return PlantChangeStatusCommand{ID: plantID, Status: s}, nil
}

type PlantChangeStatusHandler struct {
	assertExists PlantLoader
	repo         repositories.PlantRepository
	publisher    kernel.EventPublisher
}

func NewPlantChangeStatusHandler(assertExists PlantLoader, repo repositories.PlantRepository, publisher kernel.EventPublisher) *PlantChangeStatusHandler {
	return &PlantChangeStatusHandler{assertExists: assertExists, repo: repo, publisher: publisher}
}

// Handle is a no-op write when the plant already has the status.
func (h *PlantChangeStatusHandler) Handle(ctx context.Context, cmd PlantChangeStatusCommand) error {
	p, err := h.assertExists.Execute(ctx, cmd.ID)
	if err != nil {
		return err
	}
	if p.Status() == cmd.Status {
		return nil
	}
	p.ChangeStatus(cmd.Status, true)
	return saveAndPublish(ctx, h.repo, h.publisher, p)
}
