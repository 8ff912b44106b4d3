package commands

import (
	"context"
	"time"

	"github.com/ghuser/gardenhub/pkg/kernel"
	"github.com/ghuser/gardenhub/services/plant/domain/models"
	"github.com/ghuser/gardenhub/services/plant/domain/repositories"
)

// PlantUpdateInput is a partial update. Status changes go through
// PlantChangeStatus instead.
type PlantUpdateInput struct {
	ID          string                     `json:"-"`
	ContainerID kernel.Optional[string]    `json:"containerId"`
	Name        kernel.Optional[string]    `json:"name"`
	Species     kernel.Optional[string]    `json:"species"`
	PlantedDate kernel.Optional[time.Time] `json:"plantedDate"`
	Notes       kernel.Optional[string]    `json:"notes"`
}

type PlantUpdateCommand struct {
	ID    kernel.PlantID
	Patch models.PlantPatch
}

func NewPlantUpdateCommand(in PlantUpdateInput) (PlantUpdateCommand, error) {
	id, err := kernel.ParsePlantID(in.ID)
	if err != nil {
		return PlantUpdateCommand{}, err
	}
	var patch models.PlantPatch
	if patch.ContainerID, err = kernel.MapOptional(in.ContainerID, kernel.ParseContainerID); err != nil {
		return PlantUpdateCommand{}, err
	}
	if patch.Name, err = kernel.MapOptional(in.Name, models.ValidateName); err != nil {
		return PlantUpdateCommand{}, err
	}
	if patch.Species, err = kernel.MapOptional(in.Species, models.ValidateSpecies); err != nil {
		return PlantUpdateCommand{}, err
	}
	patch.PlantedDate = in.PlantedDate
	patch.Notes = in.Notes
	return PlantUpdateCommand{ID: id, Patch: patch}, nil
}

type PlantUpdateHandler struct {
	assertExists PlantLoader
	repo         repositories.PlantRepository
	publisher    kernel.EventPublisher
}

func NewPlantUpdateHandler(assertExists PlantLoader, repo repositories.PlantRepository, publisher kernel.EventPublisher) *PlantUpdateHandler {
	return &PlantUpdateHandler{assertExists: assertExists, repo: repo, publisher: publisher}
}

func (h *PlantUpdateHandler) Handle(ctx context.Context, cmd PlantUpdateCommand) error {
	p, err := h.assertExists.Execute(ctx, cmd.ID)
	if err != nil {
		return err
	}
	if err := p.Update(cmd.Patch, true); err != nil {
		return err
	}
	return saveAndPublish(ctx, h.repo, h.publisher, p)
}
