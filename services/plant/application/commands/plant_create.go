package commands

import (
	"context"
	"time"

	"github.com/ghuser/gardenhub/pkg/kernel"
	"github.com/ghuser/gardenhub/services/plant/domain/models"
	"github.com/ghuser/gardenhub/services/plant/domain/repositories"
)

type PlantCreateInput struct {
	ID          string     `json:"id,omitempty"`
	ContainerID string     `json:"containerId"`
	Name        string     `json:"name"`
	Species     string     `json:"species"`
	PlantedDate *time.Time `json:"plantedDate,omitempty"`
	Notes       *string    `json:"notes,omitempty"`
	Status      string     `json:"status,omitempty"`
}

type PlantCreateCommand struct {
	Params models.NewPlantParams
}

func NewPlantCreateCommand(in PlantCreateInput) (PlantCreateCommand, error) {
	var p models.NewPlantParams
	var err error
	if in.ID != "" {
		if p.ID, err = kernel.ParsePlantID(in.ID); err != nil {
			return PlantCreateCommand{}, err
		}
	}
	if p.ContainerID, err = kernel.ParseContainerID(in.ContainerID); err != nil {
		return PlantCreateCommand{}, err
	}
	if p.Name, err = models.ValidateName(in.Name); err != nil {
		return PlantCreateCommand{}, err
	}
	if p.Species, err = models.ValidateSpecies(in.Species); err != nil {
		return PlantCreateCommand{}, err
	}
	if in.Status != "" {
		if p.Status, err = kernel.ParsePlantStatus(in.Status); err != nil {
			return PlantCreateCommand{}, err
		}
	}
	p.PlantedDate = in.PlantedDate
	p.Notes = in.Notes
	return PlantCreateCommand{Params: p}, nil
}

type PlantCreateHandler struct {
	repo      repositories.PlantRepository
	publisher kernel.EventPublisher
}

func NewPlantCreateHandler(repo repositories.PlantRepository, publisher kernel.EventPublisher) *PlantCreateHandler {
	return &PlantCreateHandler{repo: repo, publisher: publisher}
}

func (h *PlantCreateHandler) Handle(ctx context.Context, cmd PlantCreateCommand) (kernel.PlantID, error) {
	p := models.NewPlantAggregate(cmd.Params, true)
	if err := saveAndPublish(ctx, h.repo, h.publisher, p); err != nil {
		return kernel.PlantID{}, err
	}
	return p.ID(), nil
}
