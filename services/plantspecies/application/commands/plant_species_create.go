package commands

import (
	"context"
	"fmt"

	"github.com/ghuser/gardenhub/pkg/kernel"
	"github.com/ghuser/gardenhub/services/plantspecies/domain/models"
	"github.com/ghuser/gardenhub/services/plantspecies/domain/repositories"
)

type PlantSpeciesCreateInput struct {
	ID             string  `json:"id,omitempty"`
	CommonName     string  `json:"commonName"`
	ScientificName string  `json:"scientificName"`
	Family         *string `json:"family,omitempty"`
	Description    *string `json:"description,omitempty"`
}

type PlantSpeciesCreateCommand struct {
	Params models.NewPlantSpeciesParams
}

func NewPlantSpeciesCreateCommand(in PlantSpeciesCreateInput) (PlantSpeciesCreateCommand, error) {
	var p models.NewPlantSpeciesParams
	var err error
	if in.ID != "" {
		if p.ID, err = kernel.ParsePlantSpeciesID(in.ID); err != nil {
			return PlantSpeciesCreateCommand{}, err
		}
	}
	if p.CommonName, err = models.ValidateName(in.CommonName); err != nil {
		return PlantSpeciesCreateCommand{}, err
	}
	if p.ScientificName, err = models.ValidateName(in.ScientificName); err != nil {
		return PlantSpeciesCreateCommand{}, err
	}
	p.Family = in.Family
	p.Description = in.Description
	return PlantSpeciesCreateCommand{Params: p}, nil
}

type PlantSpeciesCreateHandler struct {
	names     NameGuard
	repo      repositories.PlantSpeciesRepository
	publisher kernel.EventPublisher
}

func NewPlantSpeciesCreateHandler(names NameGuard, repo repositories.PlantSpeciesRepository, publisher kernel.EventPublisher) *PlantSpeciesCreateHandler {
	return &PlantSpeciesCreateHandler{names: names, repo: repo, publisher: publisher}
}

func (h *PlantSpeciesCreateHandler) Handle(ctx context.Context, cmd PlantSpeciesCreateCommand) (kernel.PlantSpeciesID, error) {
	if err := h.names.Execute(ctx, cmd.Params.ScientificName, cmd.Params.ID); err != nil {
		return kernel.PlantSpeciesID{}, err
	}
	s := models.NewPlantSpecies(cmd.Params, true)
	if err := h.repo.Save(ctx, s); err != nil {
		return kernel.PlantSpeciesID{}, fmt.Errorf("save plant species: %w", err)
	}
	if err := h.publisher.PublishAll(ctx, s.PullEvents()); err != nil {
		return kernel.PlantSpeciesID{}, fmt.Errorf("publish plant species events: %w", err)
	}
	return s.ID(), nil
}
