package commands

import (
	"context"
	"fmt"

	"github.com/ghuser/gardenhub/pkg/kernel"
	"github.com/ghuser/gardenhub/services/plantspecies/domain/models"
	"github.com/ghuser/gardenhub/services/plantspecies/domain/repositories"
)

type PlantSpeciesUpdateInput struct {
	ID             string                  `json:"-"`
	CommonName     kernel.Optional[string] `json:"commonName"`
	ScientificName kernel.Optional[string] `json:"scientificName"`
	Family         kernel.Optional[string] `json:"family"`
	Description    kernel.Optional[string] `json:"description"`
}

type PlantSpeciesUpdateCommand struct {
	ID    kernel.PlantSpeciesID
	Patch models.PlantSpeciesPatch
}

func NewPlantSpeciesUpdateCommand(in PlantSpeciesUpdateInput) (PlantSpeciesUpdateCommand, error) {
	id, err := kernel.ParsePlantSpeciesID(in.ID)
	if err != nil {
		return PlantSpeciesUpdateCommand{}, err
	}
	var patch models.PlantSpeciesPatch
	if patch.CommonName, err = kernel.MapOptional(in.CommonName, models.ValidateName); err != nil {
		return PlantSpeciesUpdateCommand{}, err
	}
	if patch.ScientificName, err = kernel.MapOptional(in.ScientificName, models.ValidateName); err != nil {
		return PlantSpeciesUpdateCommand{}, err
	}
	patch.Family = in.Family
	patch.Description = in.Description
	return PlantSpeciesUpdateCommand{ID: id, Patch: patch}, nil
}

type PlantSpeciesUpdateHandler struct {
	assertExists SpeciesLoader
	names        NameGuard
	repo         repositories.PlantSpeciesRepository
	publisher    kernel.EventPublisher
}

func NewPlantSpeciesUpdateHandler(
	assertExists SpeciesLoader,
	names NameGuard,
	repo repositories.PlantSpeciesRepository,
	publisher kernel.EventPublisher,
) *PlantSpeciesUpdateHandler {
	return &PlantSpeciesUpdateHandler{assertExists: assertExists, names: names, repo: repo, publisher: publisher}
}

// Handle checks the scientific name only when the patch sets one; a species
// may keep its own name.
func (h *PlantSpeciesUpdateHandler) Handle(ctx context.Context, cmd PlantSpeciesUpdateCommand) error {
	s, err := h.assertExists.Execute(ctx, cmd.ID)
	if err != nil {
		return err
	}
	if name, ok := cmd.Patch.ScientificName.Get(); ok {
		if err := h.names.Execute(ctx, name, s.ID()); err != nil {
			return err
		}
	}
	if err := s.Update(cmd.Patch, true); err != nil {
		return err
	}
	if err := h.repo.Save(ctx, s); err != nil {
		return fmt.Errorf("save plant species: %w", err)
	}
	if err := h.publisher.PublishAll(ctx, s.PullEvents()); err != nil {
		return fmt.Errorf("publish plant species events: %w", err)
	}
	return nil
}
