package commands

import (
	"context"
	"fmt"

	"github.com/ghuser/gardenhub/pkg/kernel"
	"github.com/ghuser/gardenhub/services/growingunit/domain/models"
	"github.com/ghuser/gardenhub/services/growingunit/domain/repositories"
)

// GrowingUnitUpdateInput is a partial update: absent keys are left unchanged,
// null clears locationId or dimensions.
type GrowingUnitUpdateInput struct {
	ID         string                                       `json:"-"`
	LocationID kernel.Optional[string]                      `json:"locationId"`
	Name       kernel.Optional[string]                      `json:"name"`
	Type       kernel.Optional[string]                      `json:"type"`
	Capacity   kernel.Optional[int]                         `json:"capacity"`
	Dimensions kernel.Optional[models.DimensionsPrimitives] `json:"dimensions"`
}

type GrowingUnitUpdateCommand struct {
	ID    kernel.GrowingUnitID
	Patch models.GrowingUnitPatch
}

func NewGrowingUnitUpdateCommand(in GrowingUnitUpdateInput) (GrowingUnitUpdateCommand, error) {
	id, err := kernel.ParseGrowingUnitID(in.ID)
	if err != nil {
		return GrowingUnitUpdateCommand{}, err
	}
	var patch models.GrowingUnitPatch
	if patch.LocationID, err = kernel.MapOptional(in.LocationID, kernel.ParseLocationID); err != nil {
		return GrowingUnitUpdateCommand{}, err
	}
	if patch.Name, err = kernel.MapOptional(in.Name, models.NewName); err != nil {
		return GrowingUnitUpdateCommand{}, err
	}
	if patch.Type, err = kernel.MapOptional(in.Type, models.ParseGrowingUnitType); err != nil {
		return GrowingUnitUpdateCommand{}, err
	}
	if patch.Capacity, err = kernel.MapOptional(in.Capacity, models.NewCapacity); err != nil {
		return GrowingUnitUpdateCommand{}, err
	}
	if patch.Dimensions, err = kernel.MapOptional(in.Dimensions, models.NewDimensions); err != nil {
		return GrowingUnitUpdateCommand{}, err
	}
	return GrowingUnitUpdateCommand{ID: id, Patch: patch}, nil
}

type GrowingUnitUpdateHandler struct {
	assertExists UnitLoader
	repo         repositories.GrowingUnitRepository
	publisher    kernel.EventPublisher
	locations    LocationChecker
}

func NewGrowingUnitUpdateHandler(assertExists UnitLoader, repo repositories.GrowingUnitRepository, publisher kernel.EventPublisher, locations LocationChecker) *GrowingUnitUpdateHandler {
	return &GrowingUnitUpdateHandler{assertExists: assertExists, repo: repo, publisher: publisher, locations: locations}
}

func (h *GrowingUnitUpdateHandler) Handle(ctx context.Context, cmd GrowingUnitUpdateCommand) error {
	unit, err := h.assertExists.Execute(ctx, cmd.ID)
	if err != nil {
		return err
	}
	if locID, ok := cmd.Patch.LocationID.Get(); ok && h.locations != nil {
		if err := h.locations.AssertLocationExists(ctx, locID); err != nil {
			return err
		}
	}

	if err := unit.Update(cmd.Patch, true); err != nil {
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
