package commands

import (
	"context"
	"fmt"

	"github.com/ghuser/gardenhub/pkg/kernel"
	"github.com/ghuser/gardenhub/services/growingunit/domain/models"
	"github.com/ghuser/gardenhub/services/growingunit/domain/repositories"
)

// GrowingUnitCreateInput is the primitive request for a new unit. ID is optional.
type GrowingUnitCreateInput struct {
	ID         string                       `json:"id,omitempty"`
	LocationID *string                      `json:"locationId,omitempty"`
	Name       string                       `json:"name"`
	Type       string                       `json:"type"`
	Capacity   int                          `json:"capacity"`
	Dimensions *models.DimensionsPrimitives `json:"dimensions,omitempty"`
}

type GrowingUnitCreateCommand struct {
	Params models.NewGrowingUnitParams
}

func NewGrowingUnitCreateCommand(in GrowingUnitCreateInput) (GrowingUnitCreateCommand, error) {
	var p models.NewGrowingUnitParams
	if in.ID != "" {
		id, err := kernel.ParseGrowingUnitID(in.ID)
		if err != nil {
			return GrowingUnitCreateCommand{}, err
		}
		p.ID = id
	}
	locID, err := parseOptionalLocationID(in.LocationID)
	if err != nil {
		return GrowingUnitCreateCommand{}, err
	}
	p.LocationID = locID
	if p.Name, err = models.NewName(in.Name); err != nil {
		return GrowingUnitCreateCommand{}, err
	}
	if p.Type, err = models.ParseGrowingUnitType(in.Type); err != nil {
		return GrowingUnitCreateCommand{}, err
	}
	if p.Capacity, err = models.NewCapacity(in.Capacity); err != nil {
		return GrowingUnitCreateCommand{}, err
	}
	if p.Dimensions, err = parseOptionalDimensions(in.Dimensions); err != nil {
		return GrowingUnitCreateCommand{}, err
	}
	return GrowingUnitCreateCommand{Params: p}, nil
}

type GrowingUnitCreateHandler struct {
	repo      repositories.GrowingUnitRepository
	publisher kernel.EventPublisher
	locations LocationChecker
}

func NewGrowingUnitCreateHandler(repo repositories.GrowingUnitRepository, publisher kernel.EventPublisher, locations LocationChecker) *GrowingUnitCreateHandler {
	return &GrowingUnitCreateHandler{repo: repo, publisher: publisher, locations: locations}
}

// Handle creates the unit and returns its id.
func (h *GrowingUnitCreateHandler) Handle(ctx context.Context, cmd GrowingUnitCreateCommand) (kernel.GrowingUnitID, error) {
	if cmd.Params.LocationID != nil && h.locations != nil {
		if err := h.locations.AssertLocationExists(ctx, *cmd.Params.LocationID); err != nil {
			return kernel.GrowingUnitID{}, err
		}
	}

	unit := models.NewGrowingUnit(cmd.Params, true)
	if err := h.repo.Save(ctx, unit); err != nil {
		return kernel.GrowingUnitID{}, fmt.Errorf("save growing unit: %w", err)
	}
	if err := h.publisher.PublishAll(ctx, unit.PullEvents()); err != nil {
		return kernel.GrowingUnitID{}, fmt.Errorf("publish growing unit events: %w", err)
	}
	return unit.ID(), nil
}
