package commands

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"

	"github.com/ghuser/gardenhub/pkg/kernel"
	"github.com/ghuser/gardenhub/pkg/telemetry"
	"github.com/ghuser/gardenhub/services/growingunit/domain/repositories"
	"github.com/ghuser/gardenhub/services/growingunit/domain/services"
)

// PlantTransplantInput is the request body of POST /api/growing-units/transplants.
type PlantTransplantInput struct {
	SourceGrowingUnitID string `json:"sourceGrowingUnitId"`
	TargetGrowingUnitID string `json:"targetGrowingUnitId"`
	PlantID             string `json:"plantId"`
}

type PlantTransplantCommand struct {
	SourceGrowingUnitID kernel.GrowingUnitID
	TargetGrowingUnitID kernel.GrowingUnitID
	PlantID             kernel.PlantID
}

func NewPlantTransplantCommand(in PlantTransplantInput) (PlantTransplantCommand, error) {
	source, err := kernel.ParseGrowingUnitID(in.SourceGrowingUnitID)
	if err != nil {
		return PlantTransplantCommand{}, err
	}
	target, err := kernel.ParseGrowingUnitID(in.TargetGrowingUnitID)
	if err != nil {
		return PlantTransplantCommand{}, err
	}
	plantID, err := kernel.ParsePlantID(in.PlantID)
	if err != nil {
		return PlantTransplantCommand{}, err
	}
	return PlantTransplantCommand{SourceGrowingUnitID: source, TargetGrowingUnitID: target, PlantID: plantID}, nil
}

type PlantTransplantHandler struct {
	assertExists UnitLoader
	transplant   *services.PlantTransplantService
	repo         repositories.GrowingUnitRepository
	publisher    kernel.EventPublisher
	transplanted metric.Int64Counter
}

func NewPlantTransplantHandler(assertExists UnitLoader, transplant *services.PlantTransplantService, repo repositories.GrowingUnitRepository, publisher kernel.EventPublisher) *PlantTransplantHandler {
	return &PlantTransplantHandler{
		assertExists: assertExists,
		transplant:   transplant,
		repo:         repo,
		publisher:    publisher,
		transplanted: telemetry.Counter("garden.plants.transplanted", "Plants moved between growing units"),
	}
}

// Handle moves a plant between two units. Both units are saved in one
// transaction before any event is published; a failed precondition leaves
// both units unchanged and nothing is saved.
func (h *PlantTransplantHandler) Handle(ctx context.Context, cmd PlantTransplantCommand) (err error) {
	ctx, span := telemetry.Tracer().Start(ctx, "growingunit.PlantTransplant")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()
	span.SetAttributes(
		attribute.String("garden.source_growing_unit_id", cmd.SourceGrowingUnitID.String()),
		attribute.String("garden.target_growing_unit_id", cmd.TargetGrowingUnitID.String()),
		attribute.String("garden.plant_id", cmd.PlantID.String()),
	)

	source, err := h.assertExists.Execute(ctx, cmd.SourceGrowingUnitID)
	if err != nil {
		return err
	}
	target, err := h.assertExists.Execute(ctx, cmd.TargetGrowingUnitID)
	if err != nil {
		return err
	}

	if _, err := h.transplant.Execute(services.TransplantParams{Source: source, Target: target, PlantID: cmd.PlantID}); err != nil {
		return err
	}

	if err := h.repo.SaveAll(ctx, source, target); err != nil {
		return fmt.Errorf("save transplanted growing units: %w", err)
	}
	h.transplanted.Add(ctx, 1)

	if err := h.publisher.PublishAll(ctx, source.PullEvents()); err != nil {
		return fmt.Errorf("publish source events: %w", err)
	}
	if err := h.publisher.PublishAll(ctx, target.PullEvents()); err != nil {
		return fmt.Errorf("publish target events: %w", err)
	}
	return nil
}
