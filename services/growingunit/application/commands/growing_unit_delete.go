package commands

import (
	"context"
	"fmt"

	"github.com/ghuser/gardenhub/pkg/kernel"
	"github.com/ghuser/gardenhub/services/growingunit/domain/repositories"
)

type GrowingUnitDeleteCommand struct {
	ID kernel.GrowingUnitID
}

func NewGrowingUnitDeleteCommand(id string) (GrowingUnitDeleteCommand, error) {
	guID, err := kernel.ParseGrowingUnitID(id)
	if err != nil {
		return GrowingUnitDeleteCommand{}, err
	}
	return GrowingUnitDeleteCommand{ID: guID}, nil
}

type GrowingUnitDeleteHandler struct {
	assertExists UnitLoader
	repo         repositories.GrowingUnitRepository
	publisher    kernel.EventPublisher
}

func NewGrowingUnitDeleteHandler(assertExists UnitLoader, repo repositories.GrowingUnitRepository, publisher kernel.EventPublisher) *GrowingUnitDeleteHandler {
	return &GrowingUnitDeleteHandler{assertExists: assertExists, repo: repo, publisher: publisher}
}

// Handle deletes the unit together with the plants it holds.
func (h *GrowingUnitDeleteHandler) Handle(ctx context.Context, cmd GrowingUnitDeleteCommand) error {
	unit, err := h.assertExists.Execute(ctx, cmd.ID)
	if err != nil {
		return err
	}
	unit.Delete(true)
	if err := h.repo.Delete(ctx, unit); err != nil {
		return fmt.Errorf("delete growing unit: %w", err)
	}
	if err := h.publisher.PublishAll(ctx, unit.PullEvents()); err != nil {
		return fmt.Errorf("publish growing unit events: %w", err)
	}
	return nil
}
