package commands

import (
	"context"
	"fmt"

	"github.com/ghuser/gardenhub/pkg/kernel"
	"github.com/ghuser/gardenhub/services/location/domain"
	"github.com/ghuser/gardenhub/services/location/domain/repositories"
)

type LocationDeleteCommand struct {
	ID kernel.LocationID
}

func NewLocationDeleteCommand(id string) (LocationDeleteCommand, error) {
	locID, err := kernel.ParseLocationID(id)
	if err != nil {
		return LocationDeleteCommand{}, err
	}
	return LocationDeleteCommand{ID: locID}, nil
}

type LocationDeleteHandler struct {
	assertExists LocationLoader
	dependents   DependentGrowingUnitCounter
	repo         repositories.LocationRepository
	publisher    kernel.EventPublisher
}

func NewLocationDeleteHandler(
	assertExists LocationLoader,
	dependents DependentGrowingUnitCounter,
	repo repositories.LocationRepository,
	publisher kernel.EventPublisher,
) *LocationDeleteHandler {
	return &LocationDeleteHandler{assertExists: assertExists, dependents: dependents, repo: repo, publisher: publisher}
}

// Handle refuses to delete a location while growing units still reference it.
func (h *LocationDeleteHandler) Handle(ctx context.Context, cmd LocationDeleteCommand) error {
	l, err := h.assertExists.Execute(ctx, cmd.ID)
	if err != nil {
		return err
	}
	n, err := h.dependents.CountByLocation(ctx, cmd.ID)
	if err != nil {
		return fmt.Errorf("count dependent growing units: %w", err)
	}
	if n > 0 {
		return &domain.LocationHasDependentGrowingUnitsError{LocationID: cmd.ID, Count: n}
	}
	l.Delete(true)
	if err := h.repo.Delete(ctx, l); err != nil {
		return fmt.Errorf("delete location: %w", err)
	}
	if err := h.publisher.PublishAll(ctx, l.PullEvents()); err != nil {
		return fmt.Errorf("publish location events: %w", err)
	}
	return nil
}
