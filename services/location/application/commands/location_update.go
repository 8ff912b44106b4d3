package commands

import (
	"context"
	"fmt"

	"github.com/ghuser/gardenhub/pkg/kernel"
	"github.com/ghuser/gardenhub/services/location/domain/models"
	"github.com/ghuser/gardenhub/services/location/domain/repositories"
)

// LocationUpdateInput is a partial update; null clears the description.
type LocationUpdateInput struct {
	ID          string                  `json:"-"`
	Name        kernel.Optional[string] `json:"name"`
	Type        kernel.Optional[string] `json:"type"`
	Description kernel.Optional[string] `json:"description"`
}

type LocationUpdateCommand struct {
	ID    kernel.LocationID
	Patch models.LocationPatch
}

func NewLocationUpdateCommand(in LocationUpdateInput) (LocationUpdateCommand, error) {
	id, err := kernel.ParseLocationID(in.ID)
	if err != nil {
		return LocationUpdateCommand{}, err
	}
	var patch models.LocationPatch
	if patch.Name, err = kernel.MapOptional(in.Name, models.ValidateName); err != nil {
		return LocationUpdateCommand{}, err
	}
	if patch.Type, err = kernel.MapOptional(in.Type, models.ParseLocationType); err != nil {
		return LocationUpdateCommand{}, err
	}
	patch.Description = in.Description
	return LocationUpdateCommand{ID: id, Patch: patch}, nil
}

type LocationUpdateHandler struct {
	assertExists LocationLoader
	repo         repositories.LocationRepository
	publisher    kernel.EventPublisher
}

func NewLocationUpdateHandler(assertExists LocationLoader, repo repositories.LocationRepository, publisher kernel.EventPublisher) *LocationUpdateHandler {
	return &LocationUpdateHandler{assertExists: assertExists, repo: repo, publisher: publisher}
}

func (h *LocationUpdateHandler) Handle(ctx context.Context, cmd LocationUpdateCommand) error {
	l, err := h.assertExists.Execute(ctx, cmd.ID)
	if err != nil {
		return err
	}
	if err := l.Update(cmd.Patch, true); err != nil {
		return err
	}
	if err := h.repo.Save(ctx, l); err != nil {
		return fmt.Errorf("save location: %w", err)
	}
	if err := h.publisher.PublishAll(ctx, l.PullEvents()); err != nil {
		return fmt.Errorf("publish location events: %w", err)
	}
	return nil
}
