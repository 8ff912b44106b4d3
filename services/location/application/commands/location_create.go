package commands

import (
	"context"
	"fmt"

	"github.com/ghuser/gardenhub/pkg/kernel"
	"github.com/ghuser/gardenhub/services/location/domain/models"
	"github.com/ghuser/gardenhub/services/location/domain/repositories"
)

type LocationCreateInput struct {
	ID          string  `json:"id,omitempty"`
	Name        string  `json:"name"`
	Type        string  `json:"type"`
	Description *string `json:"description,omitempty"`
}

type LocationCreateCommand struct {
	Params models.NewLocationParams
}

func NewLocationCreateCommand(in LocationCreateInput) (LocationCreateCommand, error) {
	var p models.NewLocationParams
	var err error
	if in.ID != "" {
		if p.ID, err = kernel.ParseLocationID(in.ID); err != nil {
			return LocationCreateCommand{}, err
		}
	}
	if p.Name, err = models.ValidateName(in.Name); err != nil {
		return LocationCreateCommand{}, err
	}
	if p.Type, err = models.ParseLocationType(in.Type); err != nil {
		return LocationCreateCommand{}, err
	}
	p.Description = in.Description
	return LocationCreateCommand{Params: p}, nil
}

type LocationCreateHandler struct {
	repo      repositories.LocationRepository
	publisher kernel.EventPublisher
}

func NewLocationCreateHandler(repo repositories.LocationRepository, publisher kernel.EventPublisher) *LocationCreateHandler {
	return &LocationCreateHandler{repo: repo, publisher: publisher}
}

func (h *LocationCreateHandler) Handle(ctx context.Context, cmd LocationCreateCommand) (kernel.LocationID, error) {
	l := models.NewLocation(cmd.Params, true)
	if err := h.repo.Save(ctx, l); err != nil {
		return kernel.LocationID{}, fmt.Errorf("save location: %w", err)
	}
	if err := h.publisher.PublishAll(ctx, l.PullEvents()); err != nil {
		return kernel.LocationID{}, fmt.Errorf("publish location events: %w", err)
	}
	return l.ID(), nil
}
