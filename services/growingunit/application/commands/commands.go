// Package commands holds the growing unit write use cases. Each command is a
// plain data carrier built by a New<X>Command constructor that turns primitive
// input into validated value objects, so a malformed request fails before any
// handler runs.
//
// Every handler follows the same order: assert-exists, mutate, save, publish.
// Events are published only after the save succeeded.
package commands

import (
	"context"
	"time"

	"github.com/ghuser/gardenhub/pkg/kernel"
	"github.com/ghuser/gardenhub/services/growingunit/domain/models"
)

// LocationChecker asserts that a location exists. Implemented by the location
// context; nil disables the check.
type LocationChecker interface {
	AssertLocationExists(ctx context.Context, id kernel.LocationID) error
}

// UnitLoader is the assert-exists collaborator used by every handler.
type UnitLoader interface {
	Execute(ctx context.Context, id kernel.GrowingUnitID) (*models.GrowingUnit, error)
}

func parseOptionalLocationID(s *string) (*kernel.LocationID, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	id, err := kernel.ParseLocationID(*s)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func parseOptionalDimensions(p *models.DimensionsPrimitives) (*models.Dimensions, error) {
	if p == nil {
		return nil, nil
	}
	d, err := models.NewDimensions(*p)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// PlantInput is the primitive form of a plant carried by PlantAdd.
type PlantInput struct {
	ID          string     `json:"id,omitempty"`
	Name        string     `json:"name"`
	Species     string     `json:"species"`
	PlantedDate *time.Time `json:"plantedDate,omitempty"`
	Notes       *string    `json:"notes,omitempty"`
	Status      string     `json:"status,omitempty"`
}

func (in PlantInput) params() (models.NewPlantParams, error) {
	var p models.NewPlantParams
	if in.ID != "" {
		id, err := kernel.ParsePlantID(in.ID)
		if err != nil {
			return p, err
		}
		p.ID = id
	}
	name, err := models.NewName(in.Name)
	if err != nil {
		return p, err
	}
	p.Name = name
	p.Species = in.Species
	p.PlantedDate = in.PlantedDate
	p.Notes = in.Notes
	if in.Status != "" {
		status, err := kernel.ParsePlantStatus(in.Status)
		if err != nil {
			return p, err
		}
		p.Status = status
	}
	return p, nil
}

// PlantPatchInput is the primitive form of a partial plant update.
type PlantPatchInput struct {
	Name        kernel.Optional[string]    `json:"name"`
	Species     kernel.Optional[string]    `json:"species"`
	PlantedDate kernel.Optional[time.Time] `json:"plantedDate"`
	Notes       kernel.Optional[string]    `json:"notes"`
	Status      kernel.Optional[string]    `json:"status"`
}

func (in PlantPatchInput) patch() (models.PlantPatch, error) {
	name, err := kernel.MapOptional(in.Name, models.NewName)
	if err != nil {
		return models.PlantPatch{}, err
	}
	status, err := kernel.MapOptional(in.Status, kernel.ParsePlantStatus)
	if err != nil {
		return models.PlantPatch{}, err
	}
	return models.PlantPatch{
		Name:        name,
		Species:     in.Species,
		PlantedDate: in.PlantedDate,
		Notes:       in.Notes,
		Status:      status,
	}, nil
}
