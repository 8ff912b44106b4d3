// Package models holds the container-based plant aggregate.
package models

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/ghuser/gardenhub/pkg/kernel"
	"github.com/ghuser/gardenhub/services/plant/domain"
	"github.com/ghuser/gardenhub/services/plant/domain/events"
)

const maxTextLength = 255

// ValidateName trims s and checks it is 1..255 characters.
func ValidateName(s string) (string, error) {
	return validateText("name", s)
}

// ValidateSpecies applies the same rules as ValidateName.
func ValidateSpecies(s string) (string, error) {
	return validateText("species", s)
}

func validateText(field, s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("%w: %s is required", domain.ErrInvalidPlant, field)
	}
	if utf8.RuneCountInString(s) > maxTextLength {
		return "", fmt.Errorf("%w: %s must not exceed %d characters", domain.ErrInvalidPlant, field, maxTextLength)
	}
	return s, nil
}

// PlantAggregate is a plant that lives in a container rather than a growing unit.
type PlantAggregate struct {
	kernel.AggregateRoot

	id          kernel.PlantID
	containerID kernel.ContainerID
	name        string
	species     string
	plantedDate *time.Time
	notes       *string
	status      kernel.PlantStatus
	createdAt   time.Time
	updatedAt   time.Time
}

type PlantPrimitives struct {
	ID          string     `json:"id"`
	ContainerID string     `json:"containerId"`
	Name        string     `json:"name"`
	Species     string     `json:"species"`
	PlantedDate *time.Time `json:"plantedDate"`
	Notes       *string    `json:"notes"`
	Status      string     `json:"status"`
	Version     int        `json:"version"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

type NewPlantParams struct {
	ID          kernel.PlantID
	ContainerID kernel.ContainerID
	Name        string
	Species     string
	PlantedDate *time.Time
	Notes       *string
	Status      kernel.PlantStatus
}

// NewPlantAggregate builds a plant from validated params. An empty status
// defaults to PLANTED.
func NewPlantAggregate(p NewPlantParams, emit bool) *PlantAggregate {
	id := p.ID
	if id.IsZero() {
		id = kernel.NewPlantID()
	}
	status := p.Status
	if status == "" {
		status = kernel.PlantStatusPlanted
	}
	now := time.Now().UTC()
	pl := &PlantAggregate{
		id:          id,
		containerID: p.ContainerID,
		name:        p.Name,
		species:     p.Species,
		plantedDate: p.PlantedDate,
		notes:       p.Notes,
		status:      status,
		createdAt:   now,
		updatedAt:   now,
	}
	if emit {
		pl.record(events.TopicPlantCreated)
	}
	return pl
}

func RehydratePlantAggregate(p PlantPrimitives) (*PlantAggregate, error) {
	id, err := kernel.ParsePlantID(p.ID)
	if err != nil {
		return nil, err
	}
	containerID, err := kernel.ParseContainerID(p.ContainerID)
	if err != nil {
		return nil, err
	}
	status, err := kernel.ParsePlantStatus(p.Status)
	if err != nil {
		return nil, err
	}
	pl := &PlantAggregate{
		id:          id,
		containerID: containerID,
		name:        p.Name,
		species:     p.Species,
		plantedDate: p.PlantedDate,
		notes:       p.Notes,
		status:      status,
		createdAt:   p.CreatedAt,
		updatedAt:   p.UpdatedAt,
	}
	pl.MarkPersisted(p.Version)
	return pl, nil
}

func (p *PlantAggregate) ID() kernel.PlantID              { return p.id }
func (p *PlantAggregate) ContainerID() kernel.ContainerID { return p.containerID }
func (p *PlantAggregate) Name() string                    { return p.name }
func (p *PlantAggregate) Species() string                 { return p.species }
func (p *PlantAggregate) PlantedDate() *time.Time         { return p.plantedDate }
func (p *PlantAggregate) Notes() *string                  { return p.notes }
func (p *PlantAggregate) Status() kernel.PlantStatus      { return p.status }

// PlantPatch is a partial update. plantedDate and notes may be cleared.
type PlantPatch struct {
	ContainerID kernel.Optional[kernel.ContainerID]
	Name        kernel.Optional[string]
	Species     kernel.Optional[string]
	PlantedDate kernel.Optional[time.Time]
	Notes       kernel.Optional[string]
}

func (p *PlantAggregate) Update(patch PlantPatch, emit bool) error {
	if patch.ContainerID.IsNull() || patch.Name.IsNull() || patch.Species.IsNull() {
		return fmt.Errorf("%w: containerId, name and species cannot be cleared", domain.ErrInvalidPlant)
	}
	if v, ok := patch.ContainerID.Get(); ok {
		p.containerID = v
	}
	if v, ok := patch.Name.Get(); ok {
		p.name = v
	}
	if v, ok := patch.Species.Get(); ok {
		p.species = v
	}
	if patch.PlantedDate.IsNull() {
		p.plantedDate = nil
	} else if v, ok := patch.PlantedDate.Get(); ok {
		p.plantedDate = &v
	}
	if patch.Notes.IsNull() {
		p.notes = nil
	} else if v, ok := patch.Notes.Get(); ok {
		p.notes = &v
	}
	p.updatedAt = time.Now().UTC()
	if emit {
		p.record(events.TopicPlantUpdated)
	}
	return nil
}

// ChangeStatus moves the plant to status. Setting the current status again
// records nothing.
func (p *PlantAggregate) ChangeStatus(status kernel.PlantStatus, emit bool) {
	if p.status == status {
		return
	}
	p.status = status
	p.updatedAt = time.Now().UTC()
	if emit {
		p.record(events.TopicPlantStatusChanged)
	}
}

func (p *PlantAggregate) Delete(emit bool) {
	if emit {
		p.record(events.TopicPlantDeleted)
	}
}

func (p *PlantAggregate) Primitives() PlantPrimitives {
	return PlantPrimitives{
		ID:          p.id.String(),
		ContainerID: p.containerID.String(),
		Name:        p.name,
		Species:     p.species,
		PlantedDate: p.plantedDate,
		Notes:       p.notes,
		Status:      p.status.String(),
		Version:     p.Version(),
		CreatedAt:   p.createdAt,
		UpdatedAt:   p.updatedAt,
	}
}

func (p *PlantAggregate) record(eventType string) {
	p.Record(kernel.NewEvent(events.AggregateType, p.id.String(), eventType, p.Primitives()))
}
