package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/ghuser/gardenhub/pkg/kernel"
	"github.com/ghuser/gardenhub/services/growingunit/domain"
)

// Plant is a child entity of GrowingUnit. It is owned by at most one unit;
// growingUnitID is a back-reference kept in sync by GrowingUnit.AddPlant.
type Plant struct {
	id            kernel.PlantID
	growingUnitID *kernel.GrowingUnitID
	name          Name
	species       string
	plantedDate   *time.Time
	notes         *string
	status        kernel.PlantStatus
	createdAt     time.Time
	updatedAt     time.Time
}

// PlantPrimitives is the serialisable form of a Plant.
type PlantPrimitives struct {
	ID            string     `json:"id"`
	GrowingUnitID *string    `json:"growingUnitId"`
	Name          string     `json:"name"`
	Species       string     `json:"species"`
	PlantedDate   *time.Time `json:"plantedDate"`
	Notes         *string    `json:"notes"`
	Status        string     `json:"status"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// NewPlantParams carries the validated fields of a new plant.
type NewPlantParams struct {
	ID          kernel.PlantID
	Name        Name
	Species     string
	PlantedDate *time.Time
	Notes       *string
	Status      kernel.PlantStatus
}

// NewPlant builds an unattached plant. A zero ID is replaced with a fresh one
// and an empty status defaults to PLANTED.
func NewPlant(p NewPlantParams) *Plant {
	id := p.ID
	if id.IsZero() {
		id = kernel.NewPlantID()
	}
	status := p.Status
	if status == "" {
		status = kernel.PlantStatusPlanted
	}
	now := time.Now().UTC()
	return &Plant{
		id:          id,
		name:        p.Name,
		species:     strings.TrimSpace(p.Species),
		plantedDate: p.PlantedDate,
		notes:       p.Notes,
		status:      status,
		createdAt:   now,
		updatedAt:   now,
	}
}

// RehydratePlant rebuilds a plant from stored primitives.
func RehydratePlant(p PlantPrimitives) (*Plant, error) {
	id, err := kernel.ParsePlantID(p.ID)
	if err != nil {
		return nil, err
	}
	name, err := NewName(p.Name)
	if err != nil {
		return nil, err
	}
	status, err := kernel.ParsePlantStatus(p.Status)
	if err != nil {
		return nil, err
	}
	plant := &Plant{
		id:          id,
		name:        name,
		species:     p.Species,
		plantedDate: p.PlantedDate,
		notes:       p.Notes,
		status:      status,
		createdAt:   p.CreatedAt,
		updatedAt:   p.UpdatedAt,
	}
	if p.GrowingUnitID != nil {
		guID, err := kernel.ParseGrowingUnitID(*p.GrowingUnitID)
		if err != nil {
			return nil, err
		}
		plant.growingUnitID = &guID
	}
	return plant, nil
}

func (p *Plant) ID() kernel.PlantID                   { return p.id }
func (p *Plant) GrowingUnitID() *kernel.GrowingUnitID { return p.growingUnitID }
func (p *Plant) Name() Name                           { return p.name }
func (p *Plant) Species() string                      { return p.species }
func (p *Plant) PlantedDate() *time.Time              { return p.plantedDate }
func (p *Plant) Notes() *string                       { return p.notes }
func (p *Plant) Status() kernel.PlantStatus           { return p.status }
func (p *Plant) CreatedAt() time.Time                 { return p.createdAt }
func (p *Plant) UpdatedAt() time.Time                 { return p.updatedAt }

// PlantPatch lists the plant fields an update may touch. Absent fields are left unchanged.
type PlantPatch struct {
	Name        kernel.Optional[Name]
	Species     kernel.Optional[string]
	PlantedDate kernel.Optional[time.Time]
	Notes       kernel.Optional[string]
	Status      kernel.Optional[kernel.PlantStatus]
}

// apply updates the plant in place. Name, species and status cannot be cleared.
func (p *Plant) apply(patch PlantPatch) error {
	if patch.Name.IsNull() || patch.Species.IsNull() || patch.Status.IsNull() {
		return fmt.Errorf("%w: name, species and status cannot be cleared", domain.ErrInvalidGrowingUnit)
	}
	if v, ok := patch.Name.Get(); ok {
		p.name = v
	}
	if v, ok := patch.Species.Get(); ok {
		p.species = strings.TrimSpace(v)
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
	if v, ok := patch.Status.Get(); ok {
		p.status = v
	}
	p.updatedAt = time.Now().UTC()
	return nil
}

func (p *Plant) attachTo(id kernel.GrowingUnitID) {
	p.growingUnitID = &id
	p.updatedAt = time.Now().UTC()
}

func (p *Plant) detach() {
	p.growingUnitID = nil
}

// Primitives returns the serialisable form.
func (p *Plant) Primitives() PlantPrimitives {
	out := PlantPrimitives{
		ID:          p.id.String(),
		Name:        p.name.String(),
		Species:     p.species,
		PlantedDate: p.plantedDate,
		Notes:       p.notes,
		Status:      p.status.String(),
		CreatedAt:   p.createdAt,
		UpdatedAt:   p.updatedAt,
	}
	if p.growingUnitID != nil {
		s := p.growingUnitID.String()
		out.GrowingUnitID = &s
	}
	return out
}
