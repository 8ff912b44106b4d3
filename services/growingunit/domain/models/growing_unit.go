package models

import (
	"fmt"
	"time"

	"github.com/ghuser/gardenhub/pkg/kernel"
	"github.com/ghuser/gardenhub/services/growingunit/domain"
	"github.com/ghuser/gardenhub/services/growingunit/domain/events"
)

// GrowingUnit is the aggregate root for plant placement. It owns an ordered
// list of plants (insertion order) and guarantees len(plants) <= capacity
// after every mutation that adds a plant.
//
// Every mutator takes an emit flag. When true the mutator records an event
// carrying the post-mutation snapshot; callers composing several mutations
// into one higher-level operation pass false and record their own event.
type GrowingUnit struct {
	kernel.AggregateRoot

	id         kernel.GrowingUnitID
	locationID *kernel.LocationID
	name       Name
	unitType   GrowingUnitType
	capacity   Capacity
	dimensions *Dimensions
	plants     []*Plant
	createdAt  time.Time
	updatedAt  time.Time
}

// GrowingUnitPrimitives is the serialisable snapshot of a GrowingUnit. It is
// the payload of growing unit events and the input of RehydrateGrowingUnit.
type GrowingUnitPrimitives struct {
	ID         string                `json:"id"`
	LocationID *string               `json:"locationId"`
	Name       string                `json:"name"`
	Type       string                `json:"type"`
	Capacity   int                   `json:"capacity"`
	Dimensions *DimensionsPrimitives `json:"dimensions"`
	Plants     []PlantPrimitives     `json:"plants"`
	Version    int                   `json:"version"`
	CreatedAt  time.Time             `json:"createdAt"`
	UpdatedAt  time.Time             `json:"updatedAt"`
}

// NewGrowingUnitParams carries the validated fields of a new growing unit.
type NewGrowingUnitParams struct {
	ID         kernel.GrowingUnitID
	LocationID *kernel.LocationID
	Name       Name
	Type       GrowingUnitType
	Capacity   Capacity
	Dimensions *Dimensions
}

// NewGrowingUnit is the factory for new units. It starts with no plants and,
// when emit is true, records growing_unit.created.
func NewGrowingUnit(p NewGrowingUnitParams, emit bool) *GrowingUnit {
	id := p.ID
	if id.IsZero() {
		id = kernel.NewGrowingUnitID()
	}
	now := time.Now().UTC()
	u := &GrowingUnit{
		id:         id,
		locationID: p.LocationID,
		name:       p.Name,
		unitType:   p.Type,
		capacity:   p.Capacity,
		dimensions: p.Dimensions,
		plants:     []*Plant{},
		createdAt:  now,
		updatedAt:  now,
	}
	if emit {
		u.record(events.TopicGrowingUnitCreated, u.Primitives())
	}
	return u
}

// RehydrateGrowingUnit rebuilds a unit from stored primitives without recording events.
func RehydrateGrowingUnit(p GrowingUnitPrimitives) (*GrowingUnit, error) {
	id, err := kernel.ParseGrowingUnitID(p.ID)
	if err != nil {
		return nil, err
	}
	name, err := NewName(p.Name)
	if err != nil {
		return nil, err
	}
	unitType, err := ParseGrowingUnitType(p.Type)
	if err != nil {
		return nil, err
	}
	capacity, err := NewCapacity(p.Capacity)
	if err != nil {
		return nil, err
	}
	u := &GrowingUnit{
		id:        id,
		name:      name,
		unitType:  unitType,
		capacity:  capacity,
		plants:    make([]*Plant, 0, len(p.Plants)),
		createdAt: p.CreatedAt,
		updatedAt: p.UpdatedAt,
	}
	if p.LocationID != nil {
		locID, err := kernel.ParseLocationID(*p.LocationID)
		if err != nil {
			return nil, err
		}
		u.locationID = &locID
	}
	if p.Dimensions != nil {
		dims, err := NewDimensions(*p.Dimensions)
		if err != nil {
			return nil, err
		}
		u.dimensions = &dims
	}
	for _, pp := range p.Plants {
		plant, err := RehydratePlant(pp)
		if err != nil {
			return nil, fmt.Errorf("plant %s: %w", pp.ID, err)
		}
		plant.growingUnitID = &id
		u.plants = append(u.plants, plant)
	}
	u.MarkPersisted(p.Version)
	return u, nil
}

func (u *GrowingUnit) ID() kernel.GrowingUnitID       { return u.id }
func (u *GrowingUnit) LocationID() *kernel.LocationID { return u.locationID }
func (u *GrowingUnit) Name() Name                     { return u.name }
func (u *GrowingUnit) Type() GrowingUnitType          { return u.unitType }
func (u *GrowingUnit) Capacity() Capacity             { return u.capacity }
func (u *GrowingUnit) Dimensions() *Dimensions        { return u.dimensions }
func (u *GrowingUnit) CreatedAt() time.Time           { return u.createdAt }
func (u *GrowingUnit) UpdatedAt() time.Time           { return u.updatedAt }

// Plants returns the plants in insertion order. The slice is a copy; the
// plants themselves are shared with the aggregate.
func (u *GrowingUnit) Plants() []*Plant {
	out := make([]*Plant, len(u.plants))
	copy(out, u.plants)
	return out
}

// NumberOfPlants is len(plants).
func (u *GrowingUnit) NumberOfPlants() int { return len(u.plants) }

// RemainingCapacity is capacity minus the plants held.
func (u *GrowingUnit) RemainingCapacity() int { return u.capacity.Int() - len(u.plants) }

// HasCapacity reports whether one more plant fits.
func (u *GrowingUnit) HasCapacity() bool { return u.RemainingCapacity() > 0 }

// Volume is the dimensions volume, or 0 when the unit has no dimensions.
func (u *GrowingUnit) Volume() float64 {
	if u.dimensions == nil {
		return 0
	}
	return u.dimensions.Volume()
}

// PlantByID returns the plant with the given id or nil.
func (u *GrowingUnit) PlantByID(id kernel.PlantID) *Plant {
	for _, p := range u.plants {
		if p.id == id {
			return p
		}
	}
	return nil
}

// AddPlant appends plant and points its back-reference at this unit.
// A full unit or a duplicate id is rejected without touching the collection.
func (u *GrowingUnit) AddPlant(plant *Plant, emit bool) error {
	if !u.HasCapacity() {
		return &domain.GrowingUnitFullCapacityError{GrowingUnitID: u.id}
	}
	if u.PlantByID(plant.id) != nil {
		return &domain.PlantAlreadyInGrowingUnitError{GrowingUnitID: u.id, PlantID: plant.id}
	}
	plant.attachTo(u.id)
	u.plants = append(u.plants, plant)
	u.touch()
	if emit {
		u.record(events.TopicGrowingUnitUpdated, u.Primitives())
	}
	return nil
}

// RemovePlant takes the plant out of the unit, preserving the order of the
// rest, and returns it detached.
func (u *GrowingUnit) RemovePlant(id kernel.PlantID, emit bool) (*Plant, error) {
	idx := -1
	for i, p := range u.plants {
		if p.id == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, &domain.GrowingUnitPlantNotFoundError{GrowingUnitID: u.id, PlantID: id}
	}
	plant := u.plants[idx]
	u.plants = append(u.plants[:idx:idx], u.plants[idx+1:]...)
	plant.detach()
	u.touch()
	if emit {
		u.record(events.TopicGrowingUnitUpdated, u.Primitives())
	}
	return plant, nil
}

// UpdatePlant applies patch to one of the unit's plants.
func (u *GrowingUnit) UpdatePlant(id kernel.PlantID, patch PlantPatch, emit bool) (*Plant, error) {
	plant := u.PlantByID(id)
	if plant == nil {
		return nil, &domain.GrowingUnitPlantNotFoundError{GrowingUnitID: u.id, PlantID: id}
	}
	if err := plant.apply(patch); err != nil {
		return nil, err
	}
	u.touch()
	if emit {
		u.record(events.TopicGrowingUnitUpdated, u.Primitives())
	}
	return plant, nil
}

// GrowingUnitPatch lists the unit fields an update may touch. Absent fields
// are left unchanged; a null LocationID or Dimensions clears the field.
type GrowingUnitPatch struct {
	LocationID kernel.Optional[kernel.LocationID]
	Name       kernel.Optional[Name]
	Type       kernel.Optional[GrowingUnitType]
	Capacity   kernel.Optional[Capacity]
	Dimensions kernel.Optional[Dimensions]
}

// Update applies patch. Capacity may not drop below the number of plants held.
// Nothing changes when the patch is rejected.
func (u *GrowingUnit) Update(patch GrowingUnitPatch, emit bool) error {
	if patch.Name.IsNull() || patch.Type.IsNull() || patch.Capacity.IsNull() {
		return fmt.Errorf("%w: name, type and capacity cannot be cleared", domain.ErrInvalidGrowingUnit)
	}
	if c, ok := patch.Capacity.Get(); ok && c.Int() < len(u.plants) {
		return &domain.CapacityBelowPlantCountError{GrowingUnitID: u.id, Capacity: c.Int(), Plants: len(u.plants)}
	}

	if patch.LocationID.IsNull() {
		u.locationID = nil
	} else if v, ok := patch.LocationID.Get(); ok {
		u.locationID = &v
	}
	if v, ok := patch.Name.Get(); ok {
		u.name = v
	}
	if v, ok := patch.Type.Get(); ok {
		u.unitType = v
	}
	if v, ok := patch.Capacity.Get(); ok {
		u.capacity = v
	}
	if patch.Dimensions.IsNull() {
		u.dimensions = nil
	} else if v, ok := patch.Dimensions.Get(); ok {
		u.dimensions = &v
	}
	u.touch()
	if emit {
		u.record(events.TopicGrowingUnitUpdated, u.Primitives())
	}
	return nil
}

// Delete records growing_unit.deleted. Removal from storage is the repository's job.
func (u *GrowingUnit) Delete(emit bool) {
	if emit {
		u.record(events.TopicGrowingUnitDeleted, u.Primitives())
	}
}

// PlantTransplantedData is the payload of the two transplant events.
type PlantTransplantedData struct {
	PlantID             string                `json:"plantId"`
	SourceGrowingUnitID string                `json:"sourceGrowingUnitId"`
	TargetGrowingUnitID string                `json:"targetGrowingUnitId"`
	GrowingUnit         GrowingUnitPrimitives `json:"growingUnit"`
}

// MarkPlantTransplantedOut records that plant left this unit for target.
func (u *GrowingUnit) MarkPlantTransplantedOut(plantID kernel.PlantID, target kernel.GrowingUnitID) {
	u.record(events.TopicPlantTransplantedOut, PlantTransplantedData{
		PlantID:             plantID.String(),
		SourceGrowingUnitID: u.id.String(),
		TargetGrowingUnitID: target.String(),
		GrowingUnit:         u.Primitives(),
	})
}

// MarkPlantTransplantedIn records that plant arrived in this unit from source.
func (u *GrowingUnit) MarkPlantTransplantedIn(plantID kernel.PlantID, source kernel.GrowingUnitID) {
	u.record(events.TopicPlantTransplantedIn, PlantTransplantedData{
		PlantID:             plantID.String(),
		SourceGrowingUnitID: source.String(),
		TargetGrowingUnitID: u.id.String(),
		GrowingUnit:         u.Primitives(),
	})
}

// Primitives returns the serialisable snapshot.
func (u *GrowingUnit) Primitives() GrowingUnitPrimitives {
	out := GrowingUnitPrimitives{
		ID:        u.id.String(),
		Name:      u.name.String(),
		Type:      u.unitType.String(),
		Capacity:  u.capacity.Int(),
		Plants:    make([]PlantPrimitives, 0, len(u.plants)),
		Version:   u.Version(),
		CreatedAt: u.createdAt,
		UpdatedAt: u.updatedAt,
	}
	if u.locationID != nil {
		s := u.locationID.String()
		out.LocationID = &s
	}
	if u.dimensions != nil {
		d := u.dimensions.Primitives()
		out.Dimensions = &d
	}
	for _, p := range u.plants {
		out.Plants = append(out.Plants, p.Primitives())
	}
	return out
}

func (u *GrowingUnit) touch() {
	u.updatedAt = time.Now().UTC()
}

func (u *GrowingUnit) record(eventType string, data any) {
	u.Record(kernel.NewEvent(events.AggregateType, u.id.String(), eventType, data))
}
