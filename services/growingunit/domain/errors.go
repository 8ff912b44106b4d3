package domain

import (
	"fmt"

	"github.com/ghuser/gardenhub/pkg/kernel"
)

// Sentinel errors for the growing unit domain. Use errors.Is() to check these;
// the typed errors below unwrap to them and carry the offending ids.
var (
	// ErrGrowingUnitNotFound indicates the requested growing unit does not exist.
	ErrGrowingUnitNotFound = kernel.NewSentinel("growing unit not found", kernel.ErrNotFound)

	// ErrGrowingUnitFullCapacity indicates a plant cannot be added because the unit is full.
	ErrGrowingUnitFullCapacity = kernel.NewSentinel("growing unit is at full capacity", kernel.ErrRuleViolation)

	// ErrGrowingUnitPlantNotFound indicates the plant is not part of the growing unit.
	ErrGrowingUnitPlantNotFound = kernel.NewSentinel("plant not found in growing unit", kernel.ErrRuleViolation)

	// ErrPlantAlreadyInGrowingUnit indicates the plant id is already in the unit.
	ErrPlantAlreadyInGrowingUnit = kernel.NewSentinel("plant already in growing unit", kernel.ErrRuleViolation)

	// ErrCapacityBelowPlantCount indicates an update would shrink capacity below the plants held.
	ErrCapacityBelowPlantCount = kernel.NewSentinel("capacity below plant count", kernel.ErrRuleViolation)

	// ErrTransplantSameGrowingUnit indicates source and target of a transplant are the same unit.
	ErrTransplantSameGrowingUnit = kernel.NewSentinel("cannot transplant into the same growing unit", kernel.ErrRuleViolation)

	// ErrPlantHeldByAnotherGrowingUnit indicates a plant id is already stored under a different unit.
	ErrPlantHeldByAnotherGrowingUnit = kernel.NewSentinel("plant held by another growing unit", kernel.ErrConflict)

	// ErrInvalidGrowingUnit indicates a growing unit or plant field violates domain constraints.
	ErrInvalidGrowingUnit = kernel.NewSentinel("invalid growing unit", kernel.ErrValidation)
)

// GrowingUnitNotFoundError is raised by assert-exists lookups.
type GrowingUnitNotFoundError struct {
	GrowingUnitID kernel.GrowingUnitID
}

func (e *GrowingUnitNotFoundError) Error() string {
	return fmt.Sprintf("Growing unit with id %s not found", e.GrowingUnitID)
}

func (e *GrowingUnitNotFoundError) Unwrap() error { return ErrGrowingUnitNotFound }

// GrowingUnitFullCapacityError is raised when a unit holding capacity plants receives another.
type GrowingUnitFullCapacityError struct {
	GrowingUnitID kernel.GrowingUnitID
}

func (e *GrowingUnitFullCapacityError) Error() string {
	return fmt.Sprintf("Growing unit %s is at full capacity", e.GrowingUnitID)
}

func (e *GrowingUnitFullCapacityError) Unwrap() error { return ErrGrowingUnitFullCapacity }

// GrowingUnitPlantNotFoundError is raised when a plant id is absent from a unit.
type GrowingUnitPlantNotFoundError struct {
	GrowingUnitID kernel.GrowingUnitID
	PlantID       kernel.PlantID
}

func (e *GrowingUnitPlantNotFoundError) Error() string {
	return fmt.Sprintf("Plant %s not found in growing unit %s", e.PlantID, e.GrowingUnitID)
}

func (e *GrowingUnitPlantNotFoundError) Unwrap() error { return ErrGrowingUnitPlantNotFound }

// PlantAlreadyInGrowingUnitError is raised when a plant id is added twice.
type PlantAlreadyInGrowingUnitError struct {
	GrowingUnitID kernel.GrowingUnitID
	PlantID       kernel.PlantID
}

func (e *PlantAlreadyInGrowingUnitError) Error() string {
	return fmt.Sprintf("Plant %s is already in growing unit %s", e.PlantID, e.GrowingUnitID)
}

func (e *PlantAlreadyInGrowingUnitError) Unwrap() error { return ErrPlantAlreadyInGrowingUnit }

// CapacityBelowPlantCountError is raised when capacity would drop below the plants held.
type CapacityBelowPlantCountError struct {
	GrowingUnitID kernel.GrowingUnitID
	Capacity      int
	Plants        int
}

func (e *CapacityBelowPlantCountError) Error() string {
	return fmt.Sprintf("Growing unit %s holds %d plants and cannot have its capacity reduced to %d",
		e.GrowingUnitID, e.Plants, e.Capacity)
}

func (e *CapacityBelowPlantCountError) Unwrap() error { return ErrCapacityBelowPlantCount }

// PlantHeldByAnotherGrowingUnitError is raised on save when a plant id is
// already stored under a different growing unit.
type PlantHeldByAnotherGrowingUnitError struct {
	GrowingUnitID kernel.GrowingUnitID
	PlantID       kernel.PlantID
}

func (e *PlantHeldByAnotherGrowingUnitError) Error() string {
	return fmt.Sprintf("Plant %s cannot be added to growing unit %s: it belongs to another growing unit", e.PlantID, e.GrowingUnitID)
}

func (e *PlantHeldByAnotherGrowingUnitError) Unwrap() error { return ErrPlantHeldByAnotherGrowingUnit }
