package domain

import (
	"fmt"

	"github.com/ghuser/gardenhub/pkg/kernel"
)

var (
	// ErrLocationNotFound indicates the requested location does not exist.
	ErrLocationNotFound = kernel.NewSentinel("location not found", kernel.ErrNotFound)

	// ErrLocationHasDependentGrowingUnits indicates growing units still reference the location.
	ErrLocationHasDependentGrowingUnits = kernel.NewSentinel("location has dependent growing units", kernel.ErrConflict)

	// ErrInvalidLocation indicates a location field violates domain constraints.
	ErrInvalidLocation = kernel.NewSentinel("invalid location", kernel.ErrValidation)
)

type LocationNotFoundError struct {
	LocationID kernel.LocationID
}

func (e *LocationNotFoundError) Error() string {
	return fmt.Sprintf("Location with id %s not found", e.LocationID)
}

func (e *LocationNotFoundError) Unwrap() error { return ErrLocationNotFound }

// LocationHasDependentGrowingUnitsError blocks deleting a location that growing units still point at.
type LocationHasDependentGrowingUnitsError struct {
	LocationID kernel.LocationID
	Count      int
}

func (e *LocationHasDependentGrowingUnitsError) Error() string {
	noun := "growing units"
	if e.Count == 1 {
		noun = "growing unit"
	}
	return fmt.Sprintf(
		"Cannot delete location with id %s. It has %d dependent %s. Please remove or reassign all growing units before deleting the location.",
		e.LocationID, e.Count, noun,
	)
}

func (e *LocationHasDependentGrowingUnitsError) Unwrap() error {
	return ErrLocationHasDependentGrowingUnits
}
