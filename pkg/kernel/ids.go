package kernel

import (
	"fmt"

	"github.com/google/uuid"
)

// parseUUID validates s as a UUID. kind names the identifier in the error message.
func parseUUID(kind, s string) (uuid.UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %s %q is not a valid uuid", ErrValidation, kind, s)
	}
	if id == uuid.Nil {
		return uuid.Nil, fmt.Errorf("%w: %s must not be the nil uuid", ErrValidation, kind)
	}
	return id, nil
}

// GrowingUnitID identifies a growing unit aggregate.
type GrowingUnitID uuid.UUID

// NewGrowingUnitID generates a random GrowingUnitID.
func NewGrowingUnitID() GrowingUnitID { return GrowingUnitID(uuid.New()) }

// ParseGrowingUnitID validates s and returns the GrowingUnitID it encodes.
func ParseGrowingUnitID(s string) (GrowingUnitID, error) {
	id, err := parseUUID("growing unit id", s)
	return GrowingUnitID(id), err
}

func (id GrowingUnitID) String() string                  { return uuid.UUID(id).String() }
func (id GrowingUnitID) IsZero() bool                    { return uuid.UUID(id) == uuid.Nil }
func (id GrowingUnitID) Equals(other GrowingUnitID) bool { return id == other }

// PlantID identifies a plant, either as a growing unit child entity or as a
// container-based plant aggregate.
type PlantID uuid.UUID

// NewPlantID generates a random PlantID.
func NewPlantID() PlantID { return PlantID(uuid.New()) }

// ParsePlantID validates s and returns the PlantID it encodes.
func ParsePlantID(s string) (PlantID, error) {
	id, err := parseUUID("plant id", s)
	return PlantID(id), err
}

func (id PlantID) String() string            { return uuid.UUID(id).String() }
func (id PlantID) IsZero() bool              { return uuid.UUID(id) == uuid.Nil }
func (id PlantID) Equals(other PlantID) bool { return id == other }

// LocationID identifies a location aggregate.
type LocationID uuid.UUID

// NewLocationID generates a random LocationID.
func NewLocationID() LocationID { return LocationID(uuid.New()) }

// ParseLocationID validates s and returns the LocationID it encodes.
func ParseLocationID(s string) (LocationID, error) {
	id, err := parseUUID("location id", s)
	return LocationID(id), err
}

func (id LocationID) String() string               { return uuid.UUID(id).String() }
func (id LocationID) IsZero() bool                 { return uuid.UUID(id) == uuid.Nil }
func (id LocationID) Equals(other LocationID) bool { return id == other }

// ContainerID identifies the container a container-based plant lives in.
type ContainerID uuid.UUID

// NewContainerID generates a random ContainerID.
func NewContainerID() ContainerID { return ContainerID(uuid.New()) }

// ParseContainerID validates s and returns the ContainerID it encodes.
func ParseContainerID(s string) (ContainerID, error) {
	id, err := parseUUID("container id", s)
	return ContainerID(id), err
}

func (id ContainerID) String() string                { return uuid.UUID(id).String() }
func (id ContainerID) IsZero() bool                  { return uuid.UUID(id) == uuid.Nil }
func (id ContainerID) Equals(other ContainerID) bool { return id == other }

// PlantSpeciesID identifies a plant species aggregate.
type PlantSpeciesID uuid.UUID

// NewPlantSpeciesID generates a random PlantSpeciesID.
func NewPlantSpeciesID() PlantSpeciesID { return PlantSpeciesID(uuid.New()) }

// ParsePlantSpeciesID validates s and returns the PlantSpeciesID it encodes.
func ParsePlantSpeciesID(s string) (PlantSpeciesID, error) {
	id, err := parseUUID("plant species id", s)
	return PlantSpeciesID(id), err
}

func (id PlantSpeciesID) String() string                   { return uuid.UUID(id).String() }
func (id PlantSpeciesID) IsZero() bool                     { return uuid.UUID(id) == uuid.Nil }
func (id PlantSpeciesID) Equals(other PlantSpeciesID) bool { return id == other }
