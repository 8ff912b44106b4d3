package models

import (
	"fmt"

	"github.com/ghuser/gardenhub/services/location/domain"
)

// LocationType classifies where growing units are placed.
type LocationType string

const (
	LocationTypeRoom       LocationType = "ROOM"
	LocationTypeBalcony    LocationType = "BALCONY"
	LocationTypeGarden     LocationType = "GARDEN"
	LocationTypeGreenhouse LocationType = "GREENHOUSE"
	LocationTypeTerrace    LocationType = "TERRACE"
	LocationTypeOutdoor    LocationType = "OUTDOOR"
)

func ParseLocationType(s string) (LocationType, error) {
	switch t := LocationType(s); t {
	case LocationTypeRoom, LocationTypeBalcony, LocationTypeGarden,
		LocationTypeGreenhouse, LocationTypeTerrace, LocationTypeOutdoor:
		return t, nil
	}
	return "", fmt.Errorf("%w: unknown location type %q", domain.ErrInvalidLocation, s)
}

func (t LocationType) String() string { return string(t) }
