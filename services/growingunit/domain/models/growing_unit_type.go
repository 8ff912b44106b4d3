package models

import (
	"fmt"
	"strings"

	"github.com/ghuser/gardenhub/services/growingunit/domain"
)

// GrowingUnitType classifies the physical form of a growing unit.
type GrowingUnitType string

const (
	TypePot           GrowingUnitType = "POT"
	TypeGardenBed     GrowingUnitType = "GARDEN_BED"
	TypeHangingBasket GrowingUnitType = "HANGING_BASKET"
	TypeWindowBox     GrowingUnitType = "WINDOW_BOX"
)

// GrowingUnitTypes lists every supported type.
var GrowingUnitTypes = []GrowingUnitType{TypePot, TypeGardenBed, TypeHangingBasket, TypeWindowBox}

// ParseGrowingUnitType accepts a type name in any letter case.
func ParseGrowingUnitType(s string) (GrowingUnitType, error) {
	candidate := GrowingUnitType(strings.ToUpper(strings.TrimSpace(s)))
	for _, t := range GrowingUnitTypes {
		if t == candidate {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: unknown growing unit type %q", domain.ErrInvalidGrowingUnit, s)
}

func (t GrowingUnitType) String() string { return string(t) }
