package models

import (
	"fmt"
	"strings"

	"github.com/ghuser/gardenhub/services/growingunit/domain"
)

// LengthUnit is the unit the dimensions of a growing unit are measured in.
type LengthUnit string

const (
	UnitMillimeters LengthUnit = "MILLIMETERS"
	UnitCentimeters LengthUnit = "CENTIMETERS"
	UnitMeters      LengthUnit = "METERS"
	UnitInches      LengthUnit = "INCHES"
	UnitFeet        LengthUnit = "FEET"
)

var lengthUnits = []LengthUnit{UnitMillimeters, UnitCentimeters, UnitMeters, UnitInches, UnitFeet}

// ParseLengthUnit accepts a unit name in any letter case.
func ParseLengthUnit(s string) (LengthUnit, error) {
	candidate := LengthUnit(strings.ToUpper(strings.TrimSpace(s)))
	for _, u := range lengthUnits {
		if u == candidate {
			return u, nil
		}
	}
	return "", fmt.Errorf("%w: unknown length unit %q", domain.ErrInvalidGrowingUnit, s)
}

// Dimensions is the physical size of a growing unit.
type Dimensions struct {
	length float64
	width  float64
	height float64
	unit   LengthUnit
}

// DimensionsPrimitives is the serialisable form of Dimensions.
type DimensionsPrimitives struct {
	Length float64 `json:"length"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Unit   string  `json:"unit"`
}

// NewDimensions validates that every measure is positive and the unit is known.
func NewDimensions(p DimensionsPrimitives) (Dimensions, error) {
	if p.Length <= 0 || p.Width <= 0 || p.Height <= 0 {
		return Dimensions{}, fmt.Errorf("%w: dimensions must be positive (length=%v width=%v height=%v)",
			domain.ErrInvalidGrowingUnit, p.Length, p.Width, p.Height)
	}
	unit, err := ParseLengthUnit(p.Unit)
	if err != nil {
		return Dimensions{}, err
	}
	return Dimensions{length: p.Length, width: p.Width, height: p.Height, unit: unit}, nil
}

func (d Dimensions) Length() float64  { return d.length }
func (d Dimensions) Width() float64   { return d.width }
func (d Dimensions) Height() float64  { return d.height }
func (d Dimensions) Unit() LengthUnit { return d.unit }

// Volume is length x width x height in the cube of Unit.
func (d Dimensions) Volume() float64 {
	return d.length * d.width * d.height
}

// Primitives returns the serialisable form.
func (d Dimensions) Primitives() DimensionsPrimitives {
	return DimensionsPrimitives{Length: d.length, Width: d.width, Height: d.height, Unit: string(d.unit)}
}
