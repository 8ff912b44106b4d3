package domain

import (
	"fmt"

	"github.com/ghuser/gardenhub/pkg/kernel"
)

var (
	ErrPlantSpeciesNotFound = kernel.NewSentinel("plant species not found", kernel.ErrNotFound)

	// ErrScientificNameAlreadyInUse indicates another species already holds the scientific name.
	ErrScientificNameAlreadyInUse = kernel.NewSentinel("scientific name already in use", kernel.ErrConflict)

	ErrInvalidPlantSpecies = kernel.NewSentinel("invalid plant species", kernel.ErrValidation)
)

type PlantSpeciesNotFoundError struct {
	PlantSpeciesID kernel.PlantSpeciesID
}

func (e *PlantSpeciesNotFoundError) Error() string {
	return fmt.Sprintf("Plant species with id %s not found", e.PlantSpeciesID)
}

func (e *PlantSpeciesNotFoundError) Unwrap() error { return ErrPlantSpeciesNotFound }

type ScientificNameAlreadyInUseError struct {
	ScientificName string
}

func (e *ScientificNameAlreadyInUseError) Error() string {
	return fmt.Sprintf("Plant species with scientific name %s already exists", e.ScientificName)
}

func (e *ScientificNameAlreadyInUseError) Unwrap() error { return ErrScientificNameAlreadyInUse }
