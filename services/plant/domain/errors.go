package domain

import (
	"fmt"

	"github.com/ghuser/gardenhub/pkg/kernel"
)

var (
	ErrPlantNotFound = kernel.NewSentinel("plant not found", kernel.ErrNotFound)
	ErrInvalidPlant  = kernel.NewSentinel("invalid plant", kernel.ErrValidation)
)

type PlantNotFoundError struct {
	PlantID kernel.PlantID
}

func (e *PlantNotFoundError) Error() string {
	return fmt.Sprintf("Plant with id %s not found", e.PlantID)
}

func (e *PlantNotFoundError) Unwrap() error { return ErrPlantNotFound }
