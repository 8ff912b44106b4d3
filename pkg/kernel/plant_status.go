package kernel

import (
	"fmt"
	"strings"
)

// PlantStatus is the lifecycle stage of a plant.
type PlantStatus string

const (
	PlantStatusPlanted   PlantStatus = "PLANTED"
	PlantStatusGrowing   PlantStatus = "GROWING"
	PlantStatusHarvested PlantStatus = "HARVESTED"
	PlantStatusDead      PlantStatus = "DEAD"
	PlantStatusArchived  PlantStatus = "ARCHIVED"
)

// PlantStatuses lists every status in lifecycle order.
var PlantStatuses = []PlantStatus{
	PlantStatusPlanted,
	PlantStatusGrowing,
	PlantStatusHarvested,
	PlantStatusDead,
	PlantStatusArchived,
}

// ParsePlantStatus accepts a status name in any letter case.
func ParsePlantStatus(s string) (PlantStatus, error) {
	candidate := PlantStatus(strings.ToUpper(strings.TrimSpace(s)))
	for _, st := range PlantStatuses {
		if st == candidate {
			return st, nil
		}
	}
	return "", fmt.Errorf("%w: unknown plant status %q", ErrValidation, s)
}

func (s PlantStatus) String() string { return string(s) }
