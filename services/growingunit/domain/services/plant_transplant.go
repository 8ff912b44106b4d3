package services

import (
	"fmt"

	"github.com/ghuser/gardenhub/pkg/kernel"
	"github.com/ghuser/gardenhub/services/growingunit/domain"
	"github.com/ghuser/gardenhub/services/growingunit/domain/models"
)

// TransplantParams names the two loaded units and the plant to move.
type TransplantParams struct {
	Source  *models.GrowingUnit
	Target  *models.GrowingUnit
	PlantID kernel.PlantID
}

// PlantTransplantService moves a plant between two growing units.
type PlantTransplantService struct {
	assertPlant PlantAssertInGrowingUnit
}

func NewPlantTransplantService() *PlantTransplantService {
	return &PlantTransplantService{}
}

// Execute moves the plant from Source to Target and returns it with its
// back-reference pointing at Target.
//
// Every precondition (plant in source, distinct units, room in target, id not
// already in target) is checked before either unit is touched, so a failed
// call leaves both units as loaded. The inner remove/add record no events;
// instead Source records plant_transplanted_out and Target records
// plant_transplanted_in.
func (s *PlantTransplantService) Execute(p TransplantParams) (*models.Plant, error) {
	if _, err := s.assertPlant.Execute(p.Source, p.PlantID); err != nil {
		return nil, err
	}
	if p.Source.ID() == p.Target.ID() {
		return nil, fmt.Errorf("%w: plant %s already in growing unit %s",
			domain.ErrTransplantSameGrowingUnit, p.PlantID, p.Target.ID())
	}
	if p.Target.RemainingCapacity() <= 0 {
		return nil, &domain.GrowingUnitFullCapacityError{GrowingUnitID: p.Target.ID()}
	}
	if p.Target.PlantByID(p.PlantID) != nil {
		return nil, &domain.PlantAlreadyInGrowingUnitError{GrowingUnitID: p.Target.ID(), PlantID: p.PlantID}
	}

	plant, err := p.Source.RemovePlant(p.PlantID, false)
	if err != nil {
		return nil, err
	}
	if err := p.Target.AddPlant(plant, false); err != nil {
		return nil, fmt.Errorf("add transplanted plant: %w", err)
	}

	p.Source.MarkPlantTransplantedOut(p.PlantID, p.Target.ID())
	p.Target.MarkPlantTransplantedIn(p.PlantID, p.Source.ID())
	return plant, nil
}
