// Package readmodel holds the query side of the growing unit context: view
// models stored in the document store, the builder that derives them from the
// aggregate, the projector that keeps them current and the overview
// aggregation.
package readmodel

import (
	"time"

	"github.com/ghuser/gardenhub/services/growingunit/domain/models"
)

// GrowingUnitViewModel is the flattened read-side snapshot of one unit. It is
// replaced wholesale on every projected event.
type GrowingUnitViewModel struct {
	ID                string               `bson:"_id"               json:"id"`
	LocationID        *string              `bson:"locationId"        json:"locationId"`
	Name              string               `bson:"name"              json:"name"`
	Type              string               `bson:"type"              json:"type"`
	Capacity          int                  `bson:"capacity"          json:"capacity"`
	Dimensions        *DimensionsViewModel `bson:"dimensions"        json:"dimensions"`
	Plants            []PlantViewModel     `bson:"plants"            json:"plants"`
	NumberOfPlants    int                  `bson:"numberOfPlants"    json:"numberOfPlants"`
	RemainingCapacity int                  `bson:"remainingCapacity" json:"remainingCapacity"`
	Volume            float64              `bson:"volume"            json:"volume"`
	CreatedAt         time.Time            `bson:"createdAt"         json:"createdAt"`
	UpdatedAt         time.Time            `bson:"updatedAt"         json:"updatedAt"`
} // @name GrowingUnitViewModel

type DimensionsViewModel struct {
	Length float64 `bson:"length" json:"length"`
	Width  float64 `bson:"width"  json:"width"`
	Height float64 `bson:"height" json:"height"`
	Unit   string  `bson:"unit"   json:"unit"`
} // @name DimensionsViewModel

type PlantViewModel struct {
	ID            string     `bson:"id"            json:"id"`
	GrowingUnitID *string    `bson:"growingUnitId" json:"growingUnitId"`
	Name          string     `bson:"name"          json:"name"`
	Species       string     `bson:"species"       json:"species"`
	PlantedDate   *time.Time `bson:"plantedDate"   json:"plantedDate"`
	Notes         *string    `bson:"notes"         json:"notes"`
	Status        string     `bson:"status"        json:"status"`
	CreatedAt     time.Time  `bson:"createdAt"     json:"createdAt"`
	UpdatedAt     time.Time  `bson:"updatedAt"     json:"updatedAt"`
} // @name PlantViewModel

// GrowingUnitViewModelBuilder derives view models from write-side state.
type GrowingUnitViewModelBuilder struct{}

// FromAggregate builds the view of a loaded unit, including derived metrics.
func (GrowingUnitViewModelBuilder) FromAggregate(u *models.GrowingUnit) GrowingUnitViewModel {
	vm := GrowingUnitViewModelBuilder{}.FromPrimitives(u.Primitives())
	vm.NumberOfPlants = u.NumberOfPlants()
	vm.RemainingCapacity = u.RemainingCapacity()
	vm.Volume = u.Volume()
	return vm
}

// FromPrimitives builds a view from a primitives snapshot, computing the
// derived metrics itself.
func (GrowingUnitViewModelBuilder) FromPrimitives(p models.GrowingUnitPrimitives) GrowingUnitViewModel {
	vm := GrowingUnitViewModel{
		ID:                p.ID,
		LocationID:        p.LocationID,
		Name:              p.Name,
		Type:              p.Type,
		Capacity:          p.Capacity,
		Plants:            make([]PlantViewModel, 0, len(p.Plants)),
		NumberOfPlants:    len(p.Plants),
		RemainingCapacity: p.Capacity - len(p.Plants),
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
	if d := p.Dimensions; d != nil {
		vm.Dimensions = &DimensionsViewModel{Length: d.Length, Width: d.Width, Height: d.Height, Unit: d.Unit}
		vm.Volume = d.Length * d.Width * d.Height
	}
	for _, pl := range p.Plants {
		vm.Plants = append(vm.Plants, PlantViewModel{
			ID:            pl.ID,
			GrowingUnitID: pl.GrowingUnitID,
			Name:          pl.Name,
			Species:       pl.Species,
			PlantedDate:   pl.PlantedDate,
			Notes:         pl.Notes,
			Status:        pl.Status,
			CreatedAt:     pl.CreatedAt,
			UpdatedAt:     pl.UpdatedAt,
		})
	}
	return vm
}
