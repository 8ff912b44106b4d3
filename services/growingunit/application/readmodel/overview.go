package readmodel

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/ghuser/gardenhub/pkg/kernel"
	"github.com/ghuser/gardenhub/pkg/logger"
)

// OverviewID is the id of the single overview document.
const OverviewID = "overview"

// DefaultOverviewBatchSize is the page size used to walk the unit views.
const DefaultOverviewBatchSize = 500

// OverviewViewModel aggregates statistics across every growing unit and plant.
type OverviewViewModel struct {
	ID string `bson:"_id" json:"id"`

	TotalGrowingUnits  int            `bson:"totalGrowingUnits"  json:"totalGrowingUnits"`
	GrowingUnitsByType map[string]int `bson:"growingUnitsByType" json:"growingUnitsByType"`
	FullGrowingUnits   int            `bson:"fullGrowingUnits"   json:"fullGrowingUnits"`
	EmptyGrowingUnits  int            `bson:"emptyGrowingUnits"  json:"emptyGrowingUnits"`

	TotalPlants          int            `bson:"totalPlants"          json:"totalPlants"`
	PlantsByStatus       map[string]int `bson:"plantsByStatus"       json:"plantsByStatus"`
	MinPlantsPerUnit     int            `bson:"minPlantsPerUnit"     json:"minPlantsPerUnit"`
	MaxPlantsPerUnit     int            `bson:"maxPlantsPerUnit"     json:"maxPlantsPerUnit"`
	MedianPlantsPerUnit  float64        `bson:"medianPlantsPerUnit"  json:"medianPlantsPerUnit"`
	AveragePlantsPerUnit float64        `bson:"averagePlantsPerUnit" json:"averagePlantsPerUnit"`

	TotalCapacity          int     `bson:"totalCapacity"          json:"totalCapacity"`
	TotalRemainingCapacity int     `bson:"totalRemainingCapacity" json:"totalRemainingCapacity"`
	CapacityUtilization    float64 `bson:"capacityUtilization"    json:"capacityUtilization"`

	UnitsWithDimensions int     `bson:"unitsWithDimensions" json:"unitsWithDimensions"`
	TotalVolume         float64 `bson:"totalVolume"         json:"totalVolume"`
	AverageVolume       float64 `bson:"averageVolume"       json:"averageVolume"`

	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
} // @name OverviewViewModel

// OverviewService rebuilds the overview from the growing unit views.
type OverviewService struct {
	units     GrowingUnitViewRepository
	overviews OverviewRepository
	batchSize int
	log       logger.Logger
}

// NewOverviewService clamps batchSize into (0, kernel.MaxPerPage].
func NewOverviewService(units GrowingUnitViewRepository, overviews OverviewRepository, batchSize int, log logger.Logger) *OverviewService {
	if batchSize <= 0 || batchSize > kernel.MaxPerPage {
		batchSize = DefaultOverviewBatchSize
	}
	return &OverviewService{units: units, overviews: overviews, batchSize: batchSize, log: log}
}

// Refresh pages through every unit view, computes the overview and saves it.
func (s *OverviewService) Refresh(ctx context.Context) (OverviewViewModel, error) {
	acc := newOverviewAccumulator()
	criteria := kernel.Criteria{
		Sorts:      []kernel.Sort{{Field: "id", Direction: kernel.SortAsc}},
		Pagination: kernel.Pagination{Page: 1, PerPage: s.batchSize},
	}
	for {
		page, err := s.units.FindByCriteria(ctx, criteria)
		if err != nil {
			return OverviewViewModel{}, fmt.Errorf("overview: page %d: %w", criteria.Pagination.Page, err)
		}
		for i := range page.Items {
			acc.add(&page.Items[i])
		}
		seen := (criteria.Pagination.Page-1)*s.batchSize + len(page.Items)
		if len(page.Items) < s.batchSize || seen >= page.Total {
			break
		}
		criteria.Pagination.Page++
	}

	vm := acc.build()
	if err := s.overviews.Save(ctx, vm); err != nil {
		return OverviewViewModel{}, fmt.Errorf("overview: save: %w", err)
	}
	if s.log != nil {
		s.log.InfoContext(ctx, "overview refreshed",
			"growing_units", vm.TotalGrowingUnits,
			"plants", vm.TotalPlants,
		)
	}
	return vm, nil
}

type overviewAccumulator struct {
	vm           OverviewViewModel
	plantsByUnit []int
}

func newOverviewAccumulator() *overviewAccumulator {
	return &overviewAccumulator{vm: OverviewViewModel{
		ID:                 OverviewID,
		GrowingUnitsByType: map[string]int{},
		PlantsByStatus:     map[string]int{},
	}}
}

func (a *overviewAccumulator) add(u *GrowingUnitViewModel) {
	n := len(u.Plants)
	a.plantsByUnit = append(a.plantsByUnit, n)

	a.vm.TotalGrowingUnits++
	a.vm.GrowingUnitsByType[u.Type]++
	a.vm.TotalPlants += n
	a.vm.TotalCapacity += u.Capacity
	a.vm.TotalRemainingCapacity += u.Capacity - n
	switch {
	case n == 0:
		a.vm.EmptyGrowingUnits++
	case n >= u.Capacity:
		a.vm.FullGrowingUnits++
	}
	for _, p := range u.Plants {
		a.vm.PlantsByStatus[p.Status]++
	}
	if d := u.Dimensions; d != nil {
		a.vm.UnitsWithDimensions++
		a.vm.TotalVolume += d.Length * d.Width * d.Height
	}
}

func (a *overviewAccumulator) build() OverviewViewModel {
	vm := a.vm
	vm.UpdatedAt = time.Now().UTC()
	if len(a.plantsByUnit) == 0 {
		return vm
	}

	counts := append([]int(nil), a.plantsByUnit...)
	sort.Ints(counts)
	vm.MinPlantsPerUnit = counts[0]
	vm.MaxPlantsPerUnit = counts[len(counts)-1]
	vm.MedianPlantsPerUnit = median(counts)
	vm.AveragePlantsPerUnit = float64(vm.TotalPlants) / float64(vm.TotalGrowingUnits)
	if vm.TotalCapacity > 0 {
		vm.CapacityUtilization = float64(vm.TotalPlants) / float64(vm.TotalCapacity) * 100
	}
	if vm.UnitsWithDimensions > 0 {
		vm.AverageVolume = vm.TotalVolume / float64(vm.UnitsWithDimensions)
	}
	return vm
}

// median expects sorted, non-empty input.
func median(sorted []int) float64 {
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return float64(sorted[mid])
	}
	return float64(sorted[mid-1]+sorted[mid]) / 2
}
