// Package events names the domain events raised by the growing unit aggregate.
// Each event type doubles as the Watermill topic it is published to.
package events

// AggregateType tags every growing unit event.
const AggregateType = "growing_unit"

const (
	// TopicGrowingUnitCreated is published after a new growing unit is persisted.
	TopicGrowingUnitCreated = "growing_unit.created"

	// TopicGrowingUnitUpdated is published after any state change of a unit:
	// field updates, plants added, removed or edited.
	TopicGrowingUnitUpdated = "growing_unit.updated"

	// TopicGrowingUnitDeleted is published after a unit is deleted.
	TopicGrowingUnitDeleted = "growing_unit.deleted"

	// TopicPlantTransplantedOut is published on the source unit of a transplant.
	TopicPlantTransplantedOut = "growing_unit.plant_transplanted_out"

	// TopicPlantTransplantedIn is published on the target unit of a transplant.
	TopicPlantTransplantedIn = "growing_unit.plant_transplanted_in"
)

// Topics lists every growing unit topic; subscribers register all of them.
var Topics = []string{
	TopicGrowingUnitCreated,
	TopicGrowingUnitUpdated,
	TopicGrowingUnitDeleted,
	TopicPlantTransplantedOut,
	TopicPlantTransplantedIn,
}
