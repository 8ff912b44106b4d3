// Package events names the domain events raised by container-based plants.
package events

const AggregateType = "plant"

const (
	TopicPlantCreated       = "plant.created"
	TopicPlantUpdated       = "plant.updated"
	TopicPlantStatusChanged = "plant.status_changed"
	TopicPlantDeleted       = "plant.deleted"
)

var Topics = []string{TopicPlantCreated, TopicPlantUpdated, TopicPlantStatusChanged, TopicPlantDeleted}
