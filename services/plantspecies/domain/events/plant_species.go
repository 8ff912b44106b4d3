package events

const AggregateType = "plant_species"

const (
	TopicPlantSpeciesCreated = "plant_species.created"
	TopicPlantSpeciesUpdated = "plant_species.updated"
	TopicPlantSpeciesDeleted = "plant_species.deleted"
)

var Topics = []string{TopicPlantSpeciesCreated, TopicPlantSpeciesUpdated, TopicPlantSpeciesDeleted}
