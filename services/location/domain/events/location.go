// Package events names the domain events raised by the location aggregate.
package events

const AggregateType = "location"

const (
	TopicLocationCreated = "location.created"
	TopicLocationUpdated = "location.updated"
	TopicLocationDeleted = "location.deleted"
)

var Topics = []string{TopicLocationCreated, TopicLocationUpdated, TopicLocationDeleted}
