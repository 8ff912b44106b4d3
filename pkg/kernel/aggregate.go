package kernel

// AggregateRoot is embedded by aggregates. It owns the buffer of events that
// were recorded but not yet published, and the version the aggregate had when
// it was last loaded or saved.
type AggregateRoot struct {
	events  []Event
	version int
}

// Record appends an event to the uncommitted buffer.
func (a *AggregateRoot) Record(e Event) {
	a.events = append(a.events, e)
}

// UncommittedEvents returns a copy of the buffered events without draining them.
func (a *AggregateRoot) UncommittedEvents() []Event {
	out := make([]Event, len(a.events))
	copy(out, a.events)
	return out
}

// PullEvents drains the buffer and hands the events to the caller.
func (a *AggregateRoot) PullEvents() []Event {
	events := a.events
	a.events = nil
	return events
}

// Version is the persisted version. Zero means the aggregate was never saved.
func (a *AggregateRoot) Version() int { return a.version }

// MarkPersisted records the version a repository stored the aggregate under.
func (a *AggregateRoot) MarkPersisted(version int) { a.version = version }
