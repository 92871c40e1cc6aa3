package event_bus

const EventsChangedType EventType = "events.changed"

type ChangeKind string

const (
	EventAdded   ChangeKind = "added"
	EventUpdated ChangeKind = "updated"
	EventRemoved ChangeKind = "removed"
)

// EventsChanged is published after a mutation of the event store has been
// persisted. Subscribers re-read the store for DateKey.
type EventsChanged struct {
	Kind    ChangeKind
	DateKey string
	EventID string
}
