package inbox

import "time"

type Notification struct {
	ID        string    `json:"id"`
	Body      string    `json:"body"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}

type EventType string

const (
	EventAdded   EventType = "added"
	EventRead    EventType = "read"
	EventRemoved EventType = "removed"
	EventCleared EventType = "cleared"
)

// Event describes an inbox mutation. Notification is the affected
// notification, zero for EventCleared. Snapshot is the inbox content right
// after the mutation and Version its position in the inbox history.
//
// Concurrent mutations may reach a listener out of order: a listener keeping
// a copy of the inbox should ignore events older than the last one applied.
type Event struct {
	Type         EventType
	Notification Notification
	Snapshot     []Notification
	Version      uint64
}

type Listener func(evt Event)
