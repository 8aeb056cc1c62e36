package storage

import "time"

// Event records one applied (or rejected) shopping command.
// It is intentionally simple to allow future DB implementations.
// Events are expected to be appended in chronological order.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	UserID    int64     `json:"user_id"`
	Input     string    `json:"input"`
	Action    string    `json:"action"` // "add", "remove" or "unrecognized"
	Item      string    `json:"item,omitempty"`
	Quantity  int       `json:"quantity,omitempty"`
}

// Recorder abstracts persistence of command events.
// Implementations can be file-based, database, etc.
// LoadEvents should return events in chronological order.
// AppendEvent should atomically append a new event.
// Implementations must be safe for concurrent use.
type Recorder interface {
	AppendEvent(event Event) error
	LoadEvents() ([]Event, error)
}
