package model

import "time"

type EventKind string

const (
	EventCreated   EventKind = "CREATED"
	EventModified  EventKind = "MODIFIED"
	EventDeleted   EventKind = "DELETED"
	EventMovedFrom EventKind = "MOVED_FROM"
	EventMovedTo   EventKind = "MOVED_TO"
)

// ChangeEvent is a single filesystem notification under the watched tree.
// DestPath is only set for renames whose new name is known.
type ChangeEvent struct {
	Kind      EventKind
	Path      string
	DestPath  string
	Timestamp time.Time
}

// TriggerPath is the path reported when this event opens the gate.
func (e ChangeEvent) TriggerPath() string {
	if e.DestPath != "" {
		return e.DestPath
	}

	return e.Path
}
