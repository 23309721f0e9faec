package workflow

import (
	"strings"
	"time"

	"lotflow/internal/stage"
)

// Priority of a tracked vehicle. New entries default to medium.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// ParsePriority converts a string into a known Priority.
func ParsePriority(value string) (Priority, bool) {
	normalized := Priority(strings.ToLower(strings.TrimSpace(value)))
	switch normalized {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return normalized, true
	}
	return "", false
}

// Entry is the live workflow record for one vehicle. At most one entry exists
// per vehicle; entries are created lazily on the first successful move and are
// never deleted. The movement history is stored separately and retrieved via
// Store.History, keeping the live entry small.
type Entry struct {
	VehicleID       string
	Model           string
	CurrentLocation string
	CurrentStatus   string
	Priority        Priority
	CreatedAt       time.Time
	LastUpdate      time.Time
}

// Stage derives the workflow stage from the entry's live location and status.
// The stage is never persisted, so it cannot drift from the classifier.
func (e *Entry) Stage() stage.Stage {
	return stage.Classify(e.CurrentLocation, e.CurrentStatus)
}
