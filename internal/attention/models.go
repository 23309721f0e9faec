package attention

import "time"

// Type is the classification of why a vehicle needs attention.
type Type string

const (
	TypeWaitingParts   Type = "waiting_parts"
	TypeLowBattery     Type = "low_battery"
	TypeRepairNeeded   Type = "repair_needed"
	TypeOverdueService Type = "overdue_service"
)

// Priority of an attention item.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// Rank maps priorities onto a sortable scale.
func (p Priority) Rank() int {
	switch p {
	case PriorityUrgent:
		return 4
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

// Item is a derived attention classification. Items are recomputed on every
// query and never persisted.
type Item struct {
	VehicleID      string
	Model          string
	Location       string
	Type           Type
	Priority       Priority
	Description    string
	DaysWaiting    int
	AssignedTo     string
	EstimatedHours float64
	NextDeadline   *time.Time
}
