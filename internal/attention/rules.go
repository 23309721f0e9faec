package attention

import (
	"fmt"
	"time"

	"lotflow/internal/collections"
)

// sourceRule is one row of the declarative classification table. Rules are
// evaluated in order per source; the first matching rule claims the vehicle.
type sourceRule struct {
	issue    Type
	match    func(v collections.Vehicle, now time.Time) bool
	priority func(v collections.Vehicle, daysWaiting int) Priority
	describe func(v collections.Vehicle, daysWaiting int) string
}

// garagePriority is shared by all garage rules: battery and repair urgency
// outrank plain waiting time.
func garagePriority(v collections.Vehicle, daysWaiting int) Priority {
	if (v.BatteryLevel != nil && *v.BatteryLevel < 20) || v.Status == "emergency_repair" {
		return PriorityUrgent
	}
	if daysWaiting > 7 || v.CustomerPriority == "high" {
		return PriorityHigh
	}
	if daysWaiting > 3 || (v.BatteryLevel != nil && *v.BatteryLevel < 50) {
		return PriorityMedium
	}
	return PriorityLow
}

// Garage rule order encodes issue precedence: waiting_parts beats low_battery
// beats repair_needed when several conditions hold at once.
var garageRules = []sourceRule{
	{
		issue: TypeWaitingParts,
		match: func(v collections.Vehicle, now time.Time) bool {
			return v.Status == "waiting_parts"
		},
		priority: garagePriority,
		describe: func(v collections.Vehicle, daysWaiting int) string {
			return fmt.Sprintf("Waiting for parts for %d days", daysWaiting)
		},
	},
	{
		issue: TypeLowBattery,
		match: func(v collections.Vehicle, now time.Time) bool {
			return v.BatteryLevel != nil && *v.BatteryLevel < 50
		},
		priority: garagePriority,
		describe: func(v collections.Vehicle, daysWaiting int) string {
			return fmt.Sprintf("Battery at %d%%, needs charging", *v.BatteryLevel)
		},
	},
	{
		issue: TypeRepairNeeded,
		match: func(v collections.Vehicle, now time.Time) bool {
			return v.Status == "needs_repair" || v.Status == "emergency_repair"
		},
		priority: garagePriority,
		describe: func(v collections.Vehicle, daysWaiting int) string {
			return fmt.Sprintf("In garage for repair, waiting %d days", daysWaiting)
		},
	},
}

var showroomRules = []sourceRule{
	{
		issue: TypeRepairNeeded,
		match: func(v collections.Vehicle, now time.Time) bool {
			return v.PDIStatus == "incomplete" || v.PDIStatus == "pending"
		},
		priority: func(v collections.Vehicle, daysWaiting int) Priority {
			if daysWaiting > 7 {
				return PriorityHigh
			}
			if daysWaiting > 3 {
				return PriorityMedium
			}
			return PriorityLow
		},
		describe: func(v collections.Vehicle, daysWaiting int) string {
			return fmt.Sprintf("PDI %s on showroom floor for %d days", v.PDIStatus, daysWaiting)
		},
	},
}

var inventoryRules = []sourceRule{
	{
		issue: TypeOverdueService,
		match: func(v collections.Vehicle, now time.Time) bool {
			return v.NextServiceDate != nil && v.NextServiceDate.Before(now)
		},
		priority: func(v collections.Vehicle, daysOverdue int) Priority {
			if daysOverdue > 30 {
				return PriorityUrgent
			}
			if daysOverdue > 14 {
				return PriorityHigh
			}
			return PriorityMedium
		},
		describe: func(v collections.Vehicle, daysOverdue int) string {
			return fmt.Sprintf("Service overdue by %d days", daysOverdue)
		},
	},
}

// daysBetween returns whole days elapsed from ref to now, floored.
func daysBetween(ref, now time.Time) int {
	if ref.IsZero() || now.Before(ref) {
		return 0
	}
	return int(now.Sub(ref) / (24 * time.Hour))
}

// garageReference picks the waiting reference date for garage and showroom
// vehicles: last update when known, arrival otherwise.
func garageReference(v collections.Vehicle) time.Time {
	if v.UpdatedAt != nil {
		return *v.UpdatedAt
	}
	if v.ArrivedAt != nil {
		return *v.ArrivedAt
	}
	return time.Time{}
}
