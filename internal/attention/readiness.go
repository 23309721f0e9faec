package attention

import (
	"strings"
	"time"

	"lotflow/internal/collections"
)

// Outlook buckets a vehicle's delivery-date countdown.
type Outlook string

const (
	OutlookCritical Outlook = "critical"
	OutlookUrgent   Outlook = "urgent"
	OutlookNormal   Outlook = "normal"
	OutlookFuture   Outlook = "future"
)

// Deduction is one row of the canonical readiness table: a fixed point
// penalty applied when its predicate holds.
type Deduction struct {
	Code    string
	Points  int
	Message string
	applies func(v collections.Vehicle) bool
}

var deductions = []Deduction{
	{
		Code:    "pdi_incomplete",
		Points:  30,
		Message: "PDI not completed",
		applies: func(v collections.Vehicle) bool {
			return v.PDIStatus == "incomplete" || v.PDIStatus == "pending"
		},
	},
	{
		Code:    "customs_unpaid",
		Points:  25,
		Message: "Customs payment outstanding",
		applies: func(v collections.Vehicle) bool {
			return v.CustomsPaid != nil && !*v.CustomsPaid
		},
	},
	{
		Code:    "low_battery",
		Points:  10,
		Message: "Battery below charging threshold",
		applies: func(v collections.Vehicle) bool {
			if !isElectrified(v.EngineType) {
				return false
			}
			return v.BatteryLevel != nil && *v.BatteryLevel < 50
		},
	},
	{
		Code:    "awaiting_parts",
		Points:  20,
		Message: "Waiting for parts",
		applies: func(v collections.Vehicle) bool {
			return v.Status == "waiting_parts"
		},
	},
	{
		Code:    "in_repair",
		Points:  15,
		Message: "Repair in progress",
		applies: func(v collections.Vehicle) bool {
			return v.Status == "in_repair" || v.Status == "emergency_repair"
		},
	},
}

// Report is the UI-facing readiness projection for one vehicle: a 100-point
// completion score with fixed deductions, plus a delivery countdown bucket.
type Report struct {
	Score   int
	Issues  []Deduction
	Outlook Outlook
}

// Readiness computes the readiness report from the canonical deduction table.
// The score is clamped at zero.
func Readiness(v collections.Vehicle, now time.Time) Report {
	report := Report{Score: 100}
	for _, d := range deductions {
		if d.applies(v) {
			report.Score -= d.Points
			report.Issues = append(report.Issues, d)
		}
	}
	if report.Score < 0 {
		report.Score = 0
	}
	report.Outlook = deliveryOutlook(v.DeliveryDate, now)
	return report
}

// deliveryOutlook buckets the delivery countdown: critical when overdue or
// within two days, urgent within a week, normal beyond, future with no date.
func deliveryOutlook(deliveryDate *time.Time, now time.Time) Outlook {
	if deliveryDate == nil {
		return OutlookFuture
	}
	remaining := deliveryDate.Sub(now)
	switch {
	case remaining <= 2*24*time.Hour:
		return OutlookCritical
	case remaining <= 7*24*time.Hour:
		return OutlookUrgent
	default:
		return OutlookNormal
	}
}

func isElectrified(engineType string) bool {
	switch strings.ToLower(strings.TrimSpace(engineType)) {
	case "ev", "rev":
		return true
	}
	return false
}
