package movement

import (
	"strings"
	"time"
)

// Reason is the enumerated justification attached to a movement record.
type Reason string

const (
	ReasonArrival         Reason = "arrival"
	ReasonStageComplete   Reason = "stage_complete"
	ReasonRepairRequired  Reason = "repair_required"
	ReasonCustomerRequest Reason = "customer_request"
	ReasonDelivery        Reason = "delivery"
	ReasonSold            Reason = "sold"
	ReasonCorrection      Reason = "correction"
)

var allReasons = []Reason{
	ReasonArrival,
	ReasonStageComplete,
	ReasonRepairRequired,
	ReasonCustomerRequest,
	ReasonDelivery,
	ReasonSold,
	ReasonCorrection,
}

var reasonSet = func() map[Reason]struct{} {
	set := make(map[Reason]struct{}, len(allReasons))
	for _, reason := range allReasons {
		set[reason] = struct{}{}
	}
	return set
}()

// AllReasons returns the ordered list of known reason codes.
func AllReasons() []Reason {
	cp := make([]Reason, len(allReasons))
	copy(cp, allReasons)
	return cp
}

// ParseReason converts a string into a known Reason.
func ParseReason(value string) (Reason, bool) {
	normalized := Reason(strings.ToLower(strings.TrimSpace(value)))
	if normalized == "" {
		return "", false
	}
	_, ok := reasonSet[normalized]
	return normalized, ok
}

// Record captures one location/status transition for one vehicle. Records are
// immutable once appended: never edited, never removed.
type Record struct {
	ID           string
	VehicleID    string
	Seq          int64
	Timestamp    time.Time
	FromLocation string
	ToLocation   string
	FromStatus   string
	ToStatus     string
	Reason       Reason
	MovedBy      string
	Notes        string
}
