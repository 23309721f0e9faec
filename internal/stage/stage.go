package stage

import "strings"

// Stage is the coarse phase of a vehicle's dealership lifecycle.
type Stage string

const (
	Arrival   Stage = "arrival"
	PDI       Stage = "pdi"
	Inventory Stage = "inventory"
	Showroom  Stage = "showroom"
	Repair    Stage = "repair"
	Delivery  Stage = "delivery"
	Sold      Stage = "sold"
)

// All returns the known stages in workflow order.
func All() []Stage {
	return []Stage{Arrival, PDI, Inventory, Showroom, Repair, Delivery, Sold}
}

type rule struct {
	stage Stage
	match func(location, status string) bool
}

// Rule order matters: inventory_garage must classify as inventory, not repair,
// so the inventory rule precedes the garage rule. First match wins.
var rules = []rule{
	{Arrival, func(loc, status string) bool {
		return strings.Contains(loc, "arrival") || status == "arrived"
	}},
	{PDI, func(loc, status string) bool {
		return strings.Contains(loc, "pdi") || strings.Contains(status, "pdi")
	}},
	{Inventory, func(loc, status string) bool {
		return strings.Contains(loc, "inventory")
	}},
	{Showroom, func(loc, status string) bool {
		return strings.Contains(loc, "showroom") || strings.Contains(loc, "floor")
	}},
	{Repair, func(loc, status string) bool {
		if strings.Contains(loc, "garage") {
			return true
		}
		switch status {
		case "needs_repair", "in_repair", "emergency_repair", "waiting_parts":
			return true
		}
		return false
	}},
	{Delivery, func(loc, status string) bool {
		return strings.Contains(loc, "delivery") || status == "ready_for_delivery"
	}},
	{Sold, func(loc, status string) bool {
		return strings.Contains(loc, "sold") || status == "sold" || status == "delivered"
	}},
}

// Classify maps a (location, status) pair to its workflow stage. Unmatched
// inputs fall back to Inventory.
func Classify(location, status string) Stage {
	loc := strings.ToLower(strings.TrimSpace(location))
	st := strings.ToLower(strings.TrimSpace(status))
	for _, r := range rules {
		if r.match(loc, st) {
			return r.stage
		}
	}
	return Inventory
}

// Title returns a human-readable label for CLI output.
func (s Stage) Title() string {
	switch {
	case s == PDI:
		return "PDI"
	case s == "":
		return ""
	default:
		return strings.ToUpper(string(s[:1])) + string(s[1:])
	}
}
