package stage

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		location string
		status   string
		want     Stage
	}{
		{"new arrival lot", "new_arrivals", "", Arrival},
		{"arrived status anywhere", "customer_parking", "arrived", Arrival},
		{"pdi bay", "pdi_bay", "", PDI},
		{"pdi status wins over location", "customer_parking", "pdi_pending", PDI},
		{"inventory garage is inventory not repair", "inventory_garage", "", Inventory},
		{"main inventory", "main_inventory", "in_stock", Inventory},
		{"showroom floor", "showroom_floor_1", "on_display", Showroom},
		{"bare floor location", "floor_3", "", Showroom},
		{"repair garage", "repair_garage", "", Repair},
		{"repair by status", "customer_parking", "in_repair", Repair},
		{"waiting parts is repair", "customer_parking", "waiting_parts", Repair},
		{"delivery bay", "delivery_bay", "", Delivery},
		{"ready for delivery status", "customer_parking", "ready_for_delivery", Delivery},
		{"sold lot", "sold_lot", "", Sold},
		{"delivered status", "customer_parking", "delivered", Sold},
		{"unmatched falls back to inventory", "customer_parking", "parked", Inventory},
		{"normalizes case and whitespace", "  PDI_Bay  ", "", PDI},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Classify(tc.location, tc.status)
			if got != tc.want {
				t.Fatalf("Classify(%q, %q) = %s, want %s", tc.location, tc.status, got, tc.want)
			}
		})
	}
}

func TestClassifyArrivalBeatsPDI(t *testing.T) {
	// A vehicle marked arrived in the PDI bay still counts as arrival; rule
	// order places arrival first.
	if got := Classify("new_arrivals", "pdi_pending"); got != Arrival {
		t.Fatalf("expected arrival, got %s", got)
	}
}

func TestAllCoversEveryStage(t *testing.T) {
	stages := All()
	if len(stages) != 7 {
		t.Fatalf("expected 7 stages, got %d", len(stages))
	}
	if stages[0] != Arrival || stages[len(stages)-1] != Sold {
		t.Fatalf("unexpected stage ordering: %v", stages)
	}
}

func TestTitle(t *testing.T) {
	if got := PDI.Title(); got != "PDI" {
		t.Fatalf("PDI title = %q", got)
	}
	if got := Showroom.Title(); got != "Showroom" {
		t.Fatalf("Showroom title = %q", got)
	}
	if got := Stage("").Title(); got != "" {
		t.Fatalf("empty stage title = %q", got)
	}
}
