package locations

import (
	"errors"
	"testing"

	"lotflow/internal/config"
	"lotflow/internal/faults"
)

func TestRegistryBuiltins(t *testing.T) {
	reg := NewRegistry(nil)

	for _, id := range []string{"new_arrivals", "pdi_bay", "showroom_floor_1", "repair_garage", "sold_lot"} {
		if !reg.Known(id) {
			t.Fatalf("expected builtin location %q", id)
		}
	}
	if reg.Known("customer_parking") {
		t.Fatal("unexpected location customer_parking")
	}
}

func TestRegistryKnownNormalizes(t *testing.T) {
	reg := NewRegistry(nil)
	if !reg.Known("  PDI_Bay ") {
		t.Fatal("expected case-insensitive lookup")
	}
}

func TestRegistryConfigExtension(t *testing.T) {
	cfg := config.Default()
	cfg.Locations.Catalog = []config.Location{
		{ID: "overflow_lot", Name: "Overflow Lot", Type: "lot", Capacity: 40},
		{ID: "pdi_bay", Name: "PDI Bay West", Type: "garage", Capacity: 8},
	}

	reg := NewRegistry(&cfg)
	if !reg.Known("overflow_lot") {
		t.Fatal("config location not registered")
	}

	loc, err := reg.Get("pdi_bay")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if loc.Name != "PDI Bay West" || loc.Capacity != 8 {
		t.Fatalf("config override not applied: %+v", loc)
	}
}

func TestRegistryGetUnknown(t *testing.T) {
	reg := NewRegistry(nil)
	_, err := reg.Get("nowhere")
	if err == nil {
		t.Fatal("expected error for unknown location")
	}
	if !errors.Is(err, faults.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRegistryListOrdered(t *testing.T) {
	reg := NewRegistry(nil)
	list := reg.List()
	if len(list) != 9 {
		t.Fatalf("expected 9 builtin locations, got %d", len(list))
	}
	for i := 1; i < len(list); i++ {
		if list[i-1].ID >= list[i].ID {
			t.Fatalf("list not ordered by id: %s before %s", list[i-1].ID, list[i].ID)
		}
	}
}
