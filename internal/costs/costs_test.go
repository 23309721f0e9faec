package costs_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"lotflow/internal/costs"
	"lotflow/internal/testsupport"
)

func TestPricePart(t *testing.T) {
	tests := []struct {
		name string
		want int64
	}{
		{"battery pack", 450},
		{"front brake pads", 180},
		{"winter tire", 140},
		{"cabin filter", 35},
		{"oil change kit", 60},
		{"wiper blade", 25},
		{"headlight bulb", 15},
		{"mystery widget", 50},
	}

	for _, tc := range tests {
		got := costs.PricePart(tc.name)
		if !got.Equal(decimal.NewFromInt(tc.want)) {
			t.Fatalf("PricePart(%q) = %s, want %d", tc.name, got, tc.want)
		}
	}

	if !costs.PricePart("  ").Equal(decimal.Zero) {
		t.Fatal("blank part name should price at zero")
	}
}

func TestPriceTool(t *testing.T) {
	if got := costs.PriceTool("hydraulic lift"); !got.Equal(decimal.NewFromInt(80)) {
		t.Fatalf("lift = %s", got)
	}
	if got := costs.PriceTool("diagnostic scanner"); !got.Equal(decimal.NewFromInt(65)) {
		t.Fatalf("diagnostic = %s", got)
	}
	if got := costs.PriceTool("torque wrench"); !got.Equal(decimal.NewFromInt(20)) {
		t.Fatalf("default tool = %s", got)
	}
}

func TestRecordStatusChangePersistsEntry(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	db := testsupport.MustOpenDB(t, cfg)
	ledger := costs.NewLedger(db)
	ctx := context.Background()

	event := costs.Event{
		VehicleID:  "VIN-1",
		Model:      "Falcon EV",
		FromStatus: "in_repair",
		ToStatus:   "ready",
		Actor:      "mechanic-1",
		PartsUsed:  []string{"brake pads", "oil filter"},
		ToolsUsed:  []string{"lift"},
	}
	if err := ledger.RecordStatusChange(ctx, event); err != nil {
		t.Fatalf("RecordStatusChange: %v", err)
	}

	entries, err := ledger.ByVehicle(ctx, "VIN-1")
	if err != nil {
		t.Fatalf("ByVehicle: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(entries))
	}

	entry := entries[0]
	// brake pads 180 + oil filter 35 (filter beats oil by rule order) + lift 80.
	want := decimal.NewFromInt(295)
	if !entry.Amount.Equal(want) {
		t.Fatalf("amount = %s, want %s", entry.Amount, want)
	}
	if len(entry.LineItems) != 3 {
		t.Fatalf("line items = %d, want 3", len(entry.LineItems))
	}
	if entry.FromStatus != "in_repair" || entry.ToStatus != "ready" || entry.Actor != "mechanic-1" {
		t.Fatalf("metadata mismatch: %+v", entry)
	}
}

func TestRecordStatusChangeZeroUsage(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	db := testsupport.MustOpenDB(t, cfg)
	ledger := costs.NewLedger(db)
	ctx := context.Background()

	// A bare status change still records a zero-amount entry.
	if err := ledger.RecordStatusChange(ctx, costs.Event{
		VehicleID: "VIN-1",
		ToStatus:  "in_stock",
	}); err != nil {
		t.Fatalf("RecordStatusChange: %v", err)
	}

	entries, err := ledger.ByVehicle(ctx, "VIN-1")
	if err != nil || len(entries) != 1 {
		t.Fatalf("entries: %v %d", err, len(entries))
	}
	if !entries[0].Amount.Equal(decimal.Zero) {
		t.Fatalf("amount = %s, want 0", entries[0].Amount)
	}
	if len(entries[0].LineItems) != 0 {
		t.Fatalf("line items = %d, want 0", len(entries[0].LineItems))
	}
}
