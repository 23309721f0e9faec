package workflow_test

import (
	"context"
	"errors"
	"testing"

	"lotflow/internal/collections"
	"lotflow/internal/costs"
	"lotflow/internal/ledger"
	"lotflow/internal/locations"
	"lotflow/internal/logging"
	"lotflow/internal/movement"
	"lotflow/internal/stage"
	"lotflow/internal/testsupport"
	"lotflow/internal/workflow"
)

type recordingCosts struct {
	events []costs.Event
	err    error
}

func (r *recordingCosts) RecordStatusChange(ctx context.Context, event costs.Event) error {
	if r.err != nil {
		return r.err
	}
	r.events = append(r.events, event)
	return nil
}

type engineFixture struct {
	engine      *workflow.Engine
	store       *workflow.Store
	ledger      *ledger.Store
	collections *collections.Store
	costs       *recordingCosts
}

func newEngine(t *testing.T) *engineFixture {
	t.Helper()
	cfg := testsupport.NewConfig(t)
	db := testsupport.MustOpenDB(t, cfg)

	store := workflow.NewStore(db)
	led := ledger.NewStore(db)
	col := collections.NewStore(db)
	rec := &recordingCosts{}
	engine := workflow.NewEngine(store, led, locations.NewRegistry(cfg), col, rec, logging.NewNop())

	return &engineFixture{engine: engine, store: store, ledger: led, collections: col, costs: rec}
}

func moveRequest(vehicleID, to, toStatus string) workflow.MoveRequest {
	return workflow.MoveRequest{
		VehicleID:    vehicleID,
		Model:        "Falcon EV",
		FromLocation: "transport",
		ToLocation:   to,
		FromStatus:   "in_transit",
		ToStatus:     toStatus,
		Reason:       movement.ReasonArrival,
		MovedBy:      "operator-1",
	}
}

func TestMoveCarCreatesEntryAndHistory(t *testing.T) {
	fx := newEngine(t)
	ctx := context.Background()

	if !fx.engine.MoveCar(ctx, moveRequest("VIN-1", "pdi_bay", "pdi_pending")) {
		t.Fatal("move failed")
	}

	entry, err := fx.store.GetEntry(ctx, "VIN-1")
	if err != nil || entry == nil {
		t.Fatalf("entry missing: %v", err)
	}
	if entry.Stage() != stage.PDI {
		t.Fatalf("stage = %s, want pdi", entry.Stage())
	}

	length, err := fx.store.HistoryLength(ctx, "VIN-1")
	if err != nil || length != 1 {
		t.Fatalf("history length = %d err = %v, want 1", length, err)
	}
}

func TestMoveCarSecondMoveExtendsHistory(t *testing.T) {
	fx := newEngine(t)
	ctx := context.Background()

	if !fx.engine.MoveCar(ctx, moveRequest("VIN-1", "pdi_bay", "pdi_pending")) {
		t.Fatal("first move failed")
	}
	req := moveRequest("VIN-1", "main_inventory", "in_stock")
	req.Reason = movement.ReasonStageComplete
	if !fx.engine.MoveCar(ctx, req) {
		t.Fatal("second move failed")
	}

	entry, err := fx.store.GetEntry(ctx, "VIN-1")
	if err != nil || entry == nil {
		t.Fatalf("entry missing: %v", err)
	}
	if entry.Stage() != stage.Inventory {
		t.Fatalf("stage = %s, want inventory", entry.Stage())
	}
	length, _ := fx.store.HistoryLength(ctx, "VIN-1")
	if length != 2 {
		t.Fatalf("history length = %d, want 2", length)
	}
}

func TestMoveCarDoesNotDeduplicate(t *testing.T) {
	fx := newEngine(t)
	ctx := context.Background()

	// Two identical requests both record; history is append-only with no
	// idempotency key.
	req := moveRequest("VIN-1", "pdi_bay", "pdi_pending")
	if !fx.engine.MoveCar(ctx, req) || !fx.engine.MoveCar(ctx, req) {
		t.Fatal("expected both moves to succeed")
	}

	length, _ := fx.store.HistoryLength(ctx, "VIN-1")
	if length != 2 {
		t.Fatalf("history length = %d, want 2", length)
	}
	records, err := fx.ledger.ByVehicle(ctx, "VIN-1")
	if err != nil || len(records) != 2 {
		t.Fatalf("ledger records = %d err = %v, want 2", len(records), err)
	}
}

func TestMoveCarRejections(t *testing.T) {
	fx := newEngine(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*workflow.MoveRequest)
	}{
		{"empty vehicle id", func(r *workflow.MoveRequest) { r.VehicleID = " " }},
		{"empty model", func(r *workflow.MoveRequest) { r.Model = "" }},
		{"unknown reason", func(r *workflow.MoveRequest) { r.Reason = "teleport" }},
		{"empty moved by", func(r *workflow.MoveRequest) { r.MovedBy = "" }},
		{"unknown destination", func(r *workflow.MoveRequest) { r.ToLocation = "customer_parking" }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := moveRequest("VIN-1", "pdi_bay", "pdi_pending")
			tc.mutate(&req)
			if fx.engine.MoveCar(ctx, req) {
				t.Fatal("expected rejection")
			}
		})
	}

	if length, _ := fx.store.HistoryLength(ctx, "VIN-1"); length != 0 {
		t.Fatalf("rejected moves left %d history records", length)
	}
}

func TestMoveCarDuplicatesIntoLedger(t *testing.T) {
	fx := newEngine(t)
	ctx := context.Background()

	if !fx.engine.MoveCar(ctx, moveRequest("VIN-1", "pdi_bay", "pdi_pending")) {
		t.Fatal("move failed")
	}

	history, err := fx.store.History(ctx, "VIN-1", 0, 0)
	if err != nil || len(history) != 1 {
		t.Fatalf("history: %v", err)
	}
	records, err := fx.ledger.ByVehicle(ctx, "VIN-1")
	if err != nil || len(records) != 1 {
		t.Fatalf("ledger: %v", err)
	}
	if records[0].ID != history[0].ID {
		t.Fatalf("ledger record %s does not mirror history record %s", records[0].ID, history[0].ID)
	}
}

func TestMoveCarEmitsCostEventOnStatusChange(t *testing.T) {
	fx := newEngine(t)
	ctx := context.Background()

	req := moveRequest("VIN-1", "repair_garage", "in_repair")
	req.PartsUsed = []string{"brake pads"}
	if !fx.engine.MoveCar(ctx, req) {
		t.Fatal("move failed")
	}
	if len(fx.costs.events) != 1 {
		t.Fatalf("cost events = %d, want 1", len(fx.costs.events))
	}
	if fx.costs.events[0].ToStatus != "in_repair" || len(fx.costs.events[0].PartsUsed) != 1 {
		t.Fatalf("unexpected cost event: %+v", fx.costs.events[0])
	}

	// No status change, no cost event.
	same := moveRequest("VIN-1", "repair_garage", "in_repair")
	same.FromStatus = "in_repair"
	if !fx.engine.MoveCar(ctx, same) {
		t.Fatal("second move failed")
	}
	if len(fx.costs.events) != 1 {
		t.Fatalf("cost events = %d after status-neutral move, want 1", len(fx.costs.events))
	}
}

func TestMoveCarSurvivesCostFailure(t *testing.T) {
	fx := newEngine(t)
	fx.costs.err = errors.New("pricing backend down")
	ctx := context.Background()

	if !fx.engine.MoveCar(ctx, moveRequest("VIN-1", "pdi_bay", "pdi_pending")) {
		t.Fatal("move should succeed despite cost failure")
	}
	if length, _ := fx.store.HistoryLength(ctx, "VIN-1"); length != 1 {
		t.Fatal("move not recorded")
	}
}

func TestMoveCarFansOutToCollections(t *testing.T) {
	fx := newEngine(t)
	ctx := context.Background()

	if !fx.engine.MoveCar(ctx, moveRequest("VIN-1", "repair_garage", "in_repair")) {
		t.Fatal("move failed")
	}

	vehicles, err := fx.collections.Vehicles(ctx, collections.KeyGarage)
	if err != nil {
		t.Fatalf("Vehicles: %v", err)
	}
	if len(vehicles) != 1 || vehicles[0].ID != "VIN-1" || vehicles[0].Status != "in_repair" {
		t.Fatalf("fan-out missing: %+v", vehicles)
	}

	if !fx.engine.MoveCar(ctx, moveRequest("VIN-2", "showroom_floor_2", "on_display")) {
		t.Fatal("second move failed")
	}
	floor2, err := fx.collections.Vehicles(ctx, collections.KeyShowroomFloor2)
	if err != nil || len(floor2) != 1 {
		t.Fatalf("floor 2 fan-out: %v %+v", err, floor2)
	}
}
