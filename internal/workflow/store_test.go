package workflow_test

import (
	"context"
	"testing"
	"time"

	"lotflow/internal/stage"
	"lotflow/internal/testsupport"
	"lotflow/internal/workflow"
)

func newStore(t *testing.T) *workflow.Store {
	t.Helper()
	cfg := testsupport.NewConfig(t)
	db := testsupport.MustOpenDB(t, cfg)
	return workflow.NewStore(db)
}

func TestGetEntryMissingIsNil(t *testing.T) {
	store := newStore(t)
	entry, err := store.GetEntry(context.Background(), "VIN-404")
	if err != nil {
		t.Fatalf("GetEntry: %v", err)
	}
	if entry != nil {
		t.Fatalf("expected nil entry, got %+v", entry)
	}
}

func TestApplyMoveCreatesEntry(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Millisecond)

	rec := testsupport.NewRecord("VIN-1", "pdi_bay", "pdi_pending", now)
	entry, err := store.ApplyMove(ctx, "Falcon EV", rec)
	if err != nil {
		t.Fatalf("ApplyMove: %v", err)
	}

	if rec.Seq != 1 {
		t.Fatalf("first record seq = %d, want 1", rec.Seq)
	}
	if entry.VehicleID != "VIN-1" || entry.Model != "Falcon EV" {
		t.Fatalf("unexpected entry: %+v", entry)
	}
	if entry.Priority != workflow.PriorityMedium {
		t.Fatalf("new entry priority = %s, want medium", entry.Priority)
	}
	if entry.CurrentLocation != "pdi_bay" || entry.CurrentStatus != "pdi_pending" {
		t.Fatalf("live state not updated: %+v", entry)
	}
	if entry.Stage() != stage.PDI {
		t.Fatalf("stage = %s, want pdi", entry.Stage())
	}

	length, err := store.HistoryLength(ctx, "VIN-1")
	if err != nil {
		t.Fatalf("HistoryLength: %v", err)
	}
	if length != 1 {
		t.Fatalf("history length = %d, want 1", length)
	}
}

func TestApplyMoveUpdatesExistingEntry(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()
	base := time.Now().UTC().Truncate(time.Millisecond)

	if _, err := store.ApplyMove(ctx, "Falcon EV", testsupport.NewRecord("VIN-1", "pdi_bay", "pdi_pending", base)); err != nil {
		t.Fatalf("first move: %v", err)
	}

	second := testsupport.NewRecord("VIN-1", "main_inventory", "in_stock", base.Add(time.Hour))
	// Model on later moves must not overwrite the original.
	entry, err := store.ApplyMove(ctx, "Different Model", second)
	if err != nil {
		t.Fatalf("second move: %v", err)
	}

	if second.Seq != 2 {
		t.Fatalf("second record seq = %d, want 2", second.Seq)
	}
	if entry.Model != "Falcon EV" {
		t.Fatalf("model overwritten on update: %q", entry.Model)
	}
	if entry.Stage() != stage.Inventory {
		t.Fatalf("stage = %s, want inventory", entry.Stage())
	}

	length, err := store.HistoryLength(ctx, "VIN-1")
	if err != nil {
		t.Fatalf("HistoryLength: %v", err)
	}
	if length != 2 {
		t.Fatalf("history length = %d, want 2", length)
	}
}

func TestHistoryPagination(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()
	base := time.Now().UTC().Truncate(time.Millisecond)

	destinations := []string{"pdi_bay", "main_inventory", "showroom_floor_1", "delivery_bay"}
	for i, dest := range destinations {
		rec := testsupport.NewRecord("VIN-1", dest, "moving", base.Add(time.Duration(i)*time.Minute))
		if _, err := store.ApplyMove(ctx, "Falcon EV", rec); err != nil {
			t.Fatalf("move %d: %v", i, err)
		}
	}

	page, err := store.History(ctx, "VIN-1", 0, 2)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(page) != 2 || page[0].Seq != 1 || page[1].Seq != 2 {
		t.Fatalf("unexpected first page: %+v", page)
	}

	rest, err := store.History(ctx, "VIN-1", page[len(page)-1].Seq, 0)
	if err != nil {
		t.Fatalf("History rest: %v", err)
	}
	if len(rest) != 2 || rest[0].Seq != 3 || rest[1].Seq != 4 {
		t.Fatalf("unexpected second page: %+v", rest)
	}
	if rest[1].ToLocation != "delivery_bay" {
		t.Fatalf("records out of order: %+v", rest)
	}
}

func TestCountEntries(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()
	base := time.Now().UTC()

	for _, id := range []string{"VIN-1", "VIN-2", "VIN-3"} {
		if _, err := store.ApplyMove(ctx, "Falcon EV", testsupport.NewRecord(id, "new_arrivals", "arrived", base)); err != nil {
			t.Fatalf("move %s: %v", id, err)
		}
	}

	count, err := store.CountEntries(ctx)
	if err != nil {
		t.Fatalf("CountEntries: %v", err)
	}
	if count != 3 {
		t.Fatalf("count = %d, want 3", count)
	}
}

func TestParsePriority(t *testing.T) {
	cases := []struct {
		input string
		want  workflow.Priority
		ok    bool
	}{
		{"low", workflow.PriorityLow, true},
		{"  High ", workflow.PriorityHigh, true},
		{"MEDIUM", workflow.PriorityMedium, true},
		{"critical", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, ok := workflow.ParsePriority(tc.input)
		if got != tc.want || ok != tc.ok {
			t.Fatalf("ParsePriority(%q) = %q, %v; want %q, %v", tc.input, got, ok, tc.want, tc.ok)
		}
	}
}

func TestSetPriority(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()
	now := time.Now().UTC()

	if _, err := store.ApplyMove(ctx, "Falcon EV", testsupport.NewRecord("VIN-1", "garage", "in_repair", now)); err != nil {
		t.Fatalf("ApplyMove: %v", err)
	}

	if err := store.SetPriority(ctx, "VIN-1", workflow.PriorityHigh); err != nil {
		t.Fatalf("SetPriority: %v", err)
	}
	entry, err := store.GetEntry(ctx, "VIN-1")
	if err != nil {
		t.Fatalf("GetEntry: %v", err)
	}
	if entry.Priority != workflow.PriorityHigh {
		t.Fatalf("priority = %q, want high", entry.Priority)
	}

	// A later move keeps the assigned priority.
	if _, err := store.ApplyMove(ctx, "Falcon EV", testsupport.NewRecord("VIN-1", "main_inventory", "in_stock", now.Add(time.Hour))); err != nil {
		t.Fatalf("second move: %v", err)
	}
	entry, err = store.GetEntry(ctx, "VIN-1")
	if err != nil {
		t.Fatalf("GetEntry after move: %v", err)
	}
	if entry.Priority != workflow.PriorityHigh {
		t.Fatalf("priority after move = %q, want high", entry.Priority)
	}

	if err := store.SetPriority(ctx, "VIN-404", workflow.PriorityLow); err == nil {
		t.Fatal("expected error for untracked vehicle")
	}
}
