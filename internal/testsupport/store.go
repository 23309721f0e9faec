package testsupport

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"lotflow/internal/config"
	"lotflow/internal/movement"
	"lotflow/internal/storage"
)

// MustOpenDB opens the embedded store for tests and registers cleanup.
func MustOpenDB(t testing.TB, cfg *config.Config) *storage.DB {
	t.Helper()

	db, err := storage.Open(cfg)
	if err != nil {
		t.Fatalf("storage.Open: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})
	return db
}

// NewRecord builds a movement record for tests with sensible defaults.
func NewRecord(vehicleID, toLocation, toStatus string, ts time.Time) *movement.Record {
	return &movement.Record{
		ID:           uuid.NewString(),
		VehicleID:    vehicleID,
		Timestamp:    ts,
		FromLocation: "transport",
		FromStatus:   "in_transit",
		ToLocation:   toLocation,
		ToStatus:     toStatus,
		Reason:       movement.ReasonArrival,
		MovedBy:      "test-operator",
	}
}

// Ctx returns a context canceled on test cleanup.
func Ctx(t testing.TB) context.Context {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return ctx
}
