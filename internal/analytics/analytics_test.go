package analytics_test

import (
	"context"
	"testing"
	"time"

	"lotflow/internal/analytics"
	"lotflow/internal/ledger"
	"lotflow/internal/logging"
	"lotflow/internal/stage"
	"lotflow/internal/testsupport"
	"lotflow/internal/workflow"
)

type fixedCounter int

func (f fixedCounter) Count(ctx context.Context) int { return int(f) }

type fixture struct {
	engine *analytics.Engine
	store  *workflow.Store
	ledger *ledger.Store
}

func newFixture(t *testing.T, counter analytics.AttentionCounter) *fixture {
	t.Helper()
	cfg := testsupport.NewConfig(t)
	db := testsupport.MustOpenDB(t, cfg)
	store := workflow.NewStore(db)
	led := ledger.NewStore(db)
	return &fixture{
		engine: analytics.NewEngine(store, led, counter, logging.NewNop()),
		store:  store,
		ledger: led,
	}
}

func (f *fixture) move(t *testing.T, vehicleID, to, status string, ts time.Time) {
	t.Helper()
	rec := testsupport.NewRecord(vehicleID, to, status, ts)
	if _, err := f.store.ApplyMove(context.Background(), "Falcon EV", rec); err != nil {
		t.Fatalf("ApplyMove: %v", err)
	}
	if err := f.ledger.Append(context.Background(), *rec); err != nil {
		t.Fatalf("Append: %v", err)
	}
}

func TestSnapshotEmptyStore(t *testing.T) {
	fx := newFixture(t, nil)
	snapshot := fx.engine.Snapshot(context.Background())
	if snapshot.TotalCars != 0 || len(snapshot.Bottlenecks) != 0 {
		t.Fatalf("unexpected snapshot: %+v", snapshot)
	}
}

func TestSnapshotStageDistribution(t *testing.T) {
	fx := newFixture(t, fixedCounter(2))
	now := time.Now().UTC()

	fx.move(t, "VIN-1", "pdi_bay", "pdi_pending", now)
	fx.move(t, "VIN-2", "pdi_bay", "pdi_pending", now)
	fx.move(t, "VIN-3", "main_inventory", "in_stock", now)

	snapshot := fx.engine.Snapshot(context.Background())
	if snapshot.TotalCars != 3 {
		t.Fatalf("total = %d, want 3", snapshot.TotalCars)
	}
	if snapshot.StageDistribution[stage.PDI] != 2 || snapshot.StageDistribution[stage.Inventory] != 1 {
		t.Fatalf("distribution = %+v", snapshot.StageDistribution)
	}
	if snapshot.CarsNeedingAttention != 2 {
		t.Fatalf("attention = %d, want 2", snapshot.CarsNeedingAttention)
	}
}

func TestSnapshotBottleneckDetection(t *testing.T) {
	fx := newFixture(t, nil)
	now := time.Now().UTC()

	// 10 in pdi, 2 in inventory, 2 in showroom. Mean occupancy is 14/3, so
	// only pdi exceeds 1.5x the mean.
	for i := 0; i < 10; i++ {
		fx.move(t, vin("P", i), "pdi_bay", "pdi_pending", now)
	}
	for i := 0; i < 2; i++ {
		fx.move(t, vin("I", i), "main_inventory", "in_stock", now)
		fx.move(t, vin("S", i), "showroom_floor_1", "on_display", now)
	}

	snapshot := fx.engine.Snapshot(context.Background())
	if len(snapshot.Bottlenecks) != 1 || snapshot.Bottlenecks[0] != stage.PDI {
		t.Fatalf("bottlenecks = %v, want [pdi]", snapshot.Bottlenecks)
	}
}

func TestSnapshotReportsEveryBottleneck(t *testing.T) {
	fx := newFixture(t, nil)
	now := time.Now().UTC()

	// 8 in pdi, 8 in showroom, 1 in inventory, 1 in repair. Mean occupancy
	// is 4.5, so both pdi and showroom exceed 1.5x the mean and both must
	// be flagged, in workflow order.
	for i := 0; i < 8; i++ {
		fx.move(t, vin("P", i), "pdi_bay", "pdi_pending", now)
		fx.move(t, vin("S", i), "showroom_floor_1", "on_display", now)
	}
	fx.move(t, "VIN-I0", "main_inventory", "in_stock", now)
	fx.move(t, "VIN-R0", "garage", "in_repair", now)

	snapshot := fx.engine.Snapshot(context.Background())
	if len(snapshot.Bottlenecks) != 2 {
		t.Fatalf("bottlenecks = %v, want [pdi showroom]", snapshot.Bottlenecks)
	}
	if snapshot.Bottlenecks[0] != stage.PDI || snapshot.Bottlenecks[1] != stage.Showroom {
		t.Fatalf("bottlenecks = %v, want [pdi showroom]", snapshot.Bottlenecks)
	}
}

func TestSnapshotNoBottleneckWhenBalanced(t *testing.T) {
	fx := newFixture(t, nil)
	now := time.Now().UTC()

	fx.move(t, "VIN-1", "pdi_bay", "pdi_pending", now)
	fx.move(t, "VIN-2", "main_inventory", "in_stock", now)
	fx.move(t, "VIN-3", "showroom_floor_1", "on_display", now)

	snapshot := fx.engine.Snapshot(context.Background())
	if len(snapshot.Bottlenecks) != 0 {
		t.Fatalf("bottlenecks = %v, want none", snapshot.Bottlenecks)
	}
}

func TestSnapshotAverageDwellTimes(t *testing.T) {
	fx := newFixture(t, nil)
	base := time.Now().UTC().Add(-48 * time.Hour).Truncate(time.Second)

	// VIN-1 spends 2h in pdi, then 4h in inventory before moving on.
	fx.move(t, "VIN-1", "pdi_bay", "pdi_pending", base)
	fx.move(t, "VIN-1", "main_inventory", "in_stock", base.Add(2*time.Hour))
	fx.move(t, "VIN-1", "showroom_floor_1", "on_display", base.Add(6*time.Hour))

	// VIN-2 spends 4h in pdi.
	fx.move(t, "VIN-2", "pdi_bay", "pdi_pending", base)
	fx.move(t, "VIN-2", "main_inventory", "in_stock", base.Add(4*time.Hour))

	snapshot := fx.engine.Snapshot(context.Background())

	// PDI dwell: (2h + 4h) / 2 records.
	if got := snapshot.AvgTimeInStages[stage.PDI]; got != 3*time.Hour {
		t.Fatalf("pdi dwell = %v, want 3h", got)
	}
	if got := snapshot.AvgTimeInStages[stage.Inventory]; got != 4*time.Hour {
		t.Fatalf("inventory dwell = %v, want 4h", got)
	}
	// Nobody has left the showroom yet; open-ended dwell is not counted.
	if _, ok := snapshot.AvgTimeInStages[stage.Showroom]; ok {
		t.Fatal("showroom dwell should be absent")
	}
}

func vin(prefix string, i int) string {
	return "VIN-" + prefix + string(rune('0'+i))
}
