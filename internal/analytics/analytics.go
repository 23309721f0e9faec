package analytics

import (
	"context"
	"log/slog"
	"time"

	"lotflow/internal/ledger"
	"lotflow/internal/logging"
	"lotflow/internal/movement"
	"lotflow/internal/stage"
	"lotflow/internal/workflow"
)

// bottleneckFactor flags a stage when its occupancy exceeds this multiple of
// the mean occupancy across occupied stages.
const bottleneckFactor = 1.5

// AttentionCounter reports how many vehicles currently need attention.
type AttentionCounter interface {
	Count(ctx context.Context) int
}

// Snapshot is one full analytics read.
type Snapshot struct {
	TotalCars            int
	StageDistribution    map[stage.Stage]int
	AvgTimeInStages      map[stage.Stage]time.Duration
	Bottlenecks          []stage.Stage
	CarsNeedingAttention int
}

// Engine computes workflow analytics.
type Engine struct {
	store     *workflow.Store
	ledger    *ledger.Store
	attention AttentionCounter
	logger    *slog.Logger
}

// NewEngine wires the analytics engine. attention may be nil.
func NewEngine(store *workflow.Store, led *ledger.Store, attention AttentionCounter, logger *slog.Logger) *Engine {
	return &Engine{
		store:     store,
		ledger:    led,
		attention: attention,
		logger:    logging.NewComponentLogger(logger, "analytics"),
	}
}

// Snapshot scans the workflow store and ledger and returns the current
// aggregates. Failures in one input degrade that part of the snapshot to its
// zero value; the rest is still reported.
func (e *Engine) Snapshot(ctx context.Context) Snapshot {
	snapshot := Snapshot{
		StageDistribution: make(map[stage.Stage]int),
		AvgTimeInStages:   make(map[stage.Stage]time.Duration),
	}

	entries, err := e.store.ListEntries(ctx)
	if err != nil {
		e.logger.Error("stage distribution scan failed",
			logging.Error(err),
			logging.String(logging.FieldEventType, "analytics_scan_failed"),
		)
	} else {
		snapshot.TotalCars = len(entries)
		for _, entry := range entries {
			snapshot.StageDistribution[entry.Stage()]++
		}
		snapshot.Bottlenecks = bottlenecks(snapshot.StageDistribution)
	}

	records, err := e.ledger.All(ctx)
	if err != nil {
		e.logger.Error("ledger scan failed",
			logging.Error(err),
			logging.String(logging.FieldEventType, "analytics_scan_failed"),
		)
	} else {
		snapshot.AvgTimeInStages = averageDwellTimes(records)
	}

	if e.attention != nil {
		snapshot.CarsNeedingAttention = e.attention.Count(ctx)
	}

	return snapshot
}

// averageDwellTimes computes, per stage, the mean time vehicles spent in that
// stage. The dwell between two consecutive records of one vehicle is
// attributed to the stage the first record moved the vehicle into.
func averageDwellTimes(records []movement.Record) map[stage.Stage]time.Duration {
	byVehicle := make(map[string][]movement.Record)
	for _, rec := range records {
		byVehicle[rec.VehicleID] = append(byVehicle[rec.VehicleID], rec)
	}

	sums := make(map[stage.Stage]time.Duration)
	counts := make(map[stage.Stage]int)
	for _, history := range byVehicle {
		for i := 1; i < len(history); i++ {
			prev := history[i-1]
			curr := history[i]
			delta := curr.Timestamp.Sub(prev.Timestamp)
			if delta <= 0 {
				continue
			}
			occupied := stage.Classify(prev.ToLocation, prev.ToStatus)
			sums[occupied] += delta
			counts[occupied]++
		}
	}

	averages := make(map[stage.Stage]time.Duration, len(sums))
	for st, sum := range sums {
		averages[st] = sum / time.Duration(counts[st])
	}
	return averages
}

// bottlenecks flags stages whose occupancy exceeds bottleneckFactor times the
// mean occupancy across occupied stages. Results follow workflow stage order.
func bottlenecks(distribution map[stage.Stage]int) []stage.Stage {
	occupied := 0
	total := 0
	for _, count := range distribution {
		if count > 0 {
			occupied++
			total += count
		}
	}
	if occupied == 0 {
		return nil
	}

	threshold := bottleneckFactor * float64(total) / float64(occupied)
	var flagged []stage.Stage
	for _, st := range stage.All() {
		if float64(distribution[st]) > threshold {
			flagged = append(flagged, st)
		}
	}
	return flagged
}
