package workflow

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"lotflow/internal/collections"
	"lotflow/internal/costs"
	"lotflow/internal/faults"
	"lotflow/internal/ledger"
	"lotflow/internal/locations"
	"lotflow/internal/logging"
	"lotflow/internal/movement"
)

// CostRecorder receives status-change events for cost attribution. The engine
// treats it as fire-and-forget: failures are logged, never propagated.
type CostRecorder interface {
	RecordStatusChange(ctx context.Context, event costs.Event) error
}

// MoveRequest carries all caller-supplied inputs for one vehicle transition.
type MoveRequest struct {
	VehicleID    string
	Model        string
	FromLocation string
	ToLocation   string
	FromStatus   string
	ToStatus     string
	Reason       movement.Reason
	MovedBy      string
	Notes        string
	PartsUsed    []string
	ToolsUsed    []string
}

// Engine validates and applies vehicle transitions. It is the only writer of
// workflow state; analytics and attention read what it persists.
type Engine struct {
	store       *Store
	ledger      *ledger.Store
	registry    *locations.Registry
	collections *collections.Store
	costs       CostRecorder
	logger      *slog.Logger
	now         func() time.Time
}

// NewEngine wires the movement engine. costs may be nil when cost attribution
// is disabled.
func NewEngine(store *Store, led *ledger.Store, registry *locations.Registry, col *collections.Store, rec CostRecorder, logger *slog.Logger) *Engine {
	return &Engine{
		store:       store,
		ledger:      led,
		registry:    registry,
		collections: col,
		costs:       rec,
		logger:      logging.NewComponentLogger(logger, "movement"),
		now:         time.Now,
	}
}

// MoveCar records one vehicle transition: it validates the request, emits a
// cost event on status change, upserts the workflow entry with the new record
// appended to its history, duplicates the record into the movement ledger,
// and fans the placement out to the per-location collections.
//
// Returns false on failure. The write sequence is not atomic across stores:
// a false result means no guaranteed complete state change, not that no side
// effect occurred.
func (e *Engine) MoveCar(ctx context.Context, req MoveRequest) bool {
	if err := e.validate(req); err != nil {
		e.logger.Error("move rejected",
			logging.Error(err),
			logging.String(logging.FieldVehicleID, req.VehicleID),
			logging.String(logging.FieldLocation, req.ToLocation),
			logging.String(logging.FieldEventType, "move_rejected"),
		)
		return false
	}

	now := e.now().UTC()
	rec := movement.Record{
		ID:           uuid.NewString(),
		VehicleID:    req.VehicleID,
		Timestamp:    now,
		FromLocation: req.FromLocation,
		ToLocation:   req.ToLocation,
		FromStatus:   req.FromStatus,
		ToStatus:     req.ToStatus,
		Reason:       req.Reason,
		MovedBy:      req.MovedBy,
		Notes:        req.Notes,
	}

	if req.FromStatus != req.ToStatus && e.costs != nil {
		event := costs.Event{
			VehicleID:  req.VehicleID,
			Model:      req.Model,
			FromStatus: req.FromStatus,
			ToStatus:   req.ToStatus,
			Actor:      req.MovedBy,
			Notes:      req.Notes,
			PartsUsed:  req.PartsUsed,
			ToolsUsed:  req.ToolsUsed,
		}
		if err := e.costs.RecordStatusChange(ctx, event); err != nil {
			e.logger.Warn("cost attribution failed; continuing move",
				logging.Error(err),
				logging.String(logging.FieldVehicleID, req.VehicleID),
				logging.String(logging.FieldEventType, "cost_event_failed"),
			)
		}
	}

	entry, err := e.store.ApplyMove(ctx, req.Model, &rec)
	if err != nil {
		e.logger.Error("move persist failed",
			logging.Error(faults.Wrap(faults.ErrPersistence, "movement", "apply move", req.VehicleID, err)),
			logging.String(logging.FieldVehicleID, req.VehicleID),
			logging.String(logging.FieldEventType, "move_persist_failed"),
			logging.String(logging.FieldErrorHint, "check database access"),
		)
		return false
	}

	if err := e.ledger.Append(ctx, rec); err != nil {
		e.logger.Error("ledger append failed after entry persisted",
			logging.Error(faults.Wrap(faults.ErrPersistence, "movement", "ledger append", req.VehicleID, err)),
			logging.String(logging.FieldVehicleID, req.VehicleID),
			logging.String(logging.FieldEventType, "ledger_append_failed"),
			logging.String(logging.FieldErrorHint, "entry and ledger may be inconsistent"),
		)
		return false
	}

	e.fanOut(ctx, req, now)

	e.logger.Info("vehicle moved",
		logging.String(logging.FieldVehicleID, req.VehicleID),
		logging.String(logging.FieldLocation, req.ToLocation),
		logging.String(logging.FieldStage, string(entry.Stage())),
		logging.String("reason", string(req.Reason)),
		logging.String("moved_by", req.MovedBy),
	)
	return true
}

func (e *Engine) validate(req MoveRequest) error {
	if strings.TrimSpace(req.VehicleID) == "" {
		return faults.Wrap(faults.ErrValidation, "movement", "validate", "vehicle id is required", nil)
	}
	if strings.TrimSpace(req.Model) == "" {
		return faults.Wrap(faults.ErrValidation, "movement", "validate", "model is required", nil)
	}
	if _, ok := movement.ParseReason(string(req.Reason)); !ok {
		return faults.Wrap(faults.ErrValidation, "movement", "validate", "unknown reason code", nil)
	}
	if strings.TrimSpace(req.MovedBy) == "" {
		return faults.Wrap(faults.ErrValidation, "movement", "validate", "moved_by is required", nil)
	}
	// Unknown destinations are rejected rather than auto-registered; the
	// catalog is config-extensible for legitimate new locations.
	if !e.registry.Known(req.ToLocation) {
		return faults.Wrap(faults.ErrValidation, "movement", "validate", "unknown destination location "+req.ToLocation, nil)
	}
	return nil
}

// fanOut pushes the vehicle's new placement to every collection whose key the
// destination location maps to. Each write is independent and best-effort; a
// failure in one neither blocks nor rolls back another.
func (e *Engine) fanOut(ctx context.Context, req MoveRequest, now time.Time) {
	for _, key := range collections.KeysForLocation(req.ToLocation) {
		if err := e.collections.UpsertPlacement(ctx, key, req.VehicleID, req.Model, req.ToLocation, req.ToStatus, now); err != nil {
			e.logger.Warn("collection fan-out failed",
				logging.Error(err),
				logging.String(logging.FieldVehicleID, req.VehicleID),
				logging.String("collection", key),
				logging.String(logging.FieldEventType, "fanout_failed"),
			)
		}
	}
}
