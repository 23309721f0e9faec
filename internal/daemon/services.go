package daemon

import (
	"errors"
	"log/slog"

	"lotflow/internal/analytics"
	"lotflow/internal/attention"
	"lotflow/internal/collections"
	"lotflow/internal/config"
	"lotflow/internal/costs"
	"lotflow/internal/ledger"
	"lotflow/internal/locations"
	"lotflow/internal/notify"
	"lotflow/internal/storage"
	"lotflow/internal/workflow"
)

// Services is the composition root shared by the daemon and the one-shot CLI
// commands. Everything hangs off one embedded database handle.
type Services struct {
	Config      *config.Config
	DB          *storage.DB
	Registry    *locations.Registry
	Store       *workflow.Store
	Ledger      *ledger.Store
	Collections *collections.Store
	Costs       *costs.Ledger
	Workflow    *workflow.Engine
	Attention   *attention.Engine
	Analytics   *analytics.Engine
	Publisher   notify.Publisher
}

// NewServices opens the database and wires every engine against it.
func NewServices(cfg *config.Config, logger *slog.Logger) (*Services, error) {
	if cfg == nil || logger == nil {
		return nil, errors.New("services require config and logger")
	}

	db, err := storage.Open(cfg)
	if err != nil {
		return nil, err
	}

	registry := locations.NewRegistry(cfg)
	store := workflow.NewStore(db)
	led := ledger.NewStore(db)
	col := collections.NewStore(db)
	costLedger := costs.NewLedger(db)
	attentionEngine := attention.NewEngine(col, logger)

	return &Services{
		Config:      cfg,
		DB:          db,
		Registry:    registry,
		Store:       store,
		Ledger:      led,
		Collections: col,
		Costs:       costLedger,
		Workflow:    workflow.NewEngine(store, led, registry, col, costLedger, logger),
		Attention:   attentionEngine,
		Analytics:   analytics.NewEngine(store, led, attentionEngine, logger),
		Publisher:   notify.NewPublisher(cfg, db, logger),
	}, nil
}

// Close releases the database handle.
func (s *Services) Close() error {
	if s == nil || s.DB == nil {
		return nil
	}
	return s.DB.Close()
}
