// Package attention computes the globally ranked list of vehicles that need
// action. It merges three independent per-location vehicle sources, each with
// its own declarative classification rules, and exposes the UI readiness
// projection over the same vehicle records.
package attention

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"lotflow/internal/collections"
	"lotflow/internal/logging"
)

type source struct {
	key      string
	rules    []sourceRule
	refDate  func(v collections.Vehicle) time.Time
	deadline func(v collections.Vehicle) *time.Time
}

var sources = []source{
	{
		key:     collections.KeyGarage,
		rules:   garageRules,
		refDate: garageReference,
		deadline: func(v collections.Vehicle) *time.Time {
			return nil
		},
	},
	{
		key:     collections.KeyShowroomFloor1,
		rules:   showroomRules,
		refDate: garageReference,
		deadline: func(v collections.Vehicle) *time.Time {
			return v.DeliveryDate
		},
	},
	{
		key:     collections.KeyShowroomFloor2,
		rules:   showroomRules,
		refDate: garageReference,
		deadline: func(v collections.Vehicle) *time.Time {
			return v.DeliveryDate
		},
	},
	{
		key:   collections.KeyMainInventory,
		rules: inventoryRules,
		refDate: func(v collections.Vehicle) time.Time {
			if v.NextServiceDate != nil {
				return *v.NextServiceDate
			}
			return time.Time{}
		},
		deadline: func(v collections.Vehicle) *time.Time {
			return v.NextServiceDate
		},
	},
}

// Engine scans the per-location sources and ranks attention items.
type Engine struct {
	collections *collections.Store
	logger      *slog.Logger
	now         func() time.Time
}

// NewEngine wires the attention engine.
func NewEngine(col *collections.Store, logger *slog.Logger) *Engine {
	return &Engine{
		collections: col,
		logger:      logging.NewComponentLogger(logger, "attention"),
		now:         time.Now,
	}
}

// List recomputes the attention list from a fresh scan of every source.
// Sources that fail to load degrade to an empty contribution; the remaining
// sources are still reported. Items are sorted by priority rank descending,
// ties broken by days waiting descending.
func (e *Engine) List(ctx context.Context) []Item {
	now := e.now().UTC()
	var items []Item

	for _, src := range sources {
		vehicles, err := e.collections.Vehicles(ctx, src.key)
		if err != nil {
			e.logger.Error("attention source scan failed",
				logging.Error(err),
				logging.String("collection", src.key),
				logging.String(logging.FieldEventType, "attention_scan_failed"),
			)
			continue
		}
		for _, vehicle := range vehicles {
			if item, ok := classify(src, vehicle, now); ok {
				items = append(items, item)
			}
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Priority.Rank() != items[j].Priority.Rank() {
			return items[i].Priority.Rank() > items[j].Priority.Rank()
		}
		return items[i].DaysWaiting > items[j].DaysWaiting
	})
	return items
}

// Count returns the current number of attention items.
func (e *Engine) Count(ctx context.Context) int {
	return len(e.List(ctx))
}

func classify(src source, vehicle collections.Vehicle, now time.Time) (Item, bool) {
	for _, rule := range src.rules {
		if !rule.match(vehicle, now) {
			continue
		}
		daysWaiting := daysBetween(src.refDate(vehicle), now)
		item := Item{
			VehicleID:    vehicle.ID,
			Model:        vehicle.Model,
			Location:     vehicle.Location,
			Type:         rule.issue,
			Priority:     rule.priority(vehicle, daysWaiting),
			Description:  rule.describe(vehicle, daysWaiting),
			DaysWaiting:  daysWaiting,
			AssignedTo:   vehicle.AssignedTo,
			NextDeadline: src.deadline(vehicle),
		}
		if vehicle.Location == "" {
			item.Location = src.key
		}
		if vehicle.EstimatedHours != nil {
			item.EstimatedHours = *vehicle.EstimatedHours
		}
		return item, true
	}
	return Item{}, false
}
