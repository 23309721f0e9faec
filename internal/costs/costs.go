package costs

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"lotflow/internal/storage"
)

// Event is the payload the movement engine emits on a status change.
type Event struct {
	VehicleID  string
	Model      string
	FromStatus string
	ToStatus   string
	Actor      string
	Notes      string
	PartsUsed  []string
	ToolsUsed  []string
}

// LineItem is one priced part or tool within a cost entry.
type LineItem struct {
	Kind   string          `json:"kind"`
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

// Entry is a persisted cost ledger row.
type Entry struct {
	ID         string
	VehicleID  string
	Model      string
	FromStatus string
	ToStatus   string
	Actor      string
	Notes      string
	Amount     decimal.Decimal
	LineItems  []LineItem
	CreatedAt  time.Time
}

type pricingRule struct {
	keyword string
	amount  decimal.Decimal
}

// Keyword pricing is a heuristic, matched by substring, first hit wins.
// Keep rules ordered from specific to generic.
var partPricing = []pricingRule{
	{"battery", decimal.NewFromInt(450)},
	{"brake", decimal.NewFromInt(180)},
	{"tire", decimal.NewFromInt(140)},
	{"filter", decimal.NewFromInt(35)},
	{"oil", decimal.NewFromInt(60)},
	{"wiper", decimal.NewFromInt(25)},
	{"bulb", decimal.NewFromInt(15)},
}

var toolPricing = []pricingRule{
	{"lift", decimal.NewFromInt(80)},
	{"diagnostic", decimal.NewFromInt(65)},
	{"scanner", decimal.NewFromInt(65)},
	{"charger", decimal.NewFromInt(40)},
}

var (
	defaultPartCost = decimal.NewFromInt(50)
	defaultToolCost = decimal.NewFromInt(20)
)

// PricePart returns the heuristic cost of a named part.
func PricePart(name string) decimal.Decimal {
	return price(name, partPricing, defaultPartCost)
}

// PriceTool returns the heuristic cost of a named tool usage.
func PriceTool(name string) decimal.Decimal {
	return price(name, toolPricing, defaultToolCost)
}

func price(name string, rules []pricingRule, fallback decimal.Decimal) decimal.Decimal {
	normalized := strings.ToLower(strings.TrimSpace(name))
	if normalized == "" {
		return decimal.Zero
	}
	for _, rule := range rules {
		if strings.Contains(normalized, rule.keyword) {
			return rule.amount
		}
	}
	return fallback
}

// Ledger persists cost entries in the shared database.
type Ledger struct {
	db  *sql.DB
	now func() time.Time
}

// NewLedger builds a cost ledger over the shared database.
func NewLedger(db *storage.DB) *Ledger {
	return &Ledger{db: db.Handle(), now: time.Now}
}

// RecordStatusChange prices the event's parts and tools and persists one cost
// entry. Events with no priced usage still record a zero-amount entry so the
// status change itself is attributable.
func (l *Ledger) RecordStatusChange(ctx context.Context, event Event) error {
	items := make([]LineItem, 0, len(event.PartsUsed)+len(event.ToolsUsed))
	total := decimal.Zero
	for _, part := range event.PartsUsed {
		amount := PricePart(part)
		items = append(items, LineItem{Kind: "part", Name: part, Amount: amount})
		total = total.Add(amount)
	}
	for _, tool := range event.ToolsUsed {
		amount := PriceTool(tool)
		items = append(items, LineItem{Kind: "tool", Name: tool, Amount: amount})
		total = total.Add(amount)
	}

	encoded, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode line items: %w", err)
	}

	_, err = l.db.ExecContext(
		ctx,
		`INSERT INTO cost_entries (
            id, vehicle_id, model, from_status, to_status, actor, notes, amount, line_items, created_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		uuid.NewString(),
		event.VehicleID,
		event.Model,
		event.FromStatus,
		event.ToStatus,
		event.Actor,
		storage.NullableString(event.Notes),
		total.String(),
		string(encoded),
		storage.FormatTime(l.now()),
	)
	if err != nil {
		return fmt.Errorf("insert cost entry: %w", err)
	}
	return nil
}

// ByVehicle returns a vehicle's cost entries ordered by creation time.
func (l *Ledger) ByVehicle(ctx context.Context, vehicleID string) ([]Entry, error) {
	rows, err := l.db.QueryContext(
		ctx,
		`SELECT id, vehicle_id, model, from_status, to_status, actor, notes, amount, line_items, created_at
         FROM cost_entries WHERE vehicle_id = ? ORDER BY created_at`,
		vehicleID,
	)
	if err != nil {
		return nil, fmt.Errorf("query cost entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			entry     Entry
			notes     sql.NullString
			amount    string
			lineItems string
			created   string
		)
		if err := rows.Scan(
			&entry.ID,
			&entry.VehicleID,
			&entry.Model,
			&entry.FromStatus,
			&entry.ToStatus,
			&entry.Actor,
			&notes,
			&amount,
			&lineItems,
			&created,
		); err != nil {
			return nil, fmt.Errorf("scan cost entry: %w", err)
		}
		entry.Notes = notes.String
		if parsed, err := decimal.NewFromString(amount); err == nil {
			entry.Amount = parsed
		}
		if err := json.Unmarshal([]byte(lineItems), &entry.LineItems); err != nil {
			return nil, fmt.Errorf("decode line items: %w", err)
		}
		if parsed, err := storage.ParseTime(created); err == nil {
			entry.CreatedAt = parsed
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
