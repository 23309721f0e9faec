package collections

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"lotflow/internal/storage"
)

// Well-known collection keys.
const (
	KeyGarage         = "garage"
	KeyShowroomFloor1 = "showroom_floor_1"
	KeyShowroomFloor2 = "showroom_floor_2"
	KeyMainInventory  = "main_inventory"
)

// Keys returns the well-known collection keys in scan order.
func Keys() []string {
	return []string{KeyGarage, KeyShowroomFloor1, KeyShowroomFloor2, KeyMainInventory}
}

// Vehicle is the record shape shared by all per-location collections. Fields
// that only some sources populate are pointers or omitted when empty.
type Vehicle struct {
	ID               string     `json:"id"`
	Model            string     `json:"model"`
	Location         string     `json:"location,omitempty"`
	Status           string     `json:"status,omitempty"`
	EngineType       string     `json:"engineType,omitempty"`
	BatteryLevel     *int       `json:"batteryLevel,omitempty"`
	PDIStatus        string     `json:"pdiStatus,omitempty"`
	CustomsPaid      *bool      `json:"customsPaid,omitempty"`
	CustomerPriority string     `json:"customerPriority,omitempty"`
	AssignedTo       string     `json:"assignedTo,omitempty"`
	EstimatedHours   *float64   `json:"estimatedHours,omitempty"`
	ArrivedAt        *time.Time `json:"arrivedAt,omitempty"`
	UpdatedAt        *time.Time `json:"updatedAt,omitempty"`
	NextServiceDate  *time.Time `json:"nextServiceDate,omitempty"`
	DeliveryDate     *time.Time `json:"deliveryDate,omitempty"`
}

// Store persists collections in the shared database.
type Store struct {
	db *sql.DB
}

// NewStore builds a collection store over the shared database.
func NewStore(db *storage.DB) *Store {
	return &Store{db: db.Handle()}
}

// Get returns the raw JSON value stored under key, or nil when absent.
func (s *Store) Get(ctx context.Context, key string) (json.RawMessage, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM collections WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get collection %q: %w", key, err)
	}
	return json.RawMessage(value), nil
}

// Set stores a raw JSON value under key, replacing any previous value.
func (s *Store) Set(ctx context.Context, key string, value json.RawMessage) error {
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO collections (key, value, updated_at) VALUES (?, ?, ?)
         ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key,
		string(value),
		storage.FormatTime(time.Now()),
	)
	if err != nil {
		return fmt.Errorf("set collection %q: %w", key, err)
	}
	return nil
}

// Vehicles decodes the vehicle array stored under key. A missing collection
// decodes as empty.
func (s *Store) Vehicles(ctx context.Context, key string) ([]Vehicle, error) {
	raw, err := s.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, nil
	}
	var vehicles []Vehicle
	if err := json.Unmarshal(raw, &vehicles); err != nil {
		return nil, fmt.Errorf("decode collection %q: %w", key, err)
	}
	return vehicles, nil
}

// SaveVehicles encodes and stores the vehicle array under key.
func (s *Store) SaveVehicles(ctx context.Context, key string, vehicles []Vehicle) error {
	if vehicles == nil {
		vehicles = []Vehicle{}
	}
	raw, err := json.Marshal(vehicles)
	if err != nil {
		return fmt.Errorf("encode collection %q: %w", key, err)
	}
	return s.Set(ctx, key, raw)
}

// UpsertPlacement updates a vehicle's location and status inside one
// collection, appending the record when the vehicle is not present yet.
func (s *Store) UpsertPlacement(ctx context.Context, key, vehicleID, model, location, status string, now time.Time) error {
	vehicles, err := s.Vehicles(ctx, key)
	if err != nil {
		return err
	}
	updated := false
	for i := range vehicles {
		if vehicles[i].ID == vehicleID {
			vehicles[i].Location = location
			vehicles[i].Status = status
			ts := now
			vehicles[i].UpdatedAt = &ts
			updated = true
			break
		}
	}
	if !updated {
		ts := now
		vehicles = append(vehicles, Vehicle{
			ID:        vehicleID,
			Model:     model,
			Location:  location,
			Status:    status,
			UpdatedAt: &ts,
			ArrivedAt: &ts,
		})
	}
	return s.SaveVehicles(ctx, key, vehicles)
}

// KeysForLocation returns the collection keys a location id fans out to,
// matched by substring on the id.
func KeysForLocation(locationID string) []string {
	loc := strings.ToLower(strings.TrimSpace(locationID))
	var keys []string
	if strings.Contains(loc, "garage") {
		keys = append(keys, KeyGarage)
	}
	if strings.Contains(loc, "showroom") || strings.Contains(loc, "floor") {
		if strings.Contains(loc, "2") {
			keys = append(keys, KeyShowroomFloor2)
		} else {
			keys = append(keys, KeyShowroomFloor1)
		}
	}
	if strings.Contains(loc, "inventory") {
		keys = append(keys, KeyMainInventory)
	}
	return keys
}
