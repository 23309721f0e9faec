package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"lotflow/internal/movement"
	"lotflow/internal/storage"
)

// Store persists ledger rows in the shared database.
type Store struct {
	db *sql.DB
}

// NewStore builds a ledger store over the shared database.
func NewStore(db *storage.DB) *Store {
	return &Store{db: db.Handle()}
}

// Append writes one movement record to the ledger.
func (s *Store) Append(ctx context.Context, rec movement.Record) error {
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO movement_ledger (
            record_id, vehicle_id, ts, from_location, to_location,
            from_status, to_status, reason, moved_by, notes
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID,
		rec.VehicleID,
		storage.FormatTime(rec.Timestamp),
		rec.FromLocation,
		rec.ToLocation,
		rec.FromStatus,
		rec.ToStatus,
		string(rec.Reason),
		rec.MovedBy,
		storage.NullableString(rec.Notes),
	)
	if err != nil {
		return fmt.Errorf("append ledger record: %w", err)
	}
	return nil
}

// All returns every ledger record ordered by timestamp, then insertion order.
func (s *Store) All(ctx context.Context) ([]movement.Record, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+ledgerColumns+` FROM movement_ledger ORDER BY ts, id`)
	if err != nil {
		return nil, fmt.Errorf("query ledger: %w", err)
	}
	defer rows.Close()
	return scanRecords(rows)
}

// ByVehicle returns a vehicle's ledger records ordered by timestamp.
func (s *Store) ByVehicle(ctx context.Context, vehicleID string) ([]movement.Record, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT `+ledgerColumns+` FROM movement_ledger WHERE vehicle_id = ? ORDER BY ts, id`,
		vehicleID,
	)
	if err != nil {
		return nil, fmt.Errorf("query ledger by vehicle: %w", err)
	}
	defer rows.Close()
	return scanRecords(rows)
}

// Count returns the total number of ledger records.
func (s *Store) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM movement_ledger`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count ledger records: %w", err)
	}
	return count, nil
}

const ledgerColumns = "record_id, vehicle_id, ts, from_location, to_location, from_status, to_status, reason, moved_by, notes"

func scanRecords(rows *sql.Rows) ([]movement.Record, error) {
	var records []movement.Record
	for rows.Next() {
		var (
			rec   movement.Record
			ts    string
			notes sql.NullString
		)
		var reason string
		if err := rows.Scan(
			&rec.ID,
			&rec.VehicleID,
			&ts,
			&rec.FromLocation,
			&rec.ToLocation,
			&rec.FromStatus,
			&rec.ToStatus,
			&reason,
			&rec.MovedBy,
			&notes,
		); err != nil {
			return nil, fmt.Errorf("scan ledger record: %w", err)
		}
		rec.Reason = movement.Reason(reason)
		rec.Notes = notes.String
		if parsed, err := storage.ParseTime(ts); err == nil {
			rec.Timestamp = parsed
		} else {
			rec.Timestamp = time.Time{}
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
