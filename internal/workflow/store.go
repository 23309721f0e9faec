package workflow

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"lotflow/internal/movement"
	"lotflow/internal/storage"
)

// Store owns workflow entries and their append-only movement histories. It is
// the only writer of workflow state.
type Store struct {
	db *sql.DB
}

// NewStore builds a workflow store over the shared database.
func NewStore(db *storage.DB) *Store {
	return &Store{db: db.Handle()}
}

// GetEntry fetches a workflow entry by vehicle id. Missing entries return nil.
func (s *Store) GetEntry(ctx context.Context, vehicleID string) (*Entry, error) {
	row := s.db.QueryRowContext(
		ctx,
		`SELECT `+entryColumns+` FROM workflow_entries WHERE vehicle_id = ?`,
		vehicleID,
	)
	entry, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get entry: %w", err)
	}
	return entry, nil
}

// ListEntries returns all workflow entries ordered by creation time.
func (s *Store) ListEntries(ctx context.Context) ([]*Entry, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+entryColumns+` FROM workflow_entries ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()

	var entries []*Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// ApplyMove atomically upserts the live entry and appends the movement record
// to the vehicle's history. The record's sequence number is assigned here and
// written back to rec. Creation uses the record's destination as the entry's
// live state with default medium priority; model is only consulted on create.
func (s *Store) ApplyMove(ctx context.Context, model string, rec *movement.Record) (*Entry, error) {
	if rec == nil {
		return nil, errors.New("record is nil")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin move tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	timestamp := storage.FormatTime(rec.Timestamp)

	var exists int
	row := tx.QueryRowContext(ctx, `SELECT COUNT(1) FROM workflow_entries WHERE vehicle_id = ?`, rec.VehicleID)
	if err := row.Scan(&exists); err != nil {
		return nil, fmt.Errorf("check entry: %w", err)
	}

	if exists == 0 {
		_, err = tx.ExecContext(
			ctx,
			`INSERT INTO workflow_entries (
                vehicle_id, model, current_location, current_status, priority, created_at, last_update
            ) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			rec.VehicleID,
			model,
			rec.ToLocation,
			rec.ToStatus,
			PriorityMedium,
			timestamp,
			timestamp,
		)
		if err != nil {
			return nil, fmt.Errorf("insert entry: %w", err)
		}
	} else {
		_, err = tx.ExecContext(
			ctx,
			`UPDATE workflow_entries
             SET current_location = ?, current_status = ?, last_update = ?
             WHERE vehicle_id = ?`,
			rec.ToLocation,
			rec.ToStatus,
			timestamp,
			rec.VehicleID,
		)
		if err != nil {
			return nil, fmt.Errorf("update entry: %w", err)
		}
	}

	var nextSeq int64
	row = tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(seq), 0) + 1 FROM movement_records WHERE vehicle_id = ?`, rec.VehicleID)
	if err := row.Scan(&nextSeq); err != nil {
		return nil, fmt.Errorf("next history seq: %w", err)
	}
	rec.Seq = nextSeq

	_, err = tx.ExecContext(
		ctx,
		`INSERT INTO movement_records (
            id, vehicle_id, seq, ts, from_location, to_location,
            from_status, to_status, reason, moved_by, notes
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID,
		rec.VehicleID,
		rec.Seq,
		timestamp,
		rec.FromLocation,
		rec.ToLocation,
		rec.FromStatus,
		rec.ToStatus,
		string(rec.Reason),
		rec.MovedBy,
		storage.NullableString(rec.Notes),
	)
	if err != nil {
		return nil, fmt.Errorf("append history record: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit move: %w", err)
	}

	return s.GetEntry(ctx, rec.VehicleID)
}

// SetPriority updates the priority of a tracked vehicle. Unknown vehicles are
// an error; moving a vehicle never resets an assigned priority.
func (s *Store) SetPriority(ctx context.Context, vehicleID string, priority Priority) error {
	result, err := s.db.ExecContext(
		ctx,
		`UPDATE workflow_entries SET priority = ? WHERE vehicle_id = ?`,
		string(priority),
		vehicleID,
	)
	if err != nil {
		return fmt.Errorf("set priority: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("set priority: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("set priority: vehicle %s is not tracked", vehicleID)
	}
	return nil
}

// History returns a page of a vehicle's movement records with sequence numbers
// greater than afterSeq, oldest first. A limit of zero or less returns the
// full remainder.
func (s *Store) History(ctx context.Context, vehicleID string, afterSeq int64, limit int) ([]movement.Record, error) {
	query := `SELECT ` + recordColumns + ` FROM movement_records WHERE vehicle_id = ? AND seq > ? ORDER BY seq`
	args := []any{vehicleID, afterSeq}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var records []movement.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// HistoryLength returns the number of movement records for a vehicle.
func (s *Store) HistoryLength(ctx context.Context, vehicleID string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM movement_records WHERE vehicle_id = ?`, vehicleID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count history: %w", err)
	}
	return count, nil
}

// CountEntries returns the number of tracked vehicles.
func (s *Store) CountEntries(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM workflow_entries`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count entries: %w", err)
	}
	return count, nil
}

const entryColumns = "vehicle_id, model, current_location, current_status, priority, created_at, last_update"

const recordColumns = "id, vehicle_id, seq, ts, from_location, to_location, from_status, to_status, reason, moved_by, notes"

func scanEntry(scanner interface{ Scan(dest ...any) error }) (*Entry, error) {
	var (
		entry      Entry
		priority   string
		createdRaw string
		updatedRaw string
	)
	if err := scanner.Scan(
		&entry.VehicleID,
		&entry.Model,
		&entry.CurrentLocation,
		&entry.CurrentStatus,
		&priority,
		&createdRaw,
		&updatedRaw,
	); err != nil {
		return nil, err
	}
	entry.Priority = Priority(priority)
	if created, err := storage.ParseTime(createdRaw); err == nil {
		entry.CreatedAt = created
	}
	if updated, err := storage.ParseTime(updatedRaw); err == nil {
		entry.LastUpdate = updated
	}
	return &entry, nil
}

func scanRecord(scanner interface{ Scan(dest ...any) error }) (movement.Record, error) {
	var (
		rec    movement.Record
		ts     string
		reason string
		notes  sql.NullString
	)
	if err := scanner.Scan(
		&rec.ID,
		&rec.VehicleID,
		&rec.Seq,
		&ts,
		&rec.FromLocation,
		&rec.ToLocation,
		&rec.FromStatus,
		&rec.ToStatus,
		&reason,
		&rec.MovedBy,
		&notes,
	); err != nil {
		return movement.Record{}, fmt.Errorf("scan history record: %w", err)
	}
	rec.Reason = movement.Reason(reason)
	rec.Notes = notes.String
	if parsed, err := storage.ParseTime(ts); err == nil {
		rec.Timestamp = parsed
	}
	return rec, nil
}
