// ABOUTME: SetLog persistence for SQLite storage.
// ABOUTME: Upserts are keyed by the client-generated id to stay flush-idempotent.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/coach/internal/models"
)

// UpsertSetLog writes a flushed set to the authoritative store. A
// retried write for the same id updates in place instead of inserting
// a second row.
func (d *DB) UpsertSetLog(ctx context.Context, set *models.PendingSet) error {
	if err := set.Validate(); err != nil {
		return fmt.Errorf("upsert set log: %w", err)
	}

	query := `
		INSERT INTO set_logs (id, session_id, exercise, weight, reps, rpe, tempo, velocity, created_at, synced_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			session_id = excluded.session_id,
			exercise = excluded.exercise,
			weight = excluded.weight,
			reps = excluded.reps,
			rpe = excluded.rpe,
			tempo = excluded.tempo,
			velocity = excluded.velocity,
			synced_at = excluded.synced_at
	`
	_, err := d.db.ExecContext(ctx, query,
		set.ID.String(),
		set.SessionID.String(),
		set.Exercise,
		set.Weight,
		set.Reps,
		set.RPE,
		set.Tempo,
		set.Velocity,
		set.CreatedAt.Format(time.RFC3339),
		time.Now().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("upsert set log: %w", err)
	}
	return nil
}

// GetSetLog retrieves a set log by id.
func (d *DB) GetSetLog(id uuid.UUID) (*models.SetLog, error) {
	query := `
		SELECT id, session_id, exercise, weight, reps, rpe, tempo, velocity, created_at, synced_at
		FROM set_logs
		WHERE id = ?
	`
	return d.scanSetLog(d.db.QueryRow(query, id.String()))
}

// ListSetLogs retrieves all set logs for a session in chronological order.
func (d *DB) ListSetLogs(sessionID uuid.UUID) ([]*models.SetLog, error) {
	query := `
		SELECT id, session_id, exercise, weight, reps, rpe, tempo, velocity, created_at, synced_at
		FROM set_logs
		WHERE session_id = ?
		ORDER BY created_at ASC
	`
	rows, err := d.db.Query(query, sessionID.String())
	if err != nil {
		return nil, fmt.Errorf("list set logs: %w", err)
	}
	defer rows.Close()

	var logs []*models.SetLog
	for rows.Next() {
		log, err := d.scanSetLogRow(rows)
		if err != nil {
			return nil, err
		}
		logs = append(logs, log)
	}
	return logs, rows.Err()
}

// CountSetLogs returns the total number of set log rows.
func (d *DB) CountSetLogs() (int, error) {
	var n int
	if err := d.db.QueryRow(`SELECT COUNT(*) FROM set_logs`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count set logs: %w", err)
	}
	return n, nil
}

func (d *DB) scanSetLog(row *sql.Row) (*models.SetLog, error) {
	var s models.SetLog
	var idStr, sessionStr, createdAt, syncedAt string
	var rpe, velocity sql.NullFloat64
	var tempo sql.NullString

	err := row.Scan(&idStr, &sessionStr, &s.Exercise, &s.Weight, &s.Reps, &rpe, &tempo, &velocity, &createdAt, &syncedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan set log: %w", err)
	}

	fillSetLog(&s, idStr, sessionStr, createdAt, syncedAt, rpe, tempo, velocity)
	return &s, nil
}

func (d *DB) scanSetLogRow(rows *sql.Rows) (*models.SetLog, error) {
	var s models.SetLog
	var idStr, sessionStr, createdAt, syncedAt string
	var rpe, velocity sql.NullFloat64
	var tempo sql.NullString

	err := rows.Scan(&idStr, &sessionStr, &s.Exercise, &s.Weight, &s.Reps, &rpe, &tempo, &velocity, &createdAt, &syncedAt)
	if err != nil {
		return nil, fmt.Errorf("scan set log: %w", err)
	}

	fillSetLog(&s, idStr, sessionStr, createdAt, syncedAt, rpe, tempo, velocity)
	return &s, nil
}

func fillSetLog(s *models.SetLog, idStr, sessionStr, createdAt, syncedAt string, rpe sql.NullFloat64, tempo sql.NullString, velocity sql.NullFloat64) {
	s.ID, _ = uuid.Parse(idStr)
	s.SessionID, _ = uuid.Parse(sessionStr)
	s.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	s.SyncedAt, _ = time.Parse(time.RFC3339, syncedAt)
	if rpe.Valid {
		s.RPE = &rpe.Float64
	}
	if tempo.Valid {
		s.Tempo = &tempo.String
	}
	if velocity.Valid {
		s.Velocity = &velocity.Float64
	}
}
