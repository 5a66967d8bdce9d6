// ABOUTME: Adjustment event persistence for SQLite storage.
// ABOUTME: Append-only log; rows are never updated or deleted.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/coach/internal/models"
)

// AppendAdjustment inserts a new adjustment event row.
func (d *DB) AppendAdjustment(ctx context.Context, e *models.AdjustmentEvent) error {
	var coachID *string
	if e.CoachID != nil {
		s := e.CoachID.String()
		coachID = &s
	}

	query := `
		INSERT INTO adjustment_events (id, session_id, athlete_id, coach_id, metric, trigger_value, delta, prompt_text, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := d.db.ExecContext(ctx, query,
		e.ID.String(),
		e.SessionID.String(),
		e.AthleteID.String(),
		coachID,
		string(e.Metric),
		e.TriggerValue,
		e.Delta,
		e.PromptText,
		e.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("append adjustment: %w", err)
	}
	return nil
}

// AdjustmentExists reports whether an event with the given id was
// already recorded. Used to make a retried apply idempotent.
func (d *DB) AdjustmentExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var one int
	err := d.db.QueryRowContext(ctx, `SELECT 1 FROM adjustment_events WHERE id = ?`, id.String()).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check adjustment: %w", err)
	}
	return true, nil
}

// ListAdjustments returns events ordered by creation time, most recent
// first, optionally scoped to a session.
func (d *DB) ListAdjustments(sessionID *uuid.UUID, limit int) ([]*models.AdjustmentEvent, error) {
	var query string
	var args []interface{}

	if sessionID != nil {
		query = `
			SELECT id, session_id, athlete_id, coach_id, metric, trigger_value, delta, prompt_text, created_at
			FROM adjustment_events
			WHERE session_id = ?
			ORDER BY created_at DESC
		`
		args = append(args, sessionID.String())
	} else {
		query = `
			SELECT id, session_id, athlete_id, coach_id, metric, trigger_value, delta, prompt_text, created_at
			FROM adjustment_events
			ORDER BY created_at DESC
		`
	}

	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list adjustments: %w", err)
	}
	defer rows.Close()

	var events []*models.AdjustmentEvent
	for rows.Next() {
		var e models.AdjustmentEvent
		var idStr, sessionStr, athleteStr, metric, createdAt string
		var coachID sql.NullString

		err := rows.Scan(&idStr, &sessionStr, &athleteStr, &coachID, &metric, &e.TriggerValue, &e.Delta, &e.PromptText, &createdAt)
		if err != nil {
			return nil, fmt.Errorf("scan adjustment: %w", err)
		}

		e.ID, _ = uuid.Parse(idStr)
		e.SessionID, _ = uuid.Parse(sessionStr)
		e.AthleteID, _ = uuid.Parse(athleteStr)
		e.Metric = models.TriggerMetric(metric)
		e.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		if coachID.Valid {
			id, _ := uuid.Parse(coachID.String)
			e.CoachID = &id
		}

		events = append(events, &e)
	}
	return events, rows.Err()
}
