// ABOUTME: LoadPlan persistence for SQLite storage.
// ABOUTME: One active plan per athlete stored as a JSON document; last write wins.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/coach/internal/plan"
)

// GetPlan retrieves the athlete's active plan.
func (d *DB) GetPlan(ctx context.Context, athleteID uuid.UUID) (*plan.Program, error) {
	var doc string
	err := d.db.QueryRowContext(ctx, `SELECT program FROM plans WHERE athlete_id = ?`, athleteID.String()).Scan(&doc)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get plan: %w", err)
	}

	var p plan.Program
	if err := json.Unmarshal([]byte(doc), &p); err != nil {
		return nil, fmt.Errorf("unmarshal plan: %w", err)
	}
	return &p, nil
}

// PutPlan writes the athlete's active plan, replacing any previous one.
// There is no concurrency token on the row; concurrent writers race
// last-write-wins.
func (d *DB) PutPlan(ctx context.Context, p *plan.Program) error {
	if err := p.Validate(); err != nil {
		return fmt.Errorf("put plan: %w", err)
	}

	doc, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal plan: %w", err)
	}

	query := `
		INSERT INTO plans (athlete_id, program, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(athlete_id) DO UPDATE SET
			program = excluded.program,
			updated_at = excluded.updated_at
	`
	_, err = d.db.ExecContext(ctx, query,
		p.AthleteID.String(),
		string(doc),
		time.Now().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("put plan: %w", err)
	}
	return nil
}
