// ABOUTME: MetricSnapshot persistence for SQLite storage.
// ABOUTME: Snapshots are immutable; a second write for the same day is rejected.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/coach/internal/models"
)

// PutSnapshot stores the day's biometric snapshot. Writing a snapshot
// that already exists for the athlete and date is an error: snapshots
// are immutable once written.
func (d *DB) PutSnapshot(s *models.MetricSnapshot) error {
	if err := s.Validate(); err != nil {
		return fmt.Errorf("put snapshot: %w", err)
	}

	query := `
		INSERT INTO snapshots (athlete_id, date, hrv_rmssd, sleep_minutes, soreness_score, jump_height_cm, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err := d.db.Exec(query,
		s.AthleteID.String(),
		s.Date,
		s.HRVRMSSD,
		s.SleepMinutes,
		s.SorenessScore,
		s.JumpHeightCM,
		s.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint") {
			return fmt.Errorf("snapshot for %s on %s already exists", s.AthleteID, s.Date)
		}
		return fmt.Errorf("put snapshot: %w", err)
	}
	return nil
}

// GetSnapshot retrieves the snapshot for an athlete on a given day.
func (d *DB) GetSnapshot(athleteID uuid.UUID, date string) (*models.MetricSnapshot, error) {
	query := `
		SELECT athlete_id, date, hrv_rmssd, sleep_minutes, soreness_score, jump_height_cm, created_at
		FROM snapshots
		WHERE athlete_id = ? AND date = ?
	`
	return d.scanSnapshot(d.db.QueryRow(query, athleteID.String(), date))
}

// LatestSnapshot retrieves the most recent snapshot for an athlete.
func (d *DB) LatestSnapshot(athleteID uuid.UUID) (*models.MetricSnapshot, error) {
	query := `
		SELECT athlete_id, date, hrv_rmssd, sleep_minutes, soreness_score, jump_height_cm, created_at
		FROM snapshots
		WHERE athlete_id = ?
		ORDER BY date DESC
		LIMIT 1
	`
	return d.scanSnapshot(d.db.QueryRow(query, athleteID.String()))
}

func (d *DB) scanSnapshot(row *sql.Row) (*models.MetricSnapshot, error) {
	var s models.MetricSnapshot
	var athleteStr, createdAt string
	var hrv, jump sql.NullFloat64
	var sleep, soreness sql.NullInt64

	err := row.Scan(&athleteStr, &s.Date, &hrv, &sleep, &soreness, &jump, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan snapshot: %w", err)
	}

	s.AthleteID, _ = uuid.Parse(athleteStr)
	s.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	if hrv.Valid {
		s.HRVRMSSD = &hrv.Float64
	}
	if sleep.Valid {
		v := int(sleep.Int64)
		s.SleepMinutes = &v
	}
	if soreness.Valid {
		v := int(soreness.Int64)
		s.SorenessScore = &v
	}
	if jump.Valid {
		s.JumpHeightCM = &jump.Float64
	}
	return &s, nil
}
