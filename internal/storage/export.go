// ABOUTME: Export and import functionality for training data.
// ABOUTME: Supports JSON and YAML export formats.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/coach/internal/models"
	"github.com/harperreed/coach/internal/plan"
	"gopkg.in/yaml.v3"
)

// ExportData represents the full export format for training data.
type ExportData struct {
	Version     string                    `json:"version" yaml:"version"`
	ExportedAt  time.Time                 `json:"exported_at" yaml:"exported_at"`
	Tool        string                    `json:"tool" yaml:"tool"`
	SetLogs     []*models.SetLog          `json:"set_logs" yaml:"set_logs"`
	Adjustments []*models.AdjustmentEvent `json:"adjustments" yaml:"adjustments"`
	Plans       []*plan.Program           `json:"plans" yaml:"plans"`
	Snapshots   []*models.MetricSnapshot  `json:"snapshots" yaml:"snapshots"`
}

// GetAllData retrieves all data for export.
func (d *DB) GetAllData() (*ExportData, error) {
	logs, err := d.listAllSetLogs()
	if err != nil {
		return nil, fmt.Errorf("list set logs: %w", err)
	}

	adjustments, err := d.ListAdjustments(nil, 0)
	if err != nil {
		return nil, fmt.Errorf("list adjustments: %w", err)
	}

	plans, err := d.listAllPlans()
	if err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}

	snapshots, err := d.listAllSnapshots()
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}

	return &ExportData{
		Version:     "1.0",
		ExportedAt:  time.Now(),
		Tool:        "coach",
		SetLogs:     logs,
		Adjustments: adjustments,
		Plans:       plans,
		Snapshots:   snapshots,
	}, nil
}

// ImportData imports data from an export file. Set logs upsert by id;
// adjustment events that already exist are skipped (the log stays
// append-only); snapshots that already exist are skipped.
func (d *DB) ImportData(data *ExportData) error {
	ctx := context.Background()

	for _, log := range data.SetLogs {
		set := &models.PendingSet{
			ID:        log.ID,
			SessionID: log.SessionID,
			Exercise:  log.Exercise,
			Weight:    log.Weight,
			Reps:      log.Reps,
			RPE:       log.RPE,
			Tempo:     log.Tempo,
			Velocity:  log.Velocity,
			CreatedAt: log.CreatedAt,
		}
		if err := d.UpsertSetLog(ctx, set); err != nil {
			return fmt.Errorf("import set log %s: %w", log.ID, err)
		}
	}

	for _, e := range data.Adjustments {
		exists, err := d.AdjustmentExists(ctx, e.ID)
		if err != nil {
			return err
		}
		if exists {
			continue
		}
		if err := d.AppendAdjustment(ctx, e); err != nil {
			return fmt.Errorf("import adjustment %s: %w", e.ID, err)
		}
	}

	for _, p := range data.Plans {
		if err := d.PutPlan(ctx, p); err != nil {
			return fmt.Errorf("import plan for %s: %w", p.AthleteID, err)
		}
	}

	for _, s := range data.Snapshots {
		if _, err := d.GetSnapshot(s.AthleteID, s.Date); err == nil {
			continue
		}
		if err := d.PutSnapshot(s); err != nil {
			return fmt.Errorf("import snapshot %s/%s: %w", s.AthleteID, s.Date, err)
		}
	}

	return nil
}

// ToJSON serializes export data as indented JSON.
func (e *ExportData) ToJSON() ([]byte, error) {
	return json.MarshalIndent(e, "", "  ")
}

// ToYAML serializes export data as YAML.
func (e *ExportData) ToYAML() ([]byte, error) {
	return yaml.Marshal(e)
}

func (d *DB) listAllSetLogs() ([]*models.SetLog, error) {
	rows, err := d.db.Query(`
		SELECT id, session_id, exercise, weight, reps, rpe, tempo, velocity, created_at, synced_at
		FROM set_logs
		ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, err
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

func (d *DB) listAllPlans() ([]*plan.Program, error) {
	rows, err := d.db.Query(`SELECT program FROM plans ORDER BY athlete_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var plans []*plan.Program
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, err
		}
		var p plan.Program
		if err := json.Unmarshal([]byte(doc), &p); err != nil {
			return nil, fmt.Errorf("unmarshal plan: %w", err)
		}
		plans = append(plans, &p)
	}
	return plans, rows.Err()
}

func (d *DB) listAllSnapshots() ([]*models.MetricSnapshot, error) {
	rows, err := d.db.Query(`
		SELECT athlete_id, date
		FROM snapshots
		ORDER BY athlete_id, date
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	type key struct {
		athlete uuid.UUID
		date    string
	}
	var keys []key
	for rows.Next() {
		var athleteStr, date string
		if err := rows.Scan(&athleteStr, &date); err != nil {
			return nil, err
		}
		id, _ := uuid.Parse(athleteStr)
		keys = append(keys, key{athlete: id, date: date})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var snapshots []*models.MetricSnapshot
	for _, k := range keys {
		s, err := d.GetSnapshot(k.athlete, k.date)
		if err != nil {
			return nil, err
		}
		snapshots = append(snapshots, s)
	}
	return snapshots, nil
}
