// ABOUTME: Repository interface for the authoritative training data store.
// ABOUTME: Defines contract for set logs, adjustment events, plans, and snapshots.
package storage

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/harperreed/coach/internal/models"
	"github.com/harperreed/coach/internal/plan"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// Repository defines the storage interface for training data.
// This interface allows swapping implementations (e.g., for testing).
type Repository interface {
	// Set log operations. UpsertSetLog is idempotent on the set's
	// client-generated id so a retried flush cannot duplicate.
	UpsertSetLog(ctx context.Context, set *models.PendingSet) error
	GetSetLog(id uuid.UUID) (*models.SetLog, error)
	ListSetLogs(sessionID uuid.UUID) ([]*models.SetLog, error)
	CountSetLogs() (int, error)

	// Adjustment event operations. The log is append-only.
	AppendAdjustment(ctx context.Context, e *models.AdjustmentEvent) error
	AdjustmentExists(ctx context.Context, id uuid.UUID) (bool, error)
	ListAdjustments(sessionID *uuid.UUID, limit int) ([]*models.AdjustmentEvent, error)

	// Plan operations. One active plan per athlete, last write wins.
	GetPlan(ctx context.Context, athleteID uuid.UUID) (*plan.Program, error)
	PutPlan(ctx context.Context, p *plan.Program) error

	// Snapshot operations. Snapshots are immutable once written.
	PutSnapshot(s *models.MetricSnapshot) error
	GetSnapshot(athleteID uuid.UUID, date string) (*models.MetricSnapshot, error)
	LatestSnapshot(athleteID uuid.UUID) (*models.MetricSnapshot, error)

	// Export/Import
	GetAllData() (*ExportData, error)
	ImportData(data *ExportData) error

	// Lifecycle
	Close() error
}
