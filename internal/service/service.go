// ABOUTME: Service facade over the readiness scorer, offline queue, and engine.
// ABOUTME: The CLI and MCP server both talk to the core through this layer.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/coach/internal/broadcast"
	"github.com/harperreed/coach/internal/buffer"
	"github.com/harperreed/coach/internal/engine"
	"github.com/harperreed/coach/internal/models"
	"github.com/harperreed/coach/internal/readiness"
	"github.com/harperreed/coach/internal/storage"
)

// Service wires the authoritative store, the offline queue, the
// adjustment engine, and the broadcast broker behind the entry points
// callers use.
type Service struct {
	repo   storage.Repository
	queue  buffer.Store
	broker *broadcast.Broker
	engine *engine.Engine
}

// New creates a service over the given store and queue.
func New(repo storage.Repository, queue buffer.Store) *Service {
	broker := broadcast.NewBroker()
	return &Service{
		repo:   repo,
		queue:  queue,
		broker: broker,
		engine: engine.New(repo, repo, broker),
	}
}

// Close shuts down the broker, the queue, and the store.
func (s *Service) Close() error {
	s.broker.Close()
	qErr := s.queue.Close()
	rErr := s.repo.Close()
	if qErr != nil {
		return qErr
	}
	return rErr
}

// Broker exposes the notification fan-out for subscribers.
func (s *Service) Broker() *broadcast.Broker { return s.broker }

// QueueDegraded reports whether the offline queue is running without
// durable storage. Callers should warn the user when true.
func (s *Service) QueueDegraded() bool { return s.queue.Degraded() }

// Readiness is the computed score plus the (defaulted) raw inputs it
// was derived from.
type Readiness struct {
	AthleteID     uuid.UUID `json:"athlete_id"`
	Date          string    `json:"date"`
	Score         int       `json:"readiness_score"`
	HRVRMSSD      float64   `json:"hrv_rmssd"`
	SleepMin      int       `json:"sleep_min"`
	SorenessScore int       `json:"soreness_score"`
	JumpCM        float64   `json:"jump_cm"`
}

// GetReadiness computes today's readiness for an athlete. An absent
// snapshot is not an error: missing inputs score pessimistically and
// the defaulted values are returned.
func (s *Service) GetReadiness(athleteID uuid.UUID) (*Readiness, error) {
	return s.GetReadinessOn(athleteID, time.Now().Format("2006-01-02"))
}

// GetReadinessOn computes readiness for an athlete on a specific day.
func (s *Service) GetReadinessOn(athleteID uuid.UUID, date string) (*Readiness, error) {
	snap, err := s.repo.GetSnapshot(athleteID, date)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("get snapshot: %w", err)
	}

	b := readiness.Explain(readiness.InputsFromSnapshot(snap))
	return &Readiness{
		AthleteID:     athleteID,
		Date:          date,
		Score:         b.Score,
		HRVRMSSD:      b.HRV,
		SleepMin:      b.SleepMin,
		SorenessScore: b.Soreness,
		JumpCM:        b.JumpCM,
	}, nil
}

// AdjustResult distinguishes "evaluated, no action" from "adjusted".
type AdjustResult struct {
	Adjusted   bool    `json:"adjusted"`
	Delta      float64 `json:"delta,omitempty"`
	PromptText string  `json:"prompt_text,omitempty"`
}

// AdjustSet feeds one live sample through the adjustment engine. A
// non-triggering sample returns an explicit not-adjusted result.
func (s *Service) AdjustSet(ctx context.Context, sessionID, athleteID uuid.UUID, metric string, value float64) (*AdjustResult, error) {
	if !models.IsValidTriggerMetric(metric) {
		return nil, fmt.Errorf("unknown trigger metric: %s", metric)
	}

	sample := models.NewLiveMetricSample(sessionID, athleteID, models.TriggerMetric(metric), value)
	dec, err := s.engine.HandleSample(ctx, sample)
	if err != nil {
		return nil, err
	}
	if dec == nil {
		return &AdjustResult{Adjusted: false}, nil
	}
	return &AdjustResult{
		Adjusted:   true,
		Delta:      dec.Delta,
		PromptText: dec.PromptText,
	}, nil
}

// LogSet appends a set to the local offline queue. Success means local
// persistence only; the remote write happens on the next SyncPending.
func (s *Service) LogSet(set *models.PendingSet) error {
	return s.queue.Enqueue(set)
}

// SyncPending drains the offline queue into the authoritative store.
// Returns the number of sets flushed; a remote failure stops the drain
// with the remainder still queued for a later call.
func (s *Service) SyncPending(ctx context.Context) (int, error) {
	return s.queue.Drain(ctx, s.repo)
}

// Pending returns a snapshot of the offline queue.
func (s *Service) Pending() ([]*models.PendingSet, error) {
	return s.queue.ListPending()
}

// ClearPending drops all queued sets without syncing them. Callers
// must warn the user first.
func (s *Service) ClearPending() (int, error) {
	return s.queue.Clear()
}

// PutSnapshot records the day's biometric snapshot.
func (s *Service) PutSnapshot(snap *models.MetricSnapshot) error {
	return s.repo.PutSnapshot(snap)
}

// ListAdjustments lists the append-only adjustment log.
func (s *Service) ListAdjustments(sessionID *uuid.UUID, limit int) ([]*models.AdjustmentEvent, error) {
	return s.repo.ListAdjustments(sessionID, limit)
}

// Repo exposes the authoritative store for plan management and export.
func (s *Service) Repo() storage.Repository { return s.repo }
