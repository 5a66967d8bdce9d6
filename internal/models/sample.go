// ABOUTME: LiveMetricSample model and the live trigger metric enum.
// ABOUTME: Samples are transient; they are evaluated immediately and never stored.
package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// TriggerMetric identifies which live biomechanical signal a sample carries.
type TriggerMetric string

const (
	// MetricVelocityLoss is the fractional drop in bar/movement speed within a set.
	MetricVelocityLoss TriggerMetric = "velocity_loss"
	// MetricHRDrift is the fractional rise in heart rate during sustained effort.
	MetricHRDrift TriggerMetric = "hr_drift"
)

// AllTriggerMetrics returns all valid trigger metrics.
var AllTriggerMetrics = []TriggerMetric{MetricVelocityLoss, MetricHRDrift}

// IsValidTriggerMetric checks if a string is a valid trigger metric.
func IsValidTriggerMetric(s string) bool {
	for _, tm := range AllTriggerMetrics {
		if string(tm) == s {
			return true
		}
	}
	return false
}

// LiveMetricSample is one observation from a live training session.
type LiveMetricSample struct {
	SessionID  uuid.UUID
	AthleteID  uuid.UUID
	Metric     TriggerMetric
	Value      float64
	ObservedAt time.Time
}

// NewLiveMetricSample creates a sample observed now.
func NewLiveMetricSample(sessionID, athleteID uuid.UUID, metric TriggerMetric, value float64) *LiveMetricSample {
	return &LiveMetricSample{
		SessionID:  sessionID,
		AthleteID:  athleteID,
		Metric:     metric,
		Value:      value,
		ObservedAt: time.Now(),
	}
}

// Validate rejects malformed samples at the boundary.
func (s *LiveMetricSample) Validate() error {
	if s.SessionID == uuid.Nil {
		return fmt.Errorf("sample missing session id")
	}
	if s.AthleteID == uuid.Nil {
		return fmt.Errorf("sample missing athlete id")
	}
	if !IsValidTriggerMetric(string(s.Metric)) {
		return fmt.Errorf("unknown trigger metric: %s", s.Metric)
	}
	if s.Value < 0 {
		return fmt.Errorf("sample value must be non-negative, got %v", s.Value)
	}
	return nil
}

// AdjustmentEvent is one row of the append-only adjustment log.
// Rows are never updated or deleted; ordering is by CreatedAt.
type AdjustmentEvent struct {
	ID           uuid.UUID     `json:"id"`
	SessionID    uuid.UUID     `json:"session_id"`
	AthleteID    uuid.UUID     `json:"athlete_id"`
	CoachID      *uuid.UUID    `json:"coach_id,omitempty"`
	Metric       TriggerMetric `json:"metric"`
	TriggerValue float64       `json:"trigger_value"`
	Delta        float64       `json:"delta"`
	PromptText   string        `json:"prompt_text"`
	CreatedAt    time.Time     `json:"created_at"`
}

// WithCoach sets the coach attribution on the event.
func (e *AdjustmentEvent) WithCoach(coachID uuid.UUID) *AdjustmentEvent {
	e.CoachID = &coachID
	return e
}
