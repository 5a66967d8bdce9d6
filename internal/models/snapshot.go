// ABOUTME: MetricSnapshot and ReadinessScore models for daily biometrics.
// ABOUTME: Snapshots are immutable once written; scores are derived on demand.
package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// MetricSnapshot is one athlete's biometric inputs for one day.
// Fields are pointers because upstream ingestion may deliver any subset;
// a missing input is not an error, it is scored pessimistically.
type MetricSnapshot struct {
	AthleteID     uuid.UUID `json:"athlete_id"`
	Date          string    `json:"date"` // YYYY-MM-DD
	HRVRMSSD      *float64  `json:"hrv_rmssd,omitempty"`
	SleepMinutes  *int      `json:"sleep_minutes,omitempty"`
	SorenessScore *int      `json:"soreness_score,omitempty"` // 0 (none) to 10 (worst)
	JumpHeightCM  *float64  `json:"jump_height_cm,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// NewMetricSnapshot creates an empty snapshot for the given athlete and day.
func NewMetricSnapshot(athleteID uuid.UUID, date string) *MetricSnapshot {
	return &MetricSnapshot{
		AthleteID: athleteID,
		Date:      date,
		CreatedAt: time.Now(),
	}
}

// WithHRV sets the HRV RMSSD reading in milliseconds.
func (s *MetricSnapshot) WithHRV(ms float64) *MetricSnapshot {
	s.HRVRMSSD = &ms
	return s
}

// WithSleep sets the total sleep in minutes.
func (s *MetricSnapshot) WithSleep(minutes int) *MetricSnapshot {
	s.SleepMinutes = &minutes
	return s
}

// WithSoreness sets the subjective soreness score.
func (s *MetricSnapshot) WithSoreness(score int) *MetricSnapshot {
	s.SorenessScore = &score
	return s
}

// WithJumpHeight sets the countermovement jump height in centimeters.
func (s *MetricSnapshot) WithJumpHeight(cm float64) *MetricSnapshot {
	s.JumpHeightCM = &cm
	return s
}

// Validate rejects out-of-range inputs at the boundary.
func (s *MetricSnapshot) Validate() error {
	if s.AthleteID == uuid.Nil {
		return fmt.Errorf("snapshot missing athlete id")
	}
	if _, err := time.Parse("2006-01-02", s.Date); err != nil {
		return fmt.Errorf("invalid snapshot date %q: %w", s.Date, err)
	}
	if s.HRVRMSSD != nil && *s.HRVRMSSD < 0 {
		return fmt.Errorf("hrv must be non-negative, got %v", *s.HRVRMSSD)
	}
	if s.SleepMinutes != nil && *s.SleepMinutes < 0 {
		return fmt.Errorf("sleep minutes must be non-negative, got %d", *s.SleepMinutes)
	}
	if s.SorenessScore != nil && (*s.SorenessScore < 0 || *s.SorenessScore > 10) {
		return fmt.Errorf("soreness score must be in [0,10], got %d", *s.SorenessScore)
	}
	if s.JumpHeightCM != nil && *s.JumpHeightCM < 0 {
		return fmt.Errorf("jump height must be non-negative, got %v", *s.JumpHeightCM)
	}
	return nil
}

// ReadinessScore is the derived 0-100 recovery estimate for one day.
type ReadinessScore struct {
	AthleteID uuid.UUID
	Date      string
	Value     int
}
