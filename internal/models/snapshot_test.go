// ABOUTME: Tests for MetricSnapshot model.
// ABOUTME: Validates constructor, partial inputs, and range validation.
package models

import (
	"testing"

	"github.com/google/uuid"
)

func TestNewMetricSnapshot(t *testing.T) {
	athleteID := uuid.New()
	s := NewMetricSnapshot(athleteID, "2026-08-30")

	if s.AthleteID != athleteID {
		t.Errorf("AthleteID = %s, want %s", s.AthleteID, athleteID)
	}
	if s.Date != "2026-08-30" {
		t.Errorf("Date = %s, want 2026-08-30", s.Date)
	}
	if s.HRVRMSSD != nil || s.SleepMinutes != nil || s.SorenessScore != nil || s.JumpHeightCM != nil {
		t.Error("expected all inputs to be nil on a fresh snapshot")
	}
	if err := s.Validate(); err != nil {
		t.Errorf("empty snapshot should be valid: %v", err)
	}
}

func TestMetricSnapshotSetters(t *testing.T) {
	s := NewMetricSnapshot(uuid.New(), "2026-08-30").
		WithHRV(72).
		WithSleep(450).
		WithSoreness(3).
		WithJumpHeight(41)

	if s.HRVRMSSD == nil || *s.HRVRMSSD != 72 {
		t.Errorf("HRVRMSSD = %v, want 72", s.HRVRMSSD)
	}
	if s.SleepMinutes == nil || *s.SleepMinutes != 450 {
		t.Errorf("SleepMinutes = %v, want 450", s.SleepMinutes)
	}
	if s.SorenessScore == nil || *s.SorenessScore != 3 {
		t.Errorf("SorenessScore = %v, want 3", s.SorenessScore)
	}
	if s.JumpHeightCM == nil || *s.JumpHeightCM != 41 {
		t.Errorf("JumpHeightCM = %v, want 41", s.JumpHeightCM)
	}
	if err := s.Validate(); err != nil {
		t.Errorf("Validate failed: %v", err)
	}
}

func TestMetricSnapshotValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*MetricSnapshot)
	}{
		{"nil athlete id", func(s *MetricSnapshot) { s.AthleteID = uuid.Nil }},
		{"bad date format", func(s *MetricSnapshot) { s.Date = "30-08-2026" }},
		{"empty date", func(s *MetricSnapshot) { s.Date = "" }},
		{"negative hrv", func(s *MetricSnapshot) { s.WithHRV(-1) }},
		{"negative sleep", func(s *MetricSnapshot) { s.WithSleep(-30) }},
		{"soreness above scale", func(s *MetricSnapshot) { s.WithSoreness(11) }},
		{"soreness below scale", func(s *MetricSnapshot) { s.WithSoreness(-1) }},
		{"negative jump", func(s *MetricSnapshot) { s.WithJumpHeight(-5) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewMetricSnapshot(uuid.New(), "2026-08-30")
			tt.mutate(s)
			if err := s.Validate(); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}
