// ABOUTME: Tests for PendingSet and SetLog models.
// ABOUTME: Validates constructor, setters, validation, and conversion.
package models

import (
	"testing"

	"github.com/google/uuid"
)

func TestNewPendingSet(t *testing.T) {
	sessionID := uuid.New()
	p := NewPendingSet(sessionID, "Back Squat", 140, 5)

	if p.ID == uuid.Nil {
		t.Error("expected client-generated id to be set")
	}
	if p.SessionID != sessionID {
		t.Errorf("SessionID = %s, want %s", p.SessionID, sessionID)
	}
	if p.Exercise != "Back Squat" {
		t.Errorf("Exercise = %s, want Back Squat", p.Exercise)
	}
	if p.Weight != 140 || p.Reps != 5 {
		t.Errorf("got %gx%d, want 140x5", p.Weight, p.Reps)
	}
	if p.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}
	if p.RPE != nil || p.Tempo != nil || p.Velocity != nil {
		t.Error("expected optional fields to be nil")
	}
}

func TestPendingSetSetters(t *testing.T) {
	p := NewPendingSet(uuid.New(), "Bench Press", 100, 3).
		WithRPE(8.5).
		WithTempo("31X0").
		WithVelocity(0.45)

	if p.RPE == nil || *p.RPE != 8.5 {
		t.Errorf("RPE = %v, want 8.5", p.RPE)
	}
	if p.Tempo == nil || *p.Tempo != "31X0" {
		t.Errorf("Tempo = %v, want 31X0", p.Tempo)
	}
	if p.Velocity == nil || *p.Velocity != 0.45 {
		t.Errorf("Velocity = %v, want 0.45", p.Velocity)
	}
}

func TestPendingSetValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*PendingSet)
	}{
		{"nil id", func(p *PendingSet) { p.ID = uuid.Nil }},
		{"nil session id", func(p *PendingSet) { p.SessionID = uuid.Nil }},
		{"empty exercise", func(p *PendingSet) { p.Exercise = "" }},
		{"negative weight", func(p *PendingSet) { p.Weight = -10 }},
		{"zero reps", func(p *PendingSet) { p.Reps = 0 }},
		{"rpe above scale", func(p *PendingSet) { p.WithRPE(10.5) }},
		{"rpe below scale", func(p *PendingSet) { p.WithRPE(-1) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPendingSet(uuid.New(), "Deadlift", 180, 2)
			tt.mutate(p)
			if err := p.Validate(); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}

	// Bodyweight work logs with zero weight
	p := NewPendingSet(uuid.New(), "Pull-up", 0, 8)
	if err := p.Validate(); err != nil {
		t.Errorf("zero weight should be valid: %v", err)
	}
}

func TestSetLogFromPending(t *testing.T) {
	p := NewPendingSet(uuid.New(), "Back Squat", 140, 5).WithRPE(8)

	log := SetLogFromPending(p)

	if log.ID != p.ID {
		t.Errorf("SetLog id = %s, want the pending set's id %s", log.ID, p.ID)
	}
	if log.SessionID != p.SessionID || log.Exercise != p.Exercise {
		t.Error("expected session and exercise to carry over")
	}
	if log.RPE == nil || *log.RPE != 8 {
		t.Errorf("RPE = %v, want 8", log.RPE)
	}
	if log.CreatedAt != p.CreatedAt {
		t.Error("expected original CreatedAt to be preserved")
	}
	if log.SyncedAt.IsZero() {
		t.Error("expected SyncedAt to be set")
	}
}
