// ABOUTME: Tests for CLI helper functions.
// ABOUTME: Covers session resolution, id shortening, padding, and seeding.
package main

import (
	"testing"

	"github.com/google/uuid"
	"github.com/harperreed/coach/internal/plan"
)

func TestResolveSession(t *testing.T) {
	t.Run("empty mints a new session", func(t *testing.T) {
		id, err := resolveSession("")
		if err != nil {
			t.Fatalf("resolveSession failed: %v", err)
		}
		if id == uuid.Nil {
			t.Error("expected a non-nil session id")
		}
	})

	t.Run("valid id is parsed", func(t *testing.T) {
		want := uuid.New()
		got, err := resolveSession(want.String())
		if err != nil {
			t.Fatalf("resolveSession failed: %v", err)
		}
		if got != want {
			t.Errorf("resolveSession = %s, want %s", got, want)
		}
	})

	t.Run("garbage is rejected", func(t *testing.T) {
		if _, err := resolveSession("not-a-uuid"); err == nil {
			t.Error("expected error for invalid session id")
		}
	})
}

func TestShortID(t *testing.T) {
	id := uuid.MustParse("7d9e1b22-4f7a-4d2c-8a9f-0123456789ab")
	if got := shortID(id); got != "7d9e1b22" {
		t.Errorf("shortID = %q, want %q", got, "7d9e1b22")
	}
}

func TestPadRight(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		length int
		want   string
	}{
		{"shorter than width", "squat", 8, "squat   "},
		{"exact width", "deadlift", 8, "deadlift"},
		{"longer than width", "bench press", 8, "bench press"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := padRight(tt.input, tt.length); got != tt.want {
				t.Errorf("padRight(%q, %d) = %q, want %q", tt.input, tt.length, got, tt.want)
			}
		})
	}
}

func TestSeedProgram(t *testing.T) {
	athleteID := uuid.New()
	p := seedProgram(athleteID)

	if err := p.Validate(); err != nil {
		t.Fatalf("seed program invalid: %v", err)
	}
	if p.AthleteID != athleteID {
		t.Errorf("athlete id = %s, want %s", p.AthleteID, athleteID)
	}
	if p.CountExercises() == 0 {
		t.Error("seed program has no exercises")
	}

	loads := 0
	p.Visit(func(e *plan.Exercise) {
		if e.TargetLoad > 0 {
			loads++
		}
	})
	if loads != p.CountExercises() {
		t.Errorf("%d of %d exercises have a target load", loads, p.CountExercises())
	}
}
