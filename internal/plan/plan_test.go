// ABOUTME: Tests for the LoadPlan tree and target-load scaling visitor.
// ABOUTME: Verifies structure preservation, flooring, and repeated application.
package plan

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
)

func testProgram(t *testing.T, load float64) *Program {
	t.Helper()
	p := NewProgram(uuid.New(), "Phase 1")
	p.Blocks = []Block{
		{
			ID:   uuid.New(),
			Name: "Accumulation",
			Sessions: []Session{
				{
					ID:   uuid.New(),
					Name: "Day 1",
					Exercises: []Exercise{
						{ID: uuid.New(), Name: "Back Squat", Sets: 5, Reps: 5, TargetLoad: load},
						{ID: uuid.New(), Name: "Bench Press", Sets: 3, Reps: 8, TargetLoad: load},
					},
				},
				{
					ID:   uuid.New(),
					Name: "Day 2",
					Exercises: []Exercise{
						{ID: uuid.New(), Name: "Deadlift", Sets: 3, Reps: 3, TargetLoad: load},
					},
				},
			},
		},
		{
			ID:   uuid.New(),
			Name: "Intensification",
			Sessions: []Session{
				{
					ID:   uuid.New(),
					Name: "Day 1",
					Exercises: []Exercise{
						{ID: uuid.New(), Name: "Front Squat", Sets: 4, Reps: 4, TargetLoad: load},
					},
				},
			},
		},
	}
	return p
}

func TestScaleTargetLoads(t *testing.T) {
	p := testProgram(t, 100)

	ScaleTargetLoads(p, 0.95)

	p.Visit(func(e *Exercise) {
		if e.TargetLoad != 95 {
			t.Errorf("%s: TargetLoad = %v, want 95", e.Name, e.TargetLoad)
		}
	})
}

func TestScaleLeavesStructureUntouched(t *testing.T) {
	p := testProgram(t, 100)
	before := testProgram(t, 100)
	// Copy identity so the only expected difference is the load fields.
	data, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if err := json.Unmarshal(data, before); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	ScaleTargetLoads(p, 0.95)

	if len(p.Blocks) != len(before.Blocks) {
		t.Fatalf("block count changed: %d != %d", len(p.Blocks), len(before.Blocks))
	}
	for bi := range p.Blocks {
		if p.Blocks[bi].ID != before.Blocks[bi].ID || p.Blocks[bi].Name != before.Blocks[bi].Name {
			t.Errorf("block %d identity changed", bi)
		}
		for si := range p.Blocks[bi].Sessions {
			got := p.Blocks[bi].Sessions[si]
			want := before.Blocks[bi].Sessions[si]
			if got.ID != want.ID || got.Name != want.Name {
				t.Errorf("session %d/%d identity changed", bi, si)
			}
			for ei := range got.Exercises {
				ge, we := got.Exercises[ei], want.Exercises[ei]
				if ge.ID != we.ID || ge.Name != we.Name || ge.Sets != we.Sets || ge.Reps != we.Reps {
					t.Errorf("exercise %s: non-load field changed", we.Name)
				}
			}
		}
	}
}

func TestScaleFloorsAtZero(t *testing.T) {
	p := testProgram(t, 0.001)

	// Repeated reductions must converge toward zero, never below it.
	for i := 0; i < 500; i++ {
		ScaleTargetLoads(p, 0.95)
	}

	p.Visit(func(e *Exercise) {
		if e.TargetLoad < 0 {
			t.Errorf("%s: TargetLoad went negative: %v", e.Name, e.TargetLoad)
		}
	})
}

func TestScaleNegativeFactorFloors(t *testing.T) {
	p := testProgram(t, 100)

	ScaleTargetLoads(p, -1)

	p.Visit(func(e *Exercise) {
		if e.TargetLoad != 0 {
			t.Errorf("%s: TargetLoad = %v, want 0", e.Name, e.TargetLoad)
		}
	})
}

func TestCountExercises(t *testing.T) {
	p := testProgram(t, 100)
	if got := p.CountExercises(); got != 4 {
		t.Errorf("CountExercises = %d, want 4", got)
	}
}

func TestProgramJSONRoundTrip(t *testing.T) {
	p := testProgram(t, 102.5)

	data, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var got Program
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if got.ID != p.ID || got.CountExercises() != p.CountExercises() {
		t.Errorf("round trip mismatch: got %v exercises, want %v", got.CountExercises(), p.CountExercises())
	}
	if got.Blocks[0].Sessions[0].Exercises[0].TargetLoad != 102.5 {
		t.Errorf("TargetLoad = %v, want 102.5", got.Blocks[0].Sessions[0].Exercises[0].TargetLoad)
	}
}

func TestValidateRejectsNegativeLoad(t *testing.T) {
	p := testProgram(t, 100)
	p.Blocks[0].Sessions[0].Exercises[0].TargetLoad = -5

	if err := p.Validate(); err == nil {
		t.Error("Validate accepted negative target load")
	}
}
