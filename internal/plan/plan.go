// ABOUTME: Typed LoadPlan tree: program, blocks, sessions, exercise leaves.
// ABOUTME: Only exercise leaves carry a target load; structure is fixed shape.
package plan

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Program is the root of an athlete's active training plan.
type Program struct {
	ID        uuid.UUID `json:"id"`
	AthleteID uuid.UUID `json:"athlete_id"`
	Name      string    `json:"name"`
	Blocks    []Block   `json:"blocks"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Block is a training phase within a program.
type Block struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Sessions []Session `json:"sessions"`
}

// Session is one planned training day within a block.
type Session struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Exercises []Exercise `json:"exercises"`
}

// Exercise is a leaf node carrying the prescribed target load.
type Exercise struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Sets       int       `json:"sets"`
	Reps       int       `json:"reps"`
	TargetLoad float64   `json:"target_load"`
}

// NewProgram creates an empty program for the given athlete.
func NewProgram(athleteID uuid.UUID, name string) *Program {
	return &Program{
		ID:        uuid.New(),
		AthleteID: athleteID,
		Name:      name,
		UpdatedAt: time.Now(),
	}
}

// Validate rejects structurally broken plans.
func (p *Program) Validate() error {
	if p.AthleteID == uuid.Nil {
		return fmt.Errorf("program missing athlete id")
	}
	for bi, b := range p.Blocks {
		for si, s := range b.Sessions {
			for ei, e := range s.Exercises {
				if e.TargetLoad < 0 {
					return fmt.Errorf("block %d session %d exercise %d: negative target load %v", bi, si, ei, e.TargetLoad)
				}
			}
		}
	}
	return nil
}

// CountExercises returns the number of exercise leaves in the tree.
func (p *Program) CountExercises() int {
	n := 0
	for _, b := range p.Blocks {
		for _, s := range b.Sessions {
			n += len(s.Exercises)
		}
	}
	return n
}

// Visit walks every exercise leaf in document order. The visitor may
// mutate the leaf in place; structure, ordering, and node identity are
// untouched by the walk itself.
func (p *Program) Visit(fn func(e *Exercise)) {
	for bi := range p.Blocks {
		for si := range p.Blocks[bi].Sessions {
			for ei := range p.Blocks[bi].Sessions[si].Exercises {
				fn(&p.Blocks[bi].Sessions[si].Exercises[ei])
			}
		}
	}
}

// ScaleTargetLoads multiplies every leaf's target load by factor,
// flooring at 0. No other leaf field is altered.
func ScaleTargetLoads(p *Program, factor float64) {
	p.Visit(func(e *Exercise) {
		scaled := e.TargetLoad * factor
		if scaled < 0 {
			scaled = 0
		}
		e.TargetLoad = scaled
	})
	p.UpdatedAt = time.Now()
}
