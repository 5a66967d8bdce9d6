// ABOUTME: PendingSet and SetLog models for offline set logging.
// ABOUTME: The client-generated id makes the remote flush idempotent.
package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// PendingSet is a locally buffered, not-yet-synced workout set.
// It lives in the offline queue until flushed; the remote SetLog keyed
// by the same id is the system of record thereafter.
type PendingSet struct {
	ID        uuid.UUID `json:"id"`
	SessionID uuid.UUID `json:"session_id"`
	Exercise  string    `json:"exercise"`
	Weight    float64   `json:"weight"`
	Reps      int       `json:"reps"`
	RPE       *float64  `json:"rpe,omitempty"`
	Tempo     *string   `json:"tempo,omitempty"`
	Velocity  *float64  `json:"velocity,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// NewPendingSet creates a PendingSet with a fresh client-generated id.
func NewPendingSet(sessionID uuid.UUID, exercise string, weight float64, reps int) *PendingSet {
	return &PendingSet{
		ID:        uuid.New(),
		SessionID: sessionID,
		Exercise:  exercise,
		Weight:    weight,
		Reps:      reps,
		CreatedAt: time.Now(),
	}
}

// WithRPE sets the rating of perceived exertion.
func (p *PendingSet) WithRPE(rpe float64) *PendingSet {
	p.RPE = &rpe
	return p
}

// WithTempo sets the tempo notation (e.g. "3-1-1").
func (p *PendingSet) WithTempo(tempo string) *PendingSet {
	p.Tempo = &tempo
	return p
}

// WithVelocity sets the mean concentric velocity in m/s.
func (p *PendingSet) WithVelocity(v float64) *PendingSet {
	p.Velocity = &v
	return p
}

// Validate rejects malformed sets before they reach the queue.
func (p *PendingSet) Validate() error {
	if p.ID == uuid.Nil {
		return fmt.Errorf("pending set missing id")
	}
	if p.SessionID == uuid.Nil {
		return fmt.Errorf("pending set missing session id")
	}
	if p.Exercise == "" {
		return fmt.Errorf("pending set missing exercise")
	}
	if p.Weight < 0 {
		return fmt.Errorf("weight must be non-negative, got %v", p.Weight)
	}
	if p.Reps <= 0 {
		return fmt.Errorf("reps must be positive, got %d", p.Reps)
	}
	if p.RPE != nil && (*p.RPE < 0 || *p.RPE > 10) {
		return fmt.Errorf("rpe must be in [0,10], got %v", *p.RPE)
	}
	return nil
}

// SetLog is the authoritative remote set record. It mirrors PendingSet
// exactly and shares its id, so a retried flush upserts instead of
// duplicating.
type SetLog struct {
	ID        uuid.UUID `json:"id"`
	SessionID uuid.UUID `json:"session_id"`
	Exercise  string    `json:"exercise"`
	Weight    float64   `json:"weight"`
	Reps      int       `json:"reps"`
	RPE       *float64  `json:"rpe,omitempty"`
	Tempo     *string   `json:"tempo,omitempty"`
	Velocity  *float64  `json:"velocity,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	SyncedAt  time.Time `json:"synced_at"`
}

// SetLogFromPending converts a queued set into its remote form.
func SetLogFromPending(p *PendingSet) *SetLog {
	return &SetLog{
		ID:        p.ID,
		SessionID: p.SessionID,
		Exercise:  p.Exercise,
		Weight:    p.Weight,
		Reps:      p.Reps,
		RPE:       p.RPE,
		Tempo:     p.Tempo,
		Velocity:  p.Velocity,
		CreatedAt: p.CreatedAt,
		SyncedAt:  time.Now(),
	}
}
