// ABOUTME: Per-session state tracking for the adjustment engine.
// ABOUTME: Monitoring -> Triggered -> Applied -> Monitoring, for diagnostics only.
package engine

import (
	"sync"

	"github.com/google/uuid"
)

// State is the observable phase of a live session's adjustment loop.
// There is no terminal state while the session is active; session
// teardown is the caller's concern.
type State string

const (
	StateMonitoring State = "monitoring"
	StateTriggered  State = "triggered"
	StateApplied    State = "applied"
)

type sessionTracker struct {
	mu     sync.Mutex
	states map[uuid.UUID]State
}

func newSessionTracker() *sessionTracker {
	return &sessionTracker{states: make(map[uuid.UUID]State)}
}

// observe registers a session in the monitoring state if unseen.
func (t *sessionTracker) observe(sessionID uuid.UUID) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.states[sessionID]; !ok {
		t.states[sessionID] = StateMonitoring
	}
}

func (t *sessionTracker) transition(sessionID uuid.UUID, s State) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.states[sessionID] = s
}

func (t *sessionTracker) state(sessionID uuid.UUID) State {
	t.mu.Lock()
	defer t.mu.Unlock()
	if s, ok := t.states[sessionID]; ok {
		return s
	}
	return StateMonitoring
}
