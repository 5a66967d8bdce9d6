// ABOUTME: Degraded in-memory queue used when local durable storage is unavailable.
// ABOUTME: Same contract as the Badger buffer but nothing survives the process.
package buffer

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/harperreed/coach/internal/models"
)

// MemoryBuffer is the fallback queue for devices without usable local
// storage. Degraded() is true so callers can surface a warning instead
// of silently losing data on exit.
type MemoryBuffer struct {
	mu     sync.Mutex
	sets   []*models.PendingSet
	byID   map[uuid.UUID]struct{}
	closed bool
}

// NewMemoryBuffer creates an empty in-memory queue.
func NewMemoryBuffer() *MemoryBuffer {
	return &MemoryBuffer{byID: make(map[uuid.UUID]struct{})}
}

// Degraded always reports true for the in-memory queue.
func (m *MemoryBuffer) Degraded() bool { return true }

// Enqueue appends a validated set, ignoring ids already queued.
func (m *MemoryBuffer) Enqueue(set *models.PendingSet) error {
	if err := set.Validate(); err != nil {
		return fmt.Errorf("enqueue: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return fmt.Errorf("enqueue: queue closed")
	}
	if _, ok := m.byID[set.ID]; ok {
		return nil
	}
	m.sets = append(m.sets, set)
	m.byID[set.ID] = struct{}{}
	return nil
}

// Drain flushes oldest-first, stopping at the first remote failure.
func (m *MemoryBuffer) Drain(ctx context.Context, remote RemoteStore) (int, error) {
	flushed := 0
	for {
		m.mu.Lock()
		if len(m.sets) == 0 {
			m.mu.Unlock()
			return flushed, nil
		}
		set := m.sets[0]
		m.mu.Unlock()

		if err := ctx.Err(); err != nil {
			return flushed, err
		}
		if err := remote.UpsertSetLog(ctx, set); err != nil {
			return flushed, fmt.Errorf("flush set %s: %w", set.ID, err)
		}

		m.mu.Lock()
		m.sets = m.sets[1:]
		delete(m.byID, set.ID)
		m.mu.Unlock()
		flushed++
	}
}

// ListPending returns a copy of the queue in insertion order.
func (m *MemoryBuffer) ListPending() ([]*models.PendingSet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*models.PendingSet, len(m.sets))
	copy(out, m.sets)
	return out, nil
}

// Len returns the number of queued sets.
func (m *MemoryBuffer) Len() (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sets), nil
}

// Clear drops everything without flushing.
func (m *MemoryBuffer) Clear() (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := len(m.sets)
	m.sets = nil
	m.byID = make(map[uuid.UUID]struct{})
	return n, nil
}

// Close marks the queue closed. Queued sets are lost.
func (m *MemoryBuffer) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}
