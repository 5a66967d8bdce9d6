// ABOUTME: Durable offline queue for workout sets, backed by Badger.
// ABOUTME: FIFO drain to a remote store; stops at the first failure to preserve order.
package buffer

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"

	"github.com/dgraph-io/badger/v3"
	"github.com/google/uuid"
	"github.com/harperreed/coach/internal/models"
)

// Key layout: entries live under "q:" + big-endian sequence number so
// iteration order is insertion order. "i:" + id maps back to the entry
// key for de-duplication. The sequence counter itself lives under "!s"
// which sorts before both prefixes.
var (
	entryPrefix = []byte("q:")
	indexPrefix = []byte("i:")
	seqKey      = []byte("!s")
)

// RemoteStore is the network-bound destination a drain writes to. The
// implementation must be idempotent on the set's client-generated id,
// so a retried flush after a lost success response cannot duplicate.
type RemoteStore interface {
	UpsertSetLog(ctx context.Context, set *models.PendingSet) error
}

// Store is the offline queue contract shared by the durable and the
// degraded in-memory implementations.
type Store interface {
	Enqueue(set *models.PendingSet) error
	Drain(ctx context.Context, remote RemoteStore) (int, error)
	ListPending() ([]*models.PendingSet, error)
	Len() (int, error)
	Clear() (int, error)
	Degraded() bool
	Close() error
}

// Buffer is the durable queue. Instances are independent; open one per
// device (or per test).
type Buffer struct {
	db  *badger.DB
	seq *badger.Sequence
}

// Open opens or creates the queue at dir.
func Open(dir string) (*Buffer, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open queue: %w", err)
	}

	seq, err := db.GetSequence(seqKey, 64)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("open queue sequence: %w", err)
	}

	return &Buffer{db: db, seq: seq}, nil
}

// OpenOrDegraded opens the durable queue, falling back to a
// non-durable in-memory queue when local storage is unavailable.
// Callers must check Degraded() and warn the user: queued sets in
// degraded mode do not survive the process.
func OpenOrDegraded(dir string) (Store, error) {
	b, err := Open(dir)
	if err != nil {
		return NewMemoryBuffer(), err
	}
	return b, nil
}

// Close releases the sequence and closes the underlying store.
func (b *Buffer) Close() error {
	if b.seq != nil {
		_ = b.seq.Release()
	}
	if b.db != nil {
		return b.db.Close()
	}
	return nil
}

// Degraded reports whether the queue is non-durable. Always false for
// the Badger-backed buffer.
func (b *Buffer) Degraded() bool { return false }

// Enqueue validates and persists a set under the next sequence key.
// Enqueueing an id that is already queued is a no-op. Never touches
// the network.
func (b *Buffer) Enqueue(set *models.PendingSet) error {
	if err := set.Validate(); err != nil {
		return fmt.Errorf("enqueue: %w", err)
	}

	data, err := json.Marshal(set)
	if err != nil {
		return fmt.Errorf("marshal pending set: %w", err)
	}

	return b.db.Update(func(txn *badger.Txn) error {
		idKey := indexKey(set.ID)
		if _, err := txn.Get(idKey); err == nil {
			return nil // already queued
		} else if err != badger.ErrKeyNotFound {
			return fmt.Errorf("check queue index: %w", err)
		}

		n, err := b.seq.Next()
		if err != nil {
			return fmt.Errorf("next sequence: %w", err)
		}
		ek := entryKey(n)

		if err := txn.Set(ek, data); err != nil {
			return fmt.Errorf("write queue entry: %w", err)
		}
		if err := txn.Set(idKey, ek); err != nil {
			return fmt.Errorf("write queue index: %w", err)
		}
		return nil
	})
}

// Drain writes queued sets to the remote store oldest-first. Each
// success deletes the local entry. The first failure stops the drain
// with that entry and everything after it still queued; a later Drain
// resumes from it without re-sending earlier entries. Returns the
// number of sets flushed.
func (b *Buffer) Drain(ctx context.Context, remote RemoteStore) (int, error) {
	flushed := 0
	for {
		key, set, err := b.oldest()
		if err != nil {
			return flushed, err
		}
		if set == nil {
			return flushed, nil // queue empty
		}

		if err := ctx.Err(); err != nil {
			return flushed, err
		}
		if err := remote.UpsertSetLog(ctx, set); err != nil {
			return flushed, fmt.Errorf("flush set %s: %w", set.ID, err)
		}

		if err := b.remove(key, set.ID); err != nil {
			return flushed, err
		}
		flushed++
	}
}

// ListPending returns a read-only snapshot of the queue in insertion
// order, for UI badges and diagnostics.
func (b *Buffer) ListPending() ([]*models.PendingSet, error) {
	var sets []*models.PendingSet
	err := b.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = entryPrefix
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			var set models.PendingSet
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &set)
			}); err != nil {
				return fmt.Errorf("read queue entry: %w", err)
			}
			sets = append(sets, &set)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sets, nil
}

// Len returns the number of queued sets.
func (b *Buffer) Len() (int, error) {
	n := 0
	err := b.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = entryPrefix
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			n++
		}
		return nil
	})
	return n, err
}

// Clear unconditionally drops every queued entry without writing it
// remotely. Administrative use only (logout, account reset); callers
// must warn the user first. Returns the number of entries dropped.
func (b *Buffer) Clear() (int, error) {
	n, err := b.Len()
	if err != nil {
		return 0, err
	}
	if err := b.db.DropPrefix(entryPrefix, indexPrefix); err != nil {
		return 0, fmt.Errorf("clear queue: %w", err)
	}
	return n, nil
}

// oldest returns the first entry in queue order, or nil when empty.
func (b *Buffer) oldest() ([]byte, *models.PendingSet, error) {
	var key []byte
	var set *models.PendingSet
	err := b.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = entryPrefix
		it := txn.NewIterator(opts)
		defer it.Close()

		it.Rewind()
		if !it.Valid() {
			return nil
		}
		item := it.Item()
		key = item.KeyCopy(nil)
		var s models.PendingSet
		if err := item.Value(func(val []byte) error {
			return json.Unmarshal(val, &s)
		}); err != nil {
			return fmt.Errorf("read queue entry: %w", err)
		}
		set = &s
		return nil
	})
	return key, set, err
}

func (b *Buffer) remove(key []byte, id uuid.UUID) error {
	return b.db.Update(func(txn *badger.Txn) error {
		if err := txn.Delete(key); err != nil {
			return fmt.Errorf("delete queue entry: %w", err)
		}
		if err := txn.Delete(indexKey(id)); err != nil {
			return fmt.Errorf("delete queue index: %w", err)
		}
		return nil
	})
}

func entryKey(seq uint64) []byte {
	key := make([]byte, len(entryPrefix)+8)
	copy(key, entryPrefix)
	binary.BigEndian.PutUint64(key[len(entryPrefix):], seq)
	return key
}

func indexKey(id uuid.UUID) []byte {
	return append(append([]byte{}, indexPrefix...), id.String()...)
}
