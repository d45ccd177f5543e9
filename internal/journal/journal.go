// Package journal persists every committed state-changing operation
// to a pebble store so in-memory state can be rebuilt by replay at
// startup. Keys are 8-byte big-endian sequence numbers, so iteration
// order is append order; values are JSON-encoded entries; writes are
// synced.
package journal

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/cockroachdb/pebble"
)

// Journal is an append-only operation log backed by pebble.
type Journal struct {
	mu   sync.Mutex
	db   *pebble.DB
	next uint64
}

// Open opens (or creates) a journal in dir and positions the sequence
// counter after the last recorded entry.
func Open(dir string) (*Journal, error) {
	db, err := pebble.Open(dir, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}

	j := &Journal{db: db}

	// Seek the last key to resume the sequence.
	iter, err := db.NewIter(nil)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("open journal iterator: %w", err)
	}
	if iter.Last() && len(iter.Key()) == 8 {
		j.next = binary.BigEndian.Uint64(iter.Key()) + 1
	}
	if err := iter.Close(); err != nil {
		db.Close()
		return nil, fmt.Errorf("close journal iterator: %w", err)
	}

	return j, nil
}

// Close closes the underlying store.
func (j *Journal) Close() error {
	return j.db.Close()
}

// Append records one committed operation. The write is synced before
// returning.
func (j *Journal) Append(e Entry) error {
	val, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encode journal entry: %w", err)
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, j.next)
	if err := j.db.Set(key, val, pebble.Sync); err != nil {
		return fmt.Errorf("append journal entry: %w", err)
	}
	j.next++
	return nil
}

// Replay iterates every recorded entry in append order, invoking fn
// for each. Replay stops at the first error.
func (j *Journal) Replay(fn func(Entry) error) error {
	iter, err := j.db.NewIter(nil)
	if err != nil {
		return fmt.Errorf("open journal iterator: %w", err)
	}
	defer iter.Close()

	for iter.First(); iter.Valid(); iter.Next() {
		var e Entry
		if err := json.Unmarshal(iter.Value(), &e); err != nil {
			return fmt.Errorf("decode journal entry %x: %w", iter.Key(), err)
		}
		if err := fn(e); err != nil {
			return fmt.Errorf("replay journal entry %x: %w", iter.Key(), err)
		}
	}
	return iter.Error()
}

// Len returns the number of recorded entries.
func (j *Journal) Len() uint64 {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.next
}
