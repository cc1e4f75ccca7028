// internal/store/memory.go
//
// In-memory session store for HTTP play.
//
// Characteristics:
//   - Stores *Entry values keyed by game ID in a map.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - State is lost when the process restarts.
//   - Each Entry carries its own mutex; a game.Session is single-threaded and
//     callers must hold Entry.Mu while driving it.

package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/robalobadob/mastermind/internal/game"
)

// ErrNotFound is returned by Get for unknown or removed IDs.
var ErrNotFound = errors.New("not found")

// Entry is one live session.
type Entry struct {
	Mu      sync.Mutex
	ID      string
	Session *game.Session
	Created time.Time
}

// Store defines the persistence interface for live sessions.
type Store interface {
	// Save persists or replaces an entry.
	Save(ctx context.Context, e *Entry) error

	// Get retrieves an entry by ID, or ErrNotFound.
	Get(ctx context.Context, id string) (*Entry, error)

	// Delete forgets an entry. Unknown IDs are ignored.
	Delete(ctx context.Context, id string) error

	// Prune removes entries created before cutoff and returns how many.
	Prune(ctx context.Context, cutoff time.Time) int

	// Len reports how many entries are held.
	Len() int
}

type memory struct {
	mu      sync.RWMutex
	entries map[string]*Entry
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{entries: make(map[string]*Entry)}
}

func (m *memory) Save(ctx context.Context, e *Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[e.ID] = e
	return nil
}

func (m *memory) Get(ctx context.Context, id string) (*Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if e, ok := m.entries[id]; ok {
		return e, nil
	}
	return nil, ErrNotFound
}

func (m *memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, id)
	return nil
}

func (m *memory) Prune(ctx context.Context, cutoff time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, e := range m.entries {
		if e.Created.Before(cutoff) {
			delete(m.entries, id)
			n++
		}
	}
	return n
}

func (m *memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
