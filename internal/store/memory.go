// internal/store/memory.go
//
// In-memory cache of piece choices made by deterministic enemies.
// A choice depends only on the enemy and the well, so a repeated request
// for the same pair can skip the search entirely.
//
// Characteristics:
//   - Entries keyed by Key(enemy, well) in a map.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - Bounded: once full, Save evicts an arbitrary entry before inserting.
//   - State is lost when the process restarts.

package store

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"

	"github.com/hatetris/go-server/internal/game"
)

var ErrNotFound = errors.New("not found")

// Entry is a cached choice.
type Entry struct {
	Enemy   string  `json:"enemy"`
	PieceID int     `json:"pieceId"`
	Rating  float64 `json:"rating,omitempty"`
}

// Store defines the cache interface.
// Implementations may be backed by memory (this package), Redis, etc.
type Store interface {
	// Save records or replaces the entry for key.
	Save(ctx context.Context, key string, e Entry) error

	// Get returns the entry for key, or ErrNotFound.
	Get(ctx context.Context, key string) (Entry, error)
}

// Key builds the cache key for an enemy and a well.
func Key(enemy string, w game.Well) string {
	var b strings.Builder
	b.WriteString(enemy)
	b.WriteByte('|')
	for i, row := range w {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatUint(uint64(row), 16))
	}
	return b.String()
}

type memory struct {
	mu         sync.RWMutex     // guards entries
	entries    map[string]Entry // keyed by Key()
	maxEntries int
}

// NewMemoryStore constructs an in-memory Store holding at most maxEntries
// entries (at least one).
func NewMemoryStore(maxEntries int) Store {
	if maxEntries < 1 {
		maxEntries = 1
	}
	return &memory{entries: make(map[string]Entry), maxEntries: maxEntries}
}

func (m *memory) Save(ctx context.Context, key string, e Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.entries[key]; !ok && len(m.entries) >= m.maxEntries {
		for k := range m.entries {
			delete(m.entries, k)
			break
		}
	}
	m.entries[key] = e
	return nil
}

func (m *memory) Get(ctx context.Context, key string) (Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if e, ok := m.entries[key]; ok {
		return e, nil
	}
	return Entry{}, ErrNotFound
}
