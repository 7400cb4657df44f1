// internal/store/memory.go
//
// In-memory game store for the stub API.
//
// Characteristics:
//   - Stores *engine.Game objects keyed by a sequential int64 ID.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - State is lost when the process restarts.

package store

import (
	"context"
	"errors"
	"sync"

	"github.com/EmmanuelRendon01/CodeWordle/internal/stubserver/engine"
)

// ErrNotFound is returned by Get for unknown IDs.
var ErrNotFound = errors.New("not found")

// Store defines the persistence interface for games.
type Store interface {
	// Save persists or updates a game, assigning an ID to new games.
	Save(ctx context.Context, g *engine.Game) error

	// Get retrieves a game by ID.
	Get(ctx context.Context, id int64) (*engine.Game, error)

	// Active returns the owner's in-progress game, or nil.
	Active(ctx context.Context, owner string) (*engine.Game, error)
}

type memory struct {
	mu     sync.RWMutex
	nextID int64
	games  map[int64]*engine.Game
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{games: make(map[int64]*engine.Game)}
}

func (m *memory) Save(ctx context.Context, g *engine.Game) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if g.ID == 0 {
		m.nextID++
		g.ID = m.nextID
	}
	m.games[g.ID] = g
	return nil
}

func (m *memory) Get(ctx context.Context, id int64) (*engine.Game, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if g, ok := m.games[id]; ok {
		return g, nil
	}
	return nil, ErrNotFound
}

// Active scans all games; the stub never holds more than a handful.
func (m *memory) Active(ctx context.Context, owner string) (*engine.Game, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, g := range m.games {
		if g.Owner == owner && g.Status == engine.InProgress {
			return g, nil
		}
	}
	return nil, nil
}
