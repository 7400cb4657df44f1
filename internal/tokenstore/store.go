// internal/tokenstore/store.go
//
// Client-side storage for the session token.
// The token is an opaque bearer credential; its presence gates every game
// API call and it is removed when the server rejects it.
//
// Implementations:
//   - Memory: process-local, used by tests and by ":memory:" configs.
//   - SQLite: survives restarts (see sqlite.go), optionally sealed.

package tokenstore

import (
	"context"
	"sync"
)

// Store persists a single session token.
type Store interface {
	// Token returns the stored token, or "" when none is stored.
	Token(ctx context.Context) (string, error)

	// SetToken replaces the stored token.
	SetToken(ctx context.Context, token string) error

	// Clear removes the stored token. Clearing an empty store is not an error.
	Clear(ctx context.Context) error
}

// Memory is an in-memory Store, safe for concurrent use.
type Memory struct {
	mu    sync.RWMutex
	token string
}

// NewMemory constructs an empty in-memory Store.
func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Token(ctx context.Context) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token, nil
}

func (m *Memory) SetToken(ctx context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	return nil
}

func (m *Memory) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	return nil
}
