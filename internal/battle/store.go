package battle

import (
	"context"
	"sync"

	"github.com/cory-johannsen/skirmish/internal/game/actor"
)

// RosterStore persists the hero roster between sessions.
type RosterStore interface {
	// Load returns the saved roster in party order; an empty store yields a
	// nil slice and no error.
	Load(ctx context.Context) ([]*actor.Actor, error)
	// Save replaces the saved roster with heroes.
	Save(ctx context.Context, heroes []*actor.Actor) error
}

// MemoryStore is an in-process RosterStore. It keeps deep copies, so callers
// cannot mutate the saved roster through returned or passed pointers.
type MemoryStore struct {
	mu     sync.Mutex
	heroes []*actor.Actor
	saves  int
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore { return &MemoryStore{} }

// Load implements RosterStore.
func (m *MemoryStore) Load(_ context.Context) ([]*actor.Actor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return cloneAll(m.heroes), nil
}

// Save implements RosterStore.
func (m *MemoryStore) Save(_ context.Context, heroes []*actor.Actor) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.heroes = cloneAll(heroes)
	m.saves++
	return nil
}

// Saves reports how many times Save has been called.
func (m *MemoryStore) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

func cloneAll(in []*actor.Actor) []*actor.Actor {
	if len(in) == 0 {
		return nil
	}
	out := make([]*actor.Actor, len(in))
	for i, a := range in {
		out[i] = a.Clone()
	}
	return out
}
