package persistence

import (
	"context"
	"sync"

	"github.com/preston-bernstein/dread-tracker/internal/domain"
	"github.com/preston-bernstein/dread-tracker/internal/state"
)

// MemoryGateway holds the encoded document in memory. Used by tests and
// by callers that want a throwaway tracker.
type MemoryGateway struct {
	mu      sync.Mutex
	data    []byte
	saves   int
	SaveErr error
	LoadErr error
}

func NewMemoryGateway() *MemoryGateway {
	return &MemoryGateway{}
}

func (g *MemoryGateway) Load(ctx context.Context) (state.State, error) {
	if err := ctx.Err(); err != nil {
		return state.State{}, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.LoadErr != nil {
		return state.State{}, g.LoadErr
	}
	if g.data == nil {
		return state.State{}, domain.ErrNotFound
	}
	return state.Decode(g.data)
}

func (g *MemoryGateway) Save(ctx context.Context, st state.State) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.SaveErr != nil {
		return g.SaveErr
	}
	data, err := state.Encode(st)
	if err != nil {
		return err
	}
	g.data = data
	g.saves++
	return nil
}

// Saves counts successful saves.
func (g *MemoryGateway) Saves() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.saves
}

// Raw returns the last saved document.
func (g *MemoryGateway) Raw() []byte {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]byte(nil), g.data...)
}

func (g *MemoryGateway) Close() error { return nil }

// SetRaw replaces the stored document with data as if it had been saved earlier.
func (g *MemoryGateway) SetRaw(data []byte) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.data = append([]byte(nil), data...)
}
