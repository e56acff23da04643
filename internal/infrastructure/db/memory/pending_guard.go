package memory

import (
	"context"
	"sync"
)

// PendingGuard tracks in-flight auth flows of this process.
type PendingGuard struct {
	mu      sync.Mutex
	pending map[string]struct{}
}

func NewPendingGuard() *PendingGuard {
	return &PendingGuard{pending: make(map[string]struct{})}
}

func (g *PendingGuard) Acquire(_ context.Context, sessionID string) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, busy := g.pending[sessionID]; busy {
		return false, nil
	}
	g.pending[sessionID] = struct{}{}
	return true, nil
}

func (g *PendingGuard) Release(_ context.Context, sessionID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.pending, sessionID)
	return nil
}
