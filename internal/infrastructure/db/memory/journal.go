package memory

import (
	"context"
	"sync"

	"github.com/pushr/marketplace/internal/core/domain"
)

const defaultJournalCapacity = 256

// Journal keeps the last capacity transitions of every session.
type Journal struct {
	mu       sync.Mutex
	capacity int
	bySess   map[string][]domain.TransitionRecord
}

// NewJournal returns a Journal. capacity <= 0 uses defaultJournalCapacity.
func NewJournal(capacity int) *Journal {
	if capacity <= 0 {
		capacity = defaultJournalCapacity
	}
	return &Journal{capacity: capacity, bySess: make(map[string][]domain.TransitionRecord)}
}

func (j *Journal) Record(_ context.Context, rec domain.TransitionRecord) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	recs := append(j.bySess[rec.SessionID], rec)
	if over := len(recs) - j.capacity; over > 0 {
		recs = append([]domain.TransitionRecord(nil), recs[over:]...)
	}
	j.bySess[rec.SessionID] = recs
	return nil
}

func (j *Journal) List(_ context.Context, sessionID string, limit int) ([]domain.TransitionRecord, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	recs := j.bySess[sessionID]
	if limit > 0 && len(recs) > limit {
		recs = recs[len(recs)-limit:]
	}
	return append([]domain.TransitionRecord(nil), recs...), nil
}
