package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/pushr/marketplace/internal/core/domain"
)

// ---------------------------------------------------------------------------
// In-memory stubs
// ---------------------------------------------------------------------------

type stubStore struct {
	mu       sync.Mutex
	sessions map[string]domain.Session
	saves    int
	saveErr  error
	// conflicts is the number of saves rejected as concurrent writes.
	conflicts int
}

func newStubStore() *stubStore {
	return &stubStore{sessions: make(map[string]domain.Session)}
}

func (r *stubStore) Get(_ context.Context, id string) (domain.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		return domain.Session{}, domain.ErrSessionNotFound
	}
	return s.Clone(), nil
}

func (r *stubStore) Save(_ context.Context, s domain.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saveErr != nil {
		return r.saveErr
	}
	if r.conflicts > 0 {
		r.conflicts--
		return domain.ErrVersionConflict
	}
	r.saves++
	r.sessions[s.ID] = s.Clone()
	return nil
}

func (r *stubStore) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
	return nil
}

type stubJournal struct {
	mu        sync.Mutex
	records   []domain.TransitionRecord
	recordErr error
}

func (j *stubJournal) Record(_ context.Context, rec domain.TransitionRecord) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.recordErr != nil {
		return j.recordErr
	}
	j.records = append(j.records, rec)
	return nil
}

func (j *stubJournal) List(_ context.Context, sessionID string, limit int) ([]domain.TransitionRecord, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	var out []domain.TransitionRecord
	for _, r := range j.records {
		if r.SessionID == sessionID {
			out = append(out, r)
		}
	}
	if len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out, nil
}

// lockSequencer serializes every key behind one mutex.
type lockSequencer struct {
	mu sync.Mutex
}

func (q *lockSequencer) Do(ctx context.Context, _ string, fn func(context.Context) error) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	return fn(ctx)
}

type stubGuard struct {
	mu         sync.Mutex
	pending    map[string]bool
	acquireErr error
	released   int
}

func newStubGuard() *stubGuard {
	return &stubGuard{pending: make(map[string]bool)}
}

func (g *stubGuard) Acquire(_ context.Context, id string) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.acquireErr != nil {
		return false, g.acquireErr
	}
	if g.pending[id] {
		return false, nil
	}
	g.pending[id] = true
	return true, nil
}

func (g *stubGuard) Release(_ context.Context, id string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.pending, id)
	g.released++
	return nil
}

type stubRecorder struct {
	mu          sync.Mutex
	transitions []string
	latencies   []time.Duration
}

func (r *stubRecorder) Transition(event string, screen domain.Screen) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.transitions = append(r.transitions, event+"->"+string(screen))
}

func (r *stubRecorder) AuthLatency(d time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.latencies = append(r.latencies, d)
}

type stubHaptics struct {
	calls chan struct{}
	err   error
}

func (h *stubHaptics) Impact(context.Context) error {
	h.calls <- struct{}{}
	return h.err
}

type rejectVerifier struct{}

func (rejectVerifier) Verify(context.Context, string, string) error {
	return domain.ErrInvalidCredentials
}

var errBoom = errors.New("boom")
