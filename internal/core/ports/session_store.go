package ports

import (
	"context"

	"github.com/pushr/marketplace/internal/core/domain"
)

// SessionStore holds the live session snapshots. Save replaces a snapshot as a
// whole; implementations must never expose a partially written session.
type SessionStore interface {
	// Get returns a copy of the session or domain.ErrSessionNotFound.
	Get(ctx context.Context, id string) (domain.Session, error)
	Save(ctx context.Context, s domain.Session) error
	Delete(ctx context.Context, id string) error
}

// PendingGuard is the per-session "loading" flag of the login/signup flow.
type PendingGuard interface {
	// Acquire returns false when an auth flow is already pending for sessionID.
	Acquire(ctx context.Context, sessionID string) (bool, error)
	Release(ctx context.Context, sessionID string) error
}

// TransitionJournal is the audit trail of applied session transitions.
type TransitionJournal interface {
	Record(ctx context.Context, rec domain.TransitionRecord) error
	// List returns the most recent records for sessionID, oldest first.
	List(ctx context.Context, sessionID string, limit int) ([]domain.TransitionRecord, error)
}
