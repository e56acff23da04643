package ports

import (
	"context"

	"github.com/pushr/marketplace/internal/core/domain"
)

// SessionService owns every mutation of a session. Each call applies exactly
// one event as a single atomic transition.
type SessionService interface {
	Open(ctx context.Context) (domain.Presentation, error)
	Present(ctx context.Context, sessionID string) (domain.Presentation, error)
	Apply(ctx context.Context, sessionID string, event domain.Event) (domain.Presentation, error)
	Logout(ctx context.Context, sessionID string) (domain.Presentation, error)
	Journal(ctx context.Context, sessionID string, limit int) ([]domain.TransitionRecord, error)
}

// Haptics is the advisory feedback channel of the device. Implementations
// are best-effort; callers ignore their errors.
type Haptics interface {
	Impact(ctx context.Context) error
}
