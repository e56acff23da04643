package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/pushr/marketplace/internal/core/domain"
	"github.com/pushr/marketplace/internal/core/ports"
)

// NopHaptics is used where the device has no haptic engine.
type NopHaptics struct{}

func (NopHaptics) Impact(context.Context) error { return nil }

// RoleService switches the active role of a signed-in session.
type RoleService struct {
	sessions ports.SessionService
	haptics  ports.Haptics
	log      zerolog.Logger
}

// NewRoleService wires a RoleService. haptics may be nil.
func NewRoleService(sessions ports.SessionService, haptics ports.Haptics, log zerolog.Logger) *RoleService {
	if haptics == nil {
		haptics = NopHaptics{}
	}
	return &RoleService{sessions: sessions, haptics: haptics, log: log}
}

// SwitchRole makes role the active role, acquiring it when it is a switchable
// role the user does not hold yet, and resets the tab to the role's default.
// Without a signed-in user nothing happens. Haptic feedback fires only when
// the switch changed the session.
func (s *RoleService) SwitchRole(ctx context.Context, sessionID string, role domain.Role) (domain.Presentation, error) {
	before, err := s.sessions.Present(ctx, sessionID)
	if err != nil {
		return domain.Presentation{}, err
	}
	p, err := s.sessions.Apply(ctx, sessionID, domain.SwitchRole{Role: role})
	if err != nil {
		return domain.Presentation{}, err
	}
	if p.Session.CurrentUser == nil || p.Session.Version == before.Session.Version {
		return p, nil
	}

	go func(ctx context.Context) {
		if err := s.haptics.Impact(ctx); err != nil {
			s.log.Debug().Err(err).Str("session_id", sessionID).Msg("haptic feedback unavailable")
		}
	}(context.WithoutCancel(ctx))

	return p, nil
}
