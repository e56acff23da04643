package ports

import (
	"context"

	"github.com/pushr/marketplace/internal/core/domain"
)

// LoginInput is a submitted login form. Email and Password are opaque here;
// the presentation layer checks they are present.
type LoginInput struct {
	Email    string
	Password string
	Role     domain.Role // optional
}

// SignupInput is a submitted signup form.
type SignupInput struct {
	Name     string
	Email    string
	Phone    string
	Password string
	Role     domain.Role // optional, defaults to customer
}

// AuthService simulates the authentication backend.
type AuthService interface {
	Login(ctx context.Context, sessionID string, in LoginInput) (domain.Presentation, error)
	Signup(ctx context.Context, sessionID string, in SignupInput) (domain.Presentation, error)
}

// CredentialVerifier is the seam where a real backend would check credentials
// and surface domain.ErrInvalidCredentials or domain.ErrSimulatedFailure.
type CredentialVerifier interface {
	Verify(ctx context.Context, email, password string) error
}

// RoleService switches the active role of a signed-in session.
type RoleService interface {
	SwitchRole(ctx context.Context, sessionID string, role domain.Role) (domain.Presentation, error)
}
