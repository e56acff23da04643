package handler

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/pushr/marketplace/internal/api/middleware"
	"github.com/pushr/marketplace/internal/core/domain"
	"github.com/pushr/marketplace/internal/core/ports"
)

var fixedNow = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

type stubSessionService struct {
	session domain.Session
	applied []domain.Event
	err     error
	records []domain.TransitionRecord
	limit   int
}

func newStubSessionService() *stubSessionService {
	s := domain.NewSession("sess-1", 3, fixedNow)
	return &stubSessionService{session: s}
}

func (s *stubSessionService) Open(context.Context) (domain.Presentation, error) {
	if s.err != nil {
		return domain.Presentation{}, s.err
	}
	return domain.Present(s.session), nil
}

func (s *stubSessionService) Present(_ context.Context, id string) (domain.Presentation, error) {
	if s.err != nil {
		return domain.Presentation{}, s.err
	}
	if id != s.session.ID {
		return domain.Presentation{}, domain.ErrSessionNotFound
	}
	return domain.Present(s.session), nil
}

func (s *stubSessionService) Apply(_ context.Context, id string, event domain.Event) (domain.Presentation, error) {
	if s.err != nil {
		return domain.Presentation{}, s.err
	}
	if id != s.session.ID {
		return domain.Presentation{}, domain.ErrSessionNotFound
	}
	s.applied = append(s.applied, event)
	s.session, _ = domain.Transition(s.session, event)
	return domain.Present(s.session), nil
}

func (s *stubSessionService) Logout(ctx context.Context, id string) (domain.Presentation, error) {
	return s.Apply(ctx, id, domain.Logout{})
}

func (s *stubSessionService) Journal(_ context.Context, id string, limit int) ([]domain.TransitionRecord, error) {
	if s.err != nil {
		return nil, s.err
	}
	if id != s.session.ID {
		return nil, domain.ErrSessionNotFound
	}
	s.limit = limit
	return s.records, nil
}

type stubRoleService struct {
	sessions *stubSessionService
	roles    []domain.Role
}

func (r *stubRoleService) SwitchRole(ctx context.Context, id string, role domain.Role) (domain.Presentation, error) {
	r.roles = append(r.roles, role)
	return r.sessions.Apply(ctx, id, domain.SwitchRole{Role: role})
}

type stubAuthService struct {
	loginFn  func(ctx context.Context, sessionID string, in ports.LoginInput) (domain.Presentation, error)
	signupFn func(ctx context.Context, sessionID string, in ports.SignupInput) (domain.Presentation, error)
}

func (s *stubAuthService) Login(ctx context.Context, sessionID string, in ports.LoginInput) (domain.Presentation, error) {
	return s.loginFn(ctx, sessionID, in)
}

func (s *stubAuthService) Signup(ctx context.Context, sessionID string, in ports.SignupInput) (domain.Presentation, error) {
	return s.signupFn(ctx, sessionID, in)
}

type stubTokens struct{}

func (stubTokens) Issue(sessionID string) (string, time.Time, error) {
	return "token-" + sessionID, time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC), nil
}

// newContext builds an echo context for method/target carrying body as JSON.
// A non-empty sessionID simulates the Auth middleware.
func newContext(method, target, body, sessionID string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if sessionID != "" {
		c.Set(middleware.ContextSessionID, sessionID)
	}
	return c, rec
}
