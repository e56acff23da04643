package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/pushr/marketplace/internal/core/domain"
	"github.com/pushr/marketplace/internal/core/ports"
)

// AcceptAllVerifier is the mock backend: every credential pair is accepted.
type AcceptAllVerifier struct{}

func (AcceptAllVerifier) Verify(context.Context, string, string) error { return nil }

// AuthOptions tunes the simulated backend.
type AuthOptions struct {
	// Latency is the artificial delay before a login or signup completes.
	Latency time.Duration
	// Starting values for the role-specific user attributes.
	WalletBalance float64
	FloatJobs     int
	Rating        float64
}

// AuthService simulates login and signup and installs the resulting user.
type AuthService struct {
	sessions ports.SessionService
	guard    ports.PendingGuard
	verifier ports.CredentialVerifier
	recorder Recorder
	opts     AuthOptions
	log      zerolog.Logger
	sleep    func(time.Duration)
}

// NewAuthService wires an AuthService. verifier and recorder may be nil.
func NewAuthService(
	sessions ports.SessionService,
	guard ports.PendingGuard,
	verifier ports.CredentialVerifier,
	recorder Recorder,
	opts AuthOptions,
	log zerolog.Logger,
) *AuthService {
	if verifier == nil {
		verifier = AcceptAllVerifier{}
	}
	if recorder == nil {
		recorder = nopRecorder{}
	}
	if opts.Rating <= 0 {
		opts.Rating = 5
	}
	return &AuthService{
		sessions: sessions,
		guard:    guard,
		verifier: verifier,
		recorder: recorder,
		opts:     opts,
		log:      log,
		sleep:    time.Sleep,
	}
}

// Login signs a session in. An admin role yields a single-purpose admin user;
// any other request yields a user holding both marketplace roles, active as
// the requested role when it is one of them and as customer otherwise.
func (s *AuthService) Login(ctx context.Context, sessionID string, in ports.LoginInput) (domain.Presentation, error) {
	id := domain.Identity{
		ID:     uuid.NewString(),
		Name:   nameFromEmail(in.Email),
		Email:  in.Email,
		Avatar: avatarRef(nameFromEmail(in.Email)),
	}

	var user *domain.User
	if in.Role == domain.RoleAdmin {
		user = domain.NewAdminUser(id)
	} else {
		user = s.withAttributes(domain.NewMarketplaceUser(id, in.Role))
	}

	return s.authenticate(ctx, "login", sessionID, in.Email, in.Password, user)
}

// Signup registers a new marketplace user and signs the session in.
func (s *AuthService) Signup(ctx context.Context, sessionID string, in ports.SignupInput) (domain.Presentation, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = nameFromEmail(in.Email)
	}
	id := domain.Identity{
		ID:     uuid.NewString(),
		Name:   name,
		Email:  in.Email,
		Avatar: avatarRef(name),
	}
	user := s.withAttributes(domain.NewMarketplaceUser(id, in.Role))

	return s.authenticate(ctx, "signup", sessionID, in.Email, in.Password, user)
}

func (s *AuthService) authenticate(ctx context.Context, flow, sessionID, email, password string, user *domain.User) (domain.Presentation, error) {
	// 1. Fail fast on unknown sessions before holding the pending flag.
	if _, err := s.sessions.Present(ctx, sessionID); err != nil {
		return domain.Presentation{}, fmt.Errorf("%s: %w", flow, err)
	}

	// 2. One pending auth flow per session.
	ok, err := s.guard.Acquire(ctx, sessionID)
	if err != nil {
		return domain.Presentation{}, fmt.Errorf("%s: pending guard: %w", flow, err)
	}
	if !ok {
		return domain.Presentation{}, fmt.Errorf("%s: %w", flow, domain.ErrAuthPending)
	}

	// Once started the flow always completes, so the caller's cancellation is dropped.
	ctx = context.WithoutCancel(ctx)
	defer func() {
		if err := s.guard.Release(ctx, sessionID); err != nil {
			s.log.Warn().Err(err).Str("session_id", sessionID).Msg("failed to release pending guard")
		}
	}()

	// 3. Simulated backend round trip.
	start := time.Now()
	if err := s.verifier.Verify(ctx, email, password); err != nil {
		return domain.Presentation{}, fmt.Errorf("%s: %w", flow, err)
	}
	if s.opts.Latency > 0 {
		s.sleep(s.opts.Latency)
	}
	s.recorder.AuthLatency(time.Since(start))

	// 4. Install the user.
	p, err := s.sessions.Apply(ctx, sessionID, domain.Authenticate{User: user})
	if err != nil {
		return domain.Presentation{}, fmt.Errorf("%s: %w", flow, err)
	}

	s.log.Info().
		Str("session_id", sessionID).
		Str("flow", flow).
		Str("role", string(user.Role)).
		Str("screen", string(p.Screen)).
		Msg("user signed in")
	return p, nil
}

func (s *AuthService) withAttributes(u *domain.User) *domain.User {
	wallet := s.opts.WalletBalance
	jobs := s.opts.FloatJobs
	rating := s.opts.Rating
	u.WalletBalance = &wallet
	u.FloatJobsRemaining = &jobs
	u.Rating = &rating
	return u
}

// nameFromEmail derives a display name from the local part of an address.
func nameFromEmail(email string) string {
	local, _, _ := strings.Cut(strings.TrimSpace(email), "@")
	if local == "" {
		return "Pushr user"
	}
	return local
}

// avatarRef returns an initials-based avatar reference.
func avatarRef(name string) string {
	var initials []rune
	for _, word := range strings.FieldsFunc(name, func(r rune) bool {
		return r == ' ' || r == '.' || r == '_' || r == '-'
	}) {
		initials = append(initials, []rune(strings.ToUpper(word))[0])
		if len(initials) == 2 {
			break
		}
	}
	if len(initials) == 0 {
		return "initials:?"
	}
	return "initials:" + string(initials)
}
