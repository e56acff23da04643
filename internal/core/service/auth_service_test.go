package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pushr/marketplace/internal/core/domain"
	"github.com/pushr/marketplace/internal/core/ports"
)

func newAuthFixture(t *testing.T, opts AuthOptions) (*fixture, *stubGuard, *AuthService, string) {
	t.Helper()
	f := newFixture(SessionOptions{})
	guard := newStubGuard()
	auth := NewAuthService(f.sessions, guard, nil, f.recorder, opts, zerolog.Nop())
	id := f.open(t)
	_, err := f.sessions.Apply(context.Background(), id, domain.CompleteOnboarding{})
	require.NoError(t, err)
	return f, guard, auth, id
}

func TestAuthService_LoginAsPusher(t *testing.T) {
	_, guard, auth, id := newAuthFixture(t, AuthOptions{})

	p, err := auth.Login(context.Background(), id, ports.LoginInput{Email: "a@b.com", Password: "pw", Role: domain.RolePusher})
	require.NoError(t, err)

	u := p.Session.CurrentUser
	require.NotNil(t, u)
	assert.Equal(t, []domain.Role{domain.RoleCustomer, domain.RolePusher}, u.AvailableRoles)
	assert.Equal(t, domain.RolePusher, u.Role)
	assert.Equal(t, domain.TabJobs, p.Session.ActiveTab)
	assert.Equal(t, domain.ScreenPusherJobs, p.Screen)
	assert.Equal(t, "a", u.Name)
	assert.Equal(t, "a@b.com", u.Email)
	assert.NotEmpty(t, u.ID)
	assert.Equal(t, 1, guard.released)
}

func TestAuthService_LoginRoleDefaults(t *testing.T) {
	cases := []struct {
		name     string
		role     domain.Role
		wantRole domain.Role
		wantTab  domain.Tab
	}{
		{"no role", "", domain.RoleCustomer, domain.TabHome},
		{"customer", domain.RoleCustomer, domain.RoleCustomer, domain.TabHome},
		{"guest is not provisioned", domain.RoleGuest, domain.RoleCustomer, domain.TabHome},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, auth, id := newAuthFixture(t, AuthOptions{})

			p, err := auth.Login(context.Background(), id, ports.LoginInput{Email: "c@d.com", Password: "pw", Role: tc.role})
			require.NoError(t, err)
			assert.Equal(t, tc.wantRole, p.Session.CurrentUser.Role)
			assert.Equal(t, tc.wantTab, p.Session.ActiveTab)
			assert.Equal(t, domain.ScreenCustomerHome, p.Screen)
		})
	}
}

func TestAuthService_LoginAsAdmin(t *testing.T) {
	f, _, auth, id := newAuthFixture(t, AuthOptions{})
	_, err := f.sessions.Apply(context.Background(), id, domain.SelectTab{Tab: domain.TabActivity})
	require.NoError(t, err)

	p, err := auth.Login(context.Background(), id, ports.LoginInput{Email: "root@pushr.app", Password: "pw", Role: domain.RoleAdmin})
	require.NoError(t, err)

	u := p.Session.CurrentUser
	assert.Equal(t, domain.RoleAdmin, u.Role)
	assert.Equal(t, []domain.Role{domain.RoleAdmin}, u.AvailableRoles)
	assert.Nil(t, u.WalletBalance)
	assert.Equal(t, domain.TabActivity, p.Session.ActiveTab, "admin login leaves the tab alone")
	assert.Equal(t, domain.ScreenAdminDashboard, p.Screen)
	assert.Nil(t, p.NavTabs)
}

func TestAuthService_LoginLeavesOnboardingAndAuthView(t *testing.T) {
	f := newFixture(SessionOptions{})
	auth := NewAuthService(f.sessions, newStubGuard(), nil, nil, AuthOptions{}, zerolog.Nop())
	id := f.open(t)
	_, err := f.sessions.Apply(context.Background(), id, domain.SelectAuthView{View: domain.AuthViewSignup})
	require.NoError(t, err)

	p, err := auth.Login(context.Background(), id, ports.LoginInput{Email: "a@b.com", Password: "pw"})
	require.NoError(t, err)
	assert.False(t, p.Session.HasOnboarded)
	assert.Equal(t, domain.AuthViewSignup, p.Session.AuthView)
	assert.Equal(t, domain.ScreenOnboarding, p.Screen)
	assert.NotNil(t, p.Session.CurrentUser)
}

func TestAuthService_Signup(t *testing.T) {
	_, _, auth, id := newAuthFixture(t, AuthOptions{WalletBalance: 12.5, FloatJobs: 3})

	p, err := auth.Signup(context.Background(), id, ports.SignupInput{
		Name:     "Grace Hopper",
		Email:    "grace@pushr.app",
		Password: "pw",
		Role:     domain.RolePusher,
	})
	require.NoError(t, err)

	u := p.Session.CurrentUser
	assert.Equal(t, "Grace Hopper", u.Name)
	assert.Equal(t, "initials:GH", u.Avatar)
	assert.Equal(t, domain.RolePusher, u.Role)
	assert.Equal(t, []domain.Role{domain.RoleCustomer, domain.RolePusher}, u.AvailableRoles)
	assert.Equal(t, domain.TabJobs, p.Session.ActiveTab)
	require.NotNil(t, u.WalletBalance)
	assert.Equal(t, 12.5, *u.WalletBalance)
	require.NotNil(t, u.FloatJobsRemaining)
	assert.Equal(t, 3, *u.FloatJobsRemaining)
	require.NotNil(t, u.Rating)
	assert.Equal(t, 5.0, *u.Rating)
}

func TestAuthService_SignupAdminIsNotASignupRole(t *testing.T) {
	_, _, auth, id := newAuthFixture(t, AuthOptions{})

	p, err := auth.Signup(context.Background(), id, ports.SignupInput{Email: "x@y.z", Password: "pw", Role: domain.RoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleCustomer, p.Session.CurrentUser.Role)
	assert.Equal(t, "x", p.Session.CurrentUser.Name)
}

func TestAuthService_PendingFlowRejectsResubmission(t *testing.T) {
	_, guard, auth, id := newAuthFixture(t, AuthOptions{Latency: time.Millisecond})

	entered := make(chan struct{})
	proceed := make(chan struct{})
	auth.sleep = func(time.Duration) {
		close(entered)
		<-proceed
	}

	var wg sync.WaitGroup
	wg.Add(1)
	var first domain.Presentation
	var firstErr error
	go func() {
		defer wg.Done()
		first, firstErr = auth.Login(context.Background(), id, ports.LoginInput{Email: "a@b.com", Password: "pw"})
	}()

	<-entered
	_, err := auth.Login(context.Background(), id, ports.LoginInput{Email: "a@b.com", Password: "pw"})
	assert.ErrorIs(t, err, domain.ErrAuthPending)

	close(proceed)
	wg.Wait()
	require.NoError(t, firstErr)
	assert.NotNil(t, first.Session.CurrentUser)
	assert.Equal(t, 1, guard.released)
}

func TestAuthService_CancelledCallerStillCompletes(t *testing.T) {
	f, _, auth, id := newAuthFixture(t, AuthOptions{Latency: time.Millisecond})

	ctx, cancel := context.WithCancel(context.Background())
	auth.sleep = func(time.Duration) { cancel() }

	p, err := auth.Login(ctx, id, ports.LoginInput{Email: "a@b.com", Password: "pw"})
	require.NoError(t, err)
	assert.NotNil(t, p.Session.CurrentUser)

	stored, err := f.store.Get(context.Background(), id)
	require.NoError(t, err)
	assert.NotNil(t, stored.CurrentUser)
}

func TestAuthService_RecordsLatency(t *testing.T) {
	f, _, auth, id := newAuthFixture(t, AuthOptions{Latency: time.Millisecond})
	auth.sleep = func(time.Duration) {}

	_, err := auth.Login(context.Background(), id, ports.LoginInput{Email: "a@b.com", Password: "pw"})
	require.NoError(t, err)
	assert.Len(t, f.recorder.latencies, 1)
}

func TestAuthService_UnknownSession(t *testing.T) {
	_, guard, auth, _ := newAuthFixture(t, AuthOptions{})

	_, err := auth.Login(context.Background(), "missing", ports.LoginInput{Email: "a@b.com", Password: "pw"})
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	assert.Equal(t, 0, guard.released, "guard is never taken for unknown sessions")
}

func TestAuthService_GuardFailure(t *testing.T) {
	_, guard, auth, id := newAuthFixture(t, AuthOptions{})
	guard.acquireErr = errBoom

	_, err := auth.Login(context.Background(), id, ports.LoginInput{Email: "a@b.com", Password: "pw"})
	assert.ErrorIs(t, err, errBoom)
}

func TestAuthService_VerifierExtensionPoint(t *testing.T) {
	f := newFixture(SessionOptions{})
	guard := newStubGuard()
	auth := NewAuthService(f.sessions, guard, rejectVerifier{}, nil, AuthOptions{}, zerolog.Nop())
	id := f.open(t)

	_, err := auth.Login(context.Background(), id, ports.LoginInput{Email: "a@b.com", Password: "pw"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	assert.Equal(t, 1, guard.released)

	p, err := f.sessions.Present(context.Background(), id)
	require.NoError(t, err)
	assert.Nil(t, p.Session.CurrentUser)
}

func TestAvatarRef(t *testing.T) {
	assert.Equal(t, "initials:AL", avatarRef("ada.lovelace"))
	assert.Equal(t, "initials:A", avatarRef("ada"))
	assert.Equal(t, "initials:?", avatarRef(""))
}
