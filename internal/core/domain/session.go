package domain

import "time"

// AuthView selects which auth form is shown while no user is signed in.
type AuthView string

const (
	AuthViewLogin          AuthView = "login"
	AuthViewSignup         AuthView = "signup"
	AuthViewForgotPassword AuthView = "forgot-password"
)

// ParseAuthView converts a raw string to an AuthView.
func ParseAuthView(s string) (AuthView, bool) {
	switch v := AuthView(s); v {
	case AuthViewLogin, AuthViewSignup, AuthViewForgotPassword:
		return v, true
	}
	return "", false
}

// Tab is the sub-screen selector within a role's screen set. Any string is a
// legal value; unknown tabs fall back during view resolution.
type Tab string

const (
	TabHome     Tab = "home"
	TabActivity Tab = "activity"
	TabProfile  Tab = "profile"
	TabJobs     Tab = "jobs"
	TabFloat    Tab = "float"
	TabEarnings Tab = "earnings"
)

// Session is the complete routing state of one client. It is a value: every
// change produces a new Session through Transition and is stored whole.
type Session struct {
	ID           string    `json:"id"`
	Version      int64     `json:"version"`
	UpdatedAt    time.Time `json:"updated_at"`
	HasOnboarded bool      `json:"has_onboarded"`
	CurrentUser  *User     `json:"current_user"`
	AuthView     AuthView  `json:"auth_view"`
	ActiveTab    Tab       `json:"active_tab"`
	FloatBalance int       `json:"float_balance"`
	IsOnline     bool      `json:"is_online"`
	Overlays     Overlays  `json:"overlays"`
}

// NewSession returns the state of a freshly opened client.
func NewSession(id string, initialFloat int, now time.Time) Session {
	if initialFloat < 0 {
		initialFloat = 0
	}
	return Session{
		ID:           id,
		UpdatedAt:    now,
		AuthView:     AuthViewLogin,
		ActiveTab:    TabHome,
		FloatBalance: initialFloat,
		Overlays:     Overlays{},
	}
}

// Authenticated reports whether a user is signed in.
func (s Session) Authenticated() bool {
	return s.CurrentUser != nil
}

// ActiveRole returns the signed-in user's role, or "" when signed out.
func (s Session) ActiveRole() Role {
	if s.CurrentUser == nil {
		return ""
	}
	return s.CurrentUser.Role
}

// Clone returns a deep copy.
func (s Session) Clone() Session {
	c := s
	c.CurrentUser = s.CurrentUser.Clone()
	c.Overlays = s.Overlays.Clone()
	return c
}
