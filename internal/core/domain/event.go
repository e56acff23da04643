package domain

// Event is a discrete user-triggered input to the session state machine.
// The set is closed: only types in this package implement it.
type Event interface {
	// Kind is a stable name used for logging, metrics and the journal.
	Kind() string
	isEvent()
}

// CompleteOnboarding marks the onboarding carousel as finished.
type CompleteOnboarding struct{}

// SelectAuthView switches between the login, signup and forgot-password forms.
type SelectAuthView struct {
	View AuthView
}

// Authenticate installs a freshly built user after a successful login or signup.
type Authenticate struct {
	User *User
}

// SelectTab sets the active tab directly without touching the role.
type SelectTab struct {
	Tab Tab
}

// SwitchRole changes the active role of the signed-in user.
type SwitchRole struct {
	Role Role
}

// Logout signs the user out. KeepOnboarding leaves HasOnboarded untouched;
// otherwise onboarding is shown again on the next visit.
type Logout struct {
	KeepOnboarding bool
}

// SetOverlay shows or hides a single overlay.
type SetOverlay struct {
	Overlay Overlay
	Visible bool
}

// ToggleOverlay flips a single overlay.
type ToggleOverlay struct {
	Overlay Overlay
}

// SetOnline sets the pusher availability flag.
type SetOnline struct {
	Online bool
}

// AdjustFloat changes the pusher float balance by Delta. The balance never
// drops below zero.
type AdjustFloat struct {
	Delta int
}

func (CompleteOnboarding) Kind() string { return "complete_onboarding" }
func (SelectAuthView) Kind() string     { return "select_auth_view" }
func (Authenticate) Kind() string       { return "authenticate" }
func (SelectTab) Kind() string          { return "select_tab" }
func (SwitchRole) Kind() string         { return "switch_role" }
func (Logout) Kind() string             { return "logout" }
func (SetOverlay) Kind() string         { return "set_overlay" }
func (ToggleOverlay) Kind() string      { return "toggle_overlay" }
func (SetOnline) Kind() string          { return "set_online" }
func (AdjustFloat) Kind() string        { return "adjust_float" }

func (CompleteOnboarding) isEvent() {}
func (SelectAuthView) isEvent()     {}
func (Authenticate) isEvent()       {}
func (SelectTab) isEvent()          {}
func (SwitchRole) isEvent()         {}
func (Logout) isEvent()             {}
func (SetOverlay) isEvent()         {}
func (ToggleOverlay) isEvent()      {}
func (SetOnline) isEvent()          {}
func (AdjustFloat) isEvent()        {}
