package domain

// Screen identifies the single screen presented for a session state.
type Screen string

const (
	ScreenOnboarding       Screen = "onboarding"
	ScreenLogin            Screen = "login"
	ScreenSignup           Screen = "signup"
	ScreenForgotPassword   Screen = "forgot-password"
	ScreenAdminDashboard   Screen = "admin-dashboard"
	ScreenPusherJobs       Screen = "pusher-jobs"
	ScreenPusherFloat      Screen = "pusher-float"
	ScreenPusherEarnings   Screen = "pusher-earnings"
	ScreenPusherProfile    Screen = "pusher-profile"
	ScreenCustomerHome     Screen = "customer-home"
	ScreenCustomerActivity Screen = "customer-activity"
	ScreenProfile          Screen = "profile"
)

var (
	authScreens = map[AuthView]Screen{
		AuthViewLogin:          ScreenLogin,
		AuthViewSignup:         ScreenSignup,
		AuthViewForgotPassword: ScreenForgotPassword,
	}

	pusherTabs   = []Tab{TabJobs, TabFloat, TabEarnings, TabProfile}
	customerTabs = []Tab{TabHome, TabActivity, TabProfile}
)

const (
	// pusherFallback is shown when a pusher's active tab matches none of pusherTabs.
	pusherFallback = ScreenPusherJobs
	// customerFallback is shown when the active tab matches none of customerTabs.
	customerFallback = ScreenCustomerHome
	// authFallback covers an AuthView outside the known three, which Transition never produces.
	authFallback = ScreenLogin
)

// ResolveView maps a session to exactly one screen. It is pure, total and
// deterministic; it only reads s.
func ResolveView(s Session) Screen {
	if !s.HasOnboarded {
		return ScreenOnboarding
	}
	if s.CurrentUser == nil {
		if screen, ok := authScreens[s.AuthView]; ok {
			return screen
		}
		return authFallback
	}

	role := s.CurrentUser.Role
	switch role {
	case RoleAdmin:
		return ScreenAdminDashboard
	case RolePusher:
		switch s.ActiveTab {
		case TabJobs:
			return ScreenPusherJobs
		case TabFloat:
			return ScreenPusherFloat
		case TabEarnings:
			return ScreenPusherEarnings
		case TabProfile:
			return profileScreen(role)
		}
		return pusherFallback
	}

	// customer, guest and any other non-admin, non-pusher role
	switch s.ActiveTab {
	case TabHome:
		return ScreenCustomerHome
	case TabActivity:
		return ScreenCustomerActivity
	case TabProfile:
		return profileScreen(role)
	}
	return customerFallback
}

// profileScreen picks the profile variant for the active role.
func profileScreen(role Role) Screen {
	if role == RolePusher {
		return ScreenPusherProfile
	}
	return ScreenProfile
}

// NavTabs returns the bottom-navigation tab set for s, or nil when no bottom
// navigation is shown (signed out, or admin).
func NavTabs(s Session) []Tab {
	if !s.HasOnboarded || s.CurrentUser == nil {
		return nil
	}
	switch s.CurrentUser.Role {
	case RoleAdmin:
		return nil
	case RolePusher:
		return append([]Tab(nil), pusherTabs...)
	}
	return append([]Tab(nil), customerTabs...)
}

// Presentation is everything a renderer needs: the resolved screen, the
// navigation around it, the overlays stacked on top and the full snapshot.
type Presentation struct {
	Screen   Screen    `json:"screen"`
	NavTabs  []Tab     `json:"nav_tabs"`
	Overlays []Overlay `json:"overlays"`
	Session  Session   `json:"session"`
}

// Present composes overlays on top of the resolved screen. Overlays never
// influence Screen.
func Present(s Session) Presentation {
	return Presentation{
		Screen:   ResolveView(s),
		NavTabs:  NavTabs(s),
		Overlays: s.Overlays.Shown(),
		Session:  s.Clone(),
	}
}
