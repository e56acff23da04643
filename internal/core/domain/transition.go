package domain

import "reflect"

// Transition is the single state-transition function of a session. It is pure:
// the input is never modified, and the returned Session is either the input
// itself (changed == false) or a complete new snapshot in which every field
// affected by e has already been updated together.
//
// Events whose precondition does not hold (for example SwitchRole without a
// signed-in user) are no-ops, never errors.
func Transition(s Session, e Event) (next Session, changed bool) {
	next = s.Clone()

	switch ev := e.(type) {
	case CompleteOnboarding:
		next.HasOnboarded = true

	case SelectAuthView:
		if _, ok := ParseAuthView(string(ev.View)); !ok {
			return s, false
		}
		next.AuthView = ev.View

	case Authenticate:
		if ev.User == nil {
			return s, false
		}
		next.CurrentUser = ev.User.Clone()
		if tab, ok := next.CurrentUser.Role.DefaultTab(); ok {
			next.ActiveTab = tab
		}

	case SelectTab:
		next.ActiveTab = ev.Tab

	case SwitchRole:
		if next.CurrentUser == nil {
			return s, false
		}
		u := next.CurrentUser
		if ev.Role.Switchable() && !u.HasRole(ev.Role) {
			u.AvailableRoles = append(u.AvailableRoles, ev.Role)
		}
		u.Role = ev.Role
		if tab, ok := ev.Role.DefaultTab(); ok {
			next.ActiveTab = tab
		}

	case Logout:
		next.CurrentUser = nil
		next.AuthView = AuthViewLogin
		if !ev.KeepOnboarding {
			next.HasOnboarded = false
		}

	case SetOverlay:
		next.Overlays = next.Overlays.With(ev.Overlay, ev.Visible)

	case ToggleOverlay:
		next.Overlays = next.Overlays.With(ev.Overlay, !next.Overlays.Visible(ev.Overlay))

	case SetOnline:
		next.IsOnline = ev.Online

	case AdjustFloat:
		next.FloatBalance += ev.Delta
		if next.FloatBalance < 0 {
			next.FloatBalance = 0
		}

	default:
		return s, false
	}

	if sameState(s, next) {
		return s, false
	}
	return next, true
}

// sameState compares the routing and counter fields. Bookkeeping fields
// (Version, UpdatedAt) are owned by the store and ignored.
func sameState(a, b Session) bool {
	return a.HasOnboarded == b.HasOnboarded &&
		a.AuthView == b.AuthView &&
		a.ActiveTab == b.ActiveTab &&
		a.FloatBalance == b.FloatBalance &&
		a.IsOnline == b.IsOnline &&
		a.Overlays.equal(b.Overlays) &&
		reflect.DeepEqual(a.CurrentUser, b.CurrentUser)
}
