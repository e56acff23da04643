package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/pushr/marketplace/internal/core/domain"
)

var screenTitles = map[domain.Screen]string{
	domain.ScreenOnboarding:       "Welcome to Pushr",
	domain.ScreenLogin:            "Log in",
	domain.ScreenSignup:           "Create account",
	domain.ScreenForgotPassword:   "Forgot password",
	domain.ScreenAdminDashboard:   "Admin dashboard",
	domain.ScreenPusherJobs:       "Available jobs",
	domain.ScreenPusherFloat:      "Float",
	domain.ScreenPusherEarnings:   "Earnings",
	domain.ScreenPusherProfile:    "Pusher profile",
	domain.ScreenCustomerHome:     "Send something",
	domain.ScreenCustomerActivity: "Activity",
	domain.ScreenProfile:          "Profile",
}

var overlayTitles = map[domain.Overlay]string{
	domain.OverlayNotifications: "Notifications",
	domain.OverlayRoleSwitcher:  "Switch role",
	domain.OverlayFloatPurchase: "Buy float",
}

func (m Model) View() string {
	if !m.ready {
		if m.err != nil {
			return errStyle.Render("error: "+m.err.Error()) + "\n"
		}
		return mutedStyle.Render("opening session…") + "\n"
	}

	p := m.pres
	var b strings.Builder

	b.WriteString(brandStyle.Render("PUSHR") + "  " + titleStyle.Render(screenTitles[p.Screen]))
	if role := p.Session.ActiveRole(); role != "" {
		b.WriteString(mutedStyle.Render("  · " + string(role)))
	}
	b.WriteString("\n")
	b.WriteString(bodyStyle.Render(m.body()))
	b.WriteString("\n")

	if nav := m.navBar(); nav != "" {
		b.WriteString(nav + "\n")
	}
	for _, o := range p.Overlays {
		b.WriteString(overlayStyle.Render(m.overlayBody(o)) + "\n")
	}

	b.WriteString(helpStyle.Render(m.help()) + "\n")
	switch {
	case m.pending != "":
		b.WriteString(pendingStyle.Render(m.pending+"…") + "\n")
	case m.err != nil:
		b.WriteString(errStyle.Render("error: "+m.err.Error()) + "\n")
	case m.status != "":
		b.WriteString(okStyle.Render(m.status) + "\n")
	}
	return b.String()
}

func (m Model) body() string {
	s := m.pres.Session
	u := s.CurrentUser

	switch m.pres.Screen {
	case domain.ScreenOnboarding:
		return "Deliveries by people nearby.\nPress enter to get started."
	case domain.ScreenLogin:
		return "Quick login:\n  1 customer   2 pusher   3 admin"
	case domain.ScreenSignup:
		return "enter sign up as customer\n  p   sign up as pusher"
	case domain.ScreenForgotPassword:
		return "We will email you a reset link.\nPress enter to send it."
	case domain.ScreenAdminDashboard:
		return fmt.Sprintf("Signed in as %s\nPlatform overview", u.Name)
	case domain.ScreenPusherJobs:
		status := "offline"
		if s.IsOnline {
			status = "online"
		}
		return fmt.Sprintf("You are %s.\nFloat jobs remaining: %d", status, s.FloatBalance)
	case domain.ScreenPusherFloat:
		return fmt.Sprintf("Float balance: %d jobs", s.FloatBalance)
	case domain.ScreenPusherEarnings:
		return "Earnings this week"
	case domain.ScreenPusherProfile, domain.ScreenProfile:
		return profileBody(u)
	case domain.ScreenCustomerHome:
		return fmt.Sprintf("Hi %s, what are we sending today?", u.Name)
	case domain.ScreenCustomerActivity:
		return "Your recent deliveries"
	}
	return ""
}

func profileBody(u *domain.User) string {
	if u == nil {
		return ""
	}
	lines := []string{u.Name, mutedStyle.Render(u.Email)}
	if u.Rating != nil {
		lines = append(lines, fmt.Sprintf("Rating %.1f", *u.Rating))
	}
	if u.WalletBalance != nil {
		lines = append(lines, fmt.Sprintf("Wallet %.2f", *u.WalletBalance))
	}
	roles := make([]string, len(u.AvailableRoles))
	for i, r := range u.AvailableRoles {
		roles[i] = string(r)
	}
	lines = append(lines, "Roles: "+strings.Join(roles, ", "))
	return strings.Join(lines, "\n")
}

func (m Model) navBar() string {
	tabs := m.pres.NavTabs
	if len(tabs) == 0 {
		return ""
	}
	parts := make([]string, len(tabs))
	for i, t := range tabs {
		label := fmt.Sprintf("%d %s", i+1, t)
		if t == m.pres.Session.ActiveTab {
			parts[i] = activeTab.Render(label)
		} else {
			parts[i] = tabStyle.Render(label)
		}
	}
	bar := lipgloss.JoinHorizontal(lipgloss.Top, parts...)
	if m.width > 0 {
		return navBarStyle.Width(m.width).Render(bar)
	}
	return navBarStyle.Render(bar)
}

func (m Model) overlayBody(o domain.Overlay) string {
	title := titleStyle.Render(overlayTitles[o])
	switch o {
	case domain.OverlayNotifications:
		return title + "\n" + mutedStyle.Render("You're all caught up.")
	case domain.OverlayRoleSwitcher:
		return title + "\n  c customer   p pusher"
	case domain.OverlayFloatPurchase:
		return title + fmt.Sprintf("\n  + buy %d float jobs", floatTopUp)
	}
	return title
}

func (m Model) help() string {
	switch m.pres.Screen {
	case domain.ScreenOnboarding:
		return "enter continue · q quit"
	case domain.ScreenLogin, domain.ScreenSignup, domain.ScreenForgotPassword:
		return "l login · s signup · f forgot password · q quit"
	}
	keys := []string{"1-9 tabs", "n notifications"}
	if m.pres.Session.ActiveRole() != domain.RoleAdmin {
		keys = append(keys, "r role")
	}
	if m.pres.Session.ActiveRole() == domain.RolePusher {
		keys = append(keys, "o online", "a accept job", "b float")
	}
	return strings.Join(append(keys, "x logout", "q quit"), " · ")
}
