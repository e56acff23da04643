// Package tui is a terminal client of the session router. Key presses become
// session events; every redraw renders the presentation the services return.
package tui

import (
	"context"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pushr/marketplace/internal/core/domain"
	"github.com/pushr/marketplace/internal/core/ports"
)

// Demo identities used by the quick-login keys.
const (
	demoCustomerEmail = "cam.customer@pushr.app"
	demoPusherEmail   = "pia.pusher@pushr.app"
	demoAdminEmail    = "ada.admin@pushr.app"
	demoPassword      = "demo"

	floatTopUp = 5
)

// Services are the in-process ports the client drives.
type Services struct {
	Sessions ports.SessionService
	Auth     ports.AuthService
	Roles    ports.RoleService
}

type Model struct {
	ctx     context.Context
	svc     Services
	pres    domain.Presentation
	ready   bool
	pending string
	status  string
	err     error
	width   int
}

func New(ctx context.Context, svc Services) Model {
	return Model{ctx: ctx, svc: svc}
}

type presentedMsg struct {
	p    domain.Presentation
	note string
}

type failedMsg struct{ err error }

func (m Model) Init() tea.Cmd {
	return m.call("", m.svc.Sessions.Open)
}

// Presentation returns the last presentation received from the services.
func (m Model) Presentation() domain.Presentation { return m.pres }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case presentedMsg:
		m.pres = msg.p
		m.ready = true
		m.pending = ""
		m.err = nil
		m.status = msg.note
		return m, nil
	case failedMsg:
		m.pending = ""
		m.err = msg.err
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg.String())
	}
	return m, nil
}

func (m Model) handleKey(key string) (tea.Model, tea.Cmd) {
	if key == "ctrl+c" || key == "q" {
		return m, tea.Quit
	}
	if !m.ready || m.pending != "" {
		return m, nil
	}

	switch m.pres.Screen {
	case domain.ScreenOnboarding:
		if key == "enter" || key == " " {
			return m, m.apply(domain.CompleteOnboarding{})
		}
		return m, nil
	case domain.ScreenLogin, domain.ScreenSignup, domain.ScreenForgotPassword:
		return m.authKey(key)
	}
	return m.signedInKey(key)
}

func (m Model) authKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "l":
		return m, m.apply(domain.SelectAuthView{View: domain.AuthViewLogin})
	case "s":
		return m, m.apply(domain.SelectAuthView{View: domain.AuthViewSignup})
	case "f":
		return m, m.apply(domain.SelectAuthView{View: domain.AuthViewForgotPassword})
	}

	switch m.pres.Screen {
	case domain.ScreenLogin:
		switch key {
		case "1":
			return m.login(demoCustomerEmail, domain.RoleCustomer)
		case "2":
			return m.login(demoPusherEmail, domain.RolePusher)
		case "3":
			return m.login(demoAdminEmail, domain.RoleAdmin)
		}
	case domain.ScreenSignup:
		switch key {
		case "enter":
			return m.signup(domain.RoleCustomer)
		case "p":
			return m.signup(domain.RolePusher)
		}
	case domain.ScreenForgotPassword:
		if key == "enter" {
			return m, m.applyNote(domain.SelectAuthView{View: domain.AuthViewLogin}, "reset link sent")
		}
	}
	return m, nil
}

func (m Model) signedInKey(key string) (tea.Model, tea.Cmd) {
	s := m.pres.Session
	role := s.ActiveRole()

	if n, err := strconv.Atoi(key); err == nil && n >= 1 && n <= len(m.pres.NavTabs) {
		return m, m.apply(domain.SelectTab{Tab: m.pres.NavTabs[n-1]})
	}

	switch key {
	case "x":
		id := s.ID
		return m, m.call("signed out", func(ctx context.Context) (domain.Presentation, error) {
			return m.svc.Sessions.Logout(ctx, id)
		})
	case "n":
		return m, m.apply(domain.ToggleOverlay{Overlay: domain.OverlayNotifications})
	case "r":
		if role == domain.RoleAdmin {
			return m, nil
		}
		return m, m.apply(domain.ToggleOverlay{Overlay: domain.OverlayRoleSwitcher})
	}

	if s.Overlays.Visible(domain.OverlayRoleSwitcher) {
		switch key {
		case "c":
			return m, m.switchRole(domain.RoleCustomer)
		case "p":
			return m, m.switchRole(domain.RolePusher)
		}
	}

	if role != domain.RolePusher {
		return m, nil
	}
	switch key {
	case "o":
		return m, m.apply(domain.SetOnline{Online: !s.IsOnline})
	case "b":
		return m, m.apply(domain.ToggleOverlay{Overlay: domain.OverlayFloatPurchase})
	case "+":
		if !s.Overlays.Visible(domain.OverlayFloatPurchase) {
			return m, nil
		}
		id := s.ID
		return m, m.call("float topped up", func(ctx context.Context) (domain.Presentation, error) {
			if _, err := m.svc.Sessions.Apply(ctx, id, domain.AdjustFloat{Delta: floatTopUp}); err != nil {
				return domain.Presentation{}, err
			}
			return m.svc.Sessions.Apply(ctx, id, domain.SetOverlay{Overlay: domain.OverlayFloatPurchase, Visible: false})
		})
	case "a":
		switch {
		case !s.IsOnline:
			m.status = "go online to accept jobs"
			return m, nil
		case s.FloatBalance == 0:
			m.status = "no float left, press b to buy more"
			return m, nil
		}
		return m, m.applyNote(domain.AdjustFloat{Delta: -1}, "job accepted")
	}
	return m, nil
}

func (m Model) login(email string, role domain.Role) (tea.Model, tea.Cmd) {
	m.pending = "signing in"
	id := m.pres.Session.ID
	return m, m.call("", func(ctx context.Context) (domain.Presentation, error) {
		return m.svc.Auth.Login(ctx, id, ports.LoginInput{Email: email, Password: demoPassword, Role: role})
	})
}

func (m Model) signup(role domain.Role) (tea.Model, tea.Cmd) {
	m.pending = "creating account"
	id := m.pres.Session.ID
	in := ports.SignupInput{
		Name:     "New " + string(role),
		Email:    "new." + string(role) + "@pushr.app",
		Phone:    "5550100",
		Password: demoPassword,
		Role:     role,
	}
	return m, m.call("", func(ctx context.Context) (domain.Presentation, error) {
		return m.svc.Auth.Signup(ctx, id, in)
	})
}

// switchRole switches and closes the role switcher in one command.
func (m Model) switchRole(role domain.Role) tea.Cmd {
	id := m.pres.Session.ID
	return m.call("", func(ctx context.Context) (domain.Presentation, error) {
		if _, err := m.svc.Roles.SwitchRole(ctx, id, role); err != nil {
			return domain.Presentation{}, err
		}
		return m.svc.Sessions.Apply(ctx, id, domain.SetOverlay{Overlay: domain.OverlayRoleSwitcher, Visible: false})
	})
}

func (m Model) apply(event domain.Event) tea.Cmd {
	return m.applyNote(event, "")
}

func (m Model) applyNote(event domain.Event, note string) tea.Cmd {
	id := m.pres.Session.ID
	return m.call(note, func(ctx context.Context) (domain.Presentation, error) {
		return m.svc.Sessions.Apply(ctx, id, event)
	})
}

func (m Model) call(note string, fn func(context.Context) (domain.Presentation, error)) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		p, err := fn(ctx)
		if err != nil {
			return failedMsg{err: err}
		}
		return presentedMsg{p: p, note: note}
	}
}
