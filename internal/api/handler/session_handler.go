package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/pushr/marketplace/internal/core/domain"
	"github.com/pushr/marketplace/internal/core/ports"
)

// TokenIssuer signs the bearer token a client uses to address its session.
type TokenIssuer interface {
	Issue(sessionID string) (string, time.Time, error)
}

// SessionHandler exposes the session router: every mutating route applies
// one event and answers with the resulting presentation.
type SessionHandler struct {
	sessions ports.SessionService
	roles    ports.RoleService
	tokens   TokenIssuer
}

func NewSessionHandler(sessions ports.SessionService, roles ports.RoleService, tokens TokenIssuer) *SessionHandler {
	return &SessionHandler{sessions: sessions, roles: roles, tokens: tokens}
}

// Create handles POST /v1/sessions.
//
// @Summary      Open a session
// @Description  Starts a signed-out client on the onboarding screen and returns its bearer token.
// @Tags         session
// @Produce      json
// @Success      201  {object}  createSessionResponse
// @Failure      500  {object}  errorResponse
// @Router       /v1/sessions [post]
func (h *SessionHandler) Create(c echo.Context) error {
	p, err := h.sessions.Open(c.Request().Context())
	if err != nil {
		return err
	}
	token, exp, err := h.tokens.Issue(p.Session.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, createSessionResponse{Token: token, ExpiresAt: exp, Presentation: p})
}

// Get handles GET /v1/session.
//
// @Summary      Current presentation
// @Tags         session
// @Produce      json
// @Security     SessionToken
// @Success      200  {object}  domain.Presentation
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/session [get]
func (h *SessionHandler) Get(c echo.Context) error {
	sessionID, err := ctxSessionID(c)
	if err != nil {
		return err
	}
	p, err := h.sessions.Present(c.Request().Context(), sessionID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

// CompleteOnboarding handles POST /v1/session/onboarding/complete.
//
// @Summary      Finish onboarding
// @Tags         session
// @Produce      json
// @Security     SessionToken
// @Success      200  {object}  domain.Presentation
// @Failure      401  {object}  errorResponse
// @Router       /v1/session/onboarding/complete [post]
func (h *SessionHandler) CompleteOnboarding(c echo.Context) error {
	return h.apply(c, domain.CompleteOnboarding{})
}

// SelectAuthView handles PUT /v1/session/auth-view.
//
// @Summary      Switch auth form
// @Tags         session
// @Accept       json
// @Produce      json
// @Security     SessionToken
// @Param        body  body      selectAuthViewRequest  true  "Auth view"
// @Success      200   {object}  domain.Presentation
// @Failure      422   {object}  errorResponse
// @Router       /v1/session/auth-view [put]
func (h *SessionHandler) SelectAuthView(c echo.Context) error {
	var req selectAuthViewRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	view, ok := domain.ParseAuthView(req.View)
	if !ok {
		return fmt.Errorf("%w: unknown auth view %q", domain.ErrValidation, req.View)
	}
	return h.apply(c, domain.SelectAuthView{View: view})
}

// SelectTab handles PUT /v1/session/tab.
//
// @Summary      Select tab
// @Description  Any tab is accepted; tabs outside the active role's set resolve to that role's fallback screen.
// @Tags         session
// @Accept       json
// @Produce      json
// @Security     SessionToken
// @Param        body  body      selectTabRequest  true  "Tab"
// @Success      200   {object}  domain.Presentation
// @Failure      422   {object}  errorResponse
// @Router       /v1/session/tab [put]
func (h *SessionHandler) SelectTab(c echo.Context) error {
	var req selectTabRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	return h.apply(c, domain.SelectTab{Tab: domain.Tab(req.Tab)})
}

// SwitchRole handles PUT /v1/session/role.
//
// @Summary      Switch active role
// @Description  Sets the role and its default tab in one step. Ignored while signed out.
// @Tags         session
// @Accept       json
// @Produce      json
// @Security     SessionToken
// @Param        body  body      switchRoleRequest  true  "Role"
// @Success      200   {object}  domain.Presentation
// @Failure      422   {object}  errorResponse
// @Router       /v1/session/role [put]
func (h *SessionHandler) SwitchRole(c echo.Context) error {
	sessionID, err := ctxSessionID(c)
	if err != nil {
		return err
	}
	var req switchRoleRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	role, ok := domain.ParseRole(req.Role)
	if !ok {
		return fmt.Errorf("%w: unknown role %q", domain.ErrValidation, req.Role)
	}
	p, err := h.roles.SwitchRole(c.Request().Context(), sessionID, role)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

// Logout handles POST /v1/session/logout.
//
// @Summary      Log out
// @Description  Clears the user and returns to the login form. Onboarding is shown again unless the server keeps it.
// @Tags         session
// @Produce      json
// @Security     SessionToken
// @Success      200  {object}  domain.Presentation
// @Router       /v1/session/logout [post]
func (h *SessionHandler) Logout(c echo.Context) error {
	sessionID, err := ctxSessionID(c)
	if err != nil {
		return err
	}
	p, err := h.sessions.Logout(c.Request().Context(), sessionID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

// SetOverlay handles PUT /v1/session/overlays/:name.
//
// @Summary      Show or hide an overlay
// @Tags         overlays
// @Accept       json
// @Produce      json
// @Security     SessionToken
// @Param        name  path      string             true  "notifications | role-switcher | float-purchase"
// @Param        body  body      setOverlayRequest  true  "Visibility"
// @Success      200   {object}  domain.Presentation
// @Failure      422   {object}  errorResponse
// @Router       /v1/session/overlays/{name} [put]
func (h *SessionHandler) SetOverlay(c echo.Context) error {
	overlay, err := overlayParam(c)
	if err != nil {
		return err
	}
	var req setOverlayRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	return h.apply(c, domain.SetOverlay{Overlay: overlay, Visible: *req.Visible})
}

// ToggleOverlay handles POST /v1/session/overlays/:name/toggle.
//
// @Summary      Toggle an overlay
// @Tags         overlays
// @Produce      json
// @Security     SessionToken
// @Param        name  path      string  true  "notifications | role-switcher | float-purchase"
// @Success      200   {object}  domain.Presentation
// @Failure      422   {object}  errorResponse
// @Router       /v1/session/overlays/{name}/toggle [post]
func (h *SessionHandler) ToggleOverlay(c echo.Context) error {
	overlay, err := overlayParam(c)
	if err != nil {
		return err
	}
	return h.apply(c, domain.ToggleOverlay{Overlay: overlay})
}

// SetOnline handles PUT /v1/session/pusher/online.
//
// @Summary      Set pusher availability
// @Tags         pusher
// @Accept       json
// @Produce      json
// @Security     SessionToken
// @Param        body  body      setOnlineRequest  true  "Online flag"
// @Success      200   {object}  domain.Presentation
// @Failure      422   {object}  errorResponse
// @Router       /v1/session/pusher/online [put]
func (h *SessionHandler) SetOnline(c echo.Context) error {
	var req setOnlineRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	return h.apply(c, domain.SetOnline{Online: *req.Online})
}

// AdjustFloat handles POST /v1/session/pusher/float.
//
// @Summary      Adjust float balance
// @Description  Positive deltas buy float jobs, negative deltas spend them. The balance never drops below zero.
// @Tags         pusher
// @Accept       json
// @Produce      json
// @Security     SessionToken
// @Param        body  body      adjustFloatRequest  true  "Delta"
// @Success      200   {object}  domain.Presentation
// @Failure      422   {object}  errorResponse
// @Router       /v1/session/pusher/float [post]
func (h *SessionHandler) AdjustFloat(c echo.Context) error {
	var req adjustFloatRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	return h.apply(c, domain.AdjustFloat{Delta: req.Delta})
}

func (h *SessionHandler) apply(c echo.Context, event domain.Event) error {
	sessionID, err := ctxSessionID(c)
	if err != nil {
		return err
	}
	p, err := h.sessions.Apply(c.Request().Context(), sessionID, event)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

func overlayParam(c echo.Context) (domain.Overlay, error) {
	name := c.Param("name")
	overlay, ok := domain.ParseOverlay(name)
	if !ok {
		return "", fmt.Errorf("%w: unknown overlay %q", domain.ErrValidation, name)
	}
	return overlay, nil
}
