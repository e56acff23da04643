package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pushr/marketplace/internal/core/domain"
	"github.com/pushr/marketplace/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login signs the session in after the simulated backend delay.
//
// @Summary      Log in
// @Description  Credentials are not checked. Role "admin" opens the admin dashboard; otherwise the user gets both marketplace roles.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     SessionToken
// @Param        body  body      loginRequest  true  "Login form"
// @Success      200   {object}  domain.Presentation
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/session/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	sessionID, err := ctxSessionID(c)
	if err != nil {
		return err
	}

	var req loginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	p, err := h.authService.Login(c.Request().Context(), sessionID, ports.LoginInput{
		Email:    req.Email,
		Password: req.Password,
		Role:     domain.Role(req.Role),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

// Signup creates a marketplace user for the session after the simulated delay.
//
// @Summary      Sign up
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     SessionToken
// @Param        body  body      signupRequest  true  "Signup form"
// @Success      200   {object}  domain.Presentation
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/session/signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	sessionID, err := ctxSessionID(c)
	if err != nil {
		return err
	}

	var req signupRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	p, err := h.authService.Signup(c.Request().Context(), sessionID, ports.SignupInput{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
		Role:     domain.Role(req.Role),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}
