package handler

import (
	"time"

	"github.com/pushr/marketplace/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

type selectAuthViewRequest struct {
	View string `json:"view" validate:"required,oneof=login signup forgot-password"`
}

type loginRequest struct {
	Email    string `json:"email"          validate:"required,email"`
	Password string `json:"password"       validate:"required"`
	Role     string `json:"role,omitempty" validate:"omitempty,oneof=customer pusher admin"`
}

type signupRequest struct {
	Name     string `json:"name"           validate:"required"`
	Email    string `json:"email"          validate:"required,email"`
	Phone    string `json:"phone"          validate:"required,min=7"`
	Password string `json:"password"       validate:"required,min=6"`
	Role     string `json:"role,omitempty" validate:"omitempty,oneof=customer pusher"`
}

type selectTabRequest struct {
	Tab string `json:"tab" validate:"required"`
}

type switchRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=customer pusher admin guest"`
}

type setOverlayRequest struct {
	Visible *bool `json:"visible" validate:"required"`
}

type setOnlineRequest struct {
	Online *bool `json:"online" validate:"required"`
}

type adjustFloatRequest struct {
	Delta int `json:"delta" validate:"required"`
}

// --- Response types ---

type createSessionResponse struct {
	Token        string              `json:"token"`
	ExpiresAt    time.Time           `json:"expires_at"`
	Presentation domain.Presentation `json:"presentation"`
}

type journalResponse struct {
	SessionID   string                    `json:"session_id"`
	Transitions []domain.TransitionRecord `json:"transitions"`
}
