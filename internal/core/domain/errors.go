package domain

import "errors"

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrAuthPending     = errors.New("authentication already in progress")
	ErrForbidden       = errors.New("access forbidden")
	ErrValidation      = errors.New("validation failed")
	ErrUnknownEvent    = errors.New("unknown session event")
	ErrVersionConflict = errors.New("session changed concurrently")

	// Reserved for a real backend; the simulated auth flow never returns them.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrSimulatedFailure   = errors.New("simulated backend failure")
)
