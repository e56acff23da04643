package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/pushr/marketplace/internal/core/domain"
)

func TestHTTPErrorHandler_MapsDomainErrors(t *testing.T) {
	cases := []struct {
		err  error
		code int
		msg  string
	}{
		{fmt.Errorf("apply select_tab: %w", domain.ErrSessionNotFound), http.StatusNotFound, "session not found"},
		{domain.ErrAuthPending, http.StatusConflict, "authentication already in progress"},
		{domain.ErrVersionConflict, http.StatusConflict, "session changed concurrently, retry"},
		{fmt.Errorf("%w: email is required", domain.ErrValidation), http.StatusUnprocessableEntity, "validation failed: email is required"},
		{domain.ErrForbidden, http.StatusForbidden, "access forbidden"},
		{domain.ErrInvalidCredentials, http.StatusUnauthorized, "invalid credentials"},
		{echo.NewHTTPError(http.StatusBadRequest, "invalid payload"), http.StatusBadRequest, "invalid payload"},
		{errors.New("redis: connection refused"), http.StatusInternalServerError, "internal server error"},
	}

	e := echo.New()
	handle := NewHTTPErrorHandler(zerolog.Nop())
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/v1/session", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		handle(tc.err, c)

		if rec.Code != tc.code {
			t.Fatalf("%v: expected %d, got %d", tc.err, tc.code, rec.Code)
		}
		var body errorResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("invalid json: %v", err)
		}
		if body.Error != tc.msg {
			t.Fatalf("%v: expected message %q, got %q", tc.err, tc.msg, body.Error)
		}
	}
}
