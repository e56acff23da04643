package middleware

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pushr/marketplace/internal/core/domain"
)

// SessionReader is the slice of the session service RBAC needs.
type SessionReader interface {
	Present(ctx context.Context, sessionID string) (domain.Presentation, error)
}

// RequireActiveRole lets a request through only when the caller's session is
// signed in with one of allowedRoles as its active role. Roles the user could
// switch to do not count.
func RequireActiveRole(sessions SessionReader, allowedRoles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sessionID, _ := c.Get(ContextSessionID).(string)
			if sessionID == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing session")
			}

			p, err := sessions.Present(c.Request().Context(), sessionID)
			if err != nil {
				return err
			}
			if _, ok := allowed[p.Session.ActiveRole()]; !ok || !p.Session.Authenticated() {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
