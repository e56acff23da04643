package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pushr/marketplace/internal/core/domain"
	"github.com/pushr/marketplace/internal/core/ports"
)

// AdminHandler serves the admin-only inspection routes.
type AdminHandler struct {
	sessions ports.SessionService
}

func NewAdminHandler(sessions ports.SessionService) *AdminHandler {
	return &AdminHandler{sessions: sessions}
}

// Journal handles GET /v1/admin/sessions/:id/journal.
//
// @Summary      Session transition journal
// @Description  Most recent state-changing events of a session, oldest first. The caller's active role must be admin.
// @Tags         admin
// @Produce      json
// @Security     SessionToken
// @Param        id     path      string  true   "Session id"
// @Param        limit  query     int     false  "Maximum number of records"
// @Success      200    {object}  journalResponse
// @Failure      400    {object}  errorResponse
// @Failure      403    {object}  errorResponse
// @Failure      404    {object}  errorResponse
// @Router       /v1/admin/sessions/{id}/journal [get]
func (h *AdminHandler) Journal(c echo.Context) error {
	var limit int
	if err := echo.QueryParamsBinder(c).Int("limit", &limit).BindError(); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "limit must be an integer")
	}

	sessionID := c.Param("id")
	records, err := h.sessions.Journal(c.Request().Context(), sessionID, limit)
	if err != nil {
		return err
	}
	if records == nil {
		records = []domain.TransitionRecord{}
	}
	return c.JSON(http.StatusOK, journalResponse{SessionID: sessionID, Transitions: records})
}
