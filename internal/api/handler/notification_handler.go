package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/homeservice/marketplace/internal/core/domain"
	"github.com/homeservice/marketplace/internal/core/ports"
)

type alertListResponse struct {
	Items  []domain.Alert `json:"items"`
	Unread int            `json:"unread"`
}

// NotificationHandler exposes the visitor's alerts. It never fails on
// backend errors; an unreachable backend shows as an empty list.
type NotificationHandler struct {
	service ports.NotificationService
}

func NewNotificationHandler(service ports.NotificationService) *NotificationHandler {
	return &NotificationHandler{service: service}
}

// List handles GET /alerts.
//
// @Summary      List alerts
// @Tags         alerts
// @Produce      json
// @Success      200  {object}  alertListResponse
// @Router       /alerts [get]
func (h *NotificationHandler) List(c echo.Context) error {
	v, err := ctxVisitor(c)
	if err != nil {
		return err
	}

	tok, _ := v.Tokens.Get(c.Request().Context())
	alerts := h.service.Alerts(c.Request().Context(), tok)

	unread := 0
	for _, a := range alerts {
		if a.Unread {
			unread++
		}
	}
	return c.JSON(http.StatusOK, alertListResponse{Items: alerts, Unread: unread})
}

// MarkAllRead handles POST /alerts/read-all. The work is queued and the
// request returns immediately.
//
// @Summary      Mark every alert as read
// @Tags         alerts
// @Success      202
// @Router       /alerts/read-all [post]
func (h *NotificationHandler) MarkAllRead(c echo.Context) error {
	v, err := ctxVisitor(c)
	if err != nil {
		return err
	}

	tok, _ := v.Tokens.Get(c.Request().Context())
	h.service.MarkAllRead(c.Request().Context(), ports.MarkReadJob{ClientID: v.ClientID, Token: tok})
	return c.NoContent(http.StatusAccepted)
}
