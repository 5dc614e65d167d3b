package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/homeservice/marketplace/internal/core/domain"
	"github.com/homeservice/marketplace/internal/core/ports"
)

// pageResponse is the model a guarded page renders from.
type pageResponse struct {
	Page         string               `json:"page"`
	User         *domain.User         `json:"user"`
	Reservations []domain.Reservation `json:"reservations,omitempty"`
	Summary      map[string]int       `json:"summary,omitempty"`
}

// PageHandler serves the role-gated pages. Every route is mounted behind
// the route guard, so the session is known to be logged in here.
type PageHandler struct {
	reservations ports.ReservationService
}

func NewPageHandler(reservations ports.ReservationService) *PageHandler {
	return &PageHandler{reservations: reservations}
}

// CustomerHome handles GET /customer.
func (h *PageHandler) CustomerHome(c echo.Context) error {
	return h.render(c, "customer-home", false)
}

// CustomerReservations handles GET /customer/reservations.
func (h *PageHandler) CustomerReservations(c echo.Context) error {
	return h.render(c, "customer-reservations", true)
}

// ManagerHome handles GET /manager.
func (h *PageHandler) ManagerHome(c echo.Context) error {
	return h.render(c, "manager-home", true)
}

// AdminHome handles GET /admin.
func (h *PageHandler) AdminHome(c echo.Context) error {
	return h.render(c, "admin-home", true)
}

func (h *PageHandler) render(c echo.Context, page string, withReservations bool) error {
	v, err := ctxVisitor(c)
	if err != nil {
		return err
	}
	viewer, err := sessionViewer(v)
	if err != nil {
		return err
	}

	resp := pageResponse{Page: page, User: v.Session.Snapshot().User}
	if withReservations {
		items, err := h.reservations.List(c.Request().Context(), viewer)
		if err != nil {
			return err
		}
		resp.Reservations = items
		resp.Summary = summarize(items)
	}
	return c.JSON(http.StatusOK, resp)
}

func summarize(items []domain.Reservation) map[string]int {
	out := make(map[string]int, 5)
	for _, r := range items {
		out[string(r.Status)]++
	}
	return out
}
