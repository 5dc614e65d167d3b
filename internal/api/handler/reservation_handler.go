package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/homeservice/marketplace/internal/api/metrics"
	"github.com/homeservice/marketplace/internal/core/domain"
	"github.com/homeservice/marketplace/internal/core/ports"
)

// ReservationHandler serves the mock reservation backend.
type ReservationHandler struct {
	service ports.ReservationService
}

func NewReservationHandler(service ports.ReservationService) *ReservationHandler {
	return &ReservationHandler{service: service}
}

// List handles GET /reservations.
//
// @Summary      List reservations visible to the caller
// @Tags         reservations
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  reservationListResponse
// @Failure      401  {object}  errorResponse
// @Router       /reservations [get]
func (h *ReservationHandler) List(c echo.Context) error {
	viewer, err := ctxViewer(c)
	if err != nil {
		return err
	}

	items, err := h.service.List(c.Request().Context(), viewer)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, reservationListResponse{Items: items, Count: len(items)})
}

// Get handles GET /reservation/:id.
//
// @Summary      Get a reservation
// @Tags         reservations
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Reservation id (e.g. CL-1718000000000-101)"
// @Success      200  {object}  domain.Reservation
// @Failure      404  {object}  errorResponse
// @Router       /reservation/{id} [get]
func (h *ReservationHandler) Get(c echo.Context) error {
	viewer, err := ctxViewer(c)
	if err != nil {
		return err
	}

	r, err := h.service.Get(c.Request().Context(), viewer, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, r)
}

// Patch handles PATCH /reservation/:id with a shallow partial update.
//
// @Summary      Update a reservation
// @Tags         reservations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                   true  "Reservation id"
// @Param        body  body      patchReservationRequest  true  "Fields to replace"
// @Success      200   {object}  domain.Reservation
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /reservation/{id} [patch]
func (h *ReservationHandler) Patch(c echo.Context) error {
	viewer, err := ctxViewer(c)
	if err != nil {
		return err
	}

	var req patchReservationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	r, err := h.service.Update(c.Request().Context(), viewer, c.Param("id"), toPatch(req))
	metrics.ReservationUpdatesTotal.WithLabelValues(updateResult(err)).Inc()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, r)
}

// Create handles POST /reservations.
//
// @Summary      Book a service
// @Tags         reservations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createReservationRequest  true  "Booking"
// @Success      201   {object}  domain.Reservation
// @Failure      403   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /reservations [post]
func (h *ReservationHandler) Create(c echo.Context) error {
	viewer, err := ctxViewer(c)
	if err != nil {
		return err
	}

	var req createReservationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	r, err := h.service.Create(c.Request().Context(), viewer, toCreateInput(req))
	if err != nil {
		return err
	}
	metrics.ReservationsCreatedTotal.Inc()
	c.Response().Header().Set(echo.HeaderLocation, "/reservation/"+r.ID)
	return c.JSON(http.StatusCreated, r)
}

// Reset handles POST /reservations/reset and restores the seed data.
//
// @Summary      Reset reservations to seed data
// @Tags         reservations
// @Security     BearerAuth
// @Success      204
// @Failure      403  {object}  errorResponse
// @Router       /reservations/reset [post]
func (h *ReservationHandler) Reset(c echo.Context) error {
	viewer, err := ctxViewer(c)
	if err != nil {
		return err
	}
	if viewer.Role != domain.RoleAdmin {
		return domain.ErrForbidden
	}

	if err := h.service.Reset(c.Request().Context()); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func updateResult(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrReservationNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrForbidden):
		return "forbidden"
	}
	return "error"
}
