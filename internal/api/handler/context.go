package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/homeservice/marketplace/internal/api/middleware"
	"github.com/homeservice/marketplace/internal/core/domain"
	"github.com/homeservice/marketplace/internal/core/ports"
)

// ctxViewer extracts the caller injected by the Auth middleware and
// fails fast when the middleware did not run.
func ctxViewer(c echo.Context) (ports.Viewer, error) {
	role, _ := c.Get("role").(domain.Role)
	userID, _ := c.Get("user_id").(int64)
	if role == "" || userID == 0 {
		return ports.Viewer{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return ports.Viewer{UserID: userID, Role: role}, nil
}

// ctxVisitor returns the visitor containers or a 500 when the Visitor
// middleware is missing from the route.
func ctxVisitor(c echo.Context) (*middleware.Visitor, error) {
	v := middleware.CurrentVisitor(c)
	if v == nil {
		return nil, echo.NewHTTPError(http.StatusInternalServerError, "visitor context missing")
	}
	return v, nil
}

// sessionViewer builds a viewer from the visitor's session. Guarded pages
// use it after the route guard authorized the request.
func sessionViewer(v *middleware.Visitor) (ports.Viewer, error) {
	snap := v.Session.Snapshot()
	if !snap.IsLoggedIn || snap.User == nil {
		return ports.Viewer{}, domain.ErrUnauthenticated
	}
	return ports.Viewer{UserID: snap.User.ID, Role: snap.User.Role}, nil
}
