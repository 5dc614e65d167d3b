package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/homeservice/marketplace/internal/api/metrics"
	"github.com/homeservice/marketplace/internal/core/domain"
	"github.com/homeservice/marketplace/internal/core/guard"
)

// HeaderGuardAlert carries the one-time message shown on a guard redirect.
const HeaderGuardAlert = "X-Guard-Alert"

// RouteGuard gates a page to the given roles. It must run after Visitor.
//
//	Authorized  → next handler
//	Redirecting → 302 to the navigator target, alert in X-Guard-Alert
//	Loading     → 503 with Retry-After
func RouteGuard(roles ...domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			v := CurrentVisitor(c)
			if v == nil {
				return echo.NewHTTPError(http.StatusInternalServerError, "visitor context missing")
			}

			g := guard.NewRouteGuard(roles, guard.Env{
				Session:   v.Session,
				Validator: v.Validator,
				Tamper:    v.Tamper,
				Navigator: v.Navigator,
				Ready:     v.Ready,
			})
			decision := g.Evaluate(c.Request().Context())

			metrics.GuardDecisionsTotal.WithLabelValues(c.Path(), decision.String()).Inc()
			if v.Tamper.State() != guard.Idle {
				metrics.TamperIncidentsTotal.Inc()
			}

			switch decision {
			case guard.Authorized:
				return next(c)
			case guard.Redirecting:
				if msg := v.Navigator.AlertMessage(); msg != "" {
					c.Response().Header().Set(HeaderGuardAlert, msg)
				}
				target := v.Navigator.Target()
				if target == "" {
					target = guard.LoginRoute
				}
				return c.Redirect(http.StatusFound, target)
			default:
				c.Response().Header().Set(echo.HeaderRetryAfter, "1")
				return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "loading"})
			}
		}
	}
}
