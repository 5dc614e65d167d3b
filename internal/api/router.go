package api

import (
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/homeservice/marketplace/internal/api/handler"
	"github.com/homeservice/marketplace/internal/api/middleware"
	"github.com/homeservice/marketplace/internal/core/domain"
	"github.com/homeservice/marketplace/internal/core/ports"
	infrahttp "github.com/homeservice/marketplace/internal/infrastructure/http"
)

// Deps carries everything the router wires into handlers.
type Deps struct {
	Log       zerolog.Logger
	JWTSecret string

	// Storage scopes durable client storage to one visitor.
	Storage      ports.StorageProvider
	ClientCookie string
	SecureCookie bool
	SocialTTL    time.Duration

	// LoginPerMinute caps login attempts per client IP. Zero disables it.
	LoginPerMinute int

	// Directory serves mock logins; Backend answers identity questions and
	// is the directory itself unless an external backend is configured.
	Directory     ports.AuthService
	Backend       ports.AuthBackend
	Reservations  ports.ReservationService
	Notifications ports.NotificationService

	Ops infrahttp.Ops
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)
	e.Validator = handler.NewValidator()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())

	// --- Ops: health probes, metrics, swagger (no visitor needed) ---
	infrahttp.RegisterOps(e, d.Ops)

	backend := d.Backend
	if backend == nil {
		backend = d.Directory
	}

	visitor := middleware.LoadVisitor(middleware.VisitorConfig{
		CookieName:   d.ClientCookie,
		SecureCookie: d.SecureCookie,
		Storage:      d.Storage,
		Backend:      backend,
		Log:          d.Log,
	})
	auth := middleware.Auth(d.JWTSecret)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(d.Directory, backend, d.SocialTTL, d.Log.With().Str("component", "auth").Logger())
	reservationHandler := handler.NewReservationHandler(d.Reservations)
	notificationHandler := handler.NewNotificationHandler(d.Notifications)
	pageHandler := handler.NewPageHandler(d.Reservations)

	// --- Mock identity backend ---
	e.GET("/api/v1/auth/check-id", authHandler.CheckID)
	e.GET("/customers/confirm", authHandler.ConfirmCustomer)

	// --- Visitor session ---
	sess := e.Group("/auth", visitor)
	sess.POST("/login", authHandler.Login, loginLimiter(d.LoginPerMinute)...)
	sess.POST("/logout", authHandler.Logout)
	sess.GET("/session", authHandler.Session)
	sess.PUT("/social-profile", authHandler.PutSocialProfile)
	sess.GET("/social-profile", authHandler.GetSocialProfile)

	// --- Alerts ---
	alerts := e.Group("/alerts", visitor)
	alerts.GET("", notificationHandler.List)
	alerts.POST("/read-all", notificationHandler.MarkAllRead)

	// --- Mock reservation backend ---
	e.GET("/reservations", reservationHandler.List, visitor, auth)
	e.POST("/reservations", reservationHandler.Create, visitor, auth)
	e.POST("/reservations/reset", reservationHandler.Reset, visitor, auth)
	e.GET("/reservation/:id", reservationHandler.Get, visitor, auth)
	e.PATCH("/reservation/:id", reservationHandler.Patch, visitor, auth)

	// --- Guarded pages ---
	customer := e.Group("/customer", visitor, middleware.RouteGuard(domain.RoleCustomer))
	customer.GET("", pageHandler.CustomerHome)
	customer.GET("/reservations", pageHandler.CustomerReservations)

	manager := e.Group("/manager", visitor, middleware.RouteGuard(domain.RoleManager))
	manager.GET("", pageHandler.ManagerHome)

	admin := e.Group("/admin", visitor, middleware.RouteGuard(domain.RoleAdmin))
	admin.GET("", pageHandler.AdminHome)

	return e
}

func loginLimiter(perMinute int) []echo.MiddlewareFunc {
	if perMinute <= 0 {
		return nil
	}
	store := echomiddleware.NewRateLimiterMemoryStoreWithConfig(echomiddleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Every(time.Minute / time.Duration(perMinute)),
		Burst:     perMinute,
		ExpiresIn: 3 * time.Minute,
	})
	return []echo.MiddlewareFunc{echomiddleware.RateLimiter(store)}
}
