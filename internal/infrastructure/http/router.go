package http

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"

	// registers the OpenAPI document served under /swagger
	_ "github.com/homeservice/marketplace/docs"
	"github.com/homeservice/marketplace/internal/infrastructure/http/handlers"
)

// Ops groups what the operational routes need.
type Ops struct {
	Probes     map[string]handlers.Probe
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// RegisterOps installs the request metrics middleware and the health,
// metrics and swagger routes on e.
func RegisterOps(e *echo.Echo, ops Ops) {
	reg, gat := ops.Registerer, ops.Gatherer
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if gat == nil {
		gat = prometheus.DefaultGatherer
	}

	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "homeservice",
		Subsystem:  "http",
		Registerer: reg,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))

	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(ops.Probes)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(gat, promhttp.HandlerOpts{})))
	e.GET("/swagger/*", echoSwagger.WrapHandler)
}
