package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/pushr/marketplace/docs"
	"github.com/pushr/marketplace/internal/api/handler"
	"github.com/pushr/marketplace/internal/api/middleware"
	"github.com/pushr/marketplace/internal/core/domain"
	"github.com/pushr/marketplace/internal/core/ports"
	"github.com/pushr/marketplace/internal/infrastructure/http/handlers"
)

// Dependencies is everything the HTTP adapter needs. Mongo and Redis are
// optional and only used for readiness probes.
type Dependencies struct {
	Sessions ports.SessionService
	Auth     ports.AuthService
	Roles    ports.RoleService
	Tokens   *middleware.SessionTokens

	Mongo *mongo.Database
	Redis *redis.Client

	// Registerer and Gatherer default to the global Prometheus registry.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer

	Log zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	if deps.Registerer == nil {
		deps.Registerer = prometheus.DefaultRegisterer
	}
	if deps.Gatherer == nil {
		deps.Gatherer = prometheus.DefaultGatherer
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "pushr_http",
		Registerer: deps.Registerer,
	}))

	// --- Dependencies ---
	sessionHandler := handler.NewSessionHandler(deps.Sessions, deps.Roles, deps.Tokens)
	authHandler := handler.NewAuthHandler(deps.Auth)
	adminHandler := handler.NewAdminHandler(deps.Sessions)
	auth := middleware.Auth(deps.Tokens)

	// --- Session routes ---
	e.POST("/v1/sessions", sessionHandler.Create)

	s := e.Group("/v1/session", auth)
	s.GET("", sessionHandler.Get)
	s.POST("/onboarding/complete", sessionHandler.CompleteOnboarding)
	s.PUT("/auth-view", sessionHandler.SelectAuthView)
	s.POST("/login", authHandler.Login)
	s.POST("/signup", authHandler.Signup)
	s.PUT("/tab", sessionHandler.SelectTab)
	s.PUT("/role", sessionHandler.SwitchRole)
	s.POST("/logout", sessionHandler.Logout)
	s.PUT("/overlays/:name", sessionHandler.SetOverlay)
	s.POST("/overlays/:name/toggle", sessionHandler.ToggleOverlay)
	s.PUT("/pusher/online", sessionHandler.SetOnline)
	s.POST("/pusher/float", sessionHandler.AdjustFloat)

	// --- Admin routes ---
	admin := e.Group("/v1/admin", auth, middleware.RequireActiveRole(deps.Sessions, domain.RoleAdmin))
	admin.GET("/sessions/:id/journal", adminHandler.Journal)

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness

	// --- Operations ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: deps.Gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

// requestLogger writes one zerolog line per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			evt := log.Info()
			if v.Error != nil {
				evt = log.Warn().Err(v.Error)
			}
			evt.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
