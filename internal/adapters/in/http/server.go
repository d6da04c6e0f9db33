// Package http is the echo adapter over the route and verification use cases.
package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"routehub/internal/core/application/usecases/commands"
	"routehub/internal/core/application/usecases/queries"
	"routehub/internal/core/domain/model/route"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
)

const DefaultRequestTimeout = 5 * time.Second

// Handler is a use case that returns a result.
type Handler[In, Out any] interface {
	Handle(ctx context.Context, in In) (Out, error)
}

// Executor is a use case that only reports failure.
type Executor[In any] interface {
	Handle(ctx context.Context, in In) error
}

// Handlers are the use cases the server exposes.
type Handlers struct {
	CreateRoute         Handler[commands.CreateRouteCommand, *route.Route]
	ClaimRoute          Handler[commands.ClaimRouteCommand, *route.Route]
	CompleteRoute       Handler[commands.CompleteRouteCommand, *route.Route]
	UpdateRouteFields   Handler[commands.UpdateRouteFieldsCommand, *route.Route]
	RegisterPushAddress Executor[commands.RegisterPushAddressCommand]
	IssueChallenge      Handler[commands.IssueChallengeCommand, commands.IssueChallengeResult]
	ValidateChallenge   Handler[commands.ValidateChallengeCommand, commands.ValidateChallengeResult]
	ConsumeResetGrant   Executor[commands.ConsumeResetGrantCommand]

	GetRoute           Handler[queries.GetRouteQuery, queries.RouteSummary]
	ListRoutes         Handler[queries.ListRoutesQuery, []queries.RouteSummary]
	FindUserByEmail    Handler[queries.FindUserByEmailQuery, queries.UserSummary]
	ValidateResetGrant Handler[queries.ValidateResetGrantQuery, bool]
}

type Config struct {
	JWTSecret      string
	RequestTimeout time.Duration
}

// Server maps HTTP requests onto the use cases.
type Server struct {
	handlers  Handlers
	validator *requestValidator
	secret    []byte
	timeout   time.Duration
	logger    *slog.Logger
}

func NewServer(handlers Handlers, cfg Config, logger *slog.Logger) (*Server, error) {
	if cfg.JWTSecret == "" {
		return nil, errors.New("jwt secret is required")
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = DefaultRequestTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}

	validator, err := newRequestValidator()
	if err != nil {
		return nil, err
	}

	return &Server{
		handlers:  handlers,
		validator: validator,
		secret:    []byte(cfg.JWTSecret),
		timeout:   cfg.RequestTimeout,
		logger:    logger.With("component", "http"),
	}, nil
}

// Register mounts the API, the documentation and the health check on e.
func (s *Server) Register(e *echo.Echo) {
	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
			}
			if v.Error != nil {
				attrs = append(attrs, slog.String("error", v.Error.Error()))
			}
			s.logger.LogAttrs(c.Request().Context(), slog.LevelInfo, "Request", attrs...)
			return nil
		},
	}))

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/openapi.yaml", serveOpenAPIDocument)
	e.GET("/swagger/*", echoSwagger.EchoWrapHandler(echoSwagger.URL("/openapi.yaml")))

	api := e.Group("/api/v1",
		middleware.ContextTimeoutWithConfig(middleware.ContextTimeoutConfig{Timeout: s.timeout}),
		s.validator.middleware,
	)
	auth := bearerAuth(s.secret)

	api.POST("/routes", s.CreateRoute, auth)
	api.GET("/available-routes", s.ListAvailableRoutes, auth)
	api.GET("/routes/:routeId", s.GetRoute, auth)
	api.PATCH("/routes/:routeId", s.UpdateRoute, auth)
	api.POST("/routes/:routeId/claim", s.ClaimRoute, auth)
	api.POST("/routes/:routeId/complete", s.CompleteRoute, auth)
	api.GET("/me/routes", s.ListMyRoutes, auth)
	api.GET("/me/routes/completed", s.ListMyCompletedRoutes, auth)
	api.PUT("/me/push-address", s.RegisterPushAddress, auth)

	api.POST("/verification/codes", s.SendCode)
	api.POST("/verification/codes/validate", s.ValidateCode)
	api.POST("/password-reset/check", s.CheckResetToken)
	api.POST("/password-reset", s.ResetPassword)
}
