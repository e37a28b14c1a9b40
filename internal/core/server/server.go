package server

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ecodeli/internal/core/apierror"
	"ecodeli/internal/core/config"
	"ecodeli/internal/core/logger"

	"github.com/gofiber/contrib/fiberzap/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	_ "ecodeli/docs/swagger"
)

const healthCheckTimeout = 2 * time.Second

// Pinger is a dependency checked by /healthz.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Option configures a Server.
type Option func(*Server)

// WithMetrics exposes the gatherer on GET /metrics.
func WithMetrics(g prometheus.Gatherer) Option {
	return func(s *Server) { s.gatherer = g }
}

// WithHealthCheck adds a dependency to GET /healthz.
func WithHealthCheck(name string, p Pinger) Option {
	return func(s *Server) {
		s.checkNames = append(s.checkNames, name)
		s.checks[name] = p
	}
}

// Server holds the Fiber application and configuration.
type Server struct {
	// App is the main Fiber application instance.
	App *fiber.App
	// cfg holds the application configuration.
	cfg *config.AppConfig

	gatherer   prometheus.Gatherer
	checks     map[string]Pinger
	checkNames []string
}

// New creates a new Server instance with configured middleware.
func New(cfg *config.AppConfig, opts ...Option) *Server {
	s := &Server{
		cfg:    cfg,
		checks: make(map[string]Pinger),
	}
	for _, opt := range opts {
		opt(s)
	}

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		AppName:               "ecodeli",
		ErrorHandler:          errorHandler,
	})

	app.Use(requestid.New(requestid.Config{
		Header: "X-Ray-ID",
	}))

	app.Use(fiberzap.New(fiberzap.Config{
		Logger: logger.Get(),
	}))

	app.Get("/swagger/*", swagger.HandlerDefault)
	app.Get("/healthz", s.healthz)
	if s.gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{})))
	}

	s.App = app
	return s
}

// Run starts the HTTP server.
func (s *Server) Run() error {
	addr := fmt.Sprintf(":%d", s.cfg.ServerPort)
	logger.Get().Info("Starting server", zap.String("address", addr))
	return s.App.Listen(addr)
}

// Shutdown stops accepting connections and waits for in-flight requests until ctx is done.
func (s *Server) Shutdown(ctx context.Context) error {
	logger.Get().Info("Shutting down server")
	return s.App.ShutdownWithContext(ctx)
}

// healthz handles GET /healthz.
// @Summary Health check
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]any
// @Failure 503 {object} map[string]any
// @Router /healthz [get]
func (s *Server) healthz(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), healthCheckTimeout)
	defer cancel()

	status := fiber.StatusOK
	results := make(fiber.Map, len(s.checkNames))
	for _, name := range s.checkNames {
		if err := s.checks[name].Ping(ctx); err != nil {
			logger.Get().Warn("Health check failed", zap.String("check", name), zap.Error(err))
			results[name] = "unavailable"
			status = fiber.StatusServiceUnavailable
			continue
		}
		results[name] = "ok"
	}

	overall := "ok"
	if status != fiber.StatusOK {
		overall = "degraded"
	}
	return c.Status(status).JSON(fiber.Map{"status": overall, "checks": results})
}

// errorHandler renders errors that escaped a handler, including unmatched routes, as the API envelope.
func errorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code := apierror.CodeInternal
		switch fe.Code {
		case fiber.StatusNotFound:
			code = apierror.CodeNotFound
		case fiber.StatusMethodNotAllowed, fiber.StatusBadRequest, fiber.StatusRequestEntityTooLarge:
			code = apierror.CodeInvalidFormat
		}
		return apierror.Send(c, fe.Code, apierror.Body{Code: code, Message: fe.Message})
	}

	logger.Get().Error("Unhandled error",
		zap.String("ray_id", apierror.RayID(c)),
		zap.String("path", c.Path()),
		zap.Error(err),
	)
	return apierror.Send(c, fiber.StatusInternalServerError, apierror.Body{
		Code:    apierror.CodeInternal,
		Message: "Internal server error",
	})
}
