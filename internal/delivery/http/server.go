// Package http serves the ingest surface: webhook endpoints, the Pub/Sub
// push endpoint, health and metrics.
package http

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"scout/config"
	"scout/internal/delivery"
	"scout/internal/delivery/http/handler"
	"scout/internal/delivery/http/validator"
	"scout/internal/delivery/middleware"
	"scout/internal/domain/lifecycle"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
)

type httpServer struct {
	cfg    *config.Config
	logger *slog.Logger
	server *echo.Echo
}

// ServerParams holds dependencies for the ingest HTTP server
type ServerParams struct {
	fx.In

	Lc            fx.Lifecycle
	Cfg           *config.Config
	Logger        *slog.Logger
	Registry      *prometheus.Registry
	IngestHandler *handler.IngestHandler
	PushHandler   *handler.PushHandler
}

// NewServer creates the ingest HTTP server
func NewServer(params ServerParams) (delivery.Delivery, error) {
	e := echo.New()
	e.HideBanner = true
	e.Validator = validator.New()

	// Recover first, request id before logging
	e.Use(echomiddleware.Recover())
	requestIDMiddleware := middleware.NewRequestIDMiddleware(params.Logger)
	e.Use(requestIDMiddleware.Process)
	loggerMiddleware := middleware.NewLoggerMiddleware(params.Logger, params.Cfg)
	e.Use(loggerMiddleware.Handle)

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(params.Registry, promhttp.HandlerOpts{})))

	// Webhook ingest, one endpoint per event kind
	e.POST("/ingest/:kind", params.IngestHandler.HandleIngest)

	// Pub/Sub push delivery of the ingest feed
	e.POST("/push", params.PushHandler.HandlePush)

	srv := &httpServer{
		cfg:    params.Cfg,
		logger: params.Logger,
		server: e,
	}

	params.Lc.Append(fx.Hook{
		OnStop: srv.stop,
	})

	return srv, nil
}

// Serve starts the ingest HTTP server
func (s *httpServer) Serve(_ context.Context) error {
	hostPort := net.JoinHostPort("0.0.0.0", strconv.Itoa(s.cfg.HTTP.Port))
	s.logger.Info("Starting ingest HTTP server", slog.String("hostPort", hostPort))
	if err := s.server.Start(hostPort); err != nil {
		return errors.WithStack(err)
	}

	return nil
}

// stop gracefully shuts down the ingest server
func (s *httpServer) stop(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, lifecycle.DefaultTimeout)
	defer cancel()

	s.logger.Info("Shutting down ingest HTTP server")

	return errors.WithStack(s.server.Shutdown(shutdownCtx))
}
