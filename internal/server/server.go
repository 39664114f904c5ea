// Package server runs the read-only HTTP surface over a loaded tracker,
// alongside the metrics endpoint.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/preston-bernstein/dread-tracker/internal/config"
	httpserver "github.com/preston-bernstein/dread-tracker/internal/http"
	"github.com/preston-bernstein/dread-tracker/internal/http/handlers"
	"github.com/preston-bernstein/dread-tracker/internal/logging"
	"github.com/preston-bernstein/dread-tracker/internal/metrics"
)

var metricsSetup = metrics.Setup

// OpenFunc loads the tracker served over HTTP. It receives the recorder so
// persistence metrics land on the same instruments as request metrics.
type OpenFunc func(ctx context.Context, recorder *metrics.Recorder) (handlers.Reader, error)

type Server struct {
	cfg           config.Config
	logger        *slog.Logger
	metrics       *metrics.Recorder
	reader        handlers.Reader
	httpServer    httpServer
	metricsServer httpServer
	metricsStop   func(context.Context) error
}

// New sets up telemetry, opens the tracker and builds the HTTP server.
func New(ctx context.Context, cfg config.Config, logger *slog.Logger, open OpenFunc) (*Server, error) {
	return newServerWithMetrics(ctx, cfg, logger, open, nil)
}

func newServerWithMetrics(ctx context.Context, cfg config.Config, logger *slog.Logger, open OpenFunc, recorder *metrics.Recorder) (*Server, error) {
	if open == nil {
		return nil, errors.New("server: open func is required")
	}
	if logger == nil {
		logger = logging.NewLogger(logging.Config{})
	}
	recorder, metricsSrv, metricsShutdown := buildMetrics(ctx, cfg, logger, recorder)

	reader, err := open(ctx, recorder)
	if err != nil {
		if metricsShutdown != nil {
			_ = metricsShutdown(ctx)
		}
		return nil, fmt.Errorf("open tracker: %w", err)
	}

	return &Server{
		cfg:           cfg,
		logger:        logger,
		metrics:       recorder,
		reader:        reader,
		httpServer:    buildHTTPServer(cfg, reader, logger, recorder),
		metricsServer: metricsSrv,
		metricsStop:   metricsShutdown,
	}, nil
}

// newServerWithDeps is used for testing to inject custom components.
func newServerWithDeps(cfg config.Config, logger *slog.Logger, reader handlers.Reader, httpSrv httpServer) *Server {
	return &Server{
		cfg:        cfg,
		logger:     logger,
		reader:     reader,
		httpServer: httpSrv,
	}
}

func buildHTTPServer(cfg config.Config, reader handlers.Reader, logger *slog.Logger, recorder *metrics.Recorder) httpServer {
	handler := handlers.NewHandler(reader, logger)
	router := httpserver.NewRouter(handler, logger, recorder)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTP.Port,
		Handler:      router,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	return netHTTPServer{srv: srv}
}

// Run starts the HTTP and metrics servers, then waits for context
// cancellation to shut down gracefully.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) {
	s.startMetrics()
	s.startServer(stop)

	<-ctx.Done()
	logging.Info(s.logger, "shutdown signal received")

	s.gracefulShutdown()
}

func (s *Server) startServer(stop context.CancelFunc) {
	logging.Info(s.logger, "http server starting", slog.String("addr", s.httpServer.Addr()))
	launchServer("http", s.httpServer, s.logger, func(err error) {
		if stop != nil {
			stop()
		}
	})
}

func (s *Server) startMetrics() {
	if s.metricsServer == nil {
		return
	}
	logging.Info(s.logger, "metrics server starting", slog.String("addr", s.metricsServer.Addr()))
	launchServer("metrics", s.metricsServer, s.logger, nil)
}

func (s *Server) gracefulShutdown() {
	timeout := time.Duration(s.cfg.HTTP.ShutdownTimeout)
	if timeout <= 0 {
		timeout = shutdownTimeout
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if s.metricsStop != nil {
		if err := s.metricsStop(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics shutdown failed", "error", err)
		}
	}

	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics server shutdown failed", "error", err)
		}
	}

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		logging.Error(s.logger, "graceful shutdown failed", err)
	}

	logging.Info(s.logger, "shutdown complete")
}

func buildMetrics(ctx context.Context, cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (*metrics.Recorder, httpServer, func(context.Context) error) {
	if recorder != nil {
		return recorder, nil, nil
	}
	if !cfg.Metrics.Enabled {
		return metrics.NewRecorder(), nil, nil
	}

	recCfg := metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		Port:         cfg.Metrics.Port,
		ServiceName:  cfg.Metrics.ServiceName,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	}

	rec, handler, shutdown, err := metricsSetup(ctx, recCfg)
	if err != nil {
		logging.Warn(logger, "metrics setup failed, continuing without telemetry", "error", err)
		return metrics.NewRecorder(), nil, nil
	}

	var metricsSrv httpServer
	if handler != nil {
		metricsSrv = netHTTPServer{
			srv: &http.Server{
				Addr:              ":" + recCfg.Port,
				Handler:           handler,
				ReadHeaderTimeout: readTimeout,
			},
		}
	}

	return rec, metricsSrv, shutdown
}

func launchServer(name string, srv httpServer, logger *slog.Logger, onError func(error)) {
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Warn(logger, name+" server failed", "error", err)
			if onError != nil {
				onError(err)
			}
		}
	}()
}

// Handler exposes the HTTP handler (useful for tests).
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler()
}

// Recorder exposes the recorder shared by the tracker and the HTTP layer.
func (s *Server) Recorder() *metrics.Recorder {
	return s.metrics
}
