// Package server wires the bedrockgate HTTP surface: the chi router with its
// middleware stack and an http.Server with graceful shutdown.
package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/teilomillet/bedrockgate/config"
	"github.com/teilomillet/bedrockgate/server/handlers"
	"github.com/teilomillet/bedrockgate/server/metrics"
	"github.com/teilomillet/bedrockgate/server/middleware"
	"go.uber.org/zap"
)

// NewRouter creates the router serving the status, metrics and generation routes.
func NewRouter(generation *handlers.GenerationHandler, m *metrics.Metrics, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	// Add our middleware stack. Metrics wrap Recovery so recovered panics
	// are counted with their 500.
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging(logger))
	r.Use(middleware.PrometheusMetrics(m))
	r.Use(middleware.Recovery(logger, m))

	r.Get("/", handlers.Root)
	r.Get("/health", handlers.Health)
	r.Method(http.MethodGet, "/metrics", m.Handler())

	r.Route("/bedrock", func(r chi.Router) {
		r.Get("/invoke", generation.Invoke)
		r.Get("/query", generation.Query)
	})

	return r
}

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	cfg        config.ServerConfig
	logger     *zap.Logger
}

// NewServer creates a new server instance
func NewServer(cfg config.ServerConfig, handler http.Handler, logger *zap.Logger) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:           cfg.Addr(),
			Handler:        handler,
			ReadTimeout:    cfg.ReadTimeout,
			WriteTimeout:   cfg.WriteTimeout,
			MaxHeaderBytes: cfg.MaxHeaderBytes,
		},
		cfg:    cfg,
		logger: logger,
	}
}

// Start starts the server and blocks until ctx is cancelled or the listener
// fails. On cancellation in-flight requests get cfg.ShutdownTimeout to finish.
func (s *Server) Start(ctx context.Context) error {
	errChan := make(chan error, 1)

	go func() {
		s.logger.Info("Server started", zap.String("address", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
		defer cancel()

		s.logger.Info("Shutting down server", zap.Duration("timeout", s.cfg.ShutdownTimeout))
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("error during server shutdown: %w", err)
		}
		return nil

	case err := <-errChan:
		return err
	}
}
