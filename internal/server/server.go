// Package server exposes the ops HTTP surface of the scheduler daemon:
// health and Prometheus metrics. The service serves no query routes.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/plan4land/tourindex/internal/elasticsearch"
	"github.com/plan4land/tourindex/internal/logger"
)

// Default timeout values.
const (
	defaultReadTimeout     = 30 * time.Second
	defaultWriteTimeout    = 60 * time.Second
	defaultIdleTimeout     = 120 * time.Second
	defaultShutdownTimeout = 10 * time.Second
	healthCheckTimeout     = 5 * time.Second
)

// Config holds ops server configuration.
type Config struct {
	Port        int
	ServiceName string
	Version     string
	IndexName   string
	Debug       bool
}

// Server is the ops HTTP server.
type Server struct {
	httpServer *http.Server
	logger     logger.Logger
}

// New builds the ops server with health and metrics routes.
func New(cfg Config, esClient *elasticsearch.Client, registry *prometheus.Registry, log logger.Logger) *Server {
	if cfg.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/health", healthHandler(cfg, esClient))
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	return &Server{
		httpServer: &http.Server{
			Addr:         fmt.Sprintf(":%d", cfg.Port),
			Handler:      router,
			ReadTimeout:  defaultReadTimeout,
			WriteTimeout: defaultWriteTimeout,
			IdleTimeout:  defaultIdleTimeout,
		},
		logger: log,
	}
}

// Start runs the server until the context is cancelled, then shuts down
// gracefully.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Ops server listening", logger.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("ops server: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), defaultShutdownTimeout)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("ops server shutdown: %w", err)
		}
		s.logger.Info("Ops server stopped")
		return nil
	}
}

// healthHandler reports service status and the search index connection.
func healthHandler(cfg Config, esClient *elasticsearch.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		checks := map[string]string{"elasticsearch": "ok"}
		status := "healthy"
		code := http.StatusOK

		ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
		defer cancel()

		if esClient != nil {
			if _, err := esClient.IndexExists(ctx, cfg.IndexName); err != nil {
				checks["elasticsearch"] = err.Error()
				status = "degraded"
				code = http.StatusServiceUnavailable
			}
		}

		c.JSON(code, gin.H{
			"status":  status,
			"service": cfg.ServiceName,
			"version": cfg.Version,
			"checks":  checks,
		})
	}
}
