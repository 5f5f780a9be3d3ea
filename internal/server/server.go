// Package server provides the HTTP API for editing filter settings and
// classifying posts.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/abdulachik/feedfilter/internal/filter"
	"github.com/abdulachik/feedfilter/internal/metrics"
	"github.com/abdulachik/feedfilter/internal/watcher"
	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 10 * time.Second

// SettingsService is the settings store used by the handlers.
type SettingsService interface {
	Load(ctx context.Context) (filter.Settings, error)
	Save(ctx context.Context, settings filter.Settings) error
	AddKeywords(ctx context.Context, input string) ([]string, error)
	RemoveKeyword(ctx context.Context, keyword string) error
	ClearKeywords(ctx context.Context) error
}

// Config holds server configuration.
type Config struct {
	Addr     string
	Settings SettingsService
	Metrics  *metrics.Metrics
	Health   *watcher.Health
}

// Server serves the HTTP API.
type Server struct {
	addr     string
	router   *gin.Engine
	settings SettingsService
	metrics  *metrics.Metrics
	health   *watcher.Health
}

// New creates a server with all routes registered.
func New(cfg Config) *Server {
	health := cfg.Health
	if health == nil {
		health = watcher.NewHealth()
	}

	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())

	s := &Server{
		addr:     cfg.Addr,
		router:   router,
		settings: cfg.Settings,
		metrics:  cfg.Metrics,
		health:   health,
	}
	s.routes()

	return s
}

func (s *Server) routes() {
	s.router.GET("/health", s.handleHealth)
	if s.metrics != nil {
		s.router.GET("/metrics", gin.WrapH(s.metrics.Handler()))
	}

	v1 := s.router.Group("/api/v1")
	v1.GET("/settings", s.handleGetSettings)
	v1.PUT("/settings", s.handlePutSettings)
	v1.POST("/keywords", s.handleAddKeywords)
	v1.DELETE("/keywords", s.handleClearKeywords)
	v1.DELETE("/keywords/:keyword", s.handleRemoveKeyword)
	v1.POST("/classify", s.handleClassify)
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("http server listening", "addr", s.addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	return ctx.Err()
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		slog.Debug("http request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}
