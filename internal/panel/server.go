// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package panel serves the viewer controls and the rendered map over HTTP.
package panel

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/wneessen/windviewer/internal/logger"
	"github.com/wneessen/windviewer/internal/presenter"
	"github.com/wneessen/windviewer/internal/viewer"
)

const shutdownTimeout = 10 * time.Second

// Options configures the HTTP panel.
type Options struct {
	Listen      string
	BearerToken string
}

// Server bundles router and dependencies for the panel.
type Server struct {
	opts      Options
	viewer    *viewer.Viewer
	presenter *presenter.Presenter
	logger    *logger.Logger
	engine    *gin.Engine
}

// New constructs a server with routes and middleware.
func New(opts Options, v *viewer.Viewer, pres *presenter.Presenter, log *logger.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(requestLogger(log))
	engine.Use(corsMiddleware())

	if opts.BearerToken != "" {
		engine.Use(bearerAuthMiddleware(opts.BearerToken))
	}

	server := &Server{opts: opts, viewer: v, presenter: pres, logger: log, engine: engine}
	server.registerRoutes()
	return server
}

// Engine exposes the underlying gin engine.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// Run starts the HTTP server and blocks until ctx is cancelled or the listener fails.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.opts.Listen,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()
	s.logger.Info("control panel listening", slog.String("address", s.opts.Listen))

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) registerRoutes() {
	s.engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := s.engine.Group("/api")
	{
		api.GET("/status", s.handleStatus)
		api.PUT("/date", s.handleSelectDate)
		api.POST("/load", s.handleLoad)
		api.POST("/overlay/toggle", s.handleToggleOverlay)
		api.DELETE("/alert", s.handleDismissAlert)
		api.GET("/legend", s.handleLegend)
		api.POST("/map/pan", s.handlePan)
		api.POST("/map/zoom", s.handleZoom)
		api.POST("/map/resize", s.handleResize)
	}

	s.engine.GET("/map.png", s.handleMapImage)
	s.engine.GET("/overlay.png", s.handleOverlayImage)
}

func requestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Debug("panel request", slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path), slog.Int("status", c.Writer.Status()),
			slog.Duration("took", time.Since(start)))
	}
}

func bearerAuthMiddleware(expected string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == "/healthz" {
			c.Next()
			return
		}
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		token := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
		if token != expected {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		c.Next()
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
