// Package server provides the HTTP API for ruiji.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/hyperjump/ruiji/internal/anomaly"
	"github.com/hyperjump/ruiji/internal/collection"
	"github.com/hyperjump/ruiji/internal/config"
	"github.com/hyperjump/ruiji/internal/registry"
	"github.com/hyperjump/ruiji/internal/search"
)

// Server is the HTTP server for the ruiji API.
type Server struct {
	store    *collection.Store
	engine   *search.Engine
	ranker   *anomaly.Ranker
	registry *registry.Registry
	config   *config.ServerConfig
	logger   *zap.Logger
	server   *http.Server
}

// NewServer creates a server with the given dependencies. registry may be
// nil; the status endpoint then reports only loaded collections.
func NewServer(
	store *collection.Store,
	engine *search.Engine,
	ranker *anomaly.Ranker,
	reg *registry.Registry,
	cfg *config.ServerConfig,
	logger *zap.Logger,
) *Server {
	return &Server{
		store:    store,
		engine:   engine,
		ranker:   ranker,
		registry: reg,
		config:   cfg,
		logger:   logger,
	}
}

// Handler builds the router. Exposed for handler tests.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(middleware.Compress(5))

	r.Post("/api/v1/collections/{name}/search", s.handleSearch)
	r.Post("/api/v1/collections/{name}/rank", s.handleRank)
	r.Post("/api/v1/collections/{name}/anomalies", s.handleAnomalies)
	r.Get("/api/v1/collections", s.handleListCollections)
	r.Get("/api/v1/status", s.handleStatus)
	r.Get("/health", s.handleHealth)
	return r
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.Handler(),
	}
	s.logger.Info("Starting server", zap.String("addr", addr))
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
