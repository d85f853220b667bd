// Package api provides the REST management API: health, statistics, the
// loaded record store, and the query log, served over a Gin-based HTTP
// server.
//
// Security note: do not expose the API to untrusted networks without an
// API key; it binds to localhost by default.
package api

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Skazzi00/dns-server/internal/api/handlers"
	"github.com/Skazzi00/dns-server/internal/api/middleware"
	"github.com/Skazzi00/dns-server/internal/config"
)

// Server is the management REST API server.
type Server struct {
	logger     *slog.Logger
	engine     *gin.Engine
	httpServer *http.Server
}

// New builds the API server from the configuration and handler
// dependencies.
func New(cfg *config.Config, logger *slog.Logger, h *handlers.Handler) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.SlogRequestLogger(logger))

	RegisterRoutes(engine, h, cfg)

	addr := net.JoinHostPort(cfg.API.Host, strconv.Itoa(cfg.API.Port))
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           engine,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	return &Server{logger: logger, engine: engine, httpServer: httpServer}
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Engine exposes the router for tests.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) ListenAndServe() error {
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
