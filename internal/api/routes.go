package api

import (
	"github.com/gin-gonic/gin"

	"github.com/Skazzi00/dns-server/internal/api/handlers"
	"github.com/Skazzi00/dns-server/internal/api/middleware"
	"github.com/Skazzi00/dns-server/internal/config"
)

// RegisterRoutes mounts the API endpoints on r. The health endpoint stays
// public; everything else goes behind the API key when one is configured.
func RegisterRoutes(r *gin.Engine, h *handlers.Handler, cfg *config.Config) {
	api := r.Group("/api/v1")
	api.GET("/health", h.Health)

	protected := api.Group("")
	if cfg != nil && cfg.API.APIKey != "" {
		protected.Use(middleware.RequireAPIKey(cfg.API.APIKey))
	}
	protected.GET("/stats", h.Stats)
	protected.GET("/records", h.Records)
	protected.GET("/querylog", h.QueryLog)
}
