// Package middleware provides HTTP middleware for the management API:
// slog request logging and API key authentication.
package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Skazzi00/dns-server/internal/api/models"
)

// SlogRequestLogger logs each request with method, path, status, latency,
// and client IP.
func SlogRequestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		if logger != nil {
			logger.Info("api request",
				"method", method,
				"path", path,
				"status", c.Writer.Status(),
				"latency_ms", time.Since(start).Milliseconds(),
				"client_ip", c.ClientIP(),
			)
		}
	}
}

// RequireAPIKey enforces a shared-secret API key.
// Clients must send `X-API-Key: <key>`.
func RequireAPIKey(expected string) gin.HandlerFunc {
	return func(c *gin.Context) {
		got := c.GetHeader("X-API-Key")
		if expected == "" || got == expected {
			c.Next()
			return
		}
		c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{Error: "unauthorized"})
	}
}
