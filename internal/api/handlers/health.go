package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Skazzi00/dns-server/internal/api/models"
)

// Health returns server health status.
func (h *Handler) Health(c *gin.Context) {
	if h.queryLog != nil {
		if err := h.queryLog.Health(); err != nil {
			c.JSON(http.StatusServiceUnavailable, models.StatusResponse{Status: "degraded"})
			return
		}
	}
	c.JSON(http.StatusOK, models.StatusResponse{Status: "ok"})
}
