package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Skazzi00/dns-server/internal/api/models"
)

// Records lists the loaded record store.
func (h *Handler) Records(c *gin.Context) {
	records := h.store.Records()
	out := make([]models.RecordResponse, 0, len(records))
	for _, rec := range records {
		out = append(out, models.RecordResponse{
			Name:  rec.Name,
			Class: rec.Class.String(),
			Type:  rec.Type.String(),
			Value: rec.Value,
		})
	}
	c.JSON(http.StatusOK, out)
}

// QueryLog lists recent persisted queries, newest first. Returns 404 when
// the query log is disabled.
func (h *Handler) QueryLog(c *gin.Context) {
	if h.queryLog == nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "query log disabled"})
		return
	}

	limit := 100
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > 1000 {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "limit must be 1..1000"})
			return
		}
		limit = n
	}

	entries, err := h.queryLog.Recent(c.Request.Context(), limit)
	if err != nil {
		if h.logger != nil {
			h.logger.Error("query log read failed", "err", err)
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "query log read failed"})
		return
	}

	out := make([]models.QueryLogEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, models.QueryLogEntryResponse{
			Time:       e.Time,
			Client:     e.Client,
			QName:      e.QName,
			QType:      e.QType,
			RCode:      e.RCode,
			Answers:    e.Answers,
			DurationUs: e.Duration.Microseconds(),
		})
	}
	c.JSON(http.StatusOK, out)
}
