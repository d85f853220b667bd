package handlers

import (
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/Skazzi00/dns-server/internal/api/models"
)

// Stats returns uptime, DNS counters, and process/host metrics.
func (h *Handler) Stats(c *gin.Context) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	uptime := time.Since(h.startTime)
	resp := models.ServerStatsResponse{
		Uptime:        uptime.Round(time.Second).String(),
		UptimeSeconds: int64(uptime.Seconds()),
		StartTime:     h.startTime,
		RecordsLoaded: h.store.Len(),
		System: models.SystemStatsResponse{
			GoRoutines:    runtime.NumGoroutine(),
			MemoryAllocMB: float64(m.Alloc) / 1024 / 1024,
			NumCPU:        runtime.NumCPU(),
		},
	}

	// Host metrics are best-effort; a sampling failure leaves zeroes.
	if percents, err := cpu.Percent(0, false); err == nil && len(percents) > 0 {
		resp.System.CPUPercent = percents[0]
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		resp.System.HostMemUsedPct = vm.UsedPercent
	}

	if h.dnsStats != nil {
		s := h.dnsStats()
		resp.DNS = models.DNSStatsResponse{
			QueriesTotal: s.QueriesTotal,
			Answered:     s.Answered,
			Unanswered:   s.Unanswered,
			DecodeErrors: s.DecodeErrors,
			AvgLatencyMs: s.AvgLatencyMs,
		}
	}

	c.JSON(http.StatusOK, resp)
}
