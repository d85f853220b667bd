// Package handlers implements the management API endpoints.
//
// Endpoints:
//   - GET /api/v1/health   - health check (always public)
//   - GET /api/v1/stats    - uptime, DNS counters, process/host metrics
//   - GET /api/v1/records  - the loaded record store
//   - GET /api/v1/querylog - recent persisted queries (404 when disabled)
//
// All endpoints except /health honor the optional X-API-Key header check
// configured in the route setup.
package handlers

import (
	"log/slog"
	"time"

	"github.com/Skazzi00/dns-server/internal/database"
	"github.com/Skazzi00/dns-server/internal/zone"
)

// DNSStatsSnapshot mirrors the server's statistics snapshot. It is
// re-declared here so the API does not import the server package.
type DNSStatsSnapshot struct {
	QueriesTotal uint64
	Answered     uint64
	Unanswered   uint64
	DecodeErrors uint64
	AvgLatencyMs float64
}

// DNSStatsFunc returns the current DNS statistics.
type DNSStatsFunc func() DNSStatsSnapshot

// Handler contains dependencies for the API endpoints.
type Handler struct {
	logger    *slog.Logger
	store     *zone.Store
	queryLog  *database.QueryLog // nil when disabled
	dnsStats  DNSStatsFunc       // nil when unavailable
	startTime time.Time
}

// New creates a Handler. store must be non-nil; queryLog and dnsStats may
// be nil, which disables the corresponding endpoints or fields.
func New(logger *slog.Logger, store *zone.Store, queryLog *database.QueryLog, dnsStats DNSStatsFunc) *Handler {
	return &Handler{
		logger:    logger,
		store:     store,
		queryLog:  queryLog,
		dnsStats:  dnsStats,
		startTime: time.Now(),
	}
}
