package server

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/Skazzi00/dns-server/internal/api"
	"github.com/Skazzi00/dns-server/internal/api/handlers"
	"github.com/Skazzi00/dns-server/internal/config"
	"github.com/Skazzi00/dns-server/internal/database"
	"github.com/Skazzi00/dns-server/internal/resolvers"
	"github.com/Skazzi00/dns-server/internal/zone"
)

const stopTimeout = 5 * time.Second

// Runner orchestrates startup, serving, and shutdown.
type Runner struct {
	logger *slog.Logger
}

// NewRunner creates a runner with the given logger.
func NewRunner(logger *slog.Logger) *Runner {
	return &Runner{logger: logger}
}

// Run starts the DNS server over the given record store and blocks until
// SIGINT/SIGTERM or a server error.
func (r *Runner) Run(cfg *config.Config, store *zone.Store) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	return r.RunWithContext(ctx, cfg, store)
}

// RunWithContext starts the DNS server and blocks until ctx is cancelled
// or a server error occurs.
//
// Lifecycle:
//  1. Open the query log, if configured
//  2. Build the resolver and query handler over the read-only store
//  3. Start the UDP server and, if enabled, the management API
//  4. Wait for cancellation or a server error
//  5. Stop the UDP server gracefully, shut the API down, close the log
func (r *Runner) RunWithContext(ctx context.Context, cfg *config.Config, store *zone.Store) error {
	ctx, cancelRun := context.WithCancel(ctx)
	defer cancelRun()

	var queryLog *database.QueryLog
	if cfg.QueryLog.Path != "" {
		var err error
		queryLog, err = database.Open(cfg.QueryLog.Path)
		if err != nil {
			return fmt.Errorf("open query log: %w", err)
		}
		defer queryLog.Close()
		r.logger.Info("query log enabled", "path", cfg.QueryLog.Path)
	}

	stats := NewDNSStats()
	resolver := resolvers.NewStoreResolver(store, nil)
	resolver.Logger = r.logger
	handler := &QueryHandler{
		Logger:   r.logger,
		Resolver: resolver,
		Stats:    stats,
		QueryLog: queryLog,
	}

	addr := net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port))
	udp := &UDPServer{
		Logger:         r.logger,
		Handler:        handler,
		MaxConcurrency: cfg.Server.MaxConcurrency,
	}

	r.logger.Info("dns server starting",
		"addr", addr,
		"records", store.Len(),
		"max_concurrency", cfg.Server.MaxConcurrency,
	)

	errCh := make(chan error, 2)
	go func() { errCh <- udp.Run(ctx, addr) }()

	apiServer := r.startAPI(cfg, store, queryLog, stats, errCh)

	var runErr error
	select {
	case <-ctx.Done():
		// shutdown requested via signal
	case err := <-errCh:
		runErr = err
		cancelRun()
	}

	if err := udp.Stop(stopTimeout); err != nil {
		r.logger.Warn("udp shutdown incomplete", "err", err)
	}
	if apiServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), stopTimeout)
		defer cancel()
		if err := apiServer.Shutdown(shutdownCtx); err != nil {
			r.logger.Warn("api shutdown incomplete", "err", err)
		}
	}

	r.logger.Info("dns server stopped")
	return runErr
}

// startAPI launches the management API when enabled, reporting fatal
// listen errors through errCh.
func (r *Runner) startAPI(
	cfg *config.Config,
	store *zone.Store,
	queryLog *database.QueryLog,
	stats *DNSStats,
	errCh chan<- error,
) *api.Server {
	if !cfg.API.Enabled {
		return nil
	}

	statsFn := func() handlers.DNSStatsSnapshot {
		s := stats.Snapshot()
		return handlers.DNSStatsSnapshot{
			QueriesTotal: s.QueriesTotal,
			Answered:     s.Answered,
			Unanswered:   s.Unanswered,
			DecodeErrors: s.DecodeErrors,
			AvgLatencyMs: s.AvgLatencyMs,
		}
	}
	h := handlers.New(r.logger, store, queryLog, statsFn)
	srv := api.New(cfg, r.logger, h)

	r.logger.Info("management api starting", "addr", srv.Addr())
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()
	return srv
}
