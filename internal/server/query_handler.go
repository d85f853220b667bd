// Package server implements the UDP DNS server and its lifecycle.
package server

import (
	"context"
	"log/slog"
	"time"

	"github.com/Skazzi00/dns-server/internal/database"
	"github.com/Skazzi00/dns-server/internal/dns"
	"github.com/Skazzi00/dns-server/internal/resolvers"
)

// QueryHandler turns one inbound datagram into zero or one response.
//
// Every failure is contained here: a datagram that fails to decode is
// logged, counted, and dropped without a response. Nothing a client sends
// can propagate an error out of Handle.
type QueryHandler struct {
	Logger   *slog.Logger             // optional
	Resolver *resolvers.StoreResolver // question processor
	Stats    *DNSStats                // optional counters
	QueryLog *database.QueryLog       // optional persistence, best-effort
}

// Handle processes a single request payload from src and returns the
// response bytes, or nil when no response should be sent.
func (h *QueryHandler) Handle(ctx context.Context, src string, payload []byte) []byte {
	start := time.Now()

	req, err := dns.ParseMessage(payload)
	if err != nil {
		if h.Stats != nil {
			h.Stats.RecordDecodeError()
		}
		if h.Logger != nil {
			h.Logger.Debug("dropping undecodable query",
				"src", src,
				"bytes", len(payload),
				"err", err,
			)
		}
		return nil
	}

	resp := h.Resolver.Resolve(req)
	out := resp.Marshal()
	elapsed := time.Since(start)

	fullyAnswered := resp.Header.Flags.ResponseCode == dns.RCodeNoError
	if h.Stats != nil {
		h.Stats.RecordQuery(fullyAnswered)
		h.Stats.RecordLatency(elapsed.Nanoseconds())
	}
	h.logRequest(ctx, src, req, resp, elapsed)
	h.persist(ctx, src, req, resp, elapsed)

	return out
}

func (h *QueryHandler) logRequest(ctx context.Context, src string, req, resp dns.Message, elapsed time.Duration) {
	if h.Logger == nil || !h.Logger.Enabled(ctx, slog.LevelDebug) {
		return
	}
	qname, qtype := "<no-question>", ""
	if len(req.Questions) > 0 {
		qname = req.Questions[0].Name
		qtype = req.Questions[0].Type.String()
	}
	h.Logger.Debug("dns request",
		"src", src,
		"id", int(req.Header.ID),
		"qname", qname,
		"qtype", qtype,
		"questions", len(req.Questions),
		"answers", len(resp.Answers),
		"rcode", int(resp.Header.Flags.ResponseCode),
		"elapsed_us", elapsed.Microseconds(),
	)
}

// persist writes the query to the log if one is configured. Failures are
// logged and swallowed; the serve path never depends on the log.
func (h *QueryHandler) persist(ctx context.Context, src string, req, resp dns.Message, elapsed time.Duration) {
	if h.QueryLog == nil {
		return
	}
	qname, qtype := "", ""
	if len(req.Questions) > 0 {
		qname = req.Questions[0].Name
		qtype = req.Questions[0].Type.String()
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	err := h.QueryLog.Insert(ctx, database.Entry{
		Time:     time.Now(),
		Client:   src,
		QName:    qname,
		QType:    qtype,
		RCode:    int(resp.Header.Flags.ResponseCode),
		Answers:  len(resp.Answers),
		Duration: elapsed,
	})
	if err != nil && h.Logger != nil {
		h.Logger.Warn("query log write failed", "err", err)
	}
}
