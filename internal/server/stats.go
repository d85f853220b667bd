package server

import "sync/atomic"

// DNSStats collects DNS serving statistics.
// All methods are safe for concurrent use.
type DNSStats struct {
	queriesTotal   atomic.Uint64
	answered       atomic.Uint64
	unanswered     atomic.Uint64
	decodeErrors   atomic.Uint64
	latencyTotalNs atomic.Uint64
}

// NewDNSStats creates a new statistics collector.
func NewDNSStats() *DNSStats {
	return &DNSStats{}
}

// RecordQuery records a decoded query and whether every question in it was
// answered.
func (s *DNSStats) RecordQuery(fullyAnswered bool) {
	s.queriesTotal.Add(1)
	if fullyAnswered {
		s.answered.Add(1)
	} else {
		s.unanswered.Add(1)
	}
}

// RecordDecodeError records a datagram that failed to decode.
func (s *DNSStats) RecordDecodeError() {
	s.decodeErrors.Add(1)
}

// RecordLatency records handling latency in nanoseconds.
func (s *DNSStats) RecordLatency(ns int64) {
	if ns > 0 {
		s.latencyTotalNs.Add(uint64(ns))
	}
}

// DNSStatsSnapshot is a point-in-time snapshot of serving statistics.
type DNSStatsSnapshot struct {
	QueriesTotal uint64
	Answered     uint64
	Unanswered   uint64
	DecodeErrors uint64
	AvgLatencyMs float64
}

// Snapshot returns the current statistics.
func (s *DNSStats) Snapshot() DNSStatsSnapshot {
	total := s.queriesTotal.Load()

	avgLatencyMs := 0.0
	if total > 0 {
		avgLatencyMs = float64(s.latencyTotalNs.Load()) / float64(total) / 1e6
	}

	return DNSStatsSnapshot{
		QueriesTotal: total,
		Answered:     s.answered.Load(),
		Unanswered:   s.unanswered.Load(),
		DecodeErrors: s.decodeErrors.Load(),
		AvgLatencyMs: avgLatencyMs,
	}
}
