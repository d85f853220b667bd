// Package models defines the JSON shapes returned by the management API.
package models

import "time"

// StatusResponse is the health check reply.
type StatusResponse struct {
	Status string `json:"status"`
}

// ErrorResponse carries an error message.
type ErrorResponse struct {
	Error string `json:"error"`
}

// DNSStatsResponse reports DNS serving counters.
type DNSStatsResponse struct {
	QueriesTotal uint64  `json:"queries_total"`
	Answered     uint64  `json:"answered"`
	Unanswered   uint64  `json:"unanswered"`
	DecodeErrors uint64  `json:"decode_errors"`
	AvgLatencyMs float64 `json:"avg_latency_ms"`
}

// SystemStatsResponse reports process and host metrics.
type SystemStatsResponse struct {
	GoRoutines     int     `json:"goroutines"`
	MemoryAllocMB  float64 `json:"memory_alloc_mb"`
	NumCPU         int     `json:"num_cpu"`
	CPUPercent     float64 `json:"cpu_percent"`
	HostMemUsedPct float64 `json:"host_mem_used_pct"`
}

// ServerStatsResponse is the full /stats reply.
type ServerStatsResponse struct {
	Uptime        string              `json:"uptime"`
	UptimeSeconds int64               `json:"uptime_seconds"`
	StartTime     time.Time           `json:"start_time"`
	RecordsLoaded int                 `json:"records_loaded"`
	DNS           DNSStatsResponse    `json:"dns"`
	System        SystemStatsResponse `json:"system"`
}

// RecordResponse is one loaded zone record.
type RecordResponse struct {
	Name  string `json:"name"`
	Class string `json:"class"`
	Type  string `json:"type"`
	Value string `json:"value"`
}

// QueryLogEntryResponse is one persisted query.
type QueryLogEntryResponse struct {
	Time       time.Time `json:"time"`
	Client     string    `json:"client"`
	QName      string    `json:"qname"`
	QType      string    `json:"qtype"`
	RCode      int       `json:"rcode"`
	Answers    int       `json:"answers"`
	DurationUs int64     `json:"duration_us"`
}
