package api_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skazzi00/dns-server/internal/api"
	"github.com/Skazzi00/dns-server/internal/api/handlers"
	"github.com/Skazzi00/dns-server/internal/api/models"
	"github.com/Skazzi00/dns-server/internal/config"
	"github.com/Skazzi00/dns-server/internal/database"
	"github.com/Skazzi00/dns-server/internal/dns"
	"github.com/Skazzi00/dns-server/internal/zone"
)

func testStore() *zone.Store {
	return zone.NewStore([]zone.Record{
		{Name: "www.example.com", Class: dns.ClassIN, Type: dns.TypeA, Value: "1.2.3.4"},
		{Name: "alias.example.com", Class: dns.ClassIN, Type: dns.TypeCNAME, Value: "www.example.com"},
	})
}

func testServer(t *testing.T, apiKey string, queryLog *database.QueryLog) *api.Server {
	t.Helper()
	cfg, err := config.Load("")
	require.NoError(t, err)
	cfg.API.Enabled = true
	cfg.API.Port = 8080
	cfg.API.APIKey = apiKey

	stats := func() handlers.DNSStatsSnapshot {
		return handlers.DNSStatsSnapshot{QueriesTotal: 3, Answered: 2, Unanswered: 1}
	}
	h := handlers.New(nil, testStore(), queryLog, stats)
	return api.New(cfg, nil, h)
}

func get(s *api.Server, path, key string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if key != "" {
		req.Header.Set("X-API-Key", key)
	}
	rec := httptest.NewRecorder()
	s.Engine().ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	s := testServer(t, "", nil)
	rec := get(s, "/api/v1/health", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var body models.StatusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body.Status)
}

func TestStats(t *testing.T) {
	s := testServer(t, "", nil)
	rec := get(s, "/api/v1/stats", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var body models.ServerStatsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 2, body.RecordsLoaded)
	assert.Equal(t, uint64(3), body.DNS.QueriesTotal)
	assert.Equal(t, uint64(1), body.DNS.Unanswered)
}

func TestRecords(t *testing.T) {
	s := testServer(t, "", nil)
	rec := get(s, "/api/v1/records", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var body []models.RecordResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body, 2)
	assert.Equal(t, "www.example.com", body[0].Name)
	assert.Equal(t, "A", body[0].Type)
	assert.Equal(t, "IN", body[0].Class)
	assert.Equal(t, "CNAME", body[1].Type)
}

func TestQueryLogDisabled(t *testing.T) {
	s := testServer(t, "", nil)
	rec := get(s, "/api/v1/querylog", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestQueryLogEnabled(t *testing.T) {
	l, err := database.Open(filepath.Join(t.TempDir(), "q.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = l.Close() })

	s := testServer(t, "", l)
	rec := get(s, "/api/v1/querylog?limit=5", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var body []models.QueryLogEntryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Empty(t, body)
}

func TestQueryLogBadLimit(t *testing.T) {
	l, err := database.Open(filepath.Join(t.TempDir(), "q.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = l.Close() })

	s := testServer(t, "", l)
	rec := get(s, "/api/v1/querylog?limit=nope", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAPIKeyProtection(t *testing.T) {
	s := testServer(t, "sekrit", nil)

	assert.Equal(t, http.StatusOK, get(s, "/api/v1/health", "").Code,
		"health stays public")
	assert.Equal(t, http.StatusUnauthorized, get(s, "/api/v1/stats", "").Code)
	assert.Equal(t, http.StatusUnauthorized, get(s, "/api/v1/stats", "wrong").Code)
	assert.Equal(t, http.StatusOK, get(s, "/api/v1/stats", "sekrit").Code)
}
