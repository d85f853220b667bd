package database_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skazzi00/dns-server/internal/database"
)

func openLog(t *testing.T) *database.QueryLog {
	t.Helper()
	l, err := database.Open(filepath.Join(t.TempDir(), "queries.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = l.Close() })
	return l
}

func TestInsertAndRecent(t *testing.T) {
	l := openLog(t)
	ctx := context.Background()

	base := time.Now().Truncate(time.Millisecond)
	for i := range 3 {
		err := l.Insert(ctx, database.Entry{
			Time:     base.Add(time.Duration(i) * time.Second),
			Client:   "127.0.0.1:50000",
			QName:    "www.example.com",
			QType:    "A",
			RCode:    0,
			Answers:  1,
			Duration: 250 * time.Microsecond,
		})
		require.NoError(t, err)
	}

	entries, err := l.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	// Newest first.
	assert.True(t, entries[0].Time.After(entries[2].Time))
	assert.Equal(t, "www.example.com", entries[0].QName)
	assert.Equal(t, "A", entries[0].QType)
	assert.Equal(t, 250*time.Microsecond, entries[0].Duration)
}

func TestRecentLimit(t *testing.T) {
	l := openLog(t)
	ctx := context.Background()

	for i := range 5 {
		require.NoError(t, l.Insert(ctx, database.Entry{
			Time: time.Now(), Client: "c", QName: "q", QType: "A", Answers: i,
		}))
	}

	entries, err := l.Recent(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestHealth(t *testing.T) {
	l := openLog(t)
	assert.NoError(t, l.Health())
}
