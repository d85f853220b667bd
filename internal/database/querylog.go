// Package database provides the optional SQLite-backed query log.
//
// The log records one row per handled query (time, client, question,
// response code, answer count, handling duration). It is strictly
// best-effort: a write failure is the caller's to log and ignore, never a
// reason to stop serving.
package database

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

//go:embed schema.sql
var schemaSQL string

// Entry is one logged query.
type Entry struct {
	ID       int64
	Time     time.Time
	Client   string
	QName    string
	QType    string
	RCode    int
	Answers  int
	Duration time.Duration
}

// QueryLog wraps a SQLite database holding the query log.
type QueryLog struct {
	conn *sql.DB
}

// Open opens or creates the query log database at path and ensures the
// schema exists.
func Open(path string) (*QueryLog, error) {
	// WAL keeps concurrent request handlers from serializing on writes.
	dsn := fmt.Sprintf("file:%s?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL", path)

	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open query log: %w", err)
	}
	conn.SetMaxOpenConns(4)
	conn.SetMaxIdleConns(2)
	conn.SetConnMaxLifetime(time.Hour)

	if _, err := conn.Exec(schemaSQL); err != nil {
		conn.Close()
		return nil, fmt.Errorf("initialize query log schema: %w", err)
	}
	return &QueryLog{conn: conn}, nil
}

// Close closes the underlying database.
func (l *QueryLog) Close() error {
	return l.conn.Close()
}

// Insert appends one entry to the log.
func (l *QueryLog) Insert(ctx context.Context, e Entry) error {
	_, err := l.conn.ExecContext(ctx,
		`INSERT INTO query_log (ts, client, qname, qtype, rcode, answers, duration_us)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.Time.UnixMilli(), e.Client, e.QName, e.QType, e.RCode, e.Answers,
		e.Duration.Microseconds(),
	)
	if err != nil {
		return fmt.Errorf("insert query log entry: %w", err)
	}
	return nil
}

// Recent returns up to limit entries, newest first.
func (l *QueryLog) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := l.conn.QueryContext(ctx,
		`SELECT id, ts, client, qname, qtype, rcode, answers, duration_us
		 FROM query_log ORDER BY ts DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query log select: %w", err)
	}
	defer rows.Close()

	entries := make([]Entry, 0, limit)
	for rows.Next() {
		var (
			e          Entry
			tsMilli    int64
			durationUs int64
		)
		if err := rows.Scan(&e.ID, &tsMilli, &e.Client, &e.QName, &e.QType,
			&e.RCode, &e.Answers, &durationUs); err != nil {
			return nil, fmt.Errorf("query log scan: %w", err)
		}
		e.Time = time.UnixMilli(tsMilli)
		e.Duration = time.Duration(durationUs) * time.Microsecond
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Health checks database connectivity.
func (l *QueryLog) Health() error {
	return l.conn.Ping()
}
