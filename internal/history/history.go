// Package history persists haptic pipeline events to SQLite so the agent
// and the dashboard can answer "what did the device feel recently".
//
// The store is best-effort: if the database cannot be opened the pipeline
// runs without history rather than failing, and a recording error disables
// further writes instead of propagating.
package history

import (
	"database/sql"
	"fmt"
	"sync"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/FujiiNoritsugu/go-haptic/internal/log"
	"github.com/FujiiNoritsugu/go-haptic/pkg/emotion"
)

// Entry is one recorded pipeline event.
type Entry struct {
	ID        string         `json:"id"`
	Kind      string         `json:"kind"`
	Device    string         `json:"device,omitempty"`
	Emotion   emotion.Vector `json:"emotion"`
	Pattern   string         `json:"pattern,omitempty"`
	Intensity float64        `json:"intensity"`
	Success   bool           `json:"success"`
	CreatedAt string         `json:"created_at"`
}

// Event kinds.
const (
	KindTouch    = "touch"
	KindDispatch = "dispatch"
	KindSensor   = "sensor"
	KindAlert    = "alert"
)

// Store is the persistent event log backed by SQLite.
type Store struct {
	mu       sync.Mutex
	db       *sql.DB
	disabled bool
}

// Open creates or opens the history database at path. On failure it returns
// a disabled store and logs the cause; callers never need a nil check.
func Open(path string) *Store {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		log.Warn("history disabled, cannot open database", "path", path, "error", err)
		return &Store{disabled: true}
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			log.Warn("history disabled, pragma failed", "pragma", p, "error", err)
			db.Close()
			return &Store{disabled: true}
		}
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		log.Warn("history disabled, migration failed", "error", err)
		db.Close()
		return &Store{disabled: true}
	}
	return s
}

// Close closes the underlying database.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Enabled reports whether the store is recording.
func (s *Store) Enabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.disabled
}

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS events (
			id         TEXT PRIMARY KEY,
			kind       TEXT NOT NULL,
			device     TEXT,
			joy        INTEGER NOT NULL DEFAULT 0,
			fun        INTEGER NOT NULL DEFAULT 0,
			anger      INTEGER NOT NULL DEFAULT 0,
			sad        INTEGER NOT NULL DEFAULT 0,
			pattern    TEXT,
			intensity  REAL NOT NULL DEFAULT 0,
			success    INTEGER NOT NULL DEFAULT 0,
			created_at TEXT NOT NULL DEFAULT (datetime('now'))
		);

		CREATE INDEX IF NOT EXISTS idx_events_created ON events(created_at DESC);
		CREATE INDEX IF NOT EXISTS idx_events_kind    ON events(kind);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Record persists one event. A write failure disables the store so the
// pipeline is never slowed by a broken disk.
func (s *Store) Record(e Entry) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.disabled {
		return ""
	}

	id := uuid.NewString()
	_, err := s.db.Exec(
		`INSERT INTO events (id, kind, device, joy, fun, anger, sad, pattern, intensity, success)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, e.Kind, e.Device,
		e.Emotion.Joy, e.Emotion.Fun, e.Emotion.Anger, e.Emotion.Sad,
		e.Pattern, e.Intensity, boolToInt(e.Success),
	)
	if err != nil {
		log.Warn("history write failed, disabling store", "error", err)
		s.disabled = true
		return ""
	}
	return id
}

// Recent returns the newest entries, newest first. Kind filters when
// non-empty.
func (s *Store) Recent(kind string, limit int) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.disabled {
		return nil, nil
	}
	if limit <= 0 {
		limit = 20
	}

	query := `SELECT id, kind, ifnull(device, ''), joy, fun, anger, sad,
	                 ifnull(pattern, ''), intensity, success, created_at
	          FROM events`
	args := []any{}
	if kind != "" {
		query += " WHERE kind = ?"
		args = append(args, kind)
	}
	query += " ORDER BY created_at DESC, id DESC LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("history query: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var success int
		if err := rows.Scan(
			&e.ID, &e.Kind, &e.Device,
			&e.Emotion.Joy, &e.Emotion.Fun, &e.Emotion.Anger, &e.Emotion.Sad,
			&e.Pattern, &e.Intensity, &success, &e.CreatedAt,
		); err != nil {
			return nil, err
		}
		e.Success = success != 0
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Stats aggregates counts per kind and the overall dispatch success rate.
type Stats struct {
	Total        int            `json:"total"`
	ByKind       map[string]int `json:"by_kind"`
	DispatchOK   int            `json:"dispatch_ok"`
	DispatchFail int            `json:"dispatch_fail"`
}

// Stats returns aggregate counters over the whole log.
func (s *Store) Stats() (*Stats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.disabled {
		return &Stats{ByKind: map[string]int{}}, nil
	}

	stats := &Stats{ByKind: make(map[string]int)}
	rows, err := s.db.Query(`SELECT kind, COUNT(*) FROM events GROUP BY kind`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var kind string
		var n int
		if err := rows.Scan(&kind, &n); err != nil {
			return nil, err
		}
		stats.ByKind[kind] = n
		stats.Total += n
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := s.db.QueryRow(
		`SELECT COUNT(*) FROM events WHERE kind = ? AND success = 1`, KindDispatch,
	).Scan(&stats.DispatchOK); err != nil {
		return nil, err
	}
	if err := s.db.QueryRow(
		`SELECT COUNT(*) FROM events WHERE kind = ? AND success = 0`, KindDispatch,
	).Scan(&stats.DispatchFail); err != nil {
		return nil, err
	}

	return stats, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
