// Package journal keeps a searchable history of every prompt the
// navigator processed, grouped into sessions.
//
// It uses SQLite with FTS5 full-text search. The database lives at
// <DataDir>/journal.db and is opened in WAL mode.
package journal

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// openDB is a package-level var to allow test injection.
var openDB = sql.Open

// timeNow is a package-level variable for testability.
var timeNow = time.Now

// dbFile is the database file name under DataDir.
const dbFile = "journal.db"

// ─── Types ───────────────────────────────────────────────────────────────────

// Session groups the prompts of one CLI run or server lifetime.
type Session struct {
	ID         string  `json:"id"`
	StartedAt  string  `json:"started_at"`
	EndedAt    *string `json:"ended_at,omitempty"`
	EntryCount int     `json:"entry_count"`
}

// Entry is one processed prompt and what the navigator did with it.
type Entry struct {
	ID         int64   `json:"id"`
	SessionID  string  `json:"session_id"`
	Prompt     string  `json:"prompt"`
	Action     string  `json:"action"`
	TargetID   string  `json:"target_id,omitempty"`
	Confidence float64 `json:"confidence"`
	Response   string  `json:"response"`
	CreatedAt  string  `json:"created_at"`
}

// Stats holds aggregate journal statistics.
type Stats struct {
	TotalSessions int            `json:"total_sessions"`
	TotalEntries  int            `json:"total_entries"`
	ByAction      map[string]int `json:"by_action"`
}

// ─── Config ──────────────────────────────────────────────────────────────────

// Config holds journal store configuration.
type Config struct {
	DataDir          string
	MaxPromptLength  int
	MaxSearchResults int
}

// DefaultConfig returns the default configuration for the journal.
func DefaultConfig() Config {
	home, _ := os.UserHomeDir()
	return Config{
		DataDir:          filepath.Join(home, ".navigate"),
		MaxPromptLength:  1000,
		MaxSearchResults: 20,
	}
}

// ─── Store ───────────────────────────────────────────────────────────────────

// Store is the prompt journal backed by SQLite + FTS5.
// It is safe for concurrent use.
type Store struct {
	db  *sql.DB
	cfg Config

	mu      sync.Mutex
	session string
}

// New creates a new Store with the given configuration.
// It creates the data directory if needed, opens SQLite with WAL mode,
// and runs migrations.
func New(cfg Config) (*Store, error) {
	if cfg.MaxSearchResults <= 0 {
		cfg.MaxSearchResults = DefaultConfig().MaxSearchResults
	}
	if err := os.MkdirAll(cfg.DataDir, 0o700); err != nil {
		return nil, fmt.Errorf("journal: create data dir: %w", err)
	}

	db, err := openDB("sqlite", filepath.Join(cfg.DataDir, dbFile))
	if err != nil {
		return nil, fmt.Errorf("journal: open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA foreign_keys = ON",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("journal: pragma %q: %w", p, err)
		}
	}

	s := &Store{db: db, cfg: cfg}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("journal: migration: %w", err)
	}
	return s, nil
}

// Path returns the database file location.
func (s *Store) Path() string {
	return filepath.Join(s.cfg.DataDir, dbFile)
}

// Close ends the current session, if any, and closes the database.
func (s *Store) Close() error {
	s.mu.Lock()
	id := s.session
	s.mu.Unlock()
	if id != "" {
		_ = s.EndSession(id) // best-effort
	}
	return s.db.Close()
}

// ─── Migrations ──────────────────────────────────────────────────────────────

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS sessions (
			id         TEXT PRIMARY KEY,
			started_at TEXT NOT NULL,
			ended_at   TEXT
		);

		CREATE TABLE IF NOT EXISTS entries (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT    NOT NULL,
			prompt     TEXT    NOT NULL,
			action     TEXT    NOT NULL,
			target_id  TEXT    NOT NULL DEFAULT '',
			confidence REAL    NOT NULL DEFAULT 0,
			response   TEXT    NOT NULL DEFAULT '',
			created_at TEXT    NOT NULL,
			FOREIGN KEY (session_id) REFERENCES sessions(id)
		);

		CREATE INDEX IF NOT EXISTS idx_entries_session ON entries(session_id);
		CREATE INDEX IF NOT EXISTS idx_entries_action  ON entries(action);
		CREATE INDEX IF NOT EXISTS idx_entries_created ON entries(created_at DESC);

		CREATE VIRTUAL TABLE IF NOT EXISTS entries_fts USING fts5(
			prompt,
			response,
			action,
			content='entries',
			content_rowid='id'
		);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return err
	}

	// FTS triggers (idempotent)
	var name string
	err := s.db.QueryRow(
		"SELECT name FROM sqlite_master WHERE type='trigger' AND name='entries_fts_insert'",
	).Scan(&name)
	if err == sql.ErrNoRows {
		triggers := `
			CREATE TRIGGER entries_fts_insert AFTER INSERT ON entries BEGIN
				INSERT INTO entries_fts(rowid, prompt, response, action)
				VALUES (new.id, new.prompt, new.response, new.action);
			END;

			CREATE TRIGGER entries_fts_delete AFTER DELETE ON entries BEGIN
				INSERT INTO entries_fts(entries_fts, rowid, prompt, response, action)
				VALUES ('delete', old.id, old.prompt, old.response, old.action);
			END;
		`
		if _, err := s.db.Exec(triggers); err != nil {
			return err
		}
	} else if err != nil {
		return err
	}
	return nil
}

// ─── Sessions ────────────────────────────────────────────────────────────────

// StartSession opens a new session and makes it current. Entries recorded
// without an explicit session id are attached to it.
func (s *Store) StartSession() (string, error) {
	id := uuid.NewString()
	if _, err := s.db.Exec(
		`INSERT INTO sessions (id, started_at) VALUES (?, ?)`, id, now(),
	); err != nil {
		return "", fmt.Errorf("journal: start session: %w", err)
	}
	s.mu.Lock()
	s.session = id
	s.mu.Unlock()
	return id, nil
}

// CurrentSession returns the id of the current session, or "".
func (s *Store) CurrentSession() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session
}

// EndSession stamps a session's end time. Ending the current session
// clears it.
func (s *Store) EndSession(id string) error {
	if _, err := s.db.Exec(
		`UPDATE sessions SET ended_at = ? WHERE id = ? AND ended_at IS NULL`, now(), id,
	); err != nil {
		return fmt.Errorf("journal: end session: %w", err)
	}
	s.mu.Lock()
	if s.session == id {
		s.session = ""
	}
	s.mu.Unlock()
	return nil
}

// RecentSessions returns the latest sessions with their entry counts.
func (s *Store) RecentSessions(limit int) ([]Session, error) {
	if limit <= 0 {
		limit = 5
	}
	rows, err := s.db.Query(`
		SELECT s.id, s.started_at, s.ended_at, COUNT(e.id)
		FROM sessions s
		LEFT JOIN entries e ON e.session_id = s.id
		GROUP BY s.id
		ORDER BY s.started_at DESC, s.rowid DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("journal: recent sessions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []Session
	for rows.Next() {
		var ss Session
		if err := rows.Scan(&ss.ID, &ss.StartedAt, &ss.EndedAt, &ss.EntryCount); err != nil {
			return nil, err
		}
		results = append(results, ss)
	}
	return results, rows.Err()
}

// ─── Entries ─────────────────────────────────────────────────────────────────

// Record saves one processed prompt. An empty SessionID attaches the entry
// to the current session, starting one when none is open.
func (s *Store) Record(e Entry) (int64, error) {
	if e.SessionID == "" {
		e.SessionID = s.CurrentSession()
	}
	if e.SessionID == "" {
		id, err := s.StartSession()
		if err != nil {
			return 0, err
		}
		e.SessionID = id
	}
	if max := s.cfg.MaxPromptLength; max > 0 {
		e.Prompt = Truncate(e.Prompt, max)
	}

	res, err := s.db.Exec(
		`INSERT INTO entries (session_id, prompt, action, target_id, confidence, response, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.SessionID, e.Prompt, e.Action, e.TargetID, e.Confidence, e.Response, now(),
	)
	if err != nil {
		return 0, fmt.Errorf("journal: record entry: %w", err)
	}
	return res.LastInsertId()
}

// Recent returns the latest entries, newest first.
func (s *Store) Recent(limit int) ([]Entry, error) {
	if limit <= 0 || limit > s.cfg.MaxSearchResults {
		limit = s.cfg.MaxSearchResults
	}
	return s.queryEntries(
		`SELECT id, session_id, prompt, action, target_id, confidence, response, created_at
		 FROM entries ORDER BY id DESC LIMIT ?`, limit)
}

// Search finds entries whose prompt, response or action match every
// word of query, best match first. An empty query behaves like Recent.
func (s *Store) Search(query string, limit int) ([]Entry, error) {
	if strings.TrimSpace(query) == "" {
		return s.Recent(limit)
	}
	if limit <= 0 || limit > s.cfg.MaxSearchResults {
		limit = s.cfg.MaxSearchResults
	}
	results, err := s.queryEntries(`
		SELECT e.id, e.session_id, e.prompt, e.action, e.target_id, e.confidence, e.response, e.created_at
		FROM entries_fts fts
		JOIN entries e ON e.id = fts.rowid
		WHERE entries_fts MATCH ?
		ORDER BY fts.rank LIMIT ?`, sanitizeFTS(query), limit)
	if err != nil {
		return nil, fmt.Errorf("journal: search: %w", err)
	}
	return results, nil
}

// Stats returns aggregate journal statistics.
func (s *Store) Stats() (*Stats, error) {
	stats := &Stats{ByAction: map[string]int{}}

	if err := s.db.QueryRow("SELECT COUNT(*) FROM sessions").Scan(&stats.TotalSessions); err != nil {
		return nil, fmt.Errorf("journal: count sessions: %w", err)
	}
	if err := s.db.QueryRow("SELECT COUNT(*) FROM entries").Scan(&stats.TotalEntries); err != nil {
		return nil, fmt.Errorf("journal: count entries: %w", err)
	}

	rows, err := s.db.Query("SELECT action, COUNT(*) FROM entries GROUP BY action")
	if err != nil {
		return stats, nil
	}
	defer func() { _ = rows.Close() }()
	for rows.Next() {
		var action string
		var n int
		if err := rows.Scan(&action, &n); err == nil {
			stats.ByAction[action] = n
		}
	}
	return stats, nil
}

func (s *Store) queryEntries(query string, args ...any) ([]Entry, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var results []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.SessionID, &e.Prompt, &e.Action, &e.TargetID, &e.Confidence, &e.Response, &e.CreatedAt); err != nil {
			return nil, err
		}
		results = append(results, e)
	}
	return results, rows.Err()
}

// ─── Helpers ─────────────────────────────────────────────────────────────────

// Truncate shortens s to max runes, marking the cut with "...".
func Truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max]) + "..."
}

// sanitizeFTS wraps each word in quotes for safe FTS5 queries.
// "fix auth bug" → `"fix" "auth" "bug"`
func sanitizeFTS(query string) string {
	words := strings.Fields(query)
	for i, w := range words {
		w = strings.ReplaceAll(w, `"`, "")
		words[i] = `"` + w + `"`
	}
	return strings.Join(words, " ")
}

func now() string {
	return timeNow().UTC().Format("2006-01-02 15:04:05")
}
