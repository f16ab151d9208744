package journal_test

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/HendryAvila/navigate/internal/journal"
)

func newTestStore(t *testing.T) *journal.Store {
	t.Helper()
	s, err := journal.New(journal.Config{
		DataDir:          t.TempDir(),
		MaxPromptLength:  1000,
		MaxSearchResults: 20,
	})
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func mustRecord(t *testing.T, s *journal.Store, prompt, action, response string) int64 {
	t.Helper()
	id, err := s.Record(journal.Entry{
		Prompt:     prompt,
		Action:     action,
		Confidence: 0.85,
		Response:   response,
	})
	if err != nil {
		t.Fatalf("Record(%q) failed: %v", prompt, err)
	}
	return id
}

// --- New ---

func TestNew_CreatesDBFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	s, err := journal.New(journal.Config{DataDir: dir})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	defer s.Close()

	if _, err := os.Stat(filepath.Join(dir, "journal.db")); err != nil {
		t.Errorf("journal.db not created: %v", err)
	}
	if s.Path() != filepath.Join(dir, "journal.db") {
		t.Errorf("Path() = %q", s.Path())
	}

	var mode string
	if err := s.DB().QueryRow("PRAGMA journal_mode").Scan(&mode); err != nil {
		t.Fatal(err)
	}
	if mode != "wal" {
		t.Errorf("journal_mode = %q, want wal", mode)
	}
}

func TestNew_IdempotentReopen(t *testing.T) {
	dir := t.TempDir()
	cfg := journal.Config{DataDir: dir}

	s1, err := journal.New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s1.Record(journal.Entry{Prompt: "Build a new website", Action: "create_main_task"}); err != nil {
		t.Fatal(err)
	}
	_ = s1.Close()

	s2, err := journal.New(cfg)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer s2.Close()

	results, err := s2.Search("website", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 {
		t.Errorf("got %d results after reopen, want 1", len(results))
	}
}

func TestNew_OpenFailure(t *testing.T) {
	restore := journal.SetOpenDB(func(string, string) (*sql.DB, error) {
		return nil, errors.New("boom")
	})
	defer restore()

	_, err := journal.New(journal.Config{DataDir: t.TempDir()})
	if err == nil || !strings.Contains(err.Error(), "open database") {
		t.Errorf("err = %v, want open database failure", err)
	}
}

// --- Sessions ---

func TestSessions_Lifecycle(t *testing.T) {
	s := newTestStore(t)

	id, err := s.StartSession()
	if err != nil {
		t.Fatal(err)
	}
	if len(id) != 36 {
		t.Errorf("session id %q is not a uuid", id)
	}
	if s.CurrentSession() != id {
		t.Error("started session should be current")
	}

	mustRecord(t, s, "Build a new website", "create_main_task", "Created main task: 'Build a new website'")
	mustRecord(t, s, "Done", "clarify", "Which task?")

	sessions, err := s.RecentSessions(5)
	if err != nil {
		t.Fatal(err)
	}
	if len(sessions) != 1 || sessions[0].EntryCount != 2 {
		t.Fatalf("sessions = %+v, want one with 2 entries", sessions)
	}
	if sessions[0].EndedAt != nil {
		t.Error("open session should have no end time")
	}

	if err := s.EndSession(id); err != nil {
		t.Fatal(err)
	}
	if s.CurrentSession() != "" {
		t.Error("ending the current session should clear it")
	}
	sessions, _ = s.RecentSessions(5)
	if sessions[0].EndedAt == nil {
		t.Error("ended session should have an end time")
	}
}

func TestRecord_StartsSessionLazily(t *testing.T) {
	s := newTestStore(t)
	if s.CurrentSession() != "" {
		t.Fatal("fresh store should have no session")
	}
	mustRecord(t, s, "Build a new website", "create_main_task", "ok")
	if s.CurrentSession() == "" {
		t.Error("Record should open a session")
	}
}

// --- Entries ---

func TestRecent_NewestFirst(t *testing.T) {
	s := newTestStore(t)
	for _, p := range []string{"first", "second", "third"} {
		mustRecord(t, s, p, "create_main_task", "ok")
	}

	got, err := s.Recent(2)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0].Prompt != "third" || got[1].Prompt != "second" {
		t.Errorf("Recent(2) = %+v", got)
	}
}

func TestRecord_FieldsAndTimestamp(t *testing.T) {
	restore := journal.SetTimeNow(func() time.Time {
		return time.Date(2026, 2, 10, 14, 30, 5, 0, time.UTC)
	})
	defer restore()

	s := newTestStore(t)
	_, err := s.Record(journal.Entry{
		Prompt:     "Done with user authentication",
		Action:     "mark_complete",
		TargetID:   "task_0.0",
		Confidence: 0.9,
		Response:   "Marked task as complete: 'Add user authentication' (50%)",
	})
	if err != nil {
		t.Fatal(err)
	}

	got, _ := s.Recent(1)
	e := got[0]
	if e.Action != "mark_complete" || e.TargetID != "task_0.0" || e.Confidence != 0.9 {
		t.Errorf("entry = %+v", e)
	}
	if e.CreatedAt != "2026-02-10 14:30:05" {
		t.Errorf("CreatedAt = %q", e.CreatedAt)
	}
}

func TestRecord_TruncatesLongPrompts(t *testing.T) {
	s, err := journal.New(journal.Config{DataDir: t.TempDir(), MaxPromptLength: 10})
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	if _, err := s.Record(journal.Entry{Prompt: strings.Repeat("a", 50), Action: "clarify"}); err != nil {
		t.Fatal(err)
	}
	got, _ := s.Recent(1)
	if got[0].Prompt != strings.Repeat("a", 10)+"..." {
		t.Errorf("Prompt = %q", got[0].Prompt)
	}
}

func TestSearch(t *testing.T) {
	s := newTestStore(t)
	mustRecord(t, s, "Build a new website", "create_main_task", "Created main task: 'Build a new website'")
	mustRecord(t, s, "Add user authentication", "create_subtask", "Added subtask")
	mustRecord(t, s, "Plan the garden", "create_main_task", "Created main task: 'Plan the garden'")

	got, err := s.Search("website", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Prompt != "Build a new website" {
		t.Errorf("Search(website) = %+v", got)
	}

	// Quotes and FTS operators in user input are neutralized.
	if _, err := s.Search(`"garden" OR -auth*`, 10); err != nil {
		t.Errorf("Search with operators failed: %v", err)
	}

	all, err := s.Search("   ", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 {
		t.Errorf("blank search returned %d entries, want all 3", len(all))
	}
}

func TestStats(t *testing.T) {
	s := newTestStore(t)
	mustRecord(t, s, "Build a new website", "create_main_task", "ok")
	mustRecord(t, s, "Plan the garden", "create_main_task", "ok")
	mustRecord(t, s, "Done", "clarify", "Which task?")

	stats, err := s.Stats()
	if err != nil {
		t.Fatal(err)
	}
	if stats.TotalSessions != 1 || stats.TotalEntries != 3 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.ByAction["create_main_task"] != 2 || stats.ByAction["clarify"] != 1 {
		t.Errorf("ByAction = %v", stats.ByAction)
	}
}

func TestTruncate(t *testing.T) {
	if got := journal.Truncate("héllo", 10); got != "héllo" {
		t.Errorf("short string changed: %q", got)
	}
	if got := journal.Truncate("héllo wörld", 5); got != "héllo..." {
		t.Errorf("Truncate = %q", got)
	}
}
