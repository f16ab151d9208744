package server

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/HendryAvila/navigate/internal/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.Roadmap = filepath.Join(dir, "roadmap.md")
	cfg.Achievements = filepath.Join(dir, "achievements.md")
	cfg.DataDir = filepath.Join(dir, "data")
	return cfg
}

func TestOpen_WithJournal(t *testing.T) {
	rt, cleanup, err := Open(testConfig(t))
	if err != nil {
		t.Fatal(err)
	}
	defer cleanup()

	if rt.Journal == nil {
		t.Fatal("journal should be open")
	}
	rt.Navigator.ProcessPrompt("Build a new website")

	entries, err := rt.Journal.Recent(5)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Action != "create_main_task" {
		t.Errorf("journal entries = %+v", entries)
	}
	if doc, _ := rt.Docs.ReadRoadmap(); !strings.Contains(doc, "# Build a new website") {
		t.Errorf("roadmap = %q", doc)
	}
}

func TestOpen_JournalDisabled(t *testing.T) {
	cfg := testConfig(t)
	cfg.Journal = false

	rt, cleanup, err := Open(cfg)
	if err != nil {
		t.Fatal(err)
	}
	defer cleanup()
	if rt.Journal != nil {
		t.Error("journal should be nil when disabled")
	}
}

func TestOpen_JournalFailureIsNonFatal(t *testing.T) {
	cfg := testConfig(t)
	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg.DataDir = filepath.Join(blocker, "data")

	rt, cleanup, err := Open(cfg)
	if err != nil {
		t.Fatalf("journal failure should not fail Open: %v", err)
	}
	defer cleanup()
	if rt.Journal != nil {
		t.Error("journal should be nil after a failed open")
	}
	if got := rt.Navigator.ProcessPrompt("Learn Go"); got != "Created main task: 'Learn Go'" {
		t.Errorf("response = %q", got)
	}
}

func TestOpen_UnreadableRoadmap(t *testing.T) {
	cfg := testConfig(t)
	cfg.Journal = false
	// A directory where the roadmap file should be cannot be read.
	if err := os.MkdirAll(cfg.Roadmap, 0o755); err != nil {
		t.Fatal(err)
	}

	if _, cleanup, err := Open(cfg); err == nil {
		cleanup()
		t.Fatal("expected error for unreadable roadmap")
	}
}

func TestNew_ReturnsServer(t *testing.T) {
	s, cleanup, err := New(testConfig(t))
	if err != nil {
		t.Fatal(err)
	}
	defer cleanup()
	if s == nil {
		t.Fatal("server is nil")
	}
}

func TestServerInstructions(t *testing.T) {
	if strings.Contains(serverInstructions(false), "navigate_history") {
		t.Error("history tool mentioned without a journal")
	}
	if !strings.Contains(serverInstructions(true), "navigate_history") {
		t.Error("history tool missing from instructions")
	}
}
