package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/HendryAvila/navigate/internal/intent"
)

// isolate points HOME and the working directory at fresh temp dirs so
// no real config leaks into the test.
func isolate(t *testing.T) (home, project string) {
	t.Helper()
	home = t.TempDir()
	project = t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(project)
	return home, project
}

func writeYAML(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Roadmap != "roadmap.md" || cfg.Achievements != "achievements.md" {
		t.Errorf("documents = %q, %q", cfg.Roadmap, cfg.Achievements)
	}
	if cfg.MaxPromptLength != 1000 {
		t.Errorf("MaxPromptLength = %d, want 1000", cfg.MaxPromptLength)
	}
	if cfg.MinConfidence != 0.7 {
		t.Errorf("MinConfidence = %v, want 0.7", cfg.MinConfidence)
	}
	if cfg.MaxDepth != 3 || cfg.ArchiveNested {
		t.Errorf("tree rules = %d/%v, want 3/false", cfg.MaxDepth, cfg.ArchiveNested)
	}
	if !cfg.Journal {
		t.Error("journal should be enabled by default")
	}
	if filepath.Base(cfg.DataDir) != ".navigate" {
		t.Errorf("DataDir = %q", cfg.DataDir)
	}
}

func TestLoad_DefaultsWhenNoFiles(t *testing.T) {
	home, _ := isolate(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Roadmap != "roadmap.md" || cfg.MaxDepth != 3 {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.DataDir != filepath.Join(home, ".navigate") {
		t.Errorf("DataDir = %q", cfg.DataDir)
	}
}

func TestLoad_LayerPrecedence(t *testing.T) {
	home, project := isolate(t)

	writeYAML(t, filepath.Join(home, ".navigate", "config.yaml"), `
roadmap: global-roadmap.md
achievements: global-achievements.md
max_depth: 2
`)
	writeYAML(t, filepath.Join(project, ".navigate", "config.yaml"), `
roadmap: project-roadmap.md
confidence:
  create_subtask: 0.75
`)
	explicit := filepath.Join(t.TempDir(), "explicit.yaml")
	writeYAML(t, explicit, `
archive_nested: true
`)
	t.Setenv("NAVIGATE_MIN_CONFIDENCE", "0.5")

	cfg, err := Load(explicit)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Roadmap != "project-roadmap.md" {
		t.Errorf("Roadmap = %q, project should override global", cfg.Roadmap)
	}
	if cfg.Achievements != "global-achievements.md" {
		t.Errorf("Achievements = %q, global should survive", cfg.Achievements)
	}
	if cfg.MaxDepth != 2 {
		t.Errorf("MaxDepth = %d, want 2", cfg.MaxDepth)
	}
	if !cfg.ArchiveNested {
		t.Error("explicit file should enable archive_nested")
	}
	if cfg.MinConfidence != 0.5 {
		t.Errorf("MinConfidence = %v, env should win", cfg.MinConfidence)
	}
	if cfg.Confidence["create_subtask"] != 0.75 {
		t.Errorf("Confidence = %v", cfg.Confidence)
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	isolate(t)
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for a missing --config file")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	_, project := isolate(t)
	writeYAML(t, filepath.Join(project, ".navigate", "config.yaml"), "roadmap: [unclosed\n")

	if _, err := Load(""); err == nil {
		t.Error("expected error for malformed project config")
	}
}

func TestLoad_ExpandsHome(t *testing.T) {
	home, project := isolate(t)
	writeYAML(t, filepath.Join(project, ".navigate", "config.yaml"), "roadmap: ~/notes/roadmap.md\n")

	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Roadmap != filepath.Join(home, "notes", "roadmap.md") {
		t.Errorf("Roadmap = %q", cfg.Roadmap)
	}
}

func TestWriteDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	if err := WriteDefault(path); err != nil {
		t.Fatalf("WriteDefault failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "# navigate configuration") {
		t.Error("missing header comment")
	}

	var got Config
	if err := yaml.Unmarshal(data, &got); err != nil {
		t.Fatalf("written config is not valid YAML: %v", err)
	}
	if got.MaxPromptLength != 1000 || got.MaxDepth != 3 || got.Roadmap != "roadmap.md" {
		t.Errorf("round-tripped config = %+v", got)
	}

	if err := WriteDefault(path); err == nil {
		t.Error("second WriteDefault should refuse to overwrite")
	}
}

func TestConfig_Navigator(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxDepth = 2
	cfg.ArchiveNested = true
	cfg.Confidence = map[string]float64{"archive": 0.6}

	nav := cfg.Navigator()
	if nav.Tree.MaxDepth != 2 || !nav.Tree.ArchiveNested {
		t.Errorf("tree config = %+v", nav.Tree)
	}
	if nav.Thresholds[intent.ActionArchive] != 0.6 {
		t.Errorf("archive threshold = %v", nav.Thresholds[intent.ActionArchive])
	}
	if nav.Thresholds[intent.ActionCreateMain] != 0.85 {
		t.Error("unset thresholds keep defaults")
	}

	jc := cfg.JournalConfig()
	if jc.DataDir != cfg.DataDir || jc.MaxPromptLength != 1000 {
		t.Errorf("journal config = %+v", jc)
	}
}
