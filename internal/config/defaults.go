package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/HendryAvila/navigate/internal/intent"
	"github.com/HendryAvila/navigate/internal/journal"
	"github.com/HendryAvila/navigate/internal/navigator"
	"github.com/HendryAvila/navigate/internal/storage"
	"github.com/HendryAvila/navigate/internal/tasks"
)

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Roadmap:         storage.DefaultRoadmapFile,
		Achievements:    storage.DefaultAchievementsFile,
		DataDir:         GlobalDir(),
		MaxPromptLength: navigator.DefaultMaxPromptLength,
		MinConfidence:   navigator.DefaultMinConfidence,
		MaxDepth:        tasks.DefaultMaxDepth,
		ArchiveNested:   false,
		Journal:         true,
	}
}

const defaultHeader = `# navigate configuration
#
# Layers, later wins: built-in defaults, ~/.navigate/config.yaml,
# ./.navigate/config.yaml, --config, then NAVIGATE_* environment variables.
#
# Confidence overrides per action, for example:
# confidence:
#   create_subtask: 0.75
#   mark_complete: 0.9

`

// WriteDefault writes the default configuration to path, creating its
// directory. An existing file is left untouched.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file %s already exists", path)
	}
	data, err := DefaultConfig().Marshal()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	return os.WriteFile(path, append([]byte(defaultHeader), data...), 0o644)
}

// Marshal renders the configuration as YAML.
func (c *Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshaling config: %w", err)
	}
	return data, nil
}

// Navigator converts the settings into navigator options.
func (c *Config) Navigator() navigator.Config {
	return navigator.Config{
		MaxPromptLength: c.MaxPromptLength,
		MinConfidence:   c.MinConfidence,
		Tree: tasks.Config{
			MaxDepth:      c.MaxDepth,
			ArchiveNested: c.ArchiveNested,
		},
		Thresholds: intent.DefaultThresholds().Merge(c.Confidence),
	}
}

// JournalConfig converts the settings into journal options.
func (c *Config) JournalConfig() journal.Config {
	cfg := journal.DefaultConfig()
	cfg.DataDir = c.DataDir
	cfg.MaxPromptLength = c.MaxPromptLength
	return cfg
}

// Documents builds the file store for the configured documents.
func (c *Config) Documents() *storage.FileStore {
	return storage.NewFileStore(c.Roadmap, c.Achievements)
}
