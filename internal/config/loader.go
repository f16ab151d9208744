package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	dirName    = ".navigate"
	fileName   = "config.yaml"
	envPrefix  = "NAVIGATE"
	homePrefix = "~" + string(filepath.Separator)
)

// Load merges configuration from, in increasing precedence: defaults,
// the global file, the project file, explicitPath (if non-empty) and
// NAVIGATE_* environment variables. Missing layer files are skipped; a
// missing explicit file is an error.
func Load(explicitPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	setDefaults(v, DefaultConfig())

	for _, path := range []string{GlobalConfigPath(), ProjectConfigPath()} {
		if err := mergeFile(v, path); err != nil && !os.IsNotExist(err) {
			return nil, err
		}
	}
	if explicitPath != "" {
		if err := mergeFile(v, expandHome(explicitPath)); err != nil {
			return nil, fmt.Errorf("loading %s: %w", explicitPath, err)
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	cfg.Roadmap = expandHome(cfg.Roadmap)
	cfg.Achievements = expandHome(cfg.Achievements)
	cfg.DataDir = expandHome(cfg.DataDir)
	return cfg, nil
}

func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("roadmap", cfg.Roadmap)
	v.SetDefault("achievements", cfg.Achievements)
	v.SetDefault("data_dir", cfg.DataDir)
	v.SetDefault("max_prompt_length", cfg.MaxPromptLength)
	v.SetDefault("min_confidence", cfg.MinConfidence)
	v.SetDefault("max_depth", cfg.MaxDepth)
	v.SetDefault("archive_nested", cfg.ArchiveNested)
	v.SetDefault("journal", cfg.Journal)
	v.SetDefault("confidence", map[string]float64{})
}

func mergeFile(v *viper.Viper, path string) error {
	if _, err := os.Stat(path); err != nil {
		return err
	}
	v.SetConfigFile(path)
	if err := v.MergeInConfig(); err != nil {
		return fmt.Errorf("reading config %s: %w", path, err)
	}
	return nil
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, homePrefix) {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[len(homePrefix):])
}

// GlobalDir returns the per-user navigate directory.
func GlobalDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, dirName)
}

// GlobalConfigPath returns the path to the global config file.
func GlobalConfigPath() string {
	return filepath.Join(GlobalDir(), fileName)
}

// ProjectConfigPath returns the path to the project config file.
func ProjectConfigPath() string {
	cwd, _ := os.Getwd()
	return filepath.Join(cwd, dirName, fileName)
}
