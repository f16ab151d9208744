// Package config loads navigate's settings from layered YAML files and
// the environment.
package config

// Config represents the full navigate configuration.
type Config struct {
	// Document locations. Relative paths resolve against the working directory.
	Roadmap      string `yaml:"roadmap" mapstructure:"roadmap"`
	Achievements string `yaml:"achievements" mapstructure:"achievements"`

	// DataDir holds the prompt journal database.
	DataDir string `yaml:"data_dir" mapstructure:"data_dir"`

	// Prompt handling
	MaxPromptLength int     `yaml:"max_prompt_length" mapstructure:"max_prompt_length"`
	MinConfidence   float64 `yaml:"min_confidence" mapstructure:"min_confidence"`

	// Confidence overrides keyed by action name (create_main_task,
	// create_subtask, mark_complete, archive, clarify).
	Confidence map[string]float64 `yaml:"confidence,omitempty" mapstructure:"confidence"`

	// Tree rules
	MaxDepth      int  `yaml:"max_depth" mapstructure:"max_depth"`
	ArchiveNested bool `yaml:"archive_nested" mapstructure:"archive_nested"`

	// Journal enables the SQLite prompt history.
	Journal bool `yaml:"journal" mapstructure:"journal"`
}
