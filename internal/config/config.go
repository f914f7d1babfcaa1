package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultWorkflowRoot is where research directories are created when the
// config does not say otherwise.
const DefaultWorkflowRoot = ".opencode"

// DefaultLogLevel is the log level used when none is configured.
const DefaultLogLevel = "info"

// ProjectConfig holds project-level settings loaded from workbench.yml.
type ProjectConfig struct {
	// WorkflowRoot is the directory holding thoughts/. Relative paths are
	// resolved against the project root.
	WorkflowRoot string `yaml:"workflowRoot,omitempty"`

	// Ignore lists gitignore-style patterns the codebase detector skips.
	Ignore []string `yaml:"ignore,omitempty"`

	LogLevel string `yaml:"logLevel,omitempty"`

	// HTTPAddr serves MCP over streamable HTTP instead of stdio when set.
	HTTPAddr string `yaml:"httpAddr,omitempty"`
}

// Default returns a config with every default filled in.
func Default() *ProjectConfig {
	return (&ProjectConfig{}).WithDefaults()
}

// WithDefaults returns a copy of c with empty fields set to their defaults.
func (c *ProjectConfig) WithDefaults() *ProjectConfig {
	out := *c
	if out.WorkflowRoot == "" {
		out.WorkflowRoot = DefaultWorkflowRoot
	}
	if out.LogLevel == "" {
		out.LogLevel = DefaultLogLevel
	}
	return &out
}

// Load attempts to read workbench.yml or workbench.yaml from the given
// directory. Returns the default config (not an error) if no config file
// exists.
func Load(dir string) (*ProjectConfig, error) {
	for _, name := range []string{"workbench.yml", "workbench.yaml"} {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var cfg ProjectConfig
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, err
		}
		return cfg.WithDefaults(), nil
	}
	return Default(), nil
}
