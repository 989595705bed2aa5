package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/aretw0/metachem/internal/logging"
	"gopkg.in/yaml.v3"
)

// LogConfig selects the log level and handler.
type LogConfig struct {
	Level  string `yaml:"level" json:"level" toml:"level"`
	Format string `yaml:"format" json:"format" toml:"format"`
}

// RunConfig describes one simulation run.
type RunConfig struct {
	Chemistry string `yaml:"chemistry" json:"chemistry" toml:"chemistry"`
	// Start overrides the chemistry's start node.
	Start string `yaml:"start" json:"start" toml:"start"`
	// TransitionLimit bounds the run length; 0 means no bound.
	TransitionLimit int `yaml:"transition_limit" json:"transition_limit" toml:"transition_limit"`
	// Seed makes the run reproducible when set.
	Seed        *uint64        `yaml:"seed" json:"seed" toml:"seed"`
	Log         LogConfig      `yaml:"log" json:"log" toml:"log"`
	MetricsAddr string         `yaml:"metrics_addr" json:"metrics_addr" toml:"metrics_addr"`
	Params      map[string]any `yaml:"params" json:"params" toml:"params"`
}

// Default returns the configuration used without a config file.
func Default() *RunConfig {
	return &RunConfig{
		Chemistry: "stringcat",
		Log:       LogConfig{Level: "info", Format: "text"},
		Params:    map[string]any{},
	}
}

// Load reads a run configuration. The format follows the file extension:
// .json, .toml, or YAML for anything else. Fields missing from the file keep
// their Default values.
func Load(path string) (*RunConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config load failed (%s): %w", path, err)
	}

	cfg := Default()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = json.Unmarshal(data, cfg)
	case ".toml":
		err = toml.Unmarshal(data, cfg)
	default:
		err = yaml.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("config parse failed (%s): %w", path, err)
	}
	if cfg.Params == nil {
		cfg.Params = map[string]any{}
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config invalid (%s): %w", path, err)
	}
	return cfg, nil
}

// Validate checks field values.
func (c *RunConfig) Validate() error {
	if strings.TrimSpace(c.Chemistry) == "" {
		return fmt.Errorf("chemistry is required")
	}
	if c.TransitionLimit < 0 {
		return fmt.Errorf("transition_limit must be >= 0, got %d", c.TransitionLimit)
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return err
	}
	if _, err := logging.ParseFormat(c.Log.Format); err != nil {
		return err
	}
	return nil
}
