// Package config loads treeflect CLI configuration from JSON, YAML or TOML.
package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Config holds application configuration.
type Config struct {
	// State is the JSON file the demo state tree is loaded from.
	State string `json:"state" yaml:"state" toml:"state"`
	// Output is the output format name.
	Output string `json:"output" yaml:"output" toml:"output"`
	// LogLevel is one of debug, info, warn or error.
	LogLevel string `json:"log_level" yaml:"log_level" toml:"log_level"`
	// Save writes the state back after exec and repl sessions.
	Save bool `json:"save" yaml:"save" toml:"save"`
	// Prompt is the repl prompt.
	Prompt string `json:"prompt" yaml:"prompt" toml:"prompt"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Output:   "text",
		LogLevel: "warn",
		Prompt:   "treeflect> ",
	}
}

// Load reads configuration from a file, choosing the decoder by extension.
// Values missing from the file keep their defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		err = json.Unmarshal(data, cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	case ".toml":
		err = toml.Unmarshal(data, cfg)
	default:
		return nil, fmt.Errorf("unsupported config format %q (use .json, .yaml, .yml or .toml)", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if _, err := cfg.Level(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Level returns the slog level named by LogLevel.
func (c *Config) Level() (slog.Level, error) {
	return ParseLevel(c.LogLevel)
}

// ParseLevel maps a level name to a slog level. Empty means warn.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "", "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("unknown log level %q (use debug, info, warn or error)", name)
}
