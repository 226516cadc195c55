// Package config loads editor configuration from a TOML or YAML file
// with GRAPHIDE_* environment overrides on top.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	yaml "gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix of environment overrides.
const EnvPrefix = "GRAPHIDE_"

// Config is the editor configuration.
type Config struct {
	Editor EditorConfig `toml:"editor" yaml:"editor"`
	Search SearchConfig `toml:"search" yaml:"search"`
	Log    LogConfig    `toml:"log" yaml:"log"`
}

// EditorConfig covers the text view.
type EditorConfig struct {
	// ViewHeight is the fallback number of visible lines used before
	// the terminal size is known.
	ViewHeight int `toml:"view_height" yaml:"view_height"`
}

// SearchConfig sets the initial state of the search options.
type SearchConfig struct {
	CaseSensitive bool `toml:"case_sensitive" yaml:"case_sensitive"`
	WholeWord     bool `toml:"whole_word" yaml:"whole_word"`
	Regex         bool `toml:"regex" yaml:"regex"`
}

// LogConfig controls diagnostic logging.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `toml:"level" yaml:"level"`
	// File is the log destination; empty disables logging.
	File string `toml:"file" yaml:"file"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Editor: EditorConfig{ViewHeight: 24},
		Log:    LogConfig{Level: "info"},
	}
}

// Load reads the configuration file at path, if any, and applies
// environment overrides. An empty path skips the file step.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		if err := loadFile(&cfg, path); err != nil {
			return cfg, err
		}
	}
	applyEnv(&cfg)

	if cfg.Editor.ViewHeight <= 0 {
		cfg.Editor.ViewHeight = 24
	}
	return cfg, nil
}

// loadFile decodes the file into cfg, choosing the codec by extension.
func loadFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config file %s: %w", path, err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if err := toml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("parsing config file %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("parsing config file %s: %w", path, err)
		}
	default:
		return fmt.Errorf("config file %s: unsupported extension %q", path, ext)
	}
	return nil
}

// applyEnv overlays GRAPHIDE_* variables onto cfg. Unset variables
// leave the file values alone.
func applyEnv(cfg *Config) {
	if v, ok := lookupInt("VIEW_HEIGHT"); ok {
		cfg.Editor.ViewHeight = v
	}
	if v, ok := lookupBool("CASE_SENSITIVE"); ok {
		cfg.Search.CaseSensitive = v
	}
	if v, ok := lookupBool("WHOLE_WORD"); ok {
		cfg.Search.WholeWord = v
	}
	if v, ok := lookupBool("REGEX"); ok {
		cfg.Search.Regex = v
	}
	if v, ok := os.LookupEnv(EnvPrefix + "LOG_LEVEL"); ok {
		cfg.Log.Level = v
	}
	if v, ok := os.LookupEnv(EnvPrefix + "LOG_FILE"); ok {
		cfg.Log.File = v
	}
}

func lookupInt(name string) (int, bool) {
	v, ok := os.LookupEnv(EnvPrefix + name)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

func lookupBool(name string) (bool, bool) {
	v, ok := os.LookupEnv(EnvPrefix + name)
	if !ok {
		return false, false
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, false
	}
	return b, true
}
