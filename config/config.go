// Package config loads editor settings from TOML or YAML files.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// ErrInvalid is returned by Validate.
var ErrInvalid = errors.New("invalid config")

// Config holds waygraph settings.
type Config struct {
	Editor  EditorConfig  `toml:"editor" yaml:"editor"`
	History HistoryConfig `toml:"history" yaml:"history"`
	Log     LogConfig     `toml:"log" yaml:"log"`
}

// EditorConfig controls drawing and cleanup.
type EditorConfig struct {
	SnapRadius       float64 `toml:"snap_radius" yaml:"snap_radius"`
	MaxSegmentLength float64 `toml:"max_segment_length" yaml:"max_segment_length"`
	DedupEpsilon     float64 `toml:"dedup_epsilon" yaml:"dedup_epsilon"`
}

// HistoryConfig controls undo/redo.
type HistoryConfig struct {
	Limit       int    `toml:"limit" yaml:"limit"`
	Compression string `toml:"compression" yaml:"compression"` // "none", "lz4", "zstd"
}

// LogConfig controls logging.
type LogConfig struct {
	Level  string `toml:"level" yaml:"level"`   // "debug", "info", "warn", "error", "off"
	Format string `toml:"format" yaml:"format"` // "text", "json"
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Editor: EditorConfig{
			SnapRadius:       3.0,
			MaxSegmentLength: 6.0,
			DedupEpsilon:     0.01,
		},
		History: HistoryConfig{Limit: 100, Compression: "lz4"},
		Log:     LogConfig{Level: "off", Format: "text"},
	}
}

// Format is a config file syntax.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// FormatOf picks the format from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported config extension %q", filepath.Ext(path))
	}
}

// Load reads path on top of the defaults and validates the result.
func Load(path string) (*Config, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data, format)
}

// Parse decodes data on top of the defaults and validates the result.
func Parse(data []byte, format Format) (*Config, error) {
	cfg := Default()
	switch format {
	case FormatTOML:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q", format)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes cfg to path in the format its extension names.
func Save(cfg *Config, path string) error {
	format, err := FormatOf(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if format == FormatYAML {
		enc := yaml.NewEncoder(f)
		defer enc.Close()
		return enc.Encode(cfg)
	}
	return toml.NewEncoder(f).Encode(cfg)
}

// Validate checks the value ranges.
func (c *Config) Validate() error {
	switch {
	case c.Editor.SnapRadius < 0:
		return fmt.Errorf("%w: snap_radius must not be negative", ErrInvalid)
	case c.Editor.MaxSegmentLength <= 0:
		return fmt.Errorf("%w: max_segment_length must be positive", ErrInvalid)
	case c.Editor.DedupEpsilon <= 0:
		return fmt.Errorf("%w: dedup_epsilon must be positive", ErrInvalid)
	case c.History.Limit < 0:
		return fmt.Errorf("%w: history limit must not be negative", ErrInvalid)
	}
	switch c.History.Compression {
	case "", "none", "lz4", "zstd":
	default:
		return fmt.Errorf("%w: unknown compression %q", ErrInvalid, c.History.Compression)
	}
	if _, _, err := c.Log.SlogLevel(); err != nil {
		return err
	}
	switch c.Log.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("%w: unknown log format %q", ErrInvalid, c.Log.Format)
	}
	return nil
}

// SlogLevel maps Level onto slog. enabled is false for "off".
func (c LogConfig) SlogLevel() (level slog.Level, enabled bool, err error) {
	switch strings.ToLower(c.Level) {
	case "", "off":
		return 0, false, nil
	case "debug":
		return slog.LevelDebug, true, nil
	case "info":
		return slog.LevelInfo, true, nil
	case "warn":
		return slog.LevelWarn, true, nil
	case "error":
		return slog.LevelError, true, nil
	default:
		return 0, false, fmt.Errorf("%w: unknown log level %q", ErrInvalid, c.Level)
	}
}
