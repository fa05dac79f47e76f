// Package config provides configuration types and defaults for parley.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/parleychat/parley/internal/log"
	"github.com/parleychat/parley/internal/tags"
)

// Config holds all configuration options for parley.
type Config struct {
	DataDir  string          `mapstructure:"data_dir"`
	Theme    string          `mapstructure:"theme"` // "dark" (default) or "light"
	Tags     TagsConfig      `mapstructure:"tags"`
	Settings SettingsConfig  `mapstructure:"settings"`
	History  HistoryConfig   `mapstructure:"history"`
	Tracing  TracingConfig   `mapstructure:"tracing"`
	Flags    map[string]bool `mapstructure:"flags"`
}

// TagsConfig holds tag command behavior options.
type TagsConfig struct {
	// Matching selects how tag names compare for lookups and duplicate
	// detection. Valid values: "strict" (case folding only, default) or
	// "accent" (case folding plus accent stripping).
	Matching string `mapstructure:"matching"`

	// SortUnfiltered sorts tag-list output when no filter is given.
	// Filtered listings are always sorted regardless of this setting.
	SortUnfiltered bool `mapstructure:"sort_unfiltered"`

	// LegacyAliases also registers the long-form command names
	// tag-exists-all and tag-list-all.
	LegacyAliases bool `mapstructure:"legacy_aliases"`
}

// MatchingMode returns the matching mode as a domain value, defaulting to
// strict when unset.
func (t TagsConfig) MatchingMode() tags.Matching {
	if t.Matching == "" {
		return tags.MatchingStrict
	}
	return tags.Matching(t.Matching)
}

// SettingsConfig holds settings file persistence options.
type SettingsConfig struct {
	// AutosaveDebounceMs is the debounce window for automatic saves, in
	// milliseconds. Default: 500
	AutosaveDebounceMs int `mapstructure:"autosave_debounce_ms"`

	// AutoReload re-reads the settings file when it changes on disk.
	// Default: true
	AutoReload bool `mapstructure:"auto_reload"`
}

// AutosaveDebounce returns the debounce window as a duration.
func (s SettingsConfig) AutosaveDebounce() time.Duration {
	return time.Duration(s.AutosaveDebounceMs) * time.Millisecond
}

// HistoryConfig holds command history options.
type HistoryConfig struct {
	// Enabled controls whether executed commands are recorded.
	// Default: true
	Enabled bool `mapstructure:"enabled"`

	// Limit is the number of history rows kept; older entries are pruned.
	// Default: 200
	Limit int `mapstructure:"limit"`
}

// TracingConfig holds distributed tracing configuration.
type TracingConfig struct {
	// Enabled controls whether tracing is active.
	// Default: false
	Enabled bool `mapstructure:"enabled"`

	// Exporter selects the trace export backend.
	// Options: "none", "file", "stdout", "otlp"
	// Default: "none"
	Exporter string `mapstructure:"exporter"`

	// FilePath is the output file for the "file" exporter.
	// Default: ~/.parley/traces.jsonl
	FilePath string `mapstructure:"file_path"`

	// OTLPEndpoint is the collector endpoint for the "otlp" exporter.
	// Default: "localhost:4317"
	OTLPEndpoint string `mapstructure:"otlp_endpoint"`

	// SampleRate controls trace sampling (0.0 to 1.0).
	// 1.0 = all traces, 0.1 = 10% of traces
	// Default: 1.0
	SampleRate float64 `mapstructure:"sample_rate"`
}

// DefaultTracesFilePath returns the default path for trace file export.
// Returns ~/.parley/traces.jsonl or empty string if home dir unavailable.
func DefaultTracesFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".parley", "traces.jsonl")
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		Theme: "dark",
		Tags: TagsConfig{
			Matching:       "strict",
			SortUnfiltered: false,
			LegacyAliases:  false,
		},
		Settings: SettingsConfig{
			AutosaveDebounceMs: 500,
			AutoReload:         true,
		},
		History: HistoryConfig{
			Enabled: true,
			Limit:   200,
		},
		Tracing: TracingConfig{
			Enabled:      false,
			Exporter:     "none",
			FilePath:     "", // Derived from home dir at runtime
			OTLPEndpoint: "localhost:4317",
			SampleRate:   1.0,
		},
		Flags: map[string]bool{
			"markdown-help": true,
			"save-notices":  true,
		},
	}
}

// Validate checks the configuration for errors. Empty values fall back to
// defaults and are always valid.
func Validate(cfg Config) error {
	if err := ValidateTheme(cfg.Theme); err != nil {
		return err
	}
	if err := ValidateTags(cfg.Tags); err != nil {
		return err
	}
	if err := ValidateSettings(cfg.Settings); err != nil {
		return err
	}
	if err := ValidateHistory(cfg.History); err != nil {
		return err
	}
	return ValidateTracing(cfg.Tracing)
}

// ValidateTheme checks the theme selection.
func ValidateTheme(theme string) error {
	switch theme {
	case "", "dark", "light":
		return nil
	default:
		return fmt.Errorf("theme must be \"dark\" or \"light\", got %q", theme)
	}
}

// ValidateTags checks tag behavior configuration for errors.
func ValidateTags(t TagsConfig) error {
	switch t.Matching {
	case "", "strict", "accent":
		return nil
	default:
		return fmt.Errorf("tags.matching must be \"strict\" or \"accent\", got %q", t.Matching)
	}
}

// ValidateSettings checks settings persistence configuration for errors.
func ValidateSettings(s SettingsConfig) error {
	if s.AutosaveDebounceMs <= 0 {
		return fmt.Errorf("settings.autosave_debounce_ms must be positive, got %d", s.AutosaveDebounceMs)
	}
	return nil
}

// ValidateHistory checks history configuration for errors.
func ValidateHistory(h HistoryConfig) error {
	if h.Enabled && h.Limit <= 0 {
		return fmt.Errorf("history.limit must be positive when history is enabled, got %d", h.Limit)
	}
	return nil
}

// ValidateTracing checks tracing configuration for errors.
// Returns nil if the configuration is valid (empty values use defaults).
func ValidateTracing(tracing TracingConfig) error {
	if tracing.SampleRate < 0.0 || tracing.SampleRate > 1.0 {
		return fmt.Errorf("tracing.sample_rate must be between 0.0 and 1.0, got %v", tracing.SampleRate)
	}

	if tracing.Exporter != "" {
		switch tracing.Exporter {
		case "none", "file", "stdout", "otlp":
			// Valid
		default:
			return fmt.Errorf("tracing.exporter must be \"none\", \"file\", \"stdout\", or \"otlp\", got %q", tracing.Exporter)
		}
	}

	// Only validate path requirements when tracing is enabled
	if tracing.Enabled {
		if tracing.Exporter == "file" && tracing.FilePath == "" {
			return fmt.Errorf("tracing.file_path is required when exporter is \"file\"")
		}
		if tracing.Exporter == "otlp" && tracing.OTLPEndpoint == "" {
			return fmt.Errorf("tracing.otlp_endpoint is required when exporter is \"otlp\"")
		}
	}

	return nil
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# Parley Configuration

# Directory for parley data (settings file, history database, traces)
# Default: ./.parley when present, otherwise ~/.parley
# data_dir: /path/to/dir

# Rendering style for markdown and UI chrome: "dark" (default) or "light"
theme: dark

# Tag command behavior
tags:
  # Name matching for lookups and duplicate detection:
  #   strict - case-insensitive (Unicode case folding)
  #   accent - case- and accent-insensitive ("café" matches "Cafe")
  matching: strict

  # Sort tag-list output when no filter is given.
  # Filtered listings are always sorted.
  sort_unfiltered: false

  # Also register the long-form command names tag-exists-all and tag-list-all
  legacy_aliases: false

# Settings file persistence
settings:
  autosave_debounce_ms: 500  # Debounce window for automatic saves
  auto_reload: true          # Re-read the settings file when edited externally

# Command history, stored in SQLite under the data directory
history:
  enabled: true
  limit: 200    # Rows kept; older entries are pruned

# Distributed tracing
# tracing:
#   enabled: false
#   exporter: none                 # Export backend: none, file, stdout, otlp
#   file_path: ~/.parley/traces.jsonl  # Output file for file exporter
#   otlp_endpoint: localhost:4317  # OTLP collector endpoint (for otlp exporter)
#   sample_rate: 1.0               # Trace sampling rate 0.0-1.0
#
# Example: Enable tracing with file export
# tracing:
#   enabled: true
#   exporter: file
#   file_path: ~/.parley/traces.jsonl

# Feature flags
# flags:
#   markdown-help: true   # Render /help output through the markdown renderer
#   save-notices: true    # Show a transcript notice when the settings file saves
`
}

// WriteDefaultConfig creates a config file at the given path with default settings and comments.
// Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
