// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"bytes"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/jeranaias/joshua-tui/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config is the complete joshua configuration.
type Config struct {
	Version string `toml:"version"`

	// Server holds portal connection settings.
	Server ServerConfig `toml:"server"`

	// UI holds theme and per-screen display settings.
	UI UIConfig `toml:"ui"`

	// Chat holds chat rendering settings.
	Chat ChatConfig `toml:"chat"`
}

// ServerConfig contains portal connection settings.
type ServerConfig struct {
	// URL is the portal base URL.
	URL string `toml:"url"`
	// TimeoutSecs is the JSON request timeout in seconds. Streaming chat
	// requests are not subject to it.
	TimeoutSecs int `toml:"timeout_secs"`
}

// UIConfig contains theme and sorting preferences.
type UIConfig struct {
	// Theme is the UI theme: "light", "dark", or "forest".
	Theme string `toml:"theme"`

	// LibrarySort is the library screen sort column: "due_date", "title",
	// or "agency".
	LibrarySort string `toml:"library_sort"`
	// LibrarySortDesc flips the library sort to descending.
	LibrarySortDesc bool `toml:"library_sort_desc"`

	// InboxSort is the inbox sort column: "score", "due_date", or "title".
	InboxSort string `toml:"inbox_sort"`
	// InboxSortDesc flips the inbox sort to descending. The default inbox
	// view is score descending, so this defaults true.
	InboxSortDesc bool `toml:"inbox_sort_desc"`

	// ShowArchived includes archived solicitations in the library list.
	ShowArchived bool `toml:"show_archived"`
}

// ChatConfig contains chat rendering settings.
type ChatConfig struct {
	// Markdown renders assistant replies through the markdown renderer.
	// Plain text when false.
	Markdown bool `toml:"markdown"`
	// WrapWidth is the maximum rendered line width, 0 for terminal width.
	WrapWidth int `toml:"wrap_width"`
}

// =============================================================================
// DEFAULTS
// =============================================================================

// Valid enumerated values.
var (
	validThemes      = map[string]bool{"light": true, "dark": true, "forest": true}
	validLibrarySort = map[string]bool{"due_date": true, "title": true, "agency": true}
	validInboxSort   = map[string]bool{"score": true, "due_date": true, "title": true}
)

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Version: "1.0.0",
		Server: ServerConfig{
			URL:         "http://localhost:8080",
			TimeoutSecs: 30,
		},
		UI: UIConfig{
			Theme:         "dark",
			LibrarySort:   "due_date",
			InboxSort:     "score",
			InboxSortDesc: true,
		},
		Chat: ChatConfig{
			Markdown: true,
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the joshua configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".joshua"), nil
}

// ConfigPath returns the path to the TOML config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// EnsureConfigDir ensures the config directory exists.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}

// =============================================================================
// LOAD
// =============================================================================

// Load reads the config file, fills defaults, applies environment
// overrides, and validates. A missing file is not an error; defaults are
// returned.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	if _, statErr := os.Stat(path); statErr != nil {
		cfg := Default()
		cfg.ApplyEnvOverrides()
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("invalid config: %w", err)
		}
		return cfg, nil
	}
	return LoadFromPath(path)
}

// LoadFromPath reads and validates configuration from a specific file.
func LoadFromPath(path string) (*Config, error) {
	cfg := &Config{}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config file: %w", err)
	}
	fillDefaults(cfg)
	cfg.ApplyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// fillDefaults fills any missing values with defaults so partial config
// files stay valid across upgrades.
func fillDefaults(cfg *Config) {
	defaults := Default()

	if cfg.Version == "" {
		cfg.Version = defaults.Version
	}
	if cfg.Server.URL == "" {
		cfg.Server.URL = defaults.Server.URL
	}
	if cfg.Server.TimeoutSecs <= 0 {
		cfg.Server.TimeoutSecs = defaults.Server.TimeoutSecs
	}
	if cfg.UI.Theme == "" {
		cfg.UI.Theme = defaults.UI.Theme
	}
	if cfg.UI.LibrarySort == "" {
		cfg.UI.LibrarySort = defaults.UI.LibrarySort
	}
	if cfg.UI.InboxSort == "" {
		cfg.UI.InboxSort = defaults.UI.InboxSort
		cfg.UI.InboxSortDesc = defaults.UI.InboxSortDesc
	}
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies JOSHUA_* environment variables on top of the
// loaded configuration. Environment wins over file.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("JOSHUA_SERVER_URL"); v != "" {
		c.Server.URL = v
	}
	if v := os.Getenv("JOSHUA_TIMEOUT_SECS"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			c.Server.TimeoutSecs = secs
		}
	}
	if v := os.Getenv("JOSHUA_THEME"); v != "" {
		c.UI.Theme = v
	}
	if v := os.Getenv("JOSHUA_MARKDOWN"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Chat.Markdown = b
		}
	}
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError is a single invalid configuration field.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate checks every field against its allowed values.
func (c *Config) Validate() error {
	var errs ValidateErrors

	if u, err := url.Parse(c.Server.URL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, ValidationError{
			Field:   "server.url",
			Message: fmt.Sprintf("must be an absolute http(s) URL, got %q", c.Server.URL),
		})
	} else if u.Scheme != "http" && u.Scheme != "https" {
		errs = append(errs, ValidationError{
			Field:   "server.url",
			Message: fmt.Sprintf("unsupported scheme %q", u.Scheme),
		})
	}

	if c.Server.TimeoutSecs < 1 || c.Server.TimeoutSecs > 600 {
		errs = append(errs, ValidationError{
			Field:   "server.timeout_secs",
			Message: fmt.Sprintf("must be 1-600, got %d", c.Server.TimeoutSecs),
		})
	}

	if !validThemes[c.UI.Theme] {
		errs = append(errs, ValidationError{
			Field:   "ui.theme",
			Message: fmt.Sprintf("must be one of light, dark, forest; got %q", c.UI.Theme),
		})
	}
	if !validLibrarySort[c.UI.LibrarySort] {
		errs = append(errs, ValidationError{
			Field:   "ui.library_sort",
			Message: fmt.Sprintf("must be one of due_date, title, agency; got %q", c.UI.LibrarySort),
		})
	}
	if !validInboxSort[c.UI.InboxSort] {
		errs = append(errs, ValidationError{
			Field:   "ui.inbox_sort",
			Message: fmt.Sprintf("must be one of score, due_date, title; got %q", c.UI.InboxSort),
		})
	}

	if c.Chat.WrapWidth < 0 {
		errs = append(errs, ValidationError{
			Field:   "chat.wrap_width",
			Message: fmt.Sprintf("must be >= 0, got %d", c.Chat.WrapWidth),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// =============================================================================
// SAVE
// =============================================================================

// Save writes the configuration to the default TOML file.
func Save(cfg *Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return SaveToPath(cfg, path)
}

// SaveToPath writes the configuration as TOML to the given path.
// RELIABILITY: Atomic write with fsync prevents a torn config on crash.
func SaveToPath(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString("# joshua configuration file\n")
	buf.WriteString("# Generated by joshua - edit with care\n")
	buf.WriteString("\n")
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := util.AtomicWriteFile(path, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
