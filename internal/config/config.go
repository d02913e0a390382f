// Package config handles layered YAML configuration with environment overrides.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Notification modes.
const (
	NotifyAlert = "alert" // Blocking alert boxes, dismissed one at a time.
	NotifyToast = "toast" // Non-blocking status line.
)

// MinWidth is the narrowest modal that still fits the error messages.
const MinWidth = 40

// Config holds all formmodal configuration.
type Config struct {
	UI     UI     `yaml:"ui"`
	Notify Notify `yaml:"notify"`
	Log    Log    `yaml:"log"`
}

// UI holds modal appearance and input settings.
type UI struct {
	Title               string `yaml:"title"`
	Width               int    `yaml:"width"`
	CloseOnOutsideClick bool   `yaml:"close_on_outside_click"`
	Mouse               bool   `yaml:"mouse"`
}

// Notify holds acknowledgment settings.
type Notify struct {
	Mode string `yaml:"mode"` // "alert" | "toast"
}

// Log holds structured logging settings.
type Log struct {
	File  string `yaml:"file"`  // Empty disables logging.
	Level string `yaml:"level"` // debug | info | warn | error
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		UI: UI{
			Title:               "Sign up",
			Width:               60,
			CloseOnOutsideClick: true,
			Mouse:               true,
		},
		Notify: Notify{
			Mode: NotifyAlert,
		},
		Log: Log{
			Level: "info",
		},
	}
}

// Parse decodes YAML over the defaults. Unknown fields are rejected.
func Parse(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if len(data) == 0 {
		return &cfg, nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		// Comment-only YAML files produce EOF with no decoded content.
		if errors.Is(err, io.EOF) {
			return &cfg, nil
		}
		return nil, err
	}
	return &cfg, nil
}

// LoadLayered loads config from multiple paths with increasing priority.
// Later paths override earlier ones. Missing files are skipped.
func LoadLayered(paths ...string) (*Config, error) {
	cfg := DefaultConfig()

	for _, path := range paths {
		layer, err := loadLayer(path)
		if err != nil {
			return nil, err
		}
		if layer == nil {
			continue
		}
		cfg.merge(layer)
	}

	return &cfg, nil
}

// Validate checks that config values are usable.
func (c *Config) Validate() error {
	if c.UI.Width < MinWidth {
		return fmt.Errorf("config: ui.width must be at least %d, got %d", MinWidth, c.UI.Width)
	}
	switch c.Notify.Mode {
	case NotifyAlert, NotifyToast:
	default:
		return fmt.Errorf("config: notify.mode must be %q or %q, got %q", NotifyAlert, NotifyToast, c.Notify.Mode)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: log.level must be debug, info, warn or error, got %q", c.Log.Level)
	}
	return nil
}

// ApplyEnv applies environment variable overrides to the config.
// Supported variables: FORMMODAL_NOTIFY, FORMMODAL_MOUSE, FORMMODAL_LOG_FILE,
// FORMMODAL_LOG_LEVEL.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv("FORMMODAL_NOTIFY"); v != "" {
		c.Notify.Mode = v
	}
	if v := os.Getenv("FORMMODAL_MOUSE"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("config: invalid FORMMODAL_MOUSE %q: %w", v, err)
		}
		c.UI.Mouse = b
	}
	if v := os.Getenv("FORMMODAL_LOG_FILE"); v != "" {
		c.Log.File = v
	}
	if v := os.Getenv("FORMMODAL_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	return nil
}

// rawConfig mirrors Config but uses pointers to distinguish set vs unset fields.
type rawConfig struct {
	UI     *rawUI     `yaml:"ui"`
	Notify *rawNotify `yaml:"notify"`
	Log    *rawLog    `yaml:"log"`
}

type rawUI struct {
	Title               *string `yaml:"title"`
	Width               *int    `yaml:"width"`
	CloseOnOutsideClick *bool   `yaml:"close_on_outside_click"`
	Mouse               *bool   `yaml:"mouse"`
}

type rawNotify struct {
	Mode *string `yaml:"mode"`
}

type rawLog struct {
	File  *string `yaml:"file"`
	Level *string `yaml:"level"`
}

// loadLayer reads a single config file into a rawConfig for selective merging.
// Returns nil if the file does not exist. Rejects unknown fields.
func loadLayer(path string) (*rawConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	if len(data) == 0 {
		return nil, nil
	}

	var raw rawConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	return &raw, nil
}

// merge applies non-nil fields from a rawConfig layer onto this Config.
func (c *Config) merge(layer *rawConfig) {
	if layer.UI != nil {
		if layer.UI.Title != nil {
			c.UI.Title = *layer.UI.Title
		}
		if layer.UI.Width != nil {
			c.UI.Width = *layer.UI.Width
		}
		if layer.UI.CloseOnOutsideClick != nil {
			c.UI.CloseOnOutsideClick = *layer.UI.CloseOnOutsideClick
		}
		if layer.UI.Mouse != nil {
			c.UI.Mouse = *layer.UI.Mouse
		}
	}
	if layer.Notify != nil && layer.Notify.Mode != nil {
		c.Notify.Mode = *layer.Notify.Mode
	}
	if layer.Log != nil {
		if layer.Log.File != nil {
			c.Log.File = *layer.Log.File
		}
		if layer.Log.Level != nil {
			c.Log.Level = *layer.Log.Level
		}
	}
}
