// Package config stores editor preferences as JSON under
// ~/.config/patchbay.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// LayoutConfig holds placement policy knobs.
type LayoutConfig struct {
	// Rows fixes the rack to that many rows; 0 means free vertical
	// placement.
	Rows int `json:"rows,omitempty"`
}

// WireConfig holds cable rendering preferences (the toolbar sliders).
type WireConfig struct {
	Opacity float64 `json:"opacity,omitempty"` // 0-1
	Tension float64 `json:"tension,omitempty"` // 0-1, straighter cables at 1
}

// UIConfig stores UI preferences.
type UIConfig struct {
	PalettePath string `json:"palettePath,omitempty"`
	LastPatch   string `json:"lastPatch,omitempty"`
}

// Config is the main configuration structure.
type Config struct {
	Layout LayoutConfig `json:"layout,omitempty"`
	Wires  WireConfig   `json:"wires,omitempty"`
	UI     UIConfig     `json:"ui,omitempty"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Wires: WireConfig{
			Opacity: 1.0,
			Tension: 0.5,
		},
	}
}

// ConfigDir returns the config directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "patchbay"), nil
}

// ConfigPath returns the full path to config.json.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the config from disk, or returns defaults if not found.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if cfg.Wires.Opacity == 0 {
		cfg.Wires.Opacity = 1.0
	}

	return &cfg, nil
}

// Save writes the config to disk.
func (c *Config) Save() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	path, err := ConfigPath()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
