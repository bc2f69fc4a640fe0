// Copyright © 2025 Texelpad contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/config.go
// Summary: Typed JSON configuration for the texelpad engine.

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"time"
)

const configName = "texelpad.json"

// ThemeConfig names the three colors the compositor needs. Values are
// "#rrggbb" strings.
type ThemeConfig struct {
	Foreground string `json:"foreground"`
	Background string `json:"background"`
	Cursor     string `json:"cursor"`
}

// Config holds every tunable of the engine. Zero values are filled from
// DefaultConfig on load, so a partial file is valid.
type Config struct {
	// FontSizePx is the glyph rasterization size in pixels.
	FontSizePx int `json:"font_size_px"`
	// CacheCapacity bounds the glyph LRU cache, in entries.
	CacheCapacity int `json:"cache_capacity"`
	// BridgeTimeoutMS bounds one external glyph render call.
	BridgeTimeoutMS int `json:"bridge_timeout_ms"`
	// WarmCache pre-renders printable ASCII and box drawing at startup.
	WarmCache bool `json:"warm_cache"`
	// PreferHostRenderer asks the host's text service before the
	// embedded rasterizer instead of after it.
	PreferHostRenderer bool `json:"prefer_host_renderer"`
	// ButtonHeightPx is the virtual keyboard row height.
	ButtonHeightPx int `json:"button_height_px"`

	Theme ThemeConfig `json:"theme"`
}

// DefaultConfig returns the settings used when no file exists.
func DefaultConfig() Config {
	return Config{
		FontSizePx:      32,
		CacheCapacity:   1000,
		BridgeTimeoutMS: 250,
		WarmCache:       true,
		ButtonHeightPx:  90,
		Theme: ThemeConfig{
			Foreground: "#ffffff",
			Background: "#000000",
			Cursor:     "#ffffff",
		},
	}
}

// BridgeTimeout converts the configured milliseconds to a duration.
func (c Config) BridgeTimeout() time.Duration {
	return time.Duration(c.BridgeTimeoutMS) * time.Millisecond
}

// Path returns the per-user config file location.
func Path() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "texelpad", configName), nil
}

// Load reads the config at path, layering it over DefaultConfig. A
// missing file yields the defaults without error; a malformed file is an
// error so a typo does not silently reset every setting.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	cfg.fillZero()
	return cfg, nil
}

// LoadDefault loads from the per-user path, falling back to defaults
// when the path cannot be determined.
func LoadDefault() Config {
	path, err := Path()
	if err != nil {
		log.Printf("Config: no user config dir, using defaults: %v", err)
		return DefaultConfig()
	}
	cfg, err := Load(path)
	if err != nil {
		log.Printf("Config: %v, using defaults", err)
		return DefaultConfig()
	}
	return cfg
}

// Save writes the config as indented JSON, creating parent directories.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// fillZero re-applies defaults for fields an explicit file left unset.
// Booleans are taken as written; false is a meaningful choice.
func (c *Config) fillZero() {
	def := DefaultConfig()
	if c.FontSizePx <= 0 {
		c.FontSizePx = def.FontSizePx
	}
	if c.CacheCapacity <= 0 {
		c.CacheCapacity = def.CacheCapacity
	}
	if c.BridgeTimeoutMS <= 0 {
		c.BridgeTimeoutMS = def.BridgeTimeoutMS
	}
	if c.ButtonHeightPx <= 0 {
		c.ButtonHeightPx = def.ButtonHeightPx
	}
	if c.Theme.Foreground == "" {
		c.Theme.Foreground = def.Theme.Foreground
	}
	if c.Theme.Background == "" {
		c.Theme.Background = def.Theme.Background
	}
	if c.Theme.Cursor == "" {
		c.Theme.Cursor = def.Theme.Cursor
	}
}
