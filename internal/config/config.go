// Package config loads tunables from ~/.config/pixel-perfect/config.yaml.
// Missing file means defaults; set fields override them.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Grid struct {
		TileWidth   int `yaml:"tile_width"`   // tile cell width incl. margin
		Gap         int `yaml:"gap"`          // cells between tiles
		ThumbPixels int `yaml:"thumb_pixels"` // thumbnail decode width/height
	} `yaml:"grid"`
	Input struct {
		ActivationWindowMS int `yaml:"activation_window_ms"` // double-activation window
		ResizeDebounceMS   int `yaml:"resize_debounce_ms"`
	} `yaml:"input"`
	Render struct {
		MaxCells int    `yaml:"max_cells"` // compositing ceiling per image
		Palette  string `yaml:"palette"`   // auto, truecolor, or 256
	} `yaml:"render"`
	Watch struct {
		Disabled bool `yaml:"disabled"` // turn off listing auto-refresh
	} `yaml:"watch"`
	DebugLog string `yaml:"debug_log"` // file path; empty disables logging
}

func Default() *Config {
	cfg := &Config{}
	cfg.Grid.TileWidth = 32
	cfg.Grid.Gap = 2
	cfg.Grid.ThumbPixels = 32
	cfg.Input.ActivationWindowMS = 500
	cfg.Input.ResizeDebounceMS = 50
	cfg.Render.MaxCells = 100000
	cfg.Render.Palette = "auto"
	return cfg
}

// Load reads the default config location.
func Load() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Default(), nil
	}
	return LoadFile(filepath.Join(home, ".config", "pixel-perfect", "config.yaml"))
}

// LoadFile reads a specific config file, returning defaults when it
// does not exist.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	var loaded Config
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	merge(cfg, &loaded)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func merge(dst, src *Config) {
	if src.Grid.TileWidth > 0 {
		dst.Grid.TileWidth = src.Grid.TileWidth
	}
	if src.Grid.Gap > 0 {
		dst.Grid.Gap = src.Grid.Gap
	}
	if src.Grid.ThumbPixels > 0 {
		dst.Grid.ThumbPixels = src.Grid.ThumbPixels
	}
	if src.Input.ActivationWindowMS > 0 {
		dst.Input.ActivationWindowMS = src.Input.ActivationWindowMS
	}
	if src.Input.ResizeDebounceMS > 0 {
		dst.Input.ResizeDebounceMS = src.Input.ResizeDebounceMS
	}
	if src.Render.MaxCells > 0 {
		dst.Render.MaxCells = src.Render.MaxCells
	}
	if src.Render.Palette != "" {
		dst.Render.Palette = src.Render.Palette
	}
	dst.Watch.Disabled = src.Watch.Disabled
	if src.DebugLog != "" {
		dst.DebugLog = src.DebugLog
	}
}

func (c *Config) Validate() error {
	switch c.Render.Palette {
	case "auto", "truecolor", "256":
	default:
		return fmt.Errorf("palette %q (want auto, truecolor, or 256)", c.Render.Palette)
	}
	if c.Grid.TileWidth < 8 {
		return fmt.Errorf("tile_width %d too small (min 8)", c.Grid.TileWidth)
	}
	if c.Grid.ThumbPixels < 4 {
		return fmt.Errorf("thumb_pixels %d too small (min 4)", c.Grid.ThumbPixels)
	}
	return nil
}

func (c *Config) ActivationWindow() time.Duration {
	return time.Duration(c.Input.ActivationWindowMS) * time.Millisecond
}

func (c *Config) ResizeDebounce() time.Duration {
	return time.Duration(c.Input.ResizeDebounceMS) * time.Millisecond
}
