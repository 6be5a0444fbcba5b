// Package config reads the game's settings from the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/cbodonnell/flipside/pkg/levels"
	"github.com/cbodonnell/flipside/pkg/log"
	"github.com/cbodonnell/flipside/pkg/persistence"
)

// AppName names the per-user data directory.
const AppName = "flipside"

type Config struct {
	// SaveURL selects the save backend: file://<dir>, sqlite://<path> or
	// postgresql://... When empty, saves go to SaveDir.
	SaveURL string `env:"FLIPSIDE_SAVE_URL"`
	// SaveDir defaults to the user config directory.
	SaveDir          string        `env:"FLIPSIDE_SAVE_DIR"`
	SaveFile         string        `env:"FLIPSIDE_SAVE_FILE" envDefault:"savegame.json"`
	LogLevel         string        `env:"FLIPSIDE_LOG_LEVEL" envDefault:"info"`
	TickRate         int           `env:"FLIPSIDE_TICK_RATE" envDefault:"60"`
	AutosaveInterval time.Duration `env:"FLIPSIDE_AUTOSAVE_INTERVAL" envDefault:"2m"`
	// DebugAPIPort enables the debug API when non-zero.
	DebugAPIPort int    `env:"FLIPSIDE_DEBUG_API_PORT" envDefault:"0"`
	Headless     bool   `env:"FLIPSIDE_HEADLESS" envDefault:"false"`
	FirstLevel   string `env:"FLIPSIDE_FIRST_LEVEL"`
	Continue     bool   `env:"FLIPSIDE_CONTINUE" envDefault:"true"`
}

// Load parses the environment into a Config and validates it.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if _, err := log.ParseLogLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level: %v", err)
	}
	if c.TickRate <= 0 {
		return fmt.Errorf("tick rate must be positive, got %d", c.TickRate)
	}
	if c.AutosaveInterval < 0 {
		return fmt.Errorf("autosave interval must not be negative, got %s", c.AutosaveInterval)
	}
	if c.SaveFile == "" {
		c.SaveFile = persistence.DefaultSlot
	}
	if _, err := c.LevelOrder(); err != nil {
		return err
	}
	return nil
}

// LevelOrder returns the levels to play, starting at FirstLevel when set.
func (c *Config) LevelOrder() ([]string, error) {
	if c.FirstLevel == "" {
		return levels.DefaultOrder, nil
	}
	for i, name := range levels.DefaultOrder {
		if name == c.FirstLevel {
			return levels.DefaultOrder[i:], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", levels.ErrUnknownLevel, c.FirstLevel)
}

// StorageURL resolves where saves are kept.
func (c *Config) StorageURL() (string, error) {
	if c.SaveURL != "" {
		return c.SaveURL, nil
	}
	dir := c.SaveDir
	if dir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return "", fmt.Errorf("failed to find user config directory: %v", err)
		}
		dir = filepath.Join(base, AppName)
	}
	return "file://" + dir, nil
}

// TickInterval is the wall-clock length of one frame.
func (c *Config) TickInterval() time.Duration {
	return time.Second / time.Duration(c.TickRate)
}
