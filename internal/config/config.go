// Package config reads planner settings from the environment.
package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"

	"planner/internal/domain"
)

// Defaults for the storage locations. They seed Load and the CLI flags.
const (
	DefaultObjectsPath  = "~/.local/share/planner/objects"
	DefaultMetaFilename = "catalog.db"
)

// Config is the environment configuration shared by every binary
type Config struct {
	ObjectsPath   string  `env:"PLANNER_OBJECTS"`
	MetaFilename  string  `env:"PLANNER_META_FILE"`
	ApartmentPath string  `env:"PLANNER_APARTMENT"`
	Mode          string  `env:"PLANNER_MODE" envDefault:"2d"`
	WallProximity float64 `env:"PLANNER_WALL_PROXIMITY" envDefault:"0.5"`
	HistoryDepth  int     `env:"PLANNER_HISTORY_DEPTH" envDefault:"100"`
	LogLevel      string  `env:"PLANNER_LOG_LEVEL" envDefault:"info"`
	LogFile       string  `env:"PLANNER_LOG_FILE"`
	MetricsAddr   string  `env:"PLANNER_METRICS_ADDR"`
}

// Load parses the environment and validates the result
func Load() (Config, error) {
	cfg := Config{
		ObjectsPath:  DefaultObjectsPath,
		MetaFilename: DefaultMetaFilename,
	}
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects values no component can work with
func (c Config) Validate() error {
	if strings.TrimSpace(c.ObjectsPath) == "" {
		return fmt.Errorf("PLANNER_OBJECTS must not be empty")
	}
	if strings.TrimSpace(c.MetaFilename) == "" {
		return fmt.Errorf("PLANNER_META_FILE must not be empty")
	}
	if _, ok := domain.ParseEditMode(c.Mode); !ok {
		return fmt.Errorf("PLANNER_MODE must be 2d or 3d, got %q", c.Mode)
	}
	if c.WallProximity <= 0 {
		return fmt.Errorf("PLANNER_WALL_PROXIMITY must be positive, got %v", c.WallProximity)
	}
	if c.HistoryDepth < 0 {
		return fmt.Errorf("PLANNER_HISTORY_DEPTH must not be negative, got %d", c.HistoryDepth)
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// EditMode returns the parsed starting mode
func (c Config) EditMode() domain.EditMode {
	m, _ := domain.ParseEditMode(c.Mode)
	return m
}

// SlogLevel parses LogLevel (debug, info, warn, error)
func (c Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("PLANNER_LOG_LEVEL: %w", err)
	}
	return level, nil
}
