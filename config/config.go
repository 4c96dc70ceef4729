// Package config loads raidne's settings from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/eevee/raidne/engine/geom"
)

// ErrInvalid is returned when settings parse but make no sense together.
var ErrInvalid = errors.New("invalid config")

// Config is everything a host needs to start a game.
type Config struct {
	Seed         int64  `env:"RAIDNE_SEED" envDefault:"0"`
	FloorRows    int    `env:"RAIDNE_FLOOR_ROWS" envDefault:"40"`
	FloorCols    int    `env:"RAIDNE_FLOOR_COLS" envDefault:"80"`
	MinPartition int    `env:"RAIDNE_MIN_PARTITION" envDefault:"8"`
	ContentDir   string `env:"RAIDNE_CONTENT_DIR"`
	Trace        bool   `env:"RAIDNE_TRACE" envDefault:"false"`
}

// Load parses Config from the environment and checks it.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Validate reports settings no floor generator could honour.
func (c Config) Validate() error {
	if c.MinPartition < 4 {
		return fmt.Errorf("RAIDNE_MIN_PARTITION=%d: must be at least 4: %w", c.MinPartition, ErrInvalid)
	}
	if c.FloorRows < c.MinPartition || c.FloorCols < c.MinPartition {
		return fmt.Errorf("floor %dx%d smaller than min partition %d: %w",
			c.FloorRows, c.FloorCols, c.MinPartition, ErrInvalid)
	}
	return nil
}

// FloorSize is the size of every generated floor.
func (c Config) FloorSize() geom.Size {
	return geom.Size{Rows: c.FloorRows, Cols: c.FloorCols}
}

// ResolvedSeed is Seed, or a clock-derived seed when Seed is zero.
func (c Config) ResolvedSeed() int64 {
	if c.Seed != 0 {
		return c.Seed
	}
	return time.Now().UnixNano()
}

// Exitf writes a formatted error message to stderr and exits with code 1.
func Exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
