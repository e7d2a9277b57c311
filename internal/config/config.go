// Package config loads generation and viewer settings from embedded presets,
// YAML files, .env files and the environment.
package config

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidConfig is returned when a configuration value is out of range.
var ErrInvalidConfig = errors.New("invalid config")

// DefaultPreset is the preset used when none is requested.
const DefaultPreset = "medium"

// Config holds generation and host options.
type Config struct {
	// Seed for random number generation. Used for reproducible dungeon generation.
	// A seed of 0 means a random seed will be generated.
	Seed uint64 `yaml:"seed"`

	CellCount int `yaml:"cell_count"` // Number of cells seeded
	Radius    int `yaml:"radius"`     // Placement radius around the origin
	MinSide   int `yaml:"min_side"`   // Smallest cell side
	MaxSide   int `yaml:"max_side"`   // Largest cell side

	// MaxPasses caps separation passes; 0 disables the cap.
	MaxPasses int `yaml:"max_passes"`

	// TickInterval is the delay between steps in the live viewer.
	TickInterval time.Duration `yaml:"tick_interval"`

	LogLevel   string  `yaml:"log_level"`
	ListenAddr string  `yaml:"listen_addr"`
	Palette    Palette `yaml:"palette"`
}

// Palette holds hex colors used by the terminal viewer.
type Palette struct {
	Wall     string `yaml:"wall"`
	Floor    string `yaml:"floor"`
	Room     string `yaml:"room"`
	Filler   string `yaml:"filler"`
	Corridor string `yaml:"corridor"`
}

// Default returns the built-in configuration, matching the medium preset.
func Default() Config {
	return Config{
		CellCount:    60,
		Radius:       30,
		MinSide:      3,
		MaxSide:      10,
		MaxPasses:    10000,
		TickInterval: 30 * time.Millisecond,
		LogLevel:     "info",
		ListenAddr:   ":8080",
		Palette: Palette{
			Wall:     "#808080",
			Floor:    "#C0C0C0",
			Room:     "#FFD700",
			Filler:   "#4682B4",
			Corridor: "#32CD32",
		},
	}
}

// Validate checks that the generation parameters are usable.
func (c Config) Validate() error {
	switch {
	case c.CellCount <= 0:
		return fmt.Errorf("%w: cell_count must be positive, got %d", ErrInvalidConfig, c.CellCount)
	case c.Radius <= 0:
		return fmt.Errorf("%w: radius must be positive, got %d", ErrInvalidConfig, c.Radius)
	case c.MinSide <= 0:
		return fmt.Errorf("%w: min_side must be positive, got %d", ErrInvalidConfig, c.MinSide)
	case c.MinSide > c.MaxSide:
		return fmt.Errorf("%w: min_side %d exceeds max_side %d", ErrInvalidConfig, c.MinSide, c.MaxSide)
	case c.MaxPasses < 0:
		return fmt.Errorf("%w: max_passes must not be negative, got %d", ErrInvalidConfig, c.MaxPasses)
	case c.TickInterval < 0:
		return fmt.Errorf("%w: tick_interval must not be negative, got %s", ErrInvalidConfig, c.TickInterval)
	}
	return nil
}

// ResolveSeed returns the configured seed, or a clock-derived one when unset.
func (c Config) ResolveSeed() uint64 {
	if c.Seed != 0 {
		return c.Seed
	}
	return uint64(time.Now().UnixNano())
}
