package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "DUNGEONGEN_"

// Options selects the configuration sources passed to Load.
type Options struct {
	Preset  string // Embedded preset name; empty uses DefaultPreset
	File    string // Optional YAML file layered over the preset
	EnvFile string // Optional .env file; a missing file is not an error
}

// Load builds a Config from, in order: built-in defaults, an embedded preset,
// an optional YAML file, an optional .env file and DUNGEONGEN_* variables.
func Load(opts Options) (Config, error) {
	cfg := Default()

	preset := opts.Preset
	if preset == "" {
		preset = DefaultPreset
	}
	if err := applyPreset(&cfg, preset); err != nil {
		return cfg, err
	}

	if opts.File != "" {
		content, err := os.ReadFile(opts.File)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config file %s: %w", opts.File, err)
		}
		if err := yaml.Unmarshal(content, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse YAML from %s: %w", opts.File, err)
		}
	}

	if opts.EnvFile != "" {
		if err := godotenv.Load(opts.EnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return cfg, fmt.Errorf("failed to load env file %s: %w", opts.EnvFile, err)
		}
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// Presets returns the names of the embedded presets.
func Presets() []string {
	entries, err := presetFS.ReadDir("presets")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), path.Ext(e.Name())))
	}
	sort.Strings(names)
	return names
}

// LoadPreset returns the defaults overlaid with the named embedded preset.
func LoadPreset(name string) (Config, error) {
	cfg := Default()
	if err := applyPreset(&cfg, name); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func applyPreset(cfg *Config, name string) error {
	filename := "presets/" + name + ".yaml"
	content, err := presetFS.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("unknown preset %q (available: %s): %w", name, strings.Join(Presets(), ", "), err)
	}
	if err := yaml.Unmarshal(content, cfg); err != nil {
		return fmt.Errorf("failed to parse YAML from %s: %w", filename, err)
	}
	return nil
}

// ApplyEnv overrides fields from DUNGEONGEN_* variables found by lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	ints := []struct {
		key string
		dst *int
	}{
		{"CELLS", &c.CellCount},
		{"RADIUS", &c.Radius},
		{"MIN_SIDE", &c.MinSide},
		{"MAX_SIDE", &c.MaxSide},
		{"MAX_PASSES", &c.MaxPasses},
	}
	for _, f := range ints {
		v, ok := lookup(EnvPrefix + f.key)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%w: %s%s=%q: %v", ErrInvalidConfig, EnvPrefix, f.key, v, err)
		}
		*f.dst = n
	}

	if v, ok := lookup(EnvPrefix + "SEED"); ok {
		seed, err := strconv.ParseUint(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return fmt.Errorf("%w: %sSEED=%q: %v", ErrInvalidConfig, EnvPrefix, v, err)
		}
		c.Seed = seed
	}
	if v, ok := lookup(EnvPrefix + "TICK"); ok {
		d, err := time.ParseDuration(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%w: %sTICK=%q: %v", ErrInvalidConfig, EnvPrefix, v, err)
		}
		c.TickInterval = d
	}
	if v, ok := lookup(EnvPrefix + "LOG_LEVEL"); ok {
		c.LogLevel = v
	}
	if v, ok := lookup(EnvPrefix + "LISTEN_ADDR"); ok {
		c.ListenAddr = v
	}
	return nil
}
