package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envMap(m map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	}
}

func TestPresets(t *testing.T) {
	assert.Equal(t, []string{"large", "medium", "small"}, Presets())

	for _, name := range Presets() {
		cfg, err := LoadPreset(name)
		require.NoError(t, err, name)
		assert.NoError(t, cfg.Validate(), name)
	}
}

func TestLoadPresetOverlaysDefaults(t *testing.T) {
	cfg, err := LoadPreset("small")
	require.NoError(t, err)

	assert.Equal(t, 20, cfg.CellCount)
	assert.Equal(t, 15, cfg.Radius)
	assert.Equal(t, 60*time.Millisecond, cfg.TickInterval)
	// Not set by the preset
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, Default().Palette, cfg.Palette)
}

func TestLoadPresetUnknown(t *testing.T) {
	_, err := LoadPreset("gigantic")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gigantic")
}

func TestMediumMatchesDefault(t *testing.T) {
	cfg, err := LoadPreset(DefaultPreset)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "dungeon.yaml")
	require.NoError(t, os.WriteFile(file, []byte("seed: 42\ncell_count: 5\nradius: 20\nmin_side: 4\nmax_side: 8\npalette:\n  wall: \"#FF0000\"\n"), 0o644))

	cfg, err := Load(Options{Preset: "large", File: file})
	require.NoError(t, err)

	assert.Equal(t, uint64(42), cfg.Seed)
	assert.Equal(t, 5, cfg.CellCount)
	assert.Equal(t, 4, cfg.MinSide)
	assert.Equal(t, 20000, cfg.MaxPasses, "preset value should survive")
	assert.Equal(t, "#FF0000", cfg.Palette.Wall)
	assert.Equal(t, Default().Palette.Floor, cfg.Palette.Floor)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(Options{File: filepath.Join(t.TempDir(), "missing.yaml")})
	assert.Error(t, err)
}

func TestLoadMissingEnvFileIsIgnored(t *testing.T) {
	_, err := Load(Options{EnvFile: filepath.Join(t.TempDir(), ".env")})
	assert.NoError(t, err)
}

func TestLoadEnvFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(file, []byte("DUNGEONGEN_CELLS=33\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("DUNGEONGEN_CELLS") })

	cfg, err := Load(Options{EnvFile: file})
	require.NoError(t, err)
	assert.Equal(t, 33, cfg.CellCount)
}

func TestApplyEnv(t *testing.T) {
	cfg := Default()
	err := cfg.ApplyEnv(envMap(map[string]string{
		"DUNGEONGEN_SEED":        "99",
		"DUNGEONGEN_CELLS":       " 12 ",
		"DUNGEONGEN_MAX_SIDE":    "14",
		"DUNGEONGEN_TICK":        "5ms",
		"DUNGEONGEN_LOG_LEVEL":   "debug",
		"DUNGEONGEN_LISTEN_ADDR": "127.0.0.1:9000",
	}))
	require.NoError(t, err)

	assert.Equal(t, uint64(99), cfg.Seed)
	assert.Equal(t, 12, cfg.CellCount)
	assert.Equal(t, 14, cfg.MaxSide)
	assert.Equal(t, 5*time.Millisecond, cfg.TickInterval)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "127.0.0.1:9000", cfg.ListenAddr)
	assert.Equal(t, Default().Radius, cfg.Radius)
}

func TestApplyEnvRejectsGarbage(t *testing.T) {
	tests := map[string]string{
		"DUNGEONGEN_CELLS": "many",
		"DUNGEONGEN_SEED":  "-1",
		"DUNGEONGEN_TICK":  "soon",
	}
	for key, value := range tests {
		cfg := Default()
		err := cfg.ApplyEnv(envMap(map[string]string{key: value}))
		assert.True(t, errors.Is(err, ErrInvalidConfig), "%s=%s: %v", key, value, err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero cells", func(c *Config) { c.CellCount = 0 }},
		{"zero radius", func(c *Config) { c.Radius = 0 }},
		{"zero min side", func(c *Config) { c.MinSide = 0 }},
		{"min above max", func(c *Config) { c.MinSide, c.MaxSide = 9, 4 }},
		{"negative passes", func(c *Config) { c.MaxPasses = -1 }},
		{"negative tick", func(c *Config) { c.TickInterval = -time.Second }},
	}

	require.NoError(t, Default().Validate())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}

func TestResolveSeed(t *testing.T) {
	cfg := Default()
	cfg.Seed = 17
	assert.Equal(t, uint64(17), cfg.ResolveSeed())

	cfg.Seed = 0
	assert.NotZero(t, cfg.ResolveSeed())
}
