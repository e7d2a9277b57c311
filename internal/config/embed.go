package config

import "embed"

// presetFS embeds the generation presets at build time.
//
//go:embed presets/*.yaml
var presetFS embed.FS
