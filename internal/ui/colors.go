package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/dungeongen/internal/config"
)

// Palette holds the styles used to draw a dungeon.
type Palette struct {
	Wall     tcell.Color
	Floor    tcell.Color
	Room     tcell.Color
	Filler   tcell.Color
	Corridor tcell.Color
}

// NewPalette parses the hex colors of a config palette.
func NewPalette(p config.Palette) (Palette, error) {
	var out Palette
	fields := []struct {
		name string
		hex  string
		dst  *tcell.Color
	}{
		{"wall", p.Wall, &out.Wall},
		{"floor", p.Floor, &out.Floor},
		{"room", p.Room, &out.Room},
		{"filler", p.Filler, &out.Filler},
		{"corridor", p.Corridor, &out.Corridor},
	}
	for _, f := range fields {
		color, err := ParseHexColor(f.hex)
		if err != nil {
			return out, fmt.Errorf("palette %s: %w", f.name, err)
		}
		*f.dst = color
	}
	return out, nil
}

// ParseHexColor converts a hex color string (e.g., "#FF0000" or "FF0000") to a tcell.Color.
func ParseHexColor(hex string) (tcell.Color, error) {
	hex = strings.TrimPrefix(hex, "#")

	if len(hex) != 6 {
		return tcell.ColorDefault, fmt.Errorf("invalid hex color length: %s", hex)
	}

	r, err := strconv.ParseUint(hex[0:2], 16, 8)
	if err != nil {
		return tcell.ColorDefault, fmt.Errorf("invalid red component in %s: %w", hex, err)
	}

	g, err := strconv.ParseUint(hex[2:4], 16, 8)
	if err != nil {
		return tcell.ColorDefault, fmt.Errorf("invalid green component in %s: %w", hex, err)
	}

	b, err := strconv.ParseUint(hex[4:6], 16, 8)
	if err != nil {
		return tcell.ColorDefault, fmt.Errorf("invalid blue component in %s: %w", hex, err)
	}

	return tcell.NewRGBColor(int32(r), int32(g), int32(b)), nil
}
