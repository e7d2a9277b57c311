// Package world provides procedural dungeon generation and tile rasterization.
package world

import "strings"

// Tile represents a single map tile symbol.
type Tile rune

// Rune returns the tile's display character.
func (t Tile) Rune() rune {
	return rune(t)
}

// TileKind is the semantic tag of a rasterized tile.
type TileKind int

const (
	// TileVoid is empty space outside any kept cell or corridor.
	TileVoid TileKind = iota
	// TileWalkable is floor inside a kept cell or along a corridor.
	TileWalkable
	// TileWall is the border ring of a room.
	TileWall

	// NumTileKinds is the number of semantic tile kinds.
	NumTileKinds
)

// String returns a human-readable kind name.
func (k TileKind) String() string {
	switch k {
	case TileVoid:
		return "void"
	case TileWalkable:
		return "walkable"
	case TileWall:
		return "wall"
	default:
		return "unknown"
	}
}

// TileTable maps each TileKind to the symbol written into a grid.
type TileTable [NumTileKinds]Tile

// DefaultTileTable renders void as blank, floor as '.' and walls as '#'.
var DefaultTileTable = TileTable{
	TileVoid:     ' ',
	TileWalkable: '.',
	TileWall:     '#',
}

// Symbol returns the symbol for a kind, or the void symbol for unknown kinds.
func (t TileTable) Symbol(k TileKind) Tile {
	if k < 0 || k >= NumTileKinds {
		return t[TileVoid]
	}
	return t[k]
}

// Kind returns the first kind mapped to the given symbol.
func (t TileTable) Kind(tile Tile) (TileKind, bool) {
	for k, sym := range t {
		if sym == tile {
			return TileKind(k), true
		}
	}
	return TileVoid, false
}

// Grid is a rasterized dungeon. Tiles are stored row-major with origin (0,0)
// at the bounding rectangle's top-left corner.
type Grid struct {
	Width  int
	Height int
	Tiles  []Tile
}

// Empty returns true if the grid has no tiles.
func (g Grid) Empty() bool {
	return g.Width == 0 || g.Height == 0
}

// InBounds returns true if the position lies inside the grid.
func (g Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.Width && y >= 0 && y < g.Height
}

// At returns the tile at the given position, or 0 when out of range.
func (g Grid) At(x, y int) Tile {
	if !g.InBounds(x, y) {
		return 0
	}
	return g.Tiles[y*g.Width+x]
}

// Row returns the tiles of row y.
func (g Grid) Row(y int) []Tile {
	if y < 0 || y >= g.Height {
		return nil
	}
	return g.Tiles[y*g.Width : (y+1)*g.Width]
}

// String renders the grid as newline-terminated text rows.
func (g Grid) String() string {
	var sb strings.Builder
	sb.Grow((g.Width + 1) * g.Height)
	for y := 0; y < g.Height; y++ {
		for _, t := range g.Row(y) {
			sb.WriteRune(t.Rune())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
