package ui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/dungeongen/internal/world"
)

// Renderer handles drawing a generator to the screen.
type Renderer struct {
	screen  *Screen
	palette Palette
}

// NewRenderer creates a new renderer for the given screen.
func NewRenderer(screen *Screen, palette Palette) *Renderer {
	return &Renderer{screen: screen, palette: palette}
}

// Render draws the generator's current state with a status line at the
// bottom of the screen. Cells are drawn as outlines until generation
// finishes, then the rasterized map replaces them.
func (r *Renderer) Render(g *world.Generator, status string) {
	r.screen.Clear()

	_, h := r.screen.Size()
	if g.IsFinished() {
		r.drawGrid(g)
	} else {
		r.drawCells(g)
	}
	r.RenderMessage(status, h-1)

	r.screen.Show()
}

// Origin returns the screen position of world coordinate (0,0) that centers
// the bounds in the area above the status line.
func (r *Renderer) Origin(b world.Rect) (int, int) {
	w, h := r.screen.Size()
	h--
	return w/2 - (b.Left+b.Right)/2, h/2 - (b.Top+b.Bottom)/2
}

// drawCells outlines every cell, rooms and filler in different colors.
func (r *Renderer) drawCells(g *world.Generator) {
	ox, oy := r.Origin(g.Bounds())
	for _, c := range g.Cells() {
		color := r.palette.Filler
		if c.Room {
			color = r.palette.Room
		}
		r.drawOutline(c.Rect().Translate(ox, oy), tcell.StyleDefault.Foreground(color))
	}
}

func (r *Renderer) drawOutline(rect world.Rect, style tcell.Style) {
	for x := rect.Left + 1; x < rect.Right; x++ {
		r.screen.SetContent(x, rect.Top, '-', style)
		r.screen.SetContent(x, rect.Bottom, '-', style)
	}
	for y := rect.Top + 1; y < rect.Bottom; y++ {
		r.screen.SetContent(rect.Left, y, '|', style)
		r.screen.SetContent(rect.Right, y, '|', style)
	}
	r.screen.SetContent(rect.Left, rect.Top, '+', style)
	r.screen.SetContent(rect.Right, rect.Top, '+', style)
	r.screen.SetContent(rect.Left, rect.Bottom, '+', style)
	r.screen.SetContent(rect.Right, rect.Bottom, '+', style)
}

// drawGrid draws the rasterized map, tinting corridor floor.
func (r *Renderer) drawGrid(g *world.Generator) {
	table := world.DefaultTileTable
	grid := g.Rasterize(table)
	b := g.Bounds()
	ox, oy := r.Origin(b)
	ox += b.Left
	oy += b.Top

	for y := 0; y < grid.Height; y++ {
		for x := 0; x < grid.Width; x++ {
			tile := grid.At(x, y)
			kind, _ := table.Kind(tile)
			if kind == world.TileVoid {
				continue
			}
			r.screen.SetContent(ox+x, oy+y, tile.Rune(), r.getTileStyle(kind))
		}
	}

	corridor := tcell.StyleDefault.Foreground(r.palette.Corridor)
	for _, c := range g.Corridors() {
		rect := c.Rect().Translate(-b.Left, -b.Top)
		for y := rect.Top; y <= rect.Bottom; y++ {
			for x := rect.Left; x <= rect.Right; x++ {
				r.screen.SetContent(ox+x, oy+y, grid.At(x, y).Rune(), corridor)
			}
		}
	}
}

// getTileStyle returns the appropriate style for a tile kind.
func (r *Renderer) getTileStyle(kind world.TileKind) tcell.Style {
	switch kind {
	case world.TileWall:
		return tcell.StyleDefault.Foreground(r.palette.Wall)
	case world.TileWalkable:
		return tcell.StyleDefault.Foreground(r.palette.Floor)
	default:
		return tcell.StyleDefault
	}
}

// RenderMessage displays a message on row y.
func (r *Renderer) RenderMessage(msg string, y int) {
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	for i, ch := range []rune(msg) {
		r.screen.SetContent(i, y, ch, style)
	}
}
