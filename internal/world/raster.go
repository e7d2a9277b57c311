package world

// Rasterize projects kept cells and corridors onto a tile grid whose origin
// is the top-left corner of Bounds. It returns an empty Grid until
// generation has finished.
func (g *Generator) Rasterize(table TileTable) Grid {
	if g.state != StateFinished {
		return Grid{}
	}
	w, h := g.bounds.Width(), g.bounds.Height()
	grid := Grid{Width: w, Height: h, Tiles: make([]Tile, w*h)}
	g.paint(grid.Tiles, w, h, table)
	return grid
}

// RasterizeInto writes the map into a caller-owned row-major buffer with the
// given capacity. It returns the used extent, or zero without writing
// anything when generation is not finished or the buffer is too small.
func (g *Generator) RasterizeInto(buf []Tile, capWidth, capHeight int, table TileTable) (width, height int) {
	if g.state != StateFinished {
		return 0, 0
	}
	w, h := g.bounds.Width(), g.bounds.Height()
	if w > capWidth || h > capHeight || len(buf) < w*h {
		return 0, 0
	}
	g.paint(buf[:w*h], w, h, table)
	return w, h
}

func (g *Generator) paint(tiles []Tile, w, h int, table TileTable) {
	for i := range tiles {
		tiles[i] = table.Symbol(TileVoid)
	}

	dx, dy := -g.bounds.Left, -g.bounds.Top
	fill := func(r Rect, kind TileKind) {
		r = r.Translate(dx, dy)
		sym := table.Symbol(kind)
		for y := max(r.Top, 0); y <= min(r.Bottom, h-1); y++ {
			for x := max(r.Left, 0); x <= min(r.Right, w-1); x++ {
				tiles[y*w+x] = sym
			}
		}
	}

	for _, c := range g.cells {
		if !c.Keep {
			continue
		}
		r := c.Rect()
		if !c.Room {
			fill(r, TileWalkable)
			continue
		}
		fill(r, TileWall)
		fill(Rect{Left: r.Left + 1, Top: r.Top + 1, Right: r.Right - 1, Bottom: r.Bottom - 1}, TileWalkable)
	}

	for _, c := range g.corridors {
		fill(c.Rect(), TileWalkable)
	}
}
