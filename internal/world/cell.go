package world

// Rect is an axis-aligned rectangle in lattice coordinates. All four edges
// are inclusive, so a Rect covers Width()*Height() tiles.
type Rect struct {
	Left, Top     int
	Right, Bottom int
}

// Width returns the number of tile columns covered by the rectangle.
func (r Rect) Width() int {
	return r.Right - r.Left + 1
}

// Height returns the number of tile rows covered by the rectangle.
func (r Rect) Height() int {
	return r.Bottom - r.Top + 1
}

// Contains returns true if the given point is inside the rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.Left && x <= r.Right && y >= r.Top && y <= r.Bottom
}

// Intersects returns true if the rectangles share at least one tile.
// Rectangles that only touch along an edge line intersect.
func (r Rect) Intersects(other Rect) bool {
	return r.Left <= other.Right &&
		r.Right >= other.Left &&
		r.Top <= other.Bottom &&
		r.Bottom >= other.Top
}

// Union returns the smallest rectangle enclosing both rectangles.
func (r Rect) Union(other Rect) Rect {
	return Rect{
		Left:   min(r.Left, other.Left),
		Top:    min(r.Top, other.Top),
		Right:  max(r.Right, other.Right),
		Bottom: max(r.Bottom, other.Bottom),
	}
}

// Translate returns the rectangle shifted by (dx, dy).
func (r Rect) Translate(dx, dy int) Rect {
	return Rect{Left: r.Left + dx, Top: r.Top + dy, Right: r.Right + dx, Bottom: r.Bottom + dy}
}

// Cell is an axis-aligned rectangle placed in the dungeon plane.
type Cell struct {
	X, Y          int // Top-left corner position
	Width, Height int // Dimensions of the cell

	Room bool // Area exceeds the room threshold; set once at creation
	Keep bool // Part of the final layout; set during connection
}

// Rect returns the lattice rectangle spanned by the cell.
func (c Cell) Rect() Rect {
	return Rect{Left: c.X, Top: c.Y, Right: c.X + c.Width, Bottom: c.Y + c.Height}
}

// Area returns width times height.
func (c Cell) Area() int {
	return c.Width * c.Height
}

// Center returns the integer center coordinates of the cell.
func (c Cell) Center() (int, int) {
	return c.X + c.Width/2, c.Y + c.Height/2
}

// ExactCenter returns the center used for distance computations.
func (c Cell) ExactCenter() (float64, float64) {
	return float64(c.X) + float64(c.Width)*0.5, float64(c.Y) + float64(c.Height)*0.5
}

// Overlaps returns true if the cells share a region of positive area.
// Cells that only touch along an edge do not overlap.
func (c Cell) Overlaps(other Cell) bool {
	_, _, overlap := steering(c, other)
	return overlap
}

// hitBy returns true if the corridor rectangle r reaches into the cell. The
// cell is half-open here: a corridor running along its right or bottom edge
// line does not touch it.
func (c Cell) hitBy(r Rect) bool {
	return r.Left < c.X+c.Width &&
		r.Right >= c.X &&
		r.Top < c.Y+c.Height &&
		r.Bottom >= c.Y
}
