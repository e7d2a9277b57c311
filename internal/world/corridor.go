package world

// Corridor is one straight, axis-aligned segment of a carved path.
type Corridor struct {
	StartX, StartY int
	EndX, EndY     int
	Width          int
}

// Valid reports whether the corridor is purely axis-aligned with a
// non-zero length and a positive width.
func (c Corridor) Valid() bool {
	return (c.StartX == c.EndX) != (c.StartY == c.EndY) && c.Width > 0
}

// Vertical returns true if the corridor runs along the Y axis.
func (c Corridor) Vertical() bool {
	return c.StartX == c.EndX
}

// Length returns the number of tiles along the centerline.
func (c Corridor) Length() int {
	return abs(c.EndX-c.StartX) + abs(c.EndY-c.StartY) + 1
}

// Rect returns the swept rectangle of the corridor. The centerline is widened
// by Width/2 on the negative side and (Width-1)/2 on the positive side.
func (c Corridor) Rect() Rect {
	r := Rect{
		Left:   min(c.StartX, c.EndX),
		Top:    min(c.StartY, c.EndY),
		Right:  max(c.StartX, c.EndX),
		Bottom: max(c.StartY, c.EndY),
	}
	neg, pos := c.Width/2, (c.Width-1)/2
	if c.Vertical() {
		r.Left -= neg
		r.Right += pos
	} else {
		r.Top -= neg
		r.Bottom += pos
	}
	return r
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
