package world

// separate runs one steering pass. Every overlapping pair votes one unit
// apart on each axis, each cell then moves at most stepLimit per axis.
func (g *Generator) separate() {
	g.passes++

	n := len(g.cells)
	forceX := make([]int, n)
	forceY := make([]int, n)
	overlapped := false

	for a := 0; a < n; a++ {
		for b := a + 1; b < n; b++ {
			fx, fy, overlap := steering(g.cells[a], g.cells[b])
			if !overlap {
				continue
			}
			overlapped = true

			switch {
			case fx > 0:
				forceX[a]--
				forceX[b]++
			case fx < 0:
				forceX[a]++
				forceX[b]--
			}
			switch {
			case fy > 0:
				forceY[a]--
				forceY[b]++
			case fy < 0:
				forceY[a]++
				forceY[b]--
			}
		}
	}

	if !overlapped {
		g.converged = true
		g.finishSeparation()
		return
	}

	for i := range g.cells {
		g.cells[i].X += clamp(forceX[i], -stepLimit, stepLimit)
		g.cells[i].Y += clamp(forceY[i], -stepLimit, stepLimit)
	}
	g.bounds = g.cellBounds(false)

	if g.maxPasses > 0 && g.passes >= g.maxPasses {
		g.finishSeparation()
	}
}

func (g *Generator) finishSeparation() {
	g.bounds = g.cellBounds(false)
	g.state = StateConnecting
}

// steering tests a and b for overlap and returns, per axis, the boundary
// difference of smaller magnitude. Its sign gives the push direction: a
// positive value pushes a towards negative and b towards positive.
func steering(a, b Cell) (fx, fy int, overlap bool) {
	dxa := a.X + a.Width - b.X
	dxb := a.X - b.X - b.Width
	dya := a.Y + a.Height - b.Y
	dyb := a.Y - b.Y - b.Height

	overlapX := dxa > 0 && dxb < 0
	overlapY := dya > 0 && dyb < 0

	fx = dxb
	if abs(dxa) < abs(dxb) {
		fx = dxa
	}
	fy = dyb
	if abs(dya) < abs(dyb) {
		fy = dya
	}
	return fx, fy, overlapX && overlapY
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
