package world

import "math"

// maxCorridorWidth is the widest corridor carved between two rooms.
const maxCorridorWidth = 3

// Connections is a read-only symmetric relation over cell indices. Only
// pairs of rooms can be connected.
type Connections struct {
	n     int
	links []bool
}

func newConnections(n int) Connections {
	return Connections{n: n, links: make([]bool, n*n)}
}

func (c Connections) set(i, j int) {
	c.links[i*c.n+j] = true
	c.links[j*c.n+i] = true
}

// Len returns the number of cells the relation is defined over.
func (c Connections) Len() int {
	return c.n
}

// Connected returns true if cells i and j are linked. Out-of-range indices
// are never connected.
func (c Connections) Connected(i, j int) bool {
	if i < 0 || j < 0 || i >= c.n || j >= c.n {
		return false
	}
	return c.links[i*c.n+j]
}

// Degree returns the number of cells linked to cell i.
func (c Connections) Degree(i int) int {
	d := 0
	for j := 0; j < c.n; j++ {
		if c.Connected(i, j) {
			d++
		}
	}
	return d
}

// Pairs returns every linked pair (i, j) with i < j in ascending order.
func (c Connections) Pairs() [][2]int {
	var pairs [][2]int
	for i := 0; i < c.n; i++ {
		for j := i + 1; j < c.n; j++ {
			if c.links[i*c.n+j] {
				pairs = append(pairs, [2]int{i, j})
			}
		}
	}
	return pairs
}

// connect links rooms with a relative neighbourhood graph, carves L-shaped
// corridors along every link and marks the cells the corridors pass through.
func (g *Generator) connect() {
	n := len(g.cells)

	var rooms []int
	for i, c := range g.cells {
		if c.Room {
			rooms = append(rooms, i)
		}
	}

	dists := make([]float64, n*n)
	for a, i := range rooms {
		for _, j := range rooms[a+1:] {
			d := distance(g.cells[i], g.cells[j])
			dists[i*n+j] = d
			dists[j*n+i] = d
		}
	}

	g.connections = newConnections(n)
	for a, i := range rooms {
		for _, j := range rooms[a+1:] {
			if relativeNeighbors(rooms, dists, n, i, j) {
				g.connections.set(i, j)
			}
		}
	}

	for i := range g.cells {
		g.cells[i].Keep = g.cells[i].Room
	}
	g.corridors = g.corridors[:0]

	for _, p := range g.connections.Pairs() {
		g.carve(p[0], p[1])
	}

	g.bounds = g.cellBounds(true)
	g.state = StateFinished
}

// relativeNeighbors returns true unless some third room is strictly closer
// to both i and j than they are to each other.
func relativeNeighbors(rooms []int, dists []float64, n, i, j int) bool {
	dij := dists[i*n+j]
	for _, k := range rooms {
		if k == i || k == j {
			continue
		}
		if dists[i*n+k] < dij && dists[j*n+k] < dij {
			return false
		}
	}
	return true
}

// carve draws an L-shaped path between the centers of cells i and j.
func (g *Generator) carve(i, j int) {
	sx, sy := g.cells[i].Center()
	ex, ey := g.cells[j].Center()
	width := 1 + g.rng.Intn(maxCorridorWidth)

	if g.rng.Intn(2) == 0 {
		g.addCorridor(Corridor{StartX: sx, StartY: sy, EndX: sx, EndY: ey, Width: width})
		g.addCorridor(Corridor{StartX: sx, StartY: ey, EndX: ex, EndY: ey, Width: width})
	} else {
		g.addCorridor(Corridor{StartX: sx, StartY: sy, EndX: ex, EndY: sy, Width: width})
		g.addCorridor(Corridor{StartX: ex, StartY: sy, EndX: ex, EndY: ey, Width: width})
	}
}

// addCorridor appends a valid corridor and keeps every discarded cell its
// swept rectangle reaches into. Invalid corridors are dropped.
func (g *Generator) addCorridor(c Corridor) {
	if !c.Valid() {
		return
	}
	g.corridors = append(g.corridors, c)

	swept := c.Rect()
	for i := range g.cells {
		if g.cells[i].Keep {
			continue
		}
		if g.cells[i].hitBy(swept) {
			g.cells[i].Keep = true
		}
	}
}

func distance(a, b Cell) float64 {
	ax, ay := a.ExactCenter()
	bx, by := b.ExactCenter()
	return math.Hypot(ax-bx, ay-by)
}
