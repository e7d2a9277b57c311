package world

import (
	"context"
	"math"
	"math/rand"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/dungeongen/internal/telemetry"
)

const (
	// DefaultSeed matches a freshly constructed random stream.
	DefaultSeed uint64 = 1

	// roomThreshold is the fraction of the side range above minSide that a
	// cell's area must exceed (squared) to count as a room.
	roomThreshold = 0.75

	// stepLimit is the maximum distance a cell moves per axis per pass.
	stepLimit = 1

	// maxRadius is the largest placement radius whose position range,
	// 2*radius+1 values wide, still fits in an int.
	maxRadius = (math.MaxInt - 1) / 2
)

// Generator incrementally builds a dungeon layout. It is not safe for
// concurrent use; independent generators may run side by side.
type Generator struct {
	state     State
	seed      uint64
	rng       *rand.Rand
	maxPasses int
	passes    int
	converged bool

	cells       []Cell
	connections Connections
	corridors   []Corridor
	bounds      Rect
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed seeds the generator's random stream.
func WithSeed(seed uint64) Option {
	return func(g *Generator) {
		g.SetSeed(seed)
	}
}

// WithMaxPasses caps the number of separation passes. When the cap is hit,
// separation stops and the generator moves on to connecting. A value of zero
// or less means no cap.
func WithMaxPasses(n int) Option {
	return func(g *Generator) {
		g.maxPasses = n
	}
}

// New creates an empty generator.
func New(opts ...Option) *Generator {
	g := &Generator{
		seed: DefaultSeed,
		rng:  rand.New(rand.NewSource(int64(DefaultSeed))),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// SetSeed reseeds the random stream. Call it before Initialize for
// reproducible output.
func (g *Generator) SetSeed(seed uint64) {
	g.seed = seed
	g.rng.Seed(int64(seed))
}

// Seed returns the seed last applied to the random stream.
func (g *Generator) Seed() uint64 {
	return g.seed
}

// Initialize seeds cellCount random cells within radius of the origin. It
// returns false and leaves the generator untouched if the generator is not
// empty or any argument is out of range.
func (g *Generator) Initialize(cellCount, radius, minSide, maxSide int) bool {
	if g.state != StateEmpty || cellCount <= 0 || radius <= 0 || radius > maxRadius || minSide <= 0 || minSide > maxSide {
		return false
	}

	threshold := minSide + int(roomThreshold*float64(maxSide-minSide))
	posLow, posHigh := -radius, max(-radius, radius-maxSide)

	g.cells = make([]Cell, cellCount)
	for i := range g.cells {
		c := &g.cells[i]
		c.Width = randRange(g.rng, minSide, maxSide)
		c.Height = randRange(g.rng, minSide, maxSide)
		c.X = randRange(g.rng, posLow, posHigh)
		c.Y = randRange(g.rng, posLow, posHigh)
		c.Room = c.Area() > threshold*threshold
	}

	g.connections = newConnections(cellCount)
	g.corridors = nil
	g.passes = 0
	g.converged = false
	g.bounds = g.cellBounds(false)
	g.state = StateStarted
	return true
}

// Step advances generation by one unit of work: a single separation pass, or
// the whole connection pass.
func (g *Generator) Step() Status {
	switch g.state {
	case StateEmpty:
		return StatusIdle
	case StateStarted:
		g.state = StateExpanding
		g.separate()
	case StateExpanding:
		g.separate()
	case StateConnecting:
		g.connect()
	}

	if g.state == StateFinished {
		return StatusDone
	}
	return StatusInProgress
}

// Generate steps the generator until it finishes or ctx is cancelled.
func (g *Generator) Generate(ctx context.Context) error {
	tracer := telemetry.Tracer("world")
	ctx, span := tracer.Start(ctx, "dungeon.generate")
	defer span.End()

	for g.state != StateFinished && g.state != StateEmpty {
		if err := ctx.Err(); err != nil {
			span.RecordError(err)
			return err
		}
		g.Step()
	}

	span.SetAttributes(
		attribute.Int64("dungeon.seed", int64(g.seed)),
		attribute.Int("dungeon.cell_count", len(g.cells)),
		attribute.Int("dungeon.room_count", g.RoomCount()),
		attribute.Int("dungeon.corridor_count", len(g.corridors)),
		attribute.Int("dungeon.separation_passes", g.passes),
		attribute.Bool("dungeon.converged", g.converged),
	)
	return nil
}

// State returns the current generation phase.
func (g *Generator) State() State {
	return g.state
}

// IsFinished returns true once generation is complete.
func (g *Generator) IsFinished() bool {
	return g.state == StateFinished
}

// Passes returns the number of separation passes run so far.
func (g *Generator) Passes() int {
	return g.passes
}

// Converged reports whether separation ended with no overlapping cells. It
// is false before separation ends or when the pass cap cut it short.
func (g *Generator) Converged() bool {
	return g.converged
}

// Cells returns a copy of the cell list.
func (g *Generator) Cells() []Cell {
	cells := make([]Cell, len(g.cells))
	copy(cells, g.cells)
	return cells
}

// Connections returns the room connection relation.
func (g *Generator) Connections() Connections {
	return g.connections
}

// Corridors returns a copy of the corridor list.
func (g *Generator) Corridors() []Corridor {
	corridors := make([]Corridor, len(g.corridors))
	copy(corridors, g.corridors)
	return corridors
}

// Bounds returns the bounding rectangle of the layout.
func (g *Generator) Bounds() Rect {
	return g.bounds
}

// RoomCount returns the number of cells tagged as rooms.
func (g *Generator) RoomCount() int {
	n := 0
	for _, c := range g.cells {
		if c.Room {
			n++
		}
	}
	return n
}

// KeptCount returns the number of cells marked to keep.
func (g *Generator) KeptCount() int {
	n := 0
	for _, c := range g.cells {
		if c.Keep {
			n++
		}
	}
	return n
}

// cellBounds returns the rectangle enclosing the cells. With keptOnly set it
// encloses kept cells and corridors, falling back to all cells when nothing
// is kept.
func (g *Generator) cellBounds(keptOnly bool) Rect {
	var r Rect
	found := false
	for _, c := range g.cells {
		if keptOnly && !c.Keep {
			continue
		}
		if !found {
			r = c.Rect()
			found = true
			continue
		}
		r = r.Union(c.Rect())
	}
	if keptOnly {
		if !found {
			return g.cellBounds(false)
		}
		for _, cor := range g.corridors {
			r = r.Union(cor.Rect())
		}
	}
	return r
}

// randRange returns a uniformly distributed integer in [lo, hi].
func randRange(rng *rand.Rand, lo, hi int) int {
	return lo + rng.Intn(hi-lo+1)
}
