package ui

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/dungeongen/internal/config"
	"github.com/samdwyer/dungeongen/internal/world"
)

func newTestRenderer(t *testing.T) (*Renderer, *Screen) {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	screen, err := NewScreenFrom(sim)
	if err != nil {
		t.Fatalf("Failed to init simulation screen: %v", err)
	}
	sim.SetSize(80, 24)
	t.Cleanup(screen.Close)

	palette, err := NewPalette(config.Default().Palette)
	if err != nil {
		t.Fatalf("Failed to build palette: %v", err)
	}
	return NewRenderer(screen, palette), screen
}

func readRow(s *Screen, y, width int) string {
	var sb strings.Builder
	for x := 0; x < width; x++ {
		r, _ := s.GetContent(x, y)
		sb.WriteRune(r)
	}
	return sb.String()
}

func TestRenderCellsWhileSeparating(t *testing.T) {
	r, screen := newTestRenderer(t)

	g := world.New(world.WithSeed(3))
	g.Initialize(1, 10, 4, 6)
	r.Render(g, "separating")

	c := g.Cells()[0]
	ox, oy := r.Origin(g.Bounds())
	rect := c.Rect().Translate(ox, oy)

	for _, p := range [][2]int{{rect.Left, rect.Top}, {rect.Right, rect.Bottom}} {
		if ch, _ := screen.GetContent(p[0], p[1]); ch != '+' {
			t.Errorf("Expected corner at (%d,%d), got %q", p[0], p[1], ch)
		}
	}
	if ch, _ := screen.GetContent(rect.Left+1, rect.Top); ch != '-' {
		t.Errorf("Expected top edge, got %q", ch)
	}
	if !strings.HasPrefix(readRow(screen, 23, 80), "separating") {
		t.Error("Status line not drawn")
	}
}

func TestRenderFinishedGrid(t *testing.T) {
	r, screen := newTestRenderer(t)

	g := world.New(world.WithSeed(3))
	g.Initialize(1, 10, 7, 8)
	for g.Step() != world.StatusDone {
	}
	r.Render(g, "done")

	c := g.Cells()[0]
	ox, oy := r.Origin(g.Bounds())
	want := ' '
	if c.Room {
		want = '#'
	}
	if ch, _ := screen.GetContent(ox+c.X, oy+c.Y); ch != want {
		t.Errorf("Expected %q at room corner, got %q", want, ch)
	}
	if c.Room {
		if ch, style := screen.GetContent(ox+c.X+1, oy+c.Y+1); ch != '.' {
			t.Errorf("Expected floor inside room, got %q", ch)
		} else if fg, _, _ := style.Decompose(); fg != r.palette.Floor {
			t.Errorf("Expected floor color, got %v", fg)
		}
	}
}

func TestRenderMessage(t *testing.T) {
	r, screen := newTestRenderer(t)
	r.RenderMessage("hello", 2)
	if got := readRow(screen, 2, 5); got != "hello" {
		t.Errorf("Expected hello, got %q", got)
	}
}
