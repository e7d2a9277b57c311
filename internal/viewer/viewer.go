// Package viewer runs the interactive terminal view that steps a generator on
// a timer and draws every intermediate layout.
package viewer

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/dungeongen/internal/driver"
	"github.com/samdwyer/dungeongen/internal/telemetry"
	"github.com/samdwyer/dungeongen/internal/ui"
	"github.com/samdwyer/dungeongen/internal/world"
)

// Viewer holds the live view state.
type Viewer struct {
	screen   *ui.Screen
	renderer *ui.Renderer
	driver   *driver.Driver
	params   driver.Params
	tick     time.Duration

	run     *driver.Run
	paused  bool
	running bool
}

// New creates a viewer that generates dungeons with params.
func New(screen *ui.Screen, renderer *ui.Renderer, d *driver.Driver, params driver.Params, tick time.Duration) *Viewer {
	if tick <= 0 {
		tick = 30 * time.Millisecond
	}
	return &Viewer{
		screen:   screen,
		renderer: renderer,
		driver:   d,
		params:   params,
		tick:     tick,
		running:  true,
	}
}

// Run executes the view loop until the user quits or ctx is done.
func (v *Viewer) Run(ctx context.Context) error {
	tracer := telemetry.Tracer("viewer")
	ctx, span := tracer.Start(ctx, "viewer.run")
	defer span.End()

	if err := v.restart(v.params.Seed); err != nil {
		return err
	}
	span.SetAttributes(attribute.String("dungeon.run_id", v.run.ID))

	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(v.tick)
	defer ticker.Stop()

	for v.running {
		v.render()

		select {
		case <-ctx.Done():
			v.running = false
		case ev, ok := <-events:
			if !ok {
				v.running = false
				break
			}
			v.handleEvent(ev)
		case <-ticker.C:
			if !v.paused {
				v.driver.Step(v.run)
			}
		}
	}

	v.screen.Close()
	return nil
}

// handleEvent processes a single terminal event.
func (v *Viewer) handleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		v.handleKey(ev.Key(), ev.Rune())
	case *tcell.EventResize:
		v.screen.Sync()
	}
}

// handleKey processes keyboard input.
func (v *Viewer) handleKey(key tcell.Key, ch rune) {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		v.running = false
		return
	case tcell.KeyRune:
	default:
		return
	}

	switch ch {
	case 'q', 'Q':
		v.running = false
	case ' ':
		v.paused = !v.paused
	case 'n', 'N':
		// Single step, only meaningful while paused
		if v.paused {
			v.driver.Step(v.run)
		}
	case 'r', 'R':
		if err := v.restart(v.run.Params.Seed + 1); err != nil {
			v.running = false
		}
	}
}

// restart discards the current run and starts a fresh one with seed.
func (v *Viewer) restart(seed uint64) error {
	p := v.params
	p.Seed = seed
	run, err := v.driver.Start(p)
	if err != nil {
		return fmt.Errorf("start generation: %w", err)
	}
	v.run = run
	return nil
}

func (v *Viewer) render() {
	v.renderer.Render(v.run.Generator, v.statusLine())
}

// statusLine summarizes the run and lists the key bindings.
func (v *Viewer) statusLine() string {
	g := v.run.Generator
	state := g.State().String()
	if v.paused {
		state += " (paused)"
	}
	line := fmt.Sprintf("seed=%d state=%s passes=%d rooms=%d", v.run.Params.Seed, state, g.Passes(), g.RoomCount())
	if g.State() == world.StateFinished {
		line += fmt.Sprintf(" kept=%d corridors=%d", g.KeptCount(), len(g.Corridors()))
	}
	return line + "  [space] pause [n] step [r] reseed [q] quit"
}
