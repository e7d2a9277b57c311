package viewer

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samdwyer/dungeongen/internal/config"
	"github.com/samdwyer/dungeongen/internal/driver"
	"github.com/samdwyer/dungeongen/internal/telemetry"
	"github.com/samdwyer/dungeongen/internal/ui"
	"github.com/samdwyer/dungeongen/internal/world"
)

var testParams = driver.Params{Seed: 10, CellCount: 20, Radius: 20, MinSide: 3, MaxSide: 8}

func newTestViewer(t *testing.T) *Viewer {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	screen, err := ui.NewScreenFrom(sim)
	require.NoError(t, err)
	sim.SetSize(80, 24)

	palette, err := ui.NewPalette(config.Default().Palette)
	require.NoError(t, err)

	d := driver.New(driver.WithTracer(telemetry.NoopTracer()))
	v := New(screen, ui.NewRenderer(screen, palette), d, testParams, time.Millisecond)
	require.NoError(t, v.restart(testParams.Seed))
	return v
}

func TestPauseAndSingleStep(t *testing.T) {
	v := newTestViewer(t)

	v.handleKey(tcell.KeyRune, 'n')
	assert.Equal(t, world.StateStarted, v.run.Generator.State(), "step key ignored while running")

	v.handleKey(tcell.KeyRune, ' ')
	require.True(t, v.paused)
	assert.Contains(t, v.statusLine(), "(paused)")

	v.handleKey(tcell.KeyRune, 'n')
	assert.NotEqual(t, world.StateStarted, v.run.Generator.State())
	assert.Equal(t, 1, v.run.Generator.Passes())

	v.handleKey(tcell.KeyRune, ' ')
	assert.False(t, v.paused)
}

func TestReseed(t *testing.T) {
	v := newTestViewer(t)
	first := v.run

	v.handleKey(tcell.KeyRune, 'r')
	assert.NotSame(t, first, v.run)
	assert.Equal(t, testParams.Seed+1, v.run.Params.Seed)
	assert.Equal(t, world.StateStarted, v.run.Generator.State())
	assert.True(t, strings.HasPrefix(v.statusLine(), "seed=11 "))
}

func TestQuitKeys(t *testing.T) {
	tests := []struct {
		key tcell.Key
		ch  rune
	}{
		{tcell.KeyEscape, 0},
		{tcell.KeyCtrlC, 0},
		{tcell.KeyRune, 'q'},
		{tcell.KeyRune, 'Q'},
	}
	for _, tt := range tests {
		v := newTestViewer(t)
		v.handleKey(tt.key, tt.ch)
		assert.False(t, v.running, "key %v %q should quit", tt.key, tt.ch)
	}
}

func TestStatusLineWhenFinished(t *testing.T) {
	v := newTestViewer(t)
	for v.driver.Step(v.run) != world.StatusDone {
	}
	line := v.statusLine()
	assert.Contains(t, line, "state=finished")
	assert.Contains(t, line, "corridors=")
}

func TestRunStopsOnCancel(t *testing.T) {
	v := newTestViewer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	require.NoError(t, v.Run(ctx))
	assert.False(t, v.running)
}
