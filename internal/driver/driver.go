// Package driver pumps dungeon generators to completion on behalf of a host,
// wrapping each run with logging, tracing and metrics.
package driver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/samdwyer/dungeongen/internal/config"
	"github.com/samdwyer/dungeongen/internal/logging"
	"github.com/samdwyer/dungeongen/internal/metrics"
	"github.com/samdwyer/dungeongen/internal/telemetry"
	"github.com/samdwyer/dungeongen/internal/world"
)

// ErrInvalidParams is returned when a generator rejects its parameters.
var ErrInvalidParams = errors.New("invalid generation parameters")

// Params are the inputs of a single generation run.
type Params struct {
	Seed      uint64
	CellCount int
	Radius    int
	MinSide   int
	MaxSide   int
	MaxPasses int
}

// ParamsFromConfig resolves generation parameters from a config, picking a
// clock-derived seed when none is set.
func ParamsFromConfig(cfg config.Config) Params {
	return Params{
		Seed:      cfg.ResolveSeed(),
		CellCount: cfg.CellCount,
		Radius:    cfg.Radius,
		MinSide:   cfg.MinSide,
		MaxSide:   cfg.MaxSide,
		MaxPasses: cfg.MaxPasses,
	}
}

// Run is one generator instance and its bookkeeping.
type Run struct {
	ID        string
	Params    Params
	Generator *world.Generator

	started  time.Time
	finished bool
}

// Driver creates and advances runs.
type Driver struct {
	logger  *slog.Logger
	metrics *metrics.Recorder
	tracer  trace.Tracer
}

// Option configures a Driver.
type Option func(*Driver)

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Driver) {
		d.logger = logger
	}
}

// WithMetrics records finished runs in the given recorder.
func WithMetrics(r *metrics.Recorder) Option {
	return func(d *Driver) {
		d.metrics = r
	}
}

// WithTracer overrides the tracer used for run spans.
func WithTracer(tracer trace.Tracer) Option {
	return func(d *Driver) {
		d.tracer = tracer
	}
}

// New creates a Driver. Without options it logs nowhere and records no metrics.
func New(opts ...Option) *Driver {
	d := &Driver{
		logger: logging.NewNop(),
		tracer: telemetry.Tracer("driver"),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Start seeds a new generator for p.
func (d *Driver) Start(p Params) (*Run, error) {
	g := world.New(world.WithSeed(p.Seed), world.WithMaxPasses(p.MaxPasses))
	if !g.Initialize(p.CellCount, p.Radius, p.MinSide, p.MaxSide) {
		return nil, fmt.Errorf("%w: cells=%d radius=%d sides=%d..%d",
			ErrInvalidParams, p.CellCount, p.Radius, p.MinSide, p.MaxSide)
	}

	run := &Run{
		ID:        uuid.NewString(),
		Params:    p,
		Generator: g,
		started:   time.Now(),
	}
	d.logger.Debug("generation started",
		"run_id", run.ID,
		"seed", p.Seed,
		"cells", p.CellCount,
		"rooms", g.RoomCount(),
	)
	return run, nil
}

// Step advances run by one unit of work and records it once it finishes.
func (d *Driver) Step(run *Run) world.Status {
	status := run.Generator.Step()
	if status == world.StatusDone {
		d.finish(run)
	}
	return status
}

// Generate starts a run and steps it to completion inside a traced span.
func (d *Driver) Generate(ctx context.Context, p Params) (*Run, error) {
	ctx, span := d.tracer.Start(ctx, "dungeon.run")
	defer span.End()

	run, err := d.Start(p)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(
		attribute.String("dungeon.run_id", run.ID),
		attribute.Int64("dungeon.seed", int64(p.Seed)),
	)

	if err := run.Generator.Generate(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		d.logger.Warn("generation cancelled", "run_id", run.ID, "error", err)
		return run, fmt.Errorf("run %s: %w", run.ID, err)
	}
	d.finish(run)
	return run, nil
}

// Pump steps run every interval until it finishes or ctx is done. onStep, if
// non-nil, is called after every step.
func (d *Driver) Pump(ctx context.Context, run *Run, interval time.Duration, onStep func(*Run, world.Status)) error {
	if interval <= 0 {
		interval = time.Millisecond
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			status := d.Step(run)
			if onStep != nil {
				onStep(run, status)
			}
			if status == world.StatusDone {
				return nil
			}
		}
	}
}

func (d *Driver) finish(run *Run) {
	if run.finished {
		return
	}
	run.finished = true

	g := run.Generator
	elapsed := time.Since(run.started)
	if !g.Converged() {
		d.logger.Warn("separation hit pass cap",
			"run_id", run.ID,
			"passes", g.Passes(),
			"max_passes", run.Params.MaxPasses,
		)
	}
	d.logger.Info("generation finished",
		"run_id", run.ID,
		"seed", run.Params.Seed,
		"passes", g.Passes(),
		"rooms", g.RoomCount(),
		"kept", g.KeptCount(),
		"corridors", len(g.Corridors()),
		"duration", elapsed,
	)

	if d.metrics != nil {
		d.metrics.Observe(metrics.Run{
			Passes:    g.Passes(),
			Rooms:     g.RoomCount(),
			Corridors: len(g.Corridors()),
			Kept:      g.KeptCount(),
			Converged: g.Converged(),
			Duration:  elapsed,
		})
	}
}
