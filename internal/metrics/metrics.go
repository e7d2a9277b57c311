// Package metrics exposes Prometheus collectors for dungeon generation runs.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder owns a private registry and the generation collectors.
type Recorder struct {
	registry *prometheus.Registry

	runs      *prometheus.CounterVec
	passes    prometheus.Histogram
	duration  prometheus.Histogram
	rooms     prometheus.Gauge
	corridors prometheus.Gauge
	kept      prometheus.Gauge
}

// Run summarizes one finished generation.
type Run struct {
	Passes    int
	Rooms     int
	Corridors int
	Kept      int
	Converged bool
	Duration  time.Duration
}

// New creates a Recorder with all collectors registered.
func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dungeongen_runs_total",
				Help: "Total number of finished generation runs",
			},
			[]string{"converged"},
		),
		passes: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "dungeongen_separation_passes",
			Help:    "Separation passes needed per run",
			Buckets: prometheus.ExponentialBuckets(1, 2, 14),
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "dungeongen_generation_seconds",
			Help:    "Wall time spent stepping a run to completion",
			Buckets: prometheus.DefBuckets,
		}),
		rooms: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "dungeongen_rooms",
			Help: "Rooms in the most recent run",
		}),
		corridors: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "dungeongen_corridors",
			Help: "Corridor segments in the most recent run",
		}),
		kept: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "dungeongen_kept_cells",
			Help: "Cells kept in the most recent run",
		}),
	}
	r.registry.MustRegister(r.runs, r.passes, r.duration, r.rooms, r.corridors, r.kept)
	return r
}

// Observe records a finished run.
func (r *Recorder) Observe(run Run) {
	r.runs.WithLabelValues(strconv.FormatBool(run.Converged)).Inc()
	r.passes.Observe(float64(run.Passes))
	r.duration.Observe(run.Duration.Seconds())
	r.rooms.Set(float64(run.Rooms))
	r.corridors.Set(float64(run.Corridors))
	r.kept.Set(float64(run.Kept))
}

// Registry returns the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
