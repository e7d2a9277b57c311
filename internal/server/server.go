// Package server exposes dungeon generation over HTTP.
package server

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/samdwyer/dungeongen/internal/driver"
	"github.com/samdwyer/dungeongen/internal/graph"
	"github.com/samdwyer/dungeongen/internal/metrics"
	"github.com/samdwyer/dungeongen/internal/world"
)

// Per-request limits keep the separation work and the rasterized map small.
const (
	maxCells  = 500
	maxRadius = 1000
	maxSide   = 64
)

// Server renders dungeons on request.
type Server struct {
	driver   *driver.Driver
	metrics  *metrics.Recorder
	defaults driver.Params
	logger   *slog.Logger
}

// NewHandler creates the HTTP handler. Query parameters override defaults.
func NewHandler(d *driver.Driver, rec *metrics.Recorder, defaults driver.Params, logger *slog.Logger) http.Handler {
	s := &Server{driver: d, metrics: rec, defaults: defaults, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok\n"))
	})
	r.Get("/dungeon", s.handleMap)
	r.Get("/dungeon/graph", s.handleGraph)
	if rec != nil {
		r.Handle("/metrics", rec.Handler())
	}
	return r
}

// handleMap responds with the rasterized map as plain text.
func (s *Server) handleMap(w http.ResponseWriter, r *http.Request) {
	run, ok := s.generate(w, r)
	if !ok {
		return
	}
	grid := run.Generator.Rasterize(world.DefaultTileTable)
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(grid.String()))
}

// handleGraph responds with the room connection graph as Mermaid text.
func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	run, ok := s.generate(w, r)
	if !ok {
		return
	}
	g := run.Generator
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(graph.GenerateMermaid(g.Cells(), g.Connections(), &graph.Overlay{KeptFiller: true, Highlight: -1})))
}

// generate runs a dungeon for the request, writing an error response on failure.
func (s *Server) generate(w http.ResponseWriter, r *http.Request) (*driver.Run, bool) {
	p, err := s.params(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return nil, false
	}

	run, err := s.driver.Generate(r.Context(), p)
	if err != nil {
		s.logger.Warn("generation request failed", "error", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return nil, false
	}
	w.Header().Set("X-Run-Id", run.ID)
	w.Header().Set("X-Seed", strconv.FormatUint(p.Seed, 10))
	return run, true
}

// params reads generation parameters from the query string.
func (s *Server) params(r *http.Request) (driver.Params, error) {
	p := s.defaults
	q := r.URL.Query()

	ints := []struct {
		name string
		dst  *int
	}{
		{"cells", &p.CellCount},
		{"radius", &p.Radius},
		{"min", &p.MinSide},
		{"max", &p.MaxSide},
	}
	for _, f := range ints {
		v := q.Get(f.name)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return p, fmt.Errorf("invalid %s: %q", f.name, v)
		}
		*f.dst = n
	}
	if v := q.Get("seed"); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return p, fmt.Errorf("invalid seed: %q", v)
		}
		p.Seed = seed
	}

	limits := []struct {
		name  string
		value int
		max   int
	}{
		{"cells", p.CellCount, maxCells},
		{"radius", p.Radius, maxRadius},
		{"min", p.MinSide, maxSide},
		{"max", p.MaxSide, maxSide},
	}
	for _, l := range limits {
		if l.value > l.max {
			return p, fmt.Errorf("%s must be at most %d, got %d", l.name, l.max, l.value)
		}
	}
	return p, nil
}
