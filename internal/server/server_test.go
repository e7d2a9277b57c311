package server

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samdwyer/dungeongen/internal/driver"
	"github.com/samdwyer/dungeongen/internal/logging"
	"github.com/samdwyer/dungeongen/internal/metrics"
	"github.com/samdwyer/dungeongen/internal/telemetry"
)

var defaults = driver.Params{Seed: 1, CellCount: 20, Radius: 20, MinSide: 3, MaxSide: 8, MaxPasses: 10000}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	rec := metrics.New()
	d := driver.New(driver.WithMetrics(rec), driver.WithTracer(telemetry.NoopTracer()))
	srv := httptest.NewServer(NewHandler(d, rec, defaults, logging.NewNop()))
	t.Cleanup(srv.Close)
	return srv
}

func get(t *testing.T, srv *httptest.Server, path string) (*http.Response, string) {
	t.Helper()
	resp, err := http.Get(srv.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t)
	resp, body := get(t, srv, "/healthz")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok\n", body)
}

func TestDungeonIsReproducible(t *testing.T) {
	srv := newTestServer(t)

	resp1, body1 := get(t, srv, "/dungeon?seed=42&cells=5&radius=20&min=4&max=8")
	resp2, body2 := get(t, srv, "/dungeon?seed=42&cells=5&radius=20&min=4&max=8")

	require.Equal(t, http.StatusOK, resp1.StatusCode)
	assert.Equal(t, body1, body2)
	assert.NotEmpty(t, body1)
	assert.Equal(t, "42", resp1.Header.Get("X-Seed"))
	assert.NotEmpty(t, resp1.Header.Get("X-Run-Id"))
	assert.NotEqual(t, resp1.Header.Get("X-Run-Id"), resp2.Header.Get("X-Run-Id"))

	lines := strings.Split(strings.TrimSuffix(body1, "\n"), "\n")
	for _, line := range lines {
		assert.Equal(t, len([]rune(lines[0])), len([]rune(line)), "rows should have equal width")
	}
}

func TestDungeonBadRequest(t *testing.T) {
	srv := newTestServer(t)

	tests := []string{
		"/dungeon?cells=abc",
		"/dungeon?seed=-4",
		"/dungeon?cells=0",
		"/dungeon?min=9&max=3",
		"/dungeon?cells=100000",
		"/dungeon?cells=1&radius=1&min=4000000000&max=4000000000",
		"/dungeon?cells=1&radius=9223372036854775807&min=1&max=1",
		"/dungeon?cells=1&radius=1001",
		"/dungeon?min=3&max=65",
		"/dungeon/graph?radius=99999",
	}
	for _, path := range tests {
		resp, _ := get(t, srv, path)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, path)
	}
}

func TestDungeonAtLimits(t *testing.T) {
	srv := newTestServer(t)

	resp, body := get(t, srv, fmt.Sprintf("/dungeon?seed=9&cells=3&radius=%d&min=%d&max=%d", maxRadius, maxSide, maxSide))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, body)
}

func TestGraph(t *testing.T) {
	srv := newTestServer(t)
	resp, body := get(t, srv, "/dungeon/graph?seed=7")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.HasPrefix(body, "graph LR\n"))
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(t)
	get(t, srv, "/dungeon?seed=3")

	resp, body := get(t, srv, "/metrics")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "dungeongen_runs_total")
}
