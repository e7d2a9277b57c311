package metrics

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserve(t *testing.T) {
	r := New()
	r.Observe(Run{Passes: 12, Rooms: 5, Corridors: 8, Kept: 9, Converged: true, Duration: time.Millisecond})
	r.Observe(Run{Passes: 100, Rooms: 3, Corridors: 4, Kept: 3, Converged: false, Duration: time.Millisecond})

	assert.Equal(t, 1.0, testutil.ToFloat64(r.runs.WithLabelValues("true")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.runs.WithLabelValues("false")))
	assert.Equal(t, 3.0, testutil.ToFloat64(r.rooms))
	assert.Equal(t, 4.0, testutil.ToFloat64(r.corridors))
	assert.Equal(t, 3.0, testutil.ToFloat64(r.kept))
	assert.Equal(t, 1, testutil.CollectAndCount(r.passes))
}

func TestHandler(t *testing.T) {
	r := New()
	r.Observe(Run{Passes: 1, Rooms: 2, Converged: true})

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	require.Equal(t, 200, rec.Code)
	assert.Contains(t, rec.Body.String(), "dungeongen_runs_total{converged=\"true\"} 1")
	assert.Contains(t, rec.Body.String(), "dungeongen_rooms 2")
}
