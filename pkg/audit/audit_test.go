package audit

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/holubp/gpx-anonymizer/pkg/filter"
	"github.com/holubp/gpx-anonymizer/pkg/geo"
	"github.com/holubp/gpx-anonymizer/pkg/region"
)

func TestRecordRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.db")
	rec, err := Open(path)
	require.NoError(t, err)
	defer rec.Close()

	run := Run{
		StartedAt:     time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC),
		InputFile:     "in.gpx",
		OutputFile:    "out.gpx",
		PointsIn:      100,
		PointsRemoved: 7,
		SegmentsOut:   3,
		Regions: []RegionEntry{
			{Label: "circle center=(40.500000, -74.500000) radius=100.00m", PointsRemoved: 7, StrayCount: 1, StrayTotalLength: 5.0},
		},
	}
	require.NoError(t, rec.RecordRun(context.Background(), run))

	var count int
	require.NoError(t, rec.db.QueryRow(`SELECT count(*) FROM runs`).Scan(&count))
	assert.Equal(t, 1, count)

	var pointsRemoved int
	var label string
	require.NoError(t, rec.db.QueryRow(
		`SELECT label, points_removed FROM run_regions WHERE idx = 1`).Scan(&label, &pointsRemoved))
	assert.Equal(t, run.Regions[0].Label, label)
	assert.Equal(t, 7, pointsRemoved)
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.db")

	rec, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, rec.RecordRun(context.Background(), Run{InputFile: "a.gpx"}))
	require.NoError(t, rec.Close())

	// Reopening an existing database must not fail or lose rows.
	rec, err = Open(path)
	require.NoError(t, err)
	defer rec.Close()

	var count int
	require.NoError(t, rec.db.QueryRow(`SELECT count(*) FROM runs`).Scan(&count))
	assert.Equal(t, 1, count)
}

func TestNewRun(t *testing.T) {
	circ, err := region.NewCircle(geo.Point{Lat: 40.5, Lon: -74.5}, 100, nil)
	require.NoError(t, err)

	res := &filter.Result{
		PointsIn:      10,
		PointsRemoved: 4,
		Regions: []filter.RegionStats{
			{Region: circ, PointsRemoved: 4, StrayCount: 2, StrayTotalLength: 8.5},
		},
	}

	started := time.Now()
	run := NewRun(started, "in.gpx", "out.gpx", res)

	assert.Equal(t, started, run.StartedAt)
	assert.Equal(t, 10, run.PointsIn)
	assert.Equal(t, 4, run.PointsRemoved)
	require.Len(t, run.Regions, 1)
	assert.Equal(t, circ.String(), run.Regions[0].Label)
	assert.Equal(t, 2, run.Regions[0].StrayCount)
	assert.Equal(t, 8.5, run.Regions[0].StrayTotalLength)
}
