package gpxio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/holubp/gpx-anonymizer/pkg/geo"
	"github.com/holubp/gpx-anonymizer/pkg/track"
)

const sampleGPX = `<?xml version="1.0" encoding="UTF-8"?>
<gpx xmlns="http://www.topografix.com/GPX/1/1" version="1.1" creator="test">
  <trk>
    <trkseg>
      <trkpt lat="40.5" lon="-74.5"><ele>12.5</ele></trkpt>
      <trkpt lat="40.5002" lon="-74.5"><ele>13.0</ele></trkpt>
    </trkseg>
    <trkseg>
      <trkpt lat="40.51" lon="-74.5"><ele>14.0</ele></trkpt>
    </trkseg>
  </trk>
</gpx>
`

func writeSample(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "in.gpx")
	require.NoError(t, os.WriteFile(path, []byte(sampleGPX), 0o644))
	return path
}

func TestReadSplitsOnTrkseg(t *testing.T) {
	trk, err := Read(writeSample(t))
	require.NoError(t, err)

	require.Len(t, trk.Segments, 2)
	require.Len(t, trk.Segments[0], 2)
	require.Len(t, trk.Segments[1], 1)

	first := trk.Segments[0][0]
	assert.Equal(t, geo.Point{Lat: 40.5, Lon: -74.5}, first.Point)
	assert.Equal(t, 12.5, first.Elevation)
	assert.Equal(t, 0, first.Index)
	assert.Equal(t, 2, trk.Segments[1][0].Index)
}

func TestReadMissingFile(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "nope.gpx"))
	assert.Error(t, err)
}

func TestReadRejectsMalformedCoordinates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.gpx")
	doc := `<?xml version="1.0" encoding="UTF-8"?>
<gpx xmlns="http://www.topografix.com/GPX/1/1" version="1.1" creator="test">
  <trk><trkseg><trkpt lat="95.0" lon="-74.5"></trkpt></trkseg></trk>
</gpx>
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	_, err := Read(path)
	assert.ErrorIs(t, err, geo.ErrMalformedCoordinate)
}

func TestWriteRoundTrip(t *testing.T) {
	segments := []track.Segment{
		{
			{Point: geo.Point{Lat: 40.5, Lon: -74.5}, Elevation: 12.5},
			{Point: geo.Point{Lat: 40.5002, Lon: -74.5}, Elevation: 13.0},
		},
		{
			{Point: geo.Point{Lat: 40.51, Lon: -74.5}, Elevation: 14.0},
			{Point: geo.Point{Lat: 40.5102, Lon: -74.5}, Elevation: 14.5},
		},
	}

	path := filepath.Join(t.TempDir(), "out.gpx")
	require.NoError(t, Write(path, "gpx-anonymizer-test", segments))

	trk, err := Read(path)
	require.NoError(t, err)

	require.Len(t, trk.Segments, 2)
	for i, seg := range trk.Segments {
		require.Len(t, seg, len(segments[i]))
		for j, p := range seg {
			assert.Equal(t, segments[i][j].Point, p.Point)
			assert.Equal(t, segments[i][j].Elevation, p.Elevation)
		}
	}
}
