// Package track models an ordered GPS track as segments of points and
// rebuilds the segment partition when points are removed.
package track

import (
	"fmt"
	"time"

	"github.com/holubp/gpx-anonymizer/pkg/geo"
)

// Point is a track point with its position in the original recording order.
type Point struct {
	geo.Point
	// Index is the point's position in the flattened original track.
	Index int
	// Elevation in meters and timestamp are carried through untouched
	// for serialization.
	Elevation float64
	Time      time.Time
}

// Segment is an ordered run of points contiguous in original track order.
type Segment []Point

// Length returns the sum of consecutive-point haversine distances in meters.
// A segment with fewer than two points has length zero.
func (s Segment) Length() float64 {
	var total float64
	for i := 1; i < len(s); i++ {
		total += geo.Distance(s[i-1].Point, s[i].Point)
	}
	return total
}

// Track is an ordered sequence of segments.
type Track struct {
	Segments []Segment
}

// New builds a track from pre-split segments, assigning original-order
// indices and validating every coordinate. Caller-supplied indices are
// overwritten; empty source segments are dropped.
func New(segments []Segment) (*Track, error) {
	t := &Track{}
	idx := 0
	for _, seg := range segments {
		out := make(Segment, 0, len(seg))
		for _, p := range seg {
			if err := geo.Validate(p.Point); err != nil {
				return nil, fmt.Errorf("track point %d: %w", idx, err)
			}
			p.Index = idx
			out = append(out, p)
			idx++
		}
		if len(out) > 0 {
			t.Segments = append(t.Segments, out)
		}
	}
	return t, nil
}

// NumPoints returns the total number of points across all segments.
func (t *Track) NumPoints() int {
	n := 0
	for _, s := range t.Segments {
		n += len(s)
	}
	return n
}

// Flatten returns all points in original order together with a break mask:
// breaks[i] is true when point i starts a new segment. breaks[0] is always
// true for a non-empty track.
func (t *Track) Flatten() (points []Point, breaks []bool) {
	for _, seg := range t.Segments {
		for i, p := range seg {
			points = append(points, p)
			breaks = append(breaks, i == 0)
		}
	}
	return points, breaks
}

// Rebuild partitions the points into segments: consecutive kept points form
// one segment, a dropped point (or a pre-existing break) forces a split.
// Zero-length segments, meaning empty ones or a single surviving point with
// no neighbor, are omitted. Rebuild is a pure function of its inputs:
// applying it twice with the same mask yields the same partition.
func Rebuild(points []Point, keep, breaks []bool) []Segment {
	var segments []Segment
	var current Segment

	flush := func() {
		if len(current) >= 2 {
			segments = append(segments, current)
		}
		current = nil
	}

	for i, p := range points {
		if breaks != nil && breaks[i] {
			flush()
		}
		if !keep[i] {
			flush()
			continue
		}
		current = append(current, p)
	}
	flush()

	return segments
}
