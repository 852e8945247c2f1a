// Package filter removes track points inside removal regions, re-splits the
// track at the resulting gaps and classifies stray segments near each region.
package filter

import (
	"errors"

	"github.com/holubp/gpx-anonymizer/pkg/region"
	"github.com/holubp/gpx-anonymizer/pkg/track"
)

// DefaultMaxStrayLength is the stray classification threshold in meters used
// when the caller does not specify one.
const DefaultMaxStrayLength = 10.0

// Options control a filter run.
type Options struct {
	// MaxStrayLength is the maximum length (meters) for a segment to be
	// considered stray.
	MaxStrayLength float64
	// RemoveStray drops stray segments from the output instead of only
	// counting them.
	RemoveStray bool
}

// DefaultOptions returns the options used when nothing is specified.
func DefaultOptions() Options {
	return Options{MaxStrayLength: DefaultMaxStrayLength}
}

// RegionStats holds the per-region removal and stray statistics.
type RegionStats struct {
	// Region is the region these stats belong to.
	Region region.Region
	// PointsRemoved counts the original track points contained in the
	// region. Overlapping regions each count a shared point; a point is
	// still removed from the track only once.
	PointsRemoved int
	// StrayCount is the number of segments classified stray for this
	// region during its pass.
	StrayCount int
	// StrayTotalLength is the summed length in meters of those segments.
	StrayTotalLength float64
	// StrayLengths holds the individual stray segment lengths, for the
	// detailed report tier.
	StrayLengths []float64
}

// Result is the outcome of a filter run.
type Result struct {
	// Regions holds per-region stats in region input order.
	Regions []RegionStats
	// Segments is the final partition of surviving points.
	Segments []track.Segment
	// PointsIn is the number of points in the input track.
	PointsIn int
	// PointsRemoved is the total number of points missing from the
	// output, whatever pass removed them.
	PointsRemoved int
	// StraySegmentsRemoved counts segments dropped by stray removal.
	StraySegmentsRemoved int
}

// Run filters the track against the regions, processed strictly in input
// order. Each region's pass removes its contained points, rebuilds the
// segment partition, then classifies (and optionally removes) stray
// segments near that region before the next region runs. Later regions
// therefore see the track as mutated by earlier ones, while containment
// statistics always count against the original point set.
func Run(trk *track.Track, regions []region.Region, opts Options) (*Result, error) {
	if trk == nil {
		return nil, errors.New("nil track")
	}

	points, breaks := trk.Flatten()

	res := &Result{
		Regions:  make([]RegionStats, 0, len(regions)),
		Segments: trk.Segments,
		PointsIn: len(points),
	}

	if len(regions) == 0 {
		// No-op pass-through: output equals input.
		return res, nil
	}

	keep := make([]bool, len(points))
	for i := range keep {
		keep[i] = true
	}
	segments := track.Rebuild(points, keep, breaks)

	for _, reg := range regions {
		stats := RegionStats{Region: reg}

		changed := false
		for i, p := range points {
			if !reg.Contains(p.Point) {
				continue
			}
			stats.PointsRemoved++
			if keep[i] {
				keep[i] = false
				changed = true
			}
		}
		if changed {
			segments = track.Rebuild(points, keep, breaks)
		}

		var strayIdx []int
		for si, seg := range segments {
			length := seg.Length()
			if length > opts.MaxStrayLength {
				continue
			}
			for _, p := range seg {
				if reg.InVicinity(p.Point) {
					stats.StrayCount++
					stats.StrayTotalLength += length
					stats.StrayLengths = append(stats.StrayLengths, length)
					strayIdx = append(strayIdx, si)
					break
				}
			}
		}

		if opts.RemoveStray && len(strayIdx) > 0 {
			for _, si := range strayIdx {
				for _, p := range segments[si] {
					keep[p.Index] = false
				}
			}
			res.StraySegmentsRemoved += len(strayIdx)
			segments = track.Rebuild(points, keep, breaks)
		}

		res.Regions = append(res.Regions, stats)
	}

	res.Segments = segments

	surviving := 0
	for _, seg := range segments {
		surviving += len(seg)
	}
	res.PointsRemoved = res.PointsIn - surviving

	return res, nil
}
