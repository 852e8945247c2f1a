package filter

import (
	"log/slog"
	"slices"
)

// Report logs the run statistics in region input order. The summary tier
// goes to Info; per-region stray length breakdowns go to Debug.
func Report(logger *slog.Logger, res *Result) {
	logger.Info("filtering complete",
		"points_in", res.PointsIn,
		"points_removed", res.PointsRemoved,
		"segments_out", len(res.Segments),
		"stray_segments_removed", res.StraySegmentsRemoved,
	)

	for i, rs := range res.Regions {
		logger.Info("region stats",
			"region", rs.Region.String(),
			"index", i+1,
			"points_removed", rs.PointsRemoved,
			"stray_count", rs.StrayCount,
			"stray_total_length_m", rs.StrayTotalLength,
		)

		if rs.StrayCount == 0 {
			continue
		}
		logger.Debug("stray segment lengths",
			"region", rs.Region.String(),
			"index", i+1,
			"min_m", slices.Min(rs.StrayLengths),
			"max_m", slices.Max(rs.StrayLengths),
			"avg_m", rs.StrayTotalLength/float64(rs.StrayCount),
			"lengths_m", rs.StrayLengths,
		)
	}
}
