// Package region defines the removal regions a track is filtered against.
// The set of region kinds is closed: rectangles and circles.
package region

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"

	"github.com/holubp/gpx-anonymizer/pkg/geo"
)

// Region is a geographic area whose contained track points are removed.
type Region interface {
	// Contains reports whether the point lies inside the removal area.
	Contains(p geo.Point) bool
	// VicinityRadius is the distance threshold (meters) used for stray
	// segment classification near this region.
	VicinityRadius() float64
	// InVicinity reports whether the point lies inside the removal area
	// expanded by the vicinity radius.
	InVicinity(p geo.Point) bool
	// String returns a short label for logs and reports.
	String() string
}

// Rectangle is an axis-aligned removal region defined by two diagonal
// corners, in either order.
type Rectangle struct {
	bound    orb.Bound
	vicinity float64
	expanded orb.Bound
}

// NewRectangle builds a rectangle from two diagonal corners. The default
// vicinity radius is half the shorter side; vicinityOverride, if non-nil,
// replaces it.
func NewRectangle(c1, c2 geo.Point, vicinityOverride *float64) (*Rectangle, error) {
	for _, c := range []geo.Point{c1, c2} {
		if err := geo.Validate(c); err != nil {
			return nil, fmt.Errorf("rectangle corner: %w", err)
		}
	}

	bound := orb.Bound{
		Min: orb.Point{math.Min(c1.Lon, c2.Lon), math.Min(c1.Lat, c2.Lat)},
		Max: orb.Point{math.Max(c1.Lon, c2.Lon), math.Max(c1.Lat, c2.Lat)},
	}

	// Side lengths measured along the rectangle midlines.
	midLat := (bound.Min[1] + bound.Max[1]) / 2
	midLon := (bound.Min[0] + bound.Max[0]) / 2
	width := geo.Distance(geo.Point{Lat: midLat, Lon: bound.Min[0]}, geo.Point{Lat: midLat, Lon: bound.Max[0]})
	height := geo.Distance(geo.Point{Lat: bound.Min[1], Lon: midLon}, geo.Point{Lat: bound.Max[1], Lon: midLon})

	vicinity := math.Min(width, height) / 2
	if vicinityOverride != nil {
		vicinity = *vicinityOverride
	}
	if vicinity < 0 {
		return nil, fmt.Errorf("rectangle vicinity must be non-negative, got %v", vicinity)
	}

	// The vicinity test uses the bound padded outward by the vicinity
	// radius converted to degrees at the rectangle center. This is a
	// planar approximation of "within vicinity meters of the rectangle";
	// good enough at track scale and consistent across corner orderings.
	dLat := geo.MetersToDegreesLat(vicinity)
	dLon := geo.MetersToDegreesLon(vicinity, midLat)
	expanded := orb.Bound{
		Min: orb.Point{bound.Min[0] - dLon, bound.Min[1] - dLat},
		Max: orb.Point{bound.Max[0] + dLon, bound.Max[1] + dLat},
	}

	return &Rectangle{bound: bound, vicinity: vicinity, expanded: expanded}, nil
}

// Contains reports whether the point lies inside the rectangle, borders
// inclusive.
func (r *Rectangle) Contains(p geo.Point) bool {
	return r.bound.Contains(orb.Point{p.Lon, p.Lat})
}

// VicinityRadius returns the configured or derived vicinity in meters.
func (r *Rectangle) VicinityRadius() float64 {
	return r.vicinity
}

// InVicinity reports whether the point lies inside the expanded rectangle.
func (r *Rectangle) InVicinity(p geo.Point) bool {
	return r.expanded.Contains(orb.Point{p.Lon, p.Lat})
}

func (r *Rectangle) String() string {
	return fmt.Sprintf("rectangle (%.6f, %.6f) to (%.6f, %.6f)",
		r.bound.Min[1], r.bound.Min[0], r.bound.Max[1], r.bound.Max[0])
}

// Circle is a removal region defined by a center and radius in meters.
type Circle struct {
	center   geo.Point
	radius   float64
	vicinity float64
}

// NewCircle builds a circle region. The default vicinity radius equals the
// circle radius; vicinityOverride, if non-nil, replaces it.
func NewCircle(center geo.Point, radiusMeters float64, vicinityOverride *float64) (*Circle, error) {
	if err := geo.Validate(center); err != nil {
		return nil, fmt.Errorf("circle center: %w", err)
	}
	if math.IsNaN(radiusMeters) || radiusMeters <= 0 {
		return nil, fmt.Errorf("circle radius must be positive, got %v", radiusMeters)
	}

	vicinity := radiusMeters
	if vicinityOverride != nil {
		vicinity = *vicinityOverride
	}
	if vicinity < 0 {
		return nil, fmt.Errorf("circle vicinity must be non-negative, got %v", vicinity)
	}

	return &Circle{center: center, radius: radiusMeters, vicinity: vicinity}, nil
}

// Contains reports whether the point lies within the circle radius,
// boundary inclusive.
func (c *Circle) Contains(p geo.Point) bool {
	return geo.Distance(p, c.center) <= c.radius
}

// VicinityRadius returns the configured or derived vicinity in meters.
func (c *Circle) VicinityRadius() float64 {
	return c.vicinity
}

// InVicinity reports whether the point lies within radius+vicinity of the
// center.
func (c *Circle) InVicinity(p geo.Point) bool {
	return geo.Distance(p, c.center) <= c.radius+c.vicinity
}

func (c *Circle) String() string {
	return fmt.Sprintf("circle center=(%.6f, %.6f) radius=%.2fm", c.center.Lat, c.center.Lon, c.radius)
}
