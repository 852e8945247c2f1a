package geo

import (
	"errors"
	"fmt"
	"math"
)

// ErrMalformedCoordinate is returned when a latitude/longitude pair is
// non-finite or outside the valid degree range.
var ErrMalformedCoordinate = errors.New("malformed coordinate")

// Point represents a geographic coordinate.
type Point struct {
	Lat float64
	Lon float64
}

// Validate checks that the point carries finite, in-range coordinates.
func Validate(p Point) error {
	if math.IsNaN(p.Lat) || math.IsInf(p.Lat, 0) || math.IsNaN(p.Lon) || math.IsInf(p.Lon, 0) {
		return fmt.Errorf("%w: non-finite (%v, %v)", ErrMalformedCoordinate, p.Lat, p.Lon)
	}
	if p.Lat < -90 || p.Lat > 90 {
		return fmt.Errorf("%w: latitude %v out of range [-90, 90]", ErrMalformedCoordinate, p.Lat)
	}
	if p.Lon < -180 || p.Lon > 180 {
		return fmt.Errorf("%w: longitude %v out of range [-180, 180]", ErrMalformedCoordinate, p.Lon)
	}
	return nil
}

// Distance calculates the Haversine distance between two points in meters.
func Distance(p1, p2 Point) float64 {
	const R = 6371000 // Earth radius in meters
	dLat := (p2.Lat - p1.Lat) * (math.Pi / 180.0)
	dLon := (p2.Lon - p1.Lon) * (math.Pi / 180.0)
	lat1 := p1.Lat * (math.Pi / 180.0)
	lat2 := p2.Lat * (math.Pi / 180.0)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1)*math.Cos(lat2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return R * c
}

// MetersToDegreesLat converts a distance in meters to latitude degrees.
func MetersToDegreesLat(meters float64) float64 {
	return meters / 111111.0
}

// MetersToDegreesLon converts a distance in meters to longitude degrees at
// the given latitude. Near the poles the cosine collapses; clamp to avoid
// division blowing up for tracks recorded at extreme latitudes.
func MetersToDegreesLon(meters, lat float64) float64 {
	cosLat := math.Cos(lat * (math.Pi / 180.0))
	if cosLat < 1e-6 {
		cosLat = 1e-6
	}
	return meters / (111111.0 * cosLat)
}
