// Package config loads anonymization job files. A job file carries the
// removal regions and filter options so a region set can be reviewed and
// reused across runs instead of being retyped on the command line.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/holubp/gpx-anonymizer/pkg/filter"
	"github.com/holubp/gpx-anonymizer/pkg/geo"
	"github.com/holubp/gpx-anonymizer/pkg/region"
)

// RectangleSpec describes a rectangle region by its two diagonal corners.
type RectangleSpec struct {
	Lat1 float64 `yaml:"lat1"`
	Lon1 float64 `yaml:"lon1"`
	Lat2 float64 `yaml:"lat2"`
	Lon2 float64 `yaml:"lon2"`
}

// CircleSpec describes a circle region by center and radius in meters.
type CircleSpec struct {
	Lat    float64 `yaml:"lat"`
	Lon    float64 `yaml:"lon"`
	Radius float64 `yaml:"radius"`
}

// Job holds a complete anonymization job description.
type Job struct {
	Rectangles []RectangleSpec `yaml:"rectangles"`
	Circles    []CircleSpec    `yaml:"circles"`

	// MaxStrayLength is the stray classification threshold in meters.
	MaxStrayLength float64 `yaml:"max_stray_length"`
	// MaxStrayVicinity overrides every region's default vicinity radius
	// when non-nil.
	MaxStrayVicinity *float64 `yaml:"max_stray_vicinity"`
	// RemoveStray drops stray segments from the output.
	RemoveStray bool `yaml:"remove_stray_segments"`

	// LogLevel is one of DEBUG, INFO, WARN, ERROR.
	LogLevel string `yaml:"log_level"`
}

// Default returns the job defaults applied before any file or flag values.
func Default() *Job {
	return &Job{
		MaxStrayLength: filter.DefaultMaxStrayLength,
		LogLevel:       "WARN",
	}
}

// Load reads a job file, layered over the defaults.
func Load(path string) (*Job, error) {
	job := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read job file: %w", err)
	}
	if err := yaml.Unmarshal(data, job); err != nil {
		return nil, fmt.Errorf("failed to parse job file: %w", err)
	}
	return job, nil
}

// Regions constructs the region list in declaration order: rectangles
// first, then circles, mirroring the command line ordering.
func (j *Job) Regions() ([]region.Region, error) {
	regions := make([]region.Region, 0, len(j.Rectangles)+len(j.Circles))

	for i, r := range j.Rectangles {
		rect, err := region.NewRectangle(
			geo.Point{Lat: r.Lat1, Lon: r.Lon1},
			geo.Point{Lat: r.Lat2, Lon: r.Lon2},
			j.MaxStrayVicinity,
		)
		if err != nil {
			return nil, fmt.Errorf("rectangle %d: %w", i+1, err)
		}
		regions = append(regions, rect)
	}
	for i, c := range j.Circles {
		circ, err := region.NewCircle(geo.Point{Lat: c.Lat, Lon: c.Lon}, c.Radius, j.MaxStrayVicinity)
		if err != nil {
			return nil, fmt.Errorf("circle %d: %w", i+1, err)
		}
		regions = append(regions, circ)
	}
	return regions, nil
}

// Options converts the job settings into filter options.
func (j *Job) Options() filter.Options {
	return filter.Options{
		MaxStrayLength: j.MaxStrayLength,
		RemoveStray:    j.RemoveStray,
	}
}
