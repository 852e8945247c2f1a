// Command gpx-anonymizer removes track points inside user-specified
// regions from a GPX file, splits the track at the gaps and optionally
// drops short stray segments left near the removal regions.
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/holubp/gpx-anonymizer/pkg/audit"
	"github.com/holubp/gpx-anonymizer/pkg/config"
	"github.com/holubp/gpx-anonymizer/pkg/filter"
	"github.com/holubp/gpx-anonymizer/pkg/gpxio"
	"github.com/holubp/gpx-anonymizer/pkg/logging"
	"github.com/holubp/gpx-anonymizer/pkg/version"
)

func main() {
	app := &cli.App{
		Name:    "gpx-anonymizer",
		Usage:   "Remove GPX track points inside removal regions and split tracks on the resulting discontinuities",
		Version: version.Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "input",
				Aliases: []string{"i"},
				Usage:   "Input GPX file (alternative to the first positional argument)",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output GPX file (alternative to the second positional argument)",
			},
			&cli.StringSliceFlag{
				Name:    "rect",
				Aliases: []string{"r"},
				Usage:   "Rectangle removal region as 'lat1,lon1,lat2,lon2' (two diagonal corners). May be repeated",
			},
			&cli.StringSliceFlag{
				Name:    "circle",
				Aliases: []string{"c"},
				Usage:   "Circle removal region as 'lat,lon,radius' (radius in meters). May be repeated",
			},
			&cli.StringFlag{
				Name:  "job",
				Usage: "YAML job file with regions and options; command-line flags override it",
			},
			&cli.BoolFlag{
				Name:    "remove-stray-segments",
				Aliases: []string{"s"},
				Usage:   "Remove stray segments (length <= --max-stray-length, within vicinity of a removal region)",
			},
			&cli.Float64Flag{
				Name:  "max-stray-length",
				Usage: "Maximum length in meters for a segment to be considered stray",
				Value: filter.DefaultMaxStrayLength,
			},
			&cli.Float64Flag{
				Name:  "max-stray-vicinity",
				Usage: "Vicinity in meters for stray detection; overrides the per-region defaults (circle radius, half the rectangle's shorter side)",
			},
			&cli.StringFlag{
				Name:  "audit-db",
				Usage: "SQLite database recording per-run statistics (optional)",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Enable verbose logging",
			},
			&cli.BoolFlag{
				Name:    "debug",
				Aliases: []string{"d"},
				Usage:   "Enable debug logging",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	started := time.Now()

	job, err := buildJob(c)
	if err != nil {
		return err
	}

	inputFile := c.Args().Get(0)
	if inputFile == "" {
		inputFile = c.String("input")
	}
	outputFile := c.Args().Get(1)
	if outputFile == "" {
		outputFile = c.String("output")
	}
	if inputFile == "" || outputFile == "" {
		return fmt.Errorf("input and output GPX files must be specified either as positional arguments or via --input/--output")
	}

	logger := logging.Setup(job.LogLevel, os.Stderr)

	regions, err := job.Regions()
	if err != nil {
		return err
	}
	if len(regions) == 0 {
		logger.Info("no removal regions specified, output will equal input")
	}
	for i, reg := range regions {
		logger.Info("removal region", "index", i+1, "region", reg.String(), "vicinity_m", reg.VicinityRadius())
	}

	trk, err := gpxio.Read(inputFile)
	if err != nil {
		return err
	}
	logger.Info("track loaded", "file", inputFile, "points", trk.NumPoints(), "segments", len(trk.Segments))

	res, err := filter.Run(trk, regions, job.Options())
	if err != nil {
		return err
	}
	filter.Report(logger, res)

	if err := gpxio.Write(outputFile, "gpx-anonymizer "+version.Version, res.Segments); err != nil {
		return err
	}
	logger.Info("track written", "file", outputFile, "segments", len(res.Segments))

	if dbPath := c.String("audit-db"); dbPath != "" {
		rec, err := audit.Open(dbPath)
		if err != nil {
			return err
		}
		defer rec.Close()
		if err := rec.RecordRun(c.Context, audit.NewRun(started, inputFile, outputFile, res)); err != nil {
			return fmt.Errorf("failed to record audit entry: %w", err)
		}
	}

	return nil
}

// buildJob layers the command line over the job file (if any) over the
// defaults.
func buildJob(c *cli.Context) (*config.Job, error) {
	job := config.Default()
	if path := c.String("job"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		job = loaded
	}

	for _, spec := range c.StringSlice("rect") {
		vals, err := parseFloats(spec, 4)
		if err != nil {
			return nil, fmt.Errorf("invalid --rect %q: %w", spec, err)
		}
		job.Rectangles = append(job.Rectangles, config.RectangleSpec{
			Lat1: vals[0], Lon1: vals[1], Lat2: vals[2], Lon2: vals[3],
		})
	}
	for _, spec := range c.StringSlice("circle") {
		vals, err := parseFloats(spec, 3)
		if err != nil {
			return nil, fmt.Errorf("invalid --circle %q: %w", spec, err)
		}
		job.Circles = append(job.Circles, config.CircleSpec{
			Lat: vals[0], Lon: vals[1], Radius: vals[2],
		})
	}

	if c.IsSet("max-stray-length") {
		job.MaxStrayLength = c.Float64("max-stray-length")
	}
	if c.IsSet("max-stray-vicinity") {
		v := c.Float64("max-stray-vicinity")
		job.MaxStrayVicinity = &v
	}
	if c.Bool("remove-stray-segments") {
		job.RemoveStray = true
	}

	// Flags outrank the job file's log level; debug outranks verbose.
	if c.Bool("debug") {
		job.LogLevel = "DEBUG"
	} else if c.Bool("verbose") {
		job.LogLevel = "INFO"
	}

	return job, nil
}

func parseFloats(spec string, want int) ([]float64, error) {
	parts := strings.Split(spec, ",")
	if len(parts) != want {
		return nil, fmt.Errorf("expected %d comma-separated values, got %d", want, len(parts))
	}
	vals := make([]float64, want)
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, fmt.Errorf("value %d: %w", i+1, err)
		}
		vals[i] = v
	}
	return vals, nil
}
