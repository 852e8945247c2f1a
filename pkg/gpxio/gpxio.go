// Package gpxio reads and writes GPX files, converting between the on-disk
// document and the in-memory track model.
package gpxio

import (
	"encoding/xml"
	"fmt"
	"os"

	gpx "github.com/twpayne/go-gpx"

	"github.com/holubp/gpx-anonymizer/pkg/geo"
	"github.com/holubp/gpx-anonymizer/pkg/track"
)

// Read parses the GPX file at path and flattens all tracks into one track
// model. The source <trkseg> boundaries become the initial segment splits.
func Read(path string) (*track.Track, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gpx: %w", err)
	}
	defer f.Close()

	doc, err := gpx.Read(f)
	if err != nil {
		return nil, fmt.Errorf("parse gpx %s: %w", path, err)
	}

	var segments []track.Segment
	for _, trk := range doc.Trk {
		for _, seg := range trk.TrkSeg {
			s := make(track.Segment, 0, len(seg.TrkPt))
			for _, pt := range seg.TrkPt {
				s = append(s, track.Point{
					Point:     geo.Point{Lat: pt.Lat, Lon: pt.Lon},
					Elevation: pt.Ele,
					Time:      pt.Time,
				})
			}
			segments = append(segments, s)
		}
	}

	trk, err := track.New(segments)
	if err != nil {
		return nil, fmt.Errorf("gpx %s: %w", path, err)
	}
	return trk, nil
}

// Write serializes the segments as a single <trk> GPX 1.1 document at path.
func Write(path, creator string, segments []track.Segment) error {
	trkSegs := make([]*gpx.TrkSegType, 0, len(segments))
	for _, seg := range segments {
		ts := &gpx.TrkSegType{TrkPt: make([]*gpx.WptType, 0, len(seg))}
		for _, p := range seg {
			ts.TrkPt = append(ts.TrkPt, &gpx.WptType{
				Lat:  p.Lat,
				Lon:  p.Lon,
				Ele:  p.Elevation,
				Time: p.Time,
			})
		}
		trkSegs = append(trkSegs, ts)
	}

	doc := &gpx.GPX{
		Version: "1.1",
		Creator: creator,
		Trk:     []*gpx.TrkType{{TrkSeg: trkSegs}},
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create gpx: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(xml.Header); err != nil {
		return fmt.Errorf("write gpx header: %w", err)
	}
	if err := doc.WriteIndent(f, "", "  "); err != nil {
		return fmt.Errorf("write gpx %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close gpx: %w", err)
	}
	return nil
}
