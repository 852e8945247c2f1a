// Package audit persists per-run anonymization statistics to SQLite, so a
// batch of track files can be reviewed after the fact without keeping logs.
// Only statistics are stored, never track points.
package audit

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Register driver

	"github.com/holubp/gpx-anonymizer/pkg/filter"
)

// Run is one recorded anonymization run.
type Run struct {
	StartedAt            time.Time
	InputFile            string
	OutputFile           string
	PointsIn             int
	PointsRemoved        int
	SegmentsOut          int
	StraySegmentsRemoved int
	Regions              []RegionEntry
}

// RegionEntry is the per-region slice of a run, in region input order.
type RegionEntry struct {
	Label            string
	PointsRemoved    int
	StrayCount       int
	StrayTotalLength float64
}

// NewRun builds a Run record from a filter result.
func NewRun(startedAt time.Time, inputFile, outputFile string, res *filter.Result) Run {
	run := Run{
		StartedAt:            startedAt,
		InputFile:            inputFile,
		OutputFile:           outputFile,
		PointsIn:             res.PointsIn,
		PointsRemoved:        res.PointsRemoved,
		SegmentsOut:          len(res.Segments),
		StraySegmentsRemoved: res.StraySegmentsRemoved,
	}
	for _, rs := range res.Regions {
		run.Regions = append(run.Regions, RegionEntry{
			Label:            rs.Region.String(),
			PointsRemoved:    rs.PointsRemoved,
			StrayCount:       rs.StrayCount,
			StrayTotalLength: rs.StrayTotalLength,
		})
	}
	return run
}

// Recorder persists run records.
type Recorder interface {
	RecordRun(ctx context.Context, run Run) error
	Close() error
}

// SQLiteRecorder implements Recorder on a local SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
}

// Open opens (creating if needed) the audit database and runs migrations.
func Open(path string) (*SQLiteRecorder, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create audit db dir: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open audit db: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping audit db: %w", err)
	}

	// Enable WAL mode and set busy timeout
	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA busy_timeout=30000;"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}

	// Single connection avoids SQLITE_BUSY on concurrent writes
	db.SetMaxOpenConns(1)

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			started_at DATETIME,
			input_file TEXT,
			output_file TEXT,
			points_in INTEGER,
			points_removed INTEGER,
			segments_out INTEGER,
			stray_segments_removed INTEGER,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE TABLE IF NOT EXISTS run_regions (
			run_id INTEGER,
			idx INTEGER,
			label TEXT,
			points_removed INTEGER,
			stray_count INTEGER,
			stray_total_length REAL,
			PRIMARY KEY (run_id, idx)
		);`,
	}

	for _, q := range queries {
		if _, err := r.db.Exec(q); err != nil {
			return fmt.Errorf("exec error: %w query: %s", err, q)
		}
	}
	return nil
}

// RecordRun inserts the run and its region rows in one transaction.
func (r *SQLiteRecorder) RecordRun(ctx context.Context, run Run) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin audit tx: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (started_at, input_file, output_file, points_in, points_removed, segments_out, stray_segments_removed)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.StartedAt.UTC().Format("2006-01-02 15:04:05"),
		run.InputFile, run.OutputFile,
		run.PointsIn, run.PointsRemoved, run.SegmentsOut, run.StraySegmentsRemoved,
	)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get run id: %w", err)
	}

	for i, re := range run.Regions {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO run_regions (run_id, idx, label, points_removed, stray_count, stray_total_length)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			runID, i+1, re.Label, re.PointsRemoved, re.StrayCount, re.StrayTotalLength,
		); err != nil {
			return fmt.Errorf("failed to insert run region %d: %w", i+1, err)
		}
	}

	return tx.Commit()
}

// Close closes the underlying database.
func (r *SQLiteRecorder) Close() error {
	return r.db.Close()
}
