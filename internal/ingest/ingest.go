// Package ingest loads camera event exports from CSV files into the event
// store. Files arrive from the camera pipeline with one row per appearance;
// dwell time is derived from the start and end timestamps of each row.
package ingest

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/visionflow-analytics/visitor-dashboard-tui/internal/logger"
	"github.com/visionflow-analytics/visitor-dashboard-tui/internal/models"
)

// requiredColumns must all be present in the CSV header.
var requiredColumns = []string{
	"person_id",
	"camera_id",
	"camera_description",
	"utc_time_started_readable",
	"utc_time_ended_readable",
}

// timestampLayouts are tried in order when parsing the readable columns.
var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999999",
}

// Store receives parsed event batches.
type Store interface {
	InsertEvents(ctx context.Context, events []models.RawEvent) error
}

// Result summarizes one file import.
type Result struct {
	Path          string
	TotalRows     int
	ProcessedRows int
	SkippedRows   int
	Errors        []string
}

// batchSize bounds the number of rows per insert transaction.
const batchSize = 1000

// Importer reads CSV files and feeds them to a store.
type Importer struct {
	store Store
}

func New(store Store) *Importer {
	return &Importer{store: store}
}

// ImportFile parses one CSV file and inserts its rows. Malformed rows are
// skipped and counted, never fatal; only an unreadable file or a header
// missing required columns aborts the import.
func (im *Importer) ImportFile(ctx context.Context, path string) (Result, error) {
	log := logger.With("file", filepath.Base(path))

	f, err := os.Open(path)
	if err != nil {
		return Result{Path: path}, fmt.Errorf("failed to open csv: %w", err)
	}
	defer func() { _ = f.Close() }()

	res, err := im.Import(ctx, f)
	res.Path = path
	if err != nil {
		log.Error("csv import failed", "error", err)
	}
	return res, err
}

// Import parses CSV data from a reader.
func (im *Importer) Import(ctx context.Context, r io.Reader) (Result, error) {
	var res Result

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return res, fmt.Errorf("failed to read csv header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(strings.ToLower(name))] = i
	}

	var missing []string
	for _, col := range requiredColumns {
		if _, ok := columns[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return res, fmt.Errorf("csv missing required columns: %s", strings.Join(missing, ", "))
	}

	batch := make([]models.RawEvent, 0, batchSize)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := im.store.InsertEvents(ctx, batch); err != nil {
			return err
		}
		res.ProcessedRows += len(batch)
		batch = batch[:0]
		return nil
	}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			res.TotalRows++
			res.SkippedRows++
			res.Errors = append(res.Errors, fmt.Sprintf("row %d: %v", res.TotalRows, err))
			continue
		}

		res.TotalRows++

		ev, rowErr := parseRow(columns, record)
		if rowErr != nil {
			res.SkippedRows++
			res.Errors = append(res.Errors, fmt.Sprintf("row %d: %v", res.TotalRows, rowErr))
			continue
		}

		batch = append(batch, ev)
		if len(batch) >= batchSize {
			if err := flush(); err != nil {
				return res, fmt.Errorf("failed to insert batch: %w", err)
			}
		}
	}

	if err := flush(); err != nil {
		return res, fmt.Errorf("failed to insert batch: %w", err)
	}

	logger.Info("csv import finished",
		"total", res.TotalRows, "processed", res.ProcessedRows, "skipped", res.SkippedRows)
	return res, nil
}

// parseRow converts one CSV record into an event. The row timestamp is the
// appearance start; dwell is end minus start, clamped to zero when the end
// column is absent, unparsable or earlier than the start.
func parseRow(columns map[string]int, record []string) (models.RawEvent, error) {
	field := func(name string) string {
		idx, ok := columns[name]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	personID := field("person_id")
	if personID == "" {
		return models.RawEvent{}, fmt.Errorf("empty person_id")
	}

	started, err := parseTimestamp(field("utc_time_started_readable"))
	if err != nil {
		return models.RawEvent{}, fmt.Errorf("bad start time: %w", err)
	}

	var dwell float64
	if ended, err := parseTimestamp(field("utc_time_ended_readable")); err == nil {
		if d := ended.Sub(started).Seconds(); d > 0 {
			dwell = d
		}
	}

	return models.RawEvent{
		Timestamp:    started,
		PersonID:     personID,
		CameraID:     field("camera_id"),
		Camera:       field("camera_description"),
		Store:        field("camera_group"),
		Department:   field("department"),
		Division:     field("division"),
		Gender:       models.ParseGender(field("gender_outcome")),
		AgeGroup:     demographicOrOther(field("age_group_outcome")),
		DwellSeconds: dwell,
	}, nil
}

// demographicOrOther maps blank demographic tags to the catch-all bucket.
func demographicOrOther(v string) string {
	if v == "" {
		return "other"
	}
	return v
}

func parseTimestamp(v string) (time.Time, error) {
	if v == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", v)
}
