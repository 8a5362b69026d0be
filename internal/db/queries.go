package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/visionflow-analytics/visitor-dashboard-tui/internal/models"
)

// timeLayout is the DATETIME text format stored in sqlite. Lexicographic
// order equals chronological order, so range comparisons work on the raw
// column.
const timeLayout = "2006-01-02 15:04:05"

// optionCap bounds the size of any option list.
const optionCap = 500

// levelColumn maps a hierarchy level to its column.
func levelColumn(level models.Level) string {
	switch level {
	case models.LevelDivision:
		return "division"
	case models.LevelDepartment:
		return "department"
	case models.LevelStore:
		return "camera_group"
	default:
		return "camera_description"
	}
}

// scopeConditions builds WHERE fragments for every constrained level below
// max (exclusive). Pass models.LevelCount to apply the whole filter.
func scopeConditions(filter models.LocationFilter, max models.Level) (conds []string, args []any) {
	for l := models.LevelDivision; l < max; l++ {
		if v := filter.Get(l); v != "" {
			conds = append(conds, levelColumn(l)+" = ?")
			args = append(args, v)
		}
	}
	return conds, args
}

// InsertEvents stores a batch of events in one transaction.
func (db *DB) InsertEvents(ctx context.Context, events []models.RawEvent) error {
	if len(events) == 0 {
		return nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO camera_events (
			timestamp, person_id, camera_id, camera_description, camera_group,
			department, division, gender_outcome, age_group_outcome, dwell_seconds
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, ev := range events {
		_, err := stmt.ExecContext(ctx,
			ev.Timestamp.UTC().Format(timeLayout),
			ev.PersonID,
			ev.CameraID,
			ev.Camera,
			ev.Store,
			ev.Department,
			ev.Division,
			string(ev.Gender),
			ev.AgeGroup,
			ev.DwellSeconds,
		)
		if err != nil {
			return fmt.Errorf("failed to insert event: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit events: %w", err)
	}
	return nil
}

// FetchEvents returns the events matching a location filter inside a date
// range, ordered by timestamp.
func (db *DB) FetchEvents(ctx context.Context, filter models.LocationFilter, r models.DateRange) ([]models.RawEvent, error) {
	conds := []string{"timestamp >= ?", "timestamp <= ?"}
	args := []any{r.Start.UTC().Format(timeLayout), r.End.UTC().Format(timeLayout)}

	scopeConds, scopeArgs := scopeConditions(filter, models.LevelCount)
	conds = append(conds, scopeConds...)
	args = append(args, scopeArgs...)

	query := `
		SELECT timestamp, person_id, camera_id, camera_description, camera_group,
			   department, division, gender_outcome, age_group_outcome, dwell_seconds
		FROM camera_events
		WHERE ` + strings.Join(conds, " AND ") + `
		ORDER BY timestamp
	`

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var events []models.RawEvent
	for rows.Next() {
		var ev models.RawEvent
		var gender string

		err := rows.Scan(
			&ev.Timestamp,
			&ev.PersonID,
			&ev.CameraID,
			&ev.Camera,
			&ev.Store,
			&ev.Department,
			&ev.Division,
			&gender,
			&ev.AgeGroup,
			&ev.DwellSeconds,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}

		ev.Gender = models.ParseGender(gender)
		events = append(events, ev)
	}

	return events, rows.Err()
}

// DistinctValues returns the option list for one hierarchy level, scoped by
// the ancestor selections. A non-empty prefix narrows the list to values
// starting with it, matched case-insensitively. Lists are derived from the
// data on every call; nothing is filtered from a cached superset.
func (db *DB) DistinctValues(ctx context.Context, level models.Level, scope models.LocationFilter, prefix string) ([]string, error) {
	column := levelColumn(level)

	conds := []string{column + " != ''"}
	scopeConds, scopeArgs := scopeConditions(scope, level)
	conds = append(conds, scopeConds...)
	if prefix != "" {
		conds = append(conds, column+` LIKE ? ESCAPE '\'`)
		scopeArgs = append(scopeArgs, escapeLike(prefix)+"%")
	}

	query := fmt.Sprintf(`
		SELECT DISTINCT %s FROM camera_events
		WHERE %s
		ORDER BY %s
		LIMIT %d
	`, column, strings.Join(conds, " AND "), column, optionCap)

	rows, err := db.QueryContext(ctx, query, scopeArgs...)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s options: %w", column, err)
	}
	defer func() { _ = rows.Close() }()

	var values []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("failed to scan option: %w", err)
		}
		values = append(values, v)
	}

	return values, rows.Err()
}

// Options implements the filter coordinator's OptionProvider.
func (db *DB) Options(ctx context.Context, level models.Level, scope models.LocationFilter, prefix string) ([]string, error) {
	return db.DistinctValues(ctx, level, scope, prefix)
}

// escapeLike neutralizes LIKE metacharacters so a prefix matches literally.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// Summary computes the KPI totals for a location filter and date range.
func (db *DB) Summary(ctx context.Context, filter models.LocationFilter, r models.DateRange) (models.SummaryStats, error) {
	conds := []string{"timestamp >= ?", "timestamp <= ?"}
	args := []any{r.Start.UTC().Format(timeLayout), r.End.UTC().Format(timeLayout)}

	scopeConds, scopeArgs := scopeConditions(filter, models.LevelCount)
	conds = append(conds, scopeConds...)
	args = append(args, scopeArgs...)

	query := `
		SELECT
			COUNT(*) AS total_events,
			COUNT(DISTINCT person_id) AS unique_visitors,
			COALESCE(SUM(dwell_seconds), 0) AS total_dwell,
			COALESCE(AVG(dwell_seconds), 0) AS avg_dwell,
			COUNT(DISTINCT CASE WHEN gender_outcome = 'male' THEN person_id END) AS male_visitors,
			COUNT(DISTINCT CASE WHEN gender_outcome = 'female' THEN person_id END) AS female_visitors,
			COUNT(DISTINCT CASE WHEN gender_outcome NOT IN ('male', 'female') THEN person_id END) AS other_visitors
		FROM camera_events
		WHERE ` + strings.Join(conds, " AND ")

	var stats models.SummaryStats
	err := db.QueryRowContext(ctx, query, args...).Scan(
		&stats.TotalEvents,
		&stats.UniqueVisitors,
		&stats.TotalDwellSeconds,
		&stats.AvgDwellSeconds,
		&stats.MaleVisitors,
		&stats.FemaleVisitors,
		&stats.OtherVisitors,
	)
	if err != nil {
		return models.SummaryStats{}, fmt.Errorf("failed to query summary: %w", err)
	}

	return stats, nil
}
