// Package aggregate groups raw camera events into fixed time buckets broken
// down by a demographic dimension, producing deterministic chart-ready
// series.
package aggregate

import (
	"github.com/visionflow-analytics/visitor-dashboard-tui/internal/models"
	"github.com/visionflow-analytics/visitor-dashboard-tui/internal/services/buckets"
	"github.com/visionflow-analytics/visitor-dashboard-tui/internal/services/palette"
)

// WaitingThresholdSeconds is the dwell duration above which a visitor counts
// as waiting.
const WaitingThresholdSeconds = 600

// Options configures one aggregation call.
type Options struct {
	View      models.ViewType
	Breakdown models.Breakdown
	Metric    models.Metric
	// IncludeOtherGender adds the "other" category to the gender breakdown.
	// By default only male and female feed gender-split charts.
	IncludeOtherGender bool
}

// Aggregate groups events into the fixed bucket axis for the view, split by
// the selected breakdown. Every bucket and every discovered category is
// present in the result, zero-filled when empty, so an empty input still
// yields a complete axis. Events outside the modeled opening hours, events
// with sentinel age brackets in age-based breakdowns, and events whose
// category is outside the discovered set contribute nothing.
func Aggregate(events []models.RawEvent, opts Options) *models.Series {
	labels := buckets.Labels(opts.View)
	keys := discoverKeys(events, opts)

	points := make([]models.SeriesPoint, len(labels))
	index := make(map[string]int, len(labels))
	for i, label := range labels {
		points[i] = models.SeriesPoint{Bucket: label, Values: zeroValues(keys)}
		index[label] = i
	}

	for _, ev := range events {
		label, ok := buckets.BucketOf(ev.Timestamp, opts.View)
		if !ok {
			continue
		}
		key, ok := categoryOf(ev, opts)
		if !ok {
			continue
		}
		point := points[index[label]]
		if _, known := point.Values[key]; !known {
			continue
		}
		point.Values[key] += amount(ev, opts.Metric)
	}

	return &models.Series{
		View:       opts.View,
		Breakdown:  opts.Breakdown,
		Metric:     opts.Metric,
		Points:     points,
		Categories: palette.Assign(keys),
	}
}

// CameraGroups is the waiting-time companion: it buckets events by an
// explicit camera-group key instead of a demographic dimension. When groups
// is empty every event falls into a single "All" pseudo-group. Bucketing
// rules are identical to Aggregate; the dwell threshold filter is the
// caller's responsibility.
func CameraGroups(events []models.RawEvent, view models.ViewType, groups []string) *models.Series {
	labels := buckets.Labels(view)

	keys := make([]models.CategoryKey, 0, len(groups))
	for _, g := range groups {
		keys = append(keys, models.CategoryKey(g))
	}
	all := len(keys) == 0
	if all {
		keys = []models.CategoryKey{"All"}
	}

	points := make([]models.SeriesPoint, len(labels))
	index := make(map[string]int, len(labels))
	for i, label := range labels {
		points[i] = models.SeriesPoint{Bucket: label, Values: zeroValues(keys)}
		index[label] = i
	}

	for _, ev := range events {
		label, ok := buckets.BucketOf(ev.Timestamp, view)
		if !ok {
			continue
		}
		key := models.CategoryKey(ev.Store)
		if all {
			key = "All"
		}
		point := points[index[label]]
		if _, known := point.Values[key]; !known {
			continue
		}
		point.Values[key]++
	}

	return &models.Series{
		View:       view,
		Breakdown:  models.BreakdownNone,
		Metric:     models.MetricFootTraffic,
		Points:     points,
		Categories: palette.Assign(keys),
	}
}

// FilterWaiting returns the events whose dwell time exceeds the waiting
// threshold.
func FilterWaiting(events []models.RawEvent) []models.RawEvent {
	waiting := make([]models.RawEvent, 0, len(events))
	for _, ev := range events {
		if ev.DwellSeconds > WaitingThresholdSeconds {
			waiting = append(waiting, ev)
		}
	}
	return waiting
}

func zeroValues(keys []models.CategoryKey) map[models.CategoryKey]float64 {
	values := make(map[models.CategoryKey]float64, len(keys))
	for _, k := range keys {
		values[k] = 0
	}
	return values
}

func amount(ev models.RawEvent, metric models.Metric) float64 {
	if metric == models.MetricDwellTime {
		return ev.DwellSeconds
	}
	return 1
}

// discoverKeys builds the ordered category key set for a breakdown. The
// order established here is the discovery order the palette indexes into, so
// it must be deterministic for a given input.
func discoverKeys(events []models.RawEvent, opts Options) []models.CategoryKey {
	switch opts.Breakdown {
	case models.BreakdownGender:
		keys := []models.CategoryKey{
			models.CategoryKey(models.GenderMale),
			models.CategoryKey(models.GenderFemale),
		}
		if opts.IncludeOtherGender {
			keys = append(keys, models.CategoryKey(models.GenderOther))
		}
		return keys

	case models.BreakdownAge:
		ages := discoverAges(events)
		keys := make([]models.CategoryKey, len(ages))
		for i, a := range ages {
			keys[i] = models.CategoryKey(a)
		}
		return keys

	case models.BreakdownGenderAge:
		ages := discoverAges(events)
		keys := make([]models.CategoryKey, 0, len(ages)*2)
		for _, a := range ages {
			keys = append(keys,
				models.GenderAgeKey(models.GenderMale, a),
				models.GenderAgeKey(models.GenderFemale, a),
			)
		}
		return keys

	default:
		return []models.CategoryKey{models.CategoryTotal}
	}
}

// categoryOf resolves the category key an event contributes to. ok is false
// when the event carries no admissible category for the breakdown.
func categoryOf(ev models.RawEvent, opts Options) (models.CategoryKey, bool) {
	switch opts.Breakdown {
	case models.BreakdownGender:
		if ev.Gender == models.GenderOther && !opts.IncludeOtherGender {
			return "", false
		}
		return models.CategoryKey(ev.Gender), true

	case models.BreakdownAge:
		age, ok := NormalizeAgeBracket(ev.AgeGroup)
		if !ok {
			return "", false
		}
		return models.CategoryKey(age), true

	case models.BreakdownGenderAge:
		if ev.Gender != models.GenderMale && ev.Gender != models.GenderFemale {
			return "", false
		}
		age, ok := NormalizeAgeBracket(ev.AgeGroup)
		if !ok {
			return "", false
		}
		return models.GenderAgeKey(ev.Gender, age), true

	default:
		return models.CategoryTotal, true
	}
}
