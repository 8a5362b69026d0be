package models

// ViewType selects the time axis of a chart: hours of the day or days of
// the week.
type ViewType int

const (
	// ViewHourly buckets events into the 13 opening hours, 10 AM to 10 PM.
	ViewHourly ViewType = iota
	// ViewDaily buckets events into the 7 weekdays, Monday first.
	ViewDaily
)

// String returns the display name for a view type.
func (v ViewType) String() string {
	switch v {
	case ViewHourly:
		return "Hourly"
	case ViewDaily:
		return "Daily"
	default:
		return "Unknown"
	}
}

// Toggle switches between hourly and daily.
func (v ViewType) Toggle() ViewType {
	if v == ViewHourly {
		return ViewDaily
	}
	return ViewHourly
}

// Breakdown is the demographic dimension used to split each bucket.
type Breakdown int

const (
	BreakdownNone Breakdown = iota
	BreakdownGender
	BreakdownAge
	BreakdownGenderAge
)

// String returns the display name for a breakdown.
func (b Breakdown) String() string {
	switch b {
	case BreakdownNone:
		return "None"
	case BreakdownGender:
		return "Gender"
	case BreakdownAge:
		return "Age"
	case BreakdownGenderAge:
		return "Gender x Age"
	default:
		return "Unknown"
	}
}

// Next cycles to the next breakdown.
func (b Breakdown) Next() Breakdown {
	return (b + 1) % 4
}

// Metric selects what a bucket value measures.
type Metric int

const (
	// MetricFootTraffic counts events per bucket.
	MetricFootTraffic Metric = iota
	// MetricDwellTime sums dwell seconds per bucket.
	MetricDwellTime
)

// String returns the display name for a metric.
func (m Metric) String() string {
	switch m {
	case MetricFootTraffic:
		return "Foot Traffic"
	case MetricDwellTime:
		return "Dwell Time"
	default:
		return "Unknown"
	}
}

// Toggle switches between foot traffic and dwell time.
func (m Metric) Toggle() Metric {
	if m == MetricFootTraffic {
		return MetricDwellTime
	}
	return MetricFootTraffic
}

// CategoryKey identifies one series within a breakdown, e.g. "male",
// "20-29" or "male:20-29".
type CategoryKey string

// CategoryTotal is the single key used when no breakdown is selected.
const CategoryTotal CategoryKey = "total"

// GenderAgeKey builds the composite key for a gender x age category.
func GenderAgeKey(g Gender, age string) CategoryKey {
	return CategoryKey(string(g) + ":" + age)
}

// Category is a discovered category with its display metadata attached.
type Category struct {
	Key   CategoryKey
	Label string
	Color string // hex color, stable across re-renders
}

// SeriesPoint is one bucket of an aggregated series: the bucket label and
// the value of every category in it. Buckets with no matching events carry
// explicit zeros so charts always have a full axis.
type SeriesPoint struct {
	Bucket string
	Values map[CategoryKey]float64
}

// Value returns the value for a category key, zero when absent.
func (p SeriesPoint) Value(key CategoryKey) float64 {
	return p.Values[key]
}

// Total sums all category values in the bucket.
func (p SeriesPoint) Total() float64 {
	var sum float64
	for _, v := range p.Values {
		sum += v
	}
	return sum
}

// Series is the chart-ready output of one aggregation call: a fixed bucket
// axis, the discovered categories in stable order, and per-bucket values.
type Series struct {
	View       ViewType
	Breakdown  Breakdown
	Metric     Metric
	Points     []SeriesPoint
	Categories []Category
}

// BucketLabels returns the bucket axis labels in order.
func (s *Series) BucketLabels() []string {
	labels := make([]string, len(s.Points))
	for i, p := range s.Points {
		labels[i] = p.Bucket
	}
	return labels
}

// Column returns one category's values across all buckets, in axis order.
func (s *Series) Column(key CategoryKey) []float64 {
	col := make([]float64, len(s.Points))
	for i, p := range s.Points {
		col[i] = p.Value(key)
	}
	return col
}

// Total sums every category over every bucket.
func (s *Series) Total() float64 {
	var sum float64
	for _, p := range s.Points {
		sum += p.Total()
	}
	return sum
}

// SafeAverage divides total by count, returning 0 when count is 0.
func SafeAverage(total float64, count int) float64 {
	if count == 0 {
		return 0
	}
	return total / float64(count)
}

// DwellMinutes converts a dwell value from seconds to minutes.
func DwellMinutes(seconds float64) float64 {
	return seconds / 60
}

// DwellHours converts a dwell value from seconds to hours.
func DwellHours(seconds float64) float64 {
	return seconds / 3600
}
