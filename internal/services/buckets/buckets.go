// Package buckets defines the fixed time axes charts aggregate into: the 13
// opening hours of a day or the 7 weekdays. The axes are closed enumerations,
// never derived from data, so charts keep the same shape when buckets are
// empty.
package buckets

import (
	"fmt"
	"strings"
	"time"

	"github.com/visionflow-analytics/visitor-dashboard-tui/internal/models"
)

// Opening hours modeled by the hourly axis, inclusive.
const (
	OpenHour  = 10
	CloseHour = 22
)

var hourLabels = buildHourLabels()

// Weekday axis is Monday-first everywhere; the resolver's Sunday-based week
// alignment is a separate concern.
var dayLabels = []string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

func buildHourLabels() []string {
	labels := make([]string, 0, CloseHour-OpenHour+1)
	for h := OpenHour; h <= CloseHour; h++ {
		labels = append(labels, hourLabel(h))
	}
	return labels
}

// hourLabel converts a 24-hour clock hour to its 12-hour display label.
func hourLabel(h int) string {
	twelve := ((h - 1) % 12) + 1
	suffix := "PM"
	if h < 12 {
		suffix = "AM"
	}
	return fmt.Sprintf("%d %s", twelve, suffix)
}

// Labels returns the ordered bucket labels for a view type: 13 hourly labels
// ("10 AM" through "10 PM") or 7 weekday names. The result is a fresh slice;
// callers may keep it.
func Labels(view models.ViewType) []string {
	var src []string
	if view == models.ViewHourly {
		src = hourLabels
	} else {
		src = dayLabels
	}
	labels := make([]string, len(src))
	copy(labels, src)
	return labels
}

// BucketOf maps a timestamp to its bucket label. For the hourly view,
// timestamps outside the opening hours have no bucket and ok is false; such
// events are excluded from hourly aggregation.
func BucketOf(t time.Time, view models.ViewType) (label string, ok bool) {
	if view == models.ViewHourly {
		h := t.Hour()
		if h < OpenHour || h > CloseHour {
			return "", false
		}
		return hourLabels[h-OpenHour], true
	}
	// Monday-first index: time.Weekday has Sunday = 0.
	idx := (int(t.Weekday()) + 6) % 7
	return dayLabels[idx], true
}

// IndexOf returns the axis position of a bucket label, matching
// case-insensitively, or -1 when the label is not on the axis.
func IndexOf(view models.ViewType, label string) int {
	for i, l := range Labels(view) {
		if strings.EqualFold(l, label) {
			return i
		}
	}
	return -1
}
