package buckets

import (
	"testing"
	"time"

	"github.com/visionflow-analytics/visitor-dashboard-tui/internal/models"
)

func TestLabelsHourly(t *testing.T) {
	labels := Labels(models.ViewHourly)

	if len(labels) != 13 {
		t.Fatalf("Labels(hourly) returned %d labels, want 13", len(labels))
	}

	want := []string{
		"10 AM", "11 AM", "12 PM", "1 PM", "2 PM", "3 PM", "4 PM",
		"5 PM", "6 PM", "7 PM", "8 PM", "9 PM", "10 PM",
	}
	for i, w := range want {
		if labels[i] != w {
			t.Errorf("labels[%d] = %q, want %q", i, labels[i], w)
		}
	}
}

func TestLabelsDaily(t *testing.T) {
	labels := Labels(models.ViewDaily)

	if len(labels) != 7 {
		t.Fatalf("Labels(daily) returned %d labels, want 7", len(labels))
	}
	if labels[0] != "Monday" || labels[6] != "Sunday" {
		t.Errorf("daily axis must be Monday-first, got first=%q last=%q", labels[0], labels[6])
	}
}

func TestLabelsStableAndIsolated(t *testing.T) {
	first := Labels(models.ViewHourly)
	first[0] = "mutated"

	second := Labels(models.ViewHourly)
	if second[0] != "10 AM" {
		t.Error("Labels() must return a fresh copy on every call")
	}
}

func TestBucketOfHourly(t *testing.T) {
	tests := []struct {
		hour   int
		want   string
		wantOk bool
	}{
		{10, "10 AM", true},
		{11, "11 AM", true},
		{12, "12 PM", true},
		{13, "1 PM", true},
		{22, "10 PM", true},
		{9, "", false},
		{23, "", false},
		{0, "", false},
	}

	for _, tt := range tests {
		ts := time.Date(2024, time.January, 17, tt.hour, 15, 0, 0, time.UTC)
		got, ok := BucketOf(ts, models.ViewHourly)
		if got != tt.want || ok != tt.wantOk {
			t.Errorf("BucketOf(hour=%d) = (%q, %v), want (%q, %v)", tt.hour, got, ok, tt.want, tt.wantOk)
		}
	}
}

func TestBucketOfDaily(t *testing.T) {
	// 2024-01-15 is a Monday.
	for i, want := range Labels(models.ViewDaily) {
		ts := time.Date(2024, time.January, 15+i, 12, 0, 0, 0, time.UTC)
		got, ok := BucketOf(ts, models.ViewDaily)
		if !ok || got != want {
			t.Errorf("BucketOf(%v) = (%q, %v), want (%q, true)", ts, got, ok, want)
		}
	}
}

func TestIndexOf(t *testing.T) {
	if got := IndexOf(models.ViewHourly, "10 am"); got != 0 {
		t.Errorf("IndexOf should match case-insensitively, got %d", got)
	}
	if got := IndexOf(models.ViewDaily, "SUNDAY"); got != 6 {
		t.Errorf("IndexOf(SUNDAY) = %d, want 6", got)
	}
	if got := IndexOf(models.ViewHourly, "9 AM"); got != -1 {
		t.Errorf("IndexOf of an off-axis label = %d, want -1", got)
	}
}
