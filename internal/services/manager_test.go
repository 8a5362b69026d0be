package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/visionflow-analytics/visitor-dashboard-tui/internal/config"
	"github.com/visionflow-analytics/visitor-dashboard-tui/internal/models"
	"github.com/visionflow-analytics/visitor-dashboard-tui/internal/services/filter"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()

	cfg := &config.Config{
		DatabasePath: filepath.Join(t.TempDir(), "events.db"),
	}

	m, err := NewManager(cfg)
	if err != nil {
		t.Fatalf("NewManager() error = %v", err)
	}
	t.Cleanup(func() { _ = m.Close() })

	return m
}

// waitFor drains the channel until match returns true or the timeout hits.
func waitFor(t *testing.T, ch <-chan ServiceEvent, match func(ServiceEvent) bool) ServiceEvent {
	t.Helper()

	deadline := time.After(3 * time.Second)
	for {
		select {
		case ev, ok := <-ch:
			if !ok {
				t.Fatal("event channel closed before expected event")
			}
			if match(ev) {
				return ev
			}
		case <-deadline:
			t.Fatal("timed out waiting for event")
		}
	}
}

func seedEvents(t *testing.T, m *Manager, events []models.RawEvent) {
	t.Helper()
	if err := m.Database().InsertEvents(context.Background(), events); err != nil {
		t.Fatalf("InsertEvents() error = %v", err)
	}
}

func TestManagerRefreshBroadcastsSeries(t *testing.T) {
	m := newTestManager(t)

	anchor := m.Coordinator().Window().Anchor
	seedEvents(t, m, []models.RawEvent{
		{
			Timestamp:    time.Date(anchor.Year(), anchor.Month(), anchor.Day(), 10, 15, 0, 0, time.UTC),
			PersonID:     "p1",
			Gender:       models.GenderMale,
			AgeGroup:     "20-29",
			DwellSeconds: 120,
		},
		{
			Timestamp:    time.Date(anchor.Year(), anchor.Month(), anchor.Day(), 11, 0, 0, 0, time.UTC),
			PersonID:     "p2",
			Gender:       models.GenderFemale,
			AgeGroup:     "30-39",
			DwellSeconds: 700,
		},
	})

	ch, _ := m.Subscribe()
	defer m.Unsubscribe(ch)

	m.Refresh()

	ev := waitFor(t, ch, func(ev ServiceEvent) bool {
		_, ok := ev.(SeriesUpdatedEvent)
		return ok
	}).(SeriesUpdatedEvent)

	if ev.Series == nil {
		t.Fatal("SeriesUpdatedEvent carried nil series")
	}
	if got := ev.Series.Total(); got != 2 {
		t.Errorf("series total = %v, want 2", got)
	}
	if got := ev.Waiting.Total(); got != 1 {
		t.Errorf("waiting series total = %v, want 1 (only the 700s dwell)", got)
	}
	if ev.Stats.TotalEvents != 2 {
		t.Errorf("stats total = %d, want 2", ev.Stats.TotalEvents)
	}
}

func TestManagerFilterChangeTriggersRefresh(t *testing.T) {
	m := newTestManager(t)

	ch, _ := m.Subscribe()
	defer m.Unsubscribe(ch)

	m.Coordinator().Select(context.Background(), models.LevelDivision, "North")

	fc := waitFor(t, ch, func(ev ServiceEvent) bool {
		_, ok := ev.(FilterChangedEvent)
		return ok
	}).(FilterChangedEvent)

	if fc.Filter.Division != "North" {
		t.Errorf("broadcast filter division = %q, want North", fc.Filter.Division)
	}
	if fc.Range.Start.IsZero() || fc.Range.End.IsZero() {
		t.Error("broadcast range not resolved")
	}

	// The selection change also recomputes the series.
	waitFor(t, ch, func(ev ServiceEvent) bool {
		_, ok := ev.(SeriesUpdatedEvent)
		return ok
	})
}

func TestManagerHandleFilterEvent(t *testing.T) {
	m := newTestManager(t)

	ch, _ := m.Subscribe()
	defer m.Unsubscribe(ch)

	tests := []struct {
		name  string
		event filter.Event
		match func(ServiceEvent) bool
	}{
		{
			name: "selection change",
			event: filter.Event{
				Type:   filter.EventSelectionChanged,
				Level:  models.LevelDivision,
				Filter: models.LocationFilter{Division: "North"},
			},
			match: func(ev ServiceEvent) bool {
				fc, ok := ev.(FilterChangedEvent)
				return ok && fc.Filter.Division == "North"
			},
		},
		{
			name: "window change",
			event: filter.Event{
				Type:   filter.EventWindowChanged,
				Window: models.NewTimeWindow(models.PeriodMonth, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)),
			},
			match: func(ev ServiceEvent) bool {
				fc, ok := ev.(FilterChangedEvent)
				return ok && fc.Window.Unit == models.PeriodMonth
			},
		},
		{
			name: "options loaded",
			event: filter.Event{
				Type:    filter.EventOptionsLoaded,
				Level:   models.LevelDepartment,
				Options: []string{"Grocery", "Produce"},
			},
			match: func(ev ServiceEvent) bool {
				ol, ok := ev.(OptionsLoadedEvent)
				return ok && ol.Level == models.LevelDepartment && len(ol.Options) == 2
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m.handleFilterEvent(tt.event)
			waitFor(t, ch, tt.match)
		})
	}
}

func TestManagerViewChange(t *testing.T) {
	m := newTestManager(t)

	ch, _ := m.Subscribe()
	defer m.Unsubscribe(ch)

	m.SetView(models.ViewDaily)

	ev := waitFor(t, ch, func(ev ServiceEvent) bool {
		_, ok := ev.(SeriesUpdatedEvent)
		return ok
	}).(SeriesUpdatedEvent)

	if ev.Series.View != models.ViewDaily {
		t.Errorf("series view = %v, want daily", ev.Series.View)
	}
	if len(ev.Series.Points) != 7 {
		t.Errorf("daily series has %d buckets, want 7", len(ev.Series.Points))
	}
}

func TestManagerImportFile(t *testing.T) {
	m := newTestManager(t)

	csvPath := filepath.Join(t.TempDir(), "drop.csv")
	data := "person_id,camera_id,camera_description,utc_time_started_readable,utc_time_ended_readable\n" +
		"p1,c1,Entrance,2024-01-17 10:15:00,2024-01-17 10:17:00\n"
	if err := os.WriteFile(csvPath, []byte(data), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	ch, _ := m.Subscribe()
	defer m.Unsubscribe(ch)

	res, err := m.ImportFile(context.Background(), csvPath)
	if err != nil {
		t.Fatalf("ImportFile() error = %v", err)
	}
	if res.ProcessedRows != 1 {
		t.Errorf("ProcessedRows = %d, want 1", res.ProcessedRows)
	}

	ev := waitFor(t, ch, func(ev ServiceEvent) bool {
		_, ok := ev.(ImportCompletedEvent)
		return ok
	}).(ImportCompletedEvent)

	if ev.Result.Path != csvPath {
		t.Errorf("event path = %q, want %q", ev.Result.Path, csvPath)
	}

	r := models.DateRange{
		Start: time.Date(2024, 1, 17, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 1, 18, 0, 0, 0, 0, time.UTC),
	}
	events, err := m.Database().FetchEvents(context.Background(), models.LocationFilter{}, r)
	if err != nil {
		t.Fatalf("FetchEvents() error = %v", err)
	}
	if len(events) != 1 {
		t.Errorf("stored %d events, want 1", len(events))
	}
}

func TestManagerUnsubscribe(t *testing.T) {
	m := newTestManager(t)

	ch, _ := m.Subscribe()
	m.Unsubscribe(ch)

	// Channel must be closed after unsubscribe.
	select {
	case _, ok := <-ch:
		if ok {
			t.Error("received event on unsubscribed channel")
		}
	case <-time.After(time.Second):
		t.Error("unsubscribed channel was not closed")
	}
}
