package filter

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/visionflow-analytics/visitor-dashboard-tui/internal/models"
)

// staticProvider answers immediately from a fixed table keyed by level,
// honoring the prefix search term.
type staticProvider struct {
	byLevel map[models.Level][]string
	err     error
}

func (p *staticProvider) Options(_ context.Context, level models.Level, _ models.LocationFilter, prefix string) ([]string, error) {
	if p.err != nil {
		return nil, p.err
	}
	if prefix == "" {
		return p.byLevel[level], nil
	}
	var matched []string
	for _, v := range p.byLevel[level] {
		if strings.HasPrefix(v, prefix) {
			matched = append(matched, v)
		}
	}
	return matched, nil
}

// optionCall is one in-flight request against blockingProvider.
type optionCall struct {
	level models.Level
	scope models.LocationFilter
	reply chan []string
}

// blockingProvider parks every request until the test replies, so arrival
// order can be forced.
type blockingProvider struct {
	calls chan *optionCall
}

func (p *blockingProvider) Options(_ context.Context, level models.Level, scope models.LocationFilter, _ string) ([]string, error) {
	call := &optionCall{level: level, scope: scope, reply: make(chan []string)}
	p.calls <- call
	return <-call.reply, nil
}

func waitForEvent(t *testing.T, c *Coordinator, eventType EventType) Event {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case ev := <-c.Events():
			if ev.Type == eventType {
				return ev
			}
		case <-deadline:
			t.Fatalf("timed out waiting for event type %d", eventType)
		}
	}
}

func TestSelectClearsDeeperLevels(t *testing.T) {
	provider := &staticProvider{byLevel: map[models.Level][]string{}}
	c := New(provider, models.PeriodWeek)
	ctx := context.Background()

	c.Select(ctx, models.LevelDivision, "North")
	c.Select(ctx, models.LevelDepartment, "Fashion")
	c.Select(ctx, models.LevelStore, "Store 3")
	c.Select(ctx, models.LevelCamera, "Cam 12")

	f := c.Filter()
	if f.Camera != "Cam 12" {
		t.Fatalf("camera = %q, want Cam 12", f.Camera)
	}

	c.Select(ctx, models.LevelDepartment, "Electronics")

	f = c.Filter()
	if f.Division != "North" || f.Department != "Electronics" {
		t.Errorf("unexpected filter after re-selection: %+v", f)
	}
	if f.Store != "" || f.Camera != "" {
		t.Errorf("deeper levels must be cleared, got store=%q camera=%q", f.Store, f.Camera)
	}
}

func TestSelectEmptyClears(t *testing.T) {
	provider := &staticProvider{byLevel: map[models.Level][]string{}}
	c := New(provider, models.PeriodWeek)
	ctx := context.Background()

	c.Select(ctx, models.LevelDivision, "North")
	c.Select(ctx, models.LevelDepartment, "Fashion")
	c.Select(ctx, models.LevelDivision, "")

	if got := c.Filter(); !got.IsZero() {
		t.Errorf("selecting all at the top must clear everything, got %+v", got)
	}
}

func TestSelectSameValueNoOp(t *testing.T) {
	provider := &staticProvider{byLevel: map[models.Level][]string{}}
	c := New(provider, models.PeriodWeek)
	ctx := context.Background()

	c.Select(ctx, models.LevelDivision, "North")
	v := c.Version()
	c.Select(ctx, models.LevelDivision, "North")

	if c.Version() != v {
		t.Error("re-selecting the current value must not advance the scope version")
	}
}

func TestOptionsLoaded(t *testing.T) {
	provider := &staticProvider{byLevel: map[models.Level][]string{
		models.LevelDepartment: {"Fashion", "Food"},
	}}
	c := New(provider, models.PeriodWeek)

	c.Select(context.Background(), models.LevelDivision, "North")
	ev := waitForEvent(t, c, EventOptionsLoaded)

	if ev.Level != models.LevelDepartment {
		t.Errorf("loaded level = %v, want department", ev.Level)
	}
	if len(ev.Options) != 2 {
		t.Errorf("got %d options, want 2", len(ev.Options))
	}
	if got := c.Options(models.LevelDepartment); len(got) != 2 {
		t.Errorf("cached options = %v, want 2 entries", got)
	}
}

func TestSearchNarrowsOptions(t *testing.T) {
	provider := &staticProvider{byLevel: map[models.Level][]string{
		models.LevelDivision: {"North", "Northeast", "South"},
	}}
	c := New(provider, models.PeriodWeek)
	ctx := context.Background()

	c.Search(ctx, models.LevelDivision, "North")
	ev := waitForEvent(t, c, EventOptionsLoaded)

	if len(ev.Options) != 2 {
		t.Fatalf("got options %v, want the two North prefixes", ev.Options)
	}
	if got := c.SearchTerm(models.LevelDivision); got != "North" {
		t.Errorf("SearchTerm() = %q, want North", got)
	}

	// Clearing the term restores the full list.
	c.Search(ctx, models.LevelDivision, "")
	ev = waitForEvent(t, c, EventOptionsLoaded)
	if len(ev.Options) != 3 {
		t.Errorf("got options %v, want the full list", ev.Options)
	}
	if got := c.SearchTerm(models.LevelDivision); got != "" {
		t.Errorf("SearchTerm() = %q, want empty", got)
	}
}

func TestSearchSameTermNoOp(t *testing.T) {
	provider := &staticProvider{byLevel: map[models.Level][]string{}}
	c := New(provider, models.PeriodWeek)
	ctx := context.Background()

	c.Search(ctx, models.LevelDivision, "No")
	v := c.Version()
	c.Search(ctx, models.LevelDivision, "No")

	if c.Version() != v {
		t.Error("repeating the current term must not advance the scope version")
	}
}

func TestSelectClearsDeeperSearch(t *testing.T) {
	provider := &staticProvider{byLevel: map[models.Level][]string{}}
	c := New(provider, models.PeriodWeek)
	ctx := context.Background()

	c.Search(ctx, models.LevelDepartment, "Fa")
	c.Select(ctx, models.LevelDivision, "North")

	if got := c.SearchTerm(models.LevelDepartment); got != "" {
		t.Errorf("selecting an ancestor must drop the deeper search, got %q", got)
	}
}

func TestResetClearsSearch(t *testing.T) {
	provider := &staticProvider{byLevel: map[models.Level][]string{}}
	c := New(provider, models.PeriodWeek)
	ctx := context.Background()

	c.Search(ctx, models.LevelDivision, "No")
	c.Reset(ctx)

	if got := c.SearchTerm(models.LevelDivision); got != "" {
		t.Errorf("reset must drop search terms, got %q", got)
	}
}

func TestStaleFetchDiscarded(t *testing.T) {
	provider := &blockingProvider{calls: make(chan *optionCall, 4)}
	c := New(provider, models.PeriodWeek)
	ctx := context.Background()

	c.Select(ctx, models.LevelDivision, "North")
	first := <-provider.calls
	if first.scope.Division != "North" {
		t.Fatalf("first fetch scope = %+v", first.scope)
	}

	c.Select(ctx, models.LevelDivision, "South")
	second := <-provider.calls

	// The newer scope answers first and wins.
	second.reply <- []string{"South Dept"}
	waitForEvent(t, c, EventOptionsLoaded)

	// The stale response arrives later and must be dropped, regardless of
	// arrival order.
	first.reply <- []string{"North Dept"}
	time.Sleep(50 * time.Millisecond)

	got := c.Options(models.LevelDepartment)
	if len(got) != 1 || got[0] != "South Dept" {
		t.Errorf("options = %v, want [South Dept]", got)
	}
}

func TestFetchFailureDegradesToEmpty(t *testing.T) {
	provider := &staticProvider{err: errors.New("boom")}
	c := New(provider, models.PeriodWeek)

	c.Select(context.Background(), models.LevelDivision, "North")
	ev := waitForEvent(t, c, EventOptionsLoaded)

	if len(ev.Options) != 0 {
		t.Errorf("failed fetch must yield an empty option list, got %v", ev.Options)
	}
}

func TestWindowReplacement(t *testing.T) {
	c := New(&staticProvider{}, models.PeriodWeek)

	anchor := time.Date(2024, time.January, 17, 0, 0, 0, 0, time.UTC)
	c.SetWindow(models.NewTimeWindow(models.PeriodWeek, anchor))

	r := c.Range()
	if r.Start.Day() != 14 || r.End.Day() != 20 {
		t.Errorf("range = [%v, %v], want Sunday 14th through Saturday 20th", r.Start, r.End)
	}

	c.CycleUnit()
	if got := c.Window().Unit; got != models.PeriodMonth {
		t.Errorf("unit after cycle = %v, want month", got)
	}
	if !c.Window().Anchor.Equal(anchor) {
		t.Error("cycling the unit must keep the anchor")
	}
}
