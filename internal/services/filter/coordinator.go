// Package filter coordinates the cascading location hierarchy selection:
// division, department, store, camera. Selecting a level clears everything
// below it and re-derives the next level's option list from the new ancestor
// scope.
package filter

import (
	"context"
	"sync"
	"time"

	"github.com/visionflow-analytics/visitor-dashboard-tui/internal/logger"
	"github.com/visionflow-analytics/visitor-dashboard-tui/internal/models"
	"github.com/visionflow-analytics/visitor-dashboard-tui/internal/services/daterange"
)

// OptionProvider supplies the option list for one hierarchy level scoped by
// the ancestor selections, narrowed by an optional prefix search term. Lists
// are always re-derived from the scope, never filtered client-side from a
// cached superset.
type OptionProvider interface {
	Options(ctx context.Context, level models.Level, scope models.LocationFilter, prefix string) ([]string, error)
}

// EventType defines the type of coordinator event.
type EventType int

const (
	// EventSelectionChanged is emitted after a level selection, with the new
	// filter value.
	EventSelectionChanged EventType = iota
	// EventOptionsLoaded is emitted when a level's option list arrives.
	EventOptionsLoaded
	// EventWindowChanged is emitted when the time window is replaced.
	EventWindowChanged
)

// Event represents a coordinator event.
type Event struct {
	Type    EventType
	Level   models.Level
	Filter  models.LocationFilter
	Window  models.TimeWindow
	Options []string
}

// Coordinator owns the current location filter and time window. Option
// fetches run asynchronously; a monotonically increasing scope version
// detects responses for a scope that has since been superseded, which are
// discarded on arrival regardless of order.
type Coordinator struct {
	mu       sync.RWMutex
	provider OptionProvider
	filter   models.LocationFilter
	window   models.TimeWindow
	version  uint64
	options  map[models.Level][]string
	search   map[models.Level]string

	eventChan chan Event
}

// New creates a coordinator with an empty filter and a window anchored at
// now.
func New(provider OptionProvider, unit models.PeriodUnit) *Coordinator {
	return &Coordinator{
		provider:  provider,
		window:    models.NewTimeWindow(unit, time.Now()),
		options:   make(map[models.Level][]string),
		search:    make(map[models.Level]string),
		eventChan: make(chan Event, 100),
	}
}

// Events returns the event channel for subscribing to coordinator changes.
func (c *Coordinator) Events() <-chan Event {
	return c.eventChan
}

// Filter returns the current location filter value.
func (c *Coordinator) Filter() models.LocationFilter {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.filter
}

// Window returns the current time window value.
func (c *Coordinator) Window() models.TimeWindow {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.window
}

// Range resolves the current window to its calendar-aligned date range.
func (c *Coordinator) Range() models.DateRange {
	return daterange.ResolveWindow(c.Window())
}

// Version returns the current scope version.
func (c *Coordinator) Version() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.version
}

// Options returns a copy of the cached option list for a level.
func (c *Coordinator) Options(level models.Level) []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	opts := make([]string, len(c.options[level]))
	copy(opts, c.options[level])
	return opts
}

// SearchTerm returns the active prefix search for a level.
func (c *Coordinator) SearchTerm(level models.Level) string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.search[level]
}

// Select sets the value of one hierarchy level. Every deeper level is
// cleared unconditionally, the scope version advances, and the next level's
// option list is re-fetched under the new scope. Selecting the empty value
// ("all") has the same clearing effect. Selecting the current value is a
// no-op.
func (c *Coordinator) Select(ctx context.Context, level models.Level, value string) {
	c.mu.Lock()
	if c.filter.Get(level) == value {
		c.mu.Unlock()
		return
	}

	c.filter = c.filter.Set(level, value)
	for l := level + 1; l < models.LevelCount; l++ {
		c.filter = c.filter.Set(l, "")
		delete(c.options, l)
		delete(c.search, l)
	}
	c.version++
	version := c.version
	scope := c.filter
	c.mu.Unlock()

	c.sendEvent(Event{Type: EventSelectionChanged, Level: level, Filter: scope})

	if level < models.LevelCamera {
		go c.fetchOptions(ctx, level+1, scope, "", version)
	}
}

// Search sets the prefix search term for one level and re-fetches its option
// list under the current scope. An empty term restores the unfiltered list.
func (c *Coordinator) Search(ctx context.Context, level models.Level, term string) {
	c.mu.Lock()
	if c.search[level] == term {
		c.mu.Unlock()
		return
	}
	if term == "" {
		delete(c.search, level)
	} else {
		c.search[level] = term
	}
	c.version++
	version := c.version
	scope := c.filter
	c.mu.Unlock()

	go c.fetchOptions(ctx, level, scope, term, version)
}

// Reset clears the whole filter and reloads the top level.
func (c *Coordinator) Reset(ctx context.Context) {
	c.mu.Lock()
	c.filter = models.LocationFilter{}
	for l := models.LevelDepartment; l < models.LevelCount; l++ {
		delete(c.options, l)
	}
	c.search = make(map[models.Level]string)
	c.version++
	version := c.version
	c.mu.Unlock()

	c.sendEvent(Event{Type: EventSelectionChanged, Level: models.LevelDivision, Filter: models.LocationFilter{}})
	go c.fetchOptions(ctx, models.LevelDivision, models.LocationFilter{}, "", version)
}

// LoadLevel fetches a level's option list under the current scope. Used to
// prime the division list on startup.
func (c *Coordinator) LoadLevel(ctx context.Context, level models.Level) {
	c.mu.RLock()
	version := c.version
	scope := c.filter
	term := c.search[level]
	c.mu.RUnlock()

	go c.fetchOptions(ctx, level, scope, term, version)
}

// SetWindow replaces the time window wholesale.
func (c *Coordinator) SetWindow(window models.TimeWindow) {
	c.mu.Lock()
	c.window = window
	c.mu.Unlock()

	c.sendEvent(Event{Type: EventWindowChanged, Window: window})
}

// CycleUnit advances the window to the next period unit, keeping the anchor.
func (c *Coordinator) CycleUnit() {
	c.mu.Lock()
	c.window = c.window.WithUnit(c.window.Unit.Next())
	window := c.window
	c.mu.Unlock()

	c.sendEvent(Event{Type: EventWindowChanged, Window: window})
}

// fetchOptions performs one asynchronous option fetch. The result is applied
// only if the scope version is still current; a fetch for a superseded scope
// is dropped on arrival. A provider failure degrades to an empty option
// list.
func (c *Coordinator) fetchOptions(ctx context.Context, level models.Level, scope models.LocationFilter, prefix string, version uint64) {
	opts, err := c.provider.Options(ctx, level, scope, prefix)
	if err != nil {
		logger.Warn("option fetch failed", "level", level.String(), "error", err)
		opts = nil
	}

	c.mu.Lock()
	if version != c.version {
		c.mu.Unlock()
		return
	}
	c.options[level] = opts
	c.mu.Unlock()

	c.sendEvent(Event{Type: EventOptionsLoaded, Level: level, Options: opts})
}

// sendEvent sends an event to the event channel non-blocking.
func (c *Coordinator) sendEvent(event Event) {
	select {
	case c.eventChan <- event:
	default:
		// Channel full, drop oldest event
		select {
		case <-c.eventChan:
		default:
		}
		select {
		case c.eventChan <- event:
		default:
		}
	}
}
