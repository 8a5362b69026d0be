// Package services provides service orchestration for the TUI.
package services

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
	"github.com/gen2brain/beeep"

	"github.com/visionflow-analytics/visitor-dashboard-tui/internal/config"
	"github.com/visionflow-analytics/visitor-dashboard-tui/internal/db"
	"github.com/visionflow-analytics/visitor-dashboard-tui/internal/ingest"
	"github.com/visionflow-analytics/visitor-dashboard-tui/internal/logger"
	"github.com/visionflow-analytics/visitor-dashboard-tui/internal/models"
	"github.com/visionflow-analytics/visitor-dashboard-tui/internal/services/aggregate"
	"github.com/visionflow-analytics/visitor-dashboard-tui/internal/services/filter"
)

type (
	// FilterChangedEvent is emitted when a hierarchy selection or the time
	// window changes.
	FilterChangedEvent struct {
		Filter models.LocationFilter
		Window models.TimeWindow
		Range  models.DateRange
	}

	// OptionsLoadedEvent is emitted when the option list for a level arrives.
	OptionsLoadedEvent struct {
		Level   models.Level
		Options []string
	}

	// SeriesUpdatedEvent carries a freshly aggregated series and the KPI
	// summary for the current filter and range.
	SeriesUpdatedEvent struct {
		Series  *models.Series
		Waiting *models.Series
		Stats   models.SummaryStats
	}

	// ImportCompletedEvent is emitted after a CSV file has been ingested.
	ImportCompletedEvent struct {
		Result ingest.Result
	}

	// ErrorEvent is emitted when an error occurs in any service.
	ErrorEvent struct {
		Service string
		Error   error
	}
)

// ServiceEvent is the interface implemented by all service events.
type ServiceEvent interface {
	isServiceEvent()
}

func (FilterChangedEvent) isServiceEvent()   {}
func (OptionsLoadedEvent) isServiceEvent()   {}
func (SeriesUpdatedEvent) isServiceEvent()   {}
func (ImportCompletedEvent) isServiceEvent() {}
func (ErrorEvent) isServiceEvent()           {}

// Manager orchestrates the store, the filter coordinator and the CSV
// import watcher, and routes their events to subscribers.
type Manager struct {
	mu          sync.RWMutex
	database    *db.DB
	coordinator *filter.Coordinator
	importer    *ingest.Importer
	watcher     *fsnotify.Watcher
	cfg         *config.Config
	eventChan   chan ServiceEvent
	stopChan    chan struct{}
	subscribers []chan<- ServiceEvent
	view        models.ViewType
	breakdown   models.Breakdown
	metric      models.Metric
}

// NewManager creates a new service manager.
func NewManager(cfg *config.Config) (*Manager, error) {
	m := &Manager{
		cfg:       cfg,
		eventChan: make(chan ServiceEvent, 100),
		stopChan:  make(chan struct{}),
		view:      models.ViewHourly,
		breakdown: models.BreakdownNone,
		metric:    models.MetricFootTraffic,
	}

	var err error
	m.database, err = db.New(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	m.coordinator = filter.New(m.database, models.PeriodDay)
	m.importer = ingest.New(m.database)

	if cfg.ImportPath != "" {
		m.watcher, err = fsnotify.NewWatcher()
		if err != nil {
			logger.Warn("csv watcher unavailable", "error", err)
		} else if err := m.watcher.Add(cfg.ImportPath); err != nil {
			logger.Warn("failed to watch import directory", "path", cfg.ImportPath, "error", err)
			_ = m.watcher.Close()
			m.watcher = nil
		}
	}

	go m.routeEvents()

	return m, nil
}

// routeEvents routes events from individual services to subscribers.
func (m *Manager) routeEvents() {
	var watchEvents chan fsnotify.Event
	var watchErrors chan error
	if m.watcher != nil {
		watchEvents = m.watcher.Events
		watchErrors = m.watcher.Errors
	}

	for {
		select {
		case event := <-m.coordinator.Events():
			m.handleFilterEvent(event)

		case event, ok := <-watchEvents:
			if !ok {
				watchEvents = nil
				continue
			}
			m.handleFileEvent(event)

		case err, ok := <-watchErrors:
			if !ok {
				watchErrors = nil
				continue
			}
			m.broadcast(ErrorEvent{Service: "watcher", Error: err})

		case <-m.stopChan:
			return
		}
	}
}

// handleFilterEvent converts and broadcasts coordinator events, refreshing
// the series whenever the selection or window moved.
func (m *Manager) handleFilterEvent(event filter.Event) {
	switch event.Type {
	case filter.EventSelectionChanged, filter.EventWindowChanged:
		m.broadcast(FilterChangedEvent{
			Filter: event.Filter,
			Window: event.Window,
			Range:  m.coordinator.Range(),
		})
		go m.refresh()

	case filter.EventOptionsLoaded:
		m.broadcast(OptionsLoadedEvent{
			Level:   event.Level,
			Options: event.Options,
		})
	}
}

// handleFileEvent imports CSV files dropped into the watched directory.
func (m *Manager) handleFileEvent(event fsnotify.Event) {
	if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Rename) {
		return
	}
	if !strings.EqualFold(filepath.Ext(event.Name), ".csv") {
		return
	}

	go func() {
		res, err := m.importer.ImportFile(context.Background(), event.Name)
		if err != nil {
			m.broadcast(ErrorEvent{Service: "ingest", Error: err})
			return
		}

		m.broadcast(ImportCompletedEvent{Result: res})
		m.refresh()

		title := "Visitor data imported"
		body := fmt.Sprintf("%s: %d rows loaded, %d skipped",
			filepath.Base(res.Path), res.ProcessedRows, res.SkippedRows)
		_ = beeep.Notify(title, body, "")
	}()
}

// SetView switches between hourly and daily bucketing.
func (m *Manager) SetView(view models.ViewType) {
	m.mu.Lock()
	m.view = view
	m.mu.Unlock()
	go m.refresh()
}

// SetBreakdown changes the demographic breakdown of the series.
func (m *Manager) SetBreakdown(b models.Breakdown) {
	m.mu.Lock()
	m.breakdown = b
	m.mu.Unlock()
	go m.refresh()
}

// SetMetric switches between foot traffic counts and dwell time sums.
func (m *Manager) SetMetric(metric models.Metric) {
	m.mu.Lock()
	m.metric = metric
	m.mu.Unlock()
	go m.refresh()
}

// Refresh recomputes the series for the current state and broadcasts it.
func (m *Manager) Refresh() {
	go m.refresh()
}

func (m *Manager) refresh() {
	m.mu.RLock()
	opts := aggregate.Options{
		View:               m.view,
		Breakdown:          m.breakdown,
		Metric:             m.metric,
		IncludeOtherGender: m.cfg.IncludeOther,
	}
	m.mu.RUnlock()

	ctx := context.Background()
	locFilter := m.coordinator.Filter()
	r := m.coordinator.Range()

	events, err := m.database.FetchEvents(ctx, locFilter, r)
	if err != nil {
		m.broadcast(ErrorEvent{Service: "store", Error: err})
		return
	}

	stats, err := m.database.Summary(ctx, locFilter, r)
	if err != nil {
		m.broadcast(ErrorEvent{Service: "store", Error: err})
		return
	}

	series := aggregate.Aggregate(events, opts)

	// Waiting view groups by camera group, "All" when unscoped.
	var groups []string
	if locFilter.Store != "" {
		groups = []string{locFilter.Store}
	}
	waiting := aggregate.CameraGroups(aggregate.FilterWaiting(events), opts.View, groups)

	m.broadcast(SeriesUpdatedEvent{
		Series:  series,
		Waiting: waiting,
		Stats:   stats,
	})
}

// broadcast sends an event to all subscribers.
func (m *Manager) broadcast(event ServiceEvent) {
	// Send to main event channel
	select {
	case m.eventChan <- event:
	default:
	}

	// Send to subscribers
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, sub := range m.subscribers {
		select {
		case sub <- event:
		default:
			// Subscriber channel full, skip
		}
	}
}

// Subscribe creates a channel for receiving service events.
// Returns a tea.Cmd that can be used in Bubble Tea's Init or Update.
func (m *Manager) Subscribe() (chan ServiceEvent, tea.Cmd) {
	ch := make(chan ServiceEvent, 50)

	m.mu.Lock()
	m.subscribers = append(m.subscribers, ch)
	m.mu.Unlock()

	return ch, waitForEvent(ch)
}

// waitForEvent returns a tea.Cmd that waits for the next event.
func waitForEvent(ch <-chan ServiceEvent) tea.Cmd {
	return func() tea.Msg {
		return <-ch
	}
}

// WaitForEvent returns a tea.Cmd for the next event on a channel.
func WaitForEvent(ch <-chan ServiceEvent) tea.Cmd {
	return waitForEvent(ch)
}

// Unsubscribe removes a subscriber channel.
func (m *Manager) Unsubscribe(ch chan ServiceEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, sub := range m.subscribers {
		if sub == ch {
			m.subscribers = append(m.subscribers[:i], m.subscribers[i+1:]...)
			close(ch)
			break
		}
	}
}

// ImportFile ingests one CSV file on demand.
func (m *Manager) ImportFile(ctx context.Context, path string) (ingest.Result, error) {
	res, err := m.importer.ImportFile(ctx, path)
	if err != nil {
		return res, err
	}
	m.broadcast(ImportCompletedEvent{Result: res})
	go m.refresh()
	return res, nil
}

// Coordinator returns the filter coordinator.
func (m *Manager) Coordinator() *filter.Coordinator {
	return m.coordinator
}

// Database returns the database instance for direct access.
func (m *Manager) Database() *db.DB {
	return m.database
}

// View returns the current bucketing view.
func (m *Manager) View() models.ViewType {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.view
}

// Breakdown returns the current demographic breakdown.
func (m *Manager) Breakdown() models.Breakdown {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.breakdown
}

// Metric returns the current metric.
func (m *Manager) Metric() models.Metric {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.metric
}

// Close closes the manager and all its services.
func (m *Manager) Close() error {
	close(m.stopChan)

	m.mu.Lock()
	for _, sub := range m.subscribers {
		close(sub)
	}
	m.subscribers = nil
	m.mu.Unlock()

	var errs []error

	if m.watcher != nil {
		if err := m.watcher.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	if m.database != nil {
		if err := m.database.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return errs[0]
	}
	return nil
}
