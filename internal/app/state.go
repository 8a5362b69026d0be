// Package app provides the main Bubble Tea application model and state management.
package app

import (
	"sync"
	"time"

	"github.com/visionflow-analytics/visitor-dashboard-tui/internal/models"
)

// NotificationType defines the type of notification.
type NotificationType int

const (
	// NotificationSuccess represents a success notification.
	NotificationSuccess NotificationType = iota
	// NotificationError represents an error notification.
	NotificationError
	// NotificationWarning represents a warning notification.
	NotificationWarning
	// NotificationInfo represents an informational notification.
	NotificationInfo
	// NotificationLoading represents a loading notification with spinner.
	NotificationLoading
)

const (
	// LoadingNotificationID is the fixed ID for loading notifications.
	LoadingNotificationID = "__loading__"
)

// String returns the string representation of a NotificationType.
func (n NotificationType) String() string {
	switch n {
	case NotificationSuccess:
		return "success"
	case NotificationError:
		return "error"
	case NotificationWarning:
		return "warning"
	case NotificationInfo:
		return "info"
	default:
		return "unknown"
	}
}

// Notification represents a user-facing notification message.
type Notification struct {
	ID        string
	Type      NotificationType
	Message   string
	CreatedAt time.Time
	Duration  time.Duration
}

// IsExpired returns true if the notification has expired.
func (n *Notification) IsExpired() bool {
	if n.Duration <= 0 {
		return false
	}
	return time.Since(n.CreatedAt) > n.Duration
}

// State is the shared application state consumed by all tabs.
type State struct {
	mu sync.RWMutex

	series  *models.Series
	waiting *models.Series
	stats   models.SummaryStats

	filter  models.LocationFilter
	window  models.TimeWindow
	dates   models.DateRange
	options map[models.Level][]string

	loading     bool
	lastUpdated time.Time

	notifications   []Notification
	notificationSeq int
}

// NewState creates an empty application state.
func NewState() *State {
	return &State{
		options: make(map[models.Level][]string),
		loading: true,
	}
}

// SetLoading marks the state as loading or idle.
func (s *State) SetLoading(loading bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = loading
}

// IsLoading returns true while data is being fetched.
func (s *State) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// SetSeries stores a freshly aggregated series pair and its KPI summary.
func (s *State) SetSeries(series, waiting *models.Series, stats models.SummaryStats) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.series = series
	s.waiting = waiting
	s.stats = stats
	s.loading = false
	s.lastUpdated = time.Now()
}

// Series returns the current aggregated series.
func (s *State) Series() *models.Series {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.series
}

// Waiting returns the series restricted to waiting visitors.
func (s *State) Waiting() *models.Series {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.waiting
}

// Stats returns the KPI summary for the current filter and range.
func (s *State) Stats() models.SummaryStats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stats
}

// SetFilter stores the active selection and its resolved date range.
func (s *State) SetFilter(filter models.LocationFilter, window models.TimeWindow, dates models.DateRange) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.filter = filter
	s.window = window
	s.dates = dates
}

// Filter returns the active hierarchy selection.
func (s *State) Filter() models.LocationFilter {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filter
}

// Window returns the active time window.
func (s *State) Window() models.TimeWindow {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.window
}

// Dates returns the resolved date range.
func (s *State) Dates() models.DateRange {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dates
}

// SetOptions stores the option list for one hierarchy level.
func (s *State) SetOptions(level models.Level, options []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.options[level] = options
}

// Options returns a copy of the option list for a level.
func (s *State) Options(level models.Level) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	opts := make([]string, len(s.options[level]))
	copy(opts, s.options[level])
	return opts
}

// AddNotification adds a new notification and returns its ID.
func (s *State) AddNotification(notifType NotificationType, message string, duration time.Duration) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.notificationSeq++
	id := time.Now().Format("20060102150405") + "-" + string(rune('A'+s.notificationSeq%26))

	notification := Notification{
		ID:        id,
		Type:      notifType,
		Message:   message,
		CreatedAt: time.Now(),
		Duration:  duration,
	}

	s.notifications = append(s.notifications, notification)

	// Keep only the last 10 notifications
	if len(s.notifications) > 10 {
		s.notifications = s.notifications[len(s.notifications)-10:]
	}

	return id
}

// RemoveNotification removes a notification by ID.
func (s *State) RemoveNotification(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, n := range s.notifications {
		if n.ID == id {
			s.notifications = append(s.notifications[:i], s.notifications[i+1:]...)
			return
		}
	}
}

// ClearExpiredNotifications removes all expired notifications.
func (s *State) ClearExpiredNotifications() {
	s.mu.Lock()
	defer s.mu.Unlock()

	active := make([]Notification, 0, len(s.notifications))
	for _, n := range s.notifications {
		if !n.IsExpired() {
			active = append(active, n)
		}
	}
	s.notifications = active
}

// GetNotifications returns a copy of all active notifications.
func (s *State) GetNotifications() []Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()

	active := make([]Notification, 0, len(s.notifications))
	for _, n := range s.notifications {
		if !n.IsExpired() {
			active = append(active, n)
		}
	}

	return active
}

// SetLoadingNotification sets a loading notification message.
func (s *State) SetLoadingNotification(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, n := range s.notifications {
		if n.ID == LoadingNotificationID {
			s.notifications[i].Message = message
			return
		}
	}

	s.notifications = append(s.notifications, Notification{
		ID:        LoadingNotificationID,
		Type:      NotificationLoading,
		Message:   message,
		CreatedAt: time.Now(),
		Duration:  0,
	})
}

// ClearLoadingNotification removes the loading notification.
func (s *State) ClearLoadingNotification() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, n := range s.notifications {
		if n.ID == LoadingNotificationID {
			s.notifications = append(s.notifications[:i], s.notifications[i+1:]...)
			return
		}
	}
}

// LastUpdated returns the last time series data arrived.
func (s *State) LastUpdated() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastUpdated
}

// TimeSinceUpdate returns the duration since the last update.
func (s *State) TimeSinceUpdate() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.lastUpdated.IsZero() {
		return 0
	}
	return time.Since(s.lastUpdated)
}
