package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/visionflow-analytics/visitor-dashboard-tui/internal/models"
	"github.com/visionflow-analytics/visitor-dashboard-tui/internal/services"
)

// TickMsg is sent periodically to trigger state refresh.
type TickMsg struct {
	Time time.Time
}

// StartLoadingMsg signals that data is being fetched.
type StartLoadingMsg struct{}

// SeriesLoadedMsg carries a freshly aggregated series pair and KPI summary.
type SeriesLoadedMsg struct {
	Series  *models.Series
	Waiting *models.Series
	Stats   models.SummaryStats
}

// FilterChangedMsg signals that the selection or window changed.
type FilterChangedMsg struct {
	Filter models.LocationFilter
	Window models.TimeWindow
	Range  models.DateRange
}

// OptionsLoadedMsg carries the option list for one hierarchy level.
type OptionsLoadedMsg struct {
	Level   models.Level
	Options []string
}

// ImportCompletedMsg signals that a CSV file finished importing.
type ImportCompletedMsg struct {
	Path          string
	ProcessedRows int
	SkippedRows   int
}

// SelectLevelMsg requests selecting a value at a hierarchy level.
type SelectLevelMsg struct {
	Level models.Level
	Value string
}

// SearchOptionsMsg requests narrowing a level's option list to values with
// the given prefix.
type SearchOptionsMsg struct {
	Level models.Level
	Query string
}

// ResetFilterMsg requests clearing the whole hierarchy selection.
type ResetFilterMsg struct{}

// ExportResultMsg contains the result of an export operation.
type ExportResultMsg struct {
	Path    string
	Success bool
	Error   error
}

// AddNotificationMsg requests adding a new notification.
type AddNotificationMsg struct {
	Type     NotificationType
	Message  string
	Duration time.Duration
}

// RemoveNotificationMsg requests removal of a notification.
type RemoveNotificationMsg struct {
	ID string
}

// ClearExpiredNotificationsMsg triggers clearing of expired notifications.
type ClearExpiredNotificationsMsg struct{}

// ServiceEventMsg wraps a service event from the service manager.
type ServiceEventMsg struct {
	Event services.ServiceEvent
}

// SubscriptionEventMsg is the callback wrapper for service subscription.
type SubscriptionEventMsg struct {
	Channel chan services.ServiceEvent
}

// ErrorMsg represents a general error.
type ErrorMsg struct {
	Error   error
	Context string
}

// TabSwitchMsg requests switching to a specific tab.
type TabSwitchMsg struct {
	Tab TabID
}

// ToggleHelpMsg toggles the help display.
type ToggleHelpMsg struct{}

// DelayedMsg wraps a message to be sent after a delay.
type DelayedMsg struct {
	Delay time.Duration
	Msg   tea.Msg
}
