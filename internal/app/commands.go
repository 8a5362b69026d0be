package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/visionflow-analytics/visitor-dashboard-tui/internal/export"
	"github.com/visionflow-analytics/visitor-dashboard-tui/internal/models"
	"github.com/visionflow-analytics/visitor-dashboard-tui/internal/services"
)

const (
	// DefaultTickInterval is the default interval between ticks.
	DefaultTickInterval = 2 * time.Second

	// DefaultNotificationDuration is the default duration for notifications.
	DefaultNotificationDuration = 5 * time.Second

	// QuickNotificationDuration is for brief notifications.
	QuickNotificationDuration = 3 * time.Second

	// LongNotificationDuration is for important notifications.
	LongNotificationDuration = 10 * time.Second
)

// tickCmd returns a command that sends a TickMsg after the specified interval.
func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Time: t}
	})
}

// defaultTickCmd returns a command that sends a TickMsg after the default interval.
func defaultTickCmd() tea.Cmd {
	return tickCmd(DefaultTickInterval)
}

// subscribeToServicesCmd returns a command that subscribes to service events.
func subscribeToServicesCmd(mgr *services.Manager) tea.Cmd {
	ch, _ := mgr.Subscribe()
	return func() tea.Msg {
		return SubscriptionEventMsg{Channel: ch}
	}
}

// waitForServiceEventCmd returns a command that waits for the next service event.
func waitForServiceEventCmd(ch <-chan services.ServiceEvent) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-ch
		if !ok {
			return nil
		}
		return ServiceEventMsg{Event: event}
	}
}

// refreshCmd asks the manager to recompute the current series.
func refreshCmd(mgr *services.Manager) tea.Cmd {
	return func() tea.Msg {
		mgr.Refresh()
		return StartLoadingMsg{}
	}
}

// selectLevelCmd applies a hierarchy selection through the coordinator.
func selectLevelCmd(mgr *services.Manager, level models.Level, value string) tea.Cmd {
	return func() tea.Msg {
		mgr.Coordinator().Select(context.Background(), level, value)
		return nil
	}
}

// searchOptionsCmd narrows a level's option list by prefix.
func searchOptionsCmd(mgr *services.Manager, level models.Level, query string) tea.Cmd {
	return func() tea.Msg {
		mgr.Coordinator().Search(context.Background(), level, query)
		return nil
	}
}

// resetFilterCmd clears the whole hierarchy selection.
func resetFilterCmd(mgr *services.Manager) tea.Cmd {
	return func() tea.Msg {
		mgr.Coordinator().Reset(context.Background())
		return nil
	}
}

// cycleUnitCmd advances the period unit (day, week, month, quarter, year).
func cycleUnitCmd(mgr *services.Manager) tea.Cmd {
	return func() tea.Msg {
		mgr.Coordinator().CycleUnit()
		return nil
	}
}

// exportCmd writes the series to disk in the requested format.
func exportCmd(series *models.Series, meta export.Metadata, format, dir string) tea.Cmd {
	return func() tea.Msg {
		if series == nil {
			return ExportResultMsg{Success: false, Error: fmt.Errorf("no data to export")}
		}

		var content string
		var ext string
		switch format {
		case "json":
			doc, err := export.Document(series, meta)
			if err != nil {
				return ExportResultMsg{Success: false, Error: err}
			}
			content, ext = doc, "json"
		default:
			content, ext = export.DelimitedText(series), "csv"
		}

		name := fmt.Sprintf("visitors-%s.%s", time.Now().Format("20060102-150405"), ext)
		path := filepath.Join(dir, name)

		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			return ExportResultMsg{Path: path, Success: false, Error: err}
		}
		return ExportResultMsg{Path: path, Success: true}
	}
}

// clearNotificationCmd returns a command that removes a notification after a delay.
func clearNotificationCmd(id string, delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(_ time.Time) tea.Msg {
		return RemoveNotificationMsg{ID: id}
	})
}

// notifySuccessCmd returns a command that adds a success notification.
func notifySuccessCmd(message string) tea.Cmd {
	return func() tea.Msg {
		return AddNotificationMsg{
			Type:     NotificationSuccess,
			Message:  message,
			Duration: DefaultNotificationDuration,
		}
	}
}

// notifyErrorCmd returns a command that adds an error notification.
func notifyErrorCmd(message string) tea.Cmd {
	return func() tea.Msg {
		return AddNotificationMsg{
			Type:     NotificationError,
			Message:  message,
			Duration: LongNotificationDuration,
		}
	}
}

// notifyInfoCmd returns a command that adds an info notification.
func notifyInfoCmd(message string) tea.Cmd {
	return func() tea.Msg {
		return AddNotificationMsg{
			Type:     NotificationInfo,
			Message:  message,
			Duration: QuickNotificationDuration,
		}
	}
}

// delayedCmd returns a command that sends a message after a delay.
func delayedCmd(delay time.Duration, msg tea.Msg) tea.Cmd {
	return tea.Tick(delay, func(_ time.Time) tea.Msg {
		return msg
	})
}

// Commands provides a public interface to the command functions.
type Commands struct {
	manager *services.Manager
}

// NewCommands creates a new Commands instance.
func NewCommands(mgr *services.Manager) *Commands {
	return &Commands{manager: mgr}
}

// Tick returns a tick command with the specified interval.
func (c *Commands) Tick(interval time.Duration) tea.Cmd {
	return tickCmd(interval)
}

// Refresh returns a command that recomputes the current series.
func (c *Commands) Refresh() tea.Cmd {
	return refreshCmd(c.manager)
}

// SelectLevel returns a command that applies a hierarchy selection.
func (c *Commands) SelectLevel(level models.Level, value string) tea.Cmd {
	return selectLevelCmd(c.manager, level, value)
}

// SearchOptions returns a command that narrows a level's options by prefix.
func (c *Commands) SearchOptions(level models.Level, query string) tea.Cmd {
	return searchOptionsCmd(c.manager, level, query)
}

// ResetFilter returns a command that clears the selection.
func (c *Commands) ResetFilter() tea.Cmd {
	return resetFilterCmd(c.manager)
}

// CycleUnit returns a command that advances the period unit.
func (c *Commands) CycleUnit() tea.Cmd {
	return cycleUnitCmd(c.manager)
}

// Export returns a command that writes the series to disk.
func (c *Commands) Export(series *models.Series, meta export.Metadata, format, dir string) tea.Cmd {
	return exportCmd(series, meta, format, dir)
}

// NotifySuccess returns a command that adds a success notification.
func (c *Commands) NotifySuccess(message string) tea.Cmd {
	return notifySuccessCmd(message)
}

// NotifyError returns a command that adds an error notification.
func (c *Commands) NotifyError(message string) tea.Cmd {
	return notifyErrorCmd(message)
}

// NotifyInfo returns a command that adds an info notification.
func (c *Commands) NotifyInfo(message string) tea.Cmd {
	return notifyInfoCmd(message)
}

// Delayed returns a command that sends a message after a delay.
func (c *Commands) Delayed(delay time.Duration, msg tea.Msg) tea.Cmd {
	return delayedCmd(delay, msg)
}
