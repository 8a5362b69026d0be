package info

import (
	"fmt"
	"runtime"

	"github.com/charmbracelet/lipgloss"

	"github.com/visionflow-analytics/visitor-dashboard-tui/internal/ui/styles"
	"github.com/visionflow-analytics/visitor-dashboard-tui/internal/version"
)

// View renders the info tab.
func (m *Model) View() string {
	var sections []string

	sections = append(sections, m.renderTitle())
	sections = append(sections, m.renderConfigCard())
	sections = append(sections, m.renderDataCard())
	sections = append(sections, m.renderAboutCard())

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)

	m.viewport.SetContent(content)

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(m.viewport.View())
}

func (m *Model) renderTitle() string {
	title := styles.TitleStyle.Render("Info")
	subtitle := styles.HelpStyle.Render("Configuration and application information")

	return lipgloss.JoinVertical(lipgloss.Left, title, subtitle, "")
}

func (m *Model) cardWidth() int {
	w := m.width - 6
	if w < 50 {
		w = 50
	}
	if w > 80 {
		w = 80
	}
	return w
}

// renderConfigCard renders the configuration paths card.
func (m *Model) renderConfigCard() string {
	var rows []string
	rows = append(rows, styles.CardTitleStyle.Render("Configuration"))
	rows = append(rows, "")

	if m.config != nil {
		rows = append(rows, m.renderConfigRow("Database", m.config.DatabasePath))
		rows = append(rows, m.renderConfigRow("Import Dir", m.config.ImportPath))
		rows = append(rows, m.renderConfigRow("Refresh", m.config.RefreshInterval.String()))
		other := "excluded"
		if m.config.IncludeOther {
			other = "included"
		}
		rows = append(rows, m.renderConfigRow("Other Gender", other))
	} else {
		rows = append(rows, styles.HelpStyle.Render("Configuration not loaded"))
	}

	return styles.CardStyle.Width(m.cardWidth()).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

// renderDataCard summarizes the data currently loaded.
func (m *Model) renderDataCard() string {
	var rows []string
	rows = append(rows, styles.CardTitleStyle.Render("Data"))
	rows = append(rows, "")

	stats := m.state.Stats()
	rows = append(rows, m.renderConfigRow("Events", fmt.Sprintf("%d", stats.TotalEvents)))
	rows = append(rows, m.renderConfigRow("Unique Visitors", fmt.Sprintf("%d", stats.UniqueVisitors)))

	lastUpdated := "never"
	if !m.state.LastUpdated().IsZero() {
		lastUpdated = m.state.LastUpdated().Format("2006-01-02 15:04:05")
	}
	rows = append(rows, m.renderConfigRow("Last Updated", lastUpdated))

	return styles.CardStyle.Width(m.cardWidth()).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

// renderConfigRow renders a key-value row.
func (m *Model) renderConfigRow(label, value string) string {
	labelStyle := lipgloss.NewStyle().
		Width(18).
		Foreground(styles.TextMuted)

	valueStyle := lipgloss.NewStyle().
		Foreground(styles.TextPrimary)

	return labelStyle.Render(label+":") + " " + valueStyle.Render(value)
}

// renderAboutCard renders the about/version information card.
func (m *Model) renderAboutCard() string {
	ver, commit, date := version.GetVersion(), version.GetCommit(), version.GetDate()

	var rows []string
	rows = append(rows, styles.CardTitleStyle.Render("About Visitor Dashboard TUI"))
	rows = append(rows, "")

	rows = append(rows, m.renderConfigRow("Version", ver))
	rows = append(rows, m.renderConfigRow("Build Date", date))
	rows = append(rows, m.renderConfigRow("Git Commit", commit))
	rows = append(rows, m.renderConfigRow("Go Version", runtime.Version()))
	rows = append(rows, m.renderConfigRow("Platform", fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH)))

	return styles.CardStyle.Width(m.cardWidth()).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}
