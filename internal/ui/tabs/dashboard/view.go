package dashboard

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/visionflow-analytics/visitor-dashboard-tui/internal/models"
	"github.com/visionflow-analytics/visitor-dashboard-tui/internal/ui/components"
	"github.com/visionflow-analytics/visitor-dashboard-tui/internal/ui/styles"
)

// View renders the dashboard component.
func (m *Model) View() string {
	series := m.state.Series()
	if series == nil {
		return styles.DocStyle.Width(m.width).Height(m.height).Render(
			styles.HelpStyle.Render("Waiting for data..."))
	}

	var sections []string
	sections = append(sections, m.renderTitle())
	sections = append(sections, m.renderStats())
	sections = append(sections, m.renderChart(series))
	sections = append(sections, m.renderShares())

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)
	m.viewport.SetContent(content)

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(m.viewport.View())
}

func (m *Model) renderTitle() string {
	title := styles.TitleStyle.Render("Visitor Dashboard")

	window := m.state.Window()
	dates := m.state.Dates()
	subtitle := fmt.Sprintf("%s · %s to %s",
		window.Unit, dates.Start.Format("2006-01-02"), dates.End.Format("2006-01-02"))

	return lipgloss.JoinVertical(lipgloss.Left, title, styles.HelpStyle.Render(subtitle), "")
}

// renderStats renders the KPI card row.
func (m *Model) renderStats() string {
	stats := m.state.Stats()

	cards := []string{
		components.StatCard("Visitors", fmt.Sprintf("%d", stats.TotalEvents),
			fmt.Sprintf("%d unique", stats.UniqueVisitors)),
		components.StatCard("Avg Dwell", fmt.Sprintf("%.1f min", models.DwellMinutes(stats.AvgDwellSeconds)),
			fmt.Sprintf("%.1f h total", models.DwellHours(stats.TotalDwellSeconds))),
	}

	if male, female := stats.GenderShare(); male+female > 0 {
		cards = append(cards, components.StatCard("Gender Split",
			fmt.Sprintf("%.0f%% / %.0f%%", male, female), "male / female"))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func (m *Model) renderChart(series *models.Series) string {
	chartWidth := max(m.width-20, 30)
	chartHeight := max(min(m.height/2, 14), 5)

	caption := fmt.Sprintf("%s per %s bucket", series.Metric, series.View)
	chart := components.RenderSeriesChart(series, chartWidth, chartHeight, caption)

	legend := components.RenderLegend(series.Categories)

	labels := series.BucketLabels()
	heatmap := ""
	if len(labels) > 0 {
		totals := make([]float64, len(series.Points))
		for i, p := range series.Points {
			totals[i] = p.Total()
		}
		heatmap = components.RenderBucketHeatmap(totals, labels[0], labels[len(labels)-1])
	}

	return lipgloss.JoinVertical(lipgloss.Left, chart, "", legend, "", heatmap, "")
}

// renderShares draws per-category share bars for the current breakdown.
func (m *Model) renderShares() string {
	series := m.state.Series()
	if series == nil || len(series.Categories) <= 1 {
		return ""
	}

	total := series.Total()
	if total == 0 {
		return ""
	}

	barWidth := max(min(m.width-30, 40), 10)

	bars := make([]components.ShareBar, 0, len(series.Categories))
	for _, cat := range series.Categories {
		if cat.Key == models.CategoryTotal {
			continue
		}
		sum := 0.0
		for _, v := range series.Column(cat.Key) {
			sum += v
		}
		bars = append(bars, components.ShareBar{
			Label:   cat.Label,
			Percent: sum / total * 100,
			Color:   lipgloss.Color(cat.Color),
		})
	}

	return components.RenderShareBars(bars, barWidth)
}
