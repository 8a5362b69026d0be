package waiting

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/visionflow-analytics/visitor-dashboard-tui/internal/models"
	"github.com/visionflow-analytics/visitor-dashboard-tui/internal/services/aggregate"
	"github.com/visionflow-analytics/visitor-dashboard-tui/internal/ui/components"
	"github.com/visionflow-analytics/visitor-dashboard-tui/internal/ui/styles"
)

// View renders the waiting-time component.
func (m *Model) View() string {
	series := m.state.Waiting()
	if series == nil {
		return styles.DocStyle.Width(m.width).Height(m.height).Render(
			styles.HelpStyle.Render("Waiting for data..."))
	}

	var sections []string
	sections = append(sections, m.renderTitle())
	sections = append(sections, m.renderSummary(series))
	sections = append(sections, m.renderChart(series))

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)
	m.viewport.SetContent(content)

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(m.viewport.View())
}

func (m *Model) renderTitle() string {
	title := styles.TitleStyle.Render("Waiting Visitors")
	subtitle := fmt.Sprintf("visitors with dwell time over %d minutes",
		aggregate.WaitingThresholdSeconds/60)
	return lipgloss.JoinVertical(lipgloss.Left, title, styles.HelpStyle.Render(subtitle), "")
}

// renderSummary shows how the waiting population relates to the full one.
func (m *Model) renderSummary(series *models.Series) string {
	stats := m.state.Stats()
	waitingTotal := series.Total()

	cards := []string{
		components.StatCard("Waiting", fmt.Sprintf("%.0f", waitingTotal),
			fmt.Sprintf("of %d visits", stats.TotalEvents)),
	}
	if stats.TotalEvents > 0 {
		share := waitingTotal / float64(stats.TotalEvents) * 100
		cards = append(cards, components.StatCard("Waiting Share",
			fmt.Sprintf("%.1f%%", share), "of all visits"))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func (m *Model) renderChart(series *models.Series) string {
	chartWidth := max(m.width-20, 30)
	chartHeight := max(min(m.height/2, 14), 5)

	caption := fmt.Sprintf("waiting %s per %s bucket", series.Metric, series.View)
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
