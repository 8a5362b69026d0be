// Package components provides reusable UI components for the TUI.
package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/visionflow-analytics/visitor-dashboard-tui/internal/models"
	"github.com/visionflow-analytics/visitor-dashboard-tui/internal/ui/styles"
)

// seriesColors are cycled positionally, mirroring the palette order used for
// category assignment.
var seriesColors = []asciigraph.AnsiColor{
	asciigraph.Blue,
	asciigraph.Red,
	asciigraph.Green,
	asciigraph.Orange,
	asciigraph.Fuchsia,
	asciigraph.Brown,
	asciigraph.Pink,
	asciigraph.Gray,
	asciigraph.Olive,
	asciigraph.Aqua,
}

// ColorAt returns the chart color for a category position.
func ColorAt(i int) asciigraph.AnsiColor {
	return seriesColors[i%len(seriesColors)]
}

// RenderSeriesChart plots every category of an aggregated series as one line,
// colored in palette order.
func RenderSeriesChart(series *models.Series, width, height int, caption string) string {
	if series == nil || len(series.Points) == 0 {
		return styles.HelpStyle.Render("No data available")
	}

	if width < 20 {
		width = 20
	}
	if height < 3 {
		height = 3
	}

	data := make([][]float64, len(series.Categories))
	colors := make([]asciigraph.AnsiColor, len(series.Categories))
	for i, cat := range series.Categories {
		data[i] = series.Column(cat.Key)
		colors[i] = ColorAt(i)
	}

	return asciigraph.PlotMany(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
		asciigraph.SeriesColors(colors...),
	)
}

// RenderBarChart creates a simple horizontal bar chart.
func RenderBarChart(values []float64, labels []string, width int) string {
	if len(values) == 0 {
		return ""
	}

	// Find max value for scaling
	maxVal := 0.0
	for _, v := range values {
		if v > maxVal {
			maxVal = v
		}
	}
	if maxVal == 0 {
		maxVal = 1
	}

	// Find max label length
	maxLabelLen := 0
	for _, l := range labels {
		if len(l) > maxLabelLen {
			maxLabelLen = len(l)
		}
	}

	barWidth := width - maxLabelLen - 10 // Leave room for label and value
	if barWidth < 10 {
		barWidth = 10
	}

	var lines []string
	for i, v := range values {
		label := ""
		if i < len(labels) {
			label = labels[i]
		}

		paddedLabel := fmt.Sprintf("%*s", maxLabelLen, label)

		barLen := int((v / maxVal) * float64(barWidth))
		if barLen < 0 {
			barLen = 0
		}

		bar := strings.Repeat("█", barLen)
		valueStr := fmt.Sprintf(" %.1f", v)

		line := paddedLabel + " │" + bar + valueStr
		lines = append(lines, line)
	}

	return strings.Join(lines, "\n")
}

// HeatmapBlocks are Unicode block characters for heatmaps (low to high intensity).
var HeatmapBlocks = []rune{'░', '▒', '▓', '█'}

// RenderBucketHeatmap renders one intensity cell per bucket, bracketed by the
// first and last bucket labels.
func RenderBucketHeatmap(values []float64, first, last string) string {
	if len(values) == 0 {
		return ""
	}

	maxVal := 0.0
	for _, v := range values {
		if v > maxVal {
			maxVal = v
		}
	}
	if maxVal == 0 {
		maxVal = 1
	}

	var result strings.Builder
	result.WriteString(first + " ")

	for _, v := range values {
		intensity := int((v / maxVal) * float64(len(HeatmapBlocks)-1))
		if intensity >= len(HeatmapBlocks) {
			intensity = len(HeatmapBlocks) - 1
		}
		if intensity < 0 {
			intensity = 0
		}

		style := styles.GetIntensityStyle(v / maxVal * 100)
		result.WriteString(style.Render(string(HeatmapBlocks[intensity])))
	}

	result.WriteString(" " + last)
	return result.String()
}

// RenderSparkline creates a compact inline sparkline chart.
func RenderSparkline(values []float64, width int) string {
	if len(values) == 0 {
		return ""
	}

	sparkChars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	// Find max value
	maxVal := 0.0
	for _, v := range values {
		if v > maxVal {
			maxVal = v
		}
	}
	if maxVal == 0 {
		maxVal = 1
	}

	// Sample values to fit width
	var result strings.Builder
	step := float64(len(values)) / float64(width)
	if step < 1 {
		step = 1
	}

	for i := 0; i < width && int(float64(i)*step) < len(values); i++ {
		idx := int(float64(i) * step)
		val := values[idx]
		normalized := int((val / maxVal) * float64(len(sparkChars)-1))
		if normalized >= len(sparkChars) {
			normalized = len(sparkChars) - 1
		}
		if normalized < 0 {
			normalized = 0
		}
		result.WriteRune(sparkChars[normalized])
	}

	return result.String()
}

// RenderLegend creates a chart legend from the series categories. The legend
// uses the category's palette color so it matches exported documents, not the
// terminal approximation used by the plot.
func RenderLegend(categories []models.Category) string {
	var parts []string
	for _, cat := range categories {
		colorBox := lipgloss.NewStyle().Foreground(lipgloss.Color(cat.Color)).Render("■")
		parts = append(parts, fmt.Sprintf("%s %s", colorBox, cat.Label))
	}
	return strings.Join(parts, "  ")
}
