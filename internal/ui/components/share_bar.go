package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/visionflow-analytics/visitor-dashboard-tui/internal/ui/styles"
)

// ShareBar renders a labeled horizontal percentage bar.
type ShareBar struct {
	Label   string
	Percent float64
	Width   int
	Color   lipgloss.Color
}

// Render draws the bar with its label and percentage.
func (b ShareBar) Render() string {
	width := b.Width
	if width < 10 {
		width = 10
	}

	percent := b.Percent
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}

	filled := int(percent / 100 * float64(width))
	if filled > width {
		filled = width
	}

	color := b.Color
	if color == "" {
		color = styles.Primary
	}

	bar := lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", filled)) +
		lipgloss.NewStyle().Foreground(styles.Subtle).Render(strings.Repeat("░", width-filled))

	return fmt.Sprintf("%-10s %s %5.1f%%", b.Label, bar, percent)
}

// RenderShareBars stacks several bars, sized to a common width.
func RenderShareBars(bars []ShareBar, width int) string {
	lines := make([]string, 0, len(bars))
	for _, b := range bars {
		b.Width = width
		lines = append(lines, b.Render())
	}
	return strings.Join(lines, "\n")
}

// StatCard renders a bordered card with a title and a large value line.
func StatCard(title, value, hint string) string {
	var b strings.Builder
	b.WriteString(styles.CardTitleStyle.Render(title))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(styles.TextPrimary).Render(value))
	if hint != "" {
		b.WriteString("\n")
		b.WriteString(styles.HelpStyle.Render(hint))
	}
	return styles.CardStyle.Render(b.String())
}
