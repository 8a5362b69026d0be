package filters

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/visionflow-analytics/visitor-dashboard-tui/internal/models"
	"github.com/visionflow-analytics/visitor-dashboard-tui/internal/ui/styles"
)

// View renders the filters tab.
func (m *Model) View() string {
	var sections []string

	sections = append(sections, m.renderTitle())
	sections = append(sections, m.renderPath())
	sections = append(sections, m.renderLevelStrip())
	sections = append(sections, m.renderSearch())
	sections = append(sections, m.renderOptions())
	sections = append(sections, m.renderFooter())

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(content)
}

func (m *Model) renderTitle() string {
	title := styles.TitleStyle.Render("Location Filter")

	filter := m.state.Filter()
	subtitle := "showing all locations"
	if !filter.IsZero() {
		subtitle = fmt.Sprintf("narrowed to %s level", filter.Narrowest())
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, styles.HelpStyle.Render(subtitle), "")
}

// renderPath shows the applied selection at every hierarchy level.
func (m *Model) renderPath() string {
	filter := m.state.Filter()

	parts := make([]string, 0, models.LevelCount)
	for l := models.LevelDivision; l < models.LevelCount; l++ {
		value := filter.Get(l)
		if value == "" {
			value = "all"
		}
		label := styles.HelpStyle.Render(l.String()+": ") + styles.InfoTextStyle.Render(value)
		parts = append(parts, label)
	}

	path := ""
	for i, p := range parts {
		if i > 0 {
			path += styles.HelpStyle.Render("  >  ")
		}
		path += p
	}

	return lipgloss.NewStyle().MarginBottom(1).Render(path)
}

// renderLevelStrip shows which level the option list belongs to.
func (m *Model) renderLevelStrip() string {
	var cells []string
	for l := models.LevelDivision; l < models.LevelCount; l++ {
		name := " " + l.String() + " "
		if l == m.focused {
			cells = append(cells, styles.SelectedListItemStyle.Render(name))
		} else {
			cells = append(cells, styles.ListItemStyle.Render(name))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

// renderSearch shows the prefix search line. The input is visible while it
// holds focus or a term is applied; otherwise the line only hints the key.
func (m *Model) renderSearch() string {
	if m.searching {
		return m.search.View()
	}
	if term := m.terms[m.focused]; term != "" {
		return styles.HelpStyle.Render("search: ") + styles.InfoTextStyle.Render(term)
	}
	return styles.HelpStyle.Render("/ to search")
}

// renderOptions renders the option table for the focused level.
func (m *Model) renderOptions() string {
	options := m.state.Options(m.focused)

	cardWidth := m.width - 6
	if cardWidth < 40 {
		cardWidth = 40
	}

	if len(options) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Center,
			"",
			styles.SubTitleStyle.Render(fmt.Sprintf("No %s Options", m.focused)),
			"",
			styles.HelpStyle.Render("Select a broader level first, or import visitor data."),
			"",
		)
		return styles.CardStyle.Width(cardWidth).Render(content)
	}

	return styles.CardStyle.Width(cardWidth).Render(m.table.View())
}

// renderFooter renders the footer with keyboard shortcuts.
func (m *Model) renderFooter() string {
	shortcuts := []string{
		styles.HelpKeyStyle.Render("Tab") + " level",
		styles.HelpKeyStyle.Render("Enter") + " apply",
		styles.HelpKeyStyle.Render("/") + " search",
		styles.HelpKeyStyle.Render("x") + " clear level",
		styles.HelpKeyStyle.Render("Esc") + " reset all",
	}

	footer := ""
	for i, s := range shortcuts {
		if i > 0 {
			footer += styles.HelpStyle.Render(" | ")
		}
		footer += s
	}

	return lipgloss.NewStyle().MarginTop(1).Render(footer)
}
