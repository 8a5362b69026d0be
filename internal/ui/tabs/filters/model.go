// Package filters provides the location filter tab for the visitor TUI.
// It lets the user walk the division > department > store > camera
// hierarchy and narrow the data scope one level at a time.
package filters

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/visionflow-analytics/visitor-dashboard-tui/internal/app"
	"github.com/visionflow-analytics/visitor-dashboard-tui/internal/models"
	"github.com/visionflow-analytics/visitor-dashboard-tui/internal/ui/styles"
)

// keyMap defines the key bindings specific to the filters tab.
type keyMap struct {
	NextLevel key.Binding
	PrevLevel key.Binding
	Select    key.Binding
	Clear     key.Binding
	Reset     key.Binding
	Search    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		NextLevel: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next level"),
		),
		PrevLevel: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("shift+tab", "prev level"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "apply"),
		),
		Clear: key.NewBinding(
			key.WithKeys("backspace", "x"),
			key.WithHelp("x", "clear level"),
		),
		Reset: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "reset all"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
	}
}

// Model represents the filters tab state.
type Model struct {
	state     *app.State
	table     table.Model
	search    textinput.Model
	keys      keyMap
	focused   models.Level
	searching bool
	terms     [models.LevelCount]string
	width     int
	height    int
}

// New creates a new filters model.
func New(state *app.State) *Model {
	columns := []table.Column{
		{Title: "Option", Width: 40},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(10),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(styles.Subtle).
		BorderBottom(true).
		Bold(true).
		Foreground(styles.Primary)
	s.Selected = s.Selected.
		Foreground(styles.TextPrimary).
		Background(styles.BgAccent).
		Bold(true)
	t.SetStyles(s)

	search := textinput.New()
	search.Placeholder = "type to narrow options"
	search.Prompt = "/ "
	search.CharLimit = 64

	m := &Model{
		state:   state,
		table:   t,
		search:  search,
		keys:    defaultKeyMap(),
		focused: models.LevelDivision,
	}
	m.reloadRows()
	return m
}

// Init initializes the filters tab.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the filters tab.
func (m *Model) Update(msg tea.Msg) (app.Tab, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg)
		}

		switch {
		case key.Matches(msg, m.keys.Search):
			m.searching = true
			m.search.SetValue(m.terms[m.focused])
			return m, m.search.Focus()

		case key.Matches(msg, m.keys.NextLevel):
			m.focusLevel((m.focused + 1) % models.LevelCount)
			return m, nil

		case key.Matches(msg, m.keys.PrevLevel):
			m.focusLevel((m.focused - 1 + models.LevelCount) % models.LevelCount)
			return m, nil

		case key.Matches(msg, m.keys.Select):
			if row := m.table.SelectedRow(); len(row) > 0 {
				level, value := m.focused, strings.TrimPrefix(row[0], "● ")
				return m, func() tea.Msg {
					return app.SelectLevelMsg{Level: level, Value: value}
				}
			}

		case key.Matches(msg, m.keys.Clear):
			if m.state.Filter().Get(m.focused) != "" {
				level := m.focused
				return m, func() tea.Msg {
					return app.SelectLevelMsg{Level: level, Value: ""}
				}
			}

		case key.Matches(msg, m.keys.Reset):
			if !m.state.Filter().IsZero() {
				return m, func() tea.Msg {
					return app.ResetFilterMsg{}
				}
			}

		default:
			var cmd tea.Cmd
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case app.OptionsLoadedMsg:
		if msg.Level == m.focused {
			m.reloadRows()
		}

	case app.FilterChangedMsg:
		m.reloadRows()
	}

	return m, nil
}

// updateSearch routes keys to the search field while it is focused. Esc
// abandons the term and restores the full list, enter keeps the narrowed
// list and returns focus to the options table. Every keystroke re-derives
// the option list from the store under the new prefix.
func (m *Model) updateSearch(msg tea.KeyMsg) (app.Tab, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.searching = false
		m.search.Blur()
		m.search.SetValue("")
		if m.terms[m.focused] != "" {
			m.terms[m.focused] = ""
			level := m.focused
			return m, func() tea.Msg {
				return app.SearchOptionsMsg{Level: level, Query: ""}
			}
		}
		return m, nil

	case "enter":
		m.searching = false
		m.search.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)

	if term := m.search.Value(); term != m.terms[m.focused] {
		m.terms[m.focused] = term
		level := m.focused
		return m, tea.Batch(cmd, func() tea.Msg {
			return app.SearchOptionsMsg{Level: level, Query: term}
		})
	}
	return m, cmd
}

// CapturingInput reports whether the search field holds keyboard focus.
func (m *Model) CapturingInput() bool {
	return m.searching
}

// focusLevel moves the focus to another hierarchy level and reloads the
// option rows for it.
func (m *Model) focusLevel(level models.Level) {
	m.focused = level
	m.search.SetValue(m.terms[level])
	m.reloadRows()
	m.table.GotoTop()
}

// reloadRows rebuilds the table from the cached options of the focused
// level, marking the applied selection.
func (m *Model) reloadRows() {
	options := m.state.Options(m.focused)
	selected := m.state.Filter().Get(m.focused)

	rows := make([]table.Row, 0, len(options))
	cursor := 0
	for i, opt := range options {
		label := opt
		if opt == selected {
			label = "● " + opt
			cursor = i
		}
		rows = append(rows, table.Row{label})
	}
	m.table.SetRows(rows)
	if selected != "" {
		m.table.SetCursor(cursor)
	}
}

// SetSize sets the available size for the filters tab.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height

	tableHeight := height - 12
	if tableHeight < 3 {
		tableHeight = 3
	}
	m.table.SetHeight(tableHeight)

	colWidth := width - 12
	if colWidth < 20 {
		colWidth = 20
	}
	if colWidth > 60 {
		colWidth = 60
	}
	m.table.SetColumns([]table.Column{{Title: "Option", Width: colWidth}})
	m.search.Width = colWidth - 4
}

// ShortHelp returns the key bindings for the short help view.
func (m *Model) ShortHelp() []key.Binding {
	return []key.Binding{m.keys.NextLevel, m.keys.Select, m.keys.Search, m.keys.Reset}
}

// FullHelp returns the key bindings for the full help view.
func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.NextLevel, m.keys.PrevLevel, m.keys.Search},
		{m.keys.Select, m.keys.Clear, m.keys.Reset},
	}
}
