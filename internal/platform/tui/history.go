package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/reaction-x/internal/core"
	"github.com/vovakirdan/reaction-x/internal/storage"
)

// History layout constants
const (
	maxRounds     = 100 // Max rounds to load
	tableMinWidth = 50  // Below this the session column is dropped
)

// HistoryView selects which rounds the viewer lists.
type HistoryView int

const (
	ViewFastest HistoryView = iota
	ViewRecent
)

// String returns the tab title of the view.
func (v HistoryView) String() string {
	if v == ViewRecent {
		return "Recent"
	}
	return "Fastest"
}

// HistoryKeyMap defines the key bindings for the history viewer.
type HistoryKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextView key.Binding
	Refresh  key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k HistoryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextView, k.Refresh, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k HistoryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextView},
		{k.Refresh, k.Quit},
	}
}

// DefaultHistoryKeyMap returns default key bindings.
func DefaultHistoryKeyMap() HistoryKeyMap {
	return HistoryKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextView: key.NewBinding(
			key.WithKeys("tab", "left", "right", "h", "l"),
			key.WithHelp("tab", "fastest/recent"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "reload"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// HistoryModel is the Bubble Tea model for the round journal viewer.
type HistoryModel struct {
	store    *storage.Store
	view     HistoryView
	rounds   []storage.RoundEntry
	stats    *storage.Stats
	loadErr  error
	table    table.Model
	help     help.Model
	keys     HistoryKeyMap
	width    int
	height   int
	quitting bool
}

// NewHistoryModel creates a viewer over store starting on view.
func NewHistoryModel(store *storage.Store, view HistoryView, width, height int) HistoryModel {
	h := help.New()
	h.ShowAll = false

	m := HistoryModel{
		store:  store,
		view:   view,
		keys:   DefaultHistoryKeyMap(),
		help:   h,
		width:  width,
		height: height,
	}

	m.table = m.createTable()
	m.load()

	return m
}

// createTable creates a new table with appropriate columns.
func (m *HistoryModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 5},
		{Title: "Time", Width: 9},
		{Title: "Outcome", Width: 8},
		{Title: "Date", Width: 14},
	}
	if m.width-4 >= tableMinWidth {
		columns = append(columns, table.Column{Title: "Session", Width: 10})
	}

	// Leave room for header, stats, help and margins
	height := core.Clamp(m.height-10, 3, maxRounds)

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	// Table styles
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// load reads the current view and the stats from the store.
func (m *HistoryModel) load() {
	m.rounds, m.stats, m.loadErr = nil, nil, nil
	if m.store == nil {
		m.updateTableRows()
		return
	}

	var rounds []storage.RoundEntry
	var err error
	if m.view == ViewRecent {
		rounds, err = m.store.RecentRounds(maxRounds)
	} else {
		rounds, err = m.store.FastestRounds(maxRounds)
	}
	if err != nil {
		m.loadErr = err
	} else {
		m.rounds = rounds
	}

	if stats, err := m.store.GetStats(); err == nil {
		m.stats = stats
	}
	m.updateTableRows()
}

// updateTableRows updates the table with current rounds.
func (m *HistoryModel) updateTableRows() {
	withSession := len(m.table.Columns()) > 4

	rows := make([]table.Row, len(m.rounds))
	for i, r := range m.rounds {
		row := table.Row{
			fmt.Sprintf("%d", i+1),
			FormatRoundTime(r),
			r.Outcome,
			r.CreatedAt.Format("Jan 02 15:04"),
		}
		if withSession {
			row = append(row, ShortID(r.SessionID))
		}
		rows[i] = row
	}
	m.table.SetRows(rows)

	// Reset cursor to top
	m.table.GotoTop()
}

// Init initializes the history model.
func (m HistoryModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the viewer.
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextView):
			m.view = (m.view + 1) % 2
			m.load()
			return m, nil

		case key.Matches(msg, m.keys.Refresh):
			m.load()
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			// Pass to table for scrolling
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	// Pass other messages to table
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the viewer.
func (m HistoryModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(titleStyle.MarginBottom(1).Render(centerText("ROUND HISTORY", m.width)))
	b.WriteString("\n")
	b.WriteString(m.renderTabs())
	b.WriteString("\n")
	b.WriteString(statusStyle.Render(FormatStats(m.stats)))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(tableStyle.Render(m.renderTableContent()))

	// Help bar
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

func (m HistoryModel) renderTabs() string {
	tabStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Padding(0, 1)
	activeTabStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Padding(0, 1)

	tabs := make([]string, 2)
	for i, v := range []HistoryView{ViewFastest, ViewRecent} {
		if v == m.view {
			tabs[i] = activeTabStyle.Render(v.String())
		} else {
			tabs[i] = tabStyle.Render(v.String())
		}
	}
	return strings.Join(tabs, " ")
}

// renderTableContent renders the table or empty message.
func (m HistoryModel) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	switch {
	case m.store == nil:
		return emptyStyle.Render("Round journal unavailable.")
	case m.loadErr != nil:
		return emptyStyle.Render("Could not load rounds:\n" + m.loadErr.Error())
	case len(m.rounds) == 0:
		return emptyStyle.Render("No rounds recorded yet.\nRun 'reactionx play' to set a time!")
	}

	return m.table.View()
}

// IsQuitting returns true if the user closed the viewer.
func (m HistoryModel) IsQuitting() bool {
	return m.quitting
}

// RunHistory runs the history viewer.
func RunHistory(store *storage.Store, view HistoryView, width, height int) error {
	model := NewHistoryModel(store, view, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}

// FormatRoundTime renders a round's time column.
func FormatRoundTime(r storage.RoundEntry) string {
	if r.Outcome == storage.OutcomeEarly {
		return "early"
	}
	return fmt.Sprintf("%d ms", r.ReactionMs)
}

// FormatStats renders the one-line journal summary.
func FormatStats(s *storage.Stats) string {
	if s == nil || s.Rounds == 0 {
		return "no rounds yet"
	}
	line := fmt.Sprintf("%d rounds  %d early  %d sessions", s.Rounds, s.Early, s.Sessions)
	if s.Scored > 0 {
		line += fmt.Sprintf("  best %d ms  avg %.0f ms", s.BestMs, s.AvgMs)
	}
	if !s.LastPlayed.IsZero() {
		line += "  last " + s.LastPlayed.Format("Jan 02 15:04")
	}
	return line
}

// ShortID shortens a uuid for display.
func ShortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// centerText centers text within the given width.
func centerText(text string, width int) string {
	textWidth := lipgloss.Width(text)
	if textWidth >= width {
		return text
	}
	padding := (width - textWidth) / 2
	return strings.Repeat(" ", padding) + text
}
