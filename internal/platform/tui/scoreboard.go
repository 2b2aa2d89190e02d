package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/knight-skies/internal/leaderboard"
)

// ScoreTab selects which leaderboard the scoreboard shows.
type ScoreTab int

const (
	TabLocal ScoreTab = iota
	TabWorld
)

func (t ScoreTab) String() string {
	if t == TabWorld {
		return "WORLD"
	}
	return "LOCAL"
}

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding
	Play  key.Binding
	Back  key.Binding
	Quit  key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Play, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Play, k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h", "shift+tab"),
			key.WithHelp("left", "local"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l", "tab"),
			key.WithHelp("right", "world"),
		),
		Play: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "play again"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "title"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ScoreboardModel shows the local and world top ten as tabs.
type ScoreboardModel struct {
	tab       ScoreTab
	local     []leaderboard.Record
	world     []leaderboard.Record
	online    bool
	highlight leaderboard.Record // Row to mark, usually the player's fresh entry
	table     table.Model
	help      help.Model
	keys      ScoreboardKeyMap
	width     int
	height    int
}

// NewScoreboardModel creates a new scoreboard model.
func NewScoreboardModel(width, height int, online bool) ScoreboardModel {
	h := help.New()
	h.ShowAll = false

	m := ScoreboardModel{
		online: online,
		keys:   DefaultScoreboardKeyMap(),
		help:   h,
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	return m
}

// createTable creates a new table with appropriate columns.
func (m *ScoreboardModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 6},
		{Title: "Name", Width: 8},
		{Title: "Score", Width: 10},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(min(leaderboard.Capacity+1, max(m.height-10, 3))),
	)

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

// SetLocal replaces the local rows.
func (m *ScoreboardModel) SetLocal(records []leaderboard.Record) {
	m.local = records
	m.updateTableRows()
}

// SetWorld replaces the world rows.
func (m *ScoreboardModel) SetWorld(records []leaderboard.Record) {
	m.world = records
	m.updateTableRows()
}

// SetHighlight marks r in both tables.
func (m *ScoreboardModel) SetHighlight(r leaderboard.Record) {
	m.highlight = r
	m.updateTableRows()
}

// SetTab switches the visible table.
func (m *ScoreboardModel) SetTab(tab ScoreTab) {
	m.tab = tab
	m.updateTableRows()
}

// Tab returns the visible table.
func (m ScoreboardModel) Tab() ScoreTab {
	return m.tab
}

// Resize adapts the layout to the terminal size.
func (m *ScoreboardModel) Resize(width, height int) {
	m.width = width
	m.height = height
	m.table = m.createTable()
	m.updateTableRows()
	m.help.Width = width
}

// rows returns the records of the visible tab.
func (m ScoreboardModel) rows() []leaderboard.Record {
	if m.tab == TabWorld {
		return m.world
	}
	return m.local
}

// updateTableRows updates the table with the visible records.
func (m *ScoreboardModel) updateTableRows() {
	records := m.rows()
	rows := make([]table.Row, len(records))
	cursor := 0
	marked := false
	for i, r := range records {
		rank := fmt.Sprintf("#%d", i+1)
		if !marked && m.highlight.Name != "" && r == m.highlight {
			rank = "> " + rank
			cursor = i
			marked = true
		}
		rows[i] = table.Row{rank, r.Name, fmt.Sprintf("%d", r.Score)}
	}
	m.table.SetRows(rows)
	m.table.SetCursor(cursor)
}

// Update handles scrolling and tab switching. Play, Back and Quit are left to
// the parent model.
func (m ScoreboardModel) Update(msg tea.Msg) (ScoreboardModel, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Right):
			m.SetTab(TabWorld)
			return m, nil
		case key.Matches(msg, m.keys.Left):
			m.SetTab(TabLocal)
			return m, nil
		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

// View renders the scoreboard with an optional notice line.
func (m ScoreboardModel) View(notice string) string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	b.WriteString(centerText(titleStyle.Render("HIGH SCORES"), m.width))
	b.WriteString("\n\n")

	tabStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Padding(0, 1)
	activeTabStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Padding(0, 1)

	tabs := make([]string, 0, 2)
	for _, t := range []ScoreTab{TabLocal, TabWorld} {
		if t == m.tab {
			tabs = append(tabs, activeTabStyle.Render(t.String()))
		} else {
			tabs = append(tabs, tabStyle.Render(t.String()))
		}
	}
	b.WriteString(centerText(lipgloss.JoinHorizontal(lipgloss.Top, tabs...), m.width))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(centerText(tableStyle.Render(m.renderTableContent()), m.width))
	b.WriteString("\n")

	if notice != "" {
		noticeStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
		b.WriteString(centerText(noticeStyle.Render(notice), m.width))
	}
	b.WriteString("\n")

	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderTableContent renders the table or an empty message.
func (m ScoreboardModel) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	if m.tab == TabWorld && !m.online {
		return emptyStyle.Render("World leaderboard offline.\nStart with --world <url> to compete.")
	}
	if len(m.rows()) == 0 {
		return emptyStyle.Render("No scores recorded yet.\nPlay a game to set a high score!")
	}
	return m.table.View()
}

// centerText pads every line of text so it sits in the middle of width.
func centerText(text string, width int) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		pad := (width - lipgloss.Width(line)) / 2
		if pad > 0 {
			lines[i] = strings.Repeat(" ", pad) + line
		}
	}
	return strings.Join(lines, "\n")
}
