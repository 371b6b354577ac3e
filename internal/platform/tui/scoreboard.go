package tui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/slovotetris/internal/registry"
	"github.com/vovakirdan/slovotetris/internal/storage"
)

// Scoreboard layout.
const (
	boardWideWidth  = 100 // mode list and word panel sit beside the table
	modeListWidth   = 18
	wordPanelWidth  = 26
	boardScoreLimit = 100
	boardWordLimit  = 10
)

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextMode key.Binding
	PrevMode key.Binding
	Back     key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextMode, k.PrevMode, k.Up, k.Down, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextMode, k.PrevMode, k.Up, k.Down},
		{k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "scroll"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "scroll"),
		),
		NextMode: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab/→", "next mode"),
		),
		PrevMode: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab/←", "prev mode"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// modeBoard holds what the scoreboard shows for one mode.
type modeBoard struct {
	scores []storage.ScoreEntry
	words  []storage.WordEntry
	stats  *storage.ModeStats
	err    error
}

// loadBoard reads the top scores, the longest words and the totals of a mode.
// A nil store gives an empty board.
func loadBoard(store *storage.Store, modeID string) modeBoard {
	var b modeBoard
	if store == nil {
		return b
	}
	if b.scores, b.err = store.TopScores(modeID, boardScoreLimit); b.err != nil {
		return b
	}
	if b.words, b.err = store.LongestWords(modeID, boardWordLimit); b.err != nil {
		return b
	}
	b.stats, b.err = store.Stats(modeID)
	return b
}

// ScoreboardModel is the Bubble Tea model for the scoreboard screen.
type ScoreboardModel struct {
	modes     []registry.ModeInfo
	current   int
	store     *storage.Store
	board     modeBoard
	table     table.Model
	help      help.Model
	keys      ScoreboardKeyMap
	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewScoreboardModel creates a scoreboard showing the first registered mode.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		modes:  registry.List(),
		store:  store,
		keys:   DefaultScoreboardKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.table = m.newTable()
	m.showMode(0)
	return m
}

func (m ScoreboardModel) wide() bool {
	return m.width >= boardWideWidth
}

func (m *ScoreboardModel) newTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Score", Width: 7},
		{Title: "Words", Width: 6},
		{Title: "Best word", Width: 14},
		{Title: "Played", Width: 12},
	}

	spare := m.width - 4 - 48
	if m.wide() {
		spare -= modeListWidth + wordPanelWidth + 8
	}
	if spare > 0 {
		columns[3].Width += min(spare, 10)
	}

	// Title, summary, tabs, help and borders take ten lines.
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-10, 3)),
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

// showMode switches to the mode at index i, wrapping around, and reloads
// its board.
func (m *ScoreboardModel) showMode(i int) {
	if len(m.modes) == 0 {
		m.board = modeBoard{}
		m.table.SetRows(nil)
		return
	}
	n := len(m.modes)
	m.current = (i%n + n) % n
	m.board = loadBoard(m.store, m.modes[m.current].ID)
	m.fillTable()
}

func (m *ScoreboardModel) fillTable() {
	rows := make([]table.Row, len(m.board.scores))
	for i, s := range m.board.scores {
		rows[i] = table.Row{
			fmt.Sprintf("%d", i+1),
			fmt.Sprintf("%d", s.Score),
			fmt.Sprintf("%d", s.Words),
			strings.ToUpper(s.BestWord),
			s.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.NextMode):
			m.showMode(m.current + 1)
			return m, nil
		case key.Matches(msg, m.keys.PrevMode):
			m.showMode(m.current - 1)
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.table = m.newTable()
		m.fillTable()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

var (
	boardTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	boardDimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	boardActiveStyle = boardTitleStyle.Background(lipgloss.Color("57")).Padding(0, 1)
	boardBoxStyle    = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("240")).
				Padding(0, 1)
)

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	title := "HIGH SCORES"
	if len(m.modes) > 0 {
		title += " - " + m.modes[m.current].Title
	}

	var b strings.Builder
	b.WriteString(boardTitleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n")
	b.WriteString(boardDimStyle.Render(centerText(m.summary(), m.width)))
	b.WriteString("\n\n")

	if m.wide() {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
			m.renderModeList(), " ", m.renderScores(), " ", m.renderWords()))
	} else {
		b.WriteString(centerText(m.renderModeTabs(), m.width))
		b.WriteString("\n\n")
		b.WriteString(lipgloss.JoinVertical(lipgloss.Center, m.renderScores(), m.renderWords()))
	}

	b.WriteString("\n")
	b.WriteString(boardDimStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// summary is the one-line totals of the current mode.
func (m ScoreboardModel) summary() string {
	st := m.board.stats
	if st == nil || st.GamesCount == 0 {
		return "no games yet"
	}
	return fmt.Sprintf("best %d | %d games | average %.0f | %d words | last %s",
		st.HighScore, st.GamesCount, st.AvgScore, st.TotalWords, st.LastPlayed.Format("Jan 02"))
}

func (m ScoreboardModel) renderModeList() string {
	var sb strings.Builder
	sb.WriteString("Modes\n")
	for i, mode := range m.modes {
		name := truncate(mode.Title, modeListWidth-4)
		if i == m.current {
			sb.WriteString(boardTitleStyle.Render("> " + name))
		} else {
			sb.WriteString("  " + name)
		}
		sb.WriteString("\n")
	}
	return boardBoxStyle.Width(modeListWidth).Render(strings.TrimRight(sb.String(), "\n"))
}

func (m ScoreboardModel) renderModeTabs() string {
	tabs := make([]string, len(m.modes))
	for i, mode := range m.modes {
		name := truncate(mode.Title, 12)
		if i == m.current {
			tabs[i] = boardActiveStyle.Render(name)
		} else {
			tabs[i] = boardDimStyle.Render(" " + name + " ")
		}
	}
	line := strings.Join(tabs, " ")
	if lipgloss.Width(line) > m.width-4 && len(m.modes) > 0 {
		line = fmt.Sprintf("< %s >", m.modes[m.current].Title)
	}
	return line
}

func (m ScoreboardModel) renderScores() string {
	switch {
	case m.board.err != nil:
		return boardBoxStyle.Render(boardDimStyle.Render("cannot read scores: " + m.board.err.Error()))
	case len(m.board.scores) == 0:
		empty := boardDimStyle.Italic(true).Padding(1, 3)
		return boardBoxStyle.Render(empty.Render("No scores recorded yet.\nClear a few words to set one!"))
	}
	return boardBoxStyle.Render(m.table.View())
}

// renderWords lists the longest words cleared in the mode with their length
// and the most points any of them earned.
func (m ScoreboardModel) renderWords() string {
	var sb strings.Builder
	sb.WriteString(boardTitleStyle.Render("Longest words"))
	if len(m.board.words) == 0 {
		sb.WriteString("\n")
		sb.WriteString(boardDimStyle.Render("none cleared yet"))
	}
	for _, w := range m.board.words {
		word := truncate(strings.ToUpper(w.Word), 14)
		fmt.Fprintf(&sb, "\n%-14s %2d %4d", word, utf8.RuneCountInString(w.Word), w.Points)
	}

	style := boardBoxStyle
	if m.wide() {
		style = style.Width(wordPanelWidth)
	}
	return style.Render(sb.String())
}

// truncate shortens s to at most n runes, marking the cut with a dot.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "."
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}
