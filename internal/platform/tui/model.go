package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/slovotetris/internal/figure"
	"github.com/vovakirdan/slovotetris/internal/game"
	"github.com/vovakirdan/slovotetris/internal/grid"
	"github.com/vovakirdan/slovotetris/internal/scan"
	"github.com/vovakirdan/slovotetris/internal/storage"
)

// GameFactory creates a fresh game for a mode.
type GameFactory func(mode string, seed int64) (*game.State, error)

// Model is the Bubble Tea model of the game screen.
type Model struct {
	state  *game.State
	store  *storage.Store
	keys   KeyMap
	help   help.Model
	cursor grid.Pos
	figure int // index into the figure queue

	joker    bool // waiting for the joker letter
	flash    string
	flashSeq int

	width      int
	height     int
	standalone bool // Back quits instead of returning to a menu
	quitting   bool
	backToMenu bool
	scoreSaved bool // Whether the current game has been saved
}

// NewModel creates a game screen over state. store may be nil.
func NewModel(state *game.State, store *storage.Store) Model {
	size := state.Grid().Size()
	return Model{
		state:  state,
		store:  store,
		keys:   DefaultKeyMap(),
		help:   help.New(),
		cursor: grid.P(size/2, size/2),
	}
}

// Init implements tea.Model. The game is turn based, so nothing ticks.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case FlashExpiredMsg:
		if msg.seq == m.flashSeq {
			m.flash = ""
		}
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.joker {
		return m.handleJokerKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.saveScore()
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Back):
		m.saveScore()
		if m.standalone {
			m.quitting = true
			return m, tea.Quit
		}
		m.backToMenu = true
		return m, nil

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Restart):
		m.saveScore()
		m.state.Reset(time.Now().UnixNano())
		m.scoreSaved = false
		m.figure = 0
		m.joker = false
		return m.setFlash("new game")

	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1, 0)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1, 0)
	case key.Matches(msg, m.keys.Left):
		m.moveCursor(0, -1)
	case key.Matches(msg, m.keys.Right):
		m.moveCursor(0, 1)

	case key.Matches(msg, m.keys.NextFigure):
		m.cycleFigure(1)
	case key.Matches(msg, m.keys.PrevFigure):
		m.cycleFigure(-1)

	case key.Matches(msg, m.keys.RotateCCW):
		return m.rotate(-90)
	case key.Matches(msg, m.keys.RotateCW):
		return m.rotate(90)

	case key.Matches(msg, m.keys.Drop):
		return m.drop()

	case key.Matches(msg, m.keys.Select):
		if err := m.state.ToggleSelectedLetter(m.cursor); err != nil {
			return m.setFlash(describeError(err, ""))
		}

	case key.Matches(msg, m.keys.Submit):
		return m.submit()

	case key.Matches(msg, m.keys.Clear):
		m.state.ClearSelection()

	case key.Matches(msg, m.keys.Joker):
		if m.state.Jokers() == 0 {
			return m.setFlash(describeError(game.ErrNoJokers, ""))
		}
		if m.state.Grid().Occupied(m.cursor) {
			return m.setFlash("joker needs an empty cell")
		}
		m.joker = true
		return m.setFlash("type a letter for the joker, esc to cancel")
	}

	return m, nil
}

// handleJokerKey reads the joker letter. Any rune is passed to the game,
// which rejects non-Cyrillic input.
func (m Model) handleJokerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyCtrlC:
		m.saveScore()
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Clear):
		m.joker = false
		return m.setFlash("")
	case msg.Type != tea.KeyRunes || len(msg.Runes) != 1:
		return m, nil
	}

	m.joker = false
	out, err := m.state.Joker(m.cursor, msg.Runes[0])
	if err != nil {
		return m.setFlash(describeError(err, ""))
	}
	return m.setFlash(describeOutcome("joker", out))
}

func (m *Model) moveCursor(dr, dc int) {
	size := m.state.Grid().Size()
	next := grid.P(m.cursor.Row+dr, m.cursor.Col+dc)
	if next.Row < 0 || next.Row >= size || next.Col < 0 || next.Col >= size {
		return
	}
	m.cursor = next
}

func (m *Model) cycleFigure(delta int) {
	n := len(m.state.Figures())
	if n == 0 {
		return
	}
	m.figure = ((m.figure+delta)%n + n) % n
}

// selectedFigure returns the figure under the queue cursor.
func (m Model) selectedFigure() (figure.Figure, bool) {
	figs := m.state.Figures()
	if len(figs) == 0 {
		return figure.Figure{}, false
	}
	if m.figure >= len(figs) {
		return figs[len(figs)-1], true
	}
	return figs[m.figure], true
}

func (m Model) rotate(delta int) (tea.Model, tea.Cmd) {
	f, ok := m.selectedFigure()
	if !ok {
		return m, nil
	}
	if _, err := m.state.RotateFigure(f.ID, delta); err != nil {
		return m.setFlash(describeError(err, ""))
	}
	return m, nil
}

func (m Model) drop() (tea.Model, tea.Cmd) {
	f, ok := m.selectedFigure()
	if !ok {
		return m, nil
	}
	out, err := m.state.DropAt(f.ID, m.cursor)
	if err != nil {
		return m.setFlash(describeError(err, ""))
	}
	return m.setFlash(describeOutcome("placed", out))
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	res, err := m.state.SubmitWord()
	if err != nil {
		return m.setFlash(describeError(err, res.Word))
	}
	return m.setFlash(fmt.Sprintf("%s +%d", strings.ToUpper(res.Word), res.ScoreDelta))
}

// setFlash shows msg on the status line and schedules its expiry.
func (m Model) setFlash(msg string) (tea.Model, tea.Cmd) {
	m.flash = msg
	m.flashSeq++
	if msg == "" {
		return m, nil
	}
	return m, flashCmd(m.flashSeq)
}

// saveScore stores the game when the player leaves it. A game over alone does
// not save: tracing a word can reopen the board. Empty games are not recorded.
func (m *Model) saveScore() {
	if m.scoreSaved || m.store == nil || m.state.Score() == 0 {
		return
	}

	rec := storage.GameRecord{
		Mode:  m.state.Mode().ID,
		Score: m.state.Score(),
		Seed:  m.state.Seed(),
	}
	for _, w := range m.state.Found() {
		rec.Words = append(rec.Words, storage.FoundWord{
			Word:      w.Word,
			Points:    w.Points,
			Direction: string(w.Direction),
		})
	}

	if _, err := m.store.SaveGame(rec); err != nil {
		m.flash = "could not save score"
		return
	}
	m.scoreSaved = true
}

// describeOutcome summarizes a placement or joker for the status line.
func describeOutcome(verb string, out game.Outcome) string {
	words := out.Words()
	msg := fmt.Sprintf("%s +%d", verb, out.ScoreDelta)
	if len(words) > 0 {
		msg = fmt.Sprintf("%s: %s", msg, strings.ToUpper(strings.Join(words, ", ")))
	}
	if out.GameOver {
		msg += " | game over, r to restart"
	}
	return msg
}

// describeError turns a game error into a status line message.
func describeError(err error, word string) string {
	switch {
	case errors.Is(err, game.ErrGameOver):
		return "game over, r to restart"
	case errors.Is(err, game.ErrNoFit):
		return "the figure does not fit here"
	case errors.Is(err, figure.ErrCellOccupied):
		return "that cell is taken"
	case errors.Is(err, figure.ErrOutOfBounds):
		return "the figure would leave the board"
	case errors.Is(err, game.ErrNoJokers):
		return "no jokers left"
	case errors.Is(err, game.ErrBadLetter):
		return "the joker takes a Russian letter"
	case errors.Is(err, scan.ErrEmptyCell):
		return "pick a cell with a letter"
	case errors.Is(err, scan.ErrNotAdjacent):
		return "letters must touch the end of the word"
	case errors.Is(err, scan.ErrWordTooShort):
		return "the word is too short"
	case errors.Is(err, scan.ErrInvalidWord):
		return fmt.Sprintf("%s is not in the dictionary", strings.ToUpper(word))
	}
	return err.Error()
}

// View renders the current state.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	return renderGame(m)
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run plays a single game in the terminal until the player quits.
func Run(state *game.State, store *storage.Store) error {
	model := NewModel(state, store)
	model.standalone = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
