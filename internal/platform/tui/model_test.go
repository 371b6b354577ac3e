package tui

import (
	"errors"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/slovotetris/internal/figure"
	"github.com/vovakirdan/slovotetris/internal/game"
	"github.com/vovakirdan/slovotetris/internal/grid"
	"github.com/vovakirdan/slovotetris/internal/lexicon"
	"github.com/vovakirdan/slovotetris/internal/registry"
	"github.com/vovakirdan/slovotetris/internal/scan"
	"github.com/vovakirdan/slovotetris/internal/scoring"
	"github.com/vovakirdan/slovotetris/internal/storage"
)

// newTestGame builds a 3x3 game whose figures are single "о" cells and
// whose dictionary knows only "ооо".
func newTestGame(t *testing.T, mode string) *game.State {
	t.Helper()
	letters, err := figure.NewWeightedTable([]figure.LetterWeight{{Letter: 'о', Weight: 1}})
	require.NoError(t, err)

	opts := game.DefaultOptions(mode)
	opts.Size = 3
	opts.Catalog = figure.Catalog{Name: "single", Shapes: []figure.Shape{{grid.P(0, 0)}}}
	opts.Letters = letters
	opts.Seed = 1

	s, err := game.New(lexicon.Build([]string{"ооо"}, 3, 12), opts)
	require.NoError(t, err)
	return s
}

func keyType(k tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: k}
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func press(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(Model)
		require.True(t, ok)
	}
	return m
}

// fillBottomRow drops three figures along the bottom row, starting from the
// center cursor.
func fillBottomRow(t *testing.T, m Model) Model {
	t.Helper()
	return press(t, m,
		keyType(tea.KeyDown), keyType(tea.KeyEnter),
		keyType(tea.KeyLeft), keyType(tea.KeyEnter),
		keyType(tea.KeyRight), keyType(tea.KeyRight), keyType(tea.KeyEnter),
	)
}

func TestModelCursorStaysOnBoard(t *testing.T) {
	m := NewModel(newTestGame(t, game.ModeBlocks), nil)
	assert.Equal(t, grid.P(1, 1), m.cursor)

	m = press(t, m, keyType(tea.KeyUp), keyType(tea.KeyUp), keyType(tea.KeyUp))
	assert.Equal(t, grid.P(0, 1), m.cursor)

	m = press(t, m, keyType(tea.KeyRight), keyType(tea.KeyRight))
	assert.Equal(t, grid.P(0, 2), m.cursor)
}

func TestModelDropClearsWord(t *testing.T) {
	state := newTestGame(t, game.ModeBlocks)
	m := fillBottomRow(t, NewModel(state, nil))

	assert.Equal(t, 3*10+30, state.Score())
	require.Len(t, state.Found(), 1)
	assert.Equal(t, "ооо", state.Found()[0].Word)
	assert.Equal(t, 0, state.Grid().FilledCount())
	assert.Contains(t, m.flash, "ООО")
}

func TestModelDropOnOccupiedCell(t *testing.T) {
	state := newTestGame(t, game.ModeBlocks)
	m := press(t, NewModel(state, nil), keyType(tea.KeyEnter), keyType(tea.KeyEnter))

	assert.Equal(t, 1, state.Placements())
	assert.Equal(t, "the figure does not fit here", m.flash)
}

func TestModelRotateAndCycle(t *testing.T) {
	state := newTestGame(t, game.ModeBlocks)
	m := NewModel(state, nil)

	m = press(t, m, keyRune('x'))
	assert.Equal(t, 90, state.Figures()[0].Rotation)

	m = press(t, m, keyType(tea.KeyTab), keyRune('z'))
	assert.Equal(t, 1, m.figure)
	assert.Equal(t, 270, state.Figures()[1].Rotation)

	m = press(t, m, keyType(tea.KeyShiftTab), keyType(tea.KeyShiftTab))
	assert.Equal(t, len(state.Figures())-1, m.figure)
}

func TestModelTraceAndSubmit(t *testing.T) {
	state := newTestGame(t, game.ModeSnake)
	m := fillBottomRow(t, NewModel(state, nil))

	// Snake mode never auto-scans.
	require.Equal(t, 3, state.Grid().FilledCount())
	assert.Equal(t, 30, state.Score())

	m = press(t, m, keyRune(' '), keyType(tea.KeyLeft), keyRune(' '), keyType(tea.KeyLeft), keyRune(' '))
	assert.Equal(t, "ооо", state.SelectedWord())

	m = press(t, m, keyRune('s'))
	assert.Equal(t, 30+scoring.DefaultRules().Path("ооо"), state.Score())
	assert.Equal(t, 0, state.Grid().FilledCount())
	assert.Empty(t, state.Selection())
	assert.Contains(t, m.flash, "ООО")
}

func TestModelClearSelection(t *testing.T) {
	state := newTestGame(t, game.ModeSnake)
	m := fillBottomRow(t, NewModel(state, nil))

	m = press(t, m, keyRune(' '), keyType(tea.KeyLeft), keyRune(' '))
	require.Len(t, state.Selection(), 2)

	m = press(t, m, keyRune('s'))
	assert.Equal(t, "the word is too short", m.flash)

	press(t, m, keyType(tea.KeyEscape))
	assert.Empty(t, state.Selection())
}

func TestModelJoker(t *testing.T) {
	state := newTestGame(t, game.ModeBlocks)
	m := press(t, NewModel(state, nil), keyRune('j'))
	require.True(t, m.joker)

	m = press(t, m, keyRune('к'))
	assert.False(t, m.joker)
	assert.Equal(t, 'к', state.Grid().LetterAt(grid.P(1, 1)))
	assert.Equal(t, 0, state.Jokers())

	m = press(t, m, keyType(tea.KeyDown), keyRune('j'))
	assert.False(t, m.joker)
	assert.Equal(t, "no jokers left", m.flash)
}

func TestModelJokerCancel(t *testing.T) {
	state := newTestGame(t, game.ModeBlocks)
	m := press(t, NewModel(state, nil), keyRune('j'), keyRune('q'))

	// Latin letters are rejected without quitting.
	assert.False(t, m.quitting)
	assert.Equal(t, "the joker takes a Russian letter", m.flash)

	m = press(t, m, keyRune('j'), keyType(tea.KeyEscape))
	assert.False(t, m.joker)
	assert.Equal(t, 1, state.Jokers())
}

func TestModelQuitSavesScore(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	require.NoError(t, err)
	defer store.Close()

	state := newTestGame(t, game.ModeBlocks)
	m := fillBottomRow(t, NewModel(state, store))
	m = press(t, m, keyRune('q'))
	assert.True(t, m.IsQuitting())
	assert.Empty(t, m.View())

	scores, err := store.TopScores(game.ModeBlocks, 10)
	require.NoError(t, err)
	require.Len(t, scores, 1)
	assert.Equal(t, 60, scores[0].Score)
	assert.Equal(t, "ооо", scores[0].BestWord)
	assert.Equal(t, 1, scores[0].Words)

	// A second exit does not save the same game again.
	m.saveScore()
	scores, err = store.TopScores(game.ModeBlocks, 10)
	require.NoError(t, err)
	assert.Len(t, scores, 1)
}

func TestModelSavesScoreAfterReopenedGame(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	require.NoError(t, err)
	defer store.Close()

	state := newTestGame(t, game.ModeSnake)
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			if row == 1 && col == 1 {
				continue
			}
			_, err := state.PlaceFigure(state.Figures()[0].ID, grid.P(row, col), 0)
			require.NoError(t, err)
		}
	}

	// The last drop from the center cursor fills the board.
	m := press(t, NewModel(state, store), keyType(tea.KeyEnter))
	require.True(t, state.Over())
	require.Equal(t, 90, state.Score())
	assert.Contains(t, m.flash, "game over")

	scores, err := store.TopScores(game.ModeSnake, 10)
	require.NoError(t, err)
	assert.Empty(t, scores)

	m = press(t, m,
		keyType(tea.KeyDown), keyType(tea.KeyRight), keyRune(' '),
		keyType(tea.KeyLeft), keyRune(' '),
		keyType(tea.KeyLeft), keyRune(' '),
		keyRune('s'),
	)
	require.False(t, state.Over())
	final := state.Score()
	assert.Equal(t, 90+scoring.DefaultRules().Path("ооо"), final)

	m = press(t, m, keyRune('q'))
	assert.True(t, m.IsQuitting())

	scores, err = store.TopScores(game.ModeSnake, 10)
	require.NoError(t, err)
	require.Len(t, scores, 1)
	assert.Equal(t, final, scores[0].Score)
	assert.Equal(t, 1, scores[0].Words)
}

func TestModelRestart(t *testing.T) {
	state := newTestGame(t, game.ModeBlocks)
	m := press(t, NewModel(state, nil), keyType(tea.KeyEnter))
	require.Equal(t, 10, state.Score())

	m = press(t, m, keyRune('r'))
	assert.Equal(t, 0, state.Score())
	assert.Equal(t, 0, state.Grid().FilledCount())
	assert.Equal(t, "new game", m.flash)
}

func TestModelBack(t *testing.T) {
	m := NewModel(newTestGame(t, game.ModeBlocks), nil)
	m = press(t, m, keyRune('b'))
	assert.True(t, m.BackToMenu())
	assert.False(t, m.IsQuitting())

	m = NewModel(newTestGame(t, game.ModeBlocks), nil)
	m.standalone = true
	m = press(t, m, keyRune('b'))
	assert.True(t, m.IsQuitting())
}

func TestModelFlashExpires(t *testing.T) {
	m := NewModel(newTestGame(t, game.ModeBlocks), nil)
	m = press(t, m, keyRune('r'))
	require.NotEmpty(t, m.flash)

	m = press(t, m, FlashExpiredMsg{seq: m.flashSeq - 1})
	assert.NotEmpty(t, m.flash, "stale expiry must not clear a newer message")

	m = press(t, m, FlashExpiredMsg{seq: m.flashSeq})
	assert.Empty(t, m.flash)
}

func TestModelView(t *testing.T) {
	state := newTestGame(t, game.ModeSnake)
	m := press(t, NewModel(state, nil), tea.WindowSizeMsg{Width: 100, Height: 30}, keyType(tea.KeyEnter))

	view := m.View()
	assert.Contains(t, view, "СЛОВОТЕТРИС")
	assert.Contains(t, view, "SNAKE")
	assert.Contains(t, view, "О")
}

func TestDescribeError(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{game.ErrGameOver, "game over, r to restart"},
		{&figure.PlacementError{Reason: figure.ErrCellOccupied}, "that cell is taken"},
		{scan.ErrNotAdjacent, "letters must touch the end of the word"},
		{scan.ErrInvalidWord, "КТО is not in the dictionary"},
		{errors.New("boom"), "boom"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, describeError(tc.err, "кто"))
	}
}

func TestMenuSelectsMode(t *testing.T) {
	modes := registry.List()
	require.GreaterOrEqual(t, len(modes), 2)

	var menu tea.Model = NewMenuModel(80, 24)
	menu, _ = menu.Update(keyType(tea.KeyDown))
	menu, cmd := menu.Update(keyType(tea.KeyEnter))

	mm := menu.(MenuModel)
	require.NotNil(t, mm.Selected())
	assert.Equal(t, modes[1].ID, mm.Selected().ModeID)
	assert.NotNil(t, cmd)
}

func TestSessionFlow(t *testing.T) {
	var started []string
	factory := func(mode string, seed int64) (*game.State, error) {
		started = append(started, mode)
		return newTestGame(t, mode), nil
	}

	var session tea.Model = NewSessionModel(nil, factory, 80, 24)
	session, cmd := session.Update(keyType(tea.KeyEnter))
	assert.Nil(t, cmd, "menu quit must not end the session")

	sm := session.(SessionModel)
	require.NotNil(t, sm.gameModel)
	assert.Equal(t, []string{registry.List()[0].ID}, started)

	session, _ = session.Update(keyRune('b'))
	sm = session.(SessionModel)
	assert.Nil(t, sm.gameModel)

	session, _ = session.Update(keyType(tea.KeyTab))
	sm = session.(SessionModel)
	require.NotNil(t, sm.scoreboard)
	assert.Contains(t, sm.View(), "HIGH SCORES")

	session, _ = session.Update(keyType(tea.KeyEscape))
	sm = session.(SessionModel)
	assert.Nil(t, sm.scoreboard)

	_, cmd = session.Update(keyRune('q'))
	assert.NotNil(t, cmd)
}
