package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/slovotetris/internal/gravity"
	"github.com/vovakirdan/slovotetris/internal/grid"
	"github.com/vovakirdan/slovotetris/internal/scan"
)

func snakeGame(t *testing.T) *State {
	return newGame(t, ModeSnake, single, 'а', []string{"дом", "жук"},
		"....к",
		".....",
		"д....",
		".о...",
		"..м..",
	)
}

func selectAll(t *testing.T, s *State, cells ...grid.Pos) {
	t.Helper()
	for _, p := range cells {
		require.NoError(t, s.AddSelectedLetter(p))
	}
}

func TestSubmitValidWord(t *testing.T) {
	s := snakeGame(t)
	selectAll(t, s, grid.P(2, 0), grid.P(3, 1), grid.P(4, 2))
	assert.Equal(t, "дом", s.SelectedWord())

	res, err := s.SubmitWord()
	require.NoError(t, err)

	assert.True(t, res.Valid)
	assert.Equal(t, "дом", res.Word)
	assert.Equal(t, 3, res.ScoreDelta)
	assert.Equal(t, []grid.Pos{grid.P(2, 0), grid.P(3, 1), grid.P(4, 2)}, res.ClearedCells)
	// The leftover letter has no neighbours and drops to the floor.
	assert.Equal(t, []gravity.Move{{From: grid.P(0, 4), To: grid.P(4, 4), Letter: 'к'}}, res.Movements)

	assert.Equal(t, 3, s.Score())
	assert.Empty(t, s.Selection())
	assert.Equal(t, 1, s.Grid().FilledCount())

	best, ok := s.BestWord()
	assert.True(t, ok)
	assert.Equal(t, FoundWord{Word: "дом", Points: 3, Direction: scan.Free}, best)
}

func TestSubmitHardLetterBonus(t *testing.T) {
	s := newGame(t, ModeSnake, single, 'а', []string{"жук"},
		"жук",
		"...",
		"...",
	)
	selectAll(t, s, grid.P(0, 0), grid.P(0, 1), grid.P(0, 2))

	res, err := s.SubmitWord()
	require.NoError(t, err)
	assert.Equal(t, 5, res.ScoreDelta)
}

func TestSubmitInBlocksModeScoresPerLetter(t *testing.T) {
	s := newGame(t, ModeBlocks, single, 'а', []string{"жук"},
		"ж..",
		".у.",
		"..к",
	)
	selectAll(t, s, grid.P(0, 0), grid.P(1, 1), grid.P(2, 2))

	res, err := s.SubmitWord()
	require.NoError(t, err)
	assert.Equal(t, 30, res.ScoreDelta)
}

func TestSubmitInvalidLeavesState(t *testing.T) {
	tests := []struct {
		name    string
		cells   []grid.Pos
		wantErr error
	}{
		{"not a word", []grid.Pos{grid.P(4, 2), grid.P(3, 1), grid.P(2, 0)}, scan.ErrInvalidWord},
		{"too short", []grid.Pos{grid.P(2, 0), grid.P(3, 1)}, scan.ErrWordTooShort},
		{"nothing selected", nil, scan.ErrWordTooShort},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := snakeGame(t)
			selectAll(t, s, tc.cells...)
			before := s.Grid()

			res, err := s.SubmitWord()

			assert.ErrorIs(t, err, tc.wantErr)
			assert.False(t, res.Valid)
			assert.True(t, s.Grid().Equal(before))
			assert.Equal(t, 0, s.Score())
			assert.Equal(t, tc.cells, s.Selection())
		})
	}
}

func TestAddSelectedLetterRules(t *testing.T) {
	s := snakeGame(t)

	assert.ErrorIs(t, s.AddSelectedLetter(grid.P(9, 9)), ErrOffGrid)
	assert.ErrorIs(t, s.AddSelectedLetter(grid.P(0, 0)), scan.ErrEmptyCell)

	require.NoError(t, s.AddSelectedLetter(grid.P(2, 0)))
	assert.ErrorIs(t, s.AddSelectedLetter(grid.P(4, 2)), scan.ErrNotAdjacent)
	assert.Equal(t, []grid.Pos{grid.P(2, 0)}, s.Selection())
}

func TestSelectionBacktrackAndRemove(t *testing.T) {
	s := snakeGame(t)
	selectAll(t, s, grid.P(2, 0), grid.P(3, 1), grid.P(4, 2))

	require.NoError(t, s.AddSelectedLetter(grid.P(3, 1)))
	assert.Equal(t, []grid.Pos{grid.P(2, 0), grid.P(3, 1)}, s.Selection())

	assert.True(t, s.RemoveSelectedLetter(grid.P(2, 0)))
	assert.Empty(t, s.Selection())
	assert.False(t, s.RemoveSelectedLetter(grid.P(2, 0)))

	selectAll(t, s, grid.P(2, 0))
	s.ClearSelection()
	assert.Empty(t, s.Selection())
	assert.Equal(t, "", s.SelectedWord())
}

func TestToggleSelectedLetter(t *testing.T) {
	s := snakeGame(t)

	require.NoError(t, s.ToggleSelectedLetter(grid.P(2, 0)))
	require.NoError(t, s.ToggleSelectedLetter(grid.P(3, 1)))
	assert.Equal(t, "до", s.SelectedWord())

	require.NoError(t, s.ToggleSelectedLetter(grid.P(3, 1)))
	assert.Equal(t, []grid.Pos{grid.P(2, 0)}, s.Selection())
}

func TestPlacementClearsSelection(t *testing.T) {
	s := snakeGame(t)
	selectAll(t, s, grid.P(2, 0), grid.P(3, 1))

	_, err := s.PlaceFigure(firstID(t, s), grid.P(0, 0), 0)
	require.NoError(t, err)
	assert.Empty(t, s.Selection())
}
