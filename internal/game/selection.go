package game

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/slovotetris/internal/gravity"
	"github.com/vovakirdan/slovotetris/internal/grid"
	"github.com/vovakirdan/slovotetris/internal/scan"
)

// SubmitResult is the verdict on a traced word.
type SubmitResult struct {
	Valid        bool           `json:"valid"`
	Word         string         `json:"word"`
	ScoreDelta   int            `json:"scoreDelta"`
	ClearedCells []grid.Pos     `json:"clearedCells"`
	Movements    []gravity.Move `json:"movements"`
	GameOver     bool           `json:"gameOver"`
}

// AddSelectedLetter extends the traced path with pos. Touching a cell that
// is already on the path truncates the path back to it.
func (s *State) AddSelectedLetter(pos grid.Pos) error {
	if !s.grid.InBounds(pos) {
		return fmt.Errorf("%w: %v", ErrOffGrid, pos)
	}
	if !s.grid.Occupied(pos) {
		return fmt.Errorf("%w: %v", scan.ErrEmptyCell, pos)
	}
	return s.path.Add(pos)
}

// RemoveSelectedLetter drops pos and everything traced after it.
func (s *State) RemoveSelectedLetter(pos grid.Pos) bool {
	return s.path.Remove(pos)
}

// ToggleSelectedLetter removes pos when it is the end of the path and adds
// it otherwise. Touch shells use it for tap-to-undo.
func (s *State) ToggleSelectedLetter(pos grid.Pos) error {
	if last, ok := s.path.Last(); ok && last == pos {
		s.path.Remove(pos)
		return nil
	}
	return s.AddSelectedLetter(pos)
}

// ClearSelection empties the traced path.
func (s *State) ClearSelection() {
	s.path.Clear()
}

// Selection returns the traced cells in order.
func (s *State) Selection() []grid.Pos {
	return s.path.Cells()
}

// SelectedWord returns the letters under the traced path.
func (s *State) SelectedWord() string {
	w, err := s.path.Word(s.grid)
	if err != nil {
		return ""
	}
	return w
}

// SubmitWord checks the traced word. A word that is too short or not in the
// dictionary yields Valid=false with the reason as error, and leaves the
// grid and path untouched. A valid word is scored, its cells are cleared,
// gravity runs and the path is reset.
func (s *State) SubmitWord() (SubmitResult, error) {
	m, err := s.path.Submit(s.grid, s.dict, s.opts.MinWordLen)
	if err != nil {
		res := SubmitResult{Word: s.SelectedWord()}
		if errors.Is(err, scan.ErrEmptyCell) {
			s.path.Clear()
		}
		return res, err
	}

	points := s.opts.Rules.Path(m.Word)
	if !s.mode.PathScoring {
		points = s.opts.Rules.Line(m.Word)
	}

	cleared, cells := scan.Clear(s.grid, []scan.Match{m})
	grav := gravity.Apply(cleared, s.policy)

	s.grid = grav.Grid
	s.score += points
	s.found = append(s.found, FoundWord{Word: m.Word, Points: points, Direction: m.Direction})
	s.path.Clear()
	s.refreshOver()

	return SubmitResult{
		Valid:        true,
		Word:         m.Word,
		ScoreDelta:   points,
		ClearedCells: cells,
		Movements:    grav.Moves,
		GameOver:     s.over,
	}, nil
}
