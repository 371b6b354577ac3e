// Package game holds the explicit state of one word-tetris session and
// drives the placement, scan, clear and gravity cycle over it. It has no UI
// dependency; shells call its methods and render Snapshot.
//
// A State is not safe for concurrent use. Callers serialize operations.
package game

import (
	"errors"
	"fmt"
	"math/rand"
	"unicode"

	"github.com/vovakirdan/slovotetris/internal/figure"
	"github.com/vovakirdan/slovotetris/internal/gravity"
	"github.com/vovakirdan/slovotetris/internal/grid"
	"github.com/vovakirdan/slovotetris/internal/lexicon"
	"github.com/vovakirdan/slovotetris/internal/registry"
	"github.com/vovakirdan/slovotetris/internal/scan"
)

// Errors returned by State operations. Placement failures come back as
// *figure.PlacementError; path failures wrap the scan sentinels.
var (
	ErrUnknownFigure = errors.New("game: unknown figure")
	ErrNoFit         = errors.New("game: figure does not fit there")
	ErrGameOver      = errors.New("game: game over")
	ErrOffGrid       = errors.New("game: position outside the grid")
	ErrNoJokers      = errors.New("game: no jokers left")
	ErrBadLetter     = errors.New("game: not a letter of the alphabet")
)

// FoundWord is a word that was cleared from the grid.
type FoundWord struct {
	Word      string         `json:"word"`
	Points    int            `json:"points"`
	Direction scan.Direction `json:"direction"`
}

// State is one game session.
type State struct {
	opts    Options
	mode    registry.Mode
	policy  gravity.Policy
	dict    scan.Dictionary
	scanner *scan.Scanner

	rng   *rand.Rand
	gen   *figure.Generator
	grid  *grid.Grid
	queue *figure.Queue
	path  scan.Path

	score      int
	jokers     int
	placements int
	found      []FoundWord
	over       bool
}

// New creates a game for the mode named in opts. dict is consulted on every
// scan, so a *lexicon.Provider that is still loading may be passed.
func New(dict scan.Dictionary, opts Options) (*State, error) {
	opts = opts.withDefaults()

	mode, err := registry.Lookup(opts.Mode)
	if err != nil {
		return nil, err
	}

	policy := mode.Gravity
	if opts.Gravity != "" {
		if policy, err = gravity.ParsePolicy(string(opts.Gravity)); err != nil {
			return nil, err
		}
	}

	s := &State{
		opts:    opts,
		mode:    mode,
		policy:  policy,
		dict:    dict,
		scanner: scan.New(dict, opts.MinWordLen),
	}
	s.Reset(opts.Seed)
	return s, nil
}

// Reset starts a fresh game on an empty grid with the given seed.
func (s *State) Reset(seed int64) {
	s.opts.Seed = seed
	s.rng = rand.New(rand.NewSource(seed))
	s.gen = figure.NewGenerator(s.rng, s.opts.Catalog, s.opts.Letters)
	s.grid = grid.New(s.opts.Size)
	s.queue = figure.NewQueue(s.gen, s.opts.QueueSize)
	s.path.Clear()
	s.score = 0
	s.jokers = s.opts.Jokers
	s.placements = 0
	s.found = nil
	s.over = false
}

// Mode returns the mode being played.
func (s *State) Mode() registry.Mode { return s.mode }

// Policy returns the gravity policy in effect.
func (s *State) Policy() gravity.Policy { return s.policy }

// Seed returns the seed of the current game.
func (s *State) Seed() int64 { return s.opts.Seed }

// Score returns the running score.
func (s *State) Score() int { return s.score }

// Jokers returns how many jokers are left.
func (s *State) Jokers() int { return s.jokers }

// Placements returns how many figures have been placed.
func (s *State) Placements() int { return s.placements }

// Over reports whether no queued figure fits anywhere on the grid.
func (s *State) Over() bool { return s.over }

// Grid returns a copy of the grid.
func (s *State) Grid() *grid.Grid { return s.grid.Clone() }

// Figures returns the queued figures.
func (s *State) Figures() []figure.Figure { return s.queue.Figures() }

// Found returns every word cleared so far, in order.
func (s *State) Found() []FoundWord {
	out := make([]FoundWord, len(s.found))
	copy(out, s.found)
	return out
}

// BestWord returns the longest word cleared so far; ties go to the earlier.
func (s *State) BestWord() (FoundWord, bool) {
	var best FoundWord
	for _, w := range s.found {
		if len([]rune(w.Word)) > len([]rune(best.Word)) {
			best = w
		}
	}
	return best, best.Word != ""
}

// Figure returns the queued figure with the given ID.
func (s *State) Figure(id string) (figure.Figure, error) {
	f, ok := s.queue.Find(id)
	if !ok {
		return figure.Figure{}, fmt.Errorf("%w: %q", ErrUnknownFigure, id)
	}
	return f, nil
}

// RotateFigure turns a queued figure by delta degrees.
func (s *State) RotateFigure(id string, delta int) (figure.Figure, error) {
	f, ok := s.queue.Rotate(id, delta)
	if !ok {
		return figure.Figure{}, fmt.Errorf("%w: %q", ErrUnknownFigure, id)
	}
	return f, nil
}

// Preview returns a copy of the grid with the cells the figure would cover
// marked as hovered, and whether the placement is valid.
func (s *State) Preview(id string, anchor grid.Pos, rotation int) (*grid.Grid, bool) {
	f, ok := s.queue.Find(id)
	if !ok {
		return s.grid.Clone(), false
	}
	return figure.Preview(s.grid, f, anchor, rotation)
}

// PlaceFigure puts the queued figure on the grid, its rotated offsets added
// to anchor. On success the figure leaves the queue, a new one is appended
// and the placement points are awarded; in auto-scan modes the resolve
// cycle runs. On any failure nothing changes.
func (s *State) PlaceFigure(id string, anchor grid.Pos, rotation int) (Outcome, error) {
	if s.over {
		return Outcome{}, ErrGameOver
	}
	f, ok := s.queue.Find(id)
	if !ok {
		return Outcome{}, fmt.Errorf("%w: %q", ErrUnknownFigure, id)
	}

	placed, err := figure.Place(s.grid, f, anchor, rotation)
	if err != nil {
		return Outcome{}, err
	}

	s.grid = placed
	s.queue.Consume(id)
	s.path.Clear()
	s.placements++

	out := Outcome{
		Figure:     f.Rotate(rotation - f.Rotation),
		Anchor:     anchor,
		ScoreDelta: s.opts.Rules.Placement(),
	}
	s.score += out.ScoreDelta

	if s.mode.AutoScan {
		steps, points := s.resolve()
		out.Steps = steps
		out.ScoreDelta += points
	}

	s.refreshOver()
	out.GameOver = s.over
	return out, nil
}

// DropAt places the queued figure, in its stored rotation, so that one of
// its cells lands on touched. Cells are tried in shape order.
func (s *State) DropAt(id string, touched grid.Pos) (Outcome, error) {
	if s.over {
		return Outcome{}, ErrGameOver
	}
	f, ok := s.queue.Find(id)
	if !ok {
		return Outcome{}, fmt.Errorf("%w: %q", ErrUnknownFigure, id)
	}
	anchor, ok := figure.FindBestAnchor(s.grid, f, touched, f.Rotation)
	if !ok {
		return Outcome{}, fmt.Errorf("%w: %v", ErrNoFit, touched)
	}
	return s.PlaceFigure(id, anchor, f.Rotation)
}

// Joker writes letter into an empty cell. Each game has a limited number of
// jokers. In auto-scan modes the resolve cycle runs afterwards.
func (s *State) Joker(pos grid.Pos, letter rune) (Outcome, error) {
	if s.jokers <= 0 {
		return Outcome{}, ErrNoJokers
	}
	if !lexicon.IsLetter(letter) {
		return Outcome{}, fmt.Errorf("%w: %q", ErrBadLetter, letter)
	}
	if !s.grid.InBounds(pos) {
		return Outcome{}, fmt.Errorf("%w: %v", ErrOffGrid, pos)
	}
	if s.grid.Occupied(pos) {
		return Outcome{}, &figure.PlacementError{Reason: figure.ErrCellOccupied, Pos: pos}
	}

	next := s.grid.Clone()
	next.Set(pos, grid.Letter(unicode.ToLower(letter)))
	s.grid = next
	s.jokers--
	s.path.Clear()

	var out Outcome
	if s.mode.AutoScan {
		out.Steps, out.ScoreDelta = s.resolve()
	}
	s.refreshOver()
	out.GameOver = s.over
	return out, nil
}

func (s *State) refreshOver() {
	for _, f := range s.queue.Figures() {
		if figure.Fits(s.grid, f) {
			s.over = false
			return
		}
	}
	s.over = true
}
