// Package scan finds dictionary words on a grid. Line scanning reads
// maximal runs of letters along rows and columns; free paths are built cell
// by cell under the snake rule and submitted as a whole.
package scan

import (
	"strings"

	"github.com/vovakirdan/slovotetris/internal/grid"
	"github.com/vovakirdan/slovotetris/internal/lexicon"
)

// MinWordLen is the shortest run that counts as a word.
const MinWordLen = 3

// Direction tells how a match was read off the grid.
type Direction string

const (
	Horizontal Direction = "horizontal"
	Vertical   Direction = "vertical"
	Free       Direction = "path"
)

// Match is a word found on the grid together with the cells spelling it.
type Match struct {
	Word      string     `json:"word"`
	Positions []grid.Pos `json:"positions"`
	Direction Direction  `json:"direction"`
}

// Len returns the number of letters in the word.
func (m Match) Len() int {
	return len(m.Positions)
}

// Dictionary is the membership view the scanner needs. Both *lexicon.Lexicon
// and *lexicon.Provider satisfy it.
type Dictionary interface {
	Contains(word string) bool
	Root() lexicon.Cursor
}

// Scanner runs line scans against a dictionary.
type Scanner struct {
	dict   Dictionary
	minLen int
}

// New creates a scanner. minLen below MinWordLen is raised to it.
func New(dict Dictionary, minLen int) *Scanner {
	return &Scanner{dict: dict, minLen: max(minLen, MinWordLen)}
}

// MinLen returns the minimum word length in effect.
func (s *Scanner) MinLen() int {
	return s.minLen
}

// Scan returns every maximal run in every row and column that is a word.
// Rows come first, top to bottom, then columns, left to right. The grid is
// not modified, so repeated calls on the same grid return the same result.
func (s *Scanner) Scan(g *grid.Grid) []Match {
	var matches []Match
	n := g.Size()
	for r := 0; r < n; r++ {
		matches = s.scanLine(g, grid.P(r, 0), grid.P(0, 1), Horizontal, matches)
	}
	for c := 0; c < n; c++ {
		matches = s.scanLine(g, grid.P(0, c), grid.P(1, 0), Vertical, matches)
	}
	return matches
}

// scanLine walks one line from start in steps of step. A cursor follows the
// run through the prefix tree so the dictionary is walked once per letter.
func (s *Scanner) scanLine(g *grid.Grid, start, step grid.Pos, dir Direction, out []Match) []Match {
	var (
		letters   []rune
		positions []grid.Pos
		cur       = s.dict.Root()
	)

	flush := func() {
		if len(positions) >= s.minLen && cur.Terminal() {
			out = append(out, Match{
				Word:      strings.ToLower(string(letters)),
				Positions: positions,
				Direction: dir,
			})
		}
		letters, positions = nil, nil
		cur = s.dict.Root()
	}

	for p := start; g.InBounds(p); p = p.Add(step) {
		cell := g.Get(p)
		if cell.IsEmpty() {
			flush()
			continue
		}
		letters = append(letters, cell.Letter)
		positions = append(positions, p)
		cur = cur.Next(cell.Letter)
	}
	flush()
	return out
}
