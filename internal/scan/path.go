package scan

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/vovakirdan/slovotetris/internal/grid"
)

// Path selection and submission errors.
var (
	ErrNotAdjacent  = errors.New("scan: cell is not adjacent to the end of the path")
	ErrEmptyCell    = errors.New("scan: cell has no letter")
	ErrWordTooShort = errors.New("scan: word too short")
	ErrInvalidWord  = errors.New("scan: not a word")
)

// Adjacent reports whether a and b are a king move apart.
func Adjacent(a, b grid.Pos) bool {
	if a == b {
		return false
	}
	dr, dc := a.Row-b.Row, a.Col-b.Col
	return dr >= -1 && dr <= 1 && dc >= -1 && dc <= 1
}

// Path is an ordered selection of distinct cells where each cell is
// adjacent to the one before it. The zero value is an empty path.
type Path struct {
	cells []grid.Pos
}

// Add extends the path with p. Touching a cell already on the path
// truncates everything after it. A cell that is neither on the path nor
// adjacent to its last cell is rejected with ErrNotAdjacent.
func (p *Path) Add(pos grid.Pos) error {
	if i := p.Index(pos); i >= 0 {
		p.cells = p.cells[:i+1]
		return nil
	}
	if n := len(p.cells); n > 0 && !Adjacent(p.cells[n-1], pos) {
		return fmt.Errorf("%w: %v after %v", ErrNotAdjacent, pos, p.cells[n-1])
	}
	p.cells = append(p.cells, pos)
	return nil
}

// Remove drops pos and every cell after it. It reports whether pos was on
// the path.
func (p *Path) Remove(pos grid.Pos) bool {
	i := p.Index(pos)
	if i < 0 {
		return false
	}
	p.cells = p.cells[:i]
	return true
}

// Clear empties the path.
func (p *Path) Clear() {
	p.cells = nil
}

// Index returns the position of pos in the path, or -1.
func (p *Path) Index(pos grid.Pos) int {
	return slices.Index(p.cells, pos)
}

// Contains reports whether pos is on the path.
func (p *Path) Contains(pos grid.Pos) bool {
	return p.Index(pos) >= 0
}

// Len returns the number of selected cells.
func (p *Path) Len() int {
	return len(p.cells)
}

// Last returns the most recently added cell.
func (p *Path) Last() (grid.Pos, bool) {
	if len(p.cells) == 0 {
		return grid.Pos{}, false
	}
	return p.cells[len(p.cells)-1], true
}

// Cells returns a copy of the selected cells in order.
func (p *Path) Cells() []grid.Pos {
	return slices.Clone(p.cells)
}

// Word reads the path's letters off g in order, lowercased. Empty cells are
// reported with ErrEmptyCell, which happens when the grid changed under a
// stale selection.
func (p *Path) Word(g *grid.Grid) (string, error) {
	var sb strings.Builder
	for _, pos := range p.cells {
		if !g.Occupied(pos) {
			return "", fmt.Errorf("%w: %v", ErrEmptyCell, pos)
		}
		sb.WriteRune(g.LetterAt(pos))
	}
	return strings.ToLower(sb.String()), nil
}

// Submit validates the path's word against dict. On success it returns the
// match to clear; the path itself is left for the caller to reset.
func (p *Path) Submit(g *grid.Grid, dict Dictionary, minLen int) (Match, error) {
	word, err := p.Word(g)
	if err != nil {
		return Match{}, err
	}
	if p.Len() < max(minLen, MinWordLen) {
		return Match{}, fmt.Errorf("%w: %q", ErrWordTooShort, word)
	}
	if !dict.Contains(word) {
		return Match{}, fmt.Errorf("%w: %q", ErrInvalidWord, word)
	}
	return Match{Word: word, Positions: p.Cells(), Direction: Free}, nil
}
