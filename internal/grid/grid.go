// Package grid holds the square letter board. It is pure data: placement,
// clearing and gravity live in their own packages and produce new grids.
package grid

import (
	"fmt"
	"strings"
)

// Pos is a cell coordinate. Row grows downward, Col grows to the right.
type Pos struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// P is a convenience constructor for Pos.
func P(row, col int) Pos {
	return Pos{Row: row, Col: col}
}

// Add returns p offset by other.
func (p Pos) Add(other Pos) Pos {
	return Pos{Row: p.Row + other.Row, Col: p.Col + other.Col}
}

// Sub returns p minus other.
func (p Pos) Sub(other Pos) Pos {
	return Pos{Row: p.Row - other.Row, Col: p.Col - other.Col}
}

// String returns a string representation of the position.
func (p Pos) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// Cell is a single board square. A zero Letter means the cell is empty.
// Hovered marks a transient placement preview and is never set together
// with a letter.
type Cell struct {
	Letter  rune
	Fixed   bool
	Hovered bool
}

// Empty returns an empty cell.
func Empty() Cell {
	return Cell{}
}

// Letter returns a permanently placed letter cell.
func Letter(r rune) Cell {
	return Cell{Letter: r, Fixed: true}
}

// IsEmpty reports whether the cell holds no letter.
func (c Cell) IsEmpty() bool {
	return c.Letter == 0
}

// Grid is a square matrix of cells stored in row-major order.
type Grid struct {
	size  int
	cells []Cell
}

// New creates an empty size x size grid.
func New(size int) *Grid {
	if size <= 0 {
		panic(fmt.Sprintf("grid: invalid size %d", size))
	}
	return &Grid{
		size:  size,
		cells: make([]Cell, size*size),
	}
}

// Size returns the side length.
func (g *Grid) Size() int {
	return g.size
}

// InBounds reports whether p lies inside the grid.
func (g *Grid) InBounds(p Pos) bool {
	return p.Row >= 0 && p.Row < g.size && p.Col >= 0 && p.Col < g.size
}

func (g *Grid) index(p Pos) int {
	if !g.InBounds(p) {
		panic(fmt.Sprintf("grid: position %v out of bounds for size %d", p, g.size))
	}
	return p.Row*g.size + p.Col
}

// Get returns the cell at p. Callers must check bounds first; an
// out-of-bounds position panics.
func (g *Grid) Get(p Pos) Cell {
	return g.cells[g.index(p)]
}

// Set replaces the cell at p. Out-of-bounds positions panic.
func (g *Grid) Set(p Pos, c Cell) {
	if c.Letter != 0 {
		c.Hovered = false
	}
	g.cells[g.index(p)] = c
}

// LetterAt returns the letter at p, or 0 when empty.
func (g *Grid) LetterAt(p Pos) rune {
	return g.Get(p).Letter
}

// Occupied reports whether p is in bounds and holds a letter.
func (g *Grid) Occupied(p Pos) bool {
	return g.InBounds(p) && !g.Get(p).IsEmpty()
}

// Clear empties the cell at p.
func (g *Grid) Clear(p Pos) {
	g.Set(p, Empty())
}

// Hover marks p as a placement preview. Occupied cells are left alone.
func (g *Grid) Hover(p Pos) {
	i := g.index(p)
	if g.cells[i].IsEmpty() {
		g.cells[i].Hovered = true
	}
}

// ClearHover removes every placement preview.
func (g *Grid) ClearHover() {
	for i := range g.cells {
		g.cells[i].Hovered = false
	}
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	cells := make([]Cell, len(g.cells))
	copy(cells, g.cells)
	return &Grid{size: g.size, cells: cells}
}

// Equal reports whether two grids have the same size and contents.
func (g *Grid) Equal(other *Grid) bool {
	if g.size != other.size {
		return false
	}
	for i, c := range g.cells {
		if c != other.cells[i] {
			return false
		}
	}
	return true
}

// FilledCount returns the number of cells holding a letter.
func (g *Grid) FilledCount() int {
	n := 0
	for _, c := range g.cells {
		if !c.IsEmpty() {
			n++
		}
	}
	return n
}

// EmptyPositions returns every empty cell in row-major order.
func (g *Grid) EmptyPositions() []Pos {
	var out []Pos
	for r := 0; r < g.size; r++ {
		for c := 0; c < g.size; c++ {
			if g.cells[r*g.size+c].IsEmpty() {
				out = append(out, P(r, c))
			}
		}
	}
	return out
}

// Rows returns the letters as strings, one per row, with '.' for empty cells.
func (g *Grid) Rows() []string {
	rows := make([]string, g.size)
	for r := 0; r < g.size; r++ {
		var sb strings.Builder
		for c := 0; c < g.size; c++ {
			if l := g.cells[r*g.size+c].Letter; l != 0 {
				sb.WriteRune(l)
			} else {
				sb.WriteRune('.')
			}
		}
		rows[r] = sb.String()
	}
	return rows
}

// String renders the grid one row per line.
func (g *Grid) String() string {
	return strings.Join(g.Rows(), "\n")
}

// Parse builds a grid from row strings. '.', '_' and ' ' denote empty
// cells; any other rune becomes a fixed letter. The rows must form a square.
func Parse(rows ...string) (*Grid, error) {
	size := len(rows)
	if size == 0 {
		return nil, fmt.Errorf("grid: no rows")
	}
	g := New(size)
	for r, row := range rows {
		runes := []rune(row)
		if len(runes) != size {
			return nil, fmt.Errorf("grid: row %d has %d cells, expected %d", r, len(runes), size)
		}
		for c, ch := range runes {
			switch ch {
			case '.', '_', ' ':
				continue
			}
			g.Set(P(r, c), Letter(ch))
		}
	}
	return g, nil
}

// MustParse is like Parse but panics on error. Intended for tests and fixtures.
func MustParse(rows ...string) *Grid {
	g, err := Parse(rows...)
	if err != nil {
		panic(err)
	}
	return g
}
