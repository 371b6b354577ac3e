// Package gravity compacts a grid after letters are cleared. Two policies
// are offered: every column settles to the bottom, or only letters left
// without any neighbour drop to rejoin the rest.
package gravity

import (
	"fmt"

	"github.com/vovakirdan/slovotetris/internal/grid"
)

// Policy selects a compaction algorithm.
type Policy string

const (
	// BottomSettle packs every column downward, keeping letter order.
	BottomSettle Policy = "bottom"
	// IsolateAndDrop moves only letters with no occupied neighbour among
	// the eight around them.
	IsolateAndDrop Policy = "isolate"
)

// Policies lists the known policies.
func Policies() []Policy {
	return []Policy{BottomSettle, IsolateAndDrop}
}

// ParsePolicy maps a config value onto a Policy. An empty string yields
// BottomSettle.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case BottomSettle, "":
		return BottomSettle, nil
	case IsolateAndDrop:
		return IsolateAndDrop, nil
	}
	return "", fmt.Errorf("gravity: unknown policy %q", s)
}

// Move records a letter that changed position.
type Move struct {
	From   grid.Pos `json:"from"`
	To     grid.Pos `json:"to"`
	Letter rune     `json:"letter"`
}

// Result is the compacted grid and the moves that produced it.
type Result struct {
	Grid  *grid.Grid
	Moves []Move
}

// Moved reports whether any letter changed position.
func (r Result) Moved() bool {
	return len(r.Moves) > 0
}

// Apply runs the policy on a copy of g. It never fails: a grid with
// nothing to move comes back equal to the input with no moves. Unknown
// policies fall back to BottomSettle.
func Apply(g *grid.Grid, p Policy) Result {
	switch p {
	case IsolateAndDrop:
		return isolateAndDrop(g)
	default:
		return bottomSettle(g)
	}
}

func bottomSettle(g *grid.Grid) Result {
	out := g.Clone()
	n := out.Size()
	var moves []Move

	for col := 0; col < n; col++ {
		write := n - 1
		for row := n - 1; row >= 0; row-- {
			from := grid.P(row, col)
			cell := out.Get(from)
			if cell.IsEmpty() {
				continue
			}
			if write != row {
				to := grid.P(write, col)
				out.Set(to, cell)
				out.Clear(from)
				moves = append(moves, Move{From: from, To: to, Letter: cell.Letter})
			}
			write--
		}
	}
	return Result{Grid: out, Moves: moves}
}

// Isolated returns the letters with no occupied cell among their eight
// neighbours, bottom row first and left to right within a row.
func Isolated(g *grid.Grid) []grid.Pos {
	var found []grid.Pos
	n := g.Size()
	for row := n - 1; row >= 0; row-- {
		for col := 0; col < n; col++ {
			p := grid.P(row, col)
			if g.Occupied(p) && !hasNeighbour(g, p) {
				found = append(found, p)
			}
		}
	}
	return found
}

func hasNeighbour(g *grid.Grid, p grid.Pos) bool {
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			if g.Occupied(grid.P(p.Row+dr, p.Col+dc)) {
				return true
			}
		}
	}
	return false
}

func isolateAndDrop(g *grid.Grid) Result {
	isolated := Isolated(g)
	out := g.Clone()
	if len(isolated) == 0 {
		return Result{Grid: out}
	}

	lifted := make([]grid.Cell, len(isolated))
	for i, p := range isolated {
		lifted[i] = out.Get(p)
		out.Clear(p)
	}

	var moves []Move
	for i, from := range isolated {
		to := lowestEmpty(out, from.Col)
		out.Set(to, lifted[i])
		if to != from {
			moves = append(moves, Move{From: from, To: to, Letter: lifted[i].Letter})
		}
	}
	return Result{Grid: out, Moves: moves}
}

// lowestEmpty scans a column from the bottom up and returns the first empty
// cell. The column always has one: the caller has just lifted a letter out
// of it.
func lowestEmpty(g *grid.Grid, col int) grid.Pos {
	for row := g.Size() - 1; row >= 0; row-- {
		p := grid.P(row, col)
		if !g.Occupied(p) {
			return p
		}
	}
	panic(fmt.Sprintf("gravity: column %d has no empty cell", col))
}
