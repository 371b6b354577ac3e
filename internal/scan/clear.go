package scan

import "github.com/vovakirdan/slovotetris/internal/grid"

// Clear empties every cell of every match on a copy of g. Cells shared by
// several matches are cleared once and reported once, in order of first
// appearance.
func Clear(g *grid.Grid, matches []Match) (*grid.Grid, []grid.Pos) {
	out := g.Clone()
	seen := make(map[grid.Pos]bool)
	var cleared []grid.Pos

	for _, m := range matches {
		for _, p := range m.Positions {
			if seen[p] || !out.InBounds(p) {
				continue
			}
			seen[p] = true
			out.Clear(p)
			cleared = append(cleared, p)
		}
	}
	return out, cleared
}
