package figure

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/slovotetris/internal/grid"
)

// Placement failure reasons.
var (
	ErrOutOfBounds  = errors.New("figure: placement out of bounds")
	ErrCellOccupied = errors.New("figure: cell occupied")
)

// PlacementError reports the first offending cell of a rejected placement.
type PlacementError struct {
	Reason error
	Pos    grid.Pos
}

func (e *PlacementError) Error() string {
	return fmt.Sprintf("%v at %v", e.Reason, e.Pos)
}

func (e *PlacementError) Unwrap() error {
	return e.Reason
}

// Validate checks every cell of the figure anchored at anchor with the
// given rotation. Bounds are checked for all cells before occupancy so an
// out-of-grid figure always reports ErrOutOfBounds.
func Validate(g *grid.Grid, f Figure, anchor grid.Pos, rotation int) error {
	cells := f.Footprint(anchor, rotation)

	for _, c := range cells {
		if !g.InBounds(c.Pos) {
			return &PlacementError{Reason: ErrOutOfBounds, Pos: c.Pos}
		}
	}
	for _, c := range cells {
		if !g.Get(c.Pos).IsEmpty() {
			return &PlacementError{Reason: ErrCellOccupied, Pos: c.Pos}
		}
	}
	return nil
}

// Place validates the placement and, on success, returns a new grid with
// the figure's letters written as fixed cells. On failure the input grid
// is returned unchanged along with the validation error.
func Place(g *grid.Grid, f Figure, anchor grid.Pos, rotation int) (*grid.Grid, error) {
	if err := Validate(g, f, anchor, rotation); err != nil {
		return g, err
	}

	out := g.Clone()
	for _, c := range f.Footprint(anchor, rotation) {
		out.Set(c.Pos, grid.Letter(c.Letter))
	}
	return out, nil
}

// FindBestAnchor tries each cell of the rotated shape, in shape order, as
// the one landing on touched, and returns the first anchor that validates.
func FindBestAnchor(g *grid.Grid, f Figure, touched grid.Pos, rotation int) (grid.Pos, bool) {
	for _, off := range f.RotatedShape(rotation) {
		anchor := touched.Sub(off)
		if Validate(g, f, anchor, rotation) == nil {
			return anchor, true
		}
	}
	return grid.Pos{}, false
}

// Fits reports whether the figure has a valid anchor anywhere on the grid
// in any rotation. Any valid placement puts the first cell of the shape on
// an empty cell, so only those anchors are tried.
func Fits(g *grid.Grid, f Figure) bool {
	empty := g.EmptyPositions()
	for rot := 0; rot < 360; rot += 90 {
		shape := f.RotatedShape(rot)
		if len(shape) == 0 {
			continue
		}
		first := shape[0]
		for _, e := range empty {
			anchor := grid.P(e.Row-first.Row, e.Col-first.Col)
			if Validate(g, f, anchor, rot) == nil {
				return true
			}
		}
	}
	return false
}

// Preview marks the cells a placement would cover as hovered on a copy of
// the grid. Invalid placements produce no preview.
func Preview(g *grid.Grid, f Figure, anchor grid.Pos, rotation int) (*grid.Grid, bool) {
	out := g.Clone()
	out.ClearHover()
	if Validate(g, f, anchor, rotation) != nil {
		return out, false
	}
	for _, c := range f.Footprint(anchor, rotation) {
		out.Hover(c.Pos)
	}
	return out, true
}
