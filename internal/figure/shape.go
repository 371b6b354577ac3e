// Package figure generates letter-bearing polyominoes, rotates them and
// places them onto a grid.
package figure

import (
	"fmt"
	"math"

	"github.com/vovakirdan/slovotetris/internal/grid"
)

// Shape is an ordered set of unique cell offsets relative to an implicit
// anchor. Offsets need not start at (0,0) and may be negative.
type Shape []grid.Pos

// NewShape builds a shape from (row, col) pairs, rejecting duplicates.
func NewShape(offsets ...[2]int) (Shape, error) {
	if len(offsets) == 0 {
		return nil, fmt.Errorf("figure: empty shape")
	}
	seen := make(map[grid.Pos]bool, len(offsets))
	s := make(Shape, 0, len(offsets))
	for _, o := range offsets {
		p := grid.P(o[0], o[1])
		if seen[p] {
			return nil, fmt.Errorf("figure: duplicate offset %v", p)
		}
		seen[p] = true
		s = append(s, p)
	}
	return s, nil
}

func mustShape(offsets ...[2]int) Shape {
	s, err := NewShape(offsets...)
	if err != nil {
		panic(err)
	}
	return s
}

// Bounds returns the minimum and maximum offsets.
func (s Shape) Bounds() (minPos, maxPos grid.Pos) {
	if len(s) == 0 {
		return grid.Pos{}, grid.Pos{}
	}
	minPos, maxPos = s[0], s[0]
	for _, p := range s[1:] {
		minPos.Row = min(minPos.Row, p.Row)
		minPos.Col = min(minPos.Col, p.Col)
		maxPos.Row = max(maxPos.Row, p.Row)
		maxPos.Col = max(maxPos.Col, p.Col)
	}
	return minPos, maxPos
}

// Normalized returns the shape translated so its minimum offset is (0,0).
func (s Shape) Normalized() Shape {
	minPos, _ := s.Bounds()
	out := make(Shape, len(s))
	for i, p := range s {
		out[i] = p.Sub(minPos)
	}
	return out
}

// Rotated applies a clockwise rotation of the given degrees (a multiple of
// 90) around the bounding box center. Offsets are measured from a center
// of (maxRow/2, maxCol/2) and rounded half-up back onto the integer grid,
// so shapes with odd-sized boxes may shift by one cell between steps.
func (s Shape) Rotated(rotation int) Shape {
	rotation = NormalizeRotation(rotation)
	if rotation == 0 {
		out := make(Shape, len(s))
		copy(out, s)
		return out
	}

	_, maxPos := s.Bounds()
	cy := float64(maxPos.Row) / 2
	cx := float64(maxPos.Col) / 2

	out := make(Shape, len(s))
	for i, p := range s {
		y := float64(p.Row) - cy
		x := float64(p.Col) - cx

		var ny, nx float64
		switch rotation {
		case 90:
			ny, nx = x, -y
		case 180:
			ny, nx = -y, -x
		case 270:
			ny, nx = -x, y
		}
		out[i] = grid.P(roundHalfUp(ny+cy), roundHalfUp(nx+cx))
	}
	return out
}

// roundHalfUp rounds to the nearest integer, with halves going toward +Inf.
func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}

// NormalizeRotation maps any angle onto {0, 90, 180, 270}, snapping to the
// nearest quarter turn.
func NormalizeRotation(deg int) int {
	deg %= 360
	if deg < 0 {
		deg += 360
	}
	return ((deg + 45) / 90 * 90) % 360
}

// Catalog is a named set of shapes the generator picks from.
type Catalog struct {
	Name   string
	Shapes []Shape
}

// ClassicCatalog is the small seven-shape set: I, O, T, L, J, S and Z.
func ClassicCatalog() Catalog {
	return Catalog{
		Name: "classic",
		Shapes: []Shape{
			mustShape([2]int{0, 0}, [2]int{0, 1}, [2]int{0, 2}),
			mustShape([2]int{0, 0}, [2]int{0, 1}, [2]int{1, 0}, [2]int{1, 1}),
			mustShape([2]int{0, 0}, [2]int{0, 1}, [2]int{0, 2}, [2]int{1, 1}),
			mustShape([2]int{0, 0}, [2]int{0, 1}, [2]int{0, 2}, [2]int{1, 0}),
			mustShape([2]int{0, 0}, [2]int{0, 1}, [2]int{0, 2}, [2]int{1, 2}),
			mustShape([2]int{0, 0}, [2]int{0, 1}, [2]int{1, 1}, [2]int{1, 2}),
			mustShape([2]int{0, 1}, [2]int{0, 2}, [2]int{1, 0}, [2]int{1, 1}),
		},
	}
}

// ExtendedCatalog is the richer seventeen-shape set: a singleton, both
// dominoes, straight and corner trominoes, and the tetrominoes.
func ExtendedCatalog() Catalog {
	return Catalog{
		Name: "extended",
		Shapes: []Shape{
			mustShape([2]int{0, 0}),
			mustShape([2]int{0, 0}, [2]int{0, 1}),
			mustShape([2]int{0, 0}, [2]int{1, 0}),
			mustShape([2]int{0, 0}, [2]int{0, 1}, [2]int{0, 2}),
			mustShape([2]int{0, 0}, [2]int{1, 0}, [2]int{2, 0}),
			mustShape([2]int{0, 0}, [2]int{0, 1}, [2]int{1, 0}),
			mustShape([2]int{0, 0}, [2]int{0, 1}, [2]int{1, 1}),
			mustShape([2]int{0, 0}, [2]int{1, 0}, [2]int{1, 1}),
			mustShape([2]int{0, 1}, [2]int{1, 0}, [2]int{1, 1}),
			mustShape([2]int{0, 0}, [2]int{0, 1}, [2]int{0, 2}, [2]int{0, 3}),
			mustShape([2]int{0, 0}, [2]int{1, 0}, [2]int{2, 0}, [2]int{3, 0}),
			mustShape([2]int{0, 0}, [2]int{0, 1}, [2]int{1, 0}, [2]int{1, 1}),
			mustShape([2]int{0, 0}, [2]int{0, 1}, [2]int{0, 2}, [2]int{1, 1}),
			mustShape([2]int{0, 0}, [2]int{0, 1}, [2]int{0, 2}, [2]int{1, 0}),
			mustShape([2]int{0, 0}, [2]int{0, 1}, [2]int{0, 2}, [2]int{1, 2}),
			mustShape([2]int{0, 0}, [2]int{0, 1}, [2]int{1, 1}, [2]int{1, 2}),
			mustShape([2]int{0, 1}, [2]int{0, 2}, [2]int{1, 0}, [2]int{1, 1}),
		},
	}
}

// CatalogByName returns a catalog by its name. Unknown names yield the
// classic catalog and ok=false.
func CatalogByName(name string) (Catalog, bool) {
	switch name {
	case "classic", "":
		return ClassicCatalog(), true
	case "extended":
		return ExtendedCatalog(), true
	default:
		return ClassicCatalog(), false
	}
}
