package figure

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/slovotetris/internal/grid"
)

func newTestGenerator(seed int64, catalog Catalog) *Generator {
	return NewGenerator(rand.New(rand.NewSource(seed)), catalog, nil)
}

func TestCatalogSizes(t *testing.T) {
	assert.Len(t, ClassicCatalog().Shapes, 7)
	assert.Len(t, ExtendedCatalog().Shapes, 17)

	c, ok := CatalogByName("extended")
	assert.True(t, ok)
	assert.Equal(t, "extended", c.Name)

	c, ok = CatalogByName("bogus")
	assert.False(t, ok)
	assert.Equal(t, "classic", c.Name)
}

func TestNewShapeRejectsDuplicates(t *testing.T) {
	_, err := NewShape([2]int{0, 0}, [2]int{0, 0})
	assert.Error(t, err)

	_, err = NewShape()
	assert.Error(t, err)
}

func TestNormalizeRotation(t *testing.T) {
	tests := []struct {
		in, expected int
	}{
		{0, 0},
		{90, 90},
		{360, 0},
		{450, 90},
		{-90, 270},
		{-180, 180},
		{100, 90},
		{-360, 0},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.expected, NormalizeRotation(tc.in), "NormalizeRotation(%d)", tc.in)
	}
}

func TestRotateFourTimesReturnsToStart(t *testing.T) {
	f := Figure{ID: "x", Shape: ClassicCatalog().Shapes[2], Letters: []rune("абвг")}
	r := f
	for range 4 {
		r = r.Rotate(90)
	}
	assert.Equal(t, f.Rotation, r.Rotation)

	r = f.Rotate(-90)
	assert.Equal(t, 270, r.Rotation)
	// Rotation is stored, not applied to the offsets.
	assert.Equal(t, f.Shape, r.Shape)
}

func TestRotatedShape(t *testing.T) {
	line := Shape{grid.P(0, 0), grid.P(0, 1), grid.P(0, 2)}

	tests := []struct {
		name     string
		rotation int
		expected Shape
	}{
		{"identity", 0, Shape{grid.P(0, 0), grid.P(0, 1), grid.P(0, 2)}},
		{"quarter turn", 90, Shape{grid.P(-1, 1), grid.P(0, 1), grid.P(1, 1)}},
		{"half turn", 180, Shape{grid.P(0, 2), grid.P(0, 1), grid.P(0, 0)}},
		{"three quarters", 270, Shape{grid.P(1, 1), grid.P(0, 1), grid.P(-1, 1)}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, line.Rotated(tc.rotation))
		})
	}
}

func TestRotatedShapeOddBoxRounds(t *testing.T) {
	// 2x3 box: the center falls between cells and offsets round half-up.
	tee := Shape{grid.P(0, 0), grid.P(0, 1), grid.P(0, 2), grid.P(1, 1)}
	rot := tee.Rotated(90)

	require.Len(t, rot, 4)
	seen := map[grid.Pos]bool{}
	for _, p := range rot {
		seen[p] = true
	}
	assert.Len(t, seen, 4, "rotation must not merge cells")

	// The bar turns upright in the right column with its nub on the left.
	assert.Equal(t, Shape{grid.P(0, 2), grid.P(1, 2), grid.P(2, 2), grid.P(1, 1)}, rot)
}

func TestWeightedTable(t *testing.T) {
	_, err := NewWeightedTable(nil)
	assert.Error(t, err)
	_, err = NewWeightedTable([]LetterWeight{{'а', 0}})
	assert.Error(t, err)

	table := RussianTable()
	assert.Equal(t, 11, table.Weight('о'))
	assert.Equal(t, 2, table.Weight('ъ'))
	assert.Equal(t, 0, table.Weight('z'))
	assert.Equal(t, 100, table.Total())

	rng := rand.New(rand.NewSource(7))
	counts := map[rune]int{}
	for range 11000 {
		counts[table.Sample(rng)]++
	}
	assert.Greater(t, counts['о'], counts['ъ']*2)
	for l := range counts {
		assert.Positive(t, table.Weight(l), "sampled letter %q not in table", l)
	}
}

func TestWeightedTableBoundaries(t *testing.T) {
	table, err := NewWeightedTable([]LetterWeight{{'а', 1}, {'б', 2}})
	require.NoError(t, err)

	assert.Equal(t, 'а', table.Sample(fixedRand(0)))
	assert.Equal(t, 'б', table.Sample(fixedRand(1)))
	assert.Equal(t, 'б', table.Sample(fixedRand(2)))
}

type fixedRand int

func (f fixedRand) Intn(int) int  { return int(f) }
func (f fixedRand) Int63() int64 { return int64(f) }

func TestGenerateFigure(t *testing.T) {
	gen := newTestGenerator(42, ExtendedCatalog())
	ids := map[string]bool{}

	for range 200 {
		f := gen.Generate()
		require.Len(t, f.Letters, len(f.Shape))
		assert.Equal(t, 0, f.Rotation)
		assert.False(t, ids[f.ID], "duplicate figure id %s", f.ID)
		ids[f.ID] = true
	}
}

func TestGenerateDeterministic(t *testing.T) {
	a := newTestGenerator(5, ClassicCatalog())
	b := newTestGenerator(5, ClassicCatalog())
	for range 20 {
		assert.Equal(t, a.Generate(), b.Generate())
	}
}

func TestQueueConsumeKeepsLength(t *testing.T) {
	q := NewQueue(newTestGenerator(1, ClassicCatalog()), 3)
	require.Equal(t, 3, q.Len())

	first, _ := q.At(0)
	f, ok := q.Consume(first.ID)
	require.True(t, ok)
	assert.Equal(t, first.ID, f.ID)
	assert.Equal(t, 3, q.Len())
	_, found := q.Find(first.ID)
	assert.False(t, found)

	_, ok = q.Consume(first.ID)
	assert.False(t, ok, "a figure is consumed exactly once")
	assert.Equal(t, 3, q.Len())
}

func TestQueueRotate(t *testing.T) {
	q := NewQueue(newTestGenerator(1, ClassicCatalog()), 3)
	f, _ := q.At(1)

	rotated, ok := q.Rotate(f.ID, 90)
	require.True(t, ok)
	assert.Equal(t, 90, rotated.Rotation)

	got, _ := q.Find(f.ID)
	assert.Equal(t, 90, got.Rotation)

	_, ok = q.Rotate("missing", 90)
	assert.False(t, ok)
}

func TestValidateOutOfBounds(t *testing.T) {
	g := grid.New(6)
	f := Figure{ID: "a", Shape: ClassicCatalog().Shapes[0], Letters: []rune("дом")}

	err := Validate(g, f, grid.P(0, 4), 0)
	assert.ErrorIs(t, err, ErrOutOfBounds)

	var perr *PlacementError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, grid.P(0, 6), perr.Pos)

	assert.ErrorIs(t, Validate(g, f, grid.P(-1, 0), 0), ErrOutOfBounds)
	assert.NoError(t, Validate(g, f, grid.P(0, 3), 0))
}

func TestValidateOccupied(t *testing.T) {
	g := grid.New(6)
	g.Set(grid.P(2, 2), grid.Letter('к'))
	f := Figure{ID: "a", Shape: ClassicCatalog().Shapes[0], Letters: []rune("дом")}

	assert.ErrorIs(t, Validate(g, f, grid.P(2, 0), 0), ErrCellOccupied)
	assert.NoError(t, Validate(g, f, grid.P(3, 0), 0))
}

func TestPlaceThenValidateReportsOccupied(t *testing.T) {
	g := grid.New(6)
	f := Figure{ID: "a", Shape: ClassicCatalog().Shapes[2], Letters: []rune("котя")}

	placed, err := Place(g, f, grid.P(1, 1), 0)
	require.NoError(t, err)
	assert.Equal(t, 0, g.FilledCount(), "input grid must not change")
	assert.Equal(t, 4, placed.FilledCount())

	for _, c := range f.Footprint(grid.P(1, 1), 0) {
		cell := placed.Get(c.Pos)
		assert.Equal(t, c.Letter, cell.Letter)
		assert.True(t, cell.Fixed)
		assert.False(t, cell.Hovered)

		single := Figure{ID: "s", Shape: Shape{grid.P(0, 0)}, Letters: []rune{'а'}}
		assert.ErrorIs(t, Validate(placed, single, c.Pos, 0), ErrCellOccupied)
	}

	assert.ErrorIs(t, Validate(placed, f, grid.P(1, 1), 0), ErrCellOccupied)
}

func TestPlaceFailureLeavesGrid(t *testing.T) {
	g := grid.MustParse(
		"......",
		"..х...",
		"......",
		"......",
		"......",
		"......",
	)
	before := g.Clone()
	f := Figure{ID: "a", Shape: ClassicCatalog().Shapes[0], Letters: []rune("дом")}

	out, err := Place(g, f, grid.P(1, 0), 0)
	assert.ErrorIs(t, err, ErrCellOccupied)
	assert.True(t, out.Equal(before))
	assert.True(t, g.Equal(before))
}

func TestPlaceRotated(t *testing.T) {
	g := grid.New(5)
	f := Figure{ID: "a", Shape: ClassicCatalog().Shapes[0], Letters: []rune("дом")}

	out, err := Place(g, f, grid.P(1, 0), 90)
	require.NoError(t, err)
	assert.Equal(t, []string{
		".д...",
		".о...",
		".м...",
		".....",
		".....",
	}, out.Rows())
}

func TestFindBestAnchor(t *testing.T) {
	g := grid.New(5)
	f := Figure{ID: "a", Shape: ClassicCatalog().Shapes[0], Letters: []rune("дом")}

	// Touching the right edge cannot anchor the first cell there, but the
	// last cell can land on it.
	anchor, ok := FindBestAnchor(g, f, grid.P(0, 4), 0)
	require.True(t, ok)
	assert.Equal(t, grid.P(0, 2), anchor)

	anchor, ok = FindBestAnchor(g, f, grid.P(3, 1), 0)
	require.True(t, ok)
	assert.Equal(t, grid.P(3, 1), anchor)

	g.Set(grid.P(3, 2), grid.Letter('х'))
	anchor, ok = FindBestAnchor(g, f, grid.P(3, 1), 0)
	assert.False(t, ok)
	assert.Equal(t, grid.Pos{}, anchor)
}

func TestFits(t *testing.T) {
	g := grid.MustParse(
		"ааа",
		"а.а",
		"ааа",
	)
	single := Figure{ID: "s", Shape: Shape{grid.P(0, 0)}, Letters: []rune{'б'}}
	line := Figure{ID: "l", Shape: ClassicCatalog().Shapes[0], Letters: []rune("дом")}

	assert.True(t, Fits(g, single))
	assert.False(t, Fits(g, line))
	assert.True(t, Fits(grid.New(3), line))

	// Only the left column is free, so the line fits once turned upright.
	column := grid.MustParse(
		".аа",
		".аа",
		".аа",
	)
	assert.True(t, Fits(column, line))

	// The first shape cell is not the top-left one.
	corner := Figure{ID: "c", Shape: Shape{grid.P(0, 1), grid.P(1, 0), grid.P(1, 1)}, Letters: []rune("кот")}
	notch := grid.MustParse(
		"ааа",
		"а.а",
		"...",
	)
	assert.True(t, Fits(notch, corner))
	notch.Set(grid.P(2, 1), grid.Letter('х'))
	assert.False(t, Fits(notch, corner))
}

func TestPreview(t *testing.T) {
	g := grid.New(4)
	f := Figure{ID: "a", Shape: ClassicCatalog().Shapes[0], Letters: []rune("дом")}

	p, ok := Preview(g, f, grid.P(0, 0), 0)
	require.True(t, ok)
	assert.True(t, p.Get(grid.P(0, 2)).Hovered)
	assert.False(t, g.Get(grid.P(0, 2)).Hovered)

	_, ok = Preview(g, f, grid.P(0, 3), 0)
	assert.False(t, ok)
}
