package figure

import (
	"strconv"

	"github.com/vovakirdan/slovotetris/internal/grid"
)

// Figure is a polyomino carrying one letter per cell. Letters are index
// aligned with Shape. Rotation is stored, not baked into Shape; it is
// applied when the figure is drawn or placed.
type Figure struct {
	ID       string
	Shape    Shape
	Letters  []rune
	Rotation int
}

// Rotate returns a copy with the rotation advanced by delta degrees and
// normalized to {0, 90, 180, 270}.
func (f Figure) Rotate(delta int) Figure {
	f.Rotation = NormalizeRotation(f.Rotation + delta)
	return f
}

// RotatedShape returns the shape with the given rotation applied.
func (f Figure) RotatedShape(rotation int) Shape {
	return f.Shape.Rotated(rotation)
}

// Cell is one letter of a figure at an absolute grid position.
type Cell struct {
	Pos    grid.Pos
	Letter rune
}

// Footprint returns the absolute cells the figure would cover when its
// rotated shape is anchored at anchor.
func (f Figure) Footprint(anchor grid.Pos, rotation int) []Cell {
	shape := f.RotatedShape(rotation)
	cells := make([]Cell, len(shape))
	for i, off := range shape {
		cells[i] = Cell{Pos: anchor.Add(off), Letter: f.Letters[i]}
	}
	return cells
}

// Word returns the figure's letters as a string.
func (f Figure) Word() string {
	return string(f.Letters)
}

// Generator creates figures from a shape catalog and a letter table.
type Generator struct {
	rng     Rand
	catalog Catalog
	letters *WeightedTable
	seq     uint64
}

// NewGenerator creates a generator. A nil letter table uses RussianTable.
func NewGenerator(rng Rand, catalog Catalog, letters *WeightedTable) *Generator {
	if letters == nil {
		letters = RussianTable()
	}
	if len(catalog.Shapes) == 0 {
		catalog = ClassicCatalog()
	}
	return &Generator{
		rng:     rng,
		catalog: catalog,
		letters: letters,
	}
}

// Catalog returns the catalog the generator draws from.
func (g *Generator) Catalog() Catalog {
	return g.catalog
}

// Generate picks a shape uniformly at random and samples an independent
// weighted letter for each of its cells.
func (g *Generator) Generate() Figure {
	shape := g.catalog.Shapes[g.rng.Intn(len(g.catalog.Shapes))]

	letters := make([]rune, len(shape))
	for i := range shape {
		letters[i] = g.letters.Sample(g.rng)
	}

	own := make(Shape, len(shape))
	copy(own, shape)

	return Figure{
		ID:      g.nextID(),
		Shape:   own,
		Letters: letters,
	}
}

// nextID returns a sequence number joined with a random base-36 suffix.
// The sequence part keeps IDs unique within a generator.
func (g *Generator) nextID() string {
	g.seq++
	suffix := strconv.FormatInt(g.rng.Int63()%(36*36*36*36*36), 36)
	return strconv.FormatUint(g.seq, 36) + "-" + suffix
}
