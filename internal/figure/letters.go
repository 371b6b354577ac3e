package figure

import (
	"fmt"
	"sort"
)

// Rand is the subset of *math/rand.Rand the generator needs.
type Rand interface {
	Intn(n int) int
	Int63() int64
}

// LetterWeight pairs a letter with its relative frequency.
type LetterWeight struct {
	Letter rune
	Weight int
}

// WeightedTable samples letters proportionally to their weights using a
// cumulative-weight array and a single uniform draw.
type WeightedTable struct {
	letters    []rune
	cumulative []int
	total      int
}

// NewWeightedTable builds a table. Entries with non-positive weight are
// rejected, as is an empty table.
func NewWeightedTable(weights []LetterWeight) (*WeightedTable, error) {
	t := &WeightedTable{}
	for _, w := range weights {
		if w.Weight <= 0 {
			return nil, fmt.Errorf("figure: letter %q has non-positive weight %d", w.Letter, w.Weight)
		}
		t.total += w.Weight
		t.letters = append(t.letters, w.Letter)
		t.cumulative = append(t.cumulative, t.total)
	}
	if t.total == 0 {
		return nil, fmt.Errorf("figure: empty letter table")
	}
	return t, nil
}

// Sample draws one letter.
func (t *WeightedTable) Sample(rng Rand) rune {
	x := rng.Intn(t.total)
	i := sort.SearchInts(t.cumulative, x+1)
	return t.letters[i]
}

// Letters returns the letters in table order.
func (t *WeightedTable) Letters() []rune {
	out := make([]rune, len(t.letters))
	copy(out, t.letters)
	return out
}

// Weight returns the weight of letter, or 0 if absent.
func (t *WeightedTable) Weight(letter rune) int {
	prev := 0
	for i, l := range t.letters {
		if l == letter {
			return t.cumulative[i] - prev
		}
		prev = t.cumulative[i]
	}
	return 0
}

// Total returns the sum of all weights.
func (t *WeightedTable) Total() int {
	return t.total
}

// RussianWeights approximates Russian letter frequency: vowels and common
// consonants weigh more than rare letters.
func RussianWeights() []LetterWeight {
	return []LetterWeight{
		{'о', 11}, {'а', 8}, {'е', 7}, {'и', 6}, {'н', 5},
		{'т', 4}, {'с', 4}, {'р', 3}, {'в', 3}, {'л', 3},
		{'к', 2}, {'м', 2}, {'д', 2}, {'п', 2}, {'у', 2},
		{'я', 2}, {'ы', 2}, {'ь', 2}, {'г', 2}, {'з', 2},
		{'б', 2}, {'ч', 2}, {'й', 2}, {'х', 2}, {'ж', 2},
		{'ш', 2}, {'ю', 2}, {'ц', 2}, {'щ', 2}, {'э', 2},
		{'ф', 2}, {'ё', 2}, {'ъ', 2},
	}
}

// RussianTable returns the default weighted table.
func RussianTable() *WeightedTable {
	t, err := NewWeightedTable(RussianWeights())
	if err != nil {
		panic(err)
	}
	return t
}
