// Package scoring turns placements and found words into points.
package scoring

import (
	"strings"
	"unicode/utf8"
)

// Default point values.
const (
	DefaultPlacementPoints  = 10
	DefaultLineLetterPoints = 10
	DefaultHardLetterBonus  = 2
	DefaultHardLetters      = "ъфщэцюжш"
)

// pathTable maps word length to points for traced words. Length 14 scores
// below 13; the table is kept as released.
var pathTable = map[int]int{
	3:  3,
	4:  5,
	5:  6,
	6:  8,
	7:  10,
	8:  13,
	9:  16,
	10: 20,
	11: 24,
	12: 28,
	13: 32,
	14: 30,
}

// PathLengthPoints returns the table value for a traced word of n letters.
// Lengths outside the table score nothing; longer words take the last entry.
func PathLengthPoints(n int) int {
	if n > 14 {
		return pathTable[14]
	}
	return pathTable[n]
}

// Rules holds the tunable point values.
type Rules struct {
	PlacementPoints  int
	LineLetterPoints int
	HardLetterBonus  int
	HardLetters      string
}

// DefaultRules returns the stock point values.
func DefaultRules() Rules {
	return Rules{
		PlacementPoints:  DefaultPlacementPoints,
		LineLetterPoints: DefaultLineLetterPoints,
		HardLetterBonus:  DefaultHardLetterBonus,
		HardLetters:      DefaultHardLetters,
	}
}

// Placement returns the flat award for dropping a figure.
func (r Rules) Placement() int {
	return r.PlacementPoints
}

// Line scores a word found by the line scan: a fixed amount per letter.
func (r Rules) Line(word string) int {
	return utf8.RuneCountInString(word) * r.LineLetterPoints
}

// Path scores a traced word: the length table plus a bonus for each
// occurrence of a hard letter.
func (r Rules) Path(word string) int {
	word = strings.ToLower(word)
	return PathLengthPoints(utf8.RuneCountInString(word)) + r.HardLetterCount(word)*r.HardLetterBonus
}

// HardLetterCount counts the letters of word that belong to the hard set.
func (r Rules) HardLetterCount(word string) int {
	n := 0
	for _, l := range strings.ToLower(word) {
		if strings.ContainsRune(r.HardLetters, l) {
			n++
		}
	}
	return n
}
