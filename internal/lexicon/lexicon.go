// Package lexicon provides the word-membership structure used to validate
// candidate words. Words are normalized (lowercase, NFC, ё folded to е) and
// stored in a prefix tree keyed by rune, so lookups cost O(len(word)) no
// matter how large the dictionary is.
//
// A Lexicon is immutable after Build. Rebuilding is the only way to change it.
package lexicon

import (
	"strings"
	"unicode"

	"github.com/kamstrup/intmap"
	"golang.org/x/text/unicode/norm"
)

// Default word length bounds applied at build time.
const (
	DefaultMinLen = 3
	DefaultMaxLen = 12
)

// node is a single prefix tree vertex.
type node struct {
	children *intmap.Map[rune, *node]
	end      bool
}

func (n *node) child(r rune) *node {
	if n == nil || n.children == nil {
		return nil
	}
	c, _ := n.children.Get(r)
	return c
}

func (n *node) ensure(r rune) *node {
	if n.children == nil {
		n.children = intmap.New[rune, *node](4)
	}
	if c, ok := n.children.Get(r); ok {
		return c
	}
	c := &node{}
	n.children.Put(r, c)
	return c
}

// Stats describes what happened to the input while building a Lexicon.
type Stats struct {
	Added      int // Distinct words inserted
	Duplicates int // Accepted words that were already present
	Skipped    int // Entries rejected by alphabet or length filters
}

// Lexicon is an immutable prefix tree of normalized words.
type Lexicon struct {
	root   *node
	minLen int
	maxLen int
	stats  Stats
}

// Build creates a Lexicon from a word list. Entries that are not purely
// Cyrillic, or whose length falls outside [minLen, maxLen], are skipped.
// Malformed entries never cause an error.
func Build(words []string, minLen, maxLen int) *Lexicon {
	l := &Lexicon{
		root:   &node{},
		minLen: minLen,
		maxLen: maxLen,
	}

	for _, w := range words {
		normalized, ok := Accept(w, minLen, maxLen)
		if !ok {
			l.stats.Skipped++
			continue
		}
		if l.insert(normalized) {
			l.stats.Added++
		} else {
			l.stats.Duplicates++
		}
	}

	return l
}

// insert adds a normalized word. Returns false if it was already present.
func (l *Lexicon) insert(word string) bool {
	n := l.root
	for _, r := range word {
		n = n.ensure(r)
	}
	if n.end {
		return false
	}
	n.end = true
	return true
}

// Contains reports whether word, normalized the same way as at build time,
// is a complete entry. Prefixes of entries are not words.
func (l *Lexicon) Contains(word string) bool {
	if l == nil {
		return false
	}
	n := l.root
	for _, r := range Normalize(word) {
		n = n.child(r)
		if n == nil {
			return false
		}
	}
	return n != l.root && n.end
}

// HasPrefix reports whether any entry starts with prefix.
func (l *Lexicon) HasPrefix(prefix string) bool {
	if l == nil {
		return false
	}
	n := l.root
	for _, r := range Normalize(prefix) {
		n = n.child(r)
		if n == nil {
			return false
		}
	}
	return true
}

// Size returns the number of distinct words.
func (l *Lexicon) Size() int {
	if l == nil {
		return 0
	}
	return l.stats.Added
}

// Stats returns build statistics.
func (l *Lexicon) Stats() Stats {
	return l.stats
}

// MinLen returns the minimum word length accepted at build time.
func (l *Lexicon) MinLen() int { return l.minLen }

// MaxLen returns the maximum word length accepted at build time.
func (l *Lexicon) MaxLen() int { return l.maxLen }

// Root returns a cursor positioned before the first letter.
func (l *Lexicon) Root() Cursor {
	if l == nil {
		return Cursor{}
	}
	return Cursor{n: l.root, depth: 0}
}

// Cursor walks the prefix tree one letter at a time. The zero Cursor is dead.
type Cursor struct {
	n     *node
	depth int
}

// Next advances by one letter. The letter is normalized before lookup.
// Advancing a dead cursor yields a dead cursor.
func (c Cursor) Next(r rune) Cursor {
	child := c.n.child(NormalizeRune(r))
	if child == nil {
		return Cursor{}
	}
	return Cursor{n: child, depth: c.depth + 1}
}

// Alive reports whether the letters consumed so far form a prefix of some entry.
func (c Cursor) Alive() bool {
	return c.n != nil
}

// Terminal reports whether the letters consumed so far form a complete entry.
func (c Cursor) Terminal() bool {
	return c.n != nil && c.depth > 0 && c.n.end
}

// Depth returns the number of letters consumed.
func (c Cursor) Depth() int {
	return c.depth
}

// Normalize lowercases s, composes decomposed characters and folds ё to е.
func Normalize(s string) string {
	s = norm.NFC.String(s)
	var sb strings.Builder
	sb.Grow(len(s))
	for _, r := range s {
		sb.WriteRune(NormalizeRune(r))
	}
	return sb.String()
}

// NormalizeRune lowercases r and folds ё to е.
func NormalizeRune(r rune) rune {
	r = unicode.ToLower(r)
	if r == 'ё' {
		return 'е'
	}
	return r
}

// IsLetter reports whether r belongs to the game alphabet (Russian Cyrillic,
// either case, including ё).
func IsLetter(r rune) bool {
	switch {
	case r >= 'а' && r <= 'я':
		return true
	case r >= 'А' && r <= 'Я':
		return true
	case r == 'ё' || r == 'Ё':
		return true
	}
	return false
}

// Accept applies the build-time filters to a raw entry and returns its
// normalized form. ok is false when the entry would be skipped.
func Accept(word string, minLen, maxLen int) (normalized string, ok bool) {
	normalized = Normalize(word)
	n := 0
	for _, r := range normalized {
		if !IsLetter(r) {
			return "", false
		}
		n++
	}
	if n == 0 || n < minLen || n > maxLen {
		return "", false
	}
	return normalized, true
}
