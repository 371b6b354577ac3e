package lexicon

import "sort"

// CleanStats summarizes a Clean run.
type CleanStats struct {
	Processed     int
	SkippedLength int
	SkippedAlpha  int
	Duplicates    int
}

// Kept returns how many entries survived.
func (s CleanStats) Kept() int {
	return s.Processed - s.SkippedLength - s.SkippedAlpha - s.Duplicates
}

// Clean normalizes raw entries, drops anything outside the alphabet or the
// length bounds, removes duplicates and returns the result sorted. The
// output is the newline-delimited format Read consumes.
func Clean(raw []string, minLen, maxLen int) ([]string, CleanStats) {
	var stats CleanStats
	seen := make(map[string]struct{}, len(raw))
	out := make([]string, 0, len(raw))

	for _, w := range raw {
		stats.Processed++

		normalized, ok := Accept(w, 0, int(^uint(0)>>1))
		if !ok {
			stats.SkippedAlpha++
			continue
		}
		if n := len([]rune(normalized)); n < minLen || n > maxLen {
			stats.SkippedLength++
			continue
		}
		if _, dup := seen[normalized]; dup {
			stats.Duplicates++
			continue
		}
		seen[normalized] = struct{}{}
		out = append(out, normalized)
	}

	sort.Strings(out)
	return out, stats
}
