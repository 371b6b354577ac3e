package main

import (
	"fmt"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/slovotetris/internal/lexicon"
	"github.com/vovakirdan/slovotetris/internal/scoring"
)

var checkCmd = &cobra.Command{
	Use:   "check <word>...",
	Short: "Look words up in the dictionary",
	Long: `Report whether each word is in the dictionary and what it would score
as a line word and as a traced path.

Examples:
  slovo check кот
  slovo check ЁЖИК дом --config ./slovo.yaml`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd.Context(), "slovo")
	if err != nil {
		return err
	}
	a.waitWords(cmd.Context())

	rules := a.cfg.GameOptions(0).Rules
	for _, line := range checkWords(a.words, rules, args) {
		fmt.Fprintln(cmd.OutOrStdout(), line)
	}
	return nil
}

// checkWords formats one verdict line per word.
func checkWords(words *lexicon.Provider, rules scoring.Rules, args []string) []string {
	out := make([]string, 0, len(args))
	for _, raw := range args {
		word := lexicon.Normalize(raw)
		if !words.Contains(word) {
			out = append(out, fmt.Sprintf("%-14s  not a word", word))
			continue
		}
		out = append(out, fmt.Sprintf("%-14s  %2d letters  line %3d  path %3d",
			word, utf8.RuneCountInString(word), rules.Line(word), rules.Path(word)))
	}
	return out
}
