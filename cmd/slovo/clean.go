package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/slovotetris/internal/lexicon"
)

var (
	flagCleanMin int
	flagCleanMax int
)

var cleanCmd = &cobra.Command{
	Use:   "clean <input> [output]",
	Short: "Clean a raw word list",
	Long: `Read a raw word list (UTF-8 or Windows-1251), normalize it, drop
entries outside the Russian alphabet or the length bounds, remove duplicates
and write the sorted result one word per line. Without an output path the
result goes to stdout; "-" reads the input from stdin.

Examples:
  slovo clean raw.txt configs/words.txt
  slovo clean --min 4 --max 8 raw.txt > words.txt`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runClean,
}

func init() {
	cleanCmd.Flags().IntVar(&flagCleanMin, "min", lexicon.DefaultMinLen, "Shortest word kept")
	cleanCmd.Flags().IntVar(&flagCleanMax, "max", lexicon.DefaultMaxLen, "Longest word kept")
}

func runClean(cmd *cobra.Command, args []string) error {
	if flagCleanMin < 1 || flagCleanMax < flagCleanMin {
		return fmt.Errorf("bad length bounds [%d, %d]", flagCleanMin, flagCleanMax)
	}

	var (
		data []byte
		err  error
	)
	if args[0] == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(args[0])
	}
	if err != nil {
		return fmt.Errorf("cannot read word list: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(args) == 2 {
		f, err := os.Create(args[1])
		if err != nil {
			return fmt.Errorf("cannot create %s: %w", args[1], err)
		}
		defer f.Close()
		out = f
	}

	stats, err := cleanWords(data, out, flagCleanMin, flagCleanMax)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "processed %d, kept %d, skipped %d (alphabet) %d (length), %d duplicates\n",
		stats.Processed, stats.Kept(), stats.SkippedAlpha, stats.SkippedLength, stats.Duplicates)
	return nil
}

// cleanWords decodes a raw list and writes the cleaned words to w.
func cleanWords(data []byte, w io.Writer, minLen, maxLen int) (lexicon.CleanStats, error) {
	text, err := lexicon.Decode(data)
	if err != nil {
		return lexicon.CleanStats{}, err
	}

	words, stats := lexicon.Clean(lexicon.ParseLines(text), minLen, maxLen)
	if len(words) > 0 {
		if _, err := io.WriteString(w, strings.Join(words, "\n")+"\n"); err != nil {
			return stats, fmt.Errorf("cannot write word list: %w", err)
		}
	}
	return stats, nil
}
