package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/slovotetris/internal/grid"
	"github.com/vovakirdan/slovotetris/internal/lexicon"
	"github.com/vovakirdan/slovotetris/internal/scan"
	"github.com/vovakirdan/slovotetris/internal/scoring"
)

var scanCmd = &cobra.Command{
	Use:   "scan [row...]",
	Short: "Print the words a grid spells",
	Long: `Run the line scan over a square grid and print every row and column
word it finds. Rows come from the arguments, or from stdin one per line.
'.', '_' and spaces are empty cells.

Examples:
  slovo scan кот. .... .... ....
  printf 'дом\n...\n...\n' | slovo scan`,
	RunE: runScan,
}

func runScan(cmd *cobra.Command, args []string) error {
	rows := args
	if len(rows) == 0 {
		var err error
		if rows, err = readRows(cmd.InOrStdin()); err != nil {
			return err
		}
	}

	g, err := grid.Parse(normalizeRows(rows)...)
	if err != nil {
		return err
	}

	a, err := newApp(cmd.Context(), "slovo")
	if err != nil {
		return err
	}
	a.waitWords(cmd.Context())

	scanner := scan.New(a.words, a.cfg.Game.MinWordLen)
	printMatches(cmd.OutOrStdout(), scanner.Scan(g), a.cfg.GameOptions(0).Rules)
	return nil
}

// readRows reads non-blank lines.
func readRows(r io.Reader) ([]string, error) {
	var rows []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if line := strings.TrimRight(sc.Text(), "\r"); strings.TrimSpace(line) != "" {
			rows = append(rows, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("cannot read grid: %w", err)
	}
	return rows, nil
}

// normalizeRows lowercases letters so typed-in capitals match the dictionary.
func normalizeRows(rows []string) []string {
	out := make([]string, len(rows))
	for i, row := range rows {
		out[i] = lexicon.Normalize(row)
	}
	return out
}

func printMatches(w io.Writer, matches []scan.Match, rules scoring.Rules) {
	if len(matches) == 0 {
		fmt.Fprintln(w, "No words found.")
		return
	}

	total := 0
	for _, m := range matches {
		pts := rules.Line(m.Word)
		total += pts
		fmt.Fprintf(w, "  %-14s  %-10s  %v  %d pts\n", m.Word, m.Direction, m.Positions[0], pts)
	}
	fmt.Fprintf(w, "%d words, %d pts\n", len(matches), total)
}
