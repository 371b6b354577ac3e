package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/slovotetris/internal/registry"
	"github.com/vovakirdan/slovotetris/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show high scores",
	Long: `Display the top scores and the longest words cleared in a mode.
Without a mode, print a summary line for every mode.

--clear deletes the stored games of the mode, or of every mode when none
is given.

Examples:
  slovo scores
  slovo scores blocks
  slovo scores snake --limit 20
  slovo scores snake --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of entries to show")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete the stored scores instead of showing them")
}

func runScores(cmd *cobra.Command, args []string) error {
	var modes []registry.ModeInfo
	if len(args) == 1 {
		mode, err := registry.Lookup(args[0])
		if err != nil {
			return fmt.Errorf("%w (run 'slovo list' to see the modes)", err)
		}
		modes = []registry.ModeInfo{{ID: mode.ID, Title: mode.Title}}
	} else {
		modes = registry.List()
	}

	a, err := newApp(cmd.Context(), "slovo")
	if err != nil {
		return err
	}

	// Open score storage
	store, err := a.openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	out := cmd.OutOrStdout()
	switch {
	case flagScoresClear:
		for _, m := range modes {
			if err := store.ClearScores(m.ID); err != nil {
				return err
			}
			a.logger.Info("scores cleared", "mode", m.ID)
		}
		fmt.Fprintf(out, "Cleared scores for %d mode(s).\n", len(modes))
		return nil
	case len(args) == 0:
		stats, err := store.AllStats()
		if err != nil {
			return err
		}
		printAllStats(out, modes, stats)
		return nil
	}
	return printModeScores(out, store, modes[0], flagScoresLimit)
}

// printAllStats writes one summary line per mode, played or not.
func printAllStats(w io.Writer, modes []registry.ModeInfo, stats map[string]*storage.ModeStats) {
	fmt.Fprintf(w, "  %-8s  %-20s  %5s  %6s  %7s  %5s  %s\n", "Mode", "Title", "Games", "Best", "Average", "Words", "Last played")
	for _, m := range modes {
		st, ok := stats[m.ID]
		if !ok {
			fmt.Fprintf(w, "  %-8s  %-20s  %5d  %6s  %7s  %5s  %s\n", m.ID, m.Title, 0, "-", "-", "-", "never")
			continue
		}
		fmt.Fprintf(w, "  %-8s  %-20s  %5d  %6d  %7.0f  %5d  %s\n",
			m.ID, m.Title, st.GamesCount, st.HighScore, st.AvgScore, st.TotalWords, st.LastPlayed.Format("2006-01-02 15:04"))
	}
}

func printModeScores(w io.Writer, store *storage.Store, mode registry.ModeInfo, limit int) error {
	scores, err := store.TopScores(mode.ID, limit)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "High Scores - %s\n\n", mode.Title)

	if len(scores) == 0 {
		fmt.Fprintln(w, "No scores recorded yet.")
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Play 'slovo play %s' to set the first high score!\n", mode.ID)
		return nil
	}

	fmt.Fprintf(w, "  %-4s  %-8s  %-5s  %-14s  %s\n", "Rank", "Score", "Words", "Best word", "Date")
	fmt.Fprintf(w, "  %-4s  %-8s  %-5s  %-14s  %s\n", "----", "-----", "-----", "---------", "----")
	for i, entry := range scores {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Fprintf(w, "  %-4d  %-8d  %-5d  %-14s  %s\n", i+1, entry.Score, entry.Words, entry.BestWord, dateStr)
	}

	if stats, err := store.Stats(mode.ID); err == nil {
		fmt.Fprintf(w, "\nBest: %d   Games: %d   Average: %.0f   Words: %d\n", stats.HighScore, stats.GamesCount, stats.AvgScore, stats.TotalWords)
	}

	words, err := store.LongestWords(mode.ID, limit)
	if err != nil {
		return err
	}
	if len(words) > 0 {
		fmt.Fprintln(w, "\nLongest words:")
		for _, entry := range words {
			fmt.Fprintf(w, "  %-14s  %3d pts  %s\n", entry.Word, entry.Points, entry.Direction)
		}
	}
	return nil
}
