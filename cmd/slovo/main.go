// slovo is a Russian word-Tetris: drop letter figures on a square grid and
// clear the words they spell.
//
// Usage:
//
//	slovo list               - List game modes
//	slovo play [mode]        - Play in the terminal (menu when no mode is given)
//	slovo serve              - Start SSH server for remote play
//	slovo api                - Start the HTTP JSON API
//	slovo scores <mode>      - Show high scores and longest words
//	slovo check <word>       - Look a word up in the dictionary
//	slovo scan [row...]      - Print the words a grid spells
//	slovo clean <in> [out]   - Clean a raw word list
//
// Global flags:
//
//	--seed <value>       - Set RNG seed for reproducible figures
//	--db <path>          - Set database path (default: ~/.slovo/scores.db)
//	--config <path>      - Use a custom config YAML
//	--difficulty <name>  - Apply a preset: easy, normal, hard
//	--log-level <level>  - debug, info, warn, error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "slovo",
	Short: "Словотетрис - word Tetris in your terminal",
	Long: `Словотетрис drops figures made of Russian letters onto a square grid.
Rows and columns that spell a dictionary word vanish (blocks mode), or words
are traced through touching letters (snake mode).

Available commands:
  list     - Show all game modes
  play     - Play in the terminal
  serve    - Start SSH server for remote play
  api      - Start the HTTP JSON API
  scores   - View high scores
  check    - Look up a word
  scan     - Find the words a grid spells
  clean    - Clean a raw word list

Examples:
  slovo list
  slovo play blocks
  slovo play --difficulty easy
  slovo serve --ssh :2323
  slovo api --http :8080
  slovo scores snake`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to scores database (default from config: ~/.slovo/scores.db)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(apiCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(cleanCmd)
}
