package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/slovotetris/internal/platform/tui"
	"github.com/vovakirdan/slovotetris/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play in the terminal",
	Long: `Start a game in the terminal. Without a mode a menu lets you pick one
or browse the high scores.

Controls:
  Arrows        - Move the cursor
  Tab/Shift+Tab - Next/previous figure
  Z/X           - Rotate the figure
  Enter         - Drop the figure at the cursor
  Space         - Add or remove the letter under the cursor (snake)
  S             - Submit the traced word
  Esc           - Clear the traced word
  J             - Joker: type a Russian letter for the cursor cell
  R             - Restart
  B             - Back to the menu
  ?             - Help
  Q/Ctrl+C      - Quit

Examples:
  slovo play
  slovo play blocks
  slovo play snake --difficulty hard
  slovo play blocks --seed 42`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func runPlay(cmd *cobra.Command, args []string) error {
	if len(args) == 1 && !registry.Exists(args[0]) {
		return fmt.Errorf("unknown mode %q (run 'slovo list' to see the modes)", args[0])
	}
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("play needs a terminal")
	}

	a, err := newApp(cmd.Context(), "slovo")
	if err != nil {
		return err
	}
	// The TUI owns the screen; only problems are worth printing.
	if flagLogLevel == "info" {
		a.logger.SetLevel(log.WarnLevel)
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	// Open score storage
	store, err := a.openStore()
	if err != nil {
		a.logger.Warn("could not open scores database, scores will not be kept", "error", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	if len(args) == 0 {
		return tui.RunSession(store, a.newGame, width, height, a.logger)
	}

	state, err := a.newGame(args[0], 0)
	if err != nil {
		return err
	}
	return tui.Run(state, store)
}
