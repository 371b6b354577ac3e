package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/slovotetris/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all game modes",
	Long:  `Shows every game mode with its gravity and scoring rules.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	modes := registry.List()

	if len(modes) == 0 {
		fmt.Println("No modes available.")
		return
	}

	fmt.Println("Game modes:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, m := range modes {
		if len(m.ID) > maxIDLen {
			maxIDLen = len(m.ID)
		}
	}

	fmt.Printf("  %-*s  %-8s  %-8s  %s\n", maxIDLen, "ID", "Title", "Gravity", "Description")
	fmt.Printf("  %-*s  %-8s  %-8s  %s\n", maxIDLen, "--", "-----", "-------", "-----------")

	for _, info := range modes {
		m, err := registry.Lookup(info.ID)
		if err != nil {
			continue
		}
		fmt.Printf("  %-*s  %-8s  %-8s  %s\n", maxIDLen, m.ID, m.Title, m.Gravity, m.Description)
	}

	fmt.Println()
	fmt.Println("Run 'slovo play <id>' to play a mode.")
}
