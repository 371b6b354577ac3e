// Package tui provides the Bubble Tea front-end of the game: a mode menu,
// the game screen, the scoreboard and an SSH server that runs them per
// connection.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// flashDuration is how long a status message stays on screen.
const flashDuration = 3 * time.Second

// FlashExpiredMsg clears the status line once its message is stale.
type FlashExpiredMsg struct {
	seq int
}

// flashCmd returns a command that expires the flash with the given sequence number.
func flashCmd(seq int) tea.Cmd {
	return tea.Tick(flashDuration, func(time.Time) tea.Msg {
		return FlashExpiredMsg{seq: seq}
	})
}
