package game

import (
	"github.com/vovakirdan/slovotetris/internal/gravity"
	"github.com/vovakirdan/slovotetris/internal/registry"
)

// Built-in mode identifiers.
const (
	ModeBlocks = "blocks"
	ModeSnake  = "snake"
)

func init() {
	registry.Register(registry.Mode{
		ID:          ModeBlocks,
		Title:       "Блоки",
		Description: "drop letter figures; rows and columns that spell a word vanish",
		Gravity:     gravity.BottomSettle,
		AutoScan:    true,
	})
	registry.Register(registry.Mode{
		ID:          ModeSnake,
		Title:       "Змейка",
		Description: "drop letter figures, then trace words through touching letters",
		Gravity:     gravity.IsolateAndDrop,
		PathScoring: true,
	})
}
