package config

import (
	_ "embed"

	"github.com/vovakirdan/slovotetris/internal/figure"
	"github.com/vovakirdan/slovotetris/internal/game"
	"github.com/vovakirdan/slovotetris/internal/lexicon"
	"github.com/vovakirdan/slovotetris/internal/scoring"
)

//go:embed defaults/slovo.yaml
var defaultYAML []byte

// DefaultDBPath is where scores are kept unless configured otherwise.
const DefaultDBPath = "~/.slovo/scores.db"

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		Game: GameConfig{
			Mode:       game.ModeBlocks,
			Size:       game.DefaultSize,
			Catalog:    "classic",
			QueueSize:  figure.DefaultQueueSize,
			MinWordLen: 3,
			Jokers:     1,
			Cascade:    true,
		},
		Lexicon: LexiconConfig{
			MinLen: lexicon.DefaultMinLen,
			MaxLen: lexicon.DefaultMaxLen,
		},
		Scoring: ScoringConfig{
			Placement:       scoring.DefaultPlacementPoints,
			LineLetter:      scoring.DefaultLineLetterPoints,
			HardLetterBonus: scoring.DefaultHardLetterBonus,
			HardLetters:     scoring.DefaultHardLetters,
		},
		Storage: StorageConfig{
			Path: DefaultDBPath,
		},
		Server: ServerConfig{
			SSHAddr:  ":2323",
			HTTPAddr: ":8080",
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
