package config

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/slovotetris/internal/figure"
	"github.com/vovakirdan/slovotetris/internal/game"
	"github.com/vovakirdan/slovotetris/internal/gravity"
	"github.com/vovakirdan/slovotetris/internal/registry"
	"github.com/vovakirdan/slovotetris/internal/scoring"
)

// Grid size bounds accepted by Validate.
const (
	MinGridSize = 3
	MaxGridSize = 12
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParsePreset maps a flag value onto a preset.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return p, nil
	}
	return "", fmt.Errorf("config: unknown difficulty %q", s)
}

// ApplyPreset modifies the config based on a difficulty preset.
func ApplyPreset(cfg *Config, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Game.Size = 7
		cfg.Game.Catalog = "extended"
		cfg.Game.Jokers = 3
		cfg.Game.Cascade = true
	case DifficultyNormal:
		cfg.Game.Size = 6
		cfg.Game.Catalog = "classic"
		cfg.Game.Jokers = 1
		cfg.Game.Cascade = true
	case DifficultyHard:
		cfg.Game.Size = 5
		cfg.Game.Catalog = "classic"
		cfg.Game.Jokers = 0
		cfg.Game.Cascade = false
	}
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errs []error

	if !registry.Exists(c.Game.Mode) {
		errs = append(errs, fmt.Errorf("config: unknown mode %q", c.Game.Mode))
	}
	if c.Game.Size < MinGridSize || c.Game.Size > MaxGridSize {
		errs = append(errs, fmt.Errorf("config: grid size %d outside [%d, %d]", c.Game.Size, MinGridSize, MaxGridSize))
	}
	if c.Game.Gravity != "" {
		if _, err := gravity.ParsePolicy(c.Game.Gravity); err != nil {
			errs = append(errs, fmt.Errorf("config: %w", err))
		}
	}
	if _, ok := figure.CatalogByName(c.Game.Catalog); !ok {
		errs = append(errs, fmt.Errorf("config: unknown catalog %q", c.Game.Catalog))
	}
	if c.Game.QueueSize < 1 {
		errs = append(errs, fmt.Errorf("config: queue size must be positive, got %d", c.Game.QueueSize))
	}
	if c.Game.Jokers < 0 {
		errs = append(errs, fmt.Errorf("config: jokers must not be negative, got %d", c.Game.Jokers))
	}
	if c.Lexicon.MinLen < 1 || c.Lexicon.MaxLen < c.Lexicon.MinLen {
		errs = append(errs, fmt.Errorf("config: bad word length bounds [%d, %d]", c.Lexicon.MinLen, c.Lexicon.MaxLen))
	}

	return errors.Join(errs...)
}

// GameOptions converts the game section into options for game.New.
func (c Config) GameOptions(seed int64) game.Options {
	catalog, _ := figure.CatalogByName(c.Game.Catalog)
	return game.Options{
		Mode:       c.Game.Mode,
		Size:       c.Game.Size,
		Gravity:    gravity.Policy(c.Game.Gravity),
		Catalog:    catalog,
		QueueSize:  c.Game.QueueSize,
		MinWordLen: c.Game.MinWordLen,
		Jokers:     c.Game.Jokers,
		NoCascade:  !c.Game.Cascade,
		Rules: scoring.Rules{
			PlacementPoints:  c.Scoring.Placement,
			LineLetterPoints: c.Scoring.LineLetter,
			HardLetterBonus:  c.Scoring.HardLetterBonus,
			HardLetters:      c.Scoring.HardLetters,
		},
		Seed: seed,
	}
}
