package game

import (
	"github.com/vovakirdan/slovotetris/internal/figure"
	"github.com/vovakirdan/slovotetris/internal/gravity"
	"github.com/vovakirdan/slovotetris/internal/scan"
	"github.com/vovakirdan/slovotetris/internal/scoring"
)

// DefaultSize is the side of the square grid.
const DefaultSize = 6

// Options configures a game. Unset sizes and tables fall back to defaults;
// DefaultOptions gives a complete set.
type Options struct {
	Mode       string
	Size       int
	Gravity    gravity.Policy // empty: the mode's policy
	Catalog    figure.Catalog
	Letters    *figure.WeightedTable // nil: Russian letter frequencies
	QueueSize  int
	MinWordLen int
	Jokers     int
	NoCascade  bool
	Rules      scoring.Rules
	Seed       int64
}

// DefaultOptions returns the stock options for a mode.
func DefaultOptions(mode string) Options {
	return Options{
		Mode:       mode,
		Size:       DefaultSize,
		Catalog:    figure.ClassicCatalog(),
		QueueSize:  figure.DefaultQueueSize,
		MinWordLen: scan.MinWordLen,
		Jokers:     1,
		Rules:      scoring.DefaultRules(),
	}
}

func (o Options) withDefaults() Options {
	if o.Mode == "" {
		o.Mode = ModeBlocks
	}
	if o.Size <= 0 {
		o.Size = DefaultSize
	}
	if len(o.Catalog.Shapes) == 0 {
		o.Catalog = figure.ClassicCatalog()
	}
	if o.QueueSize <= 0 {
		o.QueueSize = figure.DefaultQueueSize
	}
	if o.MinWordLen < scan.MinWordLen {
		o.MinWordLen = scan.MinWordLen
	}
	if o.Jokers < 0 {
		o.Jokers = 0
	}
	if o.Rules == (scoring.Rules{}) {
		o.Rules = scoring.DefaultRules()
	}
	return o
}
