package game

import (
	"github.com/vovakirdan/slovotetris/internal/figure"
	"github.com/vovakirdan/slovotetris/internal/gravity"
	"github.com/vovakirdan/slovotetris/internal/grid"
	"github.com/vovakirdan/slovotetris/internal/scan"
)

// Step is one pass of the resolve cycle: the words found on the grid, the
// cells cleared for them and the letters gravity moved afterwards.
type Step struct {
	Words   []scan.Match   `json:"words"`
	Cleared []grid.Pos     `json:"cleared"`
	Moves   []gravity.Move `json:"moves"`
	Points  int            `json:"points"`
}

// Outcome reports what a grid-changing operation did.
type Outcome struct {
	Figure     figure.Figure `json:"-"`
	Anchor     grid.Pos      `json:"anchor"`
	ScoreDelta int           `json:"scoreDelta"`
	Steps      []Step        `json:"steps,omitempty"`
	GameOver   bool          `json:"gameOver"`
}

// Words returns every word cleared across all steps.
func (o Outcome) Words() []string {
	var words []string
	for _, st := range o.Steps {
		for _, m := range st.Words {
			words = append(words, m.Word)
		}
	}
	return words
}

// Resolve runs the line-scan cycle on demand and returns its steps. Modes
// with AutoScan already do this after each placement.
func (s *State) Resolve() Outcome {
	var out Outcome
	out.Steps, out.ScoreDelta = s.resolve()
	s.refreshOver()
	out.GameOver = s.over
	return out
}

// resolve scans, clears every match at once and applies gravity. Gravity can
// line up new words, so with cascading enabled the pass repeats until a scan
// comes back empty. Every pass clears at least one cell, which bounds the
// loop by the grid area.
func (s *State) resolve() ([]Step, int) {
	var (
		steps []Step
		total int
	)
	for {
		matches := s.scanner.Scan(s.grid)
		if len(matches) == 0 {
			break
		}

		step := Step{Words: matches}
		for _, m := range matches {
			pts := s.opts.Rules.Line(m.Word)
			step.Points += pts
			s.found = append(s.found, FoundWord{Word: m.Word, Points: pts, Direction: m.Direction})
		}

		cleared, cells := scan.Clear(s.grid, matches)
		step.Cleared = cells

		res := gravity.Apply(cleared, s.policy)
		s.grid = res.Grid
		step.Moves = res.Moves

		s.score += step.Points
		total += step.Points
		steps = append(steps, step)

		if s.opts.NoCascade {
			break
		}
	}
	if len(steps) > 0 {
		s.path.Clear()
	}
	return steps, total
}
