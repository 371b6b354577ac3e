package game

import (
	"github.com/vovakirdan/slovotetris/internal/figure"
	"github.com/vovakirdan/slovotetris/internal/grid"
)

// FigureView is a queued figure with its rotation applied and its cells
// shifted so the smallest offset is (0,0).
type FigureView struct {
	ID       string     `json:"id"`
	Cells    []grid.Pos `json:"cells"`
	Letters  string     `json:"letters"`
	Rotation int        `json:"rotation"`
}

// NewFigureView renders f in its stored rotation.
func NewFigureView(f figure.Figure) FigureView {
	return FigureView{
		ID:       f.ID,
		Cells:    f.RotatedShape(f.Rotation).Normalized(),
		Letters:  f.Word(),
		Rotation: f.Rotation,
	}
}

// Snapshot is a read-only picture of a game, suitable for rendering or
// JSON encoding.
type Snapshot struct {
	Mode         string       `json:"mode"`
	Gravity      string       `json:"gravity"`
	Size         int          `json:"size"`
	Rows         []string     `json:"rows"`
	Figures      []FigureView `json:"figures"`
	Score        int          `json:"score"`
	Jokers       int          `json:"jokers"`
	Placements   int          `json:"placements"`
	Selection    []grid.Pos   `json:"selection"`
	SelectedWord string       `json:"selectedWord"`
	Found        []FoundWord  `json:"found"`
	GameOver     bool         `json:"gameOver"`
}

// Snapshot captures the current state.
func (s *State) Snapshot() Snapshot {
	figs := s.queue.Figures()
	views := make([]FigureView, len(figs))
	for i, f := range figs {
		views[i] = NewFigureView(f)
	}

	return Snapshot{
		Mode:         s.mode.ID,
		Gravity:      string(s.policy),
		Size:         s.grid.Size(),
		Rows:         s.grid.Rows(),
		Figures:      views,
		Score:        s.score,
		Jokers:       s.jokers,
		Placements:   s.placements,
		Selection:    s.path.Cells(),
		SelectedWord: s.SelectedWord(),
		Found:        s.Found(),
		GameOver:     s.over,
	}
}
