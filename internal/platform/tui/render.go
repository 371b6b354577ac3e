package tui

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/slovotetris/internal/figure"
	"github.com/vovakirdan/slovotetris/internal/game"
	"github.com/vovakirdan/slovotetris/internal/grid"
)

// maxFoundShown is how many recent words the side panel lists.
const maxFoundShown = 8

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	flashStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	overStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))

	emptyCellStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	letterCellStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("236"))
	selectedCellStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	previewCellStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Background(lipgloss.Color("22"))
	blockedCellStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Background(lipgloss.Color("52"))
	cursorCellStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("14"))

	boardStyle        = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240"))
	figureStyle       = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("238")).Padding(0, 1)
	activeFigureStyle = figureStyle.BorderForeground(lipgloss.Color("229"))
	panelStyle        = lipgloss.NewStyle().PaddingLeft(2)
)

// renderGame lays out the board, the side panel and the help line.
func renderGame(m Model) string {
	snap := m.state.Snapshot()

	var b strings.Builder
	title := fmt.Sprintf("СЛОВОТЕТРИС  %s", strings.ToUpper(snap.Mode))
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n\n")

	board := boardStyle.Render(renderBoard(m, snap))
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, board, panelStyle.Render(renderPanel(m, snap))))
	b.WriteString("\n")

	switch {
	case snap.GameOver:
		b.WriteString(overStyle.Render("GAME OVER  r: restart  b: menu  q: quit"))
	case m.flash != "":
		b.WriteString(flashStyle.Render(m.flash))
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderBoard draws the grid with the traced word, the drop preview of the
// selected figure and the cursor.
func renderBoard(m Model, snap game.Snapshot) string {
	g := m.state.Grid()

	selected := make(map[grid.Pos]bool, len(snap.Selection))
	for _, p := range snap.Selection {
		selected[p] = true
	}

	preview, fits := m.previewCells(g)

	var b strings.Builder
	for r := 0; r < g.Size(); r++ {
		if r > 0 {
			b.WriteRune('\n')
		}
		for c := 0; c < g.Size(); c++ {
			p := grid.P(r, c)
			cell := g.Get(p)

			text := " · "
			style := emptyCellStyle
			switch {
			case !cell.IsEmpty():
				text = " " + string(unicode.ToUpper(cell.Letter)) + " "
				style = letterCellStyle
				if selected[p] {
					style = selectedCellStyle
				}
			case preview[p] != 0:
				text = " " + string(unicode.ToUpper(preview[p])) + " "
				style = previewCellStyle
			}

			if p == m.cursor {
				switch {
				case m.joker:
					text = " ? "
					style = cursorCellStyle
				case !fits && cell.IsEmpty():
					style = blockedCellStyle
				default:
					style = cursorCellStyle
				}
			}
			b.WriteString(style.Render(text))
		}
	}
	return b.String()
}

// previewCells returns where the selected figure would land if dropped on
// the cursor, and whether it fits there at all.
func (m Model) previewCells(g *grid.Grid) (map[grid.Pos]rune, bool) {
	f, ok := m.selectedFigure()
	if !ok || m.state.Over() {
		return nil, false
	}
	anchor, ok := figure.FindBestAnchor(g, f, m.cursor, f.Rotation)
	if !ok {
		return nil, false
	}
	cells := f.Footprint(anchor, f.Rotation)
	preview := make(map[grid.Pos]rune, len(cells))
	for _, c := range cells {
		preview[c.Pos] = c.Letter
	}
	return preview, true
}

// renderPanel draws score, queue, the traced word and the found words.
func renderPanel(m Model, snap game.Snapshot) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s %d\n", labelStyle.Render("Score "), snap.Score)
	fmt.Fprintf(&b, "%s %d\n", labelStyle.Render("Jokers"), snap.Jokers)
	fmt.Fprintf(&b, "%s %s\n\n", labelStyle.Render("Fall  "), snap.Gravity)

	figs := make([]string, len(snap.Figures))
	for i, fv := range snap.Figures {
		style := figureStyle
		if i == m.figure {
			style = activeFigureStyle
		}
		figs[i] = style.Render(renderFigure(fv))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, figs...))
	b.WriteString("\n\n")

	word := "-"
	if snap.SelectedWord != "" {
		word = strings.ToUpper(snap.SelectedWord)
	}
	fmt.Fprintf(&b, "%s %s\n\n", labelStyle.Render("Word  "), selectedCellStyle.Render(word))

	b.WriteString(labelStyle.Render("Found"))
	b.WriteRune('\n')
	found := snap.Found
	if len(found) > maxFoundShown {
		found = found[len(found)-maxFoundShown:]
	}
	for i := len(found) - 1; i >= 0; i-- {
		fmt.Fprintf(&b, "  %-12s +%d\n", strings.ToUpper(found[i].Word), found[i].Points)
	}
	if len(found) == 0 {
		b.WriteString(labelStyle.Render("  none yet"))
		b.WriteRune('\n')
	}

	return b.String()
}

// renderFigure draws a queued figure in its current rotation.
func renderFigure(fv game.FigureView) string {
	var rows, cols int
	for _, p := range fv.Cells {
		rows = max(rows, p.Row+1)
		cols = max(cols, p.Col+1)
	}

	letters := []rune(fv.Letters)
	cells := make([][]rune, rows)
	for r := range cells {
		cells[r] = []rune(strings.Repeat(" ", cols))
	}
	for i, p := range fv.Cells {
		if i < len(letters) {
			cells[p.Row][p.Col] = unicode.ToUpper(letters[i])
		}
	}

	lines := make([]string, rows)
	for r, row := range cells {
		var sb strings.Builder
		for c, ch := range row {
			if c > 0 {
				sb.WriteRune(' ')
			}
			sb.WriteRune(ch)
		}
		lines[r] = sb.String()
	}
	return strings.Join(lines, "\n")
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	n := lipgloss.Width(text)
	if n >= width {
		return text
	}
	padding := (width - n) / 2
	return strings.Repeat(" ", padding) + text
}
