package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/amidalab/amidakuji/pkg/ladder"
)

// colStep is the horizontal distance between vertical lines in terminal
// cells. Wide enough for a readable rung, narrow enough for 20 columns on a
// standard terminal.
const colStep = 6

var (
	textLineStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	textHighlightStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)
	textLabelStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
)

// TextOption configures the text sink.
type TextOption func(*textRenderer)

type textRenderer struct {
	highlight int
	plain     bool
}

// WithTextHighlight colors the traced path of the given participant column.
func WithTextHighlight(col int) TextOption { return func(r *textRenderer) { r.highlight = col } }

// WithPlainText disables ANSI styling, for piping to files.
func WithPlainText() TextOption { return func(r *textRenderer) { r.plain = true } }

// Text renders the ladder with box-drawing characters for the terminal.
// Columns are numbered; a legend below the ladder maps numbers to names so
// long names never distort the geometry.
func Text(l *ladder.Ladder, opts ...TextOption) string {
	r := textRenderer{highlight: -1}
	for _, opt := range opts {
		opt(&r)
	}

	// pathCol[r] is the column the highlighted path occupies entering row r;
	// crossedRung[r] the rung column it crosses there, or -1.
	pathCol := make([]int, l.Rows+1)
	crossedRung := make([]int, l.Rows)
	for i := range crossedRung {
		crossedRung[i] = -1
	}
	if r.highlight >= 0 && r.highlight < l.Columns {
		for wp := range l.Walk(r.highlight) {
			switch {
			case wp.Row < 0:
				// label row, nothing to mark
			case wp.Row >= l.Rows:
				pathCol[l.Rows] = wp.Column
			case wp.Tag == ladder.TagBeforeMove:
				pathCol[wp.Row] = wp.Column
			case wp.Tag == ladder.TagAfterMove:
				crossedRung[wp.Row] = min(pathCol[wp.Row], wp.Column)
				pathCol[wp.Row] = wp.Column
			default:
				pathCol[wp.Row] = wp.Column
			}
		}
	}

	styled := func(s string, style lipgloss.Style) string {
		if r.plain {
			return s
		}
		return style.Render(s)
	}

	var b strings.Builder

	// Column numbers as header and footer.
	writeIndexRow := func() {
		for i := range l.Columns {
			b.WriteString(styled(fmt.Sprintf("%-*d", colStep, i), textLabelStyle))
		}
		b.WriteString("\n")
	}
	writeIndexRow()

	hasRung := make(map[[2]int]bool, len(l.Rungs))
	for _, rung := range l.Rungs {
		hasRung[[2]int{rung.Row, rung.Column}] = true
	}

	onPath := func(row, col int) bool {
		return r.highlight >= 0 && row < len(pathCol) && pathCol[row] == col
	}

	for row := 0; row < l.Rows; row++ {
		for col := 0; col < l.Columns; col++ {
			bar := "│"
			if onPath(row, col) {
				b.WriteString(styled(bar, textHighlightStyle))
			} else {
				b.WriteString(styled(bar, textLineStyle))
			}
			if col == l.Columns-1 {
				break
			}
			if hasRung[[2]int{row, col}] {
				seg := strings.Repeat("─", colStep-1)
				if crossedRung[row] == col {
					b.WriteString(styled(seg, textHighlightStyle))
				} else {
					b.WriteString(styled(seg, textLineStyle))
				}
			} else {
				b.WriteString(strings.Repeat(" ", colStep-1))
			}
		}
		b.WriteString("\n")
	}
	writeIndexRow()

	// Legend: participant and result names by column number.
	b.WriteString("\n")
	for i, p := range l.Participants {
		line := fmt.Sprintf("%3d  %s → %s", i, p, l.Results[l.Mapping[i]])
		if i == r.highlight {
			b.WriteString(styled(line, textHighlightStyle))
		} else {
			b.WriteString(styled(line, textLabelStyle))
		}
		b.WriteString("\n")
	}

	return b.String()
}
