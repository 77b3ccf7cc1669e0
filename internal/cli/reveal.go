package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/amidalab/amidakuji/pkg/errors"
	"github.com/amidalab/amidakuji/pkg/ladder"
)

// revealColStep is the horizontal distance between vertical lines in
// terminal cells for the animation view.
const revealColStep = 6

// revealTickInterval is the delay between animation steps.
const revealTickInterval = 160 * time.Millisecond

// Reveal styles.
var (
	revealPathStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)
	revealLadderStyle = lipgloss.NewStyle().Foreground(colorDim)
	revealLabelStyle  = lipgloss.NewStyle().Foreground(colorWhite)
	revealResultStyle = lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
)

// revealCommand creates the reveal command: an animated terminal walk of a
// participant's path through a stored draw.
func (c *CLI) revealCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "reveal <draw-id> [column]",
		Short: "Animate a participant's path through a stored draw",
		Args:  cobra.RangeArgs(1, 2),
		Example: `  amidakuji reveal 3f2a
  amidakuji reveal 3f2a 2`,
		RunE: func(cmd *cobra.Command, args []string) error {
			col := 0
			if len(args) == 2 {
				n, err := strconv.Atoi(args[1])
				if err != nil {
					return errors.New(errors.ErrCodeInvalidInput, "invalid column: %q", args[1])
				}
				col = n
			}
			return c.runReveal(cmd.Context(), args[0], col)
		},
	}
}

func (c *CLI) runReveal(ctx context.Context, idOrPrefix string, col int) error {
	store, err := c.newHistoryStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close(ctx)

	draw, err := findDraw(ctx, store, idOrPrefix)
	if err != nil {
		return err
	}
	l := draw.Ladder
	if col < 0 || col >= l.Columns {
		return errors.New(errors.ErrCodeInvalidInput,
			"column %d out of range (ladder has %d columns)", col, l.Columns)
	}

	model := newRevealModel(l, col)
	p := tea.NewProgram(model, tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		return err
	}

	// Repeat the outcome after the program exits so it survives in the
	// scrollback.
	if m, ok := final.(revealModel); ok && m.finished() {
		printSuccess("%s %s %s",
			l.Participants[col], iconArrow, l.Results[l.Mapping[col]])
	}
	return nil
}

// revealTickMsg advances the animation by one waypoint.
type revealTickMsg struct{}

func revealTick() tea.Cmd {
	return tea.Tick(revealTickInterval, func(time.Time) tea.Msg {
		return revealTickMsg{}
	})
}

// revealModel is the bubbletea model for the path animation. It replays the
// stored ladder's waypoints one step at a time; the trace is read from the
// stored rungs, so the animation always lands on the recorded result.
type revealModel struct {
	ladder    *ladder.Ladder
	col       int
	waypoints []ladder.Waypoint
	step      int
	quitting  bool
}

func newRevealModel(l *ladder.Ladder, col int) revealModel {
	var wps []ladder.Waypoint
	for wp := range l.Walk(col) {
		wps = append(wps, wp)
	}
	return revealModel{ladder: l, col: col, waypoints: wps}
}

func (m revealModel) finished() bool {
	return m.step >= len(m.waypoints)
}

func (m revealModel) Init() tea.Cmd {
	return revealTick()
}

func (m revealModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc", "enter":
			m.quitting = true
			return m, tea.Quit
		}
	case revealTickMsg:
		if m.finished() {
			return m, tea.Quit
		}
		m.step++
		if m.finished() {
			// Hold the completed frame briefly before exiting.
			return m, tea.Tick(4*revealTickInterval, func(time.Time) tea.Msg {
				return revealTickMsg{}
			})
		}
		return m, revealTick()
	}
	return m, nil
}

func (m revealModel) View() string {
	if m.quitting && !m.finished() {
		return ""
	}
	l := m.ladder

	// Visited cells and crossed rungs up to the current step.
	visited := make(map[[2]int]bool)
	crossed := make(map[[2]int]bool)
	var prev *ladder.Waypoint
	for i := 0; i < m.step && i < len(m.waypoints); i++ {
		wp := m.waypoints[i]
		if wp.Row >= 0 && wp.Row < l.Rows {
			visited[[2]int{wp.Row, wp.Column}] = true
			if wp.Tag == ladder.TagAfterMove && prev != nil {
				crossed[[2]int{wp.Row, min(prev.Column, wp.Column)}] = true
			}
		}
		prev = &m.waypoints[i]
	}

	hasRung := make(map[[2]int]bool, len(l.Rungs))
	for _, r := range l.Rungs {
		hasRung[[2]int{r.Row, r.Column}] = true
	}

	var b strings.Builder
	b.WriteString(StyleTitle.Render(fmt.Sprintf("Tracing %s", l.Participants[m.col])))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("q quit"))
	b.WriteString("\n\n")

	// Participant labels, numbered by column.
	for i := range l.Columns {
		label := fmt.Sprintf("%-*d", revealColStep, i)
		if i == m.col {
			b.WriteString(revealPathStyle.Render(label))
		} else {
			b.WriteString(revealLabelStyle.Render(label))
		}
	}
	b.WriteString("\n")

	for row := 0; row < l.Rows; row++ {
		for col := 0; col < l.Columns; col++ {
			if visited[[2]int{row, col}] {
				b.WriteString(revealPathStyle.Render("│"))
			} else {
				b.WriteString(revealLadderStyle.Render("│"))
			}
			if col == l.Columns-1 {
				break
			}
			if hasRung[[2]int{row, col}] {
				seg := strings.Repeat("─", revealColStep-1)
				if crossed[[2]int{row, col}] {
					b.WriteString(revealPathStyle.Render(seg))
				} else {
					b.WriteString(revealLadderStyle.Render(seg))
				}
			} else {
				b.WriteString(strings.Repeat(" ", revealColStep-1))
			}
		}
		b.WriteString("\n")
	}

	// Result line lights up when the walk arrives.
	b.WriteString("\n")
	if m.finished() {
		b.WriteString(revealResultStyle.Render(fmt.Sprintf("%s %s %s",
			l.Participants[m.col], iconArrow, l.Results[l.Mapping[m.col]])))
	} else {
		b.WriteString(StyleDim.Render("..."))
	}
	b.WriteString("\n")

	return b.String()
}
