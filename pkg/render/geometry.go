package render

import (
	"math"

	"github.com/amidalab/amidakuji/pkg/ladder"
)

// Default frame dimensions in pixels.
const (
	DefaultWidth  = 800.0
	DefaultHeight = 600.0

	// labelBand is the vertical space reserved above and below the ladder
	// body for participant and result labels.
	labelBand = 48.0
)

// Options configures geometry computation. Zero values fall back to the
// defaults.
type Options struct {
	Width  float64
	Height float64
}

// Layout holds the pixel geometry shared by all sinks. All coordinates use
// the SVG convention: origin top-left, y growing downward.
type Layout struct {
	FrameWidth  float64
	FrameHeight float64

	// ColumnX is the x-coordinate of each vertical line.
	ColumnX []float64

	// RowY is the y-coordinate of each rung row.
	RowY []float64

	// TopY and BottomY bound the ladder body (the vertical lines).
	TopY    float64
	BottomY float64
}

// Compute derives the layout for a ladder at the given frame size. Columns
// are spaced evenly with half a column gap of margin on each side; rung rows
// split the body height evenly.
func Compute(l *ladder.Ladder, opts Options) Layout {
	width := opts.Width
	if width <= 0 {
		width = DefaultWidth
	}
	height := opts.Height
	if height <= 0 {
		height = DefaultHeight
	}

	spacing := width / float64(l.Columns)
	columnX := make([]float64, l.Columns)
	for i := range columnX {
		columnX[i] = spacing/2 + float64(i)*spacing
	}

	topY := labelBand
	bottomY := height - labelBand
	rowHeight := (bottomY - topY) / float64(l.Rows)
	rowY := make([]float64, l.Rows)
	for r := range rowY {
		rowY[r] = topY + (float64(r)+0.5)*rowHeight
	}

	return Layout{
		FrameWidth:  width,
		FrameHeight: height,
		ColumnX:     columnX,
		RowY:        rowY,
		TopY:        topY,
		BottomY:     bottomY,
	}
}

// HitTest maps a frame coordinate to the column it targets. A point counts
// as a hit when it lies inside the frame and within half a column spacing
// of a vertical line.
func (l Layout) HitTest(x, y float64) (int, bool) {
	if len(l.ColumnX) == 0 || x < 0 || x > l.FrameWidth || y < 0 || y > l.FrameHeight {
		return 0, false
	}

	best := 0
	bestDist := math.Abs(x - l.ColumnX[0])
	for i, cx := range l.ColumnX[1:] {
		if d := math.Abs(x - cx); d < bestDist {
			best, bestDist = i+1, d
		}
	}

	spacing := l.FrameWidth / float64(len(l.ColumnX))
	if bestDist > spacing/2 {
		return 0, false
	}
	return best, true
}

// waypointY converts a waypoint row to a y-coordinate. The sentinel rows -1
// and Rows map to the body's top and bottom edge.
func (l Layout) waypointY(row int) float64 {
	switch {
	case row < 0:
		return l.TopY
	case row >= len(l.RowY):
		return l.BottomY
	default:
		return l.RowY[row]
	}
}
