package render

import (
	"bytes"
	"fmt"
	"html"

	"github.com/amidalab/amidakuji/pkg/ladder"
)

// Style bundles the colors and stroke widths of an SVG render.
type Style struct {
	Background string
	Line       string
	Rung       string
	Highlight  string
	Label      string
	LineWidth  float64
	RungWidth  float64
	FontSize   float64
}

// Built-in styles.
var (
	// StyleClassic is dark strokes on a light background.
	StyleClassic = Style{
		Background: "#ffffff",
		Line:       "#2d3436",
		Rung:       "#2d3436",
		Highlight:  "#d63031",
		Label:      "#2d3436",
		LineWidth:  2,
		RungWidth:  2,
		FontSize:   14,
	}

	// StyleDark is light strokes on a dark background.
	StyleDark = Style{
		Background: "#1e272e",
		Line:       "#d2dae2",
		Rung:       "#808e9b",
		Highlight:  "#ffa801",
		Label:      "#d2dae2",
		LineWidth:  2,
		RungWidth:  2,
		FontSize:   14,
	}
)

// Style names accepted by StyleByName.
const (
	StyleNameClassic = "classic"
	StyleNameDark    = "dark"
)

// StyleByName resolves a style name. Unknown names return StyleClassic and
// false.
func StyleByName(name string) (Style, bool) {
	switch name {
	case "", StyleNameClassic:
		return StyleClassic, true
	case StyleNameDark:
		return StyleDark, true
	default:
		return StyleClassic, false
	}
}

// SVGOption configures the SVG sink.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	style     Style
	highlight int
}

// WithStyle sets the visual style.
func WithStyle(s Style) SVGOption { return func(r *svgRenderer) { r.style = s } }

// WithHighlight draws the traced path of the given participant column on
// top of the ladder. Out-of-range columns draw nothing.
func WithHighlight(col int) SVGOption { return func(r *svgRenderer) { r.highlight = col } }

// SVG renders the ladder as an SVG document using the given layout.
func SVG(l *ladder.Ladder, ly Layout, opts ...SVGOption) []byte {
	r := svgRenderer{style: StyleClassic, highlight: -1}
	for _, opt := range opts {
		opt(&r)
	}
	s := r.style

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		ly.FrameWidth, ly.FrameHeight, ly.FrameWidth, ly.FrameHeight)
	fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", s.Background)

	for i, x := range ly.ColumnX {
		fmt.Fprintf(&buf, `  <line id="column-%d" x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="%.1f"/>`+"\n",
			i, x, ly.TopY, x, ly.BottomY, s.Line, s.LineWidth)
	}

	for _, rung := range l.Rungs {
		y := ly.RowY[rung.Row]
		fmt.Fprintf(&buf, `  <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="%.1f"/>`+"\n",
			ly.ColumnX[rung.Column], y, ly.ColumnX[rung.Column+1], y, s.Rung, s.RungWidth)
	}

	if r.highlight >= 0 && r.highlight < l.Columns {
		renderHighlight(&buf, l, ly, s, r.highlight)
	}

	renderLabels(&buf, l, ly, s)

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// renderHighlight draws the traced path as a polyline over the ladder.
func renderHighlight(buf *bytes.Buffer, l *ladder.Ladder, ly Layout, s Style, col int) {
	var points bytes.Buffer
	for wp := range l.Walk(col) {
		fmt.Fprintf(&points, "%.1f,%.1f ", ly.ColumnX[wp.Column], ly.waypointY(wp.Row))
	}
	fmt.Fprintf(buf, `  <polyline points="%s" fill="none" stroke="%s" stroke-width="%.1f" stroke-linejoin="round" opacity="0.85"/>`+"\n",
		bytes.TrimSpace(points.Bytes()), s.Highlight, s.RungWidth*2)
}

// renderLabels writes participant names above the ladder and result names
// below it, anchored to their columns.
func renderLabels(buf *bytes.Buffer, l *ladder.Ladder, ly Layout, s Style) {
	for i, name := range l.Participants {
		fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" text-anchor="middle" font-size="%.0f" fill="%s">%s</text>`+"\n",
			ly.ColumnX[i], ly.TopY-12, s.FontSize, s.Label, html.EscapeString(name))
	}
	for i, name := range l.Results {
		fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" text-anchor="middle" font-size="%.0f" fill="%s">%s</text>`+"\n",
			ly.ColumnX[i], ly.BottomY+24, s.FontSize, s.Label, html.EscapeString(name))
	}
}
