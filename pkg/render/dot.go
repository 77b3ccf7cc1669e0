package render

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"

	"github.com/amidalab/amidakuji/pkg/ladder"
)

// ToDOT converts the ladder's mapping to Graphviz DOT format: a bipartite
// diagram with participants on one rank, results on the other, and one edge
// per assignment. It shows who got what without the ladder geometry, which
// is handy for large lotteries where the ladder itself gets dense.
func ToDOT(l *ladder.Ladder) string {
	var buf bytes.Buffer
	buf.WriteString("digraph mapping {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=1.0;\n")
	buf.WriteString("\n")

	buf.WriteString("  { rank=source;")
	for i := range l.Participants {
		fmt.Fprintf(&buf, " p%d;", i)
	}
	buf.WriteString(" }\n")
	buf.WriteString("  { rank=sink;")
	for i := range l.Results {
		fmt.Fprintf(&buf, " r%d;", i)
	}
	buf.WriteString(" }\n\n")

	for i, name := range l.Participants {
		fmt.Fprintf(&buf, "  p%d [label=%q];\n", i, name)
	}
	for i, name := range l.Results {
		fmt.Fprintf(&buf, "  r%d [label=%q, fillcolor=lightgrey];\n", i, name)
	}

	buf.WriteString("\n")
	for i, dest := range l.Mapping {
		fmt.Fprintf(&buf, "  p%d -> r%d;\n", i, dest)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// DOTSVG renders a DOT graph to SVG using Graphviz.
func DOTSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
