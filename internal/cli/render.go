package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/amidalab/amidakuji/pkg/errors"
	"github.com/amidalab/amidakuji/pkg/history"
	"github.com/amidalab/amidakuji/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	formats   string // comma-separated output formats
	style     string // visual style for svg output
	output    string // base path for file outputs
	highlight int    // column whose path to highlight, -1 for none
	noCache   bool   // disable the artifact cache
}

// renderCommand creates the render command for re-rendering stored draws.
// Re-rendering reproduces the original rungs and mapping exactly; only the
// presentation changes.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{highlight: -1}

	cmd := &cobra.Command{
		Use:   "render <draw-id>",
		Short: "Re-render a stored draw",
		Args:  cobra.ExactArgs(1),
		Example: `  amidakuji render 3f2a --format svg -o lottery
  amidakuji render 3f2a --format text --highlight 2`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.formats, "format", "f", "text", "output format(s): text (default), svg, png, pdf, dot, dotsvg, json (comma-separated)")
	cmd.Flags().StringVar(&opts.style, "style", "", "visual style: classic (default), dark")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "base path for file outputs (default: draw ID)")
	cmd.Flags().IntVar(&opts.highlight, "highlight", -1, "participant column whose path to highlight")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, idOrPrefix string, opts *renderOpts) error {
	store, err := c.newHistoryStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close(ctx)

	draw, err := findDraw(ctx, store, idOrPrefix)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	pipeOpts := pipeline.Options{
		Participants: draw.Ladder.Participants,
		Results:      draw.Ladder.Results,
		Formats:      parseFormats(opts.formats),
		Style:        opts.style,
		Logger:       c.Logger,
	}
	if opts.highlight >= 0 {
		pipeOpts.Highlight = &opts.highlight
	}

	// Raster and document exports shell out to rsvg-convert; give slow
	// conversions a progress indicator.
	var spin *Spinner
	if hasFormat(pipeOpts.Formats, pipeline.FormatPNG) || hasFormat(pipeOpts.Formats, pipeline.FormatPDF) {
		spin = newSpinnerWithContext(ctx, "Converting")
		spin.Start()
	}
	artifacts, cached, err := runner.RenderWithCacheInfo(ctx, draw.Ladder, draw.LadderHash, pipeOpts)
	if spin != nil {
		spin.Stop()
	}
	if err != nil {
		return err
	}

	base := opts.output
	if base == "" {
		base = shortID(draw.ID)
	}
	for _, format := range pipeOpts.Formats {
		if format == pipeline.FormatText {
			fmt.Print(string(artifacts[format]))
			continue
		}
		path := base + "." + format
		if err := os.WriteFile(path, artifacts[format], 0o644); err != nil {
			return err
		}
		printFile(path)
	}
	printStats(draw.Ladder.Columns, draw.Ladder.Rows, len(draw.Ladder.Rungs), cached)

	return nil
}

// findDraw resolves a full draw ID or a unique ID prefix to a stored draw.
func findDraw(ctx context.Context, store history.Store, idOrPrefix string) (*history.Draw, error) {
	if draw, err := store.Get(ctx, idOrPrefix); err == nil {
		return draw, nil
	}

	draws, err := store.List(ctx, 0)
	if err != nil {
		return nil, err
	}

	var matches []*history.Draw
	for _, d := range draws {
		if strings.HasPrefix(d.ID, idOrPrefix) {
			matches = append(matches, d)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return nil, errors.New(errors.ErrCodeDrawNotFound, "draw %q not found", idOrPrefix)
	default:
		return nil, errors.New(errors.ErrCodeInvalidInput, "draw ID prefix %q is ambiguous (%d matches)", idOrPrefix, len(matches))
	}
}
