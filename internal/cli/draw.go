package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/amidalab/amidakuji/pkg/history"
	"github.com/amidalab/amidakuji/pkg/pipeline"
	"github.com/amidalab/amidakuji/pkg/render"
	"github.com/amidalab/amidakuji/pkg/share"
)

// drawOpts holds the command-line flags for the draw command.
type drawOpts struct {
	participants string  // comma-separated participant names
	results      string  // comma-separated result labels
	seed         uint64  // deterministic seed, 0 means random
	minRows      int     // minimum ladder rows
	noFill       bool    // skip decorative rung pairs
	formats      string  // comma-separated output formats
	style        string  // visual style for svg output
	output       string  // base path for file outputs
	highlight    int     // column whose path to highlight, -1 for none
	noCache      bool    // disable the artifact cache
	noSave       bool    // skip recording the draw in history
	showShare    bool    // print a share code for the same inputs
}

// drawCommand creates the draw command, the main entry point of the tool.
func (c *CLI) drawCommand() *cobra.Command {
	opts := drawOpts{highlight: -1}

	cmd := &cobra.Command{
		Use:   "draw",
		Short: "Run a ladder lottery and render the result",
		Long: `Draw builds a random ladder for the given participants and results,
traces every path, and prints the assignment. Every participant-to-result
mapping is exactly as likely as any other, regardless of ladder shape.`,
		Example: `  amidakuji draw -p "alice,bob,carol" -r "coffee,tea,cocoa"
  amidakuji draw -p "a,b,c,d" -r "1,2,3,4" --format svg,png -o lottery
  amidakuji draw -p "a,b" -r "win,lose" --seed 42 --highlight 0`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runDraw(cmd, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.participants, "participants", "p", "", "comma-separated participant names (required)")
	cmd.Flags().StringVarP(&opts.results, "results", "r", "", "comma-separated result labels (required)")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "random seed for reproducible draws (0 = random)")
	cmd.Flags().IntVar(&opts.minRows, "min-rows", 0, "minimum number of ladder rows")
	cmd.Flags().BoolVar(&opts.noFill, "no-fill", false, "skip decorative rung pairs")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "text", "output format(s): text (default), svg, png, pdf, dot, dotsvg, json (comma-separated)")
	cmd.Flags().StringVar(&opts.style, "style", "", "visual style: classic (default), dark")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "base path for file outputs (default: ladder)")
	cmd.Flags().IntVar(&opts.highlight, "highlight", -1, "participant column whose path to highlight")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().BoolVar(&opts.noSave, "no-save", false, "do not record the draw in history")
	cmd.Flags().BoolVar(&opts.showShare, "share", false, "print a share code for these inputs")
	_ = cmd.MarkFlagRequired("participants")
	_ = cmd.MarkFlagRequired("results")

	return cmd
}

func (c *CLI) runDraw(cmd *cobra.Command, opts *drawOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	pipeOpts := pipeline.Options{
		Participants: splitEntries(opts.participants),
		Results:      splitEntries(opts.results),
		Seed:         opts.seed,
		MinRows:      opts.minRows,
		NoFill:       opts.noFill,
		Formats:      parseFormats(opts.formats),
		Style:        opts.style,
		Logger:       logger,
	}
	if opts.highlight >= 0 {
		pipeOpts.Highlight = &opts.highlight
	}
	c.applyLadderDefaults(&pipeOpts)

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(logger)
	result, err := runner.Execute(ctx, pipeOpts)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Drew %d participants", result.Ladder.Columns))

	// Terminal output: styled ladder plus the assignment table.
	if hasFormat(pipeOpts.Formats, pipeline.FormatText) {
		printNewline()
		textOpts := []render.TextOption{}
		if opts.highlight >= 0 {
			textOpts = append(textOpts, render.WithTextHighlight(opts.highlight))
		}
		fmt.Print(render.Text(result.Ladder, textOpts...))
	} else {
		printNewline()
		printMapping(result.Ladder.Participants, result.Ladder.Results, result.Ladder.Mapping)
	}
	printStats(result.Stats.Columns, result.Stats.Rows, result.Stats.RungCount, result.CacheInfo.RenderHit)

	// File outputs.
	base := opts.output
	if base == "" {
		base = "ladder"
	}
	for _, format := range pipeOpts.Formats {
		if format == pipeline.FormatText {
			continue
		}
		path := base + "." + format
		if err := os.WriteFile(path, result.Artifacts[format], 0o644); err != nil {
			return err
		}
		printFile(path)
	}

	if !opts.noSave {
		store, err := c.newHistoryStore(ctx)
		if err != nil {
			printWarning("history unavailable: %v", err)
		} else {
			defer store.Close(ctx)
			draw := history.New(result.Ladder, result.LadderHash)
			if err := store.Save(ctx, draw); err != nil {
				printWarning("could not save draw: %v", err)
			} else {
				printNewline()
				printKeyValue("Draw ID", draw.ID)
				printNextStep("Re-render later", fmt.Sprintf("%s render %s --format svg", appName, shortID(draw.ID)))
				printNextStep("Animate a path", fmt.Sprintf("%s reveal %s", appName, shortID(draw.ID)))
			}
		}
	}

	if opts.showShare {
		code, err := share.Encode(pipeOpts.Participants, pipeOpts.Results)
		if err != nil {
			return err
		}
		printNewline()
		printKeyValue("Share code", code)
	}

	return nil
}

// hasFormat reports whether format is in formats.
func hasFormat(formats []string, format string) bool {
	for _, f := range formats {
		if f == format {
			return true
		}
	}
	return false
}

// shortID returns the first segment of a UUID for display in examples.
// Commands accept both the short and the full form.
func shortID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	return id
}
