// Package pipeline provides the generate → render flow shared by the CLI
// and the API server.
//
// The pipeline has two stages:
//
//  1. Generate: sample a ladder for the given participants and results
//  2. Render: produce output artifacts (SVG, PNG, PDF, text, DOT,
//     Graphviz-rendered mapping SVG, JSON)
//
// Generation is random and therefore never cached; every run of the same
// inputs is an independent draw. Rendering is a pure function of a ladder
// and the render options, so artifacts for stored draws are cached by
// ladder content hash.
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Participants: []string{"alice", "bob"},
//	    Results:      []string{"win", "lose"},
//	    Formats:      []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/amidalab/amidakuji/pkg/cache"
	"github.com/amidalab/amidakuji/pkg/errors"
	"github.com/amidalab/amidakuji/pkg/ladder"
	"github.com/amidalab/amidakuji/pkg/render"
)

// Default values shared by CLI and API.
const (
	// DefaultWidth is the default frame width in pixels.
	DefaultWidth = 800.0

	// DefaultHeight is the default frame height in pixels.
	DefaultHeight = 600.0

	// DefaultPNGScale is the raster scale factor for PNG export.
	DefaultPNGScale = 2.0
)

// Format constants for output formats.
const (
	FormatSVG    = "svg"
	FormatPNG    = "png"
	FormatPDF    = "pdf"
	FormatText   = "text"
	FormatDOT    = "dot"
	FormatDOTSVG = "dotsvg"
	FormatJSON   = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:    true,
	FormatPNG:    true,
	FormatPDF:    true,
	FormatText:   true,
	FormatDOT:    true,
	FormatDOTSVG: true,
	FormatJSON:   true,
}

// DefaultStyle is the default visual style.
const DefaultStyle = render.StyleNameClassic

// Options contains all configuration for a pipeline run.
// The struct supports JSON serialization for API requests.
type Options struct {
	// Generate options
	Participants []string `json:"participants"`
	Results      []string `json:"results"`
	Seed         uint64   `json:"seed,omitempty"`
	MinRows      int      `json:"min_rows,omitempty"`
	RungProb     float64  `json:"rung_prob,omitempty"`
	FillProb     float64  `json:"fill_prob,omitempty"`
	NoFill       bool     `json:"no_fill,omitempty"`

	// Render options
	Formats   []string `json:"formats,omitempty"`
	Style     string   `json:"style,omitempty"`
	Width     float64  `json:"width,omitempty"`
	Height    float64  `json:"height,omitempty"`
	Highlight *int     `json:"highlight,omitempty"` // column whose path to trace

	// Runtime options (not serialized)
	Logger *log.Logger   `json:"-"`
	Source ladder.Source `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Ladder is the generated ladder.
	Ladder *ladder.Ladder

	// LadderHash is the content hash of the ladder, used as the artifact
	// cache key base and returned by the API for later re-rendering.
	LadderHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing information.
	Stats Stats

	// CacheInfo tracks whether rendering hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Columns      int
	Rows         int
	RungCount    int
	GenerateTime time.Duration
	RenderTime   time.Duration
}

// CacheInfo tracks cache hits. Generation never hits a cache.
type CacheInfo struct {
	RenderHit bool // Whether all artifacts came from cache
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: svg, png, pdf, text, dot, dotsvg, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateStyle checks that a style is valid.
func ValidateStyle(style string) error {
	if _, ok := render.StyleByName(style); !ok {
		return errors.New(errors.ErrCodeInvalidStyle,
			"invalid style: %q (must be one of: classic, dark)", style)
	}
	return nil
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// The method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForGenerate(); err != nil {
		return err
	}
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if err := ValidateStyle(o.Style); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForGenerate checks required fields for generation.
func (o *Options) ValidateForGenerate() error {
	if err := errors.ValidateEntries(o.Participants, o.Results); err != nil {
		return err
	}
	if o.Source == nil && o.Seed != 0 {
		o.Source = ladder.NewSeededSource(o.Seed)
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Style == "" {
		o.Style = DefaultStyle
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// HighlightColumn returns the column to highlight, or -1 for none.
func (o *Options) HighlightColumn() int {
	if o.Highlight == nil {
		return -1
	}
	return *o.Highlight
}

// ladderConfig converts the generation knobs to a ladder.Config.
func (o *Options) ladderConfig() ladder.Config {
	return ladder.Config{
		MinRows:         o.MinRows,
		RungProbability: o.RungProb,
		FillProbability: o.FillProb,
		NoFill:          o.NoFill,
	}
}

// ArtifactKeyOpts returns cache key options for a given format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:    format,
		Style:     o.Style,
		Width:     o.Width,
		Height:    o.Height,
		Highlight: o.HighlightColumn(),
	}
}
