package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/amidalab/amidakuji/pkg/cache"
	"github.com/amidalab/amidakuji/pkg/errors"
	"github.com/amidalab/amidakuji/pkg/ladder"
	"github.com/amidalab/amidakuji/pkg/observability"
	"github.com/amidalab/amidakuji/pkg/render"
)

// rungCount tolerates a nil ladder from a failed generate.
func rungCount(l *ladder.Ladder) int {
	if l == nil {
		return 0
	}
	return len(l.Rungs)
}

// Runner encapsulates pipeline execution with artifact caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete generate → render pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Generate. Never cached: each run is an independent draw.
	genStart := time.Now()
	observability.Pipeline().OnGenerateStart(ctx, len(opts.Participants))
	l, err := r.Generate(opts)
	observability.Pipeline().OnGenerateComplete(ctx, len(opts.Participants), rungCount(l), time.Since(genStart), err)
	if err != nil {
		return nil, err
	}
	result.Ladder = l
	result.Stats.GenerateTime = time.Since(genStart)
	result.Stats.Columns = l.Columns
	result.Stats.Rows = l.Rows
	result.Stats.RungCount = len(l.Rungs)

	if data, err := json.Marshal(l); err == nil {
		result.LadderHash = cache.Hash(data)
	}

	r.Logger.Info("generated ladder",
		"columns", l.Columns,
		"rows", l.Rows,
		"rungs", len(l.Rungs),
		"duration", result.Stats.GenerateTime)

	// Stage 2: Render.
	renderStart := time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, l, result.LadderHash, opts)
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(renderStart), err)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Generate samples a fresh ladder for the options' inputs.
func (r *Runner) Generate(opts Options) (*ladder.Ladder, error) {
	if err := opts.ValidateForGenerate(); err != nil {
		return nil, err
	}
	return ladder.Generate(opts.Participants, opts.Results, opts.Source, opts.ladderConfig())
}

// RenderWithCacheInfo renders all requested formats for an existing ladder,
// consulting the artifact cache, and reports whether everything was served
// from cache. An empty ladderHash disables caching for the call.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, l *ladder.Ladder, ladderHash string, opts Options) (map[string][]byte, bool, error) {
	opts.SetRenderDefaults()
	if err := ValidateFormats(opts.Formats); err != nil {
		return nil, false, err
	}
	if err := ValidateStyle(opts.Style); err != nil {
		return nil, false, err
	}

	artifacts := make(map[string][]byte, len(opts.Formats))

	allCached := ladderHash != ""
	if allCached {
		for _, format := range opts.Formats {
			key := r.Keyer.ArtifactKey(ladderHash, opts.ArtifactKeyOpts(format))
			if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
				observability.Cache().OnCacheHit(ctx, "artifact")
				artifacts[format] = data
			} else {
				observability.Cache().OnCacheMiss(ctx, "artifact")
				allCached = false
				break
			}
		}
	}
	if allCached && len(artifacts) == len(opts.Formats) {
		return artifacts, true, nil
	}

	rendered, err := renderFormats(ctx, l, opts)
	if err != nil {
		return nil, false, err
	}

	if ladderHash != "" {
		for format, data := range rendered {
			key := r.Keyer.ArtifactKey(ladderHash, opts.ArtifactKeyOpts(format))
			if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err == nil {
				observability.Cache().OnCacheSet(ctx, "artifact", len(data))
			}
		}
	}

	return rendered, false, nil
}

// Render is a convenience wrapper that discards the cache hit info.
func (r *Runner) Render(ctx context.Context, l *ladder.Ladder, ladderHash string, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, l, ladderHash, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// renderFormats produces every requested format. SVG is rendered at most
// once and reused as the source for the raster and document conversions.
func renderFormats(ctx context.Context, l *ladder.Ladder, opts Options) (map[string][]byte, error) {
	out := make(map[string][]byte, len(opts.Formats))

	style, _ := render.StyleByName(opts.Style)
	highlight := opts.HighlightColumn()

	var svg []byte
	renderSVG := func() []byte {
		if svg == nil {
			ly := render.Compute(l, render.Options{Width: opts.Width, Height: opts.Height})
			svgOpts := []render.SVGOption{render.WithStyle(style)}
			if highlight >= 0 {
				svgOpts = append(svgOpts, render.WithHighlight(highlight))
			}
			svg = render.SVG(l, ly, svgOpts...)
		}
		return svg
	}

	for _, format := range opts.Formats {
		switch format {
		case FormatSVG:
			out[format] = renderSVG()
		case FormatPNG:
			png, err := render.ToPNG(renderSVG(), DefaultPNGScale)
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeInternal, err, "render png")
			}
			out[format] = png
		case FormatPDF:
			pdf, err := render.ToPDF(renderSVG())
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeInternal, err, "render pdf")
			}
			out[format] = pdf
		case FormatText:
			textOpts := []render.TextOption{render.WithPlainText()}
			if highlight >= 0 {
				textOpts = append(textOpts, render.WithTextHighlight(highlight))
			}
			out[format] = []byte(render.Text(l, textOpts...))
		case FormatDOT:
			out[format] = []byte(render.ToDOT(l))
		case FormatDOTSVG:
			diagram, err := render.DOTSVG(ctx, render.ToDOT(l))
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeInternal, err, "render mapping diagram")
			}
			out[format] = diagram
		case FormatJSON:
			data, err := json.MarshalIndent(l, "", "  ")
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeInternal, err, "marshal ladder")
			}
			out[format] = data
		default:
			return nil, errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q", format)
		}
	}
	return out, nil
}
