// Package pipeline provides the scan → layout → render pipeline for gallery.
//
// The CLI and any embedding program share this package so that defaults,
// validation and caching behave the same everywhere.
//
// # Stages
//
//  1. Scan: build a manifest from an image directory (optional; manifests
//     can also be loaded from JSON or TOML)
//  2. Layout: run the row or column planner and produce a [schema.Layout]
//  3. Render: draw the layout as SVG, PNG, PDF or JSON
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Mode:    "rows",
//	    Width:   1200,
//	    Formats: []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, m, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Stages can also run on their own:
//
//	l, err := runner.ComputeLayout(ctx, m.Layout(), opts)
//	artifacts, err := runner.Render(ctx, l, opts)
//
// [schema.Layout]: github.com/matzehuels/gallery/pkg/schema.Layout
package pipeline

import (
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gallery/pkg/cache"
	"github.com/matzehuels/gallery/pkg/errors"
	"github.com/matzehuels/gallery/pkg/layout"
	"github.com/matzehuels/gallery/pkg/schema"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Library Callers
// =============================================================================

const (
	// DefaultWidth is the default container width in pixels.
	DefaultWidth = 1200.0

	// DefaultMargin is the default gap between tiles.
	DefaultMargin = 8.0

	// DefaultTargetRowHeight is the default ideal row height for row layouts.
	DefaultTargetRowHeight = 240.0

	// DefaultPNGScale renders PNGs at 2x resolution.
	DefaultPNGScale = 2.0
)

// DefaultMode is the default layout mode.
const DefaultMode = string(layout.ModeRows)

// DefaultLastRow is the default last row policy.
const DefaultLastRow = "justify"

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// Stage names a step of Execute.
type Stage string

const (
	StageLayout Stage = "layout"
	StageRender Stage = "render"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the gallery pipeline.
// This struct supports JSON serialization so runs can be recorded and replayed.
type Options struct {
	// Layout options
	Mode            string  `json:"mode,omitempty"`
	Width           float64 `json:"width,omitempty"`
	Margin          float64 `json:"margin,omitempty"`
	TargetRowHeight float64 `json:"target_row_height,omitempty"`
	LimitNodeSearch int     `json:"limit_node_search,omitempty"` // 0 = estimate from width and row height
	LastRow         string  `json:"last_row,omitempty"`
	LastRowWeight   float64 `json:"last_row_weight,omitempty"`
	Columns         int     `json:"columns,omitempty"` // 0 = pick from width

	// SafetyPixel subtracts one pixel from Width before layout. Browsers
	// report fractional widths that round up; shaving a pixel keeps the
	// justified rows from wrapping.
	SafetyPixel bool `json:"safety_pixel,omitempty"`

	// Render options
	Formats     []string `json:"formats,omitempty"`
	Labels      bool     `json:"labels,omitempty"`
	Thumbnails  bool     `json:"thumbnails,omitempty"`
	Background  string   `json:"background,omitempty"`
	Interactive bool     `json:"interactive,omitempty"`
	PNGScale    float64  `json:"png_scale,omitempty"`

	Title   string `json:"title,omitempty"`
	Refresh bool   `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	ImageDir string            `json:"-"` // Resolves tile paths for thumbnails
	Logger   *log.Logger       `json:"-"`
	OnStage  func(stage Stage) `json:"-"` // Called by Execute as each stage begins
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// ImagesHash is the content hash of the image list.
	ImagesHash string

	// Layout is the computed layout document.
	Layout schema.Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	ImageCount int
	RowCount   int
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, pdf, json)", format)
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

// =============================================================================
// Options Methods
// =============================================================================

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.Mode == "" {
		o.Mode = DefaultMode
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.TargetRowHeight == 0 {
		o.TargetRowHeight = DefaultTargetRowHeight
	}
	if o.LastRow == "" {
		o.LastRow = DefaultLastRow
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout validates and sets defaults for layout computation.
// The layout package validates numeric ranges itself; this catches the
// string-typed options before they reach it.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if _, err := layout.ParseMode(o.Mode); err != nil {
		return err
	}
	if _, err := layout.ParseLastRowPolicy(o.LastRow); err != nil {
		return err
	}
	if o.Columns < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "columns must not be negative, got %d", o.Columns)
	}
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.PNGScale == 0 {
		o.PNGScale = DefaultPNGScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Thumbnails && o.ImageDir == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "thumbnails require an image directory")
	}
	return nil
}

// ContainerWidth returns the width handed to the layout engine.
func (o *Options) ContainerWidth() float64 {
	if o.SafetyPixel && o.Width > 1 {
		return o.Width - 1
	}
	return o.Width
}

// LayoutOptions converts the pipeline options into engine options.
// Call ValidateForLayout first.
func (o *Options) LayoutOptions() layout.Options {
	mode, _ := layout.ParseMode(o.Mode)
	policy, _ := layout.ParseLastRowPolicy(o.LastRow)
	return layout.Options{
		Mode:            mode,
		ContainerWidth:  o.ContainerWidth(),
		Margin:          o.Margin,
		TargetRowHeight: o.TargetRowHeight,
		LimitNodeSearch: o.LimitNodeSearch,
		LastRow:         policy,
		LastRowWeight:   o.LastRowWeight,
		Columns:         o.columns(),
	}
}

// columns returns the column count for columns mode. Breakpoints are
// measured on the full width, before the safety pixel comes off.
func (o *Options) columns() int {
	if o.Columns > 0 {
		return o.Columns
	}
	return layout.DefaultColumns(o.Width)
}

// LayoutKeyOpts returns cache key options for layout computation.
// Row-only and column-only fields are cleared for the other mode so that
// irrelevant flags do not split the cache.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	k := cache.LayoutKeyOpts{
		Mode:           o.Mode,
		ContainerWidth: o.ContainerWidth(),
		Margin:         o.Margin,
	}
	if o.Mode == string(layout.ModeColumns) {
		k.Columns = o.columns()
		return k
	}
	k.TargetRowHeight = o.TargetRowHeight
	k.LimitNodeSearch = o.LimitNodeSearch
	k.LastRow = o.LastRow
	k.LastRowWeight = o.LastRowWeight
	return k
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{
		Format:      format,
		Labels:      o.Labels,
		Thumbnails:  o.Thumbnails,
		Background:  o.Background,
		Interactive: o.Interactive,
	}
	if format == FormatPNG {
		k.Scale = o.PNGScale
	}
	if o.Thumbnails {
		k.ImageDir = o.ImageDir
	}
	if format == FormatJSON {
		return cache.ArtifactKeyOpts{Format: format}
	}
	return k
}

// HasFormat reports whether format is among the requested outputs.
func (o *Options) HasFormat(format string) bool {
	return slices.Contains(o.Formats, format)
}

func (o *Options) stage(s Stage) {
	if o.OnStage != nil {
		o.OnStage(s)
	}
}
