// Package pipeline provides the core render pipeline for alpsviz.
//
// This package implements the complete parse → layout → render pipeline that
// is shared by the render command, the watch loop and the preview server. By
// centralizing this logic, every entry point resolves, filters and renders a
// profile the same way.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Parse: Resolve cross-file references and build the descriptor table and links
//  2. Layout: Apply the tag filter and generate Graphviz DOT
//  3. Render: Produce output in the requested formats (DOT, SVG, PNG, JSON)
//
// Rasterized artifacts are cached by a hash of the DOT source, so re-rendering
// an unchanged diagram skips Graphviz.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Input:   "profile.json",
//	    Label:   "title",
//	    Formats: []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/alpsviz/pkg/errors"
	"github.com/matzehuels/alpsviz/pkg/profile"
	"github.com/matzehuels/alpsviz/pkg/render/diagram"
	"github.com/matzehuels/alpsviz/pkg/render/label"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

const (
	// DefaultLabel is the default label strategy.
	DefaultLabel = label.NameID

	// DefaultColor highlights tagged descriptors when tags are given without
	// a color.
	DefaultColor = "red"

	// DefaultDocExt is the default extension of documentation page links.
	DefaultDocExt = diagram.DefaultDocExt
)

// Format constants for output formats.
const (
	FormatDOT  = "dot"
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatJSON = "json"
)

// DefaultFormats are rendered when no format is requested.
var DefaultFormats = []string{FormatDOT, FormatSVG}

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatDOT:  true,
	FormatSVG:  true,
	FormatPNG:  true,
	FormatJSON: true,
}

// ValidLabels is the set of supported label strategies.
var ValidLabels = map[string]bool{
	label.NameID:    true,
	label.NameTitle: true,
	label.NameBoth:  true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the render pipeline.
// This struct supports JSON serialization for logging and server requests.
type Options struct {
	// Parse options
	Input string `json:"input"`

	// Layout options
	Label   string   `json:"label,omitempty"`
	AndTags []string `json:"and_tags,omitempty"`
	OrTags  []string `json:"or_tags,omitempty"`
	Color   string   `json:"color,omitempty"`
	DocExt  string   `json:"doc_ext,omitempty"`

	// Render options
	Formats []string `json:"formats,omitempty"`
	Refresh bool     `json:"refresh,omitempty"` // ignore cached artifacts

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// ID identifies this run in logs and server responses.
	ID string

	// Files lists every profile file that was read, root first.
	Files []string

	// Profile is the built profile.
	Profile *profile.Profile

	// Tagged is the highlight subset. Inactive when no tags were given.
	Tagged *profile.Tagged

	// DOT is the generated Graphviz source.
	DOT string

	// DOTHash is the content hash of DOT, used for artifact cache keys.
	DOTHash string

	// Formats lists the rendered formats in the order they were requested.
	Formats []string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	FileCount       int
	DescriptorCount int
	LinkCount       int
	TaggedCount     int
	ParseTime       time.Duration
	LayoutTime      time.Duration
	RenderTime      time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	RenderHit bool // Whether all rasterized artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: dot, svg, png, json)", format)
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

// ValidateLabel checks that a label strategy is valid.
func ValidateLabel(name string) error {
	if !ValidLabels[name] {
		return errors.New(errors.ErrCodeInvalidInput, "invalid label: %q (must be one of: %s)", name, strings.Join(label.Names, ", "))
	}
	return nil
}

// ParseFormats splits a comma separated format list, dropping blanks.
func ParseFormats(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForParse(); err != nil {
		return err
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForParse checks required fields for parsing.
func (o *Options) ValidateForParse() error {
	if o.Input == "" {
		return errors.New(errors.ErrCodeInvalidInput, "input profile is required")
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// SetLayoutDefaults sets default values for DOT generation.
func (o *Options) SetLayoutDefaults() {
	if o.Label == "" {
		o.Label = DefaultLabel
	}
	if o.DocExt == "" {
		o.DocExt = DefaultDocExt
	}
	if o.Color == "" && o.HasTags() {
		o.Color = DefaultColor
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout validates and sets defaults for DOT generation.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if err := ValidateLabel(o.Label); err != nil {
		return err
	}
	if err := errors.ValidateDocExt(o.DocExt); err != nil {
		return err
	}
	if err := errors.ValidateColor(o.Color); err != nil {
		return err
	}
	if err := errors.ValidateTags(o.AndTags); err != nil {
		return fmt.Errorf("and tags: %w", err)
	}
	if err := errors.ValidateTags(o.OrTags); err != nil {
		return fmt.Errorf("or tags: %w", err)
	}
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = append([]string(nil), DefaultFormats...)
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	return ValidateFormats(o.Formats)
}

// HasTags reports whether any tag predicate is set.
func (o *Options) HasTags() bool {
	return len(o.AndTags) > 0 || len(o.OrTags) > 0
}

// NeedsGraphviz reports whether any requested format is rasterized.
func (o *Options) NeedsGraphviz() bool {
	for _, f := range o.Formats {
		if f == FormatSVG || f == FormatPNG {
			return true
		}
	}
	return false
}

// DiagramOptions returns the renderer options for a tag subset.
func (o *Options) DiagramOptions(tagged *profile.Tagged) (diagram.Options, error) {
	strategy, err := label.ByName(o.Label)
	if err != nil {
		return diagram.Options{}, err
	}
	return diagram.Options{
		Label:  strategy,
		Tagged: tagged,
		Color:  o.Color,
		DocExt: o.DocExt,
	}, nil
}
