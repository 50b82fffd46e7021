package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/alpsviz/pkg/cache"
	"github.com/matzehuels/alpsviz/pkg/observability"
	"github.com/matzehuels/alpsviz/pkg/profile"
)

// Runner encapsulates pipeline execution with caching.
// The render command, the watch loop and the preview server all use it.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
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

// Execute runs the complete parse → layout → render pipeline with caching.
// Any error aborts the run; there are no partial results.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{
		ID:        uuid.NewString(),
		Artifacts: make(map[string][]byte),
	}
	logger := opts.Logger.With("render", result.ID[:8])

	// Stage 1: Parse
	parseStart := time.Now()
	p, files, err := Parse(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	result.Profile = p
	result.Files = files
	result.Stats.ParseTime = time.Since(parseStart)
	result.Stats.FileCount = len(files)
	result.Stats.DescriptorCount = p.Table.Len()
	result.Stats.LinkCount = p.Links.Len()

	logger.Info("built profile",
		"files", len(files),
		"descriptors", p.Table.Len(),
		"links", p.Links.Len(),
		"duration", result.Stats.ParseTime)

	// Stage 2: Layout
	layoutStart := time.Now()
	dot, tagged, err := GenerateLayout(p, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.DOT = dot
	result.DOTHash = cache.Hash([]byte(dot))
	result.Tagged = tagged
	result.Stats.TaggedCount = tagged.Len()
	result.Stats.LayoutTime = time.Since(layoutStart)

	if tagged.Active() {
		logger.Info("filtered by tags",
			"and", opts.AndTags,
			"or", opts.OrTags,
			"highlighted", tagged.Len())
	}

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, p, dot, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Formats = opts.Formats
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
// Only Graphviz output is cached; DOT and JSON are cheap to regenerate. The hit
// flag is true when every rasterized format came from cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, p *profile.Profile, dot string, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	hooks := observability.Pipeline()
	cacheHooks := observability.Cache()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	dotHash := cache.Hash([]byte(dot))
	artifacts := make(map[string][]byte, len(opts.Formats))
	var missing []string
	for _, format := range opts.Formats {
		if !isRaster(format) || opts.Refresh {
			missing = append(missing, format)
			continue
		}
		key := r.Keyer.ArtifactKey(dotHash, format)
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			cacheHooks.OnCacheHit(ctx, format)
			artifacts[format] = data
			continue
		} else if err != nil {
			r.Logger.Warn("cache read failed", "format", format, "err", err)
		}
		cacheHooks.OnCacheMiss(ctx, format)
		missing = append(missing, format)
	}

	rendered, err := Render(ctx, p, dot, missing)
	if err != nil {
		hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
		return nil, false, err
	}

	allHit := true
	for format, data := range rendered {
		artifacts[format] = data
		if !isRaster(format) {
			continue
		}
		allHit = false
		key := r.Keyer.ArtifactKey(dotHash, format)
		if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err != nil {
			r.Logger.Warn("cache write failed", "format", format, "err", err)
			continue
		}
		cacheHooks.OnCacheSet(ctx, format, len(data))
	}

	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), nil)
	return artifacts, allHit && opts.NeedsGraphviz(), nil
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
