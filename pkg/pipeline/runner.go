package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gallery/pkg/cache"
	"github.com/matzehuels/gallery/pkg/layout"
	"github.com/matzehuels/gallery/pkg/manifest"
	"github.com/matzehuels/gallery/pkg/observability"
	"github.com/matzehuels/gallery/pkg/schema"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger; it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options as long as the cache is safe for
// concurrent use.
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

// Scan builds a manifest from an image directory.
func (r *Runner) Scan(ctx context.Context, dir string, opts manifest.ScanOptions) (*manifest.Manifest, error) {
	hooks := observability.Pipeline()
	hooks.OnScanStart(ctx, dir)
	start := time.Now()

	if opts.OnSkip == nil {
		opts.OnSkip = func(path string, err error) {
			r.Logger.Warn("skipped unreadable image", "path", path, "error", err)
		}
	}

	m, err := manifest.Scan(ctx, dir, opts)
	n := 0
	if m != nil {
		n = len(m.Images)
	}
	hooks.OnScanComplete(ctx, dir, n, time.Since(start), err)
	if err != nil {
		return nil, err
	}

	r.Logger.Info("scanned images", "dir", dir, "images", n, "duration", time.Since(start))
	return m, nil
}

// Execute runs layout and render for a manifest with caching.
func (r *Runner) Execute(ctx context.Context, m *manifest.Manifest, opts Options) (*Result, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	if err := opts.ValidateForRender(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)
	if opts.Title == "" {
		opts.Title = m.Title
	}

	images := m.Layout()
	result := &Result{Artifacts: make(map[string][]byte)}
	result.Stats.ImageCount = len(images)

	if hash, err := HashImages(images); err == nil {
		result.ImagesHash = hash
	}

	// Stage 1: Layout
	opts.stage(StageLayout)
	layoutStart := time.Now()
	l, layoutHit, err := r.ComputeLayoutWithCacheInfo(ctx, images, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Layout = l
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.RowCount = l.RowCount
	result.CacheInfo.LayoutHit = layoutHit

	r.Logger.Info("computed layout",
		"mode", l.Mode,
		"tiles", len(l.Tiles),
		"height", l.Height,
		"duration", result.Stats.LayoutTime)

	// Stage 2: Render
	opts.stage(StageRender)
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, l, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// ComputeLayoutWithCacheInfo computes a layout with caching and returns cache hit info.
func (r *Runner) ComputeLayoutWithCacheInfo(ctx context.Context, images []layout.Image, opts Options) (schema.Layout, bool, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return schema.Layout{}, false, err
	}
	r.applyLogger(&opts)

	imagesHash, err := HashImages(images)
	if err != nil {
		return schema.Layout{}, false, fmt.Errorf("hash images: %w", err)
	}
	cacheKey := r.Keyer.LayoutKey(imagesHash, opts.LayoutKeyOpts())

	if !opts.Refresh {
		if cached, ok := r.cachedLayout(ctx, cacheKey); ok {
			cached.Title = opts.Title
			return cached, true, nil
		}
	}

	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, opts.Mode, len(images))
	start := time.Now()
	l, err := ComputeLayout(images, opts)
	hooks.OnLayoutComplete(ctx, opts.Mode, len(images), time.Since(start), err)
	if err != nil {
		return schema.Layout{}, false, err
	}

	if data, err := schema.Marshal(l); err == nil {
		r.store(ctx, observability.KeyLayout, cacheKey, data, cache.TTLLayout)
	}

	return l, false, nil
}

// cachedLayout returns the layout stored under key, if any. Undecodable
// entries count as misses so the layout is recomputed.
func (r *Runner) cachedLayout(ctx context.Context, key string) (schema.Layout, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, observability.KeyLayout)
		return schema.Layout{}, false
	}
	l, err := schema.Unmarshal(data)
	if err != nil {
		r.Logger.Debug("discarding cached layout", "key", key, "error", err)
		observability.Cache().OnCacheMiss(ctx, observability.KeyLayout)
		return schema.Layout{}, false
	}
	observability.Cache().OnCacheHit(ctx, observability.KeyLayout)
	return l, true
}

// ComputeLayout is a convenience wrapper that calls ComputeLayoutWithCacheInfo and discards the cache hit info.
func (r *Runner) ComputeLayout(ctx context.Context, images []layout.Image, opts Options) (schema.Layout, error) {
	l, _, err := r.ComputeLayoutWithCacheInfo(ctx, images, opts)
	return l, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, l schema.Layout, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	// Compute cache key from layout data
	layoutData, err := schema.Marshal(l)
	if err != nil {
		return nil, false, fmt.Errorf("serialize layout for cache key: %w", err)
	}
	layoutHash := cache.Hash(layoutData)

	// Try to get all formats from cache
	if !opts.Refresh {
		artifacts := make(map[string][]byte, len(opts.Formats))
		for _, format := range opts.Formats {
			key := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
			data, hit, err := r.Cache.Get(ctx, key)
			if err != nil || !hit {
				observability.Cache().OnCacheMiss(ctx, observability.KeyArtifact)
				break
			}
			observability.Cache().OnCacheHit(ctx, observability.KeyArtifact)
			artifacts[format] = data
		}
		if len(artifacts) == len(opts.Formats) {
			return artifacts, true, nil
		}
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()
	rendered, err := Render(ctx, l, opts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		key := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		r.store(ctx, observability.KeyArtifact, key, data, cache.TTLArtifact)
	}

	return rendered, false, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, l schema.Layout, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, l, opts)
	return artifacts, err
}

// store writes a cache entry. Cache failures are logged, never returned:
// a broken cache must not fail a run that otherwise succeeded.
func (r *Runner) store(ctx context.Context, keyType, key string, data []byte, ttl time.Duration) {
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Debug("cache write failed", "key", key, "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
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
