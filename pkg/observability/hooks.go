// Package observability lets callers watch the gallery pipeline without the
// pipeline knowing who is listening.
//
// Hooks are process-wide. The CLI installs [LogHooks] so that --verbose shows
// every scan, layout pass, render and cache lookup; tests install recording
// hooks and call [Reset] afterwards:
//
//	observability.Register(observability.NewLogHooks(logger))
//	defer observability.Reset()
//
// The layout engine itself emits nothing; events come from package pipeline.
package observability

import (
	"context"
	"sync/atomic"
	"time"
)

// Cache key types passed to CacheHooks.
const (
	KeyLayout   = "layout"
	KeyArtifact = "artifact"
)

// PipelineHooks receives the start and end of each pipeline stage. Complete
// events carry the stage's error, if any.
type PipelineHooks interface {
	OnScanStart(ctx context.Context, dir string)
	OnScanComplete(ctx context.Context, dir string, imageCount int, duration time.Duration, err error)

	OnLayoutStart(ctx context.Context, mode string, imageCount int)
	OnLayoutComplete(ctx context.Context, mode string, imageCount int, duration time.Duration, err error)

	OnRenderStart(ctx context.Context, formats []string)
	OnRenderComplete(ctx context.Context, formats []string, duration time.Duration, err error)
}

// CacheHooks receives cache lookups and writes. keyType is KeyLayout or
// KeyArtifact.
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// NoopPipelineHooks ignores every event. Embed it to implement only some
// methods.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnScanStart(context.Context, string)                                 {}
func (NoopPipelineHooks) OnScanComplete(context.Context, string, int, time.Duration, error)   {}
func (NoopPipelineHooks) OnLayoutStart(context.Context, string, int)                          {}
func (NoopPipelineHooks) OnLayoutComplete(context.Context, string, int, time.Duration, error) {}
func (NoopPipelineHooks) OnRenderStart(context.Context, []string)                             {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, []string, time.Duration, error)    {}

// NoopCacheHooks ignores every event.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// Boxed so that atomic.Pointer can hold interface values.
type (
	pipelineBox struct{ PipelineHooks }
	cacheBox    struct{ CacheHooks }
)

var (
	pipelineHooks atomic.Pointer[pipelineBox]
	cacheHooks    atomic.Pointer[cacheBox]
)

func init() { Reset() }

// SetPipelineHooks installs h. A nil h is ignored.
func SetPipelineHooks(h PipelineHooks) {
	if h != nil {
		pipelineHooks.Store(&pipelineBox{h})
	}
}

// SetCacheHooks installs h. A nil h is ignored.
func SetCacheHooks(h CacheHooks) {
	if h != nil {
		cacheHooks.Store(&cacheBox{h})
	}
}

// Register installs h for every hook interface it implements.
func Register(h any) {
	if p, ok := h.(PipelineHooks); ok {
		SetPipelineHooks(p)
	}
	if c, ok := h.(CacheHooks); ok {
		SetCacheHooks(c)
	}
}

// Pipeline returns the installed pipeline hooks.
func Pipeline() PipelineHooks { return pipelineHooks.Load().PipelineHooks }

// Cache returns the installed cache hooks.
func Cache() CacheHooks { return cacheHooks.Load().CacheHooks }

// Reset restores the no-op hooks.
func Reset() {
	pipelineHooks.Store(&pipelineBox{NoopPipelineHooks{}})
	cacheHooks.Store(&cacheBox{NoopCacheHooks{}})
}
