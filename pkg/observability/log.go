package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks reports pipeline and cache events at debug level.
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks returns hooks writing to logger.
func NewLogHooks(logger *log.Logger) *LogHooks {
	if logger == nil {
		logger = log.Default()
	}
	return &LogHooks{logger: logger.WithPrefix("hooks")}
}

func (h *LogHooks) OnScanStart(_ context.Context, dir string) {
	h.logger.Debug("scan started", "dir", dir)
}

func (h *LogHooks) OnScanComplete(_ context.Context, dir string, n int, d time.Duration, err error) {
	h.done("scan finished", err, "dir", dir, "images", n, "duration", d)
}

func (h *LogHooks) OnLayoutStart(_ context.Context, mode string, n int) {
	h.logger.Debug("layout started", "mode", mode, "images", n)
}

func (h *LogHooks) OnLayoutComplete(_ context.Context, mode string, n int, d time.Duration, err error) {
	h.done("layout finished", err, "mode", mode, "images", n, "duration", d)
}

func (h *LogHooks) OnRenderStart(_ context.Context, formats []string) {
	h.logger.Debug("render started", "formats", formats)
}

func (h *LogHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	h.done("render finished", err, "formats", formats, "duration", d)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h *LogHooks) done(msg string, err error, kv ...any) {
	if err != nil {
		h.logger.Debug(msg, append(kv, "err", err)...)
		return
	}
	h.logger.Debug(msg, kv...)
}

var (
	_ PipelineHooks = (*LogHooks)(nil)
	_ CacheHooks    = (*LogHooks)(nil)
)
