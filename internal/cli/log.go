// Package cli implements the gallery command-line interface.
//
// Commands read image lists from manifest files (JSON or TOML) or scan a
// directory directly, compute layouts through the pipeline package and
// write layout documents or rendered contact sheets. Layouts and artifacts
// are cached under the XDG cache directory.
//
// # Commands
//
//   - scan: Build a manifest from an image directory
//   - layout: Compute a layout document
//   - render: Compute and render in one step
//   - visualize: Render an existing layout document
//   - searchgraph: Draw the row partition search
//   - preview: Show the layout in the terminal, reflowing on resize
//   - cache, config: Inspect and manage local state
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. The logger
// travels through context.Context so pipeline stages can report progress.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger writes leveled logs with a short wall-clock timestamp
// ("14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress times one operation. Not safe for concurrent use.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg with the elapsed time, rounded to the millisecond, and any
// extra key/value pairs.
func (p *progress) done(msg string, kv ...any) {
	kv = append([]any{"took", time.Since(p.start).Round(time.Millisecond)}, kv...)
	p.logger.Info(msg, kv...)
}

type loggerKey struct{}

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// loggerFromContext returns the command logger, or log.Default() outside a
// command.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
