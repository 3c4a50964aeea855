// Package cli implements the sorttrace command-line interface.
//
// This package provides the interactive merge sort animation, the quicksort
// stepper, call tree rendering, the comparison sweep and the HTTP API server.
// The CLI is built using cobra and supports verbose logging via the
// charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - merge: Animate a merge sort in the terminal
//   - quick: Step forwards and backwards through a quicksort
//   - tree: Render either call tree as DOT, SVG or PNG
//   - bounds: Print best and worst merge sort comparison counts
//   - compare: Measure both sorters over many random arrays
//   - serve: Run the JSON HTTP API
//   - cache: Manage the result cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/sorttrace/pkg/observability"
)

// newLogger creates a new logger with timestamp formatting.
// The logger writes to w and filters messages at the specified level.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
// It is safe for sequential use by a single goroutine; concurrent calls to done will race.
type progress struct {
	logger *log.Logger
	start  time.Time
}

// newProgress creates a progress tracker that captures the current time as start.
func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since progress was created.
// Example output: "Measured 5 sizes (1.234s)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

// withLogger returns a new context with the given logger attached.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx.
// If no logger is attached, it returns log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// =============================================================================
// Observability Hooks
// =============================================================================

// logHooks reports sweep, cache and request events at debug level.
type logHooks struct {
	logger *log.Logger
}

func registerLogHooks(l *log.Logger) {
	h := logHooks{logger: l}
	observability.SetSweepHooks(h)
	observability.SetCacheHooks(h)
	observability.SetHTTPHooks(h)
}

func (h logHooks) OnSweepStart(_ context.Context, sizes int) {
	h.logger.Debug("sweep started", "sizes", sizes)
}

func (h logHooks) OnSizeComplete(_ context.Context, n, quick, merge int, d time.Duration) {
	h.logger.Debug("size measured", "n", n, "quicksort", quick, "mergesort", merge, "duration", d)
}

func (h logHooks) OnSweepComplete(_ context.Context, sizes int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("sweep failed", "sizes", sizes, "duration", d, "error", err)
		return
	}
	h.logger.Debug("sweep complete", "sizes", sizes, "duration", d)
}

func (h logHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h logHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h logHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h logHooks) OnRequest(_ context.Context, method, path string) {
	h.logger.Debug("request received", "method", method, "path", path)
}

// OnResponse is silent; the server logs every response itself.
func (h logHooks) OnResponse(context.Context, string, string, int, time.Duration) {}
