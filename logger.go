package rayview

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler is a slog.Handler that silently discards all log records.
// The Enabled method returns false so the caller skips message formatting
// entirely, making disabled logging effectively zero-cost.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// newNopLogger creates a logger that silently discards all output.
func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger. Accessed atomically so that
// SetLogger can be called while a load goroutine is logging.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger for rayview and all its sub-packages.
// By default, rayview produces no log output.
//
// Pass nil to disable logging (restore default silent behavior).
//
// Log levels used by rayview:
//   - [slog.LevelDebug]: binary import steps, per-stage load timings
//   - [slog.LevelInfo]: lifecycle events (binary loaded, frame rendered)
//   - [slog.LevelWarn]: surface context unavailable
//   - [slog.LevelError]: initialization failures
//
// Example:
//
//	rayview.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger used by rayview.
// Sub-packages fall back to it when no logger is injected through options.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
