package rendergraph

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler discards every record. It is the default handler so that the
// package costs nothing when the embedding application never calls
// SetLogger.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (h nopHandler) WithAttrs([]slog.Attr) slog.Handler       { return h }
func (h nopHandler) WithGroup(string) slog.Handler            { return h }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(slog.New(nopHandler{}))
}

// SetLogger installs the logger used for execution diagnostics. Passing nil
// restores the no-op default.
//
// The package emits one Debug record per pass closure it runs (pass name
// and topological index). Nothing is logged at Info, Warn or Error; errors
// are only returned to the caller.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(nopHandler{})
	}
	loggerPtr.Store(l)
}

// Logger returns the currently installed logger.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
