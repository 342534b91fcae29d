package blendcts

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/gogpu/blendcts/driver"
	"github.com/gogpu/blendcts/enumerate"
)

// nopHandler is a slog.Handler that silently discards all log records.
// The Enabled method returns false so the caller skips message formatting
// entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// newNopLogger creates a logger that silently discards all output.
func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger. Accessed atomically so that
// SetLogger can be called concurrently with logging from any goroutine.
var loggerPtr atomic.Pointer[slog.Logger]

// active is the driver of the most recently created instance.
var (
	activeMu sync.RWMutex
	active   driver.Driver
)

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger for blendcts, the enumerate package and
// the driver of the current instance. By default blendcts produces no log
// output. Pass nil to restore the silent default.
//
// Log levels used by blendcts:
//   - [slog.LevelDebug]: per-iteration diagnostics (state names, pipeline handles)
//   - [slog.LevelInfo]: run lifecycle and everything written to a TestLog
//   - [slog.LevelWarn]: non-fatal issues (unseeded shuffle, failed dumps)
//
// Example:
//
//	blendcts.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
	enumerate.SetLogger(l)

	activeMu.RLock()
	d := active
	activeMu.RUnlock()
	if d != nil {
		propagateLogger(d, l)
	}
}

// Logger returns the current logger used by blendcts.
//
// Logger is safe for concurrent use.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}

// loggerSetter is implemented by drivers that accept a logger.
type loggerSetter interface {
	SetLogger(*slog.Logger)
}

// propagateLogger passes the logger to d if it implements loggerSetter.
func propagateLogger(d driver.Driver, l *slog.Logger) {
	if ls, ok := d.(loggerSetter); ok {
		ls.SetLogger(l)
	}
}

// activate makes d the driver SetLogger forwards to and hands it the
// current logger.
func activate(d driver.Driver) {
	activeMu.Lock()
	active = d
	activeMu.Unlock()
	propagateLogger(d, Logger())
}

func deactivate(d driver.Driver) {
	activeMu.Lock()
	if active == d {
		active = nil
	}
	activeMu.Unlock()
}
