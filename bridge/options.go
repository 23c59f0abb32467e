package bridge

import (
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/wippyai/callbridge/registry"
)

var (
	nopLogger     = zap.NewNop()
	defaultLogger atomic.Pointer[zap.Logger]
)

// Logger returns the logger agents fall back to when Options.Logger is nil.
// It discards everything until SetLogger installs one.
func Logger() *zap.Logger {
	if l := defaultLogger.Load(); l != nil {
		return l
	}
	return nopLogger
}

// SetLogger replaces the fallback logger. Nil restores the no-op logger.
// Agents keep the logger they were created with.
func SetLogger(l *zap.Logger) {
	defaultLogger.Store(l)
}

// Options configures an Agent.
type Options struct {
	// Logger receives resolution, handle and invocation traces.
	// Nil falls back to Logger().
	Logger *zap.Logger

	// Draw is the identifier source for both registry spaces.
	// Nil uses registry.RandomDraw.
	Draw registry.DrawFunc
}

// DefaultOptions returns the default agent options.
func DefaultOptions() Options {
	return Options{
		Draw: registry.RandomDraw,
	}
}
