package apiset

import (
	"sync/atomic"

	"go.uber.org/zap"
)

var logger atomic.Pointer[zap.Logger]

// SetLogger installs the logger used for debug records. nil restores the
// no-op default.
func SetLogger(l *zap.Logger) {
	logger.Store(l)
}

// Logger returns the package logger. It is a no-op logger by default.
func Logger() *zap.Logger {
	if l := logger.Load(); l != nil {
		return l
	}
	return zap.NewNop()
}
