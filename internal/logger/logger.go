package logger

import (
	"sync"
)

// Named levels accepted by Get; anything else falls back to info.
const (
	DebugLevel = "debug"
	InfoLevel  = "info"
	WarnLevel  = "warn"
	ErrorLevel = "error"
)

var (
	globalLogger *Logger
	once         sync.Once
)

// Get returns the process-wide logger, building it on first use with the
// given level. Later calls reuse the same instance and the level argument
// is ignored.
func Get(level string) *Logger {
	once.Do(func() {
		globalLogger = newZapLogger(level)
	})
	return globalLogger
}
