package logging

import (
	"fmt"
	"sync"
)

// CaptureLogger records log messages in memory.
// Safe for concurrent use by multiple goroutines.
// Intended for tests that assert on logging behavior.
type CaptureLogger struct {
	mu       sync.Mutex
	Verboses []string
	Infos    []string
	Errors   []string
}

// NewCaptureLogger creates a new CaptureLogger.
func NewCaptureLogger() *CaptureLogger {
	return &CaptureLogger{}
}

// Verbose records a verbose message.
func (l *CaptureLogger) Verbose(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Verboses = append(l.Verboses, fmt.Sprintf(format, args...))
}

// Info records an info message.
func (l *CaptureLogger) Info(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Infos = append(l.Infos, fmt.Sprintf(format, args...))
}

// Error records an error message.
func (l *CaptureLogger) Error(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Errors = append(l.Errors, fmt.Sprintf(format, args...))
}
