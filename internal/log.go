package internal

import (
	"log"
	"os"
)

// LogLevel represents different logging verbosity levels
type LogLevel int

const (
	LogLevelError LogLevel = iota
	LogLevelInfo
	LogLevelDebug
)

// Logger provides leveled logging with a component prefix
type Logger struct {
	component string
	level     LogLevel
}

// NewLogger creates a logger for a component, reading LOG_LEVEL from the
// environment (ERROR, INFO, DEBUG; default INFO).
func NewLogger(component string) *Logger {
	level := LogLevelInfo
	switch os.Getenv("LOG_LEVEL") {
	case "ERROR":
		level = LogLevelError
	case "DEBUG":
		level = LogLevelDebug
	}
	return &Logger{component: component, level: level}
}

// Error logs error messages
func (l *Logger) Error(format string, args ...interface{}) {
	if l.level >= LogLevelError {
		log.Printf("["+l.component+"] ERROR "+format, args...)
	}
}

// Info logs info messages
func (l *Logger) Info(format string, args ...interface{}) {
	if l.level >= LogLevelInfo {
		log.Printf("["+l.component+"] "+format, args...)
	}
}

// Debug logs debug messages
func (l *Logger) Debug(format string, args ...interface{}) {
	if l.level >= LogLevelDebug {
		log.Printf("["+l.component+"] DEBUG "+format, args...)
	}
}
