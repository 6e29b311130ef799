// Package logging provides the leveled logger shared by the codec's CLI
// and container scheduler. Beyond plain leveled messages, it supports
// scoping a logger to a set of structured fields (an encode/decode
// session id, a super-block's (x,y,z) coordinate) so every line a
// concurrent encode/decode run produces can be traced back to the call
// that emitted it, without callers hand-formatting those fields into
// every message string.
package logging

import (
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
)

// Level represents log severity levels
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var levelNames = map[Level]string{
	LevelDebug: "DEBUG",
	LevelInfo:  "INFO",
	LevelWarn:  "WARN",
	LevelError: "ERROR",
}

// Logger provides leveled logging
type Logger struct {
	level  Level
	mu     sync.RWMutex
	logger *log.Logger
}

var (
	defaultLogger *Logger
	once          sync.Once
)

// Default returns the default logger instance
func Default() *Logger {
	once.Do(func() {
		defaultLogger = &Logger{
			level:  LevelInfo,
			logger: log.New(os.Stderr, "", log.LstdFlags|log.LUTC),
		}
	})
	return defaultLogger
}

// SetLevel sets the minimum log level
func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

// SetLevelFromString sets the log level from a string
func (l *Logger) SetLevelFromString(levelStr string) {
	switch strings.ToLower(levelStr) {
	case "debug":
		l.SetLevel(LevelDebug)
	case "info":
		l.SetLevel(LevelInfo)
	case "warn", "warning":
		l.SetLevel(LevelWarn)
	case "error":
		l.SetLevel(LevelError)
	default:
		l.SetLevel(LevelInfo)
	}
}

// GetLevel returns the current log level
func (l *Logger) GetLevel() Level {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.level
}

// GetLevelString returns the current log level as a string
func (l *Logger) GetLevelString() string {
	return levelNames[l.GetLevel()]
}

// GetLevelString returns the default logger's level as a string
func GetLevelString() string {
	return Default().GetLevelString()
}

func (l *Logger) log(level Level, format string, args ...interface{}) {
	l.mu.RLock()
	currentLevel := l.level
	l.mu.RUnlock()

	if level < currentLevel {
		return
	}

	prefix := levelNames[level]
	msg := fmt.Sprintf(format, args...)
	l.logger.Printf("[%s] %s", prefix, msg)
}

// Debug logs a debug message
func (l *Logger) Debug(format string, args ...interface{}) {
	l.log(LevelDebug, format, args...)
}

// Info logs an info message
func (l *Logger) Info(format string, args ...interface{}) {
	l.log(LevelInfo, format, args...)
}

// Warn logs a warning message
func (l *Logger) Warn(format string, args ...interface{}) {
	l.log(LevelWarn, format, args...)
}

// Error logs an error message
func (l *Logger) Error(format string, args ...interface{}) {
	l.log(LevelError, format, args...)
}

// Field is one structured key=value pair a ScopedLogger appends to every
// message it logs.
type Field struct {
	Key   string
	Value interface{}
}

// F builds a Field, e.g. logging.F("session", sessionID).
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// ScopedLogger decorates every message logged through it with a fixed set
// of fields, so log lines from a single encode/decode session or a single
// super-block's worker goroutine stay correlated even when other
// goroutines are interleaving their own output.
type ScopedLogger struct {
	logger *Logger
	fields []Field
}

// Scoped returns a logger that appends fields to every message it logs,
// in addition to l's own.
func (l *Logger) Scoped(fields ...Field) *ScopedLogger {
	return &ScopedLogger{logger: l, fields: fields}
}

// With returns a ScopedLogger with additional fields appended to s's own.
func (s *ScopedLogger) With(fields ...Field) *ScopedLogger {
	combined := make([]Field, 0, len(s.fields)+len(fields))
	combined = append(combined, s.fields...)
	combined = append(combined, fields...)
	return &ScopedLogger{logger: s.logger, fields: combined}
}

func (s *ScopedLogger) log(level Level, format string, args ...interface{}) {
	var b strings.Builder
	fmt.Fprintf(&b, format, args...)
	for _, f := range s.fields {
		fmt.Fprintf(&b, " %s=%v", f.Key, f.Value)
	}
	s.logger.log(level, "%s", b.String())
}

// Debug logs a debug message with s's fields appended.
func (s *ScopedLogger) Debug(format string, args ...interface{}) {
	s.log(LevelDebug, format, args...)
}

// Info logs an info message with s's fields appended.
func (s *ScopedLogger) Info(format string, args ...interface{}) {
	s.log(LevelInfo, format, args...)
}

// Warn logs a warning message with s's fields appended.
func (s *ScopedLogger) Warn(format string, args ...interface{}) {
	s.log(LevelWarn, format, args...)
}

// Error logs an error message with s's fields appended.
func (s *ScopedLogger) Error(format string, args ...interface{}) {
	s.log(LevelError, format, args...)
}

// Session returns a ScopedLogger for the default logger, tagged with
// fields. internal/container uses this to give every super-block log
// line from one encode/decode call a shared session id.
func Session(fields ...Field) *ScopedLogger {
	return Default().Scoped(fields...)
}

// Package-level convenience functions

// SetLevel sets the default logger's level
func SetLevel(level Level) {
	Default().SetLevel(level)
}

// SetLevelFromString sets the default logger's level from a string
func SetLevelFromString(levelStr string) {
	Default().SetLevelFromString(levelStr)
}

// Debug logs a debug message to the default logger
func Debug(format string, args ...interface{}) {
	Default().Debug(format, args...)
}

// Info logs an info message to the default logger
func Info(format string, args ...interface{}) {
	Default().Info(format, args...)
}

// Warn logs a warning message to the default logger
func Warn(format string, args ...interface{}) {
	Default().Warn(format, args...)
}

// Error(format string, args ...interface{}) logs an error message to the default logger
func Error(format string, args ...interface{}) {
	Default().Error(format, args...)
}
