// Package logging provides category-based file logging for marquee.
// The TUI owns the terminal, so diagnostics are never printed to it;
// they go to rotating files under the log directory, one file per
// category. Logging is off unless enabled in the config, and every
// call is a cheap no-op while it is off.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Category identifies a log stream. Each category writes to its own file.
type Category string

const (
	CategoryUI     Category = "ui"     // event loop, key handling, view state
	CategoryTMDB   Category = "tmdb"   // API requests and responses
	CategoryConfig Category = "config" // config resolution and validation
)

// Log levels
const (
	LevelDebug = 0
	LevelInfo  = 1
	LevelWarn  = 2
	LevelError = 3
)

// Options configures the logging system. Callers map their own config
// onto it so this package has no config dependency of its own.
type Options struct {
	Enabled    bool
	Dir        string
	Level      string // debug, info, warn, error
	MaxSizeMB  int    // per-file rotation threshold
	MaxBackups int    // rotated files kept per category
}

// Logger wraps a standard logger with category and file output.
type Logger struct {
	category Category
	logger   *log.Logger
	writer   io.WriteCloser
	enabled  bool
	level    int
}

var (
	loggers   = make(map[Category]*Logger)
	loggersMu sync.RWMutex

	stateMu   sync.Mutex
	opts      Options
	enabled   bool
	logLevel  = LevelInfo
	sessionID string
)

// Initialize sets up the log directory and the session id stamped on
// every line. Call once at startup; with Enabled false (or not called
// at all) every logger is a no-op.
func Initialize(o Options) error {
	stateMu.Lock()
	opts = o
	logLevel = levelFromString(o.Level)
	sessionID = uuid.NewString()[:8]
	if !o.Enabled || o.Dir == "" {
		enabled = false
		stateMu.Unlock()
		return nil
	}
	if err := os.MkdirAll(o.Dir, 0755); err != nil {
		enabled = false
		stateMu.Unlock()
		return fmt.Errorf("create log directory: %w", err)
	}
	enabled = true
	stateMu.Unlock()

	Get(CategoryConfig).Info("session %s started (level=%s dir=%s)", sessionID, o.Level, o.Dir)
	return nil
}

// Enabled reports whether file logging is active.
func Enabled() bool {
	stateMu.Lock()
	defer stateMu.Unlock()
	return enabled
}

// SessionID returns the short id that identifies this run in the logs.
func SessionID() string {
	stateMu.Lock()
	defer stateMu.Unlock()
	return sessionID
}

func levelFromString(s string) int {
	switch s {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// Get returns the logger for a category, creating it on first use.
// Safe to call from any goroutine.
func Get(category Category) *Logger {
	loggersMu.RLock()
	if l, ok := loggers[category]; ok {
		loggersMu.RUnlock()
		return l
	}
	loggersMu.RUnlock()

	loggersMu.Lock()
	defer loggersMu.Unlock()

	// Another goroutine may have created it between the locks.
	if l, ok := loggers[category]; ok {
		return l
	}

	stateMu.Lock()
	active := enabled
	dir := opts.Dir
	maxSize := opts.MaxSizeMB
	maxBackups := opts.MaxBackups
	level := logLevel
	session := sessionID
	stateMu.Unlock()

	if !active {
		l := &Logger{category: category, enabled: false}
		loggers[category] = l
		return l
	}

	w := &lumberjack.Logger{
		Filename:   filepath.Join(dir, string(category)+".log"),
		MaxSize:    maxSize,
		MaxBackups: maxBackups,
	}
	l := &Logger{
		category: category,
		logger:   log.New(w, "["+session+"] ", log.Ldate|log.Ltime|log.Lmicroseconds),
		writer:   w,
		enabled:  true,
		level:    level,
	}
	loggers[category] = l
	return l
}

// Std returns a standard library logger for the category, for wiring
// into code that takes a *log.Logger. Discards output when logging is
// off.
func Std(category Category) *log.Logger {
	l := Get(category)
	if !l.enabled {
		return log.New(io.Discard, "", 0)
	}
	return l.logger
}

// Debug logs at debug level
func (l *Logger) Debug(format string, args ...interface{}) {
	if !l.enabled || l.level > LevelDebug {
		return
	}
	l.logger.Printf("[DEBUG] "+format, args...)
}

// Info logs at info level
func (l *Logger) Info(format string, args ...interface{}) {
	if !l.enabled || l.level > LevelInfo {
		return
	}
	l.logger.Printf("[INFO] "+format, args...)
}

// Warn logs at warn level
func (l *Logger) Warn(format string, args ...interface{}) {
	if !l.enabled || l.level > LevelWarn {
		return
	}
	l.logger.Printf("[WARN] "+format, args...)
}

// Error logs at error level
func (l *Logger) Error(format string, args ...interface{}) {
	if !l.enabled {
		return
	}
	l.logger.Printf("[ERROR] "+format, args...)
}

// CloseAll flushes and closes every open log file. Call on shutdown.
func CloseAll() {
	loggersMu.Lock()
	defer loggersMu.Unlock()
	for _, l := range loggers {
		if l.writer != nil {
			l.writer.Close()
		}
	}
	loggers = make(map[Category]*Logger)
}

// Convenience functions for the common categories.

// UI logs an info message to the ui category
func UI(format string, args ...interface{}) {
	Get(CategoryUI).Info(format, args...)
}

// UIDebug logs a debug message to the ui category
func UIDebug(format string, args ...interface{}) {
	Get(CategoryUI).Debug(format, args...)
}

// TMDB logs an info message to the tmdb category
func TMDB(format string, args ...interface{}) {
	Get(CategoryTMDB).Info(format, args...)
}

// TMDBDebug logs a debug message to the tmdb category
func TMDBDebug(format string, args ...interface{}) {
	Get(CategoryTMDB).Debug(format, args...)
}

// Config logs an info message to the config category
func Config(format string, args ...interface{}) {
	Get(CategoryConfig).Info(format, args...)
}

// Timer measures an operation and logs its duration when stopped.
type Timer struct {
	category Category
	name     string
	start    time.Time
}

// StartTimer begins timing a named operation
func StartTimer(category Category, name string) *Timer {
	return &Timer{category: category, name: name, start: time.Now()}
}

// Stop logs the elapsed time at debug level and returns it
func (t *Timer) Stop() time.Duration {
	elapsed := time.Since(t.start)
	Get(t.category).Debug("%s took %v", t.name, elapsed)
	return elapsed
}

// StopWithThreshold logs at warn level only when the operation ran
// longer than the threshold
func (t *Timer) StopWithThreshold(threshold time.Duration) time.Duration {
	elapsed := time.Since(t.start)
	if elapsed > threshold {
		Get(t.category).Warn("%s took %v (threshold %v)", t.name, elapsed, threshold)
	}
	return elapsed
}
