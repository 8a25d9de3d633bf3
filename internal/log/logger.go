// Package log provides a small leveled logger for the command-line tools.
// The level is a process-wide atomic so it can be flipped from config or a
// flag without plumbing a logger handle through every call site.
package log

import (
	"fmt"
	stdlog "log"
	"os"
	"strings"
	"sync/atomic"
)

// Level is the severity of a log message.
type Level uint32

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel converts a case-insensitive level name to a Level. Unrecognized
// names fall back to LevelInfo with ok=false.
func ParseLevel(s string) (Level, bool) {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return LevelDebug, true
	case "INFO":
		return LevelInfo, true
	case "WARN", "WARNING":
		return LevelWarn, true
	case "ERROR":
		return LevelError, true
	default:
		return LevelInfo, false
	}
}

var currentLevel atomic.Uint32

var logger = stdlog.New(os.Stderr, "", stdlog.Ldate|stdlog.Ltime|stdlog.Lmicroseconds)

func init() {
	SetLevel(LevelInfo)
}

// SetLevel sets the process-wide logging level.
func SetLevel(level Level) {
	currentLevel.Store(uint32(level))
}

// GetLevel returns the current process-wide logging level.
func GetLevel() Level {
	return Level(currentLevel.Load())
}

func emit(level Level, format string, v ...any) {
	if level < GetLevel() {
		return
	}
	logger.Printf("[%s] %s", level, fmt.Sprintf(format, v...))
}

func Debugf(format string, v ...any) { emit(LevelDebug, format, v...) }
func Infof(format string, v ...any)  { emit(LevelInfo, format, v...) }
func Warnf(format string, v ...any)  { emit(LevelWarn, format, v...) }
func Errorf(format string, v ...any) { emit(LevelError, format, v...) }

// Fatalf logs regardless of level and exits.
func Fatalf(format string, v ...any) {
	logger.Fatalf("[FATAL] %s", fmt.Sprintf(format, v...))
}
