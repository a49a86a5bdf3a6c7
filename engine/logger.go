package engine

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

type Level int

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

func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return LevelDebug, nil
	case "info", "":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	}
	return LevelInfo, fmt.Errorf("unknown log level %q", s)
}

// Logger writes timestamped, leveled lines.
type Logger struct {
	mu       *sync.Mutex
	out      io.Writer
	minLevel Level
	prefix   string
}

func NewLogger(out io.Writer, minLevel Level, prefix string) *Logger {
	if out == nil {
		out = os.Stdout
	}
	return &Logger{mu: &sync.Mutex{}, out: out, minLevel: minLevel, prefix: prefix}
}

// WithPrefix returns a sub-logger sharing the same output.
func (l *Logger) WithPrefix(prefix string) *Logger {
	p := prefix
	if l.prefix != "" {
		p = l.prefix + "/" + prefix
	}
	return &Logger{mu: l.mu, out: l.out, minLevel: l.minLevel, prefix: p}
}

func (l *Logger) log(level Level, format string, args ...any) {
	if l == nil || level < l.minLevel {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	prefix := ""
	if l.prefix != "" {
		prefix = "[" + l.prefix + "] "
	}
	fmt.Fprintf(l.out, "%s %s %s%s\n", time.Now().Format("15:04:05.000"), level, prefix, fmt.Sprintf(format, args...))
}

func (l *Logger) Debug(format string, args ...any) { l.log(LevelDebug, format, args...) }
func (l *Logger) Info(format string, args ...any)  { l.log(LevelInfo, format, args...) }
func (l *Logger) Warn(format string, args ...any)  { l.log(LevelWarn, format, args...) }
func (l *Logger) Error(format string, args ...any) { l.log(LevelError, format, args...) }

// Step logs the start of a named phase and returns a func that logs its end.
func (l *Logger) Step(name string) func() {
	start := time.Now()
	l.Info("starting %s", name)
	return func() {
		l.Info("finished %s (took %v)", name, time.Since(start).Round(time.Millisecond))
	}
}
