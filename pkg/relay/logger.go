package relay

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"
)

// levelPriority orders levels for filtering; higher emits more.
var levelPriority = map[LogLevel]int{
	LogLevelSilent: 0,
	LogLevelError:  1,
	LogLevelInfo:   2,
	LogLevelDebug:  3,
}

// leveledLogger is the default Logger: line-oriented key=value output with a
// level filter. Safe for concurrent use.
type leveledLogger struct {
	mu    sync.Mutex
	out   io.Writer
	level LogLevel
}

// NewLogger creates a Logger writing to out, filtered at level.
func NewLogger(out io.Writer, level LogLevel) Logger {
	if out == nil {
		out = os.Stderr
	}

	if _, ok := levelPriority[level]; !ok {
		level = LogLevelError
	}

	return &leveledLogger{out: out, level: level}
}

// DefaultLogger returns a stderr logger at the given level.
func DefaultLogger(level LogLevel) Logger {
	return NewLogger(os.Stderr, level)
}

func (l *leveledLogger) Debug(msg string, fields map[string]interface{}) {
	l.log(LogLevelDebug, msg, fields)
}

func (l *leveledLogger) Info(msg string, fields map[string]interface{}) {
	l.log(LogLevelInfo, msg, fields)
}

// Warn shares the info filter threshold but carries its own label.
func (l *leveledLogger) Warn(msg string, fields map[string]interface{}) {
	l.logLabeled(LogLevelInfo, "warn", msg, fields)
}

func (l *leveledLogger) Error(msg string, fields map[string]interface{}) {
	l.log(LogLevelError, msg, fields)
}

func (l *leveledLogger) log(at LogLevel, msg string, fields map[string]interface{}) {
	l.logLabeled(at, string(at), msg, fields)
}

func (l *leveledLogger) logLabeled(at LogLevel, label string, msg string, fields map[string]interface{}) {
	if levelPriority[at] > levelPriority[l.level] {
		return
	}

	var builder strings.Builder

	builder.WriteString(time.Now().UTC().Format(time.RFC3339))
	builder.WriteString(" level=")
	builder.WriteString(label)
	builder.WriteString(" msg=")
	builder.WriteString(fmt.Sprintf("%q", msg))

	for _, key := range sortedKeys(fields) {
		builder.WriteString(" ")
		builder.WriteString(key)
		builder.WriteString("=")
		builder.WriteString(fmt.Sprintf("%v", fields[key]))
	}

	builder.WriteString("\n")

	l.mu.Lock()
	defer l.mu.Unlock()

	_, _ = io.WriteString(l.out, builder.String())
}

func sortedKeys(fields map[string]interface{}) []string {
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	return keys
}
