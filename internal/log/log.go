// Package log is the datecalc debug log. Entries are single lines of the form
//
//	15:04:05.000 [LEVEL] [category] message key=value ...
//
// appended to debug.log next to the config and republished on a broker, so
// the TUI can show the newest line in its status bar and the full tail in the
// log view. Nothing is written unless --debug or DATECALC_DEBUG turns it on;
// the terminal belongs to the TUI.
package log

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/datecalc/internal/pubsub"
)

// EnvDebug enables debug logging when set to a non-empty value.
const EnvDebug = "DATECALC_DEBUG"

// Level represents log severity.
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

// Category groups related log messages.
type Category string

const (
	CatSync     Category = "sync"     // Store sync passes
	CatLocation Category = "location" // Router and history
	CatDB       Category = "db"       // Database operations
	CatWatcher  Category = "watcher"  // File watcher events
	CatUI       Category = "ui"       // UI component updates
	CatConfig   Category = "config"   // Configuration loading/saving
	CatCache    Category = "cache"    // Cache operations
	CatTrace    Category = "trace"    // Tracing setup
)

// Logger writes key=value log lines and republishes them to listeners.
type Logger struct {
	mu       sync.Mutex
	writer   io.Writer
	enabled  bool
	minLevel Level
	broker   *pubsub.Broker[string]
}

var (
	installMu     sync.Mutex
	defaultLogger *Logger
)

// InitWithTeaLog opens path through tea.LogToFile, so Bubble Tea's own debug
// output lands in the same file, and installs it as the global logger.
func InitWithTeaLog(path string, prefix string) (func(), error) {
	f, err := tea.LogToFile(path, prefix)
	if err != nil {
		return nil, fmt.Errorf("opening debug log: %w", err)
	}
	install(newLogger(f))
	return func() { _ = f.Close() }, nil
}

// InitWriter installs a logger that writes to w. Tests use it to capture output.
func InitWriter(w io.Writer) {
	install(newLogger(w))
}

// DebugFromEnv reports whether EnvDebug asks for debug logging.
func DebugFromEnv() bool {
	return strings.TrimSpace(os.Getenv(EnvDebug)) != ""
}

func install(l *Logger) {
	installMu.Lock()
	defaultLogger = l
	installMu.Unlock()
}

func current() *Logger {
	installMu.Lock()
	defer installMu.Unlock()
	return defaultLogger
}

func newLogger(w io.Writer) *Logger {
	return &Logger{
		writer:   w,
		enabled:  true,
		minLevel: LevelDebug,
		broker:   pubsub.NewBroker[string](),
	}
}

// SetEnabled toggles logging on/off.
func SetEnabled(enabled bool) {
	if l := current(); l != nil {
		l.mu.Lock()
		l.enabled = enabled
		l.mu.Unlock()
	}
}

// SetMinLevel sets the minimum log level.
func SetMinLevel(level Level) {
	if l := current(); l != nil {
		l.mu.Lock()
		l.minLevel = level
		l.mu.Unlock()
	}
}

// Debug logs at debug level.
func Debug(cat Category, msg string, fields ...any) {
	log(LevelDebug, cat, msg, fields...)
}

// Info logs at info level.
func Info(cat Category, msg string, fields ...any) {
	log(LevelInfo, cat, msg, fields...)
}

// Warn logs at warning level.
func Warn(cat Category, msg string, fields ...any) {
	log(LevelWarn, cat, msg, fields...)
}

// Error logs at error level.
func Error(cat Category, msg string, fields ...any) {
	log(LevelError, cat, msg, fields...)
}

// ErrorErr logs at error level with err appended as the "error" field.
func ErrorErr(cat Category, msg string, err error, fields ...any) {
	log(LevelError, cat, msg, append(fields, "error", err)...)
}

func log(level Level, cat Category, msg string, fields ...any) {
	l := current()
	if l == nil {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.enabled || level < l.minLevel {
		return
	}

	entry := formatEntry(time.Now(), level, cat, msg, fields)
	if l.writer != nil {
		_, _ = io.WriteString(l.writer, entry)
	}
	if l.broker != nil {
		l.broker.Publish(pubsub.CreatedEvent, entry)
	}
}

func formatEntry(at time.Time, level Level, cat Category, msg string, fields []any) string {
	var b strings.Builder
	b.WriteString(at.Format("15:04:05.000"))
	fmt.Fprintf(&b, " [%s] [%s] %s", level, cat, msg)
	for i := 0; i < len(fields); i += 2 {
		key := fmt.Sprint(fields[i])
		if i+1 == len(fields) {
			fmt.Fprintf(&b, " %s=<missing>", key)
			break
		}
		fmt.Fprintf(&b, " %s=%s", key, formatValue(fields[i+1]))
	}
	b.WriteByte('\n')
	return b.String()
}

// formatValue renders a field value. Midnight times are calendar days and
// print as YYYY-MM-DD; strings with spaces, quotes or '=' are quoted so a
// line splits back into its fields.
func formatValue(v any) string {
	var s string
	switch v := v.(type) {
	case nil:
		return "<nil>"
	case error:
		s = v.Error()
	case time.Time:
		if v.IsZero() {
			return "-"
		}
		if v.Hour() == 0 && v.Minute() == 0 && v.Second() == 0 && v.Nanosecond() == 0 {
			return v.Format("2006-01-02")
		}
		return v.Format(time.RFC3339)
	case time.Duration:
		return v.String()
	case string:
		s = v
	default:
		s = fmt.Sprint(v)
	}
	if s == "" || strings.ContainsAny(s, " \t\n\"=") {
		return strconv.Quote(s)
	}
	return s
}

// LogEvent is a pubsub event containing a log entry.
type LogEvent = pubsub.Event[string]

// LogListener wraps a continuous listener for log events.
type LogListener = pubsub.ContinuousListener[string]

// NewListener subscribes to log entries until ctx is cancelled.
// It returns nil when no logger is installed.
func NewListener(ctx context.Context) *LogListener {
	l := current()
	if l == nil || l.broker == nil {
		return nil
	}
	return pubsub.NewContinuousListener[string](ctx, l.broker)
}
