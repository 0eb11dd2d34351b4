// Package log is a small leveled logger writing to stderr.
package log

import (
	"io"
	stdlog "log"
	"os"
	"strings"
	"sync"
)

type Level int

const (
	Debug Level = iota
	Info
	Warn
	Error
)

// EnvLevel overrides the configured level when set.
const EnvLevel = "TODO_LOG_LEVEL"

var (
	mu      sync.Mutex
	current = Warn
	logger  = stdlog.New(os.Stderr, "", stdlog.LstdFlags)
)

func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return Debug
	case "info":
		return Info
	case "warn", "warning", "":
		return Warn
	case "err", "error":
		return Error
	default:
		return Warn
	}
}

func (l Level) String() string {
	switch l {
	case Debug:
		return "debug"
	case Info:
		return "info"
	case Warn:
		return "warn"
	default:
		return "error"
	}
}

func SetLevel(l Level) {
	mu.Lock()
	defer mu.Unlock()
	current = l
}

func CurrentLevel() Level {
	mu.Lock()
	defer mu.Unlock()
	return current
}

// SetOutput redirects log lines, e.g. to a test buffer.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	logger.SetOutput(w)
}

func logf(l Level, tag, format string, v ...any) {
	mu.Lock()
	defer mu.Unlock()
	if current <= l {
		logger.Printf(tag+format, v...)
	}
}

func Debugf(format string, v ...any) { logf(Debug, "[DEBUG] ", format, v...) }
func Infof(format string, v ...any)  { logf(Info, "[INFO] ", format, v...) }
func Warnf(format string, v ...any)  { logf(Warn, "[WARN] ", format, v...) }
func Errorf(format string, v ...any) { logf(Error, "[ERROR] ", format, v...) }

// Init sets the level from the configured value, letting TODO_LOG_LEVEL win.
func Init(level string) {
	if env := os.Getenv(EnvLevel); env != "" {
		level = env
	}
	SetLevel(ParseLevel(level))
}
