package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const defaultLogFile = "tmux-overview.log"

var (
	mu           sync.Mutex
	traceEnabled bool
	logPath      = defaultLogFile
	out          io.WriteCloser
	logger       = zerolog.Nop()
)

func init() {
	zerolog.TimeFieldFormat = time.RFC3339Nano
}

// Error writes err to the shared log file. Nil errors are ignored.
func Error(err error) {
	if err == nil {
		return
	}
	mu.Lock()
	defer mu.Unlock()
	if !ensureOpen() {
		return
	}
	logger.Error().Err(err).Msg("error")
}

// Warn records a non-fatal condition alongside a short message.
func Warn(msg string, err error) {
	mu.Lock()
	defer mu.Unlock()
	if !ensureOpen() {
		return
	}
	evt := logger.Warn()
	if err != nil {
		evt = evt.Err(err)
	}
	evt.Msg(msg)
}

// SetTraceEnabled toggles emission of structured trace entries.
func SetTraceEnabled(enabled bool) {
	mu.Lock()
	traceEnabled = enabled
	mu.Unlock()
}

// TraceEnabled reports whether trace entries are written.
func TraceEnabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return traceEnabled
}

// Trace appends a structured entry to the shared log when tracing is enabled.
func Trace(event string, payload interface{}) {
	mu.Lock()
	defer mu.Unlock()
	if !traceEnabled || !ensureOpen() {
		return
	}
	evt := logger.Debug().Str("event", event)
	if payload != nil {
		evt = evt.Interface("payload", payload)
	}
	evt.Msg("trace")
}

// Configure sets the log destination. Empty values fall back to the default
// path. Directories are created automatically when missing.
func Configure(path string) {
	mu.Lock()
	defer mu.Unlock()
	closeLocked()
	if strings.TrimSpace(path) == "" {
		logPath = defaultLogFile
		return
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "unable to create log directory: %v\n", err)
		logPath = defaultLogFile
		return
	}
	logPath = path
}

// SetOutput routes log entries to w instead of the log file.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	closeLocked()
	out = nopCloser{w}
	logger = zerolog.New(w).With().Timestamp().Logger()
}

// Close releases the log file handle.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	closeLocked()
}

func ensureOpen() bool {
	if out != nil {
		return true
	}
	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging failed: %v\n", err)
		return false
	}
	out = f
	logger = zerolog.New(f).With().Timestamp().Logger()
	return true
}

func closeLocked() {
	if out != nil {
		_ = out.Close()
	}
	out = nil
	logger = zerolog.Nop()
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
