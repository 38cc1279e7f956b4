package logger

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/op/go-logging"
)

// ErrCannotOpenFile is returned by New when the log destination cannot be
// opened for writing.
var ErrCannotOpenFile = errors.New("logger: cannot open file")

const format = `---%{level}---
%{message}`

// Config describes where a Logger writes and how verbose it is.
type Config struct {
	// Path of the log file. It is created or truncated on New. Empty means
	// standard output.
	Path string
	// Level is the most verbose level that is written.
	Level Level
}

// Logger writes leveled diagnostic messages to a single destination. It is
// created explicitly with New and shut down with Close; a nil or closed
// Logger silently drops every message.
type Logger struct {
	mu     sync.Mutex
	log    *logging.Logger
	out    io.Writer
	file   *os.File
	level  Level
	closed bool
}

// New creates a Logger for cfg.
func New(cfg Config) (*Logger, error) {
	if !cfg.Level.valid() {
		return nil, fmt.Errorf("logger: invalid level %d", cfg.Level)
	}
	l := &Logger{out: os.Stdout, level: cfg.Level}
	if cfg.Path != "" {
		f, err := os.Create(cfg.Path)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrCannotOpenFile, cfg.Path, err)
		}
		l.file = f
		l.out = f
	}

	backend := logging.NewLogBackend(l.out, "", 0)
	formatted := logging.NewBackendFormatter(backend, logging.MustStringFormatter(format))
	leveled := logging.AddModuleLevel(formatted)
	leveled.SetLevel(cfg.Level.goLogging(), "")

	l.log = logging.MustGetLogger("knnq")
	l.log.SetBackend(leveled)
	return l, nil
}

// Level returns the configured verbosity.
func (l *Logger) Level() Level { return l.level }

// Close releases the destination file. Standard output is left open.
// Calling Close more than once is harmless.
func (l *Logger) Close() error {
	if l == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return nil
	}
	l.closed = true
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}

func (l *Logger) Error(msg string)   { l.located(ErrorLevel, msg) }
func (l *Logger) Warning(msg string) { l.located(WarningLevel, msg) }
func (l *Logger) Debug(msg string)   { l.located(DebugLevel, msg) }

func (l *Logger) Errorf(format string, args ...any) {
	l.located(ErrorLevel, fmt.Sprintf(format, args...))
}

func (l *Logger) Warningf(format string, args ...any) {
	l.located(WarningLevel, fmt.Sprintf(format, args...))
}

func (l *Logger) Debugf(format string, args ...any) {
	l.located(DebugLevel, fmt.Sprintf(format, args...))
}

// Info logs msg without call site information.
func (l *Logger) Info(msg string) {
	if !l.enabled(InfoLevel) {
		return
	}
	l.emit(InfoLevel, "- message: "+msg)
}

func (l *Logger) Infof(format string, args ...any) {
	l.Info(fmt.Sprintf(format, args...))
}

// Msg writes msg regardless of the configured level.
func (l *Logger) Msg(msg string) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return
	}
	fmt.Fprintf(l.out, "- message: %s\n", msg)
}

func (l *Logger) enabled(level Level) bool {
	return l != nil && level <= l.level
}

// located logs msg together with the file, function and line of the caller
// of the exported method.
func (l *Logger) located(level Level, msg string) {
	if !l.enabled(level) {
		return
	}
	file, function, line := "?", "?", 0
	if pc, f, n, ok := runtime.Caller(2); ok {
		file, line = filepath.Base(f), n
		if fn := runtime.FuncForPC(pc); fn != nil {
			function = fn.Name()
			if i := strings.LastIndex(function, "/"); i >= 0 {
				function = function[i+1:]
			}
		}
	}
	l.emit(level, fmt.Sprintf("- file: %s\n- function: %s\n- line: %d\n- message: %s", file, function, line, msg))
}

func (l *Logger) emit(level Level, text string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return
	}
	switch level {
	case ErrorLevel:
		l.log.Error(text)
	case WarningLevel:
		l.log.Warning(text)
	case InfoLevel:
		l.log.Info(text)
	case DebugLevel:
		l.log.Debug(text)
	}
}
