package logger

import (
	"fmt"
	"strings"

	"github.com/op/go-logging"
)

// Level selects which messages a Logger writes. Each level includes all
// less verbose ones.
type Level int

const (
	ErrorLevel Level = iota + 1
	WarningLevel
	InfoLevel
	DebugLevel
)

var levelNames = map[Level]string{
	ErrorLevel:   "error",
	WarningLevel: "warning",
	InfoLevel:    "info",
	DebugLevel:   "debug",
}

func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return fmt.Sprintf("Level(%d)", int(l))
}

func (l Level) valid() bool { return l >= ErrorLevel && l <= DebugLevel }

func (l Level) goLogging() logging.Level {
	switch l {
	case ErrorLevel:
		return logging.ERROR
	case WarningLevel:
		return logging.WARNING
	case InfoLevel:
		return logging.INFO
	}
	return logging.DEBUG
}

// ParseLevel converts a level name (error, warning, info, debug) into a Level.
func ParseLevel(name string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "error":
		return ErrorLevel, nil
	case "warning", "warn":
		return WarningLevel, nil
	case "info":
		return InfoLevel, nil
	case "debug":
		return DebugLevel, nil
	}
	return 0, fmt.Errorf("logger: unknown level %q", name)
}
