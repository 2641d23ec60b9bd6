package log

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/orsinium-labs/enum"
)

// Level is the minimum severity a Logger writes.
type Level enum.Member[string]

var (
	LevelDebug = Level{Value: "debug"}
	LevelInfo  = Level{Value: "info"}
	LevelWarn  = Level{Value: "warn"}
	LevelError = Level{Value: "error"}

	Levels = enum.New(LevelDebug, LevelInfo, LevelWarn, LevelError)
)

// ParseLevel returns the Level matching name.
func ParseLevel(name string) (Level, error) {
	level := Levels.Parse(name)
	if level == nil {
		return Level{}, fmt.Errorf(
			"invalid log level, valid values are: %s",
			strings.Join(Levels.Values(), ", "),
		)
	}
	return *level, nil
}

func (l Level) slogLevel() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelInfo:
		return slog.LevelInfo
	case LevelError:
		return slog.LevelError
	}
	return slog.LevelWarn
}
