// Package log provides a minimal leveled debug logger for troubleshooting
// scraping, generation and persistence flows. It writes to stderr so it
// never interleaves with streamed model output on stdout.
package log

import (
	"fmt"
	"os"
	"sync/atomic"
)

type Level int

const (
	Off Level = iota
	Basic
	Detailed
	Trace
	Wire
)

var current atomic.Int32

// LevelFromInt clamps an integer (e.g. a repeated -v flag or a --debug
// value) into a valid Level.
func LevelFromInt(i int) Level {
	switch {
	case i <= 0:
		return Off
	case i >= int(Wire):
		return Wire
	default:
		return Level(i)
	}
}

func SetLevel(l Level) {
	current.Store(int32(l))
}

func CurrentLevel() Level {
	return Level(current.Load())
}

// Log writes a Basic-level message.
func Log(format string, args ...any) {
	LogAt(Basic, format, args...)
}

// LogAt writes a message if the current level is at or above the given one.
func LogAt(level Level, format string, args ...any) {
	if level == Off || CurrentLevel() < level {
		return
	}
	fmt.Fprintf(os.Stderr, format, args...)
}
