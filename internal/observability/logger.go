package observability

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/m-mizutani/clog"
	"golang.org/x/term"
)

// NewLogger builds the process logger. format is "console", "json", or
// "auto"; auto picks colored console output when w is a terminal and JSON
// otherwise.
func NewLogger(level, format string, w io.Writer) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}
	lvl := ParseLevel(level)

	console := format == "console"
	if format == "auto" || format == "" {
		if f, ok := w.(*os.File); ok {
			console = term.IsTerminal(int(f.Fd())) //nolint:gosec // fd fits in int
		}
	}

	var handler slog.Handler
	if console {
		handler = clog.New(
			clog.WithWriter(w),
			clog.WithLevel(lvl),
			clog.WithTimeFmt("15:04:05"),
			clog.WithSource(false),
		)
	} else {
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl})
	}
	return slog.New(handler)
}

// ParseLevel maps a level name to slog.Level, defaulting to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
