package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/lmittmann/tint"
)

// newLogger builds the diagnostics logger. Records go to w, which is stderr
// in normal use so that command output on stdout stays machine-readable.
// format is "text" (tint console handler) or "json". Every record carries a
// per-invocation run id.
func newLogger(w io.Writer, level, format string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q", level)
	}

	var handler slog.Handler
	switch format {
	case "json":
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl})
	case "text", "":
		handler = tint.NewHandler(w, &tint.Options{
			Level:      lvl,
			TimeFormat: time.TimeOnly,
			NoColor:    w != os.Stderr || os.Getenv("NO_COLOR") != "",
		})
	default:
		return nil, fmt.Errorf("invalid log format %q (valid: text, json)", format)
	}

	return slog.New(handler).With("run", runID()), nil
}

// runID returns a time-ordered id for correlating one invocation's records.
func runID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
