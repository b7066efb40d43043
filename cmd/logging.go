package cmd

import (
	"io"
	"log/slog"
	"os"
	"strconv"
)

// newLogger returns the diagnostics logger: warnings only, or everything
// when debug is set by flag or by TERM_DIFF_DEBUG.
func newLogger(w io.Writer, debug bool) *slog.Logger {
	if v, err := strconv.ParseBool(os.Getenv("TERM_DIFF_DEBUG")); err == nil && v {
		debug = true
	}
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
