package app

import (
	"io"
	"log/slog"
)

// newLogger builds an isolated logger writing to outW; the global logger is
// left alone. Unknown levels fall back to info and any format but json is
// text.
func newLogger(levelStr, formatStr string, outW io.Writer) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(levelStr)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}

	var h slog.Handler = slog.NewTextHandler(outW, opts)
	if formatStr == "json" {
		h = slog.NewJSONHandler(outW, opts)
	}
	return slog.New(h).With("app", "vecgraph")
}
