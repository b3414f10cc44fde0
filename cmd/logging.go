package cmd

import (
	"io"
	"log/slog"
	"time"

	"github.com/lmittmann/tint"
)

// SetupLogging installs the default logger, writing colored records to w.
func SetupLogging(w io.Writer, verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(
		tint.NewHandler(w, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
			AddSource:  verbose,
		}),
	))
}
