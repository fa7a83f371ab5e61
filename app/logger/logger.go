package logger

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Init configures the global logger. format is "console" for colourised
// human-readable output or "json"; level is any zerolog level name.
func Init(level, format string) error {
	return initWriter(os.Stderr, level, format)
}

func initWriter(out io.Writer, level, format string) error {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	if lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	var w io.Writer = out
	if format != "json" {
		// Use ConsoleWriter for human-readable, colorized output in development
		w = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	zerolog.SetGlobalLevel(lvl)
	// Add a hook to include the caller's file and line number
	log.Logger = zerolog.New(w).With().Timestamp().Caller().Logger()
	return nil
}
