package logger

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type Options struct {
	// Path is the log file, appended to. Empty means console on stderr.
	Path  string
	Level string
}

// New builds the process logger. It is handed down explicitly (no package
// global); the returned closer flushes the file sink and must run on exit.
//
// Every run gets a session id so interleaved runs against the same log file
// can be told apart.
func New(opts Options) (zerolog.Logger, func() error, error) {
	lvl, err := zerolog.ParseLevel(opts.Level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	var (
		w      io.Writer
		closer = func() error { return nil }
	)
	if opts.Path != "" {
		f, err := os.OpenFile(opts.Path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return zerolog.Nop(), nil, fmt.Errorf("open log file: %w", err)
		}
		w = f
		closer = f.Close
	} else {
		w = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	}

	l := zerolog.New(w).Level(lvl).With().
		Timestamp().
		Str("session", uuid.NewString()).
		Logger()

	return l, closer, nil
}
