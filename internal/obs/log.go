// Package obs wires up structured logging for the bridge server.
// Components take a zerolog.Logger by value (as the session server and
// simulation engine do) rather than reaching for a package-global. No
// per-component field is added; every subsystem logs through the same
// root logger.
package obs

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// NewLogger builds the root logger for the process. level is parsed
// with zerolog's own level names (debug, info, warn, error); an
// unrecognized level falls back to info. json selects ndjson output;
// when false (the --log-json default), output goes through zerolog's
// console writer. There is no terminal detection.
func NewLogger(level string, json bool) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}

	var w io.Writer = os.Stderr
	if !json {
		w = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}
	}

	return zerolog.New(w).Level(lvl).With().Timestamp().Logger()
}
