package log

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New returns the process logger. Output is a human-readable console
// writer by default; set PIPEDAG_LOG=json for structured JSON, e.g.
// when running under a log collector. Logs go to stderr so they never
// mix with the summary output on stdout.
func New() *zerolog.Logger {
	var output io.Writer
	if os.Getenv("PIPEDAG_LOG") == "json" {
		output = os.Stderr
	} else {
		output = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "2006-01-02T15:04:05.999Z07:00"}
	}

	zerolog.TimeFieldFormat = time.RFC3339Nano

	logger := zerolog.New(output).With().Timestamp().Logger()
	return &logger
}
