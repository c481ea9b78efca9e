package logging

import (
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// LogKey holds the field names shared by every component
var LogKey = struct {
	Module string
	Button string
	Track  string
	Mode   string
	Voice  string
	Port   string
	Run    string
}{
	Module: "module",
	Button: "button",
	Track:  "track",
	Mode:   "mode",
	Voice:  "voice",
	Port:   "port",
	Run:    "run",
}

const consoleTimeFormat = "15:04:05.000"

// New creates the root logger. format is "console" or "json".
func New(w io.Writer, level, format string) (*zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return nil, errors.Wrapf(err, "log level %q", level)
	}

	switch format {
	case "", "console":
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: consoleTimeFormat}
	case "json":
	default:
		return nil, errors.Errorf("unknown log format %q", format)
	}

	return ptr(zerolog.New(w).Level(lvl).With().Timestamp().Logger()), nil
}

// Module derives a logger tagged with the component name
func Module(logger *zerolog.Logger, name string) *zerolog.Logger {
	return ptr(logger.With().Str(LogKey.Module, name).Logger())
}

// Nop returns a logger that discards everything
func Nop() *zerolog.Logger {
	return ptr(zerolog.Nop())
}

func ptr[T any](v T) *T {
	return &v
}
