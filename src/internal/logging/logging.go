package logging

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// EnvLevel names the environment variable holding the log level.
const EnvLevel = "JSFMT_LOG_LEVEL"

// DefaultLevel keeps a normal run quiet on stderr.
const DefaultLevel = zerolog.WarnLevel

// Config captures options for New.
type Config struct {
	Level  string    // optional level ("debug", "info", ...); falls back to EnvLevel
	Output io.Writer // defaults to os.Stderr
}

// New builds the logger for one run. Output is human-readable console
// format without colour or timestamps; an unparsable level falls back to
// DefaultLevel.
func New(cfg Config) zerolog.Logger {
	level := DefaultLevel
	raw := cfg.Level
	if raw == "" {
		raw = os.Getenv(EnvLevel)
	}
	if raw != "" {
		if parsed, err := zerolog.ParseLevel(raw); err == nil {
			level = parsed
		}
	}

	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	w := zerolog.ConsoleWriter{
		Out:          out,
		NoColor:      true,
		PartsExclude: []string{zerolog.TimestampFieldName},
	}
	return zerolog.New(w).Level(level)
}
