// Package logging configures the zerolog logger shared by the invokable CLI.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Logger is the process-wide logger. Commands take children of it via Named.
var Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()

// Config controls where and how much the CLI logs.
type Config struct {
	Level  zerolog.Level
	Output io.Writer // os.Stderr when nil
	Pretty bool      // console output instead of JSON
}

// Init replaces Logger according to cfg.
func Init(cfg Config) {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	if cfg.Pretty {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen}
	}
	Logger = zerolog.New(out).Level(cfg.Level).With().Timestamp().Logger()
}

// ParseLevel maps a --log-level value to a zerolog level, defaulting to info.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return zerolog.DebugLevel
	case "WARN", "WARNING":
		return zerolog.WarnLevel
	case "ERROR":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// Named returns a child of Logger tagged with the running command.
func Named(command string) zerolog.Logger {
	return Logger.With().Str("command", command).Logger()
}
