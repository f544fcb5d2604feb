// Package logging builds jot's leveled stderr logger.
package logging

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"golang.org/x/term"
)

// Options holds configuration for the console logger.
type Options struct {
	Level  string
	Format string
	// Terminal reports whether the destination is an interactive terminal.
	// Piped output defaults to logfmt so scripts can parse it.
	Terminal bool
}

// New creates a logger writing to w.
func New(w io.Writer, opts Options) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           ParseLevel(opts.Level),
		Formatter:       formatter(opts.Format, opts.Terminal),
		ReportTimestamp: !opts.Terminal,
		Prefix:          "jot",
	})
}

// NewStderr creates the process logger and installs it as the package default.
func NewStderr(level, format string) *log.Logger {
	logger := New(os.Stderr, Options{
		Level:    level,
		Format:   format,
		Terminal: term.IsTerminal(int(os.Stderr.Fd())),
	})
	log.SetDefault(logger)
	return logger
}

// ParseLevel parses a level name; unknown names fall back to warn.
func ParseLevel(level string) log.Level {
	switch level {
	case "debug":
		return log.DebugLevel
	case "info":
		return log.InfoLevel
	case "warn", "warning", "":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	case "fatal":
		return log.FatalLevel
	default:
		return log.WarnLevel
	}
}

func formatter(format string, terminal bool) log.Formatter {
	switch format {
	case "json":
		return log.JSONFormatter
	case "logfmt":
		return log.LogfmtFormatter
	case "text":
		return log.TextFormatter
	}
	if terminal {
		return log.TextFormatter
	}
	return log.LogfmtFormatter
}
