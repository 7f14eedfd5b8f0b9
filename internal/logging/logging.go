// Package logging provides gdtest's logging infrastructure built on
// charmbracelet/log.
//
// It wraps charmbracelet/log in a small factory with component prefixes,
// level configuration, and stderr-only output. Stdout stays clean for the
// exit-code-driven callers that script gdtest.
//
// Usage:
//
//	// During CLI initialization (PersistentPreRun):
//	logging.Setup(verbose, quiet, jsonFormat)
//
//	// In each package:
//	var logger = logging.New("runner")
//	logger.Info("running jobs", "dir", testsDir)
//
// Setup must be called before New: charmbracelet/log child loggers copy
// the default logger's state at creation time, so later Setup calls do not
// propagate to existing children.
package logging

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// Level aliases for charmbracelet/log levels, re-exported so consumers do
// not need to import charmbracelet/log directly.
const (
	LevelDebug = log.DebugLevel
	LevelInfo  = log.InfoLevel
	LevelWarn  = log.WarnLevel
	LevelError = log.ErrorLevel
	LevelFatal = log.FatalLevel
)

// Setup configures the global logging defaults. Call once during CLI
// initialization.
//
// verbose selects Debug level, quiet selects Error level; quiet wins when
// both are set so that scripted runs stay silent regardless of other
// flags. jsonFormat switches to NDJSON output for CI log aggregation.
func Setup(verbose, quiet, jsonFormat bool) {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	if quiet {
		level = log.ErrorLevel
	}

	log.SetLevel(level)
	log.SetOutput(os.Stderr)

	if jsonFormat {
		log.SetFormatter(log.JSONFormatter)
	} else {
		log.SetFormatter(log.TextFormatter)
	}
}

// New creates a logger with the given component prefix. The logger
// inherits the global level and output settings current at creation time.
// An empty component produces a logger without a prefix.
func New(component string) *log.Logger {
	return log.WithPrefix(component)
}

// SetOutput overrides the output writer for the default logger. Primarily
// useful in tests, where output is captured with a bytes.Buffer; restore
// the original writer with t.Cleanup.
func SetOutput(w io.Writer) {
	log.SetOutput(w)
}
