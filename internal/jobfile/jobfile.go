// Package jobfile parses Geodelity test job files.
//
// A job file is UTF-8 text with two parts. The first line may carry an
// inline execution directive: a '#' comment marker followed by JSON-or-JS
// object text controlling the expected outcome, the timeout, and log
// assertions, e.g.
//
//	# {"pass": "no", "timeout": 30, "log": ["^ERROR", "connected"]}
//
// The rest of the file (or the whole file when the first line is not a
// comment) is a YAML sequence of single-key mappings describing the module
// versions under test:
//
//	- mute:
//	    version: 1.2.0
//	- scale:
//	    ver: 2.0.1
//
// Parsing is deliberately tolerant: a malformed directive degrades to the
// default configuration and a malformed YAML body degrades to an empty
// module list. Neither case is an error, so the package exposes no error
// returns.
package jobfile

import (
	"strings"
	"time"
)

// Extension is the file name suffix that identifies job files.
const Extension = ".job"

// DefaultTimeout is the per-job wall-clock limit used when the directive
// does not specify one.
const DefaultTimeout = 300 * time.Second

// directiveMarker introduces the first-line configuration directive.
const directiveMarker = "#"

// ModuleInfo names one module/version pair from the YAML body. It is
// informational only and never affects pass/fail evaluation.
type ModuleInfo struct {
	Name    string
	Version string
}

// Config is the per-job execution configuration derived from a job file.
// It is immutable after construction.
type Config struct {
	// PassExpected reports whether the job is expected to exit zero.
	PassExpected bool

	// Timeout is the wall-clock limit for the job's subprocess.
	Timeout time.Duration

	// LogPatterns are the patterns that must be found in the job's
	// combined output. Empty means no log assertions.
	LogPatterns []string

	// Modules lists the module versions named in the YAML body.
	Modules []ModuleInfo
}

// Default returns the configuration used when a job file carries no
// directive or the directive cannot be parsed: pass expected, 300 second
// timeout, no log patterns.
func Default() Config {
	return Config{
		PassExpected: true,
		Timeout:      DefaultTimeout,
	}
}

// Parse derives the full Config from raw job file content: the first-line
// directive (when present) and the YAML module list. It never fails; any
// unparsable piece falls back to its default.
func Parse(content []byte) Config {
	text := string(content)

	first, _, _ := strings.Cut(text, "\n")

	cfg := Default()
	if trimmed := strings.TrimSpace(first); strings.HasPrefix(trimmed, directiveMarker) {
		cfg = ParseDirective(strings.TrimPrefix(trimmed, directiveMarker))
	}

	cfg.Modules = ExtractModules(text)
	return cfg
}
