package runner

import (
	"time"

	"github.com/geodelity/gdtest/internal/jobfile"
	"github.com/geodelity/gdtest/internal/logmatch"
)

// Result captures everything the engine learned from one job execution.
// It is created exactly once per job file and read-only thereafter.
type Result struct {
	// JobFile is the base name of the job file.
	JobFile string

	// Status is the execution outcome.
	Status Status

	// ExpectedPass is the directive's expected outcome.
	ExpectedPass bool

	// Runtime is the elapsed wall-clock time of the subprocess. Zero when
	// the job never ran.
	Runtime time.Duration

	// TimeoutLimit is the configured wall-clock limit.
	TimeoutLimit time.Duration

	// Modules lists the module versions named by the job file.
	Modules []jobfile.ModuleInfo

	// Digest fingerprints the job file content that produced this result.
	// Empty when the file could not be read.
	Digest string

	// Stdout and Stderr hold the captured output. On timeout they hold
	// whatever was captured before the process group was killed.
	Stdout string
	Stderr string

	// ErrorMsg describes why a job timed out or errored.
	ErrorMsg string

	// LogMatch records the outcome of the job's log assertions.
	LogMatch logmatch.Result
}

// Success combines the execution outcome with the log assertions into the
// final verdict.
//
// The execution part succeeds when the status matches the expectation:
// PASS when a pass was expected, FAIL when a failure was expected. TIMEOUT
// and ERROR satisfy neither. The log part succeeds when no patterns were
// configured, or when every configured pattern matched.
func (r Result) Success() bool {
	executionOK := r.Status == StatusFail
	if r.ExpectedPass {
		executionOK = r.Status == StatusPass
	}

	logOK := true
	if r.LogMatch.HasPatterns() {
		logOK = r.LogMatch.AllMatched()
	}

	return executionOK && logOK
}
