// Package runner executes Geodelity test jobs against an installed runtime
// and evaluates their results.
//
// Each job file is run by sourcing the runtime's environment script and
// invoking its run script with the job's base name, from the job file's
// directory, under the timeout its directive configures. The captured
// output is then checked against the directive's log assertions.
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/geodelity/gdtest/internal/jobfile"
	"github.com/geodelity/gdtest/internal/logmatch"
)

// Logger is the minimal logging interface the runner needs. It is
// satisfied by *log.Logger from charmbracelet/log. A nil Logger silently
// discards messages.
type Logger interface {
	Debug(msg interface{}, keyvals ...interface{})
	Info(msg interface{}, keyvals ...interface{})
}

// Engine runs individual test jobs in a fixed runtime environment.
type Engine struct {
	env    *Environment
	logger Logger
}

// NewEngine creates an Engine for the given runtime environment. The
// logger may be nil.
func NewEngine(env *Environment, logger Logger) *Engine {
	return &Engine{env: env, logger: logger}
}

// Run executes the job file at jobPath and returns its Result. Run never
// returns an error: configuration problems degrade to the default job
// configuration, and execution problems are reported through the Result's
// status. The context bounds the whole invocation; the job's own timeout
// is applied on top of it.
func (e *Engine) Run(ctx context.Context, jobPath string) Result {
	content, readErr := os.ReadFile(jobPath)

	cfg := jobfile.Default()
	digest := ""
	if readErr == nil {
		cfg = jobfile.Parse(content)
		digest = jobfile.Digest(content)
	}

	base := filepath.Base(jobPath)

	e.debug("running job",
		"job", base,
		"digest", digest,
		"timeout", cfg.Timeout,
		"expected_pass", cfg.PassExpected,
		"log_patterns", len(cfg.LogPatterns),
	)

	if _, err := os.Stat(e.env.EnvScript()); err != nil {
		return e.scriptMissing(base, cfg, digest,
			fmt.Sprintf("environment script not found: %s", e.env.EnvScript()))
	}
	if _, err := os.Stat(e.env.RunScript()); err != nil {
		return e.scriptMissing(base, cfg, digest,
			fmt.Sprintf("run script not found: %s", e.env.RunScript()))
	}

	command := fmt.Sprintf("source %q && %q %q", e.env.EnvScript(), e.env.RunScript(), base)

	e.debug("job environment",
		"command", command,
		EnvGeodelityDir, e.env.GeodelityDir,
		EnvGrunDir, e.env.GrunDir,
		"debug", e.env.Debug,
		"keep_job_files", e.env.KeepJobFiles,
	)

	runCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, "bash", "-c", command)
	cmd.Dir = filepath.Dir(jobPath)
	cmd.Env = e.env.Environ()

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	setProcGroup(cmd)

	start := time.Now()
	runErr := cmd.Run()
	runtime := time.Since(start)

	result := Result{
		JobFile:      base,
		ExpectedPass: cfg.PassExpected,
		Runtime:      runtime,
		TimeoutLimit: cfg.Timeout,
		Modules:      cfg.Modules,
		Digest:       digest,
		Stdout:       stdout.String(),
		Stderr:       stderr.String(),
	}

	switch {
	case errors.Is(runCtx.Err(), context.DeadlineExceeded):
		// The process group was killed at the deadline. Whatever output
		// was captured up to that point is still subject to matching.
		result.Status = StatusTimeout
		result.ErrorMsg = fmt.Sprintf("test timed out after %s", cfg.Timeout)
		result.LogMatch = logmatch.Match(cfg.LogPatterns, result.Stdout, result.Stderr)

	case runErr == nil:
		result.Status = StatusPass
		result.LogMatch = logmatch.Match(cfg.LogPatterns, result.Stdout, result.Stderr)

	default:
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) && runCtx.Err() == nil {
			result.Status = StatusFail
			result.LogMatch = logmatch.Match(cfg.LogPatterns, result.Stdout, result.Stderr)
		} else {
			// Spawn failure or external cancellation: no reliable output
			// exists, so matching is skipped and all patterns count as
			// unmatched.
			result.Status = StatusError
			result.ErrorMsg = runErr.Error()
			result.Stdout = ""
			result.Stderr = ""
			result.LogMatch = logmatch.AllUnmatched(cfg.LogPatterns)
		}
	}

	e.debug("job finished",
		"job", base,
		"status", result.Status,
		"runtime", result.Runtime,
		"success", result.Success(),
	)

	return result
}

// scriptMissing builds the ERROR result for a job whose runtime entry
// points are absent. Nothing executed, so every configured pattern is
// recorded as unmatched.
func (e *Engine) scriptMissing(base string, cfg jobfile.Config, digest, msg string) Result {
	return Result{
		JobFile:      base,
		Status:       StatusError,
		ExpectedPass: cfg.PassExpected,
		Runtime:      0,
		TimeoutLimit: cfg.Timeout,
		Modules:      cfg.Modules,
		Digest:       digest,
		ErrorMsg:     msg,
		LogMatch:     logmatch.AllUnmatched(cfg.LogPatterns),
	}
}

func (e *Engine) debug(msg interface{}, keyvals ...interface{}) {
	if e.logger != nil {
		e.logger.Debug(msg, keyvals...)
	}
}
