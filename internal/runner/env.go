package runner

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Environment variable names consumed by the external run scripts.
const (
	// EnvGeodelityDir points at the runtime installation root.
	EnvGeodelityDir = "GEODELITY_DIR"
	// EnvGrunDir points at the working directory the run script uses for
	// intermediate artifacts.
	EnvGrunDir = "GRUN_DIR"
	// EnvLoggingLevel enables debug logging inside the invoked runtime.
	EnvLoggingLevel = "GDLOGGING_LEVEL"
	// EnvKeepJobFiles tells the runtime to retain generated job artifacts.
	EnvKeepJobFiles = "KEEPJOBFILES"
)

// Relative locations of the two required entry points under the runtime root.
const (
	envScriptRel = "etc/env.sh"
	runScriptRel = "bin/grun.sh"
)

// ErrRuntimeNotFound is returned by Environment.Validate when the runtime
// root or one of its required scripts is missing.
var ErrRuntimeNotFound = errors.New("geodelity runtime not found")

// Environment describes the external runtime a batch of jobs runs against.
type Environment struct {
	// GeodelityDir is the runtime installation root, expected to contain
	// etc/env.sh and bin/grun.sh.
	GeodelityDir string

	// GrunDir is the scratch directory handed to the run script via
	// GRUN_DIR. It is made absolute before export.
	GrunDir string

	// Debug exports GDLOGGING_LEVEL=DEBUG to the invoked runtime.
	Debug bool

	// KeepJobFiles exports KEEPJOBFILES=true to the invoked runtime.
	KeepJobFiles bool
}

// EnvScript returns the path of the environment-setup script.
func (e *Environment) EnvScript() string {
	return filepath.Join(e.GeodelityDir, filepath.FromSlash(envScriptRel))
}

// RunScript returns the path of the job run script.
func (e *Environment) RunScript() string {
	return filepath.Join(e.GeodelityDir, filepath.FromSlash(runScriptRel))
}

// Environ builds the subprocess environment: the current process
// environment plus the runtime variables. The debug and keep-artifacts
// flags are only exported when enabled, leaving any inherited value
// untouched otherwise.
func (e *Environment) Environ() []string {
	env := os.Environ()

	env = append(env, EnvGeodelityDir+"="+e.GeodelityDir)

	grunDir := e.GrunDir
	if abs, err := filepath.Abs(grunDir); err == nil {
		grunDir = abs
	}
	env = append(env, EnvGrunDir+"="+grunDir)

	if e.Debug {
		env = append(env, EnvLoggingLevel+"=DEBUG")
	}
	if e.KeepJobFiles {
		env = append(env, EnvKeepJobFiles+"=true")
	}

	return env
}

// Validate checks that the runtime root exists and provides both required
// entry points. Errors wrap ErrRuntimeNotFound and name the missing path.
func (e *Environment) Validate() error {
	if e.GeodelityDir == "" {
		return fmt.Errorf("%w: no runtime root configured", ErrRuntimeNotFound)
	}
	if _, err := os.Stat(e.GeodelityDir); err != nil {
		return fmt.Errorf("%w: %s", ErrRuntimeNotFound, e.GeodelityDir)
	}
	if _, err := os.Stat(e.EnvScript()); err != nil {
		return fmt.Errorf("%w: environment script %s", ErrRuntimeNotFound, e.EnvScript())
	}
	if _, err := os.Stat(e.RunScript()); err != nil {
		return fmt.Errorf("%w: run script %s", ErrRuntimeNotFound, e.RunScript())
	}
	return nil
}
