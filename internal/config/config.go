// Package config loads tool-level configuration from gdtest.toml.
//
// The file is discovered by walking up from the working directory, so a
// checkout can carry one gdtest.toml at its root. CLI flags override file
// values, which override built-in defaults.
package config

// Config is the top-level configuration structure mapping to gdtest.toml.
type Config struct {
	Runner RunnerConfig `toml:"runner"`
}

// RunnerConfig maps to the [runner] section in gdtest.toml.
type RunnerConfig struct {
	// GeodelityDir is the runtime installation root (GEODELITY_DIR).
	GeodelityDir string `toml:"geodelity_dir"`

	// TestsDir is the directory holding the *.job files to run.
	TestsDir string `toml:"tests_dir"`

	// GrunDir is the scratch directory exported as GRUN_DIR. Empty means
	// "the grun sibling of TestsDir".
	GrunDir string `toml:"grun_dir"`

	// Jobs is the batch concurrency. Zero or one runs jobs sequentially.
	Jobs int `toml:"jobs"`

	// Debug exports GDLOGGING_LEVEL=DEBUG to the invoked runtime.
	Debug bool `toml:"debug"`

	// KeepJobFiles exports KEEPJOBFILES=true to the invoked runtime.
	KeepJobFiles bool `toml:"keep_job_files"`
}

// NewDefaults returns the built-in default configuration.
func NewDefaults() *Config {
	return &Config{
		Runner: RunnerConfig{
			TestsDir: "tests",
			Jobs:     1,
		},
	}
}
