package cli

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/geodelity/gdtest/internal/config"
	"github.com/geodelity/gdtest/internal/logging"
	"github.com/geodelity/gdtest/internal/runner"
)

// runtimePrecision is the rounding applied to runtimes in log output.
const runtimePrecision = 100 * time.Millisecond

// runFlags holds the flag values for the run command.
type runFlags struct {
	GeodelityDir string // --geo, runtime installation root
	TestsDir     string // --tests, directory holding *.job files
	GrunDir      string // --grun, scratch dir exported as GRUN_DIR
	Jobs         int    // --jobs, batch concurrency
	Debug        bool   // --debug, export GDLOGGING_LEVEL=DEBUG
	KeepJobFiles bool   // --keepjob, export KEEPJOBFILES=true
}

// newRunCmd creates the "gdtest run" command.
func newRunCmd() *cobra.Command {
	var flags runFlags

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run all test jobs in the tests directory",
		Long: `Run every *.job file in the tests directory against the Geodelity
runtime, in lexicographic filename order. Each job's first-line directive
controls its timeout, expected outcome, and log assertions.

The exit code is 0 when every job succeeds (and when no jobs are found),
1 otherwise.`,
		Example: `  # Run with the runtime location from gdtest.toml
  gdtest run

  # Point at a runtime and a tests directory explicitly
  gdtest run --geo /opt/geodelity --tests ./tests

  # Debug logging inside the runtime, four jobs at a time
  gdtest run --debug --jobs 4`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRun(cmd, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.GeodelityDir, "geo", "g", "", "Path to the Geodelity runtime root (GEODELITY_DIR)")
	cmd.Flags().StringVar(&flags.TestsDir, "tests", "", "Directory containing *.job files (default from gdtest.toml)")
	cmd.Flags().StringVar(&flags.GrunDir, "grun", "", "Scratch directory exported as GRUN_DIR (default: grun sibling of the tests dir)")
	cmd.Flags().IntVarP(&flags.Jobs, "jobs", "j", 0, "Number of jobs to run concurrently (default 1)")
	cmd.Flags().BoolVar(&flags.Debug, "debug", false, "Enable debug logging in the invoked runtime")
	cmd.Flags().BoolVar(&flags.KeepJobFiles, "keepjob", false, "Keep generated job artifacts in the invoked runtime")

	return cmd
}

func init() {
	rootCmd.AddCommand(newRunCmd())
}

// runRun resolves configuration, validates the runtime, and executes the
// batch. It returns an error when any job is unsuccessful so the process
// exits non-zero.
func runRun(cmd *cobra.Command, flags runFlags) error {
	logger := logging.New("run")

	cfg, cfgPath, err := loadConfig()
	if err != nil {
		return err
	}
	if cfgPath != "" {
		logger.Debug("loaded config", "path", cfgPath)
	}

	// Flags override file values.
	if cmd.Flags().Changed("geo") {
		cfg.Runner.GeodelityDir = flags.GeodelityDir
	}
	if cmd.Flags().Changed("tests") {
		cfg.Runner.TestsDir = flags.TestsDir
	}
	if cmd.Flags().Changed("grun") {
		cfg.Runner.GrunDir = flags.GrunDir
	}
	if cmd.Flags().Changed("jobs") {
		cfg.Runner.Jobs = flags.Jobs
	}
	if flags.Debug {
		cfg.Runner.Debug = true
	}
	if flags.KeepJobFiles {
		cfg.Runner.KeepJobFiles = true
	}

	grunDir := cfg.Runner.GrunDir
	if grunDir == "" {
		grunDir = filepath.Join(filepath.Dir(filepath.Clean(cfg.Runner.TestsDir)), "grun")
	}

	env := &runner.Environment{
		GeodelityDir: cfg.Runner.GeodelityDir,
		GrunDir:      grunDir,
		Debug:        cfg.Runner.Debug,
		KeepJobFiles: cfg.Runner.KeepJobFiles,
	}
	if err := env.Validate(); err != nil {
		return err
	}

	engine := runner.NewEngine(env, logging.New("engine"))
	batch := runner.NewBatch(engine, cfg.Runner.Jobs, logger)

	results, err := batch.RunAll(cmd.Context(), cfg.Runner.TestsDir)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		logger.Info("no job files found", "dir", cfg.Runner.TestsDir)
		return nil
	}

	return reportResults(logger, results)
}

// loadConfig loads gdtest.toml from --config when given, otherwise by
// walking up from the working directory.
func loadConfig() (*config.Config, string, error) {
	if flagConfig != "" {
		cfg, err := config.LoadFile(flagConfig)
		if err != nil {
			return nil, flagConfig, err
		}
		return cfg, flagConfig, nil
	}
	return config.Load(".")
}

// reportResults logs each job's verdict and a final summary, returning an
// error when any job was unsuccessful.
func reportResults(logger runner.Logger, results []runner.Result) error {
	failed := 0
	for _, r := range results {
		fields := []interface{}{
			"job", r.JobFile,
			"status", string(r.Status),
			"expected_pass", r.ExpectedPass,
			"runtime", r.Runtime.Round(runtimePrecision),
		}
		if r.LogMatch.HasPatterns() {
			fields = append(fields, "patterns_matched",
				fmt.Sprintf("%d/%d", len(r.LogMatch.Matched), len(r.LogMatch.Patterns)))
		}
		if r.ErrorMsg != "" {
			fields = append(fields, "error", r.ErrorMsg)
		}

		if r.Success() {
			logger.Info("job succeeded", fields...)
		} else {
			failed++
			logger.Info("job failed", fields...)
		}
	}

	logger.Info("batch complete",
		"total", len(results),
		"succeeded", len(results)-failed,
		"failed", failed,
	)

	if failed > 0 {
		return fmt.Errorf("%d of %d job(s) failed", failed, len(results))
	}
	return nil
}
