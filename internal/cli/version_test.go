package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geodelity/gdtest/internal/buildinfo"
)

// resetVersionFlags resets the version command's local flag state so tests
// do not leak state between runs.
func resetVersionFlags(t *testing.T) {
	t.Helper()
	resetRootCmd(t)
	versionJSON = false
	versionCmd.Flags().VisitAll(func(f *pflag.Flag) {
		f.Changed = false
	})
}

// captureStdout redirects os.Stdout for the duration of fn and returns
// what was written.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()

	oldStdout := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w
	t.Cleanup(func() {
		os.Stdout = oldStdout
	})

	fn()

	w.Close()
	var buf bytes.Buffer
	_, _ = buf.ReadFrom(r)
	os.Stdout = oldStdout
	return buf.String()
}

func TestVersionCmd_HumanReadable(t *testing.T) {
	resetVersionFlags(t)

	rootCmd.SetArgs([]string{"version"})

	var code int
	output := captureStdout(t, func() {
		code = Execute()
	})

	assert.Equal(t, 0, code)
	assert.Contains(t, output, "gdtest v")
	assert.Contains(t, output, buildinfo.Version)
	assert.Contains(t, output, buildinfo.Commit)
}

func TestVersionCmd_JSON(t *testing.T) {
	resetVersionFlags(t)

	rootCmd.SetArgs([]string{"version", "--json"})

	var code int
	output := captureStdout(t, func() {
		code = Execute()
	})

	assert.Equal(t, 0, code)

	var info buildinfo.Info
	require.NoError(t, json.Unmarshal([]byte(output), &info))
	assert.Equal(t, buildinfo.Version, info.Version)
	assert.Equal(t, buildinfo.Commit, info.Commit)
	assert.Equal(t, buildinfo.Date, info.Date)
}
