package runner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvironment_Environ(t *testing.T) {
	env := &Environment{
		GeodelityDir: "/opt/geodelity",
		GrunDir:      "scratch/grun",
	}

	environ := env.Environ()

	assert.Contains(t, environ, "GEODELITY_DIR=/opt/geodelity")

	abs, err := filepath.Abs("scratch/grun")
	require.NoError(t, err)
	assert.Contains(t, environ, "GRUN_DIR="+abs)

	for _, kv := range environ {
		assert.NotContains(t, kv, EnvLoggingLevel+"=DEBUG", "debug flag must stay unset by default")
	}
}

func TestEnvironment_Environ_Flags(t *testing.T) {
	env := &Environment{
		GeodelityDir: "/opt/geodelity",
		GrunDir:      "/tmp/grun",
		Debug:        true,
		KeepJobFiles: true,
	}

	environ := env.Environ()

	assert.Contains(t, environ, "GDLOGGING_LEVEL=DEBUG")
	assert.Contains(t, environ, "KEEPJOBFILES=true")
}

func TestEnvironment_Environ_InheritsProcessEnv(t *testing.T) {
	t.Setenv("GDTEST_ENV_PROBE", "inherited")

	env := &Environment{GeodelityDir: "/opt/geodelity", GrunDir: "/tmp/grun"}

	assert.Contains(t, env.Environ(), "GDTEST_ENV_PROBE=inherited")
}

func TestEnvironment_Validate(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "etc"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "bin"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "etc", "env.sh"), []byte("#!/bin/bash\n"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "bin", "grun.sh"), []byte("#!/bin/bash\n"), 0o755))

	env := &Environment{GeodelityDir: root, GrunDir: t.TempDir()}
	assert.NoError(t, env.Validate())
}

func TestEnvironment_Validate_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		prepare func(t *testing.T) string // returns GeodelityDir
		wantIn  string
	}{
		{
			name:    "empty root",
			prepare: func(t *testing.T) string { return "" },
			wantIn:  "no runtime root",
		},
		{
			name: "root does not exist",
			prepare: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "nope")
			},
			wantIn: "nope",
		},
		{
			name: "env script missing",
			prepare: func(t *testing.T) string {
				root := t.TempDir()
				require.NoError(t, os.MkdirAll(filepath.Join(root, "bin"), 0o755))
				require.NoError(t, os.WriteFile(filepath.Join(root, "bin", "grun.sh"), []byte(""), 0o755))
				return root
			},
			wantIn: "env.sh",
		},
		{
			name: "run script missing",
			prepare: func(t *testing.T) string {
				root := t.TempDir()
				require.NoError(t, os.MkdirAll(filepath.Join(root, "etc"), 0o755))
				require.NoError(t, os.WriteFile(filepath.Join(root, "etc", "env.sh"), []byte(""), 0o755))
				return root
			},
			wantIn: "grun.sh",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			env := &Environment{GeodelityDir: tt.prepare(t), GrunDir: t.TempDir()}
			err := env.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrRuntimeNotFound)
			assert.Contains(t, err.Error(), tt.wantIn)
		})
	}
}
