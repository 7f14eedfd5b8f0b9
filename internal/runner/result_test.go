package runner

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/geodelity/gdtest/internal/logmatch"
)

func TestResult_Success_TruthTable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		status       Status
		expectedPass bool
		logMatch     logmatch.Result
		want         bool
	}{
		{
			name:         "pass expected and passed, no patterns",
			status:       StatusPass,
			expectedPass: true,
			want:         true,
		},
		{
			name:         "pass expected but failed",
			status:       StatusFail,
			expectedPass: true,
			want:         false,
		},
		{
			name:         "fail expected and failed",
			status:       StatusFail,
			expectedPass: false,
			want:         true,
		},
		{
			name:         "fail expected but passed",
			status:       StatusPass,
			expectedPass: false,
			want:         false,
		},
		{
			name:         "timeout with pass expected",
			status:       StatusTimeout,
			expectedPass: true,
			want:         false,
		},
		{
			name:         "timeout with fail expected",
			status:       StatusTimeout,
			expectedPass: false,
			want:         false,
		},
		{
			name:         "error with pass expected",
			status:       StatusError,
			expectedPass: true,
			want:         false,
		},
		{
			name:         "error with fail expected",
			status:       StatusError,
			expectedPass: false,
			want:         false,
		},
		{
			name:         "passed with all patterns matched",
			status:       StatusPass,
			expectedPass: true,
			logMatch:     logmatch.Match([]string{"ok"}, "ok\n", ""),
			want:         true,
		},
		{
			name:         "passed with one unmatched pattern",
			status:       StatusPass,
			expectedPass: true,
			logMatch:     logmatch.Match([]string{"ok", "nope"}, "ok\n", ""),
			want:         false,
		},
		{
			name:         "expected fail satisfied but patterns unmatched",
			status:       StatusFail,
			expectedPass: false,
			logMatch:     logmatch.AllUnmatched([]string{"nope"}),
			want:         false,
		},
		{
			name:         "expected fail satisfied and patterns matched",
			status:       StatusFail,
			expectedPass: false,
			logMatch:     logmatch.Match([]string{"ok"}, "ok\n", ""),
			want:         true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := Result{
				Status:       tt.status,
				ExpectedPass: tt.expectedPass,
				LogMatch:     tt.logMatch,
			}
			assert.Equal(t, tt.want, r.Success())
		})
	}
}
