package jobfile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractModules_Basic(t *testing.T) {
	t.Parallel()

	text := `- mute:
    version: 1.2.0
- scale:
    version: 2.0.1
`
	modules := ExtractModules(text)

	assert.Equal(t, []ModuleInfo{
		{Name: "mute", Version: "1.2.0"},
		{Name: "scale", Version: "2.0.1"},
	}, modules)
}

func TestExtractModules_SkipsDirectiveLine(t *testing.T) {
	t.Parallel()

	text := `# {"pass":"yes","timeout":5}
- attrcalc:
    version: 0.9.0
`
	modules := ExtractModules(text)

	assert.Equal(t, []ModuleInfo{{Name: "attrcalc", Version: "0.9.0"}}, modules)
}

func TestExtractModules_VerFallbackAndUnknown(t *testing.T) {
	t.Parallel()

	text := `- segyinput:
    ver: 3.1.0
- segyoutput:
    threads: 4
`
	modules := ExtractModules(text)

	assert.Equal(t, []ModuleInfo{
		{Name: "segyinput", Version: "3.1.0"},
		{Name: "segyoutput", Version: "unknown"},
	}, modules)
}

func TestExtractModules_VersionPreferredOverVer(t *testing.T) {
	t.Parallel()

	text := `- mute:
    version: 2.0.0
    ver: 1.0.0
`
	modules := ExtractModules(text)

	assert.Equal(t, []ModuleInfo{{Name: "mute", Version: "2.0.0"}}, modules)
}

func TestExtractModules_NumericVersionStringified(t *testing.T) {
	t.Parallel()

	text := `- scale:
    version: 2
`
	modules := ExtractModules(text)

	assert.Equal(t, []ModuleInfo{{Name: "scale", Version: "2"}}, modules)
}

func TestExtractModules_NonMappingEntriesSkipped(t *testing.T) {
	t.Parallel()

	text := `- mute: just-a-string
- scale:
    version: 1.0.0
`
	modules := ExtractModules(text)

	assert.Equal(t, []ModuleInfo{{Name: "scale", Version: "1.0.0"}}, modules)
}

func TestExtractModules_FailuresYieldEmpty(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
	}{
		{name: "empty input", text: ""},
		{name: "malformed yaml", text: ":\n  - ["},
		{name: "document is a mapping not a sequence", text: "mute:\n  version: 1.0.0\n"},
		{name: "document is a scalar", text: "hello\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Empty(t, ExtractModules(tt.text))
		})
	}
}
