package jobfile

import (
	"fmt"
	"os"

	"github.com/cespare/xxhash/v2"
)

// Digest returns a short stable fingerprint of job file content, used to
// correlate results for the same job content across runs.
func Digest(content []byte) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(content))
}

// ParseFile reads and parses the job file at path. An unreadable file
// yields the default configuration, mirroring the tolerance of Parse.
func ParseFile(path string) Config {
	content, err := os.ReadFile(path)
	if err != nil {
		return Default()
	}
	return Parse(content)
}
