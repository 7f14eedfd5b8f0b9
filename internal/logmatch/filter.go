package logmatch

import "strings"

// filterSetupEcho removes the job runner's echo of its own configuration
// from captured output so it cannot satisfy log assertions.
//
// A banner line naming the job file (a "Job file:" path under /tests/) or a
// "Job Setup" title starts a skip region. Inside it, indented key:value
// lines and comment lines are dropped; the first line of any other shape
// ends the region and is kept. Blank lines and separator lines (leading
// '=' or '-', which covers both dividers and YAML "- name:" entries) pass
// through unchanged and never alter the region state.
func filterSetupEcho(output string) string {
	lines := strings.Split(output, "\n")
	filtered := make([]string, 0, len(lines))

	skipping := false
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		if trimmed == "" || strings.HasPrefix(trimmed, "=") || strings.HasPrefix(trimmed, "-") {
			filtered = append(filtered, line)
			continue
		}

		if (strings.Contains(line, "Job file:") && strings.Contains(line, "/tests/")) ||
			strings.Contains(line, "Job Setup") {
			skipping = true
			continue
		}

		if skipping {
			indentedKV := strings.HasPrefix(line, " ") && strings.Contains(trimmed, ":")
			if indentedKV || strings.HasPrefix(trimmed, "#") {
				continue
			}
			skipping = false
		}

		filtered = append(filtered, line)
	}

	return strings.Join(filtered, "\n")
}
