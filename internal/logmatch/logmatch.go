// Package logmatch verifies that a job's captured output contains the log
// lines its directive asserts.
//
// Patterns come in two flavours. A pattern beginning with '^' is compiled
// as a regular expression (the leading '^' included, anchoring it at the
// start of each trimmed line); anything else is a case-sensitive substring
// check. An invalid regex degrades to a substring check on the pattern with
// its leading '^' stripped.
//
// Before matching, both output streams pass through a filter that drops the
// job runner's own echo of its configuration (the "Job Setup" block), so
// asserted patterns only match real program output.
package logmatch

import (
	"regexp"
	"strings"
)

// Result partitions the configured patterns by match outcome for a single
// job execution.
type Result struct {
	// Patterns is the full input pattern list, in directive order.
	Patterns []string

	// Matched and Unmatched partition Patterns; a pattern is never in
	// both. Both preserve directive order.
	Matched   []string
	Unmatched []string

	// Details maps each pattern to the output lines it matched, in order
	// of appearance. Unmatched patterns map to an empty slice.
	Details map[string][]string
}

// HasPatterns reports whether any patterns were configured.
func (r Result) HasPatterns() bool {
	return len(r.Patterns) > 0
}

// AllMatched reports whether every configured pattern matched. It is false
// when no patterns were configured: the absence of requirements is not
// treated as full success.
func (r Result) AllMatched() bool {
	return len(r.Unmatched) == 0 && len(r.Patterns) > 0
}

// Empty returns the Result for a job with no log assertions.
func Empty() Result {
	return Result{}
}

// AllUnmatched returns a Result recording every pattern as unmatched with
// no detail lines. It is used when a job never produced usable output
// (missing runtime scripts, execution errors).
func AllUnmatched(patterns []string) Result {
	if len(patterns) == 0 {
		return Empty()
	}
	details := make(map[string][]string, len(patterns))
	for _, p := range patterns {
		details[p] = nil
	}
	return Result{
		Patterns:  append([]string(nil), patterns...),
		Unmatched: append([]string(nil), patterns...),
		Details:   details,
	}
}

// Match evaluates every pattern against the filtered, combined stdout and
// stderr of a job execution.
func Match(patterns []string, stdout, stderr string) Result {
	if len(patterns) == 0 {
		return Empty()
	}

	combined := filterSetupEcho(stdout) + "\n" + filterSetupEcho(stderr)
	lines := strings.Split(combined, "\n")

	result := Result{
		Patterns: append([]string(nil), patterns...),
		Details:  make(map[string][]string, len(patterns)),
	}

	for _, pattern := range patterns {
		matched := matchPattern(pattern, lines)
		if len(matched) > 0 {
			result.Matched = append(result.Matched, pattern)
			result.Details[pattern] = matched
		} else {
			result.Unmatched = append(result.Unmatched, pattern)
			result.Details[pattern] = nil
		}
	}
	return result
}

// matchPattern returns every non-empty trimmed line that the pattern
// matches, in order of appearance.
func matchPattern(pattern string, lines []string) []string {
	var matched []string

	if strings.HasPrefix(pattern, "^") {
		re, err := regexp.Compile(pattern)
		if err != nil {
			// Invalid regex: fall back to a substring check without
			// the anchor.
			return matchSubstring(strings.TrimPrefix(pattern, "^"), lines)
		}
		for _, line := range lines {
			trimmed := strings.TrimSpace(line)
			if trimmed != "" && re.MatchString(trimmed) {
				matched = append(matched, trimmed)
			}
		}
		return matched
	}

	return matchSubstring(pattern, lines)
}

func matchSubstring(pattern string, lines []string) []string {
	var matched []string
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed != "" && strings.Contains(trimmed, pattern) {
			matched = append(matched, trimmed)
		}
	}
	return matched
}
