package jobfile

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseDirective interprets the configuration payload that follows the
// first-line comment marker of a job file. The text is tried as strict JSON
// first; if that fails it is normalized from JS-object-literal syntax (see
// normalizeDirective) and tried again. If both attempts fail the default
// configuration is returned. ParseDirective never fails.
//
// A legacy variant of this parser lower-cased the whole directive before
// parsing and had no "log" support. That behaviour is not implemented; the
// canonical grammar is case-preserving and array-aware.
func ParseDirective(text string) Config {
	text = strings.TrimSpace(text)
	if text == "" {
		return Default()
	}

	raw, ok := decodeObject(text)
	if !ok {
		raw, ok = decodeObject(normalizeDirective(text))
	}
	if !ok {
		return Default()
	}

	return Config{
		PassExpected: directivePass(raw),
		Timeout:      directiveTimeout(raw),
		LogPatterns:  directiveLogPatterns(raw),
	}
}

// decodeObject unmarshals text into a JSON object. Non-object documents
// (arrays, scalars) are rejected.
func decodeObject(text string) (map[string]any, bool) {
	var raw map[string]any
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, false
	}
	return raw, true
}

// directivePass extracts the expected-outcome field. A string value means
// "expect pass" iff it lower-cases to "yes" or "true"; any other JSON value
// is coerced truthily. Absent means pass is expected.
func directivePass(raw map[string]any) bool {
	val, ok := raw["pass"]
	if !ok {
		return true
	}
	switch v := val.(type) {
	case string:
		lower := strings.ToLower(v)
		return lower == "yes" || lower == "true"
	case bool:
		return v
	case float64:
		return v != 0
	case []any:
		return len(v) > 0
	case map[string]any:
		return len(v) > 0
	case nil:
		return false
	default:
		return true
	}
}

// directiveTimeout extracts the timeout field in seconds. Unusable values
// fall back to DefaultTimeout.
func directiveTimeout(raw map[string]any) time.Duration {
	val, ok := raw["timeout"]
	if !ok {
		return DefaultTimeout
	}
	switch v := val.(type) {
	case float64:
		return time.Duration(int(v)) * time.Second
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return time.Duration(n) * time.Second
		}
	}
	return DefaultTimeout
}

// directiveLogPatterns extracts the log assertion patterns. A JSON array is
// taken element-wise (non-strings are stringified). A string value is first
// tried as an embedded JSON array of strings; when that fails the whole
// string becomes a single pattern.
func directiveLogPatterns(raw map[string]any) []string {
	val, ok := raw["log"]
	if !ok {
		return nil
	}
	switch v := val.(type) {
	case []any:
		return stringifyAll(v)
	case string:
		var nested []any
		if err := json.Unmarshal([]byte(v), &nested); err == nil {
			return stringifyAll(nested)
		}
		return []string{v}
	default:
		return nil
	}
}

func stringifyAll(vals []any) []string {
	out := make([]string, 0, len(vals))
	for _, v := range vals {
		if s, ok := v.(string); ok {
			out = append(out, s)
			continue
		}
		out = append(out, fmt.Sprintf("%v", v))
	}
	return out
}
