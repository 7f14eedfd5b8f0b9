package jobfile

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	// reArrayLiteral matches non-nested [...] literals so their contents
	// can be protected from key quoting.
	reArrayLiteral = regexp.MustCompile(`\[[^\[\]]*\]`)

	// reBareKey matches bare identifier keys followed by a colon.
	reBareKey = regexp.MustCompile(`(\w+):`)

	// reBareYesNo matches unquoted yes/no values before a comma or a
	// closing brace.
	reBareYesNo = regexp.MustCompile(`:\s*(yes|no)(\s*[,}])`)

	// reBareTitleBool matches title-cased True/False values before a comma
	// or a closing brace.
	reBareTitleBool = regexp.MustCompile(`:\s*(True|False)(\s*[,}])`)
)

// normalizeDirective rewrites a JavaScript-object-literal-like directive
// into valid JSON text. The stages run in a fixed order:
//
//  1. Extract [...] array literals and replace them with placeholders, so
//     identifiers inside arrays are not mistaken for object keys.
//  2. Quote bare identifier keys (key: -> "key":).
//  3. Quote bare yes/no values (they become the string literals "yes"/"no").
//  4. Lower-case bare True/False so they parse as JSON booleans.
//  5. Restore the protected array literals verbatim.
//
// The result is not guaranteed to be valid JSON; the caller re-attempts
// parsing and falls back to the default configuration on failure.
func normalizeDirective(text string) string {
	text = strings.TrimSpace(text)

	// Stage 1: protect array literals.
	arrays := make(map[string]string)
	counter := 0
	text = reArrayLiteral.ReplaceAllStringFunc(text, func(match string) string {
		placeholder := fmt.Sprintf("__ARRAY_%d__", counter)
		arrays[placeholder] = match
		counter++
		return placeholder
	})

	// Stage 2: quote bare keys.
	text = reBareKey.ReplaceAllString(text, `"$1":`)

	// Stage 3: quote bare yes/no values.
	text = reBareYesNo.ReplaceAllString(text, `: "$1"$2`)

	// Stage 4: lower-case True/False.
	text = reBareTitleBool.ReplaceAllStringFunc(text, func(match string) string {
		sub := reBareTitleBool.FindStringSubmatch(match)
		return `: ` + strings.ToLower(sub[1]) + sub[2]
	})

	// Stage 5: restore array literals.
	for placeholder, original := range arrays {
		text = strings.ReplaceAll(text, placeholder, original)
	}

	return text
}
