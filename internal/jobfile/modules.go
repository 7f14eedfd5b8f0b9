package jobfile

import (
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// ExtractModules parses the YAML body of a job file into module/version
// pairs. A leading comment line (the directive) is skipped. The body is
// expected to be a sequence of single-key mappings, each mapping a module
// name to a configuration that carries a "version" field (with "ver" as a
// fallback). Entries with neither field get the version "unknown".
//
// Extraction never affects pass/fail evaluation, so any parse failure
// simply yields an empty list.
func ExtractModules(text string) []ModuleInfo {
	first, rest, _ := strings.Cut(text, "\n")
	body := text
	if strings.HasPrefix(strings.TrimSpace(first), directiveMarker) {
		body = rest
	}

	var doc []map[string]any
	if err := yaml.Unmarshal([]byte(body), &doc); err != nil {
		return nil
	}

	var modules []ModuleInfo
	for _, entry := range doc {
		// Entries are expected to hold a single key. Sort for a stable
		// order when a malformed entry carries several.
		names := make([]string, 0, len(entry))
		for name := range entry {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			conf, ok := entry[name].(map[string]any)
			if !ok {
				continue
			}
			modules = append(modules, ModuleInfo{
				Name:    name,
				Version: moduleVersion(conf),
			})
		}
	}
	return modules
}

// moduleVersion picks the version string out of a module configuration
// mapping, preferring "version" over "ver".
func moduleVersion(conf map[string]any) string {
	if v, ok := conf["version"]; ok {
		return fmt.Sprintf("%v", v)
	}
	if v, ok := conf["ver"]; ok {
		return fmt.Sprintf("%v", v)
	}
	return "unknown"
}
