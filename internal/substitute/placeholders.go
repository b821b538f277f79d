package substitute

import (
	"regexp"

	"github.com/aescanero/dago-node-preview/internal/variables"
)

var placeholderPattern = regexp.MustCompile(
	`\{\{\{` + space + `*([A-Za-z_][A-Za-z0-9_]*)` + space + `*\}\}\}` +
		`|\{\{` + space + `*([A-Za-z_][A-Za-z0-9_]*)` + space + `*\}\}`,
)

// Placeholders returns the distinct keys referenced by template, in order of
// first occurrence.
func Placeholders(template string) []string {
	matches := placeholderPattern.FindAllStringSubmatch(template, -1)
	seen := make(map[string]struct{}, len(matches))
	keys := make([]string, 0, len(matches))

	for _, m := range matches {
		key := m[1]
		if key == "" {
			key = m[2]
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		keys = append(keys, key)
	}

	return keys
}

// Unresolved returns the placeholder keys of template that vars does not
// define. Those placeholders survive rendering verbatim.
func Unresolved(template string, vars *variables.Map) []string {
	missing := make([]string, 0)
	for _, key := range Placeholders(template) {
		if !vars.Has(key) {
			missing = append(missing, key)
		}
	}
	return missing
}
