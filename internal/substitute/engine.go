// Package substitute rewrites template body text by replacing extracted
// field values with per-record replacements.
package substitute

import "strings"

// Stats counts replacements per field for diagnostics. A zero count for a
// selected field is not an error.
type Stats struct {
	Replacements map[string]int
	Total        int
}

// Substitute replaces, for each id in selected, every literal occurrence of
// original[id] in content with newValues[id]. Replacement is whole-content
// and literal: an extracted value recurring verbatim in unrelated text is
// replaced too. That collateral risk is a documented limitation of the
// literal-substitution design, not corrected here.
//
// Fields with an empty old or new value, or with old == new, are no-ops.
// Fields absent from original have no effect. When nothing applies the
// returned content is identical to the input.
func Substitute(content string, original map[string]string, selected []string, newValues map[string]string) (string, Stats) {
	stats := Stats{Replacements: make(map[string]int, len(selected))}
	for _, id := range selected {
		old := original[id]
		repl := newValues[id]
		if old == "" || repl == "" || old == repl {
			continue
		}
		n := strings.Count(content, old)
		stats.Replacements[id] = n
		if n == 0 {
			continue
		}
		content = strings.ReplaceAll(content, old, repl)
		stats.Total += n
	}
	return content, stats
}
