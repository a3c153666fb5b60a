// Package extract runs the field catalog's detection patterns over a
// template's body text and produces the field → value mapping.
package extract

import (
	"regexp"
	"strings"

	"github.com/ALIKZH777/dgdocs/internal/field"
)

// Result maps field ids to their extracted, normalized, accepted values.
type Result map[string]string

// combinedDates is the cross-field contract-period rule: one phrase
// supplying both the start and end date, which overrides any single-field
// matches for those two ids.
var combinedDates = regexp.MustCompile(
	`از\s*تاریخ\s*(` + field.DateToken + `)\s*(?:تا|لغایت)\s*(?:تاریخ\s*)?(` + field.DateToken + `)\s*اعتبار`)

// lineBreaks collapses structural line breaks so markup markers stay
// contiguous for the table-scoped patterns.
var lineBreaks = regexp.MustCompile(`[\r\n\t]+`)

// Extractor detects catalog fields in template content.
type Extractor struct {
	catalog *field.Catalog
}

// New creates an Extractor over an immutable catalog.
func New(c *field.Catalog) *Extractor {
	return &Extractor{catalog: c}
}

// Extract runs detection over one content blob. It is pure: re-running on
// identical content yields an identical result. Fields whose candidate is
// rejected by the catalog are simply absent.
func (e *Extractor) Extract(content string) Result {
	tableView := lineBreaks.ReplaceAllString(content, " ")
	plainView := field.StripMarkup(content)

	candidates := make(map[string]string)
	cellScoped := make(map[string]bool)
	for _, def := range e.catalog.Definitions() {
		if def.TablePattern != nil {
			if m := def.TablePattern.FindStringSubmatch(tableView); m != nil && strings.TrimSpace(m[1]) != "" {
				candidates[def.ID] = m[1]
				cellScoped[def.ID] = true
				continue
			}
		}
		for _, p := range def.Patterns {
			if m := p.FindStringSubmatch(plainView); m != nil && strings.TrimSpace(m[1]) != "" {
				candidates[def.ID] = m[1]
				break
			}
		}
	}

	if m := combinedDates.FindStringSubmatch(plainView); m != nil {
		candidates[field.StartDate] = m[1]
		candidates[field.EndDate] = m[2]
	}

	result := make(Result)
	for _, def := range e.catalog.Definitions() {
		raw, ok := candidates[def.ID]
		if !ok {
			continue
		}
		var v string
		if cellScoped[def.ID] {
			v = field.NormalizeCell(def.ID, raw)
		} else {
			v = field.Normalize(def.ID, raw)
		}
		if v != "" && def.Accept(v) {
			result[def.ID] = v
		}
	}
	return result
}
