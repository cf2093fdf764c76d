// Package label derives canonical condition labels from events and selects
// the final condition set used for grouping and averaging.
package label

import (
	"strings"

	"github.com/ahmadachkar-boop/condlab/internal/discover"
	"github.com/ahmadachkar-boop/condlab/internal/domain"
	"github.com/ahmadachkar-boop/condlab/internal/extract"
)

// Build derives the condition label for one event from its grouping-field
// values, in order. It is pure: the same arguments always produce the same
// label, which downstream epoch extraction relies on when it re-labels
// events instead of caching labels. An empty result means the event is
// unparseable, not an error.
func Build(ev *domain.EventRecord, structure domain.DetectedStructure, discovery *domain.Discovery, groupingFields []string) string {
	// Bare codes carry no sub-fields; the raw text is the label.
	if structure.Format == domain.FormatSimple {
		return strings.TrimSpace(ev.Type)
	}

	fields := extract.Fields(ev, structure.Format)
	if len(fields) == 0 {
		return ""
	}

	var parts []string
	for _, name := range groupingFields {
		value, ok := fields[name]
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)
		if mapped, ok := applyMapping(discovery.Mapping(name), value); ok {
			value = mapped
		}
		if discover.IsMissingValue(value) {
			continue
		}
		parts = append(parts, value)
	}
	return strings.Join(parts, "_")
}

// applyMapping resolves a raw value through a field's value-normalization
// map: letter-based keys first, then numeric-prefixed keys.
func applyMapping(mapping map[string]string, value string) (string, bool) {
	if len(mapping) == 0 {
		return "", false
	}
	lv := strings.ToLower(value)
	if out, ok := mapping[lv]; ok {
		return out, true
	}
	// Values like "1AB" resolve through their leading digits.
	if i := strings.IndexFunc(lv, func(r rune) bool { return r < '0' || r > '9' }); i > 0 {
		if out, ok := mapping[lv[:i]]; ok {
			return out, true
		}
	}
	return "", false
}
