package extract

import "github.com/ahmadachkar-boop/condlab/internal/domain"

// Record extracts all of an event's named attributes except the fixed basic
// bookkeeping set, converting each value to canonical text.
func Record(ev *domain.EventRecord) map[string]string {
	if len(ev.Attrs) == 0 {
		return nil
	}
	fields := make(map[string]string, len(ev.Attrs))
	for _, attr := range ev.Attrs {
		if IsBasicAttr(attr.Name) {
			continue
		}
		fields[attr.Name] = CanonicalText(attr.Value)
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}
