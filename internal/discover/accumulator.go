package discover

import (
	"sort"

	"github.com/ahmadachkar-boop/condlab/internal/domain"
)

// maxSampleValues caps the short sample list kept per field.
const maxSampleValues = 5

// accumulator collects per-field value observations during the sampling
// loop. It is owned by the discovery pass and frozen into an immutable
// FieldStatistics map at the end; it is never exposed while mutable.
type accumulator struct {
	order  []string
	fields map[string]*fieldAcc
}

type fieldAcc struct {
	values   map[string]struct{}
	samples  []string
	observed int
}

func newAccumulator() *accumulator {
	return &accumulator{fields: make(map[string]*fieldAcc)}
}

// observe records one event's extracted attribute map.
func (a *accumulator) observe(fields map[string]string) {
	// Iterate names deterministically so sample lists are stable.
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		value := fields[name]
		acc, ok := a.fields[name]
		if !ok {
			acc = &fieldAcc{values: make(map[string]struct{})}
			a.fields[name] = acc
			a.order = append(a.order, name)
		}
		acc.observed++
		if _, seen := acc.values[value]; !seen {
			acc.values[value] = struct{}{}
			if len(acc.samples) < maxSampleValues {
				acc.samples = append(acc.samples, value)
			}
		}
	}
}

// freeze converts the accumulated state into field names in first-seen order
// and an immutable statistics map.
func (a *accumulator) freeze() ([]string, map[string]domain.FieldStatistics) {
	stats := make(map[string]domain.FieldStatistics, len(a.fields))
	for name, acc := range a.fields {
		unique := make([]string, 0, len(acc.values))
		for v := range acc.values {
			unique = append(unique, v)
		}
		sort.Strings(unique)

		st := domain.FieldStatistics{
			UniqueValues: unique,
			NumUnique:    len(unique),
			SampleValues: acc.samples,
			Observed:     acc.observed,
		}
		if acc.observed > 0 {
			st.Cardinality = float64(st.NumUnique) / float64(acc.observed)
		}
		stats[name] = st
	}
	names := make([]string, len(a.order))
	copy(names, a.order)
	return names, stats
}
