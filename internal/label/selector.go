package label

import (
	"sort"
	"strings"

	"github.com/ahmadachkar-boop/condlab/internal/domain"
)

// genericLabels are placeholder tokens meaning the event carried no real
// condition information. Matched by exact, case-insensitive comparison.
var genericLabels = map[string]bool{
	"stimulus": true,
	"stim":     true,
	"trigger":  true,
	"event":    true,
	"trial":    true,
	"boundary": true,
	"response": true,
	"empty":    true,
}

// IsGenericLabel reports whether a derived label is a placeholder token.
func IsGenericLabel(label string) bool {
	return genericLabels[strings.ToLower(label)]
}

// Selector accumulates surviving labels and produces the final condition
// set: deduplicated, counted, ordered by descending count, with one
// representative original event text per label.
type Selector struct {
	order           []string
	counts          map[string]int
	representatives map[string]string
}

// NewSelector creates an empty Selector.
func NewSelector() *Selector {
	return &Selector{
		counts:          make(map[string]int),
		representatives: make(map[string]string),
	}
}

// Add records one labeled event. The first original text seen for a label
// becomes its representative.
func (s *Selector) Add(label, original string) {
	if _, seen := s.counts[label]; !seen {
		s.order = append(s.order, label)
		s.representatives[label] = original
	}
	s.counts[label]++
}

// Result builds the ConditionSet. Zero surviving labels is fatal: it returns
// a NoConditionsError carrying the skip counters so the caller can report
// why every event was dropped.
func (s *Selector) Result(totalEvents int, skipped domain.SkipCounters) (*domain.ConditionSet, error) {
	if len(s.order) == 0 {
		return nil, &domain.NoConditionsError{Skipped: skipped}
	}

	conditions := make([]domain.ConditionInfo, 0, len(s.order))
	labeled := 0
	for _, label := range s.order {
		conditions = append(conditions, domain.ConditionInfo{
			Label:          label,
			Count:          s.counts[label],
			Representative: s.representatives[label],
		})
		labeled += s.counts[label]
	}
	// Descending count; ties resolve alphabetically for stable output.
	sort.SliceStable(conditions, func(i, j int) bool {
		if conditions[i].Count != conditions[j].Count {
			return conditions[i].Count > conditions[j].Count
		}
		return conditions[i].Label < conditions[j].Label
	})

	return &domain.ConditionSet{
		Conditions:  conditions,
		TotalEvents: totalEvents,
		Labeled:     labeled,
		Skipped:     skipped,
	}, nil
}
