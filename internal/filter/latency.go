package filter

import (
	"github.com/ahmadachkar-boop/condlab/internal/domain"
)

// LatencyFilter keeps events inside a latency window. A zero Max means no
// upper bound.
type LatencyFilter struct {
	min float64
	max float64
}

// NewLatencyFilter creates a latency window filter
func NewLatencyFilter(min, max float64) *LatencyFilter {
	return &LatencyFilter{min: min, max: max}
}

// Match returns true if the event latency falls inside the window
func (f *LatencyFilter) Match(ev *domain.EventRecord) bool {
	if ev.Latency < f.min {
		return false
	}
	if f.max > 0 && ev.Latency > f.max {
		return false
	}
	return true
}
