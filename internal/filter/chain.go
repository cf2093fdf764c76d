package filter

import (
	"github.com/ahmadachkar-boop/condlab/internal/domain"
)

// Filter determines if an event should be included
type Filter interface {
	// Match returns true if the event passes the filter
	Match(ev *domain.EventRecord) bool
}

// Chain combines multiple filters (all must pass)
type Chain struct {
	filters []Filter
}

// NewChain creates a filter chain from multiple filters
func NewChain(filters ...Filter) *Chain {
	return &Chain{filters: filters}
}

// Match returns true only if all filters pass
func (c *Chain) Match(ev *domain.EventRecord) bool {
	for _, f := range c.filters {
		if !f.Match(ev) {
			return false
		}
	}
	return true
}

// Add appends a filter to the chain
func (c *Chain) Add(f Filter) {
	c.filters = append(c.filters, f)
}

// Apply returns the events that pass the chain, preserving order.
func (c *Chain) Apply(events []domain.EventRecord) []domain.EventRecord {
	if len(c.filters) == 0 {
		return events
	}
	kept := make([]domain.EventRecord, 0, len(events))
	for i := range events {
		if c.Match(&events[i]) {
			kept = append(kept, events[i])
		}
	}
	return kept
}
