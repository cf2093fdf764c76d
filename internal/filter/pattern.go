package filter

import (
	"regexp"

	"github.com/ahmadachkar-boop/condlab/internal/domain"
)

// MatchPatternFilter keeps events whose text matches a regex pattern
type MatchPatternFilter struct {
	pattern *regexp.Regexp
}

// NewMatchPatternFilter creates an inclusion filter from a pattern string
func NewMatchPatternFilter(pattern string) (*MatchPatternFilter, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	return &MatchPatternFilter{pattern: re}, nil
}

// Match returns true if the event text matches the pattern
func (f *MatchPatternFilter) Match(ev *domain.EventRecord) bool {
	if f.pattern == nil {
		return true
	}
	return f.pattern.MatchString(ev.Type)
}

// ExcludePatternFilter drops events whose text matches a regex pattern
type ExcludePatternFilter struct {
	pattern *regexp.Regexp
}

// NewExcludePatternFilter creates an exclusion filter from a pattern string
func NewExcludePatternFilter(pattern string) (*ExcludePatternFilter, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	return &ExcludePatternFilter{pattern: re}, nil
}

// Match returns true if the event text does NOT match the exclusion pattern
func (f *ExcludePatternFilter) Match(ev *domain.EventRecord) bool {
	if f.pattern == nil {
		return true
	}
	return !f.pattern.MatchString(ev.Type)
}
