// Package discover aggregates attribute statistics across a sample of
// events, classifies every attribute as condition-bearing, trial-specific,
// or ambiguous, and derives practice-trial patterns and value-normalization
// rules.
package discover

import (
	"go.uber.org/zap"

	"github.com/ahmadachkar-boop/condlab/internal/domain"
	"github.com/ahmadachkar-boop/condlab/internal/extract"
	"github.com/ahmadachkar-boop/condlab/internal/sample"
)

// MaxSampleEvents caps how many events feed field discovery.
const MaxSampleEvents = 500

// Heuristic confidence scoring, additive from a base of 0.5.
const (
	confidenceBase         = 0.5
	confidenceAnyGrouping  = 0.2
	confidenceIdealCount   = 0.2
	confidenceTooMany      = -0.1
	confidenceAnyExcluded  = 0.1
	idealGroupingFieldsMin = 2
	idealGroupingFieldsMax = 3
)

// Discoverer builds a Discovery from a sampled event list.
type Discoverer struct {
	log *zap.Logger
}

// New creates a Discoverer. A nil logger disables logging.
func New(log *zap.Logger) *Discoverer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Discoverer{log: log}
}

// Discover samples up to MaxSampleEvents evenly spaced events, extracts each
// with the detected format's strategy, and classifies every discovered
// attribute. The returned Discovery is complete and must be treated as
// immutable by callers; a classifier merge replaces it wholesale.
func (d *Discoverer) Discover(events []domain.EventRecord, structure domain.DetectedStructure) domain.Discovery {
	acc := newAccumulator()
	for _, i := range sample.Indices(len(events), MaxSampleEvents) {
		fields := extract.Fields(&events[i], structure.Format)
		if len(fields) == 0 {
			continue
		}
		acc.observe(fields)
	}
	names, stats := acc.freeze()

	discovery := domain.Discovery{
		Fields:     names,
		FieldStats: stats,
	}

	for _, name := range names {
		st := stats[name]
		switch Classify(name, st) {
		case domain.ClassCondition:
			discovery.GroupingFields = append(discovery.GroupingFields, name)
		case domain.ClassTrial, domain.ClassMetadata:
			discovery.ExcludeFields = append(discovery.ExcludeFields, name)
		default:
			discovery.AmbiguousFields = append(discovery.AmbiguousFields, name)
		}

		if IsPracticeField(name) {
			for _, v := range st.UniqueValues {
				if !IsMissingValue(v) {
					discovery.PracticePatterns = append(discovery.PracticePatterns, v)
				}
			}
		}
	}

	for _, name := range discovery.GroupingFields {
		if mapping := detectValueMapping(name, stats[name]); mapping != nil {
			if discovery.ValueMappings == nil {
				discovery.ValueMappings = make(map[string]map[string]string)
			}
			discovery.ValueMappings[name] = mapping
		}
	}

	discovery.Confidence = heuristicConfidence(len(discovery.GroupingFields), len(discovery.ExcludeFields))

	d.log.Debug("field discovery complete",
		zap.Int("fields", len(names)),
		zap.Strings("grouping", discovery.GroupingFields),
		zap.Strings("excluded", discovery.ExcludeFields),
		zap.Float64("confidence", discovery.Confidence))
	return discovery
}

// heuristicConfidence scores how trustworthy the heuristic classification
// looks, clamped to [0, 1].
func heuristicConfidence(numGrouping, numExcluded int) float64 {
	c := confidenceBase
	if numGrouping > 0 {
		c += confidenceAnyGrouping
	}
	switch {
	case numGrouping >= idealGroupingFieldsMin && numGrouping <= idealGroupingFieldsMax:
		c += confidenceIdealCount
	case numGrouping > idealGroupingFieldsMax:
		c += confidenceTooMany
	}
	if numExcluded > 0 {
		c += confidenceAnyExcluded
	}
	if c < 0 {
		return 0
	}
	if c > 1 {
		return 1
	}
	return c
}
