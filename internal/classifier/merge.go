package classifier

import "github.com/ahmadachkar-boop/condlab/internal/domain"

// Auto-mode trigger conditions: heuristics below this confidence, or more
// grouping fields than this, warrant a second opinion.
const (
	autoConfidenceThreshold = 0.7
	autoMaxGroupingFields   = 3
)

// Decision is the outcome of reconciling the heuristic discovery with an
// external classifier result.
type Decision int

const (
	// UseHeuristic keeps the heuristic discovery unchanged.
	UseHeuristic Decision = iota
	// UseExternal adopts the external classifier's recommendation.
	UseExternal
)

// ShouldInvoke reports whether the external classifier should be consulted
// at all for the given mode and heuristic outcome.
func ShouldInvoke(mode Mode, heuristicConfidence float64, numGroupingFields int) bool {
	switch mode {
	case ModeNever:
		return false
	case ModeAlways:
		return true
	default:
		return heuristicConfidence < autoConfidenceThreshold ||
			numGroupingFields > autoMaxGroupingFields
	}
}

// Decide reconciles the two sources. An invalid external result always loses.
// In always mode a valid external result wins unconditionally; in auto mode
// it wins only when its reported confidence is at least the heuristic one.
func Decide(mode Mode, heuristicConfidence, externalConfidence float64, externalValid bool) Decision {
	if !externalValid || mode == ModeNever {
		return UseHeuristic
	}
	if mode == ModeAlways {
		return UseExternal
	}
	if externalConfidence >= heuristicConfidence {
		return UseExternal
	}
	return UseHeuristic
}

// Merge produces a new Discovery that adopts the external classifier's
// grouping and exclusion fields, unions its practice patterns and value
// mappings with the heuristic ones, and records the external result. The
// input Discovery is not modified.
func Merge(heuristic domain.Discovery, external *domain.ClassifierResult) domain.Discovery {
	merged := heuristic

	merged.GroupingFields = append([]string(nil), external.GroupingFields...)
	merged.ExcludeFields = append([]string(nil), external.ExcludeFields...)
	merged.AmbiguousFields = remainingFields(heuristic.Fields, merged.GroupingFields, merged.ExcludeFields)

	merged.PracticePatterns = appendMissing(
		append([]string(nil), heuristic.PracticePatterns...), external.PracticePatterns)

	if len(external.ValueMappings) > 0 {
		mappings := make(map[string]map[string]string, len(heuristic.ValueMappings))
		for field, m := range heuristic.ValueMappings {
			mappings[field] = m
		}
		for field, m := range external.ValueMappings {
			mappings[field] = m
		}
		merged.ValueMappings = mappings
	}

	if external.HasConfidence {
		merged.Confidence = external.Confidence
	}
	merged.UsedExternalClassifier = true
	merged.ExternalResult = external
	return merged
}

// remainingFields returns the discovered fields not present in either list,
// preserving discovery order.
func remainingFields(fields, grouping, excluded []string) []string {
	taken := make(map[string]bool, len(grouping)+len(excluded))
	for _, f := range grouping {
		taken[f] = true
	}
	for _, f := range excluded {
		taken[f] = true
	}
	var out []string
	for _, f := range fields {
		if !taken[f] {
			out = append(out, f)
		}
	}
	return out
}

func appendMissing(dst, src []string) []string {
	seen := make(map[string]bool, len(dst))
	for _, s := range dst {
		seen[s] = true
	}
	for _, s := range src {
		if !seen[s] {
			dst = append(dst, s)
			seen[s] = true
		}
	}
	return dst
}
