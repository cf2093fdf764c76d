package domain

// ConditionInfo is one final condition label with its event count and the
// first-seen original event text that produced it.
type ConditionInfo struct {
	Label          string `json:"label"`
	Count          int    `json:"count"`
	Representative string `json:"representative"`
}

// SkipCounters tracks events dropped during labeling, by reason.
type SkipCounters struct {
	PatternMismatch int `json:"pattern_mismatch"`
	EmptyLabel      int `json:"empty_label"`
	GenericLabel    int `json:"generic_label"`
	Practice        int `json:"practice"`
}

// Total returns the number of events skipped for any reason.
func (s SkipCounters) Total() int {
	return s.PatternMismatch + s.EmptyLabel + s.GenericLabel + s.Practice
}

// ConditionSet is the final deduplicated label set, ordered by descending
// event count, consumed by epoch extraction.
type ConditionSet struct {
	Conditions  []ConditionInfo `json:"conditions"`
	TotalEvents int             `json:"total_events"`
	Labeled     int             `json:"labeled"`
	Skipped     SkipCounters    `json:"skipped"`
}

// Labels returns the label strings in their final order.
func (c *ConditionSet) Labels() []string {
	labels := make([]string, len(c.Conditions))
	for i, ci := range c.Conditions {
		labels[i] = ci.Label
	}
	return labels
}

// RunSummary aggregates per-event anomalies absorbed during one recording run.
type RunSummary struct {
	NumEvents       int          `json:"num_events"`
	MalformedEvents int          `json:"malformed_events"`
	Skipped         SkipCounters `json:"skipped"`
	NumConditions   int          `json:"num_conditions"`
	UsedClassifier  bool         `json:"used_classifier"`
	Confidence      float64      `json:"confidence"`
}
