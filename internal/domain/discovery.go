package domain

// FieldStatistics summarizes the values observed for one discovered attribute
// across the discovery sample. Frozen once discovery completes.
type FieldStatistics struct {
	UniqueValues []string `json:"unique_values"`
	NumUnique    int      `json:"num_unique"`
	Cardinality  float64  `json:"cardinality"`
	SampleValues []string `json:"sample_values,omitempty"`
	Observed     int      `json:"observed"`
}

// FieldClass is the classification assigned to a discovered attribute.
type FieldClass string

const (
	ClassCondition FieldClass = "condition"
	ClassTrial     FieldClass = "trial"
	ClassMetadata  FieldClass = "metadata"
	ClassAmbiguous FieldClass = "ambiguous"
)

// ClassifierResult is the parsed, schema-valid response of the external
// classifier. Kept on the Discovery for transparency when it was adopted.
type ClassifierResult struct {
	GroupingFields       []string                     `json:"grouping_fields"`
	ExcludeFields        []string                     `json:"exclude_fields"`
	FieldClassifications map[string]string            `json:"field_classifications"`
	Confidence           float64                      `json:"confidence,omitempty"`
	HasConfidence        bool                         `json:"-"`
	PracticePatterns     []string                     `json:"practice_trial_patterns,omitempty"`
	Recommendations      *ConditionRecommendations    `json:"condition_recommendations,omitempty"`
	ValueMappings        map[string]map[string]string `json:"value_mappings,omitempty"`
}

// ConditionRecommendations is the optional advisory block of a classifier
// response.
type ConditionRecommendations struct {
	Include            []string `json:"include,omitempty"`
	Exclude            []string `json:"exclude,omitempty"`
	PrimaryComparisons []string `json:"primary_comparisons,omitempty"`
}

// Discovery is the complete field-discovery outcome for one recording:
// which attributes exist, how they classify, and how their values normalize.
// Mutated only while discovery and the classifier merge run; immutable once
// handed to the labeling stage. The classifier merge produces a new Discovery
// value rather than patching this one.
type Discovery struct {
	Fields                 []string                     `json:"fields"`
	FieldStats             map[string]FieldStatistics   `json:"field_stats"`
	GroupingFields         []string                     `json:"grouping_fields"`
	ExcludeFields          []string                     `json:"exclude_fields"`
	AmbiguousFields        []string                     `json:"ambiguous_fields,omitempty"`
	PracticePatterns       []string                     `json:"practice_patterns,omitempty"`
	ValueMappings          map[string]map[string]string `json:"value_mappings,omitempty"`
	Confidence             float64                      `json:"confidence"`
	UsedExternalClassifier bool                         `json:"used_external_classifier"`
	ExternalResult         *ClassifierResult            `json:"external_result,omitempty"`
}

// Mapping returns the value-normalization map for a grouping field, or nil.
func (d *Discovery) Mapping(field string) map[string]string {
	if d.ValueMappings == nil {
		return nil
	}
	return d.ValueMappings[field]
}

// IsExcluded reports whether a field was classified as never condition-bearing.
func (d *Discovery) IsExcluded(field string) bool {
	for _, f := range d.ExcludeFields {
		if f == field {
			return true
		}
	}
	return false
}
