package classifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahmadachkar-boop/condlab/internal/domain"
)

func TestShouldInvoke(t *testing.T) {
	tests := []struct {
		name       string
		mode       Mode
		confidence float64
		grouping   int
		expected   bool
	}{
		{"never mode", ModeNever, 0.1, 10, false},
		{"always mode", ModeAlways, 1.0, 1, true},
		{"auto with low confidence", ModeAuto, 0.5, 2, true},
		{"auto with too many fields", ModeAuto, 0.9, 4, true},
		{"auto with confident heuristics", ModeAuto, 0.9, 2, false},
		{"auto at threshold", ModeAuto, 0.7, 3, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ShouldInvoke(tt.mode, tt.confidence, tt.grouping))
		})
	}
}

func TestDecide(t *testing.T) {
	tests := []struct {
		name          string
		mode          Mode
		heuristic     float64
		external      float64
		externalValid bool
		expected      Decision
	}{
		{"invalid result always loses", ModeAlways, 0.5, 0.99, false, UseHeuristic},
		{"always mode adopts valid result", ModeAlways, 0.9, 0.1, true, UseExternal},
		{"auto adopts higher confidence", ModeAuto, 0.5, 0.9, true, UseExternal},
		{"auto adopts equal confidence", ModeAuto, 0.7, 0.7, true, UseExternal},
		{"auto keeps heuristics on lower confidence", ModeAuto, 0.8, 0.6, true, UseHeuristic},
		{"never mode keeps heuristics", ModeNever, 0.1, 0.9, true, UseHeuristic},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Decide(tt.mode, tt.heuristic, tt.external, tt.externalValid))
		})
	}
}

func TestMerge(t *testing.T) {
	heuristic := domain.Discovery{
		Fields:           []string{"Cond", "Code", "obs", "cel"},
		GroupingFields:   []string{"Cond"},
		ExcludeFields:    []string{"obs"},
		AmbiguousFields:  []string{"Code", "cel"},
		PracticePatterns: []string{"Prac"},
		ValueMappings:    map[string]map[string]string{"Code": {"y": "word", "n": "nonword"}},
		Confidence:       0.5,
	}
	external := &domain.ClassifierResult{
		GroupingFields:   []string{"Cond", "Code"},
		ExcludeFields:    []string{"obs", "cel"},
		Confidence:       0.9,
		HasConfidence:    true,
		PracticePatterns: []string{"Prac", "train"},
		ValueMappings:    map[string]map[string]string{"Cond": {"a": "animal", "b": "object"}},
	}

	merged := Merge(heuristic, external)

	t.Run("adopts external partition", func(t *testing.T) {
		assert.Equal(t, []string{"Cond", "Code"}, merged.GroupingFields)
		assert.Equal(t, []string{"obs", "cel"}, merged.ExcludeFields)
		assert.Empty(t, merged.AmbiguousFields)
	})

	t.Run("updates confidence and provenance", func(t *testing.T) {
		assert.Equal(t, 0.9, merged.Confidence)
		assert.True(t, merged.UsedExternalClassifier)
		require.NotNil(t, merged.ExternalResult)
	})

	t.Run("unions practice patterns", func(t *testing.T) {
		assert.Equal(t, []string{"Prac", "train"}, merged.PracticePatterns)
	})

	t.Run("merges value mappings", func(t *testing.T) {
		assert.Equal(t, "word", merged.Mapping("Code")["y"])
		assert.Equal(t, "animal", merged.Mapping("Cond")["a"])
	})

	t.Run("input discovery untouched", func(t *testing.T) {
		assert.Equal(t, []string{"Cond"}, heuristic.GroupingFields)
		assert.Equal(t, 0.5, heuristic.Confidence)
		assert.False(t, heuristic.UsedExternalClassifier)
		assert.Nil(t, heuristic.Mapping("Cond"))
	})
}
