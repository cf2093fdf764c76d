package classifier

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/ahmadachkar-boop/condlab/internal/domain"
)

// ErrInvalidResponse marks a classifier response that is unparseable or
// missing a required key. Callers treat it as recoverable and keep the
// heuristic result.
var ErrInvalidResponse = errors.New("invalid classifier response")

// requiredKeys must all be present for a response to be adopted.
var requiredKeys = []string{"grouping_fields", "exclude_fields", "field_classifications"}

// ParseResponse validates and decodes a raw classifier payload. Any fencing
// or wrapping characters around the JSON object are stripped first.
func ParseResponse(payload string) (*domain.ClassifierResult, error) {
	body := stripWrapping(payload)
	if body == "" || !gjson.Valid(body) {
		return nil, fmt.Errorf("%w: not parseable as JSON", ErrInvalidResponse)
	}

	root := gjson.Parse(body)
	for _, key := range requiredKeys {
		if !root.Get(key).Exists() {
			return nil, fmt.Errorf("%w: missing required key %q", ErrInvalidResponse, key)
		}
	}

	result := &domain.ClassifierResult{
		GroupingFields:       stringSlice(root.Get("grouping_fields")),
		ExcludeFields:        stringSlice(root.Get("exclude_fields")),
		FieldClassifications: stringMap(root.Get("field_classifications")),
		PracticePatterns:     stringSlice(root.Get("practice_trial_patterns")),
	}

	if conf := root.Get("confidence"); conf.Exists() {
		result.Confidence = conf.Float()
		result.HasConfidence = true
	}

	if rec := root.Get("condition_recommendations"); rec.Exists() {
		result.Recommendations = &domain.ConditionRecommendations{
			Include:            stringSlice(rec.Get("include")),
			Exclude:            stringSlice(rec.Get("exclude")),
			PrimaryComparisons: stringSlice(rec.Get("primary_comparisons")),
		}
	}

	if vm := root.Get("value_mappings"); vm.Exists() && vm.IsObject() {
		result.ValueMappings = make(map[string]map[string]string)
		vm.ForEach(func(field, mapping gjson.Result) bool {
			result.ValueMappings[field.String()] = stringMap(mapping)
			return true
		})
	}

	return result, nil
}

// stripWrapping removes markdown code fences and any leading/trailing text
// around the first JSON object in the payload.
func stripWrapping(payload string) string {
	s := strings.TrimSpace(payload)
	if strings.HasPrefix(s, "```") {
		if i := strings.Index(s, "\n"); i >= 0 {
			s = s[i+1:]
		}
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	}
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end <= start {
		return ""
	}
	return s[start : end+1]
}

func stringSlice(r gjson.Result) []string {
	if !r.Exists() {
		return nil
	}
	var out []string
	for _, item := range r.Array() {
		if s := item.String(); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func stringMap(r gjson.Result) map[string]string {
	if !r.Exists() || !r.IsObject() {
		return nil
	}
	out := make(map[string]string)
	r.ForEach(func(key, value gjson.Result) bool {
		out[key.String()] = value.String()
		return true
	})
	return out
}
