package discover

import (
	"strings"

	"github.com/ahmadachkar-boop/condlab/internal/domain"
)

// Base-rule thresholds for cardinality classification.
const (
	conditionMaxCardinality = 0.3
	conditionMinUnique      = 2
	conditionMaxUnique      = 20
	trialMinCardinality     = 0.7
	trialMinUnique          = 50

	// conditionOverrideMaxCardinality bounds the condition name override: a
	// condition-like name cannot promote a field whose values are mostly
	// unique per trial.
	conditionOverrideMaxCardinality = 0.5
)

// Name-pattern vocabularies. Matching is case-insensitive substring.
var (
	conditionTokens = []string{"cond", "stim", "task", "tsk", "code", "cue", "targ", "categ", "lex"}
	trialTokens     = []string{"trial", "obs", "resp", "reaction", "rt", "latency", "onset", "time", "index", "count", "serial"}
	metadataTokens  = []string{"desc", "label", "device", "timestamp", "date", "subject", "age", "gender", "sex", "session", "comment", "note", "channel", "montage"}
	practiceTokens  = []string{"practice", "prac", "train", "warmup"}
)

// Rule is one entry of the ordered classification table.
type Rule struct {
	Name    string
	Matches func(name string, st domain.FieldStatistics) bool
	Class   func(name string, st domain.FieldStatistics) domain.FieldClass
}

// classificationRules is evaluated top-down; the first matching rule wins.
// The order encodes the override precedence: condition-name beats trial-name
// beats metadata-name beats the cardinality base rule.
var classificationRules = []Rule{
	{
		Name: "condition-name",
		Matches: func(name string, st domain.FieldStatistics) bool {
			return containsAny(name, conditionTokens) && st.Cardinality < conditionOverrideMaxCardinality
		},
		Class: func(string, domain.FieldStatistics) domain.FieldClass { return domain.ClassCondition },
	},
	{
		Name: "trial-name",
		Matches: func(name string, st domain.FieldStatistics) bool {
			return containsAny(name, trialTokens)
		},
		Class: func(string, domain.FieldStatistics) domain.FieldClass { return domain.ClassTrial },
	},
	{
		Name: "metadata-name",
		Matches: func(name string, st domain.FieldStatistics) bool {
			return containsAny(name, metadataTokens)
		},
		Class: func(string, domain.FieldStatistics) domain.FieldClass { return domain.ClassMetadata },
	},
	{
		Name:    "cardinality",
		Matches: func(string, domain.FieldStatistics) bool { return true },
		Class: func(_ string, st domain.FieldStatistics) domain.FieldClass {
			switch {
			case st.Cardinality > trialMinCardinality || st.NumUnique > trialMinUnique:
				return domain.ClassTrial
			case st.Cardinality < conditionMaxCardinality &&
				st.NumUnique >= conditionMinUnique && st.NumUnique <= conditionMaxUnique:
				return domain.ClassCondition
			default:
				return domain.ClassAmbiguous
			}
		},
	},
}

// Classify assigns a field to exactly one class via the ordered rule table.
func Classify(name string, st domain.FieldStatistics) domain.FieldClass {
	for _, rule := range classificationRules {
		if rule.Matches(name, st) {
			return rule.Class(name, st)
		}
	}
	return domain.ClassAmbiguous
}

// IsPracticeField reports whether a field name marks practice-trial
// bookkeeping.
func IsPracticeField(name string) bool {
	return containsAny(name, practiceTokens)
}

func containsAny(name string, tokens []string) bool {
	name = strings.ToLower(name)
	for _, tok := range tokens {
		if strings.Contains(name, tok) {
			return true
		}
	}
	return false
}
