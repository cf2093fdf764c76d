package discover

import (
	"strings"

	"github.com/ahmadachkar-boop/condlab/internal/domain"
)

// missingSentinels are placeholder values that never carry condition
// information.
var missingSentinels = map[string]bool{
	"":   true,
	"?":  true,
	"0":  true,
	"na": true,
}

// IsMissingValue reports whether a raw value is a missing-data placeholder.
func IsMissingValue(v string) bool {
	return missingSentinels[strings.ToLower(strings.TrimSpace(v))]
}

// positive/negative spellings of boolean-like single values.
var (
	positiveValues = map[string]bool{"y": true, "1": true, "yes": true}
	negativeValues = map[string]bool{"n": true, "0": true, "no": true}
)

// detectValueMapping returns a raw-value to semantic-value map for a
// condition-bearing field whose values are boolean-like (y/n, Y/N, 1/0).
// The semantic wording depends on the field name: lexical-status style names
// map to word/nonword, verb style names to verb/nonverb, anything else to a
// generic yes/no. Returns nil when the field's values are not boolean-like.
func detectValueMapping(name string, st domain.FieldStatistics) map[string]string {
	sawPositive, sawNegative := false, false
	for _, v := range st.UniqueValues {
		lv := strings.ToLower(strings.TrimSpace(v))
		switch {
		case positiveValues[lv]:
			sawPositive = true
		case negativeValues[lv]:
			sawNegative = true
		case IsMissingValue(lv):
			// ignored
		default:
			return nil
		}
	}
	if !sawPositive && !sawNegative {
		return nil
	}

	pos, neg := semanticPair(name)
	// Letter keys plus their numeric-prefixed counterparts so the label
	// builder can resolve either spelling.
	return map[string]string{
		"y": pos, "n": neg,
		"yes": pos, "no": neg,
		"1": pos, "0": neg,
	}
}

// semanticPair picks the mapped wording for the positive/negative values of
// a boolean-like condition field.
func semanticPair(name string) (string, string) {
	lname := strings.ToLower(name)
	switch {
	case strings.Contains(lname, "word") || strings.Contains(lname, "code") || strings.Contains(lname, "lex"):
		return "word", "nonword"
	case strings.Contains(lname, "verb"):
		return "verb", "nonverb"
	default:
		return "yes", "no"
	}
}
