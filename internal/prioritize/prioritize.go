// Package prioritize orders candidate condition-bearing attributes by
// domain-informed priority and trims the set to a bound that keeps the
// condition-label space from fragmenting.
package prioritize

import (
	"sort"
	"strings"

	"github.com/ahmadachkar-boop/condlab/internal/domain"
)

const (
	// veryHighPriority is the score above which a field is considered a
	// definitive condition variable. When the top two fields both clear it,
	// they alone define the conditions.
	veryHighPriority = 85.0

	// maxFields bounds the grouping set in the general case.
	maxFields = 3

	// cardinalityBonusWeight scales the (1 - cardinality) tie-breaking bonus
	// favoring more discriminative attributes.
	cardinalityBonusWeight = 10.0
)

// bucket is one name-pattern priority tier. Buckets are evaluated top-down;
// the first match assigns the base score.
type bucket struct {
	score   float64
	matches func(name string) bool
}

var buckets = []bucket{
	// Condition-style names under a key-value namespace prefix.
	{100, func(n string) bool { return isNamespaced(n) && containsAny(n, "cond") }},
	// Code / lexical-status names.
	{90, func(n string) bool { return containsAny(n, "code", "lex", "word", "status") }},
	// Other namespaced experimental variables.
	{80, isNamespaced},
	// Generic condition / stimulus names.
	{70, func(n string) bool { return containsAny(n, "cond", "stim", "cue", "targ") }},
	// Modifier names.
	{60, func(n string) bool { return containsAny(n, "mod", "variant", "level", "manip") }},
	// Task / category names.
	{50, func(n string) bool { return containsAny(n, "task", "tsk", "categ", "group", "block") }},
}

const defaultScore = 10.0

// Order sorts grouping-field candidates by descending priority and trims
// them to the final bounded set. Fields are pre-sorted alphabetically so
// equal priorities resolve deterministically.
func Order(fields []string, stats map[string]domain.FieldStatistics) []string {
	if len(fields) == 0 {
		return nil
	}

	out := append([]string(nil), fields...)
	sort.Strings(out)

	scores := make(map[string]float64, len(out))
	for _, f := range out {
		scores[f] = Score(f, stats)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return scores[out[i]] > scores[out[j]]
	})

	if len(out) >= 2 && scores[out[0]] > veryHighPriority && scores[out[1]] > veryHighPriority {
		return out[:2]
	}
	if len(out) > maxFields {
		out = out[:maxFields]
	}
	return out
}

// Score computes a field's priority: its name-pattern bucket plus a bonus
// favoring lower cardinality. Fields without statistics get no bonus.
func Score(name string, stats map[string]domain.FieldStatistics) float64 {
	score := defaultScore
	lname := strings.ToLower(name)
	for _, b := range buckets {
		if b.matches(lname) {
			score = b.score
			break
		}
	}
	if st, ok := stats[name]; ok {
		score += (1 - st.Cardinality) * cardinalityBonusWeight
	}
	return score
}

// isNamespaced reports whether a name carries a key-value namespace prefix
// like "exp.cond" or "bv:stim".
func isNamespaced(name string) bool {
	i := strings.IndexAny(name, ".:/")
	return i > 0 && i < len(name)-1
}

func containsAny(name string, tokens ...string) bool {
	for _, tok := range tokens {
		if strings.Contains(name, tok) {
			return true
		}
	}
	return false
}
