package label

import (
	"strings"

	"go.uber.org/zap"
)

// fallbackPracticePatterns always apply, on top of whatever discovery found.
var fallbackPracticePatterns = []string{"practice", "prac", "train", "warmup"}

// maxLoggedExclusions caps per-event exclusion logging before the filter
// switches to a single summary line.
const maxLoggedExclusions = 10

// PracticeFilter drops events whose derived label marks a practice trial.
// Matching happens on the label, never on the raw event.
type PracticeFilter struct {
	patterns []string
	log      *zap.Logger
	excluded int
}

// NewPracticeFilter combines discovered practice patterns with the fixed
// fallback vocabulary. A nil logger disables logging.
func NewPracticeFilter(discovered []string, log *zap.Logger) *PracticeFilter {
	if log == nil {
		log = zap.NewNop()
	}
	patterns := make([]string, 0, len(discovered)+len(fallbackPracticePatterns))
	seen := make(map[string]bool)
	for _, p := range discovered {
		lp := strings.ToLower(strings.TrimSpace(p))
		if lp != "" && !seen[lp] {
			patterns = append(patterns, lp)
			seen[lp] = true
		}
	}
	for _, p := range fallbackPracticePatterns {
		if !seen[p] {
			patterns = append(patterns, p)
			seen[p] = true
		}
	}
	return &PracticeFilter{patterns: patterns, log: log}
}

// Exclude reports whether the label matches a practice pattern and should be
// dropped. The first matching pattern wins. The first few exclusions are
// logged individually.
func (f *PracticeFilter) Exclude(label string) bool {
	llabel := strings.ToLower(label)
	for _, p := range f.patterns {
		if strings.Contains(llabel, p) {
			f.excluded++
			if f.excluded <= maxLoggedExclusions {
				f.log.Debug("excluding practice trial",
					zap.String("label", label),
					zap.String("pattern", p))
			}
			return true
		}
	}
	return false
}

// Excluded returns how many labels the filter dropped.
func (f *PracticeFilter) Excluded() int {
	return f.excluded
}

// LogSummary emits one line summarizing exclusions past the per-event cap.
func (f *PracticeFilter) LogSummary() {
	if f.excluded > maxLoggedExclusions {
		f.log.Info("practice trial exclusions",
			zap.Int("total", f.excluded),
			zap.Int("logged_individually", maxLoggedExclusions))
	}
}
