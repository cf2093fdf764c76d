// Package detect classifies the textual convention used by a recording's
// event markers.
package detect

import (
	"strings"

	"go.uber.org/zap"

	"github.com/ahmadachkar-boop/condlab/internal/domain"
	"github.com/ahmadachkar-boop/condlab/internal/sample"
)

const (
	// MaxSampleEvents caps how many events are inspected during detection.
	MaxSampleEvents = 100

	// MinConfidence is the floor below which no event pattern is derived.
	MinConfidence = 0.3

	// patternCoverage is the fraction of sampled events that must share a
	// candidate prefix or keyword for it to become the event pattern.
	patternCoverage = 0.5

	// simpleMaxLen is the longest text still considered a bare code.
	simpleMaxLen = 10

	// delimiterMinParts is the minimum token count for delimiter format.
	delimiterMinParts = 3
)

// triggerKeywords are stimulus/trigger-style prefixes commonly used by
// acquisition systems, tested when no common prefix emerges.
var triggerKeywords = []string{"stim", "trig", "din", "resp", "cue", "targ"}

// Detector samples events and classifies the dominant marker convention.
type Detector struct {
	log *zap.Logger
}

// New creates a Detector. A nil logger disables logging.
func New(log *zap.Logger) *Detector {
	if log == nil {
		log = zap.NewNop()
	}
	return &Detector{log: log}
}

// Detect inspects up to MaxSampleEvents evenly spaced events and returns the
// dominant format with its confidence and an optional common event pattern.
// Sampling is index-deterministic, so identical input yields an identical
// result on every run.
func (d *Detector) Detect(events []domain.EventRecord) domain.DetectedStructure {
	if len(events) == 0 {
		d.log.Info("no events to detect format from")
		return domain.DetectedStructure{Format: domain.FormatUnknown}
	}

	indices := sample.Indices(len(events), MaxSampleEvents)
	texts := make([]string, 0, len(indices))
	var bracketHits, richHits, delimiterHits, simpleHits int
	for _, i := range indices {
		ev := &events[i]
		text := strings.TrimSpace(ev.Type)
		texts = append(texts, text)

		if hasBracketSpan(text) {
			bracketHits++
		}
		if len(ev.Attrs) >= 2 {
			richHits++
		}
		if isDelimited(text) {
			delimiterHits++
		}
		if isSimple(text) {
			simpleHits++
		}
	}

	n := float64(len(indices))
	format, confidence := pickFormat(
		float64(bracketHits)/n,
		float64(richHits)/n,
		float64(delimiterHits)/n,
		float64(simpleHits)/n,
	)

	structure := domain.DetectedStructure{
		Format:      format,
		Confidence:  confidence,
		SampleEvent: texts[0],
		NumEvents:   len(events),
	}

	if confidence <= MinConfidence {
		d.log.Warn("low format detection confidence, no event pattern derived",
			zap.String("format", string(format)),
			zap.Float64("confidence", confidence))
		return structure
	}

	structure.EventPattern = detectPattern(texts)
	d.log.Debug("detected event format",
		zap.String("format", string(format)),
		zap.Float64("confidence", confidence),
		zap.String("pattern", structure.EventPattern))
	return structure
}

// pickFormat selects the format with the highest hit ratio. Ties resolve in
// declaration order: bracket, fields, delimiter, simple.
func pickFormat(bracket, fields, delimiter, simple float64) (domain.Format, float64) {
	best, ratio := domain.FormatUnknown, 0.0
	for _, c := range []struct {
		format domain.Format
		ratio  float64
	}{
		{domain.FormatBracket, bracket},
		{domain.FormatFields, fields},
		{domain.FormatDelimiter, delimiter},
		{domain.FormatSimple, simple},
	} {
		if c.ratio > ratio {
			best, ratio = c.format, c.ratio
		}
	}
	return best, ratio
}

// hasBracketSpan reports whether text contains a [...] span whose interior
// has both a separator and an association marker.
func hasBracketSpan(text string) bool {
	open := strings.Index(text, "[")
	if open < 0 {
		return false
	}
	close := strings.Index(text[open:], "]")
	if close < 0 {
		return false
	}
	interior := text[open+1 : open+close]
	return strings.Contains(interior, ",") && strings.Contains(interior, ":")
}

// isDelimited reports whether splitting on "_" or "-" yields enough parts.
func isDelimited(text string) bool {
	return len(strings.Split(text, "_")) >= delimiterMinParts ||
		len(strings.Split(text, "-")) >= delimiterMinParts
}

// isSimple reports whether text looks like a bare event code.
func isSimple(text string) bool {
	return text != "" && len(text) <= simpleMaxLen &&
		!strings.Contains(text, "_") && !strings.Contains(text, "[")
}

// detectPattern derives a common token pattern over the sampled texts: first
// the leading token of the first text, then a fixed trigger-keyword
// vocabulary, each requiring patternCoverage case-insensitive prefix
// coverage. Returns "" when nothing qualifies, which disables downstream
// pattern filtering.
func detectPattern(texts []string) string {
	if prefix := leadingToken(texts[0]); prefix != "" {
		if prefixCoverage(texts, prefix) >= patternCoverage {
			return prefix
		}
	}
	for _, kw := range triggerKeywords {
		if prefixCoverage(texts, kw) >= patternCoverage {
			return kw
		}
	}
	return ""
}

// leadingToken returns text up to the first delimiter, bracket, or space.
func leadingToken(text string) string {
	if i := strings.IndexAny(text, "_-[ "); i > 0 {
		return text[:i]
	}
	return ""
}

func prefixCoverage(texts []string, prefix string) float64 {
	prefix = strings.ToLower(prefix)
	hits := 0
	for _, t := range texts {
		if strings.HasPrefix(strings.ToLower(t), prefix) {
			hits++
		}
	}
	return float64(hits) / float64(len(texts))
}
