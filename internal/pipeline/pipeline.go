// Package pipeline runs the full condition-inference chain for one
// recording: format detection, field discovery, the optional external
// classifier, prioritization, labeling, and condition selection.
package pipeline

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/ahmadachkar-boop/condlab/internal/classifier"
	"github.com/ahmadachkar-boop/condlab/internal/detect"
	"github.com/ahmadachkar-boop/condlab/internal/discover"
	"github.com/ahmadachkar-boop/condlab/internal/domain"
	"github.com/ahmadachkar-boop/condlab/internal/label"
	"github.com/ahmadachkar-boop/condlab/internal/prioritize"
)

// Options configures one recording run.
type Options struct {
	// Mode controls external classifier usage. Classifier may be nil, in
	// which case heuristics are used regardless of mode.
	Mode       classifier.Mode
	Classifier classifier.Classifier
	Logger     *zap.Logger
}

// Result is everything downstream consumers need: the condition set for
// epoch extraction plus the structure/discovery pair they must hand back to
// label.Build when re-labeling individual events.
type Result struct {
	Structure  domain.DetectedStructure `json:"structure"`
	Discovery  domain.Discovery         `json:"discovery"`
	Conditions *domain.ConditionSet     `json:"conditions"`
	Summary    domain.RunSummary        `json:"summary"`
}

// Run processes one recording's events. Per-event anomalies are absorbed
// into counters; only whole-recording failures (no usable events, no
// surviving condition labels) return an error.
func Run(ctx context.Context, events []domain.EventRecord, opts Options) (*Result, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	usable := 0
	for i := range events {
		if events[i].HasPrimaryField() {
			usable++
		}
	}
	if usable == 0 {
		return nil, domain.ErrNoEvents
	}

	structure := detect.New(log).Detect(events)
	discovery := discover.New(log).Discover(events, structure)
	discovery = consultClassifier(ctx, log, opts, discovery, structure, events)

	// Freeze the final grouping order into the Discovery so downstream
	// re-labeling sees the same fields in the same order.
	discovery.GroupingFields = prioritize.Order(discovery.GroupingFields, discovery.FieldStats)

	practice := label.NewPracticeFilter(discovery.PracticePatterns, log)
	selector := label.NewSelector()
	var skipped domain.SkipCounters
	malformed := 0
	pattern := strings.ToLower(structure.EventPattern)

	for i := range events {
		ev := &events[i]
		if !ev.HasPrimaryField() {
			malformed++
			continue
		}
		text := strings.TrimSpace(ev.Type)
		if pattern != "" && !strings.HasPrefix(strings.ToLower(text), pattern) {
			skipped.PatternMismatch++
			continue
		}
		lbl := label.Build(ev, structure, &discovery, discovery.GroupingFields)
		if lbl == "" {
			skipped.EmptyLabel++
			continue
		}
		if practice.Exclude(lbl) {
			skipped.Practice++
			continue
		}
		if label.IsGenericLabel(lbl) {
			skipped.GenericLabel++
			continue
		}
		selector.Add(lbl, text)
	}
	practice.LogSummary()

	conditions, err := selector.Result(len(events), skipped)
	if err != nil {
		return nil, err
	}

	log.Info("condition inference complete",
		zap.String("format", string(structure.Format)),
		zap.Int("conditions", len(conditions.Conditions)),
		zap.Strings("grouping_fields", discovery.GroupingFields),
		zap.Float64("confidence", discovery.Confidence),
		zap.Bool("used_classifier", discovery.UsedExternalClassifier))

	return &Result{
		Structure:  structure,
		Discovery:  discovery,
		Conditions: conditions,
		Summary: domain.RunSummary{
			NumEvents:       len(events),
			MalformedEvents: malformed,
			Skipped:         skipped,
			NumConditions:   len(conditions.Conditions),
			UsedClassifier:  discovery.UsedExternalClassifier,
			Confidence:      discovery.Confidence,
		},
	}, nil
}

// consultClassifier invokes the external classifier when policy dictates and
// merges a winning result. Every failure is recoverable: the heuristic
// discovery is returned unchanged and no retry is attempted.
func consultClassifier(ctx context.Context, log *zap.Logger, opts Options, discovery domain.Discovery, structure domain.DetectedStructure, events []domain.EventRecord) domain.Discovery {
	if opts.Classifier == nil ||
		!classifier.ShouldInvoke(opts.Mode, discovery.Confidence, len(discovery.GroupingFields)) {
		return discovery
	}

	req := classifier.NewRequest(discovery, structure, events)
	result, err := opts.Classifier.Classify(ctx, req)
	if err != nil {
		log.Warn("external classifier failed, keeping heuristic result", zap.Error(err))
		return discovery
	}

	if classifier.Decide(opts.Mode, discovery.Confidence, result.Confidence, true) != classifier.UseExternal {
		log.Debug("external classifier result not adopted",
			zap.Float64("heuristic_confidence", discovery.Confidence),
			zap.Float64("external_confidence", result.Confidence))
		return discovery
	}
	return classifier.Merge(discovery, result)
}
