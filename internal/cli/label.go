package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ahmadachkar-boop/condlab/internal/detect"
	"github.com/ahmadachkar-boop/condlab/internal/discover"
	"github.com/ahmadachkar-boop/condlab/internal/domain"
	"github.com/ahmadachkar-boop/condlab/internal/label"
	"github.com/ahmadachkar-boop/condlab/internal/loader"
	"github.com/ahmadachkar-boop/condlab/internal/output"
	"github.com/ahmadachkar-boop/condlab/internal/pipeline"
	"github.com/ahmadachkar-boop/condlab/internal/prioritize"
)

// LabelCmd prints the derived label for every event in a file
type LabelCmd struct {
	File  string `arg:"" required:"" help:"Event-marker file (NDJSON or JSON array)"`
	Limit int    `help:"Stop after N events (0 = all)"`

	FilterFlags
}

// Run executes the label command. It runs the full pipeline once to settle
// the grouping fields, then re-labels each event individually.
func (c *LabelCmd) Run(globals *Globals) error {
	loaded, err := loader.Open(c.File, globals.Logger)
	if err != nil {
		return outputErrorCommon(globals, "FILE_NOT_FOUND", fmt.Sprintf("cannot open file: %s", err))
	}
	chain, err := c.Chain()
	if err != nil {
		return outputErrorCommon(globals, "INVALID_FILTER", err.Error())
	}
	events := chain.Apply(loaded.Events)

	result, err := pipeline.Run(context.Background(), events, pipeline.Options{
		Mode:       globals.ClassifierMode(),
		Classifier: globals.NewClassifier(),
		Logger:     globals.Logger,
	})
	if err != nil && !domain.IsNoConditions(err) {
		if errors.Is(err, domain.ErrNoEvents) {
			return outputErrorCommon(globals, "NO_EVENTS", "no usable events found in file")
		}
		return outputErrorCommon(globals, "LABEL_ERROR", err.Error())
	}
	// With no surviving conditions we still show per-event labels and skip
	// reasons; that is exactly what the user needs to diagnose the failure.
	var structure domain.DetectedStructure
	var discovery domain.Discovery
	if err != nil {
		globals.Logger.Warn("no conditions survived filtering, showing per-event labels anyway")
		structure = detect.New(globals.Logger).Detect(events)
		discovery = discover.New(globals.Logger).Discover(events, structure)
		discovery.GroupingFields = prioritize.Order(discovery.GroupingFields, discovery.FieldStats)
	} else {
		structure = result.Structure
		discovery = result.Discovery
	}
	practice := label.NewPracticeFilter(discovery.PracticePatterns, globals.Logger)
	pattern := strings.ToLower(structure.EventPattern)

	var writer *output.NDJSONWriter
	if globals.Format == "ndjson" {
		writer = output.NewNDJSONWriter(globals.Stdout)
	}

	emitted := 0
	for i := range events {
		if c.Limit > 0 && emitted >= c.Limit {
			break
		}
		ev := &events[i]
		text := strings.TrimSpace(ev.Type)
		lbl := ""
		skip := ""
		switch {
		case !ev.HasPrimaryField():
			skip = "malformed"
		case pattern != "" && !strings.HasPrefix(strings.ToLower(text), pattern):
			skip = "pattern_mismatch"
		default:
			lbl = label.Build(ev, structure, &discovery, discovery.GroupingFields)
			switch {
			case lbl == "":
				skip = "empty"
			case practice.Exclude(lbl):
				skip = "practice"
			case label.IsGenericLabel(lbl):
				skip = "generic"
			}
		}

		if writer != nil {
			if err := writer.WriteLabel(i, ev.Latency, text, lbl, skip); err != nil {
				return err
			}
		} else {
			if skip != "" {
				fmt.Fprintf(globals.Stdout, "%6d  %-30s  (skipped: %s)\n", i, text, skip)
			} else {
				fmt.Fprintf(globals.Stdout, "%6d  %-30s  %s\n", i, text, lbl)
			}
		}
		emitted++
	}

	return nil
}
