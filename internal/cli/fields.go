package cli

import (
	"context"
	"fmt"

	"github.com/ahmadachkar-boop/condlab/internal/classifier"
	"github.com/ahmadachkar-boop/condlab/internal/detect"
	"github.com/ahmadachkar-boop/condlab/internal/discover"
	"github.com/ahmadachkar-boop/condlab/internal/loader"
	"github.com/ahmadachkar-boop/condlab/internal/output"
	"github.com/ahmadachkar-boop/condlab/internal/prioritize"
)

// FieldsCmd discovers and classifies event fields
type FieldsCmd struct {
	File string `arg:"" required:"" help:"Event-marker file (NDJSON or JSON array)"`
}

// Run executes the fields command
func (c *FieldsCmd) Run(globals *Globals) error {
	loaded, err := loader.Open(c.File, globals.Logger)
	if err != nil {
		return outputErrorCommon(globals, "FILE_NOT_FOUND", fmt.Sprintf("cannot open file: %s", err))
	}
	if len(loaded.Events) == 0 {
		return outputErrorCommon(globals, "NO_EVENTS", "no events found in file")
	}

	structure := detect.New(globals.Logger).Detect(loaded.Events)
	discovery := discover.New(globals.Logger).Discover(loaded.Events, structure)

	if cls := globals.NewClassifier(); cls != nil &&
		classifier.ShouldInvoke(globals.ClassifierMode(), discovery.Confidence, len(discovery.GroupingFields)) {
		req := classifier.NewRequest(discovery, structure, loaded.Events)
		if result, err := cls.Classify(context.Background(), req); err == nil {
			if classifier.Decide(globals.ClassifierMode(), discovery.Confidence, result.Confidence, true) == classifier.UseExternal {
				discovery = classifier.Merge(discovery, result)
			}
		} else {
			globals.Logger.Warn("external classifier failed, keeping heuristic result")
		}
	}
	discovery.GroupingFields = prioritize.Order(discovery.GroupingFields, discovery.FieldStats)

	if globals.Format == "ndjson" {
		return output.NewNDJSONWriter(globals.Stdout).WriteDiscovery(c.File, discovery)
	}
	return output.RenderFields(globals.Stdout, &discovery)
}
