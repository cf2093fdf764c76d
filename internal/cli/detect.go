package cli

import (
	"fmt"

	"github.com/ahmadachkar-boop/condlab/internal/detect"
	"github.com/ahmadachkar-boop/condlab/internal/loader"
	"github.com/ahmadachkar-boop/condlab/internal/output"
)

// DetectCmd detects the event text structure of a file
type DetectCmd struct {
	File string `arg:"" required:"" help:"Event-marker file (NDJSON or JSON array)"`
}

// Run executes the detect command
func (c *DetectCmd) Run(globals *Globals) error {
	loaded, err := loader.Open(c.File, globals.Logger)
	if err != nil {
		return outputErrorCommon(globals, "FILE_NOT_FOUND", fmt.Sprintf("cannot open file: %s", err))
	}
	if len(loaded.Events) == 0 {
		return outputErrorCommon(globals, "NO_EVENTS", "no events found in file")
	}

	structure := detect.New(globals.Logger).Detect(loaded.Events)

	if globals.Format == "ndjson" {
		return output.NewNDJSONWriter(globals.Stdout).WriteStructure(c.File, structure)
	}

	fmt.Fprintf(globals.Stdout, "Format:     %s\n", structure.Format)
	fmt.Fprintf(globals.Stdout, "Confidence: %.2f\n", structure.Confidence)
	if structure.EventPattern != "" {
		fmt.Fprintf(globals.Stdout, "Pattern:    %s\n", structure.EventPattern)
	}
	if structure.SampleEvent != "" {
		fmt.Fprintf(globals.Stdout, "Sample:     %s\n", structure.SampleEvent)
	}
	fmt.Fprintf(globals.Stdout, "Events:     %d (%d unparseable lines skipped)\n", structure.NumEvents, loaded.Skipped)
	return nil
}
