package cli

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/ahmadachkar-boop/condlab/internal/classifier"
	"github.com/ahmadachkar-boop/condlab/internal/domain"
	"github.com/ahmadachkar-boop/condlab/internal/filter"
	"github.com/ahmadachkar-boop/condlab/internal/loader"
	"github.com/ahmadachkar-boop/condlab/internal/output"
	"github.com/ahmadachkar-boop/condlab/internal/pipeline"
)

// maxConcurrentFiles bounds parallel file analysis.
const maxConcurrentFiles = 4

// AnalyzeCmd runs the full condition-inference pipeline over event files
type AnalyzeCmd struct {
	Files []string `arg:"" required:"" help:"Event-marker files (NDJSON or JSON array)"`

	FilterFlags
}

type analyzeResult struct {
	file   string
	result *pipeline.Result
	err    error
}

// Run executes the analyze command. Files are processed concurrently but
// results are emitted in argument order so output is reproducible.
func (c *AnalyzeCmd) Run(globals *Globals) error {
	ctx := context.Background()
	cls := globals.NewClassifier()
	chain, err := c.Chain()
	if err != nil {
		return outputErrorCommon(globals, "INVALID_FILTER", err.Error())
	}

	results := make([]analyzeResult, len(c.Files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentFiles)
	for i, file := range c.Files {
		g.Go(func() error {
			results[i] = analyzeFile(ctx, globals, cls, chain, file)
			return nil
		})
	}
	// Workers never return errors; failures land in per-file results.
	_ = g.Wait()

	var failed int
	for _, r := range results {
		if r.err != nil {
			failed++
			c.outputError(globals, errorCode(r.err), fmt.Sprintf("%s: %s", r.file, r.err))
			continue
		}
		if err := c.emit(globals, r.file, r.result); err != nil {
			return err
		}
	}

	if failed > 0 {
		return &CLIError{
			Code:    "ANALYZE_FAILED",
			Message: fmt.Sprintf("%d of %d files failed", failed, len(c.Files)),
		}
	}
	return nil
}

func analyzeFile(ctx context.Context, globals *Globals, cls classifier.Classifier, chain *filter.Chain, file string) analyzeResult {
	loaded, err := loader.Open(file, globals.Logger)
	if err != nil {
		return analyzeResult{file: file, err: err}
	}

	result, err := pipeline.Run(ctx, chain.Apply(loaded.Events), pipeline.Options{
		Mode:       globals.ClassifierMode(),
		Classifier: cls,
		Logger:     globals.Logger,
	})
	return analyzeResult{file: file, result: result, err: err}
}

func (c *AnalyzeCmd) emit(globals *Globals, file string, result *pipeline.Result) error {
	if limit := globals.MaxConditions; limit > 0 && len(result.Conditions.Conditions) > limit {
		trimmed := *result.Conditions
		trimmed.Conditions = trimmed.Conditions[:limit]
		result.Conditions = &trimmed
	}

	if globals.Format == "ndjson" {
		writer := output.NewNDJSONWriter(globals.Stdout)
		return writer.WriteConditions(file, &result.Structure, result.Conditions, &result.Summary)
	}

	fmt.Fprintf(globals.Stdout, "%s: format=%s confidence=%.2f pattern=%q\n",
		file, result.Structure.Format, result.Structure.Confidence, result.Structure.EventPattern)
	return output.RenderConditions(globals.Stdout, result.Conditions)
}

func (c *AnalyzeCmd) outputError(globals *Globals, code, message string) {
	_ = outputErrorCommon(globals, code, message)
}

// errorCode maps pipeline failures to stable machine-readable codes.
func errorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case domain.IsNoConditions(err):
		return "NO_CONDITIONS"
	case errors.Is(err, domain.ErrNoEvents):
		return "NO_EVENTS"
	default:
		return "ANALYZE_ERROR"
	}
}
