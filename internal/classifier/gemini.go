package classifier

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/benbjohnson/clock"
	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/ahmadachkar-boop/condlab/internal/domain"
)

const defaultGeminiModel = "gemini-2.5-flash"

// defaultTimeout bounds the single synchronous round trip; the pipeline
// abandons the call past this and continues on heuristics.
const defaultTimeout = 60 * time.Second

// classifierPrompt instructs the model to return the response schema.
const classifierPrompt = `You are analyzing event markers from an electrophysiology recording.
Each event has named attributes; decide which attributes encode an experimental
condition (suitable for grouping trials) and which are trial bookkeeping
(counters, reaction times, timestamps) or recording metadata.

Reply with a single JSON object with these keys:
  "grouping_fields": condition-bearing attribute names, most important first
  "exclude_fields": attribute names that must never drive grouping
  "field_classifications": object mapping every attribute name to one of
      "condition", "trial", "metadata", "ambiguous"
  "confidence": number in [0,1]
Optional keys: "practice_trial_patterns" (substrings marking practice trials),
"condition_recommendations" ({"include","exclude","primary_comparisons"}),
"value_mappings" (object mapping field name to {raw value: normalized value}).

Input follows as JSON:
`

// GeminiConfig configures the Gemini-backed classifier.
type GeminiConfig struct {
	APIKey  string
	Model   string
	Timeout time.Duration
}

// GeminiClassifier asks a Gemini model for a field-classification second
// opinion. It performs exactly one generation call per Classify invocation.
type GeminiClassifier struct {
	client  *genai.Client
	model   string
	timeout time.Duration
	clk     clock.Clock
	log     *zap.Logger
}

// NewGemini creates a Gemini classifier client.
func NewGemini(cfg GeminiConfig, log *zap.Logger) (*GeminiClassifier, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini classifier: API key is required")
	}
	if log == nil {
		log = zap.NewNop()
	}
	model := cfg.Model
	if model == "" {
		model = defaultGeminiModel
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{APIKey: cfg.APIKey})
	if err != nil {
		return nil, fmt.Errorf("gemini classifier: create client: %w", err)
	}
	return &GeminiClassifier{
		client:  client,
		model:   model,
		timeout: timeout,
		clk:     clock.New(),
		log:     log,
	}, nil
}

// Classify sends the field statistics and sample events to the model and
// parses its structured recommendation. Errors are recoverable: the caller
// keeps the heuristic result and never retries.
func (g *GeminiClassifier) Classify(ctx context.Context, req Request) (*domain.ClassifierResult, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal classifier request: %w", err)
	}

	ctx, cancel := g.clk.WithTimeout(ctx, g.timeout)
	defer cancel()

	start := g.clk.Now()
	resp, err := g.client.Models.GenerateContent(ctx, g.model,
		genai.Text(classifierPrompt+string(payload)),
		&genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
			Temperature:      genai.Ptr[float32](0),
		})
	if err != nil {
		return nil, fmt.Errorf("gemini classify: %w", err)
	}

	result, err := ParseResponse(resp.Text())
	if err != nil {
		return nil, err
	}
	g.log.Debug("external classifier responded",
		zap.Duration("elapsed", g.clk.Since(start)),
		zap.Strings("grouping_fields", result.GroupingFields),
		zap.Float64("confidence", result.Confidence))
	return result, nil
}
