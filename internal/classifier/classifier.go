// Package classifier provides the optional external second opinion on field
// discovery: a structured request/response contract, an LLM-backed
// implementation, and the precedence rules for merging its recommendation
// with the heuristic result.
package classifier

import (
	"context"

	"github.com/ahmadachkar-boop/condlab/internal/domain"
	"github.com/ahmadachkar-boop/condlab/internal/sample"
)

// Mode controls when the external classifier is consulted.
type Mode string

const (
	// ModeNever uses heuristics only.
	ModeNever Mode = "never"
	// ModeAlways adopts any schema-valid external result unconditionally.
	ModeAlways Mode = "always"
	// ModeAuto consults the classifier only when heuristics look weak and
	// adopts its result only when it reports at least the heuristic
	// confidence.
	ModeAuto Mode = "auto"
)

// ParseMode converts a string to a Mode, defaulting to auto.
func ParseMode(s string) Mode {
	switch s {
	case "never":
		return ModeNever
	case "always":
		return ModeAlways
	default:
		return ModeAuto
	}
}

// MaxSampleEvents caps the representative events included in a request.
const MaxSampleEvents = 30

// Request is the JSON-serializable payload sent to the external classifier.
type Request struct {
	FieldStatistics map[string]domain.FieldStatistics `json:"fieldStatistics"`
	DetectedFormat  domain.Format                     `json:"detectedFormat"`
	SampleEvents    []string                          `json:"sampleEvents"`
}

// NewRequest assembles a request from the heuristic discovery, the detected
// structure, and up to MaxSampleEvents evenly spaced representative events.
func NewRequest(discovery domain.Discovery, structure domain.DetectedStructure, events []domain.EventRecord) Request {
	req := Request{
		FieldStatistics: discovery.FieldStats,
		DetectedFormat:  structure.Format,
	}
	for _, i := range sample.Indices(len(events), MaxSampleEvents) {
		req.SampleEvents = append(req.SampleEvents, events[i].Type)
	}
	return req
}

// Classifier is the external collaborator contract. Implementations perform
// a single synchronous round trip; callers never retry a failed call.
type Classifier interface {
	Classify(ctx context.Context, req Request) (*domain.ClassifierResult, error)
}
