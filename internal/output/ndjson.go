// Package output emits analysis results as NDJSON for machine consumers or
// as tables for humans.
package output

import (
	"encoding/json"
	"io"

	"github.com/ahmadachkar-boop/condlab/internal/domain"
)

// SchemaVersion identifies the NDJSON output contract.
const SchemaVersion = 1

// NDJSONWriter writes one JSON object per line.
type NDJSONWriter struct {
	encoder *json.Encoder
}

// NewNDJSONWriter creates a new NDJSON writer.
func NewNDJSONWriter(w io.Writer) *NDJSONWriter {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false) // keep event texts unescaped
	return &NDJSONWriter{encoder: enc}
}

// ConditionsOutput wraps a condition set for NDJSON output.
type ConditionsOutput struct {
	Type          string                    `json:"type"` // Always "conditions"
	SchemaVersion int                       `json:"schemaVersion"`
	File          string                    `json:"file,omitempty"`
	Structure     *domain.DetectedStructure `json:"structure,omitempty"`
	Conditions    *domain.ConditionSet      `json:"conditions"`
	Summary       *domain.RunSummary        `json:"summary,omitempty"`
}

// StructureOutput wraps a detected structure for NDJSON output.
type StructureOutput struct {
	Type          string                   `json:"type"` // Always "structure"
	SchemaVersion int                      `json:"schemaVersion"`
	File          string                   `json:"file,omitempty"`
	Structure     domain.DetectedStructure `json:"structure"`
}

// DiscoveryOutput wraps a field discovery for NDJSON output.
type DiscoveryOutput struct {
	Type          string           `json:"type"` // Always "discovery"
	SchemaVersion int              `json:"schemaVersion"`
	File          string           `json:"file,omitempty"`
	Discovery     domain.Discovery `json:"discovery"`
}

// LabelOutput is one per-event derived label.
type LabelOutput struct {
	Type          string  `json:"type"` // Always "label"
	SchemaVersion int     `json:"schemaVersion"`
	Index         int     `json:"index"`
	Latency       float64 `json:"latency"`
	Event         string  `json:"event"`
	Label         string  `json:"label"`
	SkipReason    string  `json:"skip_reason,omitempty"`
}

// ErrorOutput is a structured error line.
type ErrorOutput struct {
	Type          string `json:"type"` // Always "error"
	SchemaVersion int    `json:"schemaVersion"`
	Code          string `json:"code"`
	Message       string `json:"message"`
}

// WriteConditions emits a conditions line.
func (w *NDJSONWriter) WriteConditions(file string, structure *domain.DetectedStructure, set *domain.ConditionSet, summary *domain.RunSummary) error {
	return w.encoder.Encode(&ConditionsOutput{
		Type:          "conditions",
		SchemaVersion: SchemaVersion,
		File:          file,
		Structure:     structure,
		Conditions:    set,
		Summary:       summary,
	})
}

// WriteStructure emits a structure line.
func (w *NDJSONWriter) WriteStructure(file string, structure domain.DetectedStructure) error {
	return w.encoder.Encode(&StructureOutput{
		Type:          "structure",
		SchemaVersion: SchemaVersion,
		File:          file,
		Structure:     structure,
	})
}

// WriteDiscovery emits a discovery line.
func (w *NDJSONWriter) WriteDiscovery(file string, discovery domain.Discovery) error {
	return w.encoder.Encode(&DiscoveryOutput{
		Type:          "discovery",
		SchemaVersion: SchemaVersion,
		File:          file,
		Discovery:     discovery,
	})
}

// WriteLabel emits one per-event label line.
func (w *NDJSONWriter) WriteLabel(index int, latency float64, event, label, skipReason string) error {
	return w.encoder.Encode(&LabelOutput{
		Type:          "label",
		SchemaVersion: SchemaVersion,
		Index:         index,
		Latency:       latency,
		Event:         event,
		Label:         label,
		SkipReason:    skipReason,
	})
}

// WriteError emits a structured error line.
func (w *NDJSONWriter) WriteError(code, message string) error {
	return w.encoder.Encode(&ErrorOutput{
		Type:          "error",
		SchemaVersion: SchemaVersion,
		Code:          code,
		Message:       message,
	})
}
