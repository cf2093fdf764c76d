package domain

// Format identifies the textual convention used by a recording's event markers.
type Format string

const (
	FormatBracket   Format = "bracket"
	FormatFields    Format = "fields"
	FormatDelimiter Format = "delimiter"
	FormatSimple    Format = "simple"
	FormatUnknown   Format = "unknown"
)

// ParseFormat converts a string to a Format.
func ParseFormat(s string) Format {
	switch s {
	case "bracket":
		return FormatBracket
	case "fields":
		return FormatFields
	case "delimiter":
		return FormatDelimiter
	case "simple":
		return FormatSimple
	default:
		return FormatUnknown
	}
}

// DetectedStructure describes the convention detected for one recording.
// Computed once per recording and read-only thereafter.
type DetectedStructure struct {
	Format       Format  `json:"format"`
	Confidence   float64 `json:"confidence"`
	EventPattern string  `json:"eventPattern,omitempty"`
	SampleEvent  string  `json:"sampleEvent,omitempty"`
	NumEvents    int     `json:"numEvents"`
}
