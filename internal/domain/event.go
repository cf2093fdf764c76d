package domain

// Attribute is one named extra attribute of an event, in document order.
// Values keep their native JSON representation (string, float64, bool) until
// an extractor canonicalizes them to text.
type Attribute struct {
	Name  string `json:"name"`
	Value any    `json:"value"`
}

// EventRecord is one event marker from a recording: a primary type field, a
// sample position, and an arbitrary ordered bag of extra attributes. Records
// are owned by the caller and never mutated by the engine.
type EventRecord struct {
	Type        string      `json:"type"`
	Latency     float64     `json:"latency"`
	Duration    float64     `json:"duration,omitempty"`
	URReference int         `json:"urevent,omitempty"`
	Attrs       []Attribute `json:"attrs,omitempty"`
}

// HasPrimaryField reports whether the event carries a usable type field.
func (e *EventRecord) HasPrimaryField() bool {
	return e.Type != ""
}

// Attr returns the value of the named extra attribute and whether it exists.
func (e *EventRecord) Attr(name string) (any, bool) {
	for _, a := range e.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return nil, false
}
