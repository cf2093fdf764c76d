package domain

import (
	"errors"
	"fmt"
)

// ErrNoEvents is returned when no event in the recording carries a primary
// type field, leaving nothing to classify.
var ErrNoEvents = errors.New("no events with a primary type field")

// NoConditionsError is returned when every event was dropped during labeling,
// so the recording yields zero condition labels. Returning an empty set
// instead would silently corrupt downstream averaging, so this escalates.
type NoConditionsError struct {
	Skipped SkipCounters
}

func (e *NoConditionsError) Error() string {
	return fmt.Sprintf(
		"no parseable condition labels (pattern mismatch: %d, empty: %d, generic: %d, practice: %d)",
		e.Skipped.PatternMismatch, e.Skipped.EmptyLabel, e.Skipped.GenericLabel, e.Skipped.Practice)
}

// IsNoConditions reports whether err is a NoConditionsError.
func IsNoConditions(err error) bool {
	var nce *NoConditionsError
	return errors.As(err, &nce)
}
