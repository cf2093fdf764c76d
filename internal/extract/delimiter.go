package extract

import (
	"fmt"
	"strings"
	"unicode"
)

// genericPrefixes are non-semantic leading tokens that acquisition systems
// prepend to delimited event codes.
var genericPrefixes = map[string]bool{
	"stim":     true,
	"stimulus": true,
	"trig":     true,
	"trigger":  true,
	"event":    true,
	"trial":    true,
	"resp":     true,
	"response": true,
}

// Delimiter splits a delimited event text into positionally named fields
// (field1, field2, ...). Underscore is preferred over hyphen. A leading
// all-uppercase or generic prefix token carries no condition information and
// is skipped.
func Delimiter(text string) map[string]string {
	text = strings.TrimSpace(text)
	parts := strings.Split(text, "_")
	if len(parts) < 2 {
		parts = strings.Split(text, "-")
	}
	if len(parts) < 2 {
		return nil
	}

	if isNonSemanticPrefix(parts[0]) {
		parts = parts[1:]
	}

	fields := make(map[string]string, len(parts))
	for i, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		fields[fmt.Sprintf("field%d", i+1)] = part
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}

// isNonSemanticPrefix reports whether the first token is an all-uppercase
// marker or a known generic prefix word.
func isNonSemanticPrefix(token string) bool {
	if genericPrefixes[strings.ToLower(token)] {
		return true
	}
	hasLetter := false
	for _, r := range token {
		if unicode.IsLetter(r) {
			hasLetter = true
			if !unicode.IsUpper(r) {
				return false
			}
		}
	}
	return hasLetter
}
