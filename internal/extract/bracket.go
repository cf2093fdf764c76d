package extract

import "strings"

// Bracket parses a bracketed key/value list like
// "[cel#: 14, obs#: 1, Cond: a]" into an attribute map. Keys are sanitized
// to their alphanumeric characters; if two keys collide after sanitization
// the later one overwrites the earlier.
func Bracket(text string) map[string]string {
	open := strings.Index(text, "[")
	if open < 0 {
		return nil
	}
	close := strings.Index(text[open:], "]")
	if close < 0 {
		return nil
	}
	interior := text[open+1 : open+close]

	fields := make(map[string]string)
	for _, pair := range strings.Split(interior, ",") {
		key, value, found := strings.Cut(pair, ":")
		if !found {
			continue
		}
		key = sanitizeKey(strings.TrimSpace(key))
		if key == "" {
			continue
		}
		fields[key] = strings.TrimSpace(value)
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}

// sanitizeKey strips every non-alphanumeric character from a key.
func sanitizeKey(key string) string {
	var b strings.Builder
	for _, r := range key {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
