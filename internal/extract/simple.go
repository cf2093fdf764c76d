package extract

import "strings"

// Simple treats the whole event text as the single label candidate; bare
// codes have no sub-fields to discover.
func Simple(text string) map[string]string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	return map[string]string{"value": text}
}
