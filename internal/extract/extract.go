// Package extract turns one raw event record into an attribute-name to
// attribute-value map, using one pure extraction strategy per detected
// format.
package extract

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ahmadachkar-boop/condlab/internal/domain"
)

// basicAttrs are bookkeeping attributes common to every event record; they
// never carry condition information and are skipped by extraction.
var basicAttrs = map[string]bool{
	"type":         true,
	"latency":      true,
	"duration":     true,
	"ur-reference": true,
	"urevent":      true,
}

// Fields maps an event to its attribute map using the extractor for the
// detected format. An unknown format falls back to trying bracket first,
// then attribute-record extraction.
func Fields(ev *domain.EventRecord, format domain.Format) map[string]string {
	switch format {
	case domain.FormatBracket:
		return Bracket(ev.Type)
	case domain.FormatFields:
		return Record(ev)
	case domain.FormatDelimiter:
		return Delimiter(ev.Type)
	case domain.FormatSimple:
		return Simple(ev.Type)
	default:
		if fields := Bracket(ev.Type); len(fields) > 0 {
			return fields
		}
		return Record(ev)
	}
}

// IsBasicAttr reports whether name is one of the fixed bookkeeping attributes.
func IsBasicAttr(name string) bool {
	return basicAttrs[strings.ToLower(name)]
}

// CanonicalText converts an attribute value of any supported representation
// to its canonical text form.
func CanonicalText(v any) string {
	switch x := v.(type) {
	case string:
		return strings.TrimSpace(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case bool:
		return strconv.FormatBool(x)
	case nil:
		return ""
	default:
		return strings.TrimSpace(fmt.Sprint(x))
	}
}
