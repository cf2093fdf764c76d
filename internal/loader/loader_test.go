package loader

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadNDJSON(t *testing.T) {
	input := strings.Join([]string{
		`{"type": "STIM_G23_word_verb", "latency": 1024}`,
		``,
		`{"type": "DIN1", "latency": 2048, "duration": 2, "condition": "go", "rt": 431.5}`,
		`not json at all`,
		`{"latency": 4096, "note": "missing type"}`,
		`{"type": 42, "latency": 8192}`,
	}, "\n")

	res, err := Read(strings.NewReader(input), nil)
	require.NoError(t, err)

	require.Len(t, res.Events, 4)
	assert.Equal(t, 1, res.Skipped)

	assert.Equal(t, "STIM_G23_word_verb", res.Events[0].Type)
	assert.Equal(t, 1024.0, res.Events[0].Latency)

	ev := res.Events[1]
	assert.Equal(t, "DIN1", ev.Type)
	assert.Equal(t, 2.0, ev.Duration)
	require.Len(t, ev.Attrs, 2)
	assert.Equal(t, "condition", ev.Attrs[0].Name)
	assert.Equal(t, "go", ev.Attrs[0].Value)
	assert.Equal(t, "rt", ev.Attrs[1].Name)

	// No type field but attributes present: kept, classified later.
	assert.False(t, res.Events[2].HasPrimaryField())

	// Numeric type codes canonicalize to text.
	assert.Equal(t, "42", res.Events[3].Type)
}

func TestReadArray(t *testing.T) {
	input := `[
		{"type": "[Cond: a, Code: y]", "latency": 100},
		{"type": "[Cond: b, Code: n]", "latency": 200},
		"just a string"
	]`
	res, err := Read(strings.NewReader(input), nil)
	require.NoError(t, err)
	require.Len(t, res.Events, 2)
	assert.Equal(t, 1, res.Skipped)
	assert.Equal(t, "[Cond: a, Code: y]", res.Events[0].Type)
}

func TestReadEmpty(t *testing.T) {
	res, err := Read(strings.NewReader(""), nil)
	require.NoError(t, err)
	assert.Empty(t, res.Events)
}

func TestReadAttributeOrderPreserved(t *testing.T) {
	input := `{"type": "t", "zeta": 1, "alpha": 2, "mid": 3}`
	res, err := Read(strings.NewReader(input), nil)
	require.NoError(t, err)
	require.Len(t, res.Events, 1)

	names := make([]string, 0, 3)
	for _, a := range res.Events[0].Attrs {
		names = append(names, a.Name)
	}
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, names)
}

func TestParseEventPrimaryFieldAliases(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		expected string
	}{
		{"type preferred", `{"type": "A", "code": "B"}`, "A"},
		{"code fallback", `{"code": "B", "latency": 1}`, "B"},
		{"value fallback", `{"value": "C"}`, "C"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Read(strings.NewReader(tt.line), nil)
			require.NoError(t, err)
			require.Len(t, res.Events, 1)
			assert.Equal(t, tt.expected, res.Events[0].Type)
		})
	}
}

func TestReadRejectsMalformedArray(t *testing.T) {
	_, err := Read(strings.NewReader("[{"), nil)
	assert.Error(t, err)
}
