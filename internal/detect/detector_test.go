package detect

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahmadachkar-boop/condlab/internal/domain"
)

func makeEvents(texts ...string) []domain.EventRecord {
	events := make([]domain.EventRecord, len(texts))
	for i, t := range texts {
		events[i] = domain.EventRecord{Type: t, Latency: float64(i * 100)}
	}
	return events
}

func TestDetect(t *testing.T) {
	detector := New(nil)

	t.Run("bracket format", func(t *testing.T) {
		events := makeEvents(
			"[cel#: 14, obs#: 1, Cond: a, Code: y]",
			"[cel#: 15, obs#: 2, Cond: b, Code: n]",
			"[cel#: 16, obs#: 3, Cond: a, Code: y]",
		)
		structure := detector.Detect(events)
		assert.Equal(t, domain.FormatBracket, structure.Format)
		assert.Equal(t, 1.0, structure.Confidence)
		assert.Equal(t, 3, structure.NumEvents)
	})

	t.Run("delimiter format", func(t *testing.T) {
		events := makeEvents(
			"STIM_G23_word_verb",
			"STIM_G24_nonword_verb",
			"STIM_G25_word_noun",
		)
		structure := detector.Detect(events)
		assert.Equal(t, domain.FormatDelimiter, structure.Format)
		assert.Equal(t, "STIM", structure.EventPattern)
	})

	t.Run("simple format", func(t *testing.T) {
		events := makeEvents("DIN1", "DIN2", "DIN1", "DIN3")
		structure := detector.Detect(events)
		assert.Equal(t, domain.FormatSimple, structure.Format)
		assert.Equal(t, 1.0, structure.Confidence)
	})

	t.Run("rich attribute records", func(t *testing.T) {
		events := make([]domain.EventRecord, 4)
		for i := range events {
			events[i] = domain.EventRecord{
				Type:    fmt.Sprintf("trial %d", i),
				Latency: float64(i),
				Attrs: []domain.Attribute{
					{Name: "condition", Value: "go"},
					{Name: "rt", Value: float64(i) * 1.5},
				},
			}
		}
		structure := detector.Detect(events)
		assert.Equal(t, domain.FormatFields, structure.Format)
	})

	t.Run("zero events", func(t *testing.T) {
		structure := detector.Detect(nil)
		assert.Equal(t, domain.FormatUnknown, structure.Format)
		assert.Zero(t, structure.Confidence)
		assert.Empty(t, structure.EventPattern)
	})

	t.Run("no pattern when confidence too low", func(t *testing.T) {
		// One delimited event among many unclassifiable long strings.
		events := makeEvents(
			"a_b_c_d",
			"some very long event text without separators here",
			"another very long event text without separators",
			"yet another very long event text with no separators",
		)
		structure := detector.Detect(events)
		assert.LessOrEqual(t, structure.Confidence, MinConfidence)
		assert.Empty(t, structure.EventPattern)
	})

	t.Run("keyword pattern fallback", func(t *testing.T) {
		// First event's leading token covers only itself, but the trigger
		// vocabulary still matches a majority.
		events := makeEvents(
			"trial_1_a_x",
			"stim_2_b_x",
			"stim_3_a_y",
			"stim_4_b_y",
		)
		structure := detector.Detect(events)
		require.Equal(t, domain.FormatDelimiter, structure.Format)
		assert.Equal(t, "stim", structure.EventPattern)
	})
}

func TestDetectDeterminism(t *testing.T) {
	events := make([]domain.EventRecord, 1234)
	for i := range events {
		events[i] = domain.EventRecord{Type: fmt.Sprintf("STIM_%d_word_verb", i)}
	}
	detector := New(nil)
	first := detector.Detect(events)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, detector.Detect(events))
	}
}
