package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ahmadachkar-boop/condlab/internal/config"
)

// testGlobals creates a Globals struct with captured stdout/stderr
func testGlobals(format string) (*Globals, *bytes.Buffer, *bytes.Buffer) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	return &Globals{
		Format:     format,
		Classifier: "never",
		Quiet:      true,
		Stdout:     stdout,
		Stderr:     stderr,
		Config:     config.Default(),
		Logger:     zap.NewNop(),
	}, stdout, stderr
}

// writeEventsFile writes a bracket-format NDJSON fixture with two
// alternating conditions.
func writeEventsFile(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "events.ndjson")
	f, err := os.Create(path)
	require.NoError(t, err)
	for i := 0; i < 60; i++ {
		cond := "a"
		if i%2 == 1 {
			cond = "b"
		}
		line := fmt.Sprintf(`{"type":"stim [cel: 14, obs: %d, Cond: %s]","latency":%d}`, i+1, cond, i*500)
		_, err := f.WriteString(line + "\n")
		require.NoError(t, err)
	}
	require.NoError(t, f.Close())
	return path
}

// --- Analyze Command Tests ---

func TestAnalyzeCmd_Run(t *testing.T) {
	tmpDir := t.TempDir()
	eventsFile := writeEventsFile(t, tmpDir)

	t.Run("analyzes events in NDJSON format", func(t *testing.T) {
		globals, stdout, _ := testGlobals("ndjson")
		cmd := &AnalyzeCmd{Files: []string{eventsFile}}

		err := cmd.Run(globals)
		require.NoError(t, err)

		var result map[string]interface{}
		err = json.Unmarshal(stdout.Bytes(), &result)
		require.NoError(t, err)

		assert.Equal(t, "conditions", result["type"])
		assert.Contains(t, result, "structure")
		assert.Contains(t, result, "conditions")
		assert.Contains(t, result, "summary")
	})

	t.Run("analyzes events in text format", func(t *testing.T) {
		globals, stdout, _ := testGlobals("text")
		cmd := &AnalyzeCmd{Files: []string{eventsFile}}

		err := cmd.Run(globals)
		require.NoError(t, err)

		output := stdout.String()
		assert.Contains(t, output, "format=bracket")
		assert.Contains(t, output, "conditions from")
	})

	t.Run("emits results in argument order for multiple files", func(t *testing.T) {
		globals, stdout, _ := testGlobals("ndjson")
		second := filepath.Join(tmpDir, "second.ndjson")
		data, err := os.ReadFile(eventsFile)
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(second, data, 0644))

		cmd := &AnalyzeCmd{Files: []string{eventsFile, second}}
		require.NoError(t, cmd.Run(globals))

		lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
		require.Len(t, lines, 2)

		var first map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
		assert.Equal(t, eventsFile, first["file"])
		var secondOut map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(lines[1]), &secondOut))
		assert.Equal(t, second, secondOut["file"])
	})

	t.Run("max conditions trims the reported set", func(t *testing.T) {
		globals, stdout, _ := testGlobals("ndjson")
		globals.MaxConditions = 1
		cmd := &AnalyzeCmd{Files: []string{eventsFile}}

		require.NoError(t, cmd.Run(globals))

		var result map[string]interface{}
		require.NoError(t, json.Unmarshal(stdout.Bytes(), &result))
		conditions := result["conditions"].(map[string]interface{})["conditions"].([]interface{})
		assert.Len(t, conditions, 1)
	})

	t.Run("returns error for non-existent file", func(t *testing.T) {
		globals, _, _ := testGlobals("text")
		cmd := &AnalyzeCmd{Files: []string{"/nonexistent/file.ndjson"}}

		err := cmd.Run(globals)
		assert.Error(t, err)
	})

	t.Run("reports per-file failures but processes survivors", func(t *testing.T) {
		globals, stdout, _ := testGlobals("ndjson")
		cmd := &AnalyzeCmd{Files: []string{"/nonexistent/file.ndjson", eventsFile}}

		err := cmd.Run(globals)
		assert.Error(t, err)

		lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
		require.Len(t, lines, 2)

		var first map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
		assert.Equal(t, "error", first["type"])
		var secondOut map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(lines[1]), &secondOut))
		assert.Equal(t, "conditions", secondOut["type"])
	})

	t.Run("returns error for empty file", func(t *testing.T) {
		emptyFile := filepath.Join(tmpDir, "empty.ndjson")
		require.NoError(t, os.WriteFile(emptyFile, []byte{}, 0644))

		globals, _, _ := testGlobals("text")
		cmd := &AnalyzeCmd{Files: []string{emptyFile}}

		err := cmd.Run(globals)
		assert.Error(t, err)
	})
}

// --- Detect Command Tests ---

func TestDetectCmd_Run(t *testing.T) {
	tmpDir := t.TempDir()
	eventsFile := writeEventsFile(t, tmpDir)

	t.Run("detects structure in NDJSON format", func(t *testing.T) {
		globals, stdout, _ := testGlobals("ndjson")
		cmd := &DetectCmd{File: eventsFile}

		err := cmd.Run(globals)
		require.NoError(t, err)

		var result map[string]interface{}
		err = json.Unmarshal(stdout.Bytes(), &result)
		require.NoError(t, err)

		assert.Equal(t, "structure", result["type"])
		structure := result["structure"].(map[string]interface{})
		assert.Equal(t, "bracket", structure["format"])
	})

	t.Run("detects structure in text format", func(t *testing.T) {
		globals, stdout, _ := testGlobals("text")
		cmd := &DetectCmd{File: eventsFile}

		err := cmd.Run(globals)
		require.NoError(t, err)

		output := stdout.String()
		assert.Contains(t, output, "Format:     bracket")
		assert.Contains(t, output, "Pattern:    stim")
	})

	t.Run("returns error for non-existent file", func(t *testing.T) {
		globals, _, _ := testGlobals("text")
		cmd := &DetectCmd{File: "/nonexistent/file.ndjson"}

		err := cmd.Run(globals)
		assert.Error(t, err)
	})
}

// --- Fields Command Tests ---

func TestFieldsCmd_Run(t *testing.T) {
	tmpDir := t.TempDir()
	eventsFile := writeEventsFile(t, tmpDir)

	t.Run("discovers fields in NDJSON format", func(t *testing.T) {
		globals, stdout, _ := testGlobals("ndjson")
		cmd := &FieldsCmd{File: eventsFile}

		err := cmd.Run(globals)
		require.NoError(t, err)

		var result map[string]interface{}
		err = json.Unmarshal(stdout.Bytes(), &result)
		require.NoError(t, err)

		assert.Equal(t, "discovery", result["type"])
		discovery := result["discovery"].(map[string]interface{})
		grouping := discovery["grouping_fields"].([]interface{})
		assert.Contains(t, grouping, "Cond")
	})

	t.Run("discovers fields in text format", func(t *testing.T) {
		globals, stdout, _ := testGlobals("text")
		cmd := &FieldsCmd{File: eventsFile}

		err := cmd.Run(globals)
		require.NoError(t, err)

		output := stdout.String()
		assert.Contains(t, output, "Cond")
		assert.Contains(t, output, "grouping:")
	})
}

// --- Label Command Tests ---

func TestLabelCmd_Run(t *testing.T) {
	tmpDir := t.TempDir()
	eventsFile := writeEventsFile(t, tmpDir)

	t.Run("labels every event in NDJSON format", func(t *testing.T) {
		globals, stdout, _ := testGlobals("ndjson")
		cmd := &LabelCmd{File: eventsFile}

		err := cmd.Run(globals)
		require.NoError(t, err)

		lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
		assert.Len(t, lines, 60)

		var first map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
		assert.Equal(t, "label", first["type"])
		assert.Equal(t, "a", first["label"])
		var second map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(lines[1]), &second))
		assert.Equal(t, "b", second["label"])
	})

	t.Run("honors limit", func(t *testing.T) {
		globals, stdout, _ := testGlobals("ndjson")
		cmd := &LabelCmd{File: eventsFile, Limit: 5}

		err := cmd.Run(globals)
		require.NoError(t, err)

		lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
		assert.Len(t, lines, 5)
	})

	t.Run("labels in text format", func(t *testing.T) {
		globals, stdout, _ := testGlobals("text")
		cmd := &LabelCmd{File: eventsFile, Limit: 2}

		err := cmd.Run(globals)
		require.NoError(t, err)

		output := stdout.String()
		assert.Contains(t, output, "a")
		assert.Contains(t, output, "b")
	})
}

// --- Config Command Tests ---

func TestConfigShowCmd_Run(t *testing.T) {
	t.Run("outputs config in text format", func(t *testing.T) {
		globals, stdout, _ := testGlobals("text")
		cmd := &ConfigShowCmd{}

		err := cmd.Run(globals)
		require.NoError(t, err)

		output := stdout.String()
		assert.Contains(t, output, "Current Configuration:")
		assert.Contains(t, output, "format:")
		assert.Contains(t, output, "Classifier:")
	})

	t.Run("outputs config in NDJSON format", func(t *testing.T) {
		globals, stdout, _ := testGlobals("ndjson")
		cmd := &ConfigShowCmd{}

		err := cmd.Run(globals)
		require.NoError(t, err)

		var result map[string]interface{}
		err = json.Unmarshal(stdout.Bytes(), &result)
		require.NoError(t, err)

		assert.Equal(t, "config", result["type"])
		assert.Contains(t, result, "format")
		assert.Contains(t, result, "classifier")
	})
}

func TestConfigPathCmd_Run(t *testing.T) {
	t.Run("outputs path info in text format when no config", func(t *testing.T) {
		globals, stdout, _ := testGlobals("text")
		cmd := &ConfigPathCmd{}

		err := cmd.Run(globals)
		require.NoError(t, err)

		output := stdout.String()
		// Either shows the path or says no config found
		assert.True(t, strings.Contains(output, "Config file:") || strings.Contains(output, "No configuration file found"))
	})

	t.Run("outputs path in NDJSON format", func(t *testing.T) {
		globals, stdout, _ := testGlobals("ndjson")
		cmd := &ConfigPathCmd{}

		err := cmd.Run(globals)
		require.NoError(t, err)

		var result map[string]interface{}
		err = json.Unmarshal(stdout.Bytes(), &result)
		require.NoError(t, err)

		assert.Equal(t, "config_path", result["type"])
		assert.Contains(t, result, "path")
	})
}

func TestConfigGenerateCmd_Run(t *testing.T) {
	t.Run("outputs sample config YAML", func(t *testing.T) {
		globals, stdout, _ := testGlobals("text")
		cmd := &ConfigGenerateCmd{}

		err := cmd.Run(globals)
		require.NoError(t, err)

		output := stdout.String()
		assert.Contains(t, output, "# condlab configuration file")
		assert.Contains(t, output, "classifier:")
		assert.Contains(t, output, "mode: auto")
		assert.Contains(t, output, "model: gemini-2.5-flash")
	})
}

// --- Version Command Tests ---

func TestVersionCmd_Run(t *testing.T) {
	t.Run("outputs version in text format", func(t *testing.T) {
		globals, stdout, _ := testGlobals("text")
		cmd := &VersionCmd{}

		err := cmd.Run(globals)
		require.NoError(t, err)

		output := stdout.String()
		assert.Contains(t, output, "condlab version")
	})

	t.Run("outputs version in NDJSON format", func(t *testing.T) {
		globals, stdout, _ := testGlobals("ndjson")
		cmd := &VersionCmd{}

		err := cmd.Run(globals)
		require.NoError(t, err)

		var result map[string]interface{}
		err = json.Unmarshal(stdout.Bytes(), &result)
		require.NoError(t, err)

		assert.Equal(t, "version", result["type"])
		assert.Contains(t, result, "version")
		assert.Contains(t, result, "commit")
	})
}

// --- Classifier wiring tests ---

func TestGlobals_NewClassifier(t *testing.T) {
	t.Run("returns nil when mode is never", func(t *testing.T) {
		globals, _, _ := testGlobals("ndjson")
		globals.Config.Classifier.APIKey = "key"
		assert.Nil(t, globals.NewClassifier())
	})

	t.Run("returns nil without API key", func(t *testing.T) {
		globals, _, _ := testGlobals("ndjson")
		globals.Classifier = "auto"
		globals.Config.Classifier.APIKey = ""
		assert.Nil(t, globals.NewClassifier())
	})
}
