package cli

import (
	"encoding/json"
	"fmt"

	"github.com/ahmadachkar-boop/condlab/internal/config"
)

// ConfigCmd shows or manages configuration
type ConfigCmd struct {
	Show     ConfigShowCmd     `cmd:"" default:"withargs" help:"Show current configuration"`
	Path     ConfigPathCmd     `cmd:"" help:"Show configuration file path"`
	Generate ConfigGenerateCmd `cmd:"" help:"Generate sample configuration file"`
}

// ConfigShowCmd shows current configuration
type ConfigShowCmd struct{}

// Run executes the config show command
func (c *ConfigShowCmd) Run(globals *Globals) error {
	cfg := globals.Config
	if cfg == nil {
		cfg = config.Default()
	}

	if globals.Format == "ndjson" {
		out := map[string]interface{}{
			"type":    "config",
			"format":  cfg.Format,
			"quiet":   cfg.Quiet,
			"verbose": cfg.Verbose,
			"classifier": map[string]interface{}{
				"mode":        cfg.Classifier.Mode,
				"model":       cfg.Classifier.Model,
				"timeout":     cfg.Classifier.Timeout,
				"api_key_set": cfg.Classifier.APIKey != "",
			},
		}
		encoder := json.NewEncoder(globals.Stdout)
		return encoder.Encode(out)
	}

	// Text output
	fmt.Fprintln(globals.Stdout, "Current Configuration:")
	fmt.Fprintln(globals.Stdout, "")
	fmt.Fprintf(globals.Stdout, "  format:  %s\n", cfg.Format)
	fmt.Fprintf(globals.Stdout, "  quiet:   %v\n", cfg.Quiet)
	fmt.Fprintf(globals.Stdout, "  verbose: %v\n", cfg.Verbose)
	fmt.Fprintln(globals.Stdout, "")
	fmt.Fprintln(globals.Stdout, "Classifier:")
	fmt.Fprintf(globals.Stdout, "  mode:    %s\n", cfg.Classifier.Mode)
	fmt.Fprintf(globals.Stdout, "  model:   %s\n", cfg.Classifier.Model)
	fmt.Fprintf(globals.Stdout, "  timeout: %s\n", cfg.Classifier.Timeout)
	fmt.Fprintf(globals.Stdout, "  api key: %v\n", cfg.Classifier.APIKey != "")

	if path := config.ConfigFile(); path != "" {
		fmt.Fprintln(globals.Stdout, "")
		fmt.Fprintf(globals.Stdout, "Loaded from: %s\n", path)
	}

	return nil
}

// ConfigPathCmd shows config file path
type ConfigPathCmd struct{}

// Run executes the config path command
func (c *ConfigPathCmd) Run(globals *Globals) error {
	path := config.ConfigFile()

	if globals.Format == "ndjson" {
		out := map[string]interface{}{
			"type": "config_path",
			"path": path,
		}
		encoder := json.NewEncoder(globals.Stdout)
		return encoder.Encode(out)
	}

	if path == "" {
		fmt.Fprintln(globals.Stdout, "No configuration file found")
		fmt.Fprintln(globals.Stdout, "")
		fmt.Fprintln(globals.Stdout, "Create one at:")
		fmt.Fprintln(globals.Stdout, "  ~/.condlab.yaml")
		fmt.Fprintln(globals.Stdout, "  ./.condlab.yaml")
		fmt.Fprintln(globals.Stdout, "  ~/.config/condlab/config.yaml")
	} else {
		fmt.Fprintf(globals.Stdout, "Config file: %s\n", path)
	}

	return nil
}

// ConfigGenerateCmd generates a sample configuration file
type ConfigGenerateCmd struct{}

// Run executes the config generate command
func (c *ConfigGenerateCmd) Run(globals *Globals) error {
	sampleConfig := `# condlab configuration file
# Place this file at ~/.condlab.yaml, ./.condlab.yaml,
# or ~/.config/condlab/config.yaml

# Output format: "ndjson" or "text"
# Leave unset to pick text on a terminal and ndjson otherwise.
# format: ndjson

# Suppress diagnostic output
quiet: false

# Enable verbose/debug output
verbose: false

# External field classifier
classifier:
  # Policy: never, always, or auto (consult only on low-confidence discovery)
  mode: auto

  # Gemini model to use
  model: gemini-2.5-flash

  # Per-request timeout
  timeout: 60s

  # API key; prefer the GEMINI_API_KEY environment variable
  # api_key: ...
`

	fmt.Fprint(globals.Stdout, sampleConfig)
	return nil
}
