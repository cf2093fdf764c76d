package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/ahmadachkar-boop/condlab/internal/cli"
	"github.com/ahmadachkar-boop/condlab/internal/config"
)

func main() {
	// Load configuration from files/environment
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load config: %v\n", err)
		cfg = config.Default()
	}

	var c cli.CLI

	// Apply config defaults before parsing
	// These will be overridden by CLI flags if specified
	vars := kong.Vars{
		"config_format":     cfg.Format,
		"config_classifier": cfg.Classifier.Mode,
	}

	ctx := kong.Parse(&c,
		kong.Name("condlab"),
		kong.Description("condlab: infer condition labels from electrophysiology event markers\n\nSTART HERE: condlab analyze events.ndjson"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
			Summary: true,
		}),
		vars,
	)

	globals, err := cli.NewGlobalsWithConfig(&c, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = globals.Logger.Sync()
	}()

	if err := ctx.Run(globals); err != nil {
		os.Exit(1)
	}
}
