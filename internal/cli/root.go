package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"go.uber.org/zap"

	"github.com/ahmadachkar-boop/condlab/internal/classifier"
	"github.com/ahmadachkar-boop/condlab/internal/config"
	"github.com/ahmadachkar-boop/condlab/internal/logger"
)

// CLI is the root command structure for condlab
type CLI struct {
	// Global flags
	Format        string `short:"f" default:"${config_format}" help:"Output format: ndjson or text (default: text on a terminal, ndjson otherwise)"`
	Classifier    string `short:"c" enum:"never,always,auto" default:"${config_classifier}" help:"External classifier policy"`
	MaxConditions int    `help:"Limit reported conditions to the N most frequent (0 = all)"`
	Quiet         bool   `short:"q" help:"Suppress diagnostic output"`
	Verbose       bool   `short:"v" help:"Show debug output (sampling, rule matches, classifier decisions)"`

	// Commands
	Analyze AnalyzeCmd `cmd:"" default:"withargs" help:"Infer condition labels from event-marker files"`
	Detect  DetectCmd  `cmd:"" help:"Detect the event text structure of a file"`
	Fields  FieldsCmd  `cmd:"" help:"Discover and classify event fields"`
	Label   LabelCmd   `cmd:"" help:"Print the derived label for every event"`
	Config  ConfigCmd  `cmd:"" help:"Show or manage configuration"`
	Version VersionCmd `cmd:"" help:"Show version information"`
}

// Globals holds shared state for all commands
type Globals struct {
	Format        string
	Classifier    string
	MaxConditions int
	Quiet         bool
	Verbose       bool
	Stdout        io.Writer
	Stderr        io.Writer
	Config        *config.Config
	Logger        *zap.Logger
}

// NewGlobalsWithConfig creates a Globals instance with config fallbacks.
// Format resolution: flag, then config file, then terminal detection.
func NewGlobalsWithConfig(cli *CLI, cfg *config.Config) (*Globals, error) {
	if cfg == nil {
		cfg = config.Default()
	}

	g := &Globals{
		Format:        cli.Format,
		Classifier:    cli.Classifier,
		MaxConditions: cli.MaxConditions,
		Quiet:         cli.Quiet || cfg.Quiet,
		Verbose:       cli.Verbose || cfg.Verbose,
		Stdout:        os.Stdout,
		Stderr:        os.Stderr,
		Config:        cfg,
	}

	if g.Format == "" {
		g.Format = cfg.Format
	}
	switch g.Format {
	case "ndjson", "text":
	case "":
		if isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()) {
			g.Format = "text"
		} else {
			g.Format = "ndjson"
		}
	default:
		return nil, fmt.Errorf("invalid format %q (expected ndjson or text)", g.Format)
	}

	log, err := logger.New(g.Verbose, g.Quiet)
	if err != nil {
		return nil, err
	}
	g.Logger = log

	return g, nil
}

// ClassifierMode returns the effective external classifier policy.
func (g *Globals) ClassifierMode() classifier.Mode {
	return classifier.ParseMode(g.Classifier)
}

// NewClassifier builds the Gemini classifier from config, or returns nil
// when the policy is "never" or no API key is available.
func (g *Globals) NewClassifier() classifier.Classifier {
	if g.ClassifierMode() == classifier.ModeNever || g.Config == nil {
		return nil
	}
	cc := g.Config.Classifier
	if cc.APIKey == "" {
		g.Logger.Debug("no classifier API key configured, using heuristics only")
		return nil
	}
	timeout, err := time.ParseDuration(cc.Timeout)
	if err != nil {
		timeout = 0
	}
	c, err := classifier.NewGemini(classifier.GeminiConfig{
		APIKey:  cc.APIKey,
		Model:   cc.Model,
		Timeout: timeout,
	}, g.Logger)
	if err != nil {
		g.Logger.Warn("classifier unavailable, using heuristics only", zap.Error(err))
		return nil
	}
	return c
}

// VersionCmd shows version information
type VersionCmd struct{}

// Run executes the version command
func (v *VersionCmd) Run(globals *Globals) error {
	if globals.Format == "ndjson" {
		_, err := io.WriteString(globals.Stdout, `{"type":"version","version":"`+Version+`","commit":"`+Commit+`"}`+"\n")
		return err
	}
	_, err := io.WriteString(globals.Stdout, "condlab version "+Version+" ("+Commit+")\n")
	return err
}

// Version information (set at build time)
var (
	Version = "dev"
	Commit  = "none"
)
