// Package main provides the sbml2rdf binary entry point.
// sbml2rdf converts a metabolic network model into an RDF graph described
// with the biomodels SBML vocabulary, optionally enriched with derived links.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/c360studio/sbml2rdf/config"
	"github.com/c360studio/sbml2rdf/enrich"
	"github.com/c360studio/sbml2rdf/export"
	"github.com/c360studio/sbml2rdf/pipeline"
	"github.com/c360studio/sbml2rdf/publish"
	"github.com/c360studio/sbml2rdf/watch"
	"github.com/c360studio/semstreams/natsclient"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "sbml2rdf"
)

// options holds the command-line flags. Flags left unset do not override
// the loaded configuration.
type options struct {
	configPath    string
	input         []string
	uri           string
	output        string
	format        string
	sideCompounds string
	harmonize     bool
	sameAs        bool
	derivation    bool
	transitive    bool
	publish       bool
	natsURL       string
	watch         bool
	silent        bool
	logLevel      string
}

func main() {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "sbml2rdf",
		Short: "Convert a metabolic network model into RDF",
		Long: `sbml2rdf converts a metabolic network model into an RDF graph using the
biomodels SBML vocabulary (http://identifiers.org/biomodels.vocabulary#).

Optional enrichment passes add:
- side compound tags on reaction participants (--side-compounds)
- links between same-named species across compartments (--harmonize)
- direct species-to-species derivation links (--derivation)

The model URI must uniquely identify the model, for example
https://www.ebi.ac.uk/biomodels/MODEL1311110001`,
		Example: `  sbml2rdf -i path/to/model.yaml -u 'http://my.model.uri#id' -o path/to/output.ttl
  sbml2rdf -i 'models/**/*.yaml' -u http://my.models -o out/ --derivation --side-compounds side.txt`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.configPath, "config", "c", "", "Config file path (YAML)")
	f.StringSliceVarP(&opts.input, "input", "i", nil, "Input model file or glob (repeatable, ** supported)")
	f.StringVarP(&opts.uri, "uri", "u", "", "URI that uniquely identifies the model")
	f.StringVarP(&opts.output, "output", "o", "", "Output file, directory for several inputs, or - for stdout")
	f.StringVar(&opts.format, "format", "", "Output format (turtle, ntriples, jsonld)")
	f.StringVar(&opts.sideCompounds, "side-compounds", "", "File listing side compound ids; enables side compound tagging")
	f.BoolVar(&opts.harmonize, "harmonize", false, "Link same-named species across compartments")
	f.BoolVar(&opts.sameAs, "same-as", false, "Use owl:sameAs for harmonization links")
	f.BoolVar(&opts.derivation, "derivation", false, "Add species derivation links")
	f.BoolVar(&opts.transitive, "transitive", false, "Use the transitive derives-into predicate")
	f.BoolVar(&opts.publish, "publish", false, "Publish graph entities to NATS")
	f.StringVar(&opts.natsURL, "nats-url", "", "NATS server URL (overrides config and NATS_URL)")
	f.BoolVar(&opts.watch, "watch", false, "Re-run conversion when input files change")
	f.BoolVarP(&opts.silent, "silent", "s", false, "Disable console output")
	f.StringVar(&opts.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	_ = cmd.MarkFlagRequired("input")

	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write the default user config unless one exists",
		Long:  "Writes ~/" + config.UserConfigDir + "/" + config.UserConfigFile + " with default settings.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return config.NewLoader(nil).EnsureUserConfig()
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s version %s (build: %s)\n", appName, Version, BuildTime)
		},
	})

	return cmd
}

func run(cmd *cobra.Command, opts options) error {
	logger := newLogger(opts.logLevel, opts.silent)
	slog.SetDefault(logger)

	cfg, err := config.NewLoader(logger).Load(opts.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := applyFlags(cmd, cfg, opts); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	console := consoleWriter(cfg.Output.Path, opts.silent)
	if console != nil {
		printBanner(console)
	}

	inputs, err := expandInputs(opts.input)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var publisher *publish.Publisher
	if cfg.NATS.Enabled {
		client, err := connectToNATS(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer client.Close(context.Background())
		publisher = publish.New(client, cfg.NATS.Subject, logger)
	}

	metrics := pipeline.NewMetrics(prometheus.NewRegistry())
	app, err := NewApp(cfg, inputs, metrics, publisher, logger, console)
	if err != nil {
		return err
	}

	results, err := app.RunAll(ctx)
	if err != nil {
		return err
	}
	if console != nil && len(results) > 1 {
		printSummary(console, results)
	}

	if !cfg.Watch.Enabled {
		return nil
	}
	w, err := watch.New(cfg.Watch, inputs, logger)
	if err != nil {
		return err
	}
	return app.Watch(ctx, w)
}

// applyFlags overlays explicitly set command-line flags onto cfg.
func applyFlags(cmd *cobra.Command, cfg *config.Config, opts options) error {
	flags := cmd.Flags()
	if opts.uri != "" {
		cfg.Conversion.BaseURI = opts.uri
	}
	if opts.output != "" {
		cfg.Output.Path = opts.output
	}

	if opts.format != "" {
		format, err := export.ParseFormat(opts.format)
		if err != nil {
			return err
		}
		cfg.Output.Format = string(format)
	} else if opts.output != "" {
		if format, ok := export.FormatForPath(opts.output); ok {
			cfg.Output.Format = string(format)
		}
	}

	if opts.sideCompounds != "" {
		cfg.Enrichment.SideCompoundsFile = opts.sideCompounds
	}
	if flags.Changed("same-as") {
		cfg.Enrichment.UseSameAs = opts.sameAs
	}
	if flags.Changed("transitive") {
		cfg.Enrichment.Transitive = opts.transitive
	}

	// Pass flags replace the configured pass list, in the recommended order.
	if opts.sideCompounds != "" || opts.harmonize || opts.derivation {
		var passes []string
		if opts.sideCompounds != "" {
			passes = append(passes, string(enrich.PassSideCompounds))
		}
		if opts.harmonize {
			passes = append(passes, string(enrich.PassHarmonize))
		}
		if opts.derivation {
			passes = append(passes, string(enrich.PassDerivation))
		}
		cfg.Enrichment.Passes = passes
	}

	if flags.Changed("publish") {
		cfg.NATS.Enabled = opts.publish
	}
	if opts.natsURL != "" {
		cfg.NATS.URL = opts.natsURL
	}
	if flags.Changed("watch") {
		cfg.Watch.Enabled = opts.watch
	}
	return nil
}

// consoleWriter returns where progress is reported. When the graph itself is
// written to stdout the report moves to stderr.
func consoleWriter(outputPath string, silent bool) io.Writer {
	switch {
	case silent:
		return nil
	case outputPath == "-":
		return os.Stderr
	default:
		return os.Stdout
	}
}

// expandInputs resolves each input to files, expanding glob patterns.
func expandInputs(patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	for _, pattern := range patterns {
		if !containsGlob(pattern) {
			if _, err := os.Stat(pattern); err != nil {
				return nil, fmt.Errorf("input %s: %w", pattern, err)
			}
			if !seen[pattern] {
				seen[pattern] = true
				files = append(files, pattern)
			}
			continue
		}

		// Use doublestar for ** support
		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("glob error: %w", err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no files match pattern: %s", pattern)
		}
		sort.Strings(matches)
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				files = append(files, m)
			}
		}
	}
	return files, nil
}

// containsGlob checks if a pattern contains glob characters.
func containsGlob(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[{")
}

func newLogger(level string, silent bool) *slog.Logger {
	lvl := slog.LevelInfo
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	}
	if silent {
		lvl = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

func printBanner(w io.Writer) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, " _____ _____ _____ __       ___    _____ ____  _____ ")
	fmt.Fprintln(w, "|   __| __  |     |  |     |_  |  | __  |    \\|   __|")
	fmt.Fprintln(w, "|__   | __ -| | | |  |__   |  _|  |    -|  |  |   __|")
	fmt.Fprintln(w, "|_____|_____|_|_|_|_____|  |___|  |__|__|____/|__|   ")
	fmt.Fprintf(w, "%s v%s\n\n", appName, Version)
}

func printSummary(w io.Writer, results []Result) {
	fmt.Fprintln(w, "\nSummary")
	for _, r := range results {
		fmt.Fprintf(w, "  %s: %d compartments, %d species, %d reactions, %d triples (+%d enriched) -> %s\n",
			filepath.Base(r.Input),
			r.Summary.Compartments, r.Summary.Species, r.Summary.Reactions,
			r.Summary.Triples, r.Enrich.Total, r.Output)
	}
}

func connectToNATS(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*natsclient.Client, error) {
	natsURL := cfg.NATS.URL

	logger.Info("Connecting to NATS", "url", natsURL)

	client, err := natsclient.NewClient(natsURL,
		natsclient.WithName(appName),
		natsclient.WithMaxReconnects(-1),
		natsclient.WithReconnectWait(time.Second),
		natsclient.WithHealthInterval(30*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("create NATS client: %w", err)
	}

	if err := client.Connect(ctx); err != nil {
		return nil, wrapNATSError(err, natsURL)
	}

	connCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := client.WaitForConnection(connCtx); err != nil {
		return nil, wrapNATSError(err, natsURL)
	}

	logger.Info("Connected to NATS", "url", natsURL)
	return client, nil
}

// wrapNATSError provides helpful guidance when NATS connection fails.
func wrapNATSError(err error, url string) error {
	errStr := err.Error()

	if strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "no servers available") ||
		strings.Contains(errStr, "timeout") {
		return fmt.Errorf(`NATS connection failed: %w

NATS is not running at %s.

Start a server with JetStream enabled:
  docker run -p 4222:4222 nats -js

Or set --nats-url / NATS_URL to point to your NATS server.`, err, url)
	}

	return fmt.Errorf("NATS connection failed: %w", err)
}
