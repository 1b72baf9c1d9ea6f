package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/c360studio/sbml2rdf/biomodel"
	"github.com/c360studio/sbml2rdf/config"
	"github.com/c360studio/sbml2rdf/enrich"
	"github.com/c360studio/sbml2rdf/export"
	"github.com/c360studio/sbml2rdf/graph"
	"github.com/c360studio/sbml2rdf/pipeline"
	"github.com/c360studio/sbml2rdf/publish"
	"github.com/c360studio/sbml2rdf/watch"
)

// Result reports the outcome of processing one model file.
type Result struct {
	Input   string
	Output  string
	URI     string
	Summary pipeline.Summary
	Enrich  enrich.Report
	Sent    int
}

// App converts model files according to a resolved configuration.
type App struct {
	cfg       *config.Config
	inputs    []string
	format    export.Format
	passes    []enrich.Pass
	pipeline  *pipeline.Pipeline
	exporter  *export.Exporter
	publisher *publish.Publisher
	logger    *slog.Logger

	// console receives the human-readable progress report (nil = silent).
	console io.Writer
}

// NewApp validates cfg against inputs and wires the pipeline. A nil
// publisher disables publishing.
func NewApp(cfg *config.Config, inputs []string, metrics *pipeline.Metrics, publisher *publish.Publisher, logger *slog.Logger, console io.Writer) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if len(inputs) == 0 {
		return nil, fmt.Errorf("no input models")
	}
	if cfg.Conversion.BaseURI == "" {
		return nil, fmt.Errorf("a model URI is required (--uri or conversion.base_uri)")
	}

	format, err := export.ParseFormat(cfg.Output.Format)
	if err != nil {
		return nil, err
	}
	passes, err := cfg.Enrichment.ParsedPasses()
	if err != nil {
		return nil, err
	}

	return &App{
		cfg:       cfg,
		inputs:    inputs,
		format:    format,
		passes:    passes,
		pipeline:  pipeline.New(nil, metrics, logger),
		exporter:  export.NewExporter(nil),
		publisher: publisher,
		logger:    logger,
		console:   console,
	}, nil
}

// RunAll processes every input and stops at the first failure.
func (a *App) RunAll(ctx context.Context) ([]Result, error) {
	results := make([]Result, 0, len(a.inputs))
	for _, input := range a.inputs {
		res, err := a.Process(ctx, input)
		if err != nil {
			return results, fmt.Errorf("%s: %w", input, err)
		}
		results = append(results, res)
	}
	return results, nil
}

// Process converts, enriches, serializes and optionally publishes one model file.
func (a *App) Process(ctx context.Context, input string) (Result, error) {
	res := Result{Input: input, URI: a.modelURI(input), Output: a.outputPath(input)}

	a.printf("parsing model %s...\n", input)
	doc, err := biomodel.LoadFile(input)
	if err != nil {
		return res, err
	}
	if err := doc.Validate(); err != nil {
		return res, err
	}
	a.printf("model parsed.\n%d Compartment\n%d Species\n%d Reactions\n",
		len(doc.Compartments()), len(doc.Species()), len(doc.Reactions()))

	a.printf("\ncreating RDF statements...\n")
	g, err := a.pipeline.Convert(doc, res.URI)
	if err != nil {
		return res, err
	}
	for prefix, ns := range a.cfg.Conversion.Prefixes {
		g.SetPrefix(prefix, ns)
	}

	if len(a.passes) > 0 {
		opts, err := a.enrichOptions()
		if err != nil {
			return res, err
		}
		res.Enrich, err = a.pipeline.Enrich(g, a.passes, opts)
		if err != nil {
			return res, err
		}
	}

	res.Summary = a.pipeline.Summarize(g)
	a.printf("RDF model created.\n%d triples\n", res.Summary.Triples)

	if err := a.writeGraph(g, res.Output); err != nil {
		return res, err
	}
	if res.Output != "" {
		a.printf("\nRDF model exported\n%s\n", res.Output)
	}

	if a.publisher != nil {
		res.Sent, err = a.publisher.Publish(ctx, g)
		if err != nil {
			return res, fmt.Errorf("publish: %w", err)
		}
	}
	return res, nil
}

// Watch reprocesses inputs whenever their content changes, until ctx is done.
func (a *App) Watch(ctx context.Context, w *watch.ModelWatcher) error {
	if err := w.Start(ctx); err != nil {
		return err
	}
	defer func() { _ = w.Stop() }()

	a.logger.Info("Watching models for changes", "files", len(a.inputs))
	var dropped int64
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events():
			if !ok {
				return nil
			}
			if d := w.DroppedEvents(); d > dropped {
				a.logger.Warn("Watch events dropped, some changes may be missed", "total_dropped", d)
				dropped = d
			}
			if ev.Operation == watch.OpDelete {
				a.logger.Warn("Model file removed", "path", ev.Path)
				continue
			}
			if _, err := a.Process(ctx, ev.Path); err != nil {
				// Keep watching; the next save may fix the model.
				a.logger.Error("Reconversion failed", "path", ev.Path, "error", err)
			}
		}
	}
}

func (a *App) enrichOptions() (enrich.Options, error) {
	opts := enrich.Options{
		UseSameAs:  a.cfg.Enrichment.UseSameAs,
		Transitive: a.cfg.Enrichment.Transitive,
	}
	if path := a.cfg.Enrichment.SideCompoundsFile; path != "" {
		ids, err := biomodel.LoadSideCompounds(path)
		if err != nil {
			return opts, err
		}
		opts.SideCompounds = ids
	}
	return opts, nil
}

// modelURI returns the base URI for a single input. With several inputs
// each model gets its own namespace under the base.
func (a *App) modelURI(input string) string {
	base := a.cfg.Conversion.BaseURI
	if len(a.inputs) <= 1 {
		return base
	}
	return strings.TrimRight(base, "/#") + "/" + stem(input)
}

// outputPath resolves where a model's graph is written. "-" writes to the
// console. An explicit path names a file for one input and a directory for
// several; without one the output sits next to the input.
func (a *App) outputPath(input string) string {
	ext := ".ttl"
	if info, ok := export.GetFormatInfo(a.format); ok {
		ext = info.Extension
	}

	out := a.cfg.Output.Path
	switch {
	case out == "-":
		return ""
	case out == "":
		return strings.TrimSuffix(input, filepath.Ext(input)) + ext
	case len(a.inputs) > 1:
		return filepath.Join(out, stem(input)+ext)
	default:
		return out
	}
}

func (a *App) writeGraph(g *graph.Graph, path string) error {
	if path == "" {
		return a.exporter.Write(os.Stdout, g, a.format)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	if err := a.exporter.Write(f, g, a.format); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func (a *App) printf(format string, args ...any) {
	if a.console != nil {
		fmt.Fprintf(a.console, format, args...)
	}
}

func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
