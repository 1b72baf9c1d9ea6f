// Package config provides configuration loading and management for sbml2rdf.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/c360studio/sbml2rdf/enrich"
	"github.com/c360studio/sbml2rdf/export"
	"github.com/c360studio/sbml2rdf/watch"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned when a configuration fails validation.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config represents the complete sbml2rdf configuration
type Config struct {
	Conversion ConversionConfig `yaml:"conversion"`
	Enrichment EnrichmentConfig `yaml:"enrichment"`
	Output     OutputConfig     `yaml:"output"`
	NATS       NATSConfig       `yaml:"nats"`
	Watch      watch.Config     `yaml:"watch"`
}

// ConversionConfig configures model conversion
type ConversionConfig struct {
	// BaseURI is the namespace URI that uniquely identifies the model.
	// It is required at run time but may come from the command line.
	BaseURI string `yaml:"base_uri" validate:"omitempty,uri"`
	// Prefixes are extra namespace prefixes attached to the output graph.
	Prefixes map[string]string `yaml:"prefixes" validate:"dive,keys,required,endkeys,required"`
}

// EnrichmentConfig configures the enrichment passes run after conversion
type EnrichmentConfig struct {
	// Passes lists pass names in execution order (empty = no enrichment).
	Passes []string `yaml:"passes"`
	// UseSameAs links harmonized species with owl:sameAs.
	UseSameAs bool `yaml:"use_same_as"`
	// Transitive uses "derives into" rather than "immediately derives into".
	Transitive bool `yaml:"transitive"`
	// SideCompoundsFile lists side compound identifiers, one per line or as a YAML list.
	SideCompoundsFile string `yaml:"side_compounds_file"`
}

// OutputConfig configures serialization
type OutputConfig struct {
	// Format is turtle, ntriples or jsonld, or one of their aliases (ttl, nt, json-ld).
	Format string `yaml:"format" validate:"omitempty,rdfformat"`
	// Path is the output file (empty = derive from input or use stdout).
	Path string `yaml:"path"`
}

// NATSConfig configures publishing converted graphs to NATS
type NATSConfig struct {
	// URL is the NATS server URL
	URL string `yaml:"url" validate:"omitempty,url"`
	// Subject is the JetStream subject entity messages are published on
	Subject string `yaml:"subject" validate:"required_if=Enabled true"`
	// Enabled turns publishing on
	Enabled bool `yaml:"enabled"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Conversion: ConversionConfig{
			BaseURI: "", // Supplied per model
			Prefixes: map[string]string{
				"cid":     "http://identifiers.org/pubchem.compound/",
				"chebi":   "http://identifiers.org/chebi/CHEBI:",
				"mnxCHEM": "http://identifiers.org/metanetx.chemical/",
			},
		},
		Enrichment: EnrichmentConfig{
			Passes: nil, // Conversion only
		},
		Output: OutputConfig{
			Format: "turtle",
		},
		NATS: NATSConfig{
			URL:     "nats://localhost:4222",
			Subject: "graph.ingest.entity",
			Enabled: false,
		},
		Watch: watch.DefaultConfig(),
	}
}

var validate = newValidator()

// newValidator registers rdfformat, which accepts every name export.ParseFormat does.
func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("rdfformat", func(fl validator.FieldLevel) bool {
		_, err := export.ParseFormat(fl.Field().String())
		return err == nil
	})
	return v
}

// normalizeFormat rewrites a format alias to its canonical name. Unknown
// names are left for Validate to report.
func (o *OutputConfig) normalizeFormat() {
	if o.Format == "" {
		return
	}
	if f, err := export.ParseFormat(o.Format); err == nil {
		o.Format = string(f)
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(msgs, "; "))
		}
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if _, err := c.Enrichment.ParsedPasses(); err != nil {
		return fmt.Errorf("%w: enrichment.passes: %v", ErrInvalidConfig, err)
	}
	return nil
}

// ParsedPasses returns the configured pass names as enrich passes.
func (e EnrichmentConfig) ParsedPasses() ([]enrich.Pass, error) {
	passes := make([]enrich.Pass, 0, len(e.Passes))
	for _, name := range e.Passes {
		p, err := enrich.ParsePass(name)
		if err != nil {
			return nil, err
		}
		passes = append(passes, p)
	}
	return passes, nil
}

// LoadFromFile loads configuration from a YAML file
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := &Config{}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a YAML file
func (c *Config) SaveToFile(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Merge merges another config into this one (other takes precedence for non-zero values).
// Boolean switches can only be turned on by a later layer.
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	// Conversion
	if other.Conversion.BaseURI != "" {
		c.Conversion.BaseURI = other.Conversion.BaseURI
	}
	if len(other.Conversion.Prefixes) > 0 {
		if c.Conversion.Prefixes == nil {
			c.Conversion.Prefixes = make(map[string]string, len(other.Conversion.Prefixes))
		}
		for prefix, ns := range other.Conversion.Prefixes {
			c.Conversion.Prefixes[prefix] = ns
		}
	}

	// Enrichment
	if len(other.Enrichment.Passes) > 0 {
		c.Enrichment.Passes = other.Enrichment.Passes
	}
	if other.Enrichment.UseSameAs {
		c.Enrichment.UseSameAs = true
	}
	if other.Enrichment.Transitive {
		c.Enrichment.Transitive = true
	}
	if other.Enrichment.SideCompoundsFile != "" {
		c.Enrichment.SideCompoundsFile = other.Enrichment.SideCompoundsFile
	}

	// Output
	if other.Output.Format != "" {
		c.Output.Format = other.Output.Format
	}
	if other.Output.Path != "" {
		c.Output.Path = other.Output.Path
	}

	// NATS
	if other.NATS.URL != "" {
		c.NATS.URL = other.NATS.URL
	}
	if other.NATS.Subject != "" {
		c.NATS.Subject = other.NATS.Subject
	}
	if other.NATS.Enabled {
		c.NATS.Enabled = true
	}

	// Watch
	if other.Watch.Enabled {
		c.Watch.Enabled = true
	}
	if other.Watch.DebounceDelay != "" {
		c.Watch.DebounceDelay = other.Watch.DebounceDelay
	}
}
