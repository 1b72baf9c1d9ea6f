package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
)

const (
	// ProjectConfigFile is the name of the project-level config file
	ProjectConfigFile = "sbml2rdf.yaml"
	// UserConfigDir is the directory for user-level config
	UserConfigDir = ".config/sbml2rdf"
	// UserConfigFile is the name of the user-level config file
	UserConfigFile = "config.yaml"
)

// Environment variables read as the last configuration layer.
const (
	EnvBaseURI = "SBML2RDF_BASE_URI"
	EnvFormat  = "SBML2RDF_FORMAT"
	EnvNATSURL = "NATS_URL"
	EnvPublish = "SBML2RDF_PUBLISH"
)

// Loader handles configuration loading with layered precedence
type Loader struct {
	logger *slog.Logger
	getenv func(string) string
}

// NewLoader creates a new configuration loader
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{logger: logger, getenv: os.Getenv}
}

// Load loads configuration with layered precedence:
//  1. Default config
//  2. User config (~/.config/sbml2rdf/config.yaml)
//  3. Project config (sbml2rdf.yaml in current or parent directories)
//  4. Explicit file, when path is non-empty
//  5. Environment variables
//
// Command-line flags are applied by the caller on top of the result.
// Relative side compound paths are resolved against the file that set them.
func (l *Loader) Load(path string) (*Config, error) {
	config := DefaultConfig()

	if userPath := l.userConfigPath(); userPath != "" {
		if err := l.mergeFile(config, userPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
			l.logger.Warn("Failed to load user config", "path", userPath, "error", err)
		}
	}

	if projectPath := l.findProjectConfig(); projectPath != "" {
		if err := l.mergeFile(config, projectPath); err != nil {
			l.logger.Warn("Failed to load project config", "path", projectPath, "error", err)
		}
	} else {
		l.logger.Debug("No project config found")
	}

	if path != "" {
		if err := l.mergeFile(config, path); err != nil {
			return nil, err
		}
	}

	if err := l.applyEnv(config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// mergeFile loads one layer and merges it into config.
func (l *Loader) mergeFile(config *Config, path string) error {
	layer, err := LoadFromFile(path)
	if err != nil {
		return err
	}
	if side := layer.Enrichment.SideCompoundsFile; side != "" && !filepath.IsAbs(side) {
		layer.Enrichment.SideCompoundsFile = filepath.Join(filepath.Dir(path), side)
	}
	layer.Output.normalizeFormat()
	config.Merge(layer)
	l.logger.Debug("Loaded config", "path", path)
	return nil
}

func (l *Loader) applyEnv(config *Config) error {
	if v := l.getenv(EnvBaseURI); v != "" {
		config.Conversion.BaseURI = v
	}
	if v := l.getenv(EnvFormat); v != "" {
		config.Output.Format = v
		config.Output.normalizeFormat()
	}
	if v := l.getenv(EnvNATSURL); v != "" {
		config.NATS.URL = v
	}
	if v := l.getenv(EnvPublish); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidConfig, EnvPublish, err)
		}
		config.NATS.Enabled = enabled
	}
	return nil
}

// EnsureUserConfig creates the user config file with defaults if it doesn't exist
func (l *Loader) EnsureUserConfig() error {
	userPath := l.userConfigPath()
	if userPath == "" {
		return errors.New("cannot determine home directory")
	}
	if _, err := os.Stat(userPath); err == nil {
		return nil
	}

	if err := DefaultConfig().SaveToFile(userPath); err != nil {
		return err
	}
	l.logger.Info("Created default user config", "path", userPath)
	return nil
}

func (l *Loader) userConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, UserConfigDir, UserConfigFile)
}

// findProjectConfig returns the nearest sbml2rdf.yaml at or above the working directory.
func (l *Loader) findProjectConfig() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	for {
		candidate := filepath.Join(dir, ProjectConfigFile)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}
