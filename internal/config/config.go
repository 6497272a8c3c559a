// Package config loads citegraph settings from the global YAML file and
// environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/matsen/citegraph/internal/annotation"
	"github.com/matsen/citegraph/internal/citation"
	"github.com/matsen/citegraph/internal/pdf"
	"github.com/matsen/citegraph/internal/storage"
	"github.com/matsen/citegraph/internal/viz"
)

// Config holds every tunable of a run. Command-line flags override it.
type Config struct {
	CacheDir     string  `yaml:"cache_dir"`
	CacheBackend string  `yaml:"cache_backend"`
	Threshold    float64 `yaml:"threshold"`
	PragmaPrefix string  `yaml:"pragma_prefix"`
	LabelWidth   int     `yaml:"label_width"`
	PDFRoot      string  `yaml:"pdf_root,omitempty"`
	PDFReader    string  `yaml:"pdf_reader,omitempty"`
	YearRanks    bool    `yaml:"year_ranks"`
}

const (
	// ConfigDir is the directory name under XDG_CONFIG_HOME.
	ConfigDir = "citegraph"
	// ConfigFile is the config file name.
	ConfigFile = "config.yml"
	// DefaultCacheDir holds extracted PDF text, relative to the working directory.
	DefaultCacheDir = ".txt"
)

// Environment variables that override the file.
const (
	EnvCacheDir     = "CITEGRAPH_CACHE_DIR"
	EnvCacheBackend = "CITEGRAPH_CACHE_BACKEND"
	EnvThreshold    = "CITEGRAPH_THRESHOLD"
	EnvPDFRoot      = "CITEGRAPH_PDF_ROOT"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		CacheDir:     DefaultCacheDir,
		CacheBackend: storage.BackendDir,
		Threshold:    citation.DefaultThreshold,
		PragmaPrefix: annotation.DefaultPrefix,
		LabelWidth:   viz.DefaultLabelWidth,
	}
}

// Path returns the path to the config file.
// Respects XDG_CONFIG_HOME, defaults to ~/.config/citegraph/config.yml.
func Path() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, ConfigDir, ConfigFile)
}

// Load reads the config file at path over the defaults, then applies
// environment overrides. An empty path means Path(). A missing file is not
// an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = Path()
	}
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config %s: %w", path, err)
			}
		case !os.IsNotExist(err):
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	cfg.CacheDir = ExpandPath(cfg.CacheDir)
	cfg.PDFRoot = ExpandPath(cfg.PDFRoot)
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvCacheDir); v != "" {
		c.CacheDir = v
	}
	if v := os.Getenv(EnvCacheBackend); v != "" {
		c.CacheBackend = v
	}
	if v := os.Getenv(EnvPDFRoot); v != "" {
		c.PDFRoot = v
	}
	if v := os.Getenv(EnvThreshold); v != "" {
		t, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not a number", ErrInvalid, EnvThreshold, v)
		}
		c.Threshold = t
	}
	return nil
}

// Validate checks value ranges and enumerations.
func (c *Config) Validate() error {
	if c.CacheDir == "" {
		return fmt.Errorf("%w: cache_dir is empty", ErrInvalid)
	}
	if !contains(storage.ValidBackends, c.CacheBackend) {
		return fmt.Errorf("%w: cache_backend %q (valid: %v)", ErrInvalid, c.CacheBackend, storage.ValidBackends)
	}
	if c.Threshold < 0 || c.Threshold > 100 {
		return fmt.Errorf("%w: threshold %g outside [0, 100]", ErrInvalid, c.Threshold)
	}
	if c.PragmaPrefix == "" {
		return fmt.Errorf("%w: pragma_prefix is empty", ErrInvalid)
	}
	if c.LabelWidth < 1 {
		return fmt.Errorf("%w: label_width must be positive, got %d", ErrInvalid, c.LabelWidth)
	}
	if c.PDFReader != "" && !contains(pdf.ValidReaders, c.PDFReader) {
		return fmt.Errorf("%w: pdf_reader %q (valid: %v)", ErrInvalid, c.PDFReader, pdf.ValidReaders)
	}
	if c.PDFRoot != "" {
		info, err := os.Stat(c.PDFRoot)
		if err != nil {
			return fmt.Errorf("%w: pdf_root does not exist: %s", ErrInvalid, c.PDFRoot)
		}
		if !info.IsDir() {
			return fmt.Errorf("%w: pdf_root is not a directory: %s", ErrInvalid, c.PDFRoot)
		}
	}
	return nil
}

// ExpandPath expands ~ to the user's home directory.
// Returns the original path unchanged if it doesn't start with ~.
func ExpandPath(path string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}

	return filepath.Join(home, path[1:])
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}
