// Package config loads beacon.yaml, the optional per-project settings file.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// FileNames are the names FindConfig looks for, in order.
var FileNames = []string{"beacon.yaml", "beacon.yml"}

const (
	DefaultFormat     = "auto"
	DefaultPageSize   = 25
	DefaultLogLevel   = "info"
	DefaultPlotWidth  = 72
	DefaultPlotHeight = 12
)

// Config represents the top-level beacon.yaml configuration.
type Config struct {
	// DataDir holds the run directories. Relative paths are resolved against
	// the directory of the config file.
	DataDir string `yaml:"data_dir,omitempty"`

	// Format is the run storage format: jsonl, sqlite or auto.
	Format string `yaml:"format,omitempty"`

	// PageSize is the number of scan rows between pager prompts.
	PageSize int `yaml:"page_size,omitempty"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level,omitempty"`

	Plot Plot `yaml:"plot,omitempty"`
}

// Plot sets the size of ASCII plots, in characters.
type Plot struct {
	Width  int `yaml:"width,omitempty"`
	Height int `yaml:"height,omitempty"`
}

// Default returns the configuration used when no file is found.
func Default() *Config {
	cfg := &Config{}
	cfg.setDefaults()
	return cfg
}

// LoadConfig reads and parses a beacon.yaml file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading config %s", path)
	}
	cfg, err := ParseConfig(data, path)
	if err != nil {
		return nil, err
	}
	if cfg.DataDir != "" && !filepath.IsAbs(cfg.DataDir) {
		cfg.DataDir = filepath.Join(filepath.Dir(path), cfg.DataDir)
	}
	return cfg, nil
}

// ParseConfig parses beacon.yaml content from bytes.
// The path argument is used only for error messages.
func ParseConfig(data []byte, path string) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrapf(err, "parsing %s", path)
	}
	if err := cfg.validate(path); err != nil {
		return nil, err
	}
	cfg.setDefaults()
	return &cfg, nil
}

// FindConfig searches for beacon.yaml starting from dir and walking up
// to the filesystem root. It returns "" when there is none.
func FindConfig(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", errors.Wrap(err, "resolving directory")
	}

	for {
		for _, name := range FileNames {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// Load finds and loads the config for dir, or returns the defaults when
// there is no config file.
func Load(dir string) (*Config, string, error) {
	path, err := FindConfig(dir)
	if err != nil || path == "" {
		return Default(), "", err
	}
	cfg, err := LoadConfig(path)
	return cfg, path, err
}

func (c *Config) validate(path string) error {
	switch strings.ToLower(c.Format) {
	case "", "auto", "jsonl", "sqlite":
	default:
		return errors.Newf("%s: format %q: must be jsonl, sqlite or auto", path, c.Format)
	}
	switch strings.ToLower(c.LogLevel) {
	case "", "debug", "info", "warn", "error":
	default:
		return errors.Newf("%s: log_level %q: must be debug, info, warn or error", path, c.LogLevel)
	}
	if c.PageSize < 0 {
		return errors.Newf("%s: page_size must not be negative", path)
	}
	if c.Plot.Width < 0 || c.Plot.Height < 0 {
		return errors.Newf("%s: plot size must not be negative", path)
	}
	return nil
}

func (c *Config) setDefaults() {
	if c.Format == "" {
		c.Format = DefaultFormat
	}
	if c.PageSize == 0 {
		c.PageSize = DefaultPageSize
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if c.Plot.Width == 0 {
		c.Plot.Width = DefaultPlotWidth
	}
	if c.Plot.Height == 0 {
		c.Plot.Height = DefaultPlotHeight
	}
}
