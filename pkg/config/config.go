// Package config handles loading and managing stockfit configuration.
package config

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/stockfit/stockfit/pkg/provider"
	"github.com/stockfit/stockfit/pkg/scoring"
)

// Config is the top-level configuration for stockfit.
type Config struct {
	Scoring  ScoringConfig  `yaml:"scoring"`
	Fixtures FixturesConfig `yaml:"fixtures"`
	Output   OutputConfig   `yaml:"output"`
	Server   ServerConfig   `yaml:"server"`
	History  HistoryConfig  `yaml:"history"`
}

// ScoringConfig controls scoring behavior.
type ScoringConfig struct {
	// Weights overrides individual entries of the default weight set.
	Weights map[string]float64 `yaml:"weights"`
}

// FixturesConfig points at extra metrics records.
type FixturesConfig struct {
	File string `yaml:"file"` // YAML/JSON file of ticker -> metrics
	// PercentAsFraction reads percent metrics in File as fractions (0.025 = 2.5%).
	PercentAsFraction bool `yaml:"percent_as_fraction"`
}

// FileOptions returns the provider options for the metrics file.
func (f FixturesConfig) FileOptions() provider.FileOptions {
	return provider.FileOptions{PercentAsFraction: f.PercentAsFraction}
}

// OutputConfig controls CLI rendering.
type OutputConfig struct {
	Format string `yaml:"format"` // text, json or notes
}

// ServerConfig controls the HTTP service.
type ServerConfig struct {
	Addr           string   `yaml:"addr"`
	APIKey         string   `yaml:"api_key"`
	AllowedOrigins []string `yaml:"allowed_origins"`
	CacheSize      int      `yaml:"cache_size"`
}

// HistoryConfig controls the optional evaluation history.
type HistoryConfig struct {
	Enabled     bool   `yaml:"enabled"`
	Backend     string `yaml:"backend"` // local, s3 or gcs
	LocalPath   string `yaml:"local_path"`
	Bucket      string `yaml:"bucket"`
	Prefix      string `yaml:"prefix"` // object key prefix inside the bucket
	Region      string `yaml:"region"`
	Endpoint    string `yaml:"endpoint"`
	DatabaseURL string `yaml:"database_url"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Scoring: ScoringConfig{
			Weights: map[string]float64{},
		},
		Output: OutputConfig{
			Format: "text",
		},
		Server: ServerConfig{
			Addr:           ":8080",
			AllowedOrigins: []string{"*"},
			CacheSize:      100,
		},
		History: HistoryConfig{
			Backend:   "local",
			LocalPath: filepath.Join(os.TempDir(), "stockfit-reports"),
		},
	}
}

// Load reads a config file from the given path.
// If the file does not exist, it returns the default config.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks weight overrides and enumerated settings.
func (c *Config) Validate() error {
	if _, err := c.EffectiveWeights(); err != nil {
		return err
	}
	switch c.Output.Format {
	case "", "text", "json", "notes":
	default:
		return fmt.Errorf("output.format: unsupported format %q", c.Output.Format)
	}
	if c.History.Enabled {
		switch c.History.Backend {
		case "local", "":
		case "s3", "gcs":
			if c.History.Bucket == "" {
				return fmt.Errorf("history.bucket is required for backend %q", c.History.Backend)
			}
		default:
			return fmt.Errorf("history.backend: unsupported backend %q", c.History.Backend)
		}
	}
	return nil
}

// EffectiveWeights returns the default weight set with the configured
// overrides applied. Unknown metric names, non-finite and negative weights
// are errors.
func (c *Config) EffectiveWeights() (scoring.Weights, error) {
	w := scoring.DefaultWeights()
	if err := ApplyWeightOverrides(w, c.Scoring.Weights); err != nil {
		return nil, err
	}
	return w, nil
}

// ApplyWeightOverrides sets each named weight on w. Every weight must be a
// finite, non-negative number.
func ApplyWeightOverrides(w scoring.Weights, overrides map[string]float64) error {
	names := make([]string, 0, len(overrides))
	for name := range overrides {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		k, ok := scoring.ParseKey(name)
		if !ok {
			return fmt.Errorf("scoring.weights: unknown metric %q", name)
		}
		v := overrides[name]
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("scoring.weights: %s must be a finite number, got %v", name, v)
		}
		if v < 0 {
			return fmt.Errorf("scoring.weights: %s must be non-negative, got %v", name, v)
		}
		w[k] = v
	}
	return nil
}

// FindConfigFile looks for .stockfit/config.yaml in the given directory
// and its parents, returning the path if found, or "" if not.
func FindConfigFile(dir string) string {
	for {
		candidate := filepath.Join(dir, ".stockfit", "config.yaml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}

// ResolvePath returns explicit if set, otherwise the discovered config file
// starting from the working directory.
func ResolvePath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	wd, err := os.Getwd()
	if err != nil {
		return ""
	}
	return FindConfigFile(wd)
}

// LoadFrom loads the config at ResolvePath(explicit). No file means defaults.
func LoadFrom(explicit string) (*Config, error) {
	path := ResolvePath(explicit)
	if path == "" {
		return DefaultConfig(), nil
	}
	return Load(path)
}
