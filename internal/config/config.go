// Package config provides configuration loading and structs for the cubescan
// tools.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/SeamusWaldron/cubescan/internal/colorpoint"
	"github.com/SeamusWaldron/cubescan/internal/fixer"
)

// Config holds all configuration for the application.
type Config struct {
	Debug      bool             `yaml:"debug"`
	Classifier ClassifierConfig `yaml:"classifier"`
	Fixer      FixerConfig      `yaml:"fixer"`
	Solver     SolverConfig     `yaml:"solver"`
	Storage    StorageConfig    `yaml:"storage"`
	Watch      WatchConfig      `yaml:"watch"`
}

// ClassifierConfig holds sample classification settings.
type ClassifierConfig struct {
	// ColorSpace is one of rgb, hsv or lab.
	ColorSpace string `yaml:"color_space"`
	// Scale is the largest raw channel reading.
	Scale float64 `yaml:"scale"`
	// MetricChannel is the channel whose squared difference is divided by
	// MetricDivisor.
	MetricChannel *int    `yaml:"metric_channel"`
	MetricDivisor float64 `yaml:"metric_divisor"`
	TopologyAware bool    `yaml:"topology_aware"`
}

// FixerConfig holds repair search settings.
type FixerConfig struct {
	MaxDepth           *int    `yaml:"max_depth"`
	PruneFraction      float64 `yaml:"prune_fraction"`
	MinCandidates      *int    `yaml:"min_candidates"`
	StructuralSwaps    *bool   `yaml:"structural_swaps"`
	Workers            int     `yaml:"workers"`
	MaxLocalIterations int     `yaml:"max_local_iterations"`
}

// SolverConfig names an external solver program.
type SolverConfig struct {
	// Command is the program and leading arguments; the notation is appended.
	Command string `yaml:"command"`
}

// StorageConfig holds the history database location.
type StorageConfig struct {
	DatabasePath string `yaml:"database_path"`
	ScanDir      string `yaml:"scan_dir"`
}

// WatchConfig holds directory watch settings.
type WatchConfig struct {
	Directory  string   `yaml:"directory"`
	Extensions []string `yaml:"extensions"`
	// DebounceMS waits this long after the last write before reading a file.
	DebounceMS int `yaml:"debounce_ms"`
}

// Metric returns the configured distance.
func (c ClassifierConfig) Metric() colorpoint.Metric {
	m := colorpoint.DefaultMetric
	if c.MetricChannel != nil {
		m.Channel = *c.MetricChannel
	}
	if c.MetricDivisor != 0 {
		m.Divisor = c.MetricDivisor
	}
	return m
}

// Space parses the configured color space.
func (c ClassifierConfig) Space() (colorpoint.ColorSpace, error) {
	return colorpoint.ParseColorSpace(c.ColorSpace)
}

// Search returns the repair settings using metric m.
func (c FixerConfig) Search(m colorpoint.Metric) fixer.Config {
	fc := fixer.DefaultConfig()
	if c.MaxDepth != nil {
		fc.MaxDepth = *c.MaxDepth
	}
	if c.PruneFraction != 0 {
		fc.PruneFraction = c.PruneFraction
	}
	if c.MinCandidates != nil {
		fc.MinCandidates = *c.MinCandidates
	}
	if c.StructuralSwaps != nil {
		fc.StructuralSwaps = *c.StructuralSwaps
	}
	if c.Workers != 0 {
		fc.Workers = c.Workers
	}
	fc.MaxLocalIterations = c.MaxLocalIterations
	fc.Metric = m
	return fc
}

// Default returns a configuration with every default applied and paths
// placed under the home directory.
func Default() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	cfg.Storage.DatabasePath = expandPath(cfg.Storage.DatabasePath, "")
	cfg.Storage.ScanDir = expandPath(cfg.Storage.ScanDir, "")
	return cfg
}

// Load reads and parses the config file at path, expands paths, and applies defaults.
// Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	ApplyDefaults(&cfg)

	configDir := filepath.Dir(path)
	cfg.Storage.DatabasePath = expandPath(cfg.Storage.DatabasePath, configDir)
	cfg.Storage.ScanDir = expandPath(cfg.Storage.ScanDir, configDir)
	if cfg.Watch.Directory != "" {
		cfg.Watch.Directory = expandPath(cfg.Watch.Directory, configDir)
	}

	return &cfg, nil
}

// Save writes the config to path.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Validate checks values that defaults cannot repair.
func (c *Config) Validate() error {
	if _, err := c.Classifier.Space(); err != nil {
		return err
	}
	m := c.Classifier.Metric()
	if err := m.Validate(); err != nil {
		return err
	}
	return c.Fixer.Search(m).Validate()
}

// expandPath converts a path to absolute. Paths starting with "./" are relative to configDir;
// other relative paths are relative to the home directory.
func expandPath(path string, configDir string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "./") || path == "." {
		return filepath.Join(configDir, path)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, path)
	}
	return path
}
