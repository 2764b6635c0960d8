package fixer

import (
	"fmt"

	"github.com/SeamusWaldron/cubescan/internal/colorpoint"
)

// Config tunes the repair search.
type Config struct {
	// MaxDepth is the largest number of simultaneous swaps tried by the
	// bounded search.
	MaxDepth int `yaml:"max_depth"`

	// PruneFraction is the quantile of swap candidates, ranked by the
	// distance between the two swapped samples, kept for the bounded search.
	PruneFraction float64 `yaml:"prune_fraction"`

	// MinCandidates is the least number of candidates kept after pruning,
	// when that many exist.
	MinCandidates int `yaml:"min_candidates"`

	// StructuralSwaps restricts swaps to two edge facelets or two corner
	// facelets.
	StructuralSwaps bool `yaml:"structural_swaps"`

	// Workers evaluates a depth level on this many goroutines.
	Workers int `yaml:"workers"`

	// MaxLocalIterations bounds the hill climb. Zero means unbounded.
	MaxLocalIterations int `yaml:"max_local_iterations"`

	Metric colorpoint.Metric `yaml:"-"`
}

// DefaultConfig returns the standard search settings.
func DefaultConfig() Config {
	return Config{
		MaxDepth:        3,
		PruneFraction:   1.0 / 16,
		MinCandidates:   8,
		StructuralSwaps: true,
		Workers:         1,
		Metric:          colorpoint.DefaultMetric,
	}
}

// Validate checks the settings.
func (c Config) Validate() error {
	if c.MaxDepth < 0 {
		return fmt.Errorf("fixer: max depth must not be negative, got %d", c.MaxDepth)
	}
	if !(c.PruneFraction > 0 && c.PruneFraction <= 1) {
		return fmt.Errorf("fixer: prune fraction must be in (0, 1], got %v", c.PruneFraction)
	}
	if c.MinCandidates < 0 {
		return fmt.Errorf("fixer: min candidates must not be negative, got %d", c.MinCandidates)
	}
	if c.Workers < 1 {
		return fmt.Errorf("fixer: workers must be at least 1, got %d", c.Workers)
	}
	if c.MaxLocalIterations < 0 {
		return fmt.Errorf("fixer: max local iterations must not be negative, got %d", c.MaxLocalIterations)
	}
	return c.Metric.Validate()
}
