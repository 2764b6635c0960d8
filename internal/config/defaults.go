package config

import "github.com/SeamusWaldron/cubescan/internal/colorpoint"

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Classifier.ColorSpace == "" {
		cfg.Classifier.ColorSpace = string(colorpoint.RGB)
	}
	if cfg.Classifier.Scale == 0 {
		cfg.Classifier.Scale = 255
	}
	if cfg.Classifier.MetricChannel == nil {
		ch := colorpoint.DefaultMetric.Channel
		cfg.Classifier.MetricChannel = &ch
	}
	if cfg.Classifier.MetricDivisor == 0 {
		cfg.Classifier.MetricDivisor = colorpoint.DefaultMetric.Divisor
	}
	if cfg.Fixer.MaxDepth == nil {
		d := 3
		cfg.Fixer.MaxDepth = &d
	}
	if cfg.Fixer.PruneFraction == 0 {
		cfg.Fixer.PruneFraction = 1.0 / 16
	}
	if cfg.Fixer.MinCandidates == nil {
		n := 8
		cfg.Fixer.MinCandidates = &n
	}
	// Structural swaps default to true when unset (nil).
	if cfg.Fixer.StructuralSwaps == nil {
		t := true
		cfg.Fixer.StructuralSwaps = &t
	}
	if cfg.Fixer.Workers == 0 {
		cfg.Fixer.Workers = 1
	}
	if cfg.Storage.DatabasePath == "" {
		cfg.Storage.DatabasePath = ".cubescan/cubescan.db"
	}
	if cfg.Storage.ScanDir == "" {
		cfg.Storage.ScanDir = ".cubescan/scans"
	}
	if cfg.Watch.Extensions == nil {
		cfg.Watch.Extensions = []string{".txt", ".scan"}
	}
	if cfg.Watch.DebounceMS == 0 {
		cfg.Watch.DebounceMS = 250
	}
}
