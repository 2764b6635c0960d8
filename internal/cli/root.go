// Package cli implements the command-line interface for cubescan.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/SeamusWaldron/cubescan"
	"github.com/SeamusWaldron/cubescan/internal/config"
	"github.com/SeamusWaldron/cubescan/internal/logging"
	"github.com/SeamusWaldron/cubescan/internal/oracle"
	"github.com/SeamusWaldron/cubescan/internal/storage"
)

const version = "0.1.0"

var (
	// Global flags
	configPath string
	dbPath     string
	verbose    bool
)

// rootCmd is the base command.
var rootCmd = &cobra.Command{
	Use:   "cubescan",
	Short: "Cube color scan classifier and repairer",
	Long: `cubescan turns the 54 color samples read by a cube scanning rig into a
facelet notation, checks that the notation describes a reachable cube, and
repairs misread stickers by searching for the nearest solvable labeling.

Scans are plain text files with one "c1, c2, c3" line per facelet in
URFDLB order. Results are kept in a local history database.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("Error: "+err.Error()))
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: ~/.cubescan/config.yaml if present)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Database file path (default: ~/.cubescan/cubescan.db)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
}

// loadConfig reads the config file named by --config, or the default one
// when it exists, and applies the --db override.
func loadConfig() (*config.Config, error) {
	path := configPath
	if path == "" {
		if home, err := os.UserHomeDir(); err == nil {
			def := filepath.Join(home, ".cubescan", "config.yaml")
			if _, err := os.Stat(def); err == nil {
				path = def
			}
		}
	}

	cfg := config.Default()
	if path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return nil, err
		}
	}
	if dbPath != "" {
		cfg.Storage.DatabasePath = dbPath
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	level := zapcore.WarnLevel
	switch {
	case cfg.Debug:
		level = zapcore.DebugLevel
	case verbose:
		level = zapcore.InfoLevel
	}
	return logging.NewConsoleLogger(level)
}

// resolverOptions overrides the configured settings for one command.
type resolverOptions struct {
	maxDepth int // <0 keeps the configured value
	workers  int // 0 keeps the configured value
	solve    bool
}

func newResolver(cfg *config.Config, logger *zap.Logger, ro resolverOptions) (*cubescan.Resolver, error) {
	space, err := cfg.Classifier.Space()
	if err != nil {
		return nil, err
	}
	metric := cfg.Classifier.Metric()
	fc := cfg.Fixer.Search(metric)
	if ro.maxDepth >= 0 {
		fc.MaxDepth = ro.maxDepth
	}
	if ro.workers > 0 {
		fc.Workers = ro.workers
	}

	opts := []cubescan.Option{
		cubescan.WithMetric(metric),
		cubescan.WithColorSpace(space, cfg.Classifier.Scale),
		cubescan.WithTopologyAware(cfg.Classifier.TopologyAware),
		cubescan.WithFixerConfig(fc),
		cubescan.WithLogger(logger),
	}
	if ro.solve {
		s, err := newSolver(cfg, logger)
		if err != nil {
			return nil, err
		}
		opts = append(opts, cubescan.WithSolver(s))
	}
	return cubescan.New(opts...)
}

func newSolver(cfg *config.Config, logger *zap.Logger) (oracle.Solver, error) {
	if cfg.Solver.Command == "" {
		return nil, fmt.Errorf("no solver configured (set solver.command in the config file)")
	}
	c, err := oracle.NewCommand(cfg.Solver.Command, logger.Named("solver"))
	if err != nil {
		return nil, err
	}
	return oracle.Checked{Solver: c}, nil
}

// openDB opens and migrates the history database.
func openDB(cfg *config.Config) (*storage.DB, error) {
	db, err := storage.OpenMigrated(cfg.Storage.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}
