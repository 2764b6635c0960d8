package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/SeamusWaldron/cubescan"
	"github.com/SeamusWaldron/cubescan/internal/config"
	"github.com/SeamusWaldron/cubescan/internal/recorder"
	"github.com/SeamusWaldron/cubescan/internal/scan"
)

var (
	fixMaxDepth int
	fixWorkers  int
	fixTimeout  time.Duration
	fixNoSave   bool
	fixSolve    bool
)

var fixCmd = &cobra.Command{
	Use:   "fix <scan-file>",
	Short: "Classify a scan and repair it if needed",
	Long: `Run the full pipeline on a scan: classify, validate, check solvability and,
when the notation is not solvable, search for the closest solvable one by
swapping facelet labels.

The result is stored in the history database unless --no-save is given.

Examples:
  cubescan fix scan.txt
  cubescan fix scan.txt --max-depth 4 --workers 8 --timeout 30s
  cubescan fix scan.txt --solve`,
	Args: cobra.ExactArgs(1),
	RunE: runFix,
}

func init() {
	rootCmd.AddCommand(fixCmd)
	fixCmd.Flags().IntVar(&fixMaxDepth, "max-depth", -1, "Maximum swaps combined in the bounded search (default from config)")
	fixCmd.Flags().IntVar(&fixWorkers, "workers", 0, "Parallel workers per depth level (default from config)")
	fixCmd.Flags().DurationVar(&fixTimeout, "timeout", 0, "Stop searching deeper after this long (0 = no limit)")
	fixCmd.Flags().BoolVar(&fixNoSave, "no-save", false, "Do not record the result in the history database")
	fixCmd.Flags().BoolVar(&fixSolve, "solve", false, "Ask the configured solver for a solution")
}

func runFix(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer logger.Sync()

	r, err := newResolver(cfg, logger, resolverOptions{maxDepth: fixMaxDepth, workers: fixWorkers, solve: fixSolve})
	if err != nil {
		return err
	}

	raw, err := scan.ImportFile(args[0])
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if fixTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, fixTimeout)
		defer cancel()
	}

	start := time.Now()
	res, resolveErr := r.Resolve(ctx, raw)
	if res == nil {
		return resolveErr
	}
	elapsed := time.Since(start)
	printResolution(res, resolveErr)

	if !fixNoSave {
		if err := storeResult(cfg, args[0], &raw, res, elapsed, logger); err != nil {
			return err
		}
	}

	if cubescan.IsRepairExhausted(resolveErr) {
		fmt.Println()
		fmt.Println(helpStyle.Render("Correct the notation by hand with: cubescan edit --last"))
		return resolveErr
	}
	if resolveErr != nil && !errors.Is(resolveErr, context.DeadlineExceeded) {
		return resolveErr
	}
	return nil
}

// storeResult saves res to the history database and remembers it as the
// last scan.
func storeResult(cfg *config.Config, source string, raw *cubescan.Arena, res *cubescan.Resolution, elapsed time.Duration, logger *zap.Logger) error {
	db, err := openDB(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	scanID, err := saveResolution(db, source, raw, res, elapsed)
	if err != nil {
		return fmt.Errorf("failed to save result: %w", err)
	}
	if sf, err := recorder.NewDefaultStateFile(); err == nil {
		if err := sf.SetLastScan(scanID); err != nil {
			logger.Warn("failed to update state file", zap.Error(err))
		}
	}
	fmt.Println(statusStyle.Render("Saved as " + scanID))
	return nil
}
