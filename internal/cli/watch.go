package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/SeamusWaldron/cubescan"
	"github.com/SeamusWaldron/cubescan/internal/scan"
	"github.com/SeamusWaldron/cubescan/internal/storage"
	"github.com/SeamusWaldron/cubescan/internal/watcher"
)

var watchExisting bool

var watchCmd = &cobra.Command{
	Use:   "watch [directory]",
	Short: "Resolve scan files as they appear in a directory",
	Long: `Watch a directory for new scan files and run the full pipeline on each one
once it has finished being written. Results are stored in the history
database. The directory defaults to watch.directory from the config file, or
the scan directory.

Press Ctrl+C to stop.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().BoolVar(&watchExisting, "existing", false, "Also resolve files already in the directory")
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer logger.Sync()

	dir := cfg.Watch.Directory
	if dir == "" {
		dir = cfg.Storage.ScanDir
	}
	if len(args) == 1 {
		dir = args[0]
	}
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}

	r, err := newResolver(cfg, logger, resolverOptions{maxDepth: -1})
	if err != nil {
		return err
	}
	db, err := openDB(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Callbacks run on timer goroutines; one resolve at a time keeps the
	// output readable.
	var mu sync.Mutex
	handle := func(path string) {
		mu.Lock()
		defer mu.Unlock()
		resolveFile(ctx, r, db, path, logger)
	}

	w := watcher.New(dir, handle,
		watcher.WithExtensions(cfg.Watch.Extensions...),
		watcher.WithDebounce(time.Duration(cfg.Watch.DebounceMS)*time.Millisecond),
		watcher.WithLogger(logger.Named("watcher")))
	if err := w.Start(ctx); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	defer w.Stop()

	if watchExisting {
		files, err := w.Existing()
		if err != nil {
			return err
		}
		for _, path := range files {
			handle(path)
		}
	}

	fmt.Println(titleStyle.Render("Watching " + dir))
	fmt.Println(helpStyle.Render("Press Ctrl+C to stop"))
	<-ctx.Done()
	fmt.Println()
	return nil
}

// resolveFile runs the pipeline on one scan file and records the outcome.
func resolveFile(ctx context.Context, r *cubescan.Resolver, db *storage.DB, path string, logger *zap.Logger) {
	raw, err := scan.ImportFile(path)
	if err != nil {
		fmt.Printf("%s  %s\n", filepath.Base(path), errorStyle.Render(err.Error()))
		return
	}

	start := time.Now()
	res, err := r.Resolve(ctx, raw)
	if res == nil {
		fmt.Printf("%s  %s\n", filepath.Base(path), errorStyle.Render(err.Error()))
		return
	}

	scanID, saveErr := saveResolution(db, path, &raw, res, time.Since(start))
	if saveErr != nil {
		logger.Warn("failed to save result", zap.String("path", path), zap.Error(saveErr))
	}

	var status string
	switch {
	case res.Cause == nil:
		status = okStyle.Render("ok")
	case res.Fix != nil && res.Fix.Found():
		status = okStyle.Render(fmt.Sprintf("repaired (%d changed)", len(res.Fix.Changed(res.Classified))))
	default:
		status = errorStyle.Render("unrepaired")
	}
	fmt.Printf("%s  %s  %s  %s\n", filepath.Base(path), res.Notation, status, statusStyle.Render(scanID))
	if err != nil && !cubescan.IsRepairExhausted(err) {
		fmt.Println("  " + errorStyle.Render(err.Error()))
	}
}
