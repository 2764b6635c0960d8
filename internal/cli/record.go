package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/SeamusWaldron/cubescan/internal/colorpoint"
	"github.com/SeamusWaldron/cubescan/internal/facelet"
	"github.com/SeamusWaldron/cubescan/internal/recorder"
	"github.com/SeamusWaldron/cubescan/internal/scan"
)

var (
	recordInput   string
	recordRestart bool
	recordNoFix   bool
)

var recordCmd = &cobra.Command{
	Use:   "record",
	Short: "Record a live scan from the rig",
	Long: `Read samples as the rig delivers them, one "c1, c2, c3" line per facelet
in the rig's visiting order, and store each at its notation position.

Progress is kept in the state file after every sample, so an interrupted
scan resumes where it stopped. Once all 54 samples are in, the scan is
written to the scan directory and resolved like 'cubescan fix'.

Samples are read from standard input unless --input names a file or
device.

Examples:
  rig-reader | cubescan record
  cubescan record --input /dev/ttyUSB0
  cubescan record --restart`,
	RunE: runRecord,
}

func init() {
	rootCmd.AddCommand(recordCmd)
	recordCmd.Flags().StringVar(&recordInput, "input", "", "Read samples from this file or device instead of stdin")
	recordCmd.Flags().BoolVar(&recordRestart, "restart", false, "Discard a scan left in progress")
	recordCmd.Flags().BoolVar(&recordNoFix, "no-fix", false, "Only write the scan file")
}

func runRecord(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer logger.Sync()

	stateFile, err := recorder.NewDefaultStateFile()
	if err != nil {
		return fmt.Errorf("failed to load state: %w", err)
	}
	session, err := recorder.NewSession(stateFile, cfg.Storage.ScanDir, recorder.WithLogger(logger.Named("recorder")))
	if err != nil {
		return err
	}
	if recordRestart {
		if err := session.Abort(); err != nil {
			return err
		}
	} else if n := session.Recorded(); n > 0 {
		fmt.Printf("Resuming scan with %d of %d samples\n", n, facelet.Count)
	}

	var in io.Reader = os.Stdin
	if recordInput != "" {
		f, err := os.Open(recordInput)
		if err != nil {
			return fmt.Errorf("failed to open input: %w", err)
		}
		defer f.Close()
		in = f
	}

	session.SetSampleCallback(func(pos int, p colorpoint.ColorPoint) {
		fmt.Printf("%2d/%d  facelet %2d  %s\n", facelet.Count-session.Remaining(), facelet.Count, pos, statusStyle.Render(p.String()))
	})

	if err := feed(session, in, logger); err != nil {
		return err
	}
	if session.State() != recorder.StateComplete {
		return fmt.Errorf("input ended after %d of %d samples; run again to resume", session.Recorded(), facelet.Count)
	}

	raw, path, err := session.Finish()
	if err != nil {
		return err
	}
	fmt.Println(okStyle.Render("Scan written to " + path))
	if recordNoFix {
		return nil
	}

	r, err := newResolver(cfg, logger, resolverOptions{maxDepth: -1})
	if err != nil {
		return err
	}
	start := time.Now()
	res, resolveErr := r.Resolve(context.Background(), raw)
	if res == nil {
		return resolveErr
	}
	fmt.Println()
	printResolution(res, resolveErr)
	return storeResult(cfg, path, &raw, res, time.Since(start), logger)
}

// feed records samples from in until the scan is complete or in ends.
// Unreadable lines are reported and skipped.
func feed(session *recorder.Session, in io.Reader, logger *zap.Logger) error {
	sc := bufio.NewScanner(in)
	for session.State() != recorder.StateComplete && sc.Scan() {
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		c, err := scan.ParseSample(text)
		if err != nil {
			logger.Warn("skipping unreadable sample", zap.String("line", text), zap.Error(err))
			continue
		}
		if _, err := session.Record(c[0], c[1], c[2]); err != nil {
			logger.Warn("rejected sample", zap.String("line", text), zap.Error(err))
		}
	}
	return sc.Err()
}
