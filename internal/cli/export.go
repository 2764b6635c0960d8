package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

var (
	exportScanID string
	exportFormat string
	exportOutput string
	exportLast   bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a recorded scan",
	Long: `Export the samples or the notation of a recorded scan.

Formats:
  scan      - the samples as a scan file, one "c1, c2, c3" line per facelet
  notation  - the final notation (hand correction, repair, or classification)

Examples:
  cubescan export --last
  cubescan export --id <scan_id> --format notation
  cubescan export --id <scan_id> -o scans/copy.txt`,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVar(&exportScanID, "id", "", "Scan ID to export")
	exportCmd.Flags().BoolVar(&exportLast, "last", false, "Export the last scan")
	exportCmd.Flags().StringVar(&exportFormat, "format", "scan", "Export format (scan, notation)")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (default: stdout)")
}

func runExport(cmd *cobra.Command, args []string) error {
	if exportScanID == "" && !exportLast {
		return fmt.Errorf("specify --id or --last")
	}

	db, err := openHistory()
	if err != nil {
		return err
	}
	defer db.Close()

	var ids []string
	if exportScanID != "" {
		ids = []string{exportScanID}
	}
	s, err := findScan(db, ids, exportLast)
	if err != nil {
		return err
	}

	var output string
	switch strings.ToLower(exportFormat) {
	case "scan":
		output = s.Samples
	case "notation":
		n, err := finalNotation(db, s)
		if err != nil {
			return err
		}
		output = n + "\n"
	default:
		return fmt.Errorf("unknown format: %s (use scan or notation)", exportFormat)
	}

	if exportOutput == "" {
		fmt.Print(output)
		return nil
	}

	dir := filepath.Dir(exportOutput)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(exportOutput, []byte(output), 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	fmt.Printf("Exported scan %s to %s\n", s.ScanID, exportOutput)
	return nil
}
