package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubescan/internal/facelet"
	"github.com/SeamusWaldron/cubescan/internal/storage"
)

var (
	historyLimit int
	historyLast  bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded scans",
	Long:  `Display recent scans from the history database with their outcome.`,
	RunE:  runHistoryList,
}

var historyShowCmd = &cobra.Command{
	Use:   "show [scan-id]",
	Short: "Show a recorded scan and its repairs",
	Long: `Display a recorded scan, its classified notation and every repair attempt.

Use --last to show the most recent scan.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistoryShow,
}

var historyStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarise the repair history",
	RunE:  runHistoryStats,
}

var historyDeleteCmd = &cobra.Command{
	Use:   "delete <scan-id>",
	Short: "Delete a scan and its repairs",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryDelete,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum number of scans to display")

	historyCmd.AddCommand(historyShowCmd)
	historyShowCmd.Flags().BoolVar(&historyLast, "last", false, "Show the most recent scan")

	historyCmd.AddCommand(historyStatsCmd)
	historyCmd.AddCommand(historyDeleteCmd)
}

func openHistory() (*storage.DB, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return openDB(cfg)
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	db, err := openHistory()
	if err != nil {
		return err
	}
	defer db.Close()

	scans, err := storage.NewScanRepository(db).List(historyLimit)
	if err != nil {
		return err
	}
	if len(scans) == 0 {
		fmt.Println("No scans recorded yet")
		fmt.Println("Record one with: cubescan fix <scan-file>")
		return nil
	}

	fixes := storage.NewFixRepository(db)
	fmt.Printf("Recent scans (showing %d):\n", len(scans))
	fmt.Println()
	fmt.Printf("%-36s  %-19s  %-9s  %-8s  %s\n", "ID", "Recorded", "Status", "Changed", "Source")
	fmt.Println("------------------------------------  -------------------  ---------  --------  ------")

	for _, s := range scans {
		status, changed := scanStatus(s, fixes)
		source := ""
		if s.Source != nil {
			source = *s.Source
			if len(source) > 40 {
				source = "..." + source[len(source)-37:]
			}
		}
		fmt.Printf("%-36s  %-19s  %-9s  %-8s  %s\n",
			s.ScanID,
			s.CreatedAt.Local().Format("2006-01-02 15:04:05"),
			status,
			changed,
			source,
		)
	}
	return nil
}

// scanStatus summarises a scan's outcome for the list view.
func scanStatus(s storage.Scan, fixes *storage.FixRepository) (status, changed string) {
	changed = "-"
	switch {
	case s.CorrectedNotation != nil:
		status = "edited"
	case s.Solvable:
		status = "ok"
	default:
		status = "failed"
		list, err := fixes.ListForScan(s.ScanID)
		if err == nil && len(list) > 0 {
			last := list[len(list)-1]
			if last.Found {
				status = "repaired"
				in, err1 := facelet.ParseNotation(last.InputNotation)
				out, err2 := facelet.ParseNotation(last.Notation)
				if err1 == nil && err2 == nil {
					changed = fmt.Sprintf("%d", len(in.Diff(out)))
				}
			}
		}
	}
	return status, changed
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	db, err := openHistory()
	if err != nil {
		return err
	}
	defer db.Close()

	s, err := findScan(db, args, historyLast)
	if err != nil {
		return err
	}

	fmt.Println(titleStyle.Render("Scan " + s.ScanID))
	fmt.Printf("Recorded:  %s\n", s.CreatedAt.Local().Format("2006-01-02 15:04:05"))
	if s.Source != nil {
		fmt.Printf("Source:    %s\n", *s.Source)
	}
	if n, err := facelet.ParseNotation(s.Notation); err == nil {
		fmt.Println(renderNet(n, nil, -1))
	}
	fmt.Printf("Notation:  %s\n", s.Notation)
	fmt.Printf("Valid:     %t\n", s.Valid)
	fmt.Printf("Solvable:  %t\n", s.Solvable)
	if s.Cause != nil {
		fmt.Printf("Cause:     %s\n", *s.Cause)
	}
	if s.CorrectedNotation != nil {
		fmt.Printf("Corrected: %s\n", *s.CorrectedNotation)
	}

	list, err := storage.NewFixRepository(db).ListForScan(s.ScanID)
	if err != nil {
		return err
	}
	for k, f := range list {
		fmt.Println()
		fmt.Println(titleStyle.Render(fmt.Sprintf("Repair %d", k+1)))
		fmt.Printf("  State:     %s\n", f.State)
		if f.Found {
			fmt.Printf("  Notation:  %s\n", f.Notation)
			if f.Score != nil {
				fmt.Printf("  Score:     %.2f\n", *f.Score)
			}
			fmt.Printf("  Depth:     %d\n", f.Depth)
			if f.Swaps != "" {
				fmt.Printf("  Swaps:     %s\n", f.Swaps)
			}
		} else {
			fmt.Println("  " + errorStyle.Render("no solvable notation found"))
		}
		fmt.Printf("  Evaluated: %d in %dms, %d depth(s) completed\n", f.Evaluated, f.DurationMs, f.DepthsCompleted)
	}
	return nil
}

// findScan resolves a scan from an ID argument or --last.
func findScan(db *storage.DB, args []string, last bool) (*storage.Scan, error) {
	scans := storage.NewScanRepository(db)
	var s *storage.Scan
	var err error
	switch {
	case len(args) == 1:
		s, err = scans.Get(args[0])
	case last:
		s, err = scans.GetLast()
	default:
		return nil, fmt.Errorf("specify a scan ID or --last")
	}
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, fmt.Errorf("scan not found")
	}
	return s, nil
}

func runHistoryStats(cmd *cobra.Command, args []string) error {
	db, err := openHistory()
	if err != nil {
		return err
	}
	defer db.Close()

	st, err := storage.NewFixRepository(db).GetStats()
	if err != nil {
		return err
	}
	fmt.Printf("Scans:          %d\n", st.Scans)
	fmt.Printf("Repairs:        %d\n", st.Fixes)
	fmt.Printf("Repairs found:  %d\n", st.Found)
	if st.Found > 0 {
		fmt.Printf("Mean depth:     %.2f\n", st.MeanDepth)
	}
	fmt.Printf("Database:       %s\n", db.Path())
	return nil
}

func runHistoryDelete(cmd *cobra.Command, args []string) error {
	db, err := openHistory()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := storage.NewScanRepository(db).Delete(args[0]); err != nil {
		return err
	}
	fmt.Printf("Deleted %s\n", args[0])
	return nil
}
