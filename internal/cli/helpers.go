package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"github.com/SeamusWaldron/cubescan"
	"github.com/SeamusWaldron/cubescan/internal/colorpoint"
	"github.com/SeamusWaldron/cubescan/internal/facelet"
	"github.com/SeamusWaldron/cubescan/internal/fixer"
	"github.com/SeamusWaldron/cubescan/internal/notation"
	"github.com/SeamusWaldron/cubescan/internal/scan"
	"github.com/SeamusWaldron/cubescan/internal/storage"
)

// notationOrScan reads arg as a 54 symbol notation, or failing that as a
// scan file to classify.
func notationOrScan(arg string, r *cubescan.Resolver) (facelet.Notation, error) {
	if len(arg) == facelet.Count {
		if n, err := facelet.ParseNotation(arg); err == nil {
			return n, nil
		}
	}
	if _, err := os.Stat(arg); err != nil {
		return facelet.Notation{}, fmt.Errorf("%q is neither a notation nor a readable scan file", arg)
	}
	raw, err := scan.ImportFile(arg)
	if err != nil {
		return facelet.Notation{}, err
	}
	a := r.Convert(raw)
	n, _ := r.Classify(&a)
	return n, nil
}

func formatSwaps(swaps []fixer.Swap) string {
	parts := make([]string, len(swaps))
	for k, s := range swaps {
		parts[k] = fmt.Sprintf("%d-%d", s.I, s.J)
	}
	return strings.Join(parts, " ")
}

func floatPtr(v float64) *float64 {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return nil
	}
	return &v
}

func stringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// saveResolution records a scan and, when repair ran, its fix.
func saveResolution(db *storage.DB, source string, raw *colorpoint.Arena, res *cubescan.Resolution, elapsed time.Duration) (string, error) {
	var buf bytes.Buffer
	if err := scan.Export(&buf, raw); err != nil {
		return "", err
	}

	rec := storage.Scan{
		Source:   stringPtr(source),
		Samples:  buf.String(),
		Notation: res.Classified.String(),
		Valid:    res.Report.Valid(),
		Solvable: res.Cause == nil,
	}
	if res.Cause != nil {
		rec.Cause = stringPtr(res.Cause.Error())
	}
	scanID, err := storage.NewScanRepository(db).Create(rec)
	if err != nil {
		return "", err
	}

	if res.Fix != nil {
		f := res.Fix
		_, err := storage.NewFixRepository(db).Create(storage.Fix{
			ScanID:          scanID,
			InputNotation:   res.Classified.String(),
			Notation:        f.Notation.String(),
			Score:           floatPtr(f.Score),
			InputScore:      floatPtr(f.InputScore),
			State:           f.State.String(),
			Depth:           f.Depth,
			Swaps:           formatSwaps(append(append([]fixer.Swap(nil), f.LocalSwaps...), f.Swaps...)),
			DepthsCompleted: f.DepthsCompleted,
			Exhaustive:      f.Exhaustive,
			Evaluated:       f.Evaluated,
			Found:           f.Found(),
			DurationMs:      elapsed.Milliseconds(),
		})
		if err != nil {
			return scanID, err
		}
	}
	return scanID, nil
}

// printResolution writes a human-readable account of res.
func printResolution(res *cubescan.Resolution, err error) {
	fmt.Println(titleStyle.Render("Classified"))
	fmt.Println(renderNet(res.Classified, markSet(res.Summary.Unassigned), -1))
	fmt.Printf("Notation:     %s\n", res.Classified)
	fmt.Printf("Max distance: %.2f\n", res.Summary.MaxDistance())
	if len(res.Summary.Unassigned) > 0 {
		fmt.Printf("Unassigned:   %v\n", res.Summary.Unassigned)
	}
	fmt.Println()

	if res.Cause == nil {
		fmt.Println(okStyle.Render("Notation is solvable"))
	} else {
		fmt.Println(errorStyle.Render(res.Cause.Error()))
	}

	if f := res.Fix; f != nil {
		fmt.Println()
		fmt.Println(titleStyle.Render("Repair"))
		changed := f.Changed(res.Classified)
		fmt.Println(renderNet(f.Notation, markSet(changed), -1))
		fmt.Printf("State:      %s\n", f.State)
		switch {
		case f.Found():
			fmt.Printf("Notation:   %s\n", f.Notation)
			fmt.Printf("Score:      %.2f (input %.2f)\n", f.Score, f.InputScore)
			fmt.Printf("Changed:    %v\n", changed)
			if len(f.LocalSwaps) > 0 && f.Depth >= 0 {
				fmt.Printf("Hill climb: %s\n", formatSwaps(f.LocalSwaps))
			}
			if len(f.Swaps) > 0 {
				fmt.Printf("Swaps:      %s (depth %d)\n", formatSwaps(f.Swaps), f.Depth)
			}
		default:
			fmt.Println(errorStyle.Render("No solvable notation found"))
		}
		fmt.Printf("Evaluated:  %d combinations over %d candidates, %d depth(s) completed",
			f.Evaluated, f.Candidates, f.DepthsCompleted)
		if !f.Exhaustive {
			fmt.Print(" (cut short)")
		}
		fmt.Println()
	}

	if len(res.Solution) > 0 {
		fmt.Println()
		fmt.Printf("Solution:   %s (%d moves)\n", notation.FormatSequence(res.Solution), notation.HalfTurnCount(res.Solution))
	}
	if err != nil && !errors.Is(err, context.DeadlineExceeded) {
		fmt.Println()
		fmt.Println(errorStyle.Render(err.Error()))
	}
}

// finalNotation returns the best known notation for a stored scan: a hand
// correction, then the latest successful repair, then the classification.
func finalNotation(db *storage.DB, s *storage.Scan) (string, error) {
	if s.CorrectedNotation != nil {
		return *s.CorrectedNotation, nil
	}
	fixes, err := storage.NewFixRepository(db).ListForScan(s.ScanID)
	if err != nil {
		return "", err
	}
	for k := len(fixes) - 1; k >= 0; k-- {
		if fixes[k].Found {
			return fixes[k].Notation, nil
		}
	}
	return s.Notation, nil
}
