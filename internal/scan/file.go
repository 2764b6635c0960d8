package scan

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/SeamusWaldron/cubescan/internal/colorpoint"
	"github.com/SeamusWaldron/cubescan/internal/facelet"
)

// ErrMalformedScan is returned for a scan file with the wrong number of
// samples or an unreadable value.
var ErrMalformedScan = errors.New("scan: malformed scan file")

// TimestampLayout names exported scan files.
const TimestampLayout = "2006-01-02_15-04-05"

// Import reads one "c1, c2, c3" line per facelet in notation order. Blank
// lines after the last sample are ignored.
func Import(r io.Reader) (colorpoint.Arena, error) {
	a := colorpoint.NewArena()
	sc := bufio.NewScanner(r)
	line, n, trailing := 0, 0, false

	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			trailing = true
			continue
		}
		if trailing {
			return a, fmt.Errorf("%w: line %d: sample after blank line", ErrMalformedScan, line)
		}
		if n >= facelet.Count {
			return a, fmt.Errorf("%w: more than %d samples", ErrMalformedScan, facelet.Count)
		}

		c, err := ParseSample(text)
		if err != nil {
			return a, fmt.Errorf("line %d: %w", line, err)
		}
		p := colorpoint.New(c[0], c[1], c[2], n)
		if err := p.Validate(); err != nil {
			return a, fmt.Errorf("%w: line %d: %v", ErrMalformedScan, line, err)
		}
		a[n] = p
		n++
	}
	if err := sc.Err(); err != nil {
		return a, fmt.Errorf("failed to read scan: %w", err)
	}
	if n != facelet.Count {
		return a, fmt.Errorf("%w: want %d samples, got %d", ErrMalformedScan, facelet.Count, n)
	}
	return a, nil
}

// ParseSample reads one "c1, c2, c3" line.
func ParseSample(text string) ([3]float64, error) {
	var c [3]float64
	fields := strings.Split(strings.TrimSpace(text), ",")
	if len(fields) != 3 {
		return c, fmt.Errorf("%w: want 3 values, got %d", ErrMalformedScan, len(fields))
	}
	for k, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return c, fmt.Errorf("%w: %v", ErrMalformedScan, err)
		}
		c[k] = v
	}
	return c, nil
}

// Export writes a in the format Import reads.
func Export(w io.Writer, a *colorpoint.Arena) error {
	bw := bufio.NewWriter(w)
	for _, p := range a {
		fmt.Fprintf(bw, "%s, %s, %s\n", format(p.C1), format(p.C2), format(p.C3))
	}
	return bw.Flush()
}

func format(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ImportFile reads a scan file.
func ImportFile(path string) (colorpoint.Arena, error) {
	f, err := os.Open(path)
	if err != nil {
		return colorpoint.Arena{}, fmt.Errorf("failed to open scan: %w", err)
	}
	defer f.Close()
	return Import(f)
}

// ExportFile writes a scan file, replacing any existing one.
func ExportFile(path string, a *colorpoint.Arena) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create scan: %w", err)
	}
	if err := Export(f, a); err != nil {
		f.Close()
		return fmt.Errorf("failed to write scan: %w", err)
	}
	return f.Close()
}

// ExportDir writes a into dir under a name derived from t and returns the
// path written.
func ExportDir(dir string, a *colorpoint.Arena, t time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create scan directory: %w", err)
	}
	path := filepath.Join(dir, t.Format(TimestampLayout)+".txt")
	return path, ExportFile(path, a)
}
