package scan

import (
	"bytes"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SeamusWaldron/cubescan/internal/classify"
	"github.com/SeamusWaldron/cubescan/internal/colorpoint"
	"github.com/SeamusWaldron/cubescan/internal/facelet"
)

func TestSessionRecordsInScanOrder(t *testing.T) {
	s := NewSession()
	assert.Equal(t, facelet.Count, s.Remaining())

	i, err := s.Record(1, 2, 3)
	require.NoError(t, err)
	assert.Equal(t, facelet.ScanOrder[0], i)
	assert.Equal(t, colorpoint.New(1, 2, 3, 4), s.Samples[4])

	for !s.Complete() {
		_, err := s.Record(0, 0, 0)
		require.NoError(t, err)
	}
	_, err = s.Record(0, 0, 0)
	assert.ErrorIs(t, err, ErrSessionFull)
	assert.NoError(t, s.Samples.Validate())

	s.Reset()
	assert.Zero(t, s.Cursor)
	assert.False(t, s.Complete())
}

func TestReplay(t *testing.T) {
	a := Synthesize(facelet.Solved(), DefaultPalette, 10, rand.New(rand.NewPCG(1, 1)))
	s := NewSession()
	require.NoError(t, Replay(s, &a))
	assert.Equal(t, a, s.Samples)
}

func TestRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewPCG(2, 3))
	a := Synthesize(facelet.Solved(), DefaultPalette, 30, rng)
	a.Set(0, 0.1, 1e-7, 123456.789)

	var buf bytes.Buffer
	require.NoError(t, Export(&buf, &a))
	buf.WriteString("\n\n")

	b, err := Import(&buf)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	n1, _ := classify.Arena(&a)
	n2, _ := classify.Arena(&b)
	assert.Equal(t, n1, n2)
}

func TestImportMalformed(t *testing.T) {
	valid := strings.Repeat("1, 2, 3\n", facelet.Count)

	tests := map[string]string{
		"too few":    strings.Repeat("1, 2, 3\n", facelet.Count-1),
		"too many":   valid + "1, 2, 3\n",
		"bad number": strings.Replace(valid, "2", "x", 1),
		"two fields": strings.Replace(valid, "1, 2, 3", "1, 2", 1),
		"gap":        "1, 2, 3\n\n" + strings.Repeat("1, 2, 3\n", facelet.Count-1),
		"not finite": strings.Replace(valid, "3", "NaN", 1),
		"empty":      "",
	}
	for name, in := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Import(strings.NewReader(in))
			assert.ErrorIs(t, err, ErrMalformedScan)
		})
	}

	_, err := Import(strings.NewReader(valid))
	assert.NoError(t, err)
}

func TestExportDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "scans")
	a := Synthesize(facelet.Solved(), DefaultPalette, 0, rand.New(rand.NewPCG(0, 0)))
	when := time.Date(2024, 3, 1, 14, 5, 9, 0, time.UTC)

	path, err := ExportDir(dir, &a, when)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "2024-03-01_14-05-09.txt"), path)

	_, err = os.Stat(path)
	require.NoError(t, err)
	b, err := ImportFile(path)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	_, err = ImportFile(filepath.Join(dir, "missing.txt"))
	assert.Error(t, err)
}

func TestSynthesizeFollowsNotation(t *testing.T) {
	a := Synthesize(facelet.Solved(), DefaultPalette, 0, rand.New(rand.NewPCG(0, 0)))
	assert.Equal(t, DefaultPalette[facelet.R][0], a[13].C1)
	assert.Equal(t, 13, a[13].Index)
}

func TestParseSample(t *testing.T) {
	c, err := ParseSample(" 12.5,0 , -3 ")
	require.NoError(t, err)
	assert.Equal(t, [3]float64{12.5, 0, -3}, c)

	_, err = ParseSample("1, 2")
	assert.ErrorIs(t, err, ErrMalformedScan)
	_, err = ParseSample("1, two, 3")
	assert.ErrorIs(t, err, ErrMalformedScan)
}
