package cubescan

import (
	"context"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SeamusWaldron/cubescan/internal/colorpoint"
	"github.com/SeamusWaldron/cubescan/internal/cube"
	"github.com/SeamusWaldron/cubescan/internal/facelet"
	"github.com/SeamusWaldron/cubescan/internal/scan"
)

func synth(n Notation, seed uint64) Arena {
	return scan.Synthesize(n, scan.DefaultPalette, 12, rand.New(rand.NewPCG(seed, seed)))
}

func TestResolveSolved(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	res, err := r.Resolve(context.Background(), synth(facelet.Solved(), 1))
	require.NoError(t, err)
	assert.Equal(t, facelet.Solved(), res.Notation)
	assert.NoError(t, res.Cause)
	assert.Nil(t, res.Fix)
	assert.True(t, res.Report.Valid())
	assert.False(t, res.Repaired())
}

func TestResolveScrambleInColorSpaces(t *testing.T) {
	want := Scramble(TPerm...)
	require.NotEqual(t, facelet.Solved(), want)

	for _, cs := range []colorpoint.ColorSpace{colorpoint.RGB, colorpoint.Lab} {
		t.Run(string(cs), func(t *testing.T) {
			r, err := New(WithColorSpace(cs, 255), WithTopologyAware(true))
			require.NoError(t, err)
			res, err := r.Resolve(context.Background(), synth(want, 2))
			require.NoError(t, err)
			assert.Equal(t, want.String(), res.Notation.String())
		})
	}
}

func TestResolveExhaustedKeepsBestEffort(t *testing.T) {
	// The samples themselves were swapped, so the classifier labels them
	// faithfully and the relabeling needed is far outside the ambiguous pairs.
	samples := synth(facelet.Solved(), 3)
	samples[8], samples[26] = samples[26], samples[8]
	samples[8].Index, samples[26].Index = 8, 26

	cfg := DefaultFixerConfig()
	cfg.MaxDepth = 2
	r, err := New(WithFixerConfig(cfg))
	require.NoError(t, err)

	res, err := r.Resolve(context.Background(), samples)
	require.Error(t, err)
	assert.True(t, IsRepairExhausted(err))
	require.NotNil(t, res)
	assert.ErrorIs(t, res.Cause, ErrInvalidNotation)
	assert.Equal(t, res.Classified, res.Notation)
	assert.True(t, math.IsInf(res.Fix.Score, 1))
	assert.Equal(t, facelet.Solved().Swapped(8, 26), res.Classified)
}

func TestRepair(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	samples := r.Convert(synth(facelet.Solved(), 4))
	fix := r.Repair(context.Background(), &samples, facelet.Solved().Swapped(8, 26))
	require.NoError(t, fix.Err())
	assert.Equal(t, facelet.Solved(), fix.Notation)
	assert.Less(t, fix.Score, fix.InputScore)
}

func TestResolveMalformed(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	samples := synth(facelet.Solved(), 5)
	samples[10].C2 = math.NaN()
	res, err := r.Resolve(context.Background(), samples)
	assert.ErrorIs(t, err, ErrMalformedScan)
	assert.Nil(t, res)
}

func TestCheck(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	assert.NoError(t, r.Check(Scramble(SexyMove...)))
	assert.ErrorIs(t, r.Check(facelet.Solved().Swapped(8, 26)), ErrInvalidNotation)

	twisted := cube.SolvedCubie()
	twisted.CO[2] = 2
	twisted.CO[5] = 2
	err = r.Check(twisted.Notation())
	assert.ErrorIs(t, err, ErrUnsolvable)
	assert.Contains(t, err.Error(), "twisted corner")
}

func TestResolveWithSolver(t *testing.T) {
	want := Scramble(R, U)
	solver := solverFunc(func(_ context.Context, n Notation) ([]Move, error) {
		assert.Equal(t, want, n)
		return []Move{UPrime, RPrime}, nil
	})
	r, err := New(WithSolver(solver))
	require.NoError(t, err)

	res, err := r.Resolve(context.Background(), synth(want, 6))
	require.NoError(t, err)
	assert.Equal(t, []Move{UPrime, RPrime}, res.Solution)
}

func TestNewRejectsBadSettings(t *testing.T) {
	_, err := New(WithMetric(colorpoint.Metric{Channel: 5, Divisor: 1}))
	assert.Error(t, err)

	cfg := DefaultFixerConfig()
	cfg.Workers = 0
	_, err = New(WithFixerConfig(cfg))
	assert.Error(t, err)
}

func TestParseNotation(t *testing.T) {
	n, err := ParseNotation(facelet.Solved().String())
	require.NoError(t, err)
	assert.True(t, Validate(n).Valid())
}

type solverFunc func(context.Context, Notation) ([]Move, error)

func (f solverFunc) Solve(ctx context.Context, n Notation) ([]Move, error) {
	return f(ctx, n)
}
