package fixer

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SeamusWaldron/cubescan/internal/colorpoint"
	"github.com/SeamusWaldron/cubescan/internal/cube"
	"github.com/SeamusWaldron/cubescan/internal/facelet"
	"github.com/SeamusWaldron/cubescan/internal/oracle"
)

var palette = map[facelet.Face][3]float64{
	facelet.U: {250, 250, 250},
	facelet.R: {200, 20, 20},
	facelet.F: {20, 180, 40},
	facelet.D: {240, 230, 20},
	facelet.L: {250, 120, 10},
	facelet.B: {20, 40, 200},
}

func samplesFor(n facelet.Notation, rng *rand.Rand, spread float64) *colorpoint.Arena {
	a := colorpoint.NewArena()
	for i := range a {
		c := palette[n.At(i)]
		a.Set(i,
			c[0]+spread*(rng.Float64()-0.5),
			c[1]+spread*(rng.Float64()-0.5),
			c[2]+spread*(rng.Float64()-0.5))
	}
	return &a
}

func smallConfig() Config {
	cfg := DefaultConfig()
	cfg.MaxDepth = 2
	return cfg
}

func TestFindFixKeepsValidInput(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	want := cube.Scramble(cube.RandomScramble(rng, 20))
	samples := samplesFor(want, rng, 10)

	f, err := New(nil, smallConfig())
	require.NoError(t, err)

	res := f.FindFix(context.Background(), samples, want)
	require.NoError(t, res.Err())
	assert.True(t, res.Found())
	assert.Equal(t, want, res.Notation)
	assert.LessOrEqual(t, res.Score, res.InputScore)
	assert.Empty(t, res.Changed(want))
	assert.Equal(t, Done, res.State)
	assert.Equal(t, []State{Stable, BoundedSearch, Done}, res.Trace)
	assert.True(t, res.Exhaustive)
	assert.Equal(t, 3, res.DepthsCompleted)
}

func TestFindFixRepairsSwappedCorner(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	want := facelet.Solved()
	samples := samplesFor(want, rng, 8)

	// U sticker of URF and F sticker of DFR traded labels.
	broken := want.Swapped(8, 26)
	rep := facelet.Validate(broken)
	require.NotEmpty(t, rep.InvalidCorners)
	require.False(t, cube.IsSolvable(broken))

	f, err := New(oracle.Cubie{}, smallConfig())
	require.NoError(t, err)

	res := f.FindFix(context.Background(), samples, broken)
	require.NoError(t, res.Err())
	assert.Equal(t, want, res.Notation)
	assert.Less(t, res.Score, res.InputScore)
	assert.LessOrEqual(t, res.Depth, 2)
	assert.True(t, facelet.Validate(res.Notation).Valid())
	assert.ElementsMatch(t, []int{8, 26}, res.Changed(broken))
	assert.Contains(t, res.Trace, LocalSearch)
}

func TestSearchDepthFindsPair(t *testing.T) {
	rng := rand.New(rand.NewPCG(5, 6))
	want := facelet.Solved()
	samples := samplesFor(want, rng, 8)
	broken := want.Swapped(8, 26).Swapped(1, 10)

	f, err := New(nil, smallConfig())
	require.NoError(t, err)

	cands := []Swap{{I: 3, J: 19}, {I: 8, J: 26}, {I: 1, J: 10}, {I: 2, J: 11}}
	best, evaluated, err := f.searchDepth(samples, broken, cands, 1)
	require.NoError(t, err)
	assert.Nil(t, best)
	assert.Equal(t, 4, evaluated)

	best, evaluated, err = f.searchDepth(samples, broken, cands, 2)
	require.NoError(t, err)
	require.NotNil(t, best)
	assert.Equal(t, 6, evaluated)
	assert.Equal(t, want, best.notation)
	assert.Equal(t, []Swap{{I: 8, J: 26}, {I: 1, J: 10}}, best.swaps)
}

func TestFindFixExhausted(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 8))
	input := facelet.Solved().Swapped(8, 26)
	samples := samplesFor(facelet.Solved(), rng, 8)

	never := oracle.Func(func(facelet.Notation) bool { return false })
	f, err := New(never, smallConfig())
	require.NoError(t, err)

	res := f.FindFix(context.Background(), samples, input)
	assert.ErrorIs(t, res.Err(), ErrRepairExhausted)
	assert.False(t, res.Found())
	assert.True(t, math.IsInf(res.Score, 1))
	assert.Equal(t, input, res.Notation)
	assert.Equal(t, Done, res.State)
	assert.True(t, res.Exhaustive)
	assert.Equal(t, 3, res.DepthsCompleted)
	assert.Greater(t, res.Evaluated, res.Candidates)
}

func TestFindFixCancelled(t *testing.T) {
	rng := rand.New(rand.NewPCG(9, 10))
	n := facelet.Solved()
	samples := samplesFor(n, rng, 8)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f, err := New(nil, smallConfig())
	require.NoError(t, err)

	res := f.FindFix(ctx, samples, n)
	assert.True(t, errors.Is(res.Err(), context.Canceled))
	assert.False(t, res.Exhaustive)
	assert.Zero(t, res.DepthsCompleted)
	// The solvable input is still reported.
	assert.True(t, res.Found())
	assert.Equal(t, n, res.Notation)
}

func TestFindFixCancelledAndExhausted(t *testing.T) {
	rng := rand.New(rand.NewPCG(9, 11))
	samples := samplesFor(facelet.Solved(), rng, 8)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f, err := New(oracle.Func(func(facelet.Notation) bool { return false }), smallConfig())
	require.NoError(t, err)

	res := f.FindFix(ctx, samples, facelet.Solved())
	assert.ErrorIs(t, res.Err(), ErrRepairExhausted)
	assert.ErrorIs(t, res.Err(), context.Canceled)
}

func TestFindFixOracleFailure(t *testing.T) {
	rng := rand.New(rand.NewPCG(13, 14))
	want := cube.Scramble(cube.RandomScramble(rng, 15))
	samples := samplesFor(want, rng, 8)
	input := want.Swapped(8, 26)

	// The input check and depth 0 succeed; the first combination at depth 1
	// panics inside a worker.
	var mu sync.Mutex
	calls := 0
	o := oracle.Func(func(n facelet.Notation) bool {
		mu.Lock()
		calls++
		c := calls
		mu.Unlock()
		if c > 2 {
			panic("solver crashed")
		}
		return false
	})

	cfg := smallConfig()
	cfg.Workers = 3
	f, err := New(o, cfg)
	require.NoError(t, err)

	res := f.FindFix(context.Background(), samples, input)
	require.Error(t, res.Err())
	assert.ErrorIs(t, res.Err(), ErrOracleFailed)
	assert.ErrorIs(t, res.Err(), ErrRepairExhausted)
	assert.Contains(t, res.Err().Error(), "solver crashed")
	assert.False(t, res.Exhaustive)
	assert.Equal(t, 1, res.DepthsCompleted)
	assert.False(t, res.Found())
	assert.Equal(t, input, res.Notation)
}

func TestSearchDepthOracleFailure(t *testing.T) {
	rng := rand.New(rand.NewPCG(5, 7))
	samples := samplesFor(facelet.Solved(), rng, 8)
	f, err := New(oracle.Func(func(facelet.Notation) bool { panic("boom") }), smallConfig())
	require.NoError(t, err)

	cands := []Swap{{I: 3, J: 19}, {I: 8, J: 26}, {I: 1, J: 10}, {I: 2, J: 11}}
	best, evaluated, err := f.searchDepth(samples, facelet.Solved(), cands, 2)
	assert.ErrorIs(t, err, ErrOracleFailed)
	assert.Nil(t, best)
	assert.Equal(t, 1, evaluated)

	_, _, err = f.searchDepth(samples, facelet.Solved(), cands, 0)
	assert.ErrorIs(t, err, ErrOracleFailed)
}

func TestParallelMatchesSerial(t *testing.T) {
	rng := rand.New(rand.NewPCG(11, 12))
	want := cube.Scramble(cube.RandomScramble(rng, 15))
	samples := samplesFor(want, rng, 120)
	input := want.Swapped(8, 26)

	serial, err := New(nil, smallConfig())
	require.NoError(t, err)
	cfg := smallConfig()
	cfg.Workers = 4
	parallel, err := New(nil, cfg)
	require.NoError(t, err)

	a := serial.FindFix(context.Background(), samples, input)
	b := parallel.FindFix(context.Background(), samples, input)

	assert.Equal(t, a.Err(), b.Err())
	if diff := cmp.Diff(a, b, cmpopts.IgnoreUnexported(Result{})); diff != "" {
		t.Errorf("parallel result differs (-serial +parallel):\n%s", diff)
	}
}

func TestCandidates(t *testing.T) {
	samples := colorpoint.NewArena()
	n := facelet.Solved()

	structural := Candidates(colorpoint.DefaultMetric, &samples, n, true)
	assert.Len(t, structural, 480)
	all := Candidates(colorpoint.DefaultMetric, &samples, n, false)
	assert.Len(t, all, 960)

	for _, s := range all {
		assert.Less(t, s.I, s.J)
		assert.False(t, facelet.IsCentre(s.I) || facelet.IsCentre(s.J))
		assert.NotEqual(t, n[s.I], n[s.J])
	}
	for _, s := range structural {
		assert.Equal(t, facelet.ClassOf(s.I), facelet.ClassOf(s.J))
	}
}

func TestPrune(t *testing.T) {
	var cands []Swap
	for d := 32; d >= 1; d-- {
		cands = append(cands, Swap{I: d, J: d + 1, Distance: float64(d)})
	}

	kept := Prune(cands, 1.0/16, 0)
	require.Len(t, kept, 2)
	assert.Equal(t, 1.0, kept[0].Distance)
	assert.Equal(t, 2.0, kept[1].Distance)

	assert.Len(t, Prune(cands, 1.0/16, 8), 8)
	assert.Len(t, Prune(cands, 1.0/16, 100), 32)
	assert.Len(t, Prune(cands, 1, 0), 32)
	assert.Nil(t, Prune(nil, 0.5, 3))
}

func TestScore(t *testing.T) {
	rng := rand.New(rand.NewPCG(13, 14))
	n := facelet.Solved()
	samples := samplesFor(n, rng, 4)

	good := Score(colorpoint.DefaultMetric, samples, n)
	bad := Score(colorpoint.DefaultMetric, samples, n.Swapped(0, 9))
	assert.Less(t, good, bad)

	exact := colorpoint.NewArena()
	for i := range exact {
		c := palette[n.At(i)]
		exact.Set(i, c[0], c[1], c[2])
	}
	assert.InDelta(t, 0, Score(colorpoint.DefaultMetric, &exact, n), 1e-9)
}

func TestConfigValidate(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())

	for _, mut := range []func(*Config){
		func(c *Config) { c.MaxDepth = -1 },
		func(c *Config) { c.PruneFraction = 0 },
		func(c *Config) { c.PruneFraction = 1.5 },
		func(c *Config) { c.Workers = 0 },
		func(c *Config) { c.MinCandidates = -2 },
		func(c *Config) { c.MaxLocalIterations = -1 },
		func(c *Config) { c.Metric.Divisor = 0 },
	} {
		cfg := DefaultConfig()
		mut(&cfg)
		assert.Error(t, cfg.Validate())
		_, err := New(nil, cfg)
		assert.Error(t, err)
	}
}
