package oracle

import (
	"context"
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SeamusWaldron/cubescan/internal/cube"
	"github.com/SeamusWaldron/cubescan/internal/facelet"
	"github.com/SeamusWaldron/cubescan/pkg/types"
)

func TestCubieOracle(t *testing.T) {
	o := Default()
	assert.True(t, o.IsSolvable(facelet.Solved()))

	n := cube.Scramble(cube.RandomScramble(rand.New(rand.NewPCG(3, 3)), 20))
	assert.True(t, o.IsSolvable(n))

	// Exchanging two different labels never leaves a reachable cube.
	i, j := differingPair(n)
	require.NotEqual(t, n.At(i), n.At(j))
	assert.False(t, o.IsSolvable(n.Swapped(i, j)), "swap %d-%d", i, j)
	assert.False(t, o.IsSolvable(facelet.BlankNotation()))
}

// differingPair returns the first two non-centre positions of n holding
// different labels.
func differingPair(n facelet.Notation) (int, int) {
	for i := 0; i < facelet.Count; i++ {
		for j := i + 1; j < facelet.Count; j++ {
			if !facelet.IsCentre(i) && !facelet.IsCentre(j) && n[i] != n[j] {
				return i, j
			}
		}
	}
	return -1, -1
}

func TestCubieOracleRejectsEverySwap(t *testing.T) {
	o := Default()
	for seed := uint64(0); seed < 5; seed++ {
		n := cube.Scramble(cube.RandomScramble(rand.New(rand.NewPCG(seed, 17)), 25))
		require.True(t, o.IsSolvable(n), "seed %d", seed)
		for i := 0; i < facelet.Count; i++ {
			for j := i + 1; j < facelet.Count; j++ {
				if facelet.IsCentre(i) || facelet.IsCentre(j) || n[i] == n[j] {
					continue
				}
				if o.IsSolvable(n.Swapped(i, j)) {
					t.Errorf("seed %d: swap %d-%d accepted", seed, i, j)
				}
			}
		}
	}
}

func TestCubieCheck(t *testing.T) {
	err := Cubie{}.Check(facelet.Solved().Swapped(5, 10))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsolvable)

	var ve *cube.VerifyError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, cube.FlippedEdge, ve.Code)
}

func TestFunc(t *testing.T) {
	calls := 0
	o := Func(func(facelet.Notation) bool {
		calls++
		return false
	})
	assert.False(t, o.IsSolvable(facelet.Solved()))
	assert.Equal(t, 1, calls)
}

func TestCommandSolve(t *testing.T) {
	c, err := NewCommand("/bin/sh", nil)
	require.NoError(t, err)
	c.Args = []string{"-c", `echo "R U' F2 (3f)"`, "sh"}

	moves, err := c.Solve(context.Background(), facelet.Solved())
	require.NoError(t, err)
	assert.Equal(t, []types.Move{
		{Face: types.FaceR, Turn: types.TurnCW},
		{Face: types.FaceU, Turn: types.TurnCCW},
		{Face: types.FaceF, Turn: types.Turn180},
	}, moves)
	assert.True(t, c.IsSolvable(facelet.Solved()))
}

func TestCommandPassesNotation(t *testing.T) {
	// $1 is the notation; the script answers with its first letter as a move.
	c := &Command{Path: "/bin/sh", Args: []string{"-c", `echo "${1%"${1#?}"}"`, "sh"}}
	moves, err := c.Solve(context.Background(), facelet.Solved())
	require.NoError(t, err)
	assert.Equal(t, []types.Move{{Face: types.FaceU, Turn: types.TurnCW}}, moves)
}

func TestCommandRejects(t *testing.T) {
	c := &Command{Path: "/bin/sh", Args: []string{"-c", `echo "Error 8"`, "sh"}}
	_, err := c.Solve(context.Background(), facelet.Solved())
	assert.ErrorIs(t, err, ErrUnsolvable)
	assert.False(t, c.IsSolvable(facelet.Solved()))

	c = &Command{Path: "/bin/sh", Args: []string{"-c", `exit 3`, "sh"}}
	_, err = c.Solve(context.Background(), facelet.Solved())
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnsolvable)

	_, err = NewCommand("  ", nil)
	assert.Error(t, err)
}

func TestCheckedSkipsBadNotation(t *testing.T) {
	called := false
	s := Checked{Solver: solverFunc(func(context.Context, facelet.Notation) ([]types.Move, error) {
		called = true
		return nil, nil
	})}
	_, err := s.Solve(context.Background(), facelet.Solved().Swapped(5, 10))
	assert.ErrorIs(t, err, ErrUnsolvable)
	assert.False(t, called)

	_, err = s.Solve(context.Background(), facelet.Solved())
	assert.NoError(t, err)
	assert.True(t, called)
}

type solverFunc func(context.Context, facelet.Notation) ([]types.Move, error)

func (f solverFunc) Solve(ctx context.Context, n facelet.Notation) ([]types.Move, error) {
	return f(ctx, n)
}
