package cube

import (
	"math/rand/v2"
	"testing"

	"github.com/SeamusWaldron/cubescan/internal/facelet"
	"github.com/SeamusWaldron/cubescan/pkg/types"
)

var (
	U = facelet.U
	R = facelet.R
	F = facelet.F
	D = facelet.D
	L = facelet.L
	B = facelet.B
)

func TestNewCubeIsSolved(t *testing.T) {
	c := New()
	if !c.IsSolved() {
		t.Error("New cube should be solved")
	}
}

func TestSingleMoveBreaksSolved(t *testing.T) {
	c := New()
	c.Move(R, 1) // R
	if c.IsSolved() {
		t.Error("Cube should not be solved after R move")
	}
}

func TestSingleMoveNotation(t *testing.T) {
	tests := []struct {
		face facelet.Face
		want string
	}{
		{U, "UUUUUUUUUBBBRRRRRRRRRFFFFFFDDDDDDDDDFFFLLLLLLLLLBBBBBB"},
		{R, "UUFUUFUUFRRRRRRRRRFFDFFDFFDDDBDDBDDBLLLLLLLLLUBBUBBUBB"},
		{F, "UUUUUULLLURRURRURRFFFFFFFFFRRRDDDDDDLLDLLDLLDBBBBBBBBB"},
	}
	for _, tt := range tests {
		c := New()
		c.Move(tt.face, 1)
		if got := c.Notation().String(); got != tt.want {
			t.Errorf("%v: got %s, want %s", tt.face, got, tt.want)
			t.Log(c.String())
		}
	}
}

type turn struct {
	face facelet.Face
	n    int
}

func TestIdentitySequences(t *testing.T) {
	tests := []struct {
		name   string
		seq    []turn
		repeat int
	}{
		{"R x4", []turn{{R, 1}}, 4},
		{"R2 x2", []turn{{R, 2}}, 2},
		{"R R'", []turn{{R, 1}, {R, -1}}, 1},
		{"sexy move x6", []turn{{R, 1}, {U, 1}, {R, -1}, {U, -1}}, 6},
		{"(R U) x105", []turn{{R, 1}, {U, 1}}, 105},
	}
	for _, f := range facelet.Faces {
		tests = append(tests, struct {
			name   string
			seq    []turn
			repeat int
		}{f.String() + "' x4", []turn{{f, -1}}, 4})
	}

	for _, tt := range tests {
		c := New()
		for i := 0; i < tt.repeat; i++ {
			for _, m := range tt.seq {
				c.Move(m.face, m.n)
			}
		}
		if !c.IsSolved() {
			t.Errorf("%s should return to solved", tt.name)
			t.Log(c.String())
		}
	}
}

func TestCentresNeverMove(t *testing.T) {
	c := New()
	c.ApplyMoves(RandomScramble(rand.New(rand.NewPCG(1, 1)), 40))
	for k, i := range facelet.Centres {
		if c.Facelets.At(i) != facelet.Faces[k] {
			t.Errorf("centre %d moved", i)
		}
	}
}

func TestApplyTypesMove(t *testing.T) {
	c := New()
	move := types.Move{Face: types.FaceR, Turn: types.TurnCW}
	c.ApplyMove(move)
	if c.IsSolved() {
		t.Error("Cube should not be solved after applying R move")
	}

	// Apply R' to undo
	c.ApplyMove(move.Inverse())
	if !c.IsSolved() {
		t.Error("Cube should be solved after R R'")
		t.Log(c.String())
	}
}

func TestScrambleAndReverse(t *testing.T) {
	scramble := []types.Move{
		{Face: types.FaceR, Turn: types.TurnCW}, {Face: types.FaceU, Turn: types.TurnCW},
		{Face: types.FaceR, Turn: types.TurnCCW}, {Face: types.FaceU, Turn: types.TurnCCW},
		{Face: types.FaceF, Turn: types.TurnCW}, {Face: types.FaceD, Turn: types.TurnCW},
		{Face: types.FaceL, Turn: types.Turn180},
	}

	c := FromNotation(Scramble(scramble))
	if c.IsSolved() {
		t.Error("Cube should be scrambled after moves")
	}

	c.ApplyMoves(types.Invert(scramble))
	if !c.IsSolved() {
		t.Error("Cube should be solved after reversing scramble")
		t.Log(c.String())
	}
}

func TestCloneIsIndependent(t *testing.T) {
	c := New()
	d := c.Clone()
	d.Move(F, 1)
	if !c.IsSolved() {
		t.Error("moving a clone changed the original")
	}
}

func TestRandomScrambleNoRepeatedFace(t *testing.T) {
	moves := RandomScramble(rand.New(rand.NewPCG(9, 9)), 100)
	if len(moves) != 100 {
		t.Fatalf("got %d moves", len(moves))
	}
	for i := 1; i < len(moves); i++ {
		if moves[i].Face == moves[i-1].Face {
			t.Errorf("face %s repeated at %d", moves[i].Face, i)
		}
	}
}
