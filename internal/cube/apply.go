package cube

import (
	"math/rand/v2"

	"github.com/SeamusWaldron/cubescan/internal/facelet"
	"github.com/SeamusWaldron/cubescan/pkg/types"
)

// ApplyMove applies a types.Move to the cube.
func (c *Cube) ApplyMove(m types.Move) {
	c.Move(typesFaceToFace(m.Face), int(m.Turn))
}

// ApplyMoves applies a sequence of moves to the cube.
func (c *Cube) ApplyMoves(moves []types.Move) {
	for _, m := range moves {
		c.ApplyMove(m)
	}
}

// typesFaceToFace converts types.Face to a facelet face.
func typesFaceToFace(f types.Face) facelet.Face {
	switch f {
	case types.FaceU:
		return facelet.U
	case types.FaceD:
		return facelet.D
	case types.FaceF:
		return facelet.F
	case types.FaceB:
		return facelet.B
	case types.FaceR:
		return facelet.R
	case types.FaceL:
		return facelet.L
	default:
		return facelet.Blank
	}
}

// Scramble returns the notation reached by applying moves to a solved cube.
// Every such notation is solvable.
func Scramble(moves []types.Move) facelet.Notation {
	c := New()
	c.ApplyMoves(moves)
	return c.Notation()
}

var (
	scrambleFaces = []types.Face{types.FaceU, types.FaceR, types.FaceF, types.FaceD, types.FaceL, types.FaceB}
	scrambleTurns = []types.Turn{types.TurnCW, types.TurnCCW, types.Turn180}
)

// RandomScramble returns n random moves, never turning the same face twice
// in a row.
func RandomScramble(rng *rand.Rand, n int) []types.Move {
	moves := make([]types.Move, 0, n)
	for len(moves) < n {
		f := scrambleFaces[rng.IntN(len(scrambleFaces))]
		if k := len(moves); k > 0 && moves[k-1].Face == f {
			continue
		}
		moves = append(moves, types.Move{Face: f, Turn: scrambleTurns[rng.IntN(len(scrambleTurns))]})
	}
	return moves
}
