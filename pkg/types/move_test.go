package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMerge(t *testing.T) {
	r := Move{Face: FaceR, Turn: TurnCW}
	assert.Equal(t, &Move{Face: FaceR, Turn: Turn180}, r.Merge(r))
	assert.Nil(t, r.Merge(r.Inverse()))
	assert.Equal(t, &Move{Face: FaceR, Turn: TurnCCW}, r.Merge(Move{Face: FaceR, Turn: Turn180}))
	assert.Equal(t, &Move{Face: FaceR, Turn: TurnCW}, r.Inverse().Merge(Move{Face: FaceR, Turn: Turn180}))
	assert.Nil(t, r.Merge(Move{Face: FaceU, Turn: TurnCW}))
}

func TestSimplifyAndInvert(t *testing.T) {
	seq := []Move{
		{Face: FaceR, Turn: TurnCW},
		{Face: FaceU, Turn: TurnCW},
		{Face: FaceU, Turn: TurnCCW},
		{Face: FaceR, Turn: TurnCW},
	}
	assert.Equal(t, []Move{{Face: FaceR, Turn: Turn180}}, Simplify(seq))

	inv := Invert([]Move{{Face: FaceR, Turn: TurnCW}, {Face: FaceU, Turn: Turn180}})
	assert.Equal(t, "U2 R'", inv[0].Notation()+" "+inv[1].Notation())
}
