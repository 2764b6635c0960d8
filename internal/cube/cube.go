// Package cube provides a 3x3 cube model over the 54-position facelet
// notation, with face turns and a cubie-level solvability check.
package cube

import (
	"strings"

	"github.com/SeamusWaldron/cubescan/internal/facelet"
)

// Cube is a 3x3 cube stored as its facelet notation. Each face occupies 9
// consecutive positions indexed as:
//
//	0 1 2
//	3 4 5
//	6 7 8
//
// The center (index 4) defines the face and never moves.
type Cube struct {
	Facelets facelet.Notation
}

// New creates a solved cube.
func New() *Cube {
	return &Cube{Facelets: facelet.Solved()}
}

// FromNotation creates a cube showing n.
func FromNotation(n facelet.Notation) *Cube {
	return &Cube{Facelets: n}
}

// Notation returns the current labeling.
func (c *Cube) Notation() facelet.Notation {
	return c.Facelets
}

// Clone creates a copy of the cube.
func (c *Cube) Clone() *Cube {
	clone := *c
	return &clone
}

// IsSolved returns true if the cube is in the solved state.
func (c *Cube) IsSolved() bool {
	return c.Facelets == facelet.Solved()
}

// strip is three absolute facelet positions moved together by a turn.
type strip [3]int

func at(f facelet.Face, a, b, c int) strip {
	o := f.Ordinal() * facelet.FaceSize
	return strip{o + a, o + b, o + c}
}

// rings holds, for each face, the four neighbouring strips in the order a
// clockwise turn carries their contents: first to second, second to third,
// third to fourth, fourth to first.
var rings = map[facelet.Face][4]strip{
	// U affects F, L, B, R top rows
	facelet.U: {at(facelet.F, 0, 1, 2), at(facelet.L, 0, 1, 2), at(facelet.B, 0, 1, 2), at(facelet.R, 0, 1, 2)},
	// D affects F, R, B, L bottom rows (opposite direction)
	facelet.D: {at(facelet.F, 6, 7, 8), at(facelet.R, 6, 7, 8), at(facelet.B, 6, 7, 8), at(facelet.L, 6, 7, 8)},
	// F affects U bottom, R left, D top, L right
	facelet.F: {at(facelet.U, 6, 7, 8), at(facelet.R, 0, 3, 6), at(facelet.D, 2, 1, 0), at(facelet.L, 8, 5, 2)},
	// B affects U top, L left, D bottom, R right
	facelet.B: {at(facelet.U, 2, 1, 0), at(facelet.L, 0, 3, 6), at(facelet.D, 6, 7, 8), at(facelet.R, 8, 5, 2)},
	// R affects U right, B left, D right, F right
	facelet.R: {at(facelet.U, 2, 5, 8), at(facelet.B, 6, 3, 0), at(facelet.D, 2, 5, 8), at(facelet.F, 2, 5, 8)},
	// L affects U left, F left, D left, B right
	facelet.L: {at(facelet.U, 0, 3, 6), at(facelet.F, 0, 3, 6), at(facelet.D, 0, 3, 6), at(facelet.B, 8, 5, 2)},
}

// Move applies a move to the cube.
// turn: 1 = CW, -1 = CCW, 2 = 180 degrees. Other values and faces are
// ignored.
func (c *Cube) Move(face facelet.Face, turn int) {
	if !face.Valid() {
		return
	}
	switch turn {
	case 1: // CW
		c.moveCW(face)
	case -1: // CCW
		c.moveCW(face)
		c.moveCW(face)
		c.moveCW(face)
	case 2: // 180
		c.moveCW(face)
		c.moveCW(face)
	}
}

// moveCW applies a clockwise move.
func (c *Cube) moveCW(face facelet.Face) {
	c.rotateFaceCW(face)
	r := rings[face]
	c.cycle(r[0], r[1], r[2], r[3])
}

// rotateFaceCW rotates the stickers of a face 90 degrees clockwise.
func (c *Cube) rotateFaceCW(face facelet.Face) {
	o := face.Ordinal() * facelet.FaceSize
	// Corner rotation: 0->2->8->6->0
	// Edge rotation: 1->5->7->3->1
	c.cycle4(o+0, o+2, o+8, o+6)
	c.cycle4(o+1, o+5, o+7, o+3)
}

// cycle4 moves the sticker at a to b, b to c, c to d and d to a.
func (c *Cube) cycle4(a, b, cc, d int) {
	f := &c.Facelets
	f[a], f[b], f[cc], f[d] = f[d], f[a], f[b], f[cc]
}

// cycle moves the contents of s1 to s2, s2 to s3, s3 to s4 and s4 to s1.
func (c *Cube) cycle(s1, s2, s3, s4 strip) {
	for k := 0; k < 3; k++ {
		c.cycle4(s1[k], s2[k], s3[k], s4[k])
	}
}

// String returns an unfolded net of the cube.
func (c *Cube) String() string {
	var b strings.Builder
	row := func(face facelet.Face, r int) {
		o := face.Ordinal()*facelet.FaceSize + r*3
		for col := 0; col < 3; col++ {
			b.WriteByte(c.Facelets[o+col])
			b.WriteByte(' ')
		}
	}

	// U face (indented)
	for r := 0; r < 3; r++ {
		b.WriteString("      ")
		row(facelet.U, r)
		b.WriteByte('\n')
	}

	// L, F, R, B faces (side by side)
	for r := 0; r < 3; r++ {
		for _, face := range []facelet.Face{facelet.L, facelet.F, facelet.R, facelet.B} {
			row(face, r)
		}
		b.WriteByte('\n')
	}

	// D face (indented)
	for r := 0; r < 3; r++ {
		b.WriteString("      ")
		row(facelet.D, r)
		b.WriteByte('\n')
	}

	return b.String()
}
