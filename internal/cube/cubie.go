package cube

import (
	"errors"
	"fmt"

	"github.com/SeamusWaldron/cubescan/internal/facelet"
)

// VerifyCode identifies the first check a notation failed.
type VerifyCode int

const (
	BadCentre VerifyCode = iota + 1
	BadCount
	UnknownCorner
	DuplicateCorner
	TwistedCorner
	UnknownEdge
	DuplicateEdge
	FlippedEdge
	Parity
)

func (c VerifyCode) String() string {
	switch c {
	case BadCentre:
		return "bad centre"
	case BadCount:
		return "bad face count"
	case UnknownCorner:
		return "unknown corner"
	case DuplicateCorner:
		return "duplicate corner"
	case TwistedCorner:
		return "twisted corner"
	case UnknownEdge:
		return "unknown edge"
	case DuplicateEdge:
		return "duplicate edge"
	case FlippedEdge:
		return "flipped edge"
	case Parity:
		return "parity error"
	default:
		return "unknown"
	}
}

// VerifyError describes why a notation cannot be reached from a solved cube.
type VerifyError struct {
	Code   VerifyCode
	Detail string
}

func (e *VerifyError) Error() string {
	if e.Detail == "" {
		return "cube: " + e.Code.String()
	}
	return fmt.Sprintf("cube: %s: %s", e.Code, e.Detail)
}

// CodeOf returns the verify code carried by err, or 0.
func CodeOf(err error) VerifyCode {
	var ve *VerifyError
	if errors.As(err, &ve) {
		return ve.Code
	}
	return 0
}

func verifyErr(code VerifyCode, format string, args ...any) error {
	return &VerifyError{Code: code, Detail: fmt.Sprintf(format, args...)}
}

// Cubie is a cube described by piece placement. CP[i] is the corner sitting
// in slot i and CO[i] its twist; EP and EO do the same for edges. Slots and
// pieces are numbered as facelet.Corners and facelet.Edges.
type Cubie struct {
	CP [8]int
	CO [8]int
	EP [12]int
	EO [12]int
}

// SolvedCubie returns the identity placement.
func SolvedCubie() Cubie {
	var c Cubie
	for i := range c.CP {
		c.CP[i] = i
	}
	for i := range c.EP {
		c.EP[i] = i
	}
	return c
}

// Decompose identifies the piece in every corner and edge slot of n. Pieces
// that match no legal color combination are reported as -1 and the first one
// found is returned in the error.
func Decompose(n facelet.Notation) (Cubie, error) {
	var c Cubie
	var firstErr error

	for i, slot := range facelet.Corners {
		c.CP[i] = -1
		ori := 0
		for ori < 3 {
			if f := n.At(slot[ori]); f == facelet.U || f == facelet.D {
				break
			}
			ori++
		}
		if ori == 3 {
			if firstErr == nil {
				firstErr = verifyErr(UnknownCorner, "%s slot shows no U or D sticker", facelet.CornerNames[i])
			}
			continue
		}
		ud := n.At(slot[ori])
		col1 := n.At(slot[(ori+1)%3])
		col2 := n.At(slot[(ori+2)%3])
		for j, want := range facelet.CornerColors {
			if ud == want[0] && col1 == want[1] && col2 == want[2] {
				c.CP[i] = j
				c.CO[i] = ori
				break
			}
		}
		if c.CP[i] < 0 && firstErr == nil {
			firstErr = verifyErr(UnknownCorner, "%s slot shows %c%c%c",
				facelet.CornerNames[i], n[slot[0]], n[slot[1]], n[slot[2]])
		}
	}

	for i, slot := range facelet.Edges {
		c.EP[i] = -1
		a, b := n.At(slot[0]), n.At(slot[1])
		for j, want := range facelet.EdgeColors {
			if a == want[0] && b == want[1] {
				c.EP[i], c.EO[i] = j, 0
				break
			}
			if a == want[1] && b == want[0] {
				c.EP[i], c.EO[i] = j, 1
				break
			}
		}
		if c.EP[i] < 0 && firstErr == nil {
			firstErr = verifyErr(UnknownEdge, "%s slot shows %c%c", facelet.EdgeNames[i], n[slot[0]], n[slot[1]])
		}
	}

	return c, firstErr
}

// Notation renders the placement as a facelet labeling.
func (c Cubie) Notation() facelet.Notation {
	n := facelet.BlankNotation()
	for k, i := range facelet.Centres {
		n.Set(i, facelet.Faces[k])
	}
	for i, slot := range facelet.Corners {
		j, ori := c.CP[i], c.CO[i]
		if j < 0 {
			continue
		}
		for k := 0; k < 3; k++ {
			n.Set(slot[(k+ori)%3], facelet.CornerColors[j][k])
		}
	}
	for i, slot := range facelet.Edges {
		j, ori := c.EP[i], c.EO[i]
		if j < 0 {
			continue
		}
		for k := 0; k < 2; k++ {
			n.Set(slot[(k+ori)%2], facelet.EdgeColors[j][k])
		}
	}
	return n
}

// Verify checks that every piece appears once, that twists and flips cancel
// out and that corner and edge permutations have the same parity.
func (c Cubie) Verify() error {
	var seenE [12]bool
	flips := 0
	for i, e := range c.EP {
		if e < 0 || e >= len(seenE) {
			return verifyErr(UnknownEdge, "%s slot", facelet.EdgeNames[i])
		}
		if seenE[e] {
			return verifyErr(DuplicateEdge, "%s appears twice", facelet.EdgeNames[e])
		}
		seenE[e] = true
		flips += c.EO[i]
	}
	if flips%2 != 0 {
		return verifyErr(FlippedEdge, "flip sum %d", flips)
	}

	var seenC [8]bool
	twists := 0
	for i, p := range c.CP {
		if p < 0 || p >= len(seenC) {
			return verifyErr(UnknownCorner, "%s slot", facelet.CornerNames[i])
		}
		if seenC[p] {
			return verifyErr(DuplicateCorner, "%s appears twice", facelet.CornerNames[p])
		}
		seenC[p] = true
		twists += c.CO[i]
	}
	if twists%3 != 0 {
		return verifyErr(TwistedCorner, "twist sum %d", twists)
	}

	if cp, ep := parity(c.CP[:]), parity(c.EP[:]); cp != ep {
		return verifyErr(Parity, "corner parity %d, edge parity %d", cp, ep)
	}
	return nil
}

// parity returns the number of inversions of perm modulo 2.
func parity(perm []int) int {
	s := 0
	for i := len(perm) - 1; i > 0; i-- {
		for j := i - 1; j >= 0; j-- {
			if perm[j] > perm[i] {
				s++
			}
		}
	}
	return s % 2
}

// Verify reports whether n can be reached from a solved cube by face turns.
// It returns nil or a *VerifyError for the first failed check.
func Verify(n facelet.Notation) error {
	for k, i := range facelet.Centres {
		if n.At(i) != facelet.Faces[k] {
			return verifyErr(BadCentre, "position %d shows %q, want %s", i, n[i], facelet.Faces[k])
		}
	}
	counts := n.Counts()
	for _, f := range facelet.Faces {
		if counts[f] != facelet.FaceSize {
			return verifyErr(BadCount, "%s appears %d times", f, counts[f])
		}
	}
	c, err := Decompose(n)
	if err != nil {
		return err
	}
	return c.Verify()
}

// IsSolvable reports whether Verify accepts n.
func IsSolvable(n facelet.Notation) bool {
	return Verify(n) == nil
}
