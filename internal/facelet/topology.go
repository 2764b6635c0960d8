// Package facelet describes the 54 sticker positions of a 3x3 cube: which
// positions are centres, which form corner and edge groups, and which color
// combinations those groups may legally carry.
//
// Positions follow the URFDLB convention. Each face occupies 9 consecutive
// positions starting at U=0, R=9, F=18, D=27, L=36, B=45, numbered
//
//	0 1 2
//	3 4 5
//	6 7 8
//
// as seen when looking straight at the face.
package facelet

// Count is the number of facelets on the cube.
const Count = 54

// FaceSize is the number of facelets on one face.
const FaceSize = 9

// Face is a notation symbol naming one of the six faces.
type Face byte

const (
	U Face = 'U' // Up
	R Face = 'R' // Right
	F Face = 'F' // Front
	D Face = 'D' // Down
	L Face = 'L' // Left
	B Face = 'B' // Back

	// Blank marks a position that has not been labelled.
	Blank Face = ' '
)

// Faces lists the six faces in notation order.
var Faces = [6]Face{U, R, F, D, L, B}

// Ordinal returns the position of f in notation order, or -1 for a symbol
// that is not a face.
func (f Face) Ordinal() int {
	switch f {
	case U:
		return 0
	case R:
		return 1
	case F:
		return 2
	case D:
		return 3
	case L:
		return 4
	case B:
		return 5
	default:
		return -1
	}
}

// Valid reports whether f is one of the six face symbols.
func (f Face) Valid() bool {
	return f.Ordinal() >= 0
}

// Opposite returns the face across the cube from f.
func (f Face) Opposite() Face {
	switch f {
	case U:
		return D
	case D:
		return U
	case R:
		return L
	case L:
		return R
	case F:
		return B
	case B:
		return F
	default:
		return Blank
	}
}

func (f Face) String() string {
	return string(rune(f))
}

// Centres holds the centre position of each face in notation order.
var Centres = [6]int{4, 13, 22, 31, 40, 49}

// CentreFace returns the face whose centre sits at position i.
func CentreFace(i int) (Face, bool) {
	for k, c := range Centres {
		if c == i {
			return Faces[k], true
		}
	}
	return Blank, false
}

// IsCentre reports whether position i is a face centre.
func IsCentre(i int) bool {
	_, ok := CentreFace(i)
	return ok
}

// Corner lists the three positions of one corner piece. The first position
// always lies on the U or D face.
type Corner [3]int

// Edge lists the two positions of one edge piece.
type Edge [2]int

// Corners holds the eight corner pieces: URF, UFL, ULB, UBR, DFR, DLF, DBL, DRB.
var Corners = [8]Corner{
	{8, 9, 20},   // U9 R1 F3
	{6, 18, 38},  // U7 F1 L3
	{0, 36, 47},  // U1 L1 B3
	{2, 45, 11},  // U3 B1 R3
	{29, 26, 15}, // D3 F9 R7
	{27, 44, 24}, // D1 L9 F7
	{33, 53, 42}, // D7 B9 L7
	{35, 17, 51}, // D9 R9 B7
}

// CornerNames names the corners in the order of Corners.
var CornerNames = [8]string{"URF", "UFL", "ULB", "UBR", "DFR", "DLF", "DBL", "DRB"}

// CornerColors holds the faces each corner shows when solved, in the same
// facelet order as Corners.
var CornerColors = [8][3]Face{
	{U, R, F}, {U, F, L}, {U, L, B}, {U, B, R},
	{D, F, R}, {D, L, F}, {D, B, L}, {D, R, B},
}

// Edges holds the twelve edge pieces: UR, UF, UL, UB, DR, DF, DL, DB, FR, FL, BL, BR.
var Edges = [12]Edge{
	{5, 10},  // U6 R2
	{7, 19},  // U8 F2
	{3, 37},  // U4 L2
	{1, 46},  // U2 B2
	{32, 16}, // D6 R8
	{28, 25}, // D2 F8
	{30, 43}, // D4 L8
	{34, 52}, // D8 B8
	{23, 12}, // F6 R4
	{21, 41}, // F4 L6
	{50, 39}, // B6 L4
	{48, 14}, // B4 R6
}

// EdgeNames names the edges in the order of Edges.
var EdgeNames = [12]string{"UR", "UF", "UL", "UB", "DR", "DF", "DL", "DB", "FR", "FL", "BL", "BR"}

// EdgeColors holds the faces each edge shows when solved.
var EdgeColors = [12][2]Face{
	{U, R}, {U, F}, {U, L}, {U, B},
	{D, R}, {D, F}, {D, L}, {D, B},
	{F, R}, {F, L}, {B, L}, {B, R},
}

// ScanOrder is the order in which the scanning rig visits facelets. The n-th
// sample delivered during a live scan belongs at position ScanOrder[n].
var ScanOrder = [Count]int{
	4, 7, 8, 5, 2, 1, 0, 3, 6, // U
	22, 25, 26, 23, 20, 19, 18, 21, 24, // F
	31, 34, 35, 32, 29, 28, 27, 30, 33, // D
	49, 46, 45, 48, 51, 52, 53, 50, 47, // B
	13, 16, 17, 14, 11, 10, 9, 12, 15, // R
	40, 37, 36, 39, 42, 43, 44, 41, 38, // L
}

// Class is the structural role of a facelet.
type Class int

const (
	ClassCentre Class = iota
	ClassSide
	ClassCorner
)

func (c Class) String() string {
	switch c {
	case ClassCentre:
		return "centre"
	case ClassSide:
		return "side"
	case ClassCorner:
		return "corner"
	default:
		return "unknown"
	}
}

var (
	classes       [Count]Class
	groupMates    [Count][]int
	sideIndexes   []int
	cornerIndexes []int
)

func init() {
	for _, c := range Corners {
		for _, i := range c {
			classes[i] = ClassCorner
			for _, j := range c {
				if j != i {
					groupMates[i] = append(groupMates[i], j)
				}
			}
		}
	}
	for _, e := range Edges {
		classes[e[0]] = ClassSide
		classes[e[1]] = ClassSide
		groupMates[e[0]] = []int{e[1]}
		groupMates[e[1]] = []int{e[0]}
	}
	for _, c := range Centres {
		classes[c] = ClassCentre
	}
	for i := 0; i < Count; i++ {
		switch classes[i] {
		case ClassSide:
			sideIndexes = append(sideIndexes, i)
		case ClassCorner:
			cornerIndexes = append(cornerIndexes, i)
		}
	}
}

// ClassOf returns the structural class of position i.
func ClassOf(i int) Class {
	return classes[i]
}

// GroupMates returns the other positions of the corner or edge piece that
// position i belongs to. Centres have no mates.
func GroupMates(i int) []int {
	return groupMates[i]
}

// SideIndexes returns the 24 edge facelet positions in ascending order.
func SideIndexes() []int {
	out := make([]int, len(sideIndexes))
	copy(out, sideIndexes)
	return out
}

// CornerIndexes returns the 24 corner facelet positions in ascending order.
func CornerIndexes() []int {
	out := make([]int, len(cornerIndexes))
	copy(out, cornerIndexes)
	return out
}
