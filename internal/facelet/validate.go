package facelet

import (
	"fmt"
	"math/bits"
	"strings"
)

// ColorSet is an unordered set of faces, one bit per face in notation order.
type ColorSet uint8

// foreignBit marks a set built from a symbol that is not a face.
const foreignBit ColorSet = 1 << 7

// SetOf builds the set of the given faces.
func SetOf(faces ...Face) ColorSet {
	var s ColorSet
	for _, f := range faces {
		if o := f.Ordinal(); o >= 0 {
			s |= 1 << o
		} else {
			s |= foreignBit
		}
	}
	return s
}

// Has reports whether f is in the set.
func (s ColorSet) Has(f Face) bool {
	o := f.Ordinal()
	return o >= 0 && s&(1<<o) != 0
}

// Len returns the number of faces in the set.
func (s ColorSet) Len() int {
	return bits.OnesCount8(uint8(s &^ foreignBit))
}

func (s ColorSet) String() string {
	var b strings.Builder
	for _, f := range Faces {
		if s.Has(f) {
			b.WriteByte(byte(f))
		}
	}
	if s&foreignBit != 0 {
		b.WriteByte('?')
	}
	return b.String()
}

// Kind classifies a corner or edge violation.
type Kind int

const (
	// Illegal means the group shows a color combination no piece has.
	Illegal Kind = iota
	// Duplicate means an earlier group already showed the same combination.
	Duplicate
)

func (k Kind) String() string {
	switch k {
	case Illegal:
		return "illegal"
	case Duplicate:
		return "duplicate"
	default:
		return "unknown"
	}
}

// Violation describes one corner or edge group that failed validation.
type Violation struct {
	Group    int    // index into Corners or Edges
	Name     string // group name, e.g. "UBR"
	Facelets []int
	Symbols  string // symbols read at Facelets, in order
	Kind     Kind
}

func (v Violation) String() string {
	return fmt.Sprintf("%s %v=%q (%s)", v.Name, v.Facelets, v.Symbols, v.Kind)
}

// Report is the outcome of Validate.
type Report struct {
	InvalidCorners []Violation
	InvalidEdges   []Violation

	// Legal sets no group produced. Repair uses them as replacement hints.
	MissingCorners []ColorSet
	MissingEdges   []ColorSet

	// Symbols whose count is not 9, with their actual count. Blanks are
	// reported under Blank.
	CountErrors map[Face]int
}

// Valid reports whether the notation passed every check.
func (r Report) Valid() bool {
	return len(r.InvalidCorners) == 0 && len(r.InvalidEdges) == 0 && len(r.CountErrors) == 0
}

// Summary renders the report on one line.
func (r Report) Summary() string {
	if r.Valid() {
		return "valid"
	}
	var parts []string
	for _, v := range r.InvalidCorners {
		parts = append(parts, "corner "+v.String())
	}
	for _, v := range r.InvalidEdges {
		parts = append(parts, "edge "+v.String())
	}
	for _, f := range append(Faces[:], Blank) {
		if c, ok := r.CountErrors[f]; ok {
			parts = append(parts, fmt.Sprintf("count %q=%d", byte(f), c))
		}
	}
	return strings.Join(parts, "; ")
}

type groupTable struct {
	names  []string
	groups [][]int
	legal  []ColorSet
}

var cornerTable, edgeTable groupTable

func init() {
	for k, c := range Corners {
		cornerTable.names = append(cornerTable.names, CornerNames[k])
		cornerTable.groups = append(cornerTable.groups, []int{c[0], c[1], c[2]})
		cornerTable.legal = append(cornerTable.legal, SetOf(CornerColors[k][:]...))
	}
	for k, e := range Edges {
		edgeTable.names = append(edgeTable.names, EdgeNames[k])
		edgeTable.groups = append(edgeTable.groups, []int{e[0], e[1]})
		edgeTable.legal = append(edgeTable.legal, SetOf(EdgeColors[k][:]...))
	}
}

// LegalCornerSets returns the eight corner color sets in table order.
func LegalCornerSets() []ColorSet {
	return append([]ColorSet(nil), cornerTable.legal...)
}

// LegalEdgeSets returns the twelve edge color sets in table order.
func LegalEdgeSets() []ColorSet {
	return append([]ColorSet(nil), edgeTable.legal...)
}

// Validate checks the corner and edge groups of n against the legal color
// sets and counts each symbol.
func Validate(n Notation) Report {
	var r Report
	r.InvalidCorners, r.MissingCorners = checkGroups(n, cornerTable)
	r.InvalidEdges, r.MissingEdges = checkGroups(n, edgeTable)

	counts := n.Counts()
	for _, f := range Faces {
		if _, seen := counts[f]; !seen {
			counts[f] = 0
		}
	}
	for f, c := range counts {
		if c != FaceSize || !f.Valid() {
			if r.CountErrors == nil {
				r.CountErrors = make(map[Face]int)
			}
			r.CountErrors[f] = c
		}
	}
	return r
}

// checkGroups consumes each legal set at most once, in table order.
func checkGroups(n Notation, t groupTable) ([]Violation, []ColorSet) {
	used := make([]bool, len(t.legal))
	var bad []Violation

	for g, idx := range t.groups {
		faces := make([]Face, len(idx))
		symbols := make([]byte, len(idx))
		for k, i := range idx {
			faces[k] = n.At(i)
			symbols[k] = n[i]
		}
		set := SetOf(faces...)

		match := -1
		for k, legal := range t.legal {
			if legal == set {
				match = k
				break
			}
		}

		v := Violation{
			Group:    g,
			Name:     t.names[g],
			Facelets: append([]int(nil), idx...),
			Symbols:  string(symbols),
		}
		switch {
		case match < 0:
			v.Kind = Illegal
			bad = append(bad, v)
		case used[match]:
			v.Kind = Duplicate
			bad = append(bad, v)
		default:
			used[match] = true
		}
	}

	var missing []ColorSet
	for k, ok := range used {
		if !ok {
			missing = append(missing, t.legal[k])
		}
	}
	return bad, missing
}
