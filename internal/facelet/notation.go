package facelet

import (
	"errors"
	"fmt"
)

// ErrBadNotation is returned when a string cannot be read as a notation.
var ErrBadNotation = errors.New("facelet: malformed notation")

// Notation is a positional face labeling of all 54 facelets. A solved cube
// reads UUUUUUUUURRRRRRRRRFFFFFFFFFDDDDDDDDDLLLLLLLLLBBBBBBBBB.
type Notation [Count]byte

// BlankNotation returns a notation with every position unlabelled.
func BlankNotation() Notation {
	var n Notation
	for i := range n {
		n[i] = byte(Blank)
	}
	return n
}

// Solved returns the labeling of a solved cube.
func Solved() Notation {
	var n Notation
	for k, f := range Faces {
		for i := 0; i < FaceSize; i++ {
			n[k*FaceSize+i] = byte(f)
		}
	}
	return n
}

// ParseNotation reads a 54 character notation. Only face symbols and the
// blank sentinel are accepted.
func ParseNotation(s string) (Notation, error) {
	var n Notation
	if len(s) != Count {
		return n, fmt.Errorf("%w: want %d symbols, got %d", ErrBadNotation, Count, len(s))
	}
	for i := 0; i < Count; i++ {
		f := Face(s[i])
		if !f.Valid() && f != Blank {
			return n, fmt.Errorf("%w: unknown symbol %q at position %d", ErrBadNotation, s[i], i)
		}
		n[i] = s[i]
	}
	return n, nil
}

// MustParse is like ParseNotation but panics on error.
func MustParse(s string) Notation {
	n, err := ParseNotation(s)
	if err != nil {
		panic(err)
	}
	return n
}

func (n Notation) String() string {
	return string(n[:])
}

// At returns the face at position i.
func (n Notation) At(i int) Face {
	return Face(n[i])
}

// Set labels position i with f.
func (n *Notation) Set(i int, f Face) {
	n[i] = byte(f)
}

// Swap exchanges the labels at positions i and j.
func (n *Notation) Swap(i, j int) {
	n[i], n[j] = n[j], n[i]
}

// Swapped returns a copy of n with positions i and j exchanged.
func (n Notation) Swapped(i, j int) Notation {
	n[i], n[j] = n[j], n[i]
	return n
}

// Counts returns how many times each symbol occurs, blanks included.
func (n Notation) Counts() map[Face]int {
	counts := make(map[Face]int, 7)
	for _, b := range n {
		counts[Face(b)]++
	}
	return counts
}

// IsComplete reports whether every position carries a face symbol.
func (n Notation) IsComplete() bool {
	for _, b := range n {
		if !Face(b).Valid() {
			return false
		}
	}
	return true
}

// Diff returns the positions at which n and o disagree.
func (n Notation) Diff(o Notation) []int {
	var out []int
	for i := range n {
		if n[i] != o[i] {
			out = append(out, i)
		}
	}
	return out
}

// Blanks returns the unlabelled positions.
func (n Notation) Blanks() []int {
	var out []int
	for i, b := range n {
		if Face(b) == Blank {
			out = append(out, i)
		}
	}
	return out
}
