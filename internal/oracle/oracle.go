// Package oracle decides whether a facelet notation describes a cube that can
// be solved, and adapts external solver programs.
package oracle

import (
	"errors"

	"github.com/SeamusWaldron/cubescan/internal/cube"
	"github.com/SeamusWaldron/cubescan/internal/facelet"
)

// ErrUnsolvable is returned when a notation is rejected.
var ErrUnsolvable = errors.New("oracle: notation is not solvable")

// Oracle answers whether a notation is solvable. Implementations must be
// safe for concurrent use.
type Oracle interface {
	IsSolvable(n facelet.Notation) bool
}

// Func adapts a function to the Oracle interface.
type Func func(n facelet.Notation) bool

// IsSolvable calls f.
func (f Func) IsSolvable(n facelet.Notation) bool {
	return f(n)
}

// Cubie decides solvability in process from piece placement.
type Cubie struct{}

// IsSolvable reports whether n passes cubie verification.
func (Cubie) IsSolvable(n facelet.Notation) bool {
	return cube.IsSolvable(n)
}

// Check returns nil for a solvable notation, otherwise an error wrapping
// ErrUnsolvable and the *cube.VerifyError describing the first failure.
func (Cubie) Check(n facelet.Notation) error {
	if err := cube.Verify(n); err != nil {
		return errors.Join(ErrUnsolvable, err)
	}
	return nil
}

// Default returns the oracle used when none is configured.
func Default() Oracle {
	return Cubie{}
}
