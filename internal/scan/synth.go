package scan

import (
	"math/rand/v2"

	"github.com/SeamusWaldron/cubescan/internal/colorpoint"
	"github.com/SeamusWaldron/cubescan/internal/facelet"
)

// Palette gives the nominal sensor reading of each face.
type Palette map[facelet.Face][3]float64

// DefaultPalette approximates a standard sticker set read on a 0-255 scale.
var DefaultPalette = Palette{
	facelet.U: {235, 235, 235}, // white
	facelet.R: {190, 25, 35},   // red
	facelet.F: {20, 160, 70},   // green
	facelet.D: {230, 215, 30},  // yellow
	facelet.L: {245, 110, 20},  // orange
	facelet.B: {25, 60, 190},   // blue
}

// Synthesize generates samples whose colors follow n, each channel
// perturbed uniformly within +-spread/2. Blank positions read as black.
func Synthesize(n facelet.Notation, p Palette, spread float64, rng *rand.Rand) colorpoint.Arena {
	a := colorpoint.NewArena()
	for i := range a {
		c := p[n.At(i)]
		a.Set(i,
			c[0]+spread*(rng.Float64()-0.5),
			c[1]+spread*(rng.Float64()-0.5),
			c[2]+spread*(rng.Float64()-0.5))
	}
	return a
}

// Replay feeds a into a session in the rig's visiting order.
func Replay(s *Session, a *colorpoint.Arena) error {
	for !s.Complete() {
		i, _ := s.Next()
		p := a[i]
		if _, err := s.Record(p.C1, p.C2, p.C3); err != nil {
			return err
		}
	}
	return nil
}
