package cube

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SeamusWaldron/cubescan/internal/facelet"
)

func TestVerifySolved(t *testing.T) {
	assert.NoError(t, Verify(facelet.Solved()))
	assert.NoError(t, SolvedCubie().Verify())
	assert.Equal(t, facelet.Solved(), SolvedCubie().Notation())
}

func TestVerifyScrambles(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 42))
	for i := 0; i < 200; i++ {
		n := Scramble(RandomScramble(rng, 25))
		require.NoError(t, Verify(n), "scramble %d: %s", i, n)

		c, err := Decompose(n)
		require.NoError(t, err)
		assert.Equal(t, n, c.Notation())
	}
}

func TestVerifyTwistedCorner(t *testing.T) {
	c := SolvedCubie()
	c.CO[0] = 1
	err := Verify(c.Notation())
	assert.Equal(t, TwistedCorner, CodeOf(err))
}

func TestVerifyFlippedEdge(t *testing.T) {
	c := SolvedCubie()
	c.EO[5] = 1
	err := Verify(c.Notation())
	assert.Equal(t, FlippedEdge, CodeOf(err))
}

func TestVerifyParity(t *testing.T) {
	c := SolvedCubie()
	c.EP[0], c.EP[1] = c.EP[1], c.EP[0]
	err := Verify(c.Notation())
	assert.Equal(t, Parity, CodeOf(err))

	// Swapping two corners as well restores parity.
	c.CP[0], c.CP[1] = c.CP[1], c.CP[0]
	assert.NoError(t, Verify(c.Notation()))
}

func TestVerifyStickerSwap(t *testing.T) {
	// Exchanging two stickers of different colors on the same edge flips it.
	n := facelet.Solved().Swapped(5, 10)
	assert.Equal(t, FlippedEdge, CodeOf(Verify(n)))

	// Exchanging stickers between two pieces breaks both.
	n = facelet.Solved().Swapped(8, 19)
	assert.Equal(t, UnknownCorner, CodeOf(Verify(n)))
}

func TestVerifyCountsAndCentres(t *testing.T) {
	n := facelet.Solved()
	n.Set(0, facelet.R)
	assert.Equal(t, BadCount, CodeOf(Verify(n)))

	n = facelet.Solved().Swapped(4, 13)
	assert.Equal(t, BadCentre, CodeOf(Verify(n)))

	var ve *VerifyError
	assert.ErrorAs(t, Verify(n), &ve)
	assert.Contains(t, ve.Error(), "bad centre")
}

func TestDecomposeDuplicate(t *testing.T) {
	c := SolvedCubie()
	c.CP[1] = 0
	err := c.Verify()
	assert.Equal(t, DuplicateCorner, CodeOf(err))

	c = SolvedCubie()
	c.EP[3] = 2
	assert.Equal(t, DuplicateEdge, CodeOf(c.Verify()))
}
