package classify

import (
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SeamusWaldron/cubescan/internal/colorpoint"
	"github.com/SeamusWaldron/cubescan/internal/facelet"
)

var palette = map[facelet.Face][3]float64{
	facelet.U: {250, 250, 250},
	facelet.R: {200, 20, 20},
	facelet.F: {20, 180, 40},
	facelet.D: {240, 230, 20},
	facelet.L: {250, 120, 10},
	facelet.B: {20, 40, 200},
}

func arenaFor(n facelet.Notation, rng *rand.Rand, spread float64) colorpoint.Arena {
	a := colorpoint.NewArena()
	for i := range a {
		c := palette[n.At(i)]
		a.Set(i,
			c[0]+spread*(rng.Float64()-0.5),
			c[1]+spread*(rng.Float64()-0.5),
			c[2]+spread*(rng.Float64()-0.5))
	}
	return a
}

func randomCloud(rng *rand.Rand, n, offset int) []colorpoint.ColorPoint {
	pts := make([]colorpoint.ColorPoint, n)
	for i := range pts {
		pts[i] = colorpoint.New(rng.Float64()*255, rng.Float64()*255, rng.Float64()*255, offset+i)
	}
	return pts
}

func randomCentroids(rng *rand.Rand) []Centroid {
	out := make([]Centroid, len(facelet.Faces))
	for k, f := range facelet.Faces {
		out[k] = Centroid{Face: f, Point: colorpoint.New(rng.Float64()*255, rng.Float64()*255, rng.Float64()*255, 100+k)}
	}
	return out
}

func TestClassifyCapacityOverRandomClouds(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	for trial := 0; trial < 50; trial++ {
		centroids := randomCentroids(rng)
		pts := randomCloud(rng, 24, 0)

		a := Classify(centroids, pts)

		seen := make(map[int]bool)
		for face, members := range a {
			assert.LessOrEqual(t, len(members), 4, "face %s", face)
			for k, m := range members {
				assert.False(t, seen[m.Point.Key()], "point %d assigned twice", m.Point.Key())
				seen[m.Point.Key()] = true
				if k > 0 {
					assert.LessOrEqual(t, members[k-1].Distance, m.Distance)
				}
			}
		}
		assert.Len(t, seen, 24)
		assert.Empty(t, a.Unassigned(pts))
	}
}

func TestClassifyIsDeterministic(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	centroids := randomCentroids(rng)
	pts := randomCloud(rng, 24, 0)

	first := Classify(centroids, pts)
	for i := 0; i < 5; i++ {
		if diff := cmp.Diff(first, Classify(centroids, pts)); diff != "" {
			t.Fatalf("classification changed between runs (-first +now):\n%s", diff)
		}
	}
}

func TestClassifyTiesKeepInputOrder(t *testing.T) {
	centroids := []Centroid{
		{Face: facelet.U, Point: colorpoint.New(0, 0, 0, 100)},
		{Face: facelet.D, Point: colorpoint.New(10, 0, 0, 101)},
	}
	// All four points are equidistant from both centroids.
	pts := []colorpoint.ColorPoint{
		colorpoint.New(5, 1, 0, 0),
		colorpoint.New(5, 1, 0, 1),
		colorpoint.New(5, 1, 0, 2),
		colorpoint.New(5, 1, 0, 3),
	}
	a := Classify(centroids, pts, WithMetric(colorpoint.Euclidean))
	require.Len(t, a[facelet.U], 2)
	require.Len(t, a[facelet.D], 2)
	// Pairs are generated point by point, so U fills first.
	assert.Equal(t, []int{0, 1}, memberIndexes(a[facelet.U]))
	assert.Equal(t, []int{2, 3}, memberIndexes(a[facelet.D]))
}

func TestClassifyRemainderLeftUnassigned(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	centroids := randomCentroids(rng)
	pts := randomCloud(rng, 26, 0)

	a := Classify(centroids, pts)
	assert.Equal(t, 24, a.Len())
	assert.Len(t, a.Unassigned(pts), 2)

	assert.PanicsWithError(t, ErrCapacityMismatch.Error()+": 26 points, 6 centroids", func() {
		Classify(centroids, pts, WithStrict(true))
	})
}

func TestClassifyEmpty(t *testing.T) {
	assert.Empty(t, Classify(nil, randomCloud(rand.New(rand.NewPCG(0, 0)), 3, 0)))
	assert.Empty(t, Classify(randomCentroids(rand.New(rand.NewPCG(0, 0))), nil))
}

func TestArenaRecoversNotation(t *testing.T) {
	rng := rand.New(rand.NewPCG(5, 6))
	want := facelet.Solved()
	a := arenaFor(want, rng, 20)

	got, s := Arena(&a)
	assert.Equal(t, want.String(), got.String())
	assert.Empty(t, s.Unassigned)
	assert.Equal(t, 24, s.Sides.Len())
	assert.Equal(t, 24, s.Corners.Len())
	assert.Greater(t, s.MaxDistance(), 0.0)
}

func TestTopologyAwareForbidsOppositeOnMates(t *testing.T) {
	// Facelets 8, 9 and 20 form the URF corner. Facelet 8 is clearly U; 9
	// sits nearer the D centroid than anything else, but may not be D once
	// its mate is U.
	centroids := []Centroid{
		{Face: facelet.U, Point: colorpoint.New(0, 0, 0, 4)},
		{Face: facelet.D, Point: colorpoint.New(100, 0, 0, 31)},
		{Face: facelet.R, Point: colorpoint.New(0, 100, 0, 13)},
	}
	pts := []colorpoint.ColorPoint{
		colorpoint.New(0, 0, 0, 8),
		colorpoint.New(90, 30, 0, 9),
		colorpoint.New(0, 95, 0, 20),
	}

	plain := Classify(centroids, pts, WithMetric(colorpoint.Euclidean))
	require.Len(t, plain[facelet.D], 1)
	assert.Equal(t, 9, plain[facelet.D][0].Point.Index)

	aware := Classify(centroids, pts, WithMetric(colorpoint.Euclidean), WithTopologyAware(true))
	assert.Empty(t, aware[facelet.D])
	assert.Equal(t, []int{9}, indexes(aware.Unassigned(pts)))
}

func indexes(pts []colorpoint.ColorPoint) []int {
	var out []int
	for _, p := range pts {
		out = append(out, p.Index)
	}
	return out
}

func memberIndexes(ms []Member) []int {
	var out []int
	for _, m := range ms {
		out = append(out, m.Point.Index)
	}
	return out
}

func TestBuildNotation(t *testing.T) {
	centroids := []Centroid{{Face: facelet.F, Point: colorpoint.New(0, 0, 0, 22)}}
	a := Assignment{facelet.F: {{Point: colorpoint.New(0, 0, 0, 19)}}}

	n := BuildNotation(centroids, a)
	assert.Equal(t, facelet.F, n.At(22))
	assert.Equal(t, facelet.F, n.At(19))
	assert.Len(t, n.Blanks(), facelet.Count-2)

	assert.Panics(t, func() {
		BuildNotation([]Centroid{{Face: facelet.U, Point: colorpoint.New(0, 0, 0, 54)}})
	})
}
