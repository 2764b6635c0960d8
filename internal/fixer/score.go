package fixer

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/SeamusWaldron/cubescan/internal/colorpoint"
	"github.com/SeamusWaldron/cubescan/internal/facelet"
)

// Score measures how far each sample lies from the mean of the samples that
// share its label. Lower is better.
func Score(m colorpoint.Metric, samples *colorpoint.Arena, n facelet.Notation) float64 {
	var groups [256][]colorpoint.ColorPoint
	for i, b := range n {
		groups[b] = append(groups[b], samples[i])
	}
	var total float64
	for _, g := range groups {
		if len(g) == 0 {
			continue
		}
		total += colorpoint.Spread(m, g)
	}
	return total
}

// Swap exchanges the labels of two facelets, I < J.
type Swap struct {
	I, J int

	// Distance between the raw samples at I and J.
	Distance float64
}

// Candidates lists the swaps worth trying on n: both facelets outside the
// centres, carrying different labels and, when structural is set, of the
// same class. Swaps are ordered by I then J.
func Candidates(m colorpoint.Metric, samples *colorpoint.Arena, n facelet.Notation, structural bool) []Swap {
	var out []Swap
	for i := 0; i < facelet.Count; i++ {
		if facelet.IsCentre(i) {
			continue
		}
		for j := i + 1; j < facelet.Count; j++ {
			if facelet.IsCentre(j) || n[i] == n[j] {
				continue
			}
			if structural && facelet.ClassOf(i) != facelet.ClassOf(j) {
				continue
			}
			out = append(out, Swap{I: i, J: j, Distance: m.Distance(samples[i], samples[j])})
		}
	}
	return out
}

// Apply performs swaps on a copy of n, in order.
func Apply(n facelet.Notation, swaps ...Swap) facelet.Notation {
	for _, s := range swaps {
		n.Swap(s.I, s.J)
	}
	return n
}

// Prune keeps the candidates whose sample distance is at or below the
// fraction quantile, and at least min of them when that many exist. The
// result is ordered by distance, ties keeping their input order.
func Prune(cands []Swap, fraction float64, min int) []Swap {
	if len(cands) == 0 {
		return nil
	}
	sorted := append([]Swap(nil), cands...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Distance < sorted[j].Distance
	})

	dist := make([]float64, len(sorted))
	for k, s := range sorted {
		dist[k] = s.Distance
	}
	q := stat.Quantile(fraction, stat.Empirical, dist, nil)

	keep := sort.Search(len(dist), func(k int) bool { return dist[k] > q })
	if keep < min {
		keep = min
	}
	if keep > len(sorted) {
		keep = len(sorted)
	}
	return sorted[:keep]
}
