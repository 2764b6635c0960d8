// Package colorpoint holds the raw three-channel color samples read from each
// facelet and the distance metric used to compare them.
package colorpoint

import (
	"errors"
	"fmt"
	"math"

	"github.com/SeamusWaldron/cubescan/internal/facelet"
)

// ErrBadPoint is returned for a sample that cannot be used.
var ErrBadPoint = errors.New("colorpoint: invalid sample")

// ColorPoint is one color sample. Index is the facelet position the sample
// was read from and is its only identity; the channels are associated data.
type ColorPoint struct {
	C1, C2, C3 float64
	Index      int
}

// New creates a sample for facelet i.
func New(c1, c2, c3 float64, i int) ColorPoint {
	return ColorPoint{C1: c1, C2: c2, C3: c3, Index: i}
}

// Key returns the identity of the sample.
func (p ColorPoint) Key() int { return p.Index }

// Channels returns the three channel values in order.
func (p ColorPoint) Channels() [3]float64 {
	return [3]float64{p.C1, p.C2, p.C3}
}

// Validate rejects out of range indexes and non-finite channels.
func (p ColorPoint) Validate() error {
	if p.Index < 0 || p.Index >= facelet.Count {
		return fmt.Errorf("%w: index %d out of range", ErrBadPoint, p.Index)
	}
	for k, c := range p.Channels() {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return fmt.Errorf("%w: facelet %d channel %d is %v", ErrBadPoint, p.Index, k+1, c)
		}
	}
	return nil
}

func (p ColorPoint) String() string {
	return fmt.Sprintf("#%d(%g, %g, %g)", p.Index, p.C1, p.C2, p.C3)
}

// Metric is a Euclidean distance in which the squared difference of one
// channel is divided by Divisor.
type Metric struct {
	Channel int // 0, 1 or 2
	Divisor float64
}

// DefaultMetric down-weights the third channel by a factor of 4.
var DefaultMetric = Metric{Channel: 2, Divisor: 4}

// Euclidean is the unweighted metric.
var Euclidean = Metric{Channel: 0, Divisor: 1}

// Validate checks the metric parameters.
func (m Metric) Validate() error {
	if m.Channel < 0 || m.Channel > 2 {
		return fmt.Errorf("colorpoint: metric channel %d out of range", m.Channel)
	}
	if !(m.Divisor > 0) || math.IsInf(m.Divisor, 0) {
		return fmt.Errorf("colorpoint: metric divisor must be positive, got %v", m.Divisor)
	}
	return nil
}

// Distance returns the weighted distance between a and b.
func (m Metric) Distance(a, b ColorPoint) float64 {
	ca, cb := a.Channels(), b.Channels()
	var sum float64
	for k := range ca {
		d := ca[k] - cb[k]
		d *= d
		if k == m.Channel {
			d /= m.Divisor
		}
		sum += d
	}
	return math.Sqrt(sum)
}

// Arena stores one sample per facelet, indexed by position.
type Arena [facelet.Count]ColorPoint

// NewArena returns an arena whose samples carry their own positions.
func NewArena() Arena {
	var a Arena
	for i := range a {
		a[i].Index = i
	}
	return a
}

// Set stores the sample for facelet i.
func (a *Arena) Set(i int, c1, c2, c3 float64) {
	a[i] = New(c1, c2, c3, i)
}

// Points returns the samples at the given positions, in that order.
func (a *Arena) Points(indices []int) []ColorPoint {
	out := make([]ColorPoint, len(indices))
	for k, i := range indices {
		out[k] = a[i]
	}
	return out
}

// Validate checks every sample and that each sits at its own position.
func (a *Arena) Validate() error {
	for i, p := range a {
		if p.Index != i {
			return fmt.Errorf("%w: sample at %d carries index %d", ErrBadPoint, i, p.Index)
		}
		if err := p.Validate(); err != nil {
			return err
		}
	}
	return nil
}
