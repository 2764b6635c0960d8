// Package classify labels color samples with the face of the nearest centre
// sample, giving each centre the same number of samples.
//
// The assignment is greedy: every (point, centroid) pair is ranked by
// distance and taken in that order, skipping points already placed and
// centroids already holding their share. The result is not an optimal
// matching.
package classify

import (
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/SeamusWaldron/cubescan/internal/colorpoint"
	"github.com/SeamusWaldron/cubescan/internal/facelet"
)

// ErrCapacityMismatch reports a point count that does not divide evenly
// among the centroids.
var ErrCapacityMismatch = errors.New("classify: point count not divisible by centroid count")

// Centroid is a reference sample whose face is known.
type Centroid struct {
	Face  facelet.Face
	Point colorpoint.ColorPoint
}

// Member is a point assigned to a centroid.
type Member struct {
	Distance float64
	Point    colorpoint.ColorPoint
}

// Assignment maps each face to its members, nearest first.
type Assignment map[facelet.Face][]Member

// Len returns the number of assigned points.
func (a Assignment) Len() int {
	n := 0
	for _, m := range a {
		n += len(m)
	}
	return n
}

// Unassigned returns the points of pts that a does not place, in input order.
func (a Assignment) Unassigned(pts []colorpoint.ColorPoint) []colorpoint.ColorPoint {
	placed := make(map[int]bool, a.Len())
	for _, members := range a {
		for _, m := range members {
			placed[m.Point.Key()] = true
		}
	}
	var out []colorpoint.ColorPoint
	for _, p := range pts {
		if !placed[p.Key()] {
			out = append(out, p)
		}
	}
	return out
}

type pair struct {
	dist     float64
	point    int
	centroid int
}

// Classify assigns each point to a centroid. Each centroid receives at most
// len(points)/len(centroids) points. Equal distances keep the order in which
// pairs were generated: points in input order, then centroids in input order.
func Classify(centroids []Centroid, points []colorpoint.ColorPoint, opts ...Option) Assignment {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	out := make(Assignment, len(centroids))
	if len(centroids) == 0 || len(points) == 0 {
		return out
	}

	k := len(points) / len(centroids)
	if rem := len(points) % len(centroids); rem != 0 {
		err := fmt.Errorf("%w: %d points, %d centroids", ErrCapacityMismatch, len(points), len(centroids))
		if cfg.strict {
			panic(err)
		}
		cfg.logger.Warn("uneven classification, remainder left unassigned",
			zap.Int("points", len(points)),
			zap.Int("centroids", len(centroids)),
			zap.Int("remainder", rem))
	}

	pairs := make([]pair, 0, len(points)*len(centroids))
	for pi, p := range points {
		for ci, c := range centroids {
			pairs = append(pairs, pair{dist: cfg.metric.Distance(p, c.Point), point: pi, centroid: ci})
		}
	}
	sort.SliceStable(pairs, func(i, j int) bool {
		return pairs[i].dist < pairs[j].dist
	})

	assigned := make(map[int]bool, len(points))
	filled := make([]int, len(centroids))
	var forbidden map[int]map[facelet.Face]bool
	if cfg.topologyAware {
		forbidden = make(map[int]map[facelet.Face]bool)
	}

	for _, pr := range pairs {
		p := points[pr.point]
		c := centroids[pr.centroid]
		if assigned[p.Key()] || filled[pr.centroid] >= k {
			continue
		}
		if forbidden != nil && forbidden[p.Key()][c.Face] {
			continue
		}

		assigned[p.Key()] = true
		filled[pr.centroid]++
		out[c.Face] = append(out[c.Face], Member{Distance: pr.dist, Point: p})

		if forbidden != nil {
			for _, mate := range facelet.GroupMates(p.Index) {
				if forbidden[mate] == nil {
					forbidden[mate] = make(map[facelet.Face]bool)
				}
				forbidden[mate][c.Face.Opposite()] = true
			}
		}
	}

	if n := out.Len(); n < len(points) {
		cfg.logger.Debug("points left unassigned",
			zap.Int("assigned", n),
			zap.Int("points", len(points)))
	}
	return out
}

// BuildNotation labels each centroid position with its face and each
// assigned point with the face it was assigned to. Every other position is
// left blank. Positions outside the notation panic.
func BuildNotation(centroids []Centroid, assignments ...Assignment) facelet.Notation {
	n := facelet.BlankNotation()
	for _, c := range centroids {
		n.Set(c.Point.Index, c.Face)
	}
	for _, a := range assignments {
		for face, members := range a {
			for _, m := range members {
				n.Set(m.Point.Index, face)
			}
		}
	}
	return n
}

// Centroids returns the six centre samples of an arena as centroids.
func Centroids(a *colorpoint.Arena) []Centroid {
	out := make([]Centroid, len(facelet.Centres))
	for k, i := range facelet.Centres {
		out[k] = Centroid{Face: facelet.Faces[k], Point: a[i]}
	}
	return out
}

// Summary describes a full-cube classification.
type Summary struct {
	Sides      Assignment
	Corners    Assignment
	Unassigned []int
}

// MaxDistance returns the largest member distance in s.
func (s Summary) MaxDistance() float64 {
	var max float64
	for _, a := range []Assignment{s.Sides, s.Corners} {
		for _, members := range a {
			for _, m := range members {
				if m.Distance > max {
					max = m.Distance
				}
			}
		}
	}
	return max
}

// Arena classifies a full scan: the 24 side facelets and the 24 corner
// facelets are each split among the six centre samples.
func Arena(a *colorpoint.Arena, opts ...Option) (facelet.Notation, Summary) {
	centroids := Centroids(a)

	sides := a.Points(facelet.SideIndexes())
	corners := a.Points(facelet.CornerIndexes())

	s := Summary{
		Sides:   Classify(centroids, sides, opts...),
		Corners: Classify(centroids, corners, opts...),
	}
	for _, p := range s.Sides.Unassigned(sides) {
		s.Unassigned = append(s.Unassigned, p.Index)
	}
	for _, p := range s.Corners.Unassigned(corners) {
		s.Unassigned = append(s.Unassigned, p.Index)
	}
	sort.Ints(s.Unassigned)

	return BuildNotation(centroids, s.Sides, s.Corners), s
}
