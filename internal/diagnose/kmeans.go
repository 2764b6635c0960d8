// Package diagnose cross-checks a classification against an unsupervised
// clustering of the same samples and renders the samples for inspection.
package diagnose

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"
	"go.uber.org/zap"

	"github.com/SeamusWaldron/cubescan/internal/colorpoint"
	"github.com/SeamusWaldron/cubescan/internal/facelet"
)

// ErrNoSamples is returned when there is nothing to cluster.
var ErrNoSamples = errors.New("diagnose: no samples")

// observation carries the facelet index through the clustering.
type observation struct {
	coords clusters.Coordinates
	index  int
}

func (o observation) Coordinates() clusters.Coordinates { return o.coords }

func (o observation) Distance(p clusters.Coordinates) float64 { return o.coords.Distance(p) }

// Cluster is one k-means group with the notation labels of its members.
type Cluster struct {
	Members  []int
	Labels   map[facelet.Face]int
	Majority facelet.Face
}

// Agreement compares a k-means partition with a notation.
type Agreement struct {
	Clusters []Cluster
	// Score is the fraction of facelets whose label matches the majority
	// label of their cluster.
	Score float64
	// Disputed lists facelets whose label differs from their cluster's
	// majority, in ascending order.
	Disputed []int
	// Inertia is the summed squared distance to the cluster centres of the
	// chosen run, in normalized coordinates.
	Inertia float64
}

// Option configures Compare.
type Option func(*options)

type options struct {
	restarts int
	logger   *zap.Logger
}

// WithRestarts sets how many k-means runs are tried. The run with the
// lowest inertia is kept.
func WithRestarts(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.restarts = n
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// Compare partitions the samples into six clusters and measures how well
// the partition agrees with n.
func Compare(a *colorpoint.Arena, n facelet.Notation, opts ...Option) (*Agreement, error) {
	o := &options{restarts: 8, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(o)
	}

	dataset := normalize(a[:])
	if len(dataset) == 0 {
		return nil, ErrNoSamples
	}

	km := kmeans.New()
	var best clusters.Clusters
	bestInertia := math.Inf(1)
	for run := 0; run < o.restarts; run++ {
		cc, err := km.Partition(dataset, len(facelet.Faces))
		if err != nil {
			return nil, fmt.Errorf("failed to partition samples: %w", err)
		}
		in := inertia(cc)
		o.logger.Debug("kmeans run", zap.Int("run", run), zap.Float64("inertia", in))
		if in < bestInertia {
			best, bestInertia = cc, in
		}
	}

	groups := make([][]int, 0, len(best))
	for _, c := range best {
		var members []int
		for _, obs := range c.Observations {
			members = append(members, obs.(observation).index)
		}
		groups = append(groups, members)
	}

	ag := agreement(groups, n)
	ag.Inertia = bestInertia
	o.logger.Info("kmeans agreement",
		zap.Float64("score", ag.Score),
		zap.Ints("disputed", ag.Disputed))
	return ag, nil
}

// normalize rescales every channel to [0, 1]; the clusterer seeds its
// centres in the unit cube.
func normalize(points []colorpoint.ColorPoint) clusters.Observations {
	if len(points) == 0 {
		return nil
	}
	lo := [3]float64{math.Inf(1), math.Inf(1), math.Inf(1)}
	hi := [3]float64{math.Inf(-1), math.Inf(-1), math.Inf(-1)}
	for _, p := range points {
		for k, v := range p.Channels() {
			lo[k] = math.Min(lo[k], v)
			hi[k] = math.Max(hi[k], v)
		}
	}

	out := make(clusters.Observations, 0, len(points))
	for _, p := range points {
		c := make(clusters.Coordinates, 3)
		for k, v := range p.Channels() {
			if span := hi[k] - lo[k]; span > 0 {
				c[k] = (v - lo[k]) / span
			}
		}
		out = append(out, observation{coords: c, index: p.Index})
	}
	return out
}

func inertia(cc clusters.Clusters) float64 {
	var sum float64
	for _, c := range cc {
		for _, obs := range c.Observations {
			sum += obs.Distance(c.Center)
		}
	}
	return sum
}

// agreement scores a partition of facelet indices against n. Ties for the
// majority go to the face earliest in notation order.
func agreement(groups [][]int, n facelet.Notation) *Agreement {
	ag := &Agreement{}
	var total, agree int
	for _, members := range groups {
		c := Cluster{Members: append([]int(nil), members...), Labels: make(map[facelet.Face]int)}
		sort.Ints(c.Members)
		for _, i := range c.Members {
			c.Labels[n.At(i)]++
		}
		c.Majority = facelet.Blank
		for _, f := range facelet.Faces {
			if c.Labels[f] > c.Labels[c.Majority] {
				c.Majority = f
			}
		}
		for _, i := range c.Members {
			total++
			if n.At(i) == c.Majority {
				agree++
			} else {
				ag.Disputed = append(ag.Disputed, i)
			}
		}
		ag.Clusters = append(ag.Clusters, c)
	}
	sort.Ints(ag.Disputed)
	if total > 0 {
		ag.Score = float64(agree) / float64(total)
	}
	return ag
}
