package fixer

import (
	"context"
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat/combin"

	"github.com/SeamusWaldron/cubescan/internal/colorpoint"
	"github.com/SeamusWaldron/cubescan/internal/facelet"
)

// combination is one set of candidate indexes, numbered in enumeration order.
type combination struct {
	seq  int
	idxs []int
}

// scored is the best candidate a worker found, with its enumeration number.
type scored struct {
	candidate
	seq int
}

// searchDepth tries every combination of depth candidates applied to base
// and returns the best solvable one, ties going to the earliest in
// enumeration order, along with the number of oracle queries made. An
// oracle failure abandons the level and is returned as an error wrapping
// ErrOracleFailed.
func (f *Fixer) searchDepth(samples *colorpoint.Arena, base facelet.Notation, cands []Swap, depth int) (*candidate, int, error) {
	if depth == 0 {
		ok, err := f.solvable(base)
		if err != nil || !ok {
			return nil, 1, err
		}
		return &candidate{score: Score(f.cfg.Metric, samples, base), notation: base, depth: 0}, 1, nil
	}

	total := combin.Binomial(len(cands), depth)
	workers := min(f.cfg.Workers, total)

	jobs := make(chan combination, workers*4)
	results := make([]scored, workers)
	counts := make([]int, workers)
	g, ctx := errgroup.WithContext(context.Background())
	g.Go(func() error {
		return generate(ctx, len(cands), depth, jobs)
	})
	for w := range workers {
		g.Go(func() error {
			var err error
			results[w], counts[w], err = f.evaluate(samples, base, cands, depth, jobs)
			return err
		})
	}
	err := g.Wait()

	evaluated := 0
	for _, c := range counts {
		evaluated += c
	}
	if err != nil {
		return nil, evaluated, err
	}

	best := scored{candidate: candidate{score: math.Inf(1)}, seq: -1}
	for _, r := range results {
		if r.seq >= 0 && r.before(best) {
			best = r
		}
	}
	return best.result(), evaluated, nil
}

// generate sends the combinations of k out of n in lexicographic order
// until ctx is done, then closes out.
func generate(ctx context.Context, n, k int, out chan<- combination) error {
	defer close(out)
	gen := combin.NewCombinationGenerator(n, k)
	for seq := 0; gen.Next(); seq++ {
		select {
		case out <- combination{seq: seq, idxs: gen.Combination(nil)}:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

// evaluate scores the solvable combinations read from in. It stops at the
// first oracle failure.
func (f *Fixer) evaluate(samples *colorpoint.Arena, base facelet.Notation, cands []Swap, depth int, in <-chan combination) (scored, int, error) {
	best := scored{candidate: candidate{score: math.Inf(1)}, seq: -1}
	swaps := make([]Swap, depth)
	queried := 0
	for c := range in {
		for k, i := range c.idxs {
			swaps[k] = cands[i]
		}
		n := Apply(base, swaps...)
		queried++
		ok, err := f.solvable(n)
		if err != nil {
			return best, queried, err
		}
		if !ok {
			continue
		}
		s := scored{
			candidate: candidate{score: Score(f.cfg.Metric, samples, n), notation: n, depth: depth},
			seq:       c.seq,
		}
		if s.before(best) {
			s.swaps = append([]Swap(nil), swaps...)
			best = s
		}
	}
	return best, queried, nil
}

// solvable asks the oracle about n, turning a panic into ErrOracleFailed.
func (f *Fixer) solvable(n facelet.Notation) (ok bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrOracleFailed, r)
		}
	}()
	return f.oracle.IsSolvable(n), nil
}

// before orders by score, then by enumeration number.
func (s scored) before(o scored) bool {
	if s.score != o.score {
		return s.score < o.score
	}
	return o.seq < 0 || s.seq < o.seq
}

func (s scored) result() *candidate {
	if s.seq < 0 {
		return nil
	}
	c := s.candidate
	return &c
}
