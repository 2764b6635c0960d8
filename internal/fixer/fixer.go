// Package fixer repairs a facelet notation that is not solvable by exchanging
// labels between facelets whose color samples are easily confused.
//
// A repair runs in stages. A hill climb first moves to the best single swap
// while that improves the score. The swaps whose two samples lie closest
// together are then combined, up to a depth limit, and every combination the
// oracle accepts is scored. The lowest scoring solvable notation wins.
package fixer

import (
	"context"
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/SeamusWaldron/cubescan/internal/colorpoint"
	"github.com/SeamusWaldron/cubescan/internal/facelet"
	"github.com/SeamusWaldron/cubescan/internal/oracle"
)

// ErrRepairExhausted is reported when no notation within the depth limit
// satisfies the oracle.
var ErrRepairExhausted = errors.New("fixer: no solvable notation found within depth limit")

// ErrOracleFailed is reported when the oracle panics. The search stops at
// the depth level where it happened.
var ErrOracleFailed = errors.New("fixer: oracle failed")

// State is a stage of the repair.
type State int

const (
	// Stable means no single swap improves the score.
	Stable State = iota
	// LocalSearch is the single-swap hill climb.
	LocalSearch
	// BoundedSearch is the multi-swap enumeration.
	BoundedSearch
	// Done means a result has been chosen.
	Done
)

func (s State) String() string {
	switch s {
	case Stable:
		return "stable"
	case LocalSearch:
		return "local-search"
	case BoundedSearch:
		return "bounded-search"
	case Done:
		return "done"
	default:
		return "unknown"
	}
}

// Result is the outcome of FindFix.
type Result struct {
	// Score of Notation, or +Inf when nothing solvable was found.
	Score float64
	// Notation is the repaired notation, or the input when nothing solvable
	// was found.
	Notation facelet.Notation
	// InputScore is the score of the input notation.
	InputScore float64

	// State is the final stage reached; Trace lists every stage entered.
	State State
	Trace []State

	// Depth is the number of bounded-search swaps in the winning candidate,
	// or -1 when the unmodified input won.
	Depth int
	// Swaps are the bounded-search swaps applied on top of the hill climb.
	Swaps []Swap
	// LocalSwaps are the swaps taken by the hill climb. They are part of
	// Notation only when Depth >= 0.
	LocalSwaps []Swap

	// DepthsCompleted counts fully searched depth levels.
	DepthsCompleted int
	// Exhaustive is true when every depth level up to the limit was searched.
	Exhaustive bool
	// Evaluated counts oracle queries.
	Evaluated int
	// Candidates is the number of swaps kept after pruning.
	Candidates int

	err error
}

// Found reports whether a solvable notation was found.
func (r *Result) Found() bool {
	return !math.IsInf(r.Score, 1)
}

// Err returns ErrRepairExhausted when nothing solvable was found, the
// context error when the search was cut short, or nil.
func (r *Result) Err() error {
	return r.err
}

// Changed returns the positions whose label the repair changed.
func (r *Result) Changed(input facelet.Notation) []int {
	return input.Diff(r.Notation)
}

// Option configures a Fixer.
type Option func(*Fixer)

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(f *Fixer) {
		if l != nil {
			f.logger = l
		}
	}
}

// Fixer searches for the nearest solvable notation.
type Fixer struct {
	oracle oracle.Oracle
	cfg    Config
	logger *zap.Logger
}

// New creates a Fixer. A nil oracle uses the in-process cubie check.
func New(o oracle.Oracle, cfg Config, opts ...Option) (*Fixer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if o == nil {
		o = oracle.Default()
	}
	f := &Fixer{oracle: o, cfg: cfg, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

// Config returns the search settings.
func (f *Fixer) Config() Config {
	return f.cfg
}

// candidate is a scored, solvable notation.
type candidate struct {
	score    float64
	notation facelet.Notation
	depth    int
	swaps    []Swap
}

func (c candidate) better(o candidate) bool {
	return c.score < o.score
}

// FindFix returns the lowest scoring solvable notation reachable from n. The
// input itself competes when it is solvable, so a valid input is never made
// worse. ctx is only checked between depth levels.
func (f *Fixer) FindFix(ctx context.Context, samples *colorpoint.Arena, n facelet.Notation) *Result {
	m := f.cfg.Metric
	res := &Result{
		Score:      math.Inf(1),
		Notation:   n,
		InputScore: Score(m, samples, n),
		Depth:      -1,
	}

	best := candidate{score: math.Inf(1), notation: n, depth: -1}
	res.Evaluated++
	ok, err := f.solvable(n)
	if ok {
		best = candidate{score: res.InputScore, notation: n, depth: -1}
	}
	res.err = err

	current, local := f.localSearch(samples, n)
	res.LocalSwaps = local
	if len(local) == 0 {
		res.Trace = append(res.Trace, Stable)
	} else {
		res.Trace = append(res.Trace, LocalSearch)
	}
	f.logger.Debug("local search finished",
		zap.Int("swaps", len(local)),
		zap.Float64("input_score", res.InputScore),
		zap.Float64("score", Score(m, samples, current)))

	res.Trace = append(res.Trace, BoundedSearch)
	cands := Prune(Candidates(m, samples, current, f.cfg.StructuralSwaps), f.cfg.PruneFraction, f.cfg.MinCandidates)
	res.Candidates = len(cands)

	for depth := 0; depth <= f.cfg.MaxDepth && res.err == nil; depth++ {
		if err := ctx.Err(); err != nil {
			res.err = err
			f.logger.Info("repair cancelled", zap.Int("depths_completed", res.DepthsCompleted))
			break
		}
		if depth > len(cands) {
			res.DepthsCompleted = depth + 1
			f.logger.Debug("depth exceeds candidates", zap.Int("depth", depth), zap.Int("candidates", len(cands)))
			continue
		}

		found, evaluated, err := f.searchDepth(samples, current, cands, depth)
		res.Evaluated += evaluated
		if err != nil {
			res.err = err
			f.logger.Warn("repair stopped", zap.Int("depth", depth), zap.Error(err))
			break
		}
		res.DepthsCompleted = depth + 1
		if found != nil && found.better(best) {
			best = *found
		}
		f.logger.Debug("depth searched",
			zap.Int("depth", depth),
			zap.Int("evaluated", evaluated),
			zap.Float64("best_score", best.score))
	}
	res.Exhaustive = res.err == nil

	res.State = Done
	res.Trace = append(res.Trace, Done)
	if math.IsInf(best.score, 1) {
		if res.err == nil {
			res.err = ErrRepairExhausted
		} else {
			res.err = fmt.Errorf("%w: %w", ErrRepairExhausted, res.err)
		}
		f.logger.Info("repair exhausted",
			zap.Int("candidates", len(cands)),
			zap.Int("evaluated", res.Evaluated))
		return res
	}

	res.Score = best.score
	res.Notation = best.notation
	res.Depth = best.depth
	res.Swaps = best.swaps
	f.logger.Info("repair finished",
		zap.Float64("score", res.Score),
		zap.Int("depth", res.Depth),
		zap.Int("changed", len(n.Diff(res.Notation))))
	return res
}

// localSearch moves to the best strictly improving single swap until none
// improves.
func (f *Fixer) localSearch(samples *colorpoint.Arena, n facelet.Notation) (facelet.Notation, []Swap) {
	m := f.cfg.Metric
	score := Score(m, samples, n)
	var taken []Swap

	for iter := 0; f.cfg.MaxLocalIterations == 0 || iter < f.cfg.MaxLocalIterations; iter++ {
		bestScore := score
		var bestSwap *Swap
		for _, s := range Candidates(m, samples, n, f.cfg.StructuralSwaps) {
			if sc := Score(m, samples, Apply(n, s)); sc < bestScore {
				bestScore = sc
				s := s
				bestSwap = &s
			}
		}
		if bestSwap == nil {
			break
		}
		n = Apply(n, *bestSwap)
		score = bestScore
		taken = append(taken, *bestSwap)
	}
	return n, taken
}
