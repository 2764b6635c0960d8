package cubescan

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/SeamusWaldron/cubescan/internal/classify"
	"github.com/SeamusWaldron/cubescan/internal/colorpoint"
	"github.com/SeamusWaldron/cubescan/internal/cube"
	"github.com/SeamusWaldron/cubescan/internal/fixer"
)

// Resolver runs the scan to notation pipeline. It is safe for concurrent use.
type Resolver struct {
	cfg   *config
	fixer *fixer.Fixer
}

// New creates a Resolver.
func New(opts ...Option) (*Resolver, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if err := cfg.metric.Validate(); err != nil {
		return nil, err
	}

	fc := cfg.fixer
	fc.Metric = cfg.metric
	f, err := fixer.New(cfg.oracle, fc, fixer.WithLogger(cfg.logger.Named("fixer")))
	if err != nil {
		return nil, err
	}
	return &Resolver{cfg: cfg, fixer: f}, nil
}

// Resolution is the outcome of Resolve.
type Resolution struct {
	// Samples are the samples classified, after color space conversion.
	Samples Arena
	// Classified is the notation produced by classification.
	Classified Notation
	// Summary describes the classification.
	Summary Summary
	// Report is the validation of Classified.
	Report Report

	// Cause is ErrInvalidNotation or ErrUnsolvable when Classified needed
	// repair, nil otherwise.
	Cause error
	// Fix is the repair outcome when one was attempted.
	Fix *FixResult

	// Notation is the final labeling: Classified when it was solvable, the
	// repaired notation otherwise, or the best effort when repair failed.
	Notation Notation
	// Solution is the solver's move sequence when a solver is configured.
	Solution []Move
}

// Repaired reports whether the final notation differs from the classified one.
func (r *Resolution) Repaired() bool {
	return r.Notation != r.Classified
}

// Convert applies the configured color space to raw samples.
func (r *Resolver) Convert(a Arena) Arena {
	return colorpoint.ConvertArena(a, r.cfg.space, r.cfg.scale)
}

// Classify labels converted samples.
func (r *Resolver) Classify(a *Arena) (Notation, Summary) {
	return classify.Arena(a,
		classify.WithMetric(r.cfg.metric),
		classify.WithTopologyAware(r.cfg.topologyAware),
		classify.WithLogger(r.cfg.logger.Named("classify")))
}

// Check returns nil when n is solvable, otherwise an error wrapping
// ErrInvalidNotation or ErrUnsolvable.
func (r *Resolver) Check(n Notation) error {
	if rep := Validate(n); !rep.Valid() {
		return fmt.Errorf("%w: %s", ErrInvalidNotation, rep.Summary())
	}
	if !r.cfg.oracle.IsSolvable(n) {
		if err := cube.Verify(n); err != nil {
			return fmt.Errorf("%w: %v", ErrUnsolvable, err)
		}
		return ErrUnsolvable
	}
	return nil
}

// Repair searches for the closest solvable notation to n given converted
// samples.
func (r *Resolver) Repair(ctx context.Context, a *Arena, n Notation) *FixResult {
	return r.fixer.FindFix(ctx, a, n)
}

// Resolve classifies raw samples and repairs the result when needed. A
// malformed arena returns ErrMalformedScan and no resolution. When repair
// finds nothing the resolution is still returned, with an error wrapping
// ErrRepairExhausted. A configured solver failing is also returned alongside
// the resolution.
func (r *Resolver) Resolve(ctx context.Context, raw Arena) (*Resolution, error) {
	log := r.cfg.logger
	if err := raw.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedScan, err)
	}

	res := &Resolution{Samples: r.Convert(raw)}
	res.Classified, res.Summary = r.Classify(&res.Samples)
	res.Report = Validate(res.Classified)
	res.Notation = res.Classified
	log.Debug("classified",
		zap.String("notation", res.Classified.String()),
		zap.Int("unassigned", len(res.Summary.Unassigned)),
		zap.Bool("valid", res.Report.Valid()))

	res.Cause = r.Check(res.Classified)
	if res.Cause != nil {
		log.Info("repairing notation", zap.Error(res.Cause))
		res.Fix = r.Repair(ctx, &res.Samples, res.Classified)
		res.Notation = res.Fix.Notation
		if err := res.Fix.Err(); err != nil && !res.Fix.Found() {
			return res, err
		}
	}

	if r.cfg.solver != nil {
		moves, err := r.cfg.solver.Solve(ctx, res.Notation)
		if err != nil {
			return res, fmt.Errorf("failed to solve: %w", err)
		}
		res.Solution = moves
	}
	return res, nil
}

// Scramble returns the notation reached by applying moves to a solved cube.
func Scramble(moves ...Move) Notation {
	return cube.Scramble(moves)
}

// IsRepairExhausted reports whether err means no solvable notation was found.
func IsRepairExhausted(err error) bool {
	return errors.Is(err, ErrRepairExhausted)
}
