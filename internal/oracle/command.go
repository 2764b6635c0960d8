package oracle

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"go.uber.org/zap"

	"github.com/SeamusWaldron/cubescan/internal/facelet"
	"github.com/SeamusWaldron/cubescan/internal/notation"
	"github.com/SeamusWaldron/cubescan/pkg/types"
)

// Solver returns a move sequence that solves a notation, or an error
// wrapping ErrUnsolvable when the notation is rejected.
type Solver interface {
	Solve(ctx context.Context, n facelet.Notation) ([]types.Move, error)
}

// Command runs an external solver program. The notation is passed as the
// last argument and the program is expected to print the solution as a move
// sequence on standard output. Output starting with "Error" or "Unsolvable"
// is treated as a rejection.
type Command struct {
	Path   string
	Args   []string
	Logger *zap.Logger
}

// NewCommand splits a command line into program and arguments.
func NewCommand(line string, logger *zap.Logger) (*Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil, errors.New("oracle: empty solver command")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Command{Path: fields[0], Args: fields[1:], Logger: logger}, nil
}

// Solve runs the program for n.
func (c *Command) Solve(ctx context.Context, n facelet.Notation) ([]types.Move, error) {
	args := append(append([]string(nil), c.Args...), n.String())
	cmd := exec.CommandContext(ctx, c.Path, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("failed to run solver %s: %w: %s", c.Path, err, strings.TrimSpace(stderr.String()))
	}

	out := strings.TrimSpace(stdout.String())
	if c.Logger != nil {
		c.Logger.Debug("solver output", zap.String("notation", n.String()), zap.String("output", out))
	}
	if strings.HasPrefix(out, "Error") || strings.HasPrefix(out, "Unsolvable") {
		return nil, fmt.Errorf("%w: %s", ErrUnsolvable, out)
	}

	moves, err := notation.ParseSequence(out)
	if err != nil {
		return nil, fmt.Errorf("failed to parse solver output: %w", err)
	}
	return moves, nil
}

// IsSolvable reports whether the program accepts n. It makes Command usable
// as an Oracle.
func (c *Command) IsSolvable(n facelet.Notation) bool {
	_, err := c.Solve(context.Background(), n)
	return err == nil
}

// Checked wraps a Solver so that notations the in-process check rejects are
// never sent to it.
type Checked struct {
	Solver Solver
}

// Solve verifies n before delegating.
func (c Checked) Solve(ctx context.Context, n facelet.Notation) ([]types.Move, error) {
	if err := (Cubie{}).Check(n); err != nil {
		return nil, err
	}
	return c.Solver.Solve(ctx, n)
}
