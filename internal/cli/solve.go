package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubescan/internal/notation"
)

var (
	solveExplain bool
	solveTimeout time.Duration
)

var solveCmd = &cobra.Command{
	Use:   "solve <notation|scan-file>",
	Short: "Print a solution for a notation using the configured solver",
	Long: `Pass a notation to the external solver named by solver.command in the
config file and print the move sequence it returns. The notation is checked
for solvability before the solver runs.

With --explain each move is also spelled out for someone holding the cube
with U on top and F facing them, e.g. "R'" as "right down".`,
	Args: cobra.ExactArgs(1),
	RunE: runSolve,
}

func init() {
	rootCmd.AddCommand(solveCmd)
	solveCmd.Flags().BoolVar(&solveExplain, "explain", false, "Describe each move in words")
	solveCmd.Flags().DurationVar(&solveTimeout, "timeout", 30*time.Second, "Give up on the solver after this long")
}

func runSolve(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer logger.Sync()

	solver, err := newSolver(cfg, logger)
	if err != nil {
		return err
	}
	r, err := newResolver(cfg, logger, resolverOptions{maxDepth: -1})
	if err != nil {
		return err
	}
	n, err := notationOrScan(args[0], r)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), solveTimeout)
	defer cancel()
	moves, err := solver.Solve(ctx, n)
	if err != nil {
		return err
	}

	fmt.Println(notation.FormatSequence(moves))
	fmt.Printf("%d moves (HTM), %d quarter turns\n", notation.HalfTurnCount(moves), notation.QuarterTurnCount(moves))
	if solveExplain {
		fmt.Println()
		fmt.Println(notation.DescribeSequence(moves))
	}
	return nil
}
