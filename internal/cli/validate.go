package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubescan"
	"github.com/SeamusWaldron/cubescan/internal/cube"
	"github.com/SeamusWaldron/cubescan/internal/facelet"
)

var validateCmd = &cobra.Command{
	Use:   "validate <notation|scan-file>",
	Short: "Check that a notation describes a reachable cube",
	Long: `Check the corner and edge color combinations and face counts of a notation,
then verify piece orientation and permutation parity.

A scan file argument is classified first.`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer logger.Sync()

	r, err := newResolver(cfg, logger, resolverOptions{maxDepth: -1})
	if err != nil {
		return err
	}
	n, err := notationOrScan(args[0], r)
	if err != nil {
		return err
	}

	rep := cubescan.Validate(n)
	var marked []int
	for _, v := range append(rep.InvalidCorners, rep.InvalidEdges...) {
		marked = append(marked, v.Facelets...)
	}
	fmt.Println(renderNet(n, markSet(marked), -1))
	fmt.Println()
	fmt.Println(n)

	for _, v := range rep.InvalidCorners {
		fmt.Printf("  corner %s\n", v)
	}
	for _, v := range rep.InvalidEdges {
		fmt.Printf("  edge %s\n", v)
	}
	if len(rep.MissingCorners) > 0 {
		fmt.Printf("  missing corners: %v\n", rep.MissingCorners)
	}
	if len(rep.MissingEdges) > 0 {
		fmt.Printf("  missing edges: %v\n", rep.MissingEdges)
	}
	for _, f := range append(facelet.Faces[:], facelet.Blank) {
		if c, ok := rep.CountErrors[f]; ok {
			fmt.Printf("  %q appears %d times\n", byte(f), c)
		}
	}

	if err := cube.Verify(n); err != nil {
		var ve *cube.VerifyError
		if errors.As(err, &ve) {
			fmt.Println(errorStyle.Render(fmt.Sprintf("Unsolvable (%s): %v", ve.Code, err)))
		}
		return cubescan.ErrUnsolvable
	}
	fmt.Println(okStyle.Render("Solvable"))
	return nil
}
