package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubescan/internal/facelet"
	"github.com/SeamusWaldron/cubescan/internal/scan"
)

var classifyTopology bool

var classifyCmd = &cobra.Command{
	Use:   "classify <scan-file>",
	Short: "Label the facelets of a scan",
	Long: `Classify the 48 non-centre samples of a scan against the six centre samples
and print the resulting notation. No validation or repair is done.

Examples:
  cubescan classify scans/2024-03-01_14-05-09.txt
  cubescan classify scan.txt --topology-aware`,
	Args: cobra.ExactArgs(1),
	RunE: runClassify,
}

func init() {
	rootCmd.AddCommand(classifyCmd)
	classifyCmd.Flags().BoolVar(&classifyTopology, "topology-aware", false, "Forbid opposite faces within a piece")
}

func runClassify(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("topology-aware") {
		cfg.Classifier.TopologyAware = classifyTopology
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

	raw, err := scan.ImportFile(args[0])
	if err != nil {
		return err
	}
	a := r.Convert(raw)
	n, summary := r.Classify(&a)

	fmt.Println(renderNet(n, markSet(summary.Unassigned), -1))
	fmt.Println()
	fmt.Println(n)
	fmt.Printf("Max distance: %.2f\n", summary.MaxDistance())
	for _, f := range facelet.Faces {
		fmt.Printf("  %s  sides %d  corners %d\n", f, len(summary.Sides[f]), len(summary.Corners[f]))
	}
	if len(summary.Unassigned) > 0 {
		fmt.Println(errorStyle.Render(fmt.Sprintf("Unassigned: %v", summary.Unassigned)))
	}
	return nil
}
