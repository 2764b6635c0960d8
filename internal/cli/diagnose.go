package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gonum.org/v1/plot/vg"

	"github.com/SeamusWaldron/cubescan/internal/diagnose"
	"github.com/SeamusWaldron/cubescan/internal/facelet"
	"github.com/SeamusWaldron/cubescan/internal/scan"
)

var (
	diagnoseRestarts int

	plotOutput string
	plotX      int
	plotY      int
	plotSize   float64
)

var diagnoseCmd = &cobra.Command{
	Use:   "diagnose <scan-file>",
	Short: "Cross-check a classification with k-means clustering",
	Long: `Cluster the 54 samples into six groups without using the centre samples and
compare the groups with the classified notation. Facelets whose label
disagrees with the rest of their cluster are the likeliest misreads.`,
	Args: cobra.ExactArgs(1),
	RunE: runDiagnose,
}

var plotCmd = &cobra.Command{
	Use:   "plot <scan-file>",
	Short: "Plot the samples of a scan",
	Long: `Draw a scatter plot of the samples of a scan, colored by classified label,
with the centre samples marked. The image format follows the output file
extension (png, svg, pdf).

Examples:
  cubescan plot scan.txt -o scan.png
  cubescan plot scan.txt -o hue-sat.svg --x 1 --y 2`,
	Args: cobra.ExactArgs(1),
	RunE: runPlot,
}

func init() {
	rootCmd.AddCommand(diagnoseCmd)
	diagnoseCmd.Flags().IntVar(&diagnoseRestarts, "restarts", 8, "Number of k-means runs")

	rootCmd.AddCommand(plotCmd)
	plotCmd.Flags().StringVarP(&plotOutput, "output", "o", "scan.png", "Output image")
	plotCmd.Flags().IntVar(&plotX, "x", 1, "Channel on the x axis (1-3)")
	plotCmd.Flags().IntVar(&plotY, "y", 2, "Channel on the y axis (1-3)")
	plotCmd.Flags().Float64Var(&plotSize, "size", 8, "Image size in inches")
}

func runDiagnose(cmd *cobra.Command, args []string) error {
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
	raw, err := scan.ImportFile(args[0])
	if err != nil {
		return err
	}
	a := r.Convert(raw)
	n, _ := r.Classify(&a)

	ag, err := diagnose.Compare(&a, n,
		diagnose.WithRestarts(diagnoseRestarts),
		diagnose.WithLogger(logger.Named("diagnose")))
	if err != nil {
		return err
	}

	fmt.Println(renderNet(n, markSet(ag.Disputed), -1))
	fmt.Println()
	fmt.Printf("Agreement: %.1f%%\n", ag.Score*100)
	for k, c := range ag.Clusters {
		fmt.Printf("  cluster %d  majority %s  size %2d ", k+1, c.Majority, len(c.Members))
		for _, f := range facelet.Faces {
			if c.Labels[f] > 0 {
				fmt.Printf(" %s:%d", f, c.Labels[f])
			}
		}
		fmt.Println()
	}
	if len(ag.Disputed) > 0 {
		fmt.Println(errorStyle.Render(fmt.Sprintf("Disputed facelets: %v", ag.Disputed)))
	} else {
		fmt.Println(okStyle.Render("Clustering agrees with the classification"))
	}
	return nil
}

func runPlot(cmd *cobra.Command, args []string) error {
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
	raw, err := scan.ImportFile(args[0])
	if err != nil {
		return err
	}
	a := r.Convert(raw)
	n, _ := r.Classify(&a)

	opt := diagnose.DefaultScatterOptions()
	opt.X, opt.Y = plotX-1, plotY-1
	opt.Title = fmt.Sprintf("%s (%s)", args[0], cfg.Classifier.ColorSpace)
	opt.Width = vg.Length(plotSize) * vg.Inch
	opt.Height = opt.Width
	if err := diagnose.SaveScatter(&a, n, opt, plotOutput); err != nil {
		return err
	}
	fmt.Printf("Plot written to %s\n", plotOutput)
	return nil
}
