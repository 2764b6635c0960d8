package diagnose

import (
	"fmt"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/SeamusWaldron/cubescan/internal/colorpoint"
	"github.com/SeamusWaldron/cubescan/internal/facelet"
)

// FaceColors are the swatches used for each label in plots and the terminal
// net.
var FaceColors = map[facelet.Face]string{
	facelet.U:     "#ebebeb",
	facelet.R:     "#be1923",
	facelet.F:     "#14a046",
	facelet.D:     "#e6d71e",
	facelet.L:     "#f56e14",
	facelet.B:     "#193cbe",
	facelet.Blank: "#000000",
}

func faceColor(f facelet.Face) color.Color {
	c, err := colorful.Hex(FaceColors[f])
	if err != nil {
		return color.Black
	}
	return c
}

// ScatterOptions selects the projection drawn by Scatter.
type ScatterOptions struct {
	X, Y   int // channel indexes 0..2
	Title  string
	Width  vg.Length
	Height vg.Length
}

// DefaultScatterOptions plots the first two channels.
func DefaultScatterOptions() ScatterOptions {
	return ScatterOptions{X: 0, Y: 1, Title: "facelet samples", Width: 8 * vg.Inch, Height: 8 * vg.Inch}
}

// Scatter builds a scatter plot of the samples, one series per label, with
// the centre samples drawn as crosses.
func Scatter(a *colorpoint.Arena, n facelet.Notation, opt ScatterOptions) (*plot.Plot, error) {
	if opt.X < 0 || opt.X > 2 || opt.Y < 0 || opt.Y > 2 {
		return nil, fmt.Errorf("diagnose: channel out of range: x=%d y=%d", opt.X, opt.Y)
	}

	p := plot.New()
	p.Title.Text = opt.Title
	p.X.Label.Text = fmt.Sprintf("channel %d", opt.X+1)
	p.Y.Label.Text = fmt.Sprintf("channel %d", opt.Y+1)
	p.Add(plotter.NewGrid())

	series := make(map[facelet.Face]plotter.XYs)
	centres := make(plotter.XYs, 0, len(facelet.Centres))
	for _, pt := range a {
		ch := pt.Channels()
		xy := plotter.XY{X: ch[opt.X], Y: ch[opt.Y]}
		if facelet.IsCentre(pt.Index) {
			centres = append(centres, xy)
			continue
		}
		f := n.At(pt.Index)
		series[f] = append(series[f], xy)
	}

	for _, f := range append(facelet.Faces[:], facelet.Blank) {
		pts, ok := series[f]
		if !ok {
			continue
		}
		s, err := plotter.NewScatter(pts)
		if err != nil {
			return nil, fmt.Errorf("failed to create scatter for %s: %w", f, err)
		}
		s.GlyphStyle.Color = faceColor(f)
		s.GlyphStyle.Radius = vg.Points(3)
		s.GlyphStyle.Shape = draw.CircleGlyph{}
		p.Add(s)
		name := f.String()
		if f == facelet.Blank {
			name = "unassigned"
		}
		p.Legend.Add(name, s)
	}

	if len(centres) > 0 {
		s, err := plotter.NewScatter(centres)
		if err != nil {
			return nil, fmt.Errorf("failed to create centre scatter: %w", err)
		}
		s.GlyphStyle.Color = color.Black
		s.GlyphStyle.Radius = vg.Points(5)
		s.GlyphStyle.Shape = draw.CrossGlyph{}
		p.Add(s)
		p.Legend.Add("centres", s)
	}

	return p, nil
}

// SaveScatter renders Scatter to path. The image format follows the file
// extension (png, svg, pdf).
func SaveScatter(a *colorpoint.Arena, n facelet.Notation, opt ScatterOptions, path string) error {
	p, err := Scatter(a, n, opt)
	if err != nil {
		return err
	}
	if err := p.Save(opt.Width, opt.Height, path); err != nil {
		return fmt.Errorf("failed to save plot: %w", err)
	}
	return nil
}
