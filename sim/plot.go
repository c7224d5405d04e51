package sim

import (
	"fmt"
	"image/color"

	mcl "github.com/robokit/go-mcl"
	"github.com/robokit/go-mcl/pose"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// NewCloudPlot creates a new plot of one localization cycle: the particle
// cloud, the ground truth pose and the filter estimate.
// It returns error if the particle range is empty or either scatter fails
// to be created.
func NewCloudPlot(particles mcl.ParticleRange[pose.SE2], truth pose.SE2, est mcl.Estimate) (*plot.Plot, error) {
	states := particles.States()
	if len(states) == 0 {
		return nil, fmt.Errorf("invalid particle count: %d", len(states))
	}

	p := plot.New()

	p.Title.Text = "Particle cloud"
	p.X.Label.Text = "X"
	p.Y.Label.Text = "Y"

	legend := plot.NewLegend()
	legend.Top = true
	p.Legend = legend

	// particle cloud
	cloud := make(plotter.XYs, len(states))
	for i, s := range states {
		cloud[i].X = s.T.X
		cloud[i].Y = s.T.Y
	}
	cloudScatter, err := plotter.NewScatter(cloud)
	if err != nil {
		return nil, fmt.Errorf("failed to create scatter: %v", err)
	}
	cloudScatter.GlyphStyle.Color = color.RGBA{R: 169, G: 169, B: 169, A: 255}
	cloudScatter.Shape = draw.CrossGlyph{}
	cloudScatter.GlyphStyle.Radius = vg.Points(2)

	p.Add(cloudScatter)
	p.Legend.Add("particles", cloudScatter)

	// ground truth
	truthScatter, err := plotter.NewScatter(plotter.XYs{{X: truth.T.X, Y: truth.T.Y}})
	if err != nil {
		return nil, fmt.Errorf("failed to create scatter: %v", err)
	}
	truthScatter.GlyphStyle.Color = color.RGBA{R: 255, B: 128, A: 255}
	truthScatter.Shape = draw.PyramidGlyph{}
	truthScatter.GlyphStyle.Radius = vg.Points(4)

	p.Add(truthScatter)
	p.Legend.Add("truth", truthScatter)

	if est != nil {
		val := est.Val()
		estScatter, err := plotter.NewScatter(plotter.XYs{{X: val.AtVec(0), Y: val.AtVec(1)}})
		if err != nil {
			return nil, fmt.Errorf("failed to create scatter: %v", err)
		}
		estScatter.GlyphStyle.Color = color.RGBA{G: 255, A: 255}
		estScatter.Shape = draw.RingGlyph{}
		estScatter.GlyphStyle.Radius = vg.Points(4)

		p.Add(estScatter)
		p.Legend.Add("estimate", estScatter)
	}

	return p, nil
}
