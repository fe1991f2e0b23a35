package sim

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// NewTrajectoryPlot creates new plot of the simulation result from three data sources:
// truth:       true car position
// measurement: measured car position
// filter:      filter estimate of the car position
// It returns error if res is nil or if any of the scatters fails to be created.
func NewTrajectoryPlot(res *Result) (*plot.Plot, error) {
	if res == nil {
		return nil, fmt.Errorf("invalid result supplied")
	}

	p := plot.New()

	p.Title.Text = "Car position"
	p.X.Label.Text = "step"
	p.Y.Label.Text = "position"

	legend := plot.NewLegend()
	legend.Top = true
	p.Legend = legend

	// Make a scatter plotter for true position
	truthScatter, err := plotter.NewScatter(makePoints(res.traj, TruthCol))
	if err != nil {
		return nil, err
	}
	truthScatter.GlyphStyle.Color = color.RGBA{R: 255, B: 128, A: 255}
	truthScatter.Shape = draw.PyramidGlyph{}
	truthScatter.GlyphStyle.Radius = vg.Points(3)

	p.Add(truthScatter)
	p.Legend.Add("truth", truthScatter)

	// Make a scatter plotter for measurement data
	measScatter, err := plotter.NewScatter(makePoints(res.traj, MeasurementCol))
	if err != nil {
		return nil, err
	}
	measScatter.GlyphStyle.Color = color.RGBA{G: 255, A: 128}
	measScatter.GlyphStyle.Radius = vg.Points(3)

	p.Add(measScatter)
	p.Legend.Add("measurement", measScatter)

	// Make a scatter plotter for filter data
	filterScatter, err := plotter.NewScatter(makePoints(res.traj, FilterCol))
	if err != nil {
		return nil, fmt.Errorf("failed to create scatter: %v", err)
	}
	filterScatter.GlyphStyle.Color = color.RGBA{R: 169, G: 169, B: 169}
	filterScatter.Shape = draw.CrossGlyph{}
	filterScatter.GlyphStyle.Radius = vg.Points(3)

	p.Add(filterScatter)
	p.Legend.Add("filtered", filterScatter)

	return p, nil
}

// NewBeliefPlot creates new plot of the normal probability density function
// with the given mean and variance spanning four standard deviations on each side.
// It returns error if variance is not positive or if either of the values is not finite.
func NewBeliefPlot(mean, variance float64) (*plot.Plot, error) {
	if math.IsNaN(mean) || math.IsInf(mean, 0) {
		return nil, fmt.Errorf("invalid mean: %v", mean)
	}

	if math.IsNaN(variance) || math.IsInf(variance, 0) || variance <= 0 {
		return nil, fmt.Errorf("invalid variance: %v", variance)
	}

	n := distuv.Normal{Mu: mean, Sigma: math.Sqrt(variance)}

	p := plot.New()

	p.Title.Text = "Belief"
	p.X.Label.Text = "position"
	p.Y.Label.Text = "density"

	pdf := plotter.NewFunction(n.Prob)
	pdf.XMin = mean - 4*n.Sigma
	pdf.XMax = mean + 4*n.Sigma
	pdf.Samples = 200
	pdf.Color = color.RGBA{G: 255, B: 255, A: 255}
	pdf.Width = vg.Points(2)

	p.Add(pdf)
	p.Legend.Add(fmt.Sprintf("N(%.2f, %.2f)", mean, variance), pdf)

	p.X.Min = pdf.XMin
	p.X.Max = pdf.XMax
	p.Y.Min = 0
	p.Y.Max = n.Prob(mean) * 1.1

	return p, nil
}

func makePoints(m *mat.Dense, col int) plotter.XYs {
	r, _ := m.Dims()
	pts := make(plotter.XYs, r)
	for i := 0; i < r; i++ {
		pts[i].X = m.At(i, StepCol)
		pts[i].Y = m.At(i, col)
	}

	return pts
}
