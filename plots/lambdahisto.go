package plots

import (
	"image/color"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// LambdaHistogram bins the per-state coupling strengths lambda_nk and
// draws the distribution as a filled step curve. NaNs are dropped
// before binning.
func LambdaHistogram(lambdas []float64, bins int, title string) (*plot.Plot, error) {
	var clean []float64
	for _, v := range lambdas {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			clean = append(clean, v)
		}
	}
	if len(clean) == 0 {
		return nil, newError("LambdaHistogram: no finite values")
	}
	if bins < 1 {
		bins = 50
	}
	sort.Float64s(clean) //stat.Histogram wants sorted samples
	min := floats.Min(clean)
	max := floats.Max(clean)
	if min == max {
		max = min + 1
	}
	dividers := make([]float64, bins+1)
	floats.Span(dividers, min, max)
	//stat.Histogram wants every value strictly inside the dividers
	dividers[len(dividers)-1] = math.Nextafter(max, math.Inf(1))
	counts := stat.Histogram(nil, dividers, clean, nil)

	p := NewPlot(title, "λ(n,k)", "counts")
	step := make(plotter.XYs, 0, 2*bins+2)
	step = append(step, plotter.XY{X: dividers[0], Y: 0})
	for i, c := range counts {
		step = append(step, plotter.XY{X: dividers[i], Y: c})
		step = append(step, plotter.XY{X: dividers[i+1], Y: c})
	}
	step = append(step, plotter.XY{X: dividers[len(dividers)-1], Y: 0})

	poly, err := plotter.NewPolygon(step)
	if err != nil {
		return nil, errDecorate(err, "LambdaHistogram")
	}
	poly.Color = color.NRGBA{R: 31, G: 119, B: 180, A: 90}
	poly.LineStyle.Color = color.NRGBA{R: 31, G: 119, B: 180, A: 255}
	poly.LineStyle.Width = vg.Points(1)
	p.Add(poly)
	return p, nil
}
