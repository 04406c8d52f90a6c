package plots

import (
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

//DFT vs. Wannier-interpolated band structures on one shared, normalized
//path coordinate. The convention follows the usual wannier90 check
//figure: reference bands in solid gray, interpolation in dashed red.

var (
	dftColor     = color.NRGBA{R: 120, G: 120, B: 120, A: 255}
	wannierColor = color.NRGBA{R: 214, G: 39, B: 40, A: 255}
)

// BandComparison overlays the DFT bands (x shared, one y slice per
// band) and the Wannier bands (per-block x and y). Tick positions are
// x values on the normalized path; ylim of two values clamps the energy
// axis, nil leaves it automatic.
func BandComparison(x []float64, dft [][]float64, wx, wy [][]float64, tickX []float64, tickLabels []string, ylabel, title string, ylim []float64) (*plot.Plot, error) {
	if len(dft) == 0 && len(wx) == 0 {
		return nil, newError("BandComparison: no bands to draw")
	}
	p := NewPlot(title, "", ylabel)

	var legendDFT, legendWann bool
	for _, band := range dft {
		l, err := plotter.NewLine(XYLinePoints(x, band))
		if err != nil {
			return nil, errDecorate(err, "BandComparison")
		}
		l.LineStyle.Width = vg.Points(1.2)
		l.LineStyle.Color = dftColor
		p.Add(l)
		if !legendDFT {
			p.Legend.Add("DFT", l)
			legendDFT = true
		}
	}
	for i := range wx {
		if i >= len(wy) {
			break
		}
		l, err := plotter.NewLine(XYLinePoints(wx[i], wy[i]))
		if err != nil {
			return nil, errDecorate(err, "BandComparison")
		}
		l.LineStyle.Width = vg.Points(1)
		l.LineStyle.Color = wannierColor
		l.LineStyle.Dashes = []vg.Length{vg.Points(5), vg.Points(3)}
		p.Add(l)
		if !legendWann {
			p.Legend.Add("Wannier", l)
			legendWann = true
		}
	}

	p.X.Min, p.X.Max = 0, 1
	if len(ylim) == 2 {
		p.Y.Min, p.Y.Max = ylim[0], ylim[1]
	}
	if len(tickX) > 0 && len(tickX) == len(tickLabels) {
		ticks := make([]plot.Tick, len(tickX))
		for i, tx := range tickX {
			ticks[i] = plot.Tick{Value: tx, Label: tickLabels[i]}
		}
		p.X.Tick.Marker = plot.ConstantTicks(ticks)
	}
	p.Legend.Top = true
	return p, nil
}
