package plots

import (
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

//Phonon dispersion figures: all branches over the q path, optional
//high-symmetry ticks with dashed verticals, optional DOS side panel.

// DispersionData is everything the dispersion panel needs.
type DispersionData struct {
	X          []float64   //path coordinate
	Branches   [][]float64 //one frequency slice per branch, parallel to X
	TickX      []float64   //high-symmetry tick positions, may be empty
	TickLabels []string    //labels parallel to TickX
	YLabel     string      //frequency axis label, unit included
	Title      string
	YLim       []float64 //optional [min, max] for the frequency axis
}

// yRange returns the frequency range over all branches, padded by 2%.
func (d *DispersionData) yRange() (float64, float64) {
	ymin, ymax := math.Inf(1), math.Inf(-1)
	for _, b := range d.Branches {
		for _, v := range b {
			if math.IsNaN(v) {
				continue
			}
			ymin = math.Min(ymin, v)
			ymax = math.Max(ymax, v)
		}
	}
	if ymin > ymax {
		return 0, 1
	}
	pad := 0.02 * (ymax - ymin)
	if pad == 0 {
		pad = 1
	}
	return ymin - pad, ymax + pad
}

var branchColor = color.NRGBA{R: 31, G: 119, B: 180, A: 255}

// Dispersion builds the single-panel dispersion plot.
func Dispersion(d *DispersionData) (*plot.Plot, error) {
	if len(d.X) == 0 || len(d.Branches) == 0 {
		return nil, newError("Dispersion: no data")
	}
	p := NewPlot(d.Title, "", d.YLabel)
	ymin, ymax := d.yRange()
	if len(d.YLim) == 2 {
		ymin, ymax = d.YLim[0], d.YLim[1]
	}
	p.Y.Min, p.Y.Max = ymin, ymax
	p.X.Min, p.X.Max = d.X[0], d.X[len(d.X)-1]

	for _, b := range d.Branches {
		l, err := plotter.NewLine(XYLinePoints(d.X, b))
		if err != nil {
			return nil, errDecorate(err, "Dispersion")
		}
		l.LineStyle.Width = vg.Points(1)
		l.LineStyle.Color = branchColor
		p.Add(l)
	}

	if len(d.TickX) > 0 && len(d.TickX) == len(d.TickLabels) {
		ticks := make([]plot.Tick, len(d.TickX))
		for i, x := range d.TickX {
			ticks[i] = plot.Tick{Value: x, Label: d.TickLabels[i]}
			v, err := plotter.NewLine(plotter.XYs{{X: x, Y: ymin}, {X: x, Y: ymax}})
			if err != nil {
				return nil, errDecorate(err, "Dispersion ticks")
			}
			v.LineStyle.Color = color.NRGBA{A: 96}
			v.LineStyle.Width = vg.Points(0.5)
			v.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}
			p.Add(v)
		}
		p.X.Tick.Marker = plot.ConstantTicks(ticks)
	}
	return p, nil
}

// SaveDispersion writes the dispersion-only figure.
func SaveDispersion(d *DispersionData, base string) error {
	p, err := Dispersion(d)
	if err != nil {
		return err
	}
	return Save(p, base)
}

// SaveDispersionDOS writes the dispersion with a DOS side panel at 5:1
// width, sharing the frequency axis. dosX is the DOS value, dosY the
// frequency grid.
func SaveDispersionDOS(d *DispersionData, dosX, dosY []float64, base string) error {
	p, err := Dispersion(d)
	if err != nil {
		return err
	}
	ymin, ymax := p.Y.Min, p.Y.Max

	dp := plot.New()
	dp.Title.Text = "DOS"
	dp.X.Label.Text = ""
	dp.Y.Min, dp.Y.Max = ymin, ymax
	dp.Y.Tick.Marker = noTicks{}
	fill := make(plotter.XYs, 0, len(dosX)+2)
	fill = append(fill, plotter.XY{X: 0, Y: firstOr(dosY, ymin)})
	for i := range dosX {
		if i < len(dosY) {
			fill = append(fill, plotter.XY{X: dosX[i], Y: dosY[i]})
		}
	}
	fill = append(fill, plotter.XY{X: 0, Y: lastOr(dosY, ymax)})
	poly, err := plotter.NewPolygon(fill)
	if err != nil {
		return errDecorate(err, "SaveDispersionDOS")
	}
	poly.Color = color.NRGBA{R: 31, G: 119, B: 180, A: 70}
	poly.LineStyle.Color = color.NRGBA{A: 0}
	dp.Add(poly)
	outline, err := plotter.NewLine(XYLinePoints(dosX, dosY))
	if err != nil {
		return errDecorate(err, "SaveDispersionDOS")
	}
	outline.LineStyle.Color = branchColor
	dp.Add(outline)

	//5:1 split, dispersion left, DOS right
	w := DefaultWidth + DefaultWidth/5
	h := DefaultHeight
	side := w / 6
	return savePanels(base, w, h, func(dc draw.Canvas) {
		p.Draw(draw.Crop(dc, 0, -side, 0, 0))
		dp.Draw(draw.Crop(dc, w-side, 0, 0, 0))
	})
}

func firstOr(s []float64, def float64) float64 {
	if len(s) > 0 {
		return s[0]
	}
	return def
}

func lastOr(s []float64, def float64) float64 {
	if len(s) > 0 {
		return s[len(s)-1]
	}
	return def
}
