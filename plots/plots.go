/*
Package plots builds the figures of the qeplot tools on top of
gonum.org/v1/plot.

Every figure builder returns a *plot.Plot (or draws onto a canvas for
the multi-panel layouts) and leaves saving to Save, which writes both a
PNG and a PDF next to each other.
*/
package plots

import (
	"image/color"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgpdf"
)

// Default figure size. Figures are sized in vg units so both backends
// agree on the layout.
const (
	DefaultWidth  = 15 * vg.Centimeter
	DefaultHeight = 11 * vg.Centimeter
)

var gridColor = color.NRGBA{A: 64} //alpha 0.25 on black

// NewPlot returns a plot with title, axis labels and the light grid all
// figures here share.
func NewPlot(title, xlabel, ylabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.Title.Padding = 3 * vg.Millimeter
	p.X.Label.Text = xlabel
	p.Y.Label.Text = ylabel
	g := plotter.NewGrid()
	g.Vertical.Color = gridColor
	g.Horizontal.Color = gridColor
	p.Add(g)
	return p
}

// XYLinePoints turns parallel x/y slices into plotter points. Slices of
// different lengths are truncated to the shorter one.
func XYLinePoints(x, y []float64) plotter.XYs {
	n := len(x)
	if len(y) < n {
		n = len(y)
	}
	pts := make(plotter.XYs, n)
	for i := 0; i < n; i++ {
		pts[i].X = x[i]
		pts[i].Y = y[i]
	}
	return pts
}

// MultiLine adds one line per y series against the shared x, colored
// along the ramp, with legend entries for the non-empty names.
func MultiLine(p *plot.Plot, x []float64, ys [][]float64, names []string) error {
	for i, y := range ys {
		l, err := plotter.NewLine(XYLinePoints(x, y))
		if err != nil {
			return errDecorate(err, "MultiLine")
		}
		l.LineStyle.Width = vg.Points(1)
		l.LineStyle.Color = seriesColor(i, len(ys))
		p.Add(l)
		if i < len(names) && names[i] != "" {
			p.Legend.Add(names[i], l)
		}
	}
	return nil
}

// Save writes the plot as base.png and base.pdf.
func Save(p *plot.Plot, base string) error {
	if err := p.Save(DefaultWidth, DefaultHeight, base+".png"); err != nil {
		return errDecorate(err, "Save "+base+".png")
	}
	if err := p.Save(DefaultWidth, DefaultHeight, base+".pdf"); err != nil {
		return errDecorate(err, "Save "+base+".pdf")
	}
	return nil
}

// savePanels renders a multi-panel layout to base.png and base.pdf.
// The drawFn is called once per backend with a fresh canvas of the
// given size.
func savePanels(base string, w, h vg.Length, drawFn func(dc draw.Canvas)) error {
	img := vgimg.NewWith(vgimg.UseWH(w, h), vgimg.UseDPI(150))
	drawFn(draw.New(img))
	f, err := os.Create(base + ".png")
	if err != nil {
		return errDecorate(err, "savePanels")
	}
	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(f); err != nil {
		f.Close()
		return errDecorate(err, "savePanels "+base+".png")
	}
	if err := f.Close(); err != nil {
		return errDecorate(err, "savePanels")
	}

	pdf := vgpdf.New(w, h)
	drawFn(draw.New(pdf))
	f, err = os.Create(base + ".pdf")
	if err != nil {
		return errDecorate(err, "savePanels")
	}
	if _, err := pdf.WriteTo(f); err != nil {
		f.Close()
		return errDecorate(err, "savePanels "+base+".pdf")
	}
	return f.Close()
}

// noTicks hides an axis' tick labels while keeping its range.
type noTicks struct{}

func (noTicks) Ticks(min, max float64) []plot.Tick { return nil }

func errDecorate(err error, info string) error {
	err2 := newError("plots: %s: %v", info, err)
	return err2
}
