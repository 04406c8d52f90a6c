package plots

import (
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/qe-tools/qeplot/bz"
)

//Fermi-surface maps: k-points scattered on the kx/ky plane, colored by
//a per-point scalar (coupling strength, gap, ...), with an optional
//first-BZ outline on top.

// FSMap builds the map plot and the ramp its colorbar needs. The axes
// are forced to equal spans so the zone geometry is not distorted, with
// a 2% pad around the data. overlay may be nil.
func FSMap(kxy []bz.Vec, vals []float64, title string, overlay bz.Polygon) (*plot.Plot, *HVSRamp, error) {
	if len(kxy) == 0 || len(kxy) != len(vals) {
		return nil, nil, newError("FSMap: need one value per k-point, got %d points and %d values", len(kxy), len(vals))
	}
	vmin, vmax := math.Inf(1), math.Inf(-1)
	for _, v := range vals {
		if math.IsNaN(v) {
			continue
		}
		if v < vmin {
			vmin = v
		}
		if v > vmax {
			vmax = v
		}
	}
	if vmin > vmax {
		return nil, nil, newError("FSMap: no finite values to color by")
	}
	ramp := NewHVSRamp(vmin, vmax)

	p := NewPlot(title, "kx (2π/alat)", "ky (2π/alat)")
	pts := make(plotter.XYs, len(kxy))
	for i, k := range kxy {
		pts[i].X = k.X
		pts[i].Y = k.Y
	}
	s, err := plotter.NewScatter(pts)
	if err != nil {
		return nil, nil, errDecorate(err, "FSMap")
	}
	s.GlyphStyleFunc = func(i int) draw.GlyphStyle {
		c, _ := ramp.At(vals[i])
		return draw.GlyphStyle{Color: c, Radius: vg.Points(1.5), Shape: draw.CircleGlyph{}}
	}
	p.Add(s)

	if len(overlay) >= 3 {
		closed := overlay.Closed()
		line := make(plotter.XYs, len(closed))
		for i, v := range closed {
			line[i].X = v.X
			line[i].Y = v.Y
		}
		l, err := plotter.NewLine(line)
		if err != nil {
			return nil, nil, errDecorate(err, "FSMap overlay")
		}
		l.LineStyle.Width = vg.Points(1.2)
		p.Add(l)
	}

	equalLimits(p, kxy, overlay)
	return p, ramp, nil
}

// equalLimits forces equal x and y spans around the data (k-points plus
// overlay vertices), padded by 2% of the span on each side.
func equalLimits(p *plot.Plot, kxy []bz.Vec, overlay bz.Polygon) {
	xmin, xmax := math.Inf(1), math.Inf(-1)
	ymin, ymax := math.Inf(1), math.Inf(-1)
	grow := func(v bz.Vec) {
		xmin = math.Min(xmin, v.X)
		xmax = math.Max(xmax, v.X)
		ymin = math.Min(ymin, v.Y)
		ymax = math.Max(ymax, v.Y)
	}
	for _, v := range kxy {
		grow(v)
	}
	for _, v := range overlay {
		grow(v)
	}
	if xmin > xmax {
		return
	}
	span := math.Max(xmax-xmin, ymax-ymin)
	if span == 0 {
		span = 1
	}
	pad := 0.02 * span
	cx := (xmin + xmax) / 2
	cy := (ymin + ymax) / 2
	half := span/2 + pad
	p.X.Min, p.X.Max = cx-half, cx+half
	p.Y.Min, p.Y.Max = cy-half, cy+half
}

// SaveFSMap writes the map with a colorbar side panel, as base.png and
// base.pdf. The main panel takes 5/6 of the width.
func SaveFSMap(p *plot.Plot, ramp *HVSRamp, clabel, base string) error {
	cp := plot.New()
	cb := &plotter.ColorBar{ColorMap: ramp}
	cb.Vertical = true
	cp.Add(cb)
	cp.HideX()
	cp.Y.Label.Text = clabel

	w := DefaultWidth + 3*vg.Centimeter
	h := DefaultHeight
	return savePanels(base, w, h, func(dc draw.Canvas) {
		main := draw.Crop(dc, 0, -3*vg.Centimeter, 0, 0)
		side := draw.Crop(dc, w-3*vg.Centimeter, 0, 0, 0)
		p.Draw(main)
		cp.Draw(side)
	})
}
