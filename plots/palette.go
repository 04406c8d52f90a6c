package plots

import (
	"image/color"
	"math"

	"gonum.org/v1/plot/palette"
)

//The HSV value ramp used to color scatter points and line families.
//Hue runs from 240 (blue) down to 0 (red) through green and yellow,
//giving the familiar rainbow look of matplotlib's jet.

// HVSRamp maps scalar values onto a blue-to-red hue sweep. It fulfills
// palette.ColorMap so it can feed a plotter.ColorBar directly.
type HVSRamp struct {
	min, max float64
	alpha    float64
}

// NewHVSRamp returns a ramp over [min, max].
func NewHVSRamp(min, max float64) *HVSRamp {
	return &HVSRamp{min: min, max: max, alpha: 1}
}

// At returns the color for v. Values outside [Min, Max] are clamped,
// since data a hair past the range is a rounding artifact here, not an
// error worth aborting a figure over.
func (r *HVSRamp) At(v float64) (color.Color, error) {
	if math.IsNaN(v) {
		return nil, newError("HVSRamp: NaN has no color")
	}
	span := r.max - r.min
	if span <= 0 {
		cr, cg, cb := iHVS2RGB(0, 1, 1)
		return color.NRGBA{R: cr, G: cg, B: cb, A: uint8(255 * r.alpha)}, nil
	}
	t := (v - r.min) / span
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	cr, cg, cb := iHVS2RGB(240*(1-t), 1, 1)
	return color.NRGBA{R: cr, G: cg, B: cb, A: uint8(255 * r.alpha)}, nil
}

func (r *HVSRamp) Min() float64           { return r.min }
func (r *HVSRamp) Max() float64           { return r.max }
func (r *HVSRamp) SetMin(min float64)     { r.min = min }
func (r *HVSRamp) SetMax(max float64)     { r.max = max }
func (r *HVSRamp) Alpha() float64         { return r.alpha }
func (r *HVSRamp) SetAlpha(alpha float64) { r.alpha = alpha }

// Palette returns n evenly spaced colors along the ramp.
func (r *HVSRamp) Palette(n int) palette.Palette {
	if n < 1 {
		n = 1
	}
	cols := make([]color.Color, n)
	for i := range cols {
		v := r.min
		if n > 1 {
			v = r.min + float64(i)*(r.max-r.min)/float64(n-1)
		}
		c, _ := r.At(v)
		cols[i] = c
	}
	return hvsPalette(cols)
}

type hvsPalette []color.Color

func (p hvsPalette) Colors() []color.Color { return p }

//takes hue (0-360), v and s (0-1), returns r,g,b (0-255)
func iHVS2RGB(h, v, s float64) (uint8, uint8, uint8) {
	var i, f, p, q, t float64
	var r, g, b float64
	maxcolor := 255.0
	conversion := maxcolor * v
	if s == 0.0 {
		return uint8(conversion), uint8(conversion), uint8(conversion)
	}
	h = h / 60
	i = math.Floor(h)
	f = h - i
	p = v * (1 - s)
	q = v * (1 - s*f)
	t = v * (1 - s*(1-f))
	switch int(i) {
	case 0:
		r = v
		g = t
		b = p
	case 1:
		r = q
		g = v
		b = p
	case 2:
		r = p
		g = v
		b = t
	case 3:
		r = p
		g = q
		b = v
	case 4:
		r = t
		g = p
		b = v
	default: //case 5
		r = v
		g = p
		b = q
	}
	r = r * conversion
	g = g * conversion
	b = b * conversion
	return uint8(r), uint8(g), uint8(b)
}

// seriesColor spreads steps line colors over the hue circle, skipping
// the yellows that read badly on white.
func seriesColor(key, steps int) color.NRGBA {
	if steps < 1 {
		steps = 1
	}
	norm := 260.0 / float64(steps)
	hp := float64(key)*norm + 20.0
	var h float64
	if hp < 55 {
		h = hp - 20.0
	} else {
		h = hp + 20.0
	}
	r, g, b := iHVS2RGB(h, 1, 1)
	return color.NRGBA{R: r, G: g, B: b, A: 255}
}
