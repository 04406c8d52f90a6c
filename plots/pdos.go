package plots

import (
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

//Projected-DOS overlays. Spin-down curves are drawn negated below the
//axis, the usual convention for spin-resolved DOS figures.

// A PDOSSeries is one curve of the overlay.
type PDOSSeries struct {
	Label    string
	Energy   []float64
	DOS      []float64
	SpinDown bool
}

// PDOSOverlay draws all series on one plot. When shifted is true the
// energies are assumed Fermi-aligned and the x label says so.
func PDOSOverlay(series []*PDOSSeries, shifted bool, title string) (*plot.Plot, error) {
	if len(series) == 0 {
		return nil, newError("PDOSOverlay: no curves to draw")
	}
	xlabel := "E (eV)"
	if shifted {
		xlabel = "E - EF (eV)"
	}
	p := NewPlot(title, xlabel, "DOS (states/eV)")
	for i, s := range series {
		y := s.DOS
		if s.SpinDown {
			y = make([]float64, len(s.DOS))
			for j, v := range s.DOS {
				y[j] = -v
			}
		}
		l, err := plotter.NewLine(XYLinePoints(s.Energy, y))
		if err != nil {
			return nil, errDecorate(err, "PDOSOverlay")
		}
		l.LineStyle.Width = vg.Points(1)
		l.LineStyle.Color = seriesColor(i, len(series))
		p.Add(l)
		if s.Label != "" {
			p.Legend.Add(s.Label, l)
		}
	}
	p.Legend.Top = true
	return p, nil
}
