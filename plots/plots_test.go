package plots

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/qe-tools/qeplot/bz"
)

func TestHVSRamp(Te *testing.T) {
	r := NewHVSRamp(0, 10)
	low, err := r.At(0)
	if err != nil {
		Te.Fatal(err)
	}
	high, err := r.At(10)
	if err != nil {
		Te.Fatal(err)
	}
	lr, _, lb, _ := low.RGBA()
	hr, _, hb, _ := high.RGBA()
	fmt.Println("ramp endpoints:", low, high)
	if lb <= lr {
		Te.Error("ramp bottom should be blue-dominant")
	}
	if hr <= hb {
		Te.Error("ramp top should be red-dominant")
	}
	//out-of-range values clamp to the endpoints
	under, _ := r.At(-5)
	if under != low {
		Te.Error("values below the range should clamp to the bottom color")
	}
	if _, err := r.At(nan()); err == nil {
		Te.Error("NaN should not get a color")
	}
	pal := r.Palette(5).Colors()
	if len(pal) != 5 || pal[0] != low {
		Te.Errorf("palette wrong: %v", pal)
	}
}

func nan() float64 {
	z := 0.0
	return z / z
}

func TestSeriesColor(Te *testing.T) {
	seen := map[color.NRGBA]bool{}
	for i := 0; i < 5; i++ {
		c := seriesColor(i, 5)
		if seen[c] {
			Te.Errorf("series color %d repeats: %v", i, c)
		}
		seen[c] = true
	}
}

func TestSaveWritesBothFormats(Te *testing.T) {
	dir := Te.TempDir()
	p := NewPlot("test", "x", "y")
	if err := MultiLine(p, []float64{0, 1, 2}, [][]float64{{0, 1, 4}, {0, 2, 3}}, []string{"a", "b"}); err != nil {
		Te.Fatal(err)
	}
	base := filepath.Join(dir, "fig")
	if err := Save(p, base); err != nil {
		Te.Fatal(err)
	}
	for _, ext := range []string{".png", ".pdf"} {
		st, err := os.Stat(base + ext)
		if err != nil || st.Size() == 0 {
			Te.Errorf("%s not written: %v", ext, err)
		}
	}
}

func TestFSMap(Te *testing.T) {
	kxy := []bz.Vec{{X: 0, Y: 0}, {X: 0.5, Y: 0}, {X: 0, Y: 0.5}, {X: -0.5, Y: -0.5}}
	vals := []float64{0.1, 0.5, 0.9, 0.3}
	poly := bz.Polygon{{X: -0.5, Y: -0.5}, {X: 0.5, Y: -0.5}, {X: 0.5, Y: 0.5}, {X: -0.5, Y: 0.5}}
	p, ramp, err := FSMap(kxy, vals, "λ map", poly)
	if err != nil {
		Te.Fatal(err)
	}
	if ramp.Min() != 0.1 || ramp.Max() != 0.9 {
		Te.Errorf("ramp range should follow the data: [%v, %v]", ramp.Min(), ramp.Max())
	}
	if xspan, yspan := p.X.Max-p.X.Min, p.Y.Max-p.Y.Min; xspan != yspan {
		Te.Errorf("axis spans must be equal: %v vs %v", xspan, yspan)
	}
	dir := Te.TempDir()
	if err := SaveFSMap(p, ramp, "λ", filepath.Join(dir, "fsmap")); err != nil {
		Te.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(dir, "fsmap.png")); err != nil {
		Te.Error("fsmap.png not written")
	}
	//mismatched lengths are a caller bug, reported not drawn
	if _, _, err := FSMap(kxy, vals[:2], "bad", nil); err == nil {
		Te.Error("expected an error for mismatched points/values")
	}
}

func TestDispersionFigure(Te *testing.T) {
	d := &DispersionData{
		X:          []float64{0, 0.5, 1},
		Branches:   [][]float64{{0, 10, 5}, {20, 25, 22}},
		TickX:      []float64{0, 1},
		TickLabels: []string{"Γ", "X"},
		YLabel:     "ω (cm⁻¹)",
		Title:      "dispersion",
	}
	dir := Te.TempDir()
	if err := SaveDispersion(d, filepath.Join(dir, "disp")); err != nil {
		Te.Fatal(err)
	}
	if err := SaveDispersionDOS(d, []float64{0, 0.5, 0.2}, []float64{0, 12, 25}, filepath.Join(dir, "dispdos")); err != nil {
		Te.Fatal(err)
	}
	for _, name := range []string{"disp.png", "disp.pdf", "dispdos.png", "dispdos.pdf"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			Te.Errorf("%s not written", name)
		}
	}
}

func TestLambdaHistogram(Te *testing.T) {
	vals := []float64{0.1, 0.2, 0.2, 0.3, 0.9, nan()}
	p, err := LambdaHistogram(vals, 4, "λ distribution")
	if err != nil {
		Te.Fatal(err)
	}
	dir := Te.TempDir()
	if err := Save(p, filepath.Join(dir, "histo")); err != nil {
		Te.Fatal(err)
	}
	if _, err := LambdaHistogram([]float64{nan()}, 4, "empty"); err == nil {
		Te.Error("expected an error when no finite values remain")
	}
}
