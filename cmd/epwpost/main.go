/*
epwpost turns the text outputs of an EPW run into figures: a2f spectra,
phonon DOS, Fermi-surface maps of the coupling strength with an
optional first Brillouin-zone outline, the lambda_nk distribution,
real-space decay diagnostics, and the isotropic Eliashberg tables.

Every input is optional. Missing or unparsable files are logged with
[skip] and the remaining figures are still produced.

Usage:

	epwpost [flags] PREFIX
*/
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/qe-tools/qeplot"
	"github.com/qe-tools/qeplot/bz"
	"github.com/qe-tools/qeplot/plots"
	"github.com/qe-tools/qeplot/qefile"
)

func main() {
	var (
		omegaUnit = flag.String("omega-unit", "meV", "frequency axis unit: meV, THz or cm-1")
		kmode     = flag.String("kmode", "auto", "k-point convention for the BZ overlay: auto, crystal or cart")
		bzRange   = flag.Int("bz-n", bz.DefaultNeighborRange, "neighbor range for the Wigner-Seitz construction")
		outdir    = flag.String("outdir", "plots_open", "output directory for the figures")
	)
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: epwpost [flags] PREFIX")
		flag.PrintDefaults()
		os.Exit(2)
	}
	prefix := flag.Arg(0)

	unit, err := qeplot.ParseOmegaUnit(*omegaUnit)
	if err != nil {
		log.Fatalf("[error] %v", err)
	}
	mode, err := bz.ParseMode(*kmode)
	if err != nil {
		log.Fatalf("[error] %v", err)
	}
	if err := os.MkdirAll(*outdir, 0o755); err != nil {
		log.Fatalf("[error] cannot create %s: %v", *outdir, err)
	}

	log.Printf("[info] prefix=%s", prefix)
	log.Printf("[info] omega-unit=%s", unit)
	log.Printf("[info] output dir=%s", *outdir)
	log.Printf("[info] BZ overlay: xml=%s | kmode=%s | neighbor range=%d",
		qefile.SchemaPath(".", prefix), mode, *bzRange)

	out := func(name string) string { return filepath.Join(*outdir, prefix+"__"+name) }

	//a2f: alpha^2 F and, when the third column is there, lambda(omega)
	if path := prefix + ".a2f"; exists(path) {
		if err := plotA2F(prefix, path, out("a2f__alpha2F_vs_omega"), out("a2f__lambda_vs_omega"), unit); err != nil {
			log.Printf("[skip] %s: %v", path, err)
		} else {
			log.Print("[ok] a2f (+ lambda(omega) if present)")
		}
	}

	//spectra sharing the omega axis
	specs := []struct{ tag, ylabel, title, outname string }{
		{"a2f_proj", "α²F(ω) projected (arb.)", prefix + ": projected α²F(ω)", "a2f_proj__alpha2Fproj_vs_omega"},
		{"phdos", "Phonon DOS (arb.)", prefix + ": phonon DOS", "phdos__dos_vs_omega"},
		{"phdos_proj", "Phonon DOS (arb.)", prefix + ": phonon DOS (proj)", "phdos_proj__dosproj_vs_omega"},
	}
	for _, s := range specs {
		path := prefix + "." + s.tag
		if !exists(path) {
			continue
		}
		if err := plotSpectrum(path, s.title, s.ylabel, out(s.outname), unit); err != nil {
			log.Printf("[skip] %s: %v", path, err)
		} else {
			log.Printf("[ok] %s", s.tag)
		}
	}

	//FS maps, with the zone outline when the run metadata allows it
	overlay := buildOverlayInput(prefix, *bzRange, mode)
	for _, tag := range []string{"lambda_FS", "lambda_aniso", "lambda_pairs", "lambda.frmsf"} {
		path := prefix + "." + tag
		if !exists(path) {
			continue
		}
		if err := plotFSMaps(prefix, path, tag, out, overlay); err != nil {
			log.Printf("[skip] %s: %v", path, err)
		} else {
			log.Printf("[ok] %s -> FS maps", tag)
		}
	}

	//lambda_nk distribution
	if path := prefix + ".lambda_k_pairs"; exists(path) {
		if err := plotLambdaPairs(prefix, path, out); err != nil {
			log.Printf("[skip] %s: %v", path, err)
		} else {
			log.Print("[ok] lambda_k_pairs -> rho(lambda) distribution")
		}
	}

	//decay.* diagnostics
	decays, _ := filepath.Glob("decay.*")
	sort.Strings(decays)
	for _, path := range decays {
		if err := plotDecay(prefix, path, *outdir); err != nil {
			log.Printf("[skip] %s: %v", path, err)
		} else {
			log.Printf("[ok] %s -> decay plot", path)
		}
	}

	//Eliashberg tables
	for _, pat := range []string{prefix + ".imag_iso_*", prefix + ".pade_iso_*"} {
		files, _ := filepath.Glob(pat)
		sort.Strings(files)
		for _, path := range files {
			var err error
			if strings.Contains(path, ".imag_iso_") {
				err = plotImagIso(prefix, path, out)
			} else {
				err = plotPadeIso(prefix, path, out)
			}
			if err != nil {
				log.Printf("[skip] %s: %v", path, err)
			} else {
				log.Printf("[ok] %s -> Eliashberg plots", path)
			}
		}
	}

	log.Print("[done] postprocess complete.")
}

func exists(path string) bool {
	st, err := os.Stat(path)
	return err == nil && !st.IsDir()
}

// overlayInput carries what the FS maps need to attempt a zone overlay:
// the reciprocal basis when the run metadata parsed, or nothing.
type overlayInput struct {
	basis *mat.Dense
	n     int
	mode  bz.Mode
}

func buildOverlayInput(prefix string, n int, mode bz.Mode) *overlayInput {
	xmlPath := qefile.SchemaPath(".", prefix)
	basis, err := qefile.ReadReciprocalLattice(xmlPath)
	if err != nil {
		log.Printf("[skip] BZ overlay: %v", err)
		return &overlayInput{n: n, mode: mode}
	}
	log.Printf("[info] BZ overlay enabled (%s) | kmode=%s", xmlPath, mode)
	return &overlayInput{basis: basis, n: n, mode: mode}
}

func plotA2F(prefix, path, outMain, outLambda string, unit qeplot.OmegaUnit) error {
	t, err := qefile.ReadTable(path)
	if err != nil {
		return err
	}
	if t.Cols() < 2 {
		return fmt.Errorf("a2f needs >=2 columns")
	}
	w, wlab, err := qeplot.OmegaFromMeV(t.Col(0), unit)
	if err != nil {
		return err
	}
	p := plots.NewPlot(prefix+": α²F(ω)", "ω ("+wlab+")", "α²F(ω)")
	if err := plots.MultiLine(p, w, [][]float64{t.Col(1)}, []string{t.Labels[1]}); err != nil {
		return err
	}
	if err := plots.Save(p, outMain); err != nil {
		return err
	}
	if t.Cols() >= 3 {
		pl := plots.NewPlot(prefix+": λ(ω) (from a2f col3)", "ω ("+wlab+")", "λ(ω)")
		if err := plots.MultiLine(pl, w, [][]float64{t.Col(2)}, []string{t.Labels[2]}); err != nil {
			return err
		}
		return plots.Save(pl, outLambda)
	}
	return nil
}

func plotSpectrum(path, title, ylabel, outbase string, unit qeplot.OmegaUnit) error {
	t, err := qefile.ReadTable(path)
	if err != nil {
		return err
	}
	if t.Cols() < 2 {
		return fmt.Errorf("needs >=2 columns")
	}
	w, wlab, err := qeplot.OmegaFromMeV(t.Col(0), unit)
	if err != nil {
		return err
	}
	ys := make([][]float64, 0, t.Cols()-1)
	names := make([]string, 0, t.Cols()-1)
	for j := 1; j < t.Cols(); j++ {
		ys = append(ys, t.Col(j))
		names = append(names, t.Labels[j])
	}
	if len(ys) == 1 {
		names[0] = "" //no legend for a single curve
	}
	p := plots.NewPlot(title, "ω ("+wlab+")", ylabel)
	if err := plots.MultiLine(p, w, ys, names); err != nil {
		return err
	}
	return plots.Save(p, outbase)
}

func plotFSMaps(prefix, path, tag string, out func(string) string, ov *overlayInput) error {
	t, err := qefile.ReadTable(path)
	if err != nil {
		return err
	}
	if t.Cols() < 3 {
		return fmt.Errorf("%s needs >=3 columns", tag)
	}
	kpoints := make([][]float64, t.Rows())
	for i, row := range t.Data {
		if len(row) >= 3 {
			kpoints[i] = row[:3]
		} else {
			kpoints[i] = []float64{row[0], row[1], 0}
		}
	}
	lam := t.Col(t.Cols() - 1)

	kxy, poly := mapKPoints(kpoints, ov)

	kk, ll := finitePairs(kxy, lam)
	p, ramp, err := plots.FSMap(kk, ll, prefix+": "+tag+" FS map (λ)", poly)
	if err != nil {
		return err
	}
	if err := plots.SaveFSMap(p, ramp, "λ", out(tag+"__FSmap_lambda")); err != nil {
		return err
	}

	if t.Cols() >= 5 {
		enk := t.Col(t.Cols() - 2)
		kk, ee := finitePairs(kxy, enk)
		p, ramp, err := plots.FSMap(kk, ee, prefix+": "+tag+" FS map (Enk-Ef)", poly)
		if err != nil {
			return err
		}
		return plots.SaveFSMap(p, ramp, "Enk-Ef (eV)", out(tag+"__FSmap_Enk_minus_Ef"))
	}
	return nil
}

// mapKPoints attempts the zone overlay for one FS file. On any failure
// the raw first two k columns are used and no outline is drawn; the
// figure itself always survives.
func mapKPoints(kpoints [][]float64, ov *overlayInput) ([]bz.Vec, bz.Polygon) {
	if ov != nil && ov.basis != nil {
		res := bz.BuildOverlay(ov.basis, kpoints, ov.n, ov.mode)
		if res.OK() {
			return res.KXY, res.Poly
		}
		log.Printf("[skip] BZ overlay: %v", res.Err)
	}
	raw := make([]bz.Vec, len(kpoints))
	for i, k := range kpoints {
		raw[i] = bz.Vec{X: k[0], Y: k[1]}
	}
	return raw, nil
}

func finitePairs(kxy []bz.Vec, vals []float64) ([]bz.Vec, []float64) {
	var outK []bz.Vec
	var outV []float64
	for i := range kxy {
		if i >= len(vals) {
			break
		}
		if math.IsNaN(kxy[i].X) || math.IsNaN(kxy[i].Y) ||
			math.IsInf(kxy[i].X, 0) || math.IsInf(kxy[i].Y, 0) ||
			math.IsNaN(vals[i]) || math.IsInf(vals[i], 0) {
			continue
		}
		outK = append(outK, kxy[i])
		outV = append(outV, vals[i])
	}
	return outK, outV
}

func plotLambdaPairs(prefix, path string, out func(string) string) error {
	t, err := qefile.ReadTable(path)
	if err != nil {
		return err
	}
	if t.Cols() < 2 {
		return fmt.Errorf("lambda_k_pairs distribution needs >=2 columns")
	}
	lam := t.Col(0)
	ys := [][]float64{t.Col(1)}
	names := []string{"dist_scaled"}
	if t.Cols() >= 3 {
		ys = append(ys, t.Col(2))
		names = append(names, "dist_unscaled")
	}
	p := plots.NewPlot(prefix+": ρ(λ_nk) distribution", "λ_nk", "distribution")
	if err := plots.MultiLine(p, lam, ys, names); err != nil {
		return err
	}
	if err := plots.Save(p, out("lambda_k_pairs__rho_lambda")); err != nil {
		return err
	}
	//binned view of the same data
	h, err := plots.LambdaHistogram(lam, 50, prefix+": λ_nk histogram")
	if err != nil {
		return err
	}
	return plots.Save(h, out("lambda_k_pairs__histogram"))
}

func plotDecay(prefix, path, outdir string) error {
	t, err := qefile.ReadTable(path)
	if err != nil {
		return err
	}
	if t.Cols() < 2 {
		return fmt.Errorf("decay file needs >=2 columns")
	}
	x, y := t.Col(0), t.Col(1)

	htxt := strings.Join(t.Header, " ")
	xlabel := t.Labels[0]
	if strings.Contains(htxt, "Ang") {
		xlabel = "R (Angstrom)"
	}
	var ylabel, metric string
	name := filepath.Base(path)
	switch {
	case strings.Contains(htxt, "|g") || (strings.Contains(htxt, "g(") && strings.Contains(htxt, "Ry")):
		ylabel, metric = "max |g(R)| (Ry)", "gmax_vs_R"
	case strings.Contains(strings.ToLower(name), "dyn"):
		ylabel, metric = t.Labels[1], "dynmat_metric_vs_R"
	case strings.Contains(name, "H"):
		ylabel, metric = t.Labels[1], "H_metric_vs_R"
	default:
		ylabel, metric = t.Labels[1], "value_vs_R"
	}

	stem := strings.ReplaceAll(name, ".", "_")
	outbase := filepath.Join(outdir, prefix+"__"+stem+"__"+metric)
	p := plots.NewPlot(prefix+": "+name, xlabel, ylabel)
	if err := plots.MultiLine(p, x, [][]float64{y}, nil); err != nil {
		return err
	}
	return plots.Save(p, outbase)
}

// tempTag pulls the temperature suffix out of names like
// PREFIX.imag_iso_005.00.
func tempTag(name, prefix, tag string) string {
	key := prefix + "." + tag + "_"
	if i := strings.Index(name, key); i >= 0 {
		return name[i+len(key):]
	}
	if i := strings.LastIndex(name, "_"); i >= 0 {
		return name[i+1:]
	}
	return "unknownT"
}

func plotImagIso(prefix, path string, out func(string) string) error {
	t, err := qefile.ReadTable(path)
	if err != nil {
		return err
	}
	if t.Cols() < 3 {
		return fmt.Errorf("imag_iso needs >=3 columns: w, znorm, delta")
	}
	w := t.Col(0) //eV
	z := t.Col(1)
	ttag := tempTag(filepath.Base(path), prefix, "imag_iso")

	p := plots.NewPlot(prefix+": Eliashberg isotropic znorm(ω)  (T="+ttag+")", "ω (eV)", "znorm(ω)")
	if err := plots.MultiLine(p, w, [][]float64{z}, nil); err != nil {
		return err
	}
	if err := plots.Save(p, out("eliashberg__imag_iso_"+ttag+"__znorm_vs_w_eV")); err != nil {
		return err
	}

	dMeV := make([]float64, t.Rows())
	for i, v := range t.Col(2) {
		dMeV[i] = v * 1000 //eV to meV
	}
	pd := plots.NewPlot(prefix+": Eliashberg isotropic Δ(ω)  (T="+ttag+")", "ω (eV)", "Δ(ω) (meV)")
	if err := plots.MultiLine(pd, w, [][]float64{dMeV}, nil); err != nil {
		return err
	}
	return plots.Save(pd, out("eliashberg__imag_iso_"+ttag+"__delta_vs_w_meV"))
}

func plotPadeIso(prefix, path string, out func(string) string) error {
	t, err := qefile.ReadTable(path)
	if err != nil {
		return err
	}
	if t.Cols() < 2 {
		return fmt.Errorf("pade_iso needs >=2 columns")
	}
	w := t.Col(0)
	ttag := tempTag(filepath.Base(path), prefix, "pade_iso")
	ys := make([][]float64, 0, t.Cols()-1)
	names := make([]string, 0, t.Cols()-1)
	for j := 1; j < t.Cols(); j++ {
		ys = append(ys, t.Col(j))
		names = append(names, t.Labels[j])
	}
	if len(ys) == 1 {
		names[0] = ""
	}
	p := plots.NewPlot(prefix+": Eliashberg pade_iso  (T="+ttag+")", "ω (eV)", "value (arb.)")
	if err := plots.MultiLine(p, w, ys, names); err != nil {
		return err
	}
	return plots.Save(p, out("eliashberg__pade_iso_"+ttag+"__cols_vs_w"))
}
