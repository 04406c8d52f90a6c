/*
wanncheck compares a DFT band structure (QE '&plot' file) against the
Wannier-interpolated bands (wannier90 gnuplot file) on one normalized
path coordinate, optionally aligned to the Fermi level. The Fermi
energy is resolved from -set-fermi, then -fermi-from, then an automatic
search of *nscf*.out / *scf*.out; when none is found the alignment is
skipped silently.

Usage:

	wanncheck [flags] DFT_BAND_FILE WANNIER_BAND_FILE
*/
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/qe-tools/qeplot"
	"github.com/qe-tools/qeplot/plots"
	"github.com/qe-tools/qeplot/qefile"
)

func main() {
	var (
		outArg      = flag.String("out", "band_comparison", "output basename; .png and .pdf are both written")
		ymin        = flag.Float64("ymin", -3, "energy axis minimum")
		ymax        = flag.Float64("ymax", 3, "energy axis maximum")
		noSearch    = flag.Bool("no-fermi-search", false, "disable the automatic *.out search for the Fermi energy")
		fermiFrom   = flag.String("fermi-from", "", "QE output file to take the Fermi energy from")
		setFermi    = flag.Float64("set-fermi", 0, "Fermi energy in eV (with -set-fermi-on)")
		setOn       = flag.Bool("set-fermi-on", false, "use the -set-fermi value")
		noAlign     = flag.Bool("no-align-fermi", false, "disable Fermi alignment for both band sets")
		wannFermi   = flag.Float64("wannier-fermi", 0, "Fermi energy for the Wannier bands only (with -wannier-fermi-on)")
		wannFermiOn = flag.Bool("wannier-fermi-on", false, "use the -wannier-fermi override")
		labelinfo   = flag.String("labelinfo", "", "*.labelinfo.dat file for high-symmetry labels; auto-detected when empty")
		title       = flag.String("title", "", "figure title")
	)
	flag.Parse()
	if flag.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "usage: wanncheck [flags] DFT_BAND_FILE WANNIER_BAND_FILE")
		flag.PrintDefaults()
		os.Exit(2)
	}
	dftFile, wannFile := flag.Arg(0), flag.Arg(1)

	bp, err := qefile.ReadBandPlot(dftFile)
	if err != nil {
		log.Fatalf("[error] %v", err)
	}
	dftX := qefile.KDistNormalized(bp.KPoints)

	bb, err := qefile.ReadWannierBands(wannFile)
	if err != nil {
		log.Fatalf("[error] %v", err)
	}
	bb.NormalizeX()

	var efPtr *float64
	if *setOn {
		efPtr = setFermi
	}
	ef, efFound, efSrc := qeplot.ResolveFermi(efPtr, *fermiFrom, *noSearch, ".")

	//the same Ef shifts both band sets unless overridden for Wannier
	if efFound && !*noAlign {
		for _, band := range bp.Energies {
			for i := range band {
				band[i] -= ef
			}
		}
		efW := ef
		if *wannFermiOn {
			efW = *wannFermi
		}
		for _, yb := range bb.Y {
			for i := range yb {
				yb[i] -= efW
			}
		}
	}

	liPath := resolveLabelinfo(*labelinfo, wannFile)
	var tickX []float64
	var tickLabels []string
	if liPath != "" {
		pls, err := qefile.ReadLabelInfo(liPath, len(bp.KPoints))
		if err != nil {
			log.Printf("[warn] labelinfo unreadable, skipping labels: %v", err)
		}
		for _, pl := range pls {
			tickX = append(tickX, dftX[pl.Index-1])
			tickLabels = append(tickLabels, pl.Name)
		}
	}

	p, err := plots.BandComparison(dftX, bp.Energies, bb.X, bb.Y, tickX, tickLabels,
		"Energy (eV)", *title, []float64{*ymin, *ymax})
	if err != nil {
		log.Fatalf("[error] %v", err)
	}
	if len(tickX) == 0 {
		p.X.Label.Text = "Normalized Path"
	}
	if err := plots.Save(p, *outArg); err != nil {
		log.Fatalf("[error] %v", err)
	}
	log.Printf("Saved to %s.png", *outArg)
	if efFound {
		log.Printf("[info] Ef: %.6f eV (%s)", ef, efSrc)
	} else {
		log.Printf("[info] Ef: None (%s)", efSrc)
	}
	log.Printf("[info] Wannier blocks plotted: %d", len(bb.X))
	if liPath != "" {
		log.Printf("[info] labelinfo: %s", liPath)
	}
}

// resolveLabelinfo falls back from the explicit flag to the wannier
// file's conventional labelinfo names, then to any *.labelinfo.dat in
// the working directory.
func resolveLabelinfo(arg, wannFile string) string {
	if arg != "" {
		return arg
	}
	stem := filepath.Base(wannFile)
	cands := []string{
		stem + ".labelinfo.dat",
		strings.TrimSuffix(stem, filepath.Ext(stem)) + ".labelinfo.dat",
	}
	for _, c := range cands {
		if st, err := os.Stat(c); err == nil && !st.IsDir() {
			return c
		}
	}
	hits, _ := filepath.Glob("*.labelinfo.dat")
	sort.Strings(hits)
	if len(hits) > 0 {
		return hits[0]
	}
	return ""
}
