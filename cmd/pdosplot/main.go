/*
pdosplot overlays the projected DOS files a projwfc.x run leaves in a
directory. It detects the Fermi energy from the *.out files, decides
heuristically whether the energy grid still needs the E - EF shift, and
plots spin-down curves negated when the run was spin-polarized.

Usage:

	pdosplot [flags]
*/
package main

import (
	"flag"
	"log"
	"os"

	"github.com/qe-tools/qeplot"
	"github.com/qe-tools/qeplot/plots"
	"github.com/qe-tools/qeplot/qefile"
)

func main() {
	var (
		dir      = flag.String("dir", ".", "directory holding the projwfc.x output files")
		outArg   = flag.String("out", "", "output basename; default SEED_pdos_overlay")
		setFermi = flag.Float64("set-fermi", 0, "Fermi energy in eV (with -set-fermi-on); overrides detection")
		setOn    = flag.Bool("set-fermi-on", false, "use the -set-fermi value instead of scanning *.out")
		noShift  = flag.Bool("no-shift", false, "never shift the energy axis, even when EF is known")
	)
	flag.Parse()

	infos, err := qefile.ScanPDOS(*dir)
	if err != nil {
		log.Fatalf("[ERROR] %v", err)
	}
	if len(infos) == 0 {
		log.Print("[ERROR] No valid QE PDOS files found.")
		os.Exit(1)
	}
	log.Print("[INFO] Valid PDOS files found:")
	for _, info := range infos {
		log.Printf("    %s", info.Filename)
	}
	seed := infos[0].Seed
	log.Printf("[INFO] seedname detected -> %s", seed)

	hasSpin := false
	for _, info := range infos {
		if info.Spin != "" {
			hasSpin = true
			break
		}
	}
	if hasSpin {
		log.Print("[INFO] Spin-resolved PDOS detected (up/down).")
	} else {
		log.Print("[INFO] No spin-resolved suffix found -> treating as non-spin PDOS.")
	}

	var efPtr *float64
	if *setOn {
		efPtr = setFermi
	}
	ef, efFound, src := qeplot.ResolveFermi(efPtr, "", false, *dir)
	if efFound {
		log.Printf("[INFO] Fermi energy: EF = %.6f eV (%s)", ef, src)
	} else {
		log.Printf("[WARN] Could not detect Fermi energy (%s). No shift will be applied.", src)
	}

	//one representative file decides the shift for the whole overlay
	applyShift := false
	if efFound && !*noShift {
		rep, err := qefile.ReadPDOS(*dir, infos[0])
		if err != nil {
			log.Printf("[WARN] Failed to parse representative PDOS file %s: %v", infos[0].Filename, err)
			applyShift = true
		} else {
			applyShift = qeplot.ShouldShiftFermi(rep.Energy)
		}
		if applyShift {
			log.Print("[INFO] Applying E -> E - EF shift.")
		} else {
			log.Print("[INFO] PDOS appears EF-centered already -> no shift applied.")
		}
	}

	var series []*plots.PDOSSeries
	for _, info := range infos {
		if hasSpin && info.Spin == "" {
			continue //mixing spinless curves into a polarized overlay misleads
		}
		curve, err := qefile.ReadPDOS(*dir, info)
		if err != nil {
			log.Printf("[ERROR] Failed reading PDOS file %s: %v", info.Filename, err)
			continue
		}
		e := curve.Energy
		if applyShift {
			e = make([]float64, len(curve.Energy))
			for i, v := range curve.Energy {
				e[i] = v - ef
			}
		}
		series = append(series, &plots.PDOSSeries{
			Label:    info.Label(),
			Energy:   e,
			DOS:      curve.DOS,
			SpinDown: info.Spin == "down",
		})
	}
	if len(series) == 0 {
		log.Fatal("[ERROR] No readable PDOS curves.")
	}

	p, err := plots.PDOSOverlay(series, efFound && applyShift, "QE PDOS overlay: "+seed)
	if err != nil {
		log.Fatalf("[ERROR] %v", err)
	}
	if hasSpin {
		p.Y.Label.Text = "DOS (arb. units, spin down plotted negative)"
	}
	outBase := *outArg
	if outBase == "" {
		outBase = seed + "_pdos_overlay"
	}
	if err := plots.Save(p, outBase); err != nil {
		log.Fatalf("[ERROR] %v", err)
	}
	log.Printf("[OK] Saved overlay plot -> %s.png", outBase)
}
