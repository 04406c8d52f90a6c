/*
phdisp plots a Quantum ESPRESSO phonon dispersion, with a DOS side
panel at 5:1 width when a DOS file is available. The -freq argument is
either a concrete file or a calculation PREFIX; in the latter case the
usual matdyn.x filenames are tried and the DOS and q-path files are
auto-detected too. A missing DOS or q-path never aborts: the figure
degrades to dispersion-only or unlabeled ticks.

Usage:

	phdisp -freq PREFIX|FILE [flags]
*/
package main

import (
	"flag"
	"log"
	"os"
	"strings"

	"github.com/qe-tools/qeplot"
	"github.com/qe-tools/qeplot/plots"
	"github.com/qe-tools/qeplot/qefile"
)

func main() {
	var (
		freqArg  = flag.String("freq", "", "dispersion file (.freq.gp or raw .freq) or calculation PREFIX")
		dosArg   = flag.String("dos", "", "phonon DOS file (freq(cm^-1) DOS); auto-detected from PREFIX when empty")
		qpathArg = flag.String("qpath", "", "q-path file (band form) for high-symmetry labels; default ./qpath.in if present")
		outArg   = flag.String("out", "phonon_dispersion", "output basename; .png and .pdf are both written")
		emin     = flag.Float64("emin", 0, "y-axis minimum (with -limits)")
		emax     = flag.Float64("emax", 0, "y-axis maximum (with -limits)")
		limits   = flag.Bool("limits", false, "apply -emin/-emax to the frequency axis")
		title    = flag.String("title", "", "figure title")
		unitArg  = flag.String("unit", "meV", "frequency unit: meV, THz or cm-1")
	)
	flag.Parse()
	if *freqArg == "" {
		flag.Usage()
		os.Exit(2)
	}
	unit, err := qeplot.ParseOmegaUnit(*unitArg)
	if err != nil {
		log.Fatalf("[error] %v", err)
	}

	freqPath, prefix, err := qefile.ResolveFreqFile(*freqArg)
	if err != nil {
		log.Fatalf("[error] %v", err)
	}
	disp, err := qefile.ReadDispersion(freqPath)
	if err != nil {
		log.Fatalf("[error] %v", err)
	}

	//DOS is optional
	dosPath := *dosArg
	if dosPath == "" && prefix != "" {
		dosPath = qefile.ResolveDOSFile(prefix)
	}
	var dos *qefile.DOSCurve
	if dosPath != "" {
		if dos, err = qefile.ReadDOS(dosPath); err != nil {
			log.Printf("[WARN] failed to load DOS from %s, falling back to dispersion-only: %v", dosPath, err)
			dos = nil
		}
	} else if *dosArg != "" {
		log.Printf("[WARN] -dos given but not found, skipping DOS: %s", *dosArg)
	}

	//q-path labels are optional too
	qpathPath := *qpathArg
	if qpathPath == "" {
		if st, err := os.Stat("qpath.in"); err == nil && !st.IsDir() {
			qpathPath = "qpath.in"
		}
	} else if st, err := os.Stat(qpathPath); err != nil || st.IsDir() {
		log.Printf("[WARN] -qpath given but not found, skipping labels: %s", qpathPath)
		qpathPath = ""
	}
	var labels []string
	var tickIdx []int
	if qpathPath != "" {
		if labels, tickIdx, err = qefile.ReadQPathLabels(qpathPath, len(disp.Q)); err != nil {
			log.Printf("[WARN] failed to parse q-path labels from %s, skipping: %v", qpathPath, err)
			labels, tickIdx = nil, nil
		}
	}

	//frequencies come out of matdyn.x in cm^-1
	branches := make([][]float64, disp.NBranches())
	var ylabel string
	for j := range branches {
		branches[j], ylabel, err = qeplot.OmegaFromCm1(disp.Branch(j), unit)
		if err != nil {
			log.Fatalf("[error] %v", err)
		}
	}

	d := &plots.DispersionData{
		X:        disp.Q,
		Branches: branches,
		YLabel:   ylabel,
		Title:    *title,
	}
	if len(labels) > 0 && len(labels) == len(tickIdx) {
		for _, i := range tickIdx {
			if i >= 0 && i < len(disp.Q) {
				d.TickX = append(d.TickX, disp.Q[i])
			}
		}
		if len(d.TickX) == len(labels) {
			d.TickLabels = labels
		} else {
			d.TickX = nil
		}
	}

	outBase := sanitizeOut(*outArg)
	if *limits {
		d.YLim = []float64{*emin, *emax}
	}
	if dos != nil {
		dosFreq, _, err := qeplot.OmegaFromCm1(dos.Freq, unit)
		if err != nil {
			log.Fatalf("[error] %v", err)
		}
		err = plots.SaveDispersionDOS(d, dos.DOS, dosFreq, outBase)
		if err != nil {
			log.Fatalf("[error] %v", err)
		}
	} else {
		if err := plots.SaveDispersion(d, outBase); err != nil {
			log.Fatalf("[error] %v", err)
		}
	}
	log.Printf("[OK] Saved: %s.png", outBase)
	log.Printf("[OK] Saved: %s.pdf", outBase)

	log.Printf("[INFO] Dispersion: %s", freqPath)
	log.Printf("[INFO] DOS      : %s", orNone(dosPath))
	log.Printf("[INFO] Q-path   : %s", orNone(qpathPath))
	if prefix != "" {
		log.Printf("[INFO] PREFIX   : %s", prefix)
	}
}

// sanitizeOut strips a .png/.pdf extension off the output basename.
func sanitizeOut(out string) string {
	lower := strings.ToLower(out)
	for _, ext := range []string{".png", ".pdf"} {
		if strings.HasSuffix(lower, ext) {
			return out[:len(out)-len(ext)]
		}
	}
	return out
}

func orNone(s string) string {
	if s == "" {
		return "None"
	}
	return s
}
