package qeplot

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
)

//Fermi-energy handling. QE prints the Fermi level to its standard
//output ("the Fermi energy is   X eV"), so the tools scrape it from
//whatever *.out files the run left behind. Everything here is
//best-effort: a missing Fermi energy disables the shift, it never
//aborts a plot.

var fermiRe = regexp.MustCompile(`(?i)the\s+Fermi\s+energy\s+is\s+([-+]?\d*\.?\d+(?:[Ee][-+]?\d+)?)\s*eV`)

// ParseFermi scans a QE output file for the Fermi energy printout and
// returns the last occurrence in eV. ok is false if no match was found
// or the file could not be read.
func ParseFermi(path string) (ef float64, ok bool) {
	f, err := os.Open(path)
	if err != nil {
		return 0, false
	}
	defer f.Close()
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024)
	for scanner.Scan() {
		m := fermiRe.FindStringSubmatch(scanner.Text())
		if m == nil {
			continue
		}
		v, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			continue
		}
		ef = v
		ok = true
	}
	return ef, ok
}

// DetectFermi scans every *.out file in dir for a Fermi energy and
// returns the last one found. Multiple outputs usually mean re-runs,
// so the last occurrence is the most recent value.
func DetectFermi(dir string) (float64, bool) {
	names, err := filepath.Glob(filepath.Join(dir, "*.out"))
	if err != nil {
		return 0, false
	}
	sort.Strings(names)
	var ef float64
	var found bool
	for _, name := range names {
		if v, ok := ParseFermi(name); ok {
			ef = v
			found = true
		}
	}
	return ef, found
}

// FindFermiOut returns the first *nscf*.out file in dir, falling back
// to *scf*.out, or "" if neither exists. nscf runs carry the Fermi
// level matching the dense k-grid, so they take priority.
func FindFermiOut(dir string) string {
	for _, pat := range []string{"*nscf*.out", "*scf*.out"} {
		cands, err := filepath.Glob(filepath.Join(dir, pat))
		if err != nil || len(cands) == 0 {
			continue
		}
		sort.Strings(cands)
		return cands[0]
	}
	return ""
}

// ResolveFermi resolves the Fermi energy with priority: an explicitly
// set value, then a user-named output file, then an automatic search of
// dir (unless disabled). It returns the energy, whether one was found,
// and a short tag describing the source for logging.
func ResolveFermi(set *float64, from string, noSearch bool, dir string) (float64, bool, string) {
	if set != nil {
		return *set, true, "manual(-set-fermi)"
	}
	if from != "" {
		ef, ok := ParseFermi(from)
		if !ok {
			return 0, false, fmt.Sprintf("fermi-from(%s, no-match)", filepath.Base(from))
		}
		return ef, true, fmt.Sprintf("fermi-from(%s)", filepath.Base(from))
	}
	if noSearch {
		return 0, false, "disabled(-no-fermi-search)"
	}
	out := FindFermiOut(dir)
	if out == "" {
		return 0, false, "auto(no scf/nscf out found)"
	}
	ef, ok := ParseFermi(out)
	if !ok {
		return 0, false, fmt.Sprintf("auto(%s, no-match)", filepath.Base(out))
	}
	return ef, true, fmt.Sprintf("auto(%s)", filepath.Base(out))
}

// ShouldShiftFermi decides whether an energy grid still needs the
// E -> E - Ef shift. If the grid already spans both signs and is
// roughly balanced around zero (span ratio below 3) it is taken as
// EF-centered and left alone. This is explicitly a guess; callers
// should let users override it.
func ShouldShiftFermi(energies []float64) bool {
	if len(energies) == 0 {
		return true
	}
	min, max := energies[0], energies[0]
	for _, v := range energies[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	if min < 0 && 0 < max {
		left, right := -min, max
		if left > 1e-6 && right > 1e-6 {
			ratio := left / right
			if ratio < 1 {
				ratio = 1 / ratio
			}
			if ratio < 3.0 {
				return false
			}
		}
	}
	return true
}
