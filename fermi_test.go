package qeplot

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

func writeOut(Te *testing.T, dir, name, content string) string {
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		Te.Fatal(err)
	}
	return path
}

const scfTail = `     highest occupied level (ev):     6.2915
     the Fermi energy is     5.1234 eV
     convergence has been achieved
     the Fermi energy is     5.9876 eV
`

func TestParseFermi(Te *testing.T) {
	dir := Te.TempDir()
	path := writeOut(Te, dir, "scf.out", scfTail)
	ef, ok := ParseFermi(path)
	if !ok {
		Te.Fatal("Fermi energy not found")
	}
	if ef != 5.9876 {
		Te.Errorf("last occurrence should win, got %v", ef)
	}
	empty := writeOut(Te, dir, "empty.out", "no fermi here\n")
	if _, ok := ParseFermi(empty); ok {
		Te.Error("false positive on a file without the printout")
	}
	if _, ok := ParseFermi(filepath.Join(dir, "missing.out")); ok {
		Te.Error("missing file should report not-found, not panic")
	}
}

func TestDetectAndResolveFermi(Te *testing.T) {
	dir := Te.TempDir()
	writeOut(Te, dir, "a_scf.out", "the Fermi energy is 1.0 eV\n")
	writeOut(Te, dir, "b_nscf.out", "the Fermi energy is 2.0 eV\n")

	if ef, ok := DetectFermi(dir); !ok || ef != 2.0 {
		Te.Errorf("DetectFermi: got %v %v", ef, ok)
	}
	if out := FindFermiOut(dir); filepath.Base(out) != "b_nscf.out" {
		Te.Errorf("nscf output should take priority, got %s", out)
	}

	set := 7.5
	ef, ok, src := ResolveFermi(&set, "", false, dir)
	if !ok || ef != 7.5 || src != "manual(-set-fermi)" {
		Te.Errorf("manual value should win: %v %v %s", ef, ok, src)
	}
	ef, ok, src = ResolveFermi(nil, "", false, dir)
	if !ok || ef != 2.0 {
		Te.Errorf("auto search failed: %v %v %s", ef, ok, src)
	}
	fmt.Println("auto source tag:", src)
	if _, ok, src := ResolveFermi(nil, "", true, dir); ok || src != "disabled(-no-fermi-search)" {
		Te.Errorf("search should be disabled: %v %s", ok, src)
	}
	from := filepath.Join(dir, "a_scf.out")
	if ef, ok, _ := ResolveFermi(nil, from, false, dir); !ok || ef != 1.0 {
		Te.Errorf("named file should be used: %v %v", ef, ok)
	}
}

func TestShouldShiftFermi(Te *testing.T) {
	if ShouldShiftFermi([]float64{-5, -4.9, 4.8, 5}) {
		Te.Error("balanced grid around zero is already shifted")
	}
	if !ShouldShiftFermi([]float64{0, 1, 2, 12}) {
		Te.Error("all-positive grid still needs the shift")
	}
	if !ShouldShiftFermi([]float64{-0.1, 10, 11, 12}) {
		Te.Error("lopsided grid still needs the shift")
	}
	if !ShouldShiftFermi(nil) {
		Te.Error("an empty grid defaults to shifting")
	}
}
