package qefile

import (
	"fmt"
	"testing"
)

func TestClassifyPDOS(Te *testing.T) {
	cases := []struct {
		name  string
		kind  string
		label string
	}{
		{"tio2.pdos_tot", "tot", "Total DOS"},
		{"tio2.pdos_tot_up", "tot", "Total DOS (up)"},
		{"tio2.pdos_atm#1(Ti)_wfc#3(d)", "proj", "Ti d"},
		{"tio2.pdos_atm#2(O)_wfc#2(p)_down", "proj", "O p (down)"},
	}
	for _, c := range cases {
		info, ok := ClassifyPDOS(c.name)
		if !ok {
			Te.Errorf("%s should classify", c.name)
			continue
		}
		if info.Kind != c.kind || info.Label() != c.label {
			Te.Errorf("%s: got kind %s label %q", c.name, info.Kind, info.Label())
		}
		if info.Seed != "tio2" {
			Te.Errorf("%s: seed %q", c.name, info.Seed)
		}
	}
	for _, name := range []string{"tio2.scf.in", "tio2.pdos_atm#x(Ti)", "notes.txt"} {
		if _, ok := ClassifyPDOS(name); ok {
			Te.Errorf("%s should not classify as a pdos file", name)
		}
	}
}

func TestScanPDOS(Te *testing.T) {
	dir := Te.TempDir()
	writeFile(Te, dir, "tio2.pdos_atm#2(O)_wfc#2(p)", "-1.0 0.1 0.1\n0.0 0.2 0.2\n")
	writeFile(Te, dir, "tio2.pdos_atm#1(Ti)_wfc#3(d)", "-1.0 0.3 0.3\n0.0 0.4 0.4\n")
	writeFile(Te, dir, "tio2.pdos_tot", "-1.0 0.5 0.5\n0.0 0.6 0.6\n")
	writeFile(Te, dir, "README", "not a pdos file\n")
	infos, err := ScanPDOS(dir)
	if err != nil {
		Te.Fatal(err)
	}
	if len(infos) != 3 {
		Te.Fatalf("expected 3 pdos files, got %d", len(infos))
	}
	fmt.Println("found pdos files:")
	for _, info := range infos {
		fmt.Println("  ", info.Filename, "->", info.Label())
	}
	if infos[0].Kind != "tot" {
		Te.Error("total DOS should sort first")
	}
	if infos[1].AtomNum != 1 || infos[2].AtomNum != 2 {
		Te.Error("projections should sort by atom index")
	}
	curve, err := ReadPDOS(dir, infos[0])
	if err != nil {
		Te.Fatal(err)
	}
	if len(curve.Energy) != 2 || curve.DOS[1] != 0.6 {
		Te.Errorf("pdos curve misread: %v %v", curve.Energy, curve.DOS)
	}
}
