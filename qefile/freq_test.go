package qefile

import (
	"fmt"
	"testing"
)

func TestReadFreqGP(Te *testing.T) {
	dir := Te.TempDir()
	content := "0.0000  0.0  0.0  0.0\n0.1000  10.0 20.0 30.0\n0.2000  15.0 25.0 35.0\n"
	path := writeFile(Te, dir, "si.freq.gp", content)
	d, err := ReadFreqGP(path)
	if err != nil {
		Te.Fatal(err)
	}
	if d.NBranches() != 3 || len(d.Q) != 3 {
		Te.Fatalf("wrong shape: %d branches over %d q", d.NBranches(), len(d.Q))
	}
	b := d.Branch(1)
	if b[0] != 0 || b[2] != 25.0 {
		Te.Errorf("branch extraction wrong: %v", b)
	}
}

func TestReadFreqRaw(Te *testing.T) {
	dir := Te.TempDir()
	content := " &plot nbnd=   3, nks=     2 /\n" +
		"   0.000000  0.000000  0.000000\n" +
		"   0.0000    0.0000\n" +
		"   0.0000\n" +
		"   0.500000  0.000000  0.000000\n" +
		"  10.0  20.0  30.0\n"
	path := writeFile(Te, dir, "si.freq", content)
	d, err := ReadFreqRaw(path)
	if err != nil {
		Te.Fatal(err)
	}
	fmt.Println("raw freq:", d.NBranches(), "branches over", len(d.Q), "q-points")
	if len(d.Q) != 2 || d.NBranches() != 3 {
		Te.Fatalf("wrong shape")
	}
	if d.Q[1] != 1 {
		Te.Errorf("raw format should use the q index as path coordinate: %v", d.Q)
	}
	if d.Freqs[1][2] != 30.0 {
		Te.Errorf("branch values misread: %v", d.Freqs)
	}
}

func TestReadDispersionDispatch(Te *testing.T) {
	dir := Te.TempDir()
	gp := writeFile(Te, dir, "a.freq.gp", "0.0 1.0\n1.0 2.0\n")
	raw := writeFile(Te, dir, "a.freq", " &plot nbnd= 1, nks= 1 /\n0 0 0\n5.0\n")
	plain := writeFile(Te, dir, "a.dat", "0.0 1.0\n1.0 2.0\n")
	for _, path := range []string{gp, raw, plain} {
		d, err := ReadDispersion(path)
		if err != nil {
			Te.Fatalf("%s: %v", path, err)
		}
		if d.NBranches() < 1 {
			Te.Errorf("%s: no branches", path)
		}
	}
}

func TestResolveFreqFile(Te *testing.T) {
	dir := Te.TempDir()
	direct := writeFile(Te, dir, "whatever.txt", "0 1\n")
	if path, prefix, err := ResolveFreqFile(direct); err != nil || path != direct || prefix != "" {
		Te.Errorf("direct file should resolve to itself: %s %s %v", path, prefix, err)
	}
	writeFile(Te, dir, "si_phband.freq.gp", "0 1\n")
	path, prefix, err := ResolveFreqFile(dir + "/si")
	if err != nil {
		Te.Fatal(err)
	}
	if prefix != dir+"/si" || path != dir+"/si_phband.freq.gp" {
		Te.Errorf("prefix resolution wrong: %s %s", path, prefix)
	}
	if _, _, err := ResolveFreqFile(dir + "/nothing"); err == nil {
		Te.Error("expected an error when no candidate file exists")
	}
}

func TestReadDOSSorted(Te *testing.T) {
	dir := Te.TempDir()
	path := writeFile(Te, dir, "si_phdos", "30.0 0.3\n10.0 0.1\n20.0 0.2\n")
	c, err := ReadDOS(path)
	if err != nil {
		Te.Fatal(err)
	}
	if c.Freq[0] != 10.0 || c.Freq[2] != 30.0 || c.DOS[0] != 0.1 {
		Te.Errorf("DOS not sorted by frequency: %v %v", c.Freq, c.DOS)
	}
	if got := ResolveDOSFile(dir + "/si"); got != path {
		Te.Errorf("DOS file resolution wrong: %s", got)
	}
}
