package phlink

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"testing"
)

func touch(Te *testing.T, path, content string) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		Te.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		Te.Fatal(err)
	}
}

func TestSafeSymlink(Te *testing.T) {
	dir := Te.TempDir()
	src := filepath.Join(dir, "source.dat")
	touch(Te, src, "data")
	dst := filepath.Join(dir, "links", "dest.dat")

	res, err := SafeSymlink(src, dst)
	if err != nil {
		Te.Fatal(err)
	}
	if res != Linked {
		Te.Fatalf("first link: got %v", res)
	}
	//second run is a no-op
	res, err = SafeSymlink(src, dst)
	if err != nil {
		Te.Fatal(err)
	}
	if res != SkipSame {
		Te.Errorf("relink to same target: got %v", res)
	}
	//a stale link pointing elsewhere gets replaced
	other := filepath.Join(dir, "other.dat")
	touch(Te, other, "other")
	stale := filepath.Join(dir, "links", "stale.dat")
	if err := os.Symlink(other, stale); err != nil {
		Te.Fatal(err)
	}
	res, err = SafeSymlink(src, stale)
	if err != nil {
		Te.Fatal(err)
	}
	if res != Linked {
		Te.Errorf("stale link should be replaced: got %v", res)
	}
	if target, _ := filepath.EvalSymlinks(stale); target != src {
		Te.Errorf("stale link now points at %s", target)
	}
}

func TestSafeSymlinkKeepsRegularFiles(Te *testing.T) {
	dir := Te.TempDir()
	src := filepath.Join(dir, "source.dat")
	precious := filepath.Join(dir, "precious.dat")
	touch(Te, src, "data")
	touch(Te, precious, "do not lose this")

	res, err := SafeSymlink(src, precious)
	if err != nil {
		Te.Fatal(err)
	}
	if res != SkipRegular {
		Te.Fatalf("regular file must be kept: got %v", res)
	}
	content, err := os.ReadFile(precious)
	if err != nil || string(content) != "do not lose this" {
		Te.Error("regular file was modified")
	}
	//linking a file onto itself is refused
	res, err = SafeSymlink(src, src)
	if err != nil {
		Te.Fatal(err)
	}
	if res != SkipRegular && res != SkipSelf {
		Te.Errorf("self-link not refused: got %v", res)
	}
}

func TestParseDvscfName(Te *testing.T) {
	sources := dvscfSourceRes("si")
	exclude := excludeRe("si")
	cases := []struct {
		name      string
		iq, ipert int
		ok        bool
	}{
		{"si.dvscf1_3", 1, 3, true},
		{"si.si.dvscf2_1", 2, 1, true},
		{"si.dvscf4", 4, 1, true},
		{"si.si.dvscf7", 7, 1, true},
		{"si.dvscf1_1", 0, 0, false}, //normalized destination name
		{"si.dvscf_q3", 0, 0, false}, //normalized destination name
		{"si.dyn3", 0, 0, false},
		{"other.dvscf1_2", 0, 0, false},
	}
	for _, c := range cases {
		iq, ipert, ok := parseDvscfName("si", c.name, sources, exclude)
		if ok != c.ok || iq != c.iq || ipert != c.ipert {
			Te.Errorf("%s: got iq=%d ipert=%d ok=%v", c.name, iq, ipert, ok)
		}
	}
}

func TestFindDvscfPrefersIpertOne(Te *testing.T) {
	dir := Te.TempDir()
	touch(Te, filepath.Join(dir, "ph0", "si.dvscf1_3"), "x")
	touch(Te, filepath.Join(dir, "ph0", "si.dvscf1_2"), "x")
	touch(Te, filepath.Join(dir, "ph0", "sub", "si.si.dvscf2_1"), "x")
	touch(Te, filepath.Join(dir, "ph0", "si.dvscf2_5"), "x")
	hits, err := FindDvscf("si", []string{filepath.Join(dir, "ph0"), filepath.Join(dir, "missing")})
	if err != nil {
		Te.Fatal(err)
	}
	if len(hits) != 2 {
		Te.Fatalf("expected 2 q-points, got %v", hits)
	}
	if hits[1].IPert != 2 {
		Te.Errorf("q1 should fall back to the smallest ipert, got %d", hits[1].IPert)
	}
	if hits[2].IPert != 1 {
		Te.Errorf("q2 should prefer ipert 1, got %d", hits[2].IPert)
	}
}

func TestLink(Te *testing.T) {
	run := Te.TempDir()
	touch(Te, filepath.Join(run, "si.dyn1"), "dyn")
	touch(Te, filepath.Join(run, "si.dyn2"), "dyn")
	touch(Te, filepath.Join(run, "si.dyn0"), "header file") //dyn0 is metadata, matches the pattern too
	touch(Te, filepath.Join(run, "tmp", "_ph0", "si.dvscf1_1x"), "not a source")
	touch(Te, filepath.Join(run, "tmp", "_ph0", "si.dvscf1"), "pot")
	touch(Te, filepath.Join(run, "tmp", "_ph0", "si.q_2", "si.si.dvscf2_1"), "pot")
	dvscfDir := filepath.Join(run, "epw", "save")

	logger := log.New(os.Stdout, "", 0)
	if err := Link("si", run, dvscfDir, logger); err != nil {
		Te.Fatal(err)
	}
	for _, name := range []string{
		"si.dyn_q1", "si.dyn_q2",
		"si.dvscf1_1", "si.dvscf_q1",
		"si.dvscf2_1", "si.dvscf_q2",
	} {
		path := filepath.Join(dvscfDir, name)
		if fi, err := os.Lstat(path); err != nil || fi.Mode()&os.ModeSymlink == 0 {
			Te.Errorf("%s missing or not a symlink", name)
		}
	}
	//second run must be a clean no-op
	if err := Link("si", run, dvscfDir, nil); err != nil {
		Te.Fatal(err)
	}
	fmt.Println("relink was idempotent")
}

func TestLinkNoSources(Te *testing.T) {
	run := Te.TempDir()
	if err := Link("si", run, filepath.Join(run, "save"), nil); err == nil {
		Te.Error("expected an error with no dyn files at all")
	}
	touch(Te, filepath.Join(run, "si.dyn1"), "dyn")
	if err := Link("si", run, filepath.Join(run, "save"), nil); err == nil {
		Te.Error("expected an error with no dvscf sources")
	}
}
