package qeplot

import (
	"math"
	"testing"
)

func TestOmegaFromMeV(Te *testing.T) {
	w := []float64{0, 4.135667, 10}
	out, label, err := OmegaFromMeV(w, THz)
	if err != nil {
		Te.Fatal(err)
	}
	if label != "THz" {
		Te.Errorf("wrong axis label: %s", label)
	}
	if math.Abs(out[1]-1.0) > 1e-12 {
		Te.Errorf("4.135667 meV should be 1 THz, got %v", out[1])
	}
	if w[1] != 4.135667 {
		Te.Error("input slice was mutated")
	}
	same, _, err := OmegaFromMeV(w, MeV)
	if err != nil {
		Te.Fatal(err)
	}
	if same[2] != 10 {
		Te.Errorf("meV to meV should be identity, got %v", same[2])
	}
	if _, _, err := OmegaFromMeV(w, OmegaUnit("furlongs")); err == nil {
		Te.Error("expected an error for an unknown unit")
	}
}

func TestOmegaFromCm1(Te *testing.T) {
	w := []float64{Cm1PerTHz}
	out, label, err := OmegaFromCm1(w, THz)
	if err != nil {
		Te.Fatal(err)
	}
	if math.Abs(out[0]-1.0) > 1e-12 {
		Te.Errorf("33.356 cm^-1 should be 1 THz, got %v", out[0])
	}
	if label != "Frequency (THz)" {
		Te.Errorf("wrong axis label: %s", label)
	}
}

func TestParseOmegaUnit(Te *testing.T) {
	for _, s := range []string{"meV", "THz", "cm-1"} {
		if _, err := ParseOmegaUnit(s); err != nil {
			Te.Errorf("%s should parse: %v", s, err)
		}
	}
	_, err := ParseOmegaUnit("mev") //case matters, the strings double as labels
	if err == nil {
		Te.Error("lowercase unit should not parse")
	}
	qerr, ok := err.(Error)
	if !ok {
		Te.Fatalf("expected a qeplot.Error, got %T", err)
	}
	deco := qerr.Decorate("while testing")
	if len(deco) != 1 {
		Te.Errorf("Decorate should accumulate: %v", deco)
	}
}
