package qeplot

//This provides conversion factors for the frequency/energy axes of
//phonon and electron-phonon spectra, plus the conversion helpers built
//on them. The factors match the ones used by QE's own tooling.

//Conversions
const (
	MeV2THz   = 1 / 4.135667
	THz2MeV   = 4.135667
	MeV2Cm1   = 8.065544
	Cm12MeV   = 1 / 8.065544
	Cm1PerTHz = 33.356
	Cm1PerMeV = 8.066 //slightly coarser factor kept for dispersion plots
)

// An OmegaUnit selects the output unit of a frequency/energy axis.
type OmegaUnit string

const (
	MeV OmegaUnit = "meV"
	THz OmegaUnit = "THz"
	Cm1 OmegaUnit = "cm-1"
)

// ParseOmegaUnit returns the OmegaUnit named by s, or an error if s
// names no known unit. Matching is exact, not case-folded, as the unit
// strings double as axis labels.
func ParseOmegaUnit(s string) (OmegaUnit, error) {
	switch OmegaUnit(s) {
	case MeV, THz, Cm1:
		return OmegaUnit(s), nil
	}
	return "", newError("qeplot.ParseOmegaUnit: Unknown omega unit: %s", s)
}

// OmegaFromMeV converts a frequency axis given in meV to the requested
// unit. It returns a fresh slice and the axis label for the unit.
func OmegaFromMeV(w []float64, unit OmegaUnit) ([]float64, string, error) {
	out := make([]float64, len(w))
	var f float64
	var label string
	switch unit {
	case MeV:
		f, label = 1, "meV"
	case THz:
		f, label = MeV2THz, "THz"
	case Cm1:
		f, label = MeV2Cm1, "cm^-1"
	default:
		return nil, "", newError("qeplot.OmegaFromMeV: Unknown omega unit: %s", unit)
	}
	for i, v := range w {
		out[i] = v * f
	}
	return out, label, nil
}

// OmegaFromCm1 converts a frequency axis given in cm^-1 to the requested
// unit. It returns a fresh slice and the axis label for the unit.
func OmegaFromCm1(w []float64, unit OmegaUnit) ([]float64, string, error) {
	out := make([]float64, len(w))
	var f float64
	var label string
	switch unit {
	case Cm1:
		f, label = 1, "Frequency (cm^-1)"
	case THz:
		f, label = 1/Cm1PerTHz, "Frequency (THz)"
	case MeV:
		f, label = 1/Cm1PerMeV, "Energy (meV)"
	default:
		return nil, "", newError("qeplot.OmegaFromCm1: Unknown omega unit: %s", unit)
	}
	for i, v := range w {
		out[i] = v * f
	}
	return out, label, nil
}
