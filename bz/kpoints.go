package bz

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// A Mode selects how raw k-point coordinates are interpreted.
type Mode string

const (
	//Auto guesses between Crystal and Cartesian from the magnitude of
	//the coordinates (see KPointsToCart2D).
	Auto Mode = "auto"
	//Crystal means fractional coefficients along (b1, b2, b3).
	Crystal Mode = "crystal"
	//Cartesian means the coordinates are already Cartesian in the
	//frame of the basis.
	Cartesian Mode = "cartesian"
)

// ParseMode returns the Mode named by s. "cart" is accepted as an
// alias for "cartesian", matching what QE users tend to type.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "auto":
		return Auto, nil
	case "crystal":
		return Crystal, nil
	case "cartesian", "cart":
		return Cartesian, nil
	}
	return "", newError(BadShape, "unknown k-point mode: %q", s)
}

// autoThreshold separates fractional from Cartesian coordinates in
// Auto mode. Fractional reciprocal coordinates conventionally lie in
// [-1, 1] or close to it; Cartesian ones are typically larger. The
// value is a heuristic tie-breaker, approximate by construction; use an
// explicit Mode if it misclassifies a grid.
const autoThreshold = 1.2

// KPointsToCart2D maps k-point samples to 2D Cartesian points for
// overlay plotting. Each k-point must have at least 3 components and
// basis must be the 3x3 matrix whose rows are the reciprocal lattice
// vectors (b1; b2; b3); anything else fails with a BadShape error.
//
// In Crystal mode each k-point is read as fractional coefficients
// (k1, k2, k3) along the basis rows: k_cart = k1*b1 + k2*b2 + k3*b3,
// keeping the first two components. In Cartesian mode the first two
// components pass through unchanged. Auto inspects the largest absolute
// component over all k-points and picks Crystal when it is <= 1.2,
// Cartesian otherwise.
//
// The result has the same order and count as the input.
func KPointsToCart2D(kpoints [][]float64, basis *mat.Dense, mode Mode) ([]Vec, error) {
	if basis == nil {
		return nil, newError(BadShape, "nil basis matrix")
	}
	if r, c := basis.Dims(); r != 3 || c != 3 {
		return nil, newError(BadShape, "basis must be 3x3, got %dx%d", r, c)
	}
	for i, k := range kpoints {
		if len(k) < 3 {
			return nil, newError(BadShape, "k-point %d has %d components, need 3", i, len(k))
		}
	}
	use := mode
	if mode == Auto {
		use = Cartesian
		if maxAbsComponent(kpoints) <= autoThreshold {
			use = Crystal
		}
	}
	out := make([]Vec, len(kpoints))
	switch use {
	case Cartesian:
		for i, k := range kpoints {
			out[i] = Vec{X: k[0], Y: k[1]}
		}
	case Crystal:
		for i, k := range kpoints {
			out[i] = Vec{
				X: k[0]*basis.At(0, 0) + k[1]*basis.At(1, 0) + k[2]*basis.At(2, 0),
				Y: k[0]*basis.At(0, 1) + k[1]*basis.At(1, 1) + k[2]*basis.At(2, 1),
			}
		}
	default:
		return nil, newError(BadShape, "unknown k-point mode: %q", mode)
	}
	return out, nil
}

// maxAbsComponent returns the largest |component| over the first three
// components of every k-point, ignoring NaNs.
func maxAbsComponent(kpoints [][]float64) float64 {
	var m float64
	for _, k := range kpoints {
		for _, v := range k[:3] {
			if math.IsNaN(v) {
				continue
			}
			if a := math.Abs(v); a > m {
				m = a
			}
		}
	}
	return m
}
