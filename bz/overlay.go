package bz

import "gonum.org/v1/gonum/mat"

// Overlay is the typed result of a Brillouin-zone overlay attempt. The
// plotting caller branches on OK instead of recovering errors across
// package boundaries: a failed overlay disables the boundary line only,
// the rest of the figure is unaffected.
type Overlay struct {
	Poly Polygon //the BZ boundary, CCW
	KXY  []Vec   //the k-points mapped into the same frame
	Err  error   //reason the overlay is unavailable, nil on success
}

// OK reports whether the overlay can be drawn.
func (o *Overlay) OK() bool { return o != nil && o.Err == nil }

// BuildOverlay builds the first-BZ boundary from the reciprocal basis
// rows (b1; b2; b3) and maps kpoints into the same 2D Cartesian frame.
// Only the in-plane components of b1 and b2 enter the 2D construction;
// b3 participates in the k-point transform alone.
//
// It never fails: on any error (bad basis shape, degenerate lattice,
// degenerate polygon, bad k-point shape) the returned Overlay carries
// the reason and an empty polygon.
func BuildOverlay(basis *mat.Dense, kpoints [][]float64, n int, mode Mode) *Overlay {
	if basis == nil {
		return &Overlay{Err: newError(BadShape, "nil basis matrix")}
	}
	if r, c := basis.Dims(); r != 3 || c != 3 {
		return &Overlay{Err: newError(BadShape, "basis must be 3x3, got %dx%d", r, c)}
	}
	b1 := Vec{X: basis.At(0, 0), Y: basis.At(0, 1)}
	b2 := Vec{X: basis.At(1, 0), Y: basis.At(1, 1)}
	poly, err := FirstBZ(b1, b2, n)
	if err != nil {
		return &Overlay{Err: errDecorate(err, "BuildOverlay")}
	}
	kxy, err := KPointsToCart2D(kpoints, basis, mode)
	if err != nil {
		return &Overlay{Err: errDecorate(err, "BuildOverlay")}
	}
	return &Overlay{Poly: poly, KXY: kxy}
}
