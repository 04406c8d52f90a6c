/*
Package bz constructs 2D first Brillouin zones as Wigner-Seitz cells of
a reciprocal lattice, and maps k-point samples into the same Cartesian
frame so both can be drawn on one figure.

The construction is the textbook one: start from a bounding square much
larger than the cell, then for every nearby reciprocal lattice point G
clip away the half-plane of points closer to G than to the origin. What
survives is the set of points closer to the origin than to any other
lattice point, i.e. the first Brillouin zone. The result is meant for
overlay plotting, so it is accurate to a pixel-scale numerical tolerance
rather than to crystallographic precision.

Everything here is a pure function over its inputs. Each call allocates
its own polygon data and touches no package state, so concurrent use
needs no coordination.
*/
package bz

import (
	"math"

	"github.com/quasilyte/gmath"
)

// Vec is a 2D vector in the Cartesian frame of the reciprocal lattice.
type Vec = gmath.Vec

// Polygon is an ordered sequence of vertices, counter-clockwise,
// representing a convex region. Construction returns a fresh Polygon
// on every call and never mutates one after returning it.
type Polygon []Vec

const (
	//DefaultNeighborRange is the number of reciprocal-lattice shells
	//considered when building candidate boundary half-planes. 2 is
	//enough for all common cells; raise it only for low-symmetry
	//lattices whose Wigner-Seitz cell touches farther neighbors.
	DefaultNeighborRange = 2
	//DefaultEps is the tolerance used for half-plane boundary
	//inclusion and near-parallel edge detection.
	DefaultEps = 1e-12
	//dedupTol is the distance under which two consecutive vertices
	//count as the same point. Pixel-scale for overlay plotting.
	dedupTol = 1e-9
)

// CandidateVectors generates every integer combination m*b1 + n*b2 for
// m, n in [-n, n], excluding the zero vector. Duplicates from different
// (m, n) pairs landing on the same point are kept; clipping by a
// redundant half-plane is a no-op. The order is deterministic
// (generation order) so downstream floating-point results are
// reproducible.
func CandidateVectors(b1, b2 Vec, n int) ([]Vec, error) {
	var gs []Vec
	for m := -n; m <= n; m++ {
		for k := -n; k <= n; k++ {
			if m == 0 && k == 0 {
				continue
			}
			g := b1.Mulf(float64(m)).Add(b2.Mulf(float64(k)))
			if g.Len() > 0 {
				gs = append(gs, g)
			}
		}
	}
	if len(gs) == 0 {
		return nil, newError(DegenerateLattice, "no neighbor G vectors generated from b1=%v b2=%v N=%d", b1, b2, n)
	}
	return gs, nil
}

// ClipHalfPlane clips a convex polygon by the half-plane normal·x <= offset,
// keeping the inside portion. This is a single Sutherland-Hodgman step.
//
// The input polygon must be ordered CCW; the emitted vertices keep that
// ordering (no re-sorting happens). An empty input returns empty
// without touching the half-plane test. The returned polygon is always
// a fresh slice; the input is never modified.
//
// The clip is idempotent per half-plane: clipping twice by the same
// (normal, offset) returns the same vertex set as clipping once.
func ClipHalfPlane(poly Polygon, normal Vec, offset, eps float64) Polygon {
	if len(poly) == 0 {
		return Polygon{}
	}
	inside := func(p Vec) bool {
		return normal.Dot(p) <= offset+eps
	}
	//Intersection of the edge p1->p2 with the boundary line. For
	//near-parallel edges (|normal·d| within eps) the edge is treated
	//as not crossing and p1 is returned, so no division blows up.
	intersect := func(p1, p2 Vec) Vec {
		d := p2.Sub(p1)
		denom := normal.Dot(d)
		if math.Abs(denom) < eps {
			return p1
		}
		t := (offset - normal.Dot(p1)) / denom
		if t < 0 {
			t = 0
		} else if t > 1 {
			t = 1
		}
		return p1.Add(d.Mulf(t))
	}
	out := make(Polygon, 0, len(poly)+1)
	prev := poly[len(poly)-1]
	prevIn := inside(prev)
	for _, cur := range poly {
		curIn := inside(cur)
		if curIn {
			if !prevIn {
				out = append(out, intersect(prev, cur))
			}
			out = append(out, cur)
		} else if prevIn {
			out = append(out, intersect(prev, cur))
		}
		prev, prevIn = cur, curIn
	}
	return out
}

// FirstBZ computes the first Brillouin zone of the 2D reciprocal
// lattice generated by b1 and b2, as a CCW convex polygon. n is the
// neighbor shell range (DefaultNeighborRange when in doubt).
//
// For each nearby reciprocal lattice point G != 0 the polygon is
// clipped by x·G <= |G|^2/2, which keeps the points closer to the
// origin than to G. The initial bounding square uses R = 2.5*max|G|,
// generously larger than any cell the candidates can bound, so no true
// boundary is pre-clipped.
//
// The true BZ of a valid basis is never empty, so a polygon that
// empties mid-loop, or ends with fewer than 3 vertices, fails with a
// DegeneratePolygon error.
func FirstBZ(b1, b2 Vec, n int) (Polygon, error) {
	gs, err := CandidateVectors(b1, b2, n)
	if err != nil {
		return nil, errDecorate(err, "FirstBZ")
	}
	var rmax float64
	for _, g := range gs {
		if l := g.Len(); l > rmax {
			rmax = l
		}
	}
	r := 2.5 * rmax
	poly := Polygon{{X: -r, Y: -r}, {X: r, Y: -r}, {X: r, Y: r}, {X: -r, Y: r}}
	for _, g := range gs {
		c := 0.5 * g.Dot(g)
		poly = ClipHalfPlane(poly, g, c, DefaultEps)
		if len(poly) == 0 {
			return nil, newError(DegeneratePolygon, "clipping by G=%v emptied the polygon", g)
		}
	}
	poly = dedupConsecutive(poly, dedupTol)
	if len(poly) < 3 {
		return nil, newError(DegeneratePolygon, "clipping left only %d vertices", len(poly))
	}
	return poly, nil
}

// dedupConsecutive drops vertices coincident (within tol) with their
// predecessor, treating the polygon as closed: a last vertex coincident
// with the first is dropped too. A boundary line passing exactly
// through a corner makes ClipHalfPlane emit the intersection point on
// top of the kept corner; those zero-length edges are removed here.
func dedupConsecutive(poly Polygon, tol float64) Polygon {
	out := make(Polygon, 0, len(poly))
	for _, v := range poly {
		if len(out) > 0 && v.Sub(out[len(out)-1]).Len() < tol {
			continue
		}
		out = append(out, v)
	}
	for len(out) > 1 && out[len(out)-1].Sub(out[0]).Len() < tol {
		out = out[:len(out)-1]
	}
	return out
}

// Area returns the area of the polygon by the shoelace formula. The
// result is positive for CCW ordering, negative for CW, zero for fewer
// than 3 vertices.
func (p Polygon) Area() float64 {
	if len(p) < 3 {
		return 0
	}
	var sum float64
	prev := p[len(p)-1]
	for _, cur := range p {
		sum += prev.X*cur.Y - cur.X*prev.Y
		prev = cur
	}
	return 0.5 * sum
}

// IsCCW reports whether the polygon is counter-clockwise ordered.
func (p Polygon) IsCCW() bool {
	return p.Area() > 0
}

// Closed returns the polygon with the first vertex appended at the end,
// ready to be drawn as a closed boundary line.
func (p Polygon) Closed() Polygon {
	if len(p) == 0 {
		return Polygon{}
	}
	out := make(Polygon, len(p)+1)
	copy(out, p)
	out[len(p)] = p[0]
	return out
}

// errDecorate asserts that the error is a bz Error and decorates it
// with the caller's name before returning it.
func errDecorate(err error, caller string) error {
	err2 := err.(*Error)
	err2.Decorate(caller)
	return err2
}
