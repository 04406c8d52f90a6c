package bz

import "fmt"

//Errors

// ErrKind classifies bz errors so callers can branch on the failure
// without string matching.
type ErrKind int

const (
	//DegenerateLattice means the basis vectors produce no usable
	//non-zero lattice neighbor (zero or parallel vectors, or N < 1).
	DegenerateLattice ErrKind = iota + 1
	//DegeneratePolygon means clipping collapsed the region to empty or
	//fewer than 3 vertices.
	DegeneratePolygon
	//BadShape means input array dimensions violate the documented
	//contract (k-points not 3-wide, basis not 3x3).
	BadShape
)

func (k ErrKind) String() string {
	switch k {
	case DegenerateLattice:
		return "degenerate lattice"
	case DegeneratePolygon:
		return "degenerate polygon"
	case BadShape:
		return "bad shape"
	}
	return "unknown"
}

// Error is the error type for the bz package. It fulfills qeplot.Error.
type Error struct {
	kind    ErrKind
	message string
	deco    []string
}

func (err *Error) Error() string {
	return fmt.Sprintf("%s: %s", err.kind, err.message)
}

// Kind returns the classification of the error.
func (err *Error) Kind() ErrKind { return err.kind }

// Decorate adds new information to the error
func (err *Error) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

func newError(kind ErrKind, format string, a ...interface{}) *Error {
	return &Error{kind: kind, message: fmt.Sprintf(format, a...)}
}

// KindOf returns the ErrKind of err if it is a bz error, and 0 otherwise.
func KindOf(err error) ErrKind {
	if e, ok := err.(*Error); ok {
		return e.kind
	}
	return 0
}
