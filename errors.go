package qeplot

import "fmt"

//Errors

// Error is the interface for errors that all packages in this module implement. The Decorate
// method allows adding and retrieving info from the error without changing its type or wrapping
// it around something else.
type Error interface {
	Error() string
	Decorate(string) []string //Adds information when the error is passed up. Each call returns the
	//resulting "decoration" slice of strings. If passed an empty string, it just returns the
	//current value without adding anything.
	//The decoration slice should contain a list of functions in the calling stack, plus, for each
	//function, any relevant information, or nothing. If information is added to an element of the
	//slice, it should be in this format: "FunctionName: Extra info"
}

// FileError is the interface for errors tied to a specific input file.
type FileError interface {
	Error
	Critical() bool
	FileName() string
	Format() string
}

// PanicMsg is a message used for panics, even though it does satisfy the error interface.
// For errors use the Error types of each package.
type PanicMsg string

func (v PanicMsg) Error() string { return string(v) }

const (
	ErrNilData       = PanicMsg("qeplot: Given nil data")
	ErrUnknownUnit   = PanicMsg("qeplot: Unknown frequency/energy unit")
	ErrIndexOutRange = PanicMsg("qeplot: index out of range")
)

// procError is the root-package error type. It fulfills qeplot.Error.
type procError struct {
	message string
	deco    []string
}

func (err *procError) Error() string { return err.message }

// Decorate adds new information to the error
func (err *procError) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

func newError(format string, a ...interface{}) *procError {
	return &procError{message: fmt.Sprintf(format, a...)}
}
