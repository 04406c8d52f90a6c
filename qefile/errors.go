package qefile

import "fmt"

//Errors

// Error is the general structure for qefile parse errors. It fulfills
// qeplot.Error and qeplot.FileError.
type Error struct {
	message  string
	filename string //the input file that has problems, or empty string if none.
	format   string //the file format being parsed when the error occurred.
	deco     []string
	critical bool
}

func (err Error) Error() string {
	return fmt.Sprintf("%s file %s error: %s", err.format, err.filename, err.message)
}

// Decorate adds new information to the error
func (err Error) Decorate(deco string) []string {
	//Even though this method does not use a pointer as a receiver, and tries to alter the receiver,
	//it should work, since err.deco is a slice, and hence a pointer itself.
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

// FileName returns the file to which the failing parse was associated
func (err Error) FileName() string { return err.filename }

// Format returns the format of the file associated to the error
func (err Error) Format() string { return err.format }

// Critical returns true if the error is critical, false otherwise
func (err Error) Critical() bool { return err.critical }

const (
	NoNumericData  = "No numeric data found"
	UnableToOpen   = "Unable to open file"
	WrongFormat    = "Wrong format"
	NoLatticeTag   = "Reciprocal lattice tag not found in XML"
	BadLatticeRows = "Could not parse 3 reciprocal lattice vectors"
	NotEnoughCols  = "Not enough columns"
)

func newError(message, filename, format string) Error {
	return Error{message: message, filename: filename, format: format, critical: true}
}
