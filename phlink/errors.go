package phlink

import "fmt"

//Errors

// Error is the general structure for phlink errors. It fulfills
// qeplot.Error.
type Error struct {
	message string
	deco    []string
}

func (err Error) Error() string { return err.message }

// Decorate adds new information to the error
func (err Error) Decorate(deco string) []string {
	//Even though this method does not use a pointer as a receiver, and tries to alter the receiver,
	//it should work, since err.deco is a slice, and hence a pointer itself.
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

func newError(format string, a ...interface{}) Error {
	return Error{message: fmt.Sprintf(format, a...)}
}
