// Package fatal models the runtime's unrecoverable failures.
//
// Representation-contract violations, allocation failures and user-level
// error values all terminate evaluation. Inside the process they travel as a
// panic carrying *Error so the command boundary can print the message and the
// stack of the failing call before exiting.
package fatal

import (
	"errors"
	"fmt"
	"io"
	"runtime/debug"
)

// Error is the payload of a fatal runtime panic.
type Error struct {
	Message string
	Stack   []byte
}

func (e *Error) Error() string {
	if e == nil {
		return "fatal error"
	}
	return e.Message
}

// Newf formats a fatal error and captures the current stack. Callers panic
// with the result: panic(fatal.Newf(...)).
func Newf(format string, args ...any) *Error {
	return &Error{
		Message: fmt.Sprintf(format, args...),
		Stack:   debug.Stack(),
	}
}

// Check raises when cond is false.
func Check(cond bool, format string, args ...any) {
	if !cond {
		panic(Newf(format, args...))
	}
}

// Catch runs fn and returns the fatal error it raised, if any. Panics that
// are not fatal errors propagate unchanged.
func Catch(fn func()) (err *Error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if fe, ok := r.(*Error); ok {
			err = fe
			return
		}
		panic(r)
	}()
	fn()
	return nil
}

// Recover converts a recovered panic value into an error. It returns nil for
// a nil value and wraps anything that is not already an error.
func Recover(recovered any) error {
	if recovered == nil {
		return nil
	}
	if err, ok := recovered.(error); ok {
		return err
	}
	return fmt.Errorf("panic: %v", recovered)
}

// As reports whether err is, or wraps, a fatal runtime error.
func As(err error) (*Error, bool) {
	var fe *Error
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}

// Report writes the diagnostic printed when a fatal error reaches the top
// level.
func Report(w io.Writer, err *Error) {
	fmt.Fprintf(w, "FATAL ERROR: %s\n", err.Message)
	if len(err.Stack) > 0 {
		fmt.Fprintf(w, "%s", err.Stack)
	}
}
