package polynomial

import (
	"errors"
	"fmt"
)

// Code is the result code shared by every operation of the package.
type Code int

const (
	// Ok means the operation succeeded.
	Ok Code = iota
	// BadArguments means the supplied data is invalid in some way.
	BadArguments
	// InternalError should never occur.
	InternalError
	// AllocationFailure means a coefficient buffer could not be allocated.
	AllocationFailure
)

func (c Code) String() string {
	switch c {
	case Ok:
		return "ok"
	case BadArguments:
		return "bad arguments"
	case InternalError:
		return "internal error"
	case AllocationFailure:
		return "allocation failure"
	default:
		return fmt.Sprintf("unknown code %d", int(c))
	}
}

// Error carries a result code and the underlying cause.
type Error struct {
	Code Code
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Code.String()
	}
	return e.Code.String() + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is the bare sentinel of the same code, so that
// errors.Is(err, ErrBadArguments) holds for any bad arguments error.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Err == nil && t.Code == e.Code
}

// Sentinels matching any error of the given code through errors.Is.
var (
	ErrBadArguments = &Error{Code: BadArguments}
	ErrInternal     = &Error{Code: InternalError}
	ErrAllocation   = &Error{Code: AllocationFailure}
)

// Causes wrapped by the Error values returned from this package.
var (
	ErrOutputLength           = errors.New("output length does not match the quotient length")
	ErrEmptyDivisor           = errors.New("divisor has no coefficients")
	ErrDivisorTooLong         = errors.New("divisor is longer than the dividend")
	ErrZeroLeadingCoefficient = errors.New("divisor leading coefficient is zero")
	ErrNonZeroRemainder       = errors.New("divisor does not divide the dividend")
	ErrFieldMismatch          = errors.New("polynomials are defined over different fields")
	ErrReleased               = errors.New("polynomial was released")
	ErrIndexOutOfRange        = errors.New("coefficient index out of range")
	ErrInvalidLength          = errors.New("invalid polynomial length")
)

// CodeOf returns the result code carried by err. A nil error is Ok and errors
// not produced by this package are reported as InternalError.
func CodeOf(err error) Code {
	if err == nil {
		return Ok
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return InternalError
}

// badArguments builds a BadArguments error. Builds tagged polydebug abort
// instead, with the same diagnostic.
func badArguments(format string, args ...any) error {
	err := &Error{Code: BadArguments, Err: fmt.Errorf(format, args...)}
	if abortOnBadArguments {
		panic(err.Error())
	}
	return err
}

func allocationFailure(format string, args ...any) error {
	return &Error{Code: AllocationFailure, Err: fmt.Errorf(format, args...)}
}

func internalError(err error) error {
	return &Error{Code: InternalError, Err: err}
}
