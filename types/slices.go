package types

import "strconv"

// SliceOf converts a slice of type F to a slice of type T using the provided
// conversion function.
func SliceOf[F, T any](from []F, conv func(F) T) []T {
	to := make([]T, len(from))
	for i, v := range from {
		to[i] = conv(v)
	}
	return to
}

// SliceOfErr is SliceOf for conversions that can fail. The error names the
// index of the first failing element.
func SliceOfErr[F, T any](from []F, conv func(F) (T, error)) ([]T, error) {
	to := make([]T, len(from))
	for i, v := range from {
		var err error
		if to[i], err = conv(v); err != nil {
			return nil, &IndexError{Index: i, Err: err}
		}
	}
	return to, nil
}

// IndexError reports which element of a slice failed to convert.
type IndexError struct {
	Index int
	Err   error
}

func (e *IndexError) Error() string {
	return "element " + strconv.Itoa(e.Index) + ": " + e.Err.Error()
}

func (e *IndexError) Unwrap() error { return e.Err }
