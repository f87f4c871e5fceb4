//go:build cgo

// Linking the gnark field assembly without this flag warns about an
// executable stack when the circuit is compiled in a cgo build.

package polyeval

/*
#cgo LDFLAGS: -Wl,-z,noexecstack
*/
import "C"
