//go:build polydebug

package polynomial

// abortOnBadArguments makes invalid arguments panic with a diagnostic. Enable
// it with `go test -tags polydebug`.
const abortOnBadArguments = true
