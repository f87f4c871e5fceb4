//go:build !polydebug

package polynomial

// abortOnBadArguments is false in regular builds: invalid arguments are
// reported with a BadArguments error.
const abortOnBadArguments = false
