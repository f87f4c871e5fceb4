// Package config holds the default settings of the davinci-poly service,
// shared by the binary and the packages it wires together.
package config

import (
	"time"

	"github.com/vocdoni/davinci-poly/db"
	"github.com/vocdoni/davinci-poly/storage"
)

const (
	// DefaultAPIHost is the address the API listens on.
	DefaultAPIHost = "0.0.0.0"
	// DefaultAPIPort is the port the API listens on.
	DefaultAPIPort = 9095
	// DefaultDatadir is the data directory, relative to the user's home.
	DefaultDatadir = ".davinci-poly"
	// DefaultDBType is the key/value backend used for storage.
	DefaultDBType = db.TypePebble
	// DefaultEncoding is the encoding of the stored polynomial records, as
	// parsed by storage.ParseArtifactEncoding.
	DefaultEncoding = "cbor"
	// DefaultCacheSize is the number of polynomials kept in memory.
	DefaultCacheSize = storage.DefaultCacheSize
	// DefaultLogLevel is the level of the service logger.
	DefaultLogLevel = "info"
	// DefaultLogOutput is where the service logs are written.
	DefaultLogOutput = "stdout"
	// DefaultShutdownTimeout bounds the graceful shutdown of the API.
	DefaultShutdownTimeout = 10 * time.Second
)

const (
	// DefaultSRSSize is the number of G1 powers of the development SRS, that
	// is the longest polynomial that can be opened.
	DefaultSRSSize = 1 << 12
	// DefaultSRSAlpha is the toxic waste of the development SRS. It is public,
	// so openings made with it prove nothing outside of tests.
	DefaultSRSAlpha = "7582938416472057102356091"
)

// DBTypes lists the supported storage backends.
var DBTypes = []string{db.TypePebble, db.TypeLevelDB, db.TypeInMem}
