package storage

import (
	"encoding/json"
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// ArtifactEncoding selects how records are serialized in the database.
type ArtifactEncoding int

const (
	// ArtifactEncodingCBOR is the deterministic CBOR encoding, the default.
	ArtifactEncodingCBOR ArtifactEncoding = iota
	// ArtifactEncodingJSON is plain JSON, handy to inspect a database.
	ArtifactEncodingJSON
)

var cborEncMode = func() cbor.EncMode {
	em, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	return em
}()

// String returns the name used in configuration.
func (e ArtifactEncoding) String() string {
	switch e {
	case ArtifactEncodingCBOR:
		return "cbor"
	case ArtifactEncodingJSON:
		return "json"
	default:
		return fmt.Sprintf("unknown(%d)", int(e))
	}
}

// ParseArtifactEncoding parses "cbor" or "json".
func ParseArtifactEncoding(s string) (ArtifactEncoding, error) {
	switch s {
	case "cbor":
		return ArtifactEncodingCBOR, nil
	case "json":
		return ArtifactEncodingJSON, nil
	default:
		return 0, fmt.Errorf("unknown artifact encoding %q", s)
	}
}

// EncodeArtifact encodes a record with the given encoding.
func EncodeArtifact(a any, encoding ArtifactEncoding) ([]byte, error) {
	switch encoding {
	case ArtifactEncodingCBOR:
		return cborEncMode.Marshal(a)
	case ArtifactEncodingJSON:
		return json.Marshal(a)
	default:
		return nil, fmt.Errorf("unknown artifact encoding: %d", encoding)
	}
}

// DecodeArtifact decodes a record with the given encoding.
func DecodeArtifact(data []byte, out any, encoding ArtifactEncoding) error {
	switch encoding {
	case ArtifactEncodingCBOR:
		return cbor.Unmarshal(data, out)
	case ArtifactEncodingJSON:
		return json.Unmarshal(data, out)
	default:
		return fmt.Errorf("unknown artifact encoding: %d", encoding)
	}
}
