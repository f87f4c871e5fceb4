package api

import (
	"net/http"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/vocdoni/davinci-poly/crypto/blobs"
	"github.com/vocdoni/davinci-poly/polynomial"
	"github.com/vocdoni/davinci-poly/types"
)

// info returns the field and the size limits of the service
// GET /info
func (a *API) info(w http.ResponseWriter, _ *http.Request) {
	f := a.storage.Field()
	response := &InfoResponse{
		Field:           f.Name(),
		Modulus:         new(types.BigInt).SetBigInt(f.Modulus()),
		MaxLength:       polynomial.MaxLength,
		MaxPoints:       a.maxPoints,
		BlobMaxLength:   blobs.FieldElementsPerBlob,
		ElementByteSize: fr.Bytes,
	}
	if a.prover != nil {
		response.KZGMaxLength = a.prover.MaxLength()
	}
	httpWriteJSON(w, response)
}
