package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/vocdoni/davinci-poly/log"
	"github.com/vocdoni/davinci-poly/polynomial"
	"github.com/vocdoni/davinci-poly/storage"
	"github.com/vocdoni/davinci-poly/types"
)

// httpWriteJSON helper function allows to write a JSON response.
func httpWriteJSON(w http.ResponseWriter, data any) {
	httpWriteJSONStatus(w, http.StatusOK, data)
}

func httpWriteJSONStatus(w http.ResponseWriter, status int, data any) {
	jdata, err := json.Marshal(data)
	if err != nil {
		ErrMarshalingServerJSONFailed.WithErr(err).Write(w)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	n, err := w.Write(append(jdata, '\n'))
	if err != nil {
		log.Warnw("failed to write http response", "error", err)
		return
	}
	if !DisabledLogging && log.Level() == log.LogLevelDebug {
		log.Debugw("api response", "bytes", n, "data", strings.ReplaceAll(string(jdata), "\"", ""))
	}
}

// httpWriteOK helper function allows to write an OK response.
func httpWriteOK(w http.ResponseWriter) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("\n")); err != nil {
		log.Warnw("failed to write on response", "error", err)
	}
}

// decodeBody decodes the JSON request body into v, writing the error
// response on failure.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		ErrMalformedBody.Withf("could not decode request body: %v", err).Write(w)
		return false
	}
	return true
}

// polynomialError maps the result code of a polynomial operation to its API
// error.
func polynomialError(err error) Error {
	switch polynomial.CodeOf(err) {
	case polynomial.BadArguments:
		return ErrInvalidArguments.WithErr(err)
	case polynomial.AllocationFailure:
		return ErrAllocationFailure.WithErr(err)
	default:
		return ErrGenericInternalServerError.WithErr(err)
	}
}

// polynomialID parses the id URL parameter.
func polynomialID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, PolynomialURLParam))
	if err != nil {
		ErrMalformedParam.Withf("invalid polynomial id: %v", err).Write(w)
		return uuid.Nil, false
	}
	return id, true
}

// loadPolynomial fetches the polynomial named by the id URL parameter. The
// caller must release it.
func (a *API) loadPolynomial(w http.ResponseWriter, r *http.Request) (uuid.UUID, *polynomial.Polynomial[fr.Element], bool) {
	id, ok := polynomialID(w, r)
	if !ok {
		return uuid.Nil, nil, false
	}
	p, err := a.storage.Get(id)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		ErrPolynomialNotFound.With(id.String()).Write(w)
		return uuid.Nil, nil, false
	case err != nil:
		ErrStorageFailure.WithErr(err).Write(w)
		return uuid.Nil, nil, false
	}
	return id, p, true
}

// decodeElements parses hex encoded field elements. what names the list in
// error messages.
func (a *API) decodeElements(w http.ResponseWriter, what string, hexes []types.HexBytes) ([]fr.Element, bool) {
	f := a.storage.Field()
	elements, err := types.SliceOfErr(hexes, func(b types.HexBytes) (fr.Element, error) {
		return f.SetBytes(b)
	})
	if err != nil {
		ErrMalformedElement.Withf("%s %v", what, err).Write(w)
		return nil, false
	}
	return elements, true
}

func (a *API) decodeElement(w http.ResponseWriter, what string, b types.HexBytes) (fr.Element, bool) {
	e, err := a.storage.Field().SetBytes(b)
	if err != nil {
		ErrMalformedElement.Withf("%s: %v", what, err).Write(w)
		return fr.Element{}, false
	}
	return e, true
}

func (a *API) encodeElement(e fr.Element) types.HexBytes {
	return a.storage.Field().Bytes(e)
}

func (a *API) encodeElements(es []fr.Element) []types.HexBytes {
	return types.SliceOf(es, a.encodeElement)
}

func release(p *polynomial.Polynomial[fr.Element]) {
	if err := p.Release(); err != nil {
		log.Warnw("failed to release polynomial", "error", err)
	}
}
