package api

import (
	"crypto/sha256"
	"errors"
	"net/http"
	"time"

	"github.com/ethereum/go-ethereum/crypto/kzg4844"
	"github.com/google/uuid"
	"github.com/vocdoni/davinci-poly/crypto/blobs"
	"github.com/vocdoni/davinci-poly/crypto/kzg"
	"github.com/vocdoni/davinci-poly/log"
	"github.com/vocdoni/davinci-poly/polynomial"
	"github.com/vocdoni/davinci-poly/storage"
)

// newPolynomial stores a polynomial
// POST /polynomials
func (a *API) newPolynomial(w http.ResponseWriter, r *http.Request) {
	req := &PolynomialRequest{}
	if !decodeBody(w, r, req) {
		return
	}
	if len(req.Coefficients) > polynomial.MaxLength {
		ErrPolynomialTooLong.Withf("%d coefficients, max %d", len(req.Coefficients), polynomial.MaxLength).Write(w)
		return
	}
	coeffs, ok := a.decodeElements(w, "coefficient", req.Coefficients)
	if !ok {
		return
	}
	p, err := polynomial.FromCoefficients(a.storage.Field(), coeffs...)
	if err != nil {
		polynomialError(err).Write(w)
		return
	}
	defer release(p)

	id, err := a.storage.Put(p)
	if err != nil {
		ErrStorageFailure.WithErr(err).Write(w)
		return
	}
	httpWriteJSONStatus(w, http.StatusCreated, &PolynomialResponse{ID: id.String(), Length: p.Len()})
}

// listPolynomials returns the ids of the stored polynomials
// GET /polynomials
func (a *API) listPolynomials(w http.ResponseWriter, _ *http.Request) {
	ids, err := a.storage.List()
	if err != nil {
		ErrStorageFailure.WithErr(err).Write(w)
		return
	}
	resp := &PolynomialListResponse{Polynomials: make([]string, 0, len(ids))}
	for _, id := range ids {
		resp.Polynomials = append(resp.Polynomials, id.String())
	}
	httpWriteJSON(w, resp)
}

// polynomial returns the coefficients of a stored polynomial, and its
// commitment once it has been opened
// GET /polynomials/{id}
func (a *API) polynomial(w http.ResponseWriter, r *http.Request) {
	id, p, ok := a.loadPolynomial(w, r)
	if !ok {
		return
	}
	defer release(p)

	resp := &PolynomialResponse{
		ID:           id.String(),
		Length:       p.Len(),
		Coefficients: a.encodeElements(p.Coefficients()),
	}
	commitment, err := a.storage.Commitment(id)
	switch {
	case err == nil:
		resp.Commitment = commitment
	case !errors.Is(err, storage.ErrNotFound):
		ErrStorageFailure.WithErr(err).Write(w)
		return
	}
	httpWriteJSON(w, resp)
}

// deletePolynomial removes a stored polynomial
// DELETE /polynomials/{id}
func (a *API) deletePolynomial(w http.ResponseWriter, r *http.Request) {
	id, ok := polynomialID(w, r)
	if !ok {
		return
	}
	if err := a.storage.Delete(id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			ErrPolynomialNotFound.With(id.String()).Write(w)
			return
		}
		ErrStorageFailure.WithErr(err).Write(w)
		return
	}
	httpWriteOK(w)
}

// evaluate evaluates a stored polynomial at every requested point
// POST /polynomials/{id}/evaluate
func (a *API) evaluate(w http.ResponseWriter, r *http.Request) {
	req := &EvaluateRequest{}
	if !decodeBody(w, r, req) {
		return
	}
	if len(req.Points) > a.maxPoints {
		ErrTooManyPoints.Withf("%d points, max %d", len(req.Points), a.maxPoints).Write(w)
		return
	}
	points, ok := a.decodeElements(w, "point", req.Points)
	if !ok {
		return
	}
	id, p, ok := a.loadPolynomial(w, r)
	if !ok {
		return
	}
	defer release(p)

	start := time.Now()
	values, err := polynomial.EvaluateMany(r.Context(), p, points)
	if err != nil {
		polynomialError(err).Write(w)
		return
	}
	log.Timed("polynomial evaluated", start, "id", id.String(), "points", len(points))
	httpWriteJSON(w, &EvaluateResponse{Values: a.encodeElements(values)})
}

// divide divides a stored polynomial, returning quotient and remainder
// POST /polynomials/{id}/divide
func (a *API) divide(w http.ResponseWriter, r *http.Request) {
	req := &DivideRequest{}
	if !decodeBody(w, r, req) {
		return
	}
	coeffs, ok := a.decodeElements(w, "divisor coefficient", req.Divisor)
	if !ok {
		return
	}
	_, p, ok := a.loadPolynomial(w, r)
	if !ok {
		return
	}
	defer release(p)

	divisor, err := polynomial.FromCoefficients(a.storage.Field(), coeffs...)
	if err != nil {
		polynomialError(err).Write(w)
		return
	}
	defer release(divisor)

	q, rem, err := polynomial.DivRem(p, divisor)
	if err != nil {
		polynomialError(err).Write(w)
		return
	}
	defer release(q)
	defer release(rem)

	remCoeffs := rem.Coefficients()
	exact := true
	for i := range remCoeffs {
		if !remCoeffs[i].IsZero() {
			exact = false
			break
		}
	}
	httpWriteJSON(w, &DivideResponse{
		Quotient:  a.encodeElements(q.Coefficients()),
		Remainder: a.encodeElements(remCoeffs),
		Exact:     exact,
	})
}

// open computes a KZG opening of a stored polynomial at a point
// POST /polynomials/{id}/open
func (a *API) open(w http.ResponseWriter, r *http.Request) {
	if a.prover == nil {
		ErrProverNotConfigured.Write(w)
		return
	}
	req := &OpenRequest{}
	if !decodeBody(w, r, req) {
		return
	}
	z, ok := a.decodeElement(w, "point", req.Point)
	if !ok {
		return
	}
	id, p, ok := a.loadPolynomial(w, r)
	if !ok {
		return
	}
	defer release(p)
	if p.Len() > a.prover.MaxLength() {
		ErrPolynomialTooLong.Withf("%d coefficients, the SRS supports %d", p.Len(), a.prover.MaxLength()).Write(w)
		return
	}

	proof, q, err := a.prover.Open(p, z)
	if err != nil {
		polynomialError(err).Write(w)
		return
	}
	defer release(q)
	commitment, err := a.commitment(id, p)
	if err != nil {
		polynomialError(err).Write(w)
		return
	}

	httpWriteJSON(w, &OpenResponse{
		Value:      a.encodeElement(proof.ClaimedValue),
		Quotient:   a.encodeElements(q.Coefficients()),
		Commitment: commitment,
		Proof:      kzg.CompressedBytes(proof.H),
	})
}

// commitment returns the stored commitment of p, computing and storing it on
// first use.
func (a *API) commitment(id uuid.UUID, p *kzg.Polynomial) ([]byte, error) {
	commitment, err := a.storage.Commitment(id)
	if err == nil {
		return commitment, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return nil, err
	}
	digest, err := a.prover.Commit(p)
	if err != nil {
		return nil, err
	}
	commitment = kzg.CompressedBytes(digest)
	if err := a.storage.SetCommitment(id, commitment); err != nil {
		// a concurrent delete is not an error for this request
		log.Warnw("failed to store commitment", "id", id.String(), "error", err)
	}
	return commitment, nil
}

// blobProof places a stored polynomial in an EIP-4844 blob and proves its
// evaluation at a point with the Ethereum trusted setup
// POST /polynomials/{id}/blobproof
func (a *API) blobProof(w http.ResponseWriter, r *http.Request) {
	req := &OpenRequest{}
	if !decodeBody(w, r, req) {
		return
	}
	z, ok := a.decodeElement(w, "point", req.Point)
	if !ok {
		return
	}
	id, p, ok := a.loadPolynomial(w, r)
	if !ok {
		return
	}
	defer release(p)
	if p.Len() > blobs.FieldElementsPerBlob {
		ErrPolynomialTooLong.Withf("%d coefficients, a blob holds %d", p.Len(), blobs.FieldElementsPerBlob).Write(w)
		return
	}

	start := time.Now()
	blob, err := blobs.FromPolynomial(r.Context(), p)
	if err != nil {
		polynomialError(err).Write(w)
		return
	}
	commitment, err := blobs.Commitment(blob)
	if err != nil {
		ErrGenericInternalServerError.WithErr(err).Write(w)
		return
	}
	proof, y, err := blobs.ComputeProof(blob, z)
	if err != nil {
		ErrGenericInternalServerError.WithErr(err).Write(w)
		return
	}
	versionedHash := kzg4844.CalcBlobHashV1(sha256.New(), &commitment)
	log.Timed("blob proof computed", start, "id", id.String())

	httpWriteJSON(w, &BlobProofResponse{
		Value:         a.encodeElement(y),
		Commitment:    commitment[:],
		Proof:         proof[:],
		VersionedHash: versionedHash[:],
	})
}
