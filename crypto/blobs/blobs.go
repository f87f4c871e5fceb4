// Package blobs bridges coefficient-form polynomials over BLS12-381 Fr and
// EIP-4844 blobs, which hold the same polynomial in evaluation form over a
// 4096 points domain. Commitments and proofs are computed by go-ethereum's
// kzg4844 package against the Ethereum trusted setup.
package blobs

import (
	"context"
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/ethereum/go-ethereum/crypto/kzg4844"
	"github.com/vocdoni/davinci-poly/polynomial"
)

// FieldElementsPerBlob defines the number of field elements per blob
const FieldElementsPerBlob = 4096

// BytesPerFieldElement defines the number of bytes per field element
const BytesPerFieldElement = 32

// FromPolynomial returns the blob holding p evaluated over the blob domain.
// The blob polynomial equals p as long as p has at most 4096 coefficients.
func FromPolynomial(ctx context.Context, p *polynomial.Polynomial[fr.Element]) (*kzg4844.Blob, error) {
	if p.Len() > FieldElementsPerBlob {
		return nil, fmt.Errorf("too many coefficients: got %d, max %d", p.Len(), FieldElementsPerBlob)
	}
	evals, err := polynomial.EvaluateMany(ctx, p, EvaluationDomain().Roots[:])
	if err != nil {
		return nil, err
	}
	return FromEvaluations(evals)
}

// FromEvaluations packs up to 4096 evaluations into a blob, big-endian. Missing
// cells are zero.
func FromEvaluations(evals []fr.Element) (*kzg4844.Blob, error) {
	if len(evals) > FieldElementsPerBlob {
		return nil, fmt.Errorf("too many evaluations: got %d, max %d", len(evals), FieldElementsPerBlob)
	}
	blob := &kzg4844.Blob{}
	for i := range evals {
		cell := evals[i].Bytes()
		copy(blob[i*BytesPerFieldElement:(i+1)*BytesPerFieldElement], cell[:])
	}
	return blob, nil
}

// Evaluations decodes the blob cells, rejecting non canonical ones.
func Evaluations(blob *kzg4844.Blob) ([]fr.Element, error) {
	evals := make([]fr.Element, FieldElementsPerBlob)
	for i := range evals {
		if err := evals[i].SetBytesCanonical(blob[i*BytesPerFieldElement : (i+1)*BytesPerFieldElement]); err != nil {
			return nil, fmt.Errorf("blob cell %d: %w", i, err)
		}
	}
	return evals, nil
}

// Commitment returns the KZG commitment of the blob.
func Commitment(blob *kzg4844.Blob) (kzg4844.Commitment, error) {
	commitment, err := kzg4844.BlobToCommitment(blob)
	if err != nil {
		return kzg4844.Commitment{}, err
	}
	return commitment, nil
}

// ComputeProof computes the KZG proof for a given blob and evaluation point z,
// returning the proof and the claimed evaluation.
func ComputeProof(blob *kzg4844.Blob, z fr.Element) (kzg4844.Proof, fr.Element, error) {
	proof, claim, err := kzg4844.ComputeProof(blob, Point(z))
	if err != nil {
		return kzg4844.Proof{}, fr.Element{}, err
	}
	var y fr.Element
	if err := y.SetBytesCanonical(claim[:]); err != nil {
		return kzg4844.Proof{}, fr.Element{}, fmt.Errorf("decode claim: %w", err)
	}
	return proof, y, nil
}

// VerifyProof checks that the blob committed in commitment evaluates to y at z.
func VerifyProof(commitment kzg4844.Commitment, z, y fr.Element, proof kzg4844.Proof) error {
	return kzg4844.VerifyProof(commitment, Point(z), kzg4844.Claim(y.Bytes()), proof)
}

// Point converts a field element to a kzg4844.Point.
func Point(z fr.Element) kzg4844.Point {
	return kzg4844.Point(z.Bytes())
}
