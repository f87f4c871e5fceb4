package blobs

import (
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/ethereum/go-ethereum/crypto/kzg4844"
)

// EvaluateBarycentric evaluates the blob polynomial at z without interpolating
// it, using the barycentric formula over the bit-reversed domain:
//
//	y = (z⁴⁰⁹⁶ - 1) / 4096 ⋅ Σᵢ dᵢ⋅ωᵢ / (z - ωᵢ)
//
// If z is a domain point ωₖ the cell dₖ is returned. The result matches the
// claim returned by kzg4844.ComputeProof.
func EvaluateBarycentric(blob *kzg4844.Blob, z fr.Element) (fr.Element, error) {
	evals, err := Evaluations(blob)
	if err != nil {
		return fr.Element{}, err
	}
	d := EvaluationDomain()
	if k := d.Index(z); k >= 0 {
		return evals[k], nil
	}

	diffs := make([]fr.Element, FieldElementsPerBlob)
	for i := range diffs {
		diffs[i].Sub(&z, &d.Roots[i])
	}
	invs := fr.BatchInvert(diffs)

	var sum, term fr.Element
	for i := range evals {
		if evals[i].IsZero() {
			continue
		}
		term.Mul(&evals[i], &d.Roots[i])
		term.Mul(&term, &invs[i])
		sum.Add(&sum, &term)
	}

	var factor, nInv fr.Element
	factor.Exp(z, bigN)
	factor.Sub(&factor, new(fr.Element).SetOne())
	nInv.SetUint64(FieldElementsPerBlob)
	nInv.Inverse(&nInv)
	factor.Mul(&factor, &nInv)

	var y fr.Element
	y.Mul(&sum, &factor)
	return y, nil
}
