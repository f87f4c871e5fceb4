// Package polyeval implements a BN254 circuit checking a polynomial opening
// over the native field: given the coefficients of p and of its opening
// quotient q at z, it asserts at the public challenge r that
//
//	p(r) - y == q(r) ⋅ (r - z)
//
// which, for a random r, holds with overwhelming probability only when
// q = (p - y) / (X - z), that is, when y = p(z).
package polyeval

import (
	"fmt"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark/constraint"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/frontend/cs/r1cs"
	"github.com/vocdoni/davinci-poly/crypto/field/bn254"
	"github.com/vocdoni/davinci-poly/crypto/kzg"
	"github.com/vocdoni/davinci-poly/polynomial"
)

// Curve is the curve whose scalar field the circuit is defined over.
const Curve = ecc.BN254

// Circuit holds the private coefficients of p and q and the public opening
// point, claimed value and challenge.
type Circuit struct {
	P []frontend.Variable
	Q []frontend.Variable

	Z frontend.Variable `gnark:",public"`
	Y frontend.Variable `gnark:",public"`
	R frontend.Variable `gnark:",public"`
}

// NewCircuit returns the placeholder circuit for polynomials of length n.
func NewCircuit(n int) *Circuit {
	return &Circuit{
		P: make([]frontend.Variable, n),
		Q: make([]frontend.Variable, quotientLength(n)),
	}
}

// Define declares the circuit constraints.
func (c *Circuit) Define(api frontend.API) error {
	if len(c.P) == 0 {
		return fmt.Errorf("empty polynomial")
	}
	if len(c.Q) != quotientLength(len(c.P)) {
		return fmt.Errorf("quotient length %d does not match polynomial length %d", len(c.Q), len(c.P))
	}
	pr := horner(api, c.P, c.R)
	qr := horner(api, c.Q, c.R)
	api.AssertIsEqual(api.Sub(pr, c.Y), api.Mul(qr, api.Sub(c.R, c.Z)))
	return nil
}

func horner(api frontend.API, coeffs []frontend.Variable, x frontend.Variable) frontend.Variable {
	acc := coeffs[len(coeffs)-1]
	for i := len(coeffs) - 2; i >= 0; i-- {
		acc = api.Add(api.Mul(acc, x), coeffs[i])
	}
	return acc
}

// quotientLength mirrors kzg.Quotient, which keeps a single zero coefficient
// for constant polynomials.
func quotientLength(n int) int {
	return max(n-1, 1)
}

// Compile builds the R1CS for polynomials of length n.
func Compile(n int) (constraint.ConstraintSystem, error) {
	ccs, err := frontend.Compile(Curve.ScalarField(), r1cs.NewBuilder, NewCircuit(n))
	if err != nil {
		return nil, fmt.Errorf("compile polyeval circuit: %w", err)
	}
	return ccs, nil
}

// Assign computes y = p(z) and the opening quotient, and returns the full
// assignment for challenge r.
func Assign(p *polynomial.Polynomial[fr.Element], z, r fr.Element) (*Circuit, error) {
	q, y, err := kzg.Quotient(p, z)
	if err != nil {
		return nil, err
	}
	defer func() { _ = q.Release() }()

	assignment := &Circuit{
		P: variables(p.Coefficients()),
		Q: variables(q.Coefficients()),
		Z: toBig(z),
		Y: toBig(y),
		R: toBig(r),
	}
	return assignment, nil
}

// Challenge derives a challenge from the field, outside any transcript. Tests
// and callers without a Fiat-Shamir transcript use it.
func Challenge() (fr.Element, error) {
	return bn254.New().Random()
}

func variables(es []fr.Element) []frontend.Variable {
	vs := make([]frontend.Variable, len(es))
	for i := range es {
		vs[i] = toBig(es[i])
	}
	return vs
}

func toBig(e fr.Element) *big.Int {
	return e.BigInt(new(big.Int))
}
