// Package kzg derives KZG opening quotients with the polynomial package and
// commits to them over BLS12-381 with gnark-crypto.
//
// Opening a commitment to p at z proves y = p(z) by committing to
//
//	q(X) = (p(X) - y) / (X - z)
//
// which is a polynomial exactly when y = p(z).
package kzg

import (
	"errors"
	"fmt"

	"github.com/vocdoni/davinci-poly/crypto/field"
	"github.com/vocdoni/davinci-poly/polynomial"
)

// ErrEmptyPolynomial is returned when opening a polynomial without
// coefficients.
var ErrEmptyPolynomial = errors.New("cannot open an empty polynomial")

// Quotient returns y = p(z) and q = (p - y) / (X - z). The quotient has
// p.Len()-1 coefficients, except for constant polynomials whose quotient is the
// single zero coefficient.
func Quotient[E any](p *polynomial.Polynomial[E], z E) (*polynomial.Polynomial[E], E, error) {
	var zero E
	if p == nil || p.Released() {
		return nil, zero, &polynomial.Error{Code: polynomial.BadArguments, Err: polynomial.ErrReleased}
	}
	f := p.Field()
	if p.Len() == 0 {
		return nil, zero, &polynomial.Error{Code: polynomial.BadArguments, Err: ErrEmptyPolynomial}
	}
	y, err := polynomial.Evaluate(p, z)
	if err != nil {
		return nil, zero, err
	}
	if p.Len() == 1 {
		q, err := polynomial.New(f, 1)
		return q, y, err
	}

	numerator, err := p.Clone()
	if err != nil {
		return nil, zero, err
	}
	defer func() { _ = numerator.Release() }()
	c0, err := numerator.Coefficient(0)
	if err != nil {
		return nil, zero, err
	}
	if err := numerator.SetCoefficient(0, f.Sub(c0, y)); err != nil {
		return nil, zero, err
	}

	// X - z
	divisor, err := polynomial.FromCoefficients(f, field.Neg(f, z), field.One(f))
	if err != nil {
		return nil, zero, err
	}
	defer func() { _ = divisor.Release() }()

	q, err := polynomial.Div(numerator, divisor)
	if err != nil {
		// y = p(z) makes X - z divide the numerator, anything else is a bug
		return nil, zero, fmt.Errorf("divide by X - z: %w", err)
	}
	return q, y, nil
}
