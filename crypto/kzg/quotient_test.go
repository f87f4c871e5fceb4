package kzg

import (
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/vocdoni/davinci-poly/crypto/field"
	"github.com/vocdoni/davinci-poly/crypto/field/modp"
	"github.com/vocdoni/davinci-poly/polynomial"
)

func TestQuotientSmallField(t *testing.T) {
	c := qt.New(t)
	var f field.Field[modp.Element] = modp.MustNew(65537)

	// p = X² + 3X + 2, z = 1: y = 6, q = (X² + 3X - 4) / (X - 1) = X + 4
	p, err := polynomial.FromUint64(f, 2, 3, 1)
	c.Assert(err, qt.IsNil)
	q, y, err := Quotient(p, f.FromUint64(1))
	c.Assert(err, qt.IsNil)
	c.Assert(f.String(y), qt.Equals, "6")
	c.Assert(q.String(), qt.Equals, "[4, 1]")
}

func TestQuotientIdentity(t *testing.T) {
	c := qt.New(t)
	var f field.Field[modp.Element] = modp.MustNew(2147483647)

	for _, length := range []int{2, 3, 10, 65} {
		p, err := polynomial.Random(f, length)
		c.Assert(err, qt.IsNil)
		z, err := f.Random()
		c.Assert(err, qt.IsNil)

		q, y, err := Quotient(p, z)
		c.Assert(err, qt.IsNil)
		c.Assert(q.Len(), qt.Equals, length-1)

		// q⋅(X - z) + y = p
		linear, err := polynomial.FromCoefficients(f, field.Neg(f, z), field.One(f))
		c.Assert(err, qt.IsNil)
		back, err := polynomial.Mul(q, linear)
		c.Assert(err, qt.IsNil)
		constant, err := polynomial.FromCoefficients(f, y)
		c.Assert(err, qt.IsNil)
		back, err = polynomial.Add(back, constant)
		c.Assert(err, qt.IsNil)
		c.Assert(polynomial.Equal(back, p), qt.IsTrue)
	}
}

func TestQuotientEdgeCases(t *testing.T) {
	c := qt.New(t)
	var f field.Field[modp.Element] = modp.MustNew(65537)

	empty, err := polynomial.New(f, 0)
	c.Assert(err, qt.IsNil)
	_, _, err = Quotient(empty, f.FromUint64(3))
	c.Assert(err, qt.ErrorIs, ErrEmptyPolynomial)
	c.Assert(polynomial.CodeOf(err), qt.Equals, polynomial.BadArguments)

	constant, err := polynomial.FromUint64(f, 9)
	c.Assert(err, qt.IsNil)
	q, y, err := Quotient(constant, f.FromUint64(3))
	c.Assert(err, qt.IsNil)
	c.Assert(f.String(y), qt.Equals, "9")
	c.Assert(q.String(), qt.Equals, "[0]")

	c.Assert(constant.Release(), qt.IsNil)
	_, _, err = Quotient(constant, f.FromUint64(3))
	c.Assert(err, qt.ErrorIs, polynomial.ErrReleased)
}
