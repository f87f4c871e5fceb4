package field_test

import (
	"math/big"
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/vocdoni/davinci-poly/crypto/field"
	"github.com/vocdoni/davinci-poly/crypto/field/bls12381"
	"github.com/vocdoni/davinci-poly/crypto/field/bn254"
	"github.com/vocdoni/davinci-poly/crypto/field/modp"
)

func TestFields(t *testing.T) {
	t.Run("bls12381", func(t *testing.T) { testFieldAxioms[bls12381.Element](t, bls12381.New()) })
	t.Run("bn254", func(t *testing.T) { testFieldAxioms[bn254.Element](t, bn254.New()) })
	t.Run("modp-65537", func(t *testing.T) { testFieldAxioms[modp.Element](t, modp.MustNew(65537)) })
	t.Run("modp-p25519", func(t *testing.T) {
		p, _ := new(big.Int).SetString("57896044618658097711785492504343953926634992332820282019728792003956564819949", 10)
		f, err := modp.New(p)
		qt.Assert(t, err, qt.IsNil)
		testFieldAxioms[modp.Element](t, f)
	})
}

func testFieldAxioms[E any](t *testing.T, f field.Field[E]) {
	c := qt.New(t)

	for range 20 {
		a, err := f.Random()
		c.Assert(err, qt.IsNil)
		b, err := f.Random()
		c.Assert(err, qt.IsNil)

		// (a + b) - b = a
		c.Assert(f.Equal(f.Sub(f.Add(a, b), b), a), qt.IsTrue)
		// a * b = b * a
		c.Assert(f.Equal(f.Mul(a, b), f.Mul(b, a)), qt.IsTrue)

		if !f.IsZero(a) {
			inv, err := f.Inverse(a)
			c.Assert(err, qt.IsNil)
			c.Assert(f.Equal(f.Mul(a, inv), field.One(f)), qt.IsTrue)

			q, err := field.Div(f, b, a)
			c.Assert(err, qt.IsNil)
			c.Assert(f.Equal(f.Mul(q, a), b), qt.IsTrue)
		}

		// canonical encoding round trip
		dec, err := f.SetBytes(f.Bytes(a))
		c.Assert(err, qt.IsNil)
		c.Assert(f.Equal(dec, a), qt.IsTrue)
		c.Assert(field.ToBigInt(f, a).Cmp(f.Modulus()), qt.Equals, -1)
	}

	_, err := f.Inverse(f.Zero())
	c.Assert(err, qt.ErrorIs, field.ErrDivisionByZero)

	c.Assert(f.IsZero(f.FromUint64(0)), qt.IsTrue)
	c.Assert(f.IsZero(f.Add(field.FromInt64(f, -1), field.One(f))), qt.IsTrue)
	c.Assert(f.Equal(field.Exp(f, f.FromUint64(3), 4), f.FromUint64(81)), qt.IsTrue)

	// p - 1 decodes, p does not
	pMinusOne := new(big.Int).Sub(f.Modulus(), big.NewInt(1))
	e, err := field.FromBigInt(f, pMinusOne)
	c.Assert(err, qt.IsNil)
	c.Assert(f.Equal(e, field.FromInt64(f, -1)), qt.IsTrue)
	_, err = f.SetBytes(f.Modulus().Bytes())
	c.Assert(err, qt.ErrorIs, field.ErrNonCanonical)

	c.Assert(f.String(f.FromUint64(42)), qt.Equals, "42")
}

func TestFromBigIntReduces(t *testing.T) {
	c := qt.New(t)
	f := modp.MustNew(17)
	e, err := field.FromBigInt(f, big.NewInt(-1))
	c.Assert(err, qt.IsNil)
	c.Assert(f.String(e), qt.Equals, "16")
	e, err = field.FromBigInt(f, big.NewInt(40))
	c.Assert(err, qt.IsNil)
	c.Assert(f.String(e), qt.Equals, "6")
}
