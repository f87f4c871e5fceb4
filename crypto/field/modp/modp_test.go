package modp

import (
	"math/big"
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestNewRejectsInvalidModulus(t *testing.T) {
	c := qt.New(t)

	for _, p := range []*big.Int{nil, big.NewInt(0), big.NewInt(-7), big.NewInt(2), big.NewInt(15), new(big.Int).Lsh(big.NewInt(1), 300)} {
		_, err := New(p)
		c.Assert(err, qt.ErrorIs, ErrInvalidModulus, qt.Commentf("modulus %v", p))
	}
}

func TestSmallFieldArithmetic(t *testing.T) {
	c := qt.New(t)
	f := MustNew(7)

	c.Assert(f.Name(), qt.Equals, "modp-7")
	c.Assert(f.String(f.FromUint64(9)), qt.Equals, "2")
	c.Assert(f.String(f.Sub(f.FromUint64(2), f.FromUint64(5))), qt.Equals, "4")
	c.Assert(f.String(f.Mul(f.FromUint64(3), f.FromUint64(5))), qt.Equals, "1")

	inv, err := f.Inverse(f.FromUint64(3))
	c.Assert(err, qt.IsNil)
	c.Assert(f.String(inv), qt.Equals, "5")

	// every non zero residue is invertible
	for v := uint64(1); v < 7; v++ {
		inv, err := f.Inverse(f.FromUint64(v))
		c.Assert(err, qt.IsNil)
		c.Assert(f.Equal(f.Mul(inv, f.FromUint64(v)), f.FromUint64(1)), qt.IsTrue)
	}

	c.Assert(f.Bytes(f.FromUint64(6)), qt.DeepEquals, []byte{6})
	_, err = f.SetBytes([]byte{7})
	c.Assert(err, qt.IsNotNil)
	_, err = f.SetBytes([]byte{0, 1})
	c.Assert(err, qt.IsNotNil)
}
