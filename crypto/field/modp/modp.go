// Package modp implements field.Field for ℤ/pℤ with a runtime prime modulus
// below 2²⁵⁶, using holiman/uint256 for the limb arithmetic. Small moduli make
// it a fast stand-in for the curve scalar fields when testing polynomial code.
package modp

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"

	"github.com/holiman/uint256"
	"github.com/vocdoni/davinci-poly/crypto/field"
)

// ErrInvalidModulus is returned by New when the modulus is not an odd prime
// that fits in 256 bits.
var ErrInvalidModulus = errors.New("invalid modulus")

// Element is a residue in [0, p).
type Element = uint256.Int

// Field is ℤ/pℤ.
type Field struct {
	p      uint256.Int
	pMinus uint256.Int // p - 2, the Fermat inversion exponent
	size   int         // byte length of the canonical encoding
	name   string
}

var _ field.Field[Element] = (*Field)(nil)

// New returns the field of integers modulo p.
func New(p *big.Int) (*Field, error) {
	if p == nil || p.Sign() <= 0 || p.Bit(0) == 0 || !p.ProbablyPrime(20) {
		return nil, fmt.Errorf("%w: %v is not an odd prime", ErrInvalidModulus, p)
	}
	m, overflow := uint256.FromBig(p)
	if overflow {
		return nil, fmt.Errorf("%w: %d bits, max 256", ErrInvalidModulus, p.BitLen())
	}
	f := &Field{
		p:    *m,
		size: (p.BitLen() + 7) / 8,
		name: fmt.Sprintf("modp-%s", p.Text(10)),
	}
	f.pMinus.Sub(m, uint256.NewInt(2))
	return f, nil
}

// MustNew is like New but panics on error.
func MustNew(p uint64) *Field {
	f, err := New(new(big.Int).SetUint64(p))
	if err != nil {
		panic(err)
	}
	return f
}

func (f *Field) Name() string { return f.name }

func (f *Field) Modulus() *big.Int { return f.p.ToBig() }

func (f *Field) Zero() Element { return Element{} }

func (f *Field) FromUint64(v uint64) Element {
	var e Element
	e.SetUint64(v)
	e.Mod(&e, &f.p)
	return e
}

func (f *Field) Add(a, b Element) Element {
	var e Element
	e.AddMod(&a, &b, &f.p)
	return e
}

func (f *Field) Sub(a, b Element) Element {
	var e Element
	if a.Lt(&b) {
		// a - b + p, computed as a + (p - b) to stay below 2²⁵⁶
		e.Sub(&f.p, &b)
		e.Add(&e, &a)
		return e
	}
	e.Sub(&a, &b)
	return e
}

func (f *Field) Mul(a, b Element) Element {
	var e Element
	e.MulMod(&a, &b, &f.p)
	return e
}

// Inverse computes a^(p-2) mod p.
func (f *Field) Inverse(a Element) (Element, error) {
	if a.IsZero() {
		return Element{}, field.ErrDivisionByZero
	}
	res := *uint256.NewInt(1)
	base := a
	for i := 0; i < f.pMinus.BitLen(); i++ {
		if f.pMinus[i/64]>>(uint(i)%64)&1 == 1 {
			res.MulMod(&res, &base, &f.p)
		}
		base.MulMod(&base, &base, &f.p)
	}
	return res, nil
}

func (f *Field) IsZero(a Element) bool { return a.IsZero() }

func (f *Field) Equal(a, b Element) bool { return a.Eq(&b) }

func (f *Field) Random() (Element, error) {
	r, err := rand.Int(rand.Reader, f.p.ToBig())
	if err != nil {
		return Element{}, fmt.Errorf("sample %s element: %w", f.name, err)
	}
	e, _ := uint256.FromBig(r)
	return *e, nil
}

// Bytes returns the big-endian encoding of a, with as many bytes as needed to
// encode p.
func (f *Field) Bytes(a Element) []byte {
	b := a.Bytes32()
	return b[32-f.size:]
}

func (f *Field) SetBytes(b []byte) (Element, error) {
	if len(b) > f.size {
		return Element{}, fmt.Errorf("%w: %d bytes, max %d", field.ErrNonCanonical, len(b), f.size)
	}
	var e Element
	e.SetBytes(b)
	if !e.Lt(&f.p) {
		return Element{}, fmt.Errorf("%w: value not below modulus", field.ErrNonCanonical)
	}
	return e, nil
}

func (f *Field) String(a Element) string { return a.Dec() }
