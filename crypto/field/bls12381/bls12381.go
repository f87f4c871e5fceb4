// Package bls12381 implements field.Field for the scalar field of the BLS12-381 curve, the host field of
// EIP-4844 KZG commitments, on top of gnark-crypto.
package bls12381

import (
	"fmt"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/vocdoni/davinci-poly/crypto/field"
)

// Name identifies the field in logs and persisted records.
const Name = "bls12381-fr"

// Field is the bls12381-fr arithmetic. The zero value is ready to use.
type Field struct{}

// Element is a bls12381-fr element in Montgomery form.
type Element = fr.Element

var _ field.Field[Element] = Field{}

// New returns the field. It exists for symmetry with modp.New.
func New() Field { return Field{} }

func (Field) Name() string { return Name }

func (Field) Modulus() *big.Int { return fr.Modulus() }

func (Field) Zero() Element { return Element{} }

func (Field) FromUint64(v uint64) Element {
	var e Element
	e.SetUint64(v)
	return e
}

func (Field) Add(a, b Element) Element {
	var e Element
	e.Add(&a, &b)
	return e
}

func (Field) Sub(a, b Element) Element {
	var e Element
	e.Sub(&a, &b)
	return e
}

func (Field) Mul(a, b Element) Element {
	var e Element
	e.Mul(&a, &b)
	return e
}

func (Field) Inverse(a Element) (Element, error) {
	if a.IsZero() {
		return Element{}, field.ErrDivisionByZero
	}
	var e Element
	e.Inverse(&a)
	return e, nil
}

func (Field) IsZero(a Element) bool { return a.IsZero() }

func (Field) Equal(a, b Element) bool { return a.Equal(&b) }

func (Field) Random() (Element, error) {
	var e Element
	if _, err := e.SetRandom(); err != nil {
		return Element{}, fmt.Errorf("sample bls12381-fr element: %w", err)
	}
	return e, nil
}

func (Field) Bytes(a Element) []byte {
	b := a.Bytes()
	return b[:]
}

// SetBytes decodes up to fr.Bytes big-endian bytes. Shorter inputs are left
// padded with zeros.
func (Field) SetBytes(b []byte) (Element, error) {
	if len(b) > fr.Bytes {
		return Element{}, fmt.Errorf("%w: %d bytes, max %d", field.ErrNonCanonical, len(b), fr.Bytes)
	}
	var buf [fr.Bytes]byte
	copy(buf[fr.Bytes-len(b):], b)
	var e Element
	if err := e.SetBytesCanonical(buf[:]); err != nil {
		return Element{}, fmt.Errorf("%w: %v", field.ErrNonCanonical, err)
	}
	return e, nil
}

func (Field) String(a Element) string { return a.Text(10) }
