// Package field defines the prime field capability consumed by the polynomial
// engine. Concrete fields live in the subpackages: bls12381 (the KZG host
// field), bn254 (the native circuit field) and modp (runtime modulus, mostly
// used with small primes in tests).
package field

import (
	"errors"
	"math/big"
)

var (
	// ErrDivisionByZero is returned when inverting the additive identity.
	ErrDivisionByZero = errors.New("division by zero")
	// ErrNonCanonical is returned when decoding bytes that encode a value
	// greater or equal than the field modulus.
	ErrNonCanonical = errors.New("non canonical field element encoding")
)

// Field is the arithmetic of a prime-order field whose elements are values of
// type E. Elements are treated as immutable: every operation returns a new
// value and never modifies its operands.
type Field[E any] interface {
	// Name returns a short identifier of the field, i.e. "bls12381-fr".
	Name() string
	// Modulus returns a copy of the field characteristic.
	Modulus() *big.Int

	Zero() E
	FromUint64(v uint64) E

	Add(a, b E) E
	Sub(a, b E) E
	Mul(a, b E) E
	// Inverse returns a⁻¹, or ErrDivisionByZero if a is zero.
	Inverse(a E) (E, error)

	IsZero(a E) bool
	Equal(a, b E) bool

	// Random returns a uniformly sampled element.
	Random() (E, error)
	// Bytes returns the canonical big-endian encoding of a.
	Bytes(a E) []byte
	// SetBytes decodes a big-endian value, rejecting non canonical inputs.
	SetBytes(b []byte) (E, error)
	// String returns the decimal representation of a.
	String(a E) string
}

// One returns the multiplicative identity of f.
func One[E any](f Field[E]) E {
	return f.FromUint64(1)
}

// Neg returns -a.
func Neg[E any](f Field[E], a E) E {
	return f.Sub(f.Zero(), a)
}

// FromInt64 returns the element congruent to v, so FromInt64(f, -1) is p-1.
func FromInt64[E any](f Field[E], v int64) E {
	if v >= 0 {
		return f.FromUint64(uint64(v))
	}
	// -v overflows for math.MinInt64, handle it through uint64 arithmetic
	return Neg(f, f.FromUint64(uint64(-(v + 1))+1))
}

// Div returns a / b.
func Div[E any](f Field[E], a, b E) (E, error) {
	inv, err := f.Inverse(b)
	if err != nil {
		var zero E
		return zero, err
	}
	return f.Mul(a, inv), nil
}

// Exp returns a^e computed by square and multiply.
func Exp[E any](f Field[E], a E, e uint64) E {
	res := One(f)
	base := a
	for e > 0 {
		if e&1 == 1 {
			res = f.Mul(res, base)
		}
		base = f.Mul(base, base)
		e >>= 1
	}
	return res
}

// FromBigInt reduces x modulo the field characteristic and returns the
// resulting element.
func FromBigInt[E any](f Field[E], x *big.Int) (E, error) {
	mod := f.Modulus()
	r := new(big.Int).Mod(x, mod)
	buf := make([]byte, (mod.BitLen()+7)/8)
	return f.SetBytes(r.FillBytes(buf))
}

// ToBigInt returns the canonical integer representative of a.
func ToBigInt[E any](f Field[E], a E) *big.Int {
	return new(big.Int).SetBytes(f.Bytes(a))
}
